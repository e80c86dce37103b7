package registry

// EntryEvent is published whenever a Registry's entry set changes.
// OldEntry is nil unless Kind is EntryReplaced.
type EntryEvent[V any] struct {
	Kind     EntryEventKind
	Name     string
	NewEntry V
	OldEntry *V
}

// EntryEventKind classifies an EntryEvent.
type EntryEventKind int

const (
	EntryAdded EntryEventKind = iota
	EntryRemoved
	EntryReplaced
)

// TypeName returns the dispatch key event.Processor uses to route this
// event to type-specific consumers.
func (e EntryEvent[V]) TypeName() string {
	switch e.Kind {
	case EntryAdded:
		return "registry.entry_added"
	case EntryRemoved:
		return "registry.entry_removed"
	case EntryReplaced:
		return "registry.entry_replaced"
	default:
		return "registry.entry_unknown"
	}
}
