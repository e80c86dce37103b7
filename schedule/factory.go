package schedule

import (
	"fmt"
	"sync/atomic"
)

// namingFactory produces stable, monotonically numbered worker names
// for a single Executor: {prefix}-1, {prefix}-2, .... The counter
// never resets and never reuses a number, mirroring a thread factory
// whose name is the only externally observable property of a Go
// worker goroutine (goroutines themselves cannot be named at the
// runtime level, so the name is attached to logging/observability
// fields instead).
type namingFactory struct {
	prefix string
	next   atomic.Int64
}

func newNamingFactory(prefix string) *namingFactory {
	return &namingFactory{prefix: prefix}
}

func (f *namingFactory) newName() string {
	n := f.next.Add(1)
	return fmt.Sprintf("%s-%d", f.prefix, n)
}
