package schedule

import (
	"container/heap"
	"context"
	"time"
)

// recurrenceKind classifies how a run reschedules itself after
// completion.
type recurrenceKind int

const (
	once recurrenceKind = iota
	fixedRate
	fixedDelay
)

// scheduledRun is one pending or in-flight execution in the priority
// queue, ordered by runAt with seq as a stable tiebreak.
type scheduledRun struct {
	runAt  time.Time
	seq    int64
	exec   func(context.Context) error
	handle *taskHandle

	kind   recurrenceKind
	period time.Duration // fixedRate: the period; fixedDelay: the delay
}

// runQueue is a container/heap.Interface min-heap ordered by runAt.
type runQueue []*scheduledRun

func (q runQueue) Len() int { return len(q) }

func (q runQueue) Less(i, j int) bool {
	if q[i].runAt.Equal(q[j].runAt) {
		return q[i].seq < q[j].seq
	}
	return q[i].runAt.Before(q[j].runAt)
}

func (q runQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *runQueue) Push(x any) {
	*q = append(*q, x.(*scheduledRun))
}

func (q *runQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

var _ heap.Interface = (*runQueue)(nil)
