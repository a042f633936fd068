package morphtree

import (
	"context"
	"sync/atomic"
)

// HandSample is one landmark-extraction result handed across goroutines.
type HandSample struct {
	Hands     []Hand
	Timestamp int64
}

// GestureSource supplies the latest classification to a Scene. Latest must
// never block. seq increases with every new result so a reader can tell a
// fresh value from one it has already consumed.
type GestureSource interface {
	Latest() (r Result, seq uint64)
}

// GestureSlot is a single latest-value slot. A producer publishes results and
// the frame loop reads whatever is there; nothing queues and nothing waits.
type GestureSlot struct {
	v atomic.Pointer[slotValue]
}

type slotValue struct {
	r   Result
	seq uint64
}

// Publish replaces the slot's value. Concurrent publishers are serialized so
// the sequence number seen by readers never goes backwards.
func (s *GestureSlot) Publish(r Result) {
	for {
		old := s.v.Load()
		next := &slotValue{r: r, seq: 1}
		if old != nil {
			next.seq = old.seq + 1
		}
		if s.v.CompareAndSwap(old, next) {
			return
		}
	}
}

// Latest returns the most recently published result and its sequence number.
// Before the first Publish it returns the zero Result and seq 0.
func (s *GestureSlot) Latest() (Result, uint64) {
	if p := s.v.Load(); p != nil {
		return p.r, p.seq
	}
	return Result{}, 0
}

// ClassifyWorker runs a Classifier off the frame loop. Samples arrive on a
// channel and each result is published to a GestureSlot.
type ClassifyWorker struct {
	classifier *Classifier
	slot       *GestureSlot
	in         chan HandSample
}

// NewClassifyWorker creates a worker with a small input buffer. The worker
// owns classifier; it must not be used elsewhere once Run starts.
func NewClassifyWorker(classifier *Classifier, slot *GestureSlot) *ClassifyWorker {
	return &ClassifyWorker{
		classifier: classifier,
		slot:       slot,
		in:         make(chan HandSample, 1),
	}
}

// Submit offers a sample without blocking. A sample the worker has not
// picked up yet is discarded in favour of s; replaced reports whether that
// happened.
func (w *ClassifyWorker) Submit(s HandSample) (replaced bool) {
	for {
		select {
		case w.in <- s:
			return replaced
		default:
		}
		select {
		case <-w.in:
			replaced = true
		default:
		}
	}
}

// Run classifies samples until ctx is cancelled.
func (w *ClassifyWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case s := <-w.in:
			w.slot.Publish(w.classifier.Classify(s.Hands, s.Timestamp))
		}
	}
}
