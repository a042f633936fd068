package morphtree

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestGestureSlotEmpty(t *testing.T) {
	var s GestureSlot
	r, seq := s.Latest()
	if seq != 0 || r.Present || r.Gesture != GestureNone {
		t.Errorf("empty slot = %+v seq %d", r, seq)
	}
}

func TestGestureSlotLatestWins(t *testing.T) {
	var s GestureSlot
	s.Publish(Result{Gesture: GestureOpenPalm, Present: true})
	s.Publish(Result{Gesture: GestureClosedFist, Present: true})
	r, seq := s.Latest()
	if r.Gesture != GestureClosedFist || seq != 2 {
		t.Errorf("got %v seq %d, want closed_fist seq 2", r.Gesture, seq)
	}
}

func TestGestureSlotConcurrent(t *testing.T) {
	var s GestureSlot
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				s.Publish(Result{Gesture: GestureOpenPalm, Present: true})
			}
		}()
	}
	done := make(chan struct{})
	go func() {
		var last uint64
		for {
			select {
			case <-done:
				return
			default:
			}
			_, seq := s.Latest()
			if seq < last {
				t.Errorf("seq went backwards: %d -> %d", last, seq)
				return
			}
			last = seq
		}
	}()
	wg.Wait()
	close(done)
	if _, seq := s.Latest(); seq != 4000 {
		t.Errorf("final seq = %d, want 4000", seq)
	}
}

func TestClassifyWorker(t *testing.T) {
	var slot GestureSlot
	w := NewClassifyWorker(NewClassifier(DefaultGestureConfig()), &slot)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- w.Run(ctx) }()

	sample := HandSample{Hands: []Hand{SyntheticHand(GestureOpenPalm)}, Timestamp: 1}
	w.Submit(sample)

	deadline := time.Now().Add(2 * time.Second)
	for {
		if r, seq := slot.Latest(); seq > 0 {
			if r.Gesture != GestureOpenPalm {
				t.Errorf("published %v, want open_palm", r.Gesture)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("worker never published")
		}
		time.Sleep(time.Millisecond)
	}

	cancel()
	if err := <-errc; !errors.Is(err, context.Canceled) {
		t.Errorf("Run returned %v, want context.Canceled", err)
	}
}

func TestClassifyWorkerSubmitKeepsNewest(t *testing.T) {
	var slot GestureSlot
	w := NewClassifyWorker(NewClassifier(DefaultGestureConfig()), &slot)
	// Not running: every Submit after the first replaces the waiting sample.
	if w.Submit(HandSample{Timestamp: 1}) {
		t.Error("first Submit should not replace anything")
	}
	if !w.Submit(HandSample{Timestamp: 2}) {
		t.Error("second Submit should replace the waiting sample")
	}
	if !w.Submit(HandSample{Timestamp: 3}) {
		t.Error("third Submit should replace the waiting sample")
	}

	select {
	case got := <-w.in:
		if got.Timestamp != 3 {
			t.Errorf("waiting sample has timestamp %d, want 3", got.Timestamp)
		}
	default:
		t.Fatal("no sample waiting")
	}
	select {
	case extra := <-w.in:
		t.Errorf("unexpected second sample %d", extra.Timestamp)
	default:
	}
}

func TestClassifyWorkerFeedsScene(t *testing.T) {
	s, _ := newTestScene(t)
	var slot GestureSlot
	s.SetGestureSource(&slot)
	w := NewClassifyWorker(NewClassifier(DefaultGestureConfig()), &slot)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	w.Submit(HandSample{Hands: []Hand{SyntheticHand(GestureOpenPalm)}, Timestamp: 1})
	deadline := time.Now().Add(2 * time.Second)
	for s.Mode() != ModeSphere {
		if time.Now().After(deadline) {
			t.Fatal("scene never switched to sphere")
		}
		s.Update(1.0 / 60)
		time.Sleep(time.Millisecond)
	}
}
