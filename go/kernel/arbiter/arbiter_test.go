package arbiter

import (
	"errors"
	"testing"
	"time"

	"github.com/usercorn-project/usercorn/go/kernel/sched"
)

const waitSlack = 2 * time.Second

func TestSignalWakesEqualWaiter(t *testing.T) {
	s := sched.NewScheduler()
	mem := newFakeMemory()
	mem.set(0x1000, 0)
	a := New(s, mem)

	t1 := s.NewThread(0)
	done := make(chan error, 1)
	go func() {
		done <- a.WaitIfEqual(t1, 0x1000, 0, time.Second)
	}()

	time.Sleep(10 * time.Millisecond)
	if err := a.Signal(0x1000, 1); err != nil {
		t.Fatalf("Signal: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
	case <-time.After(waitSlack):
		t.Fatal("waiter was never woken")
	}
	if len(a.Waiters(0x1000)) != 0 {
		t.Fatal("tree should be empty after wake")
	}
	if mem.get(0x1000) != 0 {
		t.Fatal("Signal must not touch guest memory")
	}
}

func TestWaitIfLessThanDecrementsBeforeBlocking(t *testing.T) {
	s := sched.NewScheduler()
	mem := newFakeMemory()
	mem.set(0x2000, 3)
	a := New(s, mem)

	t1 := s.NewThread(0)
	done := make(chan error, 1)
	go func() {
		done <- a.WaitIfLessThan(t1, 0x2000, 5, true, time.Second)
	}()

	// give the decrement a chance to land before the signal races it
	time.Sleep(10 * time.Millisecond)
	if mem.get(0x2000) != 2 {
		t.Fatalf("expected decrement to 2 before blocking, got %d", mem.get(0x2000))
	}

	if err := a.Signal(0x2000, -1); err != nil {
		t.Fatalf("Signal: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
	case <-time.After(waitSlack):
		t.Fatal("waiter was never woken")
	}
}

func TestWaitIfEqualRejectsImmediately(t *testing.T) {
	s := sched.NewScheduler()
	mem := newFakeMemory()
	mem.set(0x3000, 0)
	a := New(s, mem)

	t1 := s.NewThread(0)
	err := a.WaitIfEqual(t1, 0x3000, 7, time.Second)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if len(a.Waiters(0x3000)) != 0 {
		t.Fatal("tree must stay empty on immediate rejection")
	}
}

func TestSignalAndIncrementIfEqualNoWaiters(t *testing.T) {
	s := sched.NewScheduler()
	mem := newFakeMemory()
	mem.set(0x4000, 0)
	a := New(s, mem)

	if err := a.SignalAndIncrementIfEqual(0x4000, 0, 10); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if mem.get(0x4000) != 1 {
		t.Fatalf("expected increment to 1, got %d", mem.get(0x4000))
	}
}

func TestSignalAndIncrementIfEqualMismatch(t *testing.T) {
	s := sched.NewScheduler()
	mem := newFakeMemory()
	mem.set(0x5000, 0)
	a := New(s, mem)

	err := a.SignalAndIncrementIfEqual(0x5000, 9, 10)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if mem.get(0x5000) != 0 {
		t.Fatal("mismatched CAS must not write")
	}
}

func TestSignalAndModifyByWaitingCountIfEqualWakesTopTwo(t *testing.T) {
	s := sched.NewScheduler()
	mem := newFakeMemory()
	mem.set(0x6000, 0)
	a := New(s, mem)

	lo := s.NewThread(10)
	mid := s.NewThread(20)
	hi := s.NewThread(30)

	results := make(map[*sched.Thread]chan error)
	for _, th := range []*sched.Thread{lo, mid, hi} {
		th := th
		ch := make(chan error, 1)
		results[th] = ch
		go func() {
			ch <- a.WaitIfEqual(th, 0x6000, 0, sched.Infinite)
		}()
	}
	// let all three actually park before signaling
	time.Sleep(20 * time.Millisecond)

	if err := a.SignalAndModifyByWaitingCountIfEqual(0x6000, 0, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mem.get(0x6000) != 0 {
		t.Fatalf("expected no write (new_value == value), got %d", mem.get(0x6000))
	}

	for _, th := range []*sched.Thread{hi, mid} {
		select {
		case err := <-results[th]:
			if err != nil {
				t.Fatalf("expected thread to wake successfully, got %v", err)
			}
		case <-time.After(waitSlack):
			t.Fatal("high/mid priority waiter never woke")
		}
	}

	select {
	case err := <-results[lo]:
		t.Fatalf("low priority waiter should still be parked, got %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	waiters := a.Waiters(0x6000)
	if len(waiters) != 1 || waiters[0].ThreadID != lo.ID {
		t.Fatalf("expected only the low-priority waiter left, got %#v", waiters)
	}

	// clean up the still-parked thread so the goroutine doesn't leak
	// past the test.
	if err := a.Signal(0x6000, -1); err != nil {
		t.Fatalf("cleanup signal: %v", err)
	}
	<-results[lo]
}

func TestWaitTimesOut(t *testing.T) {
	s := sched.NewScheduler()
	mem := newFakeMemory()
	mem.set(0x7000, 0)
	a := New(s, mem)

	t1 := s.NewThread(0)
	err := a.WaitIfEqual(t1, 0x7000, 0, 5*time.Millisecond)
	if !errors.Is(err, ErrTimedOut) {
		t.Fatalf("expected ErrTimedOut, got %v", err)
	}
	if len(a.Waiters(0x7000)) != 0 {
		t.Fatal("tree must be empty after timeout")
	}
}

func TestWaitZeroTimeoutNeverBlocks(t *testing.T) {
	s := sched.NewScheduler()
	mem := newFakeMemory()
	mem.set(0x7100, 0)
	a := New(s, mem)

	t1 := s.NewThread(0)
	done := make(chan error, 1)
	go func() { done <- a.WaitIfEqual(t1, 0x7100, 0, 0) }()

	select {
	case err := <-done:
		if !errors.Is(err, ErrTimedOut) {
			t.Fatalf("expected ErrTimedOut, got %v", err)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("zero-timeout wait blocked")
	}
}

func TestWaitTerminationRequestedBeforeBlocking(t *testing.T) {
	s := sched.NewScheduler()
	mem := newFakeMemory()
	mem.set(0x8000, 0)
	a := New(s, mem)

	t1 := s.NewThread(0)
	s.Lock()
	t1.RequestTermination()
	s.Unlock()

	err := a.WaitIfEqual(t1, 0x8000, 0, time.Second)
	if !errors.Is(err, ErrTerminationRequested) {
		t.Fatalf("expected ErrTerminationRequested, got %v", err)
	}
	if len(a.Waiters(0x8000)) != 0 {
		t.Fatal("tree must stay empty")
	}
}

func TestWaitTerminationRequestedWhileParked(t *testing.T) {
	s := sched.NewScheduler()
	mem := newFakeMemory()
	mem.set(0x8100, 0)
	a := New(s, mem)

	t1 := s.NewThread(0)
	done := make(chan error, 1)
	go func() { done <- a.WaitIfEqual(t1, 0x8100, 0, time.Second) }()

	time.Sleep(10 * time.Millisecond)
	s.Lock()
	t1.RequestTermination()
	s.Unlock()

	select {
	case err := <-done:
		if !errors.Is(err, ErrTerminationRequested) {
			t.Fatalf("expected ErrTerminationRequested, got %v", err)
		}
	case <-time.After(waitSlack):
		t.Fatal("terminated thread was never released")
	}
	if len(a.Waiters(0x8100)) != 0 {
		t.Fatal("tree must be empty after termination")
	}
}

func TestInvalidMemoryPropagatesFromWait(t *testing.T) {
	s := sched.NewScheduler()
	mem := newFakeMemory()
	mem.faultOn(0x9000)
	a := New(s, mem)

	t1 := s.NewThread(0)
	err := a.WaitIfEqual(t1, 0x9000, 0, time.Second)
	if !errors.Is(err, ErrInvalidMemory) {
		t.Fatalf("expected ErrInvalidMemory, got %v", err)
	}
}
