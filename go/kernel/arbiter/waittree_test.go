package arbiter

import (
	"testing"

	"github.com/usercorn-project/usercorn/go/kernel/sched"
)

func TestWaitTreeOrdering(t *testing.T) {
	s := sched.NewScheduler()
	var wt waitTree

	low := s.NewThread(10)
	mid := s.NewThread(20)
	high := s.NewThread(30)
	other := s.NewThread(99)

	// insertion order deliberately scrambled; wake order must still
	// come out highest-priority-first, FIFO within priority.
	wt.insert(mid, 0x1000)
	wt.insert(low, 0x1000)
	wt.insert(high, 0x1000)
	wt.insert(other, 0x2000)

	idx, ok := wt.first(0x1000)
	if !ok {
		t.Fatal("expected a match at 0x1000")
	}
	order := []*sched.Thread{}
	for i := idx; i < len(wt.recs) && wt.recs[i].address == 0x1000; i++ {
		order = append(order, wt.recs[i].thread)
	}
	if len(order) != 3 || order[0] != high || order[1] != mid || order[2] != low {
		t.Fatalf("unexpected wake order: %#v", order)
	}

	if _, ok := wt.first(0x3000); ok {
		t.Fatal("expected no match at 0x3000")
	}
}

func TestWaitTreeTieBreakIsInsertionOrder(t *testing.T) {
	var wt waitTree
	s := sched.NewScheduler()
	a := s.NewThread(5)
	b := s.NewThread(5)

	wt.insert(a, 0x100)
	wt.insert(b, 0x100)

	idx, ok := wt.first(0x100)
	if !ok || wt.recs[idx].thread != a {
		t.Fatal("expected earlier-inserted equal-priority thread to wake first")
	}
}

func TestWaitTreeRemoveThread(t *testing.T) {
	var wt waitTree
	s := sched.NewScheduler()
	a := s.NewThread(1)
	b := s.NewThread(2)
	wt.insert(a, 0x10)
	wt.insert(b, 0x10)

	if !wt.removeThread(a) {
		t.Fatal("expected to remove a")
	}
	if wt.removeThread(a) {
		t.Fatal("expected removing an absent thread to report false")
	}
	idx, ok := wt.first(0x10)
	if !ok || wt.recs[idx].thread != b {
		t.Fatal("expected b to remain")
	}
}

func TestWaitTreeCountAfter(t *testing.T) {
	var wt waitTree
	s := sched.NewScheduler()
	threads := make([]*sched.Thread, 4)
	for i := range threads {
		threads[i] = s.NewThread(int32(10 * i))
		wt.insert(threads[i], 0x10)
	}
	idx, ok := wt.first(0x10)
	if !ok {
		t.Fatal("expected a match")
	}
	if n := wt.countAfter(idx, 0x10, -1); n != 3 {
		t.Fatalf("expected 3 records after the first, got %d", n)
	}
	if n := wt.countAfter(idx, 0x10, 2); n != 2 {
		t.Fatalf("expected count capped at 2, got %d", n)
	}
}
