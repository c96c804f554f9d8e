package arbiter

import (
	"sort"

	"github.com/usercorn-project/usercorn/go/kernel/sched"
)

// waitRecord is one parked thread's entry in the wait tree. The thread
// owns its own lifetime; the record is only a positional entry the
// tree owns and erases exactly once.
type waitRecord struct {
	thread   *sched.Thread
	address  uint64
	priority int32
	seq      uint64
}

// waitTree is an ordered multi-collection of waitRecords keyed
// lexicographically by (address, priority), priority descending so
// that within an address the highest-priority waiter sorts first,
// insertion order breaking ties.
//
// A generic balanced BST would give the same asymptotics; no repo in
// the teacher's dependency pack implements or imports one, and a
// single emulated process never parks more than a handful of threads
// on one address, so a sorted slice with binary-search insert/find is
// the idiomatic-Go substitute here (see DESIGN.md).
type waitTree struct {
	recs []*waitRecord
	seq  uint64
}

func less(a, b *waitRecord) bool {
	if a.address != b.address {
		return a.address < b.address
	}
	if a.priority != b.priority {
		return a.priority > b.priority
	}
	return a.seq < b.seq
}

// insert adds thread to the tree at key (address, thread.Priority) and
// returns the new record.
func (wt *waitTree) insert(thread *sched.Thread, address uint64) *waitRecord {
	wt.seq++
	rec := &waitRecord{thread: thread, address: address, priority: thread.Priority, seq: wt.seq}
	i := sort.Search(len(wt.recs), func(i int) bool { return !less(wt.recs[i], rec) })
	wt.recs = append(wt.recs, nil)
	copy(wt.recs[i+1:], wt.recs[i:])
	wt.recs[i] = rec
	return rec
}

// first returns the index of the first record with key >= (address, -inf),
// i.e. the first record whose address is >= the given one. ok reports
// whether that record's address actually equals address (a real match,
// not just an insertion point for a different, later address).
func (wt *waitTree) first(address uint64) (idx int, ok bool) {
	idx = sort.Search(len(wt.recs), func(i int) bool { return wt.recs[i].address >= address })
	return idx, idx < len(wt.recs) && wt.recs[idx].address == address
}

// removeAt erases the record at idx.
func (wt *waitTree) removeAt(idx int) *waitRecord {
	rec := wt.recs[idx]
	wt.recs = append(wt.recs[:idx], wt.recs[idx+1:]...)
	return rec
}

// removeThread erases whichever record belongs to thread, if any. Used
// by the timeout/termination path, which does not know its record's
// current index.
func (wt *waitTree) removeThread(thread *sched.Thread) bool {
	for i, r := range wt.recs {
		if r.thread == thread {
			wt.removeAt(i)
			return true
		}
	}
	return false
}

// countAfter returns the number of records strictly after idx that
// still match address, stopping early once it reaches max (pass a
// negative max for no cap).
func (wt *waitTree) countAfter(idx int, address uint64, max int) int {
	n := 0
	for i := idx + 1; i < len(wt.recs) && wt.recs[i].address == address; i++ {
		n++
		if max >= 0 && n >= max {
			break
		}
	}
	return n
}

// Waiter is a read-only snapshot of one parked thread, for debug
// introspection.
type Waiter struct {
	ThreadID uint64
	Priority int32
}

// waiters returns a snapshot of all threads currently parked on address,
// in wake order.
func (wt *waitTree) waiters(address uint64) []Waiter {
	idx, ok := wt.first(address)
	if !ok {
		return nil
	}
	var out []Waiter
	for i := idx; i < len(wt.recs) && wt.recs[i].address == address; i++ {
		out = append(out, Waiter{ThreadID: wt.recs[i].thread.ID, Priority: wt.recs[i].priority})
	}
	return out
}
