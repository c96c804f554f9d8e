// Package arbiter implements the address arbiter: the rendezvous
// point between guest-memory atomics and the kernel's thread
// scheduler that backs userspace futex-style synchronization.
package arbiter

import (
	"time"

	"github.com/pkg/errors"

	"github.com/usercorn-project/usercorn/go/kernel/sched"
)

// Arbiter owns one wait tree and the exclusive-monitor view of guest
// memory needed to arbitrate waits on it. One Arbiter belongs to
// exactly one Scheduler/kernel instance; arbitration never crosses
// process boundaries.
type Arbiter struct {
	sched *sched.Scheduler
	mem   Memory
	mon   ExclusiveMonitor

	tree waitTree
}

// New builds an Arbiter backed by s for scheduling and mem for guest
// memory access, using the default exclusive-monitor simulation.
func New(s *sched.Scheduler, mem Memory) *Arbiter {
	return &Arbiter{
		sched: s,
		mem:   mem,
		mon:   newMonitor(mem, mem.Write32),
	}
}

// Waiters returns a snapshot of threads currently parked on addr, in
// wake order. Read-only debug introspection; does not mutate the
// tree.
func (a *Arbiter) Waiters(addr uint64) []Waiter {
	a.sched.Lock()
	defer a.sched.Unlock()
	return a.tree.waiters(addr)
}

// signalTail is the common tail of all three Signal* operations: wake
// up to count waiters on addr, highest priority first, FIFO within
// priority. Caller must hold the scheduler lock.
func (a *Arbiter) signalTail(addr uint64, count int32) int32 {
	idx, ok := a.tree.first(addr)
	if !ok {
		return 0
	}
	var num int32
	for idx < len(a.tree.recs) && a.tree.recs[idx].address == addr && (count <= 0 || num < count) {
		rec := a.tree.recs[idx]
		t := rec.thread
		t.SetSyncedObject(sched.ResultSuccess)
		t.Wakeup()
		a.tree.removeAt(idx)
		t.SetInArbiter(false)
		num++
	}
	return num
}

// Signal wakes up to count waiters parked on addr. count <= 0 means
// "all of them". Always succeeds.
func (a *Arbiter) Signal(addr uint64, count int32) error {
	a.sched.Lock()
	defer a.sched.Unlock()
	a.signalTail(addr, count)
	return nil
}

// SignalAndIncrementIfEqual atomically increments *addr if it equals
// value, then wakes up to count waiters on success.
func (a *Arbiter) SignalAndIncrementIfEqual(addr uint64, value, count int32) error {
	a.sched.Lock()
	defer a.sched.Unlock()

	current, err := updateIfEqual(a.mon, addr, value, value+1)
	if err != nil {
		return errors.Wrapf(ErrInvalidMemory, "addr=%#x: %v", addr, err)
	}
	if current != value {
		return ErrInvalidState
	}
	a.signalTail(addr, count)
	return nil
}

// SignalAndModifyByWaitingCountIfEqual picks a new value for *addr
// from the current waiter population on addr, CASes it in if *addr
// still equals value, then wakes up to count waiters on success.
func (a *Arbiter) SignalAndModifyByWaitingCountIfEqual(addr uint64, value, count int32) error {
	a.sched.Lock()
	defer a.sched.Unlock()

	idx, hasWaiters := a.tree.first(addr)

	var newValue int32
	switch {
	case count <= 0:
		if hasWaiters {
			newValue = value - 2
		} else {
			newValue = value + 1
		}
	case hasWaiters:
		extra := a.tree.countAfter(idx, addr, int(count))
		if extra < int(count) {
			newValue = value - 1
		} else {
			newValue = value
		}
	default:
		newValue = value + 1
	}

	var current int32
	var err error
	if newValue != value {
		current, err = updateIfEqual(a.mon, addr, value, newValue)
	} else {
		current, err = a.mem.Read32(addr)
	}
	if err != nil {
		return errors.Wrapf(ErrInvalidMemory, "addr=%#x: %v", addr, err)
	}
	if current != value {
		return ErrInvalidState
	}
	a.signalTail(addr, count)
	return nil
}

// waitOutcome maps a thread's stored scheduler result to the
// arbiter's error vocabulary.
func waitOutcome(r sched.WaitResult) error {
	switch r {
	case sched.ResultSuccess:
		return nil
	case sched.ResultTerminationRequested:
		return ErrTerminationRequested
	default:
		return ErrTimedOut
	}
}

// wait is the skeleton shared by WaitIfLessThan and WaitIfEqual. read
// performs the predicate's guest-memory access (with any side effect,
// e.g. the decrementing read WaitIfLessThan can ask for); accept is
// the predicate itself.
func (a *Arbiter) wait(cur *sched.Thread, addr uint64, timeout time.Duration, read func() (int32, error), accept func(int32) bool) error {
	las := a.sched.LockAndSleep(cur, timeout)

	if cur.IsTerminationRequested() {
		las.CancelSleep()
		las.Unlock()
		return ErrTerminationRequested
	}

	cur.SetSyncedObject(sched.ResultTimedOut)

	value, err := read()
	if err != nil {
		las.CancelSleep()
		las.Unlock()
		return errors.Wrapf(ErrInvalidMemory, "addr=%#x: %v", addr, err)
	}
	if !accept(value) {
		las.CancelSleep()
		las.Unlock()
		return ErrInvalidState
	}
	if timeout == 0 {
		las.CancelSleep()
		las.Unlock()
		return ErrTimedOut
	}

	a.tree.insert(cur, addr)
	cur.SetInArbiter(true)
	cur.SetState(sched.Waiting)
	cur.SetWaitReasonForDebugging("Arbitration")

	// Scope exit: releases the scheduler lock and parks this goroutine
	// until a signaller, the deadline timer, or termination wakes it.
	las.Unlock()

	a.sched.UnscheduleTimer(cur)

	a.sched.Lock()
	if cur.InArbiter() {
		a.tree.removeThread(cur)
		cur.SetInArbiter(false)
	}
	result := cur.WaitResult()
	a.sched.Unlock()

	return waitOutcome(result)
}

// WaitIfLessThan blocks the calling thread until woken or timeout, if
// *addr < value. If decrement is set, *addr is decremented by one
// first (a no-op if the predicate then rejects).
func (a *Arbiter) WaitIfLessThan(cur *sched.Thread, addr uint64, value int32, decrement bool, timeout time.Duration) error {
	read := func() (int32, error) {
		if decrement {
			return decrementIfLessThan(a.mon, addr, value)
		}
		return a.mem.Read32(addr)
	}
	accept := func(v int32) bool { return v < value }
	return a.wait(cur, addr, timeout, read, accept)
}

// WaitIfEqual blocks the calling thread until woken or timeout, if
// *addr == value.
func (a *Arbiter) WaitIfEqual(cur *sched.Thread, addr uint64, value int32, timeout time.Duration) error {
	read := func() (int32, error) { return a.mem.Read32(addr) }
	accept := func(v int32) bool { return v == value }
	return a.wait(cur, addr, timeout, read, accept)
}
