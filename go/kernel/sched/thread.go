// Package sched is a small cooperative thread scheduler. It gives the
// address arbiter (go/kernel/arbiter) the collaborators the real kernel
// would otherwise supply: a process-wide scheduler lock, current-thread
// identity, and a scoped "sleep until woken or deadline" primitive.
package sched

import (
	"sync"
	"time"
)

// State is where a Thread sits with respect to the scheduler.
type State int

const (
	Runnable State = iota
	Running
	Waiting
	Terminated
)

func (s State) String() string {
	switch s {
	case Runnable:
		return "runnable"
	case Running:
		return "running"
	case Waiting:
		return "waiting"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// WaitResult is what woke a parked Thread.
type WaitResult int

const (
	// ResultNone means the thread hasn't parked yet, or hasn't woken.
	ResultNone WaitResult = iota
	ResultSuccess
	ResultTimedOut
	ResultTerminationRequested
)

// Thread is one schedulable unit. The zero value is not usable; use
// Scheduler.NewThread. All mutation happens under the owning
// Scheduler's lock except for the wake channel send/receive, which is
// how LockAndSleep hands control back to the caller without holding
// the lock across the park.
type Thread struct {
	ID       uint64
	Priority int32

	state State

	terminationRequested bool

	waitResult WaitResult
	wakeCh     chan struct{}
	timer      *time.Timer

	// inArbiter is set by the arbiter while this thread is parked in a
	// wait tree, so the wait skeleton can tell whether a signal (vs. a
	// timeout or termination) already removed it. Non-owning: the
	// arbiter owns removing it, the thread only reads/clears the flag.
	inArbiter bool

	waitReason string
}

// State returns the thread's current scheduler state. Caller must hold
// the owning Scheduler's lock.
func (t *Thread) State() State { return t.state }

// SetState transitions the thread. Caller must hold the scheduler lock.
func (t *Thread) SetState(s State) { t.state = s }

// IsTerminationRequested reports whether the thread has been marked
// for teardown. Caller must hold the scheduler lock.
func (t *Thread) IsTerminationRequested() bool { return t.terminationRequested }

// RequestTermination marks the thread for teardown and, if it is
// currently parked, wakes it immediately with ResultTerminationRequested.
// Caller must hold the scheduler lock.
func (t *Thread) RequestTermination() {
	t.terminationRequested = true
	if t.state == Waiting {
		t.waitResult = ResultTerminationRequested
		t.Wakeup()
	}
}

// SetSyncedObject records the outcome a signaller (or the wait
// skeleton's prelude) wants this thread to observe on wake. The name
// mirrors the capability table's thread.set_synced_object(); this
// implementation has no synchronization-object payload to carry, only
// the result.
func (t *Thread) SetSyncedObject(result WaitResult) { t.waitResult = result }

// WaitResult returns the stored post-wake outcome. Caller must hold
// the scheduler lock.
func (t *Thread) WaitResult() WaitResult { return t.waitResult }

// InArbiter reports whether the thread is currently parked in some
// arbiter's wait tree. Caller must hold the scheduler lock.
func (t *Thread) InArbiter() bool { return t.inArbiter }

// SetInArbiter sets or clears the arbiter back-pointer flag. Caller
// must hold the scheduler lock.
func (t *Thread) SetInArbiter(v bool) { t.inArbiter = v }

// SetWaitReasonForDebugging annotates why the thread is parked, for
// debugger/REPL introspection only; the scheduler never reads it.
func (t *Thread) SetWaitReasonForDebugging(reason string) { t.waitReason = reason }

// WaitReasonForDebugging returns the last annotation set by
// SetWaitReasonForDebugging.
func (t *Thread) WaitReasonForDebugging() string { return t.waitReason }

// Wakeup transitions a Waiting thread back to Runnable and releases it
// from LockAndSleep's park. Caller must hold the scheduler lock; safe
// to call even if the thread already woke (idempotent).
func (t *Thread) Wakeup() {
	if t.state != Waiting {
		return
	}
	t.state = Runnable
	t.wake()
}

func (t *Thread) wake() {
	select {
	case t.wakeCh <- struct{}{}:
	default:
	}
}

// Scheduler owns the process-wide scheduler lock and the thread
// registry. Every mutation of a Thread's scheduling fields, and every
// mutation of an arbiter's wait tree, happens while this lock is held.
type Scheduler struct {
	mu sync.Mutex

	nextID  uint64
	threads map[uint64]*Thread
}

func NewScheduler() *Scheduler {
	return &Scheduler{threads: make(map[uint64]*Thread)}
}

// NewThread registers and returns a new Thread at the given priority.
func (s *Scheduler) NewThread(priority int32) *Thread {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	t := &Thread{
		ID:       s.nextID,
		Priority: priority,
		state:    Runnable,
		wakeCh:   make(chan struct{}, 1),
	}
	s.threads[t.ID] = t
	return t
}

// Lock acquires the scheduler lock. Pair with Unlock, typically via
// defer immediately after a successful Lock.
func (s *Scheduler) Lock() { s.mu.Lock() }

// Unlock releases the scheduler lock.
func (s *Scheduler) Unlock() { s.mu.Unlock() }
