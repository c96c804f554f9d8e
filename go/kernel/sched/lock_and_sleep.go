package sched

import "time"

// Infinite is passed as a timeout to LockAndSleep to mean "no deadline".
const Infinite time.Duration = -1

// LockAndSleep is a scoped acquisition of the scheduler lock plus a
// conditional "publish sleep" action on release, mirroring
// KScopedSchedulerLockAndSleep from the reference kernel. Acquire with
// Scheduler.LockAndSleep, always release with Unlock (typically via
// defer), and call CancelSleep on every early-return branch that
// should simply drop the lock without parking the thread.
type LockAndSleep struct {
	s         *Scheduler
	t         *Thread
	timeout   time.Duration
	cancelled bool
	unlocked  bool
}

// LockAndSleep acquires the scheduler lock for the given thread and
// timeout. The lock is held until Unlock is called.
func (s *Scheduler) LockAndSleep(t *Thread, timeout time.Duration) *LockAndSleep {
	s.Lock()
	return &LockAndSleep{s: s, t: t, timeout: timeout}
}

// CancelSleep suppresses the deferred sleep publication; Unlock will
// just release the scheduler lock.
func (las *LockAndSleep) CancelSleep() { las.cancelled = true }

// Unlock releases the scheduler lock. If CancelSleep was not called,
// it first arms the thread's deadline timer (unless the timeout is
// Infinite), then releases the lock and blocks the calling goroutine
// until the thread is woken by a signaller, its timer, or termination.
// Unlock does not change the thread's state: the caller sets it to
// Waiting while the lock is held, and the timer only wakes a thread
// that is still Waiting.
// Safe to call multiple times; only the first call has effect.
func (las *LockAndSleep) Unlock() {
	if las.unlocked {
		return
	}
	las.unlocked = true

	if las.cancelled {
		las.s.Unlock()
		return
	}

	t := las.t

	if las.timeout >= 0 {
		timeout := las.timeout
		t.timer = time.AfterFunc(timeout, func() {
			las.s.Lock()
			defer las.s.Unlock()
			if t.State() == Waiting {
				t.waitResult = ResultTimedOut
				t.Wakeup()
			}
		})
	}
	las.s.Unlock()

	<-t.wakeCh
}

// UnscheduleTimer cancels the thread's pending deadline timer, if any.
// Idempotent: safe to call whether or not the timer already fired.
func (s *Scheduler) UnscheduleTimer(t *Thread) {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
