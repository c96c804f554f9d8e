package linux

import (
	"time"

	"github.com/pkg/errors"

	"github.com/usercorn-project/usercorn/go/kernel/arbiter"
	co "github.com/usercorn-project/usercorn/go/kernel/common"
	"github.com/usercorn-project/usercorn/go/kernel/sched"
	"github.com/usercorn-project/usercorn/go/models"
	"github.com/usercorn-project/usercorn/go/native"
)

// Linux errno values this file needs that the rest of the package
// hasn't already defined (ENOSYS lives in thread.go).
var (
	EAGAIN    = 11
	EFAULT    = 14
	EINTR     = 4
	ETIMEDOUT = 110
)

// guestMemory adapts a models.Usercorn handle to arbiter.Memory. It
// reads u fresh on every call rather than caching the byte order, since
// nothing about it is fixed before the guest binary is mapped.
type guestMemory struct{ u models.Usercorn }

func (g guestMemory) Read32(addr uint64) (int32, error) {
	b, err := g.u.MemRead(addr, 4)
	if err != nil {
		return 0, errors.Wrap(err, "MemRead failed")
	}
	return int32(g.u.ByteOrder().Uint32(b)), nil
}

func (g guestMemory) Write32(addr uint64, val int32) error {
	var b [4]byte
	g.u.ByteOrder().PutUint32(b[:], uint32(val))
	return errors.Wrap(g.u.MemWrite(addr, b[:]), "MemWrite failed")
}

// ArbiterState bundles the scheduler, address arbiter, and the single
// thread representing a kernel's one guest execution context. usercorn
// runs one goroutine per guest process today, so every kernel gets
// exactly one sched.Thread; AddressArbiter* and Futex always operate
// against it. Keep a *ArbiterState field in a Kernel and build it lazily
// with NewArbiterState so a kernel that never touches futexes never
// pays for it.
type ArbiterState struct {
	Sched      *sched.Scheduler
	Arb        *arbiter.Arbiter
	MainThread *sched.Thread
}

// NewArbiterState wires a fresh scheduler and arbiter over u's guest
// memory.
func NewArbiterState(u models.Usercorn) *ArbiterState {
	s := sched.NewScheduler()
	return &ArbiterState{
		Sched:      s,
		Arb:        arbiter.New(s, guestMemory{u}),
		MainThread: s.NewThread(0),
	}
}

// arbiterState lazily builds k's ArbiterState on first use.
func (k *LinuxKernel) arbiterState() *ArbiterState {
	if k.arbiter == nil {
		k.arbiter = NewArbiterState(k.U)
	}
	return k.arbiter
}

// futexErrno maps an arbiter result to the errno a guest's futex(2)
// caller expects.
func futexErrno(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, arbiter.ErrInvalidMemory):
		return -EFAULT
	case errors.Is(err, arbiter.ErrInvalidState):
		return -EAGAIN
	case errors.Is(err, arbiter.ErrTimedOut):
		return -ETIMEDOUT
	case errors.Is(err, arbiter.ErrTerminationRequested):
		return -EINTR
	default:
		return -EFAULT
	}
}

// readFutexTimeout parses the optional struct timespec pointed to by
// timeout. A null pointer means "wait forever".
func readFutexTimeout(timeout co.Buf) (time.Duration, error) {
	if timeout.Addr == 0 {
		return sched.Infinite, nil
	}
	var ts native.Timespec
	if err := timeout.Unpack(&ts); err != nil {
		return 0, err
	}
	d := ts.Duration()
	if d < 0 {
		d = 0
	}
	return d, nil
}

// AddressArbiterWaitIfLessThan exposes Arbiter.WaitIfLessThan directly
// to guests that want the full HOS-style primitive rather than the
// Linux futex subset. timeoutNs < 0 means infinite. decrement is a
// plain 0/1 flag, matching the rest of this package's syscall argument
// conventions (no bool-typed syscall argument exists elsewhere in the
// corpus to follow).
func (k *LinuxKernel) AddressArbiterWaitIfLessThan(addr co.Buf, value, decrement int32, timeoutNs int64) int {
	st := k.arbiterState()
	timeout := sched.Infinite
	if timeoutNs >= 0 {
		timeout = time.Duration(timeoutNs)
	}
	return futexErrno(st.Arb.WaitIfLessThan(st.MainThread, addr.Addr, value, decrement != 0, timeout))
}

// AddressArbiterWaitIfEqual exposes Arbiter.WaitIfEqual directly.
// timeoutNs < 0 means infinite.
func (k *LinuxKernel) AddressArbiterWaitIfEqual(addr co.Buf, value int32, timeoutNs int64) int {
	st := k.arbiterState()
	timeout := sched.Infinite
	if timeoutNs >= 0 {
		timeout = time.Duration(timeoutNs)
	}
	return futexErrno(st.Arb.WaitIfEqual(st.MainThread, addr.Addr, value, timeout))
}

// AddressArbiterSignal exposes Arbiter.Signal directly.
func (k *LinuxKernel) AddressArbiterSignal(addr co.Buf, count int32) int {
	st := k.arbiterState()
	return futexErrno(st.Arb.Signal(addr.Addr, count))
}

// AddressArbiterSignalAndIncrementIfEqual exposes
// Arbiter.SignalAndIncrementIfEqual directly.
func (k *LinuxKernel) AddressArbiterSignalAndIncrementIfEqual(addr co.Buf, value, count int32) int {
	st := k.arbiterState()
	return futexErrno(st.Arb.SignalAndIncrementIfEqual(addr.Addr, value, count))
}

// AddressArbiterSignalAndModifyByWaitingCountIfEqual exposes
// Arbiter.SignalAndModifyByWaitingCountIfEqual directly.
func (k *LinuxKernel) AddressArbiterSignalAndModifyByWaitingCountIfEqual(addr co.Buf, value, count int32) int {
	st := k.arbiterState()
	return futexErrno(st.Arb.SignalAndModifyByWaitingCountIfEqual(addr.Addr, value, count))
}

// AddressArbiterWaiterCount reports how many threads are currently
// parked on addr, for guest-side debugging/introspection. Backed by
// Arbiter.Waiters; never blocks and never touches guest memory.
func (k *LinuxKernel) AddressArbiterWaiterCount(addr co.Buf) int32 {
	st := k.arbiterState()
	return int32(len(st.Arb.Waiters(addr.Addr)))
}

// Futex backs the guest futex(2) syscall's WAIT/WAKE subset on top of
// an address arbiter. Exported so vlinux's VirtualLinuxKernel, which
// keeps its own *ArbiterState, can share the dispatch logic.
func Futex(st *ArbiterState, uaddr co.Buf, op, val int, timeout co.Buf) int {
	if op&FUTEX_CLOCK_REALTIME != 0 {
		return -ENOSYS
	}
	switch op & FUTEX_CMD_MASK {
	case FUTEX_WAIT, FUTEX_WAIT_BITSET:
		d, err := readFutexTimeout(timeout)
		if err != nil {
			return -EFAULT
		}
		return futexErrno(st.Arb.WaitIfEqual(st.MainThread, uaddr.Addr, int32(val), d))
	case FUTEX_WAKE, FUTEX_WAKE_BITSET:
		count := val
		if count <= 0 {
			count = -1
		}
		return futexErrno(st.Arb.Signal(uaddr.Addr, int32(count)))
	default:
		return -ENOSYS
	}
}
