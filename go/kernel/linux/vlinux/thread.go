package vlinux

import (
	co "github.com/usercorn-project/usercorn/go/kernel/common"
	"github.com/usercorn-project/usercorn/go/kernel/linux"
)

// SetTidAddress syscall (not implemented)
func (k *VirtualLinuxKernel) SetTidAddress(tidptr co.Buf) uint64 {
	return 0
}

// SetRobustList syscall (not implemented)
func (k *VirtualLinuxKernel) SetRobustList(tid int, head co.Buf) {}

// arbiterState lazily builds k's ArbiterState on first use.
func (k *VirtualLinuxKernel) arbiterState() *linux.ArbiterState {
	if k.arbiter == nil {
		k.arbiter = linux.NewArbiterState(k.U)
	}
	return k.arbiter
}

// Futex syscall
// Timeout is a co.Buf here because some forms of futex don't pass it
func (k *VirtualLinuxKernel) Futex(uaddr co.Buf, op, val int, timeout, uaddr2 co.Buf, val3 uint64) int {
	return linux.Futex(k.arbiterState(), uaddr, op, val, timeout)
}
