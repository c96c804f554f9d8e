package linux

import (
	"github.com/usercorn-project/usercorn/go/kernel/common"
	"github.com/usercorn-project/usercorn/go/kernel/posix"
	"github.com/usercorn-project/usercorn/go/models"
)

type LinuxKernel struct {
	posix.PosixKernel

	Unpack common.Unpacker

	// arbiter backs the address arbiter syscalls and the futex(2)
	// WAIT/WAKE subset. Built lazily by arbiterState so a LinuxKernel
	// that never touches futexes never pays for it.
	arbiter *ArbiterState
}

func DefaultKernel() *LinuxKernel {
	return &LinuxKernel{Unpack: Unpack}
}

func NewKernel(u models.Usercorn) common.Kernel {
	kernel := DefaultKernel()
	kernel.UsercornInit(kernel, u)
	return kernel
}
