package posix

import (
	"github.com/usercorn-project/usercorn/go/kernel/common"
)

type PosixKernel struct {
	common.KernelBase
	Unpack func(common.Buf, interface{})
}
