package x86

import "github.com/usercorn-project/usercorn/go/syscalls"

type A syscalls.A

const (
	INT  = syscalls.INT
	ENUM = syscalls.ENUM
	PTR  = syscalls.PTR
)
