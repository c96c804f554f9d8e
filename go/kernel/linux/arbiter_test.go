package linux

import (
	"testing"

	"github.com/usercorn-project/usercorn/go/kernel/arbiter"
	co "github.com/usercorn-project/usercorn/go/kernel/common"
	"github.com/usercorn-project/usercorn/go/kernel/sched"
)

func TestFutexErrno(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{arbiter.ErrInvalidMemory, -EFAULT},
		{arbiter.ErrInvalidState, -EAGAIN},
		{arbiter.ErrTimedOut, -ETIMEDOUT},
		{arbiter.ErrTerminationRequested, -EINTR},
	}
	for _, c := range cases {
		if got := futexErrno(c.err); got != c.want {
			t.Errorf("futexErrno(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestReadFutexTimeoutNullPointerIsInfinite(t *testing.T) {
	d, err := readFutexTimeout(co.Buf{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != sched.Infinite {
		t.Fatalf("expected sched.Infinite for a null timeout pointer, got %v", d)
	}
}
