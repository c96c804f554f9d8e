package arbiter

import "github.com/pkg/errors"

// Error kinds returned by the arbiter operations. success is the
// absence of an error.
var (
	// ErrInvalidMemory: guest memory at addr was inaccessible.
	ErrInvalidMemory = errors.New("arbiter: invalid current memory")
	// ErrInvalidState: the predicate rejected, or a CAS prelude
	// observed a value other than the one the caller expected. The
	// guest must recheck.
	ErrInvalidState = errors.New("arbiter: invalid state")
	// ErrTimedOut: a wait reached its deadline without a signal.
	ErrTimedOut = errors.New("arbiter: timed out")
	// ErrTerminationRequested: the waiting thread was torn down
	// before or during the wait.
	ErrTerminationRequested = errors.New("arbiter: termination requested")

	// errTooManyMonitorRetries never escapes to a caller in practice
	// (see maxMonitorRetries); it exists so a runaway retry loop fails
	// loudly instead of spinning the host forever.
	errTooManyMonitorRetries = errors.New("arbiter: exclusive monitor retry limit exceeded")
)
