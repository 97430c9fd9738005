package toolchain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSetup reports missing circuit or key artifacts. Fatal for that
	// circuit until the external circuit build step is rerun.
	ErrSetup = errors.New("circuit setup artifacts missing")

	// ErrProving reports a proving run that exited non-zero or produced
	// output that could not be parsed.
	ErrProving = errors.New("proof generation failed")

	// ErrProvingTimeout reports a proving run killed at the configured
	// deadline. Distinct from ErrProving so callers can retry with a larger
	// timeout.
	ErrProvingTimeout = errors.New("proof generation timed out")

	// ErrVerifyTimeout reports a verification run killed at the deadline.
	ErrVerifyTimeout = errors.New("proof verification timed out")
)

// RunError carries diagnostics from a failed toolchain invocation.
type RunError struct {
	Circuit string
	Stderr  string
	Err     error
}

func (e *RunError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("circuit %s: %v: %s", e.Circuit, e.Err, strings.TrimSpace(e.Stderr))
	}
	return fmt.Sprintf("circuit %s: %v", e.Circuit, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }
