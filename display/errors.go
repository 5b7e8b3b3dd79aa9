package display

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidState is returned when a pipeline operation is called out of order.
var ErrInvalidState = errors.New("invalid pipeline state")

// SubsystemInitError reports a failed setup stage. By the time it reaches the
// caller of Show, everything created before the failure has been released.
type SubsystemInitError struct {
	// Stage is the setup step that failed: "init", "window", "renderer",
	// "texture" or "upload".
	Stage string
	Err   error
}

func (e *SubsystemInitError) Error() string {
	return fmt.Sprintf("display %s: %v", e.Stage, e.Err)
}

func (e *SubsystemInitError) Unwrap() error {
	return e.Err
}

func stateError(op string, want, got State) error {
	return errors.Wrapf(ErrInvalidState, "%s requires state %s, pipeline is %s", op, want, got)
}
