package mpycross

import "errors"

// ErrInvalidArgument is wrapped by errors returned before any filesystem or
// process work when a required input is missing.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrVersionFormat is wrapped when the --version output does not carry an
// mpy format version.
var ErrVersionFormat = errors.New("unrecognised mpy-cross version output")

// CrossCompileError reports a missing input file, a missing mpy-cross binary
// or a failed mpy-cross run. For a non-zero exit, Message is the tool's own
// combined output, unmodified.
type CrossCompileError struct {
	Message string
	// Err is the underlying OS error when the process could not be started.
	Err error
}

func (e *CrossCompileError) Error() string { return e.Message }

func (e *CrossCompileError) Unwrap() error { return e.Err }

// IsCrossCompileError reports whether err is or wraps a *CrossCompileError.
func IsCrossCompileError(err error) bool {
	var ce *CrossCompileError
	return errors.As(err, &ce)
}
