package main

import (
	"errors"
	"strconv"
)

var (
	// ErrUsage is returned for malformed command lines. The usage text has
	// already been written to stderr when it is returned.
	ErrUsage = errors.New("usage error")
	// ErrNoMatch is returned when no device name contains the fragment.
	ErrNoMatch = errors.New("Cannot find a matching device")
	// ErrAmbiguous is returned when more than one device matches outside list mode.
	ErrAmbiguous = errors.New("Ambiguous device name")
	// ErrCommandFailed is returned when the property-set command fails.
	ErrCommandFailed = errors.New("xinput command failed!")
)

// ExitError is returned from the root command when the process must exit
// with Code. Err, if set, is what gets reported.
type ExitError struct {
	Code int
	Err  error
}

// Error reports Err, or the bare code when there is nothing else to say.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return "exit " + strconv.Itoa(e.Code)
	}
	return e.Err.Error()
}

// Unwrap lets errors.Is see through to the sentinel in Err.
func (e *ExitError) Unwrap() error { return e.Err }

// exitCode maps an error returned by the root command to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Code != 0 {
		return exitErr.Code
	}
	return 1
}
