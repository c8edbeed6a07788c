package dwm1001

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	// ErrClosed is returned when a command is attempted on a closed
	// session. No bytes are written to the wire in that case.
	ErrClosed = errors.New("session is closed")

	// ErrNotConnected is returned when a command is attempted before the
	// device has been brought into shell mode with Connect.
	ErrNotConnected = errors.New("device is not in shell mode")

	// ErrTimeout is returned when the shell prompt is not observed within
	// the configured timeout.
	ErrTimeout = errors.New("shell response timeout")

	// ErrMalformedResponse is returned when the device answered but the
	// output does not match the command's documented layout.
	ErrMalformedResponse = errors.New("malformed shell response")

	// ErrReservedPin is returned when the firmware refuses a GPIO
	// operation because the pin is reserved for internal use.
	ErrReservedPin = errors.New("gpio pin is reserved by the firmware")

	// ErrInvalidPin is returned for pin numbers outside the DWM1001's
	// user-accessible GPIO set.
	ErrInvalidPin = errors.New("invalid gpio pin")
)

// CommError represents a transport-level read or write failure mid-session.
type CommError struct {
	Op  string // Operation that failed, e.g. "write", "read"
	Err error  // Underlying error
}

func (e *CommError) Error() string {
	return fmt.Sprintf("communication error during %s: %v", e.Op, e.Err)
}

func (e *CommError) Unwrap() error {
	return e.Err
}

// ParseError reports shell output that did not match the expected layout.
// It wraps ErrMalformedResponse and records the offending text.
type ParseError struct {
	Cmd    ShellCommand // Command whose output failed to parse
	Output string       // Raw output that did not match
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse %q output: %q", string(e.Cmd), e.Output)
}

func (e *ParseError) Unwrap() error {
	return ErrMalformedResponse
}

// IsTimeout returns true if the error is a shell response timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsMalformed returns true if the error indicates unparseable output.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedResponse)
}
