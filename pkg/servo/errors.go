package servo

import (
	"errors"
	"fmt"
)

// Sentinel errors for session misuse.
var (
	ErrNotConnected     = errors.New("not connected to controller")
	ErrAlreadyConnected = errors.New("already connected to controller")
	ErrEmptyBatch       = errors.New("no moves in batch")
	ErrOutOfRange       = errors.New("value out of range")
)

// RangeError reports a channel or angle outside its legal bounds.
type RangeError struct {
	Field string // "channel" or "angle"
	Value int
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %d out of range [%d, %d]", e.Field, e.Value, e.Min, e.Max)
}

// Is makes errors.Is(err, ErrOutOfRange) match any RangeError.
func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// ConnectError wraps the transport failure that prevented a connection.
type ConnectError struct {
	Port string
	Err  error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connect to %s: %v", e.Port, e.Err)
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}
