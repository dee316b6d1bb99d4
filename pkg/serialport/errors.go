package serialport

import (
	"errors"
	"fmt"
	"strings"

	"go.bug.st/serial"
)

// ErrClosed is returned by operations on a closed link.
var ErrClosed = errors.New("serial link is closed")

// IOError is a transport failure at the serial boundary.
type IOError struct {
	Op   string // Operation that failed (e.g. "open", "write", "read")
	Port string // Device path
	Err  error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Port == "" {
		return fmt.Sprintf("serial %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("serial %s %s: %v", e.Op, e.Port, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// IsDisconnect reports whether err means the device went away
// (unplugged, closed underneath us) rather than a configuration problem.
func IsDisconnect(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrClosed) {
		return true
	}

	if code, ok := portErrorCode(err); ok {
		switch code {
		case serial.PortNotFound, serial.PortClosed, serial.InvalidSerialPort:
			return true
		default:
			return false
		}
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "device not configured") ||
		strings.Contains(msg, "input/output error") ||
		strings.Contains(msg, "no such device") ||
		strings.Contains(msg, "broken pipe")
}

// portErrorCode extracts the driver error code. The driver returns
// PortError both by value and by pointer depending on the call site.
func portErrorCode(err error) (serial.PortErrorCode, bool) {
	var ptr *serial.PortError
	if errors.As(err, &ptr) && ptr != nil {
		return ptr.Code(), true
	}
	var val serial.PortError
	if errors.As(err, &val) {
		return val.Code(), true
	}
	return 0, false
}
