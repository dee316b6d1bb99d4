// Package serialport provides the line-oriented serial link to the servo microcontroller.
package serialport

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"time"

	"go.bug.st/serial"
)

// Defaults for a link to an Arduino-class board.
const (
	DefaultBaudRate    = 9600
	DefaultReadTimeout = time.Second
	DefaultPollTimeout = 10 * time.Millisecond
)

const readChunk = 256

// Port is the subset of a serial port the link needs.
// serial.Port satisfies it; MockPort stands in for it in tests.
type Port interface {
	io.ReadWriteCloser
	SetReadTimeout(t time.Duration) error
}

// Config holds configuration for opening a link.
type Config struct {
	// Port is the device path (e.g. "/dev/ttyUSB0" or "COM3").
	Port string

	// BaudRate is the line speed. Default is 9600.
	BaudRate int

	// ReadTimeout bounds every blocking read. Default is 1 second.
	ReadTimeout time.Duration

	// PollTimeout is the read timeout used to decide that the input
	// buffer is empty. Default is 10ms.
	PollTimeout time.Duration

	// DrainLimit bounds a whole ReadAvailableLines call. Default is ReadTimeout.
	DrainLimit time.Duration
}

func (c Config) withDefaults() Config {
	if c.BaudRate == 0 {
		c.BaudRate = DefaultBaudRate
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.PollTimeout == 0 {
		c.PollTimeout = DefaultPollTimeout
	}
	if c.DrainLimit == 0 {
		c.DrainLimit = c.ReadTimeout
	}
	return c
}

// openPort opens the OS serial device. It's a variable so tests can replace it.
var openPort = func(name string, mode *serial.Mode) (Port, error) {
	return serial.Open(name, mode)
}

// Link is an open serial connection that speaks newline-terminated text.
type Link struct {
	port   Port
	cfg    Config
	closed bool
}

// Open opens the serial device described by cfg.
// The board resets when the port opens; callers must wait before trusting the link.
func Open(cfg Config) (*Link, error) {
	cfg = cfg.withDefaults()
	if cfg.Port == "" {
		return nil, &IOError{Op: "open", Err: errors.New("serial port path is required")}
	}

	mode := &serial.Mode{
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	p, err := openPort(cfg.Port, mode)
	if err != nil {
		return nil, &IOError{Op: "open", Port: cfg.Port, Err: err}
	}

	if err := p.SetReadTimeout(cfg.ReadTimeout); err != nil {
		p.Close()
		return nil, &IOError{Op: "set read timeout", Port: cfg.Port, Err: err}
	}

	return &Link{port: p, cfg: cfg}, nil
}

// NewLink wraps an already open port.
func NewLink(p Port, cfg Config) *Link {
	return &Link{port: p, cfg: cfg.withDefaults()}
}

// PortName returns the device path the link was opened on.
func (l *Link) PortName() string {
	return l.cfg.Port
}

// WriteLine writes text followed by a newline.
func (l *Link) WriteLine(text string) error {
	if l.closed {
		return ErrClosed
	}

	data := append([]byte(text), '\n')
	n, err := l.port.Write(data)
	if err != nil {
		return &IOError{Op: "write", Port: l.cfg.Port, Err: err}
	}
	if n < len(data) {
		return &IOError{Op: "write", Port: l.cfg.Port, Err: io.ErrShortWrite}
	}
	return nil
}

// ReadAvailableLines returns every line the device has already sent, in arrival order.
// It returns as soon as the input buffer is empty and never waits for a line that
// has not started arriving. A trailing partial line gets one ReadTimeout to complete
// and is returned as-is if it doesn't.
func (l *Link) ReadAvailableLines() ([]string, error) {
	if l.closed {
		return nil, ErrClosed
	}

	timeout := l.cfg.PollTimeout
	if err := l.port.SetReadTimeout(timeout); err != nil {
		return nil, &IOError{Op: "set read timeout", Port: l.cfg.Port, Err: err}
	}
	// Restore the regular timeout for anyone reading after us.
	defer l.port.SetReadTimeout(l.cfg.ReadTimeout)

	var (
		pending []byte
		lines   []string
		waited  bool
		readErr error
	)
	buf := make([]byte, readChunk)
	deadline := time.Now().Add(l.cfg.DrainLimit)

	for time.Now().Before(deadline) {
		n, err := l.port.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)
			var done []string
			done, pending = splitLines(pending)
			lines = append(lines, done...)
		}
		if err != nil && !errors.Is(err, io.EOF) {
			readErr = &IOError{Op: "read", Port: l.cfg.Port, Err: err}
			break
		}
		if n > 0 {
			if timeout != l.cfg.PollTimeout {
				timeout = l.cfg.PollTimeout
				if err := l.port.SetReadTimeout(timeout); err != nil {
					readErr = &IOError{Op: "set read timeout", Port: l.cfg.Port, Err: err}
					break
				}
			}
			continue
		}

		// Input buffer is empty.
		if len(pending) == 0 || waited {
			break
		}
		waited = true
		if timeout != l.cfg.ReadTimeout {
			timeout = l.cfg.ReadTimeout
			if err := l.port.SetReadTimeout(timeout); err != nil {
				readErr = &IOError{Op: "set read timeout", Port: l.cfg.Port, Err: err}
				break
			}
		}
	}

	if len(pending) > 0 {
		lines = append(lines, decodeLine(pending))
	}
	return lines, readErr
}

// Close releases the port. Closing a closed link is a no-op.
func (l *Link) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true

	if err := l.port.Close(); err != nil {
		return &IOError{Op: "close", Port: l.cfg.Port, Err: err}
	}
	return nil
}

// splitLines returns the complete lines in data and the unterminated remainder.
func splitLines(data []byte) ([]string, []byte) {
	var lines []string
	for {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		lines = append(lines, decodeLine(data[:i]))
		data = data[i+1:]
	}
	return lines, data
}

func decodeLine(b []byte) string {
	return strings.TrimSpace(strings.ToValidUTF8(string(b), "�"))
}
