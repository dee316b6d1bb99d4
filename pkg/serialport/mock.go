package serialport

import (
	"time"
)

// MockPort implements Port for testing.
// Each Read returns the next queued chunk; an empty queue reads as a timeout (0, nil).
type MockPort struct {
	Chunks       [][]byte
	ReadErr      error
	WriteData    []byte
	WriteErr     error
	CloseErr     error
	Closed       bool
	CloseCount   int
	Reads        int
	ReadTimeouts []time.Duration

	// OnWrite runs after a successful write, e.g. to queue a reply.
	OnWrite func(m *MockPort, p []byte)
}

// Feed queues s as one chunk of incoming data.
func (m *MockPort) Feed(s string) {
	m.Chunks = append(m.Chunks, []byte(s))
}

func (m *MockPort) Read(p []byte) (int, error) {
	m.Reads++
	if m.ReadErr != nil {
		return 0, m.ReadErr
	}
	if len(m.Chunks) == 0 {
		return 0, nil
	}
	n := copy(p, m.Chunks[0])
	if n < len(m.Chunks[0]) {
		m.Chunks[0] = m.Chunks[0][n:]
	} else {
		m.Chunks = m.Chunks[1:]
	}
	return n, nil
}

func (m *MockPort) Write(p []byte) (int, error) {
	if m.WriteErr != nil {
		return 0, m.WriteErr
	}
	m.WriteData = append(m.WriteData, p...)
	if m.OnWrite != nil {
		m.OnWrite(m, p)
	}
	return len(p), nil
}

func (m *MockPort) Close() error {
	m.Closed = true
	m.CloseCount++
	return m.CloseErr
}

func (m *MockPort) SetReadTimeout(timeout time.Duration) error {
	m.ReadTimeouts = append(m.ReadTimeouts, timeout)
	return nil
}
