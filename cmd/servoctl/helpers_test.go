package main

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gwillem/servoctl/pkg/config"
	"github.com/gwillem/servoctl/pkg/serialport"
	"github.com/gwillem/servoctl/pkg/servo"
)

type nopClock struct{}

func (nopClock) Sleep(time.Duration) {}

// recordingClock records sleeps instead of blocking.
type recordingClock struct {
	sleeps []time.Duration
}

func (c *recordingClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
}

func newConnectedSession(t *testing.T, clk servo.Sleeper) (*servo.Session, *serialport.MockPort) {
	t.Helper()
	mock := &serialport.MockPort{}
	s := servo.NewSession(servo.SessionConfig{
		Clock: clk,
		Open: func(cfg serialport.Config) (*serialport.Link, error) {
			return serialport.NewLink(mock, cfg), nil
		},
	})
	if _, err := s.Connect("/dev/ttyUSB0", 9600); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	return s, mock
}

// connectedSession returns a session talking to an in-memory port.
func connectedSession(t *testing.T) (*servo.Session, *serialport.MockPort) {
	t.Helper()
	return newConnectedSession(t, nopClock{})
}

// testApp returns an app around a connected in-memory session.
func testApp(t *testing.T, clk servo.Sleeper) (*app, *serialport.MockPort) {
	t.Helper()
	s, mock := newConnectedSession(t, clk)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return &app{
		cfg:     config.Default(),
		log:     zerolog.Nop(),
		clock:   clk,
		session: s,
		ctx:     ctx,
		cancel:  cancel,
	}, mock
}
