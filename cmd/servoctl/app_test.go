package main

import (
	"syscall"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/gwillem/servoctl/pkg/config"
	"github.com/gwillem/servoctl/pkg/servo"
)

func TestApp_CloseOnce(t *testing.T) {
	a, mock := testApp(t, nopClock{})

	a.close()
	a.close()

	if mock.CloseCount != 1 {
		t.Errorf("CloseCount = %d, want 1", mock.CloseCount)
	}
	if a.session.IsConnected() {
		t.Error("session still connected after close")
	}
	if a.ctx.Err() == nil {
		t.Error("context not cancelled by close")
	}
}

func TestApp_PortFor(t *testing.T) {
	saved := opts.Port
	t.Cleanup(func() { opts.Port = saved })

	tests := []struct {
		args    []string
		flag    string
		cfgPort string
		want    string
	}{
		{[]string{"/dev/arg"}, "/dev/flag", "/dev/cfg", "/dev/arg"},
		{nil, "/dev/flag", "/dev/cfg", "/dev/flag"},
		{[]string{""}, "/dev/flag", "/dev/cfg", "/dev/flag"},
		{nil, "", "/dev/cfg", "/dev/cfg"},
		{nil, "", "", config.DefaultPort()},
	}
	for _, tt := range tests {
		a := &app{cfg: config.Config{Port: tt.cfgPort}}
		opts.Port = tt.flag
		if got := a.portFor(tt.args); got != tt.want {
			t.Errorf("portFor(%q) with --port %q, config %q = %q, want %q",
				tt.args, tt.flag, tt.cfgPort, got, tt.want)
		}
	}
}

func TestApp_InterruptReleasesTerminalFirst(t *testing.T) {
	saved := exit
	t.Cleanup(func() { exit = saved })
	code := -1
	exit = func(c int) { code = c }

	a, mock := testApp(t, nopClock{})

	released := 0
	connectedOnRelease := false
	done := a.ownTerminal(func() {
		released++
		connectedOnRelease = a.session.IsConnected()
	})
	defer done()

	a.interrupt(syscall.SIGTERM)

	if released != 1 {
		t.Errorf("terminal released %d times, want 1", released)
	}
	if !connectedOnRelease {
		t.Error("session disconnected before the terminal was released")
	}
	if mock.CloseCount != 1 {
		t.Errorf("CloseCount = %d, want 1", mock.CloseCount)
	}
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
}

func TestApp_InterruptWithoutWidget(t *testing.T) {
	saved := exit
	t.Cleanup(func() { exit = saved })
	exit = func(int) {}

	a, mock := testApp(t, nopClock{})

	released := 0
	a.ownTerminal(func() { released++ })()

	a.interrupt(syscall.SIGINT)

	if released != 0 {
		t.Errorf("released an unregistered widget %d times", released)
	}
	if mock.CloseCount != 1 {
		t.Errorf("CloseCount = %d, want 1", mock.CloseCount)
	}
}

func TestWiggle(t *testing.T) {
	clk := &recordingClock{}
	a, mock := testApp(t, clk)

	if err := wiggle(a); err != nil {
		t.Fatalf("wiggle failed: %v", err)
	}

	if got, want := string(mock.WriteData), "0,60\n0,120\n0,90\n"; got != want {
		t.Errorf("wrote %q, want %q", got, want)
	}
	want := []time.Duration{
		servo.DefaultOpenSettle,
		servo.DefaultCommandSettle, wigglePause,
		servo.DefaultCommandSettle, wigglePause,
		servo.DefaultCommandSettle, wigglePause,
	}
	if diff := cmp.Diff(want, clk.sleeps); diff != "" {
		t.Errorf("sleeps mismatch (-want +got):\n%s", diff)
	}
}
