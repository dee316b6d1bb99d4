package sequence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/gwillem/servoctl/pkg/servo"
)

type call struct {
	Moves []servo.Move
	Mode  servo.SendMode
}

type fakeMover struct {
	calls []call
	err   error
}

func (f *fakeMover) SetAngles(moves []servo.Move, mode servo.SendMode) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.calls = append(f.calls, call{Moves: moves, Mode: mode})
	return []string{"ok"}, nil
}

type fakeClock struct {
	sleeps []time.Duration
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
}

func TestPlayer_Sweep(t *testing.T) {
	mover := &fakeMover{}
	clk := &fakeClock{}
	player := NewPlayer(Config{Mover: mover, Clock: clk})

	if err := player.Play(context.Background(), Sweep()); err != nil {
		t.Fatalf("Play failed: %v", err)
	}

	want := []call{
		{Moves: []servo.Move{{Channel: 0, Angle: 0}}},
		{Moves: []servo.Move{{Channel: 0, Angle: 180}}},
		{Moves: []servo.Move{{Channel: 0, Angle: 90}}},
	}
	if diff := cmp.Diff(want, mover.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]time.Duration{500 * time.Millisecond, 500 * time.Millisecond, 500 * time.Millisecond}, clk.sleeps); diff != "" {
		t.Errorf("sleeps mismatch (-want +got):\n%s", diff)
	}
}

func TestMirror(t *testing.T) {
	seq := Mirror()
	if len(seq.Steps) != 38 {
		t.Fatalf("Mirror has %d steps, want 38", len(seq.Steps))
	}
	for i := 0; i < len(seq.Steps); i += 2 {
		up := seq.Steps[i].Moves[0]
		down := seq.Steps[i+1].Moves[0]
		if up.Channel != 1 || down.Channel != 2 {
			t.Fatalf("step %d channels: got %d/%d, want 1/2", i, up.Channel, down.Channel)
		}
		if up.Angle+down.Angle != servo.MaxAngle {
			t.Errorf("step %d angles %d/%d should mirror", i, up.Angle, down.Angle)
		}
	}
}

func TestBuiltin_AllValid(t *testing.T) {
	for _, seq := range Builtin() {
		for i, st := range seq.Steps {
			if err := servo.Validate(st.Moves); err != nil {
				t.Errorf("%s step %d: %v", seq.Name, i, err)
			}
		}
	}
}

func TestWave_Batched(t *testing.T) {
	for i, st := range Wave().Steps {
		if st.Mode != servo.SendBatch || len(st.Moves) != servo.NumChannels {
			t.Errorf("wave step %d: mode %s with %d moves", i, st.Mode, len(st.Moves))
		}
	}
}

func TestLookup(t *testing.T) {
	if _, ok := Lookup("mirror"); !ok {
		t.Error("Lookup(mirror) not found")
	}
	if _, ok := Lookup("moonwalk"); ok {
		t.Error("Lookup(moonwalk) should not be found")
	}
}

func TestPlayer_StopsBetweenSteps(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mover := &fakeMover{}
	clk := &fakeClock{}
	player := NewPlayer(Config{
		Mover: mover,
		Clock: clk,
		OnStep: func(i int, st Step, responses []string) {
			if i == 0 {
				cancel()
			}
		},
	})

	err := player.Play(ctx, Sweep())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Play: got %v, want context.Canceled", err)
	}
	if len(mover.calls) != 1 {
		t.Errorf("calls: got %d, want 1", len(mover.calls))
	}
	// the interrupted step still completes its pause
	if len(clk.sleeps) != 1 {
		t.Errorf("sleeps: got %d, want 1", len(clk.sleeps))
	}
}

func TestPlayer_MoverError(t *testing.T) {
	mover := &fakeMover{err: servo.ErrNotConnected}
	player := NewPlayer(Config{Mover: mover, Clock: &fakeClock{}})

	err := player.Play(context.Background(), Center())
	if !errors.Is(err, servo.ErrNotConnected) {
		t.Fatalf("Play: got %v, want ErrNotConnected", err)
	}
}

func TestSequence_Duration(t *testing.T) {
	if got := Sweep().Duration(); got != 1500*time.Millisecond {
		t.Errorf("Sweep().Duration() = %v, want 1.5s", got)
	}
}
