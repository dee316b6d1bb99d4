// Package sequence plays canned servo movements through a session.
package sequence

import (
	"context"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"

	"github.com/gwillem/servoctl/pkg/servo"
)

// Mover sends a batch of moves. *servo.Session satisfies it.
type Mover interface {
	SetAngles(moves []servo.Move, mode servo.SendMode) ([]string, error)
}

// Step is one command of a sequence followed by a pause.
type Step struct {
	Moves []servo.Move
	Mode  servo.SendMode
	Pause time.Duration
}

// Sequence is a named list of steps.
type Sequence struct {
	Name        string
	Description string
	Steps       []Step
}

// Duration returns the sum of all pauses.
func (s Sequence) Duration() time.Duration {
	var d time.Duration
	for _, st := range s.Steps {
		d += st.Pause
	}
	return d
}

// Player runs sequences against a Mover.
type Player struct {
	mover  Mover
	clock  servo.Sleeper
	log    zerolog.Logger
	onStep func(i int, st Step, responses []string)
}

// Config holds configuration for a Player.
type Config struct {
	Mover  Mover
	Clock  servo.Sleeper
	Logger zerolog.Logger

	// OnStep is called after each step was sent. Optional.
	OnStep func(i int, st Step, responses []string)
}

// NewPlayer creates a Player.
func NewPlayer(cfg Config) *Player {
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	return &Player{
		mover:  cfg.Mover,
		clock:  cfg.Clock,
		log:    cfg.Logger,
		onStep: cfg.OnStep,
	}
}

// Play runs every step in order. ctx is checked between steps only; a step
// that has started always finishes, pause included.
func (p *Player) Play(ctx context.Context, seq Sequence) error {
	p.log.Debug().Str("sequence", seq.Name).Int("steps", len(seq.Steps)).Msg("sequence started")

	for i, st := range seq.Steps {
		if err := ctx.Err(); err != nil {
			p.log.Debug().Str("sequence", seq.Name).Int("step", i).Msg("sequence interrupted")
			return err
		}

		responses, err := p.mover.SetAngles(st.Moves, st.Mode)
		if err != nil {
			return fmt.Errorf("sequence %s step %d: %w", seq.Name, i+1, err)
		}
		if p.onStep != nil {
			p.onStep(i, st, responses)
		}

		if st.Pause > 0 {
			p.clock.Sleep(st.Pause)
		}
	}

	p.log.Debug().Str("sequence", seq.Name).Msg("sequence finished")
	return nil
}
