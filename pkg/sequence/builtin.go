package sequence

import (
	"time"

	"github.com/samber/lo"

	"github.com/gwillem/servoctl/pkg/servo"
)

func single(ch, angle int, pause time.Duration) Step {
	return Step{Moves: []servo.Move{{Channel: ch, Angle: angle}}, Pause: pause}
}

// Sweep moves servo 0 to both ends and back to center.
func Sweep() Sequence {
	return Sequence{
		Name:        "sweep",
		Description: "Servo 0 to 0°, 180° and back to 90°",
		Steps: []Step{
			single(0, 0, 500*time.Millisecond),
			single(0, 180, 500*time.Millisecond),
			single(0, 90, 500*time.Millisecond),
		},
	}
}

// Mirror raises servo 1 from 0° to 180° while servo 2 falls, in 10° steps.
func Mirror() Sequence {
	var steps []Step
	for angle := servo.MinAngle; angle <= servo.MaxAngle; angle += 10 {
		steps = append(steps,
			single(1, angle, 0),
			single(2, servo.MaxAngle-angle, 100*time.Millisecond),
		)
	}
	return Sequence{
		Name:        "mirror",
		Description: "Servos 1 and 2 sweep in opposite directions",
		Steps:       steps,
	}
}

// Wave sends all four channels per step, each a quarter phase behind the previous one.
func Wave() Sequence {
	profile := []int{90, 135, 180, 135, 90, 45, 0, 45}
	var steps []Step
	for i := 0; i < 2*len(profile); i++ {
		moves := lo.Map(servo.AllChannels(), func(ch int, _ int) servo.Move {
			return servo.Move{Channel: ch, Angle: profile[(i+2*ch)%len(profile)]}
		})
		steps = append(steps, Step{Moves: moves, Mode: servo.SendBatch, Pause: 150 * time.Millisecond})
	}
	steps = append(steps, Step{Moves: servo.CenterMoves(), Mode: servo.SendBatch})
	return Sequence{
		Name:        "wave",
		Description: "All servos ripple in one batched wave",
		Steps:       steps,
	}
}

// Center puts every servo at 90° in one batch.
func Center() Sequence {
	return Sequence{
		Name:        "center",
		Description: "All servos to 90°",
		Steps:       []Step{{Moves: servo.CenterMoves(), Mode: servo.SendBatch}},
	}
}

// Builtin returns the built-in sequences in menu order.
func Builtin() []Sequence {
	return []Sequence{Sweep(), Mirror(), Wave(), Center()}
}

// Lookup finds a built-in sequence by name.
func Lookup(name string) (Sequence, bool) {
	return lo.Find(Builtin(), func(s Sequence) bool {
		return s.Name == name
	})
}
