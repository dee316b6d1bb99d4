// Package servo provides the session that commands servos on an Arduino-class controller.
package servo

import (
	"strconv"
	"strings"
)

// Channel and angle limits of the controller.
const (
	NumChannels = 4
	MinChannel  = 0
	MaxChannel  = NumChannels - 1
	MinAngle    = 0
	MaxAngle    = 180
	CenterAngle = 90
)

// Move targets one channel at one angle.
type Move struct {
	Channel int
	Angle   int
}

func (m Move) String() string {
	return strconv.Itoa(m.Channel) + "," + strconv.Itoa(m.Angle)
}

// SendMode selects how a batch goes on the wire.
type SendMode int

const (
	// SendSingle sends only the first move of a batch.
	SendSingle SendMode = iota
	// SendBatch sends every move of a batch in one command line.
	SendBatch
)

func (m SendMode) String() string {
	if m == SendBatch {
		return "batch"
	}
	return "single"
}

// AllChannels returns every channel in order.
func AllChannels() []int {
	return []int{0, 1, 2, 3}
}

// CenterMoves returns a batch that centers every channel.
func CenterMoves() []Move {
	moves := make([]Move, 0, NumChannels)
	for _, ch := range AllChannels() {
		moves = append(moves, Move{Channel: ch, Angle: CenterAngle})
	}
	return moves
}

// Validate checks every move and returns a *RangeError for the first bad one.
func Validate(moves []Move) error {
	if len(moves) == 0 {
		return ErrEmptyBatch
	}
	for _, m := range moves {
		if m.Channel < MinChannel || m.Channel > MaxChannel {
			return &RangeError{Field: "channel", Value: m.Channel, Min: MinChannel, Max: MaxChannel}
		}
		if m.Angle < MinAngle || m.Angle > MaxAngle {
			return &RangeError{Field: "angle", Value: m.Angle, Min: MinAngle, Max: MaxAngle}
		}
	}
	return nil
}

// Sent returns the moves that mode actually puts on the wire.
func Sent(moves []Move, mode SendMode) []Move {
	if mode != SendBatch && len(moves) > 1 {
		return moves[:1]
	}
	return moves
}

// Encode renders moves as one command line without the terminator,
// e.g. "0,90" or "0,45;1,90;2,135".
func Encode(moves []Move, mode SendMode) string {
	sent := Sent(moves, mode)
	parts := make([]string, len(sent))
	for i, m := range sent {
		parts[i] = m.String()
	}
	return strings.Join(parts, ";")
}
