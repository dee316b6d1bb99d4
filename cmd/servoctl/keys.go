package main

import (
	"github.com/samber/lo"

	"github.com/gwillem/servoctl/pkg/servo"
)

// Angle step bounds in interactive mode.
const (
	minStep = 1
	maxStep = 20
)

type nudge struct {
	channel   int
	direction int // -1 decreases, +1 increases
}

var channelKeys = map[string]nudge{
	"o": {0, -1},
	"p": {0, 1},
	"l": {1, -1},
	"m": {1, 1},
	"j": {2, -1},
	"k": {2, 1},
	"u": {3, -1},
	"i": {3, 1},
}

// channelKeyHint returns the decrease/increase keys of a channel, e.g. "o/p".
func channelKeyHint(ch int) string {
	var down, up string
	for key, n := range channelKeys {
		if n.channel != ch {
			continue
		}
		if n.direction < 0 {
			down = key
		} else {
			up = key
		}
	}
	return down + "/" + up
}

// nudgedAngle applies one key press to current, clamped to the legal range.
func nudgedAngle(current int, n nudge, step int) int {
	return lo.Clamp(current+n.direction*step, servo.MinAngle, servo.MaxAngle)
}

func adjustStep(step, delta int) int {
	return lo.Clamp(step+delta, minStep, maxStep)
}
