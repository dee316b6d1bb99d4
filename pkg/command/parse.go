// Package command parses the textual servo commands typed in the interpreter.
//
// Two forms are accepted:
//
//	a(0, 90)                 call form: channel/angle argument pairs, at most 4 pairs
//	0:45, 1:120, 3:30        pair form: channel:angle tokens separated by commas
//
// Both produce a batch of servo moves. Range checking is left to the session.
package command

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gwillem/servoctl/pkg/servo"
)

// MaxPairs is the most moves one command may carry.
const MaxPairs = servo.NumChannels

// ErrUnrecognized is returned for input in neither command form.
var ErrUnrecognized = errors.New("unrecognized command, expected a(servo, angle, ...) or servo:angle, ...")

// SyntaxError names the offending token of a malformed command.
type SyntaxError struct {
	Token  string
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%q: %s", e.Token, e.Reason)
}

// Result is a parsed command.
type Result struct {
	// Moves is the batch to send, in input order.
	Moves []servo.Move
	// Problems lists pair-form tokens that were skipped.
	Problems []error
}

var callForm = regexp.MustCompile(`^a\s*\(([^)]*)\)$`)

// Parse parses one command line.
// A malformed call-form command fails as a whole. In the pair form a malformed
// token is reported in Result.Problems and left out of the batch.
func Parse(line string) (Result, error) {
	line = strings.TrimSpace(line)

	if m := callForm.FindStringSubmatch(line); m != nil {
		moves, err := parseCall(m[1])
		if err != nil {
			return Result{}, err
		}
		return Result{Moves: moves}, nil
	}

	if strings.Contains(line, ":") {
		return parsePairs(line)
	}

	return Result{}, ErrUnrecognized
}

func parseCall(args string) ([]servo.Move, error) {
	if strings.TrimSpace(args) == "" {
		return nil, &SyntaxError{Token: "a()", Reason: "no arguments"}
	}

	fields := strings.Split(args, ",")
	values := make([]int, 0, len(fields))
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			return nil, &SyntaxError{Token: args, Reason: fmt.Sprintf("argument %d is empty", i+1)}
		}
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, &SyntaxError{Token: f, Reason: fmt.Sprintf("argument %d is not an integer", i+1)}
		}
		values = append(values, v)
	}

	if len(values)%2 != 0 {
		return nil, &SyntaxError{Token: args, Reason: fmt.Sprintf("odd number of arguments (%d)", len(values))}
	}
	if len(values) > 2*MaxPairs {
		return nil, &SyntaxError{Token: args, Reason: fmt.Sprintf("too many arguments (%d, max %d)", len(values), 2*MaxPairs)}
	}

	moves := make([]servo.Move, 0, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		moves = append(moves, servo.Move{Channel: values[i], Angle: values[i+1]})
	}
	return moves, nil
}

func parsePairs(line string) (Result, error) {
	var res Result

	for _, tok := range strings.Split(line, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}

		ch, angle, ok := strings.Cut(tok, ":")
		if !ok {
			res.Problems = append(res.Problems, &SyntaxError{Token: tok, Reason: "missing ':' between servo and angle"})
			continue
		}
		c, err := strconv.Atoi(strings.TrimSpace(ch))
		if err != nil {
			res.Problems = append(res.Problems, &SyntaxError{Token: tok, Reason: "servo is not an integer"})
			continue
		}
		a, err := strconv.Atoi(strings.TrimSpace(angle))
		if err != nil {
			res.Problems = append(res.Problems, &SyntaxError{Token: tok, Reason: "angle is not an integer"})
			continue
		}
		res.Moves = append(res.Moves, servo.Move{Channel: c, Angle: a})
	}

	if len(res.Moves) > MaxPairs {
		return res, &SyntaxError{Token: line, Reason: fmt.Sprintf("too many pairs (%d, max %d)", len(res.Moves), MaxPairs)}
	}
	if len(res.Moves) == 0 {
		return res, &SyntaxError{Token: line, Reason: "no valid servo:angle pairs"}
	}
	return res, nil
}
