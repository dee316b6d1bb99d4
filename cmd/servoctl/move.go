package main

import (
	"fmt"
	"strings"

	"github.com/gwillem/servoctl/pkg/command"
	"github.com/gwillem/servoctl/pkg/servo"
)

type MoveCommand struct {
	Single bool `long:"single" description:"Send only the first move, as a plain servo,angle command"`
	Args   struct {
		Moves []string `positional-arg-name:"moves" required:"1" description:"servo:angle pairs or a(servo, angle, ...)"`
	} `positional-args:"yes"`
}

func (c *MoveCommand) Execute(args []string) error {
	res, err := command.Parse(joinMoveArgs(c.Args.Moves))
	if err != nil {
		return err
	}
	for _, p := range res.Problems {
		fmt.Println(warnStyle.Render("skipped " + p.Error()))
	}

	mode := servo.SendBatch
	if c.Single {
		mode = servo.SendSingle
	}

	// The port comes from --port or the config file; positionals are moves.
	return runConnected(nil, func(a *app) error {
		responses, err := a.session.SetAngles(res.Moves, mode)
		if err != nil {
			return err
		}
		fmt.Println(successStyle.Render("Sent " + describeMoves(servo.Sent(res.Moves, mode))))
		printResponses(responses)
		return nil
	})
}

// joinMoveArgs rebuilds one command line from shell-split arguments.
func joinMoveArgs(words []string) string {
	line := strings.Join(words, " ")
	if strings.HasPrefix(line, "a") {
		return line
	}
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.Trim(w, ", "); w != "" {
			tokens = append(tokens, w)
		}
	}
	return strings.Join(tokens, ", ")
}
