package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/samber/lo"

	"github.com/gwillem/servoctl/pkg/sequence"
	"github.com/gwillem/servoctl/pkg/servo"
)

type SequenceCommand struct {
	Args struct {
		Name string `positional-arg-name:"name" description:"sequence to play (sweep, mirror, wave, center)"`
	} `positional-args:"yes"`
}

func (c *SequenceCommand) Execute(args []string) error {
	name := c.Args.Name
	if name != "" {
		if _, ok := sequence.Lookup(name); !ok {
			return fmt.Errorf("unknown sequence %q, available: %s", name, sequenceNames())
		}
	}

	return runConnected(args, func(a *app) error {
		if name == "" {
			return pickAndPlaySequence(a)
		}
		seq, _ := sequence.Lookup(name)
		return playSequence(a, seq)
	})
}

func sequenceNames() string {
	return strings.Join(lo.Map(sequence.Builtin(), func(s sequence.Sequence, _ int) string {
		return s.Name
	}), ", ")
}

// pickAndPlaySequence lets the user play sequences until they choose Back.
func pickAndPlaySequence(a *app) error {
	for {
		var options []huh.Option[string]
		for _, seq := range sequence.Builtin() {
			label := fmt.Sprintf("%-7s %s (%s)", seq.Name, seq.Description, seq.Duration())
			options = append(options, huh.NewOption(label, seq.Name))
		}
		options = append(options, huh.NewOption("Back", ""))

		choice := ""
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Sequences").
					Options(options...).
					Value(&choice),
			),
		)
		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
		if choice == "" {
			return nil
		}

		seq, _ := sequence.Lookup(choice)
		if err := playSequence(a, seq); err != nil {
			return err
		}
	}
}

func playSequence(a *app, seq sequence.Sequence) error {
	fmt.Printf("Running %s sequence (%d steps)...\n", seq.Name, len(seq.Steps))

	player := sequence.NewPlayer(sequence.Config{
		Mover:  a.session,
		Logger: a.log,
		OnStep: func(i int, st sequence.Step, responses []string) {
			fmt.Println(dimStyle.Render(fmt.Sprintf("  %2d/%d ", i+1, len(seq.Steps))) + describeMoves(servo.Sent(st.Moves, st.Mode)))
			printResponses(responses)
		},
	})
	if err := player.Play(a.ctx, seq); err != nil {
		return err
	}

	fmt.Println(successStyle.Render(fmt.Sprintf("Sequence %s finished.", seq.Name)))
	return nil
}
