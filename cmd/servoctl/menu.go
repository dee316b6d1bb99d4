package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
)

type MenuCommand struct{}

func (c *MenuCommand) Execute(args []string) error {
	fmt.Println(headerStyle.Render("Servo Controller"))
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━━━"))

	return runConnected(args, runMenu)
}

func runMenu(a *app) error {
	for {
		choice := "quit"
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Main menu").
					Description(fmt.Sprintf("Connected to %s", a.session.Port())).
					Options(
						huh.NewOption("Interactive mode (keyboard)", "interactive"),
						huh.NewOption("Interpreter mode (text commands)", "shell"),
						huh.NewOption("Sequences", "sequence"),
						huh.NewOption("Quit", "quit"),
					).
					Value(&choice),
			),
		)

		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		var err error
		switch choice {
		case "interactive":
			err = runInteractive(a)
		case "shell":
			err = runShell(a)
		case "sequence":
			err = pickAndPlaySequence(a)
		default:
			fmt.Println("Closing servo controller...")
			return nil
		}

		if err != nil {
			printError(err)
		}
		if !a.session.IsConnected() {
			return fmt.Errorf("lost connection to controller")
		}
	}
}
