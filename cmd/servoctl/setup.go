package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/gwillem/servoctl/pkg/serialport"
	"github.com/gwillem/servoctl/pkg/servo"
)

type SetupCommand struct{}

// Positions servo 0 visits while the user watches for movement.
var wigglePositions = []int{60, 120, servo.CenterAngle}

const (
	wigglePause = 400 * time.Millisecond
	manualPort  = "" // select value of the manual entry option
)

func (c *SetupCommand) Execute(args []string) error {
	fmt.Println(headerStyle.Render("Servo Controller Setup"))
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━━━━━━━━━"))
	fmt.Println()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	a.watchSignals()

	fmt.Println("Scanning for serial ports...")
	ports, err := serialport.ListPorts()
	if err != nil {
		return err
	}
	fmt.Printf("Found %d port(s).\n\n", len(ports))

	for {
		port, err := pickPort(ports, a.cfg.Port)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				fmt.Println("Setup cancelled.")
				return nil
			}
			return err
		}

		if err := a.connect(port); err != nil {
			printError(err)
			fmt.Println()
			continue
		}

		ok, err := confirmWiggle(a)
		if err != nil {
			return err
		}
		if !ok {
			a.session.Disconnect()
			fmt.Println("Let's try another port.")
			fmt.Println()
			continue
		}

		a.cfg.Port = port
		if err := a.cfg.Save(opts.Config); err != nil {
			return fmt.Errorf("save config: %w", err)
		}

		fmt.Println()
		fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━━━━━━━━━"))
		fmt.Println(successStyle.Render("Setup complete!"))
		fmt.Printf("Configuration saved to %s\n", opts.Config)
		fmt.Println()
		fmt.Println("Start the controller with: " + headerStyle.Render("servoctl"))
		return nil
	}
}

func pickPort(ports []serialport.PortInfo, current string) (string, error) {
	var options []huh.Option[string]
	for _, p := range ports {
		label := p.Name
		if v := p.Vendor(); v != "" {
			label += "  " + dimStyle.Render(v)
		}
		options = append(options, huh.NewOption(label, p.Name))
	}
	options = append(options, huh.NewOption("Enter a port manually", manualPort))

	choice := manualPort
	for i, p := range ports {
		if i == 0 || p.Name == current {
			choice = p.Name
		}
	}
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which port is the controller on?").
				Options(options...).
				Value(&choice),
		),
	).Run()
	if err != nil {
		return "", err
	}
	if choice != manualPort {
		return choice, nil
	}

	port := current
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Serial port").
				Value(&port).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("port must not be empty")
					}
					return nil
				}),
		),
	).Run()
	return port, err
}

// confirmWiggle moves servo 0 back and forth and asks whether it moved.
func confirmWiggle(a *app) (bool, error) {
	fmt.Println()
	fmt.Println(subHeaderStyle.Render("Watch servo 0..."))
	if err := wiggle(a); err != nil {
		return false, err
	}

	moved := true
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Did servo 0 move?").
				Affirmative("Yes").
				Negative("No").
				Value(&moved),
		),
	).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return moved, err
}

func wiggle(a *app) error {
	for _, angle := range wigglePositions {
		responses, err := a.session.SetAngle(0, angle)
		if err != nil {
			return fmt.Errorf("wiggle servo 0: %w", err)
		}
		printResponses(responses)
		a.clock.Sleep(wigglePause)
	}
	return nil
}
