package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	Port     string `short:"p" long:"port" description:"Serial port of the controller (default: config file, then platform default)"`
	Baud     int    `short:"b" long:"baud" description:"Baud rate (default: config file, then 9600)"`
	Config   string `short:"c" long:"config" default:"servoctl.toml" description:"Configuration file"`
	LogLevel string `long:"log-level" description:"Log level: debug, info, warn, error, off"`
	LogFile  string `long:"log-file" description:"Write logs to this file instead of stderr"`

	Menu        MenuCommand        `command:"menu" description:"Pick a control mode from a menu (default)"`
	Interactive InteractiveCommand `command:"interactive" alias:"keys" description:"Drive servos with the keyboard"`
	Shell       ShellCommand       `command:"shell" alias:"interpret" description:"Type servo commands like a(0, 90) or 0:90, 1:45"`
	Sequence    SequenceCommand    `command:"sequence" alias:"seq" description:"Play a canned movement sequence"`
	Move        MoveCommand        `command:"move" description:"Send one command and exit"`
	Ports       PortsCommand       `command:"ports" description:"List serial ports"`
	Setup       SetupCommand       `command:"setup" description:"Find the controller and save its port to the config file"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "servoctl - drive up to four servos on an Arduino over a serial link.\n\n" +
		"Without a command the menu starts; a bare argument is taken as the serial port."
	parser.SubcommandsOptional = true

	args, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}

	if parser.Active == nil {
		if err := opts.Menu.Execute(args); err != nil {
			printError(err)
			os.Exit(1)
		}
	}
}
