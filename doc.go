// Package servoctl drives up to four hobby servos attached to an Arduino
// running a line-based serial sketch.
//
// The board accepts one command per line: "channel,angle" moves a single
// servo, and "c,a;c,a;..." moves several at once. Whatever the board prints
// back is shown to the user.
//
// # Installation
//
//	go install github.com/gwillem/servoctl/cmd/servoctl@latest
//
// # Usage
//
// Find the board and save its port:
//
//	servoctl setup
//
// Then start the menu, or pick a mode directly:
//
//	servoctl
//	servoctl interactive
//	servoctl shell
//	servoctl sequence sweep
//	servoctl move 0:45, 1:120
//
// # Packages
//
// The module is organized into the following packages:
//
//   - cmd/servoctl: CLI with the menu, the control modes, ports and setup
//   - pkg/serialport: Line-oriented serial link and port discovery
//   - pkg/servo: Moves, validation and the controller session
//   - pkg/command: Parser for typed servo commands
//   - pkg/sequence: Canned movement sequences and their player
//   - pkg/config: TOML configuration file
//   - pkg/logging: zerolog setup
package servoctl
