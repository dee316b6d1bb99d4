package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/gwillem/servoctl/pkg/command"
	"github.com/gwillem/servoctl/pkg/servo"
)

type ShellCommand struct{}

func (c *ShellCommand) Execute(args []string) error {
	return runConnected(args, runShell)
}

var shellKeywords = []string{"help", "status", "reset", "exit", "quit"}

const shellUsage = `Commands:
  a(servo, angle, ...)     move up to 4 servos, e.g. a(0, 90, 1, 45)
  servo:angle, ...         same in pair form, e.g. 0:45, 1:120, 3:30
  status                   show the last commanded angles
  reset                    move all servos to 90°
  help                     show this text
  exit | quit | q          leave the interpreter

Servos are 0-3, angles 0-180.`

func runShell(a *app) error {
	line := liner.NewLiner()
	defer line.Close()
	defer a.ownTerminal(func() { line.Close() })()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(l string) (c []string) {
		for _, kw := range shellKeywords {
			if strings.HasPrefix(kw, strings.ToLower(l)) {
				c = append(c, kw)
			}
		}
		return
	})

	if f, err := os.Open(a.cfg.HistoryFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		f, err := os.Create(a.cfg.HistoryFile)
		if err != nil {
			a.log.Warn().Err(err).Str("file", a.cfg.HistoryFile).Msg("cannot save history")
			return
		}
		line.WriteHistory(f)
		f.Close()
	}()

	fmt.Println(subHeaderStyle.Render("Interpreter mode") + dimStyle.Render(`  type "help" for commands, Ctrl-D to leave`))
	for {
		input, err := line.Prompt("servo> ")
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			fmt.Println()
			return nil
		}
		if err != nil {
			return fmt.Errorf("read command: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if quit := execShellLine(os.Stdout, a.session, input); quit {
			return nil
		}
		if !a.session.IsConnected() {
			return fmt.Errorf("lost connection to controller")
		}
	}
}

// execShellLine runs one interpreter line and reports whether the user asked to leave.
// Lines that do not parse never reach the session.
func execShellLine(w io.Writer, s *servo.Session, input string) bool {
	switch strings.ToLower(input) {
	case "exit", "quit", "q":
		return true
	case "help":
		fmt.Fprintln(w, shellUsage)
		return false
	case "status":
		fmt.Fprintln(w, angleTable(s.Angles()))
		return false
	case "reset":
		responses, err := s.Center()
		if err != nil {
			fmt.Fprintln(w, errorStyle.Render("Error: "+err.Error()))
			return false
		}
		fmt.Fprintln(w, successStyle.Render("All servos reset to 90°"))
		writeResponses(w, responses)
		return false
	}

	res, err := command.Parse(input)
	if err != nil {
		fmt.Fprintln(w, errorStyle.Render("Error: "+err.Error()))
		fmt.Fprintln(w, dimStyle.Render(`type "help" for the command syntax`))
		return false
	}
	for _, p := range res.Problems {
		fmt.Fprintln(w, warnStyle.Render("skipped "+p.Error()))
	}

	responses, err := s.SetAngles(res.Moves, servo.SendBatch)
	if err != nil {
		fmt.Fprintln(w, errorStyle.Render("Error: "+err.Error()))
		return false
	}
	fmt.Fprintln(w, successStyle.Render("Sent "+describeMoves(res.Moves)))
	writeResponses(w, responses)
	return false
}

func describeMoves(moves []servo.Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = fmt.Sprintf("servo %d -> %d°", m.Channel, m.Angle)
	}
	return strings.Join(parts, ", ")
}
