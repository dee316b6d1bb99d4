// Package logging builds the zerolog logger shared by servoctl commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

const (
	EnvLogLevel   = "SERVOCTL_LOG_LEVEL"
	EnvLogNoColor = "SERVOCTL_LOG_NOCOLOR"
)

// DefaultLevel keeps the terminal quiet while a TUI owns it.
const DefaultLevel = zerolog.WarnLevel

// Options configures New.
type Options struct {
	// Level is a level name ("debug", "info", ...). Empty means DefaultLevel.
	Level string
	// Output receives log lines. Nil means stderr.
	Output io.Writer
	// NoColor disables ANSI colors.
	NoColor bool
}

// New returns a console logger tagged with app=servoctl.
// SERVOCTL_LOG_LEVEL and SERVOCTL_LOG_NOCOLOR override the options.
func New(opts Options) (zerolog.Logger, error) {
	level := DefaultLevel
	if opts.Level != "" {
		lvl, ok := ParseLevel(opts.Level)
		if !ok {
			return zerolog.Nop(), fmt.Errorf("unknown log level %q", opts.Level)
		}
		level = lvl
	}
	if lvl, ok := ParseLevel(os.Getenv(EnvLogLevel)); ok {
		level = lvl
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	noColor := opts.NoColor || !isTerminal(out)
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		noColor = v
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Str("app", "servoctl").Logger(), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ParseLevel maps a level name to a zerolog level.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return DefaultLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return DefaultLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
