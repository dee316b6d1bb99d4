// Package config loads and saves the servoctl configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/gwillem/servoctl/pkg/serialport"
	"github.com/gwillem/servoctl/pkg/servo"
)

const DefaultConfigFile = "servoctl.toml"

// Defaults for keys missing from the file.
const (
	DefaultStep        = 5
	DefaultHistoryFile = ".servoctl_history"
)

// Config holds the servoctl configuration.
type Config struct {
	Port        string
	BaudRate    int
	Step        int
	HistoryFile string
	Timing      Timing
}

// Timing holds the controller settle delays.
type Timing struct {
	OpenSettle    time.Duration
	CommandSettle time.Duration
}

// fileConfig is the on-disk shape; durations are strings like "2s".
type fileConfig struct {
	Port        string     `toml:"port"`
	BaudRate    int        `toml:"baud_rate"`
	Step        int        `toml:"step"`
	HistoryFile string     `toml:"history_file"`
	Timing      fileTiming `toml:"timing"`
}

type fileTiming struct {
	OpenSettle    string `toml:"open_settle"`
	CommandSettle string `toml:"command_settle"`
}

// DefaultPort returns the usual device path of an Arduino on this platform.
func DefaultPort() string {
	switch runtime.GOOS {
	case "windows":
		return "COM3"
	case "darwin":
		return "/dev/cu.usbmodem1101"
	default:
		return "/dev/ttyUSB0"
	}
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Port:        DefaultPort(),
		BaudRate:    serialport.DefaultBaudRate,
		Step:        DefaultStep,
		HistoryFile: DefaultHistoryFile,
		Timing: Timing{
			OpenSettle:    servo.DefaultOpenSettle,
			CommandSettle: servo.DefaultCommandSettle,
		},
	}
}

// Load loads configuration from path. A missing file yields Default().
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}

	if meta.IsDefined("port") {
		if p := strings.TrimSpace(raw.Port); p != "" {
			cfg.Port = p
		}
	}
	if meta.IsDefined("baud_rate") {
		cfg.BaudRate = raw.BaudRate
	}
	if meta.IsDefined("step") {
		cfg.Step = raw.Step
	}
	if meta.IsDefined("history_file") {
		cfg.HistoryFile = strings.TrimSpace(raw.HistoryFile)
	}
	if meta.IsDefined("timing", "open_settle") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Timing.OpenSettle))
		if err != nil {
			return Config{}, fmt.Errorf("parse timing.open_settle: %w", err)
		}
		cfg.Timing.OpenSettle = d
	}
	if meta.IsDefined("timing", "command_settle") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Timing.CommandSettle))
		if err != nil {
			return Config{}, fmt.Errorf("parse timing.command_settle: %w", err)
		}
		cfg.Timing.CommandSettle = d
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that would make the session unusable.
func (c Config) Validate() error {
	if c.BaudRate <= 0 {
		return fmt.Errorf("baud_rate must be positive, got %d", c.BaudRate)
	}
	if c.Step < 1 || c.Step > 20 {
		return fmt.Errorf("step must be between 1 and 20, got %d", c.Step)
	}
	if c.Timing.OpenSettle < 0 || c.Timing.CommandSettle < 0 {
		return errors.New("timing values must not be negative")
	}
	return nil
}

// Save writes the configuration to path.
func (c Config) Save(path string) error {
	raw := fileConfig{
		Port:        c.Port,
		BaudRate:    c.BaudRate,
		Step:        c.Step,
		HistoryFile: c.HistoryFile,
		Timing: fileTiming{
			OpenSettle:    c.Timing.OpenSettle.String(),
			CommandSettle: c.Timing.CommandSettle.String(),
		},
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(raw); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// Exists returns true if a config file exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
