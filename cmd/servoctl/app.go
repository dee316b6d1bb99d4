package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"

	"github.com/gwillem/servoctl/pkg/config"
	"github.com/gwillem/servoctl/pkg/logging"
	"github.com/gwillem/servoctl/pkg/servo"
)

// exit is os.Exit; tests replace it.
var exit = os.Exit

// app is the state shared by the commands that talk to the controller.
type app struct {
	cfg     config.Config
	log     zerolog.Logger
	clock   servo.Sleeper
	session *servo.Session

	ctx     context.Context
	cancel  context.CancelFunc
	logFile *os.File

	closeOnce sync.Once

	mu      sync.Mutex
	release func() // hands the terminal back; set while a widget owns it
}

func newApp() (*app, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, err
	}
	if opts.Baud != 0 {
		cfg.BaudRate = opts.Baud
	}

	var out io.Writer
	var logFile *os.File
	if opts.LogFile != "" {
		logFile, err = os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out = logFile
	}

	logger, err := logging.New(logging.Options{
		Level:   opts.LogLevel,
		Output:  out,
		NoColor: logFile != nil,
	})
	if err != nil {
		if logFile != nil {
			logFile.Close()
		}
		return nil, err
	}

	clk := clock.New()
	ctx, cancel := context.WithCancel(context.Background())
	return &app{
		cfg:   cfg,
		log:   logger,
		clock: clk,
		session: servo.NewSession(servo.SessionConfig{
			Logger:        logger,
			Clock:         clk,
			OpenSettle:    cfg.Timing.OpenSettle,
			CommandSettle: cfg.Timing.CommandSettle,
		}),
		ctx:     ctx,
		cancel:  cancel,
		logFile: logFile,
	}, nil
}

// portFor picks the serial port: first argument, then --port, then the config
// file, then the platform default.
func (a *app) portFor(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if opts.Port != "" {
		return opts.Port
	}
	if a.cfg.Port != "" {
		return a.cfg.Port
	}
	return config.DefaultPort()
}

func (a *app) connect(port string) error {
	fmt.Printf("Connecting to controller on %s...\n", port)

	banner, err := a.session.Connect(port, a.cfg.BaudRate)
	if err != nil {
		a.log.Error().Err(err).Str("port", port).Msg("connect failed")
		return err
	}

	a.log.Info().Str("port", port).Int("baud", a.cfg.BaudRate).Msg("connected")
	fmt.Println(successStyle.Render("Connected!"))
	printResponses(banner)
	return nil
}

// watchSignals disconnects and exits on SIGINT/SIGTERM. A command in flight
// finishes first because close waits for the session.
func (a *app) watchSignals() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		a.interrupt(<-ch)
	}()
}

// ownTerminal registers release as the way to give the terminal back while a
// raw-mode widget runs. The returned func unregisters it.
func (a *app) ownTerminal(release func()) func() {
	a.mu.Lock()
	a.release = release
	a.mu.Unlock()
	return func() {
		a.mu.Lock()
		a.release = nil
		a.mu.Unlock()
	}
}

// interrupt restores the terminal if a widget holds it, then disconnects and exits.
func (a *app) interrupt(sig os.Signal) {
	a.log.Info().Str("signal", sig.String()).Msg("interrupted")

	a.mu.Lock()
	release := a.release
	a.release = nil
	a.mu.Unlock()
	if release != nil {
		release()
	}

	fmt.Println()
	a.close()
	exit(0)
}

// close disconnects exactly once, whichever exit path gets here first.
func (a *app) close() {
	a.closeOnce.Do(func() {
		a.cancel()
		if a.session.Disconnect() {
			a.log.Info().Msg("disconnected")
			fmt.Println("Connection closed.")
		}
		if a.logFile != nil {
			a.logFile.Close()
		}
	})
}

// runConnected connects, runs fn and always disconnects afterwards.
func runConnected(args []string, fn func(a *app) error) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	a.watchSignals()

	if err := a.connect(a.portFor(args)); err != nil {
		return err
	}
	return fn(a)
}
