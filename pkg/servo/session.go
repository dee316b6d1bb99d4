package servo

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"

	"github.com/gwillem/servoctl/pkg/serialport"
)

// Settle delays of the controller.
const (
	// DefaultOpenSettle covers the board reset that opening the port triggers.
	DefaultOpenSettle = 2 * time.Second
	// DefaultCommandSettle gives the board time to act on a command and answer.
	DefaultCommandSettle = 100 * time.Millisecond
)

// Sleeper blocks the calling goroutine. clock.Clock satisfies it.
type Sleeper interface {
	Sleep(d time.Duration)
}

// SessionConfig holds configuration for a Session.
type SessionConfig struct {
	// Logger receives debug traces of the traffic. Zero value logs nothing.
	Logger zerolog.Logger

	// Clock performs the settle delays. Default is the wall clock.
	Clock Sleeper

	// Open opens the link. Default is serialport.Open.
	Open func(serialport.Config) (*serialport.Link, error)

	// OpenSettle is the wait after opening the port. Default is 2 seconds.
	OpenSettle time.Duration

	// CommandSettle is the wait after each command. Default is 100ms.
	CommandSettle time.Duration

	// ReadTimeout bounds every serial read. Default is 1 second.
	ReadTimeout time.Duration
}

// Session is a stateful connection to the servo controller plus the
// last angle commanded on each channel.
//
// Every call runs to completion on the calling goroutine, settle delays included.
// The mutex only lets a signal handler disconnect after the step in flight.
type Session struct {
	mu     sync.Mutex
	link   *serialport.Link
	angles [NumChannels]int

	open          func(serialport.Config) (*serialport.Link, error)
	clock         Sleeper
	log           zerolog.Logger
	openSettle    time.Duration
	commandSettle time.Duration
	readTimeout   time.Duration
}

// NewSession creates a disconnected session with every channel at center.
func NewSession(cfg SessionConfig) *Session {
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if cfg.Open == nil {
		cfg.Open = serialport.Open
	}
	if cfg.OpenSettle == 0 {
		cfg.OpenSettle = DefaultOpenSettle
	}
	if cfg.CommandSettle == 0 {
		cfg.CommandSettle = DefaultCommandSettle
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = serialport.DefaultReadTimeout
	}

	s := &Session{
		open:          cfg.Open,
		clock:         cfg.Clock,
		log:           cfg.Logger,
		openSettle:    cfg.OpenSettle,
		commandSettle: cfg.CommandSettle,
		readTimeout:   cfg.ReadTimeout,
	}
	for ch := range s.angles {
		s.angles[ch] = CenterAngle
	}
	return s
}

// Connect opens the link, waits for the board to reset and returns its startup banner.
// Connecting an already connected session fails with ErrAlreadyConnected.
func (s *Session) Connect(port string, baud int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.link != nil {
		return nil, ErrAlreadyConnected
	}

	link, err := s.open(serialport.Config{
		Port:        port,
		BaudRate:    baud,
		ReadTimeout: s.readTimeout,
	})
	if err != nil {
		return nil, &ConnectError{Port: port, Err: err}
	}

	s.clock.Sleep(s.openSettle)

	banner, err := link.ReadAvailableLines()
	if err != nil {
		link.Close()
		return nil, &ConnectError{Port: port, Err: err}
	}

	s.link = link
	s.log.Debug().Str("port", port).Int("baud", baud).Strs("banner", banner).Msg("connected")
	return banner, nil
}

// Disconnect closes the link. It returns false if the session was not connected.
func (s *Session) Disconnect() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.link == nil {
		return false
	}
	if err := s.dropLocked(); err != nil {
		s.log.Warn().Err(err).Msg("close failed")
	}
	return true
}

// dropLocked forgets the link and returns the error from closing it.
func (s *Session) dropLocked() error {
	port := s.link.PortName()
	err := s.link.Close()
	s.link = nil
	s.log.Debug().Str("port", port).Msg("disconnected")
	return err
}

// IsConnected reports whether the session holds an open link.
func (s *Session) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.link != nil
}

// Port returns the device path of the open link, or "" when disconnected.
func (s *Session) Port() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.link == nil {
		return ""
	}
	return s.link.PortName()
}

// Angles returns the last commanded angle of every channel.
// These are what the session sent, not what the hardware reports.
func (s *Session) Angles() [NumChannels]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.angles
}

// Angle returns the last commanded angle of one channel, or -1 for an unknown channel.
func (s *Session) Angle(channel int) int {
	if channel < MinChannel || channel > MaxChannel {
		return -1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.angles[channel]
}

// SetAngle moves one channel.
func (s *Session) SetAngle(channel, angle int) ([]string, error) {
	return s.SetAngles([]Move{{Channel: channel, Angle: angle}}, SendSingle)
}

// Center moves every channel to CenterAngle in one batch.
func (s *Session) Center() ([]string, error) {
	return s.SetAngles(CenterMoves(), SendBatch)
}

// SetAngles validates every move, sends them as one command line and returns
// whatever the board printed within the settle delay.
//
// With SendSingle only the first move is sent and recorded, even when more are given.
// Nothing is sent unless every move is valid.
func (s *Session) SetAngles(moves []Move, mode SendMode) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.link == nil {
		return nil, ErrNotConnected
	}
	if err := Validate(moves); err != nil {
		return nil, err
	}

	line := Encode(moves, mode)
	if err := s.link.WriteLine(line); err != nil {
		s.handleIOErrorLocked(err)
		return nil, err
	}
	for _, m := range Sent(moves, mode) {
		s.angles[m.Channel] = m.Angle
	}

	s.clock.Sleep(s.commandSettle)

	responses, err := s.link.ReadAvailableLines()
	if err != nil {
		s.handleIOErrorLocked(err)
		return responses, err
	}

	s.log.Debug().Str("line", line).Str("mode", mode.String()).Strs("responses", responses).Msg("sent")
	return responses, nil
}

// handleIOErrorLocked drops the link if err means the device is gone.
// The caller reports err, so it is logged at debug only.
func (s *Session) handleIOErrorLocked(err error) {
	if !serialport.IsDisconnect(err) {
		s.log.Debug().Err(err).Msg("serial i/o failed")
		return
	}
	s.log.Debug().Err(err).Msg("controller went away")
	if err := s.dropLocked(); err != nil {
		s.log.Debug().Err(err).Msg("close failed")
	}
}
