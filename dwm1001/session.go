package dwm1001

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/looplab/fsm"

	"github.com/acrandal/dwm1001-go/transports"
)

// Session states. A session starts detached (interface mode unknown),
// moves to shell once the prompt has been observed, and ends closed.
const (
	stateDetached = "detached"
	stateBinary   = "binary"
	stateShell    = "shell"
	stateClosed   = "closed"
)

// Session state machine events.
const (
	eventShellSeen  = "shell-seen"
	eventBinarySeen = "binary-seen"
	eventReset      = "reset"
	eventClose      = "close"
)

// pollInterval bounds a single transport read while waiting for output,
// so the prompt scan and the deadline are re-checked regularly.
const pollInterval = 50 * time.Millisecond

// Session owns the serial connection to a DWM1001 node and runs the
// synchronous command/response exchanges of its firmware shell. Exactly
// one command is in flight at a time; a mutex serializes callers that
// share a session across goroutines.
type Session struct {
	mu        sync.Mutex
	transport Transport
	machine   *fsm.FSM
	log       *slog.Logger

	timeout    time.Duration
	resetDelay time.Duration

	// buf holds bytes received but not yet consumed by a prompt match,
	// mirroring how an expect-style reader keeps residue between calls.
	buf bytes.Buffer
}

// NewSession creates a session from the given configuration, opening a
// serial transport when none is supplied. The device's interface mode is
// not probed until Connect.
func NewSession(cfg Config) (*Session, error) {
	cfg.applyDefaults()

	transport := cfg.Transport
	if transport == nil {
		if cfg.Port == "" {
			return nil, errors.New("either Transport or Port must be specified")
		}
		var err error
		transport, err = transports.OpenSerial(transports.SerialConfig{
			Port:     cfg.Port,
			BaudRate: cfg.BaudRate,
			Timeout:  cfg.ShellTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open serial port: %w", err)
		}
	}

	log := cfg.Logger

	machine := fsm.NewFSM(
		stateDetached,
		fsm.Events{
			{Name: eventShellSeen, Src: []string{stateDetached, stateBinary}, Dst: stateShell},
			{Name: eventBinarySeen, Src: []string{stateDetached, stateShell}, Dst: stateBinary},
			{Name: eventReset, Src: []string{stateShell}, Dst: stateBinary},
			{Name: eventClose, Src: []string{stateDetached, stateBinary, stateShell}, Dst: stateClosed},
		},
		fsm.Callbacks{
			"enter_state": func(e *fsm.Event) {
				log.Debug("session state changed", "from", e.Src, "to", e.Dst)
			},
		},
	)

	return &Session{
		transport:  transport,
		machine:    machine,
		log:        log,
		timeout:    cfg.ShellTimeout,
		resetDelay: cfg.ResetDelay,
	}, nil
}

// State reports the session's current state.
func (s *Session) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Current()
}

// Connect brings the device into shell mode. If the device is running its
// binary interface, the shell is started with a double line-end. Fails
// with ErrTimeout when the shell prompt never appears.
func (s *Session) Connect() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.machine.Is(stateClosed) {
		return ErrClosed
	}

	inShell, err := s.inShellModeLocked()
	if err != nil {
		return err
	}
	if inShell {
		s.log.Debug("already in shell mode")
		s.transition(eventShellSeen)
	} else {
		s.log.Debug("not in shell mode, initializing shell")
		s.transition(eventBinarySeen)
		if err := s.enterShellLocked(); err != nil {
			s.log.Warn("connect failed", "err", err)
			return err
		}
	}

	s.clearBufferLocked()
	s.log.Info("connected to DWM1001 shell")
	return nil
}

// Disconnect leaves shell mode. The device is reset rather than sent
// `quit`: quitting the shell with an interrupted command pending makes
// that command resume on the next shell session, which is confusing.
func (s *Session) Disconnect() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.machine.Is(stateClosed) {
		return ErrClosed
	}
	if !s.machine.Is(stateShell) {
		return nil
	}

	s.log.Debug("disconnecting from DWM1001")
	return s.resetLocked()
}

// Reset reboots the device and waits for it to settle. After a reset the
// device is back in its binary interface; call Connect to resume shell use.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resetLocked()
}

// Close releases the underlying transport. It is idempotent, and every
// operation on a closed session fails with ErrClosed without touching
// the wire.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.machine.Is(stateClosed) {
		return nil
	}
	s.transition(eventClose)
	return s.transport.Close()
}

// InShellMode probes which interface the device is running by sending a
// junk byte and a line-end: the binary interface answers with an error
// frame, the shell echoes a prompt. A silent device reads as not-in-shell.
func (s *Session) InShellMode() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.machine.Is(stateClosed) {
		return false, ErrClosed
	}
	return s.inShellModeLocked()
}

// Run performs one synchronous command exchange: transmit the command
// line, then collect output until the shell prompt. The returned text is
// the raw response with the surrounding whitespace and echo line intact
// enough for the per-command parsers to scan.
func (s *Session) Run(cmd ShellCommand, args ...string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runLocked(cmd, args...)
}

// ReadReportLine returns the next full line from the device, used for
// the unsolicited CSV report stream. Fails with ErrTimeout when no line
// arrives within the shell timeout.
func (s *Session) ReadReportLine() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.machine.Is(stateClosed) {
		return "", ErrClosed
	}
	line, _, err := s.expectLocked(s.timeout, "\n")
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r"), nil
}

func (s *Session) runLocked(cmd ShellCommand, args ...string) (string, error) {
	if err := s.requireShellLocked(); err != nil {
		return "", err
	}

	line := string(cmd)
	if len(args) > 0 {
		line += " " + strings.Join(args, " ")
	}

	if err := s.sendLocked(line + "\n"); err != nil {
		return "", err
	}

	out, _, err := s.expectLocked(s.timeout, shellPrompt)
	if err != nil {
		if errors.Is(err, ErrTimeout) {
			s.log.Warn("timeout waiting for shell prompt", "cmd", line)
			return "", fmt.Errorf("command %q: %w", line, ErrTimeout)
		}
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (s *Session) requireShellLocked() error {
	switch {
	case s.machine.Is(stateClosed):
		return ErrClosed
	case !s.machine.Is(stateShell):
		return ErrNotConnected
	}
	return nil
}

func (s *Session) sendLocked(text string) error {
	if s.machine.Is(stateClosed) {
		return ErrClosed
	}

	n, err := s.transport.Write([]byte(text))
	if err != nil {
		return &CommError{Op: "write", Err: err}
	}
	if n != len(text) {
		return &CommError{Op: "write", Err: fmt.Errorf("short write: %d of %d bytes", n, len(text))}
	}
	return nil
}

// expectLocked accumulates device output until one of the patterns is
// seen or the timeout elapses. It returns the text preceding the match
// and the index of the pattern that matched; the match itself and all
// earlier bytes are consumed, later bytes stay buffered for the next call.
func (s *Session) expectLocked(timeout time.Duration, patterns ...string) (string, int, error) {
	deadline := time.Now().Add(timeout)
	chunk := make([]byte, 256)

	for {
		if before, idx, ok := s.consumeLocked(patterns); ok {
			return before, idx, nil
		}
		if time.Now().After(deadline) {
			return "", -1, ErrTimeout
		}

		wait := time.Until(deadline)
		if wait > pollInterval {
			wait = pollInterval
		}
		s.transport.SetReadTimeout(wait)

		n, err := s.transport.Read(chunk)
		if n > 0 {
			s.buf.Write(chunk[:n])
			continue
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return "", -1, &CommError{Op: "read", Err: err}
		}
		// No data yet.
		time.Sleep(time.Millisecond)
	}
}

// consumeLocked scans the receive buffer for the earliest occurrence of
// any pattern.
func (s *Session) consumeLocked(patterns []string) (string, int, bool) {
	data := s.buf.Bytes()

	at, matched := -1, -1
	for i, p := range patterns {
		if j := bytes.Index(data, []byte(p)); j >= 0 && (at == -1 || j < at) {
			at, matched = j, i
		}
	}
	if at < 0 {
		return "", -1, false
	}

	before := string(data[:at])
	s.buf.Next(at + len(patterns[matched]))
	return before, matched, true
}

func (s *Session) inShellModeLocked() (bool, error) {
	if err := s.sendLocked("a" + string(cmdEnter)); err != nil {
		return false, err
	}

	_, matched, err := s.expectLocked(probeTimeout, binaryModeAnswer, shellPrompt)
	if err != nil {
		if errors.Is(err, ErrTimeout) {
			s.log.Warn("timeout while probing for shell mode")
			return false, nil
		}
		return false, err
	}
	return matched == 1, nil
}

func (s *Session) enterShellLocked() error {
	if err := s.sendLocked(string(cmdDoubleEnter)); err != nil {
		return err
	}
	if _, _, err := s.expectLocked(s.timeout, shellPrompt); err != nil {
		if errors.Is(err, ErrTimeout) {
			return fmt.Errorf("entering shell mode: %w", ErrTimeout)
		}
		return err
	}
	s.transition(eventShellSeen)
	return nil
}

func (s *Session) resetLocked() error {
	if err := s.requireShellLocked(); err != nil {
		return err
	}
	if err := s.sendLocked(string(cmdReset) + "\n"); err != nil {
		return err
	}
	time.Sleep(s.resetDelay)
	s.transition(eventReset)
	s.buf.Reset()
	return nil
}

func (s *Session) clearBufferLocked() {
	s.buf.Reset()
	s.transport.Flush()
}

// transition fires a state machine event; an event that is not legal in
// the current state leaves the state untouched.
func (s *Session) transition(event string) {
	if err := s.machine.Event(event); err != nil {
		s.log.Debug("state transition skipped", "event", event, "err", err)
	}
}
