// Package ptytest drives a terminal program inside a pseudo terminal so
// tests can type into it and wait for rendered text.
package ptytest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"
)

const (
	defaultWidth  = 120
	defaultHeight = 32
	pollInterval  = 20 * time.Millisecond
)

// Config describes the program to start.
type Config struct {
	Command []string
	Dir     string
	Env     []string
	Width   int
	Height  int
}

// Session is a running program attached to a pseudo terminal.
type Session struct {
	cmd     *exec.Cmd
	ptmx    *os.File
	started time.Time

	mu     sync.Mutex
	output bytes.Buffer

	readDone chan struct{}
	waitErr  chan error
}

// Start launches cfg.Command in a pseudo terminal. The program is killed
// when ctx is done.
func Start(ctx context.Context, cfg Config) (*Session, error) {
	if len(cfg.Command) == 0 {
		return nil, errors.New("ptytest: command is required")
	}
	width, height := cfg.Width, cfg.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	cmd := exec.CommandContext(ctx, cfg.Command[0], cfg.Command[1:]...)
	cmd.Dir = cfg.Dir
	cmd.Env = buildEnv(cfg.Env)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(height), Cols: uint16(width)})
	if err != nil {
		return nil, fmt.Errorf("ptytest: start program: %w", err)
	}

	s := &Session{
		cmd:      cmd,
		ptmx:     ptmx,
		started:  time.Now(),
		readDone: make(chan struct{}),
		waitErr:  make(chan error, 1),
	}
	go s.read()
	go func() { s.waitErr <- cmd.Wait() }()
	return s, nil
}

func (s *Session) read() {
	defer close(s.readDone)
	responder := newQueryResponder(s.ptmx)
	buf := make([]byte, 4096)
	for {
		n, err := s.ptmx.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			responder.Process(chunk)
			s.mu.Lock()
			s.output.Write(chunk)
			s.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// Send writes raw input to the program.
func (s *Session) Send(input ...[]byte) error {
	for _, in := range input {
		if _, err := s.ptmx.Write(in); err != nil {
			return fmt.Errorf("ptytest: write input: %w", err)
		}
	}
	return nil
}

// Type sends text followed by Enter.
func (s *Session) Type(text string) error {
	return s.Send([]byte(text), KeyEnter)
}

// Plain returns everything rendered so far with escape sequences removed.
func (s *Session) Plain() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return stripANSI(strings.ReplaceAll(s.output.String(), "\r", ""))
}

// WaitFor blocks until text appears in the rendered output.
func (s *Session) WaitFor(text string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if strings.Contains(s.Plain(), text) {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("ptytest: %q not rendered within %s", text, timeout)
		}
		select {
		case err := <-s.waitErr:
			s.waitErr <- err
			if strings.Contains(s.Plain(), text) {
				return nil
			}
			return fmt.Errorf("ptytest: program exited before %q was rendered: %v", text, err)
		case <-time.After(pollInterval):
		}
	}
}

// Wait waits for the program to exit and returns the recording. An exit
// caused by an interrupt counts as success.
func (s *Session) Wait(timeout time.Duration) (*Recording, error) {
	var exitErr error
	select {
	case exitErr = <-s.waitErr:
	case <-time.After(timeout):
		_ = s.cmd.Process.Kill()
		exitErr = fmt.Errorf("ptytest: program still running after %s", timeout)
	}
	_ = s.ptmx.Close()
	<-s.readDone

	if exitErr != nil && !strings.Contains(exitErr.Error(), "signal: interrupt") {
		var ee *exec.ExitError
		if !errors.As(exitErr, &ee) || ee.ExitCode() != 0 {
			return s.recording(), exitErr
		}
	}
	return s.recording(), nil
}

func (s *Session) recording() *Recording {
	s.mu.Lock()
	raw := append([]byte(nil), s.output.Bytes()...)
	s.mu.Unlock()
	return &Recording{Raw: raw, Frames: parseFrames(raw), Duration: time.Since(s.started)}
}

func buildEnv(extra []string) []string {
	env := append(os.Environ(), extra...)
	for _, entry := range env {
		if strings.HasPrefix(entry, "TERM=") {
			return env
		}
	}
	return append(env, "TERM=xterm-256color")
}

var (
	KeyEnter = []byte{'\r'}
	KeyCtrlC = []byte{3}
	KeyCtrlS = []byte{19}
	KeyEsc   = []byte{27}
)
