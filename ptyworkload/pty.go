// Package ptyworkload is the native PTY helper referenced in §6: opens a
// master PTY, forks a shell (or arbitrary command) as its child, and
// exposes the raw byte stream as a mediator.WorkloadAdapter.
package ptyworkload

import (
	"os"
	"os/exec"
	"os/user"
	"strings"
	"sync"

	"github.com/creack/pty"
)

// Session is one spawned child process attached to a PTY.
type Session struct {
	cmd *exec.Cmd
	pty *os.File

	mu sync.Mutex

	disc     chan struct{}
	discOnce sync.Once
}

// Options configures Start; Command/Args default to the caller's login
// shell when left zero-valued.
type Options struct {
	Command string
	Args    []string
	Dir     string
	Env     []string
	Cols    uint16
	Rows    uint16
}

// Start forks Options.Command (or the user's shell) with the slave side
// of a new PTY as its controlling terminal, per §6's "Native PTY helper"
// contract: the parent receives the master file and the child's pid
// (exposed here as Session.Pid).
func Start(opts Options) (*Session, error) {
	shell := opts.Command
	if shell == "" {
		shell = loginShell()
	}

	cmd := exec.Command(shell, opts.Args...)
	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}
	if opts.Env != nil {
		cmd.Env = opts.Env
	}

	cols, rows := opts.Cols, opts.Rows
	if cols == 0 {
		cols = 80
	}
	if rows == 0 {
		rows = 24
	}

	master, err := pty.StartWithSize(cmd, &pty.Winsize{Cols: cols, Rows: rows})
	if err != nil {
		return nil, err
	}

	s := &Session{cmd: cmd, pty: master, disc: make(chan struct{})}
	go func() {
		cmd.Wait()
		s.discOnce.Do(func() { close(s.disc) })
	}()
	return s, nil
}

func loginShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		if _, err := os.Stat(shell); err == nil {
			return shell
		}
	}
	if u, err := user.Current(); err == nil {
		if shell := shellFromPasswd(u.Username); shell != "" {
			return shell
		}
	}
	for _, candidate := range []string{"/bin/bash", "/bin/zsh", "/bin/sh"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return "/bin/sh"
}

// shellFromPasswd reads /etc/passwd looking for username's configured
// shell, the same fallback the teacher's shell-discovery uses.
func shellFromPasswd(username string) string {
	data, err := os.ReadFile("/etc/passwd")
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Split(line, ":")
		if len(fields) >= 7 && fields[0] == username {
			return fields[6]
		}
	}
	return ""
}

// Pid returns the child process's pid.
func (s *Session) Pid() int { return s.cmd.Process.Pid }

// ReadOutput satisfies mediator.WorkloadAdapter: reads one chunk of child
// output. An empty result with a nil error signals a frame boundary, not
// EOF — any error from the underlying PTY read, including io.EOF once the
// child exits, is returned as (nil, nil); the end of the session is
// reported through Disconnected instead.
func (s *Session) ReadOutput() ([]byte, error) {
	buf := make([]byte, 4096)
	n, err := s.pty.Read(buf)
	if err != nil {
		return nil, nil
	}
	return buf[:n], nil
}

// WriteInput satisfies mediator.WorkloadAdapter.
func (s *Session) WriteInput(b []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.pty.Write(b)
	return err
}

// Resize sets TIOCSWINSZ on the master, per §6.
func (s *Session) Resize(w, h int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pty.Setsize(s.pty, &pty.Winsize{Cols: uint16(w), Rows: uint16(h)})
}

// Disconnected closes once the child process exits.
func (s *Session) Disconnected() <-chan struct{} { return s.disc }

// Close terminates the child (if still running) and releases the master.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd.Process != nil {
		s.cmd.Process.Kill()
	}
	return s.pty.Close()
}
