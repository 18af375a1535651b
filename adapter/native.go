package adapter

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/term"

	"github.com/vtcore/vtcore/mediator"
)

// NativeAdapter implements mediator.PresentationAdapter directly over the
// process's own stdin/stdout, the usual "run vtcore as your terminal
// multiplexer" case. Raw-mode enter/exit and SIGWINCH-driven resize
// follow the same shape as the teacher's internal/term package.
type NativeAdapter struct {
	in   *os.File
	out  *os.File
	caps mediator.Capabilities

	mu       sync.Mutex
	oldState *term.State

	sigCh        chan os.Signal
	resized      chan mediator.Size
	disconnected chan struct{}
	closeOnce    sync.Once
}

// NewNativeAdapter wraps stdin/stdout. caps should reflect whatever the
// caller has already detected about the real terminal (color depth,
// mouse support, etc.) since this adapter does no capability probing of
// its own.
func NewNativeAdapter(in, out *os.File, caps mediator.Capabilities) *NativeAdapter {
	a := &NativeAdapter{
		in:           in,
		out:          out,
		caps:         caps,
		sigCh:        make(chan os.Signal, 1),
		resized:      make(chan mediator.Size, 1),
		disconnected: make(chan struct{}),
	}
	signal.Notify(a.sigCh, syscall.SIGWINCH)
	go a.watchResize()
	return a
}

func (a *NativeAdapter) watchResize() {
	for {
		select {
		case <-a.sigCh:
			w, h, err := term.GetSize(int(a.out.Fd()))
			if err != nil || w <= 0 || h <= 0 {
				continue
			}
			select {
			case a.resized <- mediator.Size{W: w, H: h}:
			default:
			}
		case <-a.disconnected:
			signal.Stop(a.sigCh)
			return
		}
	}
}

func (a *NativeAdapter) Size() (width, height int) {
	w, h, err := term.GetSize(int(a.out.Fd()))
	if err != nil {
		return 0, 0
	}
	return w, h
}

func (a *NativeAdapter) Capabilities() mediator.Capabilities { return a.caps }

func (a *NativeAdapter) WriteOutput(b []byte) error {
	_, err := a.out.Write(b)
	return err
}

// ReadInput reads one chunk directly from stdin; an io.EOF (hangup) is
// translated into an empty, nil-error result per §6's ReadInput contract
// and also marks the adapter disconnected.
func (a *NativeAdapter) ReadInput() ([]byte, error) {
	buf := make([]byte, 4096)
	n, err := a.in.Read(buf)
	if err != nil {
		a.markDisconnected()
		return nil, nil
	}
	return buf[:n], nil
}

func (a *NativeAdapter) markDisconnected() {
	a.closeOnce.Do(func() { close(a.disconnected) })
}

// EnterRawMode puts stdin into raw mode, mirroring
// internal/term.EnableRawMode: disables echo and line buffering so the
// tokenizer sees every byte, including control characters, unprocessed.
func (a *NativeAdapter) EnterRawMode() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	state, err := term.MakeRaw(int(a.in.Fd()))
	if err != nil {
		return err
	}
	a.oldState = state
	return nil
}

// ExitRawMode restores the terminal to the state captured by
// EnterRawMode, a no-op if raw mode was never entered.
func (a *NativeAdapter) ExitRawMode() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.oldState == nil {
		return nil
	}
	err := term.Restore(int(a.in.Fd()), a.oldState)
	a.oldState = nil
	return err
}

func (a *NativeAdapter) Flush() error { return nil }

func (a *NativeAdapter) Resized() <-chan mediator.Size { return a.resized }

func (a *NativeAdapter) Disconnected() <-chan struct{} { return a.disconnected }
