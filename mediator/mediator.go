package mediator

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vtcore/vtcore/loop"
	"github.com/vtcore/vtcore/token"
	"github.com/vtcore/vtcore/vt"
)

// frameBoundarySleep is how long the Workload->Presentation pump rests on
// an empty read before polling again, to avoid busy-waiting (§4.7).
const frameBoundarySleep = 4 * time.Millisecond

// Mediator wires a PresentationAdapter and a WorkloadAdapter together
// through the two pumps described in §4.7, applying workload output to a
// shared vt.Emulator for snapshot fidelity and running both directions
// through an optional Filter chain.
type Mediator struct {
	Presentation PresentationAdapter
	Workload     WorkloadAdapter

	// UIEvents, if non-nil, receives converted input events instead of
	// raw bytes being forwarded to Workload — set this when Workload is
	// a UIWorkloadAdapter (§4.7's "UI-app workload" branch).
	UIEvents chan<- loop.InputEvent

	InputFilters  *Chain
	OutputFilters *Chain

	Emulator *vt.Emulator
	Logger   *log.Logger

	start      time.Time
	serializer token.Serializer
}

// Run starts both pumps and blocks until both have returned. Each pump
// returns when its own adapter disconnects, reports EOF or a read/write
// error, or stop is closed; one pump returning does not stop the other. It
// always performs the mandatory shutdown sequence before returning,
// regardless of which side triggered the exit.
func (m *Mediator) Run(stop <-chan struct{}) error {
	m.start = time.Now()
	w, h := m.Presentation.Size()

	if m.InputFilters != nil {
		m.InputFilters.sessionStart(w, h, m.start)
	}
	if m.OutputFilters != nil {
		m.OutputFilters.sessionStart(w, h, m.start)
	}

	errCh := make(chan error, 2)
	go func() { errCh <- m.pumpPresentationToWorkload(stop) }()
	go func() { errCh <- m.pumpWorkloadToPresentation(stop) }()

	var firstErr error
	for range 2 {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
		}
	}

	elapsed := time.Since(m.start)
	if m.InputFilters != nil {
		m.InputFilters.sessionEnd(elapsed)
	}
	if m.OutputFilters != nil {
		m.OutputFilters.sessionEnd(elapsed)
	}

	if shutdownErr := m.shutdownSequence(); shutdownErr != nil && firstErr == nil {
		firstErr = shutdownErr
	}
	return firstErr
}

// shutdownSequence emits, in mandatory order, mouse-disable, attribute
// reset, cursor-show, and alternate-screen-exit, then exits raw mode
// (§4.7: "this order is mandatory to avoid leaking inverted attributes or
// mouse reports to the parent shell").
func (m *Mediator) shutdownSequence() error {
	seq := []byte{}
	seq = append(seq, []byte("\x1b[?1000l\x1b[?1002l\x1b[?1003l\x1b[?1006l")...) // mouse-disable
	seq = append(seq, []byte("\x1b[0m")...)                                     // attribute reset
	seq = append(seq, []byte("\x1b[?25h")...)                                   // cursor-show
	seq = append(seq, []byte("\x1b[?1049l")...)                                 // alternate-screen-exit

	if err := m.Presentation.WriteOutput(seq); err != nil {
		if exitErr := m.Presentation.ExitRawMode(); exitErr != nil {
			return errors.Join(err, exitErr)
		}
		return err
	}
	if err := m.Presentation.Flush(); err != nil {
		return err
	}
	return m.Presentation.ExitRawMode()
}

// pumpPresentationToWorkload reads presentation input, tokenizes it
// incrementally, dispatches OnInput filters, and either forwards converted
// high-level events (UI-app workload) or the raw bytes as-is (raw
// workload) per §4.7.
func (m *Mediator) pumpPresentationToWorkload(stop <-chan struct{}) error {
	tk := token.NewTokenizer()
	for {
		select {
		case <-stop:
			return nil
		case <-m.Presentation.Disconnected():
			return nil
		default:
		}

		b, err := m.Presentation.ReadInput()
		if err != nil {
			return err
		}
		if len(b) == 0 {
			return nil // EOF per §6
		}

		toks := tk.Feed(b)
		if m.InputFilters != nil && m.InputFilters.Len() > 0 {
			toks = m.InputFilters.input(toks, time.Since(m.start))
		}

		if m.UIEvents != nil {
			for _, t := range toks {
				for _, ev := range TokenToInputEvents(t) {
					select {
					case m.UIEvents <- ev:
					case <-stop:
						return nil
					}
				}
			}
			continue
		}

		if err := m.Workload.WriteInput(b); err != nil {
			return err
		}
	}
}

// pumpWorkloadToPresentation reads workload output, treats an empty read
// as a frame boundary, and otherwise tokenizes the bytes and runs either
// the fast path (no filters: apply for snapshot fidelity, forward bytes
// verbatim) or the general path (notify filters, apply with impacts, then
// forward or re-serialize) per §4.7.
func (m *Mediator) pumpWorkloadToPresentation(stop <-chan struct{}) error {
	tk := token.NewTokenizer()
	for {
		select {
		case <-stop:
			return nil
		case <-m.Workload.Disconnected():
			return nil
		default:
		}

		b, err := m.Workload.ReadOutput()
		if err != nil {
			return err
		}

		if len(b) == 0 {
			elapsed := time.Since(m.start)
			if m.OutputFilters != nil {
				m.OutputFilters.frameComplete(elapsed)
			}
			time.Sleep(frameBoundarySleep)
			continue
		}

		toks := tk.Feed(b)

		if m.OutputFilters == nil || m.OutputFilters.Len() == 0 {
			m.applyFastPath(toks)
			if err := m.Presentation.WriteOutput(b); err != nil {
				return err
			}
			continue
		}

		if err := m.applyGeneralPath(toks, b); err != nil {
			return err
		}
	}
}

// applyFastPath applies tokens to the shared emulator for snapshot
// fidelity only; impacts are discarded since no filter consumes them.
func (m *Mediator) applyFastPath(toks []token.Token) {
	if m.Emulator == nil {
		return
	}
	m.Emulator.ApplyAll(toks)
}

// applyGeneralPath applies each token with impacts, builds the richer
// AppliedToken view for OnOutput, and decides whether to forward the
// original bytes or re-serialize the (possibly filter-transformed) token
// stream, per §4.7.
func (m *Mediator) applyGeneralPath(toks []token.Token, original []byte) error {
	elapsed := time.Since(m.start)

	var applied []AppliedToken
	if m.Emulator != nil {
		for _, t := range toks {
			result := m.Emulator.ApplyWithImpacts(t)
			applied = append(applied, AppliedToken{
				Token: t, Impacts: result.Impacts, Before: result.Before, After: result.After,
			})
		}
	} else {
		for _, t := range toks {
			applied = append(applied, AppliedToken{Token: t})
		}
	}

	transformed, changed := m.OutputFilters.output(applied, elapsed)
	if !changed {
		// No filter swapped in a different token stream: the original
		// bytes are byte-for-byte faithful and cheaper to forward than
		// re-serializing.
		return m.Presentation.WriteOutput(original)
	}

	out := make([]byte, 0, len(original))
	for _, at := range transformed {
		out = append(out, m.serializer.Encode(at.Token)...)
	}
	return m.Presentation.WriteOutput(out)
}
