package loop

import (
	"context"
	"time"

	"github.com/vtcore/vtcore/surface"
	"github.com/vtcore/vtcore/ui"
)

// InputEvent is the union the presentation side feeds into the loop: one
// of Key or Mouse is set (mirroring how the tokenizer resolves one
// terminal escape sequence to one structured event).
type InputEvent struct {
	Key   *ui.KeyEvent
	Mouse *ui.MouseEvent
}

// EventLoop is the single-threaded cooperative scheduler of §4.5: it
// multiplexes presentation input, a coalescing invalidation signal, and
// timers, and drives one Root.RunFrame per render.
type EventLoop struct {
	Input      <-chan InputEvent
	Invalidate *Invalidator
	Timers     *TimerQueue
	Router     *Router
	Root       *ui.Root
	Surface    *surface.Surface

	// Emit is called with the diff bytes produced by each render; the
	// mediator (§4.7) is expected to forward them to the presentation
	// adapter's output pump.
	Emit func([]byte)

	// Now defaults to time.Now; overridable for deterministic tests.
	Now func() time.Time

	// MaxExtraRenders bounds how many additional renders a single wakeup
	// may trigger while draining coalesced invalidations (§4.5's
	// "bounded extra-renders" step), preventing a pathological input
	// storm from starving timer delivery.
	MaxExtraRenders int

	available ui.Rect
}

// SetAvailable updates the rect RunFrame lays the root out against,
// called whenever the presentation side resizes (§4.5/§4.7).
func (l *EventLoop) SetAvailable(r ui.Rect) { l.available = r }

// Run executes the loop until ctx is cancelled. Each iteration: fires any
// due timers, waits for input/invalidation/the next timer deadline/ctx
// cancellation, processes exactly one input event (if that's what woke
// it), renders once, then drains and absorbs any further coalesced
// invalidations up to MaxExtraRenders before returning to the top.
func (l *EventLoop) Run(ctx context.Context) error {
	now := l.Now
	if now == nil {
		now = time.Now
	}

	for {
		for _, t := range l.Timers.PopDue(now()) {
			t.Fire()
		}

		var waitCh <-chan time.Time
		if due, ok := l.Timers.NextDue(); ok {
			d := due.Sub(now())
			if d < 0 {
				d = 0
			}
			timer := time.NewTimer(d)
			defer timer.Stop()
			waitCh = timer.C
		}

		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-l.Input:
			l.handle(ev, now())
			l.renderAndDrain(now)

		case <-l.Invalidate.C():
			l.renderAndDrain(now)

		case <-waitCh:
			// A timer fired; loop back around to the PopDue step.
		}
	}
}

func (l *EventLoop) handle(ev InputEvent, now time.Time) {
	switch {
	case ev.Key != nil:
		l.Router.RouteKey(*ev.Key)
	case ev.Mouse != nil:
		l.Router.RouteMouse(l.Root.RootNode(), *ev.Mouse, now)
	}
}

func (l *EventLoop) renderAndDrain(now func() time.Time) {
	l.render()

	extra := l.MaxExtraRenders
	for extra > 0 {
		select {
		case <-l.Invalidate.C():
			l.render()
			extra--
		default:
			return
		}
	}
	// Any invalidations still queued past the bound are absorbed into the
	// next loop iteration's wait, per §4.5: no work is lost, it is merely
	// deferred by one tick.
}

func (l *EventLoop) render() {
	rc := l.Surface.BeginFrame()
	l.Root.RunFrame(rc, l.available)
	out := l.Surface.EndFrame()
	if len(out) > 0 && l.Emit != nil {
		l.Emit(out)
	}
}
