// Package loop implements the Event Loop & Input Router (§4.5) and
// Click-Count Detection (§4.6): a single-threaded cooperative scheduler
// that multiplexes presentation input, invalidation, and animation
// timers, and routes resolved key/mouse events through a focus ring and
// binding tries.
package loop

import (
	"time"

	"github.com/vtcore/vtcore/token"
)

const clickWindow = 500 * time.Millisecond

// ClickCounter tracks (last_time, last_x, last_y, last_button,
// current_count) per §4.6. A mouse-down within clickWindow, the same
// button, and within Threshold cells of the previous down increments the
// count (capped at 3); anything else resets to 1. Tracking state updates
// unconditionally on every call.
type ClickCounter struct {
	// Threshold is the max cell distance (Chebyshev) between two downs
	// still counted as the same spot: 0 for strict, 1 for relaxed.
	Threshold int

	lastTime   time.Time
	lastX, lastY int
	lastButton token.MouseButton
	count      int
	hasLast    bool
}

// OnDown records a mouse-down at (x, y) with the given button at time now,
// and returns the resulting click count (1, 2, or 3).
func (c *ClickCounter) OnDown(button token.MouseButton, x, y int, now time.Time) int {
	if c.hasLast && button == c.lastButton &&
		now.Sub(c.lastTime) <= clickWindow &&
		chebyshev(x-c.lastX, y-c.lastY) <= c.Threshold {
		c.count++
		if c.count > 3 {
			c.count = 3
		}
	} else {
		c.count = 1
	}

	c.lastTime, c.lastX, c.lastY, c.lastButton, c.hasLast = now, x, y, button, true
	return c.count
}

func chebyshev(dx, dy int) int {
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}
