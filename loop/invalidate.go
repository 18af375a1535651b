package loop

// Invalidator is the bounded, coalescing invalidation signal of §4.5: any
// number of MarkDirty calls between two consumed ticks collapse into a
// single wakeup. Capacity is exactly one pending tick; a signal arriving
// while one is already pending drops the older one and replaces it, so
// the consumer never falls behind by more than a single coalesced frame.
type Invalidator struct {
	ch chan struct{}
}

// NewInvalidator returns a ready-to-use Invalidator.
func NewInvalidator() *Invalidator {
	return &Invalidator{ch: make(chan struct{}, 1)}
}

// Signal marks the surface dirty. It never blocks.
func (i *Invalidator) Signal() {
	select {
	case i.ch <- struct{}{}:
		return
	default:
	}
	// A tick is already pending: drop it and enqueue the newer one, per
	// the drop-oldest coalescing policy.
	select {
	case <-i.ch:
	default:
	}
	select {
	case i.ch <- struct{}{}:
	default:
	}
}

// C is the channel the event loop selects on.
func (i *Invalidator) C() <-chan struct{} { return i.ch }

// Drain consumes any further pending ticks without blocking, so a single
// render can absorb invalidations that arrived while it was in flight
// (§4.5 "drain additional invalidations that arrived during rendering").
func (i *Invalidator) Drain() {
	for {
		select {
		case <-i.ch:
		default:
			return
		}
	}
}
