// Package mediator implements the Terminal Mediator (§4.7): the two
// pumps that move bytes between a presentation adapter and a workload
// adapter, tokenizing and re-serializing through a shared filter chain.
package mediator

import (
	"time"

	"github.com/vtcore/vtcore/token"
	"github.com/vtcore/vtcore/vt"
)

// AppliedToken pairs a token with the cell impacts it produced and the
// cursor position before/after applying it, the richer shape
// presentation-output filters receive per §4.7.
type AppliedToken struct {
	Token   token.Token
	Impacts []vt.Impact
	Before  vt.CursorSnapshot
	After   vt.CursorSnapshot
}

// Filter is the contract both the presentation-input and workload-output
// chains implement (§4.7). Every method is optional: embed NoopFilter to
// satisfy the interface and override only what's needed.
type Filter interface {
	OnSessionStart(w, h int, t time.Time)
	// OnOutput receives workload bytes rendered as applied tokens (richer
	// than plain OnInput's), on the Workload->Presentation pump's general
	// path, and may transform them for subsequent filters in the chain
	// and for re-serialization to the presentation side (§4.7).
	OnOutput(tokens []AppliedToken, elapsed time.Duration) []AppliedToken
	// OnInput receives presentation-side tokens on the Presentation->Workload
	// pump, and may transform them for subsequent filters in the chain.
	OnInput(tokens []token.Token, elapsed time.Duration) []token.Token
	OnResize(w, h int, elapsed time.Duration)
	OnFrameComplete(elapsed time.Duration)
	OnSessionEnd(elapsed time.Duration)
}

// NoopFilter is embedded by filters that only care about a subset of the
// contract, matching the teacher's middleware pattern of providing a
// pass-through base to extend rather than re-implement the whole
// interface each time.
type NoopFilter struct{}

func (NoopFilter) OnSessionStart(int, int, time.Time) {}
func (NoopFilter) OnOutput(tokens []AppliedToken, _ time.Duration) []AppliedToken {
	return tokens
}
func (NoopFilter) OnInput(tokens []token.Token, _ time.Duration) []token.Token {
	return tokens
}
func (NoopFilter) OnResize(int, int, time.Duration)    {}
func (NoopFilter) OnFrameComplete(time.Duration)       {}
func (NoopFilter) OnSessionEnd(time.Duration)          {}

// Chain runs an ordered list of Filters, feeding each one's OnInput
// return value into the next (§4.7: "filters may transform the token
// stream for subsequent filters").
type Chain struct {
	filters []Filter
}

// NewChain returns a Chain over filters, in registration order.
func NewChain(filters ...Filter) *Chain { return &Chain{filters: filters} }

// Len reports how many filters are registered; pumps use this to pick
// the fast path when a chain is empty (§4.7).
func (c *Chain) Len() int { return len(c.filters) }

func (c *Chain) sessionStart(w, h int, t time.Time) {
	for _, f := range c.filters {
		f.OnSessionStart(w, h, t)
	}
}

// output threads tokens through each filter's OnOutput in order, the same
// chained-transform shape as input (§4.7). It also reports whether any
// filter actually swapped in a different slice, so the caller knows
// whether the stream needs re-serializing instead of being forwarded
// verbatim. A filter that returns its input slice unchanged (the NoopFilter
// default, and any filter that only inspects without transforming) is
// detected via slice-header identity rather than a deep token comparison,
// since token.Token itself isn't comparable (it carries a []int64 field).
func (c *Chain) output(tokens []AppliedToken, elapsed time.Duration) ([]AppliedToken, bool) {
	changed := false
	for _, f := range c.filters {
		next := f.OnOutput(tokens, elapsed)
		if !sameAppliedTokenSlice(next, tokens) {
			changed = true
		}
		tokens = next
	}
	return tokens, changed
}

func sameAppliedTokenSlice(a, b []AppliedToken) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}

func (c *Chain) input(tokens []token.Token, elapsed time.Duration) []token.Token {
	for _, f := range c.filters {
		tokens = f.OnInput(tokens, elapsed)
	}
	return tokens
}

func (c *Chain) resize(w, h int, elapsed time.Duration) {
	for _, f := range c.filters {
		f.OnResize(w, h, elapsed)
	}
}

func (c *Chain) frameComplete(elapsed time.Duration) {
	for _, f := range c.filters {
		f.OnFrameComplete(elapsed)
	}
}

func (c *Chain) sessionEnd(elapsed time.Duration) {
	for _, f := range c.filters {
		f.OnSessionEnd(elapsed)
	}
}
