package loop

import (
	"github.com/vtcore/vtcore/token"
	"github.com/vtcore/vtcore/ui"
)

// KeyChord is one step of a binding sequence: a specific key (rune or
// special code) plus the exact modifier mask it requires.
type KeyChord struct {
	Rune rune
	Code token.KeyCode
	Mods token.Modifiers
}

// BindingTrie holds key-sequence bindings registered on a single node
// (§4.5: "walking the ancestor chain through binding tries, consulting
// prefix-matched key sequences"). Registering the same sequence twice
// overrides the earlier handler rather than erroring, so a widget can
// redeclare its own bindings freely across rebuilds.
type BindingTrie struct {
	root trieNode
}

type trieNode struct {
	children map[KeyChord]*trieNode
	handler  func(ui.KeyEvent) bool
}

func newTrieNode() *trieNode { return &trieNode{children: map[KeyChord]*trieNode{}} }

// Register binds seq (one or more chords, for multi-key sequences like
// "g g") to handler. Later registrations of the same seq replace the
// earlier handler at that exact prefix.
func (t *BindingTrie) Register(seq []KeyChord, handler func(ui.KeyEvent) bool) {
	if t.root.children == nil {
		t.root.children = map[KeyChord]*trieNode{}
	}
	n := &t.root
	for _, ch := range seq {
		next, ok := n.children[ch]
		if !ok {
			next = newTrieNode()
			n.children[ch] = next
		}
		n = next
	}
	n.handler = handler
}

// MatchOne looks up a single-chord binding directly under the root. It is
// the common case the router uses: most bindings are a single keystroke,
// and multi-chord sequences are matched incrementally via a Matcher.
func (t *BindingTrie) MatchOne(ch KeyChord) (handler func(ui.KeyEvent) bool, ok bool) {
	if t.root.children == nil {
		return nil, false
	}
	next, found := t.root.children[ch]
	if !found || next.handler == nil {
		return nil, false
	}
	return next.handler, true
}

// Matcher walks a BindingTrie across successive Feed calls, so multi-chord
// sequences can be matched one keystroke at a time as the event loop
// processes input.
type Matcher struct {
	trie *BindingTrie
	cur  *trieNode
}

// NewMatcher returns a Matcher positioned at trie's root.
func NewMatcher(trie *BindingTrie) *Matcher { return &Matcher{trie: trie} }

// Feed advances the matcher by one chord. matched reports a completed
// binding (handler is non-nil); isPrefix reports that ch continues a
// longer registered sequence and the caller should keep feeding; neither
// true means ch didn't extend any registered sequence from here, and the
// matcher resets to the root.
func (m *Matcher) Feed(ch KeyChord) (handler func(ui.KeyEvent) bool, matched, isPrefix bool) {
	n := m.cur
	if n == nil {
		n = &m.trie.root
	}
	if n.children == nil {
		m.cur = nil
		return nil, false, false
	}
	next, ok := n.children[ch]
	if !ok {
		m.cur = nil
		return nil, false, false
	}
	if next.handler != nil {
		m.cur = nil
		return next.handler, true, false
	}
	m.cur = next
	return nil, false, true
}

// Reset returns the matcher to the trie's root, e.g. after an unrelated
// key breaks a pending multi-chord sequence.
func (m *Matcher) Reset() { m.cur = nil }
