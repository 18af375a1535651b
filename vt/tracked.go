package vt

import "sync"

// TrackedKind distinguishes the two payload families that cells can share.
type TrackedKind uint8

const (
	TrackedSixel TrackedKind = iota
	TrackedHyperlink
)

// SixelPayload is an opaque Sixel image payload interned by the store.
// The data itself is passed through unparsed per the module's scope --
// only the estimated cell footprint is used for grid bookkeeping.
type SixelPayload struct {
	Data          []byte
	WidthInCells  int
	HeightInCells int
}

// HyperlinkPayload is an OSC 8 hyperlink target.
type HyperlinkPayload struct {
	ID  string
	URI string
}

type trackedEntry struct {
	kind     TrackedKind
	key      string
	payload  any
	refcount int
}

// Interner is the reference-counted store for Sixel and hyperlink payloads
// shared across cells (§3 "Tracked object", §9 "Shared payloads"). It is
// interned by payload identity: two writes of the same payload share one
// entry and one growing refcount. Safe for concurrent use; the emulator
// holds it behind its own grid mutex, but callers (e.g. a snapshot reader)
// may query refcounts independently.
type Interner struct {
	mu      sync.Mutex
	nextID  uint64
	byKey   map[string]uint64
	entries map[uint64]*trackedEntry
}

// NewInterner creates an empty tracked-object store.
func NewInterner() *Interner {
	return &Interner{
		byKey:   make(map[string]uint64),
		entries: make(map[uint64]*trackedEntry),
	}
}

func sixelKey(p SixelPayload) string {
	return string(p.Data)
}

func hyperlinkKey(p HyperlinkPayload) string {
	return p.ID + "\x00" + p.URI
}

// InternSixel interns (or finds) a Sixel payload and returns a ref with one
// new refcount already accounted for the caller's cell.
func (in *Interner) InternSixel(p SixelPayload) *TrackedRef {
	return in.intern(TrackedSixel, sixelKey(p), p)
}

// InternHyperlink interns (or finds) a hyperlink payload and returns a ref
// with one new refcount already accounted for the caller's cell.
func (in *Interner) InternHyperlink(p HyperlinkPayload) *TrackedRef {
	return in.intern(TrackedHyperlink, hyperlinkKey(p), p)
}

func (in *Interner) intern(kind TrackedKind, key string, payload any) *TrackedRef {
	in.mu.Lock()
	defer in.mu.Unlock()

	if id, ok := in.byKey[key]; ok {
		in.entries[id].refcount++
		return &TrackedRef{id: id}
	}

	in.nextID++
	id := in.nextID
	in.byKey[key] = id
	in.entries[id] = &trackedEntry{kind: kind, key: key, payload: payload, refcount: 1}
	return &TrackedRef{id: id}
}

// Retain increments the refcount of an existing ref (used when a cell
// holding the ref is copied without being a fresh write, e.g. REP does NOT
// call this -- REP never replicates images/hyperlinks per §4.2).
func (in *Interner) Retain(ref *TrackedRef) {
	if ref == nil {
		return
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	if e, ok := in.entries[ref.id]; ok {
		e.refcount++
	}
}

// Release decrements the refcount and evicts the entry at zero.
func (in *Interner) Release(ref *TrackedRef) {
	if ref == nil {
		return
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	e, ok := in.entries[ref.id]
	if !ok {
		return
	}
	e.refcount--
	if e.refcount <= 0 {
		delete(in.entries, ref.id)
		delete(in.byKey, e.key)
	}
}

// Refcount returns the current refcount for a ref, or 0 if it is unknown
// (already released).
func (in *Interner) Refcount(ref *TrackedRef) int {
	if ref == nil {
		return 0
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	if e, ok := in.entries[ref.id]; ok {
		return e.refcount
	}
	return 0
}

// Sixel returns the SixelPayload behind a ref, if it is one.
func (in *Interner) Sixel(ref *TrackedRef) (SixelPayload, bool) {
	if ref == nil {
		return SixelPayload{}, false
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	e, ok := in.entries[ref.id]
	if !ok || e.kind != TrackedSixel {
		return SixelPayload{}, false
	}
	return e.payload.(SixelPayload), true
}

// Hyperlink returns the HyperlinkPayload behind a ref, if it is one.
func (in *Interner) Hyperlink(ref *TrackedRef) (HyperlinkPayload, bool) {
	if ref == nil {
		return HyperlinkPayload{}, false
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	e, ok := in.entries[ref.id]
	if !ok || e.kind != TrackedHyperlink {
		return HyperlinkPayload{}, false
	}
	return e.payload.(HyperlinkPayload), true
}

// Len returns the number of live tracked objects, for tests that assert
// the ref-conservation invariant drains to zero.
func (in *Interner) Len() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.entries)
}
