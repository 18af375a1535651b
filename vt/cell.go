package vt

import "time"

// Attrs is a bitset of cell rendering attributes.
type Attrs uint16

const (
	AttrBold Attrs = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrReverse
	AttrHidden
	AttrStrikethrough
	AttrOverline
	AttrSixel // cell inside a tracked Sixel image's footprint, origin included
)

// Has reports whether all bits of flag are set.
func (a Attrs) Has(flag Attrs) bool { return a&flag == flag }

// TrackedRef is a handle a Cell holds into the tracked-object interner.
// It identifies the interned payload without the cell owning a strong
// reference; refcounting is the interner's job (see tracked.go).
type TrackedRef struct {
	id uint64
}

// Cell is an immutable value: the smallest addressable grid unit.
// The empty cell has grapheme " ", no colors, no attrs.
type Cell struct {
	Grapheme string // "" marks a wide-char continuation cell
	Fg       Color
	Bg       Color
	Attrs    Attrs
	WriteSeq uint64
	WrittenAt time.Time

	TrackedSixel     *TrackedRef
	TrackedHyperlink *TrackedRef
}

// EmptyCell is the zero-content cell written by clears/resizes.
var EmptyCell = Cell{Grapheme: " ", Fg: DefaultColor, Bg: DefaultColor}

// IsContinuation reports whether this cell is the trailing half of a
// wide grapheme (empty grapheme, write_seq shared with its origin).
func (c Cell) IsContinuation() bool {
	return c.Grapheme == ""
}
