package vt

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vtcore/vtcore/token"
)

// Mode is a bitmask of DEC private modes the emulator tracks directly
// (others pass through as PrivateMode tokens with no dedicated behavior).
type Mode uint32

const (
	ModeOrigin Mode = 1 << iota // DECOM (6)
	ModeNewline
	ModeLeftRightMargin // DECLRMM (69)
	ModeCursorKeys      // DECCKM (1)
	ModeAutoWrap        // DECAWM (7), default on
	ModeInsert          // IRM (4)
)

// Impact records one cell write produced while applying a token, for
// downstream filters/compositor consumption (§4.2 "apply-with-impacts").
type Impact struct {
	X, Y    int
	Cell    Cell
	Removed bool // true when the write cleared a cell (released refs)
}

// CursorSnapshot captures cursor position/visibility before or after a step.
type CursorSnapshot struct {
	X, Y        int
	PendingWrap bool
}

// StepResult is returned by ApplyWithImpacts for one token.
type StepResult struct {
	Before  CursorSnapshot
	After   CursorSnapshot
	Impacts []Impact
}

// Emulator is the stateful VT/ANSI screen model described by §3/§4.2. It
// consumes tokens produced by token.Tokenizer and exposes the resulting
// cell grid to the surface compositor.
type Emulator struct {
	mu sync.Mutex

	width, height int

	primary     *Grid
	alternate   *Grid
	active      *Grid
	altSnapshot *Grid // non-nil while the alternate screen is active

	cursor Cursor
	sgr    SGRState

	modes Mode

	scrollTop, scrollBottom int
	marginLeft, marginRight int

	savedCursor    SavedCursor
	cursorSaved    bool
	altSavedCursor SavedCursor
	altCursorSaved bool

	title      string
	iconName   string
	titleStack []titleStackEntry

	lastPrintedX, lastPrintedY int
	hasLastPrinted             bool

	interner *Interner

	responses ResponseProvider
	bell      BellProvider
	titleObs  TitleProvider
	clipboard ClipboardProvider

	// HandlesAlternateScreenNatively, when true, suppresses emitting clear
	// impacts on alternate-screen enter/exit because the presentation side
	// (e.g. a real terminal) already maintains its own alternate buffer.
	HandlesAlternateScreenNatively bool

	logger *log.Logger

	writeSeq uint64
}

type titleStackEntry struct {
	title, icon string
}

const titleStackLimit = 64

// NewEmulator constructs an Emulator with the given grid dimensions. DECAWM
// (autowrap) is on by default, matching real terminals.
func NewEmulator(width, height int) *Emulator {
	e := &Emulator{
		width:     width,
		height:    height,
		primary:   NewGrid(width, height),
		alternate: NewGrid(width, height),
		sgr:       DefaultSGR,
		modes:     ModeAutoWrap,
		interner:  NewInterner(),
		responses: NoopResponse{},
		bell:      NoopBell{},
		titleObs:  NoopTitle{},
		clipboard: NoopClipboard{},
	}
	e.active = e.primary
	e.resetScrollRegion()
	return e
}

func (e *Emulator) resetScrollRegion() {
	e.scrollTop = 0
	e.scrollBottom = e.height - 1
	e.marginLeft = 0
	e.marginRight = e.width - 1
}

// SetLogger installs a structured logger; nil disables logging (default).
func (e *Emulator) SetLogger(l *log.Logger) { e.logger = l }

// SetResponseProvider wires where DSR/DA replies are written.
func (e *Emulator) SetResponseProvider(p ResponseProvider) {
	if p == nil {
		p = NoopResponse{}
	}
	e.responses = p
}

// SetBellProvider wires the BEL observer.
func (e *Emulator) SetBellProvider(p BellProvider) {
	if p == nil {
		p = NoopBell{}
	}
	e.bell = p
}

// SetTitleProvider wires the title/icon/title-stack observer.
func (e *Emulator) SetTitleProvider(p TitleProvider) {
	if p == nil {
		p = NoopTitle{}
	}
	e.titleObs = p
}

// SetClipboardProvider wires the OSC 52 clipboard-write observer.
func (e *Emulator) SetClipboardProvider(p ClipboardProvider) {
	if p == nil {
		p = NoopClipboard{}
	}
	e.clipboard = p
}

// Grid returns the currently active grid (primary or alternate).
func (e *Emulator) Grid() *Grid {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// Cursor returns the current cursor state.
func (e *Emulator) Cursor() Cursor {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursor
}

// Title returns the current window title and icon name.
func (e *Emulator) Title() (string, string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.title, e.iconName
}

// Interner exposes the tracked-object store, mainly for tests asserting the
// ref-conservation invariant.
func (e *Emulator) Interner() *Interner { return e.interner }

// Apply feeds a single token through the emulator with no impact tracking.
func (e *Emulator) Apply(t token.Token) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.apply(t, nil)
}

// ApplyWithImpacts feeds a single token and returns the cell writes it
// produced along with the cursor before/after, per §4.2.
func (e *Emulator) ApplyWithImpacts(t token.Token) StepResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	res := StepResult{Before: e.cursorSnapshot()}
	var impacts []Impact
	e.apply(t, &impacts)
	res.After = e.cursorSnapshot()
	res.Impacts = impacts
	return res
}

// ApplyAll feeds a batch of tokens with no impact tracking, e.g. directly
// from Tokenizer.Feed.
func (e *Emulator) ApplyAll(tokens []token.Token) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, t := range tokens {
		e.apply(t, nil)
	}
}

func (e *Emulator) cursorSnapshot() CursorSnapshot {
	return CursorSnapshot{X: e.cursor.X, Y: e.cursor.Y, PendingWrap: e.cursor.PendingWrap}
}

// writeCell releases whatever tracked refs the previous occupant of (x,y)
// held, installs c, and records a single impact.
func (e *Emulator) writeCell(impacts *[]Impact, x, y int, c Cell) {
	old := e.active.Cell(x, y)
	releaseCellRefs(e.interner, old)
	e.active.Set(x, y, c)
	if impacts != nil {
		*impacts = append(*impacts, Impact{X: x, Y: y, Cell: c})
	}
}

func (e *Emulator) recordClear(impacts *[]Impact, x, y int) {
	old := e.active.Cell(x, y)
	releaseCellRefs(e.interner, old)
	e.active.Set(x, y, EmptyCell)
	if impacts != nil {
		*impacts = append(*impacts, Impact{X: x, Y: y, Cell: EmptyCell, Removed: true})
	}
}

// apply dispatches one token to its handler. Unknown/unsupported kinds are
// silently ignored per §4.2's soft-failure policy.
func (e *Emulator) apply(t token.Token, impacts *[]Impact) {
	switch t.Kind {
	case token.KindText:
		e.applyText(t.Text, impacts)
	case token.KindControlChar:
		e.applyControlChar(t.Control, impacts)
	case token.KindSgr:
		e.applySgr(t.SgrParams)
	case token.KindCursorPosition:
		e.applyCursorPosition(t.Row, t.Col)
	case token.KindCursorMove:
		e.applyCursorMove(t.Direction, t.Count, impacts)
	case token.KindCursorColumn:
		e.applyCursorColumn(t.Col)
	case token.KindCursorRow:
		e.applyCursorRow(t.Row)
	case token.KindClearScreen:
		e.applyClearScreen(t.ClearMode, impacts)
	case token.KindClearLine:
		e.applyClearLine(t.ClearMode, impacts)
	case token.KindScrollUp:
		e.scrollUp(e.scrollTop, e.scrollBottom, t.Count, impacts)
	case token.KindScrollDown:
		e.scrollDown(e.scrollTop, e.scrollBottom, t.Count, impacts)
	case token.KindInsertLines:
		e.insertLines(t.Count, impacts)
	case token.KindDeleteLines:
		e.deleteLines(t.Count, impacts)
	case token.KindInsertCharacter:
		e.insertCharacters(t.Count, impacts)
	case token.KindDeleteCharacter:
		e.deleteCharacters(t.Count, impacts)
	case token.KindEraseCharacter:
		e.eraseCharacters(t.Count, impacts)
	case token.KindRepeatCharacter:
		e.applyRepeat(t.Count, impacts)
	case token.KindScrollRegion:
		e.applyScrollRegion(t.Top, t.Bottom)
	case token.KindLeftRightMargin:
		e.applyLeftRightMargin(t.Left, t.Right)
	case token.KindSaveCursor:
		e.saveCursor()
	case token.KindRestoreCursor:
		e.restoreCursor()
	case token.KindIndex:
		e.applyIndex(impacts)
	case token.KindReverseIndex:
		e.applyReverseIndex(impacts)
	case token.KindPrivateMode:
		e.applyPrivateMode(t.Mode, t.Enable, impacts)
	case token.KindOsc:
		e.applyOsc(t.Osc)
	case token.KindDcs:
		e.applyDcs(t.DcsParams, t.DcsData, impacts)
	case token.KindDeviceStatusReport:
		e.applyDeviceStatusReport(t.ReportType)
	case token.KindKeypadMode, token.KindCharacterSet, token.KindCursorShape,
		token.KindSgrMouse, token.KindSs3, token.KindSpecialKey,
		token.KindArrowKey, token.KindBackTab, token.KindUnrecognized:
		// No emulator-side state: these are input-direction tokens or
		// presentation hints consumed elsewhere (router, compositor).
	default:
		if e.logger != nil {
			e.logger.Debug("unhandled token kind", "kind", t.Kind)
		}
	}
}

// effectiveLeftMargin/effectiveRightMargin return the active column bounds:
// the full row unless DECLRMM is enabled.
func (e *Emulator) effectiveLeftMargin() int {
	if e.modes&ModeLeftRightMargin != 0 {
		return e.marginLeft
	}
	return 0
}

func (e *Emulator) effectiveRightMargin() int {
	if e.modes&ModeLeftRightMargin != 0 {
		return e.marginRight
	}
	return e.width - 1
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func nowForCell() time.Time { return time.Now() }
