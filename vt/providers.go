package vt

import "io"

// ResponseProvider receives bytes the emulator wants written back to the
// workload (DSR/DA reports). Typically wired to the PTY's input side.
type ResponseProvider = io.Writer

// NoopResponse discards all response bytes.
type NoopResponse struct{}

func (NoopResponse) Write(p []byte) (int, error) { return len(p), nil }

// BellProvider is notified on BEL (0x07) outside of an OSC/DCS string.
type BellProvider interface {
	Ring()
}

// NoopBell ignores bell events.
type NoopBell struct{}

func (NoopBell) Ring() {}

// TitleProvider observes window-title and icon-name changes (OSC 0/1/2) and
// the bounded title/icon stack (OSC 22/23).
type TitleProvider interface {
	SetTitle(title string)
	SetIconName(name string)
	PushTitle()
	PopTitle()
}

// NoopTitle ignores all title operations.
type NoopTitle struct{}

func (NoopTitle) SetTitle(string)    {}
func (NoopTitle) SetIconName(string) {}
func (NoopTitle) PushTitle()         {}
func (NoopTitle) PopTitle()          {}

// ClipboardProvider backs OSC 52 clipboard writes. selection is 'c'
// (clipboard) or 'p' (primary); data is already base64-decoded.
type ClipboardProvider interface {
	Write(selection byte, data []byte)
}

// NoopClipboard discards clipboard writes.
type NoopClipboard struct{}

func (NoopClipboard) Write(byte, []byte) {}

var (
	_ BellProvider      = NoopBell{}
	_ TitleProvider     = NoopTitle{}
	_ ClipboardProvider = NoopClipboard{}
)
