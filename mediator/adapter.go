package mediator

// Capabilities mirrors the presentation capability surface §6 names:
// terminal features the mediator and any filters may need to branch on
// (mouse reporting, color depth, alternate screen, sixel, cell pixel
// metrics for mouse-to-cell mapping).
type Capabilities struct {
	Mouse           bool
	Color256        bool
	TrueColor       bool
	AlternateScreen bool
	NativeAltScreen bool
	BracketedPaste  bool
	Sixel           bool
	CellPxW         int
	CellPxH         int
}

// PresentationAdapter is the external contract of §6's "Presentation
// adapter": the human-facing side (a real terminal, a WebSocket client,
// a headless test harness).
type PresentationAdapter interface {
	Size() (width, height int)
	Capabilities() Capabilities

	WriteOutput(b []byte) error
	// ReadInput blocks for the next chunk of input bytes. An empty,
	// nil-error result means EOF (§6).
	ReadInput() ([]byte, error)

	EnterRawMode() error
	ExitRawMode() error
	Flush() error

	// Resized/Disconnected are delivered out-of-band from ReadInput by
	// the adapter implementation (e.g. a SIGWINCH handler or a
	// WebSocket control frame), not polled here.
	Resized() <-chan Size
	Disconnected() <-chan struct{}
}

// Size is a width/height pair, used for Resized events.
type Size struct{ W, H int }

// WorkloadAdapter is the external contract of §6's "Workload adapter":
// the thing producing/consuming terminal bytes on the other side (a PTY
// child process, or an embedded UI application).
type WorkloadAdapter interface {
	// ReadOutput blocks for the next chunk of workload output. An empty
	// result (nil error) is a frame boundary, not EOF (§4.7).
	ReadOutput() ([]byte, error)
	WriteInput(b []byte) error
	Resize(w, h int) error
	Disconnected() <-chan struct{}
}

// UIWorkloadAdapter is implemented by workloads built on this toolkit's
// own widget tree (§6: "plus, for the UI-app workload"), accepting
// structured events instead of raw bytes.
type UIWorkloadAdapter interface {
	WorkloadAdapter
	WriteInputEvent(e any)
	Capabilities() Capabilities
}
