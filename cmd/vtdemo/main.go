// Command vtdemo is a small, non-interactive tour of the toolkit's core
// pipeline: bytes go in through a Tokenizer, get applied to an Emulator,
// and the resulting grid/cursor state is inspected directly, the same
// shape as a real mediator pump but run here against an in-memory byte
// slice instead of a live adapter.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vtcore/vtcore/asciicast"
	"github.com/vtcore/vtcore/config"
	"github.com/vtcore/vtcore/token"
	"github.com/vtcore/vtcore/vt"
)

func main() {
	cfg := config.Load()
	fmt.Printf("config: click window=%dms, extra renders/tick=%d\n\n",
		cfg.ClickWindowMs, cfg.MaxExtraRendersPerTick)

	const width, height = 40, 6
	emu := vt.NewEmulator(width, height)
	tok := token.NewTokenizer()

	cast, err := newCastRecorder("demo.cast", width, height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "asciicast recorder: %v\n", err)
	}

	script := []string{
		"\x1b]0;vtcore demo\x07", // window title
		"\x1b[31mHello ",         // red
		"\x1b[32mWorld",          // green
		"\x1b[0m!\r\n",           // reset + newline
		"\x1b[1;4mBold and Underlined\x1b[0m\r\n",
		"Normal text\r\n",
		"\x1b[2J\x1b[H", // clear + home
		"After clear",
	}

	start := time.Now()
	for _, chunk := range script {
		tokens := tok.Feed([]byte(chunk))
		emu.ApplyAll(tokens)
		if cast != nil {
			cast.recordOutput(chunk, time.Since(start))
		}
	}
	if cast != nil {
		cast.close()
	}

	fmt.Println("=== Terminal Content ===")
	grid := emu.Grid()
	for y := 0; y < grid.Height(); y++ {
		fmt.Println(rowText(grid.Row(y)))
	}

	title, icon := emu.Title()
	cursor := emu.Cursor()
	fmt.Printf("\nTitle: %q (icon %q)\n", title, icon)
	fmt.Printf("Cursor position: row=%d, col=%d\n", cursor.Y, cursor.X)
}

func rowText(cells []vt.Cell) string {
	var b strings.Builder
	for _, c := range cells {
		if c.IsContinuation() {
			continue
		}
		if c.Grapheme == "" {
			b.WriteByte(' ')
			continue
		}
		b.WriteString(c.Grapheme)
	}
	return strings.TrimRight(b.String(), " ")
}

// castRecorder wraps an asciicast.Writer so main can stay focused on the
// tokenizer/emulator pipeline; failures to open the output file are
// reported but non-fatal, since recording is a demo nicety, not the point.
type castRecorder struct {
	f *os.File
	w *asciicast.Writer
}

func newCastRecorder(path string, width, height int) (*castRecorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := asciicast.NewWriter(f)
	if err := w.WriteHeader(asciicast.Header{
		Width:     width,
		Height:    height,
		Timestamp: time.Now().Unix(),
		Command:   "vtdemo",
	}); err != nil {
		f.Close()
		return nil, err
	}
	return &castRecorder{f: f, w: w}, nil
}

func (c *castRecorder) recordOutput(data string, elapsed time.Duration) {
	_ = c.w.WriteOutput(elapsed.Seconds(), data)
}

func (c *castRecorder) close() {
	c.f.Close()
}
