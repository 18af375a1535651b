// Package asciicast reads and writes the asciicast v2 recording format
// (§6): a JSON header line followed by newline-delimited JSON event
// arrays.
package asciicast

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
)

// EventCode identifies what an event line records.
type EventCode string

const (
	EventOutput EventCode = "o"
	EventInput  EventCode = "i"
	EventResize EventCode = "r"
	EventMarker EventCode = "m"
)

// Header is the first line of an asciicast v2 file.
type Header struct {
	Version       int               `json:"version"`
	Width         int               `json:"width"`
	Height        int               `json:"height"`
	Timestamp     int64             `json:"timestamp,omitempty"`
	Duration      float64           `json:"duration,omitempty"`
	Title         string            `json:"title,omitempty"`
	Command       string            `json:"command,omitempty"`
	IdleTimeLimit float64           `json:"idle_time_limit,omitempty"`
	Env           map[string]string `json:"env,omitempty"`
	Theme         *Theme            `json:"theme,omitempty"`
}

// Theme is the optional color-theme header field.
type Theme struct {
	Foreground string   `json:"fg,omitempty"`
	Background string   `json:"bg,omitempty"`
	Palette    []string `json:"palette,omitempty"`
}

// Event is one recorded frame: a timestamp in seconds since session
// start, an EventCode, and its payload (terminal bytes for "o"/"i",
// "WxH" for "r", free text for "m").
type Event struct {
	Time float64
	Code EventCode
	Data string
}

// Writer emits a valid asciicast v2 stream. Times are rounded to 6
// decimal places, and output is UTF-8 without a BOM, newline-delimited,
// per §6.
type Writer struct {
	w       *bufio.Writer
	started bool
}

// NewWriter wraps w. Call WriteHeader exactly once before any WriteEvent.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteHeader emits h.Version defaulted to 2 if zero.
func (wr *Writer) WriteHeader(h Header) error {
	if h.Version == 0 {
		h.Version = 2
	}
	line, err := json.Marshal(h)
	if err != nil {
		return err
	}
	if _, err := wr.w.Write(line); err != nil {
		return err
	}
	if err := wr.w.WriteByte('\n'); err != nil {
		return err
	}
	wr.started = true
	return wr.w.Flush()
}

// WriteEvent appends one event line. It is an error to call this before
// WriteHeader.
func (wr *Writer) WriteEvent(e Event) error {
	if !wr.started {
		return fmt.Errorf("asciicast: WriteEvent called before WriteHeader")
	}
	rounded := math.Round(e.Time*1e6) / 1e6
	line, err := json.Marshal([]any{rounded, string(e.Code), e.Data})
	if err != nil {
		return err
	}
	if _, err := wr.w.Write(line); err != nil {
		return err
	}
	if err := wr.w.WriteByte('\n'); err != nil {
		return err
	}
	return wr.w.Flush()
}

// WriteOutput is a convenience wrapper for the common "o" event.
func (wr *Writer) WriteOutput(t float64, data string) error {
	return wr.WriteEvent(Event{Time: t, Code: EventOutput, Data: data})
}

// WriteInput is a convenience wrapper for the common "i" event.
func (wr *Writer) WriteInput(t float64, data string) error {
	return wr.WriteEvent(Event{Time: t, Code: EventInput, Data: data})
}

// WriteResize is a convenience wrapper for the "r" event, formatting
// "WxH" itself.
func (wr *Writer) WriteResize(t float64, w, h int) error {
	return wr.WriteEvent(Event{
		Time: t, Code: EventResize,
		Data: strconv.Itoa(w) + "x" + strconv.Itoa(h),
	})
}
