package asciicast

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// Reader parses an asciicast v2 stream, tolerating malformed event lines
// rather than failing the whole read (§6: "reader tolerates and ignores
// events with fewer than 3 elements").
type Reader struct {
	scanner *bufio.Scanner
	header  Header
	read    bool
}

// NewReader parses r's header line immediately, since every consumer
// needs width/height before processing events.
func NewReader(r io.Reader) (*Reader, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("asciicast: empty stream, no header line")
	}

	var h Header
	if err := json.Unmarshal(scanner.Bytes(), &h); err != nil {
		return nil, fmt.Errorf("asciicast: invalid header: %w", err)
	}

	return &Reader{scanner: scanner, header: h}, nil
}

// Header returns the parsed header.
func (r *Reader) Header() Header { return r.header }

// Next returns the next event, or io.EOF once the stream is exhausted.
// Lines that fail to parse as a JSON array, or that have fewer than 3
// elements, are skipped rather than surfaced as errors.
func (r *Reader) Next() (Event, error) {
	for r.scanner.Scan() {
		line := r.scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var raw []json.RawMessage
		if err := json.Unmarshal(line, &raw); err != nil || len(raw) < 3 {
			continue
		}

		var t float64
		var code, data string
		if err := json.Unmarshal(raw[0], &t); err != nil {
			continue
		}
		if err := json.Unmarshal(raw[1], &code); err != nil {
			continue
		}
		if err := json.Unmarshal(raw[2], &data); err != nil {
			continue
		}

		return Event{Time: t, Code: EventCode(code), Data: data}, nil
	}
	if err := r.scanner.Err(); err != nil {
		return Event{}, err
	}
	return Event{}, io.EOF
}

// ReadAll drains every remaining event.
func (r *Reader) ReadAll() ([]Event, error) {
	var events []Event
	for {
		e, err := r.Next()
		if err == io.EOF {
			return events, nil
		}
		if err != nil {
			return events, err
		}
		events = append(events, e)
	}
}
