package token

import (
	"bytes"
	"strconv"
)

// splitSixelParams splits a DCS payload "P1;P2;P3q<data>" into its numeric
// parameters and the raw data following the 'q' introducer. Payloads that
// are not Sixel (no 'q' before any non-digit/';' byte) return a nil params
// slice and the payload verbatim as data, which the VT emulator's DCS
// handler treats as an opaque, non-Sixel DCS.
func splitSixelParams(payload []byte) ([]int64, []byte) {
	for i, b := range payload {
		switch {
		case b >= '0' && b <= '9', b == ';':
			continue
		case b == 'q':
			return splitParams(payload[:i]), append([]byte(nil), payload[i+1:]...)
		default:
			return nil, append([]byte(nil), payload...)
		}
	}
	return nil, append([]byte(nil), payload...)
}

// splitOscCommand splits an OSC payload "N;rest" into its leading numeric
// command and the remaining bytes (still containing any further `;`
// separated parameters).
func splitOscCommand(payload []byte) (int, []byte) {
	idx := bytes.IndexByte(payload, ';')
	if idx < 0 {
		n, _ := strconv.Atoi(string(payload))
		return n, nil
	}
	n, _ := strconv.Atoi(string(payload[:idx]))
	return n, payload[idx+1:]
}

// splitOscParams splits the remainder of an OSC payload into `;`-separated
// string parameters and trailing raw payload: the last `;` field is the
// payload and any fields before it are the parameters. A single field (the
// title of OSC 0/1/2) therefore comes back as the payload with no
// parameters; OSC 8 has a `params` segment (e.g. "id=42") plus a URI; OSC 52
// has a clipboard selector plus base64 payload. The emulator's OSC handler
// interprets the parameters for its specific command.
func splitOscParams(rest []byte) ([]string, []byte) {
	if rest == nil {
		return nil, nil
	}
	parts := bytes.Split(rest, []byte(";"))
	params := make([]string, len(parts))
	for i, p := range parts {
		params[i] = string(p)
	}
	if len(params) > 0 {
		return params[:len(params)-1], []byte(params[len(params)-1])
	}
	return nil, rest
}
