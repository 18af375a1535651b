package vt

import (
	"encoding/base64"
	"strconv"
	"strings"

	"github.com/vtcore/vtcore/token"
)

// applyOsc implements the OSC commands named by §4.2/§6: 0/1/2 (title/icon),
// 8 (hyperlink), 22/23 (title stack), 52 (clipboard write).
func (e *Emulator) applyOsc(o token.OscData) {
	switch o.Command {
	case 0:
		e.setTitle(string(o.Payload))
		e.setIconName(string(o.Payload))
	case 1:
		e.setIconName(string(o.Payload))
	case 2:
		e.setTitle(string(o.Payload))
	case 8:
		e.applyHyperlink(o.Parameters, string(o.Payload))
	case 22:
		e.pushTitle()
	case 23:
		e.popTitle()
	case 52:
		e.applyClipboard(o.Parameters, o.Payload)
	}
}

func (e *Emulator) setTitle(title string) {
	if title == e.title {
		return
	}
	e.title = title
	e.titleObs.SetTitle(title)
}

func (e *Emulator) setIconName(name string) {
	if name == e.iconName {
		return
	}
	e.iconName = name
	e.titleObs.SetIconName(name)
}

func (e *Emulator) pushTitle() {
	if len(e.titleStack) >= titleStackLimit {
		e.titleStack = e.titleStack[1:]
	}
	e.titleStack = append(e.titleStack, titleStackEntry{title: e.title, icon: e.iconName})
	e.titleObs.PushTitle()
}

func (e *Emulator) popTitle() {
	if len(e.titleStack) == 0 {
		return
	}
	top := e.titleStack[len(e.titleStack)-1]
	e.titleStack = e.titleStack[:len(e.titleStack)-1]
	e.setTitle(top.title)
	e.setIconName(top.icon)
	e.titleObs.PopTitle()
}

// applyHyperlink implements OSC 8: "id=..." params open a link with the
// given URI; an empty URI closes the current hyperlink (§4.2).
func (e *Emulator) applyHyperlink(params []string, uri string) {
	if uri == "" {
		e.interner.Release(e.sgr.Hyperlink)
		e.sgr.Hyperlink = nil
		return
	}
	id := ""
	for _, p := range params {
		if strings.HasPrefix(p, "id=") {
			id = strings.TrimPrefix(p, "id=")
		}
	}
	e.interner.Release(e.sgr.Hyperlink) // closing any previously open link
	e.sgr.Hyperlink = e.interner.InternHyperlink(HyperlinkPayload{ID: id, URI: uri})
}

// applyClipboard implements OSC 52 ("c"/"p" selector; base64 payload).
func (e *Emulator) applyClipboard(params []string, payload []byte) {
	selector := byte('c')
	if len(params) > 0 && len(params[0]) > 0 {
		selector = params[0][0]
	}
	if len(payload) == 0 {
		return
	}
	decoded, err := base64.StdEncoding.DecodeString(string(payload))
	if err != nil {
		return
	}
	e.clipboard.Write(selector, decoded)
}

// applyDcs implements the Sixel side of DCS payloads (§4.2): a DCS whose
// params are non-nil (the introducer was followed by 'q') carries Sixel
// raster data. Non-Sixel DCS payloads (nil params) are soft-ignored, as no
// SPEC_FULL.md component names another DCS use.
func (e *Emulator) applyDcs(params []int64, data []byte, impacts *[]Impact) {
	if params == nil {
		return
	}
	img, err := decodeSixel(data)
	if err != nil {
		return
	}
	wCells, hCells := estimateSixelCells(img, params)
	ref := e.interner.InternSixel(SixelPayload{Data: data, WidthInCells: wCells, HeightInCells: hCells})
	e.placeSixel(ref, wCells, hCells, impacts)
}

// placeSixel writes the origin cell (holding the tracked ref) plus the
// remaining footprint cells (carrying only the Sixel attribute bit, per
// §4.2), starting at the cursor.
func (e *Emulator) placeSixel(ref *TrackedRef, wCells, hCells int, impacts *[]Impact) {
	x0, y0 := e.cursor.X, e.cursor.Y
	for dy := 0; dy < hCells; dy++ {
		y := y0 + dy
		if y >= e.height {
			break
		}
		for dx := 0; dx < wCells; dx++ {
			x := x0 + dx
			if x >= e.width {
				break
			}
			c := Cell{Grapheme: " ", Fg: DefaultColor, Bg: DefaultColor, Attrs: AttrSixel, WriteSeq: e.nextWriteSeq()}
			if dx == 0 && dy == 0 {
				e.interner.Retain(ref)
				c.TrackedSixel = ref
			}
			e.writeCell(impacts, x, y, c)
		}
	}
}

// applyDeviceStatusReport implements DSR (CSI n): type 5 replies "OK", type
// 6 replies the cursor position. The response is queued to the workload
// input side via the ResponseProvider.
func (e *Emulator) applyDeviceStatusReport(reportType int) {
	switch reportType {
	case 5:
		e.responses.Write([]byte("\x1b[0n"))
	case 6:
		reply := "\x1b[" + strconv.Itoa(e.cursor.Y+1) + ";" + strconv.Itoa(e.cursor.X+1) + "R"
		e.responses.Write([]byte(reply))
	}
}
