package vt

import "errors"

// sixelImage captures just the pixel footprint of a decoded Sixel raster.
// Per §1 Non-goals ("image protocols beyond passing Sixel data through as
// opaque payloads"), the emulator never rasterizes to RGBA; it only needs
// enough of the stream to estimate a cell footprint for the tracked object.
type sixelImage struct {
	width, height int // pixel dimensions actually touched by sixel data
}

var errEmptySixel = errors.New("vt: empty sixel payload")

// decodeSixel walks a Sixel byte stream computing its pixel bounding box.
// It intentionally does not materialize pixel colors (Non-goal), unlike the
// teacher's ParseSixel which builds a full RGBA image for screenshotting.
func decodeSixel(data []byte) (*sixelImage, error) {
	if len(data) == 0 {
		return nil, errEmptySixel
	}
	x, y := 0, 0
	maxX, maxY := 0, 0
	i := 0
	for i < len(data) {
		b := data[i]
		i++
		switch {
		case b == '$':
			x = 0
		case b == '-':
			x = 0
			y += 6
		case b == '!':
			count, newI := parseSixelNumber(data, i)
			i = newI
			if i < len(data) && data[i] >= '?' && data[i] <= '~' {
				if count > 0 {
					if x+int(count)-1 > maxX {
						maxX = x + int(count) - 1
					}
					if y+5 > maxY {
						maxY = y + 5
					}
				}
				x += int(count)
				i++
			}
		case b == '#':
			_, newI := parseSixelNumber(data, i)
			i = newI
			for i < len(data) && data[i] == ';' {
				i++
				_, newI := parseSixelNumber(data, i)
				i = newI
			}
		case b == '"':
			for i < len(data) && data[i] != '$' && data[i] != '-' && data[i] != '#' &&
				data[i] != '!' && !(data[i] >= '?' && data[i] <= '~') {
				i++
			}
		case b >= '?' && b <= '~':
			if x > maxX {
				maxX = x
			}
			if y+5 > maxY {
				maxY = y + 5
			}
			x++
		}
	}
	return &sixelImage{width: maxX + 1, height: maxY + 1}, nil
}

func parseSixelNumber(data []byte, i int) (int64, int) {
	var n int64
	for i < len(data) && data[i] >= '0' && data[i] <= '9' {
		n = n*10 + int64(data[i]-'0')
		i++
	}
	return n, i
}

// Sane bounds for estimated cell-pixel metrics; malformed/absent raster
// attributes fall back to a conservative assumption rather than dividing by
// zero or producing an unbounded cell footprint.
const (
	defaultCellPixelWidth  = 10
	defaultCellPixelHeight = 20
	maxSixelCellSpan       = 4096
)

// estimateSixelCells converts a decoded Sixel's pixel footprint to a cell
// footprint by dividing it by the fixed default cell size above (10x20
// pixels), rounding up and clamping to [1, maxSixelCellSpan]. params (the
// DCS introducer's P1;P2;P3) are not used; the body's '"' raster attributes
// (Pan;Pad;Ph;Pv) are skipped by decodeSixel and not used either, and no
// cell metrics advertised by the presentation are consulted.
func estimateSixelCells(img *sixelImage, params []int64) (widthCells, heightCells int) {
	_ = params
	w := (img.width + defaultCellPixelWidth - 1) / defaultCellPixelWidth
	h := (img.height + defaultCellPixelHeight - 1) / defaultCellPixelHeight
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return clampInt(w, 1, maxSixelCellSpan), clampInt(h, 1, maxSixelCellSpan)
}
