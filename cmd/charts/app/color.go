package app

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/roametrics/wifi-survey/internal/analysis"
)

const (
	hueStart = 236.0 // blue, weakest signal
	hueEnd   = 0.0   // red, strongest signal

	signalFloor   = -100.0 // dBm
	signalCeiling = -40.0  // dBm
)

var (
	backgroundColor = color.RGBA{R: 0x10, G: 0x10, B: 0x14, A: 0xff}
	gridColor       = color.RGBA{R: 0x30, G: 0x30, B: 0x38, A: 0xff}

	zoneColor    = colorful.Hsv(130, 0.85, 0.85) // handover zones
	nonZoneColor = colorful.Hsv(8, 0.85, 0.80)
)

// qualityColor maps a coverage band to its bar color, hottest for the
// strongest band.
func qualityColor(q analysis.Quality) color.Color {
	switch q {
	case analysis.Excellent:
		return colorful.Hsv(130, 0.85, 0.85)
	case analysis.Good:
		return colorful.Hsv(75, 0.85, 0.85)
	case analysis.Fair:
		return colorful.Hsv(40, 0.90, 0.90)
	default:
		return colorful.Hsv(8, 0.85, 0.80)
	}
}

// signalColor maps a dBm reading onto the blue-to-red ramp used by the
// scatter charts. Readings outside the ramp are pinned to its ends.
func signalColor(dBm float64) color.Color {
	span := signalCeiling - signalFloor
	hPerDB := (hueStart - hueEnd) / span

	normalized := dBm - signalFloor
	hue := hueStart - normalized*hPerDB
	hue = math.Min(math.Max(hue, hueEnd), hueStart)

	return colorful.Hsv(hue, 1, 0.90)
}

// scoreColor grades a 0-100 score from red through yellow to green.
func scoreColor(score float64) color.Color {
	score = math.Min(math.Max(score, 0), 100)
	return colorful.Hsv(score/100*130, 0.85, 0.85)
}

// verdictColor maps a validation verdict to its dashboard color.
func verdictColor(v analysis.Verdict) color.Color {
	switch v {
	case analysis.VerdictExcellent:
		return colorful.Hsv(130, 0.85, 0.85)
	case analysis.VerdictGood:
		return colorful.Hsv(75, 0.85, 0.85)
	default:
		return colorful.Hsv(40, 0.90, 0.90)
	}
}
