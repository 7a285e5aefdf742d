package app

import (
	"fmt"
	"image"

	"github.com/roametrics/wifi-survey/internal/analysis"
)

const pointRadius = 6

// planProjection fits survey coordinates to the plot area preserving
// aspect ratio.
type planProjection struct {
	minX, minY float64
	scale      float64
}

func fitPlan(width, height int, locations []analysis.LocationResult) planProjection {
	minX, maxX := locations[0].X, locations[0].X
	minY, maxY := locations[0].Y, locations[0].Y
	for _, loc := range locations {
		if loc.X < minX {
			minX = loc.X
		}
		if loc.X > maxX {
			maxX = loc.X
		}
		if loc.Y < minY {
			minY = loc.Y
		}
		if loc.Y > maxY {
			maxY = loc.Y
		}
	}
	spanX, spanY := maxX-minX, maxY-minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}

	plotWidth := float64(width - 2*marginSide)
	plotHeight := float64(height - marginTop - marginBottom)
	scale := plotWidth / spanX
	if s := plotHeight / spanY; s < scale {
		scale = s
	}
	return planProjection{minX: minX, minY: minY, scale: scale}
}

func (p planProjection) point(x, y float64) (int, int) {
	return marginSide + int((x-p.minX)*p.scale), marginTop + int((y-p.minY)*p.scale)
}

// renderHandoverChart draws the floor's surveyed locations in plan view.
// Handover zones are green, everything else red; a legend carries the
// counts.
func renderHandoverChart(width, height int, floor string, r analysis.HandoverReport, annotator *Annotator) (*image.RGBA, error) {
	if len(r.Locations) == 0 {
		return nil, fmt.Errorf("rendering handover chart for %q: no locations", floor)
	}

	c := newCanvas(width, height)
	annotator.Bind(c.img)
	annotator.SetColor(image.White)
	annotator.Title(marginSide, marginTop-30, fmt.Sprintf("Handover zones: %s", floor))

	proj := fitPlan(width, height, r.Locations)
	for _, loc := range r.Locations {
		x, y := proj.point(loc.X, loc.Y)

		col := nonZoneColor
		if loc.Handover {
			col = zoneColor
		}
		c.fillCircle(x, y, pointRadius, col)
	}

	legendY := height - marginBottom + 20
	c.fillCircle(marginSide+pointRadius, legendY-5, pointRadius, zoneColor)
	annotator.Label(marginSide+3*pointRadius, legendY,
		fmt.Sprintf("handover zone (%d of %d, %.1f%%)", r.HandoverLocations, r.TotalLocations, r.Coverage()))

	c.fillCircle(width/2+pointRadius, legendY-5, pointRadius, nonZoneColor)
	annotator.Label(width/2+3*pointRadius, legendY, "single AP or weak signal")

	return c.img, nil
}

// renderSignalChart draws each surveyed location colored by its mean
// signal on the blue-to-red ramp.
func renderSignalChart(width, height int, floor string, r analysis.HandoverReport, annotator *Annotator) (*image.RGBA, error) {
	if len(r.Locations) == 0 {
		return nil, fmt.Errorf("rendering signal chart for %q: no locations", floor)
	}

	c := newCanvas(width, height)
	annotator.Bind(c.img)
	annotator.SetColor(image.White)
	annotator.Title(marginSide, marginTop-30, fmt.Sprintf("Mean signal: %s", floor))

	proj := fitPlan(width, height, r.Locations)
	for _, loc := range r.Locations {
		x, y := proj.point(loc.X, loc.Y)
		c.fillCircle(x, y, pointRadius, signalColor(loc.MeanSignal))
	}

	// ramp legend along the bottom
	legendY := height - marginBottom + 10
	rampWidth := width - 2*marginSide
	for i := 0; i < rampWidth; i++ {
		dBm := signalFloor + (signalCeiling-signalFloor)*float64(i)/float64(rampWidth-1)
		c.vLine(marginSide+i, legendY, legendY+12, signalColor(dBm))
	}
	annotator.Label(marginSide, legendY+30, fmt.Sprintf("%.0f dBm", signalFloor))
	annotator.Label(width-marginSide-70, legendY+30, fmt.Sprintf("%.0f dBm", signalCeiling))

	return c.img, nil
}
