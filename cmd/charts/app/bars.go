package app

import (
	"fmt"
	"image"
	"image/color"

	"github.com/roametrics/wifi-survey/internal/analysis"
)

const (
	marginTop    = 70
	marginBottom = 60
	marginSide   = 60
	barGap       = 20
)

// bar is one column of a bar chart.
type bar struct {
	label string
	value float64
	color color.Color
}

// drawBars draws a bar panel into the given region of the canvas. Values
// are scaled against max, which also defines the top gridline.
func drawBars(c *canvas, region image.Rectangle, title, unit string, max float64, bars []bar, annotator *Annotator) error {
	if len(bars) == 0 {
		return fmt.Errorf("drawing %q: no bars to draw", title)
	}
	if max <= 0 {
		max = 1
	}

	annotator.Label(region.Min.X+marginSide, region.Min.Y+marginTop-30, title)

	plotWidth := region.Dx() - 2*marginSide
	plotHeight := region.Dy() - marginTop - marginBottom
	baseline := region.Min.Y + marginTop + plotHeight

	// gridlines at quarters of the scale
	for i := 0; i <= 4; i++ {
		y := baseline - i*plotHeight/4
		c.hLine(region.Min.X+marginSide, region.Max.X-marginSide, y, gridColor)
		annotator.Label(region.Min.X+8, y+5, fmt.Sprintf("%.0f%s", max*float64(i)/4, unit))
	}

	barWidth := (plotWidth - barGap*(len(bars)-1)) / len(bars)
	for i, b := range bars {
		x0 := region.Min.X + marginSide + i*(barWidth+barGap)
		h := int(b.value / max * float64(plotHeight))
		if h > plotHeight {
			h = plotHeight
		}

		c.fillRect(x0, baseline-h, x0+barWidth, baseline, b.color)
		annotator.Label(x0, baseline+20, b.label)
		annotator.Label(x0, baseline-h-6, fmt.Sprintf("%.1f%s", b.value, unit))
	}
	return nil
}

// renderBars draws a single titled bar chart filling the whole image.
func renderBars(width, height int, title, unit string, max float64, bars []bar, annotator *Annotator) (*image.RGBA, error) {
	c := newCanvas(width, height)
	annotator.Bind(c.img)
	annotator.SetColor(image.White)
	annotator.Title(marginSide, marginTop-30, title)

	region := image.Rect(0, 30, width, height)
	if err := drawBars(c, region, "", unit, max, bars, annotator); err != nil {
		return nil, err
	}
	return c.img, nil
}

// renderCoverageChart draws the per-band distribution for one floor.
func renderCoverageChart(width, height int, floor string, coverage analysis.Coverage, annotator *Annotator) (*image.RGBA, error) {
	bands := []analysis.Quality{analysis.Excellent, analysis.Good, analysis.Fair, analysis.Poor}
	bars := make([]bar, 0, len(bands))
	for _, q := range bands {
		bars = append(bars, bar{
			label: fmt.Sprintf("%s (%d)", q, coverage.Count(q)),
			value: coverage.Percent(q),
			color: qualityColor(q),
		})
	}
	title := fmt.Sprintf("Coverage quality: %s", floor)
	return renderBars(width, height, title, "%", 100, bars, annotator)
}

// renderEfficiencyChart compares composite efficiency across floors.
func renderEfficiencyChart(width, height int, analyses []analysis.FloorAnalysis, annotator *Annotator) (*image.RGBA, error) {
	bars := make([]bar, 0, len(analyses))
	for _, a := range analyses {
		bars = append(bars, bar{
			label: a.Floor,
			value: a.Scores.Efficiency,
			color: scoreColor(a.Scores.Efficiency),
		})
	}
	return renderBars(width, height, "Network efficiency by floor", "", 100, bars, annotator)
}

// floorComparison is the per-floor row behind the survey comparison
// chart: the counts and means compared side by side across floors.
type floorComparison struct {
	Floor            string
	MeanSignal       float64 // dBm
	Locations        int
	HandoverCoverage float64 // percent
	BSSIDs           int
}

// renderComparisonChart draws the four floor-comparison panels: mean
// signal, surveyed locations, handover coverage and distinct BSSIDs.
func renderComparisonChart(width, height int, rows []floorComparison, annotator *Annotator) (*image.RGBA, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("rendering comparison chart: no floors")
	}

	c := newCanvas(width, height)
	annotator.Bind(c.img)
	annotator.SetColor(image.White)
	annotator.Title(marginSide, 40, "Survey comparison by floor")

	var maxLocations, maxBSSIDs float64
	signals := make([]bar, 0, len(rows))
	locations := make([]bar, 0, len(rows))
	coverage := make([]bar, 0, len(rows))
	bssids := make([]bar, 0, len(rows))
	for _, row := range rows {
		if v := float64(row.Locations); v > maxLocations {
			maxLocations = v
		}
		if v := float64(row.BSSIDs); v > maxBSSIDs {
			maxBSSIDs = v
		}

		// signal bars plot magnitude so a stronger floor reads taller
		signals = append(signals, bar{row.Floor, -row.MeanSignal, signalColor(row.MeanSignal)})
		locations = append(locations, bar{row.Floor, float64(row.Locations), scoreColor(60)})
		coverage = append(coverage, bar{row.Floor, row.HandoverCoverage, scoreColor(row.HandoverCoverage)})
		bssids = append(bssids, bar{row.Floor, float64(row.BSSIDs), scoreColor(60)})
	}

	halfW, halfH := width/2, (height-60)/2
	panels := []struct {
		region image.Rectangle
		title  string
		unit   string
		max    float64
		bars   []bar
	}{
		{image.Rect(0, 60, halfW, 60+halfH), "Mean signal (-dBm, shorter is stronger)", "", 100, signals},
		{image.Rect(halfW, 60, width, 60+halfH), "Surveyed locations", "", maxLocations, locations},
		{image.Rect(0, 60+halfH, halfW, height), "Handover coverage", "%", 100, coverage},
		{image.Rect(halfW, 60+halfH, width, height), "Distinct BSSIDs", "", maxBSSIDs, bssids},
	}
	for _, p := range panels {
		if err := drawBars(c, p.region, p.title, p.unit, p.max, p.bars, annotator); err != nil {
			return nil, err
		}
	}
	return c.img, nil
}
