package app

import (
	"fmt"
	"image"

	"github.com/roametrics/wifi-survey/internal/analysis"
)

// renderValidationChart draws the cross-source dashboard: per-floor BSSID
// and network match percentages, per-floor signal differences, and a
// verdict panel graded by the given policy.
func renderValidationChart(width, height int, comparisons []analysis.Comparison, policy analysis.VerdictPolicy, annotator *Annotator) (*image.RGBA, error) {
	if len(comparisons) == 0 {
		return nil, fmt.Errorf("rendering validation chart: no comparisons")
	}

	c := newCanvas(width, height)
	annotator.Bind(c.img)
	annotator.SetColor(image.White)
	annotator.Title(marginSide, 40, "Cross-source validation")

	var maxDiff float64
	bssidMatch := make([]bar, 0, len(comparisons))
	networkMatch := make([]bar, 0, len(comparisons))
	signalDiff := make([]bar, 0, len(comparisons))
	for _, cmp := range comparisons {
		if cmp.SignalDiff > maxDiff {
			maxDiff = cmp.SignalDiff
		}
		bssidMatch = append(bssidMatch, bar{cmp.Floor, cmp.BSSIDMatch, scoreColor(cmp.BSSIDMatch)})
		networkMatch = append(networkMatch, bar{cmp.Floor, cmp.NetworkMatch, scoreColor(cmp.NetworkMatch)})
		signalDiff = append(signalDiff, bar{cmp.Floor, cmp.SignalDiff, signalColor(signalCeiling - cmp.SignalDiff)})
	}
	// headroom so the tallest diff bar stays under its value label
	diffScale := maxDiff * 1.25
	if diffScale < 1 {
		diffScale = 1
	}

	halfW, halfH := width/2, (height-60)/2
	panels := []struct {
		region image.Rectangle
		title  string
		unit   string
		max    float64
		bars   []bar
	}{
		{image.Rect(0, 60, halfW, 60+halfH), "BSSID match", "%", 100, bssidMatch},
		{image.Rect(halfW, 60, width, 60+halfH), "Network match", "%", 100, networkMatch},
		{image.Rect(0, 60+halfH, halfW, height), "Mean signal difference (dBm)", "", diffScale, signalDiff},
	}
	for _, p := range panels {
		if err := drawBars(c, p.region, p.title, p.unit, p.max, p.bars, annotator); err != nil {
			return nil, err
		}
	}

	drawVerdictPanel(c, image.Rect(halfW, 60+halfH, width, height), comparisons, policy, annotator)
	return c.img, nil
}

// drawVerdictPanel stacks one verdict line per floor plus the aggregate.
func drawVerdictPanel(c *canvas, region image.Rectangle, comparisons []analysis.Comparison, policy analysis.VerdictPolicy, annotator *Annotator) {
	x := region.Min.X + marginSide
	y := region.Min.Y + marginTop - 30
	annotator.Label(x, y, "Verdicts")

	lineHeight := annotator.LineHeight()
	y += 2 * lineHeight
	for _, cmp := range comparisons {
		verdict := policy.Verdict(cmp)
		annotator.SetColor(verdictColor(verdict))
		annotator.Label(x, y, fmt.Sprintf("%s: %s", cmp.Floor, verdict))
		y += lineHeight
	}

	agg := analysis.AggregateComparisons(comparisons)
	verdict := policy.Verdict(agg)
	y += lineHeight
	annotator.SetColor(verdictColor(verdict))
	annotator.Label(x, y, fmt.Sprintf("overall: %s", verdict))
	annotator.SetColor(image.White)
}
