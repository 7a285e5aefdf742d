// Package analysis implements the signal-quality classification, handover
// zone detection, efficiency scoring and cross-source validation used by
// every report and chart entry point. All aggregation is an explicit
// group-and-reduce over in-memory measurement sets; each function is a pure
// function of its input plus the fixed threshold constants.
package analysis

import "github.com/roametrics/wifi-survey/internal/survey"

// Classification thresholds in dBm. The handover threshold is independent
// of the four-band table.
const (
	ExcellentThreshold = -50
	GoodThreshold      = -65
	FairThreshold      = -80

	HandoverThreshold = -70
)

// Quality is a coverage band for a single signal reading.
type Quality int

const (
	Excellent Quality = iota
	Good
	Fair
	Poor
)

// String returns the band name as used in reports and chart labels.
func (q Quality) String() string {
	switch q {
	case Excellent:
		return "Excellent"
	case Good:
		return "Good"
	case Fair:
		return "Fair"
	default:
		return "Poor"
	}
}

// ClassifySignal places a signal reading into exactly one band. Bounds are
// half-open: a reading exactly on a threshold falls into the lower band,
// so -50 dBm is Good and -80 dBm is Poor.
func ClassifySignal(dBm int) Quality {
	switch {
	case dBm > ExcellentThreshold:
		return Excellent
	case dBm > GoodThreshold:
		return Good
	case dBm > FairThreshold:
		return Fair
	default:
		return Poor
	}
}

// Coverage holds per-band counts for one measurement set. The four counts
// always sum to Total.
type Coverage struct {
	Excellent int `json:"excellent"`
	Good      int `json:"good"`
	Fair      int `json:"fair"`
	Poor      int `json:"poor"`
	Total     int `json:"total"`
}

// ClassifyCoverage counts measurements per band. An empty input yields
// zero counts; callers must check NoData before using percentages.
func ClassifyCoverage(measurements []survey.Measurement) Coverage {
	var c Coverage
	for _, m := range measurements {
		switch ClassifySignal(m.Signal) {
		case Excellent:
			c.Excellent++
		case Good:
			c.Good++
		case Fair:
			c.Fair++
		case Poor:
			c.Poor++
		}
		c.Total++
	}
	return c
}

// NoData reports whether the set had no classifiable measurements.
func (c Coverage) NoData() bool {
	return c.Total == 0
}

// Count returns the count for one band.
func (c Coverage) Count(q Quality) int {
	switch q {
	case Excellent:
		return c.Excellent
	case Good:
		return c.Good
	case Fair:
		return c.Fair
	default:
		return c.Poor
	}
}

// Percent returns the band's share of the total in percent, 0 when the set
// is empty.
func (c Coverage) Percent(q Quality) float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Count(q)) / float64(c.Total) * 100
}

// CoverageScore is the percentage of measurements classified Excellent or
// Good, 0 when the set is empty.
func (c Coverage) CoverageScore() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Excellent+c.Good) / float64(c.Total) * 100
}
