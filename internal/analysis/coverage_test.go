package analysis

import (
	"testing"

	"github.com/roametrics/wifi-survey/internal/survey"
)

func measurementsWithSignals(signals ...int) []survey.Measurement {
	ms := make([]survey.Measurement, len(signals))
	for i, s := range signals {
		ms[i] = survey.Measurement{
			Location: survey.Location{X: float64(i), Y: 0},
			BSSID:    "AA:BB:CC:DD:EE:FF",
			Signal:   s,
		}
	}
	return ms
}

func TestClassifySignal_Boundaries(t *testing.T) {
	cases := []struct {
		signal int
		want   Quality
	}{
		{-30, Excellent},
		{-49, Excellent},
		{-50, Good}, // exactly on a threshold falls into the lower band
		{-64, Good},
		{-65, Fair},
		{-79, Fair},
		{-80, Poor},
		{-95, Poor},
	}

	for _, tc := range cases {
		if got := ClassifySignal(tc.signal); got != tc.want {
			t.Errorf("ClassifySignal(%d) = %s, want %s", tc.signal, got, tc.want)
		}
	}
}

func TestClassifyCoverage_CountsSumToInput(t *testing.T) {
	ms := measurementsWithSignals(-40, -50, -55, -65, -70, -80, -90, -49, -64, -79)

	c := ClassifyCoverage(ms)

	if sum := c.Excellent + c.Good + c.Fair + c.Poor; sum != len(ms) {
		t.Errorf("band counts sum to %d, want %d", sum, len(ms))
	}
	if c.Total != len(ms) {
		t.Errorf("Total = %d, want %d", c.Total, len(ms))
	}
	if c.Excellent != 2 || c.Good != 3 || c.Fair != 3 || c.Poor != 2 {
		t.Errorf("counts = %d/%d/%d/%d, want 2/3/3/2", c.Excellent, c.Good, c.Fair, c.Poor)
	}
}

func TestClassifyCoverage_Percentages(t *testing.T) {
	c := ClassifyCoverage(measurementsWithSignals(-40, -60, -70, -90))

	var total float64
	for _, q := range []Quality{Excellent, Good, Fair, Poor} {
		pct := c.Percent(q)
		if pct != 25 {
			t.Errorf("Percent(%s) = %f, want 25", q, pct)
		}
		total += pct
	}
	if total != 100 {
		t.Errorf("percentages sum to %f, want 100", total)
	}
}

func TestClassifyCoverage_Empty(t *testing.T) {
	c := ClassifyCoverage(nil)

	if !c.NoData() {
		t.Error("expected NoData for empty input")
	}
	if c.Percent(Excellent) != 0 || c.CoverageScore() != 0 {
		t.Error("empty input must produce zero percentages, not a fault")
	}
}

func TestCoverageScore_ExcludesFairAndPoor(t *testing.T) {
	c := ClassifyCoverage(measurementsWithSignals(-40, -55, -70, -90))

	if got := c.CoverageScore(); got != 50 {
		t.Errorf("CoverageScore = %f, want 50", got)
	}
}
