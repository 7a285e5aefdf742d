package analysis

import (
	"math"
	"testing"

	"github.com/roametrics/wifi-survey/internal/survey"
)

func TestComputeScores_EmptyFloor(t *testing.T) {
	s := ComputeScores(ClassifyCoverage(nil), DetectHandover(nil))

	// No zones: handover and density are 0, zone signal pinned to -100 dBm
	// maps to a 0 signal quality score, so the composite is 0.
	if s.Handover != 0 || s.SignalQuality != 0 || s.Density != 0 {
		t.Errorf("sub-scores = %f/%f/%f, want 0/0/0", s.Handover, s.SignalQuality, s.Density)
	}
	if s.Efficiency != 0 {
		t.Errorf("Efficiency = %f, want 0", s.Efficiency)
	}
}

func TestComputeScores_SignalQualityMapping(t *testing.T) {
	cases := []struct {
		signal int
		want   float64
	}{
		{-100, 0},
		{-75, 50},
		{-50, 100},
		{-40, 100}, // clamped at the top
	}

	for _, tc := range cases {
		ms := []survey.Measurement{
			at(0, 0, "A", tc.signal),
			at(0, 0, "B", tc.signal),
		}
		s := ComputeScores(ClassifyCoverage(ms), DetectHandover(ms))
		if tc.signal <= HandoverThreshold {
			// Not a zone, falls back to the worst-case mapping.
			if s.SignalQuality != 0 {
				t.Errorf("signal %d: SignalQuality = %f, want 0 (no zones)", tc.signal, s.SignalQuality)
			}
			continue
		}
		if s.SignalQuality != tc.want {
			t.Errorf("signal %d: SignalQuality = %f, want %f", tc.signal, s.SignalQuality, tc.want)
		}
	}
}

func TestComputeScores_DensitySaturates(t *testing.T) {
	// 25 distinct strong APs at one location: density saturates at 20.
	var ms []survey.Measurement
	for i := 0; i < 25; i++ {
		ms = append(ms, at(0, 0, string(rune('A'+i)), -55))
	}

	s := ComputeScores(ClassifyCoverage(ms), DetectHandover(ms))

	if s.Density != 100 {
		t.Errorf("Density = %f, want 100", s.Density)
	}
}

func TestComputeScores_MonotonicInHandoverCoverage(t *testing.T) {
	// Fix zone composition (two APs at -60 per zone) and grow the share of
	// handover locations; efficiency must never decrease.
	build := func(zones, nonZones int) []survey.Measurement {
		var ms []survey.Measurement
		for i := 0; i < zones; i++ {
			ms = append(ms, at(float64(i), 0, "A", -60), at(float64(i), 0, "B", -60))
		}
		for i := 0; i < nonZones; i++ {
			ms = append(ms, at(float64(i), 1, "A", -60))
		}
		return ms
	}

	const total = 10
	prev := math.Inf(-1)
	for zones := 1; zones <= total; zones++ {
		ms := build(zones, total-zones)
		s := ComputeScores(ClassifyCoverage(ms), DetectHandover(ms))
		if s.Efficiency < prev {
			t.Fatalf("%d zones: efficiency %f dropped below %f", zones, s.Efficiency, prev)
		}
		prev = s.Efficiency
	}
}

func TestComputeScores_Bounds(t *testing.T) {
	sets := [][]survey.Measurement{
		nil,
		measurementsWithSignals(-200, -200), // pathological input
		{at(0, 0, "A", -10), at(0, 0, "B", -10)},
	}

	for i, ms := range sets {
		s := ComputeScores(ClassifyCoverage(ms), DetectHandover(ms))
		for name, v := range map[string]float64{
			"Coverage":      s.Coverage,
			"Handover":      s.Handover,
			"SignalQuality": s.SignalQuality,
			"Density":       s.Density,
			"Efficiency":    s.Efficiency,
		} {
			if v < 0 || v > 100 {
				t.Errorf("set %d: %s = %f out of [0,100]", i, name, v)
			}
		}
	}
}

func TestComputeScores_Weights(t *testing.T) {
	// One location, two APs at -60: handover 100, signal quality
	// (-60+100)*2 = 80, density 2/20*100 = 10.
	ms := []survey.Measurement{at(0, 0, "A", -60), at(0, 0, "B", -60)}

	s := ComputeScores(ClassifyCoverage(ms), DetectHandover(ms))

	want := 0.4*100 + 0.3*80 + 0.3*10
	if math.Abs(s.Efficiency-want) > 1e-9 {
		t.Errorf("Efficiency = %f, want %f", s.Efficiency, want)
	}
}
