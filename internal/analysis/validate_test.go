package analysis

import (
	"math"
	"testing"
)

func TestMatchPercent_Symmetry(t *testing.T) {
	pairs := [][2]int{{422, 430}, {1, 1000}, {446, 446}, {7, 3}}

	for _, p := range pairs {
		ab, ba := MatchPercent(p[0], p[1]), MatchPercent(p[1], p[0])
		if ab != ba {
			t.Errorf("MatchPercent(%d,%d) = %f but MatchPercent(%d,%d) = %f", p[0], p[1], ab, p[1], p[0], ba)
		}
		if ab <= 0 || ab > 100 {
			t.Errorf("MatchPercent(%d,%d) = %f out of (0,100]", p[0], p[1], ab)
		}
	}
}

func TestMatchPercent_ZeroCounts(t *testing.T) {
	if got := MatchPercent(0, 0); got != 0 {
		t.Errorf("MatchPercent(0,0) = %f, want 0", got)
	}
	if got := MatchPercent(0, 42); got != 0 {
		t.Errorf("MatchPercent(0,42) = %f, want 0", got)
	}
	if got := MatchPercent(42, 0); got != 0 {
		t.Errorf("MatchPercent(42,0) = %f, want 0", got)
	}
}

func TestCompare(t *testing.T) {
	pi := SourceSummary{Floor: "ground", BSSIDs: 410, Networks: 28, MeanSignal: -56.1}
	acrylic := SourceSummary{Floor: "ground", BSSIDs: 422, Networks: 30, MeanSignal: -55.3}

	c := Compare(pi, acrylic)

	if c.Floor != "ground" {
		t.Errorf("Floor = %q, want %q", c.Floor, "ground")
	}
	wantBSSID := 410.0 / 422.0 * 100
	if math.Abs(c.BSSIDMatch-wantBSSID) > 1e-9 {
		t.Errorf("BSSIDMatch = %f, want %f", c.BSSIDMatch, wantBSSID)
	}
	if math.Abs(c.SignalDiff-0.8) > 1e-9 {
		t.Errorf("SignalDiff = %f, want 0.8", c.SignalDiff)
	}
}

func TestVerdictPolicy(t *testing.T) {
	policy := DefaultVerdictPolicy()

	cases := []struct {
		name string
		c    Comparison
		want Verdict
	}{
		{"tight match", Comparison{SignalDiff: 0.8, BSSIDMatch: 97}, VerdictExcellent},
		{"loose match", Comparison{SignalDiff: 4.2, BSSIDMatch: 85}, VerdictGood},
		{"bad signal", Comparison{SignalDiff: 9.0, BSSIDMatch: 97}, VerdictPartial},
		{"bad detection", Comparison{SignalDiff: 0.5, BSSIDMatch: 60}, VerdictPartial},
		{"on the excellent cutoff", Comparison{SignalDiff: 3.0, BSSIDMatch: 95}, VerdictGood},
	}

	for _, tc := range cases {
		if got := policy.Verdict(tc.c); got != tc.want {
			t.Errorf("%s: verdict = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestAggregateComparisons(t *testing.T) {
	agg := AggregateComparisons([]Comparison{
		{BSSIDMatch: 90, NetworkMatch: 80, SignalDiff: 1},
		{BSSIDMatch: 100, NetworkMatch: 100, SignalDiff: 3},
	})

	if agg.BSSIDMatch != 95 || agg.NetworkMatch != 90 || agg.SignalDiff != 2 {
		t.Errorf("aggregate = %+v, want 95/90/2", agg)
	}

	if got := AggregateComparisons(nil); got != (Comparison{}) {
		t.Errorf("empty aggregate = %+v, want zero value", got)
	}
}
