package analysis

import (
	"math"
	"testing"

	"github.com/roametrics/wifi-survey/internal/survey"
)

func at(x, y float64, bssid string, signal int) survey.Measurement {
	return survey.Measurement{
		Location: survey.Location{X: x, Y: y},
		BSSID:    bssid,
		Signal:   signal,
	}
}

func TestDetectHandover_DeduplicatesBSSIDs(t *testing.T) {
	// Two readings of the same AP at one location count as one qualifying
	// AP, so the location is not a handover zone.
	ms := []survey.Measurement{
		at(0, 0, "AA:00", -60),
		at(0, 0, "AA:00", -60),
		at(0, 0, "aa:00", -58), // same AP, different BSSID case
	}

	r := DetectHandover(ms)

	if len(r.Locations) != 1 {
		t.Fatalf("expected 1 location, got %d", len(r.Locations))
	}
	if got := r.Locations[0].QualifyingAPs; got != 1 {
		t.Errorf("QualifyingAPs = %d, want 1", got)
	}
	if r.Locations[0].Handover {
		t.Error("single AP must not form a handover zone")
	}
}

func TestDetectHandover_TwoLocationFloor(t *testing.T) {
	// 10 measurements at (0,0) over APs A:-40, B:-55, C:-90 and 5
	// measurements at (1,0) of A:-72. (0,0) has two qualifying APs, (1,0)
	// has none (-72 is below the -70 threshold).
	var ms []survey.Measurement
	signals := map[string]int{"A": -40, "B": -55, "C": -90}
	order := []string{"A", "B", "C", "A", "B", "C", "A", "B", "C", "A"}
	for _, bssid := range order {
		ms = append(ms, at(0, 0, bssid, signals[bssid]))
	}
	for i := 0; i < 5; i++ {
		ms = append(ms, at(1, 0, "A", -72))
	}

	r := DetectHandover(ms)

	if r.TotalLocations != 2 {
		t.Fatalf("TotalLocations = %d, want 2", r.TotalLocations)
	}
	if r.HandoverLocations != 1 {
		t.Fatalf("HandoverLocations = %d, want 1", r.HandoverLocations)
	}
	if got := r.Coverage(); got != 50.0 {
		t.Errorf("Coverage = %f, want 50.0", got)
	}

	origin := r.Locations[0]
	if !origin.Handover || origin.QualifyingAPs != 2 {
		t.Errorf("(0,0): handover=%v aps=%d, want handover with 2 APs", origin.Handover, origin.QualifyingAPs)
	}

	edge := r.Locations[1]
	if edge.Handover || edge.QualifyingAPs != 0 {
		t.Errorf("(1,0): handover=%v aps=%d, want non-handover with 0 APs", edge.Handover, edge.QualifyingAPs)
	}
	if edge.MeanSignal != -72 {
		t.Errorf("(1,0) MeanSignal = %f, want -72", edge.MeanSignal)
	}
}

func TestDetectHandover_MeanSignalUsesAllMeasurements(t *testing.T) {
	// The per-location mean includes readings below the handover
	// threshold; only the qualifying-AP count filters by it.
	ms := []survey.Measurement{
		at(0, 0, "A", -40),
		at(0, 0, "B", -60),
		at(0, 0, "C", -98),
	}

	r := DetectHandover(ms)

	want := float64(-40-60-98) / 3
	if got := r.Locations[0].MeanSignal; math.Abs(got-want) > 1e-9 {
		t.Errorf("MeanSignal = %f, want %f", got, want)
	}
}

func TestDetectHandover_Empty(t *testing.T) {
	r := DetectHandover(nil)

	if r.TotalLocations != 0 || r.HandoverLocations != 0 {
		t.Errorf("empty input: locations = %d/%d, want 0/0", r.HandoverLocations, r.TotalLocations)
	}
	if got := r.Coverage(); got != 0 {
		t.Errorf("Coverage = %f, want 0", got)
	}
	if _, ok := r.MeanZoneAPs(); ok {
		t.Error("MeanZoneAPs must report no data for an empty floor")
	}
	if _, ok := r.MeanZoneSignal(); ok {
		t.Error("MeanZoneSignal must report no data for an empty floor")
	}
}

func TestDetectHandover_ZoneAggregates(t *testing.T) {
	ms := []survey.Measurement{
		// Zone 1: three qualifying APs at -60.
		at(0, 0, "A", -60), at(0, 0, "B", -60), at(0, 0, "C", -60),
		// Zone 2: two qualifying APs at -50.
		at(1, 1, "A", -50), at(1, 1, "B", -50),
		// Non-zone with one strong AP.
		at(2, 2, "A", -45),
	}

	r := DetectHandover(ms)

	meanAPs, ok := r.MeanZoneAPs()
	if !ok || meanAPs != 2.5 {
		t.Errorf("MeanZoneAPs = %f (ok=%v), want 2.5", meanAPs, ok)
	}
	if got := r.MaxZoneAPs(); got != 3 {
		t.Errorf("MaxZoneAPs = %d, want 3", got)
	}
	meanSignal, ok := r.MeanZoneSignal()
	if !ok || meanSignal != -55 {
		t.Errorf("MeanZoneSignal = %f (ok=%v), want -55", meanSignal, ok)
	}
}

func TestDetectHandover_DeterministicOrder(t *testing.T) {
	ms := []survey.Measurement{
		at(2, 0, "A", -60),
		at(0, 1, "A", -60),
		at(0, 0, "A", -60),
		at(1, 5, "A", -60),
	}

	r := DetectHandover(ms)

	want := []survey.Location{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 5}, {X: 2, Y: 0}}
	for i, loc := range r.Locations {
		if loc.Location != want[i] {
			t.Errorf("location %d = %+v, want %+v", i, loc.Location, want[i])
		}
	}
}
