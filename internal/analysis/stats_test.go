package analysis

import (
	"math"
	"testing"

	"github.com/roametrics/wifi-survey/internal/survey"
)

func TestComputeSignalStats(t *testing.T) {
	stats := ComputeSignalStats(measurementsWithSignals(-50, -60, -70, -80))

	if stats.Count != 4 {
		t.Fatalf("Count = %d, want 4", stats.Count)
	}
	if stats.Mean != -65 || stats.Median != -65 {
		t.Errorf("mean/median = %f/%f, want -65/-65", stats.Mean, stats.Median)
	}
	if stats.Min != -80 || stats.Max != -50 {
		t.Errorf("min/max = %d/%d, want -80/-50", stats.Min, stats.Max)
	}
	want := math.Sqrt((225 + 25 + 25 + 225) / 3.0) // sample stddev
	if math.Abs(stats.StdDev-want) > 1e-9 {
		t.Errorf("StdDev = %f, want %f", stats.StdDev, want)
	}

	if empty := ComputeSignalStats(nil); empty != (SignalStats{}) {
		t.Errorf("empty stats = %+v, want zero value", empty)
	}
}

func TestComputeSignalStats_OddMedian(t *testing.T) {
	stats := ComputeSignalStats(measurementsWithSignals(-90, -40, -60))

	if stats.Median != -60 {
		t.Errorf("Median = %f, want -60", stats.Median)
	}
}

func TestUniqueCounts(t *testing.T) {
	ssid := "SLU-users"
	ms := []survey.Measurement{
		{Location: survey.Location{X: 0, Y: 0}, BSSID: "aa:00", SSID: &ssid, Signal: -50},
		{Location: survey.Location{X: 0, Y: 0}, BSSID: "AA:00", SSID: &ssid, Signal: -52},
		{Location: survey.Location{X: 1, Y: 0}, BSSID: "BB:00", Signal: -60},
	}

	if got := UniqueBSSIDs(ms); got != 2 {
		t.Errorf("UniqueBSSIDs = %d, want 2 (case-insensitive)", got)
	}
	if got := UniqueSSIDs(ms); got != 1 {
		t.Errorf("UniqueSSIDs = %d, want 1 (hidden SSIDs excluded)", got)
	}
	if got := UniqueLocations(ms); got != 2 {
		t.Errorf("UniqueLocations = %d, want 2", got)
	}
}

func TestTopNetworks(t *testing.T) {
	a, b, c := "alpha", "beta", "gamma"
	var ms []survey.Measurement
	for i, ssid := range []*string{&a, &a, &a, &b, &b, &c, nil} {
		ms = append(ms, survey.Measurement{
			Location: survey.Location{X: float64(i)},
			BSSID:    "AA:00",
			SSID:     ssid,
			Signal:   -50,
		})
	}

	top := TopNetworks(ms, 2)

	if len(top) != 2 {
		t.Fatalf("len = %d, want 2", len(top))
	}
	if top[0].SSID != "alpha" || top[0].Count != 3 {
		t.Errorf("top[0] = %+v, want alpha:3", top[0])
	}
	if top[1].SSID != "beta" || top[1].Count != 2 {
		t.Errorf("top[1] = %+v, want beta:2", top[1])
	}
}

func TestComputeBandSplit(t *testing.T) {
	ch1, ch36, ch200 := 1, 36, 200
	ms := []survey.Measurement{
		{BSSID: "A", Channel: &ch1, Signal: -50},
		{BSSID: "B", Channel: &ch36, Signal: -50},
		{BSSID: "C", Channel: &ch200, Signal: -50}, // out of range
		{BSSID: "D", Signal: -50},                  // no channel
	}

	split := ComputeBandSplit(ms)

	if split.Band24GHz != 1 || split.Band5GHz != 1 || split.Unknown != 2 {
		t.Errorf("split = %+v, want 1/1/2", split)
	}
}

func TestChannelUsage(t *testing.T) {
	ch1, ch6, ch36 := 1, 6, 36
	ms := []survey.Measurement{
		{BSSID: "A", Channel: &ch6, Signal: -50},
		{BSSID: "B", Channel: &ch6, Signal: -55},
		{BSSID: "C", Channel: &ch6, Signal: -60},
		{BSSID: "D", Channel: &ch1, Signal: -50},
		{BSSID: "E", Channel: &ch36, Signal: -50},
		{BSSID: "F", Signal: -50}, // no channel, ignored
	}

	usage := ChannelUsage(ms, 0)
	want := []ChannelCount{{Channel: 6, Count: 3}, {Channel: 1, Count: 1}, {Channel: 36, Count: 1}}
	if len(usage) != len(want) {
		t.Fatalf("expected %d channels, got %d", len(want), len(usage))
	}
	for i, w := range want {
		if usage[i] != w {
			t.Errorf("usage[%d] = %+v, want %+v", i, usage[i], w)
		}
	}

	if limited := ChannelUsage(ms, 2); len(limited) != 2 {
		t.Errorf("expected 2 channels with limit 2, got %d", len(limited))
	}
}
