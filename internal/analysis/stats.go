package analysis

import (
	"math"
	"sort"

	"github.com/roametrics/wifi-survey/internal/survey"
)

// SignalStats summarizes the signal strength distribution of one
// measurement set. StdDev is the sample standard deviation and is 0 for
// sets smaller than two.
type SignalStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    int     `json:"min"`
	Max    int     `json:"max"`
	StdDev float64 `json:"stdDev"`
}

// ComputeSignalStats reduces a measurement set to its distribution
// summary. An empty set yields the zero value.
func ComputeSignalStats(measurements []survey.Measurement) SignalStats {
	if len(measurements) == 0 {
		return SignalStats{}
	}

	signals := make([]int, len(measurements))
	var sum float64
	stats := SignalStats{
		Count: len(measurements),
		Min:   measurements[0].Signal,
		Max:   measurements[0].Signal,
	}
	for i, m := range measurements {
		signals[i] = m.Signal
		sum += float64(m.Signal)
		if m.Signal < stats.Min {
			stats.Min = m.Signal
		}
		if m.Signal > stats.Max {
			stats.Max = m.Signal
		}
	}
	stats.Mean = sum / float64(len(signals))

	sort.Ints(signals)
	mid := len(signals) / 2
	if len(signals)%2 == 0 {
		stats.Median = float64(signals[mid-1]+signals[mid]) / 2
	} else {
		stats.Median = float64(signals[mid])
	}

	if len(signals) > 1 {
		var sq float64
		for _, s := range signals {
			d := float64(s) - stats.Mean
			sq += d * d
		}
		stats.StdDev = math.Sqrt(sq / float64(len(signals)-1))
	}
	return stats
}

// UniqueBSSIDs counts distinct access point identifiers after
// normalization.
func UniqueBSSIDs(measurements []survey.Measurement) int {
	seen := make(map[string]struct{})
	for _, m := range measurements {
		seen[survey.NormalizeBSSID(m.BSSID)] = struct{}{}
	}
	return len(seen)
}

// UniqueSSIDs counts distinct network names; hidden networks (nil SSID)
// are not counted.
func UniqueSSIDs(measurements []survey.Measurement) int {
	seen := make(map[string]struct{})
	for _, m := range measurements {
		if m.SSID != nil && *m.SSID != "" {
			seen[*m.SSID] = struct{}{}
		}
	}
	return len(seen)
}

// UniqueLocations counts distinct surveyed points.
func UniqueLocations(measurements []survey.Measurement) int {
	seen := make(map[survey.Location]struct{})
	for _, m := range measurements {
		seen[m.Location] = struct{}{}
	}
	return len(seen)
}

// NetworkCount is one row of the top-networks table.
type NetworkCount struct {
	SSID  string `json:"ssid"`
	Count int    `json:"count"`
}

// TopNetworks ranks networks by observation count, descending, ties broken
// by name for stable output. At most limit rows are returned; limit <= 0
// means no cap.
func TopNetworks(measurements []survey.Measurement, limit int) []NetworkCount {
	counts := make(map[string]int)
	for _, m := range measurements {
		if m.SSID != nil && *m.SSID != "" {
			counts[*m.SSID]++
		}
	}

	ranked := make([]NetworkCount, 0, len(counts))
	for ssid, n := range counts {
		ranked = append(ranked, NetworkCount{SSID: ssid, Count: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].SSID < ranked[j].SSID
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// ChannelCount is one row of the channel-usage table.
type ChannelCount struct {
	Channel int `json:"channel"`
	Count   int `json:"count"`
}

// ChannelUsage ranks channels by observation count, descending.
// Measurements without a channel are ignored.
func ChannelUsage(measurements []survey.Measurement, limit int) []ChannelCount {
	counts := make(map[int]int)
	for _, m := range measurements {
		if m.Channel != nil {
			counts[*m.Channel]++
		}
	}

	ranked := make([]ChannelCount, 0, len(counts))
	for ch, n := range counts {
		ranked = append(ranked, ChannelCount{Channel: ch, Count: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Channel < ranked[j].Channel
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// BandSplit counts measurements per radio band, derived from channels.
type BandSplit struct {
	Band24GHz int `json:"band24GHz"`
	Band5GHz  int `json:"band5GHz"`
	Unknown   int `json:"unknown"`
}

// ComputeBandSplit tallies the 2.4 GHz / 5 GHz distribution.
func ComputeBandSplit(measurements []survey.Measurement) BandSplit {
	var split BandSplit
	for _, m := range measurements {
		if m.Channel == nil {
			split.Unknown++
			continue
		}
		freq, ok := survey.ChannelToFrequency(*m.Channel)
		if !ok {
			split.Unknown++
			continue
		}
		if survey.BandForFrequency(freq) == survey.Band24GHz {
			split.Band24GHz++
		} else {
			split.Band5GHz++
		}
	}
	return split
}
