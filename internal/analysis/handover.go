package analysis

import (
	"sort"

	"github.com/roametrics/wifi-survey/internal/survey"
)

// LocationResult is the handover decision for one surveyed location.
// MeanSignal is averaged across all measurements at the location, not just
// the qualifying ones; it feeds charts and summaries, not the decision.
type LocationResult struct {
	survey.Location
	Handover      bool    `json:"handover"`
	QualifyingAPs int     `json:"qualifyingAPs"`
	MeanSignal    float64 `json:"meanSignal"` // dBm
}

// HandoverReport partitions a floor's locations into handover and
// non-handover zones. Locations are sorted by (X, Y) so two runs over the
// same measurement set produce identical output.
type HandoverReport struct {
	Locations         []LocationResult `json:"locations,omitempty"`
	TotalLocations    int              `json:"totalLocations"`
	HandoverLocations int              `json:"handoverLocations"`
}

// DetectHandover groups measurements by location and flags every location
// where two or more distinct BSSIDs report a signal above the handover
// threshold. Repeated readings of one BSSID at one location count once.
func DetectHandover(measurements []survey.Measurement) HandoverReport {
	groups := make(map[survey.Location][]survey.Measurement)
	for _, m := range measurements {
		groups[m.Location] = append(groups[m.Location], m)
	}

	keys := make([]survey.Location, 0, len(groups))
	for loc := range groups {
		keys = append(keys, loc)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].X != keys[j].X {
			return keys[i].X < keys[j].X
		}
		return keys[i].Y < keys[j].Y
	})

	report := HandoverReport{
		Locations:      make([]LocationResult, 0, len(keys)),
		TotalLocations: len(keys),
	}
	for _, loc := range keys {
		group := groups[loc]

		qualifying := make(map[string]struct{})
		var sum float64
		for _, m := range group {
			sum += float64(m.Signal)
			if m.Signal > HandoverThreshold {
				qualifying[survey.NormalizeBSSID(m.BSSID)] = struct{}{}
			}
		}

		result := LocationResult{
			Location:      loc,
			QualifyingAPs: len(qualifying),
			Handover:      len(qualifying) >= 2,
			MeanSignal:    sum / float64(len(group)),
		}
		if result.Handover {
			report.HandoverLocations++
		}
		report.Locations = append(report.Locations, result)
	}
	return report
}

// Coverage returns the share of surveyed locations that are handover
// zones, in percent. Zero locations yield 0.
func (r HandoverReport) Coverage() float64 {
	if r.TotalLocations == 0 {
		return 0
	}
	return float64(r.HandoverLocations) / float64(r.TotalLocations) * 100
}

// MeanZoneAPs is the mean qualifying-AP count across handover zones only.
// The second return is false when the floor has no handover zones.
func (r HandoverReport) MeanZoneAPs() (float64, bool) {
	var sum, n float64
	for _, loc := range r.Locations {
		if loc.Handover {
			sum += float64(loc.QualifyingAPs)
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / n, true
}

// MaxZoneAPs is the largest qualifying-AP count observed at any location.
func (r HandoverReport) MaxZoneAPs() int {
	var max int
	for _, loc := range r.Locations {
		if loc.QualifyingAPs > max {
			max = loc.QualifyingAPs
		}
	}
	return max
}

// MeanZoneSignal is the mean of per-zone average signals across handover
// zones only. The second return is false when there are no handover zones.
func (r HandoverReport) MeanZoneSignal() (float64, bool) {
	var sum, n float64
	for _, loc := range r.Locations {
		if loc.Handover {
			sum += loc.MeanSignal
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / n, true
}
