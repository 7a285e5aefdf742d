package analysis

import "math"

// Verdict grades how closely two capture sources agree.
type Verdict string

const (
	VerdictExcellent Verdict = "excellent"
	VerdictGood      Verdict = "good"
	VerdictPartial   Verdict = "partial"
)

// SourceSummary is one capture source's view of a floor, reduced to the
// counts the validator compares.
type SourceSummary struct {
	Floor      string  `json:"floor"`
	BSSIDs     int     `json:"bssids"`
	Networks   int     `json:"networks"`
	MeanSignal float64 `json:"meanSignal"` // dBm
}

// Comparison is the per-floor match record between two sources.
type Comparison struct {
	Floor        string  `json:"floor"`
	BSSIDMatch   float64 `json:"bssidMatch"`   // percent
	NetworkMatch float64 `json:"networkMatch"` // percent
	SignalDiff   float64 `json:"signalDiff"`   // dBm
}

// MatchPercent is the symmetric min/max ratio of two detection counts in
// percent. Either count being zero yields 0: the sources cannot be said to
// agree on infrastructure one of them never saw.
func MatchPercent(a, b int) float64 {
	if a == 0 || b == 0 {
		return 0
	}
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	return float64(lo) / float64(hi) * 100
}

// Compare produces the match record for one floor seen by two sources.
func Compare(a, b SourceSummary) Comparison {
	return Comparison{
		Floor:        a.Floor,
		BSSIDMatch:   MatchPercent(a.BSSIDs, b.BSSIDs),
		NetworkMatch: MatchPercent(a.Networks, b.Networks),
		SignalDiff:   math.Abs(a.MeanSignal - b.MeanSignal),
	}
}

// VerdictPolicy holds the cutoffs that grade a comparison. The same policy
// must be applied to per-floor and aggregate comparisons.
type VerdictPolicy struct {
	ExcellentSignalDiff float64 `yaml:"excellentSignalDiff"` // dBm
	ExcellentMatch      float64 `yaml:"excellentMatch"`      // percent
	GoodSignalDiff      float64 `yaml:"goodSignalDiff"`      // dBm
	GoodMatch           float64 `yaml:"goodMatch"`           // percent
}

// DefaultVerdictPolicy returns the cutoffs used by the survey team:
// excellent within 3 dBm and above 90% match, good within 5 dBm and above
// 80% match.
func DefaultVerdictPolicy() VerdictPolicy {
	return VerdictPolicy{
		ExcellentSignalDiff: 3.0,
		ExcellentMatch:      90.0,
		GoodSignalDiff:      5.0,
		GoodMatch:           80.0,
	}
}

// Verdict grades one comparison against the policy cutoffs.
func (p VerdictPolicy) Verdict(c Comparison) Verdict {
	switch {
	case c.SignalDiff < p.ExcellentSignalDiff && c.BSSIDMatch > p.ExcellentMatch:
		return VerdictExcellent
	case c.SignalDiff < p.GoodSignalDiff && c.BSSIDMatch > p.GoodMatch:
		return VerdictGood
	default:
		return VerdictPartial
	}
}

// AggregateComparisons averages per-floor match records into one
// building-wide record. An empty input yields the zero value.
func AggregateComparisons(comparisons []Comparison) Comparison {
	if len(comparisons) == 0 {
		return Comparison{}
	}
	var agg Comparison
	for _, c := range comparisons {
		agg.BSSIDMatch += c.BSSIDMatch
		agg.NetworkMatch += c.NetworkMatch
		agg.SignalDiff += c.SignalDiff
	}
	n := float64(len(comparisons))
	agg.BSSIDMatch /= n
	agg.NetworkMatch /= n
	agg.SignalDiff /= n
	return agg
}
