package analysis

import "github.com/roametrics/wifi-survey/internal/survey"

// FloorAnalysis is the full structured summary for one floor, one pass of
// the store → analyzer → sink flow. Skipped carries the loader's count of
// records dropped during validation, for diagnostics.
type FloorAnalysis struct {
	Floor         string         `json:"floor"`
	NetworkFilter string         `json:"networkFilter,omitempty"`
	Measurements  int            `json:"measurements"`
	Skipped       int            `json:"skipped,omitempty"`
	Stats         SignalStats    `json:"stats"`
	Coverage      Coverage       `json:"coverage"`
	Handover      HandoverReport `json:"handover"`
	Scores        Scores         `json:"scores"`
}

// AnalyzeFloor runs the whole pipeline for one floor dataset restricted to
// the network of interest. An empty or fully filtered-out floor produces a
// zero-valued analysis, never an arithmetic fault.
func AnalyzeFloor(floor *survey.Floor, networkFilter string, skipped int) FloorAnalysis {
	matched := floor.FilterNetwork(networkFilter)

	coverage := ClassifyCoverage(matched)
	handover := DetectHandover(matched)

	return FloorAnalysis{
		Floor:         floor.Name,
		NetworkFilter: networkFilter,
		Measurements:  len(matched),
		Skipped:       skipped,
		Stats:         ComputeSignalStats(matched),
		Coverage:      coverage,
		Handover:      handover,
		Scores:        ComputeScores(coverage, handover),
	}
}

// SourceSummary reduces the analysis to the counts the cross-source
// validator compares. Unique counts are taken over the unfiltered floor,
// matching how both capture tools report their totals.
func (a FloorAnalysis) SourceSummary(floor *survey.Floor) SourceSummary {
	return SourceSummary{
		Floor:      a.Floor,
		BSSIDs:     UniqueBSSIDs(floor.Measurements),
		Networks:   UniqueSSIDs(floor.Measurements),
		MeanSignal: a.Stats.Mean,
	}
}

// BuildingSummary is the rollup across all analyzed floors.
type BuildingSummary struct {
	Floors               int     `json:"floors"`
	TotalMeasurements    int     `json:"totalMeasurements"`
	MeanEfficiency       float64 `json:"meanEfficiency"`
	MeanHandoverCoverage float64 `json:"meanHandoverCoverage"`
}

// SummarizeBuilding averages floor metrics into a building-wide view.
func SummarizeBuilding(floors []FloorAnalysis) BuildingSummary {
	summary := BuildingSummary{Floors: len(floors)}
	if len(floors) == 0 {
		return summary
	}
	for _, f := range floors {
		summary.TotalMeasurements += f.Measurements
		summary.MeanEfficiency += f.Scores.Efficiency
		summary.MeanHandoverCoverage += f.Scores.Handover
	}
	n := float64(len(floors))
	summary.MeanEfficiency /= n
	summary.MeanHandoverCoverage /= n
	return summary
}
