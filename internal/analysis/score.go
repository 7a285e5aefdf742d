package analysis

// Score composition weights and normalization constants. A floor with no
// handover zones scores its zone signal as if it sat at the noise floor.
const (
	handoverWeight      = 0.4
	signalQualityWeight = 0.3
	densityWeight       = 0.3

	worstZoneSignal = -100.0 // dBm, assumed mean when no zones exist
	densityCeiling  = 20.0   // co-visible strong APs at which density saturates
)

// Scores are the four normalized sub-scores and the composite efficiency
// score, all within [0, 100]. CoverageScore is informational and carries
// no weight in the composite.
type Scores struct {
	Coverage      float64 `json:"coverage"`
	Handover      float64 `json:"handover"`
	SignalQuality float64 `json:"signalQuality"`
	Density       float64 `json:"density"`
	Efficiency    float64 `json:"efficiency"`
}

// ComputeScores derives the efficiency metrics from a floor's coverage
// classification and handover report. The result is deterministic for a
// given measurement set.
func ComputeScores(coverage Coverage, handover HandoverReport) Scores {
	meanSignal, ok := handover.MeanZoneSignal()
	if !ok {
		meanSignal = worstZoneSignal
	}

	var density float64
	if meanAPs, ok := handover.MeanZoneAPs(); ok {
		density = clamp(meanAPs / densityCeiling * 100)
	}

	s := Scores{
		Coverage:      coverage.CoverageScore(),
		Handover:      handover.Coverage(),
		SignalQuality: clamp((meanSignal + 100) * 2),
		Density:       density,
	}
	s.Efficiency = handoverWeight*s.Handover +
		signalQualityWeight*s.SignalQuality +
		densityWeight*s.Density
	return s
}

// clamp bounds a score to [0, 100], inclusive on both ends.
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
