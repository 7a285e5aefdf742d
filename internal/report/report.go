// Package report renders analysis results as sectioned plain-text reports.
// Writers take an io.Writer so the same report lands on stdout or in a
// file without changes.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/roametrics/wifi-survey/internal/airodump"
	"github.com/roametrics/wifi-survey/internal/analysis"
	"github.com/roametrics/wifi-survey/internal/survey"
)

const sectionWidth = 60

func writeHeader(w io.Writer, title string) {
	fmt.Fprintln(w, strings.Repeat("=", sectionWidth))
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", sectionWidth))
}

func writeSection(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("-", len(title)))
}

// WriteFloorAnalysis renders the full report for one analyzed floor.
func WriteFloorAnalysis(w io.Writer, a analysis.FloorAnalysis, measurements []survey.Measurement) {
	title := fmt.Sprintf("FLOOR %s", strings.ToUpper(a.Floor))
	if a.NetworkFilter != "" {
		title += fmt.Sprintf(" (network filter: %q)", a.NetworkFilter)
	}
	writeHeader(w, title)

	writeSection(w, "Overall statistics")
	fmt.Fprintf(w, "  Measurements:     %s\n", humanize.Comma(int64(a.Measurements)))
	if a.Skipped > 0 {
		fmt.Fprintf(w, "  Skipped records:  %s\n", humanize.Comma(int64(a.Skipped)))
	}
	fmt.Fprintf(w, "  Unique locations: %d\n", analysis.UniqueLocations(measurements))
	fmt.Fprintf(w, "  Unique BSSIDs:    %d\n", analysis.UniqueBSSIDs(measurements))
	fmt.Fprintf(w, "  Unique networks:  %d\n", analysis.UniqueSSIDs(measurements))

	if a.Stats.Count > 0 {
		writeSection(w, "Signal distribution")
		fmt.Fprintf(w, "  Mean:   %.1f dBm\n", a.Stats.Mean)
		fmt.Fprintf(w, "  Median: %.1f dBm\n", a.Stats.Median)
		fmt.Fprintf(w, "  Range:  %d to %d dBm\n", a.Stats.Min, a.Stats.Max)
		fmt.Fprintf(w, "  StdDev: %.1f dB\n", a.Stats.StdDev)
	}

	writeTopNetworks(w, measurements)
	writeChannelUsage(w, measurements)
	writeBandSplit(w, measurements)
	writeCoverage(w, a.Coverage)
	writeHandover(w, a.Handover)
	writeScores(w, a.Scores)
}

func writeTopNetworks(w io.Writer, measurements []survey.Measurement) {
	top := analysis.TopNetworks(measurements, 10)
	if len(top) == 0 {
		return
	}
	writeSection(w, "Top networks")
	for _, n := range top {
		fmt.Fprintf(w, "  %-32s %s\n", n.SSID, humanize.Comma(int64(n.Count)))
	}
}

func writeChannelUsage(w io.Writer, measurements []survey.Measurement) {
	usage := analysis.ChannelUsage(measurements, 10)
	if len(usage) == 0 {
		return
	}
	writeSection(w, "Channel usage")
	for _, ch := range usage {
		band := survey.BandUnknown
		if freq, ok := survey.ChannelToFrequency(ch.Channel); ok {
			band = survey.BandForFrequency(freq)
		}
		fmt.Fprintf(w, "  ch %-4d %-8s %s\n", ch.Channel, band, humanize.Comma(int64(ch.Count)))
	}
}

func writeBandSplit(w io.Writer, measurements []survey.Measurement) {
	split := analysis.ComputeBandSplit(measurements)
	if split.Band24GHz+split.Band5GHz+split.Unknown == 0 {
		return
	}
	writeSection(w, "Band split")
	fmt.Fprintf(w, "  2.4 GHz: %s\n", humanize.Comma(int64(split.Band24GHz)))
	fmt.Fprintf(w, "  5 GHz:   %s\n", humanize.Comma(int64(split.Band5GHz)))
	if split.Unknown > 0 {
		fmt.Fprintf(w, "  Unknown: %s\n", humanize.Comma(int64(split.Unknown)))
	}
}

func writeCoverage(w io.Writer, c analysis.Coverage) {
	writeSection(w, "Coverage quality")
	if c.NoData() {
		fmt.Fprintln(w, "  No measurements to classify.")
		return
	}
	for _, q := range []analysis.Quality{analysis.Excellent, analysis.Good, analysis.Fair, analysis.Poor} {
		fmt.Fprintf(w, "  %-10s %6s  (%5.1f%%)\n", q, humanize.Comma(int64(c.Count(q))), c.Percent(q))
	}
	fmt.Fprintf(w, "  Coverage score: %.1f%% (Excellent + Good)\n", c.CoverageScore())
}

func writeHandover(w io.Writer, r analysis.HandoverReport) {
	writeSection(w, "Handover analysis")
	if r.TotalLocations == 0 {
		fmt.Fprintln(w, "  No surveyed locations.")
		return
	}
	fmt.Fprintf(w, "  Locations surveyed: %d\n", r.TotalLocations)
	fmt.Fprintf(w, "  Handover zones:     %d (%.1f%%)\n", r.HandoverLocations, r.Coverage())
	if mean, ok := r.MeanZoneAPs(); ok {
		fmt.Fprintf(w, "  Mean APs per zone:  %.1f (max %d)\n", mean, r.MaxZoneAPs())
	}
	if mean, ok := r.MeanZoneSignal(); ok {
		fmt.Fprintf(w, "  Mean zone signal:   %.1f dBm\n", mean)
	}
}

func writeScores(w io.Writer, s analysis.Scores) {
	writeSection(w, "Efficiency metrics")
	fmt.Fprintf(w, "  Coverage:       %5.1f\n", s.Coverage)
	fmt.Fprintf(w, "  Handover:       %5.1f\n", s.Handover)
	fmt.Fprintf(w, "  Signal quality: %5.1f\n", s.SignalQuality)
	fmt.Fprintf(w, "  AP density:     %5.1f\n", s.Density)
	fmt.Fprintf(w, "  Efficiency:     %5.1f / 100\n", s.Efficiency)
}

// WriteBuildingSummary renders the cross-floor rollup.
func WriteBuildingSummary(w io.Writer, s analysis.BuildingSummary) {
	writeHeader(w, "BUILDING SUMMARY")
	fmt.Fprintf(w, "  Floors analyzed:        %d\n", s.Floors)
	fmt.Fprintf(w, "  Total measurements:     %s\n", humanize.Comma(int64(s.TotalMeasurements)))
	fmt.Fprintf(w, "  Mean efficiency:        %.1f / 100\n", s.MeanEfficiency)
	fmt.Fprintf(w, "  Mean handover coverage: %.1f%%\n", s.MeanHandoverCoverage)
}

// WriteCaptureSummary renders the parsed-capture report for one airodump
// file.
func WriteCaptureSummary(w io.Writer, floor string, s airodump.Summary, skipped, clients int) {
	writeHeader(w, fmt.Sprintf("CAPTURE %s", strings.ToUpper(floor)))
	fmt.Fprintf(w, "  Access points:  %s\n", humanize.Comma(int64(s.TotalAPs)))
	fmt.Fprintf(w, "  Unique BSSIDs:  %d\n", s.UniqueBSSIDs)
	fmt.Fprintf(w, "  Named networks: %d\n", s.UniqueESSIDs)
	fmt.Fprintf(w, "  Clients seen:   %d\n", clients)
	if skipped > 0 {
		fmt.Fprintf(w, "  Skipped rows:   %d\n", skipped)
	}
	if s.WithSignal > 0 {
		fmt.Fprintf(w, "  Signal: mean %.1f dBm, range %d to %d dBm\n", s.AvgSignal, s.MinSignal, s.MaxSignal)
	}
	fmt.Fprintf(w, "  Bands: %d on 2.4 GHz, %d on 5 GHz\n", s.Band24GHz, s.Band5GHz)
}

// WriteValidation renders the cross-source comparison: per-floor match
// tables, the aggregate record, and the verdict.
func WriteValidation(w io.Writer, pairs []SourcePair, policy analysis.VerdictPolicy) {
	writeHeader(w, "CROSS-SOURCE VALIDATION")

	comparisons := make([]analysis.Comparison, 0, len(pairs))
	for _, pair := range pairs {
		c := analysis.Compare(pair.Primary, pair.Secondary)
		comparisons = append(comparisons, c)

		writeSection(w, fmt.Sprintf("Floor %s", pair.Primary.Floor))
		fmt.Fprintf(w, "  %-12s %10s %10s\n", "", pair.PrimaryName, pair.SecondaryName)
		fmt.Fprintf(w, "  %-12s %10d %10d\n", "BSSIDs", pair.Primary.BSSIDs, pair.Secondary.BSSIDs)
		fmt.Fprintf(w, "  %-12s %10d %10d\n", "Networks", pair.Primary.Networks, pair.Secondary.Networks)
		fmt.Fprintf(w, "  %-12s %10.1f %10.1f\n", "Mean dBm", pair.Primary.MeanSignal, pair.Secondary.MeanSignal)
		fmt.Fprintf(w, "  BSSID match:   %.1f%%\n", c.BSSIDMatch)
		fmt.Fprintf(w, "  Network match: %.1f%%\n", c.NetworkMatch)
		fmt.Fprintf(w, "  Signal diff:   %.1f dBm\n", c.SignalDiff)
		fmt.Fprintf(w, "  Verdict:       %s\n", policy.Verdict(c))
	}

	agg := analysis.AggregateComparisons(comparisons)
	writeSection(w, "Aggregate")
	fmt.Fprintf(w, "  BSSID match:   %.1f%%\n", agg.BSSIDMatch)
	fmt.Fprintf(w, "  Network match: %.1f%%\n", agg.NetworkMatch)
	fmt.Fprintf(w, "  Signal diff:   %.1f dBm\n", agg.SignalDiff)
	fmt.Fprintf(w, "  Verdict:       %s\n", policy.Verdict(agg))
}

// SourcePair is one floor seen by two capture sources, labeled for the
// comparison table.
type SourcePair struct {
	PrimaryName   string
	SecondaryName string
	Primary       analysis.SourceSummary
	Secondary     analysis.SourceSummary
}
