package app

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/roametrics/wifi-survey/internal/airodump"
	"github.com/roametrics/wifi-survey/internal/analysis"
	"github.com/roametrics/wifi-survey/internal/storage"
)

func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	if _, err := os.Stat(config.ProjectPath); err != nil && os.IsNotExist(err) {
		return fmt.Errorf("project file '%s' does not exist: %w", config.ProjectPath, err)
	}
	if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	annotator, err := NewAnnotator()
	if err != nil {
		return fmt.Errorf("creating annotator: %w", err)
	}

	project := storage.OpenAcrylicProject(config.ProjectPath)
	defer project.Close()

	infos, err := project.Floors(ctx)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		return fmt.Errorf("project '%s' contains no floors", config.ProjectPath)
	}

	var analyses []analysis.FloorAnalysis
	var comparisons []floorComparison
	var summaries []analysis.SourceSummary
	for _, info := range infos {
		floor, skipped, err := project.ReadFloor(ctx, info)
		if err != nil {
			return err
		}

		a := analysis.AnalyzeFloor(floor, config.Network, skipped)
		analyses = append(analyses, a)
		comparisons = append(comparisons, floorComparison{
			Floor:            a.Floor,
			MeanSignal:       a.Stats.Mean,
			Locations:        a.Handover.TotalLocations,
			HandoverCoverage: a.Scores.Handover,
			BSSIDs:           analysis.UniqueBSSIDs(floor.Measurements),
		})
		summaries = append(summaries, a.SourceSummary(floor))

		if a.Measurements == 0 {
			logger.Warn("floor has no matching measurements, skipping charts",
				slog.String("floor", info.Name))
			continue
		}

		if err := renderFloorCharts(config, a, annotator, logger); err != nil {
			return err
		}
	}

	img, err := renderEfficiencyChart(config.Width, config.Height, analyses, annotator)
	if err != nil {
		return err
	}
	if err := writeChart(config.OutputDir, "efficiency.png", img, logger); err != nil {
		return err
	}

	if img, err = renderComparisonChart(config.Width, config.Height, comparisons, annotator); err != nil {
		return err
	}
	if err := writeChart(config.OutputDir, "comparison.png", img, logger); err != nil {
		return err
	}

	if config.CaptureDir == "" {
		return nil
	}
	return renderValidation(config, summaries, annotator, logger)
}

// renderValidation compares the project floors against the Pi captures
// and writes the dashboard.
func renderValidation(config *Config, summaries []analysis.SourceSummary, annotator *Annotator, logger *slog.Logger) error {
	captures, err := airodump.LoadDir(config.CaptureDir)
	if err != nil {
		return err
	}

	byFloor := make(map[string]*airodump.Capture, len(captures))
	for _, dc := range captures {
		capture := dc.Capture
		if config.Network != "" {
			capture = &airodump.Capture{
				AccessPoints: capture.FilterNetwork(config.Network),
				Clients:      capture.Clients,
				Skipped:      capture.Skipped,
			}
		}
		byFloor[strings.ToLower(dc.Floor)] = capture
	}

	var comparisons []analysis.Comparison
	for _, primary := range summaries {
		capture, ok := byFloor[strings.ToLower(strings.TrimSpace(primary.Floor))]
		if !ok {
			logger.Warn("no capture for floor, skipping from dashboard",
				slog.String("floor", primary.Floor))
			continue
		}

		summary := capture.Summarize()
		comparisons = append(comparisons, analysis.Compare(primary, analysis.SourceSummary{
			Floor:      primary.Floor,
			BSSIDs:     summary.UniqueBSSIDs,
			Networks:   summary.UniqueESSIDs,
			MeanSignal: summary.AvgSignal,
		}))
	}
	if len(comparisons) == 0 {
		return fmt.Errorf("no floor has a matching capture under '%s'", config.CaptureDir)
	}

	img, err := renderValidationChart(config.Width, config.Height, comparisons, analysis.DefaultVerdictPolicy(), annotator)
	if err != nil {
		return err
	}
	return writeChart(config.OutputDir, "validation.png", img, logger)
}

func renderFloorCharts(config *Config, a analysis.FloorAnalysis, annotator *Annotator, logger *slog.Logger) error {
	slug := chartSlug(a.Floor)

	img, err := renderCoverageChart(config.Width, config.Height, a.Floor, a.Coverage, annotator)
	if err != nil {
		return err
	}
	if err := writeChart(config.OutputDir, fmt.Sprintf("coverage_%s.png", slug), img, logger); err != nil {
		return err
	}

	if img, err = renderHandoverChart(config.Width, config.Height, a.Floor, a.Handover, annotator); err != nil {
		return err
	}
	if err := writeChart(config.OutputDir, fmt.Sprintf("handover_%s.png", slug), img, logger); err != nil {
		return err
	}

	if img, err = renderSignalChart(config.Width, config.Height, a.Floor, a.Handover, annotator); err != nil {
		return err
	}
	return writeChart(config.OutputDir, fmt.Sprintf("signal_%s.png", slug), img, logger)
}

func writeChart(dir, name string, img *image.RGBA, logger *slog.Logger) (err error) {
	path := filepath.Join(dir, name)
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	defer func() {
		if cErr := out.Close(); cErr != nil && err == nil {
			err = cErr
		}
	}()

	if err = png.Encode(out, img); err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	logger.Info("chart written", slog.String("file", path))
	return nil
}

func chartSlug(floor string) string {
	floor = strings.TrimSpace(strings.ToLower(floor))
	return strings.ReplaceAll(floor, " ", "_")
}
