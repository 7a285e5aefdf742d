package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/roametrics/wifi-survey/internal/airodump"
	"github.com/roametrics/wifi-survey/internal/analysis"
	"github.com/roametrics/wifi-survey/internal/report"
	"github.com/roametrics/wifi-survey/internal/storage"
)

const (
	primarySource   = "acrylic"
	secondarySource = "pi"
)

func Run(ctx context.Context, config *Config, logger *slog.Logger) (err error) {
	project := storage.OpenAcrylicProject(config.ProjectPath)
	defer project.Close()

	captures, err := loadCaptures(config.CaptureDir, config.Network, logger)
	if err != nil {
		return err
	}

	infos, err := project.Floors(ctx)
	if err != nil {
		return err
	}

	var pairs []report.SourcePair
	for _, info := range infos {
		capture, ok := captures[floorKey(info.Name)]
		if !ok {
			logger.Warn("no capture for floor, skipping", slog.String("floor", info.Name))
			continue
		}

		floor, skipped, err := project.ReadFloor(ctx, info)
		if err != nil {
			return err
		}
		if skipped > 0 {
			logger.Info("records skipped during load",
				slog.String("floor", info.Name),
				slog.Int("skipped", skipped))
		}

		a := analysis.AnalyzeFloor(floor, config.Network, skipped)
		summary := capture.Summarize()

		pairs = append(pairs, report.SourcePair{
			PrimaryName:   primarySource,
			SecondaryName: secondarySource,
			Primary:       a.SourceSummary(floor),
			Secondary: analysis.SourceSummary{
				Floor:      info.Name,
				BSSIDs:     summary.UniqueBSSIDs,
				Networks:   summary.UniqueESSIDs,
				MeanSignal: summary.AvgSignal,
			},
		})
	}
	if len(pairs) == 0 {
		return fmt.Errorf("no floor in '%s' has a matching capture under '%s'", config.ProjectPath, config.CaptureDir)
	}

	var out io.Writer = os.Stdout
	if config.OutputFile != "" {
		f, fErr := os.Create(config.OutputFile)
		if fErr != nil {
			return fmt.Errorf("creating report file: %w", fErr)
		}
		defer func() {
			if cErr := f.Close(); cErr != nil && err == nil {
				err = cErr
			}
		}()
		out = f
	}

	report.WriteValidation(out, pairs, config.Policy)
	return nil
}

// loadCaptures parses every CSV in dir and keys the results by the floor
// name embedded in the filename.
func loadCaptures(dir, network string, logger *slog.Logger) (map[string]*airodump.Capture, error) {
	loaded, err := airodump.LoadDir(dir)
	if err != nil {
		return nil, err
	}

	captures := make(map[string]*airodump.Capture, len(loaded))
	for _, dc := range loaded {
		capture := dc.Capture
		if network != "" {
			capture = &airodump.Capture{
				AccessPoints: capture.FilterNetwork(network),
				Clients:      capture.Clients,
				Skipped:      capture.Skipped,
			}
		}

		logger.Info("capture loaded",
			slog.String("file", dc.File),
			slog.String("floor", dc.Floor),
			slog.Int("accessPoints", len(capture.AccessPoints)))
		captures[floorKey(dc.Floor)] = capture
	}
	return captures, nil
}

func floorKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
