package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/roametrics/wifi-survey/internal/analysis"
	"github.com/roametrics/wifi-survey/internal/report"
	"github.com/roametrics/wifi-survey/internal/storage"
	"github.com/roametrics/wifi-survey/internal/survey"
)

// analysisOutput is the JSON document emitted with -json: every floor's
// analysis plus the building rollup.
type analysisOutput struct {
	Floors   []analysis.FloorAnalysis `json:"floors"`
	Building analysis.BuildingSummary `json:"building"`
}

func Run(ctx context.Context, config *Config, logger *slog.Logger) (err error) {
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

	floors, skippedCounts, err := loadFloors(ctx, config)
	if err != nil {
		return err
	}

	var analyses []analysis.FloorAnalysis
	var analyzed []*survey.Floor
	for i, floor := range floors {
		if config.Floor != "" && !strings.EqualFold(floor.Name, config.Floor) {
			continue
		}

		logger.Info("floor loaded",
			slog.String("floor", floor.Name),
			slog.Int("measurements", len(floor.Measurements)),
			slog.Int("skipped", skippedCounts[i]))

		analyses = append(analyses, analysis.AnalyzeFloor(floor, config.Network, skippedCounts[i]))
		analyzed = append(analyzed, floor)
	}
	if len(analyses) == 0 {
		if config.Floor != "" {
			return fmt.Errorf("no floor named '%s' found", config.Floor)
		}
		return fmt.Errorf("no floors to analyze")
	}

	if config.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(analysisOutput{
			Floors:   analyses,
			Building: analysis.SummarizeBuilding(analyses),
		})
	}

	for i, a := range analyses {
		if i > 0 {
			fmt.Fprintln(out)
		}
		report.WriteFloorAnalysis(out, a, analyzed[i].FilterNetwork(config.Network))
	}
	fmt.Fprintln(out)
	report.WriteBuildingSummary(out, analysis.SummarizeBuilding(analyses))
	return nil
}

// loadFloors reads every floor dataset from either a project file or a
// directory of extracted CSVs.
func loadFloors(ctx context.Context, config *Config) ([]*survey.Floor, []int, error) {
	if config.ExportedDir != "" {
		return storage.LoadExported(config.ExportedDir)
	}

	if _, err := os.Stat(config.ProjectPath); err != nil && os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("project file '%s' does not exist: %w", config.ProjectPath, err)
	}

	project := storage.OpenAcrylicProject(config.ProjectPath)
	defer project.Close()

	infos, err := project.Floors(ctx)
	if err != nil {
		return nil, nil, err
	}
	if len(infos) == 0 {
		return nil, nil, fmt.Errorf("project '%s' contains no floors", config.ProjectPath)
	}

	var floors []*survey.Floor
	var skipped []int
	for _, info := range infos {
		floor, n, err := project.ReadFloor(ctx, info)
		if err != nil {
			return nil, nil, err
		}
		floors = append(floors, floor)
		skipped = append(skipped, n)
	}
	return floors, skipped, nil
}
