package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/roametrics/wifi-survey/internal/storage"
)

func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	if _, err := os.Stat(config.ProjectPath); err != nil && os.IsNotExist(err) {
		return fmt.Errorf("project file '%s' does not exist: %w", config.ProjectPath, err)
	}

	project := storage.OpenAcrylicProject(config.ProjectPath)
	defer project.Close()

	floors, err := project.Floors(ctx)
	if err != nil {
		return err
	}
	if len(floors) == 0 {
		return fmt.Errorf("project '%s' contains no floors", config.ProjectPath)
	}

	logger.Info("extracting floors",
		slog.String("project", config.ProjectPath),
		slog.Int("floors", len(floors)))

	var opts []storage.ReaderOption
	if config.Network != "" {
		opts = append(opts, storage.WithNetwork(config.Network))
	}
	if config.MinSignal != nil {
		opts = append(opts, storage.WithMinSignal(*config.MinSignal))
	}

	for _, info := range floors {
		floor, skipped, err := project.ReadFloor(ctx, info, opts...)
		if err != nil {
			return err
		}

		dir := filepath.Join(config.OutputDir, floorDirName(info.Name))
		if err := storage.ExportFloor(dir, floor); err != nil {
			return fmt.Errorf("exporting floor %s: %w", info.Name, err)
		}

		logger.Info("floor extracted",
			slog.String("floor", info.Name),
			slog.String("dir", dir),
			slog.Int("measurements", len(floor.Measurements)),
			slog.Int("skipped", skipped))

		if config.Stats {
			if err := printStatistics(ctx, project, info); err != nil {
				return err
			}
		}
	}
	return nil
}

func printStatistics(ctx context.Context, project *storage.AcrylicProject, info storage.FloorInfo) error {
	stats, err := project.SignalStatistics(ctx, info.ID)
	if err != nil {
		return fmt.Errorf("reading statistics for floor %s: %w", info.Name, err)
	}

	fmt.Printf("\nFloor %s: %d access points\n", info.Name, len(stats))
	for _, s := range stats {
		ssid := "<hidden>"
		if s.SSID != nil {
			ssid = *s.SSID
		}
		fmt.Printf("  %-17s %-24s n=%-5d mean %6.1f dBm  [%d, %d]  sd %.1f\n",
			s.BSSID, ssid, s.Count, s.Mean, s.Min, s.Max, s.StdDev)
	}
	return nil
}

func floorDirName(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	return strings.ReplaceAll(name, " ", "_")
}
