package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/roametrics/wifi-survey/internal/airodump"
	"github.com/roametrics/wifi-survey/internal/report"
	"github.com/roametrics/wifi-survey/internal/storage"
)

func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	if config.List {
		store := storage.NewSurveyStore(config.DBPath)
		defer store.Close()
		return listCaptures(ctx, store)
	}

	files, err := collectInputs(config.InputPath)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no CSV files found under '%s'", config.InputPath)
	}

	if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	var store *storage.SurveyStore
	if config.DBPath != "" {
		store = storage.NewSurveyStore(config.DBPath)
		defer store.Close()
	}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := parseOne(ctx, file, config, store, logger); err != nil {
			return err
		}
	}
	return nil
}

func parseOne(ctx context.Context, file string, config *Config, store *storage.SurveyStore, logger *slog.Logger) error {
	capture, err := airodump.ParseFile(file)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", filepath.Base(file), err)
	}

	floor := airodump.FloorFromFilename(filepath.Base(file))
	logger.Info("capture parsed",
		slog.String("file", filepath.Base(file)),
		slog.String("floor", floor),
		slog.Int("accessPoints", len(capture.AccessPoints)),
		slog.Int("skipped", capture.Skipped))

	reported := capture
	if config.Network != "" {
		reported = &airodump.Capture{
			AccessPoints: capture.FilterNetwork(config.Network),
			Clients:      capture.Clients,
			Skipped:      capture.Skipped,
		}
	}
	report.WriteCaptureSummary(os.Stdout, floor, reported.Summarize(), capture.Skipped, capture.Clients)

	out := filepath.Join(config.OutputDir, fmt.Sprintf("%s_floor_parsed.csv", floor))
	if err := storage.ExportAccessPoints(out, reported.AccessPoints); err != nil {
		return fmt.Errorf("exporting %s: %w", floor, err)
	}

	if store != nil {
		id, err := store.StoreCapture(ctx, floor, filepath.Base(file), *capture)
		if err != nil {
			return fmt.Errorf("storing capture for floor %s: %w", floor, err)
		}
		logger.Info("capture stored", slog.String("floor", floor), slog.Int64("captureID", id))
	}
	return nil
}

func listCaptures(ctx context.Context, store *storage.SurveyStore) error {
	captures, err := store.Captures(ctx)
	if err != nil {
		return err
	}
	if len(captures) == 0 {
		fmt.Println("no captures stored")
		return nil
	}

	fmt.Printf("%-5s %-20s %-12s %-28s %8s %8s\n", "ID", "STORED", "FLOOR", "SOURCE", "CLIENTS", "SKIPPED")
	for _, c := range captures {
		fmt.Printf("%-5d %-20s %-12s %-28s %8d %8d\n",
			c.ID, c.CreatedAt.Format("2006-01-02 15:04:05"), c.Floor, c.Source, c.Clients, c.Skipped)
	}
	return nil
}

func collectInputs(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading input path: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		files = append(files, filepath.Join(path, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
