package app

import (
	"image"
	"testing"

	"github.com/roametrics/wifi-survey/internal/analysis"
)

func hasForeground(img *image.RGBA) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) != backgroundColor {
				return true
			}
		}
	}
	return false
}

func TestRenderComparisonChart(t *testing.T) {
	annotator, err := NewAnnotator()
	if err != nil {
		t.Fatalf("NewAnnotator() error: %s", err)
	}

	rows := []floorComparison{
		{Floor: "ground", MeanSignal: -58.2, Locations: 40, HandoverCoverage: 62.5, BSSIDs: 34},
		{Floor: "first", MeanSignal: -64.8, Locations: 35, HandoverCoverage: 40.0, BSSIDs: 28},
	}
	img, err := renderComparisonChart(1024, 768, rows, annotator)
	if err != nil {
		t.Fatalf("renderComparisonChart() error: %s", err)
	}
	if got := img.Bounds().Size(); got.X != 1024 || got.Y != 768 {
		t.Errorf("expected 1024x768 image, got %dx%d", got.X, got.Y)
	}
	if !hasForeground(img) {
		t.Error("comparison chart has no drawn content")
	}

	if _, err := renderComparisonChart(1024, 768, nil, annotator); err == nil {
		t.Error("expected error for empty comparison input")
	}
}

func TestRenderValidationChart(t *testing.T) {
	annotator, err := NewAnnotator()
	if err != nil {
		t.Fatalf("NewAnnotator() error: %s", err)
	}

	comparisons := []analysis.Comparison{
		{Floor: "ground", BSSIDMatch: 95.0, NetworkMatch: 92.0, SignalDiff: 1.2},
		{Floor: "first", BSSIDMatch: 82.0, NetworkMatch: 85.0, SignalDiff: 4.1},
	}
	img, err := renderValidationChart(1024, 768, comparisons, analysis.DefaultVerdictPolicy(), annotator)
	if err != nil {
		t.Fatalf("renderValidationChart() error: %s", err)
	}
	if got := img.Bounds().Size(); got.X != 1024 || got.Y != 768 {
		t.Errorf("expected 1024x768 image, got %dx%d", got.X, got.Y)
	}
	if !hasForeground(img) {
		t.Error("validation chart has no drawn content")
	}

	if _, err := renderValidationChart(1024, 768, nil, analysis.DefaultVerdictPolicy(), annotator); err == nil {
		t.Error("expected error for empty comparison input")
	}
}
