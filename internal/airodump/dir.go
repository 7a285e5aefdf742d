package airodump

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DirCapture is one parsed dump from a capture directory, keyed by the
// floor name embedded in its filename.
type DirCapture struct {
	File    string
	Floor   string
	Capture *Capture
}

// LoadDir parses every CSV dump in dir, in filename order. Non-CSV
// entries and subdirectories are ignored.
func LoadDir(dir string) ([]DirCapture, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading captures directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	captures := make([]DirCapture, 0, len(names))
	for _, name := range names {
		capture, err := ParseFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		captures = append(captures, DirCapture{
			File:    name,
			Floor:   FloorFromFilename(name),
			Capture: capture,
		})
	}
	return captures, nil
}
