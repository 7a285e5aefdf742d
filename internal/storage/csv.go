package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/roametrics/wifi-survey/internal/survey"
)

const csvTimeFormat = "2006-01-02 15:04:05"

var measurementHeader = []string{"timestamp", "x", "y", "bssid", "ssid", "channel", "signal_dbm"}

var accessPointHeader = []string{"bssid", "essid", "channel", "signal_dbm", "beacons", "privacy", "first_seen", "last_seen"}

// ExportFloor writes a floor's measurements under dir: one
// all_measurements.csv with every record, plus one file per SSID. The
// directory is created if needed.
func ExportFloor(dir string, floor *survey.Floor) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	if err := writeMeasurementsCSV(filepath.Join(dir, "all_measurements.csv"), floor.Measurements); err != nil {
		return err
	}

	bySSID := make(map[string][]survey.Measurement)
	for _, m := range floor.Measurements {
		if m.SSID == nil || *m.SSID == "" {
			continue
		}
		bySSID[*m.SSID] = append(bySSID[*m.SSID], m)
	}
	for ssid, measurements := range bySSID {
		name := fmt.Sprintf("%s_measurements.csv", safeFilename(ssid))
		if err := writeMeasurementsCSV(filepath.Join(dir, name), measurements); err != nil {
			return err
		}
	}
	return nil
}

func writeMeasurementsCSV(path string, measurements []survey.Measurement) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	defer closeWithError(f, &err)

	w := csv.NewWriter(f)
	if err = w.Write(measurementHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, m := range measurements {
		record := []string{
			m.Timestamp.Format(csvTimeFormat),
			strconv.FormatFloat(m.X, 'f', -1, 64),
			strconv.FormatFloat(m.Y, 'f', -1, 64),
			m.BSSID,
			stringOrEmpty(m.SSID),
			intOrEmpty(m.Channel),
			strconv.Itoa(m.Signal),
		}
		if err = w.Write(record); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// LoadMeasurements reads a measurements CSV written by ExportFloor.
// Malformed records are skipped and counted, never fatal.
func LoadMeasurements(path string) (measurements []survey.Measurement, skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer closeWithError(f, &err)

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(measurementHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	for i, record := range records {
		if i == 0 && record[0] == measurementHeader[0] {
			continue
		}
		m, ok := parseMeasurementRecord(record)
		if !ok {
			skipped++
			continue
		}
		measurements = append(measurements, m)
	}
	return measurements, skipped, nil
}

func parseMeasurementRecord(record []string) (survey.Measurement, bool) {
	var m survey.Measurement

	ts, err := time.Parse(csvTimeFormat, record[0])
	if err != nil {
		return m, false
	}
	x, err := strconv.ParseFloat(record[1], 64)
	if err != nil {
		return m, false
	}
	y, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return m, false
	}
	signal, err := strconv.Atoi(record[6])
	if err != nil {
		return m, false
	}

	m = survey.Measurement{
		Location:  survey.Location{X: x, Y: y},
		Timestamp: ts,
		BSSID:     survey.NormalizeBSSID(record[3]),
		Signal:    signal,
	}
	if record[4] != "" {
		ssid := record[4]
		m.SSID = &ssid
	}
	if record[5] != "" {
		if ch, err := strconv.Atoi(record[5]); err == nil {
			m.Channel = &ch
		}
	}
	return m, true
}

// LoadFloorDir reads one exported floor directory back into a floor
// dataset. The floor name is the directory's base name.
func LoadFloorDir(dir string) (*survey.Floor, int, error) {
	measurements, skipped, err := LoadMeasurements(filepath.Join(dir, "all_measurements.csv"))
	if err != nil {
		return nil, 0, err
	}
	return &survey.Floor{
		Name:         filepath.Base(filepath.Clean(dir)),
		Measurements: measurements,
	}, skipped, nil
}

// LoadExported discovers every floor directory under an extract output
// directory, in name order.
func LoadExported(root string) ([]*survey.Floor, []int, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, nil, fmt.Errorf("reading exported directory: %w", err)
	}

	var floors []*survey.Floor
	var skipped []int
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		floor, n, err := LoadFloorDir(filepath.Join(root, e.Name()))
		if err != nil {
			return nil, nil, fmt.Errorf("loading floor %s: %w", e.Name(), err)
		}
		floors = append(floors, floor)
		skipped = append(skipped, n)
	}
	if len(floors) == 0 {
		return nil, nil, fmt.Errorf("no floor directories under '%s'", root)
	}
	return floors, skipped, nil
}

// ExportAccessPoints writes parsed capture records to a CSV file, the
// flat form consumed by spreadsheet review.
func ExportAccessPoints(path string, aps []survey.AccessPoint) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	defer closeWithError(f, &err)

	w := csv.NewWriter(f)
	if err = w.Write(accessPointHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, ap := range aps {
		record := []string{
			ap.BSSID,
			stringOrEmpty(ap.ESSID),
			intOrEmpty(ap.Channel),
			intOrEmpty(ap.Signal),
			strconv.Itoa(ap.Beacons),
			ap.Privacy,
			timeOrEmpty(ap.FirstSeen),
			timeOrEmpty(ap.LastSeen),
		}
		if err = w.Write(record); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// safeFilename maps an SSID to a name usable on common filesystems.
func safeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "unnamed"
	}
	return b.String()
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intOrEmpty(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func timeOrEmpty(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(csvTimeFormat)
}
