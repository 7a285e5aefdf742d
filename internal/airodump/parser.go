// Package airodump reads the CSV dumps written by airodump-ng on the Pi
// scanner. The dump is not RFC 4180: it concatenates an access point table
// and a client station table into one file, separated by their header
// rows, so the sections are split by hand before field parsing.
package airodump

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/roametrics/wifi-survey/internal/survey"
)

const seenTimeFormat = "2006-01-02 15:04:05"

// Column positions in the access point section, per the airodump-ng dump
// layout. The file is read as-is; the layout is fixed upstream.
const (
	colBSSID = iota
	colFirstSeen
	colLastSeen
	colChannel
	colSpeed
	colPrivacy
	colCipher
	colAuth
	colPower
	colBeacons
	colIV
	colLANIP
	colIDLength
	colESSID

	minAPFields = colESSID + 1
)

// Capture is one parsed airodump-ng dump: the heard access points, the
// number of client stations, and the count of rows dropped during
// validation.
type Capture struct {
	AccessPoints []survey.AccessPoint
	Clients      int
	Skipped      int
}

// ParseFile reads and parses a single airodump-ng CSV dump.
func ParseFile(path string) (*Capture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening capture: %w", err)
	}
	defer f.Close()

	capture, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return capture, nil
}

// Parse splits the dump into its access point and station sections and
// parses the access point rows. Rows with too few fields or an unusable
// BSSID are skipped and counted, never fatal.
func Parse(r io.Reader) (*Capture, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	capture := &Capture{}
	var inAPSection, inStationSection bool
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "BSSID"):
			inAPSection = true
			continue
		case strings.HasPrefix(line, "Station MAC"):
			inAPSection = false
			inStationSection = true
			continue
		}

		if inStationSection {
			capture.Clients++
			continue
		}
		if !inAPSection {
			continue
		}

		ap, ok := parseAPRow(line)
		if !ok {
			capture.Skipped++
			continue
		}
		capture.AccessPoints = append(capture.AccessPoints, ap)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading capture: %w", err)
	}
	if !inAPSection && !inStationSection && len(capture.AccessPoints) == 0 {
		return nil, fmt.Errorf("no access point section found")
	}
	return capture, nil
}

func parseAPRow(line string) (survey.AccessPoint, bool) {
	fields := strings.Split(line, ",")
	if len(fields) < minAPFields {
		return survey.AccessPoint{}, false
	}
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}

	bssid := survey.NormalizeBSSID(fields[colBSSID])
	if bssid == "" {
		return survey.AccessPoint{}, false
	}

	ap := survey.AccessPoint{
		BSSID:   bssid,
		Privacy: fields[colPrivacy],
	}

	if essid := strings.Trim(fields[colESSID], `"`); essid != "" {
		ap.ESSID = &essid
	}
	if ch, err := strconv.Atoi(fields[colChannel]); err == nil && ch > 0 {
		ap.Channel = &ch
	}
	if power, err := strconv.Atoi(fields[colPower]); err == nil && power < 0 {
		// airodump reports -1 or a positive sentinel when it never heard a
		// frame; only plausible dBm readings are kept.
		ap.Signal = &power
	}
	if beacons, err := strconv.Atoi(fields[colBeacons]); err == nil {
		ap.Beacons = beacons
	}
	if ts, err := time.Parse(seenTimeFormat, fields[colFirstSeen]); err == nil {
		ap.FirstSeen = ts
	}
	if ts, err := time.Parse(seenTimeFormat, fields[colLastSeen]); err == nil {
		ap.LastSeen = ts
	}
	return ap, true
}

// FilterNetwork returns the access points whose ESSID contains the filter,
// case-insensitive. An empty filter returns every AP.
func (c *Capture) FilterNetwork(filter string) []survey.AccessPoint {
	if filter == "" {
		return c.AccessPoints
	}
	var matched []survey.AccessPoint
	needle := strings.ToLower(filter)
	for _, ap := range c.AccessPoints {
		if ap.ESSID != nil && strings.Contains(strings.ToLower(*ap.ESSID), needle) {
			matched = append(matched, ap)
		}
	}
	return matched
}

// UniqueBSSIDs counts distinct access point identifiers in the capture.
func (c *Capture) UniqueBSSIDs() int {
	seen := make(map[string]struct{})
	for _, ap := range c.AccessPoints {
		seen[ap.BSSID] = struct{}{}
	}
	return len(seen)
}

// UniqueESSIDs counts distinct named networks in the capture.
func (c *Capture) UniqueESSIDs() int {
	seen := make(map[string]struct{})
	for _, ap := range c.AccessPoints {
		if ap.ESSID != nil {
			seen[*ap.ESSID] = struct{}{}
		}
	}
	return len(seen)
}

// Summary is the per-capture statistics block printed after parsing.
type Summary struct {
	TotalAPs     int
	UniqueBSSIDs int
	UniqueESSIDs int
	WithSignal   int
	AvgSignal    float64
	MinSignal    int
	MaxSignal    int
	Band24GHz    int
	Band5GHz     int
}

// Summarize reduces the capture to its statistics block. Records without
// a usable signal are excluded from the signal aggregates but still
// counted in the totals.
func (c *Capture) Summarize() Summary {
	s := Summary{
		TotalAPs:     len(c.AccessPoints),
		UniqueBSSIDs: c.UniqueBSSIDs(),
		UniqueESSIDs: c.UniqueESSIDs(),
	}

	var sum int
	for _, ap := range c.AccessPoints {
		switch ap.Band() {
		case survey.Band24GHz:
			s.Band24GHz++
		case survey.Band5GHz:
			s.Band5GHz++
		}

		if ap.Signal == nil {
			continue
		}
		sig := *ap.Signal
		if s.WithSignal == 0 || sig < s.MinSignal {
			s.MinSignal = sig
		}
		if s.WithSignal == 0 || sig > s.MaxSignal {
			s.MaxSignal = sig
		}
		sum += sig
		s.WithSignal++
	}
	if s.WithSignal > 0 {
		s.AvgSignal = float64(sum) / float64(s.WithSignal)
	}
	return s
}

// FloorFromFilename derives the floor name from the survey capture naming
// convention survey_<floor>-01.csv. Files outside the convention map to
// "unknown".
func FloorFromFilename(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	parts := strings.Split(base, "_")
	if len(parts) < 2 || parts[0] != "survey" {
		return "unknown"
	}
	floor := parts[1]
	if i := strings.LastIndex(floor, "-"); i > 0 {
		floor = floor[:i]
	}
	return floor
}
