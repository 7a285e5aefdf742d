package survey

import (
	"strings"
	"time"
)

// Band identifies the radio band an access point operates in.
type Band string

const (
	Band24GHz   Band = "2.4 GHz"
	Band5GHz    Band = "5 GHz"
	BandUnknown Band = ""
)

// Location identifies a surveyed physical point on one floor.
// Coordinates are floor-plan positions, not globally unique across floors.
type Location struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Measurement is a single observation of one access point from one survey
// point. Signal is in dBm (≤ 0 in practice, closer to zero is stronger).
// SSID is nil when the network name was hidden or not captured.
type Measurement struct {
	Location  `json:"location"`
	Timestamp time.Time `json:"timestamp,omitempty"`
	BSSID     string    `json:"bssid"`
	SSID      *string   `json:"ssid,omitempty"`
	Channel   *int      `json:"channel,omitempty"`
	Signal    int       `json:"signal"` // dBm
}

// MatchesNetwork reports whether the measurement belongs to the network of
// interest. The filter is a case-insensitive SSID substring; an empty
// filter matches everything, a nil SSID matches nothing.
func (m Measurement) MatchesNetwork(filter string) bool {
	if filter == "" {
		return true
	}
	if m.SSID == nil {
		return false
	}
	return strings.Contains(strings.ToLower(*m.SSID), strings.ToLower(filter))
}

// AccessPoint is one access point record from a monitor-mode capture.
// Unlike Measurement it has no position: the Pi scanner logs what it hears
// at the survey point the capture file was taken from.
type AccessPoint struct {
	BSSID     string    `json:"bssid"`
	ESSID     *string   `json:"essid,omitempty"`
	Channel   *int      `json:"channel,omitempty"`
	Signal    *int      `json:"signal,omitempty"` // dBm
	Beacons   int       `json:"beacons"`
	Privacy   string    `json:"privacy,omitempty"`
	FirstSeen time.Time `json:"firstSeen,omitempty"`
	LastSeen  time.Time `json:"lastSeen,omitempty"`
}

// Frequency returns the center frequency in MHz for the AP's channel.
func (a AccessPoint) Frequency() (int, bool) {
	if a.Channel == nil {
		return 0, false
	}
	return ChannelToFrequency(*a.Channel)
}

// Band returns the radio band derived from the AP's channel.
func (a AccessPoint) Band() Band {
	freq, ok := a.Frequency()
	if !ok {
		return BandUnknown
	}
	return BandForFrequency(freq)
}

// ChannelToFrequency maps an 802.11 channel number to its center frequency
// in MHz. Channels 1-14 are 2.4 GHz, 36-165 are 5 GHz; anything else is
// reported as unknown.
func ChannelToFrequency(channel int) (int, bool) {
	switch {
	case channel >= 1 && channel <= 14:
		return 2407 + channel*5, true
	case channel >= 36 && channel <= 165:
		return 5000 + channel*5, true
	default:
		return 0, false
	}
}

// BandForFrequency splits frequencies in MHz into the two survey bands.
func BandForFrequency(freqMHz int) Band {
	if freqMHz < 3000 {
		return Band24GHz
	}
	return Band5GHz
}

// NormalizeBSSID canonicalizes a hardware identifier for dedup and joins.
func NormalizeBSSID(bssid string) string {
	return strings.ToUpper(strings.TrimSpace(bssid))
}

// Floor is one floor dataset: every measurement collected on one level of
// the building. Measurements never cross floors.
type Floor struct {
	Name         string        `json:"name"`
	Measurements []Measurement `json:"measurements,omitempty"`
}

// FilterNetwork returns the subset of measurements matching the network
// filter. The slice is freshly allocated; the floor is not mutated.
func (f *Floor) FilterNetwork(filter string) []Measurement {
	if filter == "" {
		return f.Measurements
	}
	var matched []Measurement
	for _, m := range f.Measurements {
		if m.MatchesNetwork(filter) {
			matched = append(matched, m)
		}
	}
	return matched
}
