package airodump

import (
	"strings"
	"testing"
)

const sampleDump = `
BSSID, First time seen, Last time seen, channel, Speed, Privacy, Cipher, Authentication, Power, # beacons, # IV, LAN IP, ID-length, ESSID, Key
AA:BB:CC:00:00:01, 2025-03-14 10:00:01, 2025-03-14 10:05:12,   6,  54, WPA2, CCMP, PSK, -62,  120,    0,   0.  0.  0.  0,   9, SLU-users,
aa:bb:cc:00:00:02, 2025-03-14 10:00:03, 2025-03-14 10:05:13,  36, 866, WPA2, CCMP, PSK, -71,   89,    0,   0.  0.  0.  0,   9, SLU-users,
AA:BB:CC:00:00:03, 2025-03-14 10:00:05, 2025-03-14 10:05:14,  11,  54, OPN ,     ,    ,  -1,   15,    0,   0.  0.  0.  0,   7, eduroam,
badrow
AA:BB:CC:00:00:04, 2025-03-14 10:00:07, 2025-03-14 10:05:15,   1,  54, WPA2, CCMP, PSK, -85,   33,    0,   0.  0.  0.  0,   0, ,

Station MAC, First time seen, Last time seen, Power, # packets, BSSID, Probed ESSIDs
11:22:33:44:55:66, 2025-03-14 10:00:09, 2025-03-14 10:05:16, -40,  200, AA:BB:CC:00:00:01,
11:22:33:44:55:77, 2025-03-14 10:00:11, 2025-03-14 10:05:17, -55,   90, AA:BB:CC:00:00:02,
`

func TestParse(t *testing.T) {
	capture, err := Parse(strings.NewReader(sampleDump))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(capture.AccessPoints) != 4 {
		t.Fatalf("got %d access points, want 4", len(capture.AccessPoints))
	}
	if capture.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", capture.Skipped)
	}
	if capture.Clients != 2 {
		t.Errorf("Clients = %d, want 2", capture.Clients)
	}

	first := capture.AccessPoints[0]
	if first.BSSID != "AA:BB:CC:00:00:01" {
		t.Errorf("BSSID = %q", first.BSSID)
	}
	if first.ESSID == nil || *first.ESSID != "SLU-users" {
		t.Errorf("ESSID = %v, want SLU-users", first.ESSID)
	}
	if first.Signal == nil || *first.Signal != -62 {
		t.Errorf("Signal = %v, want -62", first.Signal)
	}
	if first.Channel == nil || *first.Channel != 6 {
		t.Errorf("Channel = %v, want 6", first.Channel)
	}
	if first.FirstSeen.IsZero() || first.LastSeen.IsZero() {
		t.Error("seen timestamps not parsed")
	}

	// Lowercase BSSIDs are normalized on parse.
	if capture.AccessPoints[1].BSSID != "AA:BB:CC:00:00:02" {
		t.Errorf("BSSID = %q, want normalized uppercase", capture.AccessPoints[1].BSSID)
	}

	// The -1 sentinel means the AP was never actually heard.
	if capture.AccessPoints[2].Signal != nil {
		t.Errorf("sentinel power kept: %v", *capture.AccessPoints[2].Signal)
	}

	// Zero-length ESSID stays absent.
	if capture.AccessPoints[3].ESSID != nil {
		t.Errorf("empty ESSID kept: %q", *capture.AccessPoints[3].ESSID)
	}
}

func TestParse_NoAPSection(t *testing.T) {
	if _, err := Parse(strings.NewReader("not a capture\n")); err == nil {
		t.Fatal("expected an error for a file without an access point section")
	}
}

func TestCaptureSummarize(t *testing.T) {
	capture, err := Parse(strings.NewReader(sampleDump))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	s := capture.Summarize()

	if s.TotalAPs != 4 || s.UniqueBSSIDs != 4 || s.UniqueESSIDs != 2 {
		t.Errorf("totals = %d/%d/%d, want 4/4/2", s.TotalAPs, s.UniqueBSSIDs, s.UniqueESSIDs)
	}
	if s.WithSignal != 3 {
		t.Fatalf("WithSignal = %d, want 3", s.WithSignal)
	}
	if s.MinSignal != -85 || s.MaxSignal != -62 {
		t.Errorf("min/max = %d/%d, want -85/-62", s.MinSignal, s.MaxSignal)
	}
	if s.Band24GHz != 3 || s.Band5GHz != 1 {
		t.Errorf("bands = %d/%d, want 3/1", s.Band24GHz, s.Band5GHz)
	}
}

func TestCaptureFilterNetwork(t *testing.T) {
	capture, err := Parse(strings.NewReader(sampleDump))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	matched := capture.FilterNetwork("slu")
	if len(matched) != 2 {
		t.Errorf("matched %d APs, want 2", len(matched))
	}
}

func TestFloorFromFilename(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"survey_ground-01.csv", "ground"},
		{"/data/pi/survey_basement-01.csv", "basement"},
		{"survey_top-02.csv", "top"},
		{"capture.csv", "unknown"},
	}

	for _, tc := range cases {
		if got := FloorFromFilename(tc.name); got != tc.want {
			t.Errorf("FloorFromFilename(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}
