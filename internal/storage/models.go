package storage

import (
	"database/sql"
	"time"
)

// FloorInfo is one row of the Acrylic project's floors table.
type FloorInfo struct {
	ID   int64
	Name string
}

// APStatistics is the per-access-point signal statistics block exported
// alongside each floor. StdDev is the sample standard deviation of the
// AP's readings, 0 for fewer than two readings.
type APStatistics struct {
	BSSID  string
	SSID   *string
	Count  int
	Mean   float64
	Min    int
	Max    int
	StdDev float64
}

// CaptureInfo describes one stored Pi capture.
type CaptureInfo struct {
	ID        int64
	CreatedAt time.Time
	Floor     string
	Source    string
	Clients   int
	Skipped   int
}

type measurementRow struct {
	Timestamp time.Time
	BSSID     string
	SSID      sql.NullString
	Channel   sql.NullInt64
	Signal    sql.NullInt64
}

type statisticsRow struct {
	BSSID  string
	SSID   sql.NullString
	Count  int64
	Mean   sql.NullFloat64
	Min    sql.NullInt64
	Max    sql.NullInt64
	MeanSq sql.NullFloat64
}
