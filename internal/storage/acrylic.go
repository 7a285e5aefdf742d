package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/roametrics/wifi-survey/internal/survey"
)

// AcrylicProject provides read-only access to an Acrylic WiFi Heatmaps
// project file, which is a SQLite database. The schema is externally
// defined and read as-is.
type AcrylicProject struct {
	dbPath string

	db     *sql.DB
	dbOnce sync.Once
	dbErr  error

	closeOnce sync.Once
	closeErr  error
}

// OpenAcrylicProject prepares a reader for the given project file. The
// database connection is opened lazily on first use.
func OpenAcrylicProject(dbPath string) *AcrylicProject {
	return &AcrylicProject{dbPath: dbPath}
}

func (p *AcrylicProject) getDB() (*sql.DB, error) {
	p.dbOnce.Do(func() {
		db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", p.dbPath))
		if err != nil {
			p.dbErr = fmt.Errorf("opening project: %w", err)
			return
		}
		p.db = db
	})
	return p.db, p.dbErr
}

// Floors returns the project's floors in schema order.
func (p *AcrylicProject) Floors(ctx context.Context) (floors []FloorInfo, err error) {
	db, err := p.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, selectFloorsSQL)
	if err != nil {
		return nil, fmt.Errorf("querying floors: %w", err)
	}
	defer closeWithError(rows, &err)

	for rows.Next() {
		var floor FloorInfo
		if err = rows.Scan(&floor.ID, &floor.Name); err != nil {
			return nil, fmt.Errorf("scanning floor: %w", err)
		}
		floors = append(floors, floor)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("reading floors: %w", err)
	}
	return floors, nil
}

// ReaderOption configures a MeasurementReader with filtering criteria.
type ReaderOption func(*MeasurementReader)

// WithNetwork restricts the reader to measurements whose SSID contains
// the given fragment, case-insensitive.
func WithNetwork(filter string) ReaderOption {
	return func(r *MeasurementReader) {
		r.network = filter
	}
}

// WithMinSignal drops measurements weaker than the given dBm floor.
func WithMinSignal(dBm int) ReaderOption {
	return func(r *MeasurementReader) {
		r.minSignal = &dBm
	}
}

// ReadMeasurements creates an iterator over one floor's measurements,
// joined with their access point records. Rows with missing signal or
// coordinates are skipped and counted on the reader, never fatal.
// The returned reader must be closed after use.
func (p *AcrylicProject) ReadMeasurements(ctx context.Context, floorID int64, opts ...ReaderOption) (*MeasurementReader, error) {
	db, err := p.getDB()
	if err != nil {
		return nil, err
	}

	mr := &MeasurementReader{}
	for _, opt := range opts {
		opt(mr)
	}
	if err := mr.init(ctx, db, floorID); err != nil {
		return nil, fmt.Errorf("initializing reader: %w", err)
	}
	return mr, nil
}

// SignalStatistics returns the per-AP signal statistics for one floor.
func (p *AcrylicProject) SignalStatistics(ctx context.Context, floorID int64) (stats []APStatistics, err error) {
	db, err := p.getDB()
	if err != nil {
		return nil, err
	}

	stmt, err := db.PrepareContext(ctx, selectSignalStatisticsSQL)
	if err != nil {
		return nil, fmt.Errorf("preparing statement: %w", err)
	}
	defer closeWithError(stmt, &err)

	rows, err := stmt.QueryContext(ctx, floorID)
	if err != nil {
		return nil, fmt.Errorf("querying statistics: %w", err)
	}
	defer closeWithError(rows, &err)

	for rows.Next() {
		var row statisticsRow
		if err = rows.Scan(&row.BSSID, &row.SSID, &row.Count, &row.Mean, &row.Min, &row.Max, &row.MeanSq); err != nil {
			return nil, fmt.Errorf("scanning statistics: %w", err)
		}
		stats = append(stats, toAPStatistics(row))
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("reading statistics: %w", err)
	}
	return stats, nil
}

// Close releases the database connection. Safe to call multiple times.
func (p *AcrylicProject) Close() error {
	p.closeOnce.Do(func() {
		if p.db != nil {
			p.closeErr = p.db.Close()
			p.db = nil
		}
	})
	return p.closeErr
}

func toAPStatistics(row statisticsRow) APStatistics {
	stats := APStatistics{
		BSSID: survey.NormalizeBSSID(row.BSSID),
		Count: int(row.Count),
		Mean:  row.Mean.Float64,
		Min:   int(row.Min.Int64),
		Max:   int(row.Max.Int64),
	}
	if row.SSID.Valid {
		ssid := row.SSID.String
		stats.SSID = &ssid
	}
	// Sample standard deviation from the first two moments.
	if row.Count > 1 && row.MeanSq.Valid && row.Mean.Valid {
		n := float64(row.Count)
		variance := (row.MeanSq.Float64 - row.Mean.Float64*row.Mean.Float64) * n / (n - 1)
		if variance > 0 {
			stats.StdDev = math.Sqrt(variance)
		}
	}
	return stats
}

// MeasurementReader iterates over one floor's measurements. Each reader
// instance must be used from a single goroutine.
type MeasurementReader struct {
	network   string
	minSignal *int

	rows    *sql.Rows
	current survey.Measurement
	skipped int
	err     error
}

func (r *MeasurementReader) init(ctx context.Context, db *sql.DB, floorID int64) (err error) {
	stmt, err := db.PrepareContext(ctx, selectMeasurementsSQL)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer closeWithError(stmt, &err)

	if r.rows, err = stmt.QueryContext(ctx, floorID); err != nil {
		return fmt.Errorf("querying measurements: %w", err)
	}
	return nil
}

// Next advances to the next measurement passing validation and filters.
// It returns false at the end of data or on error; check Error to tell
// the two apart.
func (r *MeasurementReader) Next(ctx context.Context) bool {
	if r.err != nil || r.rows == nil {
		return false
	}

	for r.rows.Next() {
		select {
		case <-ctx.Done():
			r.err = ctx.Err()
			return false
		default:
		}

		var row measurementRow
		var x, y sql.NullFloat64
		if err := r.rows.Scan(&row.Timestamp, &x, &y, &row.BSSID, &row.SSID, &row.Channel, &row.Signal); err != nil {
			r.err = fmt.Errorf("scanning measurement: %w", err)
			return false
		}

		// Per-record validation: missing signal or coordinates excludes
		// the row from aggregation but not the run.
		if !row.Signal.Valid || !x.Valid || !y.Valid {
			r.skipped++
			continue
		}

		m := survey.Measurement{
			Location:  survey.Location{X: x.Float64, Y: y.Float64},
			Timestamp: row.Timestamp,
			BSSID:     survey.NormalizeBSSID(row.BSSID),
			Signal:    int(row.Signal.Int64),
		}
		if row.SSID.Valid {
			ssid := row.SSID.String
			m.SSID = &ssid
		}
		if row.Channel.Valid {
			ch := int(row.Channel.Int64)
			m.Channel = &ch
		}

		if r.minSignal != nil && m.Signal < *r.minSignal {
			continue
		}
		if r.network != "" && !m.MatchesNetwork(r.network) {
			continue
		}

		r.current = m
		return true
	}
	return false
}

// Current returns the measurement at the iterator position. Undefined
// after Next returns false.
func (r *MeasurementReader) Current() survey.Measurement {
	return r.current
}

// Skipped returns the number of rows dropped by per-record validation so
// far.
func (r *MeasurementReader) Skipped() int {
	return r.skipped
}

// Error returns any error that occurred during iteration.
func (r *MeasurementReader) Error() error {
	if r.err != nil {
		return r.err
	}
	if r.rows != nil {
		return r.rows.Err()
	}
	return nil
}

// Close releases the reader's database resources.
func (r *MeasurementReader) Close() error {
	if r.rows == nil {
		return nil
	}
	err := r.rows.Close()
	r.rows = nil
	return err
}

// ReadFloor drains a measurement iterator into a floor dataset. It is the
// common path for the analyze and chart entry points.
func (p *AcrylicProject) ReadFloor(ctx context.Context, info FloorInfo, opts ...ReaderOption) (*survey.Floor, int, error) {
	reader, err := p.ReadMeasurements(ctx, info.ID, opts...)
	if err != nil {
		return nil, 0, err
	}
	defer reader.Close()

	floor := &survey.Floor{Name: info.Name}
	for reader.Next(ctx) {
		floor.Measurements = append(floor.Measurements, reader.Current())
	}
	if err := reader.Error(); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, 0, fmt.Errorf("reading floor %s: %w", info.Name, err)
	}
	return floor, reader.Skipped(), nil
}
