package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/roametrics/wifi-survey/internal/airodump"
)

// SurveyStore persists parsed captures to a SQLite database. Writes go
// through a WAL connection; reads use a separate read-only connection.
// Indexes are created on Close, once bulk loading is done.
type SurveyStore struct {
	dbPath string

	writeDB     *sql.DB
	writeDBOnce sync.Once
	writeDBErr  error

	readDB     *sql.DB
	readDBOnce sync.Once
	readDBErr  error

	closeOnce sync.Once
	closeErr  error
}

// NewSurveyStore creates a store backed by the database at dbPath. The
// file and schema are created on first write.
func NewSurveyStore(dbPath string) *SurveyStore {
	return &SurveyStore{dbPath: dbPath}
}

func (s *SurveyStore) getWriteDB() (*sql.DB, error) {
	s.writeDBOnce.Do(func() {
		db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_journal_mode=WAL&_synchronous=NORMAL", s.dbPath))
		if err != nil {
			s.writeDBErr = fmt.Errorf("opening database: %w", err)
			return
		}
		if err := runSQLCommand(db, schemaSQL); err != nil {
			s.writeDBErr = fmt.Errorf("creating schema: %w", err)
			return
		}
		s.writeDB = db
	})
	return s.writeDB, s.writeDBErr
}

func (s *SurveyStore) getReadDB() (*sql.DB, error) {
	s.readDBOnce.Do(func() {
		db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", s.dbPath))
		if err != nil {
			s.readDBErr = fmt.Errorf("opening database: %w", err)
			return
		}
		s.readDB = db
	})
	return s.readDB, s.readDBErr
}

// StoreCapture records one parsed capture and its access points in a
// single transaction, returning the capture ID.
func (s *SurveyStore) StoreCapture(ctx context.Context, floor, source string, capture airodump.Capture) (id int64, err error) {
	db, err := s.getWriteDB()
	if err != nil {
		return 0, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer rollbackWithError(tx, &err)

	res, err := tx.ExecContext(ctx, insertCaptureSQL, floor, source, capture.Clients, capture.Skipped)
	if err != nil {
		return 0, fmt.Errorf("inserting capture: %w", err)
	}
	if id, err = res.LastInsertId(); err != nil {
		return 0, fmt.Errorf("retrieving capture ID: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertAccessPointSQL)
	if err != nil {
		return 0, fmt.Errorf("preparing statement: %w", err)
	}
	defer closeWithError(stmt, &err)

	for _, ap := range capture.AccessPoints {
		_, err = stmt.ExecContext(ctx, id,
			ap.BSSID,
			nullString(ap.ESSID),
			nullInt(ap.Channel),
			nullInt(ap.Signal),
			ap.Beacons,
			ap.Privacy,
			nullTime(ap.FirstSeen),
			nullTime(ap.LastSeen))
		if err != nil {
			return 0, fmt.Errorf("inserting access point %s: %w", ap.BSSID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return id, nil
}

// Captures lists the stored captures in insertion order.
func (s *SurveyStore) Captures(ctx context.Context) (captures []CaptureInfo, err error) {
	db, err := s.getReadDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, selectCapturesSQL)
	if err != nil {
		return nil, fmt.Errorf("querying captures: %w", err)
	}
	defer closeWithError(rows, &err)

	for rows.Next() {
		var c CaptureInfo
		if err = rows.Scan(&c.ID, &c.CreatedAt, &c.Floor, &c.Source, &c.Clients, &c.Skipped); err != nil {
			return nil, fmt.Errorf("scanning capture: %w", err)
		}
		captures = append(captures, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("reading captures: %w", err)
	}
	return captures, nil
}

// Close creates indexes over the loaded data and releases both database
// connections. Safe to call multiple times.
func (s *SurveyStore) Close() error {
	s.closeOnce.Do(func() {
		var errs []error
		if s.writeDB != nil {
			if err := runSQLCommand(s.writeDB, indexesSQL); err != nil {
				errs = append(errs, fmt.Errorf("creating indexes: %w", err))
			}
			if err := s.writeDB.Close(); err != nil {
				errs = append(errs, err)
			}
			s.writeDB = nil
		}
		if s.readDB != nil {
			if err := s.readDB.Close(); err != nil {
				errs = append(errs, err)
			}
			s.readDB = nil
		}
		s.closeErr = errors.Join(errs...)
	})
	return s.closeErr
}

func runSQLCommand(db *sql.DB, command string) error {
	if _, err := db.Exec(command); err != nil {
		return err
	}
	return nil
}
