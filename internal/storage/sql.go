package storage

import (
	_ "embed"
)

const (
	selectFloorsSQL = `
SELECT
    id,
    name
FROM floors
ORDER BY id`

	selectMeasurementsSQL = `
SELECT
    m.timestamp,
    m.x_position,
    m.y_position,
    a.bssid,
    a.ssid,
    a.channel,
    m.signal_strength
FROM measurements m
JOIN access_points a ON m.ap_id = a.id
WHERE
    m.floor_id = ?
ORDER BY m.timestamp, a.ssid`

	selectSignalStatisticsSQL = `
SELECT
    a.bssid,
    a.ssid,
    COUNT(m.signal_strength),
    AVG(m.signal_strength),
    MIN(m.signal_strength),
    MAX(m.signal_strength),
    AVG(m.signal_strength * m.signal_strength)
FROM measurements m
JOIN access_points a ON m.ap_id = a.id
WHERE
    m.floor_id = ?
GROUP BY a.bssid, a.ssid
ORDER BY a.ssid, a.bssid`

	insertCaptureSQL = `
INSERT INTO captures (created_at,
                      floor,
                      source,
                      clients,
                      skipped)
VALUES (CURRENT_TIMESTAMP, ?, ?, ?, ?)`

	selectCapturesSQL = `
SELECT
    id,
    created_at,
    floor,
    source,
    clients,
    skipped
FROM captures`

	insertAccessPointSQL = `
INSERT INTO access_points (capture_id,
                           bssid,
                           essid,
                           channel,
                           signal,
                           beacons,
                           privacy,
                           first_seen,
                           last_seen)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
)

//go:embed schema.sql
var schemaSQL string

//go:embed indexes.sql
var indexesSQL string
