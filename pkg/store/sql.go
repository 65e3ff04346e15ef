package store

import (
	"database/sql"

	"motogpanalytics/pkg/model"
)

func buildCreateRidersTable() string {
	return `CREATE TABLE IF NOT EXISTS riders (
		name TEXT PRIMARY KEY,
		number INTEGER,
		make TEXT,
		country TEXT);`
}

func buildCreateSessionsTable() string {
	return `CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		round INTEGER NOT NULL,
		circuit TEXT NOT NULL,
		session_type TEXT NOT NULL,
		total_laps INTEGER NOT NULL);`
}

func buildCreateLapsTable() string {
	return `CREATE TABLE IF NOT EXISTS laps (
		rider TEXT NOT NULL,
		session_id TEXT NOT NULL,
		lap_number INTEGER NOT NULL,
		raw_time REAL NOT NULL,
		adjusted_time REAL NOT NULL,
		s1 REAL, s2 REAL, s3 REAL, s4 REAL,
		is_clean_air INTEGER NOT NULL DEFAULT 1,
		PRIMARY KEY (rider, session_id, lap_number));`
}

func buildInsertLapCommand() string {
	return `INSERT OR REPLACE INTO laps
		(rider, session_id, lap_number, raw_time, adjusted_time, s1, s2, s3, s4, is_clean_air)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
}

func buildInsertRiderCommand() string {
	return `INSERT OR REPLACE INTO riders (name, number, make, country) VALUES (?, ?, ?, ?)`
}

func buildInsertSessionCommand() string {
	return `INSERT OR REPLACE INTO sessions (id, round, circuit, session_type, total_laps) VALUES (?, ?, ?, ?, ?)`
}

func buildSelectLapsCommand() string {
	return `SELECT rider, lap_number, raw_time, adjusted_time, s1, s2, s3, s4, is_clean_air
		FROM laps WHERE session_id = ? ORDER BY rider, lap_number`
}

func processLapRows(rows *sql.Rows) ([]model.LapRecord, error) {
	defer rows.Close()

	records := make([]model.LapRecord, 0)
	for rows.Next() {
		var rec model.LapRecord
		var sectors [4]sql.NullFloat64
		var cleanAir int
		err := rows.Scan(&rec.Rider, &rec.LapNumber, &rec.RawTime, &rec.AdjustedTime,
			&sectors[0], &sectors[1], &sectors[2], &sectors[3], &cleanAir)
		if err != nil {
			return records, err
		}
		for _, s := range sectors {
			if s.Valid {
				rec.SectorTimes = append(rec.SectorTimes, s.Float64)
			}
		}
		rec.IsCleanAir = cleanAir == 1
		records = append(records, rec)
	}
	return records, rows.Err()
}

func buildSelectSessionCommand() string {
	return `SELECT id, round, circuit, session_type, total_laps FROM sessions WHERE id = ?`
}

func buildSelectSessionsCommand() string {
	return `SELECT s.id, s.round, s.circuit, s.session_type, s.total_laps, COUNT(l.lap_number)
		FROM sessions s LEFT JOIN laps l ON l.session_id = s.id
		GROUP BY s.id ORDER BY s.round, s.session_type`
}

func processSessionRows(rows *sql.Rows) ([]SessionInfo, error) {
	defer rows.Close()

	sessions := make([]SessionInfo, 0)
	for rows.Next() {
		var s SessionInfo
		err := rows.Scan(&s.ID, &s.Round, &s.Circuit, &s.Type, &s.TotalLaps, &s.LapCount)
		if err != nil {
			return sessions, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
