package store

import (
	"database/sql"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"motogpanalytics/pkg/model"
)

// SessionInfo describes one stored session plus its lap count.
type SessionInfo struct {
	ID        string `json:"id"`
	Round     int    `json:"round"`
	Circuit   string `json:"circuit"`
	Type      string `json:"type"`
	TotalLaps int    `json:"totalLaps"`
	LapCount  int    `json:"lapCount"`
}

// Manager owns the sqlite handle. Writes are serialized through the mutex;
// independent per-round parses can run concurrently and hand their results
// to a single writer here.
type Manager struct {
	mu sync.Mutex
	db *sql.DB
}

func NewManager(dbPath string) (*Manager, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open lap database")
	}
	m := &Manager{db: db}
	if err := m.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return m, nil
}

func (m *Manager) Close() error {
	return m.db.Close()
}

func (m *Manager) createTables() error {
	for _, stmt := range []string{
		buildCreateRidersTable(),
		buildCreateSessionsTable(),
		buildCreateLapsTable(),
	} {
		if _, err := m.db.Exec(stmt); err != nil {
			return errors.Wrap(err, "failed to create tables")
		}
	}
	return nil
}

// SaveSession registers a session before its laps are stored. Re-saving the
// same session is allowed and overwrites the previous row.
func (m *Manager) SaveSession(s SessionInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, err := m.db.Exec(buildInsertSessionCommand(), s.ID, s.Round, s.Circuit, s.Type, s.TotalLaps)
	return errors.Wrapf(err, "failed to save session %s", s.ID)
}

// SaveRiders upserts rider identities captured from the sheet headers.
func (m *Manager) SaveRiders(riders []model.RiderInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx, err := m.db.Begin()
	if err != nil {
		return errors.Wrap(err, "failed to save riders")
	}
	for _, r := range riders {
		if _, err := tx.Exec(buildInsertRiderCommand(), r.FullName, r.Number, r.Make, r.Country); err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "failed to save rider %s", r.FullName)
		}
	}
	return errors.Wrap(tx.Commit(), "failed to save riders")
}

// SaveLaps stores the lap records of one parsed session, keyed by
// (rider, session, lap number). Ingesting the same sheet twice replaces the
// rows instead of duplicating them.
func (m *Manager) SaveLaps(sessionID string, records []model.LapRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx, err := m.db.Begin()
	if err != nil {
		return errors.Wrap(err, "failed to save laps")
	}
	for _, rec := range records {
		sectors := [4]interface{}{nil, nil, nil, nil}
		for i, s := range rec.SectorTimes {
			if i == 4 {
				break
			}
			sectors[i] = s
		}
		cleanAir := 0
		if rec.IsCleanAir {
			cleanAir = 1
		}
		_, err := tx.Exec(buildInsertLapCommand(),
			rec.Rider, sessionID, rec.LapNumber, rec.RawTime, rec.AdjustedTime,
			sectors[0], sectors[1], sectors[2], sectors[3], cleanAir)
		if err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "failed to save lap %d of %s", rec.LapNumber, rec.Rider)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to save laps")
	}

	log.Debug().Str("session", sessionID).Int("laps", len(records)).Msg("laps stored")
	return nil
}

// Session returns the stored metadata of one session.
func (m *Manager) Session(sessionID string) (SessionInfo, error) {
	var s SessionInfo
	err := m.db.QueryRow(buildSelectSessionCommand(), sessionID).
		Scan(&s.ID, &s.Round, &s.Circuit, &s.Type, &s.TotalLaps)
	if err == sql.ErrNoRows {
		return s, errors.Errorf("unknown session %s", sessionID)
	}
	return s, errors.Wrapf(err, "failed to load session %s", sessionID)
}

// Sessions lists every stored session with its lap count.
func (m *Manager) Sessions() ([]SessionInfo, error) {
	rows, err := m.db.Query(buildSelectSessionsCommand())
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sessions")
	}
	return processSessionRows(rows)
}

// SeriesForSession loads one session's laps back as per-rider ordered
// series, ready for the analytics passes.
func (m *Manager) SeriesForSession(sessionID string) (map[string]*model.SessionSeries, error) {
	info, err := m.Session(sessionID)
	if err != nil {
		return nil, err
	}

	rows, err := m.db.Query(buildSelectLapsCommand(), sessionID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load laps for %s", sessionID)
	}
	records, err := processLapRows(rows)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load laps for %s", sessionID)
	}

	series := make(map[string]*model.SessionSeries)
	for _, rec := range records {
		s, ok := series[rec.Rider]
		if !ok {
			s = &model.SessionSeries{
				Rider:     rec.Rider,
				SessionID: sessionID,
				TotalLaps: info.TotalLaps,
			}
			series[rec.Rider] = s
		}
		s.Laps = append(s.Laps, rec)
	}
	for _, s := range series {
		s.SortByLap()
	}
	return series, nil
}
