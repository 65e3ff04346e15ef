package ingest

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog/log"

	"motogpanalytics/pkg/config"
	"motogpanalytics/pkg/extract"
	"motogpanalytics/pkg/fetch"
	"motogpanalytics/pkg/model"
	"motogpanalytics/pkg/pubsub"
	"motogpanalytics/pkg/store"
	"motogpanalytics/pkg/timesheet"
	"motogpanalytics/pkg/traffic"
)

const (
	// TopicSessionIngested carries one Event per stored session.
	TopicSessionIngested = "sessionIngested"

	// rounds processed concurrently; the store serializes the writes
	numWorkers = 4
)

// Event describes one successfully ingested session.
type Event struct {
	SessionID string `json:"sessionId"`
	Round     int    `json:"round"`
	Circuit   string `json:"circuit"`
	Type      string `json:"type"`
	Riders    int    `json:"riders"`
	Laps      int    `json:"laps"`
}

func (e Event) String() string {
	return fmt.Sprintf("session %s (%s): %d laps from %d riders", e.SessionID, e.Circuit, e.Laps, e.Riders)
}

// SessionID names a stored session, e.g. "R18_VAL_RAC".
func SessionID(round model.Round, sessionType string) string {
	return fmt.Sprintf("R%02d_%s_%s", round.Number, round.Code, sessionType)
}

// Runner drives the extract -> parse -> normalize -> label -> store pipeline
// over downloaded timing sheets. Each document is an independent unit of
// work: the parser keeps no state across calls, so rounds run in parallel
// and the store merges their results one writer at a time.
type Runner struct {
	conf   *config.Conf
	store  *store.Manager
	parser *timesheet.Parser
	events *pubsub.PubSub[Event]
}

func NewRunner(conf *config.Conf, st *store.Manager, events *pubsub.PubSub[Event]) *Runner {
	return &Runner{
		conf:   conf,
		store:  st,
		parser: timesheet.NewParser(conf.Fuel),
		events: events,
	}
}

// IngestSeason processes every round's qualifying and race sheets found in
// the data directory. Missing or unparsable sheets are logged and skipped;
// a season ingest never fails because one round is broken.
func (r *Runner) IngestSeason(ctx context.Context, calendar []model.Round) error {
	rounds := make(chan model.Round)
	var wg sync.WaitGroup

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for round := range rounds {
				r.ingestRound(round)
			}
		}()
	}

	for _, round := range calendar {
		select {
		case <-ctx.Done():
			close(rounds)
			wg.Wait()
			return ctx.Err()
		case rounds <- round:
		}
	}
	close(rounds)
	wg.Wait()
	return nil
}

func (r *Runner) ingestRound(round model.Round) {
	for _, sessionType := range []string{model.SessionQualifying, model.SessionRace} {
		path := fetch.SheetPath(r.conf.DataDir, round, sessionType)
		if _, err := os.Stat(path); err != nil {
			log.Warn().Int("round", round.Number).Str("session", sessionType).Msg("sheet not on disk, skipping")
			continue
		}
		if err := r.IngestSheet(path, round, sessionType); err != nil {
			log.Error().Err(err).Int("round", round.Number).Str("session", sessionType).Msg("sheet ingestion failed")
		}
	}
}

// IngestSheet runs the full pipeline for one timing-sheet document.
func (r *Runner) IngestSheet(path string, round model.Round, sessionType string) error {
	totalLaps := r.conf.RaceTotalLaps
	if sessionType == model.SessionQualifying {
		totalLaps = r.conf.QualTotalLaps
	}

	lines, err := extract.Lines(path)
	if err != nil {
		return err
	}

	records := r.parser.Parse(lines, totalLaps)
	riders := timesheet.CollectRiders(lines)
	sessionID := SessionID(round, sessionType)

	// traffic labelling is per rider, per session; never across either
	series := timesheet.GroupBySeries(records, sessionID, totalLaps)
	labelled := make([]model.LapRecord, 0, len(records))
	for _, s := range series {
		labelled = append(labelled, traffic.Label(s.Laps, r.conf.TrafficZThreshold)...)
	}

	if err := r.store.SaveSession(store.SessionInfo{
		ID:        sessionID,
		Round:     round.Number,
		Circuit:   round.Code,
		Type:      sessionType,
		TotalLaps: totalLaps,
	}); err != nil {
		return err
	}
	if err := r.store.SaveRiders(riders); err != nil {
		return err
	}
	if err := r.store.SaveLaps(sessionID, labelled); err != nil {
		return err
	}

	event := Event{
		SessionID: sessionID,
		Round:     round.Number,
		Circuit:   round.Circuit,
		Type:      sessionType,
		Riders:    len(series),
		Laps:      len(labelled),
	}
	log.Info().Str("session", sessionID).Int("riders", event.Riders).Int("laps", event.Laps).Msg("session ingested")
	if r.events != nil {
		r.events.Publish(TopicSessionIngested, event)
	}
	return nil
}
