package webserver

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"motogpanalytics/pkg/analysis"
	"motogpanalytics/pkg/config"
	"motogpanalytics/pkg/model"
	"motogpanalytics/pkg/season"
	"motogpanalytics/pkg/store"
)

// Manager exposes the stored seasons as a JSON API. All analytics are
// recomputed on demand from the lap store; nothing derived is persisted.
type Manager struct {
	r     *mux.Router
	conf  *config.Conf
	store *store.Manager
}

func NewManager(conf *config.Conf, st *store.Manager) *Manager {
	m := &Manager{
		r:     mux.NewRouter(),
		conf:  conf,
		store: st,
	}
	m.routes()
	return m
}

func (m *Manager) routes() {
	api := m.r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/sessions", m.handleSessions).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/degradation", m.handleDegradation).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/sustainability", m.handleSustainability).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/pace", m.handlePace).Methods(http.MethodGet)
	api.HandleFunc("/rounds/{round}/qrd", m.handleRoundQRD).Methods(http.MethodGet)
	api.HandleFunc("/season/sustainability", m.handleSeasonSustainability).Methods(http.MethodGet)
	api.HandleFunc("/season/qrd", m.handleSeasonQRD).Methods(http.MethodGet)
	api.HandleFunc("/season/risk", m.handleSeasonRisk).Methods(http.MethodGet)
}

// Serve runs the server until an interrupt, then shuts down gracefully.
func (m *Manager) Serve() {
	srv := &http.Server{
		Addr:         m.conf.ListenAddress,
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      m.r,
	}

	go func() {
		log.Info().Str("address", m.conf.ListenAddress).Msg("webserver listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("webserver stopped")
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Shutdown(ctx)
	log.Info().Msg("webserver shut down")
}

func (m *Manager) handleSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := m.store.Sessions()
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, sessions)
}

func (m *Manager) handleDegradation(w http.ResponseWriter, r *http.Request) {
	series, ok := m.sessionSeries(w, r)
	if !ok {
		return
	}
	writeJSON(w, map[string]interface{}{
		"trends":   analysis.SessionTrends(series),
		"enhanced": analysis.SessionEnhanced(series, m.conf.Analysis),
	})
}

func (m *Manager) handleSustainability(w http.ResponseWriter, r *http.Request) {
	series, ok := m.sessionSeries(w, r)
	if !ok {
		return
	}
	writeJSON(w, analysis.SessionSustainability(series, m.conf.Analysis))
}

func (m *Manager) handlePace(w http.ResponseWriter, r *http.Request) {
	series, ok := m.sessionSeries(w, r)
	if !ok {
		return
	}
	deltas := make([]model.PaceSustainabilityDelta, 0, len(series))
	for _, s := range series {
		if d, ok := analysis.PaceSustainability(s); ok {
			deltas = append(deltas, d)
		}
	}
	writeJSON(w, deltas)
}

func (m *Manager) handleRoundQRD(w http.ResponseWriter, r *http.Request) {
	round, err := strconv.Atoi(mux.Vars(r)["round"])
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	qual, race, circuit, err := season.RoundSeries(m.store, round)
	if err != nil {
		writeError(w, err, http.StatusNotFound)
		return
	}
	writeJSON(w, analysis.RoundQRD(round, circuit, qual, race, m.conf.Analysis))
}

func (m *Manager) handleSeasonSustainability(w http.ResponseWriter, r *http.Request) {
	rounds, err := season.RaceSustainability(m.store, m.conf.Analysis)
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, analysis.SeasonSustainabilityStats(rounds))
}

func (m *Manager) handleSeasonQRD(w http.ResponseWriter, r *http.Request) {
	deltas, err := season.QRD(m.store, m.conf.Analysis)
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, analysis.SeasonQRDStats(deltas))
}

func (m *Manager) handleSeasonRisk(w http.ResponseWriter, r *http.Request) {
	rounds, err := season.RaceSustainability(m.store, m.conf.Analysis)
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, analysis.AssessRisk(rounds, m.conf.Analysis))
}

func (m *Manager) sessionSeries(w http.ResponseWriter, r *http.Request) (map[string]*model.SessionSeries, bool) {
	series, err := m.store.SeriesForSession(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, http.StatusNotFound)
		return nil, false
	}
	return series, true
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
