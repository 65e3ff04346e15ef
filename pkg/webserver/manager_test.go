package webserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motogpanalytics/pkg/config"
	"motogpanalytics/pkg/model"
	"motogpanalytics/pkg/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	st, err := store.NewManager(filepath.Join(t.TempDir(), "laps.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	require.NoError(t, st.SaveSession(store.SessionInfo{
		ID: "R07_CAT_RAC", Round: 7, Circuit: "CAT", Type: model.SessionRace, TotalLaps: 3,
	}))
	require.NoError(t, st.SaveSession(store.SessionInfo{
		ID: "R07_CAT_Q2", Round: 7, Circuit: "CAT", Type: model.SessionQualifying, TotalLaps: 2,
	}))
	require.NoError(t, st.SaveLaps("R07_CAT_RAC", []model.LapRecord{
		{Rider: "Francesco BAGNAIA", LapNumber: 1, RawTime: 90.0, AdjustedTime: 90.0},
		{Rider: "Francesco BAGNAIA", LapNumber: 2, RawTime: 89.4, AdjustedTime: 89.4},
		{Rider: "Francesco BAGNAIA", LapNumber: 3, RawTime: 89.8, AdjustedTime: 89.8},
	}))
	require.NoError(t, st.SaveLaps("R07_CAT_Q2", []model.LapRecord{
		{Rider: "Francesco BAGNAIA", LapNumber: 1, RawTime: 89.2, AdjustedTime: 89.2},
		{Rider: "Francesco BAGNAIA", LapNumber: 2, RawTime: 88.9, AdjustedTime: 88.9},
	}))

	conf := &config.Conf{}
	config.ApplyDefaults(conf)

	srv := httptest.NewServer(NewManager(conf, st).r)
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, into interface{}) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(into))
}

func TestHandleSessions(t *testing.T) {
	srv := newTestServer(t)
	var sessions []store.SessionInfo
	getJSON(t, srv.URL+"/api/sessions", &sessions)
	require.Len(t, sessions, 2)
}

func TestHandleSustainability(t *testing.T) {
	srv := newTestServer(t)
	var metrics []model.SustainabilityMetrics
	getJSON(t, srv.URL+"/api/sessions/R07_CAT_RAC/sustainability", &metrics)
	require.Len(t, metrics, 1)
	assert.Equal(t, "Francesco BAGNAIA", metrics[0].Rider)
	assert.InDelta(t, 89.8-89.4, metrics[0].ISD, 1e-9)
}

func TestHandleRoundQRD(t *testing.T) {
	srv := newTestServer(t)
	var deltas []model.QualifyingRaceDelta
	getJSON(t, srv.URL+"/api/rounds/7/qrd", &deltas)
	require.Len(t, deltas, 1)
	assert.InDelta(t, 88.9-89.4, deltas[0].QRD, 1e-9)
}

func TestHandleUnknownSession(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/sessions/R99_XXX_RAC/sustainability")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleSeasonRisk(t *testing.T) {
	srv := newTestServer(t)
	var profiles []model.RiderRiskProfile
	getJSON(t, srv.URL+"/api/season/risk", &profiles)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Francesco BAGNAIA", profiles[0].Rider)
}
