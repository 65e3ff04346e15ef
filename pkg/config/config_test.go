package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmptyPathYieldsDefaults(t *testing.T) {
	conf := Load("")
	assert.Equal(t, "./motogp-laps.db", conf.DBPath)
	assert.Equal(t, ":8080", conf.ListenAddress)
	assert.Equal(t, 2023, conf.SeasonYear)
	assert.Equal(t, 27, conf.RaceTotalLaps)
	assert.Equal(t, 12, conf.QualTotalLaps)
	assert.InDelta(t, 0.7, conf.Fuel.BurnRate, 1e-9)
	assert.InDelta(t, 0.035, conf.Fuel.Alpha, 1e-9)
	assert.InDelta(t, 1.8, conf.TrafficZThreshold, 1e-9)
	assert.Equal(t, 3, conf.Analysis.WarmupLaps)
	assert.InDelta(t, 0.8, conf.Analysis.DNFCompletionRatio, 1e-9)
}

func TestLoadOverridesKeepDefaultsElsewhere(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	data := `{"dbPath": "/tmp/other.db", "seasonYear": 2024, "analysis": {"warmupLaps": 5}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	conf := Load(path)
	assert.Equal(t, path, conf.SourcePath())
	assert.Equal(t, "/tmp/other.db", conf.DBPath)
	assert.Equal(t, 2024, conf.SeasonYear)
	assert.Equal(t, 5, conf.Analysis.WarmupLaps)
	// untouched keys still get defaults
	assert.Equal(t, ":8080", conf.ListenAddress)
	assert.InDelta(t, 0.8, conf.Analysis.DNFCompletionRatio, 1e-9)
}

func TestApplyDefaultsKeepsLiteralDNFFloor(t *testing.T) {
	conf := &Conf{}
	conf.Analysis.DNFLapFloor = 20
	ApplyDefaults(conf)
	// a configured literal floor suppresses the ratio default
	assert.Equal(t, 20, conf.Analysis.DNFLapFloor)
	assert.InDelta(t, 0.0, conf.Analysis.DNFCompletionRatio, 1e-9)
}
