package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motogpanalytics/pkg/model"
)

func TestAssessRisk(t *testing.T) {
	rounds := []model.SustainabilityMetrics{
		// worst possible single round
		{Rider: "Marc MARQUEZ", DNF: true, DegradeRate: 0.2, Consistency: 1.2},
		// one DNF plus a steep degrade round
		{Rider: "Jack MILLER", DNF: true, DegradeRate: 0.2},
		// two rounds, one bad, one benign
		{Rider: "Francesco BAGNAIA", DNF: true, DegradeRate: 0.2, Consistency: 1.2},
		{Rider: "Francesco BAGNAIA", DegradeRate: 0.02, Consistency: 0.3},
	}

	profiles := AssessRisk(rounds, DefaultConfig())
	require.Len(t, profiles, 3)

	marquez := profiles[0]
	assert.Equal(t, "Marc MARQUEZ", marquez.Rider)
	assert.Equal(t, 1, marquez.EarlyExits)
	assert.Equal(t, 1, marquez.HighDegradeRounds)
	assert.Equal(t, 1, marquez.InconsistentRounds)
	assert.InDelta(t, 55.0, marquez.RiskScore, 1e-9)
	assert.Equal(t, model.RiskCritical, marquez.RiskLevel)

	miller := profiles[1]
	assert.Equal(t, "Jack MILLER", miller.Rider)
	assert.InDelta(t, 45.0, miller.RiskScore, 1e-9)
	assert.Equal(t, model.RiskHigh, miller.RiskLevel)

	// the same bad round averaged over two rounds halves the score
	bagnaia := profiles[2]
	assert.Equal(t, "Francesco BAGNAIA", bagnaia.Rider)
	assert.Equal(t, 2, bagnaia.Rounds)
	assert.InDelta(t, 27.5, bagnaia.RiskScore, 1e-9)
	assert.Equal(t, model.RiskLow, bagnaia.RiskLevel)
}

func TestAssessRiskThresholdsAreExclusive(t *testing.T) {
	cfg := DefaultConfig()
	rounds := []model.SustainabilityMetrics{
		// degrade rate and consistency exactly at the thresholds do not count
		{Rider: "Luca MARINI", DegradeRate: cfg.HighDegradeThreshold, Consistency: cfg.InconsistencyThreshold},
	}
	profiles := AssessRisk(rounds, cfg)
	require.Len(t, profiles, 1)
	assert.Equal(t, 0, profiles[0].HighDegradeRounds)
	assert.Equal(t, 0, profiles[0].InconsistentRounds)
	assert.InDelta(t, 0.0, profiles[0].RiskScore, 1e-9)
	assert.Equal(t, model.RiskLow, profiles[0].RiskLevel)
}

func TestIsDNF(t *testing.T) {
	cfg := DefaultConfig()
	// 80% of a 27 lap race is 21.6 laps
	assert.True(t, cfg.IsDNF(21, 27))
	assert.False(t, cfg.IsDNF(22, 27))
	// short sessions scale with the declared distance
	assert.True(t, cfg.IsDNF(9, 12))
	assert.False(t, cfg.IsDNF(10, 12))

	// the literal floor overrides the ratio when set
	cfg.DNFLapFloor = 20
	assert.True(t, cfg.IsDNF(19, 27))
	assert.False(t, cfg.IsDNF(20, 27))
	assert.False(t, cfg.IsDNF(26, 27))
}
