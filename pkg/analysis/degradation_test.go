package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motogpanalytics/pkg/model"
)

func seriesWithTimes(rider string, times ...float64) *model.SessionSeries {
	s := &model.SessionSeries{Rider: rider, SessionID: "R07_MUG_RAC", TotalLaps: len(times)}
	for i, t := range times {
		s.Laps = append(s.Laps, model.LapRecord{LapNumber: i + 1, RawTime: t, AdjustedTime: t})
	}
	return s
}

func TestClassifySlope(t *testing.T) {
	assert.Equal(t, model.CategoryImprover, ClassifySlope(-0.2))
	assert.Equal(t, model.CategoryDegrader, ClassifySlope(0.2))
	assert.Equal(t, model.CategoryMaintainer, ClassifySlope(0.0))
	// the thresholds themselves are maintainer territory
	assert.Equal(t, model.CategoryMaintainer, ClassifySlope(-0.1))
	assert.Equal(t, model.CategoryMaintainer, ClassifySlope(0.1))
}

func TestTrendDegradingStint(t *testing.T) {
	s := seriesWithTimes("Jorge MARTIN", 90.0, 90.2, 90.4, 90.6)
	r, ok := Trend(s)
	require.True(t, ok)
	assert.InDelta(t, 0.2, r.Slope, 1e-9)
	assert.InDelta(t, 1.0, r.RSquared, 1e-9)
	assert.Equal(t, 4, r.SampleCount)
	assert.Equal(t, model.CategoryDegrader, r.Category)
}

func TestTrendNeedsThreeLaps(t *testing.T) {
	_, ok := Trend(seriesWithTimes("Jorge MARTIN", 90.0, 90.2))
	assert.False(t, ok)
	_, ok = Trend(nil)
	assert.False(t, ok)
}

func TestSessionTrendsSortedBySlope(t *testing.T) {
	series := map[string]*model.SessionSeries{
		"Jorge MARTIN":      seriesWithTimes("Jorge MARTIN", 90.0, 90.2, 90.4, 90.6),
		"Francesco BAGNAIA": seriesWithTimes("Francesco BAGNAIA", 90.6, 90.4, 90.2, 90.0),
		"Short STINT":       seriesWithTimes("Short STINT", 90.0),
	}
	results := SessionTrends(series)
	require.Len(t, results, 2)
	assert.Equal(t, "Francesco BAGNAIA", results[0].Rider)
	assert.Equal(t, "Jorge MARTIN", results[1].Rider)
}

func TestEnhancedTrendSeparatesWarmup(t *testing.T) {
	// three slow opening laps, then a steady 0.1s/lap decay
	s := seriesWithTimes("Brad BINDER", 93.0, 92.0, 91.0, 90.0, 90.1, 90.2, 90.3, 90.4)
	r, ok := EnhancedTrend(s, DefaultConfig())
	require.True(t, ok)

	assert.Equal(t, 8, r.Laps)
	assert.InDelta(t, 90.0, r.BestLap, 1e-9)
	assert.InDelta(t, 90.4, r.LastLap, 1e-9)
	assert.InDelta(t, 0.4, r.DegradationDelta, 1e-9)
	assert.Less(t, r.OverallSlope, 0.0)

	require.True(t, r.WarmedAvailable)
	assert.InDelta(t, 0.1, r.WarmedSlope, 1e-9)
	assert.InDelta(t, 1.0, r.WarmedRSquared, 1e-9)
}

func TestEnhancedTrendWarmedFitUnavailable(t *testing.T) {
	// five laps leave only two past the warm-up window
	s := seriesWithTimes("Brad BINDER", 93.0, 92.0, 91.0, 90.0, 90.1)
	r, ok := EnhancedTrend(s, DefaultConfig())
	require.True(t, ok)
	assert.False(t, r.WarmedAvailable)
}

func TestEnhancedTrendNeedsFiveLaps(t *testing.T) {
	_, ok := EnhancedTrend(seriesWithTimes("Brad BINDER", 90.0, 90.1, 90.2, 90.3), DefaultConfig())
	assert.False(t, ok)
}
