package traffic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motogpanalytics/pkg/model"
)

func lapsWithTimes(times ...float64) []model.LapRecord {
	laps := make([]model.LapRecord, len(times))
	for i, t := range times {
		laps[i] = model.LapRecord{LapNumber: i + 1, RawTime: t, AdjustedTime: t}
	}
	return laps
}

func TestLabelSmallSampleIsAllCleanAir(t *testing.T) {
	laps := Label(lapsWithTimes(90.0, 95.0, 102.0, 88.0), DefaultZThreshold)
	require.Len(t, laps, 4)
	for _, lap := range laps {
		assert.True(t, lap.IsCleanAir)
	}
}

func TestLabelFlagsSlowOutlier(t *testing.T) {
	laps := Label(lapsWithTimes(90.0, 90.0, 90.0, 90.0, 90.0, 100.0), DefaultZThreshold)
	require.Len(t, laps, 6)
	for _, lap := range laps[:5] {
		assert.True(t, lap.IsCleanAir, "lap %d", lap.LapNumber)
	}
	assert.False(t, laps[5].IsCleanAir)
}

func TestLabelFastLapsAreNeverTraffic(t *testing.T) {
	// a fast outlier sits far below the mean; only slow laps count as traffic
	laps := Label(lapsWithTimes(90.0, 90.0, 90.0, 90.0, 90.0, 80.0), DefaultZThreshold)
	for _, lap := range laps {
		assert.True(t, lap.IsCleanAir, "lap %d", lap.LapNumber)
	}
}

func TestLabelUnusableLapIsNotCleanAir(t *testing.T) {
	laps := lapsWithTimes(90.0, 90.1, 89.9, 90.0, 90.2)
	laps = append(laps, model.LapRecord{LapNumber: 6})

	laps = Label(laps, DefaultZThreshold)
	require.Len(t, laps, 6)
	for _, lap := range laps[:5] {
		assert.True(t, lap.IsCleanAir, "lap %d", lap.LapNumber)
	}
	assert.False(t, laps[5].IsCleanAir)
}
