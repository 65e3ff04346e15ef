package analysis

import (
	"sort"

	"motogpanalytics/pkg/model"
)

const (
	// slope thresholds (seconds/lap) separating the strategy categories
	improverSlope = -0.1
	degraderSlope = 0.1

	minTrendLaps    = 3
	minEnhancedLaps = 5
)

// ClassifySlope buckets a degradation slope into a strategy category.
// Improvers get faster through the stint (warm-up, finding rhythm),
// degraders lose pace (tires falling off), maintainers hold steady.
func ClassifySlope(slope float64) string {
	switch {
	case slope < improverSlope:
		return model.CategoryImprover
	case slope > degraderSlope:
		return model.CategoryDegrader
	default:
		return model.CategoryMaintainer
	}
}

// Trend fits an OLS line of normalized lap time against lap number for one
// rider's session. Fewer than three laps is not enough for a trend and
// reports ok=false.
func Trend(series *model.SessionSeries) (model.DegradationResult, bool) {
	if series == nil || len(series.Laps) < minTrendLaps {
		return model.DegradationResult{}, false
	}

	x := make([]float64, len(series.Laps))
	for i, lap := range series.Laps {
		x[i] = float64(lap.LapNumber)
	}
	y := series.Times()

	slope, _, r2, ok := linearFit(x, y)
	if !ok {
		return model.DegradationResult{}, false
	}

	return model.DegradationResult{
		Rider:       series.Rider,
		Slope:       slope,
		RSquared:    r2,
		SampleCount: len(series.Laps),
		Category:    ClassifySlope(slope),
	}, true
}

// SessionTrends computes the trend for every rider in a session, sorted by
// slope ascending (best tire management first). Riders with too few laps
// are left out rather than failing the batch.
func SessionTrends(series map[string]*model.SessionSeries) []model.DegradationResult {
	results := make([]model.DegradationResult, 0, len(series))
	for _, s := range series {
		if r, ok := Trend(s); ok {
			results = append(results, r)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Slope < results[j].Slope
	})
	return results
}

// EnhancedTrend separates the warm-up phase from the race phase: it reports
// the overall slope plus a warm-up-corrected slope fitted only on laps past
// cfg.WarmupLaps. It needs at least five laps overall; the corrected fit
// needs three remaining laps or reports as unavailable.
func EnhancedTrend(series *model.SessionSeries, cfg Config) (model.EnhancedDegradationResult, bool) {
	if series == nil || len(series.Laps) < minEnhancedLaps {
		return model.EnhancedDegradationResult{}, false
	}

	x := make([]float64, len(series.Laps))
	for i, lap := range series.Laps {
		x[i] = float64(lap.LapNumber)
	}
	y := series.Times()

	overallSlope, _, overallR2, ok := linearFit(x, y)
	if !ok {
		return model.EnhancedDegradationResult{}, false
	}

	best, _ := minMax(y)
	last := y[len(y)-1]

	result := model.EnhancedDegradationResult{
		Rider:            series.Rider,
		Laps:             len(series.Laps),
		BestLap:          best,
		LastLap:          last,
		DegradationDelta: last - best,
		OverallSlope:     overallSlope,
		OverallRSquared:  overallR2,
	}

	var warmedX, warmedY []float64
	for i, lap := range series.Laps {
		if lap.LapNumber > cfg.WarmupLaps {
			warmedX = append(warmedX, x[i])
			warmedY = append(warmedY, y[i])
		}
	}
	if len(warmedX) >= minTrendLaps {
		if slope, _, r2, ok := linearFit(warmedX, warmedY); ok {
			result.WarmedSlope = slope
			result.WarmedRSquared = r2
			result.WarmedAvailable = true
		}
	}

	return result, true
}

// SessionEnhanced computes the enhanced trend for every rider in a session,
// sorted by degradation delta ascending.
func SessionEnhanced(series map[string]*model.SessionSeries, cfg Config) []model.EnhancedDegradationResult {
	results := make([]model.EnhancedDegradationResult, 0, len(series))
	for _, s := range series {
		if r, ok := EnhancedTrend(s, cfg); ok {
			results = append(results, r)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].DegradationDelta < results[j].DegradationDelta
	})
	return results
}
