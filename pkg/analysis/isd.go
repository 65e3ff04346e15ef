package analysis

import (
	"sort"

	"motogpanalytics/pkg/model"
)

// ISD bucket labels, keyed on the season-average delta.
const (
	ISDElite       = "Elite"
	ISDExcellent   = "Excellent"
	ISDGood        = "Good"
	ISDModerate    = "Moderate"
	ISDSignificant = "Significant issues"
)

// ClassifyISD buckets a season-average in-session sustainability delta.
func ClassifyISD(avgISD float64) string {
	switch {
	case avgISD < 0.3:
		return ISDElite
	case avgISD < 0.5:
		return ISDExcellent
	case avgISD < 0.8:
		return ISDGood
	case avgISD < 1.5:
		return ISDModerate
	default:
		return ISDSignificant
	}
}

// Sustainability computes the in-session sustainability delta and its
// companion metrics for one rider's session. ISD is the final lap minus the
// best lap: positive means the rider slowed toward the end. At least two
// laps are required.
func Sustainability(series *model.SessionSeries, cfg Config) (model.SustainabilityMetrics, bool) {
	if series == nil || len(series.Laps) < 2 {
		return model.SustainabilityMetrics{}, false
	}

	times := series.Times()
	best := times[0]
	lapOfBest := 0
	for i, t := range times {
		if t < best {
			best = t
			lapOfBest = i
		}
	}

	first := times[0]
	final := times[len(times)-1]
	isd := final - best
	lapsAfterBest := len(times) - lapOfBest - 1

	degradeRate := 0.0
	if lapsAfterBest > 0 {
		degradeRate = isd / float64(lapsAfterBest)
	}

	return model.SustainabilityMetrics{
		Rider:         series.Rider,
		SessionID:     series.SessionID,
		BestLap:       best,
		FinalLap:      final,
		FirstLap:      first,
		AvgLap:        mean(times),
		ISD:           isd,
		LapOfBest:     lapOfBest,
		LapsAfterBest: lapsAfterBest,
		DegradeRate:   degradeRate,
		Consistency:   sampleStd(times),
		WarmUpTime:    first - best,
		TotalLaps:     len(times),
		DNF:           cfg.IsDNF(len(times), series.TotalLaps),
	}, true
}

// SessionSustainability computes metrics for every rider in a session,
// sorted by ISD ascending (best sustainers first).
func SessionSustainability(series map[string]*model.SessionSeries, cfg Config) []model.SustainabilityMetrics {
	results := make([]model.SustainabilityMetrics, 0, len(series))
	for _, s := range series {
		if m, ok := Sustainability(s, cfg); ok {
			results = append(results, m)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].ISD < results[j].ISD
	})
	return results
}

// SeasonSustainabilityStats aggregates per-round sustainability metrics into
// season numbers per rider, sorted by average ISD ascending.
func SeasonSustainabilityStats(rounds []model.SustainabilityMetrics) []model.SeasonSustainability {
	byRider := make(map[string][]model.SustainabilityMetrics)
	for _, m := range rounds {
		byRider[m.Rider] = append(byRider[m.Rider], m)
	}

	stats := make([]model.SeasonSustainability, 0, len(byRider))
	for rider, ms := range byRider {
		isds := make([]float64, len(ms))
		bests := make([]float64, len(ms))
		finals := make([]float64, len(ms))
		consistencies := make([]float64, len(ms))
		degradeRates := make([]float64, len(ms))
		var lapsCompleted float64
		var dnfs int
		for i, m := range ms {
			isds[i] = m.ISD
			bests[i] = m.BestLap
			finals[i] = m.FinalLap
			consistencies[i] = m.Consistency
			degradeRates[i] = m.DegradeRate
			lapsCompleted += float64(m.TotalLaps)
			if m.DNF {
				dnfs++
			}
		}

		minISD, maxISD := minMax(isds)
		avgISD := mean(isds)
		stats = append(stats, model.SeasonSustainability{
			Rider:            rider,
			Rounds:           len(ms),
			AvgISD:           avgISD,
			StdISD:           sampleStd(isds),
			MinISD:           minISD,
			MaxISD:           maxISD,
			AvgBestLap:       mean(bests),
			AvgFinalLap:      mean(finals),
			AvgConsistency:   mean(consistencies),
			AvgDegradeRate:   mean(degradeRates),
			AvgLapsCompleted: lapsCompleted / float64(len(ms)),
			Finishes:         len(ms) - dnfs,
			DNFs:             dnfs,
			Category:         ClassifyISD(avgISD),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].AvgISD < stats[j].AvgISD
	})
	return stats
}
