package analysis

import (
	"sort"

	"motogpanalytics/pkg/model"
)

// QRD bucket labels, keyed on the season-average delta. Negative means the
// rider's best race lap beat their best qualifying lap.
const (
	QRDEliteRacer      = "Elite race driver"
	QRDConsistent      = "Consistent"
	QRDSolid           = "Solid"
	QRDModerateGap     = "Moderate gap"
	QRDQualiSpecialist = "Qualifying specialist"
)

// ClassifyQRD buckets a season-average qualifying-race delta.
func ClassifyQRD(avgQRD float64) string {
	switch {
	case avgQRD < 0:
		return QRDEliteRacer
	case avgQRD < 0.2:
		return QRDConsistent
	case avgQRD < 0.5:
		return QRDSolid
	case avgQRD < 1.0:
		return QRDModerateGap
	default:
		return QRDQualiSpecialist
	}
}

// RoundQRD relates each rider's best qualifying lap to their best race lap
// for one round. Riders absent from the race results are excluded; a
// did-not-start is not a delta.
func RoundQRD(round int, circuit string, qual, race map[string]*model.SessionSeries, cfg Config) []model.QualifyingRaceDelta {
	results := make([]model.QualifyingRaceDelta, 0, len(qual))
	for rider, qualSeries := range qual {
		raceSeries, raced := race[rider]
		if !raced || len(qualSeries.Laps) == 0 || len(raceSeries.Laps) == 0 {
			continue
		}

		qualBest, _ := minMax(qualSeries.Times())
		raceBest, _ := minMax(raceSeries.Times())

		results = append(results, model.QualifyingRaceDelta{
			Round:       round,
			Circuit:     circuit,
			Rider:       rider,
			QualBestLap: qualBest,
			RaceBestLap: raceBest,
			QRD:         qualBest - raceBest,
			QualLaps:    len(qualSeries.Laps),
			RaceLaps:    len(raceSeries.Laps),
			DNF:         cfg.IsDNF(len(raceSeries.Laps), raceSeries.TotalLaps),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].QRD < results[j].QRD
	})
	return results
}

// SeasonQRDStats aggregates per-round deltas into season numbers per rider,
// sorted by average QRD ascending.
func SeasonQRDStats(rounds []model.QualifyingRaceDelta) []model.QRDSeasonStats {
	byRider := make(map[string][]model.QualifyingRaceDelta)
	for _, q := range rounds {
		byRider[q.Rider] = append(byRider[q.Rider], q)
	}

	stats := make([]model.QRDSeasonStats, 0, len(byRider))
	for rider, qs := range byRider {
		deltas := make([]float64, len(qs))
		qualTimes := make([]float64, len(qs))
		raceTimes := make([]float64, len(qs))
		var dnfs int
		for i, q := range qs {
			deltas[i] = q.QRD
			qualTimes[i] = q.QualBestLap
			raceTimes[i] = q.RaceBestLap
			if q.DNF {
				dnfs++
			}
		}

		minQRD, maxQRD := minMax(deltas)
		avgQRD := mean(deltas)
		stats = append(stats, model.QRDSeasonStats{
			Rider:       rider,
			Rounds:      len(qs),
			AvgQRD:      avgQRD,
			StdQRD:      sampleStd(deltas),
			MinQRD:      minQRD,
			MaxQRD:      maxQRD,
			AvgQualTime: mean(qualTimes),
			AvgRaceTime: mean(raceTimes),
			Finishes:    len(qs) - dnfs,
			DNFs:        dnfs,
			Category:    ClassifyQRD(avgQRD),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].AvgQRD < stats[j].AvgQRD
	})
	return stats
}

// PaceSustainability is the within-session cousin of the qualifying-race
// delta: median normalized time minus best normalized time of one race
// session. It historically went by the same name as the cross-session
// metric; here it keeps its own type so the two are never conflated.
func PaceSustainability(series *model.SessionSeries) (model.PaceSustainabilityDelta, bool) {
	if series == nil || len(series.Laps) < 2 {
		return model.PaceSustainabilityDelta{}, false
	}
	times := series.Times()
	best, _ := minMax(times)
	med := median(times)
	return model.PaceSustainabilityDelta{
		Rider:     series.Rider,
		SessionID: series.SessionID,
		MedianLap: med,
		BestLap:   best,
		Delta:     med - best,
	}, true
}
