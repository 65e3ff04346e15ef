package season

import (
	"motogpanalytics/pkg/analysis"
	"motogpanalytics/pkg/model"
	"motogpanalytics/pkg/store"
)

// RaceSustainability computes per-round sustainability metrics over every
// stored race session.
func RaceSustainability(st *store.Manager, cfg analysis.Config) ([]model.SustainabilityMetrics, error) {
	sessions, err := st.Sessions()
	if err != nil {
		return nil, err
	}
	rounds := make([]model.SustainabilityMetrics, 0)
	for _, s := range sessions {
		if s.Type != model.SessionRace {
			continue
		}
		series, err := st.SeriesForSession(s.ID)
		if err != nil {
			return nil, err
		}
		rounds = append(rounds, analysis.SessionSustainability(series, cfg)...)
	}
	return rounds, nil
}

// RoundSeries loads the qualifying and race series of one round.
func RoundSeries(st *store.Manager, round int) (qual, race map[string]*model.SessionSeries, circuit string, err error) {
	sessions, err := st.Sessions()
	if err != nil {
		return nil, nil, "", err
	}
	for _, s := range sessions {
		if s.Round != round {
			continue
		}
		circuit = s.Circuit
		series, serr := st.SeriesForSession(s.ID)
		if serr != nil {
			return nil, nil, "", serr
		}
		switch s.Type {
		case model.SessionQualifying:
			qual = series
		case model.SessionRace:
			race = series
		}
	}
	return qual, race, circuit, nil
}

// QRD computes the qualifying-race delta of every round that has both a
// qualifying and a race session stored. Rounds missing either side are
// skipped, not failed.
func QRD(st *store.Manager, cfg analysis.Config) ([]model.QualifyingRaceDelta, error) {
	sessions, err := st.Sessions()
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool)
	deltas := make([]model.QualifyingRaceDelta, 0)
	for _, s := range sessions {
		if seen[s.Round] {
			continue
		}
		seen[s.Round] = true
		qual, race, circuit, err := RoundSeries(st, s.Round)
		if err != nil {
			return nil, err
		}
		if qual == nil || race == nil {
			continue
		}
		deltas = append(deltas, analysis.RoundQRD(s.Round, circuit, qual, race, cfg)...)
	}
	return deltas, nil
}
