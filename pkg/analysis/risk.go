package analysis

import (
	"sort"

	"motogpanalytics/pkg/model"
)

// weights of the season risk score
const (
	earlyExitWeight    = 30
	highDegradeWeight  = 15
	inconsistentWeight = 10
)

// AssessRisk scores each rider's DNF risk over a season of per-round
// sustainability metrics. Early exits weigh heaviest, then rounds with a
// steep degrade rate, then inconsistent rounds. The score is normalized to
// a percentage of the worst possible score for the rounds ridden.
func AssessRisk(rounds []model.SustainabilityMetrics, cfg Config) []model.RiderRiskProfile {
	byRider := make(map[string]*model.RiderRiskProfile)
	for _, m := range rounds {
		p, ok := byRider[m.Rider]
		if !ok {
			p = &model.RiderRiskProfile{Rider: m.Rider}
			byRider[m.Rider] = p
		}
		if m.DNF {
			p.EarlyExits++
		}
		if m.DegradeRate > cfg.HighDegradeThreshold {
			p.HighDegradeRounds++
		}
		if m.Consistency > cfg.InconsistencyThreshold {
			p.InconsistentRounds++
		}
		p.Rounds++
	}

	profiles := make([]model.RiderRiskProfile, 0, len(byRider))
	for _, p := range byRider {
		score := float64(earlyExitWeight*p.EarlyExits +
			highDegradeWeight*p.HighDegradeRounds +
			inconsistentWeight*p.InconsistentRounds)
		if p.Rounds > 0 {
			p.RiskScore = score / float64(p.Rounds*100) * 100
		}
		switch {
		case p.RiskScore > 50:
			p.RiskLevel = model.RiskCritical
		case p.RiskScore > 30:
			p.RiskLevel = model.RiskHigh
		default:
			p.RiskLevel = model.RiskLow
		}
		profiles = append(profiles, *p)
	}

	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].RiskScore != profiles[j].RiskScore {
			return profiles[i].RiskScore > profiles[j].RiskScore
		}
		return profiles[i].Rider < profiles[j].Rider
	})
	return profiles
}
