package model

import "sort"

// Session types as they appear in the motogp.com results URLs.
const (
	SessionQualifying = "Q2"
	SessionRace       = "RAC"
)

type RiderInfo struct {
	FullName  string `json:"fullName"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Position  string `json:"position"`
	Number    int    `json:"number"`
	Make      string `json:"make"`
	Country   string `json:"country"`
}

type LapRecord struct {
	Rider        string    `json:"rider"`
	LapNumber    int       `json:"lapNumber"`
	RawTime      float64   `json:"rawTime"`
	AdjustedTime float64   `json:"adjustedTime"`
	SectorTimes  []float64 `json:"sectorTimes"` // up to 4 values
	IsCleanAir   bool      `json:"isCleanAir"`
}

// SessionSeries is the ordered lap sequence of one rider within one session.
// It is the unit of analysis for degradation, ISD and traffic labelling.
type SessionSeries struct {
	Rider     string      `json:"rider"`
	SessionID string      `json:"sessionId"`
	TotalLaps int         `json:"totalLaps"` // declared session distance, not len(Laps)
	Laps      []LapRecord `json:"laps"`
}

// SortByLap orders the series by lap number ascending.
func (s *SessionSeries) SortByLap() {
	sort.Slice(s.Laps, func(i, j int) bool {
		return s.Laps[i].LapNumber < s.Laps[j].LapNumber
	})
}

// Times returns the adjusted lap times, falling back to raw times when
// normalization was skipped.
func (s *SessionSeries) Times() []float64 {
	times := make([]float64, 0, len(s.Laps))
	for _, lap := range s.Laps {
		if lap.AdjustedTime > 0 {
			times = append(times, lap.AdjustedTime)
		} else {
			times = append(times, lap.RawTime)
		}
	}
	return times
}

type Round struct {
	Number  int    `json:"number"`
	Code    string `json:"code"`
	Country string `json:"country"`
	Circuit string `json:"circuit"`
}

// Strategy categories derived from the degradation slope.
const (
	CategoryImprover   = "Improver"
	CategoryMaintainer = "Maintainer"
	CategoryDegrader   = "Degrader"
)

type DegradationResult struct {
	Rider       string  `json:"rider"`
	Slope       float64 `json:"slope"` // seconds per lap
	RSquared    float64 `json:"rSquared"`
	SampleCount int     `json:"sampleCount"`
	Category    string  `json:"category"`
}

// EnhancedDegradationResult separates the warm-up phase from the race phase.
// WarmedSlope/WarmedRSquared are only meaningful when WarmedAvailable is set.
type EnhancedDegradationResult struct {
	Rider            string  `json:"rider"`
	Laps             int     `json:"laps"`
	BestLap          float64 `json:"bestLap"`
	LastLap          float64 `json:"lastLap"`
	DegradationDelta float64 `json:"degradationDelta"`
	OverallSlope     float64 `json:"overallSlope"`
	OverallRSquared  float64 `json:"overallRSquared"`
	WarmedSlope      float64 `json:"warmedSlope"`
	WarmedRSquared   float64 `json:"warmedRSquared"`
	WarmedAvailable  bool    `json:"warmedAvailable"`
}

type SustainabilityMetrics struct {
	Rider         string  `json:"rider"`
	SessionID     string  `json:"sessionId"`
	BestLap       float64 `json:"bestLap"`
	FinalLap      float64 `json:"finalLap"`
	FirstLap      float64 `json:"firstLap"`
	AvgLap        float64 `json:"avgLap"`
	ISD           float64 `json:"isd"` // finalLap - bestLap
	LapOfBest     int     `json:"lapOfBest"`
	LapsAfterBest int     `json:"lapsAfterBest"`
	DegradeRate   float64 `json:"degradeRate"`
	Consistency   float64 `json:"consistency"` // stddev of lap times
	WarmUpTime    float64 `json:"warmUpTime"`
	TotalLaps     int     `json:"totalLaps"` // laps actually recorded
	DNF           bool    `json:"dnf"`
}

type SeasonSustainability struct {
	Rider            string  `json:"rider"`
	Rounds           int     `json:"rounds"`
	AvgISD           float64 `json:"avgIsd"`
	StdISD           float64 `json:"stdIsd"`
	MinISD           float64 `json:"minIsd"`
	MaxISD           float64 `json:"maxIsd"`
	AvgBestLap       float64 `json:"avgBestLap"`
	AvgFinalLap      float64 `json:"avgFinalLap"`
	AvgConsistency   float64 `json:"avgConsistency"`
	AvgDegradeRate   float64 `json:"avgDegradeRate"`
	AvgLapsCompleted float64 `json:"avgLapsCompleted"`
	Finishes         int     `json:"finishes"`
	DNFs             int     `json:"dnfs"`
	Category         string  `json:"category"`
}

type QualifyingRaceDelta struct {
	Round       int     `json:"round"`
	Circuit     string  `json:"circuit"`
	Rider       string  `json:"rider"`
	QualBestLap float64 `json:"qualBestLap"`
	RaceBestLap float64 `json:"raceBestLap"`
	QRD         float64 `json:"qrd"` // qualBestLap - raceBestLap
	QualLaps    int     `json:"qualLaps"`
	RaceLaps    int     `json:"raceLaps"`
	DNF         bool    `json:"dnf"`
}

type QRDSeasonStats struct {
	Rider       string  `json:"rider"`
	Rounds      int     `json:"rounds"`
	AvgQRD      float64 `json:"avgQrd"`
	StdQRD      float64 `json:"stdQrd"`
	MinQRD      float64 `json:"minQrd"`
	MaxQRD      float64 `json:"maxQrd"`
	AvgQualTime float64 `json:"avgQualTime"`
	AvgRaceTime float64 `json:"avgRaceTime"`
	Finishes    int     `json:"finishes"`
	DNFs        int     `json:"dnfs"`
	Category    string  `json:"category"`
}

// PaceSustainabilityDelta is the within-session pace metric (median adjusted
// time minus best adjusted time of one race session). It shares history with
// QRD but is a different measurement and is kept under its own name.
type PaceSustainabilityDelta struct {
	Rider     string  `json:"rider"`
	SessionID string  `json:"sessionId"`
	MedianLap float64 `json:"medianLap"`
	BestLap   float64 `json:"bestLap"`
	Delta     float64 `json:"delta"`
}

// Risk levels for the season DNF-risk assessment.
const (
	RiskCritical = "CRITICAL"
	RiskHigh     = "HIGH"
	RiskLow      = "LOW"
)

type RiderRiskProfile struct {
	Rider              string  `json:"rider"`
	EarlyExits         int     `json:"earlyExits"`
	HighDegradeRounds  int     `json:"highDegradeRounds"`
	InconsistentRounds int     `json:"inconsistentRounds"`
	Rounds             int     `json:"rounds"`
	RiskScore          float64 `json:"riskScore"` // percentage
	RiskLevel          string  `json:"riskLevel"`
}
