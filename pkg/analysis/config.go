package analysis

// Config carries every analysis threshold explicitly so parallel runs with
// different parameters cannot interfere through shared defaults.
type Config struct {
	// WarmupLaps is how many opening laps the warm-up-corrected trend skips.
	WarmupLaps int `json:"warmupLaps"`
	// DNFLapFloor, when >0, marks a session DNF below a literal lap count.
	// At 0 the completion ratio is used instead.
	DNFLapFloor int `json:"dnfLapFloor"`
	// DNFCompletionRatio marks a session DNF when the recorded lap count
	// falls below this fraction of the declared session distance.
	DNFCompletionRatio float64 `json:"dnfCompletionRatio"`
	// HighDegradeThreshold is the per-lap degrade rate above which a round
	// counts against a rider in the risk assessment.
	HighDegradeThreshold float64 `json:"highDegradeThreshold"`
	// InconsistencyThreshold is the lap-time stddev above which a round
	// counts as inconsistent.
	InconsistencyThreshold float64 `json:"inconsistencyThreshold"`
}

func DefaultConfig() Config {
	return Config{
		WarmupLaps:             3,
		DNFLapFloor:            0,
		DNFCompletionRatio:     0.8,
		HighDegradeThreshold:   0.15,
		InconsistencyThreshold: 1.0,
	}
}

// IsDNF reports whether a recorded lap count amounts to an early exit. The
// historical timing sheets used a flat 20-lap floor, which misreads short
// sprint sessions; the ratio form scales with the declared distance. The
// literal floor stays available through DNFLapFloor for parity with old
// season archives.
func (c Config) IsDNF(recordedLaps, totalLaps int) bool {
	if c.DNFLapFloor > 0 {
		return recordedLaps < c.DNFLapFloor
	}
	return float64(recordedLaps) < c.DNFCompletionRatio*float64(totalLaps)
}
