package fuel

// A MotoGP bike starts heavy and burns roughly a constant amount of fuel per
// lap; later laps are intrinsically faster. The normalizer subtracts a time
// credit proportional to the fuel still on board so early and late laps are
// comparable: L_adj = L_raw - alpha * fuel_remaining.
type Params struct {
	// BurnRate is fuel consumed per lap, in liters.
	BurnRate float64 `json:"burnRate"`
	// Alpha is seconds gained per liter of fuel burned.
	Alpha float64 `json:"alpha"`
}

func DefaultParams() Params {
	return Params{
		BurnRate: 0.7,
		Alpha:    0.035,
	}
}

// Adjust returns the fuel-corrected lap time. Laps beyond totalLaps (extra
// or formation laps) get a negative fuel remainder and an adjusted time
// above the raw time; that is accepted input, not an error.
func Adjust(rawTime float64, lapNumber, totalLaps int, p Params) float64 {
	remainingFuel := float64(totalLaps-lapNumber) * p.BurnRate
	return rawTime - p.Alpha*remainingFuel
}
