package traffic

import (
	"math"

	"motogpanalytics/pkg/model"
)

const (
	// DefaultZThreshold is the z-score above which a lap is considered
	// slowed by traffic.
	DefaultZThreshold = 1.8

	// minimum usable laps before outlier detection means anything
	minSampleSize = 5

	epsilon = 1e-6
)

// Label marks each lap of one rider's session as clean-air or
// traffic-affected, based on how far its normalized time sits from the
// rider's own session mean. With fewer than five usable laps every lap is
// labelled clean-air. The pass is order-independent and must only ever see
// laps from a single rider and session.
func Label(laps []model.LapRecord, zThreshold float64) []model.LapRecord {
	times := make([]float64, 0, len(laps))
	for _, lap := range laps {
		if t := usableTime(lap); t > 0 {
			times = append(times, t)
		}
	}

	if len(times) < minSampleSize {
		for i := range laps {
			laps[i].IsCleanAir = true
		}
		return laps
	}

	mean, std := meanStd(times)
	for i := range laps {
		t := usableTime(laps[i])
		if t <= 0 {
			laps[i].IsCleanAir = false
			continue
		}
		z := (t - mean) / (std + epsilon)
		laps[i].IsCleanAir = z < zThreshold
	}
	return laps
}

func usableTime(lap model.LapRecord) float64 {
	if lap.AdjustedTime > 0 {
		return lap.AdjustedTime
	}
	return lap.RawTime
}

// population mean and standard deviation
func meanStd(values []float64) (float64, float64) {
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sqDiff float64
	for _, v := range values {
		sqDiff += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(sqDiff / float64(len(values)))
}
