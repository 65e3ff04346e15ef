package timesheet

import (
	"github.com/rs/zerolog/log"

	"motogpanalytics/pkg/fuel"
	"motogpanalytics/pkg/model"
	"motogpanalytics/pkg/timing"
)

// Parser turns the extracted text of one timing sheet into lap records.
// A lap row always belongs to the most recently seen rider header, which is
// how the sheets lay out each rider's block of laps. The rider context is
// local to a single Parse call, so independent documents can be parsed
// concurrently.
type Parser struct {
	fuelParams fuel.Params
}

func NewParser(fuelParams fuel.Params) *Parser {
	return &Parser{fuelParams: fuelParams}
}

// Parse scans the lines of one document in order and emits a record per
// recognizable lap row. Malformed rows, rows with unparsable times and rows
// seen before any rider header are dropped; the sheets are mostly
// boilerplate and partial results beat rejecting the document.
func (p *Parser) Parse(lines []string, totalLaps int) []model.LapRecord {
	records := make([]model.LapRecord, 0, len(lines))
	var currentRider *model.RiderInfo

	for _, line := range lines {
		kind, rider, row := Classify(line)
		switch kind {
		case LineRiderHeader:
			currentRider = rider
		case LineLapRow:
			if currentRider == nil {
				continue
			}
			rawTime, err := timing.ParseTime(row.Time)
			if err != nil || rawTime <= 0 {
				continue
			}
			records = append(records, model.LapRecord{
				Rider:        currentRider.FullName,
				LapNumber:    row.LapNumber,
				RawTime:      rawTime,
				AdjustedTime: fuel.Adjust(rawTime, row.LapNumber, totalLaps, p.fuelParams),
				SectorTimes:  parseSectors(row.Sectors),
			})
		}
	}

	log.Debug().Int("lines", len(lines)).Int("records", len(records)).Msg("timing sheet parsed")
	return records
}

// sectors that fail to parse are omitted, not zero-filled
func parseSectors(sectors []string) []float64 {
	out := make([]float64, 0, 4)
	for _, s := range sectors {
		if len(out) == 4 {
			break
		}
		v, err := timing.ParseTime(s)
		if err != nil || v <= 0 {
			continue
		}
		out = append(out, v)
	}
	return out
}

// CollectRiders returns the rider identities declared by the header lines
// of one document, in order of appearance.
func CollectRiders(lines []string) []model.RiderInfo {
	riders := make([]model.RiderInfo, 0)
	seen := make(map[string]bool)
	for _, line := range lines {
		kind, rider, _ := Classify(line)
		if kind == LineRiderHeader && !seen[rider.FullName] {
			seen[rider.FullName] = true
			riders = append(riders, *rider)
		}
	}
	return riders
}

// GroupBySeries partitions records by rider into ordered per-session series.
func GroupBySeries(records []model.LapRecord, sessionID string, totalLaps int) map[string]*model.SessionSeries {
	series := make(map[string]*model.SessionSeries)
	for _, rec := range records {
		s, ok := series[rec.Rider]
		if !ok {
			s = &model.SessionSeries{
				Rider:     rec.Rider,
				SessionID: sessionID,
				TotalLaps: totalLaps,
			}
			series[rec.Rider] = s
		}
		s.Laps = append(s.Laps, rec)
	}
	for _, s := range series {
		s.SortByLap()
	}
	return series
}
