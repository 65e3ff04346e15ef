package timesheet

import (
	"regexp"
	"strconv"
	"strings"

	"motogpanalytics/pkg/model"
)

// LineKind is the closed set of shapes a timing-sheet line can take.
type LineKind int

const (
	LineUnrecognized LineKind = iota
	LineRiderHeader
	LineIgnored
	LineLapRow
)

// Rider headers look like "1st 1 Francesco BAGNAIA DUCATI ITA". The name
// block is matched lazily so the constructor stays out of it; the
// constructor is a single all-caps token right before the country code.
var riderHeaderRe = regexp.MustCompile(
	`(\d+(?:st|nd|rd|th))\s+(\d+)\s+([A-ZÀ-Þ][A-Za-zÀ-ÖØ-öø-ÿ'\s\-]+?)\s+([A-Z][A-Z\-]+)\s+([A-Z]{3})\s*$`,
)

// Boilerplate substrings that appear on every sheet: column headers, run
// metadata, tyre info, page footers. Membership is an explicit denylist.
var ignoredSubstrings = []string{
	"Lap Time T1 T2 T3 T4 Speed",
	"Runs=",
	"Run #",
	"Circuit",
	"Results",
	"Analysis",
	"GRAN PREMIO",
	"Tyre",
	"Front",
	"Rear",
	"New Tyre",
	"unfinished",
	"Valid laps",
	"Full laps",
	"Total laps",
	"Fastest Lap",
}

// LapRow holds the raw fields of one matched lap-data line. Times stay as
// strings here; the parser decides which of them survive numeric parsing.
type LapRow struct {
	LapNumber int
	Time      string
	Sectors   []string
	Speed     string
}

// Classify determines what a single extracted line is. Evaluation order is
// rider header first, then the ignore list, then lap row.
func Classify(line string) (LineKind, *model.RiderInfo, *LapRow) {
	line = strings.TrimSpace(line)
	if line == "" {
		return LineIgnored, nil, nil
	}

	if info := matchRiderHeader(line); info != nil {
		return LineRiderHeader, info, nil
	}

	for _, s := range ignoredSubstrings {
		if strings.Contains(line, s) {
			return LineIgnored, nil, nil
		}
	}

	if row := matchLapRow(line); row != nil {
		return LineLapRow, nil, row
	}

	return LineUnrecognized, nil, nil
}

func matchRiderHeader(line string) *model.RiderInfo {
	m := riderHeaderRe.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	number, err := strconv.Atoi(m[2])
	if err != nil {
		return nil
	}

	nameTokens := strings.Fields(m[3])
	firstName := nameTokens[0]
	lastName := strings.Join(nameTokens[1:], " ")
	fullName := strings.TrimSpace(firstName + " " + lastName)

	return &model.RiderInfo{
		FullName:  fullName,
		FirstName: firstName,
		LastName:  lastName,
		Position:  m[1],
		Number:    number,
		Make:      m[4],
		Country:   m[5],
	}
}

func matchLapRow(line string) *LapRow {
	parts := strings.Fields(line)
	// need at least: lap, time, T1, T2, T3, T4, speed
	if len(parts) < 7 {
		return nil
	}
	lapNum, err := strconv.Atoi(parts[0])
	if err != nil || lapNum < 1 {
		return nil
	}
	if !strings.Contains(parts[1], "'") {
		return nil
	}
	return &LapRow{
		LapNumber: lapNum,
		Time:      parts[1],
		Sectors:   parts[2:6],
		Speed:     parts[len(parts)-1],
	}
}
