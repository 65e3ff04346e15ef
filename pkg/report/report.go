package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"

	"motogpanalytics/pkg/model"
	"motogpanalytics/pkg/timing"
)

var heading = color.New(color.FgHiCyan, color.Bold)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	return t
}

// RenderDegradation prints the per-rider degradation trends of one session.
func RenderDegradation(w io.Writer, enhanced []model.EnhancedDegradationResult, trends []model.DegradationResult) {
	heading.Fprintln(w, "TIRE DEGRADATION")

	t := newTable(w)
	t.AppendHeader(table.Row{"RIDER", "LAPS", "BEST", "LAST", "Δ DEGRADE", "OVERALL SLOPE", "WARMED SLOPE", "WARMED R²"})
	for _, r := range enhanced {
		warmedSlope := "N/A"
		warmedR2 := "N/A"
		if r.WarmedAvailable {
			warmedSlope = fmt.Sprintf("%+.4f", r.WarmedSlope)
			warmedR2 = fmt.Sprintf("%.4f", r.WarmedRSquared)
		}
		t.AppendRow(table.Row{
			r.Rider,
			r.Laps,
			timing.SecondsToMinutes(r.BestLap),
			timing.SecondsToMinutes(r.LastLap),
			fmt.Sprintf("%+.3fs", r.DegradationDelta),
			fmt.Sprintf("%+.4f", r.OverallSlope),
			warmedSlope,
			warmedR2,
		})
	}
	t.Render()

	heading.Fprintln(w, "STRATEGY CLASSIFICATION")

	t = newTable(w)
	t.AppendHeader(table.Row{"RIDER", "CATEGORY", "SLOPE", "R²", "LAPS"})
	for _, r := range trends {
		t.AppendRow(table.Row{
			r.Rider,
			r.Category,
			fmt.Sprintf("%+.4f", r.Slope),
			fmt.Sprintf("%.4f", r.RSquared),
			r.SampleCount,
		})
	}
	t.Render()
}

// RenderSustainability prints the season sustainability standings.
func RenderSustainability(w io.Writer, stats []model.SeasonSustainability) {
	heading.Fprintln(w, "IN-SESSION SUSTAINABILITY (SEASON)")

	t := newTable(w)
	t.AppendHeader(table.Row{"RIDER", "ROUNDS", "AVG ISD", "σ ISD", "CONSISTENCY", "DEGRADE RATE", "DNF", "CATEGORY"})
	for _, s := range stats {
		t.AppendRow(table.Row{
			s.Rider,
			s.Rounds,
			fmt.Sprintf("%+.3fs", s.AvgISD),
			fmt.Sprintf("%.3f", s.StdISD),
			fmt.Sprintf("%.3f", s.AvgConsistency),
			fmt.Sprintf("%.4f", s.AvgDegradeRate),
			s.DNFs,
			s.Category,
		})
	}
	t.Render()
}

// RenderQRD prints the season qualifying-race delta standings.
func RenderQRD(w io.Writer, stats []model.QRDSeasonStats) {
	heading.Fprintln(w, "QUALIFYING-RACE DELTA (SEASON)")

	t := newTable(w)
	t.AppendHeader(table.Row{"RIDER", "ROUNDS", "AVG QRD", "σ QRD", "AVG QUAL", "AVG RACE", "DNF", "CATEGORY"})
	for _, s := range stats {
		t.AppendRow(table.Row{
			s.Rider,
			s.Rounds,
			fmt.Sprintf("%+.3fs", s.AvgQRD),
			fmt.Sprintf("%.3f", s.StdQRD),
			timing.SecondsToMinutes(s.AvgQualTime),
			timing.SecondsToMinutes(s.AvgRaceTime),
			s.DNFs,
			s.Category,
		})
	}
	t.Render()
}

// RenderRisk prints the season DNF-risk assessment.
func RenderRisk(w io.Writer, profiles []model.RiderRiskProfile) {
	heading.Fprintln(w, "DNF RISK ASSESSMENT")

	t := newTable(w)
	t.AppendHeader(table.Row{"RIDER", "EARLY EXITS", "HIGH DEGRADE", "INCONSISTENT", "ROUNDS", "SCORE", "LEVEL"})
	for _, p := range profiles {
		t.AppendRow(table.Row{
			p.Rider,
			p.EarlyExits,
			p.HighDegradeRounds,
			p.InconsistentRounds,
			p.Rounds,
			fmt.Sprintf("%.1f%%", p.RiskScore),
			p.RiskLevel,
		})
	}
	t.Render()
}

// WriteSustainabilityCSV exports per-round sustainability metrics.
func WriteSustainabilityCSV(path string, rounds []model.SustainabilityMetrics) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	cw.Write([]string{"rider", "session", "best_lap", "final_lap", "isd", "degrade_rate", "consistency", "warm_up", "laps", "dnf"})
	for _, m := range rounds {
		cw.Write([]string{
			m.Rider,
			m.SessionID,
			fmt.Sprintf("%.3f", m.BestLap),
			fmt.Sprintf("%.3f", m.FinalLap),
			fmt.Sprintf("%.3f", m.ISD),
			fmt.Sprintf("%.4f", m.DegradeRate),
			fmt.Sprintf("%.3f", m.Consistency),
			fmt.Sprintf("%.3f", m.WarmUpTime),
			strconv.Itoa(m.TotalLaps),
			strconv.FormatBool(m.DNF),
		})
	}
	cw.Flush()
	return errors.Wrapf(cw.Error(), "failed to write %s", path)
}

// WriteQRDCSV exports per-round qualifying-race deltas.
func WriteQRDCSV(path string, deltas []model.QualifyingRaceDelta) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	cw.Write([]string{"round", "circuit", "rider", "qual_best", "race_best", "qrd", "qual_laps", "race_laps", "dnf"})
	for _, d := range deltas {
		cw.Write([]string{
			strconv.Itoa(d.Round),
			d.Circuit,
			d.Rider,
			fmt.Sprintf("%.3f", d.QualBestLap),
			fmt.Sprintf("%.3f", d.RaceBestLap),
			fmt.Sprintf("%.3f", d.QRD),
			strconv.Itoa(d.QualLaps),
			strconv.Itoa(d.RaceLaps),
			strconv.FormatBool(d.DNF),
		})
	}
	cw.Flush()
	return errors.Wrapf(cw.Error(), "failed to write %s", path)
}
