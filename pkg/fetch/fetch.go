package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"motogpanalytics/pkg/model"
)

const (
	baseURL         = "https://resources.motogp.com/files/results"
	downloadTimeout = 30 * time.Second

	QualifyingDir = "qualifying"
	RaceDir       = "race"
)

// Calendar2023 is the 18-round 2023 season.
var Calendar2023 = []model.Round{
	{Number: 1, Code: "QAT", Country: "Qatar", Circuit: "Lusail Circuit"},
	{Number: 2, Code: "ARG", Country: "Argentina", Circuit: "Termas de Rio Hondo"},
	{Number: 3, Code: "AME", Country: "USA", Circuit: "Circuit of The Americas"},
	{Number: 4, Code: "ESP", Country: "Spain", Circuit: "Jerez"},
	{Number: 5, Code: "FRA", Country: "France", Circuit: "Le Mans"},
	{Number: 6, Code: "ITA", Country: "Italy", Circuit: "Mugello"},
	{Number: 7, Code: "CAT", Country: "Spain", Circuit: "Barcelona-Catalunya"},
	{Number: 8, Code: "NED", Country: "Netherlands", Circuit: "Assen"},
	{Number: 9, Code: "GER", Country: "Germany", Circuit: "Sachsenring"},
	{Number: 10, Code: "AUT", Country: "Austria", Circuit: "Red Bull Ring"},
	{Number: 11, Code: "GBR", Country: "UK", Circuit: "Silverstone"},
	{Number: 12, Code: "RSM", Country: "San Marino", Circuit: "Misano"},
	{Number: 13, Code: "ARA", Country: "Spain", Circuit: "Aragon"},
	{Number: 14, Code: "JPN", Country: "Japan", Circuit: "Motegi"},
	{Number: 15, Code: "AUS", Country: "Australia", Circuit: "Phillip Island"},
	{Number: 16, Code: "THA", Country: "Thailand", Circuit: "Buriram"},
	{Number: 17, Code: "MYS", Country: "Malaysia", Circuit: "Sepang"},
	{Number: 18, Code: "VAL", Country: "Spain", Circuit: "Valencia"},
}

// AnalysisURL builds the timing-sheet URL for one session of a round, e.g.
// .../2023/VAL/MotoGP/RAC/Analysis.pdf
func AnalysisURL(year int, circuitCode, sessionType string) string {
	return fmt.Sprintf("%s/%d/%s/MotoGP/%s/Analysis.pdf", baseURL, year, circuitCode, sessionType)
}

// SheetPath is where a downloaded sheet lands inside the data directory.
func SheetPath(dataDir string, round model.Round, sessionType string) string {
	subdir := RaceDir
	if sessionType == model.SessionQualifying {
		subdir = QualifyingDir
	}
	return filepath.Join(dataDir, subdir, fmt.Sprintf("R%02d_%s_%s.pdf", round.Number, round.Code, sessionType))
}

type Summary struct {
	Downloaded int
	Failed     int
}

// Downloader fetches season timing sheets over plain HTTP. There is no
// authentication; the sheets are public result documents.
type Downloader struct {
	client  *http.Client
	dataDir string
	year    int
}

func NewDownloader(dataDir string, year int) *Downloader {
	return &Downloader{
		client:  &http.Client{Timeout: downloadTimeout},
		dataDir: dataDir,
		year:    year,
	}
}

// DownloadSeason fetches the qualifying and race sheets of every round in
// the calendar. A missing sheet (some rounds never publish one) is counted
// and skipped, never fatal.
func (d *Downloader) DownloadSeason(ctx context.Context, calendar []model.Round) (Summary, error) {
	for _, subdir := range []string{QualifyingDir, RaceDir} {
		if err := os.MkdirAll(filepath.Join(d.dataDir, subdir), 0755); err != nil {
			return Summary{}, errors.Wrap(err, "failed to create data dir")
		}
	}

	var summary Summary
	for _, round := range calendar {
		for _, sessionType := range []string{model.SessionQualifying, model.SessionRace} {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			url := AnalysisURL(d.year, round.Code, sessionType)
			path := SheetPath(d.dataDir, round, sessionType)
			if err := d.downloadFile(ctx, url, path); err != nil {
				log.Warn().Err(err).Int("round", round.Number).Str("session", sessionType).Msg("sheet not downloaded")
				summary.Failed++
				continue
			}
			summary.Downloaded++
		}
	}

	log.Info().Int("downloaded", summary.Downloaded).Int("failed", summary.Failed).Msg("season download finished")
	return summary, nil
}

func (d *Downloader) downloadFile(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrapf(err, "failed to request %s", url)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "failed to download %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer f.Close()

	bar := progressbar.DefaultBytes(resp.ContentLength, filepath.Base(path))
	if _, err := io.Copy(io.MultiWriter(f, bar), resp.Body); err != nil {
		os.Remove(path)
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
