package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motogpanalytics/pkg/model"
)

func TestAnalysisURL(t *testing.T) {
	assert.Equal(t,
		"https://resources.motogp.com/files/results/2023/VAL/MotoGP/RAC/Analysis.pdf",
		AnalysisURL(2023, "VAL", model.SessionRace))
}

func TestSheetPath(t *testing.T) {
	round := model.Round{Number: 7, Code: "CAT"}
	assert.Equal(t,
		filepath.Join("data", "race", "R07_CAT_RAC.pdf"),
		SheetPath("data", round, model.SessionRace))
	assert.Equal(t,
		filepath.Join("data", "qualifying", "R07_CAT_Q2.pdf"),
		SheetPath("data", round, model.SessionQualifying))
}

func TestDownloadFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("%PDF-1.4 fake sheet"))
	}))
	defer srv.Close()

	d := NewDownloader(t.TempDir(), 2023)
	path := filepath.Join(d.dataDir, "sheet.pdf")
	require.NoError(t, d.downloadFile(context.Background(), srv.URL, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake sheet", string(data))
}

func TestDownloadFileMissingSheet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	d := NewDownloader(t.TempDir(), 2023)
	err := d.downloadFile(context.Background(), srv.URL, filepath.Join(d.dataDir, "sheet.pdf"))
	assert.Error(t, err)
}

func TestCalendar2023(t *testing.T) {
	require.Len(t, Calendar2023, 18)
	assert.Equal(t, "QAT", Calendar2023[0].Code)
	assert.Equal(t, "VAL", Calendar2023[17].Code)
	for i, round := range Calendar2023 {
		assert.Equal(t, i+1, round.Number)
	}
}
