package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motogpanalytics/pkg/model"
)

func TestRenderSustainability(t *testing.T) {
	var buf bytes.Buffer
	RenderSustainability(&buf, []model.SeasonSustainability{
		{Rider: "Francesco BAGNAIA", Rounds: 18, AvgISD: 0.25, Category: "Elite"},
	})
	out := buf.String()
	assert.Contains(t, out, "Francesco BAGNAIA")
	assert.Contains(t, out, "Elite")
	assert.Contains(t, out, "+0.250s")
}

func TestRenderDegradationMarksUnavailableWarmedFit(t *testing.T) {
	var buf bytes.Buffer
	RenderDegradation(&buf, []model.EnhancedDegradationResult{
		{Rider: "Brad BINDER", Laps: 5, BestLap: 90.0, LastLap: 90.4, DegradationDelta: 0.4},
	}, nil)
	assert.Contains(t, buf.String(), "N/A")
}

func TestWriteQRDCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qrd.csv")
	require.NoError(t, WriteQRDCSV(path, []model.QualifyingRaceDelta{
		{Round: 7, Circuit: "CAT", Rider: "Francesco BAGNAIA", QualBestLap: 88.9, RaceBestLap: 89.4, QRD: -0.5, QualLaps: 2, RaceLaps: 3},
	}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "rider", rows[0][2])
	assert.Equal(t, "Francesco BAGNAIA", rows[1][2])
	assert.Equal(t, "-0.500", rows[1][5])
}
