package extract

import (
	"bufio"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"rsc.io/pdf"
)

// Fragments whose baselines differ by less than this many points are
// treated as one visual line.
const lineTolerance = 2.0

// Lines extracts the text of a timing-sheet document as visual lines, in
// reading order. PDF pages are concatenated in page order; a .txt file is
// read as-is so pre-extracted sheets can be replayed.
func Lines(path string) ([]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".txt") {
		return textLines(path)
	}
	return pdfLines(path)
}

func textLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	lines := make([]string, 0)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, errors.Wrapf(scanner.Err(), "failed to read %s", path)
}

func pdfLines(path string) ([]string, error) {
	reader, err := pdf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}

	lines := make([]string, 0)
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		lines = append(lines, pageLines(page.Content().Text)...)
	}
	return lines, nil
}

// pageLines groups positioned text fragments into lines by their baseline,
// top of the page first, and orders fragments left to right within a line.
func pageLines(texts []pdf.Text) []string {
	if len(texts) == 0 {
		return nil
	}

	sorted := append([]pdf.Text(nil), texts...)
	sort.Slice(sorted, func(i, j int) bool {
		if math.Abs(sorted[i].Y-sorted[j].Y) > lineTolerance {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	lines := make([]string, 0)
	var sb strings.Builder
	currentY := sorted[0].Y
	lastEnd := 0.0

	flush := func() {
		if line := strings.TrimSpace(sb.String()); line != "" {
			lines = append(lines, line)
		}
		sb.Reset()
	}

	for _, t := range sorted {
		if math.Abs(t.Y-currentY) > lineTolerance {
			flush()
			currentY = t.Y
			lastEnd = 0
		}
		// a horizontal gap between fragments marks a column boundary
		if sb.Len() > 0 && t.X-lastEnd > 1 {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.S)
		lastEnd = t.X + t.W
	}
	flush()

	return lines
}
