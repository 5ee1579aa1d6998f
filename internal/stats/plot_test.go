package stats

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPlotSeries(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeriesWithColor(&buf, "Test Plot", []Series{
		{Name: "A", Values: []float64{1, 2, 3, 2, 1}},
		{Name: "B", Values: []float64{1, 1, 2, 3, 4}},
		{Name: "Empty"},
	}, 12, 4, false)
	if err != nil {
		t.Fatalf("PlotSeriesWithColor failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Test Plot") {
		t.Fatalf("expected title in output")
	}
	if !strings.Contains(out, "A: min=1.00 max=3.00") {
		t.Fatalf("expected range line in output: %q", out)
	}
	if strings.Contains(out, "Empty") {
		t.Fatalf("expected empty series to be skipped")
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1+2+4 {
		t.Fatalf("expected 7 lines, got %d", len(lines))
	}
}

func TestChartDimensions(t *testing.T) {
	rows, maxVal := Chart([]float64{0, 3, 6, 2}, 8, 3)
	if maxVal != 6 {
		t.Fatalf("expected max 6, got %v", maxVal)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for _, row := range rows {
		if utf8.RuneCountInString(row) != 8 {
			t.Fatalf("expected 8 cells, got %q", row)
		}
	}
	if rows[0] == strings.Repeat(string(brailleFromMask(0)), 8) {
		t.Fatalf("expected the peak to reach the top row")
	}
}

func TestBrailleDotMask(t *testing.T) {
	want := map[[2]int]uint8{
		{0, 0}: 0x01, {0, 1}: 0x02, {0, 2}: 0x04, {0, 3}: 0x40,
		{1, 0}: 0x08, {1, 1}: 0x10, {1, 2}: 0x20, {1, 3}: 0x80,
	}
	for pos, mask := range want {
		if got := brailleDotMask(pos[0], pos[1]); got != mask {
			t.Fatalf("dot %v: expected %#x, got %#x", pos, mask, got)
		}
	}
}

func TestPlotWidthFor(t *testing.T) {
	if got := PlotWidthFor(80); got != 80-axisLabelWidth-utf8.RuneCountInString(axisSeparator) {
		t.Fatalf("unexpected width %d", got)
	}
	if got := PlotWidthFor(0); got != minPlotWidth {
		t.Fatalf("expected min width %d, got %d", minPlotWidth, got)
	}
}
