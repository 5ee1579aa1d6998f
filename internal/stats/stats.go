// Package stats contains session statistics and score reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/typy/internal/model"
)

const sparkChars = " .:-=+*#%@"

// NewScore rounds session metrics into a score record. Non-finite values are stored as 0.
func NewScore(m model.Metrics, sessionID string, at time.Time) model.Score {
	return model.Score{
		SessionID: sessionID,
		Timestamp: at,
		WPM:       int(finite(m.WPM)),
		Raw:       int(finite(m.RawWPM)),
		Accuracy:  finite(m.Accuracy),
	}
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := seriesMinMaxSingle(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// Chronological returns scores oldest first. Stores list them newest first.
func Chronological(scores []model.Score) []model.Score {
	out := make([]model.Score, len(scores))
	for i, s := range scores {
		out[len(scores)-1-i] = s
	}
	return out
}

// WPMSeries extracts WPM values from scores in the given order.
func WPMSeries(scores []model.Score) []float64 {
	values := make([]float64, len(scores))
	for i, s := range scores {
		values[i] = float64(s.WPM)
	}
	return values
}

// ScoreRows formats scores as table cells: date, time, wpm, raw, accuracy.
func ScoreRows(scores []model.Score) [][]string {
	rows := make([][]string, 0, len(scores))
	for _, s := range scores {
		local := s.Timestamp.Local()
		rows = append(rows, []string{
			local.Format("2006-01-02"),
			local.Format("15:04:05"),
			fmt.Sprintf("%d", s.WPM),
			fmt.Sprintf("%d", s.Raw),
			fmt.Sprintf("%.2f%%", s.Accuracy),
		})
	}
	return rows
}

// ScoreHeaders are the column titles matching ScoreRows.
var ScoreHeaders = []string{"Date", "Time", "WPM", "Raw", "Accuracy"}

// RenderScores prints averages and the score history as a text table.
func RenderScores(w io.Writer, scores []model.Score, avg model.Averages) error {
	if len(scores) == 0 && avg.Count == 0 {
		_, err := fmt.Fprintln(w, "No scores found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Averages"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Sessions: %d\n", avg.Count); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg WPM: %.2f\n", avg.WPM); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg Raw: %.2f\n", avg.Raw); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg Accuracy: %.2f%%\n", avg.Accuracy); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	if len(scores) == 0 {
		return nil
	}

	if _, err := fmt.Fprintln(w, "Recent Scores"); err != nil {
		return err
	}
	rightAlign := map[int]bool{2: true, 3: true, 4: true}
	for _, line := range formatTable(ScoreHeaders, ScoreRows(scores), rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderProgress prints WPM and accuracy curves over the stored history.
func RenderProgress(w io.Writer, scores []model.Score, window, totalWidth, height int, useColor bool) error {
	if len(scores) == 0 {
		return nil
	}
	ordered := Chronological(scores)
	wpms := MovingAverage(WPMSeries(ordered), window)
	accs := make([]float64, len(ordered))
	for i, s := range ordered {
		accs[i] = s.Accuracy
	}
	accs = MovingAverage(accs, window)

	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotSeriesWithColor(w, "Progress", []Series{
		{Name: "WPM", Values: wpms},
		{Name: "Accuracy", Values: accs},
	}, width, height, useColor)
}
