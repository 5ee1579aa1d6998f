package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/typy/internal/model"
)

func TestNewScoreClampsNonFinite(t *testing.T) {
	at := time.Unix(100, 0)
	score := NewScore(model.Metrics{WPM: math.Inf(1), RawWPM: 42.9, Accuracy: math.NaN()}, "abc", at)
	if score.WPM != 0 || score.Raw != 42 || score.Accuracy != 0 {
		t.Fatalf("unexpected score %+v", score)
	}
	if score.SessionID != "abc" || !score.Timestamp.Equal(at) {
		t.Fatalf("unexpected identity %+v", score)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestSparklineFlat(t *testing.T) {
	if got := Sparkline([]float64{3, 3, 3}); got != "+++" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if got := Sparkline([]float64{0, 10}); got != " @" {
		t.Fatalf("unexpected sparkline %q", got)
	}
}

func TestChronological(t *testing.T) {
	scores := []model.Score{{WPM: 3}, {WPM: 2}, {WPM: 1}}
	got := WPMSeries(Chronological(scores))
	if got[0] != 1 || got[2] != 3 {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestRenderScores(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderScores(&buf, nil, model.Averages{}); err != nil {
		t.Fatalf("render empty: %v", err)
	}
	if !strings.Contains(buf.String(), "No scores found.") {
		t.Fatalf("expected empty message, got %q", buf.String())
	}

	buf.Reset()
	scores := []model.Score{
		{Timestamp: time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local), WPM: 80, Raw: 85, Accuracy: 96.5},
	}
	avg := model.Averages{WPM: 70, Raw: 75, Accuracy: 95, Count: 4}
	if err := RenderScores(&buf, scores, avg); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Sessions: 4", "Avg WPM: 70.00", "Recent Scores", "2024-03-01", "96.50%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
