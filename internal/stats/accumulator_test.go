package stats

import (
	"math"
	"testing"
)

func TestAccumulatorZeroCases(t *testing.T) {
	a := NewAccumulator()
	if a.WPM() != 0 || a.RawWPM() != 0 || a.Accuracy() != 0 {
		t.Fatalf("expected zero metrics, got wpm=%v raw=%v acc=%v", a.WPM(), a.RawWPM(), a.Accuracy())
	}
	a.OnCharacterJudged(true)
	a.OnCharacterJudged(false)
	if a.WPM() != 0 || a.RawWPM() != 0 {
		t.Fatalf("expected zero wpm before the first second, got wpm=%v raw=%v", a.WPM(), a.RawWPM())
	}
	if a.Running() != 2 || a.Incorrect() != 1 {
		t.Fatalf("unexpected tallies running=%d incorrect=%d", a.Running(), a.Incorrect())
	}
}

func TestAccumulatorBuckets(t *testing.T) {
	a := NewAccumulator()
	for i := 0; i < 6; i++ {
		a.OnCharacterJudged(true)
	}
	a.OnSecondElapsed()
	a.OnSecondElapsed()
	if got := a.LettersPerSecond(); len(got) != 2 || got[0] != 6 || got[1] != 0 {
		t.Fatalf("unexpected buckets %v", got)
	}
	if a.Running() != 0 {
		t.Fatalf("expected running reset, got %d", a.Running())
	}
}

func TestAccumulatorMetrics(t *testing.T) {
	a := NewAccumulator()
	for sec := 0; sec < 60; sec++ {
		for i := 0; i < 5; i++ {
			a.OnCharacterJudged(i != 0 || sec%2 == 0)
		}
		a.OnSecondElapsed()
	}
	if a.TotalLetters() != 300 {
		t.Fatalf("expected 300 letters, got %d", a.TotalLetters())
	}
	if a.RawWPM() != 60 {
		t.Fatalf("expected raw 60, got %v", a.RawWPM())
	}
	if a.WPM() != 54 {
		t.Fatalf("expected wpm 54, got %v", a.WPM())
	}
	if math.Abs(a.Accuracy()-90) > 1e-9 {
		t.Fatalf("expected accuracy 90, got %v", a.Accuracy())
	}
}

func TestAccuracyRange(t *testing.T) {
	a := NewAccumulator()
	for i := 0; i < 10; i++ {
		a.OnCharacterJudged(true)
	}
	a.OnSecondElapsed()
	if a.Accuracy() != 100 {
		t.Fatalf("expected 100, got %v", a.Accuracy())
	}
	for i := 0; i < 50; i++ {
		a.OnCharacterJudged(false)
	}
	a.OnSecondElapsed()
	if acc := a.Accuracy(); acc < 0 || acc > 100 {
		t.Fatalf("accuracy out of range: %v", acc)
	}
	snap := a.Snapshot()
	if snap.TotalLetters != 60 || snap.Incorrect != 50 || len(snap.LettersPerSecond) != 2 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}
