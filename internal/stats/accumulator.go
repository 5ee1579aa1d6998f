package stats

import "github.com/verte-zerg/typy/internal/model"

// lettersPerWord is the conventional word length used by WPM.
const lettersPerWord = 5

// Accumulator tallies judged characters into one bucket per elapsed second.
// It is owned by the input loop and is not safe for concurrent use.
type Accumulator struct {
	lettersPerSecond []int
	running          int
	incorrect        int
}

// NewAccumulator returns an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// OnSecondElapsed closes the current one-second bucket.
func (a *Accumulator) OnSecondElapsed() {
	a.lettersPerSecond = append(a.lettersPerSecond, a.running)
	a.running = 0
}

// OnCharacterJudged counts one typed character.
func (a *Accumulator) OnCharacterJudged(correct bool) {
	a.running++
	if !correct {
		a.incorrect++
	}
}

// Running returns the letters typed since the last closed bucket.
func (a *Accumulator) Running() int {
	return a.running
}

// Incorrect returns the total incorrect letters, including the open bucket.
func (a *Accumulator) Incorrect() int {
	return a.incorrect
}

// Seconds returns the number of closed buckets.
func (a *Accumulator) Seconds() int {
	return len(a.lettersPerSecond)
}

// LettersPerSecond returns a copy of the closed buckets.
func (a *Accumulator) LettersPerSecond() []int {
	return append([]int(nil), a.lettersPerSecond...)
}

// TotalLetters sums the closed buckets.
func (a *Accumulator) TotalLetters() int {
	total := 0
	for _, n := range a.lettersPerSecond {
		total += n
	}
	return total
}

// RawWPM counts every typed letter, mistakes included.
func (a *Accumulator) RawWPM() float64 {
	return wordsPerMinute(a.TotalLetters(), a.Seconds())
}

// WPM counts only letters that were not mistakes.
func (a *Accumulator) WPM() float64 {
	net := a.TotalLetters() - a.incorrect
	if net < 0 {
		net = 0
	}
	return wordsPerMinute(net, a.Seconds())
}

// Accuracy returns the share of correct letters as a percentage in [0, 100].
func (a *Accumulator) Accuracy() float64 {
	total := a.TotalLetters()
	if total == 0 {
		return 0
	}
	incorrect := a.incorrect
	if incorrect > total {
		incorrect = total
	}
	return 100 - float64(incorrect)/float64(total)*100
}

// Snapshot captures the derived metrics.
func (a *Accumulator) Snapshot() model.Metrics {
	return model.Metrics{
		LettersPerSecond: a.LettersPerSecond(),
		TotalLetters:     a.TotalLetters(),
		Incorrect:        a.incorrect,
		WPM:              a.WPM(),
		RawWPM:           a.RawWPM(),
		Accuracy:         a.Accuracy(),
	}
}

func wordsPerMinute(letters, seconds int) float64 {
	if seconds <= 0 {
		return 0
	}
	minutes := float64(seconds) / 60.0
	return float64(letters/lettersPerWord) / minutes
}
