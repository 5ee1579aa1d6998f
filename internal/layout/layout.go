// Package layout arranges words into display rows bounded by a line length.
package layout

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// ErrNoWords is returned when no word fits into a row.
var ErrNoWords = errors.New("no words fit the line length")

// Layout is a grid of words, one row per display line.
// Each row's joined line and display offsets are cached and rebuilt only
// when SetWord changes the row.
type Layout struct {
	rows    [][]string
	budget  int
	lines   []string
	offsets [][]int
}

// New validates rows against the line-length budget and returns a Layout.
func New(rows [][]string, budget int) (*Layout, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("layout has no rows")
	}
	copied := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) == 0 {
			return nil, fmt.Errorf("row %d is empty", i)
		}
		for j, word := range row {
			if word == "" || strings.ContainsRune(word, ' ') {
				return nil, fmt.Errorf("row %d word %d is not a single word: %q", i, j, word)
			}
		}
		if w := rowWidth(row); w > budget {
			return nil, fmt.Errorf("row %d is %d wide, budget is %d", i, w, budget)
		}
		copied[i] = append([]string(nil), row...)
	}
	l := &Layout{
		rows:    copied,
		budget:  budget,
		lines:   make([]string, len(copied)),
		offsets: make([][]int, len(copied)),
	}
	for i := range copied {
		l.refresh(i)
	}
	return l, nil
}

// Build fills rowCount rows with random words. A row takes words until the
// next drawn word would overflow the budget.
func Build(words []string, rowCount, budget int, rnd *rand.Rand) (*Layout, error) {
	if rowCount <= 0 {
		return nil, fmt.Errorf("row count must be > 0")
	}
	fitting := make([]string, 0, len(words))
	for _, word := range words {
		if word == "" || strings.ContainsRune(word, ' ') {
			continue
		}
		if utf8.RuneCountInString(word) <= budget {
			fitting = append(fitting, word)
		}
	}
	if len(fitting) == 0 {
		return nil, ErrNoWords
	}

	rows := make([][]string, 0, rowCount)
	for i := 0; i < rowCount; i++ {
		var row []string
		width := -1
		for {
			word := fitting[rnd.Intn(len(fitting))]
			next := width + 1 + utf8.RuneCountInString(word)
			if next > budget {
				break
			}
			row = append(row, word)
			width = next
		}
		if len(row) == 0 {
			// The first draw can only fail when it is wider than the budget,
			// which the filter above excludes.
			row = append(row, fitting[0])
		}
		rows = append(rows, row)
	}
	return New(rows, budget)
}

// Rows returns the number of rows.
func (l *Layout) Rows() int {
	return len(l.rows)
}

// Words returns a copy of the words in a row.
func (l *Layout) Words(row int) []string {
	return append([]string(nil), l.rows[row]...)
}

// Line returns the space-joined form of a row.
func (l *Layout) Line(row int) string {
	return l.lines[row]
}

// Width returns the rendered width of a row in characters.
func (l *Layout) Width(row int) int {
	return rowWidth(l.rows[row])
}

// Offset returns the display column of character col in a row, accounting
// for wide runes. Columns past the end advance one cell each.
func (l *Layout) Offset(row, col int) int {
	offsets := l.offsets[row]
	if col < 0 {
		return col
	}
	if col < len(offsets) {
		return offsets[col]
	}
	last := len(offsets) - 1
	return offsets[last] + (col - last)
}

// SetWord replaces one word in place. It reports false and leaves the row
// untouched when the replacement would overflow the budget.
func (l *Layout) SetWord(row, index int, word string) bool {
	if word == "" || strings.ContainsRune(word, ' ') {
		return false
	}
	old := l.rows[row][index]
	l.rows[row][index] = word
	if rowWidth(l.rows[row]) > l.budget {
		l.rows[row][index] = old
		return false
	}
	l.refresh(row)
	return true
}

// refresh rebuilds the cached line and offsets of a row. offsets[i] is the
// display column of character i; the final entry is the full display width.
func (l *Layout) refresh(row int) {
	line := strings.Join(l.rows[row], " ")
	offsets := make([]int, 0, utf8.RuneCountInString(line)+1)
	offset := 0
	for _, r := range line {
		offsets = append(offsets, offset)
		offset += runewidth.RuneWidth(r)
	}
	l.lines[row] = line
	l.offsets[row] = append(offsets, offset)
}

func rowWidth(row []string) int {
	if len(row) == 0 {
		return 0
	}
	width := len(row) - 1
	for _, word := range row {
		width += utf8.RuneCountInString(word)
	}
	return width
}
