// Package matcher tracks the caret through a word layout and judges typed characters.
package matcher

import (
	"github.com/verte-zerg/typy/internal/layout"
	"github.com/verte-zerg/typy/internal/model"
)

// State is the matcher lifecycle state.
type State int

const (
	// Typing accepts characters on the current row.
	Typing State = iota
	// RowComplete means the caret just moved to a new row. The next character resumes Typing.
	RowComplete
	// SessionComplete means every row has been typed.
	SessionComplete
)

func (s State) String() string {
	switch s {
	case Typing:
		return "typing"
	case RowComplete:
		return "row-complete"
	case SessionComplete:
		return "session-complete"
	default:
		return "unknown"
	}
}

// Judgement is the correctness signal for one keystroke.
type Judgement int

const (
	NotJudged Judgement = iota
	Correct
	Incorrect
)

// Caret is the logical insertion point.
type Caret struct {
	Row    int
	Column int
}

// Glyph is a render instruction: draw Char at Row/Column with Role.
type Glyph struct {
	Row    int
	Column int
	Char   rune
	Role   model.Role
}

// Result describes what one keystroke did.
type Result struct {
	Judgement Judgement
	// Glyph is valid only when Judgement is not NotJudged.
	Glyph Glyph
	Moved bool
}

// jumpMark is the last gap column reached by a space skip.
type jumpMark struct {
	set    bool
	column int
}

func noJumpYet() jumpMark { return jumpMark{} }

func jumpedTo(column int) jumpMark { return jumpMark{set: true, column: column} }

type row struct {
	chars []rune
	// gaps holds the column of each separating space, one per word boundary.
	gaps []int
}

// Matcher is the caret state machine. It is not safe for concurrent use.
type Matcher struct {
	rows   []row
	caret  Caret
	state  State
	jump   jumpMark
	cursor int
}

// New precomputes the rows of l. Later changes to l are not observed.
func New(l *layout.Layout) *Matcher {
	rows := make([]row, l.Rows())
	for i := range rows {
		chars := []rune(l.Line(i))
		var gaps []int
		for col, r := range chars {
			if r == ' ' {
				gaps = append(gaps, col)
			}
		}
		rows[i] = row{chars: chars, gaps: gaps}
	}
	return &Matcher{rows: rows, state: Typing, jump: noJumpYet()}
}

// Caret returns the current caret.
func (m *Matcher) Caret() Caret {
	return m.caret
}

// State returns the current state.
func (m *Matcher) State() State {
	return m.state
}

// Done reports whether every row has been typed.
func (m *Matcher) Done() bool {
	return m.state == SessionComplete
}

// WordIndex returns the index of the word the caret is inside of.
func (m *Matcher) WordIndex() int {
	return m.cursor
}

// RowCount returns the number of rows.
func (m *Matcher) RowCount() int {
	return len(m.rows)
}

// RowLength returns the character count of a row's joined string.
func (m *Matcher) RowLength(r int) int {
	return len(m.rows[r].chars)
}

// Submit feeds one typed character to the state machine.
func (m *Matcher) Submit(c rune) Result {
	if m.state == SessionComplete {
		return Result{}
	}
	m.state = Typing
	if c == ' ' {
		return m.skip()
	}
	return m.judge(c)
}

func (m *Matcher) skip() Result {
	cur := m.rows[m.caret.Row]
	col := m.caret.Column
	if col == 0 {
		return Result{}
	}
	if cur.chars[col-1] == ' ' {
		return Result{}
	}
	if m.cursor >= len(cur.gaps) {
		m.nextRow()
		return Result{Moved: true}
	}
	if m.jump.set && m.jump.column+1 == col {
		return Result{}
	}
	gap := cur.gaps[m.cursor]
	m.jump = jumpedTo(gap)
	m.caret.Column = gap + 1
	m.cursor++
	return Result{Moved: true}
}

func (m *Matcher) judge(c rune) Result {
	cur := m.rows[m.caret.Row]
	col := m.caret.Column
	if col >= len(cur.chars) {
		return Result{}
	}
	expected := cur.chars[col]
	res := Result{
		Judgement: Correct,
		Glyph:     Glyph{Row: m.caret.Row, Column: col, Char: expected, Role: model.RoleCorrect},
		Moved:     true,
	}
	if c != expected {
		res.Judgement = Incorrect
		res.Glyph.Role = model.RoleIncorrect
	}
	if expected == ' ' {
		m.cursor++
	}
	m.caret.Column++
	if m.caret.Column == len(cur.chars) {
		m.nextRow()
	}
	return res
}

func (m *Matcher) nextRow() {
	m.caret = Caret{Row: m.caret.Row + 1}
	m.jump = jumpedTo(1)
	m.cursor = 0
	if m.caret.Row == len(m.rows) {
		m.state = SessionComplete
		return
	}
	m.state = RowComplete
}
