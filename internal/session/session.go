// Package session runs one timed typing session.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/verte-zerg/typy/internal/clock"
	"github.com/verte-zerg/typy/internal/generator"
	"github.com/verte-zerg/typy/internal/layout"
	"github.com/verte-zerg/typy/internal/matcher"
	"github.com/verte-zerg/typy/internal/model"
	"github.com/verte-zerg/typy/internal/stats"
)

// ErrNotTerminal is returned when stdin or stdout is not a terminal.
var ErrNotTerminal = errors.New("typy needs an interactive terminal")

const (
	defaultPollInterval = 5 * time.Millisecond
	countdownOffset     = 2
)

// Screen is the render and input surface used by a session.
type Screen interface {
	Size() (int, int)
	MoveCursor(col, row int)
	SetColor(role model.Role)
	WriteChar(c rune)
	Clear()
	Flush()
	PollKey(timeout time.Duration) (model.Key, error)
	Suspend() error
	Resume() error
	Restore()
}

// Sink stores finished scores.
type Sink interface {
	AppendScore(ctx context.Context, score model.Score) (int64, error)
}

// Display shows the end-of-session summary.
type Display interface {
	ShowSummary(ctx context.Context, metrics model.Metrics, theme model.Theme, graph model.GraphColors) error
}

// Outcome tells how a session ended.
type Outcome int

const (
	// Completed means every row was typed before time ran out.
	Completed Outcome = iota
	// TimedOut means the countdown reached zero.
	TimedOut
	// Quit means the player aborted. Nothing is saved.
	Quit
)

func (o Outcome) String() string {
	switch o {
	case Completed:
		return "completed"
	case TimedOut:
		return "timed-out"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

// Result is what Run reports after teardown.
type Result struct {
	Outcome Outcome
	Metrics model.Metrics
	Score   model.Score
	Saved   bool
}

// Deps are the collaborators of a session. Sink and Display may be nil.
type Deps struct {
	Logger    zerolog.Logger
	Generator *generator.Generator
	Sink      Sink
	Display   Display
	// Tick is the length of one countdown step, one second when zero.
	Tick time.Duration
	// Poll bounds how long a key poll may block, 5ms when zero.
	Poll time.Duration
	Now  func() time.Time
}

// Session holds the state of one typing attempt.
type Session struct {
	id      string
	cfg     model.Config
	layout  *layout.Layout
	matcher *matcher.Matcher
	acc     *stats.Accumulator
	deps    Deps
	log     zerolog.Logger

	originX int
	originY int
	prev    int
}

// New builds the word layout and applies the configured modes. It touches
// no terminal state, so failures here leave the terminal as it was.
func New(cfg model.Config, words []string, deps Deps) (*Session, error) {
	if cfg.Duration <= 0 {
		return nil, fmt.Errorf("duration must be > 0")
	}
	if deps.Generator == nil {
		deps.Generator = generator.New()
	}
	if deps.Poll <= 0 {
		deps.Poll = defaultPollInterval
	}
	if deps.Tick <= 0 {
		deps.Tick = time.Second
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	l, err := layout.Build(words, cfg.Rows, cfg.LineLength, deps.Generator.Rand())
	if err != nil {
		return nil, fmt.Errorf("failed to build layout: %w", err)
	}
	deps.Generator.Transform(l, cfg.Modes, cfg.Settings)

	id := uuid.NewString()
	return &Session{
		id:      id,
		cfg:     cfg,
		layout:  l,
		matcher: matcher.New(l),
		acc:     stats.NewAccumulator(),
		deps:    deps,
		log:     deps.Logger.With().Str("session", id).Logger(),
	}, nil
}

// ID returns the session identifier stored with the score.
func (s *Session) ID() string {
	return s.id
}

// Layout returns the transformed word layout.
func (s *Session) Layout() *layout.Layout {
	return s.layout
}

// RequireTerminal fails with ErrNotTerminal unless stdin and stdout are terminals.
func RequireTerminal() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNotTerminal
	}
	return nil
}

// Run plays the session on screen. The clock is stopped and joined and the
// screen restored before Run returns, on every path.
func (s *Session) Run(ctx context.Context, screen Screen) (res Result, err error) {
	clk := clock.Start(s.cfg.Duration, clock.WithTick(s.deps.Tick))
	defer func() {
		clk.RequestStop()
		clk.Wait()
		screen.Restore()
	}()

	s.log.Info().
		Int("duration", s.cfg.Duration).
		Int("rows", s.layout.Rows()).
		Interface("modes", s.cfg.Modes).
		Msg("session started")

	s.prev = clk.Remaining()
	s.drawInitial(screen)

	outcome, err := s.loop(ctx, screen, clk)
	clk.RequestStop()
	clk.Wait()
	res = Result{Outcome: outcome, Metrics: s.acc.Snapshot()}
	if err != nil {
		s.log.Error().Err(err).Msg("session aborted")
		return res, err
	}

	s.log.Info().
		Str("outcome", outcome.String()).
		Int("letters", res.Metrics.TotalLetters).
		Int("incorrect", res.Metrics.Incorrect).
		Float64("wpm", res.Metrics.WPM).
		Float64("accuracy", res.Metrics.Accuracy).
		Msg("session finished")
	if outcome == Quit {
		return res, nil
	}
	return s.finalize(ctx, screen, res)
}

func (s *Session) loop(ctx context.Context, screen Screen, clk *clock.Clock) (Outcome, error) {
	for {
		if s.matcher.Done() {
			return Completed, nil
		}
		if clk.Expired() {
			s.observe(screen, clk)
			return TimedOut, nil
		}
		if err := ctx.Err(); err != nil {
			return Quit, err
		}
		s.observe(screen, clk)

		key, err := screen.PollKey(s.deps.Poll)
		if err != nil {
			return Quit, fmt.Errorf("failed to read key: %w", err)
		}
		switch key.Kind {
		case model.KeyQuit:
			clk.RequestStop()
			return Quit, nil
		case model.KeyRune:
			s.submit(screen, key.Rune)
		}
	}
}

// observe closes one accumulator bucket per second the clock has counted
// since the last observation.
func (s *Session) observe(screen Screen, clk *clock.Clock) {
	remaining := clk.Remaining()
	if remaining == s.prev {
		return
	}
	for s.prev > remaining {
		s.acc.OnSecondElapsed()
		s.prev--
	}
	s.prev = remaining
	s.drawCountdown(screen)
	s.placeCaret(screen)
	screen.Flush()
}

func (s *Session) submit(screen Screen, c rune) {
	res := s.matcher.Submit(c)
	if res.Judgement != matcher.NotJudged {
		s.acc.OnCharacterJudged(res.Judgement == matcher.Correct)
		g := res.Glyph
		screen.MoveCursor(s.originX+s.layout.Offset(g.Row, g.Column), s.originY+g.Row)
		screen.SetColor(g.Role)
		screen.WriteChar(g.Char)
	}
	if !res.Moved {
		return
	}
	s.placeCaret(screen)
	screen.Flush()
}

func (s *Session) finalize(ctx context.Context, screen Screen, res Result) (Result, error) {
	res.Score = stats.NewScore(res.Metrics, s.id, s.deps.Now())
	var saveErr error
	if s.deps.Sink != nil {
		id, err := s.deps.Sink.AppendScore(ctx, res.Score)
		if err != nil {
			s.log.Error().Err(err).Msg("failed to save score")
			saveErr = fmt.Errorf("failed to save score: %w", err)
		} else {
			res.Score.ID = id
			res.Saved = true
		}
	}
	if s.deps.Display == nil {
		return res, saveErr
	}

	if err := screen.Suspend(); err != nil {
		return res, errors.Join(saveErr, err)
	}
	displayErr := s.deps.Display.ShowSummary(ctx, res.Metrics, s.cfg.Theme, s.cfg.Graph)
	if displayErr != nil {
		s.log.Error().Err(displayErr).Msg("failed to show summary")
		displayErr = fmt.Errorf("failed to show summary: %w", displayErr)
	}
	if err := screen.Resume(); err != nil {
		return res, errors.Join(saveErr, displayErr, err)
	}
	return res, errors.Join(saveErr, displayErr)
}

func (s *Session) drawInitial(screen Screen) {
	cols, rows := screen.Size()
	s.originX = cols/2 - s.cfg.LineLength/2
	if s.originX < 0 {
		s.originX = 0
	}
	s.originY = rows/2 - 1
	if s.originY < countdownOffset {
		s.originY = countdownOffset
	}

	screen.Clear()
	screen.SetColor(model.RoleDefault)
	for row := 0; row < s.layout.Rows(); row++ {
		screen.MoveCursor(s.originX, s.originY+row)
		for _, c := range s.layout.Line(row) {
			screen.WriteChar(c)
		}
	}
	s.drawCountdown(screen)
	s.placeCaret(screen)
	screen.Flush()
}

func (s *Session) drawCountdown(screen Screen) {
	screen.MoveCursor(s.originX, s.originY-countdownOffset)
	screen.SetColor(model.RoleAccent)
	width := len(fmt.Sprint(s.cfg.Duration))
	if width < 2 {
		width = 2
	}
	for _, c := range fmt.Sprintf("%0*d", width, s.prev) {
		screen.WriteChar(c)
	}
}

func (s *Session) placeCaret(screen Screen) {
	if s.matcher.Done() {
		return
	}
	caret := s.matcher.Caret()
	screen.MoveCursor(s.originX+s.layout.Offset(caret.Row, caret.Column), s.originY+caret.Row)
}
