// Package main provides the CLI entrypoint for typy.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/typy/internal/config"
	"github.com/verte-zerg/typy/internal/generator"
	"github.com/verte-zerg/typy/internal/logging"
	"github.com/verte-zerg/typy/internal/model"
	"github.com/verte-zerg/typy/internal/session"
	"github.com/verte-zerg/typy/internal/stats"
	"github.com/verte-zerg/typy/internal/statsui"
	"github.com/verte-zerg/typy/internal/store"
	"github.com/verte-zerg/typy/internal/terminal"
	"github.com/verte-zerg/typy/internal/tui"
	"github.com/verte-zerg/typy/internal/wordlist"
)

const (
	defaultCurveWindow = 3
	defaultPlotHeight  = 8
)

var (
	practiceTime  int
	practiceModes []string
	practiceLang  string

	statsPlain       bool
	statsCurveWindow int
)

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typy",
		Short:         "Timed typing practice in the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().IntVarP(&practiceTime, "time", "t", config.DefaultDuration, "session length in seconds")
	rootCmd.Flags().StringSliceVarP(&practiceModes, "mode", "m", nil, "modes: normal, uppercase, punctuation (comma separated)")
	rootCmd.Flags().StringVar(&practiceLang, "lang", config.DefaultLang, "word list language")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLangsCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadPracticeConfig(cmd)
	if err != nil {
		return err
	}

	words, err := wordlist.Load(config.DefaultWordListDir(), cfg.Lang)
	if err != nil {
		return fmt.Errorf("failed to load word list: %w", err)
	}
	if err := session.RequireTerminal(); err != nil {
		return err
	}

	logger, logFile, err := logging.OpenFile(config.DefaultLogPath(), logging.Level())
	if err != nil {
		logErrf("logging disabled: %v\n", err)
		logger = zerolog.Nop()
	} else {
		defer func() {
			if cerr := logFile.Close(); cerr != nil {
				// Best-effort close of the log file.
				_ = cerr
			}
		}()
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	sess, err := session.New(cfg, words, session.Deps{
		Logger:    logger,
		Generator: generator.New(),
		Sink:      st,
		Display:   tui.NewDisplay(),
	})
	if err != nil {
		return fmt.Errorf("failed to prepare session: %w", err)
	}

	screen, err := terminal.Open(cfg.Theme, cfg.Cursor)
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := sess.Run(ctx, screen)
	if err != nil {
		logger.Error().Err(err).Str("outcome", res.Outcome.String()).Msg("session failed")
		return err
	}
	logger.Info().
		Str("session", sess.ID()).
		Str("outcome", res.Outcome.String()).
		Bool("saved", res.Saved).
		Float64("wpm", res.Metrics.WPM).
		Float64("accuracy", res.Metrics.Accuracy).
		Msg("session finished")
	return nil
}

// loadPracticeConfig resolves the config file and applies flags on top of it.
func loadPracticeConfig(cmd *cobra.Command) (model.Config, error) {
	path := config.FindConfig()
	fileCfg, err := config.LoadConfig(path)
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	cfg, warnings, err := config.Resolve(fileCfg)
	if err != nil {
		return model.Config{}, err
	}
	console := logging.Console(cmd.ErrOrStderr(), logging.Level())
	for _, w := range warnings {
		console.Warn().Str("config", path).Msg(w)
	}

	applyIntConfig(cmd, "time", &practiceTime, fileCfg.Session.Duration)
	applyStringConfig(cmd, "lang", &practiceLang, fileCfg.Language.Lang)
	cfg.Duration = practiceTime
	cfg.Lang = strings.ToLower(strings.TrimSpace(practiceLang))

	requested, err := generator.ParseModes(practiceModes)
	if err != nil {
		return model.Config{}, err
	}
	cfg.Modes = generator.ResolveModes(requested, cfg.Settings.DefaultModes)

	if err := config.Validate(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List available word list languages",
		Args:  cobra.NoArgs,
		RunE:  runLangsCmd,
	}
}

func runLangsCmd(cmd *cobra.Command, _ []string) error {
	langs, err := wordlist.Languages(config.DefaultWordListDir())
	if err != nil {
		return err
	}
	for _, lang := range langs {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), lang); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show score history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print as text instead of the interactive view")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window for --plain")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	if statsCurveWindow <= 0 {
		return fmt.Errorf("--curve-window must be > 0")
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if !statsPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		return statsui.Run(ctx, st)
	}
	return printStats(ctx, cmd.OutOrStdout(), st, statsCurveWindow)
}

func printStats(ctx context.Context, w io.Writer, source statsui.Source, window int) error {
	scores, err := source.ListScores(ctx)
	if err != nil {
		if errors.Is(err, store.ErrCorrupt) {
			return fmt.Errorf("%w: delete %s to start over", err, config.DefaultDBPath())
		}
		return err
	}
	avg, err := source.Averages(ctx)
	if err != nil {
		return err
	}
	if err := stats.RenderScores(w, scores, avg); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if len(scores) < 2 {
		return nil
	}
	if err := stats.RenderProgress(w, scores, window, 0, defaultPlotHeight, false); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typy configuration
# Uncomment a value to enable it. CLI flags override config values.

[theme]
# fg = %q
# missing = %q
# error = %q
# accent = %q

[graph]
# data = %q
# title = %q
# axis = %q

[cursor]
# style = "DefaultUserShape"  # BlinkingBlock, SteadyBlock, BlinkingUnderScore, SteadyUnderScore, BlinkingBar, SteadyBar

[modes]
# default_mode = "normal"     # comma separated: normal, uppercase, punctuation
# uppercase_chance = %.1f
# punctuation_chance = %.1f

[language]
# lang = %q

[session]
# duration = %d               # seconds
# rows = %d
# line_length = %d
`,
		config.DefaultTheme.Fg,
		config.DefaultTheme.Missing,
		config.DefaultTheme.Error,
		config.DefaultTheme.Accent,
		config.DefaultGraph.Data,
		config.DefaultGraph.Title,
		config.DefaultGraph.Axis,
		config.DefaultUppercaseChance,
		config.DefaultPunctuationChance,
		config.DefaultLang,
		config.DefaultDuration,
		config.DefaultRows,
		config.DefaultLineLength,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
