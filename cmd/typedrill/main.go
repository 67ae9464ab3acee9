// Package main provides the CLI entrypoint for typedrill.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"typedrill/internal/config"
	"typedrill/internal/engine"
	"typedrill/internal/generator"
	"typedrill/internal/lesson"
	"typedrill/internal/model"
	"typedrill/internal/progress"
	"typedrill/internal/stats"
	"typedrill/internal/statsui"
	"typedrill/internal/store"
	"typedrill/internal/tui"
	"typedrill/internal/wordlist"
)

const (
	defaultWords      = 25
	defaultCaps       = 0.5
	defaultPunct      = 0.5
	defaultWeakTop    = 8
	defaultWeakFactor = 2.0
	defaultWeakWindow = 20
)

const defaultPunctSet = ".,!?;:\"'{}()[]-=/<>`"

var (
	flagUser string

	practiceWords      int
	practiceCaps       float64
	practicePunct      float64
	practicePunctSet   string
	practiceFocusWeak  bool
	practiceWeakTop    int
	practiceWeakFactor float64
	practiceWeakWindow int
	practiceWordList   string

	statsPlain bool
	statsSince string
	statsLast  int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typedrill",
		Short:         "TUI touch-typing tutor",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.PersistentFlags().StringVar(&flagUser, "user", "", "profile name (default: guest)")

	rootCmd.Flags().IntVar(&practiceWords, "words", defaultWords, "words per text")
	rootCmd.Flags().Float64Var(&practiceCaps, "caps", defaultCaps, "probability of capitalized first letter (0-1)")
	rootCmd.Flags().Float64Var(&practicePunct, "punct", defaultPunct, "punctuation probability per word (0-1)")
	rootCmd.Flags().StringVar(&practicePunctSet, "punct-set", defaultPunctSet, "punctuation set")
	rootCmd.Flags().BoolVar(&practiceFocusWeak, "focus-weak", false, "bias practice toward weak characters")
	rootCmd.Flags().IntVar(&practiceWeakTop, "weak-top", defaultWeakTop, "number of weak characters to focus on")
	rootCmd.Flags().Float64Var(&practiceWeakFactor, "weak-factor", defaultWeakFactor, "weight factor for weak characters")
	rootCmd.Flags().IntVar(&practiceWeakWindow, "weak-window", defaultWeakWindow, "number of recent sessions to compute weak chars")
	rootCmd.Flags().StringVar(&practiceWordList, "wordlist", "", "custom word list file (one word per line)")

	rootCmd.AddCommand(newLessonCmd())
	rootCmd.AddCommand(newChallengeCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newAchievementsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// openEngine loads the config file, opens the store, and wires the engine for
// the resolved identity. The caller owns closing the returned store.
func openEngine() (*engine.Engine, *store.Store, config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, nil, fileCfg, fmt.Errorf("failed to load config: %w", err)
	}

	identity := flagUser
	if identity == "" && fileCfg.Profile.User != nil {
		identity = strings.TrimSpace(*fileCfg.Profile.User)
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, nil, fileCfg, fmt.Errorf("failed to open db: %w", err)
	}

	opts := []engine.Option{}
	if fileCfg.Sync.APIURL != nil && strings.TrimSpace(*fileCfg.Sync.APIURL) != "" {
		token := ""
		if fileCfg.Sync.Token != nil {
			token = *fileCfg.Sync.Token
		}
		client, err := progress.NewClient(*fileCfg.Sync.APIURL, token)
		if err != nil {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
			return nil, nil, fileCfg, fmt.Errorf("failed to configure sync: %w", err)
		}
		opts = append(opts, engine.WithSync(client))
	}

	return engine.New(st, identity, opts...), st, fileCfg, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	eng, st, fileCfg, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore(st)

	applyIntConfig(cmd, "words", &practiceWords, fileCfg.Practice.Words)
	applyFloatConfig(cmd, "caps", &practiceCaps, fileCfg.Practice.CapsPct)
	applyFloatConfig(cmd, "punct", &practicePunct, fileCfg.Practice.PunctPct)
	applyStringConfig(cmd, "punct-set", &practicePunctSet, fileCfg.Practice.PunctSet)
	applyBoolConfig(cmd, "focus-weak", &practiceFocusWeak, fileCfg.Practice.FocusWeak)
	applyIntConfig(cmd, "weak-top", &practiceWeakTop, fileCfg.Practice.WeakTop)
	applyFloatConfig(cmd, "weak-factor", &practiceWeakFactor, fileCfg.Practice.WeakFactor)
	applyIntConfig(cmd, "weak-window", &practiceWeakWindow, fileCfg.Practice.WeakWindow)
	applyStringConfig(cmd, "wordlist", &practiceWordList, fileCfg.Practice.WordList)

	cfg := model.PracticeConfig{
		Identity:     eng.Identity(),
		Words:        practiceWords,
		CapsPct:      practiceCaps,
		PunctPct:     practicePunct,
		PunctSet:     practicePunctSet,
		FocusWeak:    practiceFocusWeak,
		WeakTop:      practiceWeakTop,
		WeakFactor:   practiceWeakFactor,
		WeakWindow:   practiceWeakWindow,
		WordListPath: practiceWordList,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	words, err := resolveWords(cfg.WordListPath)
	if err != nil {
		return err
	}

	weakSet := map[rune]struct{}{}
	if cfg.FocusWeak {
		weakSet = eng.WeakChars(context.Background(), cfg.WeakWindow, cfg.WeakTop)
		if len(weakSet) == 0 {
			logErrln("no stats available for weak-char focus yet; using normal generator")
		}
	}

	m := tui.NewFreePractice(eng, cfg, generator.New(), words, []rune(cfg.PunctSet), weakSet)
	return runProgram(m)
}

func resolveWords(path string) ([]string, error) {
	if path == "" {
		return wordlist.Default(), nil
	}
	words, err := wordlist.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load word list %s: %w", path, err)
	}
	return words, nil
}

func runProgram(m tea.Model) error {
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newLessonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lesson [id]",
		Short: "List lessons or run one",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLessonCmd,
	}
}

func runLessonCmd(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return printLessonCatalog(cmd)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid lesson id %q", args[0])
	}
	l, err := lesson.ByID(id)
	if err != nil {
		return err
	}

	eng, st, _, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore(st)

	return runProgram(tui.NewLesson(eng, l))
}

func printLessonCatalog(cmd *cobra.Command) error {
	headers := []string{"ID", "Title", "Difficulty", "Duration", "Target"}
	rows := make([][]string, 0, len(lesson.Catalog()))
	for _, l := range lesson.Catalog() {
		rows = append(rows, []string{
			strconv.Itoa(l.ID),
			l.Title,
			string(l.Difficulty),
			l.Duration,
			fmt.Sprintf("%d WPM / %d%%", l.TargetWPM, l.TargetAccuracy),
		})
	}
	for _, line := range stats.FormatTable(headers, rows, 0) {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newChallengeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "challenge",
		Short: "Run today's daily challenge",
		Args:  cobra.NoArgs,
		RunE:  runChallengeCmd,
	}
}

func runChallengeCmd(cmd *cobra.Command, _ []string) error {
	eng, st, _, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ch, available := eng.DailyChallenge(context.Background())
	if !available {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Daily challenge already completed today: %s\n", ch.Description); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	return runProgram(tui.NewChallenge(eng, ch))
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the progress dashboard",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a plain-text summary instead of the dashboard")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation(model.DayLayout, statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	eng, st, _, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore(st)

	cfg := model.HistoryConfig{Since: sinceTime, Last: statsLast}
	if statsPlain {
		ctx := context.Background()
		sessions, err := eng.History(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		width := 0
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w - 16
		}
		return stats.RenderSummary(cmd.OutOrStdout(), sessions, eng.GameStats(ctx), width)
	}

	return runProgram(statsui.NewModel(eng, cfg))
}

func newAchievementsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "achievements",
		Short: "List achievements",
		Args:  cobra.NoArgs,
		RunE:  runAchievementsCmd,
	}
}

func runAchievementsCmd(cmd *cobra.Command, _ []string) error {
	eng, st, _, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore(st)

	headers := []string{"Status", "Name", "Description", "Unlocked"}
	achievements := eng.Achievements(context.Background())
	rows := make([][]string, 0, len(achievements))
	for _, ach := range achievements {
		status := "locked"
		unlockedAt := ""
		if ach.Unlocked {
			status = "✓"
			unlockedAt = ach.UnlockedAt.Format(model.DayLayout)
		}
		rows = append(rows, []string{status, ach.Name, ach.Description, unlockedAt})
	}
	for _, line := range stats.FormatTable(headers, rows) {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
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

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typedrill configuration
# Uncomment a value to enable it. CLI flags override config values.

[profile]
# user = "alice"           # Profile name; empty means guest

[practice]
# words = %d              # Words per text
# caps = %.2f             # Probability of capitalized first letter (0-1)
# punct = %.2f            # Punctuation probability per word (0-1)
# punct-set = %q          # Punctuation set
# focus-weak = false      # Bias practice toward weak characters
# weak-top = %d           # Number of weak characters to focus on
# weak-factor = %.1f      # Weight factor for weak characters
# weak-window = %d        # Number of recent sessions to compute weak chars
# wordlist = ""           # Custom word list file (one word per line)

[sync]
# api-url = ""            # Progress API base URL; empty disables sync
# token = ""              # Bearer token for the progress API
`,
		defaultWords,
		defaultCaps,
		defaultPunct,
		defaultPunctSet,
		defaultWeakTop,
		defaultWeakFactor,
		defaultWeakWindow,
	)
}

func validateConfig(cfg model.PracticeConfig) error {
	if cfg.Words <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	if cfg.CapsPct < 0 || cfg.CapsPct > 1 {
		return fmt.Errorf("--caps must be between 0 and 1")
	}
	if cfg.PunctPct < 0 || cfg.PunctPct > 1 {
		return fmt.Errorf("--punct must be between 0 and 1")
	}
	if cfg.PunctSet == "" {
		return fmt.Errorf("--punct-set must not be empty")
	}
	if cfg.WeakTop < 0 {
		return fmt.Errorf("--weak-top must be >= 0")
	}
	if cfg.WeakFactor < 0 {
		return fmt.Errorf("--weak-factor must be >= 0")
	}
	if cfg.WeakWindow < 0 {
		return fmt.Errorf("--weak-window must be >= 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
