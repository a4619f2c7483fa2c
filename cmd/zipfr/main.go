// Package main provides the CLI entrypoint for zipfr.
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
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/zipfr/internal/config"
	"github.com/verte-zerg/zipfr/internal/corpus"
	"github.com/verte-zerg/zipfr/internal/logger"
	"github.com/verte-zerg/zipfr/internal/model"
	"github.com/verte-zerg/zipfr/internal/report"
	"github.com/verte-zerg/zipfr/internal/session"
	"github.com/verte-zerg/zipfr/internal/store"
	"github.com/verte-zerg/zipfr/internal/tags"
	"github.com/verte-zerg/zipfr/internal/tui"
	"github.com/verte-zerg/zipfr/internal/zipf"
)

const (
	defaultTop           = 20
	defaultZipfBasis     = "filtered"
	defaultZipfReference = "absolute"
	defaultChartScope    = "window"
	defaultValues        = "raw"
	defaultLogLevel      = "info"
	logPrefix            = "zipfr"
)

// options collects the flags of the root command.
type options struct {
	configPath    string
	top           int
	noInteractive bool
	output        string
	name          string
	names         []string
	tagsPath      string
	stopwordsTag  string
	stem          bool
	logLevel      string
	noHistory     bool

	logScale      bool
	zipf          bool
	zipfBasis     string
	zipfReference string
	chartScope    string
	values        string
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:           "zipfr [flags] PATH|GLOB...",
		Short:         "Zipfian word frequency analyzer",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyzeCmd(cmd, args, opts)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default: "+config.DefaultConfigPath()+")")
	flags.IntVar(&opts.top, "top", defaultTop, "number of top words in the static report")
	flags.BoolVar(&opts.noInteractive, "no-interactive", false, "print a static report instead of starting the TUI")
	flags.StringVarP(&opts.output, "output", "o", "", "write the full ranking to a file")
	flags.StringVar(&opts.name, "name", "", "name of the first dataset")
	flags.StringSliceVar(&opts.names, "names", nil, "comma-separated dataset names, in input order")
	flags.StringVar(&opts.tagsPath, "tags", "", "tag catalog (TOML, YAML or .txt word list; default: built-in)")
	flags.StringVar(&opts.stopwordsTag, "stopwords-tag", session.DefaultStopwordsTag, "tag toggled by the stop words key")
	flags.BoolVar(&opts.stem, "stem", false, "reduce words to their Porter2 stems")
	flags.StringVar(&opts.logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	flags.BoolVar(&opts.noHistory, "no-history", false, "do not record this run in the history database")
	flags.BoolVar(&opts.logScale, "log-scale", false, "start with a logarithmic chart")
	flags.BoolVar(&opts.zipf, "zipf", false, "start with the ideal Zipf curve shown")
	flags.StringVar(&opts.zipfBasis, "zipf-basis", defaultZipfBasis, "Zipf reference list (filtered, unfiltered)")
	flags.StringVar(&opts.zipfReference, "zipf-reference", defaultZipfReference, "Zipf anchor (absolute, relative)")
	flags.StringVar(&opts.chartScope, "chart-scope", defaultChartScope, "chart range (window, all)")
	flags.StringVar(&opts.values, "values", defaultValues, "list values (raw, percent)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func runAnalyzeCmd(cmd *cobra.Command, args []string, opts *options) error {
	cfgPath := opts.configPath
	if cfgPath == "" {
		cfgPath = config.DefaultConfigPath()
	}
	fileCfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	historyEnabled := !opts.noHistory
	applyFileConfig(cmd, opts, fileCfg, &historyEnabled)
	if err := validateOptions(opts); err != nil {
		return err
	}
	level, err := logger.ParseLevel(opts.logLevel)
	if err != nil {
		return err
	}

	interactive := !opts.noInteractive && isTerminal(os.Stdin) && isTerminal(os.Stdout)
	logs, closeLogs := newLogger(interactive, level)
	defer closeLogs()
	if !opts.noInteractive && !interactive {
		logs.Info("not a terminal; printing a static report")
	}

	paths, err := corpus.Expand(args)
	if err != nil {
		return err
	}
	sources, err := corpus.Sources(paths, opts.name, opts.names)
	if err != nil {
		return err
	}
	matcher := tags.LoadOrEmpty(opts.tagsPath, logs)
	datasets, err := corpus.LoadAll(sources, matcher, corpus.Options{Stem: opts.stem}, logs)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if historyEnabled {
		recordHistory(ctx, datasets, opts.top, logs)
	}

	if opts.output != "" {
		if err := writeResultsFile(opts.output, datasets); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Results written to %s\n", opts.output); err != nil {
			return err
		}
	}

	state, scope, values := displayState(opts)
	if !interactive {
		return report.Render(cmd.OutOrStdout(), datasets, report.Options{
			Top:      opts.top,
			LogScale: opts.logScale,
			Zipf:     state.Enabled,
		})
	}

	ctrl := session.New(datasets, matcher.Tags(), session.Options{
		StopwordsTag: opts.stopwordsTag,
		Tags:         matcher,
		Zipf:         state,
		Scope:        scope,
		Values:       values,
		LogScale:     opts.logScale,
	})
	program := tea.NewProgram(tui.NewModel(ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			logs.Info("interrupted")
			return nil
		}
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func applyFileConfig(cmd *cobra.Command, opts *options, cfg config.FileConfig, historyEnabled *bool) {
	applyIntConfig(cmd, "top", &opts.top, cfg.Analysis.Top)
	applyStringConfig(cmd, "tags", &opts.tagsPath, cfg.Analysis.Tags)
	applyStringConfig(cmd, "stopwords-tag", &opts.stopwordsTag, cfg.Analysis.StopwordsTag)
	applyBoolConfig(cmd, "stem", &opts.stem, cfg.Analysis.Stem)
	applyBoolConfig(cmd, "log-scale", &opts.logScale, cfg.Display.LogScale)
	applyBoolConfig(cmd, "zipf", &opts.zipf, cfg.Display.Zipf)
	applyStringConfig(cmd, "zipf-basis", &opts.zipfBasis, cfg.Display.ZipfBasis)
	applyStringConfig(cmd, "zipf-reference", &opts.zipfReference, cfg.Display.ZipfReference)
	applyStringConfig(cmd, "chart-scope", &opts.chartScope, cfg.Display.ChartScope)
	applyStringConfig(cmd, "values", &opts.values, cfg.Display.Values)
	applyStringConfig(cmd, "log-level", &opts.logLevel, cfg.Log.Level)
	if cfg.History.Enabled != nil && !cmd.Flags().Changed("no-history") {
		*historyEnabled = *cfg.History.Enabled
	}
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

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func validateOptions(opts *options) error {
	if opts.top < 0 {
		return fmt.Errorf("--top must be >= 0")
	}
	checks := []struct {
		flag    string
		value   string
		allowed []string
	}{
		{"--zipf-basis", opts.zipfBasis, config.ZipfBasisValues},
		{"--zipf-reference", opts.zipfReference, config.ZipfReferenceValues},
		{"--chart-scope", opts.chartScope, config.ChartScopeValues},
		{"--values", opts.values, config.ValuesValues},
		{"--log-level", opts.logLevel, config.LogLevelValues},
	}
	for _, c := range checks {
		if err := config.OneOf(c.flag, c.value, c.allowed); err != nil {
			return err
		}
	}
	return nil
}

// displayState maps validated option strings onto the session's display state.
func displayState(opts *options) (zipf.State, zipf.Scope, session.ValueMode) {
	state := zipf.State{Enabled: opts.zipf}
	if normalize(opts.zipfBasis) == "unfiltered" {
		state.Basis = zipf.BasisUnfiltered
	}
	if normalize(opts.zipfReference) == "relative" {
		state.Reference = zipf.ReferenceRelative
	}
	scope := zipf.ScopeRelative
	if normalize(opts.chartScope) == "all" {
		scope = zipf.ScopeAbsolute
	}
	values := session.ValuesRaw
	if normalize(opts.values) == "percent" {
		values = session.ValuesPercent
	}
	return state, scope, values
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// newLogger picks the log destination: the TUI owns the screen, so interactive
// runs log to a file.
func newLogger(interactive bool, level log.Level) (*log.Logger, func()) {
	if !interactive {
		return logger.New(os.Stderr, logPrefix, level), func() {}
	}
	logs, closer, err := logger.OpenFile(config.DefaultLogPath(), logPrefix, level)
	if err != nil {
		return logger.New(io.Discard, logPrefix, level), func() {}
	}
	return logs, func() {
		if cerr := closer.Close(); cerr != nil {
			// Best-effort close of the log file.
			_ = cerr
		}
	}
}

func recordHistory(ctx context.Context, datasets []*model.Dataset, top int, logs *log.Logger) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logs.Warn("history disabled", "err", err)
		return
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logs.Warn("failed to close history", "err", cerr)
		}
	}()
	now := time.Now()
	for _, ds := range datasets {
		words := ds.Words
		if top > 0 && len(words) > top {
			words = words[:top]
		}
		id, err := st.InsertRun(ctx, store.RecordFor(ds, now), words)
		if err != nil {
			logs.Warn("failed to record run", "dataset", ds.Name, "err", err)
			continue
		}
		logs.Debug("recorded run", "id", id, "dataset", ds.Name)
	}
}

func writeResultsFile(path string, datasets []*model.Dataset) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()
	return report.WriteResults(file, datasets)
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

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# zipfr configuration
# Uncomment a value to enable it. CLI flags override config values.

[analysis]
# top = %d                    # Top words in the static report (0 = all)
# tags = "/path/to/tags.toml" # Tag catalog: TOML, YAML or .txt word list (default: built-in)
# stopwords-tag = %q   # Tag toggled by W
# stem = false                # Porter2 stemming

[display]
# log-scale = false
# zipf = false
# zipf-basis = %q      # filtered | unfiltered
# zipf-reference = %q  # absolute | relative
# chart-scope = %q       # window | all
# values = %q               # raw | percent

[history]
# enabled = true

[log]
# level = %q                 # debug | info | warn | error
`,
		defaultTop,
		session.DefaultStopwordsTag,
		defaultZipfBasis,
		defaultZipfReference,
		defaultChartScope,
		defaultValues,
		defaultLogLevel,
	)
}
