// Package main is the entry point for the propcheck CLI.
// propcheck runs the built-in property scenarios, records their outcomes and
// shows run history.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nomagicln/propcheck/internal/scenarios"
	"github.com/nomagicln/propcheck/pkg/cli"
	"github.com/nomagicln/propcheck/pkg/config"
	"github.com/nomagicln/propcheck/pkg/history"
	"github.com/nomagicln/propcheck/pkg/logging"
	"github.com/nomagicln/propcheck/pkg/metrics"
	"github.com/nomagicln/propcheck/pkg/property"
)

// Build information, set via ldflags
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errPropertiesFailed is returned after the failures were already rendered.
var errPropertiesFailed = errors.New("one or more properties did not behave as expected")

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		if !errors.Is(err, errPropertiesFailed) {
			fmt.Fprintln(os.Stderr, cli.NewErrorFormatter().FormatErrorWithContext(err, scenarios.Names()))
		}
		os.Exit(1)
	}
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "propcheck",
		Short: "propcheck - property-based test engine",
		Long: `propcheck generates random arguments for functions, checks invariants
against their results and shrinks failing arguments to a minimal counter-example.

The CLI runs the built-in properties and keeps a history of their outcomes.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML run configuration")

	rootCmd.AddCommand(
		newRunCmd(),
		newListCmd(),
		newHistoryCmd(),
		newVersionCmd(),
		newCompletionCmd(),
	)

	return rootCmd
}

type runFlags struct {
	seed       uint64
	tests      int
	level      string
	logFormat  string
	continueOn bool
	noMinimize bool
	depth      int
	reject     string
	noHistory  bool
	metrics    bool
}

// newRunCmd creates the run subcommand
func newRunCmd() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run [property...]",
		Short: "Run built-in properties",
		Long: `Run one or more built-in properties. Without arguments every property runs.

Example:
  propcheck run
  propcheck run identity-even --log all --seed 42
  propcheck run add-commutes --reject 'ArgLess(1, 0) || ArgLess(2, 0)'`,
		ValidArgsFunction: completeScenarioNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadRunConfig(cmd, flags)
			if err != nil {
				return err
			}

			selected, err := selectScenarios(args)
			if err != nil {
				return err
			}

			logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel, flags.logFormat)
			if err != nil {
				return err
			}

			opts := scenarios.Options{Config: cfg, Logger: logger, Reject: flags.reject}

			var collector *metrics.Collector
			if flags.metrics {
				collector = metrics.NewCollector()
				opts.Observers = append(opts.Observers, collector)
			}

			var recorder *history.Recorder
			if !flags.noHistory {
				store, err := openHistory()
				if err != nil {
					return err
				}
				defer func() { _ = store.Close() }()
				recorder = history.NewRecorder(store)
				opts.Observers = append(opts.Observers, recorder)
			}

			renderer := cli.NewRenderer(cmd.OutOrStdout())
			results := make([]property.Result, 0, len(selected))
			unexpected := 0
			for _, s := range selected {
				res, err := s.Run(opts)
				if err != nil {
					return err
				}
				renderer.Result(res)
				results = append(results, res)
				if res.OK() == s.ExpectFailure {
					unexpected++
				}
			}
			renderer.Summary(results)

			if collector != nil {
				if err := collector.WriteText(cmd.OutOrStdout()); err != nil {
					return err
				}
			}
			if recorder != nil && recorder.Err() != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", recorder.Err())
			}
			if unexpected > 0 {
				return errPropertiesFailed
			}
			return nil
		},
	}

	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "Seed for reproducible runs (0 picks a fresh seed)")
	cmd.Flags().IntVarP(&flags.tests, "tests", "n", 0, "Number of passing trials required")
	cmd.Flags().StringVar(&flags.level, "log", "", "Log level: none, failures, successes, all")
	cmd.Flags().StringVar(&flags.logFormat, "log-format", "text", "Log format: text, json")
	cmd.Flags().BoolVar(&flags.continueOn, "continue", false, "Keep running after the first failure")
	cmd.Flags().BoolVar(&flags.noMinimize, "no-minimize", false, "Report failing arguments without shrinking")
	cmd.Flags().IntVar(&flags.depth, "depth", 0, "Maximum minimization depth")
	cmd.Flags().StringVar(&flags.reject, "reject", "", "Reject arguments matching a predicate expression")
	cmd.Flags().BoolVar(&flags.noHistory, "no-history", false, "Do not record outcomes")
	cmd.Flags().BoolVar(&flags.metrics, "metrics", false, "Print Prometheus metrics after the run")

	return cmd
}

// loadRunConfig reads the configuration file and applies explicitly set flags.
func loadRunConfig(cmd *cobra.Command, flags runFlags) (config.RunConfig, error) {
	// --config is a root persistent flag; Flag also searches inherited ones.
	var path string
	if f := cmd.Flag("config"); f != nil {
		path = f.Value.String()
	}

	var cfg config.RunConfig
	var err error
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		var defaultPath string
		defaultPath, err = config.DefaultConfigPath()
		if err != nil {
			return cfg, err
		}
		cfg, err = config.LoadOrDefault(defaultPath)
	}
	if err != nil {
		return cfg, err
	}

	changed := cmd.Flags().Changed
	if changed("seed") {
		cfg.Seed = flags.seed
	}
	if changed("tests") {
		cfg.MinimumTests = flags.tests
	}
	if changed("log") {
		level, err := logging.ParseLevel(flags.level)
		if err != nil {
			return cfg, err
		}
		cfg.LogLevel = level
	}
	if changed("continue") {
		cfg.ContinueAfterFailure = flags.continueOn
	}
	if changed("no-minimize") {
		cfg.Minimize = !flags.noMinimize
	}
	if changed("depth") {
		cfg.MaxMinimizationDepth = flags.depth
	}

	return cfg, cfg.Validate()
}

func selectScenarios(names []string) ([]scenarios.Scenario, error) {
	if len(names) == 0 {
		return scenarios.All(), nil
	}
	selected := make([]scenarios.Scenario, 0, len(names))
	for _, name := range names {
		s, ok := scenarios.Lookup(name)
		if !ok {
			return nil, &cli.UnknownPropertyError{Name: name}
		}
		selected = append(selected, s)
	}
	return selected, nil
}

func newLogger(w io.Writer, level logging.Level, format string) (*logging.Logger, error) {
	switch format {
	case "text":
		return logging.New(level, logging.WriterSink(w)), nil
	case "json":
		handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
		return logging.New(level, logging.SlogSink(slog.New(handler))), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (expected text or json)", format)
	}
}

func openHistory() (*history.Store, error) {
	path, err := config.DefaultHistoryPath()
	if err != nil {
		return nil, err
	}
	return history.Open(path)
}

// newListCmd creates the list subcommand
func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in properties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all := scenarios.All()
			names := make([]string, len(all))
			invariants := make([]string, len(all))
			for i, s := range all {
				names[i] = s.Name
				invariants[i] = s.Invariant
				if s.ExpectFailure {
					invariants[i] += " (expected to fail)"
				}
			}
			cli.NewRenderer(cmd.OutOrStdout()).List(names, invariants)
			return nil
		},
	}
}

// newHistoryCmd creates the history subcommand
func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [property]",
		Short: "Show recorded run outcomes",
		Long: `Show recorded run outcomes, newest first.

Example:
  propcheck history
  propcheck history identity-even --limit 5`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeScenarioNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			test := ""
			if len(args) == 1 {
				test = args[0]
			}
			entries, err := store.Recent(test, limit)
			if err != nil {
				return err
			}
			cli.NewRenderer(cmd.OutOrStdout()).History(entries)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum number of entries")

	return cmd
}

// newVersionCmd creates the version subcommand
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "propcheck %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

func completeScenarioNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return scenarios.Names(), cobra.ShellCompDirectiveNoFileComp
}

// newCompletionCmd creates the completion subcommand
func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish]",
		Short: "Generate shell completion script",
		Long: `Generate shell completion script for propcheck.

Bash:
  source <(propcheck completion bash)

Zsh:
  propcheck completion zsh > "${fpath[1]}/_propcheck"

Fish:
  propcheck completion fish | source`,
		ValidArgs:             []string{"bash", "zsh", "fish"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(cmd.OutOrStdout(), true)
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			}
			return nil
		},
	}
}
