package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/cyp0633/librecur/recurrence"
	"github.com/spf13/cobra"
)

// app carries the state shared by all subcommands of one invocation
type app struct {
	verbose bool
	logger  *slog.Logger
	engine  *recurrence.Engine
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "recur",
		Short: "Work with recurrence rules",
		Long: `recur reads recurrence rules such as "FREQ=WEEKLY;BYDAY=MO,FR",
"weekly" or "every 3 days" and describes, validates or converts them.

Rules may be quoted or given as several words.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.setup(cmd.ErrOrStderr())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.engine.Close()
		},
	}
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log debug output to stderr")

	cmd.AddCommand(a.parseCmd())
	cmd.AddCommand(a.describeCmd())
	cmd.AddCommand(a.validateCmd())
	cmd.AddCommand(a.normalizeCmd())
	cmd.AddCommand(a.icalCmd())
	cmd.AddCommand(a.xcalCmd())
	return cmd
}

func (a *app) setup(stderr io.Writer) {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	// One invocation handles one rule, so there is nothing to cache
	a.engine = recurrence.NewEngineWithConfig(recurrence.DisabledCacheConfig, recurrence.WithLogger(a.logger))
}

// parseArgs joins the positional arguments into one rule and parses it
func (a *app) parseArgs(args []string) (string, recurrence.Pattern, error) {
	rule := strings.Join(args, " ")
	p, ok := a.engine.Parse(rule).Get()
	if !ok {
		return "", recurrence.Pattern{}, recurrence.ErrEmptyRule
	}
	return rule, p, nil
}
