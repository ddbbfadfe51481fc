package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cyp0633/librecur/internal/xml"
	"github.com/cyp0633/librecur/recurrence"
	"github.com/cyp0633/librecur/task"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// patternDoc is the structured form printed by the parse command
type patternDoc struct {
	Rule        string   `json:"rule" yaml:"rule"`
	Frequency   string   `json:"frequency" yaml:"frequency"`
	Interval    int      `json:"interval" yaml:"interval"`
	ByDay       []string `json:"byDay,omitempty" yaml:"byDay,omitempty"`
	MonthlyMode string   `json:"monthlyMode,omitempty" yaml:"monthlyMode,omitempty"`
	ByMonthDay  []int    `json:"byMonthDay,omitempty" yaml:"byMonthDay,omitempty"`
	BySetPos    int      `json:"bySetPos,omitempty" yaml:"bySetPos,omitempty"`
	ByWeekday   string   `json:"byWeekday,omitempty" yaml:"byWeekday,omitempty"`
	Description string   `json:"description" yaml:"description"`
	Errors      []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

func newPatternDoc(p recurrence.Pattern) patternDoc {
	doc := patternDoc{
		Rule:        recurrence.ToRule(p),
		Frequency:   p.Frequency.String(),
		Interval:    p.Interval,
		ByMonthDay:  p.ByMonthDay.OrEmpty(),
		Description: recurrence.Describe(p),
		Errors:      recurrence.Validate(p),
	}
	for _, d := range p.ByDay.OrEmpty() {
		doc.ByDay = append(doc.ByDay, d.String())
	}
	if mode, ok := p.MonthlyMode.Get(); ok {
		doc.MonthlyMode = mode.String()
	}
	if pos, ok := p.BySetPos.Get(); ok {
		doc.BySetPos = int(pos)
	}
	if day, ok := p.ByWeekday.Get(); ok {
		doc.ByWeekday = day.String()
	}
	return doc
}

func writeDoc(w io.Writer, format string, v any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown output format %q (want yaml or json)", format)
}

func (a *app) parseCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "parse RULE",
		Short: "Show the fields of a rule",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, p, err := a.parseArgs(args)
			if err != nil {
				return err
			}
			return writeDoc(cmd.OutOrStdout(), output, newPatternDoc(p))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "Output format (yaml, json)")
	return cmd
}

func (a *app) describeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe RULE",
		Short: "Print a rule as an English sentence",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rule, _, err := a.parseArgs(args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.engine.Describe(rule))
			return nil
		},
	}
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate RULE",
		Short: "Check that a rule is complete",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, p, err := a.parseArgs(args)
			if err != nil {
				return err
			}
			msgs := recurrence.Validate(p)
			if len(msgs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "valid")
				return nil
			}
			for _, msg := range msgs {
				fmt.Fprintln(cmd.OutOrStdout(), msg)
			}
			return p.Err()
		},
	}
}

func (a *app) normalizeCmd() *cobra.Command {
	var rfc bool
	cmd := &cobra.Command{
		Use:   "normalize RULE",
		Short: "Rewrite a rule in canonical form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rule, _, err := a.parseArgs(args)
			if err != nil {
				return err
			}
			if rfc {
				if err := a.engine.CheckRule(rule); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.engine.Normalize(rule).OrEmpty())
			return nil
		},
	}
	cmd.Flags().BoolVar(&rfc, "rfc", false, "Also require a valid RFC 5545 RRULE")
	return cmd
}

func (a *app) icalCmd() *cobra.Command {
	var title string
	cmd := &cobra.Command{
		Use:   "ical RULE",
		Short: "Print a VTODO calendar for a recurring task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, p, err := a.parseArgs(args)
			if err != nil {
				return err
			}
			t := task.New(title)
			if err := t.SetRecurrence(p); err != nil {
				return err
			}
			a.logger.Debug("encoding task", "id", t.ID, "rule", t.Rule)
			return task.EncodeCalendar(cmd.OutOrStdout(), []*task.Task{t}, time.Now())
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "Recurring task", "Task summary")
	return cmd
}

func (a *app) xcalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "xcal RULE",
		Short: "Print a rule as an xCal recur element",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, p, err := a.parseArgs(args)
			if err != nil {
				return err
			}
			s, err := xml.MarshalRecur(p)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(s))
			return nil
		},
	}
}
