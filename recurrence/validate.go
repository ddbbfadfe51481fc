package recurrence

import (
	"errors"
	"strings"
)

// Validation messages, shown to users verbatim
const (
	MsgIntervalTooSmall = "Interval must be at least 1"
	MsgIntervalTooLarge = "Interval cannot exceed 365"
	MsgNoWeekdays       = "Please select at least one day of the week"
	MsgNoMonthDays      = "Please select at least one day of the month"
	MsgNoWeekdayOfMonth = "Please select which weekday of the month"
)

var (
	// ErrInvalidPattern is matched by every *ValidationError
	ErrInvalidPattern = errors.New("invalid recurrence pattern")
	// ErrUnsupportedFrequency is returned when converting rules with a
	// frequency finer than a day
	ErrUnsupportedFrequency = errors.New("unsupported recurrence frequency")
	// ErrEmptyRule is returned by operations that need a non-blank rule
	ErrEmptyRule = errors.New("empty recurrence rule")
)

// ValidationError carries every message Validate produced for a pattern
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return ErrInvalidPattern.Error() + ": " + strings.Join(e.Messages, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidPattern
}

// Validate checks p and returns one message per violated rule, or nil when
// p is valid. All checks run; the result is not cut short at the first
// problem.
func Validate(p Pattern) []string {
	var msgs []string

	if p.Interval < MinInterval {
		msgs = append(msgs, MsgIntervalTooSmall)
	}
	if p.Interval > MaxInterval {
		msgs = append(msgs, MsgIntervalTooLarge)
	}

	switch p.Frequency {
	case Weekly:
		// An absent selection is fine; an explicitly emptied one is not
		if days, ok := p.ByDay.Get(); ok && len(days) == 0 {
			msgs = append(msgs, MsgNoWeekdays)
		}
	case Monthly:
		if mode, ok := p.MonthlyMode.Get(); ok {
			switch mode {
			case DayOfMonth:
				if len(p.ByMonthDay.OrEmpty()) == 0 {
					msgs = append(msgs, MsgNoMonthDays)
				}
			case WeekdayOfMonth:
				if p.BySetPos.IsAbsent() || p.ByWeekday.IsAbsent() {
					msgs = append(msgs, MsgNoWeekdayOfMonth)
				}
			}
		}
	}

	return msgs
}

// Err returns a *ValidationError when p fails Validate, nil otherwise
func (p Pattern) Err() error {
	if msgs := Validate(p); len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}
	return nil
}
