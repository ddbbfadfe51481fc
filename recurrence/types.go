package recurrence

import (
	"slices"
	"strconv"
	"strings"

	"github.com/samber/mo"
)

// Frequency is the base unit a pattern repeats in
type Frequency int

const (
	Daily Frequency = iota
	Weekly
	Monthly
	Yearly
)

var frequencyNames = [...]string{
	Daily:   "DAILY",
	Weekly:  "WEEKLY",
	Monthly: "MONTHLY",
	Yearly:  "YEARLY",
}

// String returns the rule keyword, e.g. "WEEKLY"
func (f Frequency) String() string {
	if f < Daily || f > Yearly {
		return "Frequency(" + strconv.Itoa(int(f)) + ")"
	}
	return frequencyNames[f]
}

// Unit returns the singular English unit for the frequency
func (f Frequency) Unit() string {
	switch f {
	case Daily:
		return "day"
	case Weekly:
		return "week"
	case Monthly:
		return "month"
	case Yearly:
		return "year"
	}
	return ""
}

// ParseFrequency maps a rule keyword to a Frequency. The match is exact;
// callers upper-case user input themselves.
func ParseFrequency(s string) (Frequency, bool) {
	for f, name := range frequencyNames {
		if name == s {
			return Frequency(f), true
		}
	}
	return Daily, false
}

// MonthlyMode selects how a monthly pattern picks its day
type MonthlyMode int

const (
	DayOfMonth MonthlyMode = iota
	WeekdayOfMonth
)

// String returns the mode's wire name
func (m MonthlyMode) String() string {
	switch m {
	case DayOfMonth:
		return "day_of_month"
	case WeekdayOfMonth:
		return "weekday_of_month"
	}
	return "MonthlyMode(" + strconv.Itoa(int(m)) + ")"
}

// ParseMonthlyMode maps a wire name back to a MonthlyMode
func ParseMonthlyMode(s string) (MonthlyMode, bool) {
	switch s {
	case "day_of_month":
		return DayOfMonth, true
	case "weekday_of_month":
		return WeekdayOfMonth, true
	}
	return DayOfMonth, false
}

// SetPos is the ordinal of a weekday inside a month: 1st to 4th, or last
type SetPos int

const (
	First  SetPos = 1
	Second SetPos = 2
	Third  SetPos = 3
	Fourth SetPos = 4
	Last   SetPos = -1
)

// Valid reports whether p is one of the five supported positions
func (p SetPos) Valid() bool {
	switch p {
	case First, Second, Third, Fourth, Last:
		return true
	}
	return false
}

// Label returns the position as used in descriptions ("2nd", "last")
func (p SetPos) Label() string {
	switch p {
	case First:
		return "1st"
	case Second:
		return "2nd"
	case Third:
		return "3rd"
	case Fourth:
		return "4th"
	case Last:
		return "last"
	}
	return ""
}

// String returns the numeric form used in positional BYDAY values
func (p SetPos) String() string {
	return strconv.Itoa(int(p))
}

// ParseSetPos converts a signed position number into a SetPos
func ParseSetPos(n int) (SetPos, bool) {
	p := SetPos(n)
	return p, p.Valid()
}

// Pattern is the structured form of a recurrence rule.
//
// Fields outside the governing frequency or monthly mode are ignored by every
// function in this package. A Pattern is a value: builder methods return a new
// Pattern and never share slices with the receiver.
type Pattern struct {
	Frequency Frequency
	Interval  int // every N units, valid range 1-365

	// Weekly only. Absent and present-but-empty are different states:
	// the latter is an incomplete selection and fails validation.
	ByDay mo.Option[[]Weekday]

	// Monthly only
	MonthlyMode mo.Option[MonthlyMode]
	ByMonthDay  mo.Option[[]int]   // day_of_month; negative counts from month end
	BySetPos    mo.Option[SetPos]  // weekday_of_month
	ByWeekday   mo.Option[Weekday] // weekday_of_month
}

// Bounds shared by the parser, the builder and the validator
const (
	MinInterval = 1
	MaxInterval = 365
	MaxMonthDay = 31
)

// DefaultPattern returns the pattern a new builder starts from: every day
func DefaultPattern() Pattern {
	return Pattern{Frequency: Daily, Interval: 1}
}

// Clone returns a deep copy of p
func (p Pattern) Clone() Pattern {
	out := p
	if days, ok := p.ByDay.Get(); ok {
		out.ByDay = mo.Some(slices.Clone(days))
	}
	if days, ok := p.ByMonthDay.Get(); ok {
		out.ByMonthDay = mo.Some(slices.Clone(days))
	}
	return out
}

// weekdayOfMonth returns the positional weekday when the pattern is a
// complete weekday_of_month selection
func (p Pattern) weekdayOfMonth() (SetPos, Weekday, bool) {
	if p.MonthlyMode.OrElse(DayOfMonth) != WeekdayOfMonth {
		return 0, 0, false
	}
	pos, okPos := p.BySetPos.Get()
	day, okDay := p.ByWeekday.Get()
	return pos, day, okPos && okDay
}

// Rule is shorthand for ToRule(p)
func (p Pattern) Rule() string {
	return ToRule(p)
}

// String returns the human-readable description of p
func (p Pattern) String() string {
	return Describe(p)
}

func isValidMonthDay(d int) bool {
	return d != 0 && d >= -MaxMonthDay && d <= MaxMonthDay
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
