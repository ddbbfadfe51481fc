package recurrence

import (
	"strconv"
	"strings"
)

// Describe renders p as an English sentence, e.g. "Every 2 weeks on Mon,
// Wed, and Fri" or "Every month on the last Friday". It does not validate p;
// empty selections simply produce no day clause.
func Describe(p Pattern) string {
	var b strings.Builder
	b.WriteString("Every ")
	if p.Interval == 1 {
		b.WriteString(p.Frequency.Unit())
	} else {
		b.WriteString(strconv.Itoa(p.Interval) + " " + p.Frequency.Unit() + "s")
	}

	if clause := dayClause(p); clause != "" {
		b.WriteString(" " + clause)
	}
	return b.String()
}

func dayClause(p Pattern) string {
	switch p.Frequency {
	case Weekly:
		return weeklyClause(p.ByDay.OrEmpty())
	case Monthly:
		return monthlyClause(p)
	}
	return ""
}

func weeklyClause(days []Weekday) string {
	if len(days) == 0 {
		return ""
	}
	switch {
	case sameWeekdays(days, AllWeekdays...):
		return "every day"
	case sameWeekdays(days, Monday, Tuesday, Wednesday, Thursday, Friday):
		return "on weekdays"
	case sameWeekdays(days, Saturday, Sunday):
		return "on weekends"
	}

	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.Short()
	}
	return "on " + FormatList(names)
}

func monthlyClause(p Pattern) string {
	mode, ok := p.MonthlyMode.Get()
	if !ok {
		return ""
	}

	switch mode {
	case WeekdayOfMonth:
		pos, day, ok := p.weekdayOfMonth()
		if !ok {
			return ""
		}
		return "on the " + pos.Label() + " " + day.Name()
	case DayOfMonth:
		days := p.ByMonthDay.OrEmpty()
		if len(days) == 0 {
			return ""
		}
		labels := make([]string, len(days))
		for i, d := range days {
			if d == -1 {
				labels[i] = "last day"
			} else {
				labels[i] = Ordinal(d)
			}
		}
		return "on the " + FormatList(labels)
	}
	return ""
}

// FormatList joins items as an English list with an Oxford comma:
// "A", "A and B", "A, B, and C"
func FormatList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	}
	return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
}

// Ordinal formats n with its English ordinal suffix: 1st, 2nd, 3rd, 4th,
// 11th, 21st. The suffix follows the absolute value, so -2 is "-2nd".
func Ordinal(n int) string {
	return strconv.Itoa(n) + ordinalSuffix(n)
}

func ordinalSuffix(n int) string {
	if n < 0 {
		n = -n
	}
	if tens := n % 100; tens >= 11 && tens <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}
