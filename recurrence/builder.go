package recurrence

import (
	"slices"

	"github.com/samber/mo"
)

// WithFrequency switches the pattern's frequency. Switching to Weekly with no
// day selection starts an empty one, and switching to Monthly with no mode
// selects day_of_month, so the validator can prompt for the missing input.
func (p Pattern) WithFrequency(f Frequency) Pattern {
	out := p.Clone()
	out.Frequency = f
	switch f {
	case Weekly:
		if out.ByDay.IsAbsent() {
			out.ByDay = mo.Some([]Weekday{})
		}
	case Monthly:
		if out.MonthlyMode.IsAbsent() {
			out.MonthlyMode = mo.Some(DayOfMonth)
		}
	}
	return out
}

// WithInterval sets the interval as given; range checks belong to Validate
func (p Pattern) WithInterval(n int) Pattern {
	out := p.Clone()
	out.Interval = n
	return out
}

// ToggleDay adds d to the weekly selection, or removes it when already
// selected. The selection stays in canonical week order.
func (p Pattern) ToggleDay(d Weekday) Pattern {
	if !d.Valid() {
		return p.Clone()
	}
	days := p.ByDay.OrEmpty()
	if i := slices.Index(days, d); i >= 0 {
		days = slices.Delete(slices.Clone(days), i, i+1)
	} else {
		days = append(slices.Clone(days), d)
	}
	out := p.Clone()
	out.ByDay = mo.Some(SortWeekdays(days))
	return out
}

// WithDays replaces the weekly selection with the given days, de-duplicated
// and in canonical week order
func (p Pattern) WithDays(days ...Weekday) Pattern {
	set, _ := weekdaySet(days)
	selected := make([]Weekday, 0, len(days))
	for _, d := range AllWeekdays {
		if set[d] {
			selected = append(selected, d)
		}
	}
	out := p.Clone()
	out.ByDay = mo.Some(selected)
	return out
}

// WithMonthlyMode selects between day_of_month and weekday_of_month
func (p Pattern) WithMonthlyMode(m MonthlyMode) Pattern {
	out := p.Clone()
	out.MonthlyMode = mo.Some(m)
	return out
}

// ToggleMonthDay adds d to the day-of-month selection, or removes it when
// already selected. New days are appended, keeping selection order. Days
// outside [-31,31] or zero leave the pattern unchanged.
func (p Pattern) ToggleMonthDay(d int) Pattern {
	if !isValidMonthDay(d) {
		return p.Clone()
	}
	days := p.ByMonthDay.OrEmpty()
	if i := slices.Index(days, d); i >= 0 {
		days = slices.Delete(slices.Clone(days), i, i+1)
	} else {
		days = append(slices.Clone(days), d)
	}
	out := p.Clone()
	out.ByMonthDay = mo.Some(days)
	return out
}

// WithMonthDays replaces the day-of-month selection. Out-of-range values and
// repeats are dropped; the remaining order is kept.
func (p Pattern) WithMonthDays(days ...int) Pattern {
	selected := make([]int, 0, len(days))
	for _, d := range days {
		if isValidMonthDay(d) && !slices.Contains(selected, d) {
			selected = append(selected, d)
		}
	}
	out := p.Clone()
	out.ByMonthDay = mo.Some(selected)
	return out
}

// WithSetPos sets the position half of a weekday_of_month selection
func (p Pattern) WithSetPos(pos SetPos) Pattern {
	out := p.Clone()
	if pos.Valid() {
		out.BySetPos = mo.Some(pos)
	}
	return out
}

// WithMonthWeekday sets the weekday half of a weekday_of_month selection
func (p Pattern) WithMonthWeekday(d Weekday) Pattern {
	out := p.Clone()
	if d.Valid() {
		out.ByWeekday = mo.Some(d)
	}
	return out
}

// WithWeekdayOfMonth selects "the <pos> <weekday>" of each month and switches
// the monthly mode accordingly
func (p Pattern) WithWeekdayOfMonth(pos SetPos, d Weekday) Pattern {
	return p.WithMonthlyMode(WeekdayOfMonth).WithSetPos(pos).WithMonthWeekday(d)
}

// Normalize returns the part of p that survives serialization: fields outside
// the active frequency and mode are dropped, as are empty or incomplete
// selections. An interval below 1 becomes 1.
//
// For any pattern q built with the methods above, Parse(ToRule(q)) yields
// q.Normalize().
func (p Pattern) Normalize() Pattern {
	out := Pattern{Frequency: p.Frequency, Interval: max(p.Interval, MinInterval)}
	switch p.Frequency {
	case Weekly:
		if days := p.ByDay.OrEmpty(); len(days) > 0 {
			out.ByDay = mo.Some(slices.Clone(days))
		}
	case Monthly:
		if pos, day, ok := p.weekdayOfMonth(); ok {
			out.MonthlyMode = mo.Some(WeekdayOfMonth)
			out.BySetPos = mo.Some(pos)
			out.ByWeekday = mo.Some(day)
		} else if days := p.ByMonthDay.OrEmpty(); len(days) > 0 {
			out.MonthlyMode = mo.Some(DayOfMonth)
			out.ByMonthDay = mo.Some(slices.Clone(days))
		}
	}
	return out
}
