package recurrence

import (
	"fmt"

	"github.com/samber/mo"
	"github.com/teambition/rrule-go"
)

// rruleWeekdays maps Weekday to rrule-go's weekday values; both start on Monday
var rruleWeekdays = [...]rrule.Weekday{
	Monday:    rrule.MO,
	Tuesday:   rrule.TU,
	Wednesday: rrule.WE,
	Thursday:  rrule.TH,
	Friday:    rrule.FR,
	Saturday:  rrule.SA,
	Sunday:    rrule.SU,
}

// ROption converts p into rrule-go options. Only the fields governed by the
// active frequency and mode are set; DTSTART, COUNT and UNTIL stay zero.
func (p Pattern) ROption() rrule.ROption {
	opt := rrule.ROption{Interval: max(p.Interval, MinInterval)}

	switch p.Frequency {
	case Daily:
		opt.Freq = rrule.DAILY
	case Weekly:
		opt.Freq = rrule.WEEKLY
		for _, d := range p.ByDay.OrEmpty() {
			if d.Valid() {
				opt.Byweekday = append(opt.Byweekday, rruleWeekdays[d])
			}
		}
	case Monthly:
		opt.Freq = rrule.MONTHLY
		if pos, day, ok := p.weekdayOfMonth(); ok {
			opt.Byweekday = []rrule.Weekday{rruleWeekdays[day].Nth(int(pos))}
		} else if days := p.ByMonthDay.OrEmpty(); len(days) > 0 {
			opt.Bymonthday = append([]int{}, days...)
		}
	case Yearly:
		opt.Freq = rrule.YEARLY
	}

	return opt
}

// FromROption converts rrule-go options into a Pattern. Positional weekdays
// are accepted both as "BYDAY=2TU" and as "BYSETPOS=2;BYDAY=TU". Parts a
// Pattern cannot express (COUNT, UNTIL, BYMONTH, ...) are dropped.
func FromROption(opt *rrule.ROption) (Pattern, error) {
	p := Pattern{Interval: max(opt.Interval, MinInterval)}

	switch opt.Freq {
	case rrule.DAILY:
		p.Frequency = Daily
	case rrule.WEEKLY:
		p.Frequency = Weekly
		var days []Weekday
		for _, wd := range opt.Byweekday {
			days = append(days, Weekday(wd.Day()))
		}
		if len(days) > 0 {
			p.ByDay = mo.Some(SortWeekdays(days))
		}
	case rrule.MONTHLY:
		p.Frequency = Monthly
		fromMonthlyROption(&p, opt)
	case rrule.YEARLY:
		p.Frequency = Yearly
	default:
		return Pattern{}, fmt.Errorf("%w: %v", ErrUnsupportedFrequency, opt.Freq)
	}

	return p, nil
}

func fromMonthlyROption(p *Pattern, opt *rrule.ROption) {
	if len(opt.Byweekday) == 1 {
		wd := opt.Byweekday[0]
		n := wd.N()
		if n == 0 && len(opt.Bysetpos) == 1 {
			n = opt.Bysetpos[0]
		}
		if pos, ok := ParseSetPos(n); ok {
			p.MonthlyMode = mo.Some(WeekdayOfMonth)
			p.BySetPos = mo.Some(pos)
			p.ByWeekday = mo.Some(Weekday(wd.Day()))
			return
		}
	}

	var days []int
	for _, d := range opt.Bymonthday {
		if isValidMonthDay(d) {
			days = append(days, d)
		}
	}
	if len(days) > 0 {
		p.MonthlyMode = mo.Some(DayOfMonth)
		p.ByMonthDay = mo.Some(days)
	}
}

// CheckRFC5545 reports whether rule is accepted by a full RFC 5545 RRULE
// parser. Canonical rules written by ToRule for valid patterns always pass;
// the shorthand dialects do not, since they are not RRULE syntax.
func CheckRFC5545(rule string) error {
	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return fmt.Errorf("failed to parse RRULE '%s': %w", rule, err)
	}
	if _, err := rrule.NewRRule(*opt); err != nil {
		return fmt.Errorf("invalid RRULE '%s': %w", rule, err)
	}
	return nil
}
