package recurrence

import (
	"strconv"
	"strings"
)

// Rule clause keys
const (
	keyFreq       = "FREQ"
	keyInterval   = "INTERVAL"
	keyByDay      = "BYDAY"
	keyByMonthDay = "BYMONTHDAY"
)

// ToRule serializes p into the canonical rule text, for example
// "FREQ=WEEKLY;INTERVAL=2;BYDAY=MO,WE". Only fields governed by the active
// frequency and monthly mode are written. ToRule does not validate p.
func ToRule(p Pattern) string {
	clauses := []string{keyFreq + "=" + p.Frequency.String()}

	if p.Interval > 1 {
		clauses = append(clauses, keyInterval+"="+strconv.Itoa(p.Interval))
	}

	switch p.Frequency {
	case Weekly:
		// ByDay order is the caller's; the builder keeps it canonical
		if days := p.ByDay.OrEmpty(); len(days) > 0 {
			clauses = append(clauses, keyByDay+"="+joinWeekdays(days))
		}
	case Monthly:
		if pos, day, ok := p.weekdayOfMonth(); ok {
			clauses = append(clauses, keyByDay+"="+pos.String()+day.String())
		} else if days := p.ByMonthDay.OrEmpty(); len(days) > 0 {
			clauses = append(clauses, keyByMonthDay+"="+joinInts(days))
		}
	}

	return strings.Join(clauses, ";")
}
