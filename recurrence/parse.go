package recurrence

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/mo"
)

var (
	phraseRule      = regexp.MustCompile(`(?i)^every\s+(\d+)\s+(day|week|month|year)s?$`)
	positionalByDay = regexp.MustCompile(`^(-?\d)([A-Z]{2})$`)
)

var keywordFrequencies = map[string]Frequency{
	"daily":   Daily,
	"weekly":  Weekly,
	"monthly": Monthly,
	"yearly":  Yearly,
}

var unitFrequencies = map[string]Frequency{
	"day":   Daily,
	"week":  Weekly,
	"month": Monthly,
	"year":  Yearly,
}

// Parse reads a rule in any of the accepted dialects:
//
//   - a bare keyword: "daily", "weekly", "monthly", "yearly"
//   - a phrase: "every 3 days", "every 2 weeks"
//   - the canonical form written by ToRule: "FREQ=MONTHLY;BYDAY=-1FR"
//
// Keywords, phrases and clause keys are case-insensitive; weekday codes in
// BYDAY must be upper case. Parse never fails on non-blank input: unknown
// clauses and malformed values are skipped, and an unrecognized FREQ leaves
// the frequency at DAILY. It returns None only for a blank rule.
func Parse(rule string) mo.Option[Pattern] {
	rule = strings.TrimSpace(rule)
	if rule == "" {
		return mo.None[Pattern]()
	}

	if f, ok := keywordFrequencies[strings.ToLower(rule)]; ok {
		return mo.Some(Pattern{Frequency: f, Interval: 1})
	}

	if m := phraseRule.FindStringSubmatch(rule); m != nil {
		return mo.Some(Pattern{
			Frequency: unitFrequencies[strings.ToLower(m[2])],
			Interval:  ParseInterval(m[1]),
		})
	}

	return mo.Some(parseClauses(rule))
}

// MustParse is like Parse but panics on a blank rule. It simplifies
// initialization of package-level patterns and tests.
func MustParse(rule string) Pattern {
	p, ok := Parse(rule).Get()
	if !ok {
		panic("recurrence: MustParse called with a blank rule")
	}
	return p
}

func parseClauses(rule string) Pattern {
	p := DefaultPattern()

	for _, clause := range strings.Split(rule, ";") {
		key, value, ok := strings.Cut(clause, "=")
		if !ok {
			continue
		}
		key = strings.ToUpper(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case keyFreq:
			// Unknown frequencies keep the DAILY default rather than
			// rejecting the rule.
			if f, ok := ParseFrequency(strings.ToUpper(value)); ok {
				p.Frequency = f
			}
		case keyInterval:
			p.Interval = ParseInterval(value)
		case keyByDay:
			parseByDay(&p, value)
		case keyByMonthDay:
			if days := parseMonthDays(value); len(days) > 0 {
				p.ByMonthDay = mo.Some(days)
				p.MonthlyMode = mo.Some(DayOfMonth)
			}
		}
	}

	return p
}

// parseByDay handles both BYDAY spellings: a positional weekday ("2TU",
// "-1FR") and a weekday list ("MO,WE,FR")
func parseByDay(p *Pattern, value string) {
	if m := positionalByDay.FindStringSubmatch(value); m != nil {
		n, _ := strconv.Atoi(m[1])
		pos, okPos := ParseSetPos(n)
		day, okDay := ParseWeekday(m[2])
		// Positions outside the 1st..4th/last set have no SetPos, so the
		// whole clause is dropped rather than half-applied.
		if okPos && okDay {
			p.MonthlyMode = mo.Some(WeekdayOfMonth)
			p.BySetPos = mo.Some(pos)
			p.ByWeekday = mo.Some(day)
		}
		return
	}

	var days []Weekday
	for _, code := range strings.Split(value, ",") {
		if d, ok := ParseWeekday(strings.TrimSpace(code)); ok {
			days = append(days, d)
		}
	}
	if len(days) > 0 {
		p.ByDay = mo.Some(days)
	}
}

func parseMonthDays(value string) []int {
	var days []int
	for _, part := range strings.Split(value, ",") {
		d, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || !isValidMonthDay(d) {
			continue
		}
		days = append(days, d)
	}
	return days
}

// ParseInterval reads an INTERVAL value. Non-numeric text yields 1; numbers
// too large for an int saturate so the validator still rejects them.
func ParseInterval(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	switch {
	case err == nil:
		return n
	case errors.Is(err, strconv.ErrRange):
		if strings.HasPrefix(strings.TrimSpace(value), "-") {
			return math.MinInt
		}
		return math.MaxInt
	}
	return 1
}
