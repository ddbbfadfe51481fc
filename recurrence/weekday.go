package recurrence

import (
	"slices"
	"strconv"
	"strings"
)

// Weekday is a day of the week in canonical order, Monday first
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// AllWeekdays lists the week in canonical order
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayTable = [...]struct {
	code  string
	short string
	name  string
}{
	Monday:    {"MO", "Mon", "Monday"},
	Tuesday:   {"TU", "Tue", "Tuesday"},
	Wednesday: {"WE", "Wed", "Wednesday"},
	Thursday:  {"TH", "Thu", "Thursday"},
	Friday:    {"FR", "Fri", "Friday"},
	Saturday:  {"SA", "Sat", "Saturday"},
	Sunday:    {"SU", "Sun", "Sunday"},
}

// Valid reports whether d is one of the seven weekdays
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

// String returns the two-letter rule code, e.g. "MO"
func (d Weekday) String() string {
	if !d.Valid() {
		return "Weekday(" + strconv.Itoa(int(d)) + ")"
	}
	return weekdayTable[d].code
}

// Short returns the three-letter abbreviation used in descriptions
func (d Weekday) Short() string {
	if !d.Valid() {
		return ""
	}
	return weekdayTable[d].short
}

// Name returns the full English name
func (d Weekday) Name() string {
	if !d.Valid() {
		return ""
	}
	return weekdayTable[d].name
}

// ParseWeekday maps an upper-case two-letter code to a Weekday
func ParseWeekday(code string) (Weekday, bool) {
	for d, row := range weekdayTable {
		if row.code == code {
			return Weekday(d), true
		}
	}
	return Monday, false
}

// SortWeekdays returns a copy of days in canonical week order. The sort is
// stable, so duplicates keep their relative order.
func SortWeekdays(days []Weekday) []Weekday {
	out := slices.Clone(days)
	slices.SortStableFunc(out, func(a, b Weekday) int {
		return int(a) - int(b)
	})
	return out
}

// weekdaySet collapses days into a presence table indexed by weekday
func weekdaySet(days []Weekday) (set [7]bool, distinct int) {
	for _, d := range days {
		if !d.Valid() || set[d] {
			continue
		}
		set[d] = true
		distinct++
	}
	return set, distinct
}

func sameWeekdays(days []Weekday, want ...Weekday) bool {
	got, n := weekdaySet(days)
	exp, m := weekdaySet(want)
	return n == m && got == exp
}

func joinWeekdays(days []Weekday) string {
	codes := make([]string, len(days))
	for i, d := range days {
		codes[i] = d.String()
	}
	return strings.Join(codes, ",")
}
