package xml

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/cyp0633/librecur/recurrence"
	"github.com/samber/mo"
)

// ErrNotRecur is returned when an element or document is not an xCal recur value
var ErrNotRecur = errors.New("not an xCal recur element")

// EncodeRecur converts p into an xCal <recur> element. The children carry the
// same clauses recurrence.ToRule writes, one element per list value:
//
//	<recur>
//	  <freq>WEEKLY</freq>
//	  <interval>2</interval>
//	  <byday>MO</byday>
//	  <byday>FR</byday>
//	</recur>
func EncodeRecur(p recurrence.Pattern) *etree.Element {
	recur := etree.NewElement(TagRecur)
	for _, clause := range strings.Split(recurrence.ToRule(p), ";") {
		key, value, _ := strings.Cut(clause, "=")
		tag := strings.ToLower(key)
		if tag == TagByDay || tag == TagByMonthDay {
			for _, v := range strings.Split(value, ",") {
				recur.CreateElement(tag).SetText(v)
			}
			continue
		}
		recur.CreateElement(tag).SetText(value)
	}
	return recur
}

// DecodeRecur reads a pattern from an xCal <recur> element. Each element
// value is read on its own with the same rules recurrence.Parse applies to
// the matching clause: unknown values are skipped and a missing <freq> means
// DAILY.
func DecodeRecur(elem *etree.Element) (recurrence.Pattern, error) {
	if elem == nil || elem.Tag != TagRecur || !inNamespace(elem) {
		return recurrence.Pattern{}, ErrNotRecur
	}

	p := recurrence.DefaultPattern()
	if f, ok := recurrence.ParseFrequency(strings.ToUpper(childText(elem, TagFreq))); ok {
		p.Frequency = f
	}
	if elem.SelectElement(TagInterval) != nil {
		p.Interval = recurrence.ParseInterval(childText(elem, TagInterval))
	}

	var days []recurrence.Weekday
	for _, child := range elem.SelectElements(TagByDay) {
		value := strings.TrimSpace(child.Text())
		if d, ok := recurrence.ParseWeekday(value); ok {
			days = append(days, d)
			continue
		}
		if pos, d, ok := parsePositional(value); ok {
			p.MonthlyMode = mo.Some(recurrence.WeekdayOfMonth)
			p.BySetPos = mo.Some(pos)
			p.ByWeekday = mo.Some(d)
		}
	}
	if len(days) > 0 {
		p.ByDay = mo.Some(days)
	}

	var monthDays []int
	for _, child := range elem.SelectElements(TagByMonthDay) {
		d, err := strconv.Atoi(strings.TrimSpace(child.Text()))
		if err != nil || d == 0 || d < -recurrence.MaxMonthDay || d > recurrence.MaxMonthDay {
			continue
		}
		monthDays = append(monthDays, d)
	}
	if len(monthDays) > 0 {
		p.ByMonthDay = mo.Some(monthDays)
		p.MonthlyMode = mo.Some(recurrence.DayOfMonth)
	}

	return p, nil
}

// parsePositional reads a positional weekday such as "2TU" or "-1FR"
func parsePositional(value string) (recurrence.SetPos, recurrence.Weekday, bool) {
	if len(value) < 3 {
		return 0, 0, false
	}
	prefix := value[:len(value)-2]
	if strings.HasPrefix(prefix, "+") {
		return 0, 0, false
	}
	n, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, 0, false
	}
	pos, okPos := recurrence.ParseSetPos(n)
	d, okDay := recurrence.ParseWeekday(value[len(value)-2:])
	return pos, d, okPos && okDay
}

// MarshalRecur encodes p as a standalone xCal document
func MarshalRecur(p recurrence.Pattern) (string, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.SetRoot(EncodeRecur(p))
	AddNamespace(doc)
	doc.Indent(2)
	return doc.WriteToString()
}

// UnmarshalRecur decodes a document produced by MarshalRecur
func UnmarshalRecur(s string) (recurrence.Pattern, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(s); err != nil {
		return recurrence.Pattern{}, fmt.Errorf("failed to parse xCal document: %w", err)
	}
	if doc.Root() == nil {
		return recurrence.Pattern{}, ErrNotRecur
	}
	return DecodeRecur(doc.Root())
}

func childText(elem *etree.Element, tag string) string {
	child := elem.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}
