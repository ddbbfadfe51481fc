package recurrence

import (
	"github.com/emersion/go-ical"
	"github.com/samber/mo"
)

// ExtractPatternFromComponent reads the RRULE property of an iCal component
// (VTODO, VEVENT) through Parse. Components without an RRULE yield None.
func ExtractPatternFromComponent(comp *ical.Component) mo.Option[Pattern] {
	if comp == nil {
		return mo.None[Pattern]()
	}
	prop := comp.Props.Get(ical.PropRecurrenceRule)
	if prop == nil {
		return mo.None[Pattern]()
	}
	return Parse(prop.Value)
}

// ApplyPatternToComponent stores p as the component's RRULE, replacing any
// previous rule. A nil component is left alone.
func ApplyPatternToComponent(comp *ical.Component, p Pattern) {
	if comp == nil {
		return
	}
	// RRULE is a RECUR value; the text setters would escape its commas
	prop := ical.NewProp(ical.PropRecurrenceRule)
	prop.Value = ToRule(p)
	comp.Props.Set(prop)
}

// RemovePatternFromComponent drops the component's RRULE, if any
func RemovePatternFromComponent(comp *ical.Component) {
	if comp == nil {
		return
	}
	delete(comp.Props, ical.PropRecurrenceRule)
}
