package task

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cyp0633/librecur/recurrence"
	"github.com/emersion/go-ical"
	"github.com/google/uuid"
)

// ProductID identifies calendars written by EncodeCalendar
const ProductID = "-//librecur//Tasks//EN"

var (
	// ErrNotToDo is returned when a component other than VTODO is converted
	ErrNotToDo = errors.New("component is not a VTODO")
	// ErrMissingUID is returned for a VTODO without a UID
	ErrMissingUID = errors.New("VTODO has no UID")
)

// ToDo converts the task into a VTODO component. now becomes the DTSTAMP.
// The stored rule is written in canonical form, so shorthand rules such as
// "every 2 weeks" become valid RRULE values.
func (t *Task) ToDo(now time.Time) *ical.Component {
	todo := ical.NewComponent(ical.CompToDo)
	todo.Props.SetText(ical.PropUID, t.ID.String())
	todo.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	if !t.Created.IsZero() {
		todo.Props.SetDateTime(ical.PropCreated, t.Created.UTC())
	}
	if t.Title != "" {
		todo.Props.SetText(ical.PropSummary, t.Title)
	}
	if p, ok := t.Recurrence().Get(); ok {
		recurrence.ApplyPatternToComponent(todo, p)
	}
	return todo
}

// FromToDo reads a task from a VTODO component. UIDs that are not UUIDs,
// as written by most calendar clients, are mapped to a name-based UUID so
// the same UID always yields the same ID.
func FromToDo(comp *ical.Component) (*Task, error) {
	if comp == nil || comp.Name != ical.CompToDo {
		return nil, ErrNotToDo
	}

	uid, err := comp.Props.Text(ical.PropUID)
	if err != nil {
		return nil, fmt.Errorf("failed to read UID: %w", err)
	}
	if uid == "" {
		return nil, ErrMissingUID
	}

	id, err := uuid.Parse(uid)
	if err != nil {
		id = uuid.NewSHA1(uuid.NameSpaceURL, []byte(uid))
	}

	title, err := comp.Props.Text(ical.PropSummary)
	if err != nil {
		return nil, fmt.Errorf("failed to read SUMMARY: %w", err)
	}

	created, err := comp.Props.DateTime(ical.PropCreated, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("failed to read CREATED: %w", err)
	}

	t := &Task{ID: id, Title: title, Created: created}
	if prop := comp.Props.Get(ical.PropRecurrenceRule); prop != nil {
		t.Rule = prop.Value
	}
	return t, nil
}

// EncodeCalendar writes tasks as a VCALENDAR of VTODO components
func EncodeCalendar(w io.Writer, tasks []*Task, now time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropProductID, ProductID)
	cal.Props.SetText(ical.PropVersion, "2.0")
	for _, t := range tasks {
		cal.Children = append(cal.Children, t.ToDo(now))
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	return nil
}

// DecodeCalendar reads the VTODO components of a single calendar. Other
// components, such as VEVENT or VTIMEZONE, are skipped.
func DecodeCalendar(r io.Reader) ([]*Task, error) {
	cal, err := ical.NewDecoder(r).Decode()
	if err != nil {
		return nil, fmt.Errorf("failed to decode calendar: %w", err)
	}

	var tasks []*Task
	for _, child := range cal.Children {
		if child.Name != ical.CompToDo {
			continue
		}
		t, err := FromToDo(child)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}
