/*
Package recurrence models simple repeat schedules for tasks and converts them
to and from a compact rule string.

# Rule Format

The canonical rule is a semicolon-separated list of KEY=VALUE clauses:

	FREQ=DAILY
	FREQ=WEEKLY;INTERVAL=2;BYDAY=MO,WE,FR
	FREQ=MONTHLY;BYDAY=-1FR
	FREQ=MONTHLY;BYMONTHDAY=1,15,-1

Parse also accepts the keywords "daily", "weekly", "monthly" and "yearly" and
phrases such as "every 3 days". Rules written by ToRule are a subset of RFC
5545 RRULE values and can be stored in iCalendar RRULE properties directly.

# Basic Usage

Build a pattern from the default and serialize it:

	p := recurrence.DefaultPattern().
		WithFrequency(recurrence.Weekly).
		WithInterval(2).
		WithDays(recurrence.Monday, recurrence.Friday)

	if msgs := recurrence.Validate(p); len(msgs) > 0 {
		// show msgs next to the form
	}
	rule := recurrence.ToRule(p)     // FREQ=WEEKLY;INTERVAL=2;BYDAY=MO,FR
	text := recurrence.Describe(p)   // Every 2 weeks on Mon and Fri

Read a stored rule back:

	if p, ok := recurrence.Parse(rule).Get(); ok {
		fmt.Println(recurrence.Describe(p))
	}

# Cached Engine

Engine caches parse and describe results for callers that render the same
stored rules repeatedly:

	engine := recurrence.NewEngineWithConfig(recurrence.HighPerformanceConfig,
		recurrence.WithLogger(logger))
	defer engine.Close()

	fmt.Println(engine.Describe("FREQ=MONTHLY;BYDAY=2TU")) // Every month on the 2nd Tuesday

# Interoperability

ROption and FromROption convert between patterns and rrule-go options, and
ExtractPatternFromComponent and ApplyPatternToComponent read and write the
RRULE property of go-ical components.
*/
package recurrence
