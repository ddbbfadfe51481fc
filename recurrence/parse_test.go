package recurrence

import (
	"math"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		rule string
		want Pattern
	}{
		{
			name: "keyword daily",
			rule: "daily",
			want: Pattern{Frequency: Daily, Interval: 1},
		},
		{
			name: "keyword is case-insensitive and trimmed",
			rule: "  Weekly ",
			want: Pattern{Frequency: Weekly, Interval: 1},
		},
		{
			name: "keyword yearly",
			rule: "YEARLY",
			want: Pattern{Frequency: Yearly, Interval: 1},
		},
		{
			name: "phrase plural",
			rule: "every 3 days",
			want: Pattern{Frequency: Daily, Interval: 3},
		},
		{
			name: "phrase singular unit",
			rule: "Every 1 month",
			want: Pattern{Frequency: Monthly, Interval: 1},
		},
		{
			name: "phrase with extra spaces",
			rule: "every   2   WEEKS",
			want: Pattern{Frequency: Weekly, Interval: 2},
		},
		{
			name: "canonical daily",
			rule: "FREQ=DAILY",
			want: Pattern{Frequency: Daily, Interval: 1},
		},
		{
			name: "canonical interval",
			rule: "FREQ=YEARLY;INTERVAL=2",
			want: Pattern{Frequency: Yearly, Interval: 2},
		},
		{
			name: "weekly day list",
			rule: "FREQ=WEEKLY;BYDAY=MO,WE,FR",
			want: Pattern{
				Frequency: Weekly,
				Interval:  1,
				ByDay:     mo.Some([]Weekday{Monday, Wednesday, Friday}),
			},
		},
		{
			name: "day list order is kept",
			rule: "FREQ=WEEKLY;BYDAY=FR,MO",
			want: Pattern{
				Frequency: Weekly,
				Interval:  1,
				ByDay:     mo.Some([]Weekday{Friday, Monday}),
			},
		},
		{
			name: "invalid codes are dropped from the day list",
			rule: "FREQ=WEEKLY;BYDAY=MO,XX,su,SU",
			want: Pattern{
				Frequency: Weekly,
				Interval:  1,
				ByDay:     mo.Some([]Weekday{Monday, Sunday}),
			},
		},
		{
			name: "day list without valid codes is ignored",
			rule: "FREQ=WEEKLY;BYDAY=mo,tu",
			want: Pattern{Frequency: Weekly, Interval: 1},
		},
		{
			name: "positional weekday",
			rule: "FREQ=MONTHLY;BYDAY=2TU",
			want: Pattern{
				Frequency:   Monthly,
				Interval:    1,
				MonthlyMode: mo.Some(WeekdayOfMonth),
				BySetPos:    mo.Some(Second),
				ByWeekday:   mo.Some(Tuesday),
			},
		},
		{
			name: "last weekday",
			rule: "FREQ=MONTHLY;BYDAY=-1FR",
			want: Pattern{
				Frequency:   Monthly,
				Interval:    1,
				MonthlyMode: mo.Some(WeekdayOfMonth),
				BySetPos:    mo.Some(Last),
				ByWeekday:   mo.Some(Friday),
			},
		},
		{
			name: "unsupported position is ignored",
			rule: "FREQ=MONTHLY;BYDAY=5MO",
			want: Pattern{Frequency: Monthly, Interval: 1},
		},
		{
			name: "positional with unknown code is ignored",
			rule: "FREQ=MONTHLY;BYDAY=1XX",
			want: Pattern{Frequency: Monthly, Interval: 1},
		},
		{
			name: "month days keep order and sign",
			rule: "FREQ=MONTHLY;BYMONTHDAY=15,1,-1",
			want: Pattern{
				Frequency:   Monthly,
				Interval:    1,
				MonthlyMode: mo.Some(DayOfMonth),
				ByMonthDay:  mo.Some([]int{15, 1, -1}),
			},
		},
		{
			name: "out of range month days are dropped",
			rule: "FREQ=MONTHLY;BYMONTHDAY=0,32,-32,x,31,-31",
			want: Pattern{
				Frequency:   Monthly,
				Interval:    1,
				MonthlyMode: mo.Some(DayOfMonth),
				ByMonthDay:  mo.Some([]int{31, -31}),
			},
		},
		{
			name: "month days without valid values are ignored",
			rule: "FREQ=MONTHLY;BYMONTHDAY=0,40",
			want: Pattern{Frequency: Monthly, Interval: 1},
		},
		{
			name: "clause order does not matter",
			rule: "BYDAY=SA,SU;INTERVAL=3;FREQ=WEEKLY",
			want: Pattern{
				Frequency: Weekly,
				Interval:  3,
				ByDay:     mo.Some([]Weekday{Saturday, Sunday}),
			},
		},
		{
			name: "later clauses overwrite earlier ones",
			rule: "FREQ=DAILY;FREQ=MONTHLY;INTERVAL=2;INTERVAL=4",
			want: Pattern{Frequency: Monthly, Interval: 4},
		},
		{
			name: "keys and frequency values are case-insensitive",
			rule: "freq=weekly;Interval=2;byday=TU",
			want: Pattern{
				Frequency: Weekly,
				Interval:  2,
				ByDay:     mo.Some([]Weekday{Tuesday}),
			},
		},
		{
			name: "non-numeric interval falls back to 1",
			rule: "FREQ=DAILY;INTERVAL=often",
			want: Pattern{Frequency: Daily, Interval: 1},
		},
		{
			name: "oversized interval saturates",
			rule: "FREQ=DAILY;INTERVAL=99999999999999999999",
			want: Pattern{Frequency: Daily, Interval: math.MaxInt},
		},
		{
			name: "oversized negative interval saturates",
			rule: "FREQ=WEEKLY;INTERVAL=-99999999999999999999",
			want: Pattern{Frequency: Weekly, Interval: math.MinInt},
		},
		{
			name: "oversized phrase interval saturates",
			rule: "every 99999999999999999999 days",
			want: Pattern{Frequency: Daily, Interval: math.MaxInt},
		},
		{
			name: "zero interval is kept for the validator",
			rule: "FREQ=DAILY;INTERVAL=0",
			want: Pattern{Frequency: Daily, Interval: 0},
		},
		{
			name: "unknown keys and bare words are ignored",
			rule: "FREQ=WEEKLY;COUNT=10;WKST=MO;junk",
			want: Pattern{Frequency: Weekly, Interval: 1},
		},
		{
			name: "unparseable text degrades to the default",
			rule: "whenever I feel like it",
			want: Pattern{Frequency: Daily, Interval: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.rule).Get()
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_BlankInput(t *testing.T) {
	for _, rule := range []string{"", "   ", "\t\n"} {
		assert.True(t, Parse(rule).IsAbsent(), "rule %q", rule)
	}
}

// An unrecognized FREQ keeps the DAILY default instead of failing the parse.
// This leniency is deliberate until product decides otherwise.
func TestParse_UnknownFrequencyKeepsDaily(t *testing.T) {
	got := MustParse("FREQ=FORTNIGHTLY;INTERVAL=2")
	assert.Equal(t, Pattern{Frequency: Daily, Interval: 2}, got)

	got = MustParse("FREQ=HOURLY")
	assert.Equal(t, Daily, got.Frequency)
}

func TestParse_OversizedIntervalFailsValidation(t *testing.T) {
	for _, rule := range []string{
		"every 99999999999999999999 days",
		"FREQ=DAILY;INTERVAL=99999999999999999999",
	} {
		assert.Equal(t, []string{MsgIntervalTooLarge}, Validate(MustParse(rule)), "rule %q", rule)
	}
	assert.Equal(t, []string{MsgIntervalTooSmall}, Validate(MustParse("FREQ=DAILY;INTERVAL=-99999999999999999999")))
}

func TestParseInterval(t *testing.T) {
	assert.Equal(t, 7, ParseInterval("7"))
	assert.Equal(t, 7, ParseInterval(" 7 "))
	assert.Equal(t, -2, ParseInterval("-2"))
	assert.Equal(t, 1, ParseInterval("often"))
	assert.Equal(t, 1, ParseInterval(""))
	assert.Equal(t, math.MaxInt, ParseInterval("99999999999999999999"))
	assert.Equal(t, math.MinInt, ParseInterval("-99999999999999999999"))
}

func TestParse_PhraseDescribes(t *testing.T) {
	p := MustParse("every 3 days")
	assert.Equal(t, Pattern{Frequency: Daily, Interval: 3}, p)
	assert.Equal(t, "Every 3 days", Describe(p))
}

func TestMustParse_PanicsOnBlank(t *testing.T) {
	assert.Panics(t, func() { MustParse(" ") })
}
