package dates

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSameDay(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want bool
	}{
		{"Same instant", day(2024, 3, 10), day(2024, 3, 10), true},
		{"Different clock", time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC), time.Date(2024, 3, 10, 0, 1, 0, 0, time.UTC), true},
		{"Next day", day(2024, 3, 10), day(2024, 3, 11), false},
		{"Same day other year", day(2023, 3, 10), day(2024, 3, 10), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SameDay(tt.a, tt.b))
		})
	}
}

func TestSameMonth(t *testing.T) {
	assert.True(t, SameMonth(day(2024, 3, 1), day(2024, 3, 31)))
	assert.False(t, SameMonth(day(2024, 3, 1), day(2025, 3, 1)), "Year must match")
	assert.False(t, SameMonth(day(2024, 3, 31), day(2024, 4, 1)))
}

func TestBetween_Inclusive(t *testing.T) {
	lo, hi := day(2024, 3, 10), day(2024, 3, 20)

	assert.True(t, Between(lo, lo, hi), "Lower bound is inclusive")
	assert.True(t, Between(hi, lo, hi), "Upper bound is inclusive")
	assert.True(t, Between(time.Date(2024, 3, 20, 18, 0, 0, 0, time.UTC), lo, hi), "Time of day is ignored")
	assert.False(t, Between(day(2024, 3, 9), lo, hi))
	assert.False(t, Between(day(2024, 3, 21), lo, hi))
}

func TestMinMaxOf(t *testing.T) {
	_, ok := MinOf(nil)
	assert.False(t, ok, "Empty input yields the empty sentinel")
	_, ok = MaxOf([]time.Time{})
	assert.False(t, ok)

	ds := []time.Time{day(2024, 3, 15), day(2024, 1, 2), day(2024, 12, 31), day(2024, 6, 1)}

	lo, ok := MinOf(ds)
	require.True(t, ok)
	assert.Equal(t, day(2024, 1, 2), lo)

	hi, ok := MaxOf(ds)
	require.True(t, ok)
	assert.Equal(t, day(2024, 12, 31), hi)
}

func TestAtMidnight_DoesNotMutate(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	in := time.Date(2024, 3, 10, 22, 30, 15, 999, loc)

	out := AtMidnight(in)

	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, loc), out)
	assert.Equal(t, 22, in.Hour(), "Input must keep its clock fields")
	assert.Equal(t, loc, out.Location(), "Location is preserved")
}

func TestMonthStart(t *testing.T) {
	assert.Equal(t, day(2024, 2, 1), MonthStart(time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC)))
}

func TestSetAndContains(t *testing.T) {
	ds := []time.Time{day(2024, 3, 10), time.Date(2024, 3, 12, 15, 0, 0, 0, time.UTC)}

	s := NewSet(ds)
	assert.True(t, s.Has(time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)))
	assert.True(t, s.Has(day(2024, 3, 12)))
	assert.False(t, s.Has(day(2024, 3, 11)))

	assert.True(t, Contains(ds, day(2024, 3, 12)))
	assert.Equal(t, 1, IndexOf(ds, day(2024, 3, 12)))
	assert.Equal(t, -1, IndexOf(ds, day(2025, 3, 12)))
}

func TestKey_IgnoresLocation(t *testing.T) {
	a := time.Date(2024, 3, 10, 1, 0, 0, 0, time.FixedZone("A", 3600))
	b := time.Date(2024, 3, 10, 23, 0, 0, 0, time.FixedZone("B", -3600))
	assert.Equal(t, Key(a), Key(b))
}

// Brazil started daylight saving at midnight on 2018-11-04, so that day
// begins at 01:00.
func TestDayStart_SkippedMidnight(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	got := DayStart(2018, time.November, 4, loc)
	y, m, d := got.Date()
	assert.Equal(t, []int{2018, 11, 4, 1}, []int{y, int(m), d, got.Hour()})
	assert.True(t, AtMidnight(got.Add(5*time.Hour)).Equal(got))
	assert.Equal(t, 0, DayStart(2018, time.November, 5, loc).Hour())
}

func TestDayStart_Normalises(t *testing.T) {
	assert.Equal(t, day(2024, 3, 1), DayStart(2024, time.February, 30, time.UTC))
	assert.Equal(t, day(2023, 12, 31), DayStart(2024, time.January, 0, time.UTC))
}

func TestKey_MatchesCalendarDate(t *testing.T) {
	k := Key(time.Date(2024, 2, 29, 18, 0, 0, 0, time.UTC))
	assert.Equal(t, 2024, k.Year())
	assert.Equal(t, 2, int(k.Month()))
	assert.Equal(t, 29, k.Day())
}
