package engine

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-datepicker/internal/dates"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func march2024() MonthDescriptor {
	return NewMonthDescriptor(day(2024, 3, 1), "March 2024")
}

// TestBuild_ShapeAndCoverage checks every month of three years against
// every first day of week: rows start on the configured weekday and each
// day of the month appears exactly once as a current-month cell.
func TestBuild_ShapeAndCoverage(t *testing.T) {
	for fdw := time.Sunday; fdw <= time.Saturday; fdw++ {
		b := &GridBuilder{FirstDayOfWeek: fdw}
		for year := 2023; year <= 2025; year++ {
			for m := time.January; m <= time.December; m++ {
				month := NewMonthDescriptor(day(year, m, 1), "")
				grid := b.Build(month, nil)

				require.NotEmpty(t, grid.Weeks)
				assert.Equal(t, fdw, grid.Weeks[0][0].Date.Weekday(), "%s fdw=%s", month, fdw)
				assert.GreaterOrEqual(t, grid.Rows(), 4)
				assert.LessOrEqual(t, grid.Rows(), 6)

				seen := map[int]int{}
				for _, c := range grid.Cells() {
					if c.CurrentMonth {
						seen[c.Value]++
					}
				}
				last := time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
				assert.Len(t, seen, last, "%s fdw=%s", month, fdw)
				for d := 1; d <= last; d++ {
					assert.Equal(t, 1, seen[d], "%s day %d", month, d)
				}

				lastWeek := grid.Weeks[grid.Rows()-1]
				hasCurrent := false
				for _, c := range lastWeek {
					hasCurrent = hasCurrent || c.CurrentMonth
				}
				assert.True(t, hasCurrent, "Grid must not be padded past the month's last day")
			}
		}
	}
}

func TestBuild_March2024_SundayStart(t *testing.T) {
	b := &GridBuilder{FirstDayOfWeek: time.Sunday, Today: day(2024, 3, 12)}
	grid := b.Build(march2024(), nil)

	require.Equal(t, 6, grid.Rows())
	assert.Equal(t, day(2024, 2, 25), grid.Weeks[0][0].Date, "Lead days come from February")
	assert.False(t, grid.Weeks[0][0].CurrentMonth)
	assert.False(t, grid.Weeks[0][0].Selectable, "Adjacent-month days are never selectable")
	assert.Equal(t, day(2024, 4, 6), grid.Weeks[5][6].Date)

	row, col, ok := grid.Find(day(2024, 3, 12))
	require.True(t, ok)
	assert.True(t, grid.Weeks[row][col].Today)
	assert.Equal(t, 12, grid.Weeks[row][col].Value)
}

func TestBuild_FebruaryFourWeeks(t *testing.T) {
	// 1 Feb 2015 was a Sunday and 2015 is not a leap year.
	b := &GridBuilder{FirstDayOfWeek: time.Sunday}
	grid := b.Build(NewMonthDescriptor(day(2015, 2, 1), ""), nil)
	assert.Equal(t, 4, grid.Rows())
}

func TestBuild_DecemberStopsAtYearEnd(t *testing.T) {
	b := &GridBuilder{FirstDayOfWeek: time.Monday}
	grid := b.Build(NewMonthDescriptor(day(2024, 12, 1), ""), nil)

	// 1 Dec 2024 is a Sunday: Monday-start grid begins 25 Nov and ends 5 Jan.
	require.Equal(t, 6, grid.Rows())
	assert.Equal(t, day(2024, 11, 25), grid.Weeks[0][0].Date)
	assert.Equal(t, day(2025, 1, 5), grid.Weeks[5][6].Date)
}

func TestBuild_Selectability(t *testing.T) {
	b := &GridBuilder{
		FirstDayOfWeek: time.Monday,
		MinDate:        day(2024, 3, 5),
		MaxDate:        day(2024, 3, 25),
		Filter:         WeekdayFilter{time.Saturday, time.Sunday},
	}
	grid := b.Build(march2024(), nil)

	for _, c := range grid.Cells() {
		want := c.CurrentMonth &&
			dates.Between(c.Date, b.MinDate, b.MaxDate) &&
			c.Date.Weekday() != time.Saturday && c.Date.Weekday() != time.Sunday
		assert.Equal(t, want, c.Selectable, c.Date.Format(time.DateOnly))
	}
}

func TestBuild_Highlighted(t *testing.T) {
	b := &GridBuilder{Highlighted: dates.NewSet([]time.Time{day(2024, 3, 8), day(2024, 4, 1)})}
	grid := b.Build(march2024(), nil)

	row, col, _ := grid.Find(day(2024, 3, 8))
	assert.True(t, grid.Weeks[row][col].Highlighted)
	assert.False(t, grid.Weeks[row][col].Selected, "Highlight is independent of selection")

	row, col, ok := grid.Find(day(2024, 4, 1))
	if ok {
		assert.True(t, grid.Weeks[row][col].Highlighted, "Trailing days carry highlights too")
	}
}

func TestBuild_RangeProjection(t *testing.T) {
	b := &GridBuilder{FirstDayOfWeek: time.Sunday}
	sel := NewSelection(SelectionRange)
	sel.dates = []time.Time{day(2024, 3, 10), day(2024, 3, 20)}

	grid := b.Build(march2024(), sel)

	for _, c := range grid.Cells() {
		switch {
		case dates.SameDay(c.Date, day(2024, 3, 10)):
			assert.Equal(t, RangeFirst, c.RangeState)
			assert.True(t, c.Selected)
		case dates.SameDay(c.Date, day(2024, 3, 20)):
			assert.Equal(t, RangeLast, c.RangeState)
			assert.True(t, c.Selected)
		case c.Date.After(day(2024, 3, 10)) && c.Date.Before(day(2024, 3, 20)):
			assert.Equal(t, RangeMiddle, c.RangeState, c.Date.Format(time.DateOnly))
			assert.True(t, c.Selected)
		default:
			assert.Equal(t, RangeNone, c.RangeState)
			assert.False(t, c.Selected)
		}
	}
}

func TestBuild_SingleModeHasNoRangeState(t *testing.T) {
	b := &GridBuilder{}
	sel := NewSelection(SelectionMultiple)
	sel.dates = []time.Time{day(2024, 3, 10), day(2024, 3, 20)}

	for _, c := range b.Build(march2024(), sel).Cells() {
		assert.Equal(t, RangeNone, c.RangeState)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	b := &GridBuilder{FirstDayOfWeek: time.Wednesday, Today: day(2024, 3, 3)}
	sel := NewSelection(SelectionSingle)
	sel.dates = []time.Time{day(2024, 3, 7)}

	assert.Equal(t, b.Build(march2024(), sel), b.Build(march2024(), sel))
}

// TestBuild_SkippedMidnight builds November 2018 in Sao Paulo, where
// midnight on the 4th does not exist. Every cell must still hold its own
// day, and days after the change must start at midnight.
func TestBuild_SkippedMidnight(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	b := &GridBuilder{FirstDayOfWeek: time.Sunday}

	grid := b.Build(NewMonthDescriptor(time.Date(2018, 11, 15, 12, 0, 0, 0, loc), ""), nil)

	for _, c := range grid.Cells() {
		require.Equal(t, c.Value, c.Date.Day(), c.Date)
		assert.Equal(t, dates.AtMidnight(c.Date), c.Date)
		if c.CurrentMonth && c.Value > 4 {
			assert.Equal(t, 0, c.Date.Hour(), c.Date)
		}
	}
	row, col, ok := grid.Find(time.Date(2018, 11, 4, 12, 0, 0, 0, loc))
	require.True(t, ok)
	assert.Equal(t, 1, row)
	assert.Equal(t, 0, col)
}

func TestGrid_CellBounds(t *testing.T) {
	grid := (&GridBuilder{}).Build(march2024(), nil)

	_, ok := grid.Cell(-1, 0)
	assert.False(t, ok)
	_, ok = grid.Cell(0, 7)
	assert.False(t, ok)
	_, ok = grid.Cell(grid.Rows(), 0)
	assert.False(t, ok)
	c, ok := grid.Cell(0, 0)
	assert.True(t, ok)
	assert.Equal(t, grid.Weeks[0][0], c)
}

func TestParseSelectionMode(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want SelectionMode
	}{
		{"single", SelectionSingle},
		{"MULTIPLE", SelectionMultiple},
		{" range ", SelectionRange},
	} {
		got, err := ParseSelectionMode(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, got, mustParse(t, got.String()), "String round-trips")
	}

	_, err := ParseSelectionMode("week")
	assert.ErrorIs(t, err, ErrUnknownSelectionMode)
}

func mustParse(t *testing.T, s string) SelectionMode {
	t.Helper()
	m, err := ParseSelectionMode(s)
	require.NoError(t, err)
	return m
}

func TestMonthDescriptor_Index(t *testing.T) {
	m := NewMonthDescriptor(time.Date(2024, 1, 17, 13, 0, 0, 0, time.UTC), "")
	assert.Equal(t, 0, m.Index())
	assert.Equal(t, day(2024, 1, 1), m.Date)
	assert.Equal(t, "2024-01", m.String())
}
