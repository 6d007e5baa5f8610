package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cloudeng.io/datetime"
	"github.com/tartampluch/go-datepicker/internal/config"
	"github.com/tartampluch/go-datepicker/internal/dates"
)

// Sentinel errors returned by the engine.
var (
	// ErrUnknownSelectionMode is a configuration fault: the engine never
	// falls back to a default mode.
	ErrUnknownSelectionMode = errors.New(config.ErrUnknownMode)

	// ErrInvalidBounds is returned when MinDate is after MaxDate.
	ErrInvalidBounds = errors.New(config.ErrInvalidBounds)

	// ErrCellOutOfGrid is returned when a click addresses a row/column
	// that the current grid does not have.
	ErrCellOutOfGrid = errors.New(config.ErrCellOutOfGrid)
)

// SelectionMode controls how clicks change the selection.
// It is fixed for the lifetime of a Selection.
type SelectionMode int

const (
	SelectionSingle SelectionMode = iota
	SelectionMultiple
	SelectionRange
)

// String returns the settings name of the mode.
func (m SelectionMode) String() string {
	switch m {
	case SelectionSingle:
		return config.ModeNameSingle
	case SelectionMultiple:
		return config.ModeNameMultiple
	case SelectionRange:
		return config.ModeNameRange
	default:
		return fmt.Sprintf("SelectionMode(%d)", int(m))
	}
}

// Valid reports whether m is one of the known modes.
func (m SelectionMode) Valid() bool {
	return m >= SelectionSingle && m <= SelectionRange
}

// ParseSelectionMode converts a settings name (case-insensitive) into a mode.
func ParseSelectionMode(s string) (SelectionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case config.ModeNameSingle:
		return SelectionSingle, nil
	case config.ModeNameMultiple:
		return SelectionMultiple, nil
	case config.ModeNameRange:
		return SelectionRange, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSelectionMode, s)
}

// RangeState marks a cell's position within a selected range.
// It is only meaningful in SelectionRange mode.
type RangeState int

const (
	RangeNone RangeState = iota
	RangeFirst
	RangeMiddle
	RangeLast
)

func (r RangeState) String() string {
	switch r {
	case RangeFirst:
		return "first"
	case RangeMiddle:
		return "middle"
	case RangeLast:
		return "last"
	default:
		return "none"
	}
}

// MonthDescriptor identifies a displayed month.
type MonthDescriptor struct {
	Month time.Month
	Year  int
	// Date is midnight on the first day of the month.
	Date time.Time
	// Label is produced by the presentation layer (see MonthLabeler).
	Label string
}

// NewMonthDescriptor describes the month containing t.
func NewMonthDescriptor(t time.Time, label string) MonthDescriptor {
	first := dates.MonthStart(t)
	return MonthDescriptor{
		Month: first.Month(),
		Year:  first.Year(),
		Date:  first,
		Label: label,
	}
}

// Index returns the zero-based month index (January is 0).
func (m MonthDescriptor) Index() int {
	return int(m.Month) - 1
}

func (m MonthDescriptor) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// DayCell describes one grid cell. Cells are values: the grid is rebuilt
// rather than patched whenever the month or the selection changes.
type DayCell struct {
	Date         time.Time
	Value        int
	CurrentMonth bool
	Selectable   bool
	Selected     bool
	Today        bool
	Highlighted  bool
	RangeState   RangeState
}

// Key returns the cell's calendar day.
func (c DayCell) Key() datetime.CalendarDate {
	return dates.Key(c.Date)
}

// Week is one grid row.
type Week [config.DaysPerWeek]DayCell

// Grid is the ordered list of weeks covering one month.
type Grid struct {
	Month MonthDescriptor
	Weeks []Week
}

// Rows returns the number of weeks in the grid.
func (g Grid) Rows() int {
	return len(g.Weeks)
}

// Cell returns the cell at row, col.
func (g Grid) Cell(row, col int) (DayCell, bool) {
	if row < 0 || row >= len(g.Weeks) || col < 0 || col >= config.DaysPerWeek {
		return DayCell{}, false
	}
	return g.Weeks[row][col], true
}

// Find returns the position of date's cell.
func (g Grid) Find(date time.Time) (row, col int, ok bool) {
	for r, week := range g.Weeks {
		for c, cell := range week {
			if dates.SameDay(cell.Date, date) {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// WeekOf returns the row index holding date.
func (g Grid) WeekOf(date time.Time) (int, bool) {
	row, _, ok := g.Find(date)
	return row, ok
}

// Cells returns every cell in row-major order.
func (g Grid) Cells() []DayCell {
	out := make([]DayCell, 0, len(g.Weeks)*config.DaysPerWeek)
	for _, week := range g.Weeks {
		out = append(out, week[:]...)
	}
	return out
}

// SelectResult is the outcome of one selection transition.
type SelectResult struct {
	Selected bool
}
