package engine

import (
	"log/slog"
	"time"

	"github.com/tartampluch/go-datepicker/internal/config"
	"github.com/tartampluch/go-datepicker/internal/dates"
)

// GridBuilder projects a month and a selection onto a grid of DayCells.
// Build is a pure function of the builder fields and its arguments.
type GridBuilder struct {
	FirstDayOfWeek time.Weekday

	// MinDate and MaxDate are inclusive. A zero value leaves that side open.
	MinDate time.Time
	MaxDate time.Time

	Today       time.Time
	Highlighted dates.Set
	Filter      DateSelectableFilter
}

// InBounds reports whether d lies within [MinDate, MaxDate].
func (b *GridBuilder) InBounds(d time.Time) bool {
	lo, hi := b.MinDate, b.MaxDate
	if lo.IsZero() {
		lo = d
	}
	if hi.IsZero() {
		hi = d
	}
	return dates.Between(d, lo, hi)
}

// IsSelectable reports whether d passes the bounds and the external filter.
// It does not consider which month is displayed.
func (b *GridBuilder) IsSelectable(d time.Time) bool {
	if !b.InBounds(d) {
		return false
	}
	return b.Filter == nil || b.Filter.IsSelectable(d)
}

// Build returns the weeks covering month. The first row starts on
// FirstDayOfWeek on or before the 1st; rows are emitted until the month's
// last day has been covered, which yields 4 to 6 weeks.
// sel may be nil.
func (b *GridBuilder) Build(month MonthDescriptor, sel *Selection) Grid {
	loc := month.Date.Location()
	first := dates.DayStart(month.Year, month.Month, 1, loc)

	// Cells are addressed by day of month. Day numbers below 1 fall in the
	// previous month.
	offset := int(b.FirstDayOfWeek) - int(first.Weekday())
	if offset > 0 {
		offset -= config.DaysPerWeek
	}
	start := 1 + offset

	p := b.newProjection(sel)
	grid := Grid{Month: month}

	for d := start; notPast(dates.DayStart(month.Year, month.Month, d, loc), month); d += config.DaysPerWeek {
		var week Week
		for c := range week {
			week[c] = b.cell(dates.DayStart(month.Year, month.Month, d+c, loc), month, p)
		}
		slog.Debug(config.MsgWeekRow,
			config.LogKeyComponent, config.CompGrid,
			config.LogKeyDate, week[0].Date.Format(config.DateFormatDisplay))
		grid.Weeks = append(grid.Weeks, week)
	}

	slog.Debug(config.MsgGridBuilt,
		config.LogKeyComponent, config.CompGrid,
		config.LogKeyMonth, month.String(),
		config.LogKeyWeeks, len(grid.Weeks))
	return grid
}

// notPast reports whether cursor's month is not after the target month.
func notPast(cursor time.Time, month MonthDescriptor) bool {
	if cursor.Year() != month.Year {
		return cursor.Year() < month.Year
	}
	return cursor.Month() <= month.Month
}

// projection caches the parts of the selection every cell consults.
type projection struct {
	selected dates.Set
	ranged   bool
	lo, hi   time.Time
}

func (b *GridBuilder) newProjection(sel *Selection) projection {
	if sel == nil {
		return projection{}
	}
	p := projection{selected: dates.NewSet(sel.dates)}
	if sel.mode == SelectionRange && len(sel.dates) > 1 {
		p.lo, _ = dates.MinOf(sel.dates)
		p.hi, _ = dates.MaxOf(sel.dates)
		p.ranged = true
	}
	return p
}

func (b *GridBuilder) cell(d time.Time, month MonthDescriptor, p projection) DayCell {
	current := d.Month() == month.Month && d.Year() == month.Year
	selectable := current && b.IsSelectable(d)

	state := RangeNone
	if p.ranged {
		switch {
		case dates.SameDay(d, p.lo):
			state = RangeFirst
		case dates.SameDay(d, p.hi):
			state = RangeLast
		case selectable && dates.Between(d, p.lo, p.hi):
			state = RangeMiddle
		}
	}

	return DayCell{
		Date:         d,
		Value:        d.Day(),
		CurrentMonth: current,
		Selectable:   selectable,
		Selected:     selectable && (p.selected.Has(d) || state == RangeMiddle),
		Today:        !b.Today.IsZero() && dates.SameDay(d, b.Today),
		Highlighted:  b.Highlighted.Has(d),
		RangeState:   state,
	}
}
