package engine

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/tartampluch/go-datepicker/internal/config"
	"github.com/tartampluch/go-datepicker/internal/dates"
)

// Selection owns the selected dates and their cells.
//
// dates[i] and cells[i] describe the same day for every clicked date; in
// range mode the cells list additionally holds the filled middle days after
// the two endpoints. A Selection has a single owner and is not safe for
// concurrent use.
type Selection struct {
	mode  SelectionMode
	dates []time.Time
	cells []DayCell
}

// NewSelection returns an empty selection with a fixed mode. The mode is
// only validated by SelectDate.
func NewSelection(mode SelectionMode) *Selection {
	return &Selection{mode: mode}
}

// Mode returns the selection mode.
func (s *Selection) Mode() SelectionMode {
	return s.mode
}

// Len returns the number of selected dates.
func (s *Selection) Len() int {
	return len(s.dates)
}

// SelectedDates returns a copy of the selected dates in insertion order.
func (s *Selection) SelectedDates() []time.Time {
	return slices.Clone(s.dates)
}

// SelectedCells returns a copy of the selected cells, including range fill.
func (s *Selection) SelectedCells() []DayCell {
	return slices.Clone(s.cells)
}

// Contains reports whether date is one of the selected dates.
func (s *Selection) Contains(date time.Time) bool {
	return dates.Contains(s.dates, date)
}

// Bounds returns the earliest and latest selected dates.
func (s *Selection) Bounds() (lo, hi time.Time, ok bool) {
	lo, ok = dates.MinOf(s.dates)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	hi, _ = dates.MaxOf(s.dates)
	return lo, hi, true
}

// Clear deselects everything.
func (s *Selection) Clear() {
	for i := range s.cells {
		s.cells[i].Selected = false
	}
	s.cells = s.cells[:0]
	s.dates = s.dates[:0]
}

// SelectDate applies one click to the selection. The caller has already
// checked that date is within bounds and passes the selectable filter.
// grid is the currently displayed grid; in range mode its selectable days
// between the two endpoints are added to the selected cells.
//
// An unknown mode leaves the selection untouched and returns
// ErrUnknownSelectionMode.
func (s *Selection) SelectDate(date time.Time, cell DayCell, grid Grid) (SelectResult, error) {
	if !s.mode.Valid() {
		return SelectResult{}, fmt.Errorf("%w: %s", ErrUnknownSelectionMode, s.mode)
	}

	date = dates.AtMidnight(date)
	log := slog.With(
		config.LogKeyComponent, config.CompSelect,
		config.LogKeyMode, s.mode.String(),
		config.LogKeyDate, date.Format(config.DateFormatDisplay),
	)

	for i := range s.cells {
		s.cells[i].RangeState = RangeNone
	}

	switch s.mode {
	case SelectionSingle:
		s.Clear()

	case SelectionMultiple:
		if s.remove(date) {
			log.Debug(config.MsgDateUnselected)
			return SelectResult{Selected: false}, nil
		}

	case SelectionRange:
		switch {
		case len(s.dates) > 1:
			s.Clear()
		case len(s.dates) == 1 && date.Before(dates.AtMidnight(s.dates[0])):
			s.Clear()
		}
	}

	cell.Date = date
	cell.Selected = true
	cell.RangeState = RangeNone
	s.dates = append(s.dates, date)
	s.cells = append(s.cells, cell)

	if s.mode == SelectionRange && len(s.dates) == 2 {
		s.fillRange(grid)
		log.Debug(config.MsgRangeFilled,
			config.LogKeyFrom, s.dates[0].Format(config.DateFormatDisplay),
			config.LogKeyTo, s.dates[1].Format(config.DateFormatDisplay),
			config.LogKeyCount, len(s.cells)-len(s.dates))
	}

	log.Debug(config.MsgDateSelected)
	return SelectResult{Selected: true}, nil
}

// remove drops date and its cell. It reports whether date was selected.
func (s *Selection) remove(date time.Time) bool {
	i := dates.IndexOf(s.dates, date)
	if i < 0 {
		return false
	}
	s.dates = slices.Delete(s.dates, i, i+1)
	for j := range s.cells {
		if dates.SameDay(s.cells[j].Date, date) {
			s.cells[j].Selected = false
			s.cells = slices.Delete(s.cells, j, j+1)
			break
		}
	}
	return true
}

// fillRange marks the two endpoints and appends every selectable
// current-month cell strictly between them. dates[0] is never after dates[1]
// because an earlier click clears a pending start.
func (s *Selection) fillRange(grid Grid) {
	start, end := s.dates[0], s.dates[1]
	s.cells[0].RangeState = RangeFirst
	s.cells[1].RangeState = RangeLast

	for _, week := range grid.Weeks {
		for _, c := range week {
			if !c.Selectable || !c.Date.After(start) || !c.Date.Before(end) {
				continue
			}
			if dates.SameDay(c.Date, start) || dates.SameDay(c.Date, end) {
				continue
			}
			c.Selected = true
			c.RangeState = RangeMiddle
			s.cells = append(s.cells, c)
		}
	}
}
