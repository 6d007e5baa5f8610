package engine

import (
	"time"

	"github.com/tartampluch/go-datepicker/internal/dates"
)

// DateSelectableFilter decides whether a date may be selected, on top of
// the min/max bounds. A nil filter means every date is selectable.
type DateSelectableFilter interface {
	IsSelectable(date time.Time) bool
}

// FilterFunc adapts a function to DateSelectableFilter.
type FilterFunc func(date time.Time) bool

func (f FilterFunc) IsSelectable(date time.Time) bool {
	return f(date)
}

// WeekdayFilter rejects the listed weekdays.
type WeekdayFilter []time.Weekday

func (w WeekdayFilter) IsSelectable(date time.Time) bool {
	wd := date.Weekday()
	for _, disabled := range w {
		if wd == disabled {
			return false
		}
	}
	return true
}

// BlockedDatesFilter rejects individual calendar days.
type BlockedDatesFilter struct {
	blocked dates.Set
}

// NewBlockedDatesFilter blocks every day in ds.
func NewBlockedDatesFilter(ds []time.Time) BlockedDatesFilter {
	return BlockedDatesFilter{blocked: dates.NewSet(ds)}
}

func (b BlockedDatesFilter) IsSelectable(date time.Time) bool {
	return !b.blocked.Has(date)
}

// AllFilters combines filters; a date is selectable only if every non-nil
// filter accepts it. It returns nil when no filters remain.
func AllFilters(filters ...DateSelectableFilter) DateSelectableFilter {
	var kept []DateSelectableFilter
	for _, f := range filters {
		if f != nil {
			kept = append(kept, f)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	return FilterFunc(func(date time.Time) bool {
		for _, f := range kept {
			if !f.IsSelectable(date) {
				return false
			}
		}
		return true
	})
}
