package engine

import (
	"log/slog"
	"time"

	"github.com/tartampluch/go-datepicker/internal/config"
	"github.com/tartampluch/go-datepicker/internal/dates"
)

// Navigator tracks the active month.
//
// Only backwards navigation is bounded: Prev refuses to leave the month of
// MinDate, while Next is always allowed. Days outside the bounds are still
// rendered unselectable by the grid builder.
type Navigator struct {
	active time.Time
	min    time.Time
	max    time.Time
}

// NewNavigator starts on the month containing start. Zero bounds are open.
func NewNavigator(start, lo, hi time.Time) *Navigator {
	return &Navigator{
		active: dates.MonthStart(start),
		min:    lo,
		max:    hi,
	}
}

// Active returns midnight on the first day of the active month.
func (n *Navigator) Active() time.Time {
	return n.active
}

// Prev moves one month back if the target month is reachable and reports
// whether the active month changed. The month of MinDate is reachable even
// when MinDate falls after its first day.
func (n *Navigator) Prev() bool {
	target := dates.MonthStart(n.active.AddDate(0, -1, 0))
	if !n.canReach(target) {
		slog.Debug(config.MsgPrevRejected,
			config.LogKeyComponent, config.CompNav,
			config.LogKeyMonth, target.Format(config.DateFormatDisplay))
		return false
	}
	n.active = target
	return true
}

// Next moves one month forward. It is never rejected.
func (n *Navigator) Next() bool {
	n.active = dates.MonthStart(n.active.AddDate(0, 1, 0))
	return true
}

// JumpTo makes the month containing t active, without bound checks.
func (n *Navigator) JumpTo(t time.Time) {
	n.active = dates.MonthStart(t)
}

func (n *Navigator) canReach(target time.Time) bool {
	if n.min.IsZero() {
		return true
	}
	hi := n.max
	if hi.IsZero() {
		hi = target
	}
	if !n.min.After(hi) && dates.Between(target, n.min, hi) {
		return true
	}
	return dates.SameMonth(target, n.min)
}
