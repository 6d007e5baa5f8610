// Package export renders the current selection as an iCalendar feed of
// all-day events.
package export

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-datepicker/internal/config"
	"github.com/tartampluch/go-datepicker/internal/dates"
	"github.com/tartampluch/go-datepicker/internal/engine"
)

// Snapshot is the selection state that gets exported.
type Snapshot struct {
	Dates  []time.Time
	Ranged bool
}

// SnapshotOf captures the selection of p.
func SnapshotOf(p *engine.Picker) Snapshot {
	return Snapshot{
		Dates:  p.SelectedDates(),
		Ranged: p.Mode() == engine.SelectionRange,
	}
}

// Exporter converts selection snapshots to iCalendar data.
type Exporter struct {
	Clock engine.Clock

	// Summary and RangeSummary let the UI inject localized event titles.
	// Each receives the dates its event covers.
	Summary      func(d time.Time) string
	RangeSummary func(lo, hi time.Time) string
}

// Encode returns the calendar for s. A complete range becomes a single
// event spanning both endpoints; every other selection yields one event
// per date. An empty selection yields an empty but valid calendar.
func (e *Exporter) Encode(s Snapshot) ([]byte, error) {
	if len(s.Dates) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	now := time.Now()
	if e.Clock != nil {
		now = e.Clock.Now()
	}
	dtStamp := ical.NewProp(config.PropDTStamp)
	dtStamp.SetDateTime(now.UTC())

	var events []*ical.Event
	if s.Ranged && len(s.Dates) == 2 {
		lo, _ := dates.MinOf(s.Dates)
		hi, _ := dates.MaxOf(s.Dates)
		summary := fmt.Sprintf(config.FallbackSummaryRange,
			lo.Format(config.DateFormatDisplay), hi.Format(config.DateFormatDisplay))
		if e.RangeSummary != nil {
			summary = e.RangeSummary(lo, hi)
		}
		events = append(events, newEvent(lo, hi.AddDate(0, 0, 1), summary, config.ModeNameRange))
	} else {
		for _, d := range s.Dates {
			summary := fmt.Sprintf(config.FallbackSummary, d.Format(config.DateFormatDisplay))
			if e.Summary != nil {
				summary = e.Summary(d)
			}
			events = append(events, newEvent(d, time.Time{}, summary, config.ModeNameSingle))
		}
	}

	for _, ev := range events {
		ev.Props.Set(dtStamp)
		cal.Children = append(cal.Children, ev.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompExport,
		config.LogKeyCount, len(events),
		config.LogKeySizeBytes, buf.Len(),
	)
	return buf.Bytes(), nil
}

// newEvent builds an all-day event starting on start. A zero end leaves
// DTEND out, which makes the event last one day.
func newEvent(start, end time.Time, summary, kind string) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, uid(start, end, kind))
	event.Props.SetText(config.PropSummary, summary)

	dtStart := ical.NewProp(config.PropDTStart)
	dtStart.SetDate(dates.AtMidnight(start))
	event.Props.Set(dtStart)

	if !end.IsZero() {
		dtEnd := ical.NewProp(config.PropDTEnd)
		dtEnd.SetDate(dates.AtMidnight(end))
		event.Props.Set(dtEnd)
	}
	return event
}

// uid is stable across exports of the same selection.
func uid(start, end time.Time, kind string) string {
	input := fmt.Sprintf(config.FormatHashInput,
		kind+":"+start.Format(config.DateFormatDisplay),
		end.Format(config.DateFormatDisplay),
		config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf(config.FormatUID, fmt.Sprintf("%x", hash[:config.UIDHashLength]), config.ICalDomain)
}
