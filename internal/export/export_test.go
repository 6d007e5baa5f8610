package export_test

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-datepicker/internal/config"
	"github.com/tartampluch/go-datepicker/internal/engine"
	"github.com/tartampluch/go-datepicker/internal/export"
)

var fixedNow = engine.FixedClock(time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC))

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func decode(t *testing.T, data []byte) *ical.Calendar {
	t.Helper()
	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err, "Output must be valid iCalendar")
	return cal
}

func TestEncode_EmptySelectionReturnsStub(t *testing.T) {
	e := &export.Exporter{Clock: fixedNow}

	data, err := e.Encode(export.Snapshot{})
	require.NoError(t, err)

	assert.Equal(t, config.StubVCalendar, string(data))
	assert.Empty(t, decode(t, data).Events())
}

func TestEncode_OneEventPerDate(t *testing.T) {
	e := &export.Exporter{Clock: fixedNow}

	data, err := e.Encode(export.Snapshot{Dates: []time.Time{day(4), day(18)}})
	require.NoError(t, err)

	events := decode(t, data).Events()
	require.Len(t, events, 2)

	start, err := events[0].Props.Get(config.PropDTStart).DateTime(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 4, start.Day())
	assert.Nil(t, events[0].Props.Get(config.PropDTEnd), "Single all-day events have no DTEND")

	summary, err := events[1].Props.Text(config.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, "Selected: 2024-03-18", summary)
}

func TestEncode_RangeIsOneEvent(t *testing.T) {
	e := &export.Exporter{
		Clock:        fixedNow,
		RangeSummary: func(lo, hi time.Time) string { return fmt.Sprintf("Holidays %d-%d", lo.Day(), hi.Day()) },
	}

	data, err := e.Encode(export.Snapshot{Dates: []time.Time{day(10), day(20)}, Ranged: true})
	require.NoError(t, err)

	events := decode(t, data).Events()
	require.Len(t, events, 1)

	start, err := events[0].Props.Get(config.PropDTStart).DateTime(time.UTC)
	require.NoError(t, err)
	end, err := events[0].Props.Get(config.PropDTEnd).DateTime(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 10, start.Day())
	assert.Equal(t, 21, end.Day(), "DTEND is exclusive")

	summary, _ := events[0].Props.Text(config.PropSummary)
	assert.Equal(t, "Holidays 10-20", summary)
}

func TestEncode_LocalizedSummaryCarriesDate(t *testing.T) {
	e := &export.Exporter{
		Clock:   fixedNow,
		Summary: func(d time.Time) string { return d.Format("Jan 2") },
	}

	data, err := e.Encode(export.Snapshot{Dates: []time.Time{day(4), day(18)}})
	require.NoError(t, err)

	events := decode(t, data).Events()
	require.Len(t, events, 2)
	var got []string
	for _, ev := range events {
		s, err := ev.Props.Text(config.PropSummary)
		require.NoError(t, err)
		got = append(got, s)
	}
	assert.Equal(t, []string{"Mar 4", "Mar 18"}, got)
}

func TestEncode_PendingRangeStartIsSingleEvent(t *testing.T) {
	e := &export.Exporter{Clock: fixedNow}

	data, err := e.Encode(export.Snapshot{Dates: []time.Time{day(10)}, Ranged: true})
	require.NoError(t, err)

	events := decode(t, data).Events()
	require.Len(t, events, 1)
	assert.Nil(t, events[0].Props.Get(config.PropDTEnd))
}

func TestEncode_StableUIDs(t *testing.T) {
	e := &export.Exporter{Clock: fixedNow}
	snap := export.Snapshot{Dates: []time.Time{day(4), day(5)}}

	first, err := e.Encode(snap)
	require.NoError(t, err)
	second, err := e.Encode(snap)
	require.NoError(t, err)

	events := decode(t, first).Events()
	again := decode(t, second).Events()
	uid0, _ := events[0].Props.Text(config.PropUID)
	uid1, _ := events[1].Props.Text(config.PropUID)
	uidAgain, _ := again[0].Props.Text(config.PropUID)
	assert.Equal(t, uid0, uidAgain, "UIDs survive re-export")
	assert.NotEqual(t, uid0, uid1)
	assert.Contains(t, uid0, "@"+config.ICalDomain)
}

func TestSnapshotOf(t *testing.T) {
	p, err := engine.NewPicker(engine.Options{
		Mode:          engine.SelectionRange,
		Today:         day(1),
		SelectedDates: []time.Time{day(10), day(20)},
	})
	require.NoError(t, err)

	snap := export.SnapshotOf(p)
	assert.True(t, snap.Ranged)
	assert.Equal(t, []time.Time{day(10), day(20)}, snap.Dates)
}
