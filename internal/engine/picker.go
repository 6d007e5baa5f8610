package engine

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/tartampluch/go-datepicker/internal/config"
	"github.com/tartampluch/go-datepicker/internal/dates"
)

// MonthLabeler produces the display label for the month starting at month.
type MonthLabeler func(month time.Time) string

// DateListener is notified once per accepted click, after the grid has been
// rebuilt.
type DateListener interface {
	OnDateSelected(date time.Time)
	OnDateUnselected(date time.Time)
}

// ListenerFuncs adapts two optional functions to DateListener.
type ListenerFuncs struct {
	Selected   func(date time.Time)
	Unselected func(date time.Time)
}

func (l ListenerFuncs) OnDateSelected(date time.Time) {
	if l.Selected != nil {
		l.Selected(date)
	}
}

func (l ListenerFuncs) OnDateUnselected(date time.Time) {
	if l.Unselected != nil {
		l.Unselected(date)
	}
}

// GridListener is the inbound event seam used by presentation layers.
type GridListener interface {
	HandleClick(cell DayCell) (bool, error)
	PrevClick() bool
	NextClick()
}

// Options configures a Picker. Mode, bounds and first day of week are
// fixed once the picker is built.
type Options struct {
	Mode           SelectionMode
	MinDate        time.Time
	MaxDate        time.Time
	FirstDayOfWeek time.Weekday

	// StartDate selects the initially displayed month. It defaults to the
	// first initial selection, then to today.
	StartDate     time.Time
	SelectedDates []time.Time
	Highlighted   []time.Time

	// Today overrides the clock, mostly for tests.
	Today time.Time
	Clock Clock

	Filter   DateSelectableFilter
	Labeler  MonthLabeler
	Listener DateListener

	// OnChange observes every rebuilt grid.
	OnChange func(Grid)

	// Collapsed shows a single week instead of the whole month.
	Collapsed bool
}

// Picker wires the grid builder, the selection and the navigator together.
// It has a single owner: callers embedding it in a concurrent host must
// serialize access themselves.
type Picker struct {
	builder   GridBuilder
	selection *Selection
	nav       *Navigator
	labeler   MonthLabeler
	listener  DateListener
	onChange  func(Grid)
	collapsed bool

	month MonthDescriptor
	grid  Grid
}

var _ GridListener = (*Picker)(nil)

// NewPicker validates opts and builds the initial grid. Initial selections
// that are out of bounds or rejected by the filter are dropped.
func NewPicker(opts Options) (*Picker, error) {
	if !opts.Mode.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSelectionMode, opts.Mode)
	}
	if !opts.MinDate.IsZero() && !opts.MaxDate.IsZero() &&
		dates.AtMidnight(opts.MinDate).After(dates.AtMidnight(opts.MaxDate)) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidBounds,
			opts.MinDate.Format(config.DateFormatDisplay),
			opts.MaxDate.Format(config.DateFormatDisplay))
	}

	clock := opts.Clock
	if clock == nil {
		clock = RealClock{}
	}
	today := opts.Today
	if today.IsZero() {
		today = clock.Now()
	}
	today = dates.AtMidnight(today)

	labeler := opts.Labeler
	if labeler == nil {
		labeler = func(month time.Time) string { return month.Format("January 2006") }
	}

	start := opts.StartDate
	if start.IsZero() {
		start = today
		if first, ok := firstSelectable(opts.SelectedDates, opts); ok {
			start = first
		}
	}

	p := &Picker{
		builder: GridBuilder{
			FirstDayOfWeek: opts.FirstDayOfWeek,
			MinDate:        opts.MinDate,
			MaxDate:        opts.MaxDate,
			Today:          today,
			Highlighted:    dates.NewSet(opts.Highlighted),
			Filter:         opts.Filter,
		},
		selection: NewSelection(opts.Mode),
		nav:       NewNavigator(start, opts.MinDate, opts.MaxDate),
		labeler:   labeler,
		collapsed: opts.Collapsed,
	}
	p.rebuild()

	if err := p.applyInitial(opts.SelectedDates); err != nil {
		return nil, err
	}

	p.nav.JumpTo(start)
	p.rebuild()

	// Callbacks are attached last so construction never fires them.
	p.listener = opts.Listener
	p.onChange = opts.OnChange
	return p, nil
}

func firstSelectable(ds []time.Time, opts Options) (time.Time, bool) {
	b := GridBuilder{MinDate: opts.MinDate, MaxDate: opts.MaxDate, Filter: opts.Filter}
	for _, d := range ds {
		if b.IsSelectable(d) {
			return d, true
		}
	}
	return time.Time{}, false
}

func (p *Picker) applyInitial(ds []time.Time) error {
	initial := slices.Clone(ds)
	if p.selection.Mode() == SelectionRange {
		slices.SortFunc(initial, func(a, b time.Time) int { return a.Compare(b) })
	}
	for _, d := range initial {
		if p.selection.Mode() == SelectionMultiple && p.selection.Contains(d) {
			continue
		}
		if _, err := p.SelectDate(d); err != nil {
			return err
		}
	}
	return nil
}

// HandleClick applies a click on cell. Clicks on cells that are not
// selectable in the current grid are ignored and report false with no
// error. The listener fires after the grid has been rebuilt.
func (p *Picker) HandleClick(cell DayCell) (bool, error) {
	row, col, ok := p.grid.Find(cell.Date)
	if !ok || !p.grid.Weeks[row][col].Selectable {
		slog.Debug(config.MsgClickIgnored,
			config.LogKeyComponent, config.CompPicker,
			config.LogKeyDate, cell.Date.Format(config.DateFormatDisplay))
		return false, nil
	}
	fresh := p.grid.Weeks[row][col]

	selected, err := p.apply(fresh)
	if err != nil {
		return false, err
	}

	if p.listener != nil {
		if selected {
			p.listener.OnDateSelected(fresh.Date)
		} else {
			p.listener.OnDateUnselected(fresh.Date)
		}
	}
	return selected, nil
}

// HandleClickAt is HandleClick addressed by grid position.
func (p *Picker) HandleClickAt(row, col int) (bool, error) {
	cell, ok := p.grid.Cell(row, col)
	if !ok {
		return false, fmt.Errorf("%w: row %d col %d", ErrCellOutOfGrid, row, col)
	}
	return p.HandleClick(cell)
}

// SelectDate selects date programmatically: the picker moves to date's
// month first. The listener is not notified. Dates that are not
// selectable are ignored.
func (p *Picker) SelectDate(date time.Time) (bool, error) {
	if !p.builder.IsSelectable(date) {
		slog.Debug(config.MsgInitialSkipped,
			config.LogKeyComponent, config.CompPicker,
			config.LogKeyDate, date.Format(config.DateFormatDisplay))
		return false, nil
	}
	if !dates.SameMonth(date, p.month.Date) {
		p.JumpTo(date)
	}
	row, col, ok := p.grid.Find(date)
	if !ok {
		return false, nil
	}
	return p.apply(p.grid.Weeks[row][col])
}

func (p *Picker) apply(cell DayCell) (bool, error) {
	res, err := p.selection.SelectDate(cell.Date, cell, p.grid)
	if err != nil {
		return false, fmt.Errorf("%s: %w", config.ErrSelectionFailed, err)
	}
	p.rebuild()
	return res.Selected, nil
}

// PrevClick moves to the previous month if the lower bound allows it.
func (p *Picker) PrevClick() bool {
	if !p.nav.Prev() {
		return false
	}
	p.rebuild()
	return true
}

// NextClick moves to the next month.
func (p *Picker) NextClick() {
	p.nav.Next()
	p.rebuild()
}

// JumpTo displays the month containing t.
func (p *Picker) JumpTo(t time.Time) {
	p.nav.JumpTo(t)
	p.rebuild()
}

// JumpToToday displays the month containing today.
func (p *Picker) JumpToToday() {
	p.JumpTo(p.builder.Today)
}

// ClearSelection deselects everything.
func (p *Picker) ClearSelection() {
	p.selection.Clear()
	p.rebuild()
}

// SetHighlighted replaces the display-only highlight set.
func (p *Picker) SetHighlighted(ds []time.Time) {
	p.builder.Highlighted = dates.NewSet(ds)
	p.rebuild()
}

// SetCollapsed switches between the month and the single-week display.
func (p *Picker) SetCollapsed(collapsed bool) {
	if p.collapsed == collapsed {
		return
	}
	p.collapsed = collapsed
	if p.onChange != nil {
		p.onChange(p.grid)
	}
}

// Collapsed reports whether only one week is displayed.
func (p *Picker) Collapsed() bool {
	return p.collapsed
}

// VisibleRows returns the first grid row to display and the row count.
// When collapsed, the row holds the first selected date, else today,
// else the month's first week.
func (p *Picker) VisibleRows() (first, count int) {
	if !p.collapsed || len(p.grid.Weeks) == 0 {
		return 0, len(p.grid.Weeks)
	}
	for _, d := range p.selection.dates {
		if row, ok := p.grid.WeekOf(d); ok && dates.SameMonth(d, p.month.Date) {
			return row, 1
		}
	}
	if dates.SameMonth(p.builder.Today, p.month.Date) {
		if row, ok := p.grid.WeekOf(p.builder.Today); ok {
			return row, 1
		}
	}
	return 0, 1
}

// VisibleWeeks returns the displayed rows of the grid.
func (p *Picker) VisibleWeeks() []Week {
	first, count := p.VisibleRows()
	return p.grid.Weeks[first : first+count]
}

// Grid returns the current grid.
func (p *Picker) Grid() Grid {
	return p.grid
}

// Month returns the displayed month.
func (p *Picker) Month() MonthDescriptor {
	return p.month
}

// Mode returns the selection mode.
func (p *Picker) Mode() SelectionMode {
	return p.selection.Mode()
}

// FirstDayOfWeek returns the weekday every row starts with.
func (p *Picker) FirstDayOfWeek() time.Weekday {
	return p.builder.FirstDayOfWeek
}

// TodayDate returns the "today" captured at construction.
func (p *Picker) TodayDate() time.Time {
	return p.builder.Today
}

// SelectedDate returns the first selected date.
func (p *Picker) SelectedDate() (time.Time, bool) {
	if p.selection.Len() == 0 {
		return time.Time{}, false
	}
	return p.selection.dates[0], true
}

// SelectedDates returns the selected dates in selection order.
func (p *Picker) SelectedDates() []time.Time {
	return p.selection.SelectedDates()
}

// SelectedCells returns the selected cells, including range fill.
func (p *Picker) SelectedCells() []DayCell {
	return p.selection.SelectedCells()
}

// rebuild re-derives the month descriptor and grid from the navigator and
// the selection, then notifies the observer.
func (p *Picker) rebuild() {
	active := p.nav.Active()
	if !dates.SameMonth(active, p.month.Date) {
		slog.Debug(config.MsgMonthChanged,
			config.LogKeyComponent, config.CompPicker,
			config.LogKeyMonth, active.Format(config.DateFormatDisplay))
	}
	p.month = NewMonthDescriptor(active, p.labeler(active))
	p.grid = p.builder.Build(p.month, p.selection)
	if p.onChange != nil {
		p.onChange(p.grid)
	}
}
