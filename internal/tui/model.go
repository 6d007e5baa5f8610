// Package tui renders the picker in a terminal with bubbletea.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/tartampluch/go-datepicker/internal/config"
	"github.com/tartampluch/go-datepicker/internal/contacts"
	"github.com/tartampluch/go-datepicker/internal/dates"
	"github.com/tartampluch/go-datepicker/internal/engine"
	"github.com/tartampluch/go-datepicker/internal/locale"
)

// Config holds the optional inputs of the model.
type Config struct {
	// Highlights are the configured highlight dates. Contact birthdays
	// are merged on top of them once loaded.
	Highlights []time.Time
	Source     config.ContactSettings
	Loader     *contacts.Loader
}

// highlightsMsg carries the birthdays read by loadHighlights.
type highlightsMsg struct {
	dates []time.Time
	err   error
}

// Model is the bubbletea model of the terminal picker. The cursor is a
// date; the picker owns everything else.
type Model struct {
	picker *engine.Picker
	tr     *locale.Translator
	cfg    Config

	keys   keyMap
	help   help.Model
	styles styles

	cursor time.Time
	width  int
	err    error
}

// New returns a model focused on the first selected date of the displayed
// month, then today, then the 1st.
func New(p *engine.Picker, tr *locale.Translator, cfg Config) Model {
	m := Model{
		picker: p,
		tr:     tr,
		cfg:    cfg,
		keys:   newKeyMap(tr),
		help:   help.New(),
		styles: defaultStyles(),
	}
	m.cursor = m.initialCursor()
	return m
}

func (m Model) initialCursor() time.Time {
	month := m.picker.Month().Date
	for _, d := range m.picker.SelectedDates() {
		if dates.SameMonth(d, month) {
			return d
		}
	}
	if today := m.picker.TodayDate(); dates.SameMonth(today, month) {
		return today
	}
	return month
}

// Cursor returns the focused date.
func (m Model) Cursor() time.Time {
	return m.cursor
}

// Init starts the birthday loader when a contact source is configured.
func (m Model) Init() tea.Cmd {
	if m.cfg.Source.Mode == config.SourceModeNone || m.cfg.Loader == nil {
		return nil
	}
	return loadHighlights(m.cfg.Loader, m.cfg.Source, m.picker.TodayDate())
}

func loadHighlights(l *contacts.Loader, src config.ContactSettings, ref time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), config.ContactsLoadTimeout)
		defer cancel()
		bdays, err := l.Birthdays(ctx, src)
		if err != nil {
			return highlightsMsg{err: err}
		}
		return highlightsMsg{dates: contacts.Occurrences(bdays, ref, config.HighlightYearsBack, config.HighlightYearsAhead)}
	}
}

// Update handles keys, resizes and loaded highlights.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case highlightsMsg:
		if msg.err != nil {
			slog.Error(config.ErrContactsFailed,
				config.LogKeyComponent, config.CompTUI,
				config.LogKeyError, msg.err)
			m.err = msg.err
			break
		}
		m.picker.SetHighlighted(append(slices.Clone(m.cfg.Highlights), msg.dates...))

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		m.move(-config.DaysPerWeek)
	case key.Matches(msg, m.keys.Down):
		m.move(config.DaysPerWeek)
	case key.Matches(msg, m.keys.Left):
		m.move(-1)
	case key.Matches(msg, m.keys.Right):
		m.move(1)
	case key.Matches(msg, m.keys.Select):
		m.selectCursor()
	case key.Matches(msg, m.keys.Prev):
		if m.picker.PrevClick() {
			m.cursor = sameDayIn(m.picker.Month().Date, m.cursor.Day())
		}
	case key.Matches(msg, m.keys.Next):
		m.picker.NextClick()
		m.cursor = sameDayIn(m.picker.Month().Date, m.cursor.Day())
	case key.Matches(msg, m.keys.Today):
		m.picker.JumpToToday()
		m.cursor = m.picker.TodayDate()
	case key.Matches(msg, m.keys.Collapse):
		m.picker.SetCollapsed(!m.picker.Collapsed())
	case key.Matches(msg, m.keys.Clear):
		m.picker.ClearSelection()
	}
	return m, nil
}

// move shifts the cursor by days, following it into the adjacent month.
// The cursor stays put when the lower bound forbids that month.
func (m *Model) move(days int) {
	next := m.cursor.AddDate(0, 0, days)
	month := m.picker.Month().Date
	switch {
	case dates.SameMonth(next, month):
	case next.After(month):
		m.picker.NextClick()
	default:
		if !m.picker.PrevClick() {
			return
		}
	}
	m.cursor = next
}

func (m *Model) selectCursor() {
	row, col, ok := m.picker.Grid().Find(m.cursor)
	if !ok {
		return
	}
	if _, err := m.picker.HandleClickAt(row, col); err != nil {
		m.err = err
	}
}

// sameDayIn returns day of month's month, clamped to its last day.
func sameDayIn(month time.Time, day int) time.Time {
	last := month.AddDate(0, 1, -1).Day()
	return dates.DayStart(month.Year(), month.Month(), min(day, last), month.Location())
}

// View renders the title, the visible weeks, the status line and help.
func (m Model) View() string {
	var lines []string

	title := fmt.Sprintf("%s %s %s", config.BtnPrevLabel, m.picker.Month().Label, config.BtnNextLabel)
	gridWidth := config.TUICellWidth * config.DaysPerWeek
	lines = append(lines, m.styles.title.Width(gridWidth).Align(lipgloss.Center).Render(title))

	var header strings.Builder
	for _, h := range m.tr.WeekdayHeaders(m.picker.FirstDayOfWeek()) {
		header.WriteString(m.styles.header.Render(pad(h)))
	}
	lines = append(lines, header.String())

	for _, week := range m.picker.VisibleWeeks() {
		var row strings.Builder
		for _, c := range week {
			focused := dates.SameDay(c.Date, m.cursor)
			row.WriteString(m.styles.cell(c, focused).Render(cellText(c)))
		}
		lines = append(lines, row.String())
	}

	lines = append(lines, "", m.styles.status.Render(m.statusText()))
	if m.err != nil {
		lines = append(lines, m.styles.err.Render(m.err.Error()))
	}
	lines = append(lines, "", m.help.View(m.keys))

	if m.width > 0 {
		for i, l := range lines {
			lines[i] = ansi.Truncate(l, m.width, config.TUIEllipsis)
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) statusText() string {
	return m.tr.SelectionStatus(m.picker.SelectedDates(), m.picker.Mode() == engine.SelectionRange)
}

// cellText right-aligns the day number and appends one marker column.
func cellText(c engine.DayCell) string {
	marker := " "
	switch {
	case c.Today:
		marker = config.TodayMarker
	case c.Highlighted:
		marker = config.HighlightMarker
	}
	return fmt.Sprintf("%*s%s", config.TUICellWidth-1, strconv.Itoa(c.Value), marker)
}

func pad(s string) string {
	w := ansi.StringWidth(s)
	if w >= config.TUICellWidth {
		return ansi.Truncate(s, config.TUICellWidth, "")
	}
	return strings.Repeat(" ", config.TUICellWidth-1-w) + s + " "
}

// Run blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, m Model) error {
	slog.Info(config.MsgTUIStart, config.LogKeyComponent, config.CompTUI)
	prog := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err := prog.Run()
	slog.Info(config.MsgTUIStop, config.LogKeyComponent, config.CompTUI)
	if err != nil && !(errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil) {
		return fmt.Errorf("%s: %w", config.ErrTUIFailed, err)
	}
	return nil
}
