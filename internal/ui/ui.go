// Package ui renders the picker in a Fyne desktop window.
package ui

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-datepicker/internal/config"
	"github.com/tartampluch/go-datepicker/internal/contacts"
	"github.com/tartampluch/go-datepicker/internal/dates"
	"github.com/tartampluch/go-datepicker/internal/engine"
	"github.com/tartampluch/go-datepicker/internal/locale"
)

// PickerApp holds the window, its widgets and the picker they render.
// Every method must run on the Fyne main goroutine.
type PickerApp struct {
	App    fyne.App
	Window fyne.Window
	Ctx    context.Context

	Picker *engine.Picker
	Tr     *locale.Translator
	Loader *contacts.Loader

	Settings     config.Settings
	SettingsPath string

	// baseHighlights come from the settings file; contact birthdays are
	// merged on top of them.
	baseHighlights []time.Time

	title     *widget.Label
	prevBtn   *widget.Button
	headers   [config.DaysPerWeek]*widget.Label
	rows      [config.MaxWeeksPerMonth]*fyne.Container
	cells     [config.MaxWeeksPerMonth][config.DaysPerWeek]*widget.Button
	status    *widget.Label
	collapse  *widget.Check
	yearEntry *NumericalEntry

	settingsWindow fyne.Window
}

// NewPickerApp wires an already built picker into a Fyne application.
func NewPickerApp(a fyne.App, ctx context.Context, p *engine.Picker, tr *locale.Translator, s config.Settings, settingsPath string) *PickerApp {
	return &PickerApp{
		App:            a,
		Ctx:            ctx,
		Picker:         p,
		Tr:             tr,
		Loader:         contacts.NewLoader(),
		Settings:       s,
		SettingsPath:   settingsPath,
		baseHighlights: config.Times(s.HighlightedDates),
	}
}

// Run shows the window, starts the birthday loader and blocks in the Fyne
// event loop.
func (app *PickerApp) Run() {
	app.BuildWindow()
	app.LoadHighlights()

	go func() {
		<-app.Ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompUI)
		fyne.Do(app.App.Quit)
	}()

	app.Window.ShowAndRun()
}

// BuildWindow creates the main window and renders the current grid.
func (app *PickerApp) BuildWindow() {
	w := app.App.NewWindow(app.Tr.Msg(config.TKeyWinTitle))
	app.Window = w

	app.title = widget.NewLabel("")
	app.title.Alignment = fyne.TextAlignCenter
	app.title.TextStyle = fyne.TextStyle{Bold: true}

	app.prevBtn = widget.NewButton(config.BtnPrevLabel, app.Prev)
	nextBtn := widget.NewButton(config.BtnNextLabel, app.Next)
	header := container.NewBorder(nil, nil, app.prevBtn, nextBtn, app.title)

	headerRow := container.NewGridWithColumns(config.DaysPerWeek)
	for i, name := range app.Tr.WeekdayHeaders(app.Picker.FirstDayOfWeek()) {
		app.headers[i] = widget.NewLabel(name)
		app.headers[i].Alignment = fyne.TextAlignCenter
		headerRow.Add(app.headers[i])
	}

	body := container.NewVBox(headerRow)
	for r := range app.rows {
		app.rows[r] = container.NewGridWithColumns(config.DaysPerWeek)
		for c := range app.cells[r] {
			btn := widget.NewButton("", func() { app.Tap(r, c) })
			app.cells[r][c] = btn
			app.rows[r].Add(btn)
		}
		body.Add(app.rows[r])
	}

	app.status = widget.NewLabel("")
	app.status.Alignment = fyne.TextAlignCenter

	app.collapse = widget.NewCheck(app.Tr.Msg(config.TKeyBtnCollapse), func(on bool) {
		app.Picker.SetCollapsed(on)
		app.Refresh()
	})
	app.collapse.Checked = app.Picker.Collapsed()

	app.yearEntry = NewNumericalEntry()
	app.yearEntry.MaxDigits = config.YearEntryMaxDigits
	app.yearEntry.OnSubmitted = app.JumpToYear

	todayBtn := widget.NewButtonWithIcon(app.Tr.Msg(config.TKeyBtnToday), theme.HomeIcon(), app.Today)
	clearBtn := widget.NewButtonWithIcon(app.Tr.Msg(config.TKeyBtnClear), theme.ContentClearIcon(), app.Clear)
	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), app.ShowSettingsWindow)

	actions := container.NewBorder(nil, nil,
		container.NewHBox(todayBtn, clearBtn),
		settingsBtn,
		container.NewGridWithColumns(config.LayoutColumnsDouble, app.collapse, app.yearEntry),
	)

	w.SetContent(container.NewPadded(container.NewVBox(header, body, app.status, actions)))
	w.Canvas().SetOnTypedKey(app.TypedKey)
	w.Resize(fyne.NewSize(config.PickerWinWidth, config.PickerWinHeight))

	app.Refresh()
}

// Refresh re-renders every widget from the picker state.
func (app *PickerApp) Refresh() {
	month := app.Picker.Month()
	app.title.SetText(month.Label)
	app.yearEntry.SetText(strconv.Itoa(month.Year))

	grid := app.Picker.Grid()
	first, count := app.Picker.VisibleRows()
	for r := range app.rows {
		if r >= count {
			app.rows[r].Hide()
			continue
		}
		app.rows[r].Show()
		for c, btn := range app.cells[r] {
			cell, _ := grid.Cell(first+r, c)
			renderCell(btn, cell)
		}
	}

	app.status.SetText(app.statusText())
}

// Tap routes a click on a displayed cell to the picker.
func (app *PickerApp) Tap(row, col int) {
	first, _ := app.Picker.VisibleRows()
	if _, err := app.Picker.HandleClickAt(first+row, col); err != nil {
		slog.Error(config.ErrSelectionFailed,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		return
	}
	// A deselect reports false but still changes the grid.
	app.Refresh()
}

// Prev shows the previous month unless the lower bound forbids it.
func (app *PickerApp) Prev() {
	if app.Picker.PrevClick() {
		app.Refresh()
	}
}

// Next shows the following month.
func (app *PickerApp) Next() {
	app.Picker.NextClick()
	app.Refresh()
}

// Today shows the month holding today.
func (app *PickerApp) Today() {
	app.Picker.JumpToToday()
	app.Refresh()
}

// Clear drops the whole selection.
func (app *PickerApp) Clear() {
	app.Picker.ClearSelection()
	app.Refresh()
}

// JumpToYear shows the current month of the typed year. Anything that is
// not a four digit year is ignored.
func (app *PickerApp) JumpToYear(text string) {
	year, err := strconv.Atoi(text)
	if err != nil || len(text) != config.YearEntryMaxDigits {
		app.yearEntry.SetText(strconv.Itoa(app.Picker.Month().Year))
		return
	}
	month := app.Picker.Month()
	app.Picker.JumpTo(dates.DayStart(year, month.Month, 1, month.Date.Location()))
	app.Refresh()
}

// TypedKey handles the window shortcuts.
func (app *PickerApp) TypedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyPageUp, fyne.KeyLeft:
		app.Prev()
	case fyne.KeyPageDown, fyne.KeyRight:
		app.Next()
	case fyne.KeyHome:
		app.Today()
	case fyne.KeyEscape:
		app.Clear()
	}
}

func (app *PickerApp) statusText() string {
	return app.Tr.SelectionStatus(app.Picker.SelectedDates(), app.Picker.Mode() == engine.SelectionRange)
}

// renderCell copies the state of c onto its button.
func renderCell(btn *widget.Button, c engine.DayCell) {
	btn.SetText(cellLabel(c))
	btn.Importance = cellImportance(c)
	if c.Selectable {
		btn.Enable()
	} else {
		btn.Disable()
	}
	btn.Refresh()
}

// cellLabel is the day number followed by the today and highlight markers.
func cellLabel(c engine.DayCell) string {
	label := strconv.Itoa(c.Value)
	if c.Today {
		label += config.TodayMarker
	}
	if c.Highlighted {
		label += config.HighlightMarker
	}
	return label
}

func cellImportance(c engine.DayCell) widget.Importance {
	switch {
	case c.RangeState == engine.RangeMiddle:
		return widget.SuccessImportance
	case c.Selected:
		return widget.HighImportance
	case c.Highlighted && c.CurrentMonth:
		return widget.WarningImportance
	case !c.CurrentMonth:
		return widget.LowImportance
	default:
		return widget.MediumImportance
	}
}
