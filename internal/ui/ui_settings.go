package ui

import (
	"errors"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-datepicker/internal/config"
	"github.com/tartampluch/go-datepicker/internal/contacts"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect     *widget.Select
	modeSelect     *widget.Select
	firstDaySelect *widget.Select
	serverCheck    *widget.Check
	portEntry      *NumericalEntry
	sourceSelect   *widget.Select
	urlEntry       *widget.Entry
	userEntry      *widget.Entry
	passEntry      *widget.Entry
	pathEntry      *widget.Entry
}

// option pairs a settings value with its translated label.
type option struct {
	value string
	label string
}

func labels(opts []option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.label
	}
	return out
}

func labelOf(opts []option, value string) string {
	for _, o := range opts {
		if o.value == value {
			return o.label
		}
	}
	return opts[0].label
}

func valueOf(opts []option, label string) string {
	for _, o := range opts {
		if o.label == label {
			return o.value
		}
	}
	return opts[0].value
}

func (app *PickerApp) modeOptions() []option {
	names := []string{config.ModeNameSingle, config.ModeNameMultiple, config.ModeNameRange}
	opts := make([]option, len(names))
	for i, n := range names {
		opts[i] = option{value: n, label: app.Tr.Msg(config.TKeyModePrefix + n)}
	}
	return opts
}

// firstDayOptions starts with "automatic", stored as an empty value.
func (app *PickerApp) firstDayOptions() []option {
	opts := []option{{value: "", label: app.Tr.Msg(config.TKeyLblAuto)}}
	for wd := range config.DaysPerWeek {
		opts = append(opts, option{
			value: strconv.Itoa(wd),
			label: app.Tr.Msg(config.TKeyWeekdayPrefix + strconv.Itoa(wd)),
		})
	}
	return opts
}

func (app *PickerApp) sourceOptions() []option {
	return []option{
		{value: config.SourceModeNone, label: app.Tr.Msg(config.TKeySourceNone)},
		{value: config.SourceModeWeb, label: app.Tr.Msg(config.TKeySourceWeb)},
		{value: config.SourceModeLocal, label: app.Tr.Msg(config.TKeySourceLocal)},
	}
}

// ShowSettingsWindow displays the settings form. Only one instance is open
// at a time.
func (app *PickerApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		slog.Debug(config.MsgWindowFocus, config.LogKeyComponent, config.CompUI)
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgOpenSettings, config.LogKeyComponent, config.CompUI)
	w := app.App.NewWindow(app.Tr.Msg(config.TKeyWinSettings))
	app.settingsWindow = w

	sw := app.newSettingsWidgets()

	var refreshLayout func()
	onLayoutChange := func() {
		if refreshLayout != nil {
			refreshLayout()
		}
	}

	generalForm := widget.NewForm(
		widget.NewFormItem(app.Tr.Msg(config.TKeyLblLanguage), sw.langSelect),
		widget.NewFormItem(app.Tr.Msg(config.TKeyLblMode), sw.modeSelect),
		widget.NewFormItem(app.Tr.Msg(config.TKeyLblFirstDay), sw.firstDaySelect),
	)
	serverRow := container.NewBorder(nil, nil, sw.serverCheck, nil, sw.portEntry)
	sourceCard := app.buildSourceCard(w, sw, onLayoutChange)

	btnSave := widget.NewButtonWithIcon(app.Tr.Msg(config.TKeyBtnSave), theme.DocumentSaveIcon(), func() {
		app.saveSettings(sw, w)
	})
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.Tr.Msg(config.TKeyBtnCancel), theme.CancelIcon(), w.Close)

	footerLabel := widget.NewLabel(app.Tr.MsgData(config.TKeyLblFooter, map[string]any{"Version": config.Version}))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	paddedContent := container.NewPadded(container.NewVBox(
		generalForm,
		serverRow,
		sourceCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	refreshLayout = func() {
		paddedContent.Refresh()
		w.Resize(fyne.NewSize(config.SettingsWindowWidth, paddedContent.MinSize().Height))
	}

	w.SetContent(paddedContent)
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })

	refreshLayout()
	w.Show()
}

// newSettingsWidgets builds the form controls, filled from app.Settings.
func (app *PickerApp) newSettingsWidgets() *settingsWidgets {
	s := app.Settings
	sw := &settingsWidgets{}

	sw.langSelect = widget.NewSelect(app.Tr.Languages(), nil)
	sw.langSelect.SetSelected(s.Language)

	modes := app.modeOptions()
	sw.modeSelect = widget.NewSelect(labels(modes), nil)
	sw.modeSelect.SetSelected(labelOf(modes, config.NormalizeModeName(s.SelectionMode)))

	days := app.firstDayOptions()
	sw.firstDaySelect = widget.NewSelect(labels(days), nil)
	firstDay := ""
	if s.FirstDayOfWeek != nil {
		firstDay = strconv.Itoa(int(*s.FirstDayOfWeek))
	}
	sw.firstDaySelect.SetSelected(labelOf(days, firstDay))

	sw.portEntry = NewNumericalEntry()
	sw.portEntry.SetText(s.Server.Port)
	sw.portEntry.Validator = config.ValidatePort
	sw.serverCheck = widget.NewCheck(app.Tr.Msg(config.TKeyLblServer), func(on bool) {
		if on {
			sw.portEntry.Enable()
		} else {
			sw.portEntry.Disable()
		}
	})
	sw.serverCheck.SetChecked(s.Server.Enabled)
	if !s.Server.Enabled {
		sw.portEntry.Disable()
	}

	sources := app.sourceOptions()
	sw.sourceSelect = widget.NewSelect(labels(sources), nil)
	sw.sourceSelect.SetSelected(labelOf(sources, s.Contacts.Mode))

	sw.urlEntry = widget.NewEntry()
	sw.urlEntry.SetText(s.Contacts.WebURL)
	sw.urlEntry.PlaceHolder = config.PlaceholderURL

	sw.userEntry = widget.NewEntry()
	sw.userEntry.SetText(s.Contacts.WebUser)

	sw.passEntry = widget.NewPasswordEntry()
	if user := s.Contacts.WebUser; user != "" {
		if pwd, err := contacts.PasswordFromKeyring(user); err == nil {
			sw.passEntry.SetText(pwd)
		}
	}

	sw.pathEntry = widget.NewEntry()
	sw.pathEntry.SetText(s.Contacts.LocalPath)

	return sw
}

// buildSourceCard shows the web or local fields depending on the source.
func (app *PickerApp) buildSourceCard(w fyne.Window, sw *settingsWidgets, onLayoutChange func()) *widget.Card {
	browseBtn := widget.NewButton(app.Tr.Msg(config.TKeyBtnBrowse), func() {
		d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err == nil && r != nil {
				sw.pathEntry.SetText(r.URI().Path())
				_ = r.Close()
			}
		}, w)
		d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
		d.Show()
	})

	webForm := widget.NewForm(
		widget.NewFormItem(app.Tr.Msg(config.TKeyLblURL), sw.urlEntry),
		widget.NewFormItem(app.Tr.Msg(config.TKeyLblUser), sw.userEntry),
		widget.NewFormItem(app.Tr.Msg(config.TKeyLblPass), sw.passEntry),
	)
	localForm := widget.NewForm(widget.NewFormItem(app.Tr.Msg(config.TKeyLblPath),
		container.NewBorder(nil, nil, nil, browseBtn, sw.pathEntry)))

	sources := app.sourceOptions()
	updateVis := func(label string) {
		webForm.Hide()
		localForm.Hide()
		switch valueOf(sources, label) {
		case config.SourceModeWeb:
			webForm.Show()
		case config.SourceModeLocal:
			localForm.Show()
		}
		if onLayoutChange != nil {
			onLayoutChange()
		}
	}
	sw.sourceSelect.OnChanged = updateVis
	updateVis(sw.sourceSelect.Selected)

	return widget.NewCard(app.Tr.Msg(config.TKeyLblSource), "", container.NewVBox(sw.sourceSelect, webForm, localForm))
}

// collectSettings reads the form back into a copy of app.Settings. Fields
// the form does not show are kept.
func (app *PickerApp) collectSettings(sw *settingsWidgets) config.Settings {
	s := app.Settings
	s.Language = sw.langSelect.Selected
	s.SelectionMode = valueOf(app.modeOptions(), sw.modeSelect.Selected)

	s.FirstDayOfWeek = nil
	if v := valueOf(app.firstDayOptions(), sw.firstDaySelect.Selected); v != "" {
		wd, _ := config.ParseWeekday(v)
		day := config.Weekday(wd)
		s.FirstDayOfWeek = &day
	}

	s.Server = config.ServerSettings{Enabled: sw.serverCheck.Checked, Port: sw.portEntry.Text}

	s.Contacts = config.ContactSettings{Mode: valueOf(app.sourceOptions(), sw.sourceSelect.Selected)}
	switch s.Contacts.Mode {
	case config.SourceModeWeb:
		s.Contacts.WebURL = sw.urlEntry.Text
		s.Contacts.WebUser = sw.userEntry.Text
	case config.SourceModeLocal:
		s.Contacts.LocalPath = sw.pathEntry.Text
	}
	return s
}

// saveSettings validates and writes the form, stores the password in the
// keyring, then reloads the birthdays when the source changed. Language,
// mode and first day apply on the next start.
func (app *PickerApp) saveSettings(sw *settingsWidgets, w fyne.Window) {
	s := app.collectSettings(sw)
	if err := s.Validate(); err != nil {
		dialog.ShowError(err, w)
		return
	}
	if err := config.SaveSettings(app.SettingsPath, s); err != nil {
		slog.Error(config.ErrSettingsWrite,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		dialog.ShowError(err, w)
		return
	}

	if s.Contacts.Mode == config.SourceModeWeb && s.Contacts.WebUser != "" && sw.passEntry.Text != "" {
		if err := contacts.SavePassword(s.Contacts.WebUser, sw.passEntry.Text); err != nil {
			slog.Error(config.ErrKeyring,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyError, err)
			dialog.ShowError(errors.New(config.ErrKeyring), w)
			return
		}
	}

	slog.Info(config.MsgSettingsSaved,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyFile, app.SettingsPath)

	sourceChanged := s.Contacts != app.Settings.Contacts
	app.Settings = s
	switch {
	case sourceChanged && s.Contacts.Mode == config.SourceModeNone:
		app.applyHighlights(nil)
	case sourceChanged:
		app.LoadHighlights()
	}

	w.Close()
	if app.Window != nil {
		dialog.ShowInformation(app.Tr.Msg(config.TKeyWinSettings), app.Tr.Msg(config.TKeyMsgSaved), app.Window)
	}
}
