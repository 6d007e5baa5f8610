package ui

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"fyne.io/fyne/v2"
	"github.com/tartampluch/go-datepicker/internal/config"
	"github.com/tartampluch/go-datepicker/internal/contacts"
)

// LoadHighlights reads contact birthdays in the background and marks them
// on the calendar. Nothing happens when no contact source is configured.
func (app *PickerApp) LoadHighlights() {
	src := app.Settings.Contacts
	if src.Mode == config.SourceModeNone || app.Loader == nil {
		return
	}
	ref := app.Picker.TodayDate()

	go func() {
		ctx, cancel := context.WithTimeout(app.Ctx, config.ContactsLoadTimeout)
		defer cancel()

		occ, err := app.fetchHighlights(ctx, src, ref)
		if err != nil {
			slog.Error(config.ErrContactsFailed,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyError, err)
			return
		}
		fyne.Do(func() { app.applyHighlights(occ) })
	}()
}

// fetchHighlights returns the birthday occurrences around ref.
func (app *PickerApp) fetchHighlights(ctx context.Context, src config.ContactSettings, ref time.Time) ([]time.Time, error) {
	bdays, err := app.Loader.Birthdays(ctx, src)
	if err != nil {
		return nil, err
	}
	return contacts.Occurrences(bdays, ref, config.HighlightYearsBack, config.HighlightYearsAhead), nil
}

// applyHighlights merges extra with the configured highlights.
func (app *PickerApp) applyHighlights(extra []time.Time) {
	all := append(slices.Clone(app.baseHighlights), extra...)
	app.Picker.SetHighlighted(all)
	if app.Window != nil {
		app.Refresh()
	}
}
