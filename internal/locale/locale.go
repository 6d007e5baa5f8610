// Package locale provides translated labels for the picker: month titles,
// weekday headers, selection status lines and event summaries.
package locale

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-datepicker/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator resolves translation keys for one language.
type Translator struct {
	tag       language.Tag
	languages []string
	localizer *i18n.Localizer
}

// New loads every embedded locale and selects lang, a BCP 47 tag such as
// "fr" or "en-GB". Unknown or malformed tags fall back to the default
// language.
func New(lang string) *Translator {
	bundle, langs := loadBundle()

	tag, err := language.Parse(lang)
	if err != nil {
		slog.Warn(config.ErrInvalidLanguage,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, lang,
			config.LogKeyError, err,
		)
		tag = language.Make(config.DefaultLanguage)
	}

	return &Translator{
		tag:       tag,
		languages: langs,
		localizer: i18n.NewLocalizer(bundle, tag.String(), config.DefaultLanguage),
	}
}

func loadBundle() (*i18n.Bundle, []string) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return bundle, nil
	}

	var detected []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		code := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if code == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		detected = append(detected, code)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, code,
		)
	}
	return bundle, detected
}

// Languages lists the embedded locales.
func (t *Translator) Languages() []string {
	return slices.Clone(t.languages)
}

// Tag returns the selected language tag.
func (t *Translator) Tag() language.Tag {
	return t.tag
}

// Msg translates key, returning the key itself when it is missing.
func (t *Translator) Msg(key string) string {
	return t.localize(&i18n.LocalizeConfig{MessageID: key})
}

// MsgData translates key with template data.
func (t *Translator) MsgData(key string, data map[string]any) string {
	return t.localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
}

func (t *Translator) localize(lc *i18n.LocalizeConfig) string {
	msg, err := t.localizer.Localize(lc)
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, lc.MessageID,
			config.LogKeyError, err,
		)
		return lc.MessageID
	}
	return msg
}

// MonthName returns the full name of m.
func (t *Translator) MonthName(m time.Month) string {
	return t.Msg(config.TKeyMonthPrefix + strconv.Itoa(int(m)))
}

// MonthLabel returns the title of the month containing month, such as
// "March 2024". It has the engine.MonthLabeler signature.
func (t *Translator) MonthLabel(month time.Time) string {
	return t.MsgData(config.TKeyMonthLabel, map[string]any{
		"Month": t.MonthName(month.Month()),
		"Year":  month.Year(),
	})
}

// WeekdayHeaders returns the seven short weekday names in grid column order.
func (t *Translator) WeekdayHeaders(first time.Weekday) []string {
	headers := make([]string, config.DaysPerWeek)
	for i := range headers {
		wd := (int(first) + i) % config.DaysPerWeek
		headers[i] = t.Msg(config.TKeyWeekdayPrefix + strconv.Itoa(wd))
	}
	return headers
}

// FirstDayOfWeek returns the conventional first day of the week for the
// region of the selected language: Sunday in SundayStartRegions, Monday
// everywhere else.
func (t *Translator) FirstDayOfWeek() time.Weekday {
	region, _ := t.tag.Region()
	if slices.Contains(config.SundayStartRegions, region.String()) {
		return time.Sunday
	}
	return time.Monday
}

// FormatDate formats d with the locale's short date layout.
func (t *Translator) FormatDate(d time.Time) string {
	layout := t.Msg(config.TKeyFormatDate)
	if layout == config.TKeyFormatDate {
		layout = config.DateFormatDisplay
	}
	return d.Format(layout)
}

// SelectionStatus describes the current selection. When ranged is set and
// the selection has two endpoints, the range bounds are shown instead of
// the count.
func (t *Translator) SelectionStatus(selected []time.Time, ranged bool) string {
	switch {
	case len(selected) == 0:
		return t.Msg(config.TKeyStatusNone)
	case ranged && len(selected) == 2:
		return t.MsgData(config.TKeyStatusRange, map[string]any{
			"From": t.FormatDate(selected[0]),
			"To":   t.FormatDate(selected[1]),
		})
	}

	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    config.TKeyStatusSelected,
		PluralCount:  len(selected),
		TemplateData: map[string]any{"Count": len(selected)},
	})
	if err != nil {
		return fmt.Sprintf(config.FallbackStatus, len(selected))
	}
	return msg
}

// EventSummary returns the calendar event title for the selected day d.
func (t *Translator) EventSummary(d time.Time) string {
	return t.MsgData(config.TKeyEvtSummary, map[string]any{"Date": t.FormatDate(d)})
}

// EventSummaryRange returns the calendar event title for the range [lo, hi].
func (t *Translator) EventSummaryRange(lo, hi time.Time) string {
	return t.MsgData(config.TKeyEvtSummaryRange, map[string]any{
		"From": t.FormatDate(lo),
		"To":   t.FormatDate(hi),
	})
}
