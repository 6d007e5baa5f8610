// Package contacts reads birthdays from a vCard source so the picker can
// highlight them.
package contacts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-datepicker/internal/config"
	"github.com/tartampluch/go-datepicker/internal/dates"
)

// Birthday is one contact's date of birth.
type Birthday struct {
	Name string
	// Date carries DefaultLeapYear when the vCard omits the year.
	Date      time.Time
	YearKnown bool
}

// PasswordFunc looks up the password of a remote source user.
type PasswordFunc func(user string) (string, error)

// Loader reads birthdays from the configured source.
type Loader struct {
	Fetcher  VCardFetcher
	Password PasswordFunc
}

// NewLoader returns a loader using HTTP and the OS keyring.
func NewLoader() *Loader {
	return &Loader{
		Fetcher:  NewHTTPFetcher(),
		Password: PasswordFromKeyring,
	}
}

// Birthdays reads every contact with a parseable BDAY. Unparseable dates
// are skipped; decoding stops at the first malformed card.
func (l *Loader) Birthdays(ctx context.Context, src config.ContactSettings) ([]Birthday, error) {
	start := time.Now()

	reader, err := l.open(ctx, src)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w", config.ErrContactsFailed, err)
	}
	defer func() { _ = reader.Close() }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	decoder := vcard.NewDecoder(reader)
	var (
		out   []Birthday
		total int
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompContacts,
				config.LogKeyError, err)
			// Stop at the first broken card, keeping the earlier ones.
			break
		}
		total++

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}
		date, yearKnown, err := parseDate(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompContacts,
				config.LogKeyValue, bday.Value)
			continue
		}

		out = append(out, Birthday{Name: cardName(card), Date: date, YearKnown: yearKnown})
	}

	slog.Info(config.MsgContactsLoaded,
		config.LogKeyComponent, config.CompContacts,
		config.LogKeyMode, src.Mode,
		config.LogKeyTotal, total,
		config.LogKeyFound, len(out),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return out, nil
}

func (l *Loader) open(ctx context.Context, src config.ContactSettings) (io.ReadCloser, error) {
	switch src.Mode {
	case config.SourceModeLocal:
		if src.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(src.LocalPath)
	case config.SourceModeWeb:
		if src.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if l.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		var pass string
		if l.Password != nil && src.WebUser != "" {
			p, err := l.Password(src.WebUser)
			if err != nil {
				slog.Debug(config.MsgPassFail,
					config.LogKeyComponent, config.CompContacts,
					config.LogKeyUser, src.WebUser,
					config.LogKeyError, err)
			}
			pass = p
		}
		return l.Fetcher.Fetch(ctx, src.WebURL, src.WebUser, pass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrSourceUnsupport, src.Mode)
	}
}

// cardName prefers the formatted name, then the structured one.
func cardName(card vcard.Card) string {
	if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
		return fn.Value
	}
	if n := card.Get(config.VCardN); n != nil && n.Value != "" {
		return n.Value
	}
	return config.FallbackName
}

// Occurrences projects birthdays onto the years around ref, from
// yearsBack before to yearsAhead after. Years before a known birth year
// are skipped. Feb 29 falls on Mar 1 in common years.
func Occurrences(bdays []Birthday, ref time.Time, yearsBack, yearsAhead int) []time.Time {
	loc := ref.Location()
	seen := dates.Set{}
	var out []time.Time
	for y := ref.Year() - yearsBack; y <= ref.Year()+yearsAhead; y++ {
		for _, b := range bdays {
			if b.YearKnown && y < b.Date.Year() {
				continue
			}
			d := time.Date(y, b.Date.Month(), b.Date.Day(), 0, 0, 0, 0, loc)
			if seen.Has(d) {
				continue
			}
			seen[dates.Key(d)] = struct{}{}
			out = append(out, d)
		}
	}
	return out
}

// parseDate accepts the BDAY layouts found in the wild, including the
// year-less --MM-DD forms.
func parseDate(value string) (time.Time, bool, error) {
	for _, f := range []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	} {
		if t, err := time.Parse(f, value); err == nil {
			return t, true, nil
		}
	}

	for _, f := range []string{config.DateFormatNoYearD, config.DateFormatNoYearB} {
		if t, err := time.Parse(f, value); err == nil {
			return time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), false, nil
		}
	}

	return time.Time{}, false, errors.New(config.ErrDateParse)
}
