package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"cloudeng.io/errors"
	"gopkg.in/yaml.v3"
)

// Date is a calendar day written as YYYY-MM-DD in the settings file.
type Date time.Time

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	t, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(value.Value), time.Local)
	if err != nil {
		return fmt.Errorf("%s: line %d: %q", ErrInvalidDate, value.Line, value.Value)
	}
	*d = Date(t)
	return nil
}

func (d Date) MarshalYAML() (any, error) {
	if d.IsZero() {
		return "", nil
	}
	return time.Time(d).Format(time.DateOnly), nil
}

// Time returns the date as midnight local time.
func (d Date) Time() time.Time {
	return time.Time(d)
}

// IsZero reports whether the date was left unset.
func (d Date) IsZero() bool {
	return time.Time(d).IsZero()
}

func (d Date) String() string {
	return time.Time(d).Format(time.DateOnly)
}

// Weekday accepts an English weekday name ("monday", "Mon") or a number
// where 0 is Sunday.
type Weekday time.Weekday

func (w *Weekday) UnmarshalYAML(value *yaml.Node) error {
	wd, err := ParseWeekday(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*w = Weekday(wd)
	return nil
}

func (w Weekday) MarshalYAML() (any, error) {
	return strings.ToLower(time.Weekday(w).String()), nil
}

// ParseWeekday parses a weekday name, its three letter abbreviation, or
// its number (0-6, Sunday first).
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n < int(time.Sunday) || n > int(time.Saturday) {
			return 0, fmt.Errorf("%s: %d", ErrInvalidWeekday, n)
		}
		return time.Weekday(n), nil
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		name := strings.ToLower(wd.String())
		if s == name || (len(s) == 3 && strings.HasPrefix(name, s)) {
			return wd, nil
		}
	}
	return 0, fmt.Errorf("%s: %q", ErrInvalidWeekday, s)
}

// ServerSettings configures the local selection feed.
type ServerSettings struct {
	Enabled bool   `yaml:"enabled"`
	Port    string `yaml:"port"`
}

// ContactSettings configures the vCard source whose birthdays are
// highlighted. The password is never stored here; it lives in the OS
// keyring under the web user.
type ContactSettings struct {
	Mode      string `yaml:"mode"`
	LocalPath string `yaml:"local_path,omitempty"`
	WebURL    string `yaml:"web_url,omitempty"`
	WebUser   string `yaml:"web_user,omitempty"`
}

// Settings is the on-disk configuration of the picker.
type Settings struct {
	Language      string `yaml:"language"`
	SelectionMode string `yaml:"selection_mode"`

	MinDate Date `yaml:"min_date,omitempty"`
	MaxDate Date `yaml:"max_date,omitempty"`

	// FirstDayOfWeek is nil when the locale decides.
	FirstDayOfWeek *Weekday `yaml:"first_day_of_week,omitempty"`

	StartDate        Date   `yaml:"start_date,omitempty"`
	SelectedDates    []Date `yaml:"selected_dates,omitempty"`
	HighlightedDates []Date `yaml:"highlighted_dates,omitempty"`
	Today            Date   `yaml:"today,omitempty"`

	DisabledWeekdays []Weekday `yaml:"disabled_weekdays,omitempty"`
	BlockedDates     []Date    `yaml:"blocked_dates,omitempty"`

	Collapsed bool `yaml:"collapsed,omitempty"`

	Server   ServerSettings  `yaml:"server"`
	Contacts ContactSettings `yaml:"contacts"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() Settings {
	return Settings{
		Language:      DefaultLanguage,
		SelectionMode: DefaultSelectionMode,
		Server:        ServerSettings{Port: DefaultPort},
		Contacts:      ContactSettings{Mode: DefaultSourceMode},
	}
}

// DefaultSettingsPath returns settings.yaml inside the user config dir.
func DefaultSettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrConfigDir, err)
	}
	return filepath.Join(dir, AppID, SettingsFileName), nil
}

// LoadSettings reads path over the defaults. A missing file is not an
// error: the defaults are returned with found set to false. Unknown keys
// are rejected.
func LoadSettings(path string) (s Settings, found bool, err error) {
	s = DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, false, nil
		}
		return s, false, fmt.Errorf("%s: %w", ErrSettingsRead, err)
	}
	s, err = ParseSettings(data)
	return s, true, err
}

// SaveSettings writes s to path, creating the parent directory.
func SaveSettings(path string, s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrSettingsWrite, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), DirPermUserRWX); err != nil {
		return fmt.Errorf("%s: %w", ErrSettingsWrite, err)
	}
	if err := os.WriteFile(path, data, FilePermUserRW); err != nil {
		return fmt.Errorf("%s: %w", ErrSettingsWrite, err)
	}
	return nil
}

// ParseSettings decodes YAML over the defaults and validates the result.
func ParseSettings(data []byte) (Settings, error) {
	s := DefaultSettings()
	if len(bytes.TrimSpace(data)) == 0 {
		return s, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return s, fmt.Errorf("%s: %w", ErrSettingsParse, err)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Validate reports every problem found, not only the first.
func (s Settings) Validate() error {
	var errs errors.M

	if !slices.Contains(SupportedLanguages, s.Language) {
		errs.Append(fmt.Errorf("%s: %q", ErrInvalidLanguage, s.Language))
	}
	if !slices.Contains([]string{ModeNameSingle, ModeNameMultiple, ModeNameRange}, NormalizeModeName(s.SelectionMode)) {
		errs.Append(fmt.Errorf("%s: %q", ErrUnknownMode, s.SelectionMode))
	}
	if !s.MinDate.IsZero() && !s.MaxDate.IsZero() && s.MinDate.Time().After(s.MaxDate.Time()) {
		errs.Append(fmt.Errorf("%s: %s > %s", ErrInvalidBounds, s.MinDate, s.MaxDate))
	}
	if s.Server.Enabled {
		if err := ValidatePort(s.Server.Port); err != nil {
			errs.Append(err)
		}
	}
	switch s.Contacts.Mode {
	case SourceModeNone:
	case SourceModeLocal:
		if s.Contacts.LocalPath == "" {
			errs.Append(errors.New(ErrLocalPathEmpty))
		}
	case SourceModeWeb:
		if s.Contacts.WebURL == "" {
			errs.Append(errors.New(ErrWebURLEmpty))
		}
	default:
		errs.Append(fmt.Errorf("%s: %q", ErrSourceUnsupport, s.Contacts.Mode))
	}

	if err := errs.Err(); err != nil {
		return fmt.Errorf("%s: %w", ErrSettingsInvalid, err)
	}
	return nil
}

// NormalizeModeName lower-cases and trims a selection mode name.
func NormalizeModeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ValidatePort checks that s is a TCP port number.
func ValidatePort(s string) error {
	if s == "" {
		return errors.New(ErrPortRequired)
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("%s: %q", ErrPortNumber, s)
	}
	if port < MinPort || port > MaxPort {
		return fmt.Errorf("%s: %d", ErrPortRange, port)
	}
	return nil
}

// Times converts a list of settings dates.
func Times(ds []Date) []time.Time {
	if len(ds) == 0 {
		return nil
	}
	out := make([]time.Time, len(ds))
	for i, d := range ds {
		out[i] = d.Time()
	}
	return out
}

// Weekdays converts a list of settings weekdays.
func Weekdays(ws []Weekday) []time.Weekday {
	if len(ws) == 0 {
		return nil
	}
	out := make([]time.Weekday, len(ws))
	for i, w := range ws {
		out[i] = time.Weekday(w)
	}
	return out
}
