package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-datepicker/internal/config"
)

func TestParseSettings_Full(t *testing.T) {
	data := []byte(`
language: fr
selection_mode: Range
min_date: 2024-01-01
max_date: 2024-12-31
first_day_of_week: mon
start_date: 2024-03-01
selected_dates: [2024-03-10, 2024-03-20]
highlighted_dates: [2024-03-08]
disabled_weekdays: [saturday, 0]
blocked_dates: [2024-03-15]
collapsed: true
server:
  enabled: true
  port: "18090"
contacts:
  mode: local
  local_path: /tmp/contacts.vcf
`)
	s, err := config.ParseSettings(data)
	require.NoError(t, err)

	assert.Equal(t, "fr", s.Language)
	assert.Equal(t, config.ModeNameRange, config.NormalizeModeName(s.SelectionMode))
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local), s.MinDate.Time())
	require.NotNil(t, s.FirstDayOfWeek)
	assert.Equal(t, time.Monday, time.Weekday(*s.FirstDayOfWeek))
	assert.Len(t, config.Times(s.SelectedDates), 2)
	assert.Equal(t, []time.Weekday{time.Saturday, time.Sunday}, config.Weekdays(s.DisabledWeekdays))
	assert.True(t, s.Collapsed)
	assert.Equal(t, "18090", s.Server.Port)
	assert.Equal(t, config.SourceModeLocal, s.Contacts.Mode)
}

func TestParseSettings_EmptyUsesDefaults(t *testing.T) {
	s, err := config.ParseSettings([]byte("  \n"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSettings(), s)
	assert.Nil(t, s.FirstDayOfWeek, "The locale picks the first day by default")
}

func TestParseSettings_RejectsUnknownKeys(t *testing.T) {
	_, err := config.ParseSettings([]byte("langauge: en\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrSettingsParse)
}

func TestParseSettings_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"Date", "min_date: 2024-13-01\n", config.ErrInvalidDate},
		{"Weekday", "first_day_of_week: funday\n", config.ErrInvalidWeekday},
		{"WeekdayNumber", "disabled_weekdays: [7]\n", config.ErrInvalidWeekday},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.ParseSettings([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

// TestValidate_ReportsAllProblems checks that validation does not stop at
// the first fault.
func TestValidate_ReportsAllProblems(t *testing.T) {
	s := config.DefaultSettings()
	s.Language = "de"
	s.SelectionMode = "week"
	s.MinDate = config.Date(time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local))
	s.MaxDate = config.Date(time.Date(2024, 4, 1, 0, 0, 0, 0, time.Local))
	s.Server = config.ServerSettings{Enabled: true, Port: "99999"}
	s.Contacts = config.ContactSettings{Mode: config.SourceModeWeb}

	err := s.Validate()
	require.Error(t, err)

	msg := err.Error()
	for _, want := range []string{
		config.ErrSettingsInvalid,
		config.ErrInvalidLanguage,
		config.ErrUnknownMode,
		config.ErrInvalidBounds,
		config.ErrPortRange,
		config.ErrWebURLEmpty,
	} {
		assert.Contains(t, msg, want)
	}
}

func TestValidate_DisabledServerIgnoresPort(t *testing.T) {
	s := config.DefaultSettings()
	s.Server.Port = "not-a-port"
	assert.NoError(t, s.Validate())
}

func TestValidatePort(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", config.ErrPortRequired},
		{"abc", config.ErrPortNumber},
		{"0", config.ErrPortRange},
		{"65536", config.ErrPortRange},
	}
	for _, tt := range tests {
		err := config.ValidatePort(tt.in)
		require.Error(t, err, tt.in)
		assert.Contains(t, err.Error(), tt.want)
	}
	assert.NoError(t, config.ValidatePort("8080"))
}

func TestParseWeekday(t *testing.T) {
	for in, want := range map[string]time.Weekday{
		"Sunday": time.Sunday,
		"mon":    time.Monday,
		" 3 ":    time.Wednesday,
		"SAT":    time.Saturday,
	} {
		got, err := config.ParseWeekday(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := config.ParseWeekday("mo")
	assert.Error(t, err, "Two letters are ambiguous")
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()

	s, found, err := config.LoadSettings(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, config.DefaultSettings(), s)

	path := filepath.Join(dir, config.SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("selection_mode: multiple\n"), config.FilePermUserRW))

	s, found, err = config.LoadSettings(path)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "multiple", s.SelectionMode)
	assert.Equal(t, config.DefaultLanguage, s.Language, "Unset keys keep their defaults")
}

func TestSaveSettings_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", config.SettingsFileName)
	monday := config.Weekday(time.Monday)

	s := config.DefaultSettings()
	s.SelectionMode = config.ModeNameRange
	s.FirstDayOfWeek = &monday
	s.MinDate = config.Date(time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local))
	s.DisabledWeekdays = []config.Weekday{config.Weekday(time.Sunday)}
	s.Contacts = config.ContactSettings{Mode: config.SourceModeWeb, WebURL: "https://dav.example.com", WebUser: "bob"}

	require.NoError(t, config.SaveSettings(path, s))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, config.FilePermUserRW, info.Mode().Perm())

	got, found, err := config.LoadSettings(path)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, s, got)
}

func TestSaveSettings_RejectsInvalid(t *testing.T) {
	s := config.DefaultSettings()
	s.Language = "xx"
	path := filepath.Join(t.TempDir(), config.SettingsFileName)

	require.Error(t, config.SaveSettings(path, s))
	assert.NoFileExists(t, path)
}
