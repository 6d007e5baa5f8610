package contacts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOccurrences verifies the projection of birthdays onto the highlight
// window, including leap years and people born inside the window.
func TestOccurrences(t *testing.T) {
	ref := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		bday     Birthday
		expected []time.Time
	}{
		{
			name: "Known year",
			bday: Birthday{Date: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), YearKnown: true},
			expected: []time.Time{
				time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "Leapling",
			bday: Birthday{Date: time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC), YearKnown: true},
			expected: []time.Time{
				time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
				time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "Born this year",
			bday: Birthday{Date: time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC), YearKnown: true},
			expected: []time.Time{
				time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
				time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "Unknown year",
			bday: Birthday{Date: time.Date(2000, 7, 4, 0, 0, 0, 0, time.UTC)},
			expected: []time.Time{
				time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC),
				time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC),
				time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Occurrences([]Birthday{tt.bday}, ref, 1, 1))
		})
	}
}

func TestOccurrences_Deduplicates(t *testing.T) {
	ref := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	twins := []Birthday{
		{Name: "A", Date: time.Date(1990, 5, 5, 0, 0, 0, 0, time.UTC), YearKnown: true},
		{Name: "B", Date: time.Date(1990, 5, 5, 0, 0, 0, 0, time.UTC), YearKnown: true},
	}

	assert.Len(t, Occurrences(twins, ref, 0, 0), 1)
}

func TestParseDate(t *testing.T) {
	d, known, err := parseDate("--0229")
	require.NoError(t, err)
	assert.False(t, known)
	assert.Equal(t, time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC), d, "Leap year fallback keeps Feb 29")

	_, _, err = parseDate("29/02/2000")
	assert.Error(t, err)
}
