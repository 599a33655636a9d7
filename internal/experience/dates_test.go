package experience

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  monthStamp
		ok    bool
	}{
		{"year only defaults to mid-year", "2019", stamp(2019, 6), true},
		{"iso month", "2019-05", stamp(2019, 5), true},
		{"iso day", "2019-05-21", stamp(2019, 5), true},
		{"month slash year", "05/2019", stamp(2019, 5), true},
		{"english month", "Jan 2019", stamp(2019, 1), true},
		{"full month with comma", "September, 2020", stamp(2020, 9), true},
		{"malay month", "Ogos 2020", stamp(2020, 8), true},
		{"present", "Present", stamp(2025, 6), true},
		{"malay present", "kini", stamp(2025, 6), true},
		{"invalid month", "13/2019", 0, false},
		{"unknown word", "sometime", 0, false},
		{"empty", "  ", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseDate(tt.input, fixedNow)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSpanMonths(t *testing.T) {
	months, ok := spanMonths("2019", "2021", fixedNow)
	require.True(t, ok)
	assert.Equal(t, 24, months)

	months, ok = spanMonths("Jan 2020", "", fixedNow)
	require.True(t, ok)
	assert.Equal(t, 65, months)

	_, ok = spanMonths("2022", "2019", fixedNow)
	assert.False(t, ok, "reversed range")

	months, ok = spanMonths("1950", "2025", fixedNow)
	require.True(t, ok)
	assert.Equal(t, maxSpanMonths, months)
}

func TestSplitRange(t *testing.T) {
	start, end, ok := splitRange("Jan 2019 – Present")
	require.True(t, ok)
	assert.Equal(t, "jan 2019", start)
	assert.Equal(t, "present", end)

	start, end, ok = splitRange("2019-2022")
	require.True(t, ok)
	assert.Equal(t, "2019", start)
	assert.Equal(t, "2022", end)

	start, end, ok = splitRange("2018-03 to 2020-11")
	require.True(t, ok)
	assert.Equal(t, "2018-03", start)
	assert.Equal(t, "2020-11", end)

	start, end, ok = splitRange("2019-05–2021-03")
	require.True(t, ok)
	assert.Equal(t, "2019-05", start)
	assert.Equal(t, "2021-03", end)

	start, end, ok = splitRange("05/2019-03/2021")
	require.True(t, ok)
	assert.Equal(t, "05/2019", start)
	assert.Equal(t, "03/2021", end)

	start, end, ok = splitRange("Mar 2020-Present")
	require.True(t, ok)
	assert.Equal(t, "mar 2020", start)
	assert.Equal(t, "present", end)

	_, _, ok = splitRange("18 months")
	assert.False(t, ok)
}

func TestDurationMonths(t *testing.T) {
	tests := []struct {
		input string
		want  int
		ok    bool
	}{
		{"2 years 3 months", 27, true},
		{"18 months", 18, true},
		{"1.5 yrs", 18, true},
		{"3 tahun", 36, true},
		{"", 0, false},
		{"a while", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := durationMonths(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
