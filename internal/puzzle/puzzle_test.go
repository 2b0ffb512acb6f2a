package puzzle

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validFragments = []string{
	"azz", "th", "ss", "tru", "ref", "fu", "ra", "nih", "cro", "mat",
	"wo", "sh", "re", "rds", "tic", "il", "lly", "zz", "is", "ment",
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"comma separated", strings.Join(validFragments, ","), false},
		{"space separated", strings.Join(validFragments, " "), false},
		{"mixed separators and case", "AZZ, th\nss tru ref fu ra nih cro mat wo sh re rds tic il lly zz is ment", false},
		{"too few fragments", "azz,th,ss", true},
		{"too many fragments", strings.Join(append(append([]string{}, validFragments...), "oops"), ","), true},
		{"non-letter fragment", strings.Join(append(append([]string{}, validFragments[:19]...), "a1"), ","), true},
		{"overlong fragment", strings.Join(append(append([]string{}, validFragments[:19]...), "abcdefghi"), ","), true},
		{"empty input", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Parse(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadBoard)
				return
			}
			require.NoError(t, err)
			assert.Len(t, b, BoardFragments)
			assert.Equal(t, "azz", b[0])
			assert.Equal(t, "ment", b[19])
		})
	}
}

func TestParseLinesNormalizes(t *testing.T) {
	in := append([]string{}, validFragments...)
	in[0] = "  AZZ  "
	b, err := ParseLines(in)
	require.NoError(t, err)
	assert.Equal(t, "azz", b[0])
}

func TestBoardString(t *testing.T) {
	b, err := ParseLines(validFragments)
	require.NoError(t, err)
	round, err := Parse(b.String())
	require.NoError(t, err)
	assert.Equal(t, b, round)
}

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	// 2024-03-01 07:30 +09:00 is 2024-02-29 22:30 UTC.
	assert.Equal(t, "2024-02-29", DateKey(time.Date(2024, 3, 1, 7, 30, 0, 0, loc)))
}

func TestDailyIndex(t *testing.T) {
	date := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	// Deterministic for a date+salt, regardless of time of day.
	a := DailyIndex(date, "salt", 10)
	b := DailyIndex(date.Add(5*time.Hour), "salt", 10)
	assert.Equal(t, a, b)
	assert.GreaterOrEqual(t, a, 0)
	assert.Less(t, a, 10)

	// Different salts shuffle the schedule.
	differs := false
	for day := 0; day < 14; day++ {
		d := date.AddDate(0, 0, day)
		if DailyIndex(d, "salt", 10) != DailyIndex(d, "other", 10) {
			differs = true
			break
		}
	}
	assert.True(t, differs)

	// Degenerate board counts are clamped.
	assert.Equal(t, 0, DailyIndex(date, "salt", 0))
	assert.Equal(t, 0, DailyIndex(date, "salt", 1))
}
