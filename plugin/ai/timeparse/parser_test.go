package timeparse

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fixedParser() *Parser {
	// Wednesday, March 11 2026.
	return NewParserAt(func() time.Time {
		return time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)
	})
}

func TestNewParserIn(t *testing.T) {
	// UTC+14 and UTC-12 disagree on "today" for most of the day, so a
	// mislocated clock shows up immediately.
	ahead := time.FixedZone("ahead", 14*3600)
	behind := time.FixedZone("behind", -12*3600)

	require.Equal(t, time.Now().In(ahead).Format("2006-01-02"), NewParserIn(ahead).NormalizeDate("today"))
	require.Equal(t, time.Now().In(behind).Format("2006-01-02"), NewParserIn(behind).NormalizeDate("today"))
	require.NotEmpty(t, NewParserIn(nil).NormalizeDate("today"))
}

func TestNormalizeDate(t *testing.T) {
	p := fixedParser()

	tests := []struct {
		input string
		want  string
	}{
		{"2026-03-15", "2026-03-15"},
		{"2026-02-31", ""},
		{"today", "2026-03-11"},
		{"Today", "2026-03-11"},
		{"tonight", "2026-03-11"},
		{"tomorrow", "2026-03-12"},
		{"yesterday", "2026-03-10"},
		{"3/15", "2026-03-15"},
		{"3-15", "2026-03-15"},
		{"12/1", "2026-12-01"},
		{"13/1", ""},
		{"2/30", ""},
		{"friday", "2026-03-13"},
		{"wednesday", "2026-03-11"},
		{"next wednesday", "2026-03-18"},
		{"March 15, 2026", "2026-03-15"},
		{"Mar 15", "2026-03-15"},
		{"2026/03/15", "2026-03-15"},
		{"", ""},
		{"whenever", ""},
		{"the meeting", ""},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.input), func(t *testing.T) {
			require.Equal(t, tt.want, p.NormalizeDate(tt.input))
		})
	}
}

func TestNormalizeDateCanonicalIsIdentity(t *testing.T) {
	p := fixedParser()
	for _, s := range []string{"2000-01-01", "2026-12-31", "1999-06-15"} {
		require.Equal(t, s, p.NormalizeDate(s))
	}
}

func TestNormalizeTime(t *testing.T) {
	p := fixedParser()

	tests := []struct {
		input string
		want  string
	}{
		{"15:00", "15:00:00"},
		{"15:00:30", "15:00:30"},
		{"9", "09:00:00"},
		{"9:05", "09:05:00"},
		{"23:59", "23:59:00"},
		{"24:00", ""},
		{"12:60", ""},
		{"3pm", "15:00:00"},
		{"3 pm", "15:00:00"},
		{"3PM", "15:00:00"},
		{"2:30pm", "14:30:00"},
		{"12am", "00:00:00"},
		{"12pm", "12:00:00"},
		{"12:30am", "00:30:00"},
		{"11am", "11:00:00"},
		{"13pm", ""},
		{"noon", "12:00:00"},
		{"midnight", "00:00:00"},
		{"", ""},
		{"later", ""},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.input), func(t *testing.T) {
			require.Equal(t, tt.want, p.NormalizeTime(tt.input))
		})
	}
}

func TestNormalizeTimeMeridiemConversion(t *testing.T) {
	p := fixedParser()

	// Every H(:MM) am/pm input must convert with standard 12-hour rules.
	for hour := 1; hour <= 12; hour++ {
		am := p.NormalizeTime(fmt.Sprintf("%dam", hour))
		pm := p.NormalizeTime(fmt.Sprintf("%dpm", hour))

		wantAM := hour % 12
		wantPM := hour%12 + 12
		require.Equal(t, fmt.Sprintf("%02d:00:00", wantAM), am)
		require.Equal(t, fmt.Sprintf("%02d:00:00", wantPM), pm)
	}
}
