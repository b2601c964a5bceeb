// Package timeparse normalizes natural-language date and time expressions
// into canonical strings: dates as YYYY-MM-DD and times as HH:MM:SS.
//
// Both normalizers are total functions. Unparseable input yields the empty
// string, which callers treat as "value not provided" rather than an error;
// the assistant asks the user instead of guessing.
package timeparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Parser normalizes date/time expressions relative to a clock.
type Parser struct {
	now func() time.Time
}

// NewParser creates a parser that resolves relative expressions ("today",
// "tomorrow", "3/15") against the real clock.
func NewParser() *Parser {
	return &Parser{now: time.Now}
}

// NewParserAt creates a parser with a fixed clock, for tests.
func NewParserAt(now func() time.Time) *Parser {
	return &Parser{now: now}
}

// NewParserIn creates a parser whose clock reads in the given location, so
// "today" and "tomorrow" resolve to the household's timezone rather than
// the server's. A nil location falls back to local time.
func NewParserIn(loc *time.Location) *Parser {
	if loc == nil {
		return NewParser()
	}
	return &Parser{now: func() time.Time { return time.Now().In(loc) }}
}

var (
	canonicalDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	shortDatePattern     = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})$`)
	clockPattern         = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?(?::(\d{2}))?$`)
	meridiemPattern      = regexp.MustCompile(`(?i)^(\d{1,2})(?::(\d{2}))?\s*(am|pm)$`)
)

// dateLayouts are generic formats tried after the fast paths.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"January 2",
	"Jan 2",
	"2 January 2006",
	"02 Jan 2006",
}

// NormalizeDate reduces a date expression to YYYY-MM-DD, or "" when the
// input is not recognizably a date. Already-canonical input passes through
// unchanged.
func (p *Parser) NormalizeDate(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return ""
	}

	if canonicalDatePattern.MatchString(s) {
		// Reject impossible dates like 2026-02-31.
		if _, err := time.Parse("2006-01-02", s); err != nil {
			return ""
		}
		return s
	}

	now := p.now()
	switch s {
	case "today", "tonight":
		return now.Format("2006-01-02")
	case "tomorrow":
		return now.AddDate(0, 0, 1).Format("2006-01-02")
	case "yesterday":
		return now.AddDate(0, 0, -1).Format("2006-01-02")
	}

	// M/D or M-D in the current year.
	if m := shortDatePattern.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			candidate := fmt.Sprintf("%04d-%02d-%02d", now.Year(), month, day)
			if _, err := time.Parse("2006-01-02", candidate); err == nil {
				return candidate
			}
		}
		return ""
	}

	// Weekday names resolve to the next occurrence (today counts).
	if wd, ok := weekdays[strings.TrimPrefix(s, "next ")]; ok {
		days := (int(wd) - int(now.Weekday()) + 7) % 7
		if strings.HasPrefix(s, "next ") && days == 0 {
			days = 7
		}
		return now.AddDate(0, 0, days).Format("2006-01-02")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, input); err == nil {
			// Layouts without a year parse to year 0.
			if t.Year() == 0 {
				t = time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			}
			return t.Format("2006-01-02")
		}
	}

	return ""
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// NormalizeTime reduces a time expression to HH:MM:SS, or "" when the input
// is not recognizably a time. Handles 24-hour clock ("14:30", bare "9") and
// 12-hour clock with meridiem ("3pm", "2:30 pm"); 12am maps to 00, 12pm
// stays 12.
func (p *Parser) NormalizeTime(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return ""
	}

	switch s {
	case "noon", "midday":
		return "12:00:00"
	case "midnight":
		return "00:00:00"
	}

	if m := meridiemPattern.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if hour < 1 || hour > 12 || minute > 59 {
			return ""
		}
		if m[3] == "am" {
			if hour == 12 {
				hour = 0
			}
		} else if hour != 12 {
			hour += 12
		}
		return fmt.Sprintf("%02d:%02d:00", hour, minute)
	}

	if m := clockPattern.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, second := 0, 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if m[3] != "" {
			second, _ = strconv.Atoi(m[3])
		}
		if hour > 23 || minute > 59 || second > 59 {
			return ""
		}
		return fmt.Sprintf("%02d:%02d:%02d", hour, minute, second)
	}

	return ""
}

var defaultParser = NewParser()

// NormalizeDate normalizes a date expression using the real clock.
func NormalizeDate(input string) string {
	return defaultParser.NormalizeDate(input)
}

// NormalizeTime normalizes a time expression.
func NormalizeTime(input string) string {
	return defaultParser.NormalizeTime(input)
}
