// Package schedule detects calendar conflicts and suggests free time slots.
package schedule

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/hearthside/hearth/store"
)

const (
	// DefaultEventDuration is the window an event without an end time
	// occupies for overlap purposes.
	DefaultEventDuration = 30 * time.Minute

	// Waking-day bounds for free-slot search.
	dayStartMinutes = 8 * 60  // 08:00
	dayEndMinutes   = 22 * 60 // 22:00

	// Suggestions stop at 21:00 so a suggested slot still fits the day.
	lastSuggestionMinutes = 21 * 60

	maxSuggestions = 3
)

// EventLister is the slice of the store the detector reads from.
type EventLister interface {
	ListEvents(ctx context.Context, find *store.FindEvent) ([]*store.Event, error)
}

// Detector checks proposed calendar ranges against stored events.
type Detector struct {
	store EventLister
}

// NewDetector creates a conflict detector.
func NewDetector(s EventLister) *Detector {
	return &Detector{store: s}
}

// TimeRange is a clock range on a single day, half-open [Start, End).
type TimeRange struct {
	Start string `json:"start"` // HH:MM:SS
	End   string `json:"end"`   // HH:MM:SS
}

// Result reports whether a proposed range collides with existing events.
type Result struct {
	HasConflict bool           `json:"hasConflict"`
	Conflicting []*store.Event `json:"conflicting,omitempty"`
	// Suggestions are alternative start times ("15:00") on the same day.
	Suggestions []string `json:"suggestions,omitempty"`
}

// Check determines whether [startTime, endTime) on date overlaps any of the
// user's events. An empty endTime occupies the default window from
// startTime. An empty startTime means all-day: all-day events never
// conflict with timed ones, so the result is always clear. excludeEventID
// skips the event being rescheduled so it cannot conflict with itself.
func (d *Detector) Check(ctx context.Context, userID int32, date, startTime, endTime string, excludeEventID int32) (*Result, error) {
	if startTime == "" {
		return &Result{}, nil
	}

	start, ok := clockToMinutes(startTime)
	if !ok {
		return nil, errors.Errorf("invalid start time: %s", startTime)
	}
	end := start + int(DefaultEventDuration.Minutes())
	if endTime != "" {
		e, ok := clockToMinutes(endTime)
		if !ok {
			return nil, errors.Errorf("invalid end time: %s", endTime)
		}
		end = e
	}
	if end <= start {
		return nil, errors.Errorf("end time %s is not after start time %s", endTime, startTime)
	}

	events, err := d.eventsOn(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	var conflicting []*store.Event
	for _, event := range events {
		if event.ID == excludeEventID {
			continue
		}
		eventStart, eventEnd, timed := eventWindow(event)
		if !timed {
			continue
		}
		// Half-open overlap: touching boundaries do not conflict.
		if start < eventEnd && eventStart < end {
			conflicting = append(conflicting, event)
		}
	}

	if len(conflicting) == 0 {
		return &Result{}, nil
	}

	return &Result{
		HasConflict: true,
		Conflicting: conflicting,
		Suggestions: d.suggestTimes(events, conflicting, end-start, excludeEventID),
	}, nil
}

// FreeSlots returns the free ranges of at least duration on date, within
// the waking day.
func (d *Detector) FreeSlots(ctx context.Context, userID int32, date string, duration time.Duration) ([]TimeRange, error) {
	events, err := d.eventsOn(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	width := int(duration.Minutes())
	if width <= 0 {
		width = int(DefaultEventDuration.Minutes())
	}

	busy := busyRanges(events, 0)
	free := []TimeRange{}
	current := dayStartMinutes
	for _, b := range busy {
		if b.end <= current {
			continue
		}
		if b.start-current >= width {
			free = append(free, TimeRange{Start: minutesToClock(current), End: minutesToClock(b.start)})
		}
		if b.end > current {
			current = b.end
		}
	}
	if dayEndMinutes-current >= width {
		free = append(free, TimeRange{Start: minutesToClock(current), End: minutesToClock(dayEndMinutes)})
	}

	return free, nil
}

func (d *Detector) eventsOn(ctx context.Context, userID int32, date string) ([]*store.Event, error) {
	normal := store.Normal
	events, err := d.store.ListEvents(ctx, &store.FindEvent{
		CreatorID: &userID,
		RowStatus: &normal,
		Date:      &date,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list events")
	}
	return events, nil
}

// suggestTimes proposes start times after the last conflicting event ends,
// stepping by the requested width, skipping anything else already booked.
func (d *Detector) suggestTimes(events, conflicting []*store.Event, width int, excludeEventID int32) []string {
	lastEnd := 0
	for _, event := range conflicting {
		_, end, timed := eventWindow(event)
		if timed && end > lastEnd {
			lastEnd = end
		}
	}

	busy := busyRanges(events, excludeEventID)

	suggestions := []string{}
	for candidate := lastEnd; candidate <= lastSuggestionMinutes && len(suggestions) < maxSuggestions; candidate += width {
		if isFree(busy, candidate, candidate+width) {
			suggestions = append(suggestions, fmt.Sprintf("%02d:%02d", candidate/60, candidate%60))
		}
	}
	return suggestions
}

type minuteRange struct {
	start, end int
}

// busyRanges collects the timed events as sorted minute ranges.
func busyRanges(events []*store.Event, excludeEventID int32) []minuteRange {
	var busy []minuteRange
	for _, event := range events {
		if excludeEventID != 0 && event.ID == excludeEventID {
			continue
		}
		start, end, timed := eventWindow(event)
		if !timed {
			continue
		}
		busy = append(busy, minuteRange{start: start, end: end})
	}
	sort.Slice(busy, func(i, j int) bool {
		return busy[i].start < busy[j].start
	})
	return busy
}

func isFree(busy []minuteRange, start, end int) bool {
	for _, b := range busy {
		if start < b.end && b.start < end {
			return false
		}
	}
	return true
}

// eventWindow resolves an event to its occupied minute range. timed is
// false for all-day events, which never participate in overlap checks.
func eventWindow(event *store.Event) (start, end int, timed bool) {
	if event.StartTime == "" {
		return 0, 0, false
	}
	start, ok := clockToMinutes(event.StartTime)
	if !ok {
		return 0, 0, false
	}
	end = start + int(DefaultEventDuration.Minutes())
	if event.EndTime != "" {
		if e, ok := clockToMinutes(event.EndTime); ok && e > start {
			end = e
		}
	}
	return start, end, true
}

// clockToMinutes parses HH:MM or HH:MM:SS into minutes since midnight.
// Seconds are truncated.
func clockToMinutes(clock string) (int, bool) {
	var h, m, s int
	if _, err := fmt.Sscanf(clock, "%d:%d:%d", &h, &m, &s); err != nil {
		if _, err := fmt.Sscanf(clock, "%d:%d", &h, &m); err != nil {
			return 0, false
		}
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func minutesToClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d:00", minutes/60, minutes%60)
}
