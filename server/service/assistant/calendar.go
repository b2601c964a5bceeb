package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/lithammer/shortuuid/v4"

	"github.com/hearthside/hearth/plugin/ai/router"
	"github.com/hearthside/hearth/server/service/schedule"
	"github.com/hearthside/hearth/store"
)

// createEvent adds a calendar event. A duplicate (user, title, date) is
// returned as the existing event instead of a second copy, and timed events
// must clear the conflict detector before anything is written.
func (s *Service) createEvent(ctx context.Context, userID int32, intent *router.Intent) *ActionResult {
	title := intent.StringSlot("title")
	if title == "" {
		return fail("What should I call this event?")
	}

	date, result := s.requireDate(intent.StringSlot("date"), "event")
	if result != nil {
		return result
	}
	startTime, result := s.optionalTime(intent.StringSlot("time"))
	if result != nil {
		return result
	}
	endTime, result := s.optionalTime(intent.StringSlot("end_time"))
	if result != nil {
		return result
	}

	normal := store.Normal
	existing, err := s.store.ListEvents(ctx, &store.FindEvent{
		CreatorID:  &userID,
		RowStatus:  &normal,
		Date:       &date,
		TitleExact: &title,
	})
	if err != nil {
		return storageFailure(err)
	}
	if len(existing) > 0 {
		event := existing[0]
		return okWithData(
			fmt.Sprintf("%q is already on your calendar for %s.", event.Title, event.Date),
			map[string]any{"id": event.ID, "uid": event.UID},
		)
	}

	if s.detector != nil && startTime != "" {
		check, err := s.detector.Check(ctx, userID, date, startTime, endTime, 0)
		if err != nil {
			return storageFailure(err)
		}
		if check.HasConflict {
			return failWithData(conflictMessage(check.Conflicting, check.Suggestions), map[string]any{
				"conflicts":   eventTitles(check.Conflicting),
				"suggestions": check.Suggestions,
			})
		}
	}

	event, err := s.store.CreateEvent(ctx, &store.Event{
		UID:          shortuuid.New(),
		CreatorID:    userID,
		Title:        title,
		Date:         date,
		StartTime:    startTime,
		EndTime:      endTime,
		Location:     intent.StringSlot("location"),
		Participants: intent.StringSlot("participants"),
	})
	if err != nil {
		return storageFailure(err)
	}

	message := fmt.Sprintf("Added %q to your calendar for %s", event.Title, event.Date)
	if event.StartTime != "" {
		message += " at " + clockLabel(event.StartTime)
	}
	return okWithData(message+".", map[string]any{"id": event.ID, "uid": event.UID})
}

func (s *Service) queryEvents(ctx context.Context, userID int32, intent *router.Intent) *ActionResult {
	if intent.BoolSlot("availability") {
		return s.queryFreeSlots(ctx, userID, intent)
	}

	normal := store.Normal
	find := &store.FindEvent{
		CreatorID: &userID,
		RowStatus: &normal,
	}

	scope := "coming up"
	if raw := intent.StringSlot("date"); raw != "" {
		date := s.parser.NormalizeDate(raw)
		if date == "" {
			return fail(fmt.Sprintf("I couldn't understand the date %q. Try something like 2026-03-15 or tomorrow.", raw))
		}
		find.Date = &date
		scope = "on " + date
	} else {
		today := s.today()
		limit := calendarSummaryLimit
		find.DateStart = &today
		find.Limit = &limit
	}
	if term := intent.StringSlot("title"); term != "" {
		find.TitleSearch = &term
	}

	events, err := s.store.ListEvents(ctx, find)
	if err != nil {
		return storageFailure(err)
	}
	if len(events) == 0 {
		return ok(fmt.Sprintf("You have nothing %s.", scope))
	}

	lines := make([]string, 0, len(events))
	for _, event := range events {
		line := fmt.Sprintf("%s on %s", event.Title, event.Date)
		if event.StartTime != "" {
			line += " at " + clockLabel(event.StartTime)
		}
		lines = append(lines, line)
	}
	return okWithData(
		fmt.Sprintf("You have %d event(s) %s: %s.", len(events), scope, strings.Join(lines, "; ")),
		map[string]any{"events": events},
	)
}

// queryFreeSlots answers "when am I free" from the conflict detector's
// free-slot search. The date defaults to today.
func (s *Service) queryFreeSlots(ctx context.Context, userID int32, intent *router.Intent) *ActionResult {
	if s.detector == nil {
		return fail("I can't check your availability right now.")
	}

	date := s.today()
	if raw := intent.StringSlot("date"); raw != "" {
		date = s.parser.NormalizeDate(raw)
		if date == "" {
			return fail(fmt.Sprintf("I couldn't understand the date %q. Try something like 2026-03-15 or tomorrow.", raw))
		}
	}

	slots, err := s.detector.FreeSlots(ctx, userID, date, schedule.DefaultEventDuration)
	if err != nil {
		return storageFailure(err)
	}
	if len(slots) == 0 {
		return ok(fmt.Sprintf("You have no free time on %s.", date))
	}

	labels := make([]string, 0, len(slots))
	for _, slot := range slots {
		labels = append(labels, clockLabel(slot.Start)+"-"+clockLabel(slot.End))
	}
	return okWithData(
		fmt.Sprintf("On %s you're free at: %s.", date, strings.Join(labels, ", ")),
		map[string]any{"date": date, "slots": slots},
	)
}

func (s *Service) updateEvent(ctx context.Context, userID int32, intent *router.Intent) *ActionResult {
	term := intent.StringSlot("title")
	if term == "" {
		return fail("Which event should I change?")
	}

	event, result := s.findEvent(ctx, userID, term)
	if result != nil {
		return result
	}

	update := &store.UpdateEvent{ID: event.ID}
	newDate, newStart, newEnd := event.Date, event.StartTime, event.EndTime

	if raw := intent.StringSlot("date"); raw != "" {
		date := s.parser.NormalizeDate(raw)
		if date == "" {
			return fail(fmt.Sprintf("I couldn't understand the date %q. Try something like 2026-03-15 or tomorrow.", raw))
		}
		update.Date, newDate = &date, date
	}
	if raw := intent.StringSlot("time"); raw != "" {
		t := s.parser.NormalizeTime(raw)
		if t == "" {
			return fail(fmt.Sprintf("I couldn't understand the time %q. Try something like 15:00 or 3pm.", raw))
		}
		update.StartTime, newStart = &t, t
	}
	if raw := intent.StringSlot("end_time"); raw != "" {
		t := s.parser.NormalizeTime(raw)
		if t == "" {
			return fail(fmt.Sprintf("I couldn't understand the time %q. Try something like 15:00 or 3pm.", raw))
		}
		update.EndTime, newEnd = &t, t
	}
	if location := intent.StringSlot("location"); location != "" {
		update.Location = &location
	}
	if newTitle := intent.StringSlot("new_title"); newTitle != "" {
		update.Title = &newTitle
	}

	if update.Date == nil && update.StartTime == nil && update.EndTime == nil && update.Location == nil && update.Title == nil {
		return fail(fmt.Sprintf("What should I change about %q?", event.Title))
	}

	if s.detector != nil && newStart != "" {
		check, err := s.detector.Check(ctx, userID, newDate, newStart, newEnd, event.ID)
		if err != nil {
			return storageFailure(err)
		}
		if check.HasConflict {
			return failWithData(conflictMessage(check.Conflicting, check.Suggestions), map[string]any{
				"conflicts":   eventTitles(check.Conflicting),
				"suggestions": check.Suggestions,
			})
		}
	}

	if err := s.store.UpdateEvent(ctx, update); err != nil {
		return storageFailure(err)
	}
	return okWithData(fmt.Sprintf("Updated %q.", event.Title), map[string]any{"id": event.ID})
}

func (s *Service) deleteEvent(ctx context.Context, userID int32, intent *router.Intent) *ActionResult {
	term := intent.StringSlot("title")
	if term == "" {
		return fail("Which event should I remove?")
	}

	event, result := s.findEvent(ctx, userID, term)
	if result != nil {
		return result
	}

	if err := s.store.DeleteEvent(ctx, &store.DeleteEvent{ID: event.ID}); err != nil {
		return storageFailure(err)
	}
	return okWithData(fmt.Sprintf("Removed %q from your calendar.", event.Title), map[string]any{"id": event.ID})
}

// findEvent resolves a fuzzy reference to exactly one event or reports why
// it cannot.
func (s *Service) findEvent(ctx context.Context, userID int32, term string) (*store.Event, *ActionResult) {
	normal := store.Normal
	matches, err := s.store.ListEvents(ctx, &store.FindEvent{
		CreatorID:   &userID,
		RowStatus:   &normal,
		TitleSearch: &term,
	})
	if err != nil {
		return nil, storageFailure(err)
	}
	return resolveOne(matches, "event", term, func(e *store.Event) string { return e.Title })
}

// requireDate normalizes a mandatory date slot.
func (s *Service) requireDate(raw, kind string) (string, *ActionResult) {
	if raw == "" {
		return "", fail(fmt.Sprintf("Please include a date for the %s, like 2026-03-15 or tomorrow.", kind))
	}
	date := s.parser.NormalizeDate(raw)
	if date == "" {
		return "", fail(fmt.Sprintf("I couldn't understand the date %q. Try something like 2026-03-15 or tomorrow.", raw))
	}
	return date, nil
}

// optionalTime normalizes a time slot that may be absent. A present but
// unintelligible value is an error: the user meant a time, so ask rather
// than silently dropping it.
func (s *Service) optionalTime(raw string) (string, *ActionResult) {
	if raw == "" {
		return "", nil
	}
	t := s.parser.NormalizeTime(raw)
	if t == "" {
		return "", fail(fmt.Sprintf("I couldn't understand the time %q. Try something like 15:00 or 3pm.", raw))
	}
	return t, nil
}

func conflictMessage(conflicting []*store.Event, suggestions []string) string {
	message := fmt.Sprintf("That time conflicts with %s.", strings.Join(eventTitles(conflicting), " and "))
	if len(suggestions) > 0 {
		message += " Free at: " + strings.Join(suggestions, ", ") + "."
	}
	return message
}

func eventTitles(events []*store.Event) []string {
	titles := make([]string, 0, len(events))
	for _, event := range events {
		titles = append(titles, event.Title)
	}
	return titles
}

// storageFailure surfaces the collaborator's error text, which is usually
// actionable, without any wrapping internals.
func storageFailure(err error) *ActionResult {
	return fail(fmt.Sprintf("I couldn't complete that: %v.", err))
}
