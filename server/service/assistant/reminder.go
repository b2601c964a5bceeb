package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/lithammer/shortuuid/v4"

	"github.com/hearthside/hearth/plugin/ai/router"
	"github.com/hearthside/hearth/store"
)

func (s *Service) createReminder(ctx context.Context, userID int32, intent *router.Intent) *ActionResult {
	title := intent.StringSlot("title")
	if title == "" {
		return fail("What should I remind you about?")
	}

	date, result := s.requireDate(intent.StringSlot("date"), "reminder")
	if result != nil {
		return result
	}
	timeOfDay, result := s.optionalTime(intent.StringSlot("time"))
	if result != nil {
		return result
	}

	reminder, err := s.store.CreateReminder(ctx, &store.Reminder{
		UID:       shortuuid.New(),
		CreatorID: userID,
		Title:     title,
		Date:      date,
		Time:      timeOfDay,
	})
	if err != nil {
		return storageFailure(err)
	}

	message := fmt.Sprintf("I'll remind you to %s on %s", reminder.Title, reminder.Date)
	if reminder.Time != "" {
		message += " at " + clockLabel(reminder.Time)
	}
	return okWithData(message+".", map[string]any{"id": reminder.ID, "uid": reminder.UID})
}

func (s *Service) queryReminders(ctx context.Context, userID int32, intent *router.Intent) *ActionResult {
	normal := store.Normal
	notDone := false
	find := &store.FindReminder{
		CreatorID: &userID,
		RowStatus: &normal,
		Completed: &notDone,
	}
	if raw := intent.StringSlot("date"); raw != "" {
		date := s.parser.NormalizeDate(raw)
		if date == "" {
			return fail(fmt.Sprintf("I couldn't understand the date %q. Try something like 2026-03-15 or tomorrow.", raw))
		}
		find.Date = &date
	}

	reminders, err := s.store.ListReminders(ctx, find)
	if err != nil {
		return storageFailure(err)
	}
	if len(reminders) == 0 {
		return ok("You have no open reminders.")
	}

	lines := make([]string, 0, len(reminders))
	for _, r := range reminders {
		line := fmt.Sprintf("%s on %s", r.Title, r.Date)
		if r.Time != "" {
			line += " at " + clockLabel(r.Time)
		}
		lines = append(lines, line)
	}
	return okWithData(
		fmt.Sprintf("You have %d open reminder(s): %s.", len(reminders), strings.Join(lines, "; ")),
		map[string]any{"reminders": reminders},
	)
}

// updateReminder reschedules a reminder when date/time slots are present,
// otherwise marks it completed.
func (s *Service) updateReminder(ctx context.Context, userID int32, intent *router.Intent) *ActionResult {
	term := intent.StringSlot("title")
	if term == "" {
		return fail("Which reminder should I change?")
	}

	reminder, result := s.findReminder(ctx, userID, term)
	if result != nil {
		return result
	}

	update := &store.UpdateReminder{ID: reminder.ID}
	if raw := intent.StringSlot("date"); raw != "" {
		date := s.parser.NormalizeDate(raw)
		if date == "" {
			return fail(fmt.Sprintf("I couldn't understand the date %q. Try something like 2026-03-15 or tomorrow.", raw))
		}
		update.Date = &date
	}
	if raw := intent.StringSlot("time"); raw != "" {
		t := s.parser.NormalizeTime(raw)
		if t == "" {
			return fail(fmt.Sprintf("I couldn't understand the time %q. Try something like 15:00 or 3pm.", raw))
		}
		update.Time = &t
	}

	if update.Date == nil && update.Time == nil {
		done := true
		update.Completed = &done
		if err := s.store.UpdateReminder(ctx, update); err != nil {
			return storageFailure(err)
		}
		return okWithData(fmt.Sprintf("Marked %q as done.", reminder.Title), map[string]any{"id": reminder.ID})
	}

	if err := s.store.UpdateReminder(ctx, update); err != nil {
		return storageFailure(err)
	}
	return okWithData(fmt.Sprintf("Rescheduled %q.", reminder.Title), map[string]any{"id": reminder.ID})
}

func (s *Service) deleteReminder(ctx context.Context, userID int32, intent *router.Intent) *ActionResult {
	term := intent.StringSlot("title")
	if term == "" {
		return fail("Which reminder should I remove?")
	}

	reminder, result := s.findReminder(ctx, userID, term)
	if result != nil {
		return result
	}

	if err := s.store.DeleteReminder(ctx, &store.DeleteReminder{ID: reminder.ID}); err != nil {
		return storageFailure(err)
	}
	return okWithData(fmt.Sprintf("Removed the reminder %q.", reminder.Title), map[string]any{"id": reminder.ID})
}

func (s *Service) findReminder(ctx context.Context, userID int32, term string) (*store.Reminder, *ActionResult) {
	normal := store.Normal
	matches, err := s.store.ListReminders(ctx, &store.FindReminder{
		CreatorID:   &userID,
		RowStatus:   &normal,
		TitleSearch: &term,
	})
	if err != nil {
		return nil, storageFailure(err)
	}
	return resolveOne(matches, "reminder", term, func(r *store.Reminder) string { return r.Title })
}
