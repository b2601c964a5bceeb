package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/lithammer/shortuuid/v4"

	"github.com/hearthside/hearth/plugin/ai/router"
	"github.com/hearthside/hearth/store"
)

func (s *Service) createTask(ctx context.Context, userID int32, intent *router.Intent) *ActionResult {
	title := intent.StringSlot("title")
	if title == "" {
		return fail("What's the task?")
	}

	dueDate := ""
	if raw := intent.StringSlot("due_date"); raw != "" {
		dueDate = s.parser.NormalizeDate(raw)
		if dueDate == "" {
			return fail(fmt.Sprintf("I couldn't understand the due date %q. Try something like 2026-03-15 or friday.", raw))
		}
	}

	priority := intent.StringSlot("priority")
	if !store.IsValidTaskPriority(priority) {
		priority = store.TaskPriorityMedium
	}

	task, err := s.store.CreateTask(ctx, &store.Task{
		UID:       shortuuid.New(),
		CreatorID: userID,
		Title:     title,
		DueDate:   dueDate,
		Priority:  priority,
	})
	if err != nil {
		return storageFailure(err)
	}

	message := fmt.Sprintf("Added the task %q", task.Title)
	if task.DueDate != "" {
		message += ", due " + task.DueDate
	}
	return okWithData(message+".", map[string]any{"id": task.ID, "uid": task.UID})
}

func (s *Service) queryTasks(ctx context.Context, userID int32, intent *router.Intent) *ActionResult {
	normal := store.Normal
	notDone := false
	find := &store.FindTask{
		CreatorID: &userID,
		RowStatus: &normal,
		Completed: &notDone,
	}
	if raw := intent.StringSlot("due_date"); raw != "" {
		date := s.parser.NormalizeDate(raw)
		if date == "" {
			return fail(fmt.Sprintf("I couldn't understand the date %q. Try something like 2026-03-15 or friday.", raw))
		}
		find.DueDate = &date
	}

	tasks, err := s.store.ListTasks(ctx, find)
	if err != nil {
		return storageFailure(err)
	}
	if len(tasks) == 0 {
		return ok("Your task list is clear.")
	}

	lines := make([]string, 0, len(tasks))
	for _, task := range tasks {
		line := task.Title
		if task.DueDate != "" {
			line += " (due " + task.DueDate + ")"
		}
		lines = append(lines, line)
	}
	return okWithData(
		fmt.Sprintf("You have %d open task(s): %s.", len(tasks), strings.Join(lines, "; ")),
		map[string]any{"tasks": tasks},
	)
}

// updateTask changes due date or priority when those slots are present,
// otherwise marks the task completed.
func (s *Service) updateTask(ctx context.Context, userID int32, intent *router.Intent) *ActionResult {
	term := intent.StringSlot("title")
	if term == "" {
		return fail("Which task do you mean?")
	}

	task, result := s.findTask(ctx, userID, term)
	if result != nil {
		return result
	}

	update := &store.UpdateTask{ID: task.ID}
	if raw := intent.StringSlot("due_date"); raw != "" {
		date := s.parser.NormalizeDate(raw)
		if date == "" {
			return fail(fmt.Sprintf("I couldn't understand the due date %q. Try something like 2026-03-15 or friday.", raw))
		}
		update.DueDate = &date
	}
	if priority := intent.StringSlot("priority"); store.IsValidTaskPriority(priority) {
		update.Priority = &priority
	}

	if update.DueDate == nil && update.Priority == nil {
		done := true
		update.Completed = &done
		if err := s.store.UpdateTask(ctx, update); err != nil {
			return storageFailure(err)
		}
		return okWithData(fmt.Sprintf("Marked the task %q as done.", task.Title), map[string]any{"id": task.ID})
	}

	if err := s.store.UpdateTask(ctx, update); err != nil {
		return storageFailure(err)
	}
	return okWithData(fmt.Sprintf("Updated the task %q.", task.Title), map[string]any{"id": task.ID})
}

func (s *Service) deleteTask(ctx context.Context, userID int32, intent *router.Intent) *ActionResult {
	term := intent.StringSlot("title")
	if term == "" {
		return fail("Which task should I remove?")
	}

	task, result := s.findTask(ctx, userID, term)
	if result != nil {
		return result
	}

	if err := s.store.DeleteTask(ctx, &store.DeleteTask{ID: task.ID}); err != nil {
		return storageFailure(err)
	}
	return okWithData(fmt.Sprintf("Removed the task %q.", task.Title), map[string]any{"id": task.ID})
}

func (s *Service) findTask(ctx context.Context, userID int32, term string) (*store.Task, *ActionResult) {
	normal := store.Normal
	matches, err := s.store.ListTasks(ctx, &store.FindTask{
		CreatorID:   &userID,
		RowStatus:   &normal,
		TitleSearch: &term,
	})
	if err != nil {
		return nil, storageFailure(err)
	}
	return resolveOne(matches, "task", term, func(t *store.Task) string { return t.Title })
}
