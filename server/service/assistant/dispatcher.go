package assistant

import (
	"context"

	"github.com/hearthside/hearth/plugin/ai"
	"github.com/hearthside/hearth/plugin/ai/router"
)

// dispatch routes the intent to its handler and stamps the intent type
// onto the result so callers can tell which action produced it.
func (s *Service) dispatch(ctx context.Context, userID int32, message string, intent *router.Intent, history []ai.Message) *ActionResult {
	result := s.route(ctx, userID, message, intent, history)
	result.Type = router.CoerceIntentType(string(intent.Type))
	return result
}

// route is a total function over intent types. The classifier already
// coerces unknown types to chat, but the default arm keeps that guarantee
// local too.
func (s *Service) route(ctx context.Context, userID int32, message string, intent *router.Intent, history []ai.Message) *ActionResult {
	switch intent.Type {
	case router.IntentCreateCalendar:
		return s.createEvent(ctx, userID, intent)
	case router.IntentQueryCalendar:
		return s.queryEvents(ctx, userID, intent)
	case router.IntentUpdateCalendar:
		return s.updateEvent(ctx, userID, intent)
	case router.IntentDeleteCalendar:
		return s.deleteEvent(ctx, userID, intent)

	case router.IntentCreateReminder:
		return s.createReminder(ctx, userID, intent)
	case router.IntentQueryReminder:
		return s.queryReminders(ctx, userID, intent)
	case router.IntentUpdateReminder:
		return s.updateReminder(ctx, userID, intent)
	case router.IntentDeleteReminder:
		return s.deleteReminder(ctx, userID, intent)

	case router.IntentCreateShopping:
		return s.createShoppingItem(ctx, userID, intent)
	case router.IntentQueryShopping:
		return s.queryShoppingItems(ctx, userID, intent)
	case router.IntentUpdateShopping:
		return s.updateShoppingItem(ctx, userID, intent)
	case router.IntentDeleteShopping:
		return s.deleteShoppingItem(ctx, userID, intent)

	case router.IntentCreateTask:
		return s.createTask(ctx, userID, intent)
	case router.IntentQueryTask:
		return s.queryTasks(ctx, userID, intent)
	case router.IntentUpdateTask:
		return s.updateTask(ctx, userID, intent)
	case router.IntentDeleteTask:
		return s.deleteTask(ctx, userID, intent)

	case router.IntentCreateFamily:
		return s.createFamilyMember(ctx, userID, intent)
	case router.IntentQueryFamily:
		return s.queryFamilyMembers(ctx, userID, intent)
	case router.IntentUpdateFamily:
		return s.updateFamilyMember(ctx, userID, intent)
	case router.IntentDeleteFamily:
		return s.deleteFamilyMember(ctx, userID, intent)

	default:
		return s.chat(ctx, message, history)
	}
}
