package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/lithammer/shortuuid/v4"

	"github.com/hearthside/hearth/plugin/ai/router"
	"github.com/hearthside/hearth/store"
)

func (s *Service) createShoppingItem(ctx context.Context, userID int32, intent *router.Intent) *ActionResult {
	name := intent.StringSlot("item")
	if name == "" {
		return fail("What should I add to the shopping list?")
	}

	category := intent.StringSlot("category")
	if !store.IsValidCategory(category) {
		category = store.CategoryOther
	}

	quantity := int32(1)
	if v, ok := intent.Slots["quantity"]; ok {
		if n, ok := v.(float64); ok && n >= 1 {
			quantity = int32(n)
		}
	}

	item, err := s.store.CreateShoppingItem(ctx, &store.ShoppingItem{
		UID:       shortuuid.New(),
		CreatorID: userID,
		Name:      name,
		Quantity:  quantity,
		Category:  category,
	})
	if err != nil {
		return storageFailure(err)
	}

	return okWithData(
		fmt.Sprintf("Added %s to the shopping list.", item.Name),
		map[string]any{"id": item.ID, "uid": item.UID, "category": item.Category},
	)
}

func (s *Service) queryShoppingItems(ctx context.Context, userID int32, _ *router.Intent) *ActionResult {
	normal := store.Normal
	notBought := false
	items, err := s.store.ListShoppingItems(ctx, &store.FindShoppingItem{
		CreatorID: &userID,
		RowStatus: &normal,
		Purchased: &notBought,
	})
	if err != nil {
		return storageFailure(err)
	}
	if len(items) == 0 {
		return ok("The shopping list is empty.")
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		line := item.Name
		if item.Quantity > 1 {
			line = fmt.Sprintf("%s x%d", item.Name, item.Quantity)
		}
		lines = append(lines, line)
	}
	return okWithData(
		fmt.Sprintf("The shopping list has %d item(s): %s.", len(items), strings.Join(lines, ", ")),
		map[string]any{"items": items},
	)
}

// updateShoppingItem marks an item purchased, the common case; quantity and
// category slots adjust the record instead when present.
func (s *Service) updateShoppingItem(ctx context.Context, userID int32, intent *router.Intent) *ActionResult {
	term := intent.StringSlot("item")
	if term == "" {
		return fail("Which shopping item do you mean?")
	}

	item, result := s.findShoppingItem(ctx, userID, term)
	if result != nil {
		return result
	}

	update := &store.UpdateShoppingItem{ID: item.ID}
	if v, ok := intent.Slots["quantity"]; ok {
		if n, ok := v.(float64); ok && n >= 1 {
			quantity := int32(n)
			update.Quantity = &quantity
		}
	}
	if category := intent.StringSlot("category"); store.IsValidCategory(category) {
		update.Category = &category
	}

	if update.Quantity == nil && update.Category == nil {
		bought := true
		update.Purchased = &bought
		if err := s.store.UpdateShoppingItem(ctx, update); err != nil {
			return storageFailure(err)
		}
		return okWithData(fmt.Sprintf("Checked %s off the shopping list.", item.Name), map[string]any{"id": item.ID})
	}

	if err := s.store.UpdateShoppingItem(ctx, update); err != nil {
		return storageFailure(err)
	}
	return okWithData(fmt.Sprintf("Updated %s on the shopping list.", item.Name), map[string]any{"id": item.ID})
}

func (s *Service) deleteShoppingItem(ctx context.Context, userID int32, intent *router.Intent) *ActionResult {
	term := intent.StringSlot("item")
	if term == "" {
		return fail("Which shopping item should I remove?")
	}

	item, result := s.findShoppingItem(ctx, userID, term)
	if result != nil {
		return result
	}

	if err := s.store.DeleteShoppingItem(ctx, &store.DeleteShoppingItem{ID: item.ID}); err != nil {
		return storageFailure(err)
	}
	return okWithData(fmt.Sprintf("Removed %s from the shopping list.", item.Name), map[string]any{"id": item.ID})
}

func (s *Service) findShoppingItem(ctx context.Context, userID int32, term string) (*store.ShoppingItem, *ActionResult) {
	normal := store.Normal
	matches, err := s.store.ListShoppingItems(ctx, &store.FindShoppingItem{
		CreatorID:  &userID,
		RowStatus:  &normal,
		NameSearch: &term,
	})
	if err != nil {
		return nil, storageFailure(err)
	}
	return resolveOne(matches, "shopping item", term, func(i *store.ShoppingItem) string { return i.Name })
}
