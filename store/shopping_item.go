package store

import (
	"context"
)

// Shopping categories. CategoryOther is the bucket for anything the
// classifier heuristics could not place.
const (
	CategoryDairy     = "dairy"
	CategoryProduce   = "produce"
	CategoryMeat      = "meat"
	CategoryBakery    = "bakery"
	CategoryBaby      = "baby"
	CategoryHousehold = "household"
	CategoryOther     = "other"
)

// ShoppingItem is the object representing a shopping list entry.
type ShoppingItem struct {
	ID        int32
	UID       string
	CreatorID int32
	RowStatus RowStatus
	CreatedTs int64
	UpdatedTs int64

	Name      string
	Quantity  int32
	Category  string
	Purchased bool
}

// FindShoppingItem is the find condition for shopping item.
type FindShoppingItem struct {
	ID        *int32
	UID       *string
	CreatorID *int32
	RowStatus *RowStatus

	// Case-insensitive substring match on name.
	NameSearch *string
	Category   *string
	Purchased  *bool

	Limit  *int
	Offset *int
}

// UpdateShoppingItem is the update request for shopping item.
type UpdateShoppingItem struct {
	ID        int32
	RowStatus *RowStatus
	Name      *string
	Quantity  *int32
	Category  *string
	Purchased *bool
}

// DeleteShoppingItem is the delete request for shopping item.
type DeleteShoppingItem struct {
	ID int32
}

// CreateShoppingItem creates a new shopping item.
func (s *Store) CreateShoppingItem(ctx context.Context, create *ShoppingItem) (*ShoppingItem, error) {
	return s.driver.CreateShoppingItem(ctx, create)
}

// ListShoppingItems lists shopping items with filter.
func (s *Store) ListShoppingItems(ctx context.Context, find *FindShoppingItem) ([]*ShoppingItem, error) {
	return s.driver.ListShoppingItems(ctx, find)
}

// UpdateShoppingItem updates a shopping item.
func (s *Store) UpdateShoppingItem(ctx context.Context, update *UpdateShoppingItem) error {
	return s.driver.UpdateShoppingItem(ctx, update)
}

// DeleteShoppingItem deletes a shopping item.
func (s *Store) DeleteShoppingItem(ctx context.Context, delete *DeleteShoppingItem) error {
	return s.driver.DeleteShoppingItem(ctx, delete)
}

// IsValidCategory reports whether c is a recognized shopping category.
func IsValidCategory(c string) bool {
	switch c {
	case CategoryDairy, CategoryProduce, CategoryMeat, CategoryBakery, CategoryBaby, CategoryHousehold, CategoryOther:
		return true
	}
	return false
}
