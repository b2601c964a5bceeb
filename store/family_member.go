package store

import (
	"context"
	"fmt"
)

// FamilyMember is the object representing a member of the household roster.
// Birthdate is a canonical YYYY-MM-DD string or empty.
type FamilyMember struct {
	ID        int32
	UID       string
	CreatorID int32
	RowStatus RowStatus
	CreatedTs int64
	UpdatedTs int64

	Name      string
	Birthdate string
	Relation  string
}

// FindFamilyMember is the find condition for family member.
type FindFamilyMember struct {
	ID        *int32
	UID       *string
	CreatorID *int32
	RowStatus *RowStatus

	// Case-insensitive substring match on name.
	NameSearch *string

	Limit  *int
	Offset *int
}

// UpdateFamilyMember is the update request for family member.
type UpdateFamilyMember struct {
	ID        int32
	RowStatus *RowStatus
	Name      *string
	Birthdate *string
	Relation  *string
}

// DeleteFamilyMember is the delete request for family member.
type DeleteFamilyMember struct {
	ID int32
}

// CreateFamilyMember creates a new family member.
func (s *Store) CreateFamilyMember(ctx context.Context, create *FamilyMember) (*FamilyMember, error) {
	member, err := s.driver.CreateFamilyMember(ctx, create)
	if err != nil {
		return nil, err
	}
	s.familyCache.Delete(familyCacheKey(create.CreatorID))
	return member, nil
}

// ListFamilyMembers lists family members with filter. The full per-user
// roster is cached since the resolver consults it on most family requests.
func (s *Store) ListFamilyMembers(ctx context.Context, find *FindFamilyMember) ([]*FamilyMember, error) {
	cacheable := find.CreatorID != nil && find.ID == nil && find.UID == nil &&
		find.NameSearch == nil && find.RowStatus == nil && find.Limit == nil
	if cacheable {
		if v, ok := s.familyCache.Get(familyCacheKey(*find.CreatorID)); ok {
			if members, ok := v.([]*FamilyMember); ok {
				return members, nil
			}
		}
	}

	members, err := s.driver.ListFamilyMembers(ctx, find)
	if err != nil {
		return nil, err
	}
	if cacheable {
		s.familyCache.Set(familyCacheKey(*find.CreatorID), members)
	}
	return members, nil
}

// UpdateFamilyMember updates a family member.
func (s *Store) UpdateFamilyMember(ctx context.Context, update *UpdateFamilyMember) error {
	if err := s.driver.UpdateFamilyMember(ctx, update); err != nil {
		return err
	}
	s.familyCache.Clear()
	return nil
}

// DeleteFamilyMember deletes a family member.
func (s *Store) DeleteFamilyMember(ctx context.Context, delete *DeleteFamilyMember) error {
	if err := s.driver.DeleteFamilyMember(ctx, delete); err != nil {
		return err
	}
	s.familyCache.Clear()
	return nil
}

func familyCacheKey(creatorID int32) string {
	return fmt.Sprintf("family:%d", creatorID)
}
