package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/lithammer/shortuuid/v4"

	"github.com/hearthside/hearth/plugin/ai/router"
	"github.com/hearthside/hearth/store"
)

func (s *Service) createFamilyMember(ctx context.Context, userID int32, intent *router.Intent) *ActionResult {
	name := intent.StringSlot("name")
	if name == "" {
		return fail("Who should I add to the family roster?")
	}

	birthdate := ""
	if raw := intent.StringSlot("birthdate"); raw != "" {
		birthdate = s.parser.NormalizeDate(raw)
		if birthdate == "" {
			return fail(fmt.Sprintf("I couldn't understand the birthdate %q. Try something like 2018-06-02.", raw))
		}
	}

	member, err := s.store.CreateFamilyMember(ctx, &store.FamilyMember{
		UID:       shortuuid.New(),
		CreatorID: userID,
		Name:      name,
		Birthdate: birthdate,
		Relation:  intent.StringSlot("relation"),
	})
	if err != nil {
		return storageFailure(err)
	}

	return okWithData(
		fmt.Sprintf("Added %s to the family roster.", member.Name),
		map[string]any{"id": member.ID, "uid": member.UID},
	)
}

func (s *Service) queryFamilyMembers(ctx context.Context, userID int32, intent *router.Intent) *ActionResult {
	normal := store.Normal
	find := &store.FindFamilyMember{
		CreatorID: &userID,
		RowStatus: &normal,
	}
	if term := intent.StringSlot("name"); term != "" {
		find.NameSearch = &term
	}

	members, err := s.store.ListFamilyMembers(ctx, find)
	if err != nil {
		return storageFailure(err)
	}
	if len(members) == 0 {
		return ok("The family roster is empty.")
	}

	lines := make([]string, 0, len(members))
	for _, member := range members {
		line := member.Name
		if member.Relation != "" {
			line += " (" + member.Relation + ")"
		}
		if member.Birthdate != "" {
			line += ", born " + member.Birthdate
		}
		lines = append(lines, line)
	}
	return okWithData(
		fmt.Sprintf("Family roster: %s.", strings.Join(lines, "; ")),
		map[string]any{"members": members},
	)
}

func (s *Service) updateFamilyMember(ctx context.Context, userID int32, intent *router.Intent) *ActionResult {
	term := intent.StringSlot("name")
	if term == "" {
		return fail("Which family member do you mean?")
	}

	member, result := s.findFamilyMember(ctx, userID, term)
	if result != nil {
		return result
	}

	update := &store.UpdateFamilyMember{ID: member.ID}
	if raw := intent.StringSlot("birthdate"); raw != "" {
		birthdate := s.parser.NormalizeDate(raw)
		if birthdate == "" {
			return fail(fmt.Sprintf("I couldn't understand the birthdate %q. Try something like 2018-06-02.", raw))
		}
		update.Birthdate = &birthdate
	}
	if relation := intent.StringSlot("relation"); relation != "" {
		update.Relation = &relation
	}

	if update.Birthdate == nil && update.Relation == nil {
		return fail(fmt.Sprintf("What should I change about %s?", member.Name))
	}

	if err := s.store.UpdateFamilyMember(ctx, update); err != nil {
		return storageFailure(err)
	}
	return okWithData(fmt.Sprintf("Updated %s.", member.Name), map[string]any{"id": member.ID})
}

func (s *Service) deleteFamilyMember(ctx context.Context, userID int32, intent *router.Intent) *ActionResult {
	term := intent.StringSlot("name")
	if term == "" {
		return fail("Which family member should I remove?")
	}

	member, result := s.findFamilyMember(ctx, userID, term)
	if result != nil {
		return result
	}

	if err := s.store.DeleteFamilyMember(ctx, &store.DeleteFamilyMember{ID: member.ID}); err != nil {
		return storageFailure(err)
	}
	return okWithData(fmt.Sprintf("Removed %s from the family roster.", member.Name), map[string]any{"id": member.ID})
}

func (s *Service) findFamilyMember(ctx context.Context, userID int32, term string) (*store.FamilyMember, *ActionResult) {
	normal := store.Normal
	matches, err := s.store.ListFamilyMembers(ctx, &store.FindFamilyMember{
		CreatorID:  &userID,
		RowStatus:  &normal,
		NameSearch: &term,
	})
	if err != nil {
		return nil, storageFailure(err)
	}
	return resolveOne(matches, "family member", term, func(m *store.FamilyMember) string { return m.Name })
}
