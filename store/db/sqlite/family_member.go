package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hearthside/hearth/store"
)

func (d *DB) CreateFamilyMember(ctx context.Context, create *store.FamilyMember) (*store.FamilyMember, error) {
	fields := []string{"uid", "creator_id", "name", "birthdate", "relation"}
	placeholderValues := []any{
		create.UID, create.CreatorID, create.Name, create.Birthdate, create.Relation,
	}

	stmt := `INSERT INTO family_member (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(placeholderValues)) + `)
		RETURNING id, created_ts, updated_ts, row_status`

	if err := d.db.QueryRowContext(ctx, stmt, placeholderValues...).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
		&create.RowStatus,
	); err != nil {
		return nil, fmt.Errorf("failed to create family member: %w", err)
	}

	return create, nil
}

func (d *DB) ListFamilyMembers(ctx context.Context, find *store.FindFamilyMember) ([]*store.FamilyMember, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "family_member.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "family_member.uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.CreatorID; v != nil {
		where, args = append(where, "family_member.creator_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.RowStatus; v != nil {
		where, args = append(where, "family_member.row_status = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.NameSearch; v != nil {
		where, args = append(where, "LOWER(family_member.name) LIKE "+placeholder(len(args)+1)), append(args, "%"+strings.ToLower(*v)+"%")
	}

	query := `
		SELECT
			id, uid, creator_id, created_ts, updated_ts, row_status,
			name, birthdate, relation
		FROM family_member
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY family_member.name ASC`

	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
		if find.Offset != nil {
			query = fmt.Sprintf("%s OFFSET %d", query, *find.Offset)
		}
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query family members: %w", err)
	}
	defer rows.Close()

	list := make([]*store.FamilyMember, 0)
	for rows.Next() {
		var member store.FamilyMember
		if err := rows.Scan(
			&member.ID,
			&member.UID,
			&member.CreatorID,
			&member.CreatedTs,
			&member.UpdatedTs,
			&member.RowStatus,
			&member.Name,
			&member.Birthdate,
			&member.Relation,
		); err != nil {
			return nil, fmt.Errorf("failed to scan family member: %w", err)
		}
		list = append(list, &member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate family members: %w", err)
	}

	return list, nil
}

func (d *DB) UpdateFamilyMember(ctx context.Context, update *store.UpdateFamilyMember) error {
	set, args := []string{}, []any{}

	if v := update.RowStatus; v != nil {
		set, args = append(set, "row_status = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Name; v != nil {
		set, args = append(set, "name = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Birthdate; v != nil {
		set, args = append(set, "birthdate = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Relation; v != nil {
		set, args = append(set, "relation = "+placeholder(len(args)+1)), append(args, *v)
	}

	if len(set) == 0 {
		return nil
	}

	set, args = append(set, "updated_ts = "+placeholder(len(args)+1)), append(args, time.Now().Unix())
	args = append(args, update.ID)

	stmt := `UPDATE family_member SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to update family member: %w", err)
	}

	return nil
}

func (d *DB) DeleteFamilyMember(ctx context.Context, delete *store.DeleteFamilyMember) error {
	stmt := `DELETE FROM family_member WHERE id = ` + placeholder(1)
	result, err := d.db.ExecContext(ctx, stmt, delete.ID)
	if err != nil {
		return fmt.Errorf("failed to delete family member: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("family member not found")
	}

	return nil
}
