package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hearthside/hearth/store"
)

func (d *DB) CreateShoppingItem(ctx context.Context, create *store.ShoppingItem) (*store.ShoppingItem, error) {
	fields := []string{"uid", "creator_id", "name", "quantity", "category", "purchased"}
	placeholderValues := []any{
		create.UID, create.CreatorID, create.Name, create.Quantity, create.Category, create.Purchased,
	}

	stmt := `INSERT INTO shopping_item (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(placeholderValues)) + `)
		RETURNING id, created_ts, updated_ts, row_status`

	if err := d.db.QueryRowContext(ctx, stmt, placeholderValues...).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
		&create.RowStatus,
	); err != nil {
		return nil, fmt.Errorf("failed to create shopping item: %w", err)
	}

	return create, nil
}

func (d *DB) ListShoppingItems(ctx context.Context, find *store.FindShoppingItem) ([]*store.ShoppingItem, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "shopping_item.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "shopping_item.uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.CreatorID; v != nil {
		where, args = append(where, "shopping_item.creator_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.RowStatus; v != nil {
		where, args = append(where, "shopping_item.row_status = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.NameSearch; v != nil {
		where, args = append(where, "LOWER(shopping_item.name) LIKE "+placeholder(len(args)+1)), append(args, "%"+strings.ToLower(*v)+"%")
	}
	if v := find.Category; v != nil {
		where, args = append(where, "shopping_item.category = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Purchased; v != nil {
		where, args = append(where, "shopping_item.purchased = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT
			id, uid, creator_id, created_ts, updated_ts, row_status,
			name, quantity, category, purchased
		FROM shopping_item
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY shopping_item.category ASC, shopping_item.id ASC`

	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
		if find.Offset != nil {
			query = fmt.Sprintf("%s OFFSET %d", query, *find.Offset)
		}
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shopping items: %w", err)
	}
	defer rows.Close()

	list := make([]*store.ShoppingItem, 0)
	for rows.Next() {
		var item store.ShoppingItem
		if err := rows.Scan(
			&item.ID,
			&item.UID,
			&item.CreatorID,
			&item.CreatedTs,
			&item.UpdatedTs,
			&item.RowStatus,
			&item.Name,
			&item.Quantity,
			&item.Category,
			&item.Purchased,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shopping item: %w", err)
		}
		list = append(list, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shopping items: %w", err)
	}

	return list, nil
}

func (d *DB) UpdateShoppingItem(ctx context.Context, update *store.UpdateShoppingItem) error {
	set, args := []string{}, []any{}

	if v := update.RowStatus; v != nil {
		set, args = append(set, "row_status = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Name; v != nil {
		set, args = append(set, "name = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Quantity; v != nil {
		set, args = append(set, "quantity = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Category; v != nil {
		set, args = append(set, "category = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Purchased; v != nil {
		set, args = append(set, "purchased = "+placeholder(len(args)+1)), append(args, *v)
	}

	if len(set) == 0 {
		return nil
	}

	set, args = append(set, "updated_ts = "+placeholder(len(args)+1)), append(args, time.Now().Unix())
	args = append(args, update.ID)

	stmt := `UPDATE shopping_item SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to update shopping item: %w", err)
	}

	return nil
}

func (d *DB) DeleteShoppingItem(ctx context.Context, delete *store.DeleteShoppingItem) error {
	stmt := `DELETE FROM shopping_item WHERE id = ` + placeholder(1)
	result, err := d.db.ExecContext(ctx, stmt, delete.ID)
	if err != nil {
		return fmt.Errorf("failed to delete shopping item: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("shopping item not found")
	}

	return nil
}
