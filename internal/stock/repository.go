package stock

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stocktree-app/stocktree/internal/shared"
)

// Repository provides persistence for stock items.
type Repository interface {
	Get(ctx context.Context, id int64) (Item, error)
	ListByPart(ctx context.Context, partID int64) ([]Item, error)
	Create(ctx context.Context, item Item) (Item, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Get(ctx context.Context, id int64) (Item, error) {
	const query = `
		SELECT id, uuid, part_id, quantity, location, created_at, updated_at
		FROM stock_items WHERE id = $1`
	var item Item
	err := r.pool.QueryRow(ctx, query, id).Scan(&item.ID, &item.UUID, &item.PartID, &item.Quantity, &item.Location, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return Item{}, shared.MapDBError(err)
	}
	return item, nil
}

func (r *repository) ListByPart(ctx context.Context, partID int64) ([]Item, error) {
	const query = `
		SELECT id, uuid, part_id, quantity, location, created_at, updated_at
		FROM stock_items WHERE part_id = $1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, partID)
	if err != nil {
		return nil, shared.MapDBError(err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.UUID, &item.PartID, &item.Quantity, &item.Location, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, shared.MapDBError(err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *repository) Create(ctx context.Context, item Item) (Item, error) {
	if item.UUID == uuid.Nil {
		item.UUID = uuid.New()
	}
	const query = `
		INSERT INTO stock_items (uuid, part_id, quantity, location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query, item.UUID, item.PartID, item.Quantity, item.Location).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return Item{}, shared.MapDBError(err)
	}
	return item, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM stock_items WHERE id = $1`, id)
	if err != nil {
		return shared.MapDBError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
