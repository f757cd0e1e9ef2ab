package category

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stocktree-app/stocktree/internal/platform/db"
	"github.com/stocktree-app/stocktree/internal/shared"
)

// CountedCategory pairs a category with its stock item count (the number of
// stock items whose part belongs directly to the category).
type CountedCategory struct {
	Category
	StockItemCount int
}

// Repository provides persistence for part categories.
type Repository interface {
	Get(ctx context.Context, id int64) (Category, error)
	List(ctx context.Context) ([]Category, error)
	// ListByParent returns categories with the given parent, counts
	// included. A nil parent selects the top-level categories.
	ListByParent(ctx context.Context, parentID *int64) ([]CountedCategory, error)
	Create(ctx context.Context, c Category) (Category, error)
	Update(ctx context.Context, id int64, c Category) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Get(ctx context.Context, id int64) (Category, error) {
	const query = `
		SELECT id, name, description, parent_id, created_at, updated_at
		FROM part_categories WHERE id = $1`
	var c Category
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.ParentID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return Category{}, shared.MapDBError(err)
	}
	return c, nil
}

func (r *repository) List(ctx context.Context) ([]Category, error) {
	const query = `
		SELECT id, name, description, parent_id, created_at, updated_at
		FROM part_categories ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, shared.MapDBError(err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.ParentID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, shared.MapDBError(err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *repository) ListByParent(ctx context.Context, parentID *int64) ([]CountedCategory, error) {
	query := `
		SELECT c.id, c.name, c.description, c.parent_id, c.created_at, c.updated_at,
		       COUNT(si.id) AS stock_item_count
		FROM part_categories c
		LEFT JOIN parts p ON p.category_id = c.id
		LEFT JOIN stock_items si ON si.part_id = p.id
		WHERE c.parent_id = $1
		GROUP BY c.id`
	args := []any{parentID}
	if parentID == nil {
		query = `
		SELECT c.id, c.name, c.description, c.parent_id, c.created_at, c.updated_at,
		       COUNT(si.id) AS stock_item_count
		FROM part_categories c
		LEFT JOIN parts p ON p.category_id = c.id
		LEFT JOIN stock_items si ON si.part_id = p.id
		WHERE c.parent_id IS NULL
		GROUP BY c.id`
		args = nil
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, shared.MapDBError(err)
	}
	defer rows.Close()

	var categories []CountedCategory
	for rows.Next() {
		var c CountedCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.ParentID, &c.CreatedAt, &c.UpdatedAt, &c.StockItemCount); err != nil {
			return nil, shared.MapDBError(err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *repository) Create(ctx context.Context, c Category) (Category, error) {
	const query = `
		INSERT INTO part_categories (name, description, parent_id, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query, c.Name, c.Description, c.ParentID).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return Category{}, shared.MapDBError(err)
	}
	return c, nil
}

func (r *repository) Update(ctx context.Context, id int64, c Category) error {
	const query = `
		UPDATE part_categories
		SET name = $2, description = $3, parent_id = $4, updated_at = now()
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, c.Name, c.Description, c.ParentID)
	if err != nil {
		return shared.MapDBError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a category. Child categories are reattached to the deleted
// node's parent so the tree never loses a subtree.
func (r *repository) Delete(ctx context.Context, id int64) error {
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			UPDATE part_categories
			SET parent_id = (SELECT parent_id FROM part_categories WHERE id = $1)
			WHERE parent_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM part_categories WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return shared.MapDBError(err)
	}
	return nil
}
