package part

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stocktree-app/stocktree/internal/shared"
)

const partColumns = `p.id, p.name, p.ipn, p.description, p.notes, p.category_id, p.link,
	p.minimum_stock, p.purchaseable, p.buildable, p.active, p.created_at, p.updated_at`

// Repository provides persistence for parts and the starred-parts relation.
type Repository interface {
	Get(ctx context.Context, id int64) (Part, error)
	// ListByFlag returns parts with the given capability flag set, each
	// with its aggregate stock quantity.
	ListByFlag(ctx context.Context, flag Flag) ([]WithStock, error)
	// ListStarred returns the parts a user has starred, ordered by name.
	ListStarred(ctx context.Context, userID int64) ([]Part, error)
	Create(ctx context.Context, p Part) (Part, error)
	Update(ctx context.Context, id int64, p Part) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Get(ctx context.Context, id int64) (Part, error) {
	query := fmt.Sprintf(`SELECT %s FROM parts p WHERE p.id = $1`, partColumns)
	var p Part
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.IPN, &p.Description, &p.Notes, &p.CategoryID, &p.Link,
		&p.MinimumStock, &p.Purchaseable, &p.Buildable, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return Part{}, shared.MapDBError(err)
	}
	return p, nil
}

// listByFlagQuery builds the worklist statement for a capability flag. The
// flag column is the only filter: inactive parts still belong on the order
// and build lists when their stock runs low.
func listByFlagQuery(flag Flag) (string, error) {
	// The flag maps to a fixed column name; never interpolate caller input.
	var column string
	switch flag {
	case FlagPurchaseable:
		column = "p.purchaseable"
	case FlagBuildable:
		column = "p.buildable"
	default:
		return "", fmt.Errorf("part: unknown flag %q", flag)
	}

	return fmt.Sprintf(`
		SELECT %s, COALESCE(SUM(si.quantity), 0) AS in_stock
		FROM parts p
		LEFT JOIN stock_items si ON si.part_id = p.id
		WHERE %s
		GROUP BY p.id
		ORDER BY p.name`, partColumns, column), nil
}

func (r *repository) ListByFlag(ctx context.Context, flag Flag) ([]WithStock, error) {
	query, err := listByFlagQuery(flag)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, shared.MapDBError(err)
	}
	defer rows.Close()

	var parts []WithStock
	for rows.Next() {
		var p WithStock
		if err := rows.Scan(
			&p.ID, &p.Name, &p.IPN, &p.Description, &p.Notes, &p.CategoryID, &p.Link,
			&p.MinimumStock, &p.Purchaseable, &p.Buildable, &p.Active, &p.CreatedAt, &p.UpdatedAt,
			&p.InStock,
		); err != nil {
			return nil, shared.MapDBError(err)
		}
		parts = append(parts, p)
	}
	return parts, rows.Err()
}

func (r *repository) ListStarred(ctx context.Context, userID int64) ([]Part, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM parts p
		JOIN part_stars ps ON ps.part_id = p.id
		WHERE ps.user_id = $1
		ORDER BY p.name`, partColumns)

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, shared.MapDBError(err)
	}
	defer rows.Close()

	var parts []Part
	for rows.Next() {
		var p Part
		if err := rows.Scan(
			&p.ID, &p.Name, &p.IPN, &p.Description, &p.Notes, &p.CategoryID, &p.Link,
			&p.MinimumStock, &p.Purchaseable, &p.Buildable, &p.Active, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, shared.MapDBError(err)
		}
		parts = append(parts, p)
	}
	return parts, rows.Err()
}

func (r *repository) Create(ctx context.Context, p Part) (Part, error) {
	const query = `
		INSERT INTO parts (name, ipn, description, notes, category_id, link,
			minimum_stock, purchaseable, buildable, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
		RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		p.Name, p.IPN, p.Description, p.Notes, p.CategoryID, p.Link,
		p.MinimumStock, p.Purchaseable, p.Buildable, p.Active,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Part{}, shared.MapDBError(err)
	}
	return p, nil
}

func (r *repository) Update(ctx context.Context, id int64, p Part) error {
	const query = `
		UPDATE parts
		SET name = $2, ipn = $3, description = $4, notes = $5, category_id = $6,
			link = $7, minimum_stock = $8, purchaseable = $9, buildable = $10,
			active = $11, updated_at = now()
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id,
		p.Name, p.IPN, p.Description, p.Notes, p.CategoryID, p.Link,
		p.MinimumStock, p.Purchaseable, p.Buildable, p.Active,
	)
	if err != nil {
		return shared.MapDBError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM parts WHERE id = $1`, id)
	if err != nil {
		return shared.MapDBError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
