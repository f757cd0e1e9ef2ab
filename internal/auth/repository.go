package auth

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stocktree-app/stocktree/internal/shared"
)

// Repository provides account lookup.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	const query = `
		SELECT id, email, name, password_hash, is_active, created_at
		FROM users WHERE lower(email) = lower($1)`
	var u User
	err := r.pool.QueryRow(ctx, query, email).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.IsActive, &u.CreatedAt)
	if err != nil {
		return nil, shared.MapDBError(err)
	}
	return &u, nil
}
