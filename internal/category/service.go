package category

import (
	"context"
	"errors"
)

// Service applies business rules on top of the repository.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns a single category.
func (s *Service) Get(ctx context.Context, id int64) (Category, error) {
	if id <= 0 {
		return Category{}, errors.New("invalid category ID")
	}
	return s.repo.Get(ctx, id)
}

// List returns all categories ordered by name.
func (s *Service) List(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx)
}

// Create persists a new category.
func (s *Service) Create(ctx context.Context, c Category) (Category, error) {
	return s.repo.Create(ctx, c)
}

// Update rewrites an existing category.
func (s *Service) Update(ctx context.Context, id int64, c Category) error {
	if id <= 0 {
		return errors.New("invalid category ID")
	}
	if c.ParentID != nil && *c.ParentID == id {
		return errors.New("category cannot be its own parent")
	}
	return s.repo.Update(ctx, id, c)
}

// Delete removes a category.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return errors.New("invalid category ID")
	}
	return s.repo.Delete(ctx, id)
}
