package part

import (
	"context"
	"errors"
	"strconv"

	"github.com/microcosm-cc/bluemonday"
)

// Service applies business rules on top of the repository.
type Service struct {
	repo      Repository
	sanitizer *bluemonday.Policy
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		// Notes accept limited user-supplied HTML; strip everything else
		// before it is stored and later re-rendered into fragments.
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// Get returns a single part.
func (s *Service) Get(ctx context.Context, id int64) (Part, error) {
	if id <= 0 {
		return Part{}, errors.New("invalid part ID")
	}
	return s.repo.Get(ctx, id)
}

// Create persists a new part.
func (s *Service) Create(ctx context.Context, p Part) (Part, error) {
	p.Notes = s.sanitizer.Sanitize(p.Notes)
	return s.repo.Create(ctx, p)
}

// Update rewrites an existing part.
func (s *Service) Update(ctx context.Context, id int64, p Part) error {
	if id <= 0 {
		return errors.New("invalid part ID")
	}
	p.Notes = s.sanitizer.Sanitize(p.Notes)
	return s.repo.Update(ctx, id, p)
}

// Delete removes a part.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return errors.New("invalid part ID")
	}
	return s.repo.Delete(ctx, id)
}

// ToOrder returns purchaseable parts whose stock sits below their minimum.
// The restock predicate runs per record in application code; acceptable at
// catalog scale, revisit if part counts grow past a few thousand.
func (s *Service) ToOrder(ctx context.Context) ([]WithStock, error) {
	return s.listNeedingRestock(ctx, FlagPurchaseable)
}

// ToBuild returns buildable parts whose stock sits below their minimum.
func (s *Service) ToBuild(ctx context.Context) ([]WithStock, error) {
	return s.listNeedingRestock(ctx, FlagBuildable)
}

func (s *Service) listNeedingRestock(ctx context.Context, flag Flag) ([]WithStock, error) {
	candidates, err := s.repo.ListByFlag(ctx, flag)
	if err != nil {
		return nil, err
	}
	needed := make([]WithStock, 0, len(candidates))
	for _, p := range candidates {
		if p.NeedsRestock() {
			needed = append(needed, p)
		}
	}
	return needed, nil
}

// Starred returns the parts starred by the session user. The user ID comes
// from the session store as a string; a missing or malformed ID yields an
// empty list, not an error.
func (s *Service) Starred(ctx context.Context, sessionUserID string) ([]Part, error) {
	if sessionUserID == "" {
		return nil, nil
	}
	userID, err := strconv.ParseInt(sessionUserID, 10, 64)
	if err != nil {
		return nil, nil
	}
	return s.repo.ListStarred(ctx, userID)
}
