package category

import (
	"context"

	"github.com/stocktree-app/stocktree/internal/tree"
)

// treeSource adapts the repository to the tree serializer.
type treeSource struct {
	repo Repository
}

func (s treeSource) Roots(ctx context.Context) ([]tree.Item, error) {
	return s.list(ctx, nil)
}

func (s treeSource) Children(ctx context.Context, parentID int64) ([]tree.Item, error) {
	return s.list(ctx, &parentID)
}

func (s treeSource) list(ctx context.Context, parentID *int64) ([]tree.Item, error) {
	categories, err := s.repo.ListByParent(ctx, parentID)
	if err != nil {
		return nil, err
	}
	items := make([]tree.Item, 0, len(categories))
	for _, c := range categories {
		items = append(items, tree.Item{
			ID:             c.ID,
			Name:           c.Name,
			Href:           CanonicalURL(c.ID),
			StockItemCount: c.StockItemCount,
		})
	}
	return items, nil
}

// NewTreeSerializer builds the treeview serializer over the category
// hierarchy. The root node links to the category index page.
func NewTreeSerializer(repo Repository) *tree.Serializer {
	return tree.NewSerializer(treeSource{repo: repo}, "Parts", "/part/category/")
}
