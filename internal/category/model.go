package category

import (
	"fmt"
	"time"
)

// Category is a node in the part category tree. ParentID is nil for
// top-level categories.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ParentID    *int64    `json:"parent_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CanonicalURL returns the stable link for a category.
func CanonicalURL(id int64) string {
	return fmt.Sprintf("/part/category/%d/", id)
}
