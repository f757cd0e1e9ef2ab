package part

import (
	"fmt"
	"time"
)

// Part is a catalog entry: something that can be bought, built and stocked.
type Part struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	IPN         string `json:"ipn"` // internal part number
	Description string `json:"description"`
	// Notes holds user-supplied rich text, sanitized before persistence.
	Notes      string `json:"notes"`
	CategoryID *int64 `json:"category_id"`
	// Link points at an external datasheet or supplier page.
	Link         string    `json:"link"`
	MinimumStock float64   `json:"minimum_stock"`
	Purchaseable bool      `json:"purchaseable"`
	Buildable    bool      `json:"buildable"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// WithStock pairs a part with its aggregate stock quantity.
type WithStock struct {
	Part
	InStock float64 `json:"in_stock"`
}

// NeedsRestock reports whether current stock sits below the configured
// minimum. Parts without a minimum never need restocking.
func (p WithStock) NeedsRestock() bool {
	return p.MinimumStock > 0 && p.InStock < p.MinimumStock
}

// CanonicalURL returns the stable link for a part.
func CanonicalURL(id int64) string {
	return fmt.Sprintf("/part/%d/", id)
}

// Flag selects a boolean capability column for list queries.
type Flag string

const (
	// FlagPurchaseable selects parts that can be ordered from suppliers.
	FlagPurchaseable Flag = "purchaseable"
	// FlagBuildable selects parts that can be assembled internally.
	FlagBuildable Flag = "buildable"
)
