package stock

import (
	"time"

	"github.com/google/uuid"
)

// Item is a physical quantity of a part held at a location. The UUID is the
// stable identifier encoded into QR labels; database IDs never leave the
// building on printed media.
type Item struct {
	ID        int64     `json:"id"`
	UUID      uuid.UUID `json:"uuid"`
	PartID    int64     `json:"part_id"`
	Quantity  float64   `json:"quantity"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
