package stock

import (
	"context"
	"encoding/json"
)

// QRPayload resolves the opaque string encoded into a stock item's QR label.
// The payload identifies the item by its UUID so labels survive database
// reassignments; rendering the actual QR image is a template concern.
func QRPayload(ctx context.Context, repo Repository, id int64) (string, error) {
	item, err := repo.Get(ctx, id)
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(map[string]any{
		"tool": "stocktree",
		"type": "stockitem",
		"uuid": item.UUID.String(),
	})
	if err != nil {
		return "", err
	}
	return string(payload), nil
}
