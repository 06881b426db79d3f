package entities

import "time"

type WatchlistEntity struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	AssetIDs  []string  `json:"asset_ids"`
	UpdatedAt time.Time `json:"updated_at"`
}
