package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zsmartex/tradedesk/controllers/entities"
)

type Watchlist struct {
	ID        string          `json:"id" gorm:"primaryKey"`
	UserID    string          `json:"user_id" gorm:"index"`
	Name      string          `json:"name"`
	Items     []WatchlistItem `json:"items" gorm:"foreignKey:WatchlistID"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type WatchlistItem struct {
	ID          uint64    `json:"id" gorm:"primaryKey"`
	WatchlistID string    `json:"watchlist_id" gorm:"uniqueIndex:idx_watchlist_asset"`
	AssetID     string    `json:"asset_id" gorm:"uniqueIndex:idx_watchlist_asset"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
}

func (w *Watchlist) BeforeCreate(tx *gorm.DB) error {
	if len(w.ID) == 0 {
		w.ID = uuid.NewString()
	}

	return nil
}

func (w *Watchlist) AssetIDs() []string {
	ids := make([]string, 0, len(w.Items))
	for _, item := range w.Items {
		ids = append(ids, item.AssetID)
	}

	return ids
}

func (w *Watchlist) Contains(assetID string) bool {
	for _, item := range w.Items {
		if item.AssetID == assetID {
			return true
		}
	}

	return false
}

func (w *Watchlist) Clone() *Watchlist {
	c := *w
	c.Items = append([]WatchlistItem(nil), w.Items...)
	return &c
}

func (w *Watchlist) ToJSON() entities.WatchlistEntity {
	return entities.WatchlistEntity{
		ID:        w.ID,
		Name:      w.Name,
		AssetIDs:  w.AssetIDs(),
		UpdatedAt: w.UpdatedAt,
	}
}
