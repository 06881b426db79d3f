package models

import (
	"time"

	"github.com/volatiletech/null"

	"github.com/zsmartex/tradedesk/controllers/entities"
)

// Wallet is a token-sale wallet connection, kept in the local store.
// Addresses are simulated.
type Wallet struct {
	UserID         string    `json:"user_id"`
	Address        string    `json:"address"`
	Network        string    `json:"network"`
	ConnectedAt    time.Time `json:"connected_at"`
	DisconnectedAt null.Time `json:"disconnected_at"`
}

func (w *Wallet) IsConnected() bool {
	return w != nil && !w.DisconnectedAt.Valid
}

func (w *Wallet) ToJSON() entities.WalletEntity {
	if w == nil {
		return entities.WalletEntity{}
	}

	return entities.WalletEntity{
		Address:     w.Address,
		Network:     w.Network,
		Connected:   w.IsConnected(),
		ConnectedAt: w.ConnectedAt,
	}
}
