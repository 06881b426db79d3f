package models

// All lists every table the remote backend owns, in migration order.
func All() []interface{} {
	return []interface{}{
		&Profile{},
		&Asset{},
		&Order{},
		&Portfolio{},
		&Holding{},
		&Transaction{},
		&Watchlist{},
		&WatchlistItem{},
		&TokenSale{},
		&TokenAllocation{},
		&TokenPurchase{},
	}
}
