package mock_service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zsmartex/tradedesk/models"
	"github.com/zsmartex/tradedesk/types"
)

// DemoUserID owns the records in the static data set.
const DemoUserID = "demo-user-id"

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func nd(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(d(s))
}

func SeedAssets(now time.Time) []*models.Asset {
	asset := func(id, symbol, name string, class types.AssetClass, price, change, volume, cap string, pricePrecision int32) *models.Asset {
		return &models.Asset{
			ID:              id,
			Symbol:          symbol,
			Name:            name,
			AssetClass:      class,
			Price:           d(price),
			Change24h:       d(change),
			Volume24h:       d(volume),
			MarketCap:       d(cap),
			PricePrecision:  pricePrecision,
			AmountPrecision: 8,
			UpdatedAt:       now,
		}
	}

	return []*models.Asset{
		asset("1", "BTC", "Bitcoin", types.AssetClassCrypto, "43250.00", "2.45", "28500000000", "847000000000", 2),
		asset("2", "ETH", "Ethereum", types.AssetClassCrypto, "2580.50", "1.85", "15200000000", "310000000000", 2),
		asset("3", "USDT", "Tether", types.AssetClassCrypto, "1.00", "0.01", "45000000000", "95000000000", 4),
		asset("4", "AAPL", "Apple Inc.", types.AssetClassStock, "185.25", "-0.75", "52000000", "2890000000000", 2),
		asset("5", "TSLA", "Tesla Inc.", types.AssetClassStock, "242.80", "3.20", "98000000", "772000000000", 2),
	}
}

// SeedOrders returns the demo user's order history, oldest first.
func SeedOrders(userID string, now time.Time) []*models.Order {
	order := func(asset, symbol string, orderType types.OrderType, side types.OrderSide, amount string, price decimal.NullDecimal, status types.OrderStatus, filled string, avg decimal.NullDecimal, age time.Duration) *models.Order {
		created := now.Add(-age)
		return &models.Order{
			ID:               uuid.New(),
			UserID:           userID,
			AssetID:          asset,
			Symbol:           symbol,
			OrderType:        orderType,
			Side:             side,
			Amount:           d(amount),
			Price:            price,
			TimeInForce:      types.TimeInForceGTC,
			Status:           status,
			FilledAmount:     d(filled),
			AverageFillPrice: avg,
			CreatedAt:        created,
			UpdatedAt:        created,
		}
	}

	return []*models.Order{
		order("1", "BTC", types.TypeLimit, types.SideBuy, "0.5", nd("42000"), types.StatusFilled, "0.5", nd("42000"), 96*time.Hour),
		order("2", "ETH", types.TypeMarket, types.SideBuy, "5", decimal.NullDecimal{}, types.StatusFilled, "5", nd("2400"), 72*time.Hour),
		order("4", "AAPL", types.TypeLimit, types.SideBuy, "10", nd("180"), types.StatusFilled, "10", nd("180"), 48*time.Hour),
		order("5", "TSLA", types.TypeLimit, types.SideBuy, "4", nd("230"), types.StatusCancelled, "0", decimal.NullDecimal{}, 24*time.Hour),
		order("2", "ETH", types.TypeLimit, types.SideSell, "2", nd("2700"), types.StatusPartiallyFilled, "0.5", nd("2700"), 6*time.Hour),
	}
}

func SeedPortfolios(userID string, now time.Time) ([]*models.Portfolio, []*models.Holding) {
	portfolioID := userID + ":main"

	portfolios := []*models.Portfolio{
		{
			ID:               portfolioID,
			UserID:           userID,
			Name:             "Main Portfolio",
			CashBalance:      d("10000"),
			AvailableBalance: d("8500"),
			CreatedAt:        now.Add(-30 * 24 * time.Hour),
			UpdatedAt:        now,
		},
	}

	holdings := []*models.Holding{
		{ID: 1, PortfolioID: portfolioID, AssetID: "1", Symbol: "BTC", Quantity: d("0.5"), AverageCost: d("42000")},
		{ID: 2, PortfolioID: portfolioID, AssetID: "2", Symbol: "ETH", Quantity: d("5"), AverageCost: d("2400")},
		{ID: 3, PortfolioID: portfolioID, AssetID: "4", Symbol: "AAPL", Quantity: d("10"), AverageCost: d("180")},
	}

	return portfolios, holdings
}

// SeedTransactions returns the demo user's transactions, newest first.
func SeedTransactions(userID string, now time.Time) []*models.Transaction {
	tx := func(id, asset, symbol string, kind types.TransactionType, amount, price, fee string, age time.Duration) *models.Transaction {
		return &models.Transaction{
			ID:        userID + ":tx-" + id,
			UserID:    userID,
			AssetID:   asset,
			Symbol:    symbol,
			Type:      kind,
			Amount:    d(amount),
			Price:     d(price),
			Fee:       d(fee),
			Status:    "completed",
			CreatedAt: now.Add(-age),
		}
	}

	return []*models.Transaction{
		tx("5", "2", "ETH", types.TransactionSell, "0.5", "2700", "1.35", 5*time.Hour),
		tx("4", "4", "AAPL", types.TransactionBuy, "10", "180", "1.80", 48*time.Hour),
		tx("3", "2", "ETH", types.TransactionBuy, "5", "2400", "12.00", 72*time.Hour),
		tx("2", "1", "BTC", types.TransactionBuy, "0.5", "42000", "21.00", 96*time.Hour),
		tx("1", "3", "USDT", types.TransactionDeposit, "50000", "1", "0", 120*time.Hour),
	}
}

func SeedWatchlists(userID string, now time.Time) []*models.Watchlist {
	items := make([]models.WatchlistItem, 0, 3)
	for i, assetID := range []string{"1", "2", "5"} {
		items = append(items, models.WatchlistItem{
			ID:          uint64(i + 1),
			WatchlistID: userID + ":favorites",
			AssetID:     assetID,
			Position:    i,
			CreatedAt:   now,
		})
	}

	return []*models.Watchlist{
		{
			ID:        userID + ":favorites",
			UserID:    userID,
			Name:      "Favorites",
			Items:     items,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

func SeedTokenSale(now time.Time) *models.TokenSale {
	allocations := []struct {
		category string
		percent  int64
	}{
		{"Public Sale", 40},
		{"Team", 15},
		{"Ecosystem", 20},
		{"Liquidity", 10},
		{"Marketing", 10},
		{"Reserve", 5},
	}

	sale := &models.TokenSale{
		ID:              1,
		Symbol:          "TDX",
		Name:            "TradeDesk Token",
		QuoteCurrency:   "USDT",
		Price:           d("0.05"),
		TotalSupply:     d("1000000000"),
		SaleSupply:      d("400000000"),
		SoldQuantity:    d("125000000"),
		MinContribution: d("10"),
		LimitPerUser:    d("10000"),
		State:           types.SaleStateEnabled,
		StartTime:       now.Add(-24 * time.Hour),
		EndTime:         now.Add(30 * 24 * time.Hour),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	for i, a := range allocations {
		sale.Allocations = append(sale.Allocations, models.TokenAllocation{
			ID:          uint64(i + 1),
			TokenSaleID: sale.ID,
			Category:    a.category,
			Percent:     decimal.NewFromInt(a.percent),
			Position:    i,
		})
	}

	return sale
}
