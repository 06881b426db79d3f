package types

type AssetClass = string

var (
	AssetClassAll    AssetClass = "all"
	AssetClassCrypto AssetClass = "crypto"
	AssetClassStock  AssetClass = "stock"
	AssetClassETF    AssetClass = "etf"
)

func ValidAssetClass(class AssetClass) bool {
	switch class {
	case "", AssetClassAll, AssetClassCrypto, AssetClassStock, AssetClassETF:
		return true
	}

	return false
}

type OrderSide = string

var (
	SideBuy  OrderSide = "buy"
	SideSell OrderSide = "sell"
)

type OrderType = string

var (
	TypeMarket     OrderType = "market"
	TypeLimit      OrderType = "limit"
	TypeStopLoss   OrderType = "stop_loss"
	TypeTakeProfit OrderType = "take_profit"
	TypeStopLimit  OrderType = "stop_limit"
)

var OrderTypes = []OrderType{TypeMarket, TypeLimit, TypeStopLoss, TypeTakeProfit, TypeStopLimit}

// NeedsPrice reports whether orders of this type carry a limit price.
func NeedsPrice(t OrderType) bool {
	return t == TypeLimit || t == TypeStopLimit
}

// NeedsStopPrice reports whether orders of this type carry a trigger price.
func NeedsStopPrice(t OrderType) bool {
	return t == TypeStopLoss || t == TypeTakeProfit || t == TypeStopLimit
}

type TimeInForce = string

var (
	TimeInForceGTC TimeInForce = "GTC"
	TimeInForceIOC TimeInForce = "IOC"
	TimeInForceFOK TimeInForce = "FOK"
)

var TimeInForces = []TimeInForce{TimeInForceGTC, TimeInForceIOC, TimeInForceFOK}

type OrderStatus = string

var (
	StatusPending         OrderStatus = "pending"
	StatusPartiallyFilled OrderStatus = "partially_filled"
	StatusFilled          OrderStatus = "filled"
	StatusCancelled       OrderStatus = "cancelled"
	StatusRejected        OrderStatus = "rejected"
	StatusExpired         OrderStatus = "expired"
)

type TransactionType = string

var (
	TransactionBuy        TransactionType = "buy"
	TransactionSell       TransactionType = "sell"
	TransactionDeposit    TransactionType = "deposit"
	TransactionWithdrawal TransactionType = "withdrawal"
)

type OrderBy = string

var (
	OrderByAsc  OrderBy = "asc"
	OrderByDesc OrderBy = "desc"
)

type SaleState = string

var (
	SaleStateEnabled  SaleState = "enabled"
	SaleStateDisabled SaleState = "disabled"
)

type PurchaseState = string

var (
	PurchaseStatePending   PurchaseState = "pending"
	PurchaseStateConfirmed PurchaseState = "confirmed"
)
