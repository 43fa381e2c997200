package entity

import "github.com/shopspring/decimal"

type OrderSide string
type OrderType string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"

	OrderTypeMarket     OrderType = "MARKET"
	OrderTypeLimit      OrderType = "LIMIT"
	OrderTypeStopLoss   OrderType = "STOP_LOSS"
	OrderTypeTakeProfit OrderType = "TAKE_PROFIT"
)

// OrderResult is the outcome of an accepted order submission. A rejected or
// failed submission is reported as an error, never as a partially populated
// result.
type OrderResult struct {
	OrderID    int64           `json:"order_id"`
	Status     string          `json:"status"` // "filled" or "resting"
	FilledSize decimal.Decimal `json:"filled_size"`
	AvgPrice   decimal.Decimal `json:"avg_price"`
}

func (r OrderResult) Filled() bool {
	return r.Status == "filled"
}

// OpenOrder is a resting order snapshot read from the exchange.
type OpenOrder struct {
	OrderID   int64           `json:"order_id"`
	Symbol    string          `json:"symbol"`
	Side      OrderSide       `json:"side"`
	Size      decimal.Decimal `json:"size"`
	Price     decimal.Decimal `json:"price"`
	Timestamp int64           `json:"timestamp"`
}
