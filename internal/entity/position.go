package entity

import "github.com/shopspring/decimal"

// Position is a snapshot of one open perpetual position. Size is signed:
// positive long, negative short.
type Position struct {
	Symbol           string           `json:"symbol"`
	Size             decimal.Decimal  `json:"size"`
	EntryPrice       decimal.Decimal  `json:"entry_price"`
	UnrealizedPnl    decimal.Decimal  `json:"unrealized_pnl"`
	MarginUsed       decimal.Decimal  `json:"margin_used"`
	Leverage         int32            `json:"leverage"`
	LiquidationPrice *decimal.Decimal `json:"liquidation_price,omitempty"`
}

func (p Position) IsLong() bool {
	return p.Size.IsPositive()
}

// Balance is the account margin summary.
type Balance struct {
	Equity        decimal.Decimal `json:"equity"`
	Withdrawable  decimal.Decimal `json:"withdrawable"`
	MarginUsed    decimal.Decimal `json:"margin_used"`
	UnrealizedPnl decimal.Decimal `json:"unrealized_pnl"`
}

// Fill is one historical trade execution.
type Fill struct {
	Symbol    string          `json:"symbol"`
	Side      OrderSide       `json:"side"`
	Size      decimal.Decimal `json:"size"`
	Price     decimal.Decimal `json:"price"`
	Fee       decimal.Decimal `json:"fee"`
	OrderID   int64           `json:"order_id"`
	Timestamp int64           `json:"timestamp"`
}
