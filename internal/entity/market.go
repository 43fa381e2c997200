package entity

import "github.com/shopspring/decimal"

// MarketInfo describes one tradable perpetual market from the exchange
// metadata catalog.
type MarketInfo struct {
	Name         string `json:"name"`
	SzDecimals   int32  `json:"szDecimals"`
	MaxLeverage  int32  `json:"maxLeverage"`
	OnlyIsolated bool   `json:"onlyIsolated,omitempty"`
}

// PriceLevel is one side entry of an L2 orderbook snapshot.
type PriceLevel struct {
	Price decimal.Decimal `json:"price"`
	Size  decimal.Decimal `json:"size"`
}

// Orderbook is a depth-limited L2 snapshot for a single market.
type Orderbook struct {
	Symbol string       `json:"symbol"`
	Bids   []PriceLevel `json:"bids"`
	Asks   []PriceLevel `json:"asks"`
	Time   int64        `json:"time"`
}

// Candle is a single OHLCV bar.
type Candle struct {
	Timestamp int64           `json:"timestamp"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Volume    decimal.Decimal `json:"volume"`
}
