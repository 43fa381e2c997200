package entity

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// TradeRecord is one journaled execution persisted by the ledger worker.
type TradeRecord struct {
	ID           string           `db:"id" json:"id"`
	RequestID    string           `db:"request_id" json:"request_id"`
	Account      string           `db:"account" json:"account"`
	Symbol       string           `db:"symbol" json:"symbol"`
	Side         OrderSide        `db:"side" json:"side"`
	Type         OrderType        `db:"type" json:"type"`
	Size         decimal.Decimal  `db:"size" json:"size"`
	Price        *decimal.Decimal `db:"price" json:"price"`
	FilledSize   decimal.Decimal  `db:"filled_size" json:"filled_size"`
	AvgFillPrice *decimal.Decimal `db:"avg_fill_price" json:"avg_fill_price"`
	OrderID      sql.NullString   `db:"order_id" json:"order_id"`
	Status       string           `db:"status" json:"status"`
	PlacedAt     time.Time        `db:"placed_at" json:"placed_at"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
}

func (t TradeRecord) TableName() string {
	return "trade_records"
}

// FillEvent wraps a TradeRecord for the ledger stream with a retry counter,
// bounded by the jetstream max_retries config.
type FillEvent struct {
	RetryCount int         `json:"retry"`
	Data       TradeRecord `json:"data"`
}
