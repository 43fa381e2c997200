package hyperliquid

import "github.com/goccy/go-json"

// Wire shapes for the /info endpoint. All numeric fields arrive as strings
// and are converted to decimals at the service layer.

type AssetMeta struct {
	Name         string `json:"name"`
	SzDecimals   int32  `json:"szDecimals"`
	MaxLeverage  int32  `json:"maxLeverage"`
	OnlyIsolated bool   `json:"onlyIsolated"`
}

type Meta struct {
	Universe []AssetMeta `json:"universe"`
}

type BookLevel struct {
	Px string `json:"px"`
	Sz string `json:"sz"`
	N  int    `json:"n"`
}

// L2Book levels: index 0 bids, index 1 asks.
type L2Book struct {
	Coin   string         `json:"coin"`
	Levels [2][]BookLevel `json:"levels"`
	Time   int64          `json:"time"`
}

type CandleBar struct {
	OpenTime  int64  `json:"t"`
	CloseTime int64  `json:"T"`
	Symbol    string `json:"s"`
	Interval  string `json:"i"`
	Open      string `json:"o"`
	Close     string `json:"c"`
	High      string `json:"h"`
	Low       string `json:"l"`
	Volume    string `json:"v"`
	Trades    int64  `json:"n"`
}

type MarginSummary struct {
	AccountValue   string `json:"accountValue"`
	TotalNtlPos    string `json:"totalNtlPos"`
	TotalRawUsd    string `json:"totalRawUsd"`
	TotalMarginUsd string `json:"totalMarginUsed"`
}

type LeverageInfo struct {
	Type  string      `json:"type"`
	Value json.Number `json:"value"`
}

type RawPosition struct {
	Coin           string       `json:"coin"`
	Szi            string       `json:"szi"`
	EntryPx        *string      `json:"entryPx"`
	PositionValue  string       `json:"positionValue"`
	UnrealizedPnl  string       `json:"unrealizedPnl"`
	MarginUsed     string       `json:"marginUsed"`
	LiquidationPx  *string      `json:"liquidationPx"`
	Leverage       LeverageInfo `json:"leverage"`
	MaxTradeSzs    []string     `json:"maxTradeSzs"`
	ReturnOnEquity string       `json:"returnOnEquity"`
}

type AssetPosition struct {
	Type     string      `json:"type"`
	Position RawPosition `json:"position"`
}

type ClearinghouseState struct {
	MarginSummary      MarginSummary   `json:"marginSummary"`
	CrossMarginSummary MarginSummary   `json:"crossMarginSummary"`
	Withdrawable       string          `json:"withdrawable"`
	AssetPositions     []AssetPosition `json:"assetPositions"`
	Time               int64           `json:"time"`
}

type RawOpenOrder struct {
	Coin      string `json:"coin"`
	Side      string `json:"side"` // "B" or "A"
	LimitPx   string `json:"limitPx"`
	Sz        string `json:"sz"`
	Oid       int64  `json:"oid"`
	Timestamp int64  `json:"timestamp"`
}

type RawFill struct {
	Coin      string `json:"coin"`
	Side      string `json:"side"`
	Px        string `json:"px"`
	Sz        string `json:"sz"`
	Fee       string `json:"fee"`
	ClosedPnl string `json:"closedPnl"`
	Oid       int64  `json:"oid"`
	Time      int64  `json:"time"`
	Crossed   bool   `json:"crossed"`
	Hash      string `json:"hash"`
}

// Wire shapes for /exchange responses.

type FilledStatus struct {
	Oid     int64  `json:"oid"`
	TotalSz string `json:"totalSz"`
	AvgPx   string `json:"avgPx"`
}

type RestingStatus struct {
	Oid int64 `json:"oid"`
}

type OrderStatus struct {
	Filled  *FilledStatus  `json:"filled,omitempty"`
	Resting *RestingStatus `json:"resting,omitempty"`
	Error   string         `json:"error,omitempty"`
}

type exchangeResponseData struct {
	Statuses []OrderStatus `json:"statuses"`
}

type exchangeResponseInner struct {
	Type string               `json:"type"`
	Data exchangeResponseData `json:"data"`
}

type ExchangeResponse struct {
	Status   string                `json:"status"`
	Response exchangeResponseInner `json:"response"`
}

func (r *ExchangeResponse) OK() bool {
	return r.Status == "ok"
}

func (r *ExchangeResponse) Statuses() []OrderStatus {
	return r.Response.Data.Statuses
}
