package entity

import "errors"

// Error kinds surfaced by the trading client. Callers branch with errors.Is;
// wrapped messages carry the exchange detail.
var (
	ErrConfiguration      = errors.New("invalid client configuration")
	ErrUnknownMarket      = errors.New("unknown market")
	ErrInvalidParameter   = errors.New("invalid parameter")
	ErrInsufficientMargin = errors.New("insufficient margin")
	ErrNetwork            = errors.New("exchange network failure")
	ErrNoPosition         = errors.New("no open position")
)
