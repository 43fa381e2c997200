package trading

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"
	"github.com/robinclaw/robinclaw/internal/config"
	"github.com/robinclaw/robinclaw/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// well-known throwaway key, never funded
const testPrivateKey = "0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"

type stubExchange struct {
	mids          map[string]string
	positions     []map[string]any
	openOrders    []map[string]any
	exchangeCalls int64
	exchangeResp  map[string]any
}

func newStubExchange() *stubExchange {
	return &stubExchange{
		mids: map[string]string{
			"BTC": "50000",
			"ETH": "3000",
		},
		exchangeResp: map[string]any{
			"status": "ok",
			"response": map[string]any{
				"type": "order",
				"data": map[string]any{
					"statuses": []map[string]any{
						{"filled": map[string]any{"oid": 77, "totalSz": "0.5", "avgPx": "50010.0"}},
					},
				},
			},
		},
	}
}

func (s *stubExchange) server(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/info", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var payload map[string]any
		require.NoError(t, json.Unmarshal(body, &payload))

		switch payload["type"] {
		case "allMids":
			writeJSON(t, w, s.mids)
		case "meta":
			writeJSON(t, w, map[string]any{
				"universe": []map[string]any{
					{"name": "BTC", "szDecimals": 5, "maxLeverage": 50},
					{"name": "ETH", "szDecimals": 4, "maxLeverage": 25},
				},
			})
		case "clearinghouseState":
			writeJSON(t, w, map[string]any{
				"marginSummary": map[string]any{
					"accountValue":   "10000.5",
					"totalNtlPos":    "5000",
					"totalRawUsd":    "10000.5",
					"totalMarginUsed": "250.25",
				},
				"withdrawable":   "9750.25",
				"assetPositions": s.positions,
				"time":           1700000000000,
			})
		case "openOrders":
			orders := s.openOrders
			if orders == nil {
				orders = []map[string]any{}
			}
			writeJSON(t, w, orders)
		default:
			t.Fatalf("unexpected info request type: %v", payload["type"])
		}
	})
	mux.HandleFunc("/exchange", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&s.exchangeCalls, 1)
		writeJSON(t, w, s.exchangeResp)
	})

	return httptest.NewServer(mux)
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func newTestService(t *testing.T, stub *stubExchange) *Service {
	t.Helper()

	srv := stub.server(t)
	t.Cleanup(srv.Close)

	svc, err := New(config.HyperliquidConfig{
		PrivateKey: testPrivateKey,
		BaseURL:    srv.URL,
	}, nil)
	require.NoError(t, err)

	return svc
}

func longPosition(coin, szi, entry string) map[string]any {
	return map[string]any{
		"type": "oneWay",
		"position": map[string]any{
			"coin":          coin,
			"szi":           szi,
			"entryPx":       entry,
			"positionValue": "5000",
			"unrealizedPnl": "120.5",
			"marginUsed":    "250.25",
			"liquidationPx": "40000",
			"leverage":      map[string]any{"type": "cross", "value": 10},
		},
	}
}

func TestNew_InvalidPrivateKey(t *testing.T) {
	_, err := New(config.HyperliquidConfig{PrivateKey: "not-a-key"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrConfiguration)
}

func TestGetPrices(t *testing.T) {
	svc := newTestService(t, newStubExchange())

	prices, err := svc.GetPrices(context.Background())
	require.NoError(t, err)
	assert.Len(t, prices, 2)
	assert.True(t, prices["BTC"].Equal(decimal.NewFromInt(50000)))
	assert.True(t, prices["ETH"].Equal(decimal.NewFromInt(3000)))
}

func TestGetPrice(t *testing.T) {
	svc := newTestService(t, newStubExchange())

	price, err := svc.GetPrice(context.Background(), "BTC")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(50000)))
}

func TestGetPrice_UnknownMarket(t *testing.T) {
	svc := newTestService(t, newStubExchange())

	_, err := svc.GetPrice(context.Background(), "DOGECOIN2X")
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrUnknownMarket)
}

func TestGetMarkets(t *testing.T) {
	svc := newTestService(t, newStubExchange())

	markets, err := svc.GetMarkets(context.Background())
	require.NoError(t, err)
	require.Len(t, markets, 2)
	assert.Equal(t, "BTC", markets[0].Name)
	assert.Equal(t, int32(5), markets[0].SzDecimals)
	assert.Equal(t, int32(50), markets[0].MaxLeverage)
}

func TestGetBalance(t *testing.T) {
	stub := newStubExchange()
	stub.positions = []map[string]any{longPosition("BTC", "0.1", "48000")}
	svc := newTestService(t, stub)

	balance, err := svc.GetBalance(context.Background())
	require.NoError(t, err)
	assert.True(t, balance.Equity.Equal(decimal.RequireFromString("10000.5")))
	assert.True(t, balance.Withdrawable.Equal(decimal.RequireFromString("9750.25")))
	assert.True(t, balance.UnrealizedPnl.Equal(decimal.RequireFromString("120.5")))
}

func TestGetPosition_Flat(t *testing.T) {
	svc := newTestService(t, newStubExchange())

	position, err := svc.GetPosition(context.Background(), "BTC")
	require.NoError(t, err)
	assert.Nil(t, position)
}

func TestGetPosition_Long(t *testing.T) {
	stub := newStubExchange()
	stub.positions = []map[string]any{longPosition("BTC", "0.1", "48000")}
	svc := newTestService(t, stub)

	position, err := svc.GetPosition(context.Background(), "BTC")
	require.NoError(t, err)
	require.NotNil(t, position)
	assert.True(t, position.IsLong())
	assert.True(t, position.Size.Equal(decimal.RequireFromString("0.1")))
	assert.True(t, position.EntryPrice.Equal(decimal.NewFromInt(48000)))
	assert.Equal(t, int32(10), position.Leverage)
	require.NotNil(t, position.LiquidationPrice)
	assert.True(t, position.LiquidationPrice.Equal(decimal.NewFromInt(40000)))
}

func TestSetLeverage_OutOfBounds(t *testing.T) {
	stub := newStubExchange()
	svc := newTestService(t, stub)

	err := svc.SetLeverage(context.Background(), "BTC", 0, true)
	assert.ErrorIs(t, err, entity.ErrInvalidParameter)

	err = svc.SetLeverage(context.Background(), "BTC", 51, true)
	assert.ErrorIs(t, err, entity.ErrInvalidParameter)

	assert.Zero(t, atomic.LoadInt64(&stub.exchangeCalls))
}

func TestSetLeverage(t *testing.T) {
	stub := newStubExchange()
	stub.exchangeResp = map[string]any{"status": "ok", "response": map[string]any{"type": "default"}}
	svc := newTestService(t, stub)

	err := svc.SetLeverage(context.Background(), "BTC", 10, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), atomic.LoadInt64(&stub.exchangeCalls))
}

func TestMarketBuy_Filled(t *testing.T) {
	stub := newStubExchange()
	svc := newTestService(t, stub)

	result, err := svc.MarketBuy(context.Background(), "BTC", decimal.RequireFromString("0.5"))
	require.NoError(t, err)
	assert.Equal(t, int64(77), result.OrderID)
	assert.True(t, result.Filled())
	assert.True(t, result.FilledSize.Equal(decimal.RequireFromString("0.5")))
	assert.True(t, result.AvgPrice.Equal(decimal.RequireFromString("50010")))
}

func TestMarketBuy_UnknownMarket(t *testing.T) {
	stub := newStubExchange()
	svc := newTestService(t, stub)

	_, err := svc.MarketBuy(context.Background(), "NOPE", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, entity.ErrUnknownMarket)
	assert.Zero(t, atomic.LoadInt64(&stub.exchangeCalls))
}

func TestMarketBuy_NonPositiveSize(t *testing.T) {
	stub := newStubExchange()
	svc := newTestService(t, stub)

	_, err := svc.MarketBuy(context.Background(), "BTC", decimal.Zero)
	assert.ErrorIs(t, err, entity.ErrInvalidParameter)
	assert.Zero(t, atomic.LoadInt64(&stub.exchangeCalls))
}

func TestMarketClose_NoPosition(t *testing.T) {
	stub := newStubExchange()
	svc := newTestService(t, stub)

	_, err := svc.MarketClose(context.Background(), "BTC")
	assert.ErrorIs(t, err, entity.ErrNoPosition)
	assert.Zero(t, atomic.LoadInt64(&stub.exchangeCalls))
}

func TestMarketClose(t *testing.T) {
	stub := newStubExchange()
	stub.positions = []map[string]any{longPosition("BTC", "0.5", "48000")}
	svc := newTestService(t, stub)

	result, err := svc.MarketClose(context.Background(), "BTC")
	require.NoError(t, err)
	assert.True(t, result.Filled())
	assert.Equal(t, int64(1), atomic.LoadInt64(&stub.exchangeCalls))
}

func TestStopLoss_WrongSide(t *testing.T) {
	stub := newStubExchange()
	stub.positions = []map[string]any{longPosition("BTC", "0.5", "48000")}
	svc := newTestService(t, stub)

	// mid is 50000; a long's stop must sit below it
	_, err := svc.StopLoss(context.Background(), "BTC", decimal.NewFromInt(55000), nil)
	assert.ErrorIs(t, err, entity.ErrInvalidParameter)
	assert.Zero(t, atomic.LoadInt64(&stub.exchangeCalls))
}

func TestStopLoss(t *testing.T) {
	stub := newStubExchange()
	stub.positions = []map[string]any{longPosition("BTC", "0.5", "48000")}
	stub.exchangeResp = map[string]any{
		"status": "ok",
		"response": map[string]any{
			"type": "order",
			"data": map[string]any{
				"statuses": []map[string]any{
					{"resting": map[string]any{"oid": 88}},
				},
			},
		},
	}
	svc := newTestService(t, stub)

	result, err := svc.StopLoss(context.Background(), "BTC", decimal.NewFromInt(45000), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(88), result.OrderID)
	assert.Equal(t, "resting", result.Status)
}

func TestTakeProfit_WrongSide(t *testing.T) {
	stub := newStubExchange()
	stub.positions = []map[string]any{longPosition("BTC", "0.5", "48000")}
	svc := newTestService(t, stub)

	_, err := svc.TakeProfit(context.Background(), "BTC", decimal.NewFromInt(45000), nil)
	assert.ErrorIs(t, err, entity.ErrInvalidParameter)
	assert.Zero(t, atomic.LoadInt64(&stub.exchangeCalls))
}

func TestStopLoss_NoPosition(t *testing.T) {
	stub := newStubExchange()
	svc := newTestService(t, stub)

	_, err := svc.StopLoss(context.Background(), "BTC", decimal.NewFromInt(45000), nil)
	assert.ErrorIs(t, err, entity.ErrNoPosition)
}

func TestCancelAllOrders(t *testing.T) {
	stub := newStubExchange()
	stub.openOrders = []map[string]any{
		{"coin": "BTC", "side": "B", "limitPx": "45000", "sz": "0.1", "oid": 1, "timestamp": 1700000000000},
		{"coin": "ETH", "side": "A", "limitPx": "3500", "sz": "2", "oid": 2, "timestamp": 1700000000001},
	}
	stub.exchangeResp = map[string]any{"status": "ok", "response": map[string]any{"type": "cancel"}}
	svc := newTestService(t, stub)

	cancelled, err := svc.CancelAllOrders(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 2, cancelled)
	assert.Equal(t, int64(2), atomic.LoadInt64(&stub.exchangeCalls))
}

func TestGetOpenOrders_FilterBySymbol(t *testing.T) {
	stub := newStubExchange()
	stub.openOrders = []map[string]any{
		{"coin": "BTC", "side": "B", "limitPx": "45000", "sz": "0.1", "oid": 1, "timestamp": 1700000000000},
		{"coin": "ETH", "side": "A", "limitPx": "3500", "sz": "2", "oid": 2, "timestamp": 1700000000001},
	}
	svc := newTestService(t, stub)

	orders, err := svc.GetOpenOrders(context.Background(), "ETH")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, entity.OrderSideSell, orders[0].Side)
	assert.Equal(t, int64(2), orders[0].OrderID)
}

func TestRoundPrice(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		szDecimals int32
		want       string
	}{
		{"five sig figs", "1234.5678", 0, "1234.6"},
		{"integer untouched", "50000", 5, "50000"},
		{"small price keeps decimals", "0.0123456", 0, "0.012346"},
		{"sz decimals clamp", "0.0123456", 4, "0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := roundPrice(decimal.RequireFromString(tt.in), tt.szDecimals)
			assert.Equal(t, tt.want, wireDecimal(got))
		})
	}
}

func TestWireDecimal(t *testing.T) {
	assert.Equal(t, "50000", wireDecimal(decimal.RequireFromString("50000.000")))
	assert.Equal(t, "0.5", wireDecimal(decimal.RequireFromString("0.500")))
	assert.Equal(t, "1", wireDecimal(decimal.RequireFromString("1.0")))
}

func TestRoundSize(t *testing.T) {
	got := roundSize(decimal.RequireFromString("0.123456789"), 5)
	assert.Equal(t, "0.12345", wireDecimal(got))
}
