package web

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/robinclaw/robinclaw/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTradingService struct {
	prices    map[string]decimal.Decimal
	markets   []entity.MarketInfo
	orderbook *entity.Orderbook
	candles   []entity.Candle
	err       error
}

func (s *stubTradingService) GetPrices(ctx context.Context) (map[string]decimal.Decimal, error) {
	return s.prices, s.err
}

func (s *stubTradingService) GetMarkets(ctx context.Context) ([]entity.MarketInfo, error) {
	return s.markets, s.err
}

func (s *stubTradingService) GetOrderbook(ctx context.Context, symbol string, depth int) (*entity.Orderbook, error) {
	return s.orderbook, s.err
}

func (s *stubTradingService) GetCandles(ctx context.Context, symbol, interval string, limit int) ([]entity.Candle, error) {
	return s.candles, s.err
}

func newTestMux(stub *stubTradingService) *http.ServeMux {
	mux := http.NewServeMux()
	NewWebHTTPHandler(stub).Register(mux)
	return mux
}

func doRequest(t *testing.T, mux *http.ServeMux, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestHome(t *testing.T) {
	mux := newTestMux(&stubTradingService{})

	rec := doRequest(t, mux, http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Robin")
}

func TestHome_UnknownRoute(t *testing.T) {
	mux := newTestMux(&stubTradingService{})

	rec := doRequest(t, mux, http.MethodGet, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSkill(t *testing.T) {
	mux := newTestMux(&stubTradingService{})

	rec := doRequest(t, mux, http.MethodGet, "/skill.md")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/markdown")
	assert.Contains(t, rec.Body.String(), "/api/prices")
}

func TestHealth(t *testing.T) {
	mux := newTestMux(&stubTradingService{})

	rec := doRequest(t, mux, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "robinclaw", resp.Service)
}

func TestPrices(t *testing.T) {
	mux := newTestMux(&stubTradingService{
		prices: map[string]decimal.Decimal{
			"BTC": decimal.RequireFromString("97500.0"),
			"ETH": decimal.RequireFromString("3250.5"),
		},
	})

	rec := doRequest(t, mux, http.MethodGet, "/api/prices")
	require.Equal(t, http.StatusOK, rec.Code)

	var prices map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &prices))
	assert.Equal(t, "97500.0", prices["BTC"])
	assert.Equal(t, "3250.5", prices["ETH"])
}

func TestPrices_NetworkError(t *testing.T) {
	mux := newTestMux(&stubTradingService{
		err: fmt.Errorf("%w: connection refused", entity.ErrNetwork),
	})

	rec := doRequest(t, mux, http.MethodGet, "/api/prices")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestPrices_MethodNotAllowed(t *testing.T) {
	mux := newTestMux(&stubTradingService{})

	rec := doRequest(t, mux, http.MethodPost, "/api/prices")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestMarkets(t *testing.T) {
	mux := newTestMux(&stubTradingService{
		markets: []entity.MarketInfo{
			{Name: "BTC", SzDecimals: 5, MaxLeverage: 50},
		},
	})

	rec := doRequest(t, mux, http.MethodGet, "/api/markets")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp MarketsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Markets, 1)
	assert.Equal(t, "BTC", resp.Markets[0].Name)
}

func TestOrderbook(t *testing.T) {
	mux := newTestMux(&stubTradingService{
		orderbook: &entity.Orderbook{
			Symbol: "BTC",
			Bids:   []entity.PriceLevel{{Price: decimal.NewFromInt(49990), Size: decimal.NewFromInt(1)}},
			Asks:   []entity.PriceLevel{{Price: decimal.NewFromInt(50010), Size: decimal.NewFromInt(2)}},
		},
	})

	rec := doRequest(t, mux, http.MethodGet, "/api/orderbook?symbol=BTC&depth=10")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "49990"))
}

func TestOrderbook_MissingSymbol(t *testing.T) {
	mux := newTestMux(&stubTradingService{})

	rec := doRequest(t, mux, http.MethodGet, "/api/orderbook")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderbook_UnknownMarket(t *testing.T) {
	mux := newTestMux(&stubTradingService{
		err: fmt.Errorf("%w: NOPE", entity.ErrUnknownMarket),
	})

	rec := doRequest(t, mux, http.MethodGet, "/api/orderbook?symbol=NOPE")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCandles_InvalidInterval(t *testing.T) {
	mux := newTestMux(&stubTradingService{
		err: fmt.Errorf("%w: unsupported candle interval", entity.ErrInvalidParameter),
	})

	rec := doRequest(t, mux, http.MethodGet, "/api/candles?symbol=BTC&interval=7m")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCandles(t *testing.T) {
	mux := newTestMux(&stubTradingService{
		candles: []entity.Candle{{
			Timestamp: 1700000000000,
			Open:      decimal.NewFromInt(50000),
			High:      decimal.NewFromInt(50100),
			Low:       decimal.NewFromInt(49900),
			Close:     decimal.NewFromInt(50050),
			Volume:    decimal.NewFromInt(12),
		}},
	})

	rec := doRequest(t, mux, http.MethodGet, "/api/candles?symbol=BTC")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "50050")
}
