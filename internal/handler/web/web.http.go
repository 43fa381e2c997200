package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/robinclaw/robinclaw/internal/entity"
	"github.com/shopspring/decimal"
)

// TradingService is the read surface exposed over HTTP. Write operations
// stay on the CLI and the direct client API.
type TradingService interface {
	GetPrices(ctx context.Context) (map[string]decimal.Decimal, error)
	GetMarkets(ctx context.Context) ([]entity.MarketInfo, error)
	GetOrderbook(ctx context.Context, symbol string, depth int) (*entity.Orderbook, error)
	GetCandles(ctx context.Context, symbol, interval string, limit int) ([]entity.Candle, error)
}

type MarketsResponse struct {
	Markets []entity.MarketInfo `json:"markets"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type Handler struct {
	trading TradingService
}

func NewWebHTTPHandler(trading TradingService) *Handler {
	return &Handler{trading: trading}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/", h.Home)
	mux.HandleFunc("/skill.md", h.Skill)
	mux.HandleFunc("/health", h.Health)
	mux.HandleFunc("/api/prices", h.Prices)
	mux.HandleFunc("/api/markets", h.Markets)
	mux.HandleFunc("/api/orderbook", h.Orderbook)
	mux.HandleFunc("/api/candles", h.Candles)
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	// "/" is the mux catch-all; anything else under it is a miss
	if r.URL.Path != "/" {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "not found"})
		return
	}
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(homepageHTML))
}

func (h *Handler) Skill(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write([]byte(skillMD))
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Service: "robinclaw"})
}

func (h *Handler) Prices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
		return
	}

	prices, err := h.trading.GetPrices(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, prices)
}

func (h *Handler) Markets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
		return
	}

	markets, err := h.trading.GetMarkets(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MarketsResponse{Markets: markets})
}

func (h *Handler) Orderbook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
		return
	}

	symbol := strings.TrimSpace(r.URL.Query().Get("symbol"))
	if symbol == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "symbol is required"})
		return
	}

	depth := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("depth")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid depth"})
			return
		}
		depth = parsed
	}

	book, err := h.trading.GetOrderbook(r.Context(), symbol, depth)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, book)
}

func (h *Handler) Candles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
		return
	}

	symbol := strings.TrimSpace(r.URL.Query().Get("symbol"))
	if symbol == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "symbol is required"})
		return
	}

	interval := strings.TrimSpace(r.URL.Query().Get("interval"))
	if interval == "" {
		interval = "1h"
	}

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	candles, err := h.trading.GetCandles(r.Context(), symbol, interval, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"candles": candles})
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrUnknownMarket):
		writeJSON(w, http.StatusNotFound, map[string]any{"error": err.Error()})
	case errors.Is(err, entity.ErrInvalidParameter):
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
	case errors.Is(err, entity.ErrNetwork):
		writeJSON(w, http.StatusBadGateway, map[string]any{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}
