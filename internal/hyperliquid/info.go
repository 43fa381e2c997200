package hyperliquid

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/robinclaw/robinclaw/internal/entity"
)

const defaultHTTPTimeout = 15 * time.Second

// InfoClient issues typed read requests against the exchange /info endpoint.
// Every call is a single best-effort round trip; transport failures surface
// as entity.ErrNetwork.
type InfoClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewInfoClient(baseURL string) *InfoClient {
	return &InfoClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
}

func (c *InfoClient) post(ctx context.Context, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/info", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrNetwork, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%w: info request failed: status=%d body=%s", entity.ErrNetwork, resp.StatusCode, string(raw))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("info response parse failed: %w", err)
	}

	return nil
}

// AllMids returns the current mid price of every listed market, keyed by
// symbol, as wire strings.
func (c *InfoClient) AllMids(ctx context.Context) (map[string]string, error) {
	var mids map[string]string
	err := c.post(ctx, map[string]any{"type": "allMids"}, &mids)
	if err != nil {
		return nil, err
	}
	return mids, nil
}

// Meta returns the perpetuals universe catalog.
func (c *InfoClient) Meta(ctx context.Context) (*Meta, error) {
	var meta Meta
	err := c.post(ctx, map[string]any{"type": "meta"}, &meta)
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

func (c *InfoClient) L2Book(ctx context.Context, coin string) (*L2Book, error) {
	var book L2Book
	err := c.post(ctx, map[string]any{"type": "l2Book", "coin": coin}, &book)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (c *InfoClient) CandleSnapshot(ctx context.Context, coin, interval string, startTime, endTime int64) ([]CandleBar, error) {
	payload := map[string]any{
		"type": "candleSnapshot",
		"req": map[string]any{
			"coin":      coin,
			"interval":  interval,
			"startTime": startTime,
			"endTime":   endTime,
		},
	}

	var candles []CandleBar
	err := c.post(ctx, payload, &candles)
	if err != nil {
		return nil, err
	}
	return candles, nil
}

// ClearinghouseState returns margin summary and open positions for a user
// address.
func (c *InfoClient) ClearinghouseState(ctx context.Context, user string) (*ClearinghouseState, error) {
	var state ClearinghouseState
	err := c.post(ctx, map[string]any{"type": "clearinghouseState", "user": user}, &state)
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (c *InfoClient) OpenOrders(ctx context.Context, user string) ([]RawOpenOrder, error) {
	var orders []RawOpenOrder
	err := c.post(ctx, map[string]any{"type": "openOrders", "user": user}, &orders)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *InfoClient) UserFills(ctx context.Context, user string) ([]RawFill, error) {
	var fills []RawFill
	err := c.post(ctx, map[string]any{"type": "userFills", "user": user}, &fills)
	if err != nil {
		return nil, err
	}
	return fills, nil
}
