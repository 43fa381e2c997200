package hyperliquid

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/robinclaw/robinclaw/internal/entity"
)

// Time-in-force values accepted by the exchange.
const (
	TifGtc = "Gtc"
	TifIoc = "Ioc"
	TifAlo = "Alo"
)

// Trigger kinds for conditional orders.
const (
	TpslStopLoss   = "sl"
	TpslTakeProfit = "tp"
)

// Wire order shapes. Field order matters: the action hash is computed over
// the msgpack encoding, which follows struct declaration order.

type WireLimit struct {
	Tif string `msgpack:"tif" json:"tif"`
}

type WireTrigger struct {
	IsMarket  bool   `msgpack:"isMarket" json:"isMarket"`
	TriggerPx string `msgpack:"triggerPx" json:"triggerPx"`
	Tpsl      string `msgpack:"tpsl" json:"tpsl"`
}

type WireOrderType struct {
	Limit   *WireLimit   `msgpack:"limit,omitempty" json:"limit,omitempty"`
	Trigger *WireTrigger `msgpack:"trigger,omitempty" json:"trigger,omitempty"`
}

type WireOrder struct {
	Asset      int           `msgpack:"a" json:"a"`
	IsBuy      bool          `msgpack:"b" json:"b"`
	Price      string        `msgpack:"p" json:"p"`
	Size       string        `msgpack:"s" json:"s"`
	ReduceOnly bool          `msgpack:"r" json:"r"`
	Type       WireOrderType `msgpack:"t" json:"t"`
}

type orderAction struct {
	Type     string      `msgpack:"type" json:"type"`
	Orders   []WireOrder `msgpack:"orders" json:"orders"`
	Grouping string      `msgpack:"grouping" json:"grouping"`
}

type wireCancel struct {
	Asset int   `msgpack:"a" json:"a"`
	Oid   int64 `msgpack:"o" json:"o"`
}

type cancelAction struct {
	Type    string       `msgpack:"type" json:"type"`
	Cancels []wireCancel `msgpack:"cancels" json:"cancels"`
}

type leverageAction struct {
	Type     string `msgpack:"type" json:"type"`
	Asset    int    `msgpack:"asset" json:"asset"`
	IsCross  bool   `msgpack:"isCross" json:"isCross"`
	Leverage int    `msgpack:"leverage" json:"leverage"`
}

type exchangeRequest struct {
	Action       any          `json:"action"`
	Nonce        uint64       `json:"nonce"`
	Signature    RsvSignature `json:"signature"`
	VaultAddress *string      `json:"vaultAddress,omitempty"`
}

// ExchangeClient submits signed write actions to the /exchange endpoint.
// Calls are single best-effort attempts; the exchange's own rejection text is
// preserved in the returned error.
type ExchangeClient struct {
	baseURL      string
	signer       *Signer
	vaultAddress string
	mainnet      bool
	httpClient   *http.Client
	now          func() time.Time
}

func NewExchangeClient(baseURL string, signer *Signer, vaultAddress string, mainnet bool) *ExchangeClient {
	return &ExchangeClient{
		baseURL:      baseURL,
		signer:       signer,
		vaultAddress: strings.TrimSpace(vaultAddress),
		mainnet:      mainnet,
		httpClient:   &http.Client{Timeout: defaultHTTPTimeout},
		now:          time.Now,
	}
}

// PlaceOrders submits one or more orders as a single grouped action.
func (c *ExchangeClient) PlaceOrders(ctx context.Context, orders []WireOrder) (*ExchangeResponse, error) {
	action := orderAction{
		Type:     "order",
		Orders:   orders,
		Grouping: "na",
	}

	return c.post(ctx, action)
}

// Cancel cancels a resting order by asset index and order id.
func (c *ExchangeClient) Cancel(ctx context.Context, asset int, oid int64) (*ExchangeResponse, error) {
	action := cancelAction{
		Type:    "cancel",
		Cancels: []wireCancel{{Asset: asset, Oid: oid}},
	}

	return c.post(ctx, action)
}

// UpdateLeverage sets the leverage multiplier for one asset.
func (c *ExchangeClient) UpdateLeverage(ctx context.Context, asset, leverage int, isCross bool) (*ExchangeResponse, error) {
	action := leverageAction{
		Type:     "updateLeverage",
		Asset:    asset,
		IsCross:  isCross,
		Leverage: leverage,
	}

	return c.post(ctx, action)
}

func (c *ExchangeClient) post(ctx context.Context, action any) (*ExchangeResponse, error) {
	nonce := uint64(c.now().UnixMilli())

	signature, err := c.signer.SignAction(action, c.vaultAddress, nonce, c.mainnet)
	if err != nil {
		return nil, err
	}

	reqPayload := exchangeRequest{
		Action:    action,
		Nonce:     nonce,
		Signature: signature,
	}
	if c.vaultAddress != "" {
		reqPayload.VaultAddress = &c.vaultAddress
	}

	body, err := json.Marshal(reqPayload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/exchange", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrNetwork, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("%w: exchange request failed: status=%d body=%s", entity.ErrNetwork, resp.StatusCode, string(raw))
	}

	var exchangeResp ExchangeResponse
	if err := json.Unmarshal(raw, &exchangeResp); err != nil {
		return nil, fmt.Errorf("exchange response parse failed: status=%d body=%s", resp.StatusCode, string(raw))
	}

	if !exchangeResp.OK() {
		return nil, classifyRejection(string(raw))
	}

	for _, status := range exchangeResp.Statuses() {
		if status.Error != "" {
			return nil, classifyRejection(status.Error)
		}
	}

	return &exchangeResp, nil
}

func classifyRejection(detail string) error {
	lowered := strings.ToLower(detail)
	if strings.Contains(lowered, "margin") {
		return fmt.Errorf("%w: %s", entity.ErrInsufficientMargin, detail)
	}

	return fmt.Errorf("order rejected: %s", detail)
}
