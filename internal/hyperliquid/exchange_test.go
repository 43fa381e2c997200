package hyperliquid

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/robinclaw/robinclaw/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExchange(t *testing.T, handler http.HandlerFunc) *ExchangeClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	signer, err := NewSigner(testKey)
	require.NoError(t, err)

	client := NewExchangeClient(srv.URL, signer, "", true)
	client.now = func() time.Time { return time.UnixMilli(1700000000000) }

	return client
}

func TestExchangeClient_PlaceOrders(t *testing.T) {
	var captured map[string]any
	client := newTestExchange(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/exchange", r.URL.Path)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","response":{"type":"order","data":{"statuses":[{"resting":{"oid":42}}]}}}`))
	})

	resp, err := client.PlaceOrders(context.Background(), []WireOrder{{
		Asset: 1,
		IsBuy: true,
		Price: "3000",
		Size:  "2",
		Type:  WireOrderType{Limit: &WireLimit{Tif: TifGtc}},
	}})
	require.NoError(t, err)
	require.True(t, resp.OK())
	require.Len(t, resp.Statuses(), 1)
	assert.Equal(t, int64(42), resp.Statuses()[0].Resting.Oid)

	// request carries the action, the millisecond nonce, and an r/s/v signature
	action := captured["action"].(map[string]any)
	assert.Equal(t, "order", action["type"])
	assert.Equal(t, "na", action["grouping"])
	assert.EqualValues(t, 1700000000000, captured["nonce"])

	signature := captured["signature"].(map[string]any)
	assert.NotEmpty(t, signature["r"])
	assert.NotEmpty(t, signature["s"])
	assert.NotNil(t, signature["v"])

	_, hasVault := captured["vaultAddress"]
	assert.False(t, hasVault)
}

func TestExchangeClient_RejectionStatus(t *testing.T) {
	client := newTestExchange(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok","response":{"type":"order","data":{"statuses":[{"error":"Order has invalid size"}]}}}`))
	})

	_, err := client.PlaceOrders(context.Background(), []WireOrder{{Asset: 0}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid size")
}

func TestExchangeClient_InsufficientMargin(t *testing.T) {
	client := newTestExchange(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok","response":{"type":"order","data":{"statuses":[{"error":"Insufficient margin to place order"}]}}}`))
	})

	_, err := client.PlaceOrders(context.Background(), []WireOrder{{Asset: 0}})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrInsufficientMargin)
}

func TestExchangeClient_HTTPError(t *testing.T) {
	client := newTestExchange(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	_, err := client.Cancel(context.Background(), 0, 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrNetwork)
}

func TestExchangeClient_UpdateLeverage(t *testing.T) {
	var captured map[string]any
	client := newTestExchange(t, func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &captured))
		_, _ = w.Write([]byte(`{"status":"ok","response":{"type":"default"}}`))
	})

	resp, err := client.UpdateLeverage(context.Background(), 3, 10, true)
	require.NoError(t, err)
	assert.True(t, resp.OK())

	action := captured["action"].(map[string]any)
	assert.Equal(t, "updateLeverage", action["type"])
	assert.EqualValues(t, 3, action["asset"])
	assert.EqualValues(t, 10, action["leverage"])
	assert.Equal(t, true, action["isCross"])
}
