package hyperliquid

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/robinclaw/robinclaw/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func infoServer(t *testing.T, handler func(payload map[string]any) (int, any)) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/info", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var payload map[string]any
		require.NoError(t, json.Unmarshal(body, &payload))

		status, resp := handler(payload)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestInfoClient_AllMids(t *testing.T) {
	srv := infoServer(t, func(payload map[string]any) (int, any) {
		assert.Equal(t, "allMids", payload["type"])
		return http.StatusOK, map[string]string{"BTC": "50000.5", "ETH": "3000"}
	})

	mids, err := NewInfoClient(srv.URL).AllMids(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"BTC": "50000.5", "ETH": "3000"}, mids)
}

func TestInfoClient_Meta(t *testing.T) {
	srv := infoServer(t, func(payload map[string]any) (int, any) {
		assert.Equal(t, "meta", payload["type"])
		return http.StatusOK, map[string]any{
			"universe": []map[string]any{
				{"name": "BTC", "szDecimals": 5, "maxLeverage": 50},
				{"name": "SOL", "szDecimals": 2, "maxLeverage": 20, "onlyIsolated": true},
			},
		}
	})

	meta, err := NewInfoClient(srv.URL).Meta(context.Background())
	require.NoError(t, err)
	require.Len(t, meta.Universe, 2)
	assert.Equal(t, "BTC", meta.Universe[0].Name)
	assert.Equal(t, int32(5), meta.Universe[0].SzDecimals)
	assert.True(t, meta.Universe[1].OnlyIsolated)
}

func TestInfoClient_L2Book(t *testing.T) {
	srv := infoServer(t, func(payload map[string]any) (int, any) {
		assert.Equal(t, "l2Book", payload["type"])
		assert.Equal(t, "BTC", payload["coin"])
		return http.StatusOK, map[string]any{
			"coin": "BTC",
			"levels": [][]map[string]any{
				{{"px": "49990", "sz": "1.5", "n": 3}},
				{{"px": "50010", "sz": "2.0", "n": 4}},
			},
			"time": 1700000000000,
		}
	})

	book, err := NewInfoClient(srv.URL).L2Book(context.Background(), "BTC")
	require.NoError(t, err)
	require.Len(t, book.Levels[0], 1)
	require.Len(t, book.Levels[1], 1)
	assert.Equal(t, "49990", book.Levels[0][0].Px)
	assert.Equal(t, "50010", book.Levels[1][0].Px)
}

func TestInfoClient_ClearinghouseState(t *testing.T) {
	srv := infoServer(t, func(payload map[string]any) (int, any) {
		assert.Equal(t, "clearinghouseState", payload["type"])
		assert.Equal(t, "0xabc", payload["user"])
		return http.StatusOK, map[string]any{
			"marginSummary": map[string]any{"accountValue": "1000", "totalMarginUsed": "50"},
			"withdrawable":  "950",
			"assetPositions": []map[string]any{{
				"type": "oneWay",
				"position": map[string]any{
					"coin":          "BTC",
					"szi":           "-0.25",
					"entryPx":       "51000",
					"unrealizedPnl": "-10",
					"marginUsed":    "50",
					"leverage":      map[string]any{"type": "isolated", "value": 5},
				},
			}},
		}
	})

	state, err := NewInfoClient(srv.URL).ClearinghouseState(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.Equal(t, "1000", state.MarginSummary.AccountValue)
	require.Len(t, state.AssetPositions, 1)
	assert.Equal(t, "-0.25", state.AssetPositions[0].Position.Szi)
	require.NotNil(t, state.AssetPositions[0].Position.EntryPx)
	assert.Equal(t, "51000", *state.AssetPositions[0].Position.EntryPx)
}

func TestInfoClient_HTTPError(t *testing.T) {
	srv := infoServer(t, func(payload map[string]any) (int, any) {
		return http.StatusInternalServerError, map[string]string{"error": "boom"}
	})

	_, err := NewInfoClient(srv.URL).AllMids(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrNetwork)
}

func TestInfoClient_Unreachable(t *testing.T) {
	_, err := NewInfoClient("http://127.0.0.1:1").AllMids(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrNetwork)
}
