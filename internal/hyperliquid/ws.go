package hyperliquid

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	wsReconnectMinDelay = 1 * time.Second
	wsReconnectMaxDelay = 15 * time.Second
	wsReconnectFactor   = 2.0
	wsHandshakeTimeout  = 15 * time.Second
	wsPingInterval      = 50 * time.Second
)

type wsSubscription struct {
	Type string `json:"type"`
	Coin string `json:"coin,omitempty"`
}

type wsSubscribeMessage struct {
	Method       string         `json:"method"`
	Subscription wsSubscription `json:"subscription"`
}

// WSMessage is one frame from the exchange feed; Data decoding depends on
// Channel ("allMids", "l2Book", ...).
type WSMessage struct {
	Channel string          `json:"channel"`
	Data    json.RawMessage `json:"data"`
}

type WSAllMids struct {
	Mids map[string]string `json:"mids"`
}

// WSClient maintains a subscription feed with exponential-backoff reconnects.
type WSClient struct {
	url           string
	subscriptions []wsSubscription
}

func NewWSClient(url string) *WSClient {
	return &WSClient{url: url}
}

// SubscribeAllMids registers the all-markets mid price channel.
func (c *WSClient) SubscribeAllMids() {
	c.subscriptions = append(c.subscriptions, wsSubscription{Type: "allMids"})
}

// SubscribeL2Book registers the orderbook channel for one coin.
func (c *WSClient) SubscribeL2Book(coin string) {
	c.subscriptions = append(c.subscriptions, wsSubscription{Type: "l2Book", Coin: coin})
}

// Run connects, subscribes, and invokes onMessage for every frame until the
// context is done, reconnecting on read or dial failure.
func (c *WSClient) Run(ctx context.Context, onMessage func(ctx context.Context, msg WSMessage) error) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	attempt := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		logrus.Infof("connecting to %s", c.url)
		dialer := websocket.Dialer{HandshakeTimeout: wsHandshakeTimeout}
		conn, _, err := dialer.DialContext(ctx, c.url, nil)
		if err != nil {
			wait := wsReconnectDelay(attempt, rng)
			attempt++
			logrus.WithFields(logrus.Fields{"retry_in": wait.String(), "attempt": attempt}).Warnf("ws dial failed: %v", err)
			select {
			case <-time.After(wait):
				continue
			case <-ctx.Done():
				return nil
			}
		}

		attempt = 0
		conn.SetPongHandler(func(string) error {
			return nil
		})

		subscribed := true
		for _, sub := range c.subscriptions {
			msg := wsSubscribeMessage{Method: "subscribe", Subscription: sub}
			if err := conn.WriteJSON(msg); err != nil {
				logrus.Warnf("ws subscribe failed: %v", err)
				subscribed = false
				break
			}
		}
		if !subscribed {
			_ = conn.Close()
			continue
		}

		stopPing := make(chan struct{})
		go func(conn *websocket.Conn) {
			ticker := time.NewTicker(wsPingInterval)
			defer ticker.Stop()

			for {
				select {
				case <-ticker.C:
					if err := conn.WriteJSON(map[string]string{"method": "ping"}); err != nil {
						logrus.Error(err)
						return
					}
				case <-ctx.Done():
					return
				case <-stopPing:
					return
				}
			}
		}(conn)

		go func(conn *websocket.Conn) {
			select {
			case <-ctx.Done():
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				_ = conn.Close()
			case <-stopPing:
			}
		}(conn)

		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() != nil {
					close(stopPing)
					return nil
				}

				logrus.Errorf("ws read failed: %v", err)
				break
			}

			var msg WSMessage
			if err := json.Unmarshal(raw, &msg); err != nil {
				logrus.Errorf("ws frame parse failed: %v", err)
				continue
			}

			if msg.Channel == "pong" || msg.Channel == "subscriptionResponse" {
				continue
			}

			if err := onMessage(ctx, msg); err != nil {
				logrus.Errorf("ws message handler failed: %v", err)
			}
		}

		close(stopPing)
		_ = conn.Close()

		wait := wsReconnectDelay(attempt, rng)
		attempt++
		logrus.WithFields(logrus.Fields{"retry_in": wait.String(), "attempt": attempt}).Warn("reconnecting ws")
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return nil
		}
	}
}

func wsReconnectDelay(attempt int, rng *rand.Rand) time.Duration {
	backoff := float64(wsReconnectMinDelay) * math.Pow(wsReconnectFactor, float64(attempt))
	if backoff > float64(wsReconnectMaxDelay) {
		backoff = float64(wsReconnectMaxDelay)
	}

	base := time.Duration(backoff)
	jitterWindow := wsReconnectMaxDelay - wsReconnectMinDelay
	jitter := time.Duration(rng.Int63n(int64(jitterWindow) + 1))
	result := base + jitter
	if result > wsReconnectMaxDelay {
		return wsReconnectMaxDelay
	}

	return result
}
