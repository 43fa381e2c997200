package trading

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/robinclaw/robinclaw/internal/config"
	"github.com/robinclaw/robinclaw/internal/constant"
	"github.com/robinclaw/robinclaw/internal/entity"
	"github.com/robinclaw/robinclaw/internal/hyperliquid"
	"github.com/robinclaw/robinclaw/internal/util"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Perp prices carry at most maxPriceDecimals - szDecimals decimal places and
// five significant figures.
const (
	maxPriceDecimals = 6
	maxSigFigs       = 5
)

var defaultSlippage = decimal.NewFromFloat(0.05)

var candleIntervals = map[string]time.Duration{
	"1m":  time.Minute,
	"5m":  5 * time.Minute,
	"15m": 15 * time.Minute,
	"1h":  time.Hour,
	"4h":  4 * time.Hour,
	"1d":  24 * time.Hour,
}

// Service is the trading façade: a fixed set of market-data reads and order
// submissions against one credential on one network. It holds no state beyond
// the credential, the network selection, and the lazily fetched market
// catalog. Price reads are never cached.
type Service struct {
	info     *hyperliquid.InfoClient
	exchange *hyperliquid.ExchangeClient
	address  string
	slippage decimal.Decimal
	js       nats.JetStreamContext

	metaMu   sync.RWMutex
	meta     *hyperliquid.Meta
	assetIdx map[string]int
}

// New builds a Service from configuration. The private key is validated
// here; a malformed key fails with entity.ErrConfiguration. js may be nil,
// in which case fills are not journaled.
func New(cfg config.HyperliquidConfig, js nats.JetStreamContext) (*Service, error) {
	signer, err := hyperliquid.NewSigner(cfg.PrivateKey)
	if err != nil {
		return nil, err
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = constant.MainnetAPIURL
		if cfg.Testnet {
			baseURL = constant.TestnetAPIURL
		}
	}

	slippage := cfg.Slippage
	if slippage.LessThanOrEqual(decimal.Zero) {
		slippage = defaultSlippage
	}

	return &Service{
		info:     hyperliquid.NewInfoClient(baseURL),
		exchange: hyperliquid.NewExchangeClient(baseURL, signer, cfg.VaultAddress, !cfg.Testnet),
		address:  signer.Address(),
		slippage: slippage,
		js:       js,
	}, nil
}

// Address returns the wallet address the client trades as.
func (s *Service) Address() string {
	return s.address
}

// JetstreamEventInit creates or updates the ledger stream. Callers that
// journal fills run this once at startup.
func (s *Service) JetstreamEventInit(ctx context.Context) error {
	if s.js == nil {
		return nil
	}

	streamConfig := &nats.StreamConfig{
		Name:      constant.LedgerStreamName,
		Subjects:  []string{constant.LedgerStreamSubjectAll},
		Retention: nats.WorkQueuePolicy,
		Storage:   nats.FileStorage,
		MaxAge:    24 * time.Hour,
	}

	stream, err := s.js.StreamInfo(constant.LedgerStreamName, nats.Context(ctx))
	if err != nil && !errors.Is(err, nats.ErrStreamNotFound) {
		logrus.Error(err)
		return err
	}

	if stream == nil {
		logrus.Infof("creating stream: %s", constant.LedgerStreamName)
		_, err = s.js.AddStream(streamConfig, nats.Context(ctx))
		return err
	}

	_, err = s.js.UpdateStream(streamConfig, nats.Context(ctx))
	if err != nil {
		logrus.Error(err)
		return err
	}

	return nil
}

// ========== Market data ==========

// GetPrices returns the current mid price of every listed market.
func (s *Service) GetPrices(ctx context.Context) (map[string]decimal.Decimal, error) {
	mids, err := s.info.AllMids(ctx)
	if err != nil {
		return nil, err
	}

	prices := make(map[string]decimal.Decimal, len(mids))
	for symbol, raw := range mids {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid mid price for %s: %w", symbol, err)
		}
		prices[symbol] = price
	}

	return prices, nil
}

// GetPrice returns the current mid price for one symbol. It reads through
// the same snapshot as GetPrices so the two paths cannot diverge.
func (s *Service) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	prices, err := s.GetPrices(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	price, ok := prices[symbol]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", entity.ErrUnknownMarket, symbol)
	}

	return price, nil
}

// GetMarkets returns the tradable markets catalog.
func (s *Service) GetMarkets(ctx context.Context) ([]entity.MarketInfo, error) {
	meta, err := s.loadMeta(ctx)
	if err != nil {
		return nil, err
	}

	markets := make([]entity.MarketInfo, 0, len(meta.Universe))
	for _, asset := range meta.Universe {
		markets = append(markets, entity.MarketInfo{
			Name:         asset.Name,
			SzDecimals:   asset.SzDecimals,
			MaxLeverage:  asset.MaxLeverage,
			OnlyIsolated: asset.OnlyIsolated,
		})
	}

	return markets, nil
}

// GetOrderbook returns a depth-limited L2 snapshot.
func (s *Service) GetOrderbook(ctx context.Context, symbol string, depth int) (*entity.Orderbook, error) {
	if _, _, err := s.assetIndex(ctx, symbol); err != nil {
		return nil, err
	}
	if depth <= 0 {
		depth = 10
	}

	book, err := s.info.L2Book(ctx, symbol)
	if err != nil {
		return nil, err
	}

	result := &entity.Orderbook{Symbol: symbol, Time: book.Time}
	result.Bids, err = mapBookSide(book.Levels[0], depth)
	if err != nil {
		return nil, err
	}
	result.Asks, err = mapBookSide(book.Levels[1], depth)
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetCandles returns up to limit most recent bars for the interval.
func (s *Service) GetCandles(ctx context.Context, symbol, interval string, limit int) ([]entity.Candle, error) {
	if _, _, err := s.assetIndex(ctx, symbol); err != nil {
		return nil, err
	}

	step, ok := candleIntervals[interval]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported candle interval %q", entity.ErrInvalidParameter, interval)
	}
	if limit <= 0 {
		limit = 100
	}

	endTime := time.Now().UnixMilli()
	startTime := endTime - int64(limit)*step.Milliseconds()

	bars, err := s.info.CandleSnapshot(ctx, symbol, interval, startTime, endTime)
	if err != nil {
		return nil, err
	}

	candles := make([]entity.Candle, 0, len(bars))
	for _, bar := range bars {
		candle, err := mapCandle(bar)
		if err != nil {
			return nil, err
		}
		candles = append(candles, candle)
	}

	return candles, nil
}

// ========== Account ==========

// GetBalance returns the account margin summary.
func (s *Service) GetBalance(ctx context.Context) (*entity.Balance, error) {
	state, err := s.info.ClearinghouseState(ctx, s.address)
	if err != nil {
		return nil, err
	}

	equity, err := decimal.NewFromString(state.MarginSummary.AccountValue)
	if err != nil {
		return nil, fmt.Errorf("invalid account value: %w", err)
	}

	marginUsed, err := decimal.NewFromString(state.MarginSummary.TotalMarginUsd)
	if err != nil {
		return nil, fmt.Errorf("invalid margin used: %w", err)
	}

	withdrawable, err := decimal.NewFromString(state.Withdrawable)
	if err != nil {
		return nil, fmt.Errorf("invalid withdrawable: %w", err)
	}

	unrealized := decimal.Zero
	for _, assetPos := range state.AssetPositions {
		pnl, err := decimal.NewFromString(assetPos.Position.UnrealizedPnl)
		if err != nil {
			continue
		}
		unrealized = unrealized.Add(pnl)
	}

	return &entity.Balance{
		Equity:        equity,
		Withdrawable:  withdrawable,
		MarginUsed:    marginUsed,
		UnrealizedPnl: unrealized,
	}, nil
}

// GetPositions returns every open position. Flat markets are omitted.
func (s *Service) GetPositions(ctx context.Context) ([]entity.Position, error) {
	state, err := s.info.ClearinghouseState(ctx, s.address)
	if err != nil {
		return nil, err
	}

	positions := make([]entity.Position, 0, len(state.AssetPositions))
	for _, assetPos := range state.AssetPositions {
		position, ok, err := mapPosition(assetPos.Position)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		positions = append(positions, position)
	}

	return positions, nil
}

// GetPosition returns the open position for one symbol, or nil when flat.
// A flat market never yields a zero-valued Position.
func (s *Service) GetPosition(ctx context.Context, symbol string) (*entity.Position, error) {
	positions, err := s.GetPositions(ctx)
	if err != nil {
		return nil, err
	}

	for i := range positions {
		if positions[i].Symbol == symbol {
			return &positions[i], nil
		}
	}

	return nil, nil
}

// GetOpenOrders returns resting orders, optionally filtered by symbol.
func (s *Service) GetOpenOrders(ctx context.Context, symbol string) ([]entity.OpenOrder, error) {
	raw, err := s.info.OpenOrders(ctx, s.address)
	if err != nil {
		return nil, err
	}

	orders := make([]entity.OpenOrder, 0, len(raw))
	for _, o := range raw {
		if symbol != "" && o.Coin != symbol {
			continue
		}

		size, err := decimal.NewFromString(o.Sz)
		if err != nil {
			return nil, fmt.Errorf("invalid open order size: %w", err)
		}
		price, err := decimal.NewFromString(o.LimitPx)
		if err != nil {
			return nil, fmt.Errorf("invalid open order price: %w", err)
		}

		orders = append(orders, entity.OpenOrder{
			OrderID:   o.Oid,
			Symbol:    o.Coin,
			Side:      sideFromWire(o.Side),
			Size:      size,
			Price:     price,
			Timestamp: o.Timestamp,
		})
	}

	return orders, nil
}

// GetFills returns up to limit most recent executions.
func (s *Service) GetFills(ctx context.Context, limit int) ([]entity.Fill, error) {
	raw, err := s.info.UserFills(ctx, s.address)
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(raw) > limit {
		raw = raw[:limit]
	}

	fills := make([]entity.Fill, 0, len(raw))
	for _, f := range raw {
		size, err := decimal.NewFromString(f.Sz)
		if err != nil {
			return nil, fmt.Errorf("invalid fill size: %w", err)
		}
		price, err := decimal.NewFromString(f.Px)
		if err != nil {
			return nil, fmt.Errorf("invalid fill price: %w", err)
		}
		fee, err := decimal.NewFromString(f.Fee)
		if err != nil {
			return nil, fmt.Errorf("invalid fill fee: %w", err)
		}

		fills = append(fills, entity.Fill{
			Symbol:    f.Coin,
			Side:      sideFromWire(f.Side),
			Size:      size,
			Price:     price,
			Fee:       fee,
			OrderID:   f.Oid,
			Timestamp: f.Time,
		})
	}

	return fills, nil
}

// ========== Trading ==========

// SetLeverage updates the leverage multiplier for one market. Bounds come
// from the market catalog; out-of-bounds values fail without a request.
func (s *Service) SetLeverage(ctx context.Context, symbol string, leverage int, isCross bool) error {
	asset, assetMeta, err := s.assetIndex(ctx, symbol)
	if err != nil {
		return err
	}

	if leverage < 1 || leverage > int(assetMeta.MaxLeverage) {
		return fmt.Errorf("%w: leverage %d outside 1..%d for %s", entity.ErrInvalidParameter, leverage, assetMeta.MaxLeverage, symbol)
	}

	resp, err := s.exchange.UpdateLeverage(ctx, asset, leverage, isCross)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return fmt.Errorf("leverage update rejected: %s", resp.Status)
	}

	logrus.WithFields(logrus.Fields{
		"symbol":   symbol,
		"leverage": leverage,
		"is_cross": isCross,
	}).Info("leverage updated")

	return nil
}

// MarketBuy opens or extends a long position at market price.
func (s *Service) MarketBuy(ctx context.Context, symbol string, size decimal.Decimal) (*entity.OrderResult, error) {
	return s.marketOrder(ctx, symbol, entity.OrderSideBuy, size, false)
}

// MarketSell opens or extends a short position at market price.
func (s *Service) MarketSell(ctx context.Context, symbol string, size decimal.Decimal) (*entity.OrderResult, error) {
	return s.marketOrder(ctx, symbol, entity.OrderSideSell, size, false)
}

// MarketClose closes the entire position in one market. Returns
// entity.ErrNoPosition when the market is flat.
func (s *Service) MarketClose(ctx context.Context, symbol string) (*entity.OrderResult, error) {
	position, err := s.GetPosition(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if position == nil || position.Size.IsZero() {
		return nil, fmt.Errorf("%w: %s", entity.ErrNoPosition, symbol)
	}

	side := entity.OrderSideSell
	if !position.IsLong() {
		side = entity.OrderSideBuy
	}

	return s.marketOrder(ctx, symbol, side, position.Size.Abs(), true)
}

func (s *Service) marketOrder(ctx context.Context, symbol string, side entity.OrderSide, size decimal.Decimal, reduceOnly bool) (*entity.OrderResult, error) {
	if size.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: order size must be positive", entity.ErrInvalidParameter)
	}

	asset, assetMeta, err := s.assetIndex(ctx, symbol)
	if err != nil {
		return nil, err
	}

	mid, err := s.GetPrice(ctx, symbol)
	if err != nil {
		return nil, err
	}

	isBuy := side == entity.OrderSideBuy
	limitPx := s.slippagePrice(mid, isBuy, assetMeta.SzDecimals)
	rounded := roundSize(size, assetMeta.SzDecimals)
	if rounded.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: size %s rounds to zero at %d size decimals", entity.ErrInvalidParameter, size.String(), assetMeta.SzDecimals)
	}

	// IOC at mid plus slippage behaves like a market order with a bound.
	order := hyperliquid.WireOrder{
		Asset:      asset,
		IsBuy:      isBuy,
		Price:      wireDecimal(limitPx),
		Size:       wireDecimal(rounded),
		ReduceOnly: reduceOnly,
		Type: hyperliquid.WireOrderType{
			Limit: &hyperliquid.WireLimit{Tif: hyperliquid.TifIoc},
		},
	}

	resp, err := s.exchange.PlaceOrders(ctx, []hyperliquid.WireOrder{order})
	if err != nil {
		return nil, err
	}

	result, err := parseOrderResult(resp)
	if err != nil {
		return nil, err
	}

	orderType := entity.OrderTypeMarket
	s.journalFill(symbol, side, orderType, rounded, nil, result)

	logrus.WithFields(logrus.Fields{
		"symbol":      symbol,
		"side":        side,
		"size":        rounded.String(),
		"limit_px":    wireDecimal(limitPx),
		"status":      result.Status,
		"filled_size": result.FilledSize.String(),
		"avg_price":   result.AvgPrice.String(),
	}).Info("market order placed")

	return result, nil
}

// LimitBuy places a resting buy order at the given price.
func (s *Service) LimitBuy(ctx context.Context, symbol string, size, price decimal.Decimal, reduceOnly, postOnly bool) (*entity.OrderResult, error) {
	return s.limitOrder(ctx, symbol, entity.OrderSideBuy, size, price, reduceOnly, postOnly)
}

// LimitSell places a resting sell order at the given price.
func (s *Service) LimitSell(ctx context.Context, symbol string, size, price decimal.Decimal, reduceOnly, postOnly bool) (*entity.OrderResult, error) {
	return s.limitOrder(ctx, symbol, entity.OrderSideSell, size, price, reduceOnly, postOnly)
}

func (s *Service) limitOrder(ctx context.Context, symbol string, side entity.OrderSide, size, price decimal.Decimal, reduceOnly, postOnly bool) (*entity.OrderResult, error) {
	if size.LessThanOrEqual(decimal.Zero) || price.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: order size and price must be positive", entity.ErrInvalidParameter)
	}

	asset, assetMeta, err := s.assetIndex(ctx, symbol)
	if err != nil {
		return nil, err
	}

	rounded := roundSize(size, assetMeta.SzDecimals)
	if rounded.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: size %s rounds to zero at %d size decimals", entity.ErrInvalidParameter, size.String(), assetMeta.SzDecimals)
	}

	tif := hyperliquid.TifGtc
	if postOnly {
		tif = hyperliquid.TifAlo
	}

	order := hyperliquid.WireOrder{
		Asset:      asset,
		IsBuy:      side == entity.OrderSideBuy,
		Price:      wireDecimal(price),
		Size:       wireDecimal(rounded),
		ReduceOnly: reduceOnly,
		Type: hyperliquid.WireOrderType{
			Limit: &hyperliquid.WireLimit{Tif: tif},
		},
	}

	resp, err := s.exchange.PlaceOrders(ctx, []hyperliquid.WireOrder{order})
	if err != nil {
		return nil, err
	}

	result, err := parseOrderResult(resp)
	if err != nil {
		return nil, err
	}

	priceCopy := price
	s.journalFill(symbol, side, entity.OrderTypeLimit, rounded, &priceCopy, result)

	return result, nil
}

// StopLoss places a reduce-only market trigger that closes the position when
// price crosses triggerPrice. size defaults to the full position. A trigger
// on the wrong side of the current price fails and places no order.
func (s *Service) StopLoss(ctx context.Context, symbol string, triggerPrice decimal.Decimal, size *decimal.Decimal) (*entity.OrderResult, error) {
	return s.triggerOrder(ctx, symbol, triggerPrice, size, hyperliquid.TpslStopLoss)
}

// TakeProfit is symmetric to StopLoss with the opposite trigger side.
func (s *Service) TakeProfit(ctx context.Context, symbol string, triggerPrice decimal.Decimal, size *decimal.Decimal) (*entity.OrderResult, error) {
	return s.triggerOrder(ctx, symbol, triggerPrice, size, hyperliquid.TpslTakeProfit)
}

func (s *Service) triggerOrder(ctx context.Context, symbol string, triggerPrice decimal.Decimal, size *decimal.Decimal, tpsl string) (*entity.OrderResult, error) {
	if triggerPrice.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: trigger price must be positive", entity.ErrInvalidParameter)
	}

	asset, assetMeta, err := s.assetIndex(ctx, symbol)
	if err != nil {
		return nil, err
	}

	position, err := s.GetPosition(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if position == nil || position.Size.IsZero() {
		return nil, fmt.Errorf("%w: %s", entity.ErrNoPosition, symbol)
	}

	mid, err := s.GetPrice(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if err := validateTriggerSide(position.IsLong(), mid, triggerPrice, tpsl); err != nil {
		return nil, err
	}

	orderSize := position.Size.Abs()
	if size != nil {
		if size.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: trigger size must be positive", entity.ErrInvalidParameter)
		}
		orderSize = *size
	}
	orderSize = roundSize(orderSize, assetMeta.SzDecimals)

	// Closing a long sells, closing a short buys.
	isBuy := !position.IsLong()

	order := hyperliquid.WireOrder{
		Asset:      asset,
		IsBuy:      isBuy,
		Price:      wireDecimal(triggerPrice),
		Size:       wireDecimal(orderSize),
		ReduceOnly: true,
		Type: hyperliquid.WireOrderType{
			Trigger: &hyperliquid.WireTrigger{
				IsMarket:  true,
				TriggerPx: wireDecimal(triggerPrice),
				Tpsl:      tpsl,
			},
		},
	}

	resp, err := s.exchange.PlaceOrders(ctx, []hyperliquid.WireOrder{order})
	if err != nil {
		return nil, err
	}

	return parseOrderResult(resp)
}

// CancelOrder cancels a resting order by id.
func (s *Service) CancelOrder(ctx context.Context, symbol string, oid int64) error {
	asset, _, err := s.assetIndex(ctx, symbol)
	if err != nil {
		return err
	}

	resp, err := s.exchange.Cancel(ctx, asset, oid)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return fmt.Errorf("cancel rejected: %s", resp.Status)
	}

	return nil
}

// CancelAllOrders cancels every resting order, optionally filtered by
// symbol. Returns the count cancelled; stops at the first failure.
func (s *Service) CancelAllOrders(ctx context.Context, symbol string) (int, error) {
	orders, err := s.GetOpenOrders(ctx, symbol)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, order := range orders {
		if err := s.CancelOrder(ctx, order.Symbol, order.OrderID); err != nil {
			return cancelled, err
		}
		cancelled++
	}

	return cancelled, nil
}

// ========== Internals ==========

// loadMeta fetches the market catalog once and reuses it for the process
// lifetime, as the catalog is semi-static.
func (s *Service) loadMeta(ctx context.Context) (*hyperliquid.Meta, error) {
	s.metaMu.RLock()
	if s.meta != nil {
		meta := s.meta
		s.metaMu.RUnlock()
		return meta, nil
	}
	s.metaMu.RUnlock()

	meta, err := s.info.Meta(ctx)
	if err != nil {
		return nil, err
	}

	assetIdx := make(map[string]int, len(meta.Universe))
	for i, asset := range meta.Universe {
		assetIdx[asset.Name] = i
	}

	s.metaMu.Lock()
	s.meta = meta
	s.assetIdx = assetIdx
	s.metaMu.Unlock()

	return meta, nil
}

func (s *Service) assetIndex(ctx context.Context, symbol string) (int, *hyperliquid.AssetMeta, error) {
	meta, err := s.loadMeta(ctx)
	if err != nil {
		return 0, nil, err
	}

	s.metaMu.RLock()
	idx, ok := s.assetIdx[symbol]
	s.metaMu.RUnlock()
	if !ok {
		return 0, nil, fmt.Errorf("%w: %s", entity.ErrUnknownMarket, symbol)
	}

	return idx, &meta.Universe[idx], nil
}

func (s *Service) slippagePrice(mid decimal.Decimal, isBuy bool, szDecimals int32) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(s.slippage)
	if !isBuy {
		factor = decimal.NewFromInt(1).Sub(s.slippage)
	}

	return roundPrice(mid.Mul(factor), szDecimals)
}

// journalFill publishes an executed order to the ledger stream. Journaling
// failures are logged, never surfaced: the order already succeeded.
func (s *Service) journalFill(symbol string, side entity.OrderSide, orderType entity.OrderType, size decimal.Decimal, price *decimal.Decimal, result *entity.OrderResult) {
	if s.js == nil {
		return
	}

	now := time.Now().UTC()
	record := entity.TradeRecord{
		RequestID:  uuid.NewString(),
		Account:    s.address,
		Symbol:     symbol,
		Side:       side,
		Type:       orderType,
		Size:       size,
		Price:      price,
		FilledSize: result.FilledSize,
		Status:     result.Status,
		PlacedAt:   now,
		CreatedAt:  now,
	}
	if result.AvgPrice.IsPositive() {
		avg := result.AvgPrice
		record.AvgFillPrice = &avg
	}
	if result.OrderID != 0 {
		record.OrderID.String = fmt.Sprintf("%d", result.OrderID)
		record.OrderID.Valid = true
	}

	err := util.PublishEvent(s.js, constant.LedgerStreamSubjectFill, entity.FillEvent{Data: record})
	if err != nil {
		logrus.Warnf("failed to journal fill for %s: %v", symbol, err)
	}
}

func parseOrderResult(resp *hyperliquid.ExchangeResponse) (*entity.OrderResult, error) {
	statuses := resp.Statuses()
	if len(statuses) == 0 {
		return nil, errors.New("exchange returned no order status")
	}

	status := statuses[0]
	switch {
	case status.Filled != nil:
		filledSize, err := decimal.NewFromString(status.Filled.TotalSz)
		if err != nil {
			return nil, fmt.Errorf("invalid filled size: %w", err)
		}
		avgPrice, err := decimal.NewFromString(status.Filled.AvgPx)
		if err != nil {
			return nil, fmt.Errorf("invalid average fill price: %w", err)
		}

		return &entity.OrderResult{
			OrderID:    status.Filled.Oid,
			Status:     "filled",
			FilledSize: filledSize,
			AvgPrice:   avgPrice,
		}, nil
	case status.Resting != nil:
		return &entity.OrderResult{
			OrderID: status.Resting.Oid,
			Status:  "resting",
		}, nil
	default:
		return nil, fmt.Errorf("order not accepted: %s", status.Error)
	}
}

func validateTriggerSide(isLong bool, mid, trigger decimal.Decimal, tpsl string) error {
	wrongSide := false
	switch tpsl {
	case hyperliquid.TpslStopLoss:
		// A long's stop must sit below the market; a short's above.
		if isLong {
			wrongSide = trigger.GreaterThanOrEqual(mid)
		} else {
			wrongSide = trigger.LessThanOrEqual(mid)
		}
	case hyperliquid.TpslTakeProfit:
		if isLong {
			wrongSide = trigger.LessThanOrEqual(mid)
		} else {
			wrongSide = trigger.GreaterThanOrEqual(mid)
		}
	}

	if wrongSide {
		return fmt.Errorf("%w: trigger price %s is on the wrong side of mid %s", entity.ErrInvalidParameter, trigger.String(), mid.String())
	}

	return nil
}

func mapPosition(raw hyperliquid.RawPosition) (entity.Position, bool, error) {
	size, err := decimal.NewFromString(raw.Szi)
	if err != nil {
		return entity.Position{}, false, fmt.Errorf("invalid position size: %w", err)
	}
	if size.IsZero() {
		return entity.Position{}, false, nil
	}

	entryPrice := decimal.Zero
	if raw.EntryPx != nil {
		entryPrice, err = decimal.NewFromString(*raw.EntryPx)
		if err != nil {
			return entity.Position{}, false, fmt.Errorf("invalid entry price: %w", err)
		}
	}

	unrealized, err := decimal.NewFromString(raw.UnrealizedPnl)
	if err != nil {
		return entity.Position{}, false, fmt.Errorf("invalid unrealized pnl: %w", err)
	}

	marginUsed, err := decimal.NewFromString(raw.MarginUsed)
	if err != nil {
		return entity.Position{}, false, fmt.Errorf("invalid margin used: %w", err)
	}

	leverage, err := raw.Leverage.Value.Int64()
	if err != nil {
		// some payloads carry leverage as a float string
		if f, ferr := raw.Leverage.Value.Float64(); ferr == nil {
			leverage = int64(f)
		}
	}

	position := entity.Position{
		Symbol:        raw.Coin,
		Size:          size,
		EntryPrice:    entryPrice,
		UnrealizedPnl: unrealized,
		MarginUsed:    marginUsed,
		Leverage:      int32(leverage),
	}

	if raw.LiquidationPx != nil {
		liq, err := decimal.NewFromString(*raw.LiquidationPx)
		if err == nil {
			position.LiquidationPrice = &liq
		}
	}

	return position, true, nil
}

func mapBookSide(levels []hyperliquid.BookLevel, depth int) ([]entity.PriceLevel, error) {
	if len(levels) > depth {
		levels = levels[:depth]
	}

	side := make([]entity.PriceLevel, 0, len(levels))
	for _, level := range levels {
		price, err := decimal.NewFromString(level.Px)
		if err != nil {
			return nil, fmt.Errorf("invalid book price: %w", err)
		}
		size, err := decimal.NewFromString(level.Sz)
		if err != nil {
			return nil, fmt.Errorf("invalid book size: %w", err)
		}
		side = append(side, entity.PriceLevel{Price: price, Size: size})
	}

	return side, nil
}

func mapCandle(bar hyperliquid.CandleBar) (entity.Candle, error) {
	open, err := decimal.NewFromString(bar.Open)
	if err != nil {
		return entity.Candle{}, fmt.Errorf("invalid candle open: %w", err)
	}
	high, err := decimal.NewFromString(bar.High)
	if err != nil {
		return entity.Candle{}, fmt.Errorf("invalid candle high: %w", err)
	}
	low, err := decimal.NewFromString(bar.Low)
	if err != nil {
		return entity.Candle{}, fmt.Errorf("invalid candle low: %w", err)
	}
	closePx, err := decimal.NewFromString(bar.Close)
	if err != nil {
		return entity.Candle{}, fmt.Errorf("invalid candle close: %w", err)
	}
	volume, err := decimal.NewFromString(bar.Volume)
	if err != nil {
		return entity.Candle{}, fmt.Errorf("invalid candle volume: %w", err)
	}

	return entity.Candle{
		Timestamp: bar.OpenTime,
		Open:      open,
		High:      high,
		Low:       low,
		Close:     closePx,
		Volume:    volume,
	}, nil
}

func sideFromWire(side string) entity.OrderSide {
	if side == "B" {
		return entity.OrderSideBuy
	}
	return entity.OrderSideSell
}

// roundSize truncates to the market's size precision.
func roundSize(size decimal.Decimal, szDecimals int32) decimal.Decimal {
	return size.Truncate(szDecimals)
}

// roundPrice clamps a price to five significant figures and the market's
// maximum price decimals.
func roundPrice(price decimal.Decimal, szDecimals int32) decimal.Decimal {
	if price.IsZero() {
		return price
	}

	maxDecimals := int32(maxPriceDecimals) - szDecimals
	if maxDecimals < 0 {
		maxDecimals = 0
	}

	// digits left of the decimal point; negative for sub-1 prices
	magnitude := int32(price.NumDigits()) + price.Exponent()

	sigDecimals := int32(maxSigFigs) - magnitude
	if sigDecimals < 0 {
		sigDecimals = 0
	}
	if sigDecimals > maxDecimals {
		sigDecimals = maxDecimals
	}

	return price.Round(sigDecimals)
}

// wireDecimal renders a decimal without trailing zeros, the format the
// exchange hashes and echoes back.
func wireDecimal(d decimal.Decimal) string {
	out := d.String()
	if strings.Contains(out, ".") {
		out = strings.TrimRight(out, "0")
		out = strings.TrimRight(out, ".")
	}
	return out
}
