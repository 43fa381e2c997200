package bootstrap

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/robinclaw/robinclaw/internal/config"
	"github.com/robinclaw/robinclaw/internal/constant"
	"github.com/robinclaw/robinclaw/internal/entity"
	"github.com/robinclaw/robinclaw/internal/hyperliquid"
	"github.com/robinclaw/robinclaw/internal/infrastructure"
	"github.com/robinclaw/robinclaw/internal/util"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// RunPrices prints the current mid price of every market.
func RunPrices(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	tradingService, nc := newTradingService(ctx)
	defer func() { _ = infrastructure.CloseJetstream(nc) }()

	prices, err := tradingService.GetPrices(ctx)
	util.ContinueOrFatal(err)

	symbols := make([]string, 0, len(prices))
	for symbol := range prices {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	for _, symbol := range symbols {
		fmt.Printf("%-12s %s\n", symbol, prices[symbol].String())
	}
}

// RunMarkets prints the tradable market catalog.
func RunMarkets(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	tradingService, nc := newTradingService(ctx)
	defer func() { _ = infrastructure.CloseJetstream(nc) }()

	markets, err := tradingService.GetMarkets(ctx)
	util.ContinueOrFatal(err)

	fmt.Printf("%-12s %12s %14s\n", "MARKET", "SZ DECIMALS", "MAX LEVERAGE")
	for _, market := range markets {
		fmt.Printf("%-12s %12d %13dx\n", market.Name, market.SzDecimals, market.MaxLeverage)
	}
}

// RunPositions prints every open position.
func RunPositions(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	tradingService, nc := newTradingService(ctx)
	defer func() { _ = infrastructure.CloseJetstream(nc) }()

	positions, err := tradingService.GetPositions(ctx)
	util.ContinueOrFatal(err)

	if len(positions) == 0 {
		fmt.Println("no open positions")
		return
	}

	fmt.Printf("%-12s %14s %14s %14s %10s\n", "MARKET", "SIZE", "ENTRY", "UNREALIZED", "LEVERAGE")
	for _, position := range positions {
		fmt.Printf("%-12s %14s %14s %14s %9dx\n",
			position.Symbol,
			position.Size.String(),
			position.EntryPrice.String(),
			position.UnrealizedPnl.String(),
			position.Leverage,
		)
	}
}

// RunBalance prints the account margin summary.
func RunBalance(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	tradingService, nc := newTradingService(ctx)
	defer func() { _ = infrastructure.CloseJetstream(nc) }()

	balance, err := tradingService.GetBalance(ctx)
	util.ContinueOrFatal(err)

	fmt.Printf("address:         %s\n", tradingService.Address())
	fmt.Printf("equity:          %s\n", balance.Equity.String())
	fmt.Printf("withdrawable:    %s\n", balance.Withdrawable.String())
	fmt.Printf("margin used:     %s\n", balance.MarginUsed.String())
	fmt.Printf("unrealized pnl:  %s\n", balance.UnrealizedPnl.String())
}

// RunBuy places a market buy: buy SYMBOL SIZE.
func RunBuy(cmd *cobra.Command, args []string) {
	runMarketOrder(args, entity.OrderSideBuy)
}

// RunSell places a market sell: sell SYMBOL SIZE.
func RunSell(cmd *cobra.Command, args []string) {
	runMarketOrder(args, entity.OrderSideSell)
}

func runMarketOrder(args []string, side entity.OrderSide) {
	ctx := context.Background()
	symbol := args[0]
	size, err := decimal.NewFromString(args[1])
	util.ContinueOrFatal(err)

	tradingService, nc := newTradingService(ctx)
	defer func() { _ = infrastructure.CloseJetstream(nc) }()

	var result *entity.OrderResult
	if side == entity.OrderSideBuy {
		result, err = tradingService.MarketBuy(ctx, symbol, size)
	} else {
		result, err = tradingService.MarketSell(ctx, symbol, size)
	}
	util.ContinueOrFatal(err)

	printOrderResult(result)
}

// RunClose closes the full position in one market: close SYMBOL.
func RunClose(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	tradingService, nc := newTradingService(ctx)
	defer func() { _ = infrastructure.CloseJetstream(nc) }()

	result, err := tradingService.MarketClose(ctx, args[0])
	util.ContinueOrFatal(err)

	printOrderResult(result)
}

// RunLeverage sets the leverage multiplier: leverage SYMBOL N [--isolated].
func RunLeverage(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	symbol := args[0]
	leverage, err := strconv.Atoi(args[1])
	util.ContinueOrFatal(err)

	isolated, _ := cmd.Flags().GetBool("isolated")

	tradingService, nc := newTradingService(ctx)
	defer func() { _ = infrastructure.CloseJetstream(nc) }()

	err = tradingService.SetLeverage(ctx, symbol, leverage, !isolated)
	util.ContinueOrFatal(err)

	marginType := "cross"
	if isolated {
		marginType = "isolated"
	}
	fmt.Printf("leverage set to %dx (%s) for %s\n", leverage, marginType, symbol)
}

// RunStopLoss places a reduce-only stop trigger: stop-loss SYMBOL PRICE [--size S].
func RunStopLoss(cmd *cobra.Command, args []string) {
	runTriggerOrder(cmd, args, hyperliquid.TpslStopLoss)
}

// RunTakeProfit places a reduce-only take-profit trigger: take-profit SYMBOL PRICE [--size S].
func RunTakeProfit(cmd *cobra.Command, args []string) {
	runTriggerOrder(cmd, args, hyperliquid.TpslTakeProfit)
}

func runTriggerOrder(cmd *cobra.Command, args []string, tpsl string) {
	ctx := context.Background()
	symbol := args[0]
	triggerPrice, err := decimal.NewFromString(args[1])
	util.ContinueOrFatal(err)

	var size *decimal.Decimal
	if raw, _ := cmd.Flags().GetString("size"); strings.TrimSpace(raw) != "" {
		parsed, err := decimal.NewFromString(raw)
		util.ContinueOrFatal(err)
		size = &parsed
	}

	tradingService, nc := newTradingService(ctx)
	defer func() { _ = infrastructure.CloseJetstream(nc) }()

	var result *entity.OrderResult
	if tpsl == hyperliquid.TpslStopLoss {
		result, err = tradingService.StopLoss(ctx, symbol, triggerPrice, size)
	} else {
		result, err = tradingService.TakeProfit(ctx, symbol, triggerPrice, size)
	}
	util.ContinueOrFatal(err)

	printOrderResult(result)
}

// RunWatch streams live prices to stdout: watch [COIN].
func RunWatch(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wsURL := strings.TrimSpace(config.Env.Hyperliquid.WSURL)
	if wsURL == "" {
		wsURL = constant.MainnetWSURL
		if config.Env.Hyperliquid.Testnet {
			wsURL = constant.TestnetWSURL
		}
	}

	wsClient := hyperliquid.NewWSClient(wsURL)
	if len(args) > 0 {
		wsClient.SubscribeL2Book(args[0])
	} else {
		wsClient.SubscribeAllMids()
	}

	go func() {
		err := wsClient.Run(ctx, func(ctx context.Context, msg hyperliquid.WSMessage) error {
			switch msg.Channel {
			case "allMids":
				var mids hyperliquid.WSAllMids
				if err := json.Unmarshal(msg.Data, &mids); err != nil {
					return err
				}
				for _, symbol := range []string{"BTC", "ETH", "SOL"} {
					if price, ok := mids.Mids[symbol]; ok {
						fmt.Printf("%-12s %s\n", symbol, price)
					}
				}
			case "l2Book":
				var book hyperliquid.L2Book
				if err := json.Unmarshal(msg.Data, &book); err != nil {
					return err
				}
				if len(book.Levels[0]) > 0 && len(book.Levels[1]) > 0 {
					fmt.Printf("%-12s bid %s x %s | ask %s x %s\n",
						book.Coin,
						book.Levels[0][0].Px, book.Levels[0][0].Sz,
						book.Levels[1][0].Px, book.Levels[1][0].Sz,
					)
				}
			}
			return nil
		})
		util.ContinueOrFatal(err)
	}()

	wait := gracefulShutdown(ctx, config.Env.GracefulShutdownTimeout, map[string]operation{
		"ws feed": func(ctx context.Context) error {
			cancel()
			return nil
		},
	})

	<-wait
}

func printOrderResult(result *entity.OrderResult) {
	fmt.Printf("order id:    %d\n", result.OrderID)
	fmt.Printf("status:      %s\n", result.Status)
	if result.Filled() {
		fmt.Printf("filled size: %s\n", result.FilledSize.String())
		fmt.Printf("avg price:   %s\n", result.AvgPrice.String())
	}
}
