/*
Copyright © 2026 Robinclaw Authors
*/
package cmd

import (
	"github.com/robinclaw/robinclaw/internal/bootstrap"
	"github.com/spf13/cobra"
)

// takeProfitCmd represents the take-profit command
var takeProfitCmd = &cobra.Command{
	Use:   "take-profit SYMBOL PRICE",
	Short: "place a reduce-only take-profit trigger on an open position",
	Args:  cobra.ExactArgs(2),
	Run:   bootstrap.RunTakeProfit,
}

func init() {
	rootCmd.AddCommand(takeProfitCmd)
	takeProfitCmd.Flags().String("size", "", "trigger size (default: full position)")
}
