/*
Copyright © 2026 Robinclaw Authors
*/
package cmd

import (
	"github.com/robinclaw/robinclaw/internal/bootstrap"
	"github.com/spf13/cobra"
)

// stopLossCmd represents the stop-loss command
var stopLossCmd = &cobra.Command{
	Use:   "stop-loss SYMBOL PRICE",
	Short: "place a reduce-only stop-loss trigger on an open position",
	Args:  cobra.ExactArgs(2),
	Run:   bootstrap.RunStopLoss,
}

func init() {
	rootCmd.AddCommand(stopLossCmd)
	stopLossCmd.Flags().String("size", "", "trigger size (default: full position)")
}
