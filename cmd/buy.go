/*
Copyright © 2026 Robinclaw Authors
*/
package cmd

import (
	"github.com/robinclaw/robinclaw/internal/bootstrap"
	"github.com/spf13/cobra"
)

// buyCmd represents the buy command
var buyCmd = &cobra.Command{
	Use:   "buy SYMBOL SIZE",
	Short: "place a market buy order",
	Args:  cobra.ExactArgs(2),
	Run:   bootstrap.RunBuy,
}

func init() {
	rootCmd.AddCommand(buyCmd)
}
