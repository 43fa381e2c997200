/*
Copyright © 2026 Robinclaw Authors
*/
package cmd

import (
	"github.com/robinclaw/robinclaw/internal/bootstrap"
	"github.com/spf13/cobra"
)

// sellCmd represents the sell command
var sellCmd = &cobra.Command{
	Use:   "sell SYMBOL SIZE",
	Short: "place a market sell order",
	Args:  cobra.ExactArgs(2),
	Run:   bootstrap.RunSell,
}

func init() {
	rootCmd.AddCommand(sellCmd)
}
