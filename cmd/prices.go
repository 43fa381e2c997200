/*
Copyright © 2026 Robinclaw Authors
*/
package cmd

import (
	"github.com/robinclaw/robinclaw/internal/bootstrap"
	"github.com/spf13/cobra"
)

// pricesCmd represents the prices command
var pricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "print current mid prices for all markets",
	Run:   bootstrap.RunPrices,
}

func init() {
	rootCmd.AddCommand(pricesCmd)
}
