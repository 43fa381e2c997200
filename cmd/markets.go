/*
Copyright © 2026 Robinclaw Authors
*/
package cmd

import (
	"github.com/robinclaw/robinclaw/internal/bootstrap"
	"github.com/spf13/cobra"
)

// marketsCmd represents the markets command
var marketsCmd = &cobra.Command{
	Use:   "markets",
	Short: "print the tradable market catalog",
	Run:   bootstrap.RunMarkets,
}

func init() {
	rootCmd.AddCommand(marketsCmd)
}
