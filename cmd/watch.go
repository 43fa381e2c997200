/*
Copyright © 2026 Robinclaw Authors
*/
package cmd

import (
	"github.com/robinclaw/robinclaw/internal/bootstrap"
	"github.com/spf13/cobra"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [COIN]",
	Short: "stream live prices to stdout (orderbook when a coin is given)",
	Args:  cobra.MaximumNArgs(1),
	Run:   bootstrap.RunWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
