/*
Copyright © 2026 Robinclaw Authors
*/
package cmd

import (
	"github.com/robinclaw/robinclaw/internal/bootstrap"
	"github.com/spf13/cobra"
)

// closeCmd represents the close command
var closeCmd = &cobra.Command{
	Use:   "close SYMBOL",
	Short: "close the full position in one market",
	Args:  cobra.ExactArgs(1),
	Run:   bootstrap.RunClose,
}

func init() {
	rootCmd.AddCommand(closeCmd)
}
