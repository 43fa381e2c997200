/*
Copyright © 2026 Robinclaw Authors
*/
package cmd

import (
	"github.com/robinclaw/robinclaw/internal/bootstrap"
	"github.com/spf13/cobra"
)

// leverageCmd represents the leverage command
var leverageCmd = &cobra.Command{
	Use:   "leverage SYMBOL N",
	Short: "set the leverage multiplier for a market",
	Args:  cobra.ExactArgs(2),
	Run:   bootstrap.RunLeverage,
}

func init() {
	rootCmd.AddCommand(leverageCmd)
	leverageCmd.Flags().Bool("isolated", false, "use isolated margin instead of cross")
}
