/*
Copyright © 2026 Robinclaw Authors
*/
package cmd

import (
	"github.com/robinclaw/robinclaw/internal/bootstrap"
	"github.com/spf13/cobra"
)

// positionsCmd represents the positions command
var positionsCmd = &cobra.Command{
	Use:   "positions",
	Short: "print open positions",
	Run:   bootstrap.RunPositions,
}

func init() {
	rootCmd.AddCommand(positionsCmd)
}
