/*
Copyright © 2026 Robinclaw Authors
*/
package cmd

import (
	"github.com/robinclaw/robinclaw/internal/bootstrap"
	"github.com/spf13/cobra"
)

// balanceCmd represents the balance command
var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "print the account margin summary",
	Run:   bootstrap.RunBalance,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}
