/*
Copyright © 2026 Robinclaw Authors
*/
package cmd

import (
	"github.com/robinclaw/robinclaw/internal/bootstrap"
	"github.com/spf13/cobra"
)

// ledgerWorkerCmd represents the ledger-worker command
var ledgerWorkerCmd = &cobra.Command{
	Use:   "ledger-worker",
	Short: "consume journaled fills and persist them to the ledger database",
	Run:   bootstrap.StartLedgerWorker,
}

func init() {
	rootCmd.AddCommand(ledgerWorkerCmd)
}
