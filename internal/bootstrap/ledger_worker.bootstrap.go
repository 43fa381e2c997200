package bootstrap

import (
	"context"

	"github.com/robinclaw/robinclaw/internal/config"
	"github.com/robinclaw/robinclaw/internal/infrastructure"
	"github.com/robinclaw/robinclaw/internal/repository"
	"github.com/robinclaw/robinclaw/internal/service/ledger"
	"github.com/robinclaw/robinclaw/internal/util"
	"github.com/spf13/cobra"
)

// StartLedgerWorker consumes journaled fills and persists them to the ledger
// database.
func StartLedgerWorker(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ledgerDB, err := infrastructure.NewPostgresConnection(ctx, config.Env.Database["ledger"])
	util.ContinueOrFatal(err)

	nc, js, err := infrastructure.NewJetstream()
	util.ContinueOrFatal(err)

	tradeRecordRepo := repository.NewTradeRecordRepository(ledgerDB)

	ledgerService := ledger.NewLedgerService(js, tradeRecordRepo)
	err = ledgerService.JetstreamEventInit(ctx)
	util.ContinueOrFatal(err)
	err = ledgerService.Subscribe()
	util.ContinueOrFatal(err)

	wait := gracefulShutdown(ctx, config.Env.GracefulShutdownTimeout, map[string]operation{
		"ledger database": func(ctx context.Context) error {
			cancel()
			return ledgerDB.Close()
		},
		"nats connection": func(ctx context.Context) error {
			return infrastructure.CloseJetstream(nc)
		},
	})

	<-wait
}
