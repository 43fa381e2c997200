package constant

const (
	DevelopmentEnvironment = "development"
	ProductionEnvironment  = "production"
)

const (
	MainnetAPIURL = "https://api.hyperliquid.xyz"
	TestnetAPIURL = "https://api.hyperliquid-testnet.xyz"
	MainnetWSURL  = "wss://api.hyperliquid.xyz/ws"
	TestnetWSURL  = "wss://api.hyperliquid-testnet.xyz/ws"
)

const (
	LedgerStreamName        = "ledger"
	LedgerStreamSubjectAll  = "ledger.*"
	LedgerStreamSubjectFill = "ledger.fill"

	LedgerQueueName  = "ledger_queue"
	LedgerQueueGroup = "ledger_group"
)
