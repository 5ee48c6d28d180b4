package constants

import "time"

const (
	AppName = "quantum-oracle-client"

	// ExpectedChainID is Sepolia. Connecting to any other chain is refused.
	ExpectedChainID     uint64 = 11155111
	ExpectedNetworkName        = "sepolia"

	// PriceDecimals is the fixed-point scale of every value returned by the
	// oracle contract (raw / 10^8).
	PriceDecimals int32 = 8

	// BatchArity is the tuple width of getAllPrices().
	BatchArity = 5

	DefaultPollInterval       = 30 * time.Second
	DefaultCycleTimeout       = 20 * time.Second
	DefaultChainCheckInterval = 15 * time.Second

	StrategySequential = "sequential"
	StrategyBatched    = "batched"

	WalletModeLocal  = "local"
	WalletModeRemote = "remote"

	// UserRejectedCode is the EIP-1193 error code a wallet returns when the
	// user declines a request.
	UserRejectedCode = 4001

	EnvContractAddress = "ORACLE_CONTRACT_ADDRESS"
)
