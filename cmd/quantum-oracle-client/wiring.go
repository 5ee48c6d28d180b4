package main

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/quantumauth-io/quantum-go-utils/log"
	"github.com/quantumauth-io/quantum-go-utils/qa_evm"
	"github.com/quantumauth-io/quantum-go-utils/retry"

	clientconfig "github.com/quantumauth-io/quantum-oracle-client/cmd/quantum-oracle-client/config"
	"github.com/quantumauth-io/quantum-oracle-client/internal/chains"
	"github.com/quantumauth-io/quantum-oracle-client/internal/constants"
	"github.com/quantumauth-io/quantum-oracle-client/internal/contracts/bindings/go/priceoracle"
	"github.com/quantumauth-io/quantum-oracle-client/internal/notify"
	"github.com/quantumauth-io/quantum-oracle-client/internal/oracle"
	"github.com/quantumauth-io/quantum-oracle-client/internal/provider"
	"github.com/quantumauth-io/quantum-oracle-client/internal/wallet"
)

const startupCheckTimeout = 30 * time.Second

type walletRuntime struct {
	rpc      *rpc.Client
	chain    qa_evm.BlockchainClient
	provider *provider.Provider
}

func (w *walletRuntime) Close() {
	w.rpc.Close()
}

// newWallet builds the injected wallet for the configured mode. Contract
// reads share its RPC connection.
func newWallet(ctx context.Context, cfg *clientconfig.Config) (*walletRuntime, error) {
	names, err := chains.NewDirectory(cfg.Networks)
	if err != nil {
		return nil, errors.Wrap(err, "network directory")
	}

	client, err := rpc.DialContext(ctx, cfg.Wallet.RPCURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to wallet at %s", cfg.Wallet.RPCURL)
	}

	var injected provider.Wallet = client
	if cfg.Wallet.Mode == constants.WalletModeLocal {
		var approver wallet.Approver = wallet.NewTerminalApprover()
		if cfg.Wallet.AutoApprove {
			approver = wallet.AutoApprove
		}
		local, err := wallet.NewLocal(client, cfg.AccountAddresses(), approver)
		if err != nil {
			client.Close()
			return nil, err
		}
		injected = local
	}

	log.Info("wallet configured", "mode", cfg.Wallet.Mode, "url", cfg.Wallet.RPCURL, "networks", names.Names())

	return &walletRuntime{
		rpc:      client,
		chain:    ethclient.NewClient(client),
		provider: provider.NewProvider(injected, names),
	}, nil
}

func newPriceReader(ctx context.Context, cfg *clientconfig.Config, w *walletRuntime) (oracle.Reader, error) {
	address := common.HexToAddress(cfg.Oracle.ContractAddress)
	checkContract(ctx, w.chain, address)

	caller, err := priceoracle.NewPriceOracleCaller(address, w.chain)
	if err != nil {
		return nil, errors.Wrap(err, "bind price oracle")
	}
	reader, err := oracle.NewReader(cfg.Oracle.Strategy, caller)
	if err != nil {
		return nil, err
	}

	log.Info("price oracle bound", "address", address.Hex(), "strategy", reader.Strategy(), "assets", len(cfg.Oracle.Assets))
	return reader, nil
}

// checkContract checks once at startup that the endpoint answers and the
// contract has code. Failures are logged only; the engine reports them to the
// user when it connects and polls.
func checkContract(ctx context.Context, client qa_evm.BlockchainClient, address common.Address) {
	ctx, cancel := context.WithTimeout(ctx, startupCheckTimeout)
	defer cancel()

	cfg := retry.DefaultConfig()
	cfg.MaxDelayBeforeRetrying = 5 * time.Second
	cfg.InitialDelayBeforeRetrying = 500 * time.Millisecond

	_, err := retry.Retry(ctx, cfg,
		func(ctx context.Context) ([]interface{}, error) {
			chainID, err := client.ChainID(ctx)
			if err != nil {
				return nil, errors.Wrap(err, "eth_chainId")
			}
			code, err := client.CodeAt(ctx, address, nil)
			if err != nil {
				return nil, errors.Wrap(err, "eth_getCode")
			}
			if len(code) == 0 {
				log.Warn("no contract code at oracle address", "address", address.Hex(), "chain_id", chainID.String())
			}
			return []interface{}{chainID}, nil
		},
		nil, // always retry
		"check price oracle contract")
	if err != nil {
		log.Warn("price oracle startup check failed", "address", address.Hex(), "error", err)
	}
}

func newNotifier(ctx context.Context, cfg *clientconfig.Config) (notify.Sink, func()) {
	sinks := notify.Multi{notify.LogSink{}}
	if cfg.Notify.TelegramToken != "" && cfg.Notify.TelegramChatID != 0 {
		sinks = append(sinks, notify.NewTelegramSink(cfg.Notify.TelegramToken, cfg.Notify.TelegramChatID))
		log.Info("telegram notifications enabled", "chat_id", cfg.Notify.TelegramChatID)
	}

	if cfg.Notify.RedisURL == "" {
		return sinks, func() {}
	}

	dedup, err := notify.NewDedup(ctx, cfg.Notify.RedisURL, cfg.Notify.DedupWindow, sinks)
	if err != nil {
		log.Warn("notification dedup disabled", "error", err)
		return sinks, func() {}
	}
	log.Info("notification dedup enabled", "window", cfg.Notify.DedupWindow.String())
	return dedup, func() {
		if err := dedup.Close(); err != nil {
			log.Error("failed to close redis", "error", err)
		}
	}
}
