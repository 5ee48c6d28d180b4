package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"

	"github.com/quantumauth-io/quantum-oracle-client/internal/assets"
	"github.com/quantumauth-io/quantum-oracle-client/internal/chains"
	"github.com/quantumauth-io/quantum-oracle-client/internal/constants"
)

const envPrefix = "QOC"

type ClientSettings struct {
	LocalHost      string
	Port           string
	AllowedOrigins []string
}

type WalletSettings struct {
	Mode        string
	RPCURL      string
	Accounts    []string
	AutoApprove bool
}

type OracleSettings struct {
	ContractAddress string
	Strategy        string
	Assets          []assets.Descriptor
}

type PollingSettings struct {
	Interval           time.Duration
	Timeout            time.Duration
	ChainCheckInterval time.Duration
}

type NotifySettings struct {
	TelegramToken  string
	TelegramChatID int64
	RedisURL       string
	DedupWindow    time.Duration
}

type Config struct {
	ClientSettings ClientSettings
	Wallet         WalletSettings
	Oracle         OracleSettings
	Polling        PollingSettings
	Networks       map[string]chains.NetworkConfig
	Notify         NotifySettings
}

// Load reads the embedded defaults, merges the first config.yaml found on the
// search path, applies the environment and validates the result.
func Load() (*Config, error) {
	home, _ := os.UserHomeDir()
	paths := []string{
		filepath.Join(home, ".config", constants.AppName),
		filepath.Join(home, "config"),
		".",
	}
	return LoadFromPaths(paths)
}

func LoadFromPaths(paths []string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(EmbeddedConfigYAML)); err != nil {
		return nil, errors.Wrap(err, "read embedded config")
	}

	v.SetConfigName("config")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "merge config file")
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("Oracle.ContractAddress", constants.EnvContractAddress); err != nil {
		return nil, errors.Wrap(err, "bind contract address env")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration and normalises it in place.
func (c *Config) Validate() error {
	if err := c.normalizeOracle(); err != nil {
		return err
	}
	if err := c.normalizeWallet(); err != nil {
		return err
	}
	c.normalizePolling()

	if strings.TrimSpace(c.ClientSettings.Port) == "" {
		return errors.New("ClientSettings.Port is required")
	}
	if strings.TrimSpace(c.ClientSettings.LocalHost) == "" {
		c.ClientSettings.LocalHost = "127.0.0.1"
	}
	if c.Notify.DedupWindow <= 0 {
		c.Notify.DedupWindow = 10 * time.Minute
	}
	return nil
}

func (c *Config) normalizeOracle() error {
	addr := strings.TrimSpace(c.Oracle.ContractAddress)
	if addr == "" {
		return fmt.Errorf("contract address is required (set %s)", constants.EnvContractAddress)
	}
	if !strings.HasPrefix(addr, "0x") && !strings.HasPrefix(addr, "0X") {
		addr = "0x" + addr
	}
	if !common.IsHexAddress(addr) {
		return fmt.Errorf("invalid contract address %q", c.Oracle.ContractAddress)
	}
	c.Oracle.ContractAddress = common.HexToAddress(addr).Hex()

	strategy := strings.ToLower(strings.TrimSpace(c.Oracle.Strategy))
	switch strategy {
	case "":
		strategy = constants.StrategySequential
	case constants.StrategySequential, constants.StrategyBatched:
	default:
		return fmt.Errorf("invalid Oracle.Strategy %q (allowed: %s, %s)",
			c.Oracle.Strategy, constants.StrategySequential, constants.StrategyBatched)
	}
	c.Oracle.Strategy = strategy

	list := c.Oracle.Assets
	if len(list) == 0 {
		list = assets.Defaults()
	}
	normalized, err := assets.Normalize(list)
	if err != nil {
		return errors.Wrap(err, "Oracle.Assets")
	}
	if strategy == constants.StrategyBatched && len(normalized) != constants.BatchArity {
		return fmt.Errorf("batched strategy needs exactly %d assets, got %d", constants.BatchArity, len(normalized))
	}
	c.Oracle.Assets = normalized
	return nil
}

func (c *Config) normalizeWallet() error {
	mode := strings.ToLower(strings.TrimSpace(c.Wallet.Mode))
	switch mode {
	case "":
		mode = constants.WalletModeRemote
	case constants.WalletModeLocal, constants.WalletModeRemote:
	default:
		return fmt.Errorf("invalid Wallet.Mode %q (allowed: %s, %s)", c.Wallet.Mode, constants.WalletModeLocal, constants.WalletModeRemote)
	}
	c.Wallet.Mode = mode

	if strings.TrimSpace(c.Wallet.RPCURL) == "" {
		return errors.New("Wallet.RPCURL is required")
	}

	out := make([]string, 0, len(c.Wallet.Accounts))
	for _, raw := range c.Wallet.Accounts {
		a := strings.TrimSpace(raw)
		if !common.IsHexAddress(a) {
			return fmt.Errorf("Wallet.Accounts contains invalid address %q", raw)
		}
		out = append(out, common.HexToAddress(a).Hex())
	}
	if mode == constants.WalletModeLocal && len(out) == 0 {
		return errors.New("local wallet mode needs at least one account in Wallet.Accounts")
	}
	c.Wallet.Accounts = out
	return nil
}

func (c *Config) normalizePolling() {
	if c.Polling.Interval <= 0 {
		c.Polling.Interval = constants.DefaultPollInterval
	}
	if c.Polling.Timeout <= 0 {
		c.Polling.Timeout = constants.DefaultCycleTimeout
	}
	if c.Polling.ChainCheckInterval <= 0 {
		c.Polling.ChainCheckInterval = constants.DefaultChainCheckInterval
	}
}

// AccountAddresses returns the configured local wallet accounts.
func (c *Config) AccountAddresses() []common.Address {
	out := make([]common.Address, 0, len(c.Wallet.Accounts))
	for _, a := range c.Wallet.Accounts {
		out = append(out, common.HexToAddress(a))
	}
	return out
}
