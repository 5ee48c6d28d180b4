package chains

// NetworkConfig describes a network the client knows by chain id.
type NetworkConfig struct {
	Name       string `json:"name" yaml:"name" mapstructure:"name"`
	ChainID    uint64 `json:"chainId" yaml:"chainId" mapstructure:"chainId"`
	ChainIDHex string `json:"chainIdHex" yaml:"chainIdHex" mapstructure:"chainIdHex"`
	Explorer   string `json:"explorer" yaml:"explorer" mapstructure:"explorer"`
}

// DefaultNetworks is used when the configuration does not list any network.
func DefaultNetworks() map[string]NetworkConfig {
	return map[string]NetworkConfig{
		"mainnet": {ChainID: 1, ChainIDHex: "0x1", Explorer: "https://etherscan.io"},
		"sepolia": {ChainID: 11155111, ChainIDHex: "0xaa36a7", Explorer: "https://sepolia.etherscan.io"},
		"holesky": {ChainID: 17000, ChainIDHex: "0x4268", Explorer: "https://holesky.etherscan.io"},
	}
}
