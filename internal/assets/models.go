package assets

// Descriptor is one tracked asset. The order of a descriptor list drives
// display order and, for the sequential strategy, fetch order.
type Descriptor struct {
	Symbol      string `json:"symbol" yaml:"symbol" mapstructure:"symbol"`
	DisplayName string `json:"displayName" yaml:"displayName" mapstructure:"displayName"`
}

// Defaults are the assets tracked when the configuration lists none.
func Defaults() []Descriptor {
	return []Descriptor{
		{Symbol: "BTC", DisplayName: "Bitcoin"},
		{Symbol: "ETH", DisplayName: "Ethereum"},
		{Symbol: "LINK", DisplayName: "Chainlink"},
	}
}
