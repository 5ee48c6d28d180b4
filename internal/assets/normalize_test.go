package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	got, err := Normalize([]Descriptor{
		{Symbol: " eth ", DisplayName: "Ethereum"},
		{Symbol: "btc"},
		{Symbol: "ETH", DisplayName: "dup"},
		{Symbol: "link", DisplayName: " Chainlink "},
	})
	require.NoError(t, err)

	assert.Equal(t, []Descriptor{
		{Symbol: "ETH", DisplayName: "Ethereum"},
		{Symbol: "BTC", DisplayName: "BTC"},
		{Symbol: "LINK", DisplayName: "Chainlink"},
	}, got)
	assert.Equal(t, []string{"ETH", "BTC", "LINK"}, Symbols(got))
}

func TestNormalize_Errors(t *testing.T) {
	_, err := Normalize(nil)
	assert.Error(t, err)

	_, err = Normalize([]Descriptor{{Symbol: "  "}})
	assert.Error(t, err)
}

func TestDefaults(t *testing.T) {
	got, err := Normalize(Defaults())
	require.NoError(t, err)
	assert.Equal(t, []string{"BTC", "ETH", "LINK"}, Symbols(got))
}
