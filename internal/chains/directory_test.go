package chains

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDirectory_Defaults(t *testing.T) {
	d, err := NewDirectory(nil)
	require.NoError(t, err)

	assert.Equal(t, "sepolia", d.NameFor(11155111))
	assert.Equal(t, "mainnet", d.NameFor(1))
	assert.Equal(t, "chain-42", d.NameFor(42))
	assert.Equal(t, []string{"holesky", "mainnet", "sepolia"}, d.Names())
}

func TestNewDirectory_ChainIDFromHex(t *testing.T) {
	d, err := NewDirectory(map[string]NetworkConfig{
		" Sepolia ": {ChainIDHex: "0xAA36A7"},
	})
	require.NoError(t, err)

	n, err := d.ResolveByChainID(11155111)
	require.NoError(t, err)
	assert.Equal(t, "sepolia", n.Name)
	assert.Equal(t, "0xaa36a7", n.ChainIDHex)
}

func TestNewDirectory_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		networks map[string]NetworkConfig
	}{
		{"empty name", map[string]NetworkConfig{" ": {ChainID: 1}}},
		{"missing id", map[string]NetworkConfig{"foo": {}}},
		{"bad hex", map[string]NetworkConfig{"foo": {ChainIDHex: "zz"}}},
		{"duplicate id", map[string]NetworkConfig{"a": {ChainID: 5}, "b": {ChainID: 5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDirectory(tt.networks)
			assert.Error(t, err)
		})
	}
}

func TestResolveByChainID_Zero(t *testing.T) {
	d, err := NewDirectory(nil)
	require.NoError(t, err)

	_, err = d.ResolveByChainID(0)
	assert.Error(t, err)
}
