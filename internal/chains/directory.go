package chains

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Directory resolves chain ids to configured networks.
type Directory struct {
	networks map[string]NetworkConfig
}

func NewDirectory(networks map[string]NetworkConfig) (*Directory, error) {
	if len(networks) == 0 {
		networks = DefaultNetworks()
	}

	out := make(map[string]NetworkConfig, len(networks))
	byID := make(map[uint64]string, len(networks))

	for name, n := range networks {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			return nil, errors.New("network name is empty")
		}

		if n.ChainID == 0 && n.ChainIDHex != "" {
			id, err := hexutil.DecodeUint64(strings.ToLower(strings.TrimSpace(n.ChainIDHex)))
			if err != nil {
				return nil, errors.Wrapf(err, "network %q has invalid chainIdHex %q", name, n.ChainIDHex)
			}
			n.ChainID = id
		}
		if n.ChainID == 0 {
			return nil, fmt.Errorf("network %q has no chainId", name)
		}
		n.ChainIDHex = hexutil.EncodeBig(new(big.Int).SetUint64(n.ChainID))
		n.Name = key

		if other, ok := byID[n.ChainID]; ok {
			return nil, fmt.Errorf("networks %q and %q share chainId %d", other, key, n.ChainID)
		}
		byID[n.ChainID] = key
		out[key] = n
	}

	return &Directory{networks: out}, nil
}

func (d *Directory) ResolveByChainID(chainID uint64) (NetworkConfig, error) {
	if chainID == 0 {
		return NetworkConfig{}, errors.New("chainID is 0")
	}
	for _, n := range d.networks {
		if n.ChainID == chainID {
			return n, nil
		}
	}
	return NetworkConfig{}, fmt.Errorf("unknown chainID %d", chainID)
}

// NameFor returns the configured name of chainID, or "chain-<id>" when the
// chain is not in the directory.
func (d *Directory) NameFor(chainID uint64) string {
	n, err := d.ResolveByChainID(chainID)
	if err != nil {
		return fmt.Sprintf("chain-%d", chainID)
	}
	return n.Name
}

// Names lists the configured networks in a stable order.
func (d *Directory) Names() []string {
	names := make([]string, 0, len(d.networks))
	for name := range d.networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
