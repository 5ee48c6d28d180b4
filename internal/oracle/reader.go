package oracle

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"

	"github.com/quantumauth-io/quantum-oracle-client/internal/assets"
	"github.com/quantumauth-io/quantum-oracle-client/internal/constants"
)

// ErrCallFailure marks a failed contract read. Recoverable: the next poll
// retries.
var ErrCallFailure = errors.New("contract call failed")

// Reader fetches one snapshot for an ordered asset list.
type Reader interface {
	FetchAll(ctx context.Context, list []assets.Descriptor) (*Snapshot, error)
	Strategy() string
}

// LatestPriceCaller is the per-symbol contract read.
type LatestPriceCaller interface {
	GetLatestPrice(opts *bind.CallOpts, symbol string) (*big.Int, error)
}

// AllPricesCaller is the batched contract read returning a fixed 5-tuple.
type AllPricesCaller interface {
	GetAllPrices(opts *bind.CallOpts) (*big.Int, *big.Int, *big.Int, *big.Int, *big.Int, error)
}

// PriceCaller is satisfied by the generated PriceOracleCaller.
type PriceCaller interface {
	LatestPriceCaller
	AllPricesCaller
}

// NewReader picks the fetch strategy configured for this deployment.
func NewReader(strategy string, caller PriceCaller) (Reader, error) {
	if caller == nil {
		return nil, errors.New("oracle: nil contract caller")
	}
	switch strategy {
	case "", constants.StrategySequential:
		return NewSequentialReader(caller), nil
	case constants.StrategyBatched:
		return NewBatchedReader(caller), nil
	default:
		return nil, fmt.Errorf("oracle: unknown fetch strategy %q", strategy)
	}
}

func callFailure(err error, format string, args ...interface{}) error {
	return errors.Mark(errors.Wrapf(err, format, args...), ErrCallFailure)
}

type clock func() time.Time

func utcNow() time.Time { return time.Now().UTC() }
