package oracle

import (
	"context"
	"fmt"
	"math/big"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"

	"github.com/quantumauth-io/quantum-oracle-client/internal/assets"
	"github.com/quantumauth-io/quantum-oracle-client/internal/constants"
)

// BatchedReader issues a single getAllPrices call whose tuple is positionally
// aligned with the asset list. Any failure fails the whole cycle.
type BatchedReader struct {
	caller AllPricesCaller
	now    clock
}

func NewBatchedReader(caller AllPricesCaller) *BatchedReader {
	return &BatchedReader{caller: caller, now: utcNow}
}

func (r *BatchedReader) Strategy() string { return constants.StrategyBatched }

func (r *BatchedReader) FetchAll(ctx context.Context, list []assets.Descriptor) (*Snapshot, error) {
	if len(list) != constants.BatchArity {
		return nil, errors.Mark(
			fmt.Errorf("getAllPrices returns %d values, %d assets configured", constants.BatchArity, len(list)),
			ErrCallFailure)
	}

	p0, p1, p2, p3, p4, err := r.caller.GetAllPrices(&bind.CallOpts{Context: ctx})
	if err != nil {
		return nil, callFailure(err, "getAllPrices")
	}

	raw := []*big.Int{p0, p1, p2, p3, p4}
	asOf := r.now()
	entries := make([]Price, len(list))
	for i, a := range list {
		entries[i] = Price{Symbol: a.Symbol, Value: Normalize(raw[i]), AsOf: asOf}
	}

	return &Snapshot{Entries: entries, TakenAt: asOf}, nil
}
