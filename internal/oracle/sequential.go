package oracle

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/quantumauth-io/quantum-go-utils/log"
	"github.com/shopspring/decimal"

	"github.com/quantumauth-io/quantum-oracle-client/internal/assets"
	"github.com/quantumauth-io/quantum-oracle-client/internal/constants"
	"github.com/quantumauth-io/quantum-oracle-client/internal/metrics"
)

// SequentialReader issues one getLatestPrice call per asset, in order, each
// awaited before the next. A failing asset reads as zero and does not abort
// the others.
type SequentialReader struct {
	caller LatestPriceCaller
	now    clock
}

func NewSequentialReader(caller LatestPriceCaller) *SequentialReader {
	return &SequentialReader{caller: caller, now: utcNow}
}

func (r *SequentialReader) Strategy() string { return constants.StrategySequential }

func (r *SequentialReader) FetchAll(ctx context.Context, list []assets.Descriptor) (*Snapshot, error) {
	entries := make([]Price, 0, len(list))

	for _, a := range list {
		// The cycle deadline is a failure of the whole cycle, not of one asset.
		if err := ctx.Err(); err != nil {
			return nil, callFailure(err, "fetch %s", a.Symbol)
		}

		value := decimal.Zero
		raw, err := r.caller.GetLatestPrice(&bind.CallOpts{Context: ctx}, a.Symbol)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, callFailure(ctxErr, "fetch %s", a.Symbol)
			}
			log.Warn("price fetch failed, using zero", "symbol", a.Symbol, "error", err)
			metrics.AssetFetchFailures.WithLabelValues(a.Symbol).Inc()
		} else {
			value = Normalize(raw)
		}

		entries = append(entries, Price{Symbol: a.Symbol, Value: value, AsOf: r.now()})
	}

	// A deadline that expired during the last call fails the cycle too.
	if err := ctx.Err(); err != nil {
		return nil, callFailure(err, "fetch prices")
	}

	return &Snapshot{Entries: entries, TakenAt: r.now()}, nil
}
