package oracle

import (
	"time"

	"github.com/shopspring/decimal"
)

// Price is one normalised value and the time it was read.
type Price struct {
	Symbol string          `json:"symbol"`
	Value  decimal.Decimal `json:"value"`
	AsOf   time.Time       `json:"asOf"`
}

// Snapshot is the result of one poll cycle. Entries follow the asset order the
// cycle was asked for. A Snapshot is never modified after it is returned.
type Snapshot struct {
	Entries []Price   `json:"entries"`
	TakenAt time.Time `json:"takenAt"`
}

func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Entries)
}

// Get returns the price recorded for symbol.
func (s *Snapshot) Get(symbol string) (Price, bool) {
	if s == nil {
		return Price{}, false
	}
	for _, p := range s.Entries {
		if p.Symbol == symbol {
			return p, true
		}
	}
	return Price{}, false
}
