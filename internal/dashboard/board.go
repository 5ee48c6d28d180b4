package dashboard

import (
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantumauth-io/quantum-oracle-client/internal/assets"
	"github.com/quantumauth-io/quantum-oracle-client/internal/metrics"
	"github.com/quantumauth-io/quantum-oracle-client/internal/oracle"
)

var hundred = decimal.NewFromInt(100)

// Connection is the part of the connection state a renderer shows.
type Connection struct {
	State       string `json:"state"`
	Reason      string `json:"reason,omitempty"`
	NetworkName string `json:"networkName,omitempty"`
}

type Card struct {
	Symbol      string `json:"symbol"`
	DisplayName string `json:"displayName"`
	Price       string `json:"price"`
	// Change is the percentage move since the previous snapshot, two
	// decimals. Empty when there is nothing to compare with.
	Change string `json:"change,omitempty"`
}

// View is the plain data snapshot handed to a renderer.
type View struct {
	Connection Connection `json:"connection"`
	IsLoading  bool       `json:"isLoading"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
	Cards      []Card     `json:"cards"`
}

// generation is the pair of snapshots a View is built from. It is replaced
// as a whole so a View never mixes values of two polls.
type generation struct {
	prev *oracle.Snapshot
	curr *oracle.Snapshot
}

type Board struct {
	assets []assets.Descriptor
	gen    atomic.Pointer[generation]
}

func NewBoard(list []assets.Descriptor) *Board {
	b := &Board{assets: append([]assets.Descriptor(nil), list...)}
	b.gen.Store(&generation{})
	return b
}

// Publish makes snap the current snapshot.
func (b *Board) Publish(snap *oracle.Snapshot) {
	if snap == nil {
		return
	}
	for {
		old := b.gen.Load()
		if b.gen.CompareAndSwap(old, &generation{prev: old.curr, curr: snap}) {
			break
		}
	}
	for _, p := range snap.Entries {
		metrics.PriceValue.WithLabelValues(p.Symbol).Set(p.Value.InexactFloat64())
	}
}

// Reset forgets every snapshot.
func (b *Board) Reset() {
	b.gen.Store(&generation{})
}

// View builds the renderer snapshot from one consistent generation.
func (b *Board) View(conn Connection, loading bool) View {
	g := b.gen.Load()

	v := View{
		Connection: conn,
		IsLoading:  loading,
		Cards:      make([]Card, 0, len(b.assets)),
	}
	if g.curr != nil {
		at := g.curr.TakenAt
		v.UpdatedAt = &at
	}

	for _, a := range b.assets {
		card := Card{Symbol: a.Symbol, DisplayName: a.DisplayName, Price: oracle.FormatPrice(decimal.Zero)}
		cur, ok := g.curr.Get(a.Symbol)
		if ok {
			card.Price = oracle.FormatPrice(cur.Value)
			if prev, ok := g.prev.Get(a.Symbol); ok {
				card.Change = change(prev.Value, cur.Value)
			}
		}
		v.Cards = append(v.Cards, card)
	}
	return v
}

func change(prev, cur decimal.Decimal) string {
	if prev.IsZero() {
		return ""
	}
	pct := cur.Sub(prev).Div(prev).Mul(hundred).Round(2)
	if pct.IsPositive() {
		return "+" + pct.StringFixed(2) + "%"
	}
	return pct.StringFixed(2) + "%"
}
