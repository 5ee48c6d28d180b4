package oracle

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/quantumauth-io/quantum-oracle-client/internal/constants"
)

// Normalize converts a raw contract value, scaled by 10^8, to a decimal.
// The conversion is exact.
func Normalize(raw *big.Int) decimal.Decimal {
	if raw == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(raw, -constants.PriceDecimals)
}

// FormatPrice renders a price with two decimals, the way cards display it.
func FormatPrice(v decimal.Decimal) string {
	return v.StringFixed(2)
}
