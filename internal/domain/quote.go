package domain

import "github.com/shopspring/decimal"

type Quote struct {
	Asset        Asset
	PriceUSD     decimal.Decimal
	PriceEUR     decimal.Decimal
	Change24hPct decimal.Decimal
}

// Rising reports whether the 24h change is non-negative.
func (q Quote) Rising() bool {
	return !q.Change24hPct.IsNegative()
}
