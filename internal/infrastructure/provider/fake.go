package provider

import (
	"context"

	"pricebot/internal/application"
	"pricebot/internal/domain"

	"github.com/shopspring/decimal"
)

// Ensure Fake implements application.PriceFetcher.
var _ application.PriceFetcher = (*Fake)(nil)

// Fake returns a fixed quote; used for local dry runs (PRICE_PROVIDER=fake).
type Fake struct {
	quote domain.Quote
}

func NewFake(asset domain.Asset, usd, eur, change float64) *Fake {
	return &Fake{quote: domain.Quote{
		Asset:        asset,
		PriceUSD:     decimal.NewFromFloat(usd),
		PriceEUR:     decimal.NewFromFloat(eur),
		Change24hPct: decimal.NewFromFloat(change),
	}}
}

func (f *Fake) Fetch(context.Context) (domain.Quote, error) {
	return f.quote, nil
}
