package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"pricebot/internal/application"
	"pricebot/internal/domain"
	"pricebot/internal/infrastructure/httpx"

	"github.com/shopspring/decimal"
)

const (
	coinGeckoSimplePricePath = "/api/v3/simple/price"
)

type CoinGeckoProvider struct {
	BaseURL string
	Asset   domain.Asset
	Client  *httpx.Client
}

var _ application.PriceFetcher = (*CoinGeckoProvider)(nil)

type cgPrice struct {
	USD       *decimal.Decimal `json:"usd"`
	EUR       *decimal.Decimal `json:"eur"`
	USDChange *decimal.Decimal `json:"usd_24h_change"`
}

// Fetch makes exactly one request. Missing keys count as a failed fetch.
func (p *CoinGeckoProvider) Fetch(ctx context.Context) (domain.Quote, error) {
	if p.BaseURL == "" || p.Asset.ID == "" {
		return domain.Quote{}, errors.New("coingecko: missing configuration")
	}

	u, err := url.Parse(p.BaseURL)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("coingecko: invalid base url: %w", err)
	}
	// keep any prefix in the base, e.g. a proxy mount
	u = u.JoinPath(coinGeckoSimplePricePath)
	q := u.Query()
	q.Set("ids", p.Asset.ID)
	q.Set("vs_currencies", "usd,eur")
	q.Set("include_24hr_change", "true")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("coingecko: create request: %w", err)
	}

	client := p.Client
	if client == nil {
		client = &httpx.Client{}
	}
	var body map[string]cgPrice
	if err := client.DoJSON(ctx, req, &body); err != nil {
		return domain.Quote{}, fmt.Errorf("coingecko: %w", err)
	}

	price, ok := body[p.Asset.ID]
	if !ok {
		return domain.Quote{}, fmt.Errorf("coingecko: asset %q missing from response", p.Asset.ID)
	}
	switch {
	case price.USD == nil:
		return domain.Quote{}, errors.New("coingecko: missing usd")
	case price.EUR == nil:
		return domain.Quote{}, errors.New("coingecko: missing eur")
	case price.USDChange == nil:
		return domain.Quote{}, errors.New("coingecko: missing usd_24h_change")
	}

	return domain.Quote{
		Asset:        p.Asset,
		PriceUSD:     *price.USD,
		PriceEUR:     *price.EUR,
		Change24hPct: *price.USDChange,
	}, nil
}
