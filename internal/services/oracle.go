package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"solana-casino-backend/internal/errs"
	"solana-casino-backend/internal/metrics"
)

// PriceOracle quotes the reference price binary options settle against.
// It only speaks spot: settlement takes the first quote after expiry
// rather than reconstructing the price at the expiry instant.
type PriceOracle interface {
	Price(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// HTTPOracle pulls quotes from an external price feed over HTTP, with a
// short Redis cache in front so a burst of option settlements does not
// hammer the feed. Every failure maps to OracleUnavailable, which the
// client is told to retry.
type HTTPOracle struct {
	baseURL string
	client  *http.Client
	cache   *Cache
	log     *zap.Logger
}

func NewHTTPOracle(baseURL string, cache *Cache, log *zap.Logger) *HTTPOracle {
	return &HTTPOracle{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
		cache:   cache,
		log:     log,
	}
}

func (o *HTTPOracle) Price(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if o.cache != nil {
		if cached, ok := o.cache.CachedPrice(ctx, symbol); ok {
			if price, err := decimal.NewFromString(cached); err == nil {
				metrics.OracleRequests.WithLabelValues("cache_hit").Inc()
				return price, nil
			}
		}
	}

	endpoint := fmt.Sprintf("%s/price?symbol=%s", o.baseURL, url.QueryEscape(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, errs.Wrap(errs.KindOracleUnavailable, "build oracle request", err)
	}
	resp, err := o.client.Do(req)
	if err != nil {
		metrics.OracleRequests.WithLabelValues("error").Inc()
		return decimal.Zero, errs.Wrap(errs.KindOracleUnavailable, "price feed unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.OracleRequests.WithLabelValues("error").Inc()
		return decimal.Zero, errs.Newf(errs.KindOracleUnavailable, "price feed returned %d", resp.StatusCode)
	}

	var body struct {
		Price string `json:"price"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		metrics.OracleRequests.WithLabelValues("error").Inc()
		return decimal.Zero, errs.Wrap(errs.KindOracleUnavailable, "decode price response", err)
	}
	price, err := decimal.NewFromString(body.Price)
	if err != nil || !price.IsPositive() {
		metrics.OracleRequests.WithLabelValues("error").Inc()
		return decimal.Zero, errs.Newf(errs.KindOracleUnavailable, "price feed returned bad price %q", body.Price)
	}

	metrics.OracleRequests.WithLabelValues("ok").Inc()
	if o.cache != nil {
		o.cache.StorePrice(ctx, symbol, price.String(), TTLPrice)
	}
	return price, nil
}
