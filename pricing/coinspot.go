package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/sharetrack/date"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// CoinSpotConfig configures the CoinSpot provider.
type CoinSpotConfig struct {
	// HistoryURL is a template where {coin}, {symbol} and {ticker} are replaced.
	HistoryURL string
	// LatestURL, when set, is used instead of the history: the latest quote
	// is repeated on every business day of the range.
	LatestURL         string
	APIKey            string
	APIKeyHeader      string // "key" when empty
	Timeout           time.Duration
	RequestsPerSecond float64 // 1 when zero
}

// CoinSpot reads coin prices in AUD from CoinSpot style JSON endpoints.
type CoinSpot struct {
	cfg     CoinSpotConfig
	client  *http.Client
	limiter *rate.Limiter
	log     zerolog.Logger
}

// NewCoinSpot returns a CoinSpot provider.
func NewCoinSpot(cfg CoinSpotConfig, log zerolog.Logger) *CoinSpot {
	if cfg.APIKeyHeader == "" {
		cfg.APIKeyHeader = "key"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 1
	}
	return &CoinSpot{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		log:     log,
	}
}

// coinOf returns "BTC" for "btc-aud".
func coinOf(ticker string) string {
	coin, _, _ := strings.Cut(ticker, "-")
	return strings.ToUpper(coin)
}

func (c *CoinSpot) History(ctx context.Context, ticker string, r date.Range) (*date.History[float64], error) {
	coin := coinOf(ticker)
	if c.cfg.LatestURL != "" {
		payload, err := c.get(ctx, c.cfg.LatestURL)
		if err != nil || payload == nil {
			return new(date.History[float64]), err
		}
		return latestToHistory(payload, coin, r), nil
	}
	if c.cfg.HistoryURL == "" {
		return nil, fmt.Errorf("no CoinSpot url configured for %q", ticker)
	}
	addr := strings.NewReplacer("{coin}", coin, "{symbol}", coin, "{ticker}", ticker).Replace(c.cfg.HistoryURL)
	payload, err := c.get(ctx, addr)
	if err != nil || payload == nil {
		return new(date.History[float64]), err
	}
	return payloadToHistory(payload), nil
}

// get fetches addr and decodes its JSON. A non 200 status is logged and
// gives a nil payload, not an error.
func (c *CoinSpot) get(ctx context.Context, addr string) (any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	if c.cfg.APIKey != "" {
		req.Header.Set(c.cfg.APIKeyHeader, c.cfg.APIKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot http GET %v: %w", req.URL.Host, err)
	}
	defer resp.Body.Close()
	c.log.Debug().Str("host", req.URL.Host).Str("path", req.URL.Path).Str("status", resp.Status).Msg("coinspot")
	if resp.StatusCode != http.StatusOK {
		c.log.Warn().Str("url", req.URL.Redacted()).Int("status", resp.StatusCode).Msg("coinspot fetch failed")
		return nil, nil
	}
	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("cannot decode %v%v: %w", req.URL.Host, req.URL.Path, err)
	}
	return payload, nil
}

// rowsOf finds the list of price points in payload.
func rowsOf(payload any) []any {
	if rows, ok := payload.([]any); ok {
		return rows
	}
	for _, path := range []string{"$.prices", "$.data", "$.history", "$.result"} {
		v, err := jsonpath.Get(path, payload)
		if err != nil {
			continue
		}
		if rows, ok := v.([]any); ok {
			return rows
		}
	}
	return nil
}

var (
	timestampKeys = []string{"date", "timestamp", "time", "datetime", "created", "created_at"}
	priceKeys     = []string{"close", "price", "last", "rate"}
	quoteKeys     = []string{"last", "price", "close", "bid", "ask", "rate"}
	timeLayouts   = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}
)

// payloadToHistory converts a list of {time, price} objects. Rows without a
// readable time or price are skipped, the first point of a day wins.
func payloadToHistory(payload any) *date.History[float64] {
	h := new(date.History[float64])
	for _, row := range rowsOf(payload) {
		obj, ok := row.(map[string]any)
		if !ok {
			continue
		}
		ts, ok := timestampOf(obj)
		if !ok {
			continue
		}
		price, ok := priceOf(obj)
		if !ok {
			continue
		}
		day := date.FromTime(ts.UTC())
		if _, seen := h.Get(day); !seen {
			h.Append(day, price)
		}
	}
	return h
}

func timestampOf(obj map[string]any) (time.Time, bool) {
	for _, key := range timestampKeys {
		switch v := obj[key].(type) {
		case float64:
			if v > 1e12 {
				return time.UnixMilli(int64(v)), true
			}
			return time.Unix(int64(v), 0), true
		case string:
			for _, layout := range timeLayouts {
				if t, err := time.Parse(layout, v); err == nil {
					return t, true
				}
			}
		}
	}
	return time.Time{}, false
}

func priceOf(obj map[string]any) (float64, bool) {
	for _, key := range priceKeys {
		if v, ok := obj[key]; ok && v != nil {
			return quoteOf(v)
		}
	}
	return 0, false
}

// quoteOf reads a number, a numeric string or an object holding one.
func quoteOf(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	case map[string]any:
		for _, key := range quoteKeys {
			if q, ok := v[key]; ok && q != nil {
				return quoteOf(q)
			}
		}
	}
	return 0, false
}

// latestToHistory repeats the latest quote of coin on every business day
// of r, or on r.From alone when r has none.
func latestToHistory(payload any, coin string, r date.Range) *date.History[float64] {
	h := new(date.History[float64])
	var value any
	for _, key := range []string{strings.ToLower(coin), strings.ToUpper(coin)} {
		if v, err := jsonpath.Get("$.prices."+key, payload); err == nil && v != nil {
			value = v
			break
		}
	}
	price, ok := quoteOf(value)
	if !ok {
		return h
	}
	for day := range r.BusinessDays() {
		h.Append(day, price)
	}
	if h.Len() == 0 {
		h.Append(r.From, price)
	}
	return h
}
