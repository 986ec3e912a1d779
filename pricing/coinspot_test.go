package pricing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/etnz/sharetrack/date"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoinSpotHistory(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotKey = r.URL.Path, r.Header.Get("key")
		w.Write([]byte(`{"status":"ok","prices":[
			{"date":"2024-01-02","close":65000.5},
			{"timestamp":1704240000000,"price":"66000"},
			{"time":1704326400,"last":{"bid":67000}},
			{"date":"2024-01-02","close":1},
			{"nodate":true,"close":3},
			"garbage"
		]}`))
	}))
	defer srv.Close()

	cs := NewCoinSpot(CoinSpotConfig{HistoryURL: srv.URL + "/history/{coin}", APIKey: "secret", RequestsPerSecond: 100}, zerolog.Nop())
	h, err := cs.History(context.Background(), "btc-AUD", date.NewRange(date.New(2024, 1, 1), date.New(2024, 1, 5)))
	require.NoError(t, err)

	assert.Equal(t, "/history/BTC", gotPath)
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, 3, h.Len())
	v, _ := h.Get(date.New(2024, 1, 2))
	assert.Equal(t, 65000.5, v, "first point of a day wins")
	v, _ = h.Get(date.New(2024, 1, 3))
	assert.Equal(t, 66000.0, v, "milliseconds timestamp and string price")
	v, _ = h.Get(date.New(2024, 1, 4))
	assert.Equal(t, 67000.0, v, "seconds timestamp and nested quote")
}

func TestCoinSpotListPayload(t *testing.T) {
	h := payloadToHistory([]any{map[string]any{"datetime": "2024-03-01T10:00:00Z", "rate": 2.5}})
	v, ok := h.Get(date.New(2024, 3, 1))
	assert.True(t, ok)
	assert.Equal(t, 2.5, v)
}

func TestCoinSpotLatest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok","prices":{"btc":{"bid":"64000","ask":"65000","last":"64500"}}}`))
	}))
	defer srv.Close()

	cs := NewCoinSpot(CoinSpotConfig{LatestURL: srv.URL, RequestsPerSecond: 100}, zerolog.Nop())
	h, err := cs.History(context.Background(), "BTC-AUD", date.NewRange(date.New(2024, 1, 5), date.New(2024, 1, 8)))
	require.NoError(t, err)
	assert.Equal(t, 2, h.Len(), "Friday and Monday")
	v, _ := h.Get(date.New(2024, 1, 8))
	assert.Equal(t, 64500.0, v)

	h, err = cs.History(context.Background(), "ETH-AUD", date.NewRange(date.New(2024, 1, 5), date.New(2024, 1, 8)))
	require.NoError(t, err)
	assert.Equal(t, 0, h.Len(), "unknown coin")
}

func TestCoinSpotHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	cs := NewCoinSpot(CoinSpotConfig{HistoryURL: srv.URL + "/{coin}", RequestsPerSecond: 100}, zerolog.Nop())
	h, err := cs.History(context.Background(), "BTC-AUD", date.NewRange(date.New(2024, 1, 1), date.New(2024, 1, 2)))
	require.NoError(t, err)
	assert.Equal(t, 0, h.Len())
}

func TestCoinSpotNoURL(t *testing.T) {
	cs := NewCoinSpot(CoinSpotConfig{}, zerolog.Nop())
	_, err := cs.History(context.Background(), "BTC-AUD", date.NewRange(date.New(2024, 1, 1), date.New(2024, 1, 2)))
	assert.Error(t, err)
}
