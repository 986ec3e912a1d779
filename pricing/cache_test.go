package pricing

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/etnz/sharetrack/date"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingProvider returns a constant price on every day of the range.
type countingProvider struct {
	calls int
	price float64
}

func (p *countingProvider) History(ctx context.Context, ticker string, r date.Range) (*date.History[float64], error) {
	p.calls++
	h := new(date.History[float64])
	for day := range r.BusinessDays() {
		h.Append(day, p.price)
	}
	return h, nil
}

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := OpenCache(filepath.Join(t.TempDir(), "cache", "prices.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestLoadOrFetch(t *testing.T) {
	ctx := context.Background()
	c := openTestCache(t)
	p := &countingProvider{price: 10}
	jan := date.NewRange(date.New(2024, 1, 6), date.New(2024, 1, 31)) // starts on a Saturday

	h, err := c.LoadOrFetch(ctx, p, "VAS.AX", jan)
	require.NoError(t, err)
	assert.Equal(t, 1, p.calls)
	assert.Equal(t, 18, h.Len())

	// covered, even if no price exists on the first day.
	_, err = c.LoadOrFetch(ctx, p, "VAS.AX", jan)
	require.NoError(t, err)
	assert.Equal(t, 1, p.calls)

	inner := date.NewRange(date.New(2024, 1, 8), date.New(2024, 1, 12))
	h, err = c.LoadOrFetch(ctx, p, "VAS.AX", inner)
	require.NoError(t, err)
	assert.Equal(t, 1, p.calls)
	assert.Equal(t, 5, h.Len())

	p.price = 11
	feb := date.NewRange(date.New(2024, 1, 29), date.New(2024, 2, 2))
	h, err = c.LoadOrFetch(ctx, p, "VAS.AX", feb)
	require.NoError(t, err)
	assert.Equal(t, 2, p.calls)
	v, _ := h.Get(date.New(2024, 2, 2))
	assert.Equal(t, 11.0, v)

	cov, err := c.Coverage(ctx, "VAS.AX")
	require.NoError(t, err)
	assert.Equal(t, []date.Range{date.NewRange(date.New(2024, 1, 6), date.New(2024, 2, 2))}, cov)
}

func TestLoadOrFetchDisjointRanges(t *testing.T) {
	ctx := context.Background()
	c := openTestCache(t)
	p := &countingProvider{price: 10}
	jan := date.NewRange(date.New(2024, 1, 1), date.New(2024, 1, 31))
	feb := date.NewRange(date.New(2024, 2, 1), date.New(2024, 2, 29))
	mar := date.NewRange(date.New(2024, 3, 1), date.New(2024, 3, 31))
	jun := date.NewRange(date.New(2024, 6, 1), date.New(2024, 6, 30))

	for _, r := range []date.Range{jan, jun} {
		_, err := c.LoadOrFetch(ctx, p, "VAS.AX", r)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, p.calls)

	// march lies in the gap, it was never fetched.
	h, err := c.LoadOrFetch(ctx, p, "VAS.AX", mar)
	require.NoError(t, err)
	assert.Equal(t, 3, p.calls)
	assert.Equal(t, 21, h.Len())

	cov, err := c.Coverage(ctx, "VAS.AX")
	require.NoError(t, err)
	assert.Equal(t, []date.Range{jan, mar, jun}, cov)

	// february bridges january and march into a single range.
	q1 := date.NewRange(jan.From, mar.To)
	_, err = c.LoadOrFetch(ctx, p, "VAS.AX", feb)
	require.NoError(t, err)
	assert.Equal(t, 4, p.calls)
	cov, err = c.Coverage(ctx, "VAS.AX")
	require.NoError(t, err)
	assert.Equal(t, []date.Range{q1, jun}, cov, "touching ranges are merged")

	h, err = c.LoadOrFetch(ctx, p, "VAS.AX", q1)
	require.NoError(t, err)
	assert.Equal(t, 4, p.calls)
	assert.Equal(t, 65, h.Len())
}

func TestLoadOrFetchEmpty(t *testing.T) {
	ctx := context.Background()
	c := openTestCache(t)
	empty := ProviderFunc(func(context.Context, string, date.Range) (*date.History[float64], error) {
		return new(date.History[float64]), nil
	})
	r := date.NewRange(date.New(2024, 1, 1), date.New(2024, 1, 5))

	h, err := c.LoadOrFetch(ctx, empty, "NOPE", r)
	require.NoError(t, err)
	assert.Equal(t, 0, h.Len())
	cov, err := c.Coverage(ctx, "NOPE")
	require.NoError(t, err)
	assert.Empty(t, cov, "empty fetches are not cached")
}

func TestLoadOrFetchOffline(t *testing.T) {
	ctx := context.Background()
	c := openTestCache(t)
	r := date.NewRange(date.New(2024, 1, 1), date.New(2024, 1, 5))
	h, err := c.LoadOrFetch(ctx, nil, "VAS.AX", r)
	require.NoError(t, err)
	assert.Equal(t, 0, h.Len())
}

func TestFetchAll(t *testing.T) {
	c := openTestCache(t)
	r := date.NewRange(date.New(2024, 1, 1), date.New(2024, 1, 5))
	p := ProviderFunc(func(_ context.Context, ticker string, r date.Range) (*date.History[float64], error) {
		h := new(date.History[float64])
		h.Append(r.From, float64(len(ticker)))
		return h, nil
	})
	got, err := FetchAll(context.Background(), c, p, []string{"A", "BB", "CCC"}, r, 2)
	require.NoError(t, err)
	require.Len(t, got, 3)
	v, _ := got["CCC"].Get(r.From)
	assert.Equal(t, 3.0, v)
}
