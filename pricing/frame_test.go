package pricing

import (
	"context"
	"slices"
	"testing"

	"github.com/etnz/sharetrack/date"
	"github.com/stretchr/testify/assert"
)

func TestFrameForwardFill(t *testing.T) {
	h := new(date.History[float64])
	h.Append(date.New(2024, 1, 3), 10).Append(date.New(2024, 1, 5), 12)
	r := date.NewRange(date.New(2024, 1, 1), date.New(2024, 1, 8))
	days := slices.Collect(r.BusinessDays())

	f := NewFrame(days, map[string]*date.History[float64]{"X": h})
	assert.Equal(t, []string{"X"}, f.Tickers())

	_, ok := f.Price("X", 0)
	assert.False(t, ok, "no price before the first close")
	want := map[int]float64{2: 10, 3: 10, 4: 12, 5: 12}
	for i, w := range want {
		v, ok := f.Price("X", i)
		assert.True(t, ok)
		assert.Equal(t, w, v, "day %v", days[i])
	}
	_, ok = f.Price("Y", 2)
	assert.False(t, ok)
}

func TestRouter(t *testing.T) {
	tag := func(name string) Provider {
		return ProviderFunc(func(context.Context, string, date.Range) (*date.History[float64], error) {
			h := new(date.History[float64])
			h.Append(date.New(2024, 1, 1), float64(len(name)))
			return h, nil
		})
	}
	rt := Router{Equity: tag("eq"), Crypto: tag("crypto")}
	r := date.NewRange(date.New(2024, 1, 1), date.New(2024, 1, 1))

	h, _ := rt.History(context.Background(), "btc-aud", r)
	v, _ := h.Get(date.New(2024, 1, 1))
	assert.Equal(t, 6.0, v)
	h, _ = rt.History(context.Background(), "VAS.AX", r)
	v, _ = h.Get(date.New(2024, 1, 1))
	assert.Equal(t, 2.0, v)
	assert.True(t, IsCrypto("ETH-AUD"))
	assert.False(t, IsCrypto("^AXJO"))
}
