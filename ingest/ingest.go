// Package ingest maps broker and exchange CSV exports to transactions.
//
// Loaders are stateless record mappers: one output transaction per
// recognised row, tagged with its source and a "<SOURCE>:<row>" id.
// Validation, sorting and deduplication happen later, in a Journal.
package ingest

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/etnz/sharetrack"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Source identifies an export format.
type Source string

const (
	CMCCash         Source = "CMC_CASH"   // CMC Markets cash transaction summary
	CMCConfirmation Source = "CMC_CONF"   // CMC Markets trade confirmations
	Betashares      Source = "BETASHARES" // Betashares Direct transactions
	CoinSpot        Source = "COINSPOT"   // CoinSpot order history
)

// Sources lists the supported formats.
var Sources = []Source{CMCCash, CMCConfirmation, Betashares, CoinSpot}

// ParseSource parses a source tag.
func ParseSource(s string) (Source, error) {
	for _, src := range Sources {
		if string(src) == s {
			return src, nil
		}
	}
	return "", fmt.Errorf("unknown source %q", s)
}

// Importer reads exports into transactions.
type Importer struct {
	log      zerolog.Logger
	currency string
	loc      *time.Location
}

// New returns an Importer reading amounts in currency and dates in loc.
// A nil loc means UTC.
func New(log zerolog.Logger, currency string, loc *time.Location) *Importer {
	if loc == nil {
		loc = time.UTC
	}
	if currency == "" {
		currency = sharetrack.DefaultCurrency
	}
	return &Importer{log: log, currency: currency, loc: loc}
}

// Load reads r in the src format.
func (im *Importer) Load(src Source, r io.Reader) ([]sharetrack.Transaction, error) {
	switch src {
	case CMCCash:
		return im.CMCCash(r)
	case CMCConfirmation:
		return im.CMCConfirmation(r)
	case Betashares:
		return im.Betashares(r)
	case CoinSpot:
		return im.CoinSpot(r)
	default:
		return nil, fmt.Errorf("unknown source %q", src)
	}
}

// LoadFile reads the file at path in the src format.
func (im *Importer) LoadFile(src Source, path string) ([]sharetrack.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %q: %w", path, err)
	}
	defer f.Close()
	txs, err := im.Load(src, f)
	if err != nil {
		return nil, fmt.Errorf("cannot load %q as %s: %w", path, src, err)
	}
	im.log.Info().Str("source", string(src)).Str("file", path).Int("transactions", len(txs)).Msg("loaded export")
	return txs, nil
}

// money returns d in the importer currency.
func (im *Importer) money(d decimal.Decimal) sharetrack.Money { return sharetrack.M(d, im.currency) }

// parseTime parses value with the first matching layout, in the importer location.
func (im *Importer) parseTime(value string, layouts ...string) (time.Time, error) {
	var err error
	for _, layout := range layouts {
		var t time.Time
		if t, err = time.ParseInLocation(layout, value, im.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
}

// tag returns the provenance override of row i.
func tag(src Source, i int, note string) sharetrack.Override {
	return sharetrack.Override{Source: string(src), SourceID: fmt.Sprintf("%s:%d", src, i), Note: note}
}

// withCash sets an explicit cash effect on o.
func withCash(o sharetrack.Override, cash sharetrack.Money) sharetrack.Override {
	o.Cash = &cash
	return o
}
