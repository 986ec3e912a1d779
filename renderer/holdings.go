package renderer

import (
	"github.com/etnz/sharetrack"
	md "github.com/nao1215/markdown"
)

// HoldingsMarkdown renders one line per business day with the cash balance
// and the position of every symbol.
func HoldingsMarkdown(h *sharetrack.DailyHoldings) string {
	doc := newDoc()
	doc.H1("Daily Holdings")
	if h.Len() == 0 {
		doc.PlainText("No business day in range.")
		return doc.String()
	}
	symbols := h.Symbols()
	table := md.TableSet{
		Header:    append([]string{"Date", "Cash"}, symbols...),
		Alignment: []md.TableAlignment{md.AlignLeft},
	}
	for range len(symbols) + 1 {
		table.Alignment = append(table.Alignment, md.AlignRight)
	}
	for _, row := range h.Rows() {
		line := []string{row.Date().String(), row.Cash().String()}
		for _, s := range symbols {
			line = append(line, row.Position(s).String())
		}
		table.Rows = append(table.Rows, line)
	}
	doc.Table(table)
	return doc.String()
}

// PositionsMarkdown renders the last row of h as a list of open positions.
func PositionsMarkdown(h *sharetrack.DailyHoldings) string {
	doc := newDoc()
	row, ok := h.Last()
	if !ok {
		doc.H1("Positions")
		doc.PlainText("No business day in range.")
		return doc.String()
	}
	doc.H1("Positions on " + row.Date().String())
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Symbol", "Quantity"},
	}
	for _, s := range h.Symbols() {
		q := row.Position(s)
		if q.IsZero() {
			continue
		}
		table.Rows = append(table.Rows, []string{s, q.String()})
	}
	table.Rows = append(table.Rows, []string{md.Bold("Cash"), md.Bold(row.Cash().String())})
	doc.Table(table)
	return doc.String()
}
