package renderer

import (
	"fmt"
	"strconv"

	"github.com/etnz/sharetrack"
	md "github.com/nao1215/markdown"
)

// TaxReportMarkdown renders the fiscal year totals followed by every
// realized disposal.
func TaxReportMarkdown(r *sharetrack.TaxReport) string {
	doc := newDoc()
	doc.H1("Capital Gains Report")
	doc.PlainText(fmt.Sprintf("Fiscal year starts on %d %s. Disposals are matched first in, first out.", r.Rule.Day, r.Rule.Month))

	if len(r.Rows) == 0 {
		doc.PlainText("No realized disposals.")
		return doc.String()
	}

	doc.H2("Fiscal Years")
	years := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"FY", "Disposals", "Proceeds", "Cost Base", "Discountable Gain", "Other Gain", "Net Gain"},
	}
	for _, y := range r.Years {
		years.Rows = append(years.Rows, []string{
			fiscalLabel(y.FiscalYear),
			strconv.Itoa(y.Disposals),
			y.Proceeds.String(),
			y.CostBase.String(),
			y.Discounted.SignedString(),
			y.Other.SignedString(),
			md.Bold(y.Gain.SignedString()),
		})
	}
	doc.Table(years)

	doc.H2("Disposals")
	rows := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignCenter},
		Header:    []string{"FY", "Symbol", "Acquired", "Disposed", "Quantity", "Proceeds", "Cost Base", "Gain", "Discount"},
	}
	for _, row := range r.Rows {
		rows.Rows = append(rows.Rows, []string{
			fiscalLabel(row.FiscalYear),
			row.Symbol,
			row.Acquired.String(),
			row.Disposed.String(),
			row.Quantity.String(),
			row.Proceeds.String(),
			row.CostBase.String(),
			row.Gain.SignedString(),
			check(row.DiscountEligible),
		})
	}
	doc.Table(rows)
	return doc.String()
}

// fiscalLabel names a fiscal year after its two calendar years, e.g. 2024-25.
func fiscalLabel(fy int) string { return fmt.Sprintf("%d-%02d", fy-1, fy%100) }

func check(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
