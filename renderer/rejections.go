package renderer

import (
	"github.com/etnz/sharetrack"
	md "github.com/nao1215/markdown"
)

// RejectionsMarkdown lists the disposals that exceeded the open quantity.
// It is empty when there are none.
func RejectionsMarkdown(rejections []sharetrack.Rejection) string {
	if len(rejections) == 0 {
		return ""
	}
	doc := newDoc()
	doc.H2("Rejected Disposals")
	doc.PlainText("These disposals sell more than was held and are excluded from the tax report.")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignLeft},
		Header:    []string{"Date", "Symbol", "Quantity", "Held", "Source"},
	}
	for _, r := range rejections {
		tx := r.Transaction
		table.Rows = append(table.Rows, []string{
			tx.Date().String(), tx.Symbol(), tx.Quantity().String(), r.Held.String(), tx.SourceID(),
		})
	}
	doc.Table(table)
	return doc.String()
}
