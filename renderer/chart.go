package renderer

import (
	"fmt"
	"html/template"
	"math"
	"strings"

	"github.com/etnz/sharetrack/analytics"
)

const (
	chartWidth  = 800
	chartHeight = 320
	chartMargin = 40
)

var palette = []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd"}

// LineChartSVG draws series as lines over their day index. NaN values
// break the line. The result is safe to embed in an HTML page.
func LineChartSVG(title string, series ...analytics.Series) template.HTML {
	lo, hi := math.Inf(1), math.Inf(-1)
	n := 0
	for _, s := range series {
		n = max(n, len(s.Values))
		for _, v := range s.Values {
			if math.IsNaN(v) {
				continue
			}
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	if n == 0 || math.IsInf(lo, 0) {
		lo, hi = 0, 1
	}
	if hi == lo {
		lo, hi = lo-1, hi+1
	}
	x := func(i int) float64 {
		if n < 2 {
			return chartMargin
		}
		return chartMargin + float64(i)*float64(chartWidth-2*chartMargin)/float64(n-1)
	}
	y := func(v float64) float64 {
		return chartHeight - chartMargin - (v-lo)/(hi-lo)*float64(chartHeight-2*chartMargin)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, chartWidth, chartHeight, chartWidth, chartHeight)
	fmt.Fprintf(&b, `<text x="%d" y="20" font-size="14">%s</text>`, chartMargin, template.HTMLEscapeString(title))
	fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#999"/>`, chartMargin, chartHeight-chartMargin, chartWidth-chartMargin, chartHeight-chartMargin)
	fmt.Fprintf(&b, `<text x="2" y="%.1f" font-size="10">%.4g</text>`, y(hi)+4, hi)
	fmt.Fprintf(&b, `<text x="2" y="%.1f" font-size="10">%.4g</text>`, y(lo)+4, lo)
	for k, s := range series {
		color := palette[k%len(palette)]
		var pts []string
		line := func() {
			if len(pts) > 0 {
				fmt.Fprintf(&b, `<polyline fill="none" stroke="%s" stroke-width="1.5" points="%s"/>`, color, strings.Join(pts, " "))
			}
			pts = pts[:0]
		}
		for i, v := range s.Values {
			if math.IsNaN(v) {
				line()
				continue
			}
			pts = append(pts, fmt.Sprintf("%.1f,%.1f", x(i), y(v)))
		}
		line()
		fmt.Fprintf(&b, `<text x="%d" y="%d" font-size="12" fill="%s">%s</text>`, chartWidth-chartMargin-160, 20+14*k, color, template.HTMLEscapeString(s.Name))
	}
	b.WriteString(`</svg>`)
	return template.HTML(b.String())
}
