// Package render produces the PDF report: the results table plus a
// grouped bar chart of CAGR by event and horizon.
package render

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/mkersting/aftermath/internal/core"
	"github.com/mkersting/aftermath/internal/report"
)

// horizonColors are the fill colors for the chart bars, cycled per
// horizon.
var horizonColors = [][3]int{
	{68, 114, 196},
	{237, 125, 49},
	{112, 173, 71},
	{165, 165, 165},
}

const (
	chartLeft   = 20.0
	chartWidth  = 257.0
	chartHeight = 90.0
)

// Report renders the table into a single-document PDF.
func Report(table *core.Table, horizons []int) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, "CAGR After Geopolitical Events", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	writeTable(pdf, table, horizons)

	if len(table.Rows) > 0 {
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, "CAGR by Event and Horizon", "", 1, "L", false, 0, "")
		pdf.Ln(4)
		drawChart(pdf, table, horizons)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("generating PDF output: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTable(pdf *fpdf.Fpdf, table *core.Table, horizons []int) {
	nameW := 95.0
	dateW := 28.0
	priceW := 28.0
	cagrW := 26.0

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(nameW, 7, "Event", "1", 0, "L", true, 0, "")
	pdf.CellFormat(dateW, 7, "Event Date", "1", 0, "C", true, 0, "")
	pdf.CellFormat(dateW, 7, "Entry Date", "1", 0, "C", true, 0, "")
	pdf.CellFormat(priceW, 7, "Entry Price", "1", 0, "R", true, 0, "")
	for _, y := range horizons {
		pdf.CellFormat(cagrW, 7, fmt.Sprintf("%dY CAGR %%", y), "1", 0, "R", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range table.Rows {
		pdf.CellFormat(nameW, 6, row.Event.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(dateW, 6, row.Event.Date.Format("2006-01-02"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(dateW, 6, row.EntryDate.Format("2006-01-02"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(priceW, 6, fmt.Sprintf("%.2f", row.EntryPrice), "1", 0, "R", false, 0, "")
		for _, res := range row.Horizons {
			if res.Available {
				pdf.CellFormat(cagrW, 6, fmt.Sprintf("%.2f", res.CAGR), "1", 0, "R", false, 0, "")
			} else {
				pdf.CellFormat(cagrW, 6, report.Unavailable, "1", 0, "R", false, 0, "")
			}
		}
		pdf.Ln(-1)
	}

	if len(table.Skipped) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "I", 8)
		for _, s := range table.Skipped {
			pdf.CellFormat(0, 5,
				fmt.Sprintf("Skipped: %s (%s)", s.Event.Name, s.Event.Date.Format("2006-01-02")),
				"", 1, "L", false, 0, "")
		}
	}
}

func drawChart(pdf *fpdf.Fpdf, table *core.Table, horizons []int) {
	minV, maxV := chartRange(table)

	top := pdf.GetY()
	scale := chartHeight / (maxV - minV)
	zeroY := top + maxV*scale

	// Axis and zero line
	pdf.SetDrawColor(60, 60, 60)
	pdf.Line(chartLeft, top, chartLeft, top+chartHeight)
	pdf.Line(chartLeft, zeroY, chartLeft+chartWidth, zeroY)

	// Y-axis labels at min, zero and max
	pdf.SetFont("Arial", "", 7)
	pdf.Text(chartLeft-14, top+2, fmt.Sprintf("%.0f%%", maxV))
	pdf.Text(chartLeft-14, zeroY+1, "0%")
	pdf.Text(chartLeft-14, top+chartHeight, fmt.Sprintf("%.0f%%", minV))

	groupWidth := chartWidth / float64(len(table.Rows))
	barWidth := groupWidth * 0.8 / float64(len(horizons))

	for i, row := range table.Rows {
		groupX := chartLeft + float64(i)*groupWidth + groupWidth*0.1

		for j, res := range row.Horizons {
			if !res.Available {
				continue
			}
			color := horizonColors[j%len(horizonColors)]
			pdf.SetFillColor(color[0], color[1], color[2])

			barX := groupX + float64(j)*barWidth
			h := res.CAGR * scale
			if h >= 0 {
				pdf.Rect(barX, zeroY-h, barWidth, h, "F")
			} else {
				pdf.Rect(barX, zeroY, barWidth, -h, "F")
			}
		}

		// Event label under the group
		pdf.SetFont("Arial", "", 6)
		label := row.Event.Name
		if len(label) > 18 {
			label = label[:17] + "."
		}
		pdf.Text(groupX, top+chartHeight+5, label)
	}

	// Legend
	legendY := top + chartHeight + 10
	pdf.SetFont("Arial", "", 8)
	x := chartLeft
	for j, y := range horizons {
		color := horizonColors[j%len(horizonColors)]
		pdf.SetFillColor(color[0], color[1], color[2])
		pdf.Rect(x, legendY, 4, 4, "F")
		pdf.Text(x+6, legendY+3.5, fmt.Sprintf("%d Year", y))
		x += 30
	}
}

// chartRange returns y-axis bounds covering all available CAGR values,
// always including zero, with a small padding.
func chartRange(table *core.Table) (minV, maxV float64) {
	minV, maxV = 0, 0
	for _, row := range table.Rows {
		for _, res := range row.Horizons {
			if !res.Available {
				continue
			}
			if res.CAGR < minV {
				minV = res.CAGR
			}
			if res.CAGR > maxV {
				maxV = res.CAGR
			}
		}
	}
	if maxV == minV {
		maxV = minV + 1
	}
	pad := (maxV - minV) * 0.1
	return minV - pad, maxV + pad
}
