package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// PDFRenderer draws the monthly report with go-pdf/fpdf on A4 pages.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer { return &PDFRenderer{} }

type rgb struct{ r, g, b int }

var (
	headerBG  = rgb{11, 122, 102}
	accentBG  = rgb{232, 246, 242}
	accentBG2 = rgb{231, 242, 250}
	lineColor = rgb{212, 229, 223}
	textDark  = rgb{16, 33, 42}
	textMuted = rgb{82, 99, 112}
	panelBG   = rgb{246, 250, 252}
	tableBG   = rgb{15, 79, 122}
	barBG     = rgb{217, 234, 246}
	zebraBG   = rgb{248, 251, 253}
	headerTag = rgb{210, 244, 233}
)

const (
	pageW    = 210.0
	pageH    = 297.0
	left     = 13.0
	right    = 197.0
	tableBot = 272.0
)

func (p *PDFRenderer) Render(w io.Writer, rep Monthly) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)

	pageNo := 0
	newPage := func() float64 {
		pageNo++
		pdf.AddPage()
		p.pageHeader(pdf, rep, pageNo)
		p.summaryCards(pdf, rep, 42)
		y := p.itemBreakdown(pdf, rep, 60)
		return p.tableHeader(pdf, y+3)
	}

	y := newPage()
	if len(rep.Rows) == 0 {
		pdf.SetTextColor(textMuted.r, textMuted.g, textMuted.b)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.Text(left+1.5, y+4, "No completed collections found for this month.")
	} else {
		for i, row := range rep.Rows {
			if y > tableBot {
				p.footer(pdf, rep)
				y = newPage()
			}
			if i%2 == 0 {
				setFill(pdf, zebraBG)
				pdf.Rect(left, y, right-left, 4.9, "F")
			}
			collector := "-"
			if row.Collector != nil {
				collector = row.Collector.Username
			}
			pdf.SetTextColor(textDark.r, textDark.g, textDark.b)
			pdf.SetFont("Helvetica", "", 8)
			base := y + 3.4
			pdf.Text(left+1.5, base, Truncate(row.ID, 8))
			pdf.Text(left+22, base, row.PickupDate.String())
			pdf.Text(left+46, base, Truncate(row.User.Username, 16))
			pdf.Text(left+78, base, Truncate(row.ItemType, 24))
			pdf.Text(left+124, base, fmt.Sprintf("%d", row.Quantity))
			pdf.Text(left+134, base, Truncate(collector, 16))
			pdf.Text(left+164, base, Truncate(row.PickupAddress, 24))
			y += 4.9
		}
	}
	p.footer(pdf, rep)

	return pdf.Output(w)
}

func (p *PDFRenderer) pageHeader(pdf *fpdf.Fpdf, rep Monthly, pageNo int) {
	// soft page panel behind everything else
	setFill(pdf, panelBG)
	pdf.RoundedRect(8.5, 7, pageW-17, pageH-14, 5.6, "1234", "F")

	setFill(pdf, headerBG)
	pdf.RoundedRect(8.5, 8, pageW-17, 30, 5, "1234", "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Text(left+2, 17.5, "Smart E-Waste Collection System")
	pdf.SetFont("Helvetica", "", 11)
	sub := fmt.Sprintf("Monthly Collection Report - %s %d", rep.Month, rep.Year)
	pdf.Text(left+2, 24.5, sub)
	generated := fmt.Sprintf("Generated by: %s", rep.GeneratedBy)
	pdf.Text(right-2-pdf.GetStringWidth(generated), 24.5, generated)
	pdf.SetFont("Helvetica", "", 10)
	page := fmt.Sprintf("Page %d", pageNo)
	pdf.Text(right-2-pdf.GetStringWidth(page), 30, page)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(headerTag.r, headerTag.g, headerTag.b)
	pdf.Text(left+3, 35, "Environment First")
}

func (p *PDFRenderer) summaryCards(pdf *fpdf.Fpdf, rep Monthly, top float64) {
	cards := []struct {
		label string
		value int
	}{
		{"Completed Pickups", rep.CompletedPickups},
		{"Total Items", rep.TotalItems},
		{"Unique Users", rep.UniqueUsers},
		{"Collectors", rep.UniqueCollectors},
	}
	cardW := (right - left - 6.3) / 4
	for i, c := range cards {
		x := left + (cardW+2.1)*float64(i)
		if i%2 == 0 {
			setFill(pdf, accentBG)
		} else {
			setFill(pdf, accentBG2)
		}
		pdf.RoundedRect(x, top, cardW, 15.5, 2.8, "1234", "F")
		pdf.SetTextColor(textDark.r, textDark.g, textDark.b)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Text(x+3, top+7, fmt.Sprintf("%d", c.value))
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(textMuted.r, textMuted.g, textMuted.b)
		pdf.Text(x+3, top+12, c.label)
	}
}

func (p *PDFRenderer) itemBreakdown(pdf *fpdf.Fpdf, rep Monthly, top float64) float64 {
	pdf.SetFillColor(255, 255, 255)
	pdf.RoundedRect(left, top, right-left, 23.3, 3.5, "1234", "F")
	pdf.SetTextColor(textDark.r, textDark.g, textDark.b)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(left+3.5, top+6.5, "Top Collected Item Types")

	if len(rep.TopItems) == 0 {
		pdf.SetTextColor(textMuted.r, textMuted.g, textMuted.b)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.Text(left+3.5, top+13, "No completed collections for this month.")
		return top + 26.5
	}

	maxCount := rep.TopItems[0].Quantity
	barArea := 49.0
	for i, item := range rep.TopItems {
		rowY := top + 12 + float64(i)*5.6
		pdf.SetTextColor(textMuted.r, textMuted.g, textMuted.b)
		pdf.SetFont("Helvetica", "", 8.5)
		pdf.Text(left+3.5, rowY, Truncate(item.ItemType, 22))
		setFill(pdf, barBG)
		pdf.RoundedRect(left+56, rowY-2.5, barArea, 2.8, 1.4, "1234", "F")
		if maxCount > 0 {
			setFill(pdf, tableBG)
			barW := float64(item.Quantity) / float64(maxCount) * barArea
			pdf.RoundedRect(left+56, rowY-2.5, barW, 2.8, 1.4, "1234", "F")
		}
		pdf.SetTextColor(textDark.r, textDark.g, textDark.b)
		pdf.SetFont("Helvetica", "B", 8)
		pdf.Text(left+108, rowY, fmt.Sprintf("%d", item.Quantity))
	}
	return top + 26.5
}

func (p *PDFRenderer) tableHeader(pdf *fpdf.Fpdf, y float64) float64 {
	setFill(pdf, tableBG)
	pdf.Rect(left, y, right-left, 5.3, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 8.5)
	base := y + 3.6
	pdf.Text(left+1.5, base, "ID")
	pdf.Text(left+22, base, "DATE")
	pdf.Text(left+46, base, "USER")
	pdf.Text(left+78, base, "ITEM TYPE")
	pdf.Text(left+124, base, "QTY")
	pdf.Text(left+134, base, "COLLECTOR")
	pdf.Text(left+164, base, "ADDRESS")
	return y + 6.4
}

func (p *PDFRenderer) footer(pdf *fpdf.Fpdf, rep Monthly) {
	pdf.SetDrawColor(lineColor.r, lineColor.g, lineColor.b)
	pdf.Line(left, 282, right, 282)
	pdf.SetTextColor(textMuted.r, textMuted.g, textMuted.b)
	pdf.SetFont("Helvetica", "", 8)
	pdf.Text(left, 287, fmt.Sprintf("Report Month: %s %d", rep.Month, rep.Year))
	tagline := "Smart E-Waste Management - Zanzibar"
	pdf.Text(pageW/2-pdf.GetStringWidth(tagline)/2, 287, tagline)
	stamp := fmt.Sprintf("Generated on %s", rep.GeneratedAt.Format("2006-01-02 15:04"))
	pdf.Text(right-pdf.GetStringWidth(stamp), 287, stamp)
}

func setFill(pdf *fpdf.Fpdf, c rgb) { pdf.SetFillColor(c.r, c.g, c.b) }
