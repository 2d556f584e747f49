// internal/document/shopping_list.go

// Package document renders downloadable documents.
package document

import (
	"fmt"
	"io"
	"iter"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	fontFamily = "GoRegular"

	marginLeft    = 40.0
	titleY        = 690.0
	titleFontSize = 50.0
	itemFontSize  = 24.0
	firstItemY    = 650.0
	nextPageY     = 700.0
	bottomLimit   = 100.0
	lineStep      = 30.0
)

// Item is one aggregated shopping list line.
type Item struct {
	Name   string
	Unit   string
	Amount int64
}

// Placement is a line of text positioned on a page. Page is 1-based and Y
// is measured upward from the bottom edge in points.
type Placement struct {
	Page int
	X    float64
	Y    float64
	Text string
}

// Layout numbers items from 1 and spreads them over as many pages as
// needed. The title goes on the first page only.
func Layout(items iter.Seq[Item]) []Placement {
	placements := []Placement{{Page: 1, X: marginLeft, Y: titleY}}

	page, y, n := 1, firstItemY, 0
	for item := range items {
		if y < bottomLimit {
			page++
			y = nextPageY
		}
		n++
		placements = append(placements, Placement{
			Page: page,
			X:    marginLeft,
			Y:    y,
			Text: FormatLine(n, item),
		})
		y -= lineStep
	}
	return placements
}

func FormatLine(n int, item Item) string {
	return fmt.Sprintf("%d. %s - %d %s", n, item.Name, item.Amount, item.Unit)
}

// RenderShoppingList writes an A4 PDF with the title and one numbered line
// per item. An empty sequence yields a single page with only the title.
func RenderShoppingList(w io.Writer, title string, items iter.Seq[Item]) error {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddUTF8FontFromBytes(fontFamily, "", goregular.TTF)

	_, pageHeight := pdf.GetPageSize()

	page := 0
	for i, p := range Layout(items) {
		for page < p.Page {
			pdf.AddPage()
			page++
		}

		text := p.Text
		if i == 0 {
			pdf.SetFont(fontFamily, "", titleFontSize)
			text = title + ":"
		} else {
			pdf.SetFont(fontFamily, "", itemFontSize)
		}
		pdf.Text(p.X, pageHeight-p.Y, text)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to build shopping list document: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write shopping list document: %w", err)
	}
	return nil
}
