package render

import (
	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin     = 20.0
	pdfBottomGap  = 40.0
	pdfHeaderBand = 45.0
	pdfFont       = "Helvetica"
)

type rgb struct{ r, g, b int }

var (
	colorInk   = rgb{26, 32, 44}
	colorPanel = rgb{240, 242, 245}
	colorBlock = rgb{250, 250, 251}
	colorMuted = rgb{100, 100, 100}
	colorWhite = rgb{255, 255, 255}
)

// page wraps an fpdf document with a vertical cursor, so blocks can be laid
// out top to bottom with explicit page breaks.
type page struct {
	doc    *fpdf.Fpdf
	tr     func(string) string
	width  float64
	height float64
	y      float64
}

func newPage() *page {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	doc.AddPage()
	w, h := doc.GetPageSize()
	return &page{
		doc:    doc,
		tr:     doc.UnicodeTranslatorFromDescriptor(""),
		width:  w,
		height: h,
		y:      pdfMargin,
	}
}

func (p *page) fill(c rgb)  { p.doc.SetFillColor(c.r, c.g, c.b) }
func (p *page) color(c rgb) { p.doc.SetTextColor(c.r, c.g, c.b) }

func (p *page) font(style string, size float64) {
	p.doc.SetFont(pdfFont, style, size)
}

// text places s with its baseline at (x, y).
func (p *page) text(x, y float64, s string) {
	p.doc.Text(x, y, p.tr(s))
}

// right places s so that it ends at x.
func (p *page) right(x, y float64, s string) {
	s = p.tr(s)
	p.doc.Text(x-p.doc.GetStringWidth(s), y, s)
}

// band draws the dark title band across the top of the first page.
func (p *page) band(title string, sub ...string) {
	p.fill(colorInk)
	p.doc.Rect(0, 0, p.width, pdfHeaderBand, "F")
	p.color(colorWhite)
	p.font("B", 24)
	p.text(pdfMargin, 25, title)
	p.font("", 10)
	y := 35.0
	for _, s := range sub {
		p.text(pdfMargin, y, s)
		y += 5
	}
	p.color(colorInk)
	p.y = 60
}

// panel fills a background box for a block of height h at the cursor.
func (p *page) panel(c rgb, h float64) {
	p.fill(c)
	p.doc.Rect(pdfMargin-5, p.y-5, p.width-2*pdfMargin+10, h, "F")
}

// breakIfLow starts a new page once the cursor is within the bottom gap.
func (p *page) breakIfLow() {
	if p.y > p.height-pdfBottomGap {
		p.doc.AddPage()
		p.y = pdfMargin
	}
}

// heading writes a bold section title and advances the cursor.
func (p *page) heading(s string) {
	p.color(colorInk)
	p.font("B", 12)
	p.text(pdfMargin, p.y, s)
	p.y += 8
}

// line writes one regular line at indent and advances by step.
func (p *page) line(indent, step float64, s string) {
	p.text(pdfMargin+indent, p.y, s)
	p.y += step
}
