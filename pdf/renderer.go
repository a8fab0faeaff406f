// Package pdf turns itinerary markdown into a paginated US-Letter document.
// A line scanner maps the markdown onto layout blocks; the renderer lays the
// blocks out with core Helvetica fonts.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// Page geometry in points (US Letter, 612x792).
const (
	sideMargin   = 36.0 // 0.5in
	topBotMargin = 50.4 // 0.7in
)

// Document styles: 18pt centered title, 14pt section headings, 10pt body on
// 12pt leading.
const (
	titleSize     = 18.0
	titleLead     = 22.0
	titleAfter    = 12.0
	headingSize   = 14.0
	headingLead   = 18.0
	headingBefore = 12.0
	headingAfter  = 6.0
	bodySize      = 10.0
	bodyLead      = 12.0
	blankGap      = 6.0
	dateGap       = 10.0
	bulletIndent  = 6.0
	bulletHang    = 18.0
)

const docTitle = "Your Travel Itinerary"

// RenderError wraps a document layout or output failure. Rendering never
// touches session state, so the markdown stays viewable after one.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string { return fmt.Sprintf("pdf render: %v", e.Err) }
func (e *RenderError) Unwrap() error { return e.Err }

// Renderer lays itinerary markdown onto US-Letter pages. Now feeds both the
// "Generated:" line and the document's embedded dates, so a fixed clock
// makes the output byte-reproducible.
type Renderer struct {
	Title string
	Now   func() time.Time
}

func NewRenderer() *Renderer {
	return &Renderer{Title: docTitle, Now: time.Now}
}

// Render produces the finished document for the given markdown.
func (r *Renderer) Render(markdown string) ([]byte, error) {
	now := r.Now()

	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetTitle(r.Title, true)
	doc.SetCreationDate(now)
	doc.SetModificationDate(now)
	doc.SetMargins(sideMargin, topBotMargin, sideMargin)
	doc.SetAutoPageBreak(true, topBotMargin)
	doc.AddPage()

	// core fonts are WinAnsi; transliterate everything on the way in
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.SetFont("Helvetica", "B", titleSize)
	doc.MultiCell(0, titleLead, tr(r.Title), "", "C", false)
	doc.Ln(titleAfter)

	doc.SetFont("Helvetica", "", bodySize)
	doc.MultiCell(0, bodyLead, "Generated: "+now.Format("2006-01-02"), "", "L", false)
	doc.Ln(dateGap)

	for _, b := range ParseBlocks(markdown) {
		switch b.Kind {
		case Spacer:
			doc.Ln(blankGap)
		case Heading:
			doc.Ln(headingBefore)
			doc.SetFont("Helvetica", "B", headingSize)
			doc.MultiCell(0, headingLead, tr(b.Text), "", "L", false)
			doc.Ln(headingAfter)
			doc.SetFont("Helvetica", "", bodySize)
		case BulletList:
			for _, item := range b.Items {
				doc.SetX(sideMargin + bulletIndent)
				doc.CellFormat(bulletHang-bulletIndent, bodyLead, tr("•"), "", 0, "L", false, 0, "")
				doc.SetLeftMargin(sideMargin + bulletHang)
				doc.MultiCell(0, bodyLead, tr(item), "", "L", false)
				doc.SetLeftMargin(sideMargin)
				doc.SetX(sideMargin)
			}
		default:
			doc.MultiCell(0, bodyLead, tr(b.Text), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, &RenderError{Err: err}
	}
	return buf.Bytes(), nil
}
