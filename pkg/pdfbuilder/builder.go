// Package pdfbuilder wraps the PDF backend behind a small set of layout
// primitives (sections, key/value rows, paragraphs, image pairs, signature
// blocks) so the document layout logic never talks to the engine directly.
package pdfbuilder

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// RGB is an 8-bit color triple.
type RGB struct {
	R, G, B int
}

// Options configures one document: the branding that repeats on every page
// and the accent colors used throughout.
type Options struct {
	Title       string
	BrandName   string
	Monogram    string
	Accent      RGB
	AccentLight RGB
	FooterLines []string
}

// Builder assembles one paginated A4 document. It is single-use: build the
// content top to bottom, then call Output once.
type Builder struct {
	pdf      *fpdf.Fpdf
	opts     Options
	imageSeq int
}

const (
	marginLeft   = 15.0
	marginTop    = 14.0
	marginRight  = 15.0
	marginBottom = 34.0

	labelWidth = 48.0
	lineHeight = 6.0
)

// New creates a builder with the repeating header and footer bands
// installed. Pagination is engine-driven: content that overflows the bottom
// margin triggers a new page with the same bands.
func New(opts Options) *Builder {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(opts.Title, true)
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.AliasNbPages("")

	b := &Builder{pdf: pdf, opts: opts}

	pdf.SetHeaderFunc(func() {
		// Monogram tile
		pdf.SetFillColor(opts.Accent.R, opts.Accent.G, opts.Accent.B)
		pdf.Rect(marginLeft, marginTop, 12, 12, "F")
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 15)
		pdf.SetXY(marginLeft, marginTop)
		pdf.CellFormat(12, 12, opts.Monogram, "", 0, "C", false, 0, "")

		// Brand name and document title
		pdf.SetTextColor(opts.Accent.R, opts.Accent.G, opts.Accent.B)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetXY(marginLeft+16, marginTop+1)
		pdf.CellFormat(0, 6, opts.BrandName, "", 1, "L", false, 0, "")
		pdf.SetTextColor(90, 90, 90)
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetX(marginLeft + 16)
		pdf.CellFormat(0, 5, opts.Title, "", 1, "L", false, 0, "")

		// Band rule
		pdf.SetDrawColor(opts.Accent.R, opts.Accent.G, opts.Accent.B)
		pdf.SetLineWidth(0.5)
		pageW, _ := pdf.GetPageSize()
		pdf.Line(marginLeft, marginTop+14, pageW-marginRight, marginTop+14)
		pdf.SetY(marginTop + 18)
	})

	pdf.SetFooterFunc(func() {
		pageW, pageH := pdf.GetPageSize()
		pdf.SetDrawColor(opts.Accent.R, opts.Accent.G, opts.Accent.B)
		pdf.SetLineWidth(0.3)
		pdf.Line(marginLeft, pageH-marginBottom+6, pageW-marginRight, pageH-marginBottom+6)

		pdf.SetY(pageH - marginBottom + 8)
		pdf.SetTextColor(110, 110, 110)
		pdf.SetFont("Helvetica", "", 7.5)
		for _, line := range opts.FooterLines {
			pdf.CellFormat(0, 3.6, line, "", 1, "C", false, 0, "")
		}
		pdf.SetFont("Helvetica", "I", 7.5)
		pdf.CellFormat(0, 3.6, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 1, "C", false, 0, "")
	})

	return b
}

// AddPage starts the first (or a new) page.
func (b *Builder) AddPage() {
	b.pdf.AddPage()
}

// SectionTitle draws a full-width accent-tinted section heading.
func (b *Builder) SectionTitle(title string) {
	b.ensureRoom(14)
	b.pdf.Ln(2)
	b.pdf.SetFillColor(b.opts.AccentLight.R, b.opts.AccentLight.G, b.opts.AccentLight.B)
	b.pdf.SetTextColor(b.opts.Accent.R, b.opts.Accent.G, b.opts.Accent.B)
	b.pdf.SetFont("Helvetica", "B", 11)
	b.pdf.CellFormat(0, 8, "  "+title, "", 1, "L", true, 0, "")
	b.pdf.Ln(1.5)
}

// KeyValue draws one labeled row. Values wrap onto further lines under the
// value column.
func (b *Builder) KeyValue(label, value string) {
	b.pdf.SetFont("Helvetica", "B", 9.5)
	b.pdf.SetTextColor(70, 70, 70)
	b.pdf.CellFormat(labelWidth, lineHeight, label, "", 0, "L", false, 0, "")

	b.pdf.SetFont("Helvetica", "", 9.5)
	b.pdf.SetTextColor(20, 20, 20)
	pageW, _ := b.pdf.GetPageSize()
	b.pdf.MultiCell(pageW-marginLeft-marginRight-labelWidth, lineHeight, value, "", "L", false)
}

// Paragraph draws a bold label line followed by wrapped body text.
func (b *Builder) Paragraph(label, text string) {
	b.ensureRoom(16)
	b.pdf.SetFont("Helvetica", "B", 9.5)
	b.pdf.SetTextColor(70, 70, 70)
	b.pdf.CellFormat(0, lineHeight, label, "", 1, "L", false, 0, "")
	b.pdf.SetFont("Helvetica", "", 9.5)
	b.pdf.SetTextColor(20, 20, 20)
	b.pdf.MultiCell(0, 5, text, "", "L", false)
	b.pdf.Ln(1.5)
}

// ImagePair draws one before/after block: two captioned image boxes side by
// side. Either image may be nil; its box is then captioned only. Images are
// scaled to fit the fixed box, never enlarged past it.
func (b *Builder) ImagePair(caption string, before, after []byte) {
	const boxW, boxH = 82.0, 58.0
	b.ensureRoom(boxH + 14)

	b.pdf.SetFont("Helvetica", "B", 9)
	b.pdf.SetTextColor(b.opts.Accent.R, b.opts.Accent.G, b.opts.Accent.B)
	b.pdf.CellFormat(0, 5.5, caption, "", 1, "L", false, 0, "")

	top := b.pdf.GetY()
	b.imageBox("Before", before, marginLeft, top, boxW, boxH)
	b.imageBox("After", after, marginLeft+boxW+8, top, boxW, boxH)
	b.pdf.SetY(top + boxH + 9)
}

// imageBox draws a caption and a bordered box, with the image fitted inside
// when one is provided.
func (b *Builder) imageBox(caption string, img []byte, x, y, w, h float64) {
	b.pdf.SetFont("Helvetica", "", 8)
	b.pdf.SetTextColor(110, 110, 110)
	b.pdf.SetXY(x, y)
	b.pdf.CellFormat(w, 4, caption, "", 0, "L", false, 0, "")

	boxTop := y + 5
	b.pdf.SetDrawColor(190, 190, 190)
	b.pdf.SetLineWidth(0.2)
	b.pdf.Rect(x, boxTop, w, h, "D")

	if img == nil {
		return
	}
	name, ok := b.registerImage(img)
	if !ok {
		return
	}
	iw, ih := b.imageExtent(name)
	fw, fh := fitBox(iw, ih, w-2, h-2)
	b.pdf.ImageOptions(name, x+(w-fw)/2, boxTop+(h-fh)/2, fw, fh, false,
		fpdf.ImageOptions{ImageType: imageType(img)}, 0, "")
}

// SignatureBlock draws a signature image (when present) above a rule line,
// with the printed name and date below. Technician and customer blocks use
// exactly this layout.
func (b *Builder) SignatureBlock(title string, sig []byte, name, date string) {
	const sigW, sigH = 64.0, 24.0
	b.ensureRoom(sigH + 24)

	b.pdf.SetFont("Helvetica", "B", 9.5)
	b.pdf.SetTextColor(70, 70, 70)
	b.pdf.CellFormat(0, lineHeight, title, "", 1, "L", false, 0, "")

	top := b.pdf.GetY()
	if sig != nil {
		if imgName, ok := b.registerImage(sig); ok {
			iw, ih := b.imageExtent(imgName)
			fw, fh := fitBox(iw, ih, sigW, sigH)
			b.pdf.ImageOptions(imgName, marginLeft, top+(sigH-fh), fw, fh, false,
				fpdf.ImageOptions{ImageType: imageType(sig)}, 0, "")
		}
	}

	// Rule line separating image from printed name
	ruleY := top + sigH + 2
	b.pdf.SetDrawColor(60, 60, 60)
	b.pdf.SetLineWidth(0.3)
	b.pdf.Line(marginLeft, ruleY, marginLeft+sigW+10, ruleY)

	b.pdf.SetY(ruleY + 1.5)
	b.pdf.SetFont("Helvetica", "", 9.5)
	b.pdf.SetTextColor(20, 20, 20)
	b.pdf.CellFormat(0, 5, name, "", 1, "L", false, 0, "")
	b.pdf.SetTextColor(110, 110, 110)
	b.pdf.SetFont("Helvetica", "", 8.5)
	b.pdf.CellFormat(0, 4.5, date, "", 1, "L", false, 0, "")
	b.pdf.Ln(2)
}

// Spacer advances the cursor by h millimetres.
func (b *Builder) Spacer(h float64) {
	b.pdf.Ln(h)
}

// Output finalizes the document and returns its bytes, or the first error
// the engine recorded.
func (b *Builder) Output() ([]byte, error) {
	if err := b.pdf.Error(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := b.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ensureRoom starts a new page when fewer than h millimetres remain above
// the footer band. Cell-level breaks are handled by the engine; this covers
// blocks drawn with absolute positioning.
func (b *Builder) ensureRoom(h float64) {
	_, pageH := b.pdf.GetPageSize()
	if b.pdf.GetY()+h > pageH-marginBottom {
		b.pdf.AddPage()
	}
}

// registerImage loads image bytes into the document under a unique name.
// Undecodable data clears the engine error and reports failure instead of
// poisoning the whole render.
func (b *Builder) registerImage(img []byte) (string, bool) {
	kind := imageType(img)
	if kind == "" {
		return "", false
	}
	b.imageSeq++
	name := fmt.Sprintf("img%d", b.imageSeq)
	info := b.pdf.RegisterImageOptionsReader(name,
		fpdf.ImageOptions{ImageType: kind}, bytes.NewReader(img))
	if b.pdf.Err() || info == nil {
		b.pdf.ClearError()
		return "", false
	}
	return name, true
}

func (b *Builder) imageExtent(name string) (float64, float64) {
	info := b.pdf.GetImageInfo(name)
	if info == nil {
		return 1, 1
	}
	return info.Extent()
}

// fitBox scales (w, h) to fit inside (maxW, maxH) preserving aspect ratio,
// without enlarging.
func fitBox(w, h, maxW, maxH float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return maxW, maxH
	}
	scale := 1.0
	if w > maxW {
		scale = maxW / w
	}
	if h*scale > maxH {
		scale = maxH / h
	}
	return w * scale, h * scale
}

// imageType sniffs the engine image type from magic bytes. Empty means the
// data is not an image the engine can decode.
func imageType(img []byte) string {
	switch {
	case len(img) > 8 && bytes.HasPrefix(img, []byte("\x89PNG\r\n\x1a\n")):
		return "PNG"
	case len(img) > 3 && img[0] == 0xFF && img[1] == 0xD8:
		return "JPG"
	case len(img) > 6 && (bytes.HasPrefix(img, []byte("GIF87a")) || bytes.HasPrefix(img, []byte("GIF89a"))):
		return "GIF"
	default:
		return ""
	}
}
