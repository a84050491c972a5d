// renderer/pdf.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/mmp/diversionwheel/log"
	"github.com/mmp/diversionwheel/math"

	"github.com/jung-kurt/gofpdf"
)

// PDFOptions specifies the page and font used by a PDF canvas.
type PDFOptions struct {
	// Page size, in points.
	Width, Height float32
	// One of the standard PDF fonts: Times, Helvetica, Courier.
	FontFamily string
	FontSize   float32
	LineWidth  float32
	// CircleSegments gives the number of line segments used to draw
	// circles; zero selects the Bezier approximation that gofpdf
	// provides.
	CircleSegments int
	Compress       bool
	Title          string
	// CreationDate is recorded in the document metadata; the current
	// time is used if it is zero.
	CreationDate time.Time
}

// PDF is a single-page Canvas that generates a PDF document using gofpdf.
//
// Canvas coordinates are points with y up, as in PDF itself, while gofpdf
// expects y down from the top of the page; each y value is therefore
// flipped as it's handed to gofpdf, which flips it back when it writes
// the content stream. Since SaveState/Transform map directly to q/cm,
// the two flips cancel in any transformed frame.
type PDF struct {
	pdf    *gofpdf.Fpdf
	opts   PDFOptions
	height float64
	stats  RendererStats
	data   []byte
	lg     *log.Logger
}

var ErrNotFinished = errors.New("PDF document has not been finished")

// NewPDF creates a document with a single empty page. Failures in setting
// up the document (e.g., an unknown font family) are returned as errors.
func NewPDF(opts PDFOptions, lg *log.Logger) (*PDF, error) {
	f := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		SizeStr:        "A4",
		Size:           gofpdf.SizeType{Wd: float64(opts.Width), Ht: float64(opts.Height)},
	})
	f.SetCompression(opts.Compress)
	f.SetCatalogSort(true)
	if !opts.CreationDate.IsZero() {
		f.SetCreationDate(opts.CreationDate)
	}
	if opts.Title != "" {
		f.SetTitle(opts.Title, false)
	}
	f.SetCreator("diversionwheel", false)
	f.SetMargins(0, 0, 0)
	f.SetAutoPageBreak(false, 0)
	f.AddPage()
	f.SetFont(opts.FontFamily, "", float64(opts.FontSize))
	if opts.LineWidth > 0 {
		f.SetLineWidth(float64(opts.LineWidth))
	}

	if err := f.Error(); err != nil {
		return nil, err
	}

	lg.Debug("created PDF", "width", opts.Width, "height", opts.Height, "font", opts.FontFamily)

	return &PDF{pdf: f, opts: opts, height: float64(opts.Height), lg: lg}, nil
}

// Err returns the first error gofpdf has encountered, if any.
func (p *PDF) Err() error {
	return p.pdf.Error()
}

// Stats returns statistics about what has been drawn so far.
func (p *PDF) Stats() RendererStats {
	return p.stats
}

func (p *PDF) y(v float32) float64 {
	return p.height - float64(v)
}

func (p *PDF) StringWidth(s string) float32 {
	return float32(p.pdf.GetStringWidth(s))
}

func (p *PDF) SaveState() {
	p.stats.nStateChanges++
	p.pdf.TransformBegin()
}

func (p *PDF) RestoreState() {
	p.stats.nStateChanges++
	p.pdf.TransformEnd()
}

func (p *PDF) Transform(m math.Matrix3) {
	p.stats.nTransforms++
	// PDF's [a b c d e f] maps (x,y) to (ax+cy+e, bx+dy+f).
	p.pdf.Transform(gofpdf.TransformMatrix{
		A: float64(m[0][0]), B: float64(m[1][0]),
		C: float64(m[0][1]), D: float64(m[1][1]),
		E: float64(m[0][2]), F: float64(m[1][2]),
	})
}

func (p *PDF) Line(p0, p1 [2]float32) {
	p.stats.nLines++
	p.stats.nSegments++
	p.pdf.MoveTo(float64(p0[0]), p.y(p0[1]))
	p.pdf.LineTo(float64(p1[0]), p.y(p1[1]))
	p.pdf.DrawPath("D")
}

func (p *PDF) Circle(center [2]float32, radius float32) {
	p.stats.nCircles++
	if p.opts.CircleSegments == 0 {
		p.pdf.Circle(float64(center[0]), p.y(center[1]), float64(radius), "D")
		return
	}

	pts := math.CirclePoints(p.opts.CircleSegments)
	pt := func(i int) [2]float32 {
		return math.Add2f(center, math.Scale2f(pts[i%len(pts)], radius))
	}
	p0 := pt(0)
	p.pdf.MoveTo(float64(p0[0]), p.y(p0[1]))
	for i := 1; i <= len(pts); i++ {
		pi := pt(i)
		p.pdf.LineTo(float64(pi[0]), p.y(pi[1]))
	}
	p.pdf.DrawPath("D")
	p.stats.nSegments += len(pts)
}

func (p *PDF) Text(pt [2]float32, s string) {
	p.stats.nText++
	p.pdf.Text(float64(pt[0]), p.y(pt[1]), s)
}

// Finish completes the document and generates its bytes; any error is
// from gofpdf's handling of the content rather than from I/O.
func (p *PDF) Finish() error {
	if err := p.pdf.Error(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := p.pdf.Output(&buf); err != nil {
		return err
	}
	p.data = buf.Bytes()
	return nil
}

// Write writes the finished document to w.
func (p *PDF) Write(w io.Writer) error {
	if p.data == nil {
		return ErrNotFinished
	}
	if _, err := w.Write(p.data); err != nil {
		return err
	}
	p.lg.Debug("wrote PDF", slog.Int("bytes", len(p.data)), slog.Any("stats", p.stats))
	return nil
}
