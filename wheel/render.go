// wheel/render.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package wheel

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mmp/diversionwheel/log"
	"github.com/mmp/diversionwheel/math"
	"github.com/mmp/diversionwheel/renderer"

	"github.com/brunoga/deep"
)

// DefaultOutputPath is where the wheel is written if no other path is
// given.
const DefaultOutputPath = "/tmp/diversion-wheel.pdf"

// Renderer turns Params into PDF pages with a fixed set of Options.
type Renderer struct {
	opts  Options
	units Units
	// CreationDate is recorded in the PDF metadata if it is non-zero.
	CreationDate time.Time
	lg           *log.Logger
}

func NewRenderer(opts Options, lg *log.Logger) *Renderer {
	u := DefaultUnits
	if opts.Scale != DefaultScale {
		u = MakeUnits(opts.Scale)
	}
	return &Renderer{opts: opts, units: u, lg: lg}
}

// Units returns the unit conversions used for the renderer's chart scale.
func (r *Renderer) Units() Units {
	return r.units
}

func (r *Renderer) pageSize() (w, h float32) {
	return r.units.Cm(r.opts.PageWidthCm), r.units.Cm(r.opts.PageHeightCm)
}

// Layout returns the geometry of the wheel for p.
func (r *Renderer) Layout(p Params) *Layout {
	w, h := r.pageSize()
	return MakeLayout(p, r.units, w, h)
}

// Page is a wheel that has been laid out and drawn and is ready to be
// written. Its layout and recorded commands describe the PDF it holds,
// so callers only ever get copies of them.
type Page struct {
	params   Params
	layout   *Layout
	commands *renderer.CommandBuffer

	pdf *renderer.PDF
	lg  *log.Logger
}

// Compose lays out and draws the wheel for p. The drawing commands are
// first recorded and then replayed to the PDF; the recording is kept in
// the returned Page so that it can be inspected or saved.
func (r *Renderer) Compose(p Params) (*Page, error) {
	w, h := r.pageSize()
	pdf, err := renderer.NewPDF(renderer.PDFOptions{
		Width:          w,
		Height:         h,
		FontFamily:     r.opts.FontFamily,
		FontSize:       r.opts.FontSize,
		LineWidth:      r.opts.LineWidth,
		CircleSegments: r.opts.CircleSegments,
		Compress:       r.opts.Compress,
		Title:          "Diversion wheel: " + p.String(),
		CreationDate:   r.CreationDate,
	}, r.lg)
	if err != nil {
		return nil, renderError("create document", err)
	}

	layout := MakeLayout(p, r.units, w, h)
	cb := renderer.MakeCommandBuffer(pdf)
	Draw(cb, layout)
	if err := cb.Err(); err != nil {
		return nil, renderError("draw", err)
	}

	if err := cb.Replay(pdf); err != nil {
		return nil, renderError("replay", err)
	}
	if err := pdf.Finish(); err != nil {
		return nil, renderError("finish", err)
	}

	r.lg.Info("composed wheel", slog.Any("params", p),
		slog.Float64("r2", float64(layout.R2)), slog.Float64("r4", float64(layout.R4)),
		slog.Any("stats", pdf.Stats()))

	return &Page{params: p, layout: layout, commands: cb, pdf: pdf, lg: r.lg}, nil
}

func (pg *Page) Params() Params {
	return pg.params
}

// Layout returns a copy of the geometry the page was drawn from.
func (pg *Page) Layout() *Layout {
	l := deep.MustCopy(*pg.layout)
	return &l
}

// Commands returns a copy of the drawing commands that produced the page.
func (pg *Page) Commands() *renderer.CommandBuffer {
	return pg.commands.Clone()
}

// Census classifies the page's drawing commands.
func (pg *Page) Census() Census {
	return TakeCensus(pg.commands, pg.layout)
}

// CenterOffset returns how far the center of everything drawn is from
// the center of the page, in points.
func (pg *Page) CenterOffset() [2]float32 {
	return math.Sub2f(pg.commands.Bounds().Center(), pg.layout.Center)
}

// Write writes the PDF document to w.
func (pg *Page) Write(w io.Writer) error {
	if err := pg.pdf.Write(w); err != nil {
		return ioError("write", "", err)
	}
	return nil
}

// Save writes the PDF document to the file at path, replacing anything
// that is already there. The file is always closed, and it is removed if
// it couldn't be written completely.
func (pg *Page) Save(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return ioError("create", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = ioError("close", path, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	if err := pg.pdf.Write(f); err != nil {
		return ioError("write", path, err)
	}

	pg.lg.Infof("%s: wrote diversion wheel", path)
	return nil
}

// Render draws the wheel for p and writes it to path.
func (r *Renderer) Render(p Params, path string) (*Page, error) {
	pg, err := r.Compose(p)
	if err != nil {
		return nil, err
	}
	if err := pg.Save(path); err != nil {
		return nil, err
	}
	return pg, nil
}
