// wheel/render_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package wheel

import (
	"bytes"
	"errors"
	"log/slog"
	gomath "math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mmp/diversionwheel/log"
	"github.com/mmp/diversionwheel/math"
	"github.com/mmp/diversionwheel/renderer"
)

func testRenderer() *Renderer {
	r := NewRenderer(DefaultOptions(), nil)
	r.CreationDate = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return r
}

func compose(t *testing.T, p Params) *Page {
	t.Helper()
	pg, err := testRenderer().Compose(p)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	return pg
}

func TestReferenceWheel(t *testing.T) {
	pg := compose(t, DefaultParams())

	expected := Census{
		Rings:       2,
		OuterTicks:  72,
		InnerTicks:  36,
		Labels:      12,
		WindMarkers: 2,
		GridLines:   18,
		GridColumns: 9,
		GridRows:    9,
	}
	if c := pg.Census(); c != expected {
		t.Errorf("got census %+v, expected %+v", c, expected)
	}

	cb := pg.Commands()
	for op, n := range map[renderer.Op]int{
		renderer.OpCircle: 4,
		renderer.OpLine:   72 + 36 + 18,
		renderer.OpText:   12,
	} {
		if c := cb.Count(op); c != n {
			t.Errorf("%s: got %d, expected %d", op, c, n)
		}
	}
	if cb.Count(renderer.OpSaveState) != cb.Count(renderer.OpRestoreState) {
		t.Errorf("unbalanced save/restore")
	}
}

func TestTickGeometry(t *testing.T) {
	p := DefaultParams()
	pg := compose(t, p)
	l := pg.Layout()

	// The first outer tick is at north plus the variation, measured
	// clockwise.
	for _, cmd := range pg.Commands().Commands {
		if cmd.Op != renderer.OpLine || cmd.Depth != 2 {
			continue
		}
		a := math.Radians(p.Variation)
		expected := math.Add2f(l.Center, math.Scale2f([2]float32{math.Sin(a), math.Cos(a)}, l.R4))
		got := cmd.CTM.TransformPoint(cmd.P[0])
		if math.Distance2f(got, expected) > 1e-2 {
			t.Errorf("first tick at %v, expected %v", got, expected)
		}
		end := cmd.CTM.TransformPoint(cmd.P[1])
		if d := math.Distance2f(got, end); !math.ApproxEqual(d, DefaultUnits.Cm(0.4), 1e-3) {
			t.Errorf("first tick is %g points long, expected %g", d, DefaultUnits.Cm(0.4))
		}
		break
	}
}

func TestWindMarkers(t *testing.T) {
	p := DefaultParams()
	pg := compose(t, p)
	l := pg.Layout()

	a := math.Radians(p.WindDirection)
	dir := [2]float32{math.Sin(a), math.Cos(a)}
	var i int
	for _, cmd := range pg.Commands().Commands {
		if cmd.Op != renderer.OpCircle || cmd.Radius != l.MarkerRadius {
			continue
		}
		expected := math.Add2f(l.Center, math.Scale2f(dir, l.WindMarkers[i]))
		if got := cmd.CTM.TransformPoint(cmd.P[0]); math.Distance2f(got, expected) > 1e-2 {
			t.Errorf("wind marker %d at %v, expected %v", i, got, expected)
		}
		i++
	}
	if i != 2 {
		t.Errorf("found %d wind markers, expected 2", i)
	}
}

func TestLabelsCentered(t *testing.T) {
	pg := compose(t, DefaultParams())
	cb, l := pg.Commands(), pg.Layout()
	for _, cmd := range cb.Commands {
		if cmd.Op != renderer.OpText {
			continue
		}
		w := cb.StringWidth(cmd.Text)
		if w <= 0 || cmd.P[0][0] != -w/2 {
			t.Errorf("%q: starts at x=%g, width %g", cmd.Text, cmd.P[0][0], w)
		}
		if cmd.P[0][1] != l.R4-l.LabelInset {
			t.Errorf("%q: baseline at %g", cmd.Text, cmd.P[0][1])
		}
	}
}

func TestFlipped(t *testing.T) {
	p := DefaultParams()
	plain := compose(t, p)
	p.Flipped = true
	flipped := compose(t, p)

	if c, f := plain.Census(), flipped.Census(); c != f {
		t.Errorf("flipping changed the census: %+v vs %+v", c, f)
	}

	pc, fc := plain.Commands().Commands, flipped.Commands().Commands
	root := fc[1]
	if root.Op != renderer.OpTransform || root.M.Determinant() != -1 {
		t.Errorf("expected a mirroring root transform, got %+v", root)
	}

	// Corresponding points are mirrored about the center of the page.
	cx := plain.Layout().Center[0]
	for i, a := range pc {
		b := fc[i]
		if a.Op != renderer.OpLine {
			continue
		}
		pa, pb := a.CTM.TransformPoint(a.P[0]), b.CTM.TransformPoint(b.P[0])
		if !math.ApproxEqual(pa[0]-cx, cx-pb[0], 1e-2) || !math.ApproxEqual(pa[1], pb[1], 1e-2) {
			t.Errorf("command %d: %v is not the mirror of %v", i, pb, pa)
		}
	}
}

func TestIdempotent(t *testing.T) {
	a := compose(t, DefaultParams())
	b := compose(t, DefaultParams())
	if !a.Commands().Equal(b.Commands()) {
		t.Errorf("identical parameters gave different drawing commands")
	}

	p := DefaultParams()
	p.Speed = 120
	c := compose(t, p)
	if a.Commands().Equal(c.Commands()) {
		t.Errorf("different speeds gave identical drawing commands")
	}
}

func TestFitsOnPage(t *testing.T) {
	pg := compose(t, DefaultParams())
	w, h := testRenderer().pageSize()
	page := math.Extent2D{P1: [2]float32{w, h}}

	b := pg.Commands().Bounds()
	if !page.Inside(b.P0) || !page.Inside(b.P1) {
		t.Errorf("wheel bounds %+v do not fit on the page %+v", b, page)
	}

	for _, flipped := range []bool{false, true} {
		p := DefaultParams()
		p.Flipped = flipped
		if off := compose(t, p).CenterOffset(); math.Length2f(off) > 1e-2 {
			t.Errorf("flipped %v: wheel is off center by %v", flipped, off)
		}
	}
}

func TestPageCopies(t *testing.T) {
	pg := compose(t, DefaultParams())
	census := pg.Census()
	orig := pg.Commands()

	cb := pg.Commands()
	cb.Commands = cb.Commands[:10]
	pg.Commands().Commands[0].Op = renderer.OpText
	pg.Layout().Ticks[0].Label = "X"
	l := pg.Layout()
	l.R4, l.R2 = 1, 1

	if c := pg.Census(); c != census {
		t.Errorf("census changed from %+v to %+v", census, c)
	}
	if !pg.Commands().Equal(orig) {
		t.Errorf("modifying a copy changed the page's commands")
	}
	if pg.Layout().Ticks[0].Label != "N" {
		t.Errorf("modifying a copy changed the page's layout")
	}
}

func TestRenderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wheel.pdf")
	if err := os.WriteFile(path, []byte("stale contents"), 0o644); err != nil {
		t.Fatal(err)
	}

	pg, err := testRenderer().Render(DefaultParams(), path)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header")
	}

	var buf bytes.Buffer
	if err := pg.Write(&buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), b) {
		t.Errorf("Write and Save produced different documents")
	}
}

func TestRenderErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "wheel.pdf")
	_, err := testRenderer().Render(DefaultParams(), path)
	if !errors.Is(err, ErrIOFailure) || errors.Is(err, ErrRenderFailure) {
		t.Errorf("expected an I/O failure, got %v", err)
	}
	var re *RenderError
	if !errors.As(err, &re) || re.Kind != IOFailure || re.Path != path {
		t.Errorf("unexpected error %#v", err)
	}

	opts := DefaultOptions()
	opts.FontFamily = "NoSuchFont"
	_, err = NewRenderer(opts, nil).Render(DefaultParams(), filepath.Join(t.TempDir(), "wheel.pdf"))
	if !errors.Is(err, ErrRenderFailure) || errors.Is(err, ErrIOFailure) {
		t.Errorf("expected a render failure, got %v", err)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteFailure(t *testing.T) {
	pg := compose(t, DefaultParams())
	err := pg.Write(failingWriter{})
	if !errors.Is(err, ErrIOFailure) {
		t.Errorf("expected an I/O failure, got %v", err)
	}
	if err.Error() != "I/O failure: write: disk full" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestQuietByDefault(t *testing.T) {
	lvl, err := log.ParseLevel(log.DefaultLevel(""))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	lg := log.NewWithHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: lvl}), "")

	r := NewRenderer(DefaultOptions(), lg)
	if _, err := r.Render(DefaultParams(), filepath.Join(t.TempDir(), "wheel.pdf")); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("successful render logged at the default level:\n%s", buf.String())
	}
}

func TestLogNonFiniteParams(t *testing.T) {
	var buf bytes.Buffer
	lg := log.NewWithHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}), "")

	p := DefaultParams()
	p.WindDirection = float32(gomath.NaN())
	if _, err := NewRenderer(DefaultOptions(), lg).Compose(p); err != nil {
		t.Fatal(err)
	}
	if out := buf.String(); !strings.Contains(out, "composed wheel") || strings.Contains(out, "panicked") {
		t.Errorf("unexpected log output:\n%s", out)
	}
}
