// renderer/pdf_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mmp/diversionwheel/math"
)

func testPDFOptions() PDFOptions {
	return PDFOptions{
		Width:          21 * math.PtPerCm,
		Height:         29.7 * math.PtPerCm,
		FontFamily:     "Times",
		FontSize:       18,
		LineWidth:      1,
		CircleSegments: 360,
		CreationDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func writePDF(t *testing.T, p *PDF) string {
	t.Helper()
	if err := p.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	var buf bytes.Buffer
	if err := p.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return buf.String()
}

func TestPDFContent(t *testing.T) {
	p, err := NewPDF(testPDFOptions(), nil)
	if err != nil {
		t.Fatal(err)
	}

	// Times-Roman "N" is 722/1000 em wide.
	if w := p.StringWidth("N"); !math.ApproxEqual(w, 0.722*18, 1e-3) {
		t.Errorf("StringWidth(N) = %g, expected %g", w, 0.722*18)
	}

	p.SaveState()
	p.Transform(math.Identity3x3().Translate(100, 200))
	p.Line([2]float32{10, 20}, [2]float32{30, 40})
	p.Text([2]float32{10, 20}, "N")
	p.Circle([2]float32{}, 5)
	p.RestoreState()

	out := writePDF(t, p)
	if !strings.HasPrefix(out, "%PDF-") {
		t.Errorf("output does not start with a PDF header")
	}
	for _, s := range []string{
		"1.00000 0.00000 0.00000 1.00000 100.00000 200.00000 cm",
		"10.00 20.00 m",
		"30.00 40.00 l",
		"10.00 20.00 Td (N) Tj",
		"5.00 0.00 m",
		"/Times-Roman",
	} {
		if !strings.Contains(out, s) {
			t.Errorf("output is missing %q", s)
		}
	}

	st := p.Stats()
	if st.Lines() != 1 || st.Circles() != 1 || st.Text() != 1 || st.Segments() != 361 {
		t.Errorf("unexpected stats %s", st.String())
	}
}

func TestPDFNativeCircle(t *testing.T) {
	opts := testPDFOptions()
	opts.CircleSegments = 0
	p, err := NewPDF(opts, nil)
	if err != nil {
		t.Fatal(err)
	}
	p.Circle([2]float32{}, 5)

	out := writePDF(t, p)
	if !strings.Contains(out, " c\n") {
		t.Errorf("expected Bezier curve operators for a native circle")
	}
	if st := p.Stats(); st.Segments() != 0 {
		t.Errorf("native circle should not emit line segments, got %d", st.Segments())
	}
}

func TestPDFErrors(t *testing.T) {
	opts := testPDFOptions()
	opts.FontFamily = "NoSuchFont"
	if _, err := NewPDF(opts, nil); err == nil {
		t.Errorf("expected an error for an unknown font")
	}

	p, err := NewPDF(testPDFOptions(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Write(&bytes.Buffer{}); !errors.Is(err, ErrNotFinished) {
		t.Errorf("expected ErrNotFinished writing an unfinished document, got %v", err)
	}

	p.RestoreState()
	if p.Err() == nil {
		t.Errorf("expected an error for an unbalanced RestoreState")
	}
	if err := p.Finish(); err == nil {
		t.Errorf("expected Finish to report the error")
	}
}
