/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */

package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"govg/internal/vg"
)

func testAsset() *vg.Asset {
	var fill vg.Path
	fill.MoveTo(0, 0)
	fill.LineTo(20, 0)
	fill.LineTo(20, 20)
	fill.Close()

	var line vg.Path
	line.MoveTo(2, 10)
	line.QuadTo(10, 0, 18, 10)

	return &vg.Asset{
		Viewport: vg.Size{W: 20, H: 20},
		Shaders: []vg.LinearGradient{{
			From: vg.Pt{X: 0, Y: 0}, To: vg.Pt{X: 20, Y: 0},
			Stops: []vg.GradientStop{
				{Offset: 0, Color: vg.Red},
				{Offset: 1, Color: vg.Blue},
			},
		}},
		Paints: []vg.Paint{
			{ID: 0, Kind: vg.KindFill, Shader: vg.NoShader, Color: vg.RGBA(0x00, 0xFF, 0x00, 0x80)},
			{ID: 1, Kind: vg.KindStroke, Shader: vg.NoShader, Color: vg.Black,
				Stroke: &vg.StrokeParams{Width: 2, MiterLim: 4, Cap: vg.CapRound, Join: vg.JoinRound}},
			{ID: 2, Kind: vg.KindFill, Shader: 0, Color: vg.White},
		},
		Paths: []vg.Path{fill, line},
		Draws: []vg.Draw{{Path: 0, Paint: 0}, {Path: 1, Paint: 1}, {Path: 0, Paint: 2}},
	}
}

func TestSVGDocument(t *testing.T) {
	doc := SVG(testAsset())
	for _, want := range []string{
		`viewBox="0 0 20 20"`,
		`<linearGradient id="grad0"`,
		`fill="#00FF00"`,
		`fill-opacity="0.502"`,
		`stroke="#000000"`,
		`stroke-width="2"`,
		`stroke-linecap="round"`,
		`fill="url(#grad0)"`,
		`M0 0L20 0L20 20Z`,
		`Q10 0 18 10`,
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("svg missing %q in:\n%s", want, doc)
		}
	}
}

func TestSaveSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.svg")
	if err := SaveSVG(testAsset(), path); err != nil {
		t.Fatalf("save svg: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !strings.HasPrefix(string(data), "<svg ") {
		t.Fatalf("unexpected svg prefix: %.40s", data)
	}
}

func TestSavePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	if err := SavePDF(testAsset(), path); err != nil {
		t.Fatalf("save pdf: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF-") {
		t.Fatalf("output is not a PDF: %.8s", data)
	}
}

func TestSavePDFEmptyViewport(t *testing.T) {
	if err := SavePDF(&vg.Asset{}, filepath.Join(t.TempDir(), "x.pdf")); err == nil {
		t.Fatalf("expected error for empty viewport")
	}
}

func TestSavePNGExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := SavePNG(testAsset(), path, PNGOptions{Scale: 2}); err != nil {
		t.Fatalf("save png: %v", err)
	}
	if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
		t.Fatalf("png not written: %v", err)
	}
}
