/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"os"
	"path/filepath"
	"testing"

	"govg/internal/vg"
)

// square builds a 16x16 asset with one full-viewport red fill.
func square() *vg.Asset {
	var p vg.Path
	p.MoveTo(0, 0)
	p.LineTo(16, 0)
	p.LineTo(16, 16)
	p.LineTo(0, 16)
	p.Close()
	return &vg.Asset{
		Viewport: vg.Size{W: 16, H: 16},
		Paints:   []vg.Paint{{ID: 0, Kind: vg.KindFill, Shader: vg.NoShader, Color: vg.Red}},
		Paths:    []vg.Path{p},
		Draws:    []vg.Draw{{Path: 0, Paint: 0}},
	}
}

func TestRasterFillsPixels(t *testing.T) {
	img, err := Raster(square(), Options{})
	if err != nil {
		t.Fatalf("raster: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 16 || b.Dy() != 16 {
		t.Fatalf("canvas = %dx%d, want 16x16", b.Dx(), b.Dy())
	}
	c := img.RGBAAt(8, 8)
	if c.R < 200 || c.G > 50 || c.B > 50 || c.A < 200 {
		t.Fatalf("center pixel = %+v, want red", c)
	}
}

func TestRasterScale(t *testing.T) {
	img, err := Raster(square(), Options{Scale: 2})
	if err != nil {
		t.Fatalf("raster: %v", err)
	}
	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 32 {
		t.Fatalf("scaled canvas = %v", img.Bounds())
	}
	if c := img.RGBAAt(16, 16); c.R < 200 {
		t.Fatalf("scaled center pixel = %+v, want red", c)
	}
}

func TestRasterTransform(t *testing.T) {
	// Shrink the square to half size and move it into the lower-right
	// quadrant of the canvas.
	tf := vg.Translate(8, 8).Mul(vg.Scale(0.5, 0.5))
	img, err := Raster(square(), Options{Transform: tf})
	if err != nil {
		t.Fatalf("raster: %v", err)
	}
	if c := img.RGBAAt(12, 12); c.R < 200 {
		t.Fatalf("transformed pixel = %+v, want red", c)
	}
	if c := img.RGBAAt(4, 4); c.A != 0 {
		t.Fatalf("pixel outside the transformed square should stay transparent, got %+v", c)
	}
}

func TestRasterBackground(t *testing.T) {
	a := square()
	a.Draws = nil
	img, err := Raster(a, Options{Background: vg.White})
	if err != nil {
		t.Fatalf("raster: %v", err)
	}
	if c := img.RGBAAt(1, 1); c.R != 255 || c.G != 255 || c.B != 255 {
		t.Fatalf("background pixel = %+v, want white", c)
	}
}

func TestRasterEmptyViewport(t *testing.T) {
	if _, err := Raster(&vg.Asset{}, Options{}); err == nil {
		t.Fatalf("expected error for empty viewport")
	}
}

func TestRasterStroke(t *testing.T) {
	var p vg.Path
	p.MoveTo(2, 8)
	p.LineTo(14, 8)
	a := &vg.Asset{
		Viewport: vg.Size{W: 16, H: 16},
		Paints: []vg.Paint{{
			ID: 0, Kind: vg.KindStroke, Shader: vg.NoShader, Color: vg.Blue,
			Stroke: &vg.StrokeParams{Width: 4, MiterLim: 4, Cap: vg.CapRound, Join: vg.JoinRound},
		}},
		Paths: []vg.Path{p},
		Draws: []vg.Draw{{Path: 0, Paint: 0}},
	}
	img, err := Raster(a, Options{})
	if err != nil {
		t.Fatalf("raster: %v", err)
	}
	if c := img.RGBAAt(8, 8); c.B < 200 {
		t.Fatalf("stroke pixel = %+v, want blue", c)
	}
	if c := img.RGBAAt(8, 1); c.A != 0 {
		t.Fatalf("pixel off the stroke should stay transparent, got %+v", c)
	}
}

func TestSavePNGAndThumbnail(t *testing.T) {
	img, err := Raster(square(), Options{})
	if err != nil {
		t.Fatalf("raster: %v", err)
	}
	path := filepath.Join(t.TempDir(), "out.png")
	if err := SavePNG(img, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
		t.Fatalf("png not written: %v", err)
	}
	th := Thumbnail(img, 8, 8)
	if th.Bounds().Dx() != 8 {
		t.Fatalf("thumbnail = %v", th.Bounds())
	}
}
