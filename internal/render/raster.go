/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render rasterizes decoded assets into RGBA images. It consumes the
// resolved colors produced by the decode pass; color substitution is already
// finished by the time an asset reaches this package.
package render

import (
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"math"

	"github.com/disintegration/imaging"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	applog "govg/internal/log"
	"govg/internal/vg"
)

// Options controls rasterization.
type Options struct {
	// Scale multiplies the asset viewport to get the pixel size; <= 0 means 1.
	Scale float32
	// Background fills the canvas before drawing; zero means transparent.
	Background vg.Color
	// Transform is applied to path geometry in viewport units, before the
	// scale factor. The zero value means identity.
	Transform vg.Affine2D
}

// Raster renders the asset into a new RGBA image sized by its viewport and
// the scale factor. Blend modes other than source-over are approximated as
// source-over; gradient paints draw with their first stop color.
func Raster(a *vg.Asset, opts Options) (*image.RGBA, error) {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Ceil(float64(a.Viewport.W * scale)))
	h := int(math.Ceil(float64(a.Viewport.H * scale)))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("render: empty viewport %gx%g", a.Viewport.W, a.Viewport.H)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if opts.Background.A() != 0 {
		draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background.NRGBA()), image.Point{}, draw.Src)
	}

	tf := opts.Transform
	if tf == (vg.Affine2D{}) {
		tf = vg.Identity
	}
	tf = vg.Scale(scale, scale).Mul(tf)

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	filler := rasterx.NewFiller(w, h, scanner)
	stroker := rasterx.NewStroker(w, h, scanner)

	for i, d := range a.Draws {
		if int(d.Path) >= len(a.Paths) || int(d.Paint) >= len(a.Paints) {
			return nil, fmt.Errorf("render: draw %d out of range", i)
		}
		path := a.Paths[d.Path]
		paint := a.Paints[d.Paint]

		col := paint.Color
		if paint.HasShader() && int(paint.Shader) < len(a.Shaders) {
			g := a.Shaders[paint.Shader]
			if len(g.Stops) > 0 {
				col = g.Stops[0].Color
			}
		}

		if paint.Kind == vg.KindStroke {
			sp := vg.StrokeParams{Width: 1, MiterLim: 4}
			if paint.Stroke != nil {
				sp = *paint.Stroke
			}
			stroker.SetStroke(
				fixed.Int26_6(sp.Width*scale*64),
				fixed.Int26_6(sp.MiterLim*64),
				capFunc(sp.Cap), capFunc(sp.Cap), rasterx.RoundGap, joinMode(sp.Join),
			)
			stroker.SetColor(col.NRGBA())
			addPath(stroker, path, tf)
			stroker.Draw()
			stroker.Clear()
		} else {
			scanner.SetWinding(path.Rule == vg.NonZero)
			filler.SetColor(col.NRGBA())
			addPath(filler, path, tf)
			filler.Draw()
			filler.Clear()
		}
	}

	applog.WithComponent("render").Debug("asset rasterized",
		slog.Int("w", w), slog.Int("h", h), slog.Int("draws", len(a.Draws)))
	return img, nil
}

// addPath feeds transformed path commands to a rasterx shape builder.
func addPath(adder rasterx.Adder, p vg.Path, m vg.Affine2D) {
	pt := func(x, y float32) fixed.Point26_6 {
		return fixedPt(m.Apply(vg.Pt{X: x, Y: y}))
	}
	open := false
	for _, c := range p.Cmds {
		switch c.Op {
		case vg.MoveTo:
			if open {
				adder.Stop(false)
			}
			adder.Start(pt(c.Data[0], c.Data[1]))
			open = true
		case vg.LineTo:
			adder.Line(pt(c.Data[0], c.Data[1]))
		case vg.QuadTo:
			adder.QuadBezier(pt(c.Data[0], c.Data[1]), pt(c.Data[2], c.Data[3]))
		case vg.CubicTo:
			adder.CubeBezier(pt(c.Data[0], c.Data[1]),
				pt(c.Data[2], c.Data[3]), pt(c.Data[4], c.Data[5]))
		case vg.Close:
			adder.Stop(true)
			open = false
		}
	}
	if open {
		adder.Stop(false)
	}
}

func fixedPt(p vg.Pt) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(p.X * 64), Y: fixed.Int26_6(p.Y * 64)}
}

func capFunc(c vg.LineCap) rasterx.CapFunc {
	switch c {
	case vg.CapRound:
		return rasterx.RoundCap
	case vg.CapSquare:
		return rasterx.SquareCap
	default:
		return rasterx.ButtCap
	}
}

func joinMode(j vg.LineJoin) rasterx.JoinMode {
	switch j {
	case vg.JoinRound:
		return rasterx.Round
	case vg.JoinBevel:
		return rasterx.Bevel
	default:
		return rasterx.Miter
	}
}

// SavePNG writes the image as PNG; parent directories must exist.
func SavePNG(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save png: %w", err)
	}
	return nil
}

// Thumbnail scales the image down to fit within maxW x maxH, preserving
// aspect ratio. Images already small enough are returned resampled 1:1.
func Thumbnail(img image.Image, maxW, maxH int) image.Image {
	return imaging.Fit(img, maxW, maxH, imaging.Lanczos)
}
