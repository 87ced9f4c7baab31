/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"log/slog"

	"github.com/jung-kurt/gofpdf"

	applog "govg/internal/log"
	"govg/internal/vg"
)

// SavePDF writes the asset as a single-page vector PDF whose page size
// matches the viewport in points. Gradient paints are flattened to their
// first stop color; blend modes render as source-over.
func SavePDF(a *vg.Asset, path string) error {
	l := applog.WithOperation(applog.WithComponent("export"), "pdf")
	if a.Viewport.W <= 0 || a.Viewport.H <= 0 {
		return fmt.Errorf("export pdf: empty viewport %gx%g", a.Viewport.W, a.Viewport.H)
	}

	mediaW := float64(a.Viewport.W)
	mediaH := float64(a.Viewport.H)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: mediaW, Ht: mediaH},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPageFormat("P", gofpdf.SizeType{Wd: mediaW, Ht: mediaH})

	for i, d := range a.Draws {
		if int(d.Path) >= len(a.Paths) || int(d.Paint) >= len(a.Paints) {
			return fmt.Errorf("export pdf: draw %d out of range", i)
		}
		p := a.Paths[d.Path]
		paint := a.Paints[d.Paint]

		col := paint.Color
		if paint.HasShader() && int(paint.Shader) < len(a.Shaders) {
			if g := a.Shaders[paint.Shader]; len(g.Stops) > 0 {
				col = g.Stops[0].Color
			}
		}

		tracePath(pdf, p)
		if paint.Kind == vg.KindStroke {
			sp := vg.StrokeParams{Width: 1, MiterLim: 4}
			if paint.Stroke != nil {
				sp = *paint.Stroke
			}
			pdf.SetDrawColor(int(col.R()), int(col.G()), int(col.B()))
			pdf.SetAlpha(float64(col.A())/255, "Normal")
			pdf.SetLineWidth(float64(sp.Width))
			pdf.SetLineCapStyle(capStyle(sp.Cap))
			pdf.SetLineJoinStyle(joinStyle(sp.Join))
			pdf.DrawPath("D")
		} else {
			pdf.SetFillColor(int(col.R()), int(col.G()), int(col.B()))
			pdf.SetAlpha(float64(col.A())/255, "Normal")
			if p.Rule == vg.EvenOdd {
				pdf.DrawPath("f*")
			} else {
				pdf.DrawPath("F")
			}
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		l.Error("pdf write failed", slog.String("path", path), slog.Any("err", err))
		return fmt.Errorf("export pdf: %w", err)
	}
	l.Info("pdf exported", slog.String("path", path), slog.Int("draws", len(a.Draws)))
	return nil
}

// tracePath replays path commands onto the current PDF path.
func tracePath(pdf *gofpdf.Fpdf, p vg.Path) {
	for _, c := range p.Cmds {
		switch c.Op {
		case vg.MoveTo:
			pdf.MoveTo(float64(c.Data[0]), float64(c.Data[1]))
		case vg.LineTo:
			pdf.LineTo(float64(c.Data[0]), float64(c.Data[1]))
		case vg.QuadTo:
			pdf.CurveTo(float64(c.Data[0]), float64(c.Data[1]), float64(c.Data[2]), float64(c.Data[3]))
		case vg.CubicTo:
			pdf.CurveBezierCubicTo(float64(c.Data[0]), float64(c.Data[1]),
				float64(c.Data[2]), float64(c.Data[3]), float64(c.Data[4]), float64(c.Data[5]))
		case vg.Close:
			pdf.ClosePath()
		}
	}
}

func capStyle(c vg.LineCap) string {
	switch c {
	case vg.CapRound:
		return "round"
	case vg.CapSquare:
		return "square"
	default:
		return "butt"
	}
}

func joinStyle(j vg.LineJoin) string {
	switch j {
	case vg.JoinRound:
		return "round"
	case vg.JoinBevel:
		return "bevel"
	default:
		return "miter"
	}
}
