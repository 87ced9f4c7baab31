/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export serializes decoded assets into interchange formats (SVG,
// PDF, PNG). Exporters see only final colors; any substitution already
// happened during decode.
package export

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"govg/internal/vg"
)

// SVG renders the asset as an SVG document string. Gradient shaders become
// <linearGradient> defs; blend modes other than source-over are emitted as
// style hints that conforming viewers may honor.
func SVG(a *vg.Asset) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`,
		a.Viewport.W, a.Viewport.H, a.Viewport.W, a.Viewport.H)
	b.WriteString("\n")

	if len(a.Shaders) > 0 {
		b.WriteString("<defs>\n")
		for i, g := range a.Shaders {
			fmt.Fprintf(&b, `<linearGradient id="grad%d" x1="%g" y1="%g" x2="%g" y2="%g" gradientUnits="userSpaceOnUse">`,
				i, g.From.X, g.From.Y, g.To.X, g.To.Y)
			b.WriteString("\n")
			for _, s := range g.Stops {
				fmt.Fprintf(&b, `<stop offset="%g" stop-color="%s" stop-opacity="%s"/>`,
					s.Offset, rgbHex(s.Color), opacity(s.Color))
				b.WriteString("\n")
			}
			b.WriteString("</linearGradient>\n")
		}
		b.WriteString("</defs>\n")
	}

	for _, d := range a.Draws {
		if int(d.Path) >= len(a.Paths) || int(d.Paint) >= len(a.Paints) {
			continue
		}
		path := a.Paths[d.Path]
		paint := a.Paints[d.Paint]

		var attrs []string
		attrs = append(attrs, fmt.Sprintf(`d="%s"`, pathData(path)))
		colorRef := rgbHex(paint.Color)
		if paint.HasShader() {
			colorRef = fmt.Sprintf("url(#grad%d)", paint.Shader)
		}
		if paint.Kind == vg.KindStroke {
			attrs = append(attrs, `fill="none"`, fmt.Sprintf(`stroke="%s"`, colorRef))
			if !paint.HasShader() && paint.Color.A() != 0xFF {
				attrs = append(attrs, fmt.Sprintf(`stroke-opacity="%s"`, opacity(paint.Color)))
			}
			sp := vg.StrokeParams{Width: 1, MiterLim: 4}
			if paint.Stroke != nil {
				sp = *paint.Stroke
			}
			attrs = append(attrs, fmt.Sprintf(`stroke-width="%g"`, vg.FloatRound(sp.Width, 3)))
			attrs = append(attrs, fmt.Sprintf(`stroke-linecap="%s"`, capName(sp.Cap)))
			attrs = append(attrs, fmt.Sprintf(`stroke-linejoin="%s"`, joinName(sp.Join)))
			if sp.Join == vg.JoinMiter {
				attrs = append(attrs, fmt.Sprintf(`stroke-miterlimit="%g"`, vg.FloatRound(sp.MiterLim, 3)))
			}
		} else {
			attrs = append(attrs, fmt.Sprintf(`fill="%s"`, colorRef))
			if !paint.HasShader() && paint.Color.A() != 0xFF {
				attrs = append(attrs, fmt.Sprintf(`fill-opacity="%s"`, opacity(paint.Color)))
			}
			if path.Rule == vg.EvenOdd {
				attrs = append(attrs, `fill-rule="evenodd"`)
			}
		}
		if paint.Blend != vg.BlendSrcOver {
			attrs = append(attrs, fmt.Sprintf(`style="mix-blend-mode:%s"`, blendName(paint.Blend)))
		}
		fmt.Fprintf(&b, "<path %s/>\n", strings.Join(attrs, " "))
	}
	b.WriteString("</svg>\n")
	return b.String()
}

// SaveSVG writes the SVG document to path.
func SaveSVG(a *vg.Asset, path string) error {
	if err := os.WriteFile(path, []byte(SVG(a)), 0o644); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func pathData(p vg.Path) string {
	var b strings.Builder
	f := func(v float32) string {
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", vg.FloatRound(v, 3)), "0"), ".")
	}
	for _, c := range p.Cmds {
		switch c.Op {
		case vg.MoveTo:
			fmt.Fprintf(&b, "M%s %s", f(c.Data[0]), f(c.Data[1]))
		case vg.LineTo:
			fmt.Fprintf(&b, "L%s %s", f(c.Data[0]), f(c.Data[1]))
		case vg.QuadTo:
			fmt.Fprintf(&b, "Q%s %s %s %s", f(c.Data[0]), f(c.Data[1]), f(c.Data[2]), f(c.Data[3]))
		case vg.CubicTo:
			fmt.Fprintf(&b, "C%s %s %s %s %s %s", f(c.Data[0]), f(c.Data[1]),
				f(c.Data[2]), f(c.Data[3]), f(c.Data[4]), f(c.Data[5]))
		case vg.Close:
			b.WriteString("Z")
		}
	}
	return b.String()
}

func rgbHex(c vg.Color) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R(), c.G(), c.B())
}

func opacity(c vg.Color) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", float64(c.A())/255), "0"), ".")
}

func capName(c vg.LineCap) string {
	switch c {
	case vg.CapRound:
		return "round"
	case vg.CapSquare:
		return "square"
	default:
		return "butt"
	}
}

func joinName(j vg.LineJoin) string {
	switch j {
	case vg.JoinRound:
		return "round"
	case vg.JoinBevel:
		return "bevel"
	default:
		return "miter"
	}
}

func blendName(m vg.BlendMode) string {
	switch m {
	case vg.BlendMultiply:
		return "multiply"
	case vg.BlendScreen:
		return "screen"
	case vg.BlendPlus:
		return "plus-lighter"
	default:
		return "normal"
	}
}
