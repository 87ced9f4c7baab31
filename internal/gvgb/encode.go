/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gvgb

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"govg/internal/vg"
)

// Encode writes the asset as a .gvg stream. Colors are written exactly as
// they appear in the asset; encoding never consults a color mapper.
//
// Record order: viewport, shaders, paints (in identifier order), paths,
// draws, end marker.
func Encode(w io.Writer, a *vg.Asset) error {
	if len(a.Paints) > math.MaxUint16+1 {
		return fmt.Errorf("gvgb: too many paints (%d)", len(a.Paints))
	}
	if len(a.Paths) > math.MaxUint16+1 {
		return fmt.Errorf("gvgb: too many paths (%d)", len(a.Paths))
	}
	if len(a.Shaders) > math.MaxUint16+1 {
		return fmt.Errorf("gvgb: too many shaders (%d)", len(a.Shaders))
	}

	e := &encoder{w: w}
	e.write(signature[:])
	e.u16(FormatVersion)

	e.u8(tagViewport)
	e.f32(a.Viewport.W)
	e.f32(a.Viewport.H)

	for i, g := range a.Shaders {
		if len(g.Stops) == 0 || len(g.Stops) > math.MaxUint8 {
			return fmt.Errorf("gvgb: shader %d has %d stops", i, len(g.Stops))
		}
		e.u8(tagShader)
		e.f32(g.From.X)
		e.f32(g.From.Y)
		e.f32(g.To.X)
		e.f32(g.To.Y)
		e.u8(uint8(len(g.Stops)))
		for _, s := range g.Stops {
			e.f32(s.Offset)
			e.u32(uint32(s.Color))
		}
	}

	for i, p := range a.Paints {
		if p.ID != uint32(i) {
			return fmt.Errorf("gvgb: paint %d carries identifier %d", i, p.ID)
		}
		e.u8(tagPaint)
		if p.Kind == vg.KindStroke {
			e.u8(uint8(vg.StyleStroke))
		} else {
			e.u8(uint8(vg.StyleFill))
		}
		e.u8(uint8(p.Blend))
		var flags uint8
		if p.Anonymous {
			flags |= paintFlagAnonymous
		}
		if p.HasShader() {
			flags |= paintFlagShader
		}
		if p.Stroke != nil {
			flags |= paintFlagStroke
		}
		e.u8(flags)
		e.u32(uint32(p.Color))
		if p.HasShader() {
			e.u16(uint16(p.Shader))
		}
		if p.Stroke != nil {
			e.u8(uint8(p.Stroke.Cap))
			e.u8(uint8(p.Stroke.Join))
			e.f32(p.Stroke.MiterLim)
			e.f32(p.Stroke.Width)
		}
	}

	for i, p := range a.Paths {
		if len(p.Cmds) > math.MaxUint16 {
			return fmt.Errorf("gvgb: path %d has %d commands", i, len(p.Cmds))
		}
		e.u8(tagPath)
		e.u8(uint8(p.Rule))
		e.u16(uint16(len(p.Cmds)))
		for _, c := range p.Cmds {
			e.u8(uint8(c.Op))
			var nCoords int
			switch c.Op {
			case vg.MoveTo, vg.LineTo:
				nCoords = 2
			case vg.QuadTo:
				nCoords = 4
			case vg.CubicTo:
				nCoords = 6
			case vg.Close:
				nCoords = 0
			default:
				return fmt.Errorf("gvgb: path %d has unknown op %d", i, c.Op)
			}
			for j := 0; j < nCoords; j++ {
				e.f32(c.Data[j])
			}
		}
	}

	for _, d := range a.Draws {
		e.u8(tagDraw)
		e.u16(d.Path)
		e.u16(d.Paint)
	}

	e.u8(tagEnd)
	return e.err
}

// encoder accumulates the first write error instead of checking each call.
type encoder struct {
	w   io.Writer
	err error
}

func (e *encoder) write(b []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(b)
}

func (e *encoder) u8(v uint8) { e.write([]byte{v}) }
func (e *encoder) u16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	e.write(b[:])
}
func (e *encoder) u32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	e.write(b[:])
}
func (e *encoder) f32(v float32) { e.u32(math.Float32bits(v)) }
