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
	"log/slog"
	"math"
	"time"

	applog "govg/internal/log"
	"govg/internal/vg"
)

// DecodeOptions parameterizes one decode pass. The mapper, when present, is
// held only for the duration of the call; the decoded asset does not retain
// it, and repeated decodes under different mappers are fully independent.
type DecodeOptions struct {
	Mapper vg.ColorMapper
}

// Decode reads one asset from r. A mapper failure (panic) inside
// Substitute is not recovered here; it propagates to the caller and aborts
// the decode of this asset.
func Decode(r io.Reader, opts DecodeOptions) (*vg.Asset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gvgb: read stream: %w", err)
	}
	return DecodeBytes(data, opts)
}

// DecodeBytes decodes one asset from an in-memory stream.
func DecodeBytes(data []byte, opts DecodeOptions) (*vg.Asset, error) {
	start := time.Now()
	d := &decoder{data: data}

	var sig [4]byte
	if err := d.read(sig[:]); err != nil {
		return nil, d.errf("signature: %v", err)
	}
	if sig != signature {
		return nil, d.errf("invalid signature %q", sig[:])
	}
	ver, err := d.readU16()
	if err != nil {
		return nil, d.errf("version: %v", err)
	}
	if ver != FormatVersion {
		return nil, d.errf("unsupported format version %d", ver)
	}

	asset := &vg.Asset{}
	resolver := vg.NewResolver(opts.Mapper)

	for {
		tag, err := d.readU8()
		if err != nil {
			return nil, d.errf("record tag: %v", err)
		}
		if tag == tagEnd {
			break
		}
		switch tag {
		case tagViewport:
			if err := d.readViewport(asset); err != nil {
				return nil, err
			}
		case tagShader:
			if err := d.readShader(asset); err != nil {
				return nil, err
			}
		case tagPaint:
			if err := d.readPaint(asset, resolver); err != nil {
				return nil, err
			}
		case tagPath:
			if err := d.readPath(asset); err != nil {
				return nil, err
			}
		case tagDraw:
			if err := d.readDraw(asset); err != nil {
				return nil, err
			}
		default:
			return nil, d.errf("unknown record tag 0x%02X", tag)
		}
	}
	if d.pos != len(d.data) {
		return nil, d.errf("%d trailing bytes after end marker", len(d.data)-d.pos)
	}
	if err := validate(asset); err != nil {
		return nil, err
	}

	applog.WithComponent("codec").Debug("asset decoded",
		slog.Int("paints", len(asset.Paints)),
		slog.Int("paths", len(asset.Paths)),
		slog.Int("draws", len(asset.Draws)),
		slog.Bool("mapped", opts.Mapper != nil),
		slog.Duration("took", time.Since(start)),
	)
	return asset, nil
}

type decoder struct {
	data []byte
	pos  int
}

func (d *decoder) errf(format string, args ...any) error {
	return fmt.Errorf("gvgb: offset %d: %s", d.pos, fmt.Sprintf(format, args...))
}

func (d *decoder) read(dst []byte) error {
	if d.pos+len(dst) > len(d.data) {
		return io.ErrUnexpectedEOF
	}
	copy(dst, d.data[d.pos:])
	d.pos += len(dst)
	return nil
}

func (d *decoder) readU8() (uint8, error) {
	if d.pos >= len(d.data) {
		return 0, io.ErrUnexpectedEOF
	}
	v := d.data[d.pos]
	d.pos++
	return v, nil
}

func (d *decoder) readU16() (uint16, error) {
	if d.pos+2 > len(d.data) {
		return 0, io.ErrUnexpectedEOF
	}
	v := binary.LittleEndian.Uint16(d.data[d.pos:])
	d.pos += 2
	return v, nil
}

func (d *decoder) readU32() (uint32, error) {
	if d.pos+4 > len(d.data) {
		return 0, io.ErrUnexpectedEOF
	}
	v := binary.LittleEndian.Uint32(d.data[d.pos:])
	d.pos += 4
	return v, nil
}

func (d *decoder) readF32() (float32, error) {
	bits, err := d.readU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

func (d *decoder) readViewport(asset *vg.Asset) error {
	w, err := d.readF32()
	if err != nil {
		return d.errf("viewport width: %v", err)
	}
	h, err := d.readF32()
	if err != nil {
		return d.errf("viewport height: %v", err)
	}
	if w < 0 || h < 0 {
		return d.errf("negative viewport %gx%g", w, h)
	}
	asset.Viewport = vg.Size{W: w, H: h}
	return nil
}

func (d *decoder) readShader(asset *vg.Asset) error {
	var coords [4]float32
	for i := range coords {
		v, err := d.readF32()
		if err != nil {
			return d.errf("shader coords: %v", err)
		}
		coords[i] = v
	}
	n, err := d.readU8()
	if err != nil {
		return d.errf("shader stop count: %v", err)
	}
	if n == 0 {
		return d.errf("shader with zero stops")
	}
	g := vg.LinearGradient{
		From:  vg.Pt{X: coords[0], Y: coords[1]},
		To:    vg.Pt{X: coords[2], Y: coords[3]},
		Stops: make([]vg.GradientStop, 0, n),
	}
	var prev float32 = -1
	for i := 0; i < int(n); i++ {
		off, err := d.readF32()
		if err != nil {
			return d.errf("shader stop offset: %v", err)
		}
		if off < 0 || off > 1 || off < prev {
			return d.errf("shader stop offset %g out of order", off)
		}
		prev = off
		raw, err := d.readU32()
		if err != nil {
			return d.errf("shader stop color: %v", err)
		}
		// gradient stop colors bypass the mapper; only paint colors are
		// substitutable
		g.Stops = append(g.Stops, vg.GradientStop{Offset: off, Color: vg.Color(raw)})
	}
	asset.Shaders = append(asset.Shaders, g)
	return nil
}

// readPaint decodes one paint record and resolves its final color through the
// resolution step. This is the single point where the color mapper is
// consulted: exactly once per paint record, in record order.
func (d *decoder) readPaint(asset *vg.Asset, resolver *vg.Resolver) error {
	styleCode, err := d.readU8()
	if err != nil {
		return d.errf("paint style: %v", err)
	}
	blend, err := d.readU8()
	if err != nil {
		return d.errf("paint blend: %v", err)
	}
	if blend > uint8(vg.BlendPlus) {
		return d.errf("unknown blend mode %d", blend)
	}
	flags, err := d.readU8()
	if err != nil {
		return d.errf("paint flags: %v", err)
	}
	raw, err := d.readU32()
	if err != nil {
		return d.errf("paint color: %v", err)
	}

	p := vg.Paint{
		ID:        resolver.Count(),
		Anonymous: flags&paintFlagAnonymous != 0,
		Kind:      vg.StyleCode(styleCode).Kind(),
		Blend:     vg.BlendMode(blend),
		Shader:    vg.NoShader,
	}
	if flags&paintFlagShader != 0 {
		ref, err := d.readU16()
		if err != nil {
			return d.errf("paint shader ref: %v", err)
		}
		p.Shader = int32(ref)
	}
	if flags&paintFlagStroke != 0 {
		sp, err := d.readStrokeParams()
		if err != nil {
			return err
		}
		p.Stroke = &sp
	}

	final, err := resolver.Resolve(p.ID, !p.Anonymous, vg.StyleCode(styleCode), vg.Color(raw))
	if err != nil {
		return d.errf("paint resolution: %v", err)
	}
	p.Color = final
	asset.Paints = append(asset.Paints, p)
	return nil
}

func (d *decoder) readStrokeParams() (vg.StrokeParams, error) {
	var sp vg.StrokeParams
	cap8, err := d.readU8()
	if err != nil {
		return sp, d.errf("stroke cap: %v", err)
	}
	if cap8 > uint8(vg.CapSquare) {
		return sp, d.errf("unknown line cap %d", cap8)
	}
	join, err := d.readU8()
	if err != nil {
		return sp, d.errf("stroke join: %v", err)
	}
	if join > uint8(vg.JoinBevel) {
		return sp, d.errf("unknown line join %d", join)
	}
	miter, err := d.readF32()
	if err != nil {
		return sp, d.errf("stroke miter: %v", err)
	}
	width, err := d.readF32()
	if err != nil {
		return sp, d.errf("stroke width: %v", err)
	}
	if width < 0 {
		return sp, d.errf("negative stroke width %g", width)
	}
	sp = vg.StrokeParams{Cap: vg.LineCap(cap8), Join: vg.LineJoin(join), MiterLim: miter, Width: width}
	return sp, nil
}

func (d *decoder) readPath(asset *vg.Asset) error {
	rule, err := d.readU8()
	if err != nil {
		return d.errf("path rule: %v", err)
	}
	if rule > uint8(vg.EvenOdd) {
		return d.errf("unknown fill rule %d", rule)
	}
	count, err := d.readU16()
	if err != nil {
		return d.errf("path command count: %v", err)
	}
	p := vg.Path{Rule: vg.FillRule(rule), Cmds: make([]vg.PathCmd, 0, count)}
	for i := 0; i < int(count); i++ {
		op, err := d.readU8()
		if err != nil {
			return d.errf("path op: %v", err)
		}
		var nCoords int
		switch op {
		case opMoveTo, opLineTo:
			nCoords = 2
		case opQuadTo:
			nCoords = 4
		case opCubicTo:
			nCoords = 6
		case opClose:
			nCoords = 0
		default:
			return d.errf("unknown path op 0x%02X", op)
		}
		cmd := vg.PathCmd{Op: vg.PathOp(op)}
		for j := 0; j < nCoords; j++ {
			v, err := d.readF32()
			if err != nil {
				return d.errf("path coord: %v", err)
			}
			cmd.Data[j] = v
		}
		p.Cmds = append(p.Cmds, cmd)
	}
	asset.Paths = append(asset.Paths, p)
	return nil
}

func (d *decoder) readDraw(asset *vg.Asset) error {
	path, err := d.readU16()
	if err != nil {
		return d.errf("draw path index: %v", err)
	}
	paint, err := d.readU16()
	if err != nil {
		return d.errf("draw paint index: %v", err)
	}
	asset.Draws = append(asset.Draws, vg.Draw{Path: path, Paint: paint})
	return nil
}

// validate checks cross-record references once the whole stream is read.
func validate(asset *vg.Asset) error {
	for i, p := range asset.Paints {
		if p.HasShader() && int(p.Shader) >= len(asset.Shaders) {
			return fmt.Errorf("gvgb: paint %d references shader %d of %d", i, p.Shader, len(asset.Shaders))
		}
	}
	for i, dr := range asset.Draws {
		if int(dr.Path) >= len(asset.Paths) {
			return fmt.Errorf("gvgb: draw %d references path %d of %d", i, dr.Path, len(asset.Paths))
		}
		if int(dr.Paint) >= len(asset.Paints) {
			return fmt.Errorf("gvgb: draw %d references paint %d of %d", i, dr.Paint, len(asset.Paints))
		}
	}
	return nil
}
