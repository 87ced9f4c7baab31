/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package gvgb implements the compact binary vector-graphics format (.gvg):
// a 4-byte signature, a format version, then a flat sequence of tagged
// little-endian records terminated by an end marker.
//
// Record order in a well-formed stream: viewport and shader records may
// appear anywhere before first use; paint identifiers are implicit: each
// paint record receives the next dense decode-order identifier, which the
// resolution step validates. Draw records bind path and paint indices.
//
// The decoder is also the host of the color-substitution integration point:
// an optional vg.ColorMapper supplied through DecodeOptions is consulted
// exactly once per paint record, in record order (see vg.Resolver).
package gvgb

// Signature bytes every .gvg stream starts with.
var signature = [4]byte{'g', 'v', 'g', 'b'}

// FormatVersion is the wire version this package reads and writes.
const FormatVersion uint16 = 1

// Record tags.
const (
	tagEnd      = 0x00
	tagViewport = 0x01
	tagShader   = 0x02
	tagPaint    = 0x03
	tagPath     = 0x04
	tagDraw     = 0x05
)

// Paint record flag bits.
const (
	paintFlagAnonymous = 1 << 0 // source carried no identifier for this occurrence
	paintFlagShader    = 1 << 1 // shader index follows the color
	paintFlagStroke    = 1 << 2 // stroke params follow
)

// Path command opcodes (wire values match vg.PathOp).
const (
	opMoveTo  = 0x00
	opLineTo  = 0x01
	opQuadTo  = 0x02
	opCubicTo = 0x03
	opClose   = 0x04
)
