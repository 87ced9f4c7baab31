/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vg

// ColorMapper is the pluggable color-substitution policy consulted once per
// paint occurrence while an asset is being decoded. Implementations must
// return a color unconditionally; returning the input unchanged is a valid
// and common result.
//
// Substitute should be referentially transparent within one decode pass:
// callers may layer caching on top of that assumption, the core itself never
// memoizes. A mapper shared across concurrent decode passes must be safe for
// concurrent invocation; the core does not serialize calls.
//
// Implementations should be comparable values (Go ==) so that loader
// configurations holding equivalent mappers compare equal. Types that cannot
// express equivalence through == may implement
//
//	EqualMapper(other ColorMapper) bool
//
// which EqualMappers prefers over ==.
type ColorMapper interface {
	Substitute(id, elementName, attributeName string, c Color) Color
}

// Names passed to Substitute. Every substitutable occurrence is a paint;
// attribute names are selected by the paint's style kind.
const (
	ElementPaint = "paint"
	AttrFill     = "fill"
	AttrStroke   = "stroke"

	// AbsentID is passed when the source carried no identifier for an
	// occurrence. The mapper is still invoked exactly once for it.
	AbsentID = ""
)

// EqualMappers reports whether two mappers are equivalent for the purpose of
// loader deduplication. Both nil (no mapper) compare equal; a nil mapper never
// equals a non-nil one.
func EqualMappers(a, b ColorMapper) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if eq, ok := a.(interface{ EqualMapper(ColorMapper) bool }); ok {
		return eq.EqualMapper(b)
	}
	return a == b
}

// MapperFunc adapts a plain function to the ColorMapper contract. Functions
// are not comparable, so two MapperFunc values never compare equal; loaders
// holding them are always treated as distinct. Prefer a named struct mapper
// when loader deduplication matters.
type MapperFunc func(id, elementName, attributeName string, c Color) Color

func (f MapperFunc) Substitute(id, elementName, attributeName string, c Color) Color {
	return f(id, elementName, attributeName, c)
}

// EqualMapper on MapperFunc always reports false; see the type comment.
func (f MapperFunc) EqualMapper(ColorMapper) bool { return false }

// Recolor adapts an externally defined substitution contract to ColorMapper.
// Host applications often declare their own structurally identical interface;
// wrapping such a value in Recolor makes the adaptation explicit at the call
// site instead of depending on implicit interface satisfaction.
type Recolor struct {
	Wrapped interface {
		Substitute(id, elementName, attributeName string, c Color) Color
	}
}

func (r Recolor) Substitute(id, elementName, attributeName string, c Color) Color {
	return r.Wrapped.Substitute(id, elementName, attributeName, c)
}

// EqualMapper unwraps both sides before comparing, so a Recolor around a
// compiled palette still equals another Recolor around an equal palette.
func (r Recolor) EqualMapper(other ColorMapper) bool {
	o, ok := other.(Recolor)
	if !ok {
		return false
	}
	return EqualMappers(r.Wrapped, o.Wrapped)
}

// Palette is a ColorMapper backed by an exact ARGB lookup table. Colors not
// present in the table pass through unchanged. The table is captured at
// construction and never mutated afterwards, so a Palette may be shared
// across concurrent decode passes.
type Palette struct {
	subs map[Color]Color
}

// NewPalette builds a palette from from→to pairs. Later duplicates of the
// same source color win.
func NewPalette(pairs map[Color]Color) *Palette {
	subs := make(map[Color]Color, len(pairs))
	for from, to := range pairs {
		subs[from] = to
	}
	return &Palette{subs: subs}
}

// Substitute ignores the element context; a palette maps by color value only.
func (p *Palette) Substitute(_, _, _ string, c Color) Color {
	if to, ok := p.subs[c]; ok {
		return to
	}
	return c
}

// EqualMapper compares palettes by substitution table contents, so two
// independently compiled copies of the same theme compare equal.
func (p *Palette) EqualMapper(other ColorMapper) bool {
	o, ok := other.(*Palette)
	if !ok {
		return false
	}
	if len(p.subs) != len(o.subs) {
		return false
	}
	for from, to := range p.subs {
		if ot, ok := o.subs[from]; !ok || ot != to {
			return false
		}
	}
	return true
}

// Len returns the number of substitution entries.
func (p *Palette) Len() int { return len(p.subs) }
