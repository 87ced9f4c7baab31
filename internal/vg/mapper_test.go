/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vg

import "testing"

func TestPaletteSubstitute(t *testing.T) {
	p := NewPalette(map[Color]Color{Black: Red})
	if got := p.Substitute("0", ElementPaint, AttrFill, Black); got != Red {
		t.Fatalf("mapped color = %s, want %s", got.Hex(), Red.Hex())
	}
	if got := p.Substitute("1", ElementPaint, AttrStroke, Blue); got != Blue {
		t.Fatalf("unmapped color should pass through, got %s", got.Hex())
	}
}

func TestEqualMappersNil(t *testing.T) {
	if !EqualMappers(nil, nil) {
		t.Fatalf("two absent mappers must compare equal")
	}
	if EqualMappers(nil, NewPalette(nil)) {
		t.Fatalf("absent mapper must not equal a present one")
	}
	if EqualMappers(NewPalette(nil), nil) {
		t.Fatalf("present mapper must not equal an absent one")
	}
}

func TestEqualMappersPaletteByContents(t *testing.T) {
	a := NewPalette(map[Color]Color{Black: Red, Blue: Green})
	b := NewPalette(map[Color]Color{Blue: Green, Black: Red})
	if !EqualMappers(a, b) {
		t.Fatalf("palettes with identical tables must compare equal")
	}
	c := NewPalette(map[Color]Color{Black: Green})
	if EqualMappers(a, c) {
		t.Fatalf("palettes with different tables must not compare equal")
	}
	d := NewPalette(map[Color]Color{Black: Red})
	if EqualMappers(a, d) {
		t.Fatalf("palettes of different size must not compare equal")
	}
}

func TestEqualMappersFuncNeverEqual(t *testing.T) {
	f := MapperFunc(func(_, _, _ string, c Color) Color { return c })
	if EqualMappers(f, f) {
		t.Fatalf("function mappers are always treated as distinct")
	}
}

func TestEqualMappersComparableStructs(t *testing.T) {
	a := tintMapper{0x11000000}
	b := tintMapper{0x11000000}
	c := tintMapper{0x22000000}
	if !EqualMappers(a, b) {
		t.Fatalf("identical comparable mappers must compare equal")
	}
	if EqualMappers(a, c) {
		t.Fatalf("different comparable mappers must not compare equal")
	}
}

func TestRecolorForwards(t *testing.T) {
	r := Recolor{Wrapped: hostRecolorer{to: Green}}
	if got := r.Substitute("3", ElementPaint, AttrFill, Black); got != Green {
		t.Fatalf("wrapped substitution = %s, want %s", got.Hex(), Green.Hex())
	}
}

func TestRecolorEquality(t *testing.T) {
	a := Recolor{Wrapped: hostRecolorer{to: Green}}
	b := Recolor{Wrapped: hostRecolorer{to: Green}}
	c := Recolor{Wrapped: hostRecolorer{to: Red}}
	if !EqualMappers(a, b) {
		t.Fatalf("adapters around equal values must compare equal")
	}
	if EqualMappers(a, c) {
		t.Fatalf("adapters around different values must not compare equal")
	}
	if EqualMappers(a, tintMapper{0x11000000}) {
		t.Fatalf("an adapter must not equal a bare mapper")
	}
	p := Recolor{Wrapped: NewPalette(map[Color]Color{Black: Red})}
	q := Recolor{Wrapped: NewPalette(map[Color]Color{Black: Red})}
	if !EqualMappers(p, q) {
		t.Fatalf("wrapped palettes must still compare by contents")
	}
}

// tintMapper is a minimal comparable mapper used by equality tests.
type tintMapper struct{ add Color }

func (m tintMapper) Substitute(_, _, _ string, c Color) Color { return c | m.add }

// hostRecolorer satisfies the substitution contract without naming
// ColorMapper, the way an embedding application would declare it.
type hostRecolorer struct{ to Color }

func (h hostRecolorer) Substitute(_, _, _ string, c Color) Color {
	if c == Black {
		return h.to
	}
	return c
}
