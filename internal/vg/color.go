/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vg

import (
	"fmt"
	"image/color"
)

// Color is a 32-bit ARGB value (0xAARRGGBB). It is a plain value type with
// structural equality; it flows by value through decode and rendering.
type Color uint32

// RGBA constructs a Color from red, green, blue, alpha bytes.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB constructs an opaque Color from red, green, blue bytes.
func RGB(r, g, b uint8) Color { return RGBA(r, g, b, 0xFF) }

func (c Color) A() uint8 { return uint8(c >> 24) }
func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c) }

// WithAlpha returns a copy of the color with the given alpha byte.
func (c Color) WithAlpha(a uint8) Color {
	return Color(uint32(a)<<24 | uint32(c)&0x00FFFFFF)
}

// NRGBA converts to the standard library's non-premultiplied color type.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}
}

// Hex renders the color as #AARRGGBB.
func (c Color) Hex() string { return fmt.Sprintf("#%08X", uint32(c)) }

// Common colors.
var (
	Transparent = Color(0x00000000)
	Black       = Color(0xFF000000)
	White       = Color(0xFFFFFFFF)
	Red         = Color(0xFFFF0000)
	Green       = Color(0xFF00FF00)
	Blue        = Color(0xFF0000FF)
)
