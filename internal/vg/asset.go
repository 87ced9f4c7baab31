/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vg

// Asset is one decoded vector-graphics document: the renderable output of a
// single decode pass. It does not remember which color mapper (if any)
// produced its paint colors; repeated decodes of the same bytes under
// different mappers are fully independent.
type Asset struct {
	Viewport Size
	Paints   []Paint
	Paths    []Path
	Shaders  []LinearGradient
	Draws    []Draw
}

// Draw binds one path to one paint, in document order.
type Draw struct {
	Path  uint16
	Paint uint16
}

// GradientStop is one color stop of a gradient shader.
type GradientStop struct {
	Offset float32
	Color  Color
}

// LinearGradient is the only shader kind the format carries. Stop colors are
// not routed through the color mapper; only paint colors are substitutable.
type LinearGradient struct {
	From, To Pt
	Stops    []GradientStop
}

// Bounds returns the union of all drawn path bounds, falling back to the
// viewport when the asset draws nothing.
func (a *Asset) Bounds() Rect {
	var b Rect
	first := true
	for _, d := range a.Draws {
		if int(d.Path) >= len(a.Paths) {
			continue
		}
		pb := a.Paths[d.Path].Bounds()
		if first {
			b = pb
			first = false
		} else {
			b = b.Union(pb)
		}
	}
	if first {
		return Rect{W: a.Viewport.W, H: a.Viewport.H}
	}
	return b
}
