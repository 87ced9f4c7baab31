/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vg

// Style enumerations shared by the codec and the renderer.

// StyleCode is the wire-level paint style. Code 1 means stroke; every other
// defined code is a fill variant.
type StyleCode uint8

const (
	StyleFill   StyleCode = 0
	StyleStroke StyleCode = 1
)

// StyleKind is the resolved fill/stroke classification of a paint.
type StyleKind uint8

const (
	KindFill StyleKind = iota
	KindStroke
)

// Kind maps a wire style code to its classification.
func (c StyleCode) Kind() StyleKind {
	if c == StyleStroke {
		return KindStroke
	}
	return KindFill
}

func (k StyleKind) String() string {
	if k == KindStroke {
		return "stroke"
	}
	return "fill"
}

type FillRule uint8

const (
	NonZero FillRule = iota
	EvenOdd
)

type LineCap uint8

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

type LineJoin uint8

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

// BlendMode selects how a paint composites over the destination.
type BlendMode uint8

const (
	BlendSrcOver BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendPlus
)

// StrokeParams carries the optional stroke geometry of a stroke paint.
type StrokeParams struct {
	Cap      LineCap
	Join     LineJoin
	MiterLim float32
	Width    float32
}
