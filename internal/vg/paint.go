/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vg

// Paint is one resolved paint descriptor of a decoded asset. The decoder
// assigns IDs densely in decode order; Paints are immutable once produced and
// live in the decoded asset's paint table, indexed by ID.
type Paint struct {
	// ID is the dense, zero-based, decode-order identifier.
	ID uint32
	// Anonymous marks occurrences for which the source carried no identifier.
	// The color mapper still runs for them, with AbsentID.
	Anonymous bool
	Kind      StyleKind
	Blend     BlendMode
	// Shader indexes the asset's shader table; NoShader when the paint is a
	// plain color.
	Shader int32
	// Stroke is set only for stroke paints.
	Stroke *StrokeParams
	// Color is the final color, after any mapper substitution. The raw wire
	// color is not retained.
	Color Color
}

// NoShader is the Shader value of a paint without a shader reference.
const NoShader int32 = -1

// HasShader reports whether the paint references a shader.
func (p Paint) HasShader() bool { return p.Shader != NoShader }
