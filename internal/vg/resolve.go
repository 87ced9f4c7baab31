/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vg

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrPaintOrder is wrapped into errors returned when a paint identifier does
// not match the running decode-order count. It marks a malformed stream, not
// a mapper failure.
var ErrPaintOrder = errors.New("paint identifier out of decode order")

// Resolver is the paint resolution step of one decode pass. It threads the
// optional ColorMapper through the decode loop and validates that paint
// identifiers arrive densely in decode order.
//
// A Resolver belongs to a single decode pass and is not safe for concurrent
// use; independent passes each get their own Resolver.
type Resolver struct {
	mapper ColorMapper
	next   uint32
}

// NewResolver returns a resolver for one decode pass. A nil mapper means
// identity: every resolved color equals the raw color from the stream.
func NewResolver(m ColorMapper) *Resolver { return &Resolver{mapper: m} }

// Count returns how many paints have been resolved so far.
func (r *Resolver) Count() uint32 { return r.next }

// Resolve produces the final color for the paint with the given decode-order
// identifier. hasID=false means the source carried no identifier for this
// occurrence; the mapper still runs exactly once for it, with AbsentID.
//
// With a mapper present the mapper is invoked exactly once per call, that is
// once per occurrence in the stream, never deduplicated by color value. The raw
// color is not retained after substitution. A mapper panic is not recovered
// here; it aborts the enclosing decode.
func (r *Resolver) Resolve(id uint32, hasID bool, code StyleCode, raw Color) (Color, error) {
	if id != r.next {
		return 0, fmt.Errorf("paint %d, want %d: %w", id, r.next, ErrPaintOrder)
	}
	r.next++
	if r.mapper == nil {
		return raw, nil
	}
	mapperID := AbsentID
	if hasID {
		mapperID = strconv.FormatUint(uint64(id), 10)
	}
	attr := AttrFill
	if code.Kind() == KindStroke {
		attr = AttrStroke
	}
	return r.mapper.Substitute(mapperID, ElementPaint, attr, raw), nil
}
