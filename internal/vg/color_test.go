/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vg

import "testing"

func TestColorChannels(t *testing.T) {
	c := RGBA(0x12, 0x34, 0x56, 0x78)
	if uint32(c) != 0x78123456 {
		t.Fatalf("packed = %08X, want 78123456", uint32(c))
	}
	if c.R() != 0x12 || c.G() != 0x34 || c.B() != 0x56 || c.A() != 0x78 {
		t.Fatalf("channel accessors wrong: %02X %02X %02X %02X", c.R(), c.G(), c.B(), c.A())
	}
	if RGB(1, 2, 3).A() != 0xFF {
		t.Fatalf("RGB must be opaque")
	}
}

func TestColorWithAlphaAndHex(t *testing.T) {
	c := Red.WithAlpha(0x80)
	if uint32(c) != 0x80FF0000 {
		t.Fatalf("WithAlpha = %08X", uint32(c))
	}
	if Black.Hex() != "#FF000000" {
		t.Fatalf("Hex = %s", Black.Hex())
	}
}

func TestColorNRGBA(t *testing.T) {
	n := RGBA(10, 20, 30, 40).NRGBA()
	if n.R != 10 || n.G != 20 || n.B != 30 || n.A != 40 {
		t.Fatalf("NRGBA = %+v", n)
	}
}

func TestStyleCodeKind(t *testing.T) {
	if StyleStroke.Kind() != KindStroke {
		t.Fatalf("code 1 must classify as stroke")
	}
	if StyleFill.Kind() != KindFill || StyleCode(9).Kind() != KindFill {
		t.Fatalf("non-stroke codes must classify as fill")
	}
	if KindStroke.String() != "stroke" || KindFill.String() != "fill" {
		t.Fatalf("kind strings wrong")
	}
}
