/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package theme

import (
	"os"
	"path/filepath"
	"testing"

	"govg/internal/vg"
)

const nightTheme = `{
  "name": "night",
  "description": "dark mode swap",
  "substitutions": [
    {"from": "#000000", "to": "#FF0000"},
    {"from": "#80FFFFFF", "to": "#80000000"}
  ]
}`

func TestParseAndCompile(t *testing.T) {
	th, err := Parse([]byte(nightTheme))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if th.Name != "night" || len(th.Substitutions) != 2 {
		t.Fatalf("unexpected theme: %+v", th)
	}
	pal, err := th.Compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if got := pal.Substitute("0", vg.ElementPaint, vg.AttrFill, vg.Black); got != vg.Red {
		t.Fatalf("substitute = %s, want %s", got.Hex(), vg.Red.Hex())
	}
	if got := pal.Substitute("1", vg.ElementPaint, vg.AttrFill, 0x80FFFFFF); got != 0x80000000 {
		t.Fatalf("8-digit substitution failed: %s", got.Hex())
	}
	if got := pal.Substitute("2", vg.ElementPaint, vg.AttrStroke, vg.Blue); got != vg.Blue {
		t.Fatalf("unmapped color must pass through")
	}
}

func TestCompileTwiceComparesEqual(t *testing.T) {
	th, err := Parse([]byte(nightTheme))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	a, err := th.Compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	b, err := th.Compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !vg.EqualMappers(a, b) {
		t.Fatalf("recompiled theme must produce an equal mapper")
	}
}

func TestParseRejectsInvalidDocuments(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"missing name", `{"substitutions": []}`},
		{"bad color", `{"name": "x", "substitutions": [{"from": "red", "to": "#000000"}]}`},
		{"short hex", `{"name": "x", "substitutions": [{"from": "#123", "to": "#000000"}]}`},
		{"extra field", `{"name": "x", "substitutions": [], "other": 1}`},
		{"not json", `nope`},
	}
	for _, tc := range cases {
		if _, err := Parse([]byte(tc.doc)); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "night.json")
	if err := os.WriteFile(path, []byte(nightTheme), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	th, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if th.Name != "night" {
		t.Fatalf("name = %q", th.Name)
	}
	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "night.json")
	if err := os.WriteFile(path, []byte(nightTheme), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := Find(dir, "night")
	if err != nil || got != path {
		t.Fatalf("find by name = %q, %v", got, err)
	}
	got, err = Find(dir, "night.json")
	if err != nil || got != path {
		t.Fatalf("find by file name = %q, %v", got, err)
	}
	if _, err := Find(dir, "day"); err == nil {
		t.Fatalf("expected error for unknown theme")
	}
	if _, err := Find(dir, ""); err == nil {
		t.Fatalf("expected error for empty name")
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#FF0000")
	if err != nil || c != vg.Red {
		t.Fatalf("opaque parse: %v %s", err, c.Hex())
	}
	c, err = ParseHexColor("#80102030")
	if err != nil || uint32(c) != 0x80102030 {
		t.Fatalf("argb parse: %v %08X", err, uint32(c))
	}
	if _, err := ParseHexColor("123456"); err == nil {
		t.Fatalf("missing # must fail")
	}
	if _, err := ParseHexColor("#12345"); err == nil {
		t.Fatalf("odd length must fail")
	}
}
