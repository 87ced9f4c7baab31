/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package asset

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"govg/internal/gvgb"
	"govg/internal/vg"
)

func writeFixture(t *testing.T) string {
	t.Helper()
	a := &vg.Asset{
		Viewport: vg.Size{W: 4, H: 4},
		Paints: []vg.Paint{
			{ID: 0, Kind: vg.KindFill, Shader: vg.NoShader, Color: vg.Black},
			{ID: 1, Kind: vg.KindStroke, Shader: vg.NoShader, Color: vg.Blue,
				Stroke: &vg.StrokeParams{Width: 1, MiterLim: 4}},
		},
	}
	var buf bytes.Buffer
	if err := gvgb.Encode(&buf, a); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "icon.gvg")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return dir
}

func TestLoadFromBundle(t *testing.T) {
	dir := writeFixture(t)
	l := Loader{Name: "icon.gvg", Bundle: os.DirFS(dir)}
	a, err := l.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(a.Paints) != 2 || a.Paints[0].Color != vg.Black {
		t.Fatalf("unexpected decode result: %+v", a.Paints)
	}
}

func TestLoadWithMapperIsPerCall(t *testing.T) {
	dir := writeFixture(t)
	bundle := os.DirFS(dir)

	mapped, err := Loader{
		Name: "icon.gvg", Bundle: bundle,
		Mapper: vg.NewPalette(map[vg.Color]vg.Color{vg.Black: vg.White}),
	}.Load()
	if err != nil {
		t.Fatalf("load mapped: %v", err)
	}
	if mapped.Paints[0].Color != vg.White {
		t.Fatalf("mapper not applied: %s", mapped.Paints[0].Color.Hex())
	}

	// A later load without a mapper is unaffected: nothing is cached against
	// the previous mapper.
	plain, err := Loader{Name: "icon.gvg", Bundle: bundle}.Load()
	if err != nil {
		t.Fatalf("load plain: %v", err)
	}
	if plain.Paints[0].Color != vg.Black {
		t.Fatalf("plain load must keep the raw color, got %s", plain.Paints[0].Color.Hex())
	}
}

func TestLoadMissingName(t *testing.T) {
	if _, err := (Loader{}).Load(); err == nil {
		t.Fatalf("expected error for empty asset name")
	}
	if _, err := (Loader{Name: "does-not-exist.gvg"}).Load(); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoaderEqual(t *testing.T) {
	bundle := os.DirFS("/tmp")
	pal := vg.NewPalette(map[vg.Color]vg.Color{vg.Black: vg.Red})
	palCopy := vg.NewPalette(map[vg.Color]vg.Color{vg.Black: vg.Red})

	a := Loader{Name: "a.gvg", Package: "icons", Bundle: bundle, Mapper: pal}
	b := Loader{Name: "a.gvg", Package: "icons", Bundle: bundle, Mapper: palCopy}
	if !a.Equal(b) {
		t.Fatalf("loaders with equivalent mappers must compare equal")
	}

	c := b
	c.Mapper = vg.NewPalette(map[vg.Color]vg.Color{vg.Black: vg.Green})
	if a.Equal(c) {
		t.Fatalf("loaders with different mappers must not compare equal")
	}

	d := b
	d.Mapper = nil
	if a.Equal(d) || !d.Equal(Loader{Name: "a.gvg", Package: "icons", Bundle: bundle}) {
		t.Fatalf("absent mapper must only equal absent mapper")
	}

	e := b
	e.Name = "b.gvg"
	if a.Equal(e) {
		t.Fatalf("different asset names must not compare equal")
	}
}

func TestLoaderKey(t *testing.T) {
	l := Loader{Name: "spin.gvg", Package: "ui"}
	if l.Key() != "ui/spin.gvg" {
		t.Fatalf("key = %q", l.Key())
	}
}
