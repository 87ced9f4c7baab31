/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package theme loads declarative color themes and compiles them into
// vg.ColorMapper values. A theme is a small JSON document validated against
// an embedded schema before compilation, so malformed files fail with a
// schema message instead of silently producing an empty palette.
package theme

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"

	applog "govg/internal/log"
	"govg/internal/vg"
)

// Schema for theme documents. Substitution colors are hex strings, either
// #RRGGBB (opaque) or #AARRGGBB.
const schemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name", "substitutions"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "description": {"type": "string"},
    "substitutions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["from", "to"],
        "properties": {
          "from": {"type": "string", "pattern": "^#[0-9a-fA-F]{6}([0-9a-fA-F]{2})?$"},
          "to": {"type": "string", "pattern": "^#[0-9a-fA-F]{6}([0-9a-fA-F]{2})?$"}
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}`

// Theme is a parsed, validated theme document.
type Theme struct {
	Name          string         `json:"name"`
	Description   string         `json:"description,omitempty"`
	Substitutions []Substitution `json:"substitutions"`
}

type Substitution struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Parse validates and parses one theme document.
func Parse(data []byte) (*Theme, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaJSON),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("validate theme: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("theme does not conform to schema: %s", strings.Join(msgs, "; "))
	}
	var t Theme
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse theme: %w", err)
	}
	return &t, nil
}

// Find resolves a theme name against a themes directory. The name may be
// given with or without the .json extension.
func Find(dir, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("theme name is empty")
	}
	file := name
	if !strings.EqualFold(filepath.Ext(file), ".json") {
		file += ".json"
	}
	path := filepath.Join(dir, file)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("theme %q: %w", name, err)
	}
	return path, nil
}

// Load reads and parses a theme file.
func Load(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	applog.WithComponent("theme").Debug("theme loaded",
		slog.String("name", t.Name), slog.Int("subs", len(t.Substitutions)))
	return t, nil
}

// Compile builds the color mapper for this theme. Two compilations of the
// same theme yield mappers that compare equal under vg.EqualMappers, so
// loaders built from a re-read theme file still deduplicate.
func (t *Theme) Compile() (*vg.Palette, error) {
	pairs := make(map[vg.Color]vg.Color, len(t.Substitutions))
	for _, s := range t.Substitutions {
		from, err := ParseHexColor(s.From)
		if err != nil {
			return nil, fmt.Errorf("theme %s: %w", t.Name, err)
		}
		to, err := ParseHexColor(s.To)
		if err != nil {
			return nil, fmt.Errorf("theme %s: %w", t.Name, err)
		}
		pairs[from] = to
	}
	return vg.NewPalette(pairs), nil
}

// ParseHexColor parses #RRGGBB (opaque) or #AARRGGBB.
func ParseHexColor(s string) (vg.Color, error) {
	if !strings.HasPrefix(s, "#") {
		return 0, fmt.Errorf("color %q: missing #", s)
	}
	hex := s[1:]
	var v uint64
	if _, err := fmt.Sscanf(strings.ToLower(hex), "%x", &v); err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	switch len(hex) {
	case 6:
		return vg.Color(uint32(v) | 0xFF000000), nil
	case 8:
		return vg.Color(uint32(v)), nil
	default:
		return 0, fmt.Errorf("color %q: want 6 or 8 hex digits", s)
	}
}
