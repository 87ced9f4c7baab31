/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package asset is the loader boundary around the codec: it locates asset
// bytes in a bundle and decodes them, threading an optional color mapper
// through to the decode pass. A Loader is a value; consumers that deduplicate
// load work (the viewer widget, the catalog) compare Loaders with Equal.
package asset

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"govg/internal/gvgb"
	applog "govg/internal/log"
	"govg/internal/vg"
)

// Loader identifies one asset and the decode configuration to apply to it.
// The mapper is not persisted anywhere: it is forwarded unchanged to the
// decode pass for the lifetime of a single Load call, and the decoded asset
// does not remember it.
type Loader struct {
	// Name is the asset path inside the bundle (or on the OS filesystem when
	// Bundle is nil).
	Name string
	// Package namespaces assets from different providers; informational.
	Package string
	// Bundle is the filesystem the asset is read from; nil means the OS
	// filesystem.
	Bundle fs.FS
	// Mapper is the optional color substitution policy for this load.
	Mapper vg.ColorMapper
}

// Load opens and decodes the asset. Each call is one independent decode
// pass; calling Load twice with different mappers yields independent results.
func (l Loader) Load() (*vg.Asset, error) {
	if strings.TrimSpace(l.Name) == "" {
		return nil, errors.New("asset name is required")
	}
	var (
		data []byte
		err  error
	)
	if l.Bundle != nil {
		data, err = fs.ReadFile(l.Bundle, l.Name)
	} else {
		data, err = os.ReadFile(l.Name)
	}
	if err != nil {
		return nil, fmt.Errorf("read asset %s: %w", l.Name, err)
	}

	a, err := gvgb.DecodeBytes(data, gvgb.DecodeOptions{Mapper: l.Mapper})
	if err != nil {
		return nil, fmt.Errorf("decode asset %s: %w", l.Name, err)
	}
	applog.WithComponent("asset").Debug("asset loaded",
		slog.String("name", l.Name),
		slog.String("pkg", l.Package),
		slog.Bool("mapped", l.Mapper != nil),
	)
	return a, nil
}

// Equal reports whether two loaders describe the same load: same asset
// identity and equivalent mappers (vg.EqualMappers). Consumers use this to
// skip redundant decode work.
func (l Loader) Equal(o Loader) bool {
	return l.Name == o.Name &&
		l.Package == o.Package &&
		sameBundle(l.Bundle, o.Bundle) &&
		vg.EqualMappers(l.Mapper, o.Mapper)
}

// sameBundle compares bundle references. Uncomparable fs.FS implementations
// (for example ones backed by maps) never compare equal.
func sameBundle(a, b fs.FS) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	defer func() { _ = recover() }()
	return a == b
}

// Key returns a stable cache key for the asset identity (mapper excluded;
// callers that cache per-mapper must combine Key with their own mapper key).
func (l Loader) Key() string {
	return l.Package + "/" + l.Name
}
