/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"

	"govg/internal/render"
	"govg/internal/vg"
)

// PNGOptions controls raster export.
type PNGOptions struct {
	Scale      float32
	Background vg.Color
}

// SavePNG rasterizes the asset and writes it to path as PNG.
func SavePNG(a *vg.Asset, path string, opts PNGOptions) error {
	img, err := render.Raster(a, render.Options{Scale: opts.Scale, Background: opts.Background})
	if err != nil {
		return fmt.Errorf("export png: %w", err)
	}
	return render.SavePNG(img, path)
}
