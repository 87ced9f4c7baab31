/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// govgview launches the desktop asset viewer directly. Build with -tags fyne
// (and cgo) for the full UI; without the tag this prints build instructions.
package main

import (
	"fmt"
	"os"

	"govg/internal/config"
	applog "govg/internal/log"
	"govg/internal/ui"
)

func main() {
	applog.Init(applog.FromEnv())

	dir := ""
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	if dir == "" {
		if cfg, _, err := config.Load(); err == nil {
			dir = cfg.General.LibraryDir
		}
	}
	if err := ui.Run(dir); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
