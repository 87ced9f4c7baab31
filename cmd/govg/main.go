/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"govg/internal/catalog"
	"govg/internal/config"
	"govg/internal/crash"
	"govg/internal/export"
	"govg/internal/gvgb"
	applog "govg/internal/log"
	"govg/internal/theme"
	"govg/internal/themepack"
	"govg/internal/ui"
	"govg/internal/version"
	"govg/internal/vg"
)

func usage() {
	fmt.Println("GoVG — compiled vector graphics toolkit")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  govg version|-v|--version                       Show version")
	fmt.Println("  govg info <file.gvg>                            Print asset summary")
	fmt.Println("  govg render <file.gvg> <out.png> [flags]        Rasterize to PNG")
	fmt.Println("  govg export <file.gvg> <out.svg|pdf|png> [flags] Export to another format")
	fmt.Println("  govg theme validate <theme.json>                Validate a theme file")
	fmt.Println("  govg themepack export <themesDir> <pack.zip>    Bundle themes into a pack")
	fmt.Println("  govg themepack install [<themesDir>] <pack.zip> Install a theme pack")
	fmt.Println("  govg catalog scan [<libraryDir>]                Index a library of .gvg files")
	fmt.Println("  govg catalog list [<libraryDir>]                List indexed assets")
	fmt.Println("  govg catalog search <query> [<libraryDir>]      Search indexed assets")
	fmt.Println("  govg catalog push [<libraryDir>]                Push the index to the mirror")
	fmt.Println("  govg serve                                      Run the catalog mirror server")
	fmt.Println("  govg ui [<libraryDir>]                          Launch the desktop viewer")
	fmt.Println()
	fmt.Println("Render/export flags: -theme <theme.json> -scale <n>")
	fmt.Println("Without -theme, the theme named in the user config is applied.")
}

// loadMapper compiles a theme file into a color mapper. An empty path falls
// back to the theme named in the user config, resolved against the per-user
// themes directory; no flag and no configured theme means no mapper.
func loadMapper(themePath string) (vg.ColorMapper, error) {
	path := strings.TrimSpace(themePath)
	if path == "" {
		cfg, _, err := config.Load()
		if err != nil {
			return nil, err
		}
		if cfg.General.Theme == "" {
			return nil, nil
		}
		dir, err := config.ThemesDir()
		if err != nil {
			return nil, err
		}
		path, err = theme.Find(dir, cfg.General.Theme)
		if err != nil {
			return nil, err
		}
	}
	th, err := theme.Load(path)
	if err != nil {
		return nil, err
	}
	pal, err := th.Compile()
	if err != nil {
		return nil, err
	}
	return pal, nil
}

func decodeFile(path string, mapper vg.ColorMapper) (*vg.Asset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return gvgb.DecodeBytes(data, gvgb.DecodeOptions{Mapper: mapper})
}

func fail(l *slog.Logger, msg string, err error) {
	l.Error(msg, slog.Any("err", err))
	fmt.Println("Error:", err)
	os.Exit(1)
}

func libraryDirArg(args []string) string {
	if len(args) > 0 {
		abs, _ := filepath.Abs(args[0])
		return abs
	}
	cfg, _, _ := config.Load()
	if cfg.General.LibraryDir != "" {
		return cfg.General.LibraryDir
	}
	wd, _ := os.Getwd()
	return wd
}

func main() {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	defer func() { crash.Recover("") }()

	args := os.Args
	if len(args) < 2 {
		usage()
		return
	}

	switch args[1] {
	case "version", "--version", "-v":
		fmt.Println("GoVG — compiled vector graphics toolkit")
		fmt.Println(version.String())

	case "info":
		if len(args) < 3 {
			fmt.Println("info requires <file.gvg>")
			usage()
			os.Exit(2)
		}
		a, err := decodeFile(args[2], nil)
		if err != nil {
			fail(l, "decode failed", err)
		}
		fmt.Printf("Viewport: %g x %g\n", a.Viewport.W, a.Viewport.H)
		fmt.Printf("Paints:   %d\n", len(a.Paints))
		fmt.Printf("Paths:    %d\n", len(a.Paths))
		fmt.Printf("Shaders:  %d\n", len(a.Shaders))
		fmt.Printf("Draws:    %d\n", len(a.Draws))
		for _, p := range a.Paints {
			id := fmt.Sprintf("%d", p.ID)
			if p.Anonymous {
				id = "-"
			}
			fmt.Printf("  paint %s %s %s\n", id, p.Kind, p.Color.Hex())
		}

	case "render":
		fs := flag.NewFlagSet("render", flag.ExitOnError)
		themePath := fs.String("theme", "", "theme JSON to apply during decode")
		scale := fs.Float64("scale", 1, "raster scale factor")
		if len(args) < 4 {
			fmt.Println("render requires <file.gvg> and <out.png>")
			usage()
			os.Exit(2)
		}
		_ = fs.Parse(args[4:])
		mapper, err := loadMapper(*themePath)
		if err != nil {
			fail(l, "load theme failed", err)
		}
		a, err := decodeFile(args[2], mapper)
		if err != nil {
			fail(l, "decode failed", err)
		}
		if err := export.SavePNG(a, args[3], export.PNGOptions{Scale: float32(*scale)}); err != nil {
			fail(l, "render failed", err)
		}
		fmt.Println("Wrote", args[3])

	case "export":
		fs := flag.NewFlagSet("export", flag.ExitOnError)
		themePath := fs.String("theme", "", "theme JSON to apply during decode")
		scale := fs.Float64("scale", 1, "raster scale factor (png only)")
		if len(args) < 4 {
			fmt.Println("export requires <file.gvg> and <out.svg|pdf|png>")
			usage()
			os.Exit(2)
		}
		_ = fs.Parse(args[4:])
		mapper, err := loadMapper(*themePath)
		if err != nil {
			fail(l, "load theme failed", err)
		}
		a, err := decodeFile(args[2], mapper)
		if err != nil {
			fail(l, "decode failed", err)
		}
		out := args[3]
		switch strings.ToLower(filepath.Ext(out)) {
		case ".svg":
			err = export.SaveSVG(a, out)
		case ".pdf":
			err = export.SavePDF(a, out)
		case ".png":
			err = export.SavePNG(a, out, export.PNGOptions{Scale: float32(*scale)})
		default:
			err = fmt.Errorf("unsupported export format %q", filepath.Ext(out))
		}
		if err != nil {
			fail(l, "export failed", err)
		}
		fmt.Println("Wrote", out)

	case "theme":
		if len(args) < 4 || args[2] != "validate" {
			fmt.Println("theme requires: validate <theme.json>")
			usage()
			os.Exit(2)
		}
		th, err := theme.Load(args[3])
		if err != nil {
			fail(l, "theme invalid", err)
		}
		fmt.Printf("Theme %q is valid (%d substitutions)\n", th.Name, len(th.Substitutions))

	case "themepack":
		if len(args) < 4 {
			fmt.Println("themepack requires: export <themesDir> <pack.zip> | install [<themesDir>] <pack.zip>")
			usage()
			os.Exit(2)
		}
		switch args[2] {
		case "export":
			if len(args) < 5 {
				fmt.Println("themepack export requires <themesDir> <pack.zip>")
				os.Exit(2)
			}
			n, err := themepack.Export(args[3], args[4])
			if err != nil {
				fail(l, "themepack export failed", err)
			}
			fmt.Printf("Packed %d themes into %s\n", n, args[4])
		case "install":
			// Without an explicit directory, install into the per-user
			// themes dir that render/export resolve configured themes from.
			dir, pack := "", args[3]
			if len(args) >= 5 {
				dir, pack = args[3], args[4]
			} else {
				d, err := config.ThemesDir()
				if err != nil {
					fail(l, "resolve themes dir failed", err)
				}
				dir = d
			}
			n, err := themepack.Install(dir, pack)
			if err != nil {
				fail(l, "themepack install failed", err)
			}
			fmt.Printf("Installed %d themes into %s\n", n, dir)
		default:
			usage()
			os.Exit(2)
		}

	case "catalog":
		if len(args) < 3 {
			fmt.Println("catalog requires: scan|list|search|push")
			usage()
			os.Exit(2)
		}
		ctx := context.Background()
		switch args[2] {
		case "scan":
			dir := libraryDirArg(args[3:])
			n, err := catalog.Scan(ctx, dir)
			if err != nil {
				fail(l, "catalog scan failed", err)
			}
			fmt.Printf("Indexed %d assets in %s\n", n, dir)
		case "list":
			dir := libraryDirArg(args[3:])
			entries, err := catalog.List(ctx, dir)
			if err != nil {
				fail(l, "catalog list failed", err)
			}
			for _, e := range entries {
				fmt.Printf("%-40s %4.0fx%-4.0f paints=%d draws=%d\n", e.Path, e.ViewportW, e.ViewportH, e.Paints, e.Draws)
			}
		case "search":
			if len(args) < 4 {
				fmt.Println("catalog search requires <query>")
				os.Exit(2)
			}
			dir := libraryDirArg(args[4:])
			hits, err := catalog.Search(ctx, dir, args[3])
			if err != nil {
				fail(l, "catalog search failed", err)
			}
			for _, e := range hits {
				fmt.Printf("%-40s %s\n", e.Path, e.Name)
			}
		case "push":
			dir := libraryDirArg(args[3:])
			cfg, token, err := config.Load()
			if err != nil {
				fail(l, "load config failed", err)
			}
			entries, err := catalog.List(ctx, dir)
			if err != nil {
				fail(l, "catalog list failed", err)
			}
			if err := catalog.Push(ctx, cfg.Mirror.BaseURL, token, cfg.Mirror.Library, entries); err != nil {
				fail(l, "catalog push failed", err)
			}
			fmt.Printf("Pushed %d entries to %s\n", len(entries), cfg.Mirror.BaseURL)
		default:
			usage()
			os.Exit(2)
		}

	case "serve":
		if err := catalog.Serve(); err != nil {
			fail(l, "mirror server failed", err)
		}

	case "ui":
		var dir string
		if len(args) >= 3 {
			dir = args[2]
		}
		if err := ui.Run(dir); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}

	default:
		usage()
	}
}
