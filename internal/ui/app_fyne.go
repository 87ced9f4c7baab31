//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"govg/internal/asset"
	"govg/internal/catalog"
	"govg/internal/config"
	"govg/internal/crash"
	applog "govg/internal/log"
	"govg/internal/render"
	"govg/internal/theme"
	"govg/internal/vg"
)

// Run starts the Fyne-based asset viewer over a library directory.
func Run(libraryDir string) error {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("ui")
	l.Info("starting viewer", slog.String("library", libraryDir))

	defer func() { crash.Recover(libraryDir) }()

	fyneApp := app.NewWithID("govg")
	w := fyneApp.NewWindow("GoVG Viewer")
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("window.width", 1000)
	winH := prefs.IntWithFallback("window.height", 700)
	if winW < 640 {
		winW = 640
	}
	if winH < 480 {
		winH = 480
	}
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	status := widget.NewLabel("Ready")
	preview := canvas.NewImageFromImage(nil)
	preview.FillMode = canvas.ImageFillContain

	var entries []catalog.Entry
	var mapper vg.ColorMapper
	var themeName string

	// cache holds decoded assets keyed by loader equality, so re-selecting an
	// asset with an unchanged mapper does not decode again.
	type cached struct {
		loader asset.Loader
		asset  *vg.Asset
	}
	cache := map[string]cached{}

	loadAsset := func(e catalog.Entry) (*vg.Asset, error) {
		loader := asset.Loader{
			Name:    filepath.Join(libraryDir, filepath.FromSlash(e.Path)),
			Package: "library",
			Mapper:  mapper,
		}
		if c, ok := cache[loader.Key()]; ok && c.loader.Equal(loader) {
			return c.asset, nil
		}
		a, err := loader.Load()
		if err != nil {
			return nil, err
		}
		cache[loader.Key()] = cached{loader: loader, asset: a}
		return a, nil
	}

	showEntry := func(e catalog.Entry) {
		a, err := loadAsset(e)
		if err != nil {
			l.Error("decode failed", slog.String("path", e.Path), slog.Any("err", err))
			dialog.ShowError(err, w)
			return
		}
		img, err := render.Raster(a, render.Options{Scale: 4, Background: vg.White})
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		preview.Image = img
		preview.Refresh()
		themed := ""
		if themeName != "" {
			themed = " [" + themeName + "]"
		}
		status.SetText(fmt.Sprintf("%s%s — %d paints, %d paths, %d draws",
			e.Name, themed, e.Paints, e.Paths, e.Draws))
	}

	names := []string{}
	list := widget.NewList(
		func() int { return len(names) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i >= 0 && int(i) < len(names) {
				o.(*widget.Label).SetText(names[i])
			}
		},
	)
	list.OnSelected = func(id widget.ListItemID) {
		if int(id) < len(entries) {
			showEntry(entries[id])
		}
	}

	refresh := func() {
		ctx := context.Background()
		if _, err := catalog.Scan(ctx, libraryDir); err != nil {
			dialog.ShowError(err, w)
			return
		}
		got, err := catalog.List(ctx, libraryDir)
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		entries = got
		names = names[:0]
		for _, e := range entries {
			names = append(names, e.Name)
		}
		list.Refresh()
		status.SetText(fmt.Sprintf("%d assets indexed", len(entries)))
	}

	applyTheme := func(path string) {
		if path == "" {
			mapper = nil
			themeName = ""
		} else {
			th, err := theme.Load(path)
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			pal, err := th.Compile()
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			mapper = pal
			themeName = th.Name
		}
		// Loader equality catches the mapper change; stale entries just sit in
		// the map until the same key is reloaded.
		l.Info("theme applied", slog.String("theme", themeName))
		list.UnselectAll()
	}

	themeBtn := widget.NewButton("Theme…", func() {
		fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil || rc == nil {
				return
			}
			path := rc.URI().Path()
			_ = rc.Close()
			if !strings.EqualFold(filepath.Ext(path), ".json") {
				dialog.ShowError(fmt.Errorf("theme must be a .json file"), w)
				return
			}
			applyTheme(path)
		}, w)
		fd.Show()
	})
	clearBtn := widget.NewButton("No Theme", func() { applyTheme("") })
	rescanBtn := widget.NewButton("Rescan", refresh)

	toolbar := container.NewHBox(rescanBtn, themeBtn, clearBtn)
	left := container.NewBorder(widget.NewLabel("Assets"), nil, nil, nil, list)
	content := container.NewBorder(toolbar, status, left, nil, preview)
	w.SetContent(content)

	w.SetOnClosed(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
	})

	if libraryDir == "" {
		home, _ := os.UserHomeDir()
		libraryDir = home
	}
	// Start with the theme named in the user config, if any is installed.
	if cfg, _, err := config.Load(); err == nil && cfg.General.Theme != "" {
		if dir, err := config.ThemesDir(); err == nil {
			if path, err := theme.Find(dir, cfg.General.Theme); err == nil {
				applyTheme(path)
			} else {
				l.Warn("configured theme not installed",
					slog.String("theme", cfg.General.Theme), slog.Any("err", err))
			}
		}
	}
	refresh()
	w.ShowAndRun()
	return nil
}
