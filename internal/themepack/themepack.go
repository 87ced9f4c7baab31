/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */

// Package themepack bundles theme files into distributable zip archives and
// installs such archives into a local themes directory.
package themepack

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	applog "govg/internal/log"
	"govg/internal/theme"
)

// ManifestName is the human-readable inventory file at the archive root.
const ManifestName = "themepack.manifest.txt"

// Export zips every valid theme JSON file under themesDir into destZipPath.
// Files that fail theme validation are skipped with a warning rather than
// poisoning the pack. The produced archive carries a small manifest at the
// root for quick human inspection.
func Export(themesDir, destZipPath string) (int, error) {
	l := applog.WithOperation(applog.WithComponent("themepack"), "export").With(slog.String("dir", themesDir))
	if strings.TrimSpace(themesDir) == "" {
		return 0, errors.New("themesDir is required")
	}
	if strings.TrimSpace(destZipPath) == "" {
		return 0, errors.New("destZipPath is required")
	}
	if err := os.MkdirAll(filepath.Dir(destZipPath), 0o755); err != nil {
		return 0, fmt.Errorf("ensure zip dir: %w", err)
	}
	_ = os.Remove(destZipPath)

	zf, err := os.Create(destZipPath)
	if err != nil {
		return 0, fmt.Errorf("create zip: %w", err)
	}
	defer func() { _ = zf.Close() }()
	zw := zip.NewWriter(zf)
	defer func() { _ = zw.Close() }()

	manifest := fmt.Sprintf("GoVG Theme Pack\nCreated: %s\nSource: %s\n\nContents mirror the themes directory.\n",
		time.Now().Format(time.RFC3339), themesDir)
	w, err := zw.Create(ManifestName)
	if err != nil {
		return 0, fmt.Errorf("add manifest: %w", err)
	}
	if _, err := w.Write([]byte(manifest)); err != nil {
		return 0, fmt.Errorf("write manifest: %w", err)
	}

	added := 0
	err = filepath.Walk(themesDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}
		if _, terr := theme.Load(path); terr != nil {
			l.Warn("skip invalid theme", slog.String("path", path), slog.Any("err", terr))
			return nil
		}
		rel, err := filepath.Rel(themesDir, path)
		if err != nil {
			return err
		}
		fw, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		if _, err := io.Copy(fw, f); err != nil {
			return err
		}
		added++
		return nil
	})
	if err != nil {
		l.Error("zip build failed", slog.Any("err", err))
		return added, fmt.Errorf("build zip: %w", err)
	}
	l.Info("theme pack exported", slog.Int("themes", added), slog.String("zip", destZipPath))
	return added, nil
}

// Install extracts a theme pack into themesDir. Existing files are not
// overwritten; entries that are not theme JSON files are ignored. Returns the
// count of files installed.
func Install(themesDir, packZipPath string) (int, error) {
	l := applog.WithOperation(applog.WithComponent("themepack"), "install").With(slog.String("dir", themesDir))
	if strings.TrimSpace(themesDir) == "" {
		return 0, errors.New("themesDir is required")
	}
	if strings.TrimSpace(packZipPath) == "" {
		return 0, errors.New("packZipPath is required")
	}
	if err := os.MkdirAll(themesDir, 0o755); err != nil {
		return 0, fmt.Errorf("ensure themes dir: %w", err)
	}

	r, err := zip.OpenReader(packZipPath)
	if err != nil {
		return 0, fmt.Errorf("open pack: %w", err)
	}
	defer func() { _ = r.Close() }()

	installed := 0
	for _, f := range r.File {
		name := f.Name
		if name == ManifestName || f.FileInfo().IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(name), ".json") {
			continue
		}
		// Zip entries are forward-slash relative paths; reject escapes.
		if strings.Contains(name, "..") {
			l.Warn("skip suspicious entry", slog.String("name", name))
			continue
		}
		targetPath := filepath.Join(themesDir, filepath.FromSlash(name))
		if _, err := os.Stat(targetPath); err == nil {
			l.Warn("skip existing theme", slog.String("path", targetPath))
			continue
		}
		if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
			return installed, err
		}
		rc, err := f.Open()
		if err != nil {
			return installed, err
		}
		out, err := os.OpenFile(targetPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			_ = rc.Close()
			return installed, err
		}
		if _, err := io.Copy(out, rc); err != nil {
			_ = out.Close()
			_ = rc.Close()
			return installed, err
		}
		_ = out.Close()
		_ = rc.Close()
		installed++
	}
	l.Info("theme pack installed", slog.Int("themes", installed))
	return installed, nil
}
