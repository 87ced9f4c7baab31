/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */

package themepack

import (
	"os"
	"path/filepath"
	"testing"
)

const validTheme = `{"name": "mono", "substitutions": [{"from": "#FF0000", "to": "#777777"}]}`

func TestExportAndInstallRoundTrip(t *testing.T) {
	src := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "mono.json"), []byte(validTheme), 0o644); err != nil {
		t.Fatalf("write theme: %v", err)
	}
	// invalid theme and non-theme files are not packed
	if err := os.WriteFile(filepath.Join(src, "broken.json"), []byte(`{"nope": 1}`), 0o644); err != nil {
		t.Fatalf("write broken: %v", err)
	}
	if err := os.WriteFile(filepath.Join(src, "readme.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatalf("write readme: %v", err)
	}

	zipPath := filepath.Join(t.TempDir(), "pack.zip")
	n, err := Export(src, zipPath)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if n != 1 {
		t.Fatalf("exported %d themes, want 1", n)
	}

	dst := t.TempDir()
	installed, err := Install(dst, zipPath)
	if err != nil {
		t.Fatalf("install: %v", err)
	}
	if installed != 1 {
		t.Fatalf("installed %d themes, want 1", installed)
	}
	if _, err := os.Stat(filepath.Join(dst, "mono.json")); err != nil {
		t.Fatalf("installed theme missing: %v", err)
	}
}

func TestInstallDoesNotOverwrite(t *testing.T) {
	src := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "mono.json"), []byte(validTheme), 0o644); err != nil {
		t.Fatalf("write theme: %v", err)
	}
	zipPath := filepath.Join(t.TempDir(), "pack.zip")
	if _, err := Export(src, zipPath); err != nil {
		t.Fatalf("export: %v", err)
	}

	dst := t.TempDir()
	local := []byte(`{"name": "local", "substitutions": []}`)
	if err := os.WriteFile(filepath.Join(dst, "mono.json"), local, 0o644); err != nil {
		t.Fatalf("write local: %v", err)
	}
	installed, err := Install(dst, zipPath)
	if err != nil {
		t.Fatalf("install: %v", err)
	}
	if installed != 0 {
		t.Fatalf("installed %d, want 0 (existing file kept)", installed)
	}
	got, err := os.ReadFile(filepath.Join(dst, "mono.json"))
	if err != nil {
		t.Fatalf("read local: %v", err)
	}
	if string(got) != string(local) {
		t.Fatalf("existing theme was overwritten")
	}
}

func TestExportRequiresArguments(t *testing.T) {
	if _, err := Export("", "x.zip"); err == nil {
		t.Fatalf("empty themesDir must fail")
	}
	if _, err := Export(t.TempDir(), ""); err == nil {
		t.Fatalf("empty destination must fail")
	}
	if _, err := Install("", "x.zip"); err == nil {
		t.Fatalf("empty themesDir must fail")
	}
}
