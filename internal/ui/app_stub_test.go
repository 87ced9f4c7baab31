//go:build !fyne

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */

package ui

import "testing"

func TestRunStubReturnsError(t *testing.T) {
	if err := Run(""); err == nil {
		t.Fatalf("stub Run must return an error in non-fyne builds")
	}
}
