/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package log

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"
)

// TestInitAndStructuredLoggingToFile verifies that Init with a file handler
// writes JSON logs and that static and contextual attributes are present.
func TestInitAndStructuredLoggingToFile(t *testing.T) {
	fpath := fmt.Sprintf("%s/govg_log_%d.json", os.TempDir(), time.Now().UnixNano())
	t.Cleanup(func() { _ = os.Remove(fpath) })

	Init(Options{Level: "debug", Format: "json", File: fpath})

	l := WithComponent("codec")
	l = WithOperation(l, "decode")
	l.Info("asset decoded", slog.Int("paints", 3))

	time.Sleep(50 * time.Millisecond)

	b, err := os.ReadFile(fpath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	sc := bufio.NewScanner(strings.NewReader(string(b)))
	found := false
	for sc.Scan() {
		var rec map[string]any
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("log line is not JSON: %v", err)
		}
		if rec["msg"] == "asset decoded" {
			found = true
			if rec["component"] != "codec" {
				t.Fatalf("component attr missing, got %v", rec["component"])
			}
			if rec["op"] != "decode" {
				t.Fatalf("op attr missing, got %v", rec["op"])
			}
			if rec["app"] != "govg" {
				t.Fatalf("app attr missing, got %v", rec["app"])
			}
		}
	}
	if !found {
		t.Fatalf("expected log record not found in %s", fpath)
	}
}

func TestParseLevelDefaults(t *testing.T) {
	if parseLevel("nonsense") != slog.LevelInfo {
		t.Fatalf("unknown level should default to info")
	}
	if parseLevel("WARN") != slog.LevelWarn {
		t.Fatalf("level parsing should be case-insensitive")
	}
}
