/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package catalog maintains a per-library SQLite index of compiled vector
// assets. The index is derived data: it can always be rebuilt by rescanning
// the library directory, so corruption is handled by backup-and-rebuild
// rather than repair.
package catalog

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"govg/internal/gvgb"
	applog "govg/internal/log"
	"govg/internal/version"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const (
	// IndexDirName stores all per-library ephemeral/index data under the library root.
	IndexDirName  = ".govg"
	IndexFileName = "index.sqlite"

	// schemaVersion tracks the local SQLite schema for the embedded index.
	// Bump this when you perform breaking schema changes and add migrations.
	schemaVersion = 2
)

// Entry is one indexed asset file.
type Entry struct {
	Hash      string
	Path      string
	Name      string
	SizeBytes int64
	ViewportW float64
	ViewportH float64
	Paints    int
	Paths     int
	Draws     int
	DecodeMs  float64
	IndexedAt time.Time
}

// IndexPath returns the full path to the library's embedded index database file.
func IndexPath(libraryRoot string) string {
	return filepath.Join(libraryRoot, IndexDirName, IndexFileName)
}

// InitOrOpenIndex ensures that the per-library SQLite index exists at
// .govg/index.sqlite, opens the database, enables WAL mode, and ensures the
// meta/version tables exist. The returned *sql.DB is ready for use.
func InitOrOpenIndex(libraryRoot string) (*sql.DB, error) {
	l := applog.WithOperation(applog.WithComponent("catalog"), "index_init").With(
		slog.String("root", libraryRoot),
	)
	if strings.TrimSpace(libraryRoot) == "" {
		return nil, errors.New("library root is required")
	}
	if err := os.MkdirAll(filepath.Join(libraryRoot, IndexDirName), 0o755); err != nil {
		l.Error("create .govg dir failed", slog.Any("err", err))
		return nil, fmt.Errorf("create .govg dir: %w", err)
	}

	path := IndexPath(libraryRoot)
	// Use a URI with shared cache and set busy timeout. Convert to forward slashes for SQLite URI.
	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		l.Error("sqlite open failed", slog.Any("err", err))
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Embedded usage, single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		l.Error("enable WAL failed", slog.Any("err", err))
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON;"); err != nil {
		l.Warn("enable foreign_keys failed", slog.Any("err", err))
	}

	if err := ensureMetaAndVersion(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure meta/version failed", slog.Any("err", err))
		return nil, err
	}
	if err := ensureIndexSchema(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure index schema failed", slog.Any("err", err))
		return nil, err
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		l.Error("run migrations failed", slog.Any("err", err))
		return nil, err
	}

	l.Info("index ready", slog.String("path", path))
	return db, nil
}

func ensureMetaAndVersion(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS version (
			id          INTEGER PRIMARY KEY CHECK(id=1),
			schema      INTEGER NOT NULL,
			app         TEXT,
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	now := time.Now().UTC().Format(time.RFC3339)
	appv := version.String()
	var curSchema int
	err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&curSchema)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := db.ExecContext(ctx, `INSERT INTO version (id, schema, app, created_at, updated_at) VALUES(1, ?, ?, ?, ?)`, schemaVersion, appv, now, now); err != nil {
			return fmt.Errorf("insert version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	default:
		// Update app and timestamp only; keep existing schema for migrations
		if _, err := db.ExecContext(ctx, `UPDATE version SET app=?, updated_at=? WHERE id=1`, appv, now); err != nil {
			return fmt.Errorf("update version: %w", err)
		}
	}
	return nil
}

// runMigrations applies incremental schema migrations up to schemaVersion.
func runMigrations(ctx context.Context, db *sql.DB) error {
	var cur int
	if err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&cur); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if cur > schemaVersion {
		// Never downgrade.
		return nil
	}
	for cur < schemaVersion {
		next := cur + 1
		switch next {
		case 2:
			tx, err := db.BeginTx(ctx, nil)
			if err != nil {
				return fmt.Errorf("begin migration %d: %w", next, err)
			}
			stmts := []string{
				`CREATE INDEX IF NOT EXISTS idx_assets_name ON assets(name);`,
				`CREATE INDEX IF NOT EXISTS idx_assets_indexed_at ON assets(indexed_at);`,
			}
			for _, q := range stmts {
				if _, err := tx.ExecContext(ctx, q); err != nil {
					_ = tx.Rollback()
					return fmt.Errorf("migration %d stmt failed: %w", next, err)
				}
			}
			if _, err := tx.ExecContext(ctx, `UPDATE version SET schema=?, updated_at=? WHERE id=1`, next, time.Now().UTC().Format(time.RFC3339)); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("migration %d update version: %w", next, err)
			}
			if err := tx.Commit(); err != nil {
				return fmt.Errorf("migration %d commit: %w", next, err)
			}
			// Best-effort FTS optimize (outside the tx)
			if _, err := db.ExecContext(ctx, `INSERT INTO fts_assets(fts_assets) VALUES('optimize')`); err != nil {
				// best-effort; ignore
			}
		default:
			// Unknown future step; break
		}
		cur = next
	}
	return nil
}

// ensureIndexSchema creates the asset tables and FTS structures if missing.
func ensureIndexSchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS assets (
			hash        TEXT PRIMARY KEY,
			path        TEXT NOT NULL,
			name        TEXT NOT NULL,
			size_bytes  INTEGER NOT NULL,
			viewport_w  REAL NOT NULL,
			viewport_h  REAL NOT NULL,
			paints      INTEGER NOT NULL,
			paths       INTEGER NOT NULL,
			draws       INTEGER NOT NULL,
			decode_ms   REAL NOT NULL,
			indexed_at  TEXT NOT NULL
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_assets_path ON assets(path);`,

		// Contentless FTS5 index over asset names, fed via triggers.
		`CREATE VIRTUAL TABLE IF NOT EXISTS fts_assets USING fts5(
			name,
			content='',
			tokenize = 'unicode61'
		);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure index schema: %w", err)
		}
	}
	triggers := []string{
		`CREATE TRIGGER IF NOT EXISTS assets_ai AFTER INSERT ON assets BEGIN
			INSERT INTO fts_assets(rowid, name) VALUES (new.rowid, new.name);
		END;`,
		`CREATE TRIGGER IF NOT EXISTS assets_ad AFTER DELETE ON assets BEGIN
			INSERT INTO fts_assets(fts_assets, rowid, name) VALUES ('delete', old.rowid, old.name);
		END;`,
		`CREATE TRIGGER IF NOT EXISTS assets_au AFTER UPDATE OF name ON assets BEGIN
			INSERT INTO fts_assets(fts_assets, rowid, name) VALUES ('delete', old.rowid, old.name);
			INSERT INTO fts_assets(rowid, name) VALUES (new.rowid, new.name);
		END;`,
	}
	for _, q := range triggers {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure fts triggers: %w", err)
		}
	}
	return nil
}

// Scan walks the library for .gvg files, decodes each one, and replaces the
// asset rows. Files that fail to decode are skipped with a warning. Returns
// the number of assets indexed.
func Scan(ctx context.Context, libraryRoot string) (int, error) {
	l := applog.WithOperation(applog.WithComponent("catalog"), "scan").With(
		slog.String("root", libraryRoot),
	)
	db, err := InitOrOpenIndex(libraryRoot)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	entries := make([]Entry, 0, 64)
	err = filepath.WalkDir(libraryRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == IndexDirName {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".gvg") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		start := time.Now()
		a, derr := gvgb.DecodeBytes(data, gvgb.DecodeOptions{})
		if derr != nil {
			l.Warn("skip undecodable asset", slog.String("path", path), slog.Any("err", derr))
			return nil
		}
		elapsed := time.Since(start)
		sum := sha256.Sum256(data)
		rel, err := filepath.Rel(libraryRoot, path)
		if err != nil {
			return err
		}
		entries = append(entries, Entry{
			Hash:      hex.EncodeToString(sum[:]),
			Path:      filepath.ToSlash(rel),
			Name:      strings.TrimSuffix(d.Name(), filepath.Ext(d.Name())),
			SizeBytes: int64(len(data)),
			ViewportW: float64(a.Viewport.W),
			ViewportH: float64(a.Viewport.H),
			Paints:    len(a.Paints),
			Paths:     len(a.Paths),
			Draws:     len(a.Draws),
			DecodeMs:  float64(elapsed.Microseconds()) / 1000,
		})
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walk library: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM assets;"); err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("clear assets: %w", err)
	}
	ins, err := tx.PrepareContext(ctx, `INSERT INTO assets
		(hash, path, name, size_bytes, viewport_w, viewport_h, paints, paths, draws, decode_ms, indexed_at)
		VALUES(?,?,?,?,?,?,?,?,?,?,?);`)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer ins.Close()
	now := time.Now().UTC().Format(time.RFC3339)
	for _, e := range entries {
		if _, err := ins.ExecContext(ctx, e.Hash, e.Path, e.Name, e.SizeBytes,
			e.ViewportW, e.ViewportH, e.Paints, e.Paths, e.Draws, e.DecodeMs, now); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("insert asset: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	l.Info("library indexed", slog.Int("assets", len(entries)))
	return len(entries), nil
}

// List returns all indexed assets ordered by path.
func List(ctx context.Context, libraryRoot string) ([]Entry, error) {
	db, err := InitOrOpenIndex(libraryRoot)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return scanEntries(db.QueryContext(ctx, `SELECT hash, path, name, size_bytes,
		viewport_w, viewport_h, paints, paths, draws, decode_ms, indexed_at
		FROM assets ORDER BY path`))
}

// Search matches asset names against an FTS5 query and returns hits ordered
// by relevance.
func Search(ctx context.Context, libraryRoot, query string) ([]Entry, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("query is required")
	}
	db, err := InitOrOpenIndex(libraryRoot)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return scanEntries(db.QueryContext(ctx, `SELECT a.hash, a.path, a.name, a.size_bytes,
		a.viewport_w, a.viewport_h, a.paints, a.paths, a.draws, a.decode_ms, a.indexed_at
		FROM fts_assets f JOIN assets a ON a.rowid = f.rowid
		WHERE fts_assets MATCH ? ORDER BY rank`, query))
}

func scanEntries(rows *sql.Rows, err error) ([]Entry, error) {
	if err != nil {
		return nil, fmt.Errorf("query assets: %w", err)
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		var at string
		if err := rows.Scan(&e.Hash, &e.Path, &e.Name, &e.SizeBytes,
			&e.ViewportW, &e.ViewportH, &e.Paints, &e.Paths, &e.Draws, &e.DecodeMs, &at); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		e.IndexedAt, _ = time.Parse(time.RFC3339, at)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DetectAndRebuildIndex checks for corruption or missing schema and rebuilds
// the index from the library when needed. It returns true when a rebuild was
// performed.
func DetectAndRebuildIndex(ctx context.Context, libraryRoot string) (bool, error) {
	path := IndexPath(libraryRoot)
	db, err := InitOrOpenIndex(libraryRoot)
	if err != nil {
		backupIndexFile(path)
		_ = os.Remove(path)
		if _, rbErr := Scan(ctx, libraryRoot); rbErr != nil {
			return false, fmt.Errorf("rebuild after open failure: %w (open err: %v)", rbErr, err)
		}
		return true, nil
	}
	needs := false
	var chk string
	if err := db.QueryRowContext(ctx, `PRAGMA quick_check;`).Scan(&chk); err != nil || !strings.Contains(strings.ToLower(chk), "ok") {
		needs = true
	}
	if !needs {
		if _, err := db.ExecContext(ctx, `SELECT 1 FROM assets LIMIT 1;`); err != nil {
			needs = true
		}
	}
	_ = db.Close()
	if !needs {
		return false, nil
	}
	backupIndexFile(path)
	_ = os.Remove(path)
	if _, err := Scan(ctx, libraryRoot); err != nil {
		return false, err
	}
	return true, nil
}

// backupIndexFile copies the current index file into a timestamped backup in .govg/backups.
func backupIndexFile(indexPath string) {
	bdir := filepath.Join(filepath.Dir(indexPath), "backups")
	_ = os.MkdirAll(bdir, 0o755)
	stamp := time.Now().Format("20060102-150405")
	bak := filepath.Join(bdir, fmt.Sprintf("%s.%s.bak", filepath.Base(indexPath), stamp))
	if data, err := os.ReadFile(indexPath); err == nil {
		_ = os.WriteFile(bak, data, 0o644)
	}
}
