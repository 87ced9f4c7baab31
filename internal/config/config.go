/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in
// the user scope. Environment variables are treated as read-only overrides at
// runtime.
//
// config_version: bump when the structure changes in a backward-incompatible
// way. Unknown fields are ignored on unmarshal.

type MirrorConfig struct {
	BaseURL     string `yaml:"base_url"`
	Library     string `yaml:"library"`
	TimeoutMs   int    `yaml:"timeout_ms"`
	TLSInsecure bool   `yaml:"tls_insecure"`
	// Token is not stored on disk; it lives in the OS keychain.
}

type GeneralConfig struct {
	TelemetryOptIn bool   `yaml:"telemetry_opt_in"`
	LibraryDir     string `yaml:"library_dir"`
	Theme          string `yaml:"theme"` // name of a theme JSON in the themes dir, "" for none
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	General       GeneralConfig `yaml:"general"`
	Mirror        MirrorConfig  `yaml:"mirror"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{TelemetryOptIn: false, LibraryDir: "", Theme: ""},
		Mirror:        MirrorConfig{BaseURL: "http://localhost:8080", Library: "default", TimeoutMs: 15000, TLSInsecure: false},
		Logging:       LoggingConfig{Level: "info", Format: "console", File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvMirrorURL       = "GVG_MIRROR_URL"
	EnvMirrorLibrary   = "GVG_MIRROR_LIBRARY"
	EnvMirrorTimeoutMs = "GVG_MIRROR_TIMEOUT_MS"
	EnvMirrorTLSInsec  = "GVG_TLS_INSECURE"
	EnvTelemetryOptIn  = "GVG_TELEMETRY_OPT_IN"
	EnvLibraryDir      = "GVG_LIBRARY_DIR"
	EnvTheme           = "GVG_THEME"
	EnvLogLevel        = "GVG_LOG_LEVEL"
	EnvLogFormat       = "GVG_LOG_FORMAT"
	EnvLogFile         = "GVG_LOG_FILE"
)

// Service/keys for the OS keyring.
const (
	keyringService = "GoVG"
	keyringToken   = "mirror_token"
)

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "GoVG")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "GoVG")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "govg")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// ThemesDir returns the per-user themes directory next to the config file.
func ThemesDir() (string, error) {
	path, err := ConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(path), "themes"), nil
}

// Load reads the user config file (if present), applies defaults, and merges
// environment overrides. The mirror token comes from the OS keyring and is
// returned separately, never kept inside the struct.
func Load() (AppConfig, string, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, "", err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	tok, _ := tokenStore.Get(keyringService, keyringToken)
	return cfg, tok, nil
}

// Save writes the user config YAML and persists the token into the OS
// keyring (if non-empty).
func Save(cfg AppConfig, token string) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}
	if token != "" {
		if err := tokenStore.Set(keyringService, keyringToken, token); err != nil {
			return err
		}
	}
	return nil
}

// ForgetToken removes the mirror token from the keyring.
func ForgetToken() error {
	return tokenStore.Delete(keyringService, keyringToken)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.General.TelemetryOptIn = src.General.TelemetryOptIn
	if strings.TrimSpace(src.General.LibraryDir) != "" {
		dst.General.LibraryDir = strings.TrimSpace(src.General.LibraryDir)
	}
	if strings.TrimSpace(src.General.Theme) != "" {
		dst.General.Theme = strings.TrimSpace(src.General.Theme)
	}
	if src.Mirror.BaseURL != "" {
		dst.Mirror.BaseURL = src.Mirror.BaseURL
	}
	if src.Mirror.Library != "" {
		dst.Mirror.Library = src.Mirror.Library
	}
	if src.Mirror.TimeoutMs != 0 {
		dst.Mirror.TimeoutMs = src.Mirror.TimeoutMs
	}
	dst.Mirror.TLSInsecure = src.Mirror.TLSInsecure
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func boolEnv(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvMirrorURL)); v != "" {
		cfg.Mirror.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvMirrorLibrary)); v != "" {
		cfg.Mirror.Library = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvMirrorTimeoutMs)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Mirror.TimeoutMs = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvMirrorTLSInsec)); v != "" {
		cfg.Mirror.TLSInsecure = boolEnv(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvTelemetryOptIn)); v != "" {
		cfg.General.TelemetryOptIn = boolEnv(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLibraryDir)); v != "" {
		cfg.General.LibraryDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTheme)); v != "" {
		cfg.General.Theme = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by
// environment variables.
func EnvOverrideFor(key string) (string, bool) {
	names := map[string]string{
		"mirror.base_url":          EnvMirrorURL,
		"mirror.library":           EnvMirrorLibrary,
		"mirror.timeout_ms":        EnvMirrorTimeoutMs,
		"mirror.tls_insecure":      EnvMirrorTLSInsec,
		"general.telemetry_opt_in": EnvTelemetryOptIn,
		"general.library_dir":      EnvLibraryDir,
		"general.theme":            EnvTheme,
		"logging.level":            EnvLogLevel,
		"logging.format":           EnvLogFormat,
		"logging.file":             EnvLogFile,
	}
	env, ok := names[key]
	if !ok || os.Getenv(env) == "" {
		return "", false
	}
	return env, true
}

// EffectiveTimeout returns the mirror timeout as a milliseconds string for
// http.Client construction.
func (m MirrorConfig) EffectiveTimeout() string {
	if m.TimeoutMs <= 0 {
		return fmt.Sprintf("%dms", Defaults().Mirror.TimeoutMs)
	}
	return fmt.Sprintf("%dms", m.TimeoutMs)
}
