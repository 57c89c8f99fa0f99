package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// clearEnv blanks every config key so the ambient environment cannot
// leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"LISTEN_ADDR", "UI_PASSWORD", "DATA_DIR", "PROFILES_PATH",
		"MONITOR_INDEX", "PREVIEW_ENABLED", "PREVIEW_SIZE",
		"PREVIEW_INTERVAL_MS", "PREVIEW_QUALITY", "VIEWER_POLICY",
		"DRIVE_GAIN", "KEY_LAYOUT",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}
}

// TestLoad_Defaults verifies that only a password is required and every
// other value falls back to its default.
func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("UI_PASSWORD", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected load to succeed, got %v", err)
	}
	if cfg.ListenAddr != "0.0.0.0:8732" {
		t.Fatalf("expected default listen addr, got %q", cfg.ListenAddr)
	}
	if cfg.UIPassword != "secret" {
		t.Fatalf("expected password from env, got %q", cfg.UIPassword)
	}
	if cfg.ProfilesPath != filepath.Join("data", "profiles.yaml") {
		t.Fatalf("expected profiles path under data dir, got %q", cfg.ProfilesPath)
	}
	if cfg.MonitorIndex != 0 {
		t.Fatalf("expected monitor auto-pick, got %d", cfg.MonitorIndex)
	}
	if !cfg.PreviewEnabled || cfg.PreviewSize != 240 || cfg.PreviewIntervalMs != 66 || cfg.PreviewQuality != 60 {
		t.Fatalf("expected preview defaults, got %#v", cfg)
	}
	if cfg.ViewerPolicy != "reject" || cfg.KeyLayout != "arrows" {
		t.Fatalf("expected policy defaults, got %#v", cfg)
	}
	if cfg.DriveGain != 14.0 {
		t.Fatalf("expected default drive gain, got %v", cfg.DriveGain)
	}
}

// TestLoad_RequiresPassword verifies that a blank UI_PASSWORD is an error.
func TestLoad_RequiresPassword(t *testing.T) {
	clearEnv(t)
	t.Setenv("UI_PASSWORD", "   ")

	if _, err := Load(); err == nil {
		t.Fatalf("expected missing password error, got nil")
	}
}

// TestLoad_RejectsOutOfRange verifies the numeric validation bounds.
func TestLoad_RejectsOutOfRange(t *testing.T) {
	cases := []struct {
		key   string
		value string
	}{
		{"MONITOR_INDEX", "-1"},
		{"PREVIEW_SIZE", "32"},
		{"PREVIEW_SIZE", "2048"},
		{"PREVIEW_INTERVAL_MS", "0"},
		{"PREVIEW_QUALITY", "0"},
		{"PREVIEW_QUALITY", "101"},
		{"DRIVE_GAIN", "0.5"},
		{"DRIVE_GAIN", "250"},
		{"PREVIEW_SIZE", "huge"},
		{"DRIVE_GAIN", "fast"},
	}
	for _, tc := range cases {
		clearEnv(t)
		t.Setenv("UI_PASSWORD", "secret")
		t.Setenv(tc.key, tc.value)

		if _, err := Load(); err == nil {
			t.Fatalf("expected %s=%s to be rejected, got nil error", tc.key, tc.value)
		} else if !strings.Contains(err.Error(), tc.key) {
			t.Fatalf("expected error to name %s, got %v", tc.key, err)
		}
	}
}

// TestLoad_NormalizesEnums verifies that unsupported enum values fall
// back silently instead of failing the load.
func TestLoad_NormalizesEnums(t *testing.T) {
	clearEnv(t)
	t.Setenv("UI_PASSWORD", "secret")
	t.Setenv("VIEWER_POLICY", " Replace ")
	t.Setenv("KEY_LAYOUT", "WASD")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected load to succeed, got %v", err)
	}
	if cfg.ViewerPolicy != "replace" {
		t.Fatalf("expected normalized viewer policy, got %q", cfg.ViewerPolicy)
	}
	if cfg.KeyLayout != "wasd" {
		t.Fatalf("expected normalized key layout, got %q", cfg.KeyLayout)
	}

	t.Setenv("VIEWER_POLICY", "banish")
	t.Setenv("KEY_LAYOUT", "dvorak")

	cfg, err = Load()
	if err != nil {
		t.Fatalf("expected load to succeed, got %v", err)
	}
	if cfg.ViewerPolicy != "reject" {
		t.Fatalf("expected fallback viewer policy, got %q", cfg.ViewerPolicy)
	}
	if cfg.KeyLayout != "arrows" {
		t.Fatalf("expected fallback key layout, got %q", cfg.KeyLayout)
	}
}

// TestLoad_ProfilesPathFollowsDataDir verifies that PROFILES_PATH
// defaults under DATA_DIR but an explicit override wins.
func TestLoad_ProfilesPathFollowsDataDir(t *testing.T) {
	clearEnv(t)
	t.Setenv("UI_PASSWORD", "secret")
	t.Setenv("DATA_DIR", "/srv/touchstick")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected load to succeed, got %v", err)
	}
	if cfg.ProfilesPath != filepath.Join("/srv/touchstick", "profiles.yaml") {
		t.Fatalf("expected profiles path under data dir, got %q", cfg.ProfilesPath)
	}

	t.Setenv("PROFILES_PATH", "/etc/touchstick/presets.yaml")

	cfg, err = Load()
	if err != nil {
		t.Fatalf("expected load to succeed, got %v", err)
	}
	if cfg.ProfilesPath != "/etc/touchstick/presets.yaml" {
		t.Fatalf("expected explicit profiles path, got %q", cfg.ProfilesPath)
	}
}

// TestLoadEnvFile_DoesNotOverrideExisting verifies the .env loader only
// fills keys absent from the environment.
func TestLoadEnvFile_DoesNotOverrideExisting(t *testing.T) {
	const fileKey = "TOUCHSTICK_TEST_FROM_FILE"
	const envKey = "TOUCHSTICK_TEST_FROM_ENV"

	path := filepath.Join(t.TempDir(), ".env")
	content := "# comment line\n" +
		fileKey + " = from-file\n" +
		"export " + envKey + "=\"from-file\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	defer os.Unsetenv(fileKey)
	t.Setenv(envKey, "from-env")

	if err := loadEnvFile(path); err != nil {
		t.Fatalf("expected load to succeed, got %v", err)
	}
	if got := os.Getenv(fileKey); got != "from-file" {
		t.Fatalf("expected file value, got %q", got)
	}
	if got := os.Getenv(envKey); got != "from-env" {
		t.Fatalf("expected env value to survive, got %q", got)
	}
}

// TestLoadEnvFile_MissingFile verifies a missing .env file is not an error.
func TestLoadEnvFile_MissingFile(t *testing.T) {
	if err := loadEnvFile(filepath.Join(t.TempDir(), "nope", ".env")); err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
}

// TestParseEnvLine covers the accepted .env line shapes.
func TestParseEnvLine(t *testing.T) {
	cases := []struct {
		line  string
		key   string
		value string
		ok    bool
	}{
		{"KEY=value", "KEY", "value", true},
		{"  KEY = value  ", "KEY", "value", true},
		{`KEY="quoted"`, "KEY", "quoted", true},
		{"export KEY=value", "KEY", "value", true},
		{"KEY=", "KEY", "", true},
		{"KEY=a=b", "KEY", "a=b", true},
		{"# comment", "", "", false},
		{"", "", "", false},
		{"not a pair", "", "", false},
		{"=value", "", "", false},
	}
	for _, tc := range cases {
		key, value, ok := parseEnvLine(tc.line)
		if ok != tc.ok || key != tc.key || value != tc.value {
			t.Fatalf("parseEnvLine(%q) = %q, %q, %v; expected %q, %q, %v",
				tc.line, key, value, ok, tc.key, tc.value, tc.ok)
		}
	}
}
