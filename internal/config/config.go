// Package config loads environment configuration for touchstick.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	defaultListenAddr        = "0.0.0.0:8732"
	defaultDataDir           = "./data"
	defaultMonitorIdx        = 0
	defaultPreviewEnabled    = true
	defaultPreviewSize       = 240
	defaultPreviewIntervalMs = 66
	defaultPreviewQuality    = 60
	defaultViewerPolicy      = "reject"
	defaultDriveGain         = 14.0
	defaultKeyLayout         = "arrows"
)

// Config holds runtime configuration values.
type Config struct {
	ListenAddr        string
	UIPassword        string
	DataDir           string
	ProfilesPath      string
	MonitorIndex      int
	PreviewEnabled    bool
	PreviewSize       int
	PreviewIntervalMs int
	PreviewQuality    int
	ViewerPolicy      string
	DriveGain         float64
	KeyLayout         string
}

// Load reads configuration from ./data/.env and environment variables.
func Load() (Config, error) {
	cfg := Config{
		ListenAddr:        defaultListenAddr,
		DataDir:           defaultDataDir,
		ProfilesPath:      filepath.Join(defaultDataDir, "profiles.yaml"),
		MonitorIndex:      defaultMonitorIdx,
		PreviewEnabled:    defaultPreviewEnabled,
		PreviewSize:       defaultPreviewSize,
		PreviewIntervalMs: defaultPreviewIntervalMs,
		PreviewQuality:    defaultPreviewQuality,
		ViewerPolicy:      defaultViewerPolicy,
		DriveGain:         defaultDriveGain,
		KeyLayout:         defaultKeyLayout,
	}

	if err := loadEnvFile(filepath.Join(cfg.DataDir, ".env")); err != nil {
		return Config{}, err
	}

	cfg.ListenAddr = envString("LISTEN_ADDR", cfg.ListenAddr)
	cfg.DataDir = envString("DATA_DIR", cfg.DataDir)
	cfg.ProfilesPath = envString("PROFILES_PATH", filepath.Join(cfg.DataDir, "profiles.yaml"))
	cfg.ViewerPolicy = normalizeViewerPolicy(envString("VIEWER_POLICY", cfg.ViewerPolicy))
	cfg.KeyLayout = normalizeKeyLayout(envString("KEY_LAYOUT", cfg.KeyLayout))
	cfg.UIPassword = strings.TrimSpace(os.Getenv("UI_PASSWORD"))

	monitorIdx, err := envInt("MONITOR_INDEX", cfg.MonitorIndex)
	if err != nil {
		return Config{}, err
	}
	if monitorIdx < 0 {
		return Config{}, fmt.Errorf("MONITOR_INDEX must be >= 0")
	}
	cfg.MonitorIndex = monitorIdx

	cfg.PreviewEnabled = envBool("PREVIEW_ENABLED", cfg.PreviewEnabled)

	previewSize, err := envInt("PREVIEW_SIZE", cfg.PreviewSize)
	if err != nil {
		return Config{}, err
	}
	if previewSize < 64 || previewSize > 1024 {
		return Config{}, fmt.Errorf("PREVIEW_SIZE must be 64-1024")
	}
	cfg.PreviewSize = previewSize

	previewInterval, err := envInt("PREVIEW_INTERVAL_MS", cfg.PreviewIntervalMs)
	if err != nil {
		return Config{}, err
	}
	if previewInterval <= 0 {
		return Config{}, fmt.Errorf("PREVIEW_INTERVAL_MS must be > 0")
	}
	cfg.PreviewIntervalMs = previewInterval

	previewQuality, err := envInt("PREVIEW_QUALITY", cfg.PreviewQuality)
	if err != nil {
		return Config{}, err
	}
	if previewQuality <= 0 || previewQuality > 100 {
		return Config{}, fmt.Errorf("PREVIEW_QUALITY must be 1-100")
	}
	cfg.PreviewQuality = previewQuality

	driveGain, err := envFloat("DRIVE_GAIN", cfg.DriveGain)
	if err != nil {
		return Config{}, err
	}
	if driveGain < 1 || driveGain > 100 {
		return Config{}, fmt.Errorf("DRIVE_GAIN must be 1-100")
	}
	cfg.DriveGain = driveGain

	if cfg.UIPassword == "" {
		return Config{}, errors.New("UI_PASSWORD is required")
	}

	return cfg, nil
}

// normalizeViewerPolicy ensures a supported signaling takeover policy.
func normalizeViewerPolicy(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "replace":
		return "replace"
	default:
		return "reject"
	}
}

// normalizeKeyLayout ensures a supported keys-mode layout.
func normalizeKeyLayout(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "wasd":
		return "wasd"
	default:
		return "arrows"
	}
}

// envString returns an env override when present, otherwise a default.
func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envInt returns an int env override when present, otherwise a default.
func envInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

// envFloat returns a float env override when present, otherwise a default.
func envFloat(key string, def float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return value, nil
}

// envBool returns a bool env override when present, otherwise a default.
func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

// loadEnvFile loads KEY=VALUE pairs from a .env file.
func loadEnvFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(key); !exists {
			if err := os.Setenv(key, value); err != nil {
				return err
			}
		}
	}

	return nil
}

// parseEnvLine parses a single .env line into key/value.
func parseEnvLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	if strings.HasPrefix(line, "export ") {
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
	}
	parts := strings.SplitN(line, "=", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", false
	}
	value = strings.Trim(value, `"'`)
	return key, value, true
}
