package userdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mkdev-labs/mkdev/internal/branding"
)

// Directory and file names inside the configuration root.
const (
	LangsDir     = "langs"
	TemplatesDir = "templates"
	SettingsFile = "config.yaml"
)

// Permission constants.
const (
	DirPermNormal  os.FileMode = 0755
	FilePermNormal os.FileMode = 0644
)

// GetConfigRoot returns the configuration root.
// It checks the MKDEV_CONFIG_DIR environment variable first,
// then falls back to <user config dir>/mkdev.
func GetConfigRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("CONFIG_DIR")); v != "" {
		return v, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config directory: %w", err)
	}
	return filepath.Join(base, branding.ConfigDirName()), nil
}

// ResolveConfigRoot returns override when it is non-empty and
// GetConfigRoot otherwise.
func ResolveConfigRoot(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	return GetConfigRoot()
}

// LangsPath returns the langs/ directory under root.
func LangsPath(root string) string { return filepath.Join(root, LangsDir) }

// TemplatesPath returns the template directory of one language under root.
func TemplatesPath(root, language string) string {
	return filepath.Join(root, TemplatesDir, language)
}

// SettingsPath returns the settings file under root.
func SettingsPath(root string) string { return filepath.Join(root, SettingsFile) }
