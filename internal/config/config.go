package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mkdev-labs/mkdev/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyEditor    = "editor"
	KeyBaseName  = "base_name"
	KeyRecipe    = "recipe"
	KeyLogFormat = "log_format"
)

// Keys lists every known setting in display order.
var Keys = []string{KeyEditor, KeyBaseName, KeyRecipe, KeyLogFormat}

var defaultValues = map[string]string{
	KeyEditor:    "code",
	KeyBaseName:  "main",
	KeyRecipe:    "default",
	KeyLogFormat: "text",
}

var (
	ErrUnknownKey   = errors.New("unknown setting")
	ErrInvalidValue = errors.New("invalid setting value")
)

// Settings is the loaded settings file layered over defaults and
// environment variables.
type Settings struct {
	v    *viper.Viper
	root string
}

// FilePath returns the settings file inside root.
func FilePath(root string) string {
	return filepath.Join(root, fileName+"."+fileType)
}

// Load initializes Viper to read from root's settings file and the
// environment. A missing file is not an error.
func Load(root string) (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(FilePath(root))
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()
	for key, value := range defaultValues {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", FilePath(root), err)
		}
	}
	return &Settings{v: v, root: root}, nil
}

// Get returns a setting by key.
func (s *Settings) Get(key string) (string, error) {
	if !slices.Contains(Keys, key) {
		return "", fmt.Errorf("%w %q (known: %s)", ErrUnknownKey, key, strings.Join(Keys, ", "))
	}
	return s.v.GetString(key), nil
}

// Set validates and writes a key-value pair, then saves the settings file.
func (s *Settings) Set(key, value string) error {
	if !slices.Contains(Keys, key) {
		return fmt.Errorf("%w %q (known: %s)", ErrUnknownKey, key, strings.Join(Keys, ", "))
	}
	if err := validate(key, value); err != nil {
		return err
	}

	if err := os.MkdirAll(s.root, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", s.root, err)
	}

	// Write through a file-only instance so defaults and environment
	// overrides never end up on disk.
	configFile := FilePath(s.root)
	fileV := viper.New()
	fileV.SetConfigFile(configFile)
	fileV.SetConfigType(fileType)
	if err := fileV.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("reading %s: %w", configFile, err)
		}
	}
	fileV.Set(key, value)
	if err := fileV.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	s.v.Set(key, value)
	return nil
}

func validate(key, value string) error {
	switch key {
	case KeyLogFormat:
		if value != "text" && value != "json" {
			return fmt.Errorf("%w for %s: %q (want text or json)", ErrInvalidValue, key, value)
		}
	case KeyBaseName, KeyRecipe:
		if value == "" || strings.ContainsAny(value, `/\`) {
			return fmt.Errorf("%w for %s: %q", ErrInvalidValue, key, value)
		}
	}
	return nil
}

// Editor returns the command used to open a finished build.
func (s *Settings) Editor() string { return s.v.GetString(KeyEditor) }

// BaseName returns the default base file name for renameable templates.
func (s *Settings) BaseName() string { return s.v.GetString(KeyBaseName) }

// Recipe returns the recipe used when none is named.
func (s *Settings) Recipe() string { return s.v.GetString(KeyRecipe) }

// LogFormat returns "text" or "json".
func (s *Settings) LogFormat() string { return s.v.GetString(KeyLogFormat) }
