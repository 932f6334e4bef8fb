package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/viper"

	"github.com/lt-rawlins/AppImage-Install/internal/branding"
	"github.com/lt-rawlins/AppImage-Install/internal/desktop"
	"github.com/lt-rawlins/AppImage-Install/internal/launcher"
	"github.com/lt-rawlins/AppImage-Install/internal/layout"
	"github.com/lt-rawlins/AppImage-Install/internal/logging"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyDefaultCategories = "default_categories"
	KeyLauncherSuffix    = "launcher_suffix"
	KeyCompatFlag        = "compat_flag"
	KeyFuseLibrary       = "fuse_library"
	KeyExtractEnv        = "extract_env"
	KeyLogLevel          = "log_level"
)

// Keys lists every recognized setting.
var Keys = []string{
	KeyDefaultCategories,
	KeyLauncherSuffix,
	KeyCompatFlag,
	KeyFuseLibrary,
	KeyExtractEnv,
	KeyLogLevel,
}

// Settings is a snapshot of the effective configuration.
type Settings struct {
	DefaultCategories string
	LauncherSuffix    string
	CompatFlag        string
	FuseLibrary       string
	ExtractEnv        string
	LogLevel          string
}

// Dir returns the path to the config directory (~/.appimage-install/).
func Dir() string {
	dir, err := layout.GetStateDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return dir
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// setDefaults registers the built-in values.
func setDefaults() {
	viper.SetDefault(KeyDefaultCategories, desktop.DefaultCategories)
	viper.SetDefault(KeyLauncherSuffix, launcher.DefaultSuffix)
	viper.SetDefault(KeyCompatFlag, launcher.DefaultCompatFlag)
	viper.SetDefault(KeyFuseLibrary, launcher.DefaultFuseLibrary)
	viper.SetDefault(KeyExtractEnv, launcher.DefaultExtractEnv)
	viper.SetDefault(KeyLogLevel, logging.INFO)
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	setDefaults()
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Current returns the effective settings.
func Current() Settings {
	return Settings{
		DefaultCategories: viper.GetString(KeyDefaultCategories),
		LauncherSuffix:    viper.GetString(KeyLauncherSuffix),
		CompatFlag:        viper.GetString(KeyCompatFlag),
		FuseLibrary:       viper.GetString(KeyFuseLibrary),
		ExtractEnv:        viper.GetString(KeyExtractEnv),
		LogLevel:          viper.GetString(KeyLogLevel),
	}
}

// IsKnown reports whether key is a recognized setting.
func IsKnown(key string) bool {
	return slices.Contains(Keys, key)
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !IsKnown(key) {
		return fmt.Errorf("unknown setting %q (known: %v)", key, Keys)
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
