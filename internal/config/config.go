// Package config manages application configuration from various sources.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// TUIConfig defines the configuration for the Terminal User Interface.
type TUIConfig struct {
	Theme       string         `json:"theme,omitempty"`
	CustomTheme map[string]any `json:"customTheme,omitempty"`
}

// LinksConfig names the identifiers the linking page starts with.
type LinksConfig struct {
	FormID   string `json:"formId,omitempty"`
	ButtonID string `json:"buttonId,omitempty"`
	// File, when set, is a JSON link file watched for live rebinding.
	File string `json:"file,omitempty"`
}

// RegistryConfig tunes the component link registry.
type RegistryConfig struct {
	Dedup      bool          `json:"dedup,omitempty"`
	EvictAfter time.Duration `json:"evictAfter,omitempty"`
}

// Config is the main configuration structure for the application.
type Config struct {
	WorkingDir string         `json:"wd,omitempty"`
	Debug      bool           `json:"debug,omitempty"`
	TUI        TUIConfig      `json:"tui"`
	Links      LinksConfig    `json:"links"`
	Registry   RegistryConfig `json:"registry"`
}

const (
	appName         = "widgetlink"
	defaultTheme    = "catppuccin"
	defaultFormID   = "my-form-123"
	defaultButtonID = "my-button-456"
)

var cfg *Config

// Load initializes the configuration from environment variables and config
// files. If debug is true, debug mode is enabled. lvl, when non-nil, is set
// to the resulting log level.
func Load(workingDir string, debug bool, lvl *slog.LevelVar) (*Config, error) {
	if cfg != nil {
		return cfg, nil
	}

	cfg = &Config{
		WorkingDir: workingDir,
	}

	configureViper()
	setDefaults(debug)

	if err := readConfig(viper.ReadInConfig()); err != nil {
		return cfg, err
	}

	mergeLocalConfig(workingDir)

	if err := viper.Unmarshal(cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.WorkingDir = workingDir

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	if lvl != nil {
		lvl.Set(level)
	}

	if err := Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func configureViper() {
	viper.SetConfigName(fmt.Sprintf(".%s", appName))
	viper.SetConfigType("json")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(fmt.Sprintf("$XDG_CONFIG_HOME/%s", appName))
	viper.AddConfigPath(fmt.Sprintf("$HOME/.config/%s", appName))
	viper.SetEnvPrefix(strings.ToUpper(appName))
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

func setDefaults(debug bool) {
	viper.SetDefault("tui.theme", defaultTheme)
	viper.SetDefault("links.formId", defaultFormID)
	viper.SetDefault("links.buttonId", defaultButtonID)
	viper.SetDefault("links.file", "")
	viper.SetDefault("registry.dedup", false)
	viper.SetDefault("registry.evictAfter", "0s")

	if debug {
		viper.Set("debug", true)
	} else {
		viper.SetDefault("debug", false)
	}
}

func readConfig(err error) error {
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}

	return fmt.Errorf("failed to read config: %w", err)
}

// mergeLocalConfig merges a config file from the working directory over the
// global one.
func mergeLocalConfig(workingDir string) {
	local := viper.New()
	local.SetConfigName(fmt.Sprintf(".%s", appName))
	local.SetConfigType("json")
	local.AddConfigPath(workingDir)

	if err := local.ReadInConfig(); err == nil {
		if err := viper.MergeConfigMap(local.AllSettings()); err != nil {
			slog.Warn("failed to merge local config", "error", err)
		}
	}
}

// Validate checks the loaded configuration and normalizes paths.
func Validate() error {
	if cfg == nil {
		return fmt.Errorf("config not loaded")
	}
	if cfg.Registry.EvictAfter < 0 {
		return fmt.Errorf("registry.evictAfter must not be negative, got %s", cfg.Registry.EvictAfter)
	}
	if cfg.TUI.Theme == "" {
		cfg.TUI.Theme = defaultTheme
	}
	if cfg.Links.File != "" && !filepath.IsAbs(cfg.Links.File) {
		cfg.Links.File = filepath.Join(cfg.WorkingDir, cfg.Links.File)
	}
	return nil
}

// Get returns the current configuration, or nil before Load.
func Get() *Config {
	return cfg
}

// WorkingDirectory returns the current working directory from the configuration.
func WorkingDirectory() string {
	if cfg == nil {
		panic("config not loaded")
	}
	return cfg.WorkingDir
}

func reset() {
	cfg = nil
	viper.Reset()
}

// updateCfgFile applies update to the raw JSON of the active config file,
// creating ~/.widgetlink.json when no file was read.
func updateCfgFile(update func(raw map[string]any)) error {
	configFile := viper.ConfigFileUsed()
	raw := map[string]any{}
	if configFile == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		configFile = filepath.Join(homeDir, fmt.Sprintf(".%s.json", appName))
		slog.Info("config file not found, creating new one", "path", configFile)
	} else {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	update(raw)

	updated, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(configFile, updated, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// UpdateTheme sets the theme in memory and persists it to the config file.
func UpdateTheme(themeName string) error {
	if cfg == nil {
		return fmt.Errorf("config not loaded")
	}

	cfg.TUI.Theme = themeName

	return updateCfgFile(func(raw map[string]any) {
		tui, _ := raw["tui"].(map[string]any)
		if tui == nil {
			tui = map[string]any{}
		}
		tui["theme"] = themeName
		raw["tui"] = tui
	})
}
