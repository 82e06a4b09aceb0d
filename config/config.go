package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Values are loaded by Viper from a config file and/or environment variables.
type Config struct {
	GameDirectory string `mapstructure:"GAME_DIRECTORY"`
	AppDataDir    string `mapstructure:"APP_DATA_DIR"`
	AutoOrganize  bool   `mapstructure:"AUTO_ORGANIZE"`
	NexusAPIKey   string `mapstructure:"NEXUS_API_KEY"`

	// Derived paths, not loaded from env
	ModsDir         string `mapstructure:"-"`
	DisabledModsDir string `mapstructure:"-"`
	MetadataDir     string `mapstructure:"-"`
	ThumbnailsDir   string `mapstructure:"-"`
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)   // Path to look for the config file in
	viper.SetConfigName(".env") // Name of config file (without extension)
	viper.SetConfigType("env")  // REQUIRED if the config file does not have the extension in the name

	vipErr := viper.ReadInConfig()
	if _, ok := vipErr.(viper.ConfigFileNotFoundError); ok {
		slog.Info("Config file (.env) not found, relying on environment variables.")
	} else if vipErr != nil {
		return Config{}, fmt.Errorf("fatal error config file: %w", vipErr)
	}

	// Bind environment variables automatically.
	viper.AutomaticEnv()

	for key, env := range map[string]string{
		"game_directory": "GAME_DIRECTORY",
		"app_data_dir":   "APP_DATA_DIR",
		"auto_organize":  "AUTO_ORGANIZE",
		"nexus_api_key":  "NEXUS_API_KEY",
	} {
		if bindErr := viper.BindEnv(key, env); bindErr != nil {
			slog.Warn("Unable to bind env var", "name", env, "error", bindErr)
		}
	}

	// Unmarshal the config
	if vipErr = viper.Unmarshal(&config); vipErr != nil {
		return Config{}, fmt.Errorf("unable to decode into struct, %w", vipErr)
	}

	// --- Post-unmarshal processing and defaults ---

	// Default AUTO_ORGANIZE to true unless explicitly disabled
	// (Viper doesn't handle bool defaults from env well without explicit SetDefault)
	autoOrganizeStr := viper.GetString("AUTO_ORGANIZE")
	if autoOrganizeStr == "" {
		config.AutoOrganize = true
	} else {
		autoOrganize, parseErr := strconv.ParseBool(autoOrganizeStr)
		if parseErr != nil {
			slog.Warn("Invalid value for AUTO_ORGANIZE, defaulting to true", "value", autoOrganizeStr, "error", parseErr)
			config.AutoOrganize = true
		} else {
			config.AutoOrganize = autoOrganize
		}
	}

	// Validate GameDirectory - needs to be set
	if config.GameDirectory == "" {
		slog.Error("GAME_DIRECTORY is not set")
		return Config{}, fmt.Errorf("GAME_DIRECTORY is required")
	}

	// Default the app data directory to the user config dir
	if config.AppDataDir == "" {
		userConfigDir, dirErr := os.UserConfigDir()
		if dirErr != nil {
			return Config{}, fmt.Errorf("APP_DATA_DIR not set and user config dir unavailable: %w", dirErr)
		}
		config.AppDataDir = filepath.Join(userConfigDir, "rivals-mod-manager")
	}

	// Derive the directory layout the engine works against.
	// Mods live inside the game install; everything else lives in app data.
	config.ModsDir = filepath.Join(config.GameDirectory,
		"MarvelGame", "Marvel", "Content", "Paks", "~mods")
	config.MetadataDir = filepath.Join(config.AppDataDir, "metadata")
	config.DisabledModsDir = filepath.Join(config.MetadataDir, "disabled-mods")
	config.ThumbnailsDir = filepath.Join(config.AppDataDir, "thumbnails")

	// Ensure all working directories exist, creating them if needed
	for _, dir := range []string{config.ModsDir, config.MetadataDir, config.DisabledModsDir, config.ThumbnailsDir} {
		if _, statErr := os.Stat(dir); os.IsNotExist(statErr) {
			slog.Info("Directory does not exist, creating it", "path", dir)
			if mkErr := os.MkdirAll(dir, 0755); mkErr != nil {
				slog.Error("Failed to create directory", "path", dir, "error", mkErr)
				return Config{}, mkErr
			}
		} else if statErr != nil {
			slog.Error("Failed to check directory", "path", dir, "error", statErr)
			return Config{}, statErr
		}
	}

	return config, nil
}
