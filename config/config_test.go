package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadConfigDerivesPaths(t *testing.T) {
	viper.Reset()
	tmpDir := t.TempDir()
	gameDir := filepath.Join(tmpDir, "MarvelRivals")
	appData := filepath.Join(tmpDir, "appdata")

	t.Setenv("GAME_DIRECTORY", gameDir)
	t.Setenv("APP_DATA_DIR", appData)

	cfg, err := LoadConfig(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	wantMods := filepath.Join(gameDir, "MarvelGame", "Marvel", "Content", "Paks", "~mods")
	if cfg.ModsDir != wantMods {
		t.Errorf("ModsDir = %q, want %q", cfg.ModsDir, wantMods)
	}
	if cfg.MetadataDir != filepath.Join(appData, "metadata") {
		t.Errorf("MetadataDir = %q, want under app data", cfg.MetadataDir)
	}
	if cfg.DisabledModsDir != filepath.Join(appData, "metadata", "disabled-mods") {
		t.Errorf("DisabledModsDir = %q", cfg.DisabledModsDir)
	}
	if cfg.ThumbnailsDir != filepath.Join(appData, "thumbnails") {
		t.Errorf("ThumbnailsDir = %q", cfg.ThumbnailsDir)
	}

	// All working directories should have been created
	for _, dir := range []string{cfg.ModsDir, cfg.MetadataDir, cfg.DisabledModsDir, cfg.ThumbnailsDir} {
		if _, err := os.Stat(dir); err != nil {
			t.Errorf("expected directory %q to exist: %v", dir, err)
		}
	}

	if !cfg.AutoOrganize {
		t.Error("AutoOrganize should default to true")
	}
}

func TestLoadConfigRequiresGameDirectory(t *testing.T) {
	viper.Reset()
	tmpDir := t.TempDir()
	t.Setenv("GAME_DIRECTORY", "")
	t.Setenv("APP_DATA_DIR", filepath.Join(tmpDir, "appdata"))

	if _, err := LoadConfig(tmpDir); err == nil {
		t.Fatal("LoadConfig() should fail when GAME_DIRECTORY is unset")
	}
}

func TestLoadConfigAutoOrganizeParsing(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"false", false},
		{"true", true},
		{"not-a-bool", true}, // invalid values fall back to the default
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			viper.Reset()
			tmpDir := t.TempDir()
			t.Setenv("GAME_DIRECTORY", filepath.Join(tmpDir, "game"))
			t.Setenv("APP_DATA_DIR", filepath.Join(tmpDir, "appdata"))
			t.Setenv("AUTO_ORGANIZE", tt.value)

			cfg, err := LoadConfig(tmpDir)
			if err != nil {
				t.Fatalf("LoadConfig() failed: %v", err)
			}
			if cfg.AutoOrganize != tt.want {
				t.Errorf("AutoOrganize = %v, want %v", cfg.AutoOrganize, tt.want)
			}
		})
	}
}
