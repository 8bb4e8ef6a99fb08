package feed

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigCacheLoadValidConfig(t *testing.T) {
	tempDir := t.TempDir()

	content := `
url: "https://example.com/feed.xml"

settings:
  enabled: true
  refresh_interval: 1800
  timeout: 15
  fetch_on_startup: true
  extract_content: true
  backlink: "RSS Imports"
  category_backlinks: true
`

	err := os.WriteFile(filepath.Join(tempDir, "test.yml"), []byte(content), 0644)
	if err != nil {
		t.Fatal(err)
	}

	configCache := NewConfigCache(tempDir)
	err = configCache.Run()
	if err != nil {
		t.Fatal(err)
	}

	if configCache.GetConfigCount() != 1 {
		t.Errorf("Expected 1 config, got %d", configCache.GetConfigCount())
	}

	config, err := configCache.GetConfig("test")
	if err != nil {
		t.Fatal(err)
	}

	if config.Name != "test" {
		t.Errorf("Expected name 'test', got '%s'", config.Name)
	}
	if config.URL != "https://example.com/feed.xml" {
		t.Errorf("Expected URL 'https://example.com/feed.xml', got '%s'", config.URL)
	}
	if config.Settings.GetRefreshInterval() != 1800*time.Second {
		t.Errorf("Expected refresh interval 1800s, got %v", config.Settings.GetRefreshInterval())
	}
	if config.Settings.GetTimeout() != 15*time.Second {
		t.Errorf("Expected timeout 15s, got %v", config.Settings.GetTimeout())
	}
	if !config.Settings.FetchOnStartup {
		t.Error("Expected fetch_on_startup to be enabled")
	}
	if !config.Settings.ExtractContent {
		t.Error("Expected extract_content to be enabled")
	}
	if config.Settings.Backlink != "RSS Imports" {
		t.Errorf("Expected backlink 'RSS Imports', got '%s'", config.Settings.Backlink)
	}
	if !config.Settings.CategoryBacklinks {
		t.Error("Expected category_backlinks to be enabled")
	}
}

func TestConfigCacheDefaults(t *testing.T) {
	tempDir := t.TempDir()

	content := `
url: "https://example.com/feed.xml"

settings:
  enabled: true
`

	err := os.WriteFile(filepath.Join(tempDir, "test.yml"), []byte(content), 0644)
	if err != nil {
		t.Fatal(err)
	}

	configCache := NewConfigCache(tempDir)
	if err := configCache.Run(); err != nil {
		t.Fatal(err)
	}

	config, err := configCache.GetConfig("test")
	if err != nil {
		t.Fatal(err)
	}

	if config.Settings.GetTimeout() != 30*time.Second {
		t.Errorf("Expected default timeout 30s, got %v", config.Settings.GetTimeout())
	}
	if config.Settings.GetRefreshInterval() != 0 {
		t.Errorf("Expected no refresh interval by default, got %v", config.Settings.GetRefreshInterval())
	}
	if config.Settings.ExtractContent {
		t.Error("Expected extract_content to be disabled by default")
	}
}

func TestConfigCacheMissingURL(t *testing.T) {
	tempDir := t.TempDir()

	content := `
settings:
  enabled: true
`

	err := os.WriteFile(filepath.Join(tempDir, "test.yml"), []byte(content), 0644)
	if err != nil {
		t.Fatal(err)
	}

	configCache := NewConfigCache(tempDir)
	if err := configCache.Run(); err == nil {
		t.Error("Expected error for config without URL")
	}
}

func TestConfigCacheMissingDirectory(t *testing.T) {
	configCache := NewConfigCache("/nonexistent/path")

	if err := configCache.Run(); err != nil {
		t.Errorf("Missing directory should not be an error, got: %v", err)
	}
	if configCache.GetConfigCount() != 0 {
		t.Errorf("Expected 0 configs, got %d", configCache.GetConfigCount())
	}
}

func TestConfigCacheEnabledConfigs(t *testing.T) {
	tempDir := t.TempDir()

	enabled := `
url: "https://example.com/a.xml"
settings:
  enabled: true
`
	disabled := `
url: "https://example.com/b.xml"
settings:
  enabled: false
`

	if err := os.WriteFile(filepath.Join(tempDir, "a.yml"), []byte(enabled), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tempDir, "b.yml"), []byte(disabled), 0644); err != nil {
		t.Fatal(err)
	}

	configCache := NewConfigCache(tempDir)
	if err := configCache.Run(); err != nil {
		t.Fatal(err)
	}

	if configCache.GetConfigCount() != 2 {
		t.Errorf("Expected 2 configs, got %d", configCache.GetConfigCount())
	}
	if len(configCache.GetEnabledConfigs()) != 1 {
		t.Errorf("Expected 1 enabled config, got %d", len(configCache.GetEnabledConfigs()))
	}
}
