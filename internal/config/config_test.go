package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Gemini.Model != "gemini-2.0-flash" {
		t.Fatalf("unexpected model %q", cfg.Gemini.Model)
	}
	if cfg.Gemini.MaxOutputTokens != 1024 || cfg.Gemini.TopK != 40 {
		t.Fatalf("unexpected generation defaults: %+v", cfg.Gemini)
	}
	if cfg.Gemini.Temperature < 0.19 || cfg.Gemini.Temperature > 0.21 {
		t.Fatalf("unexpected temperature %v", cfg.Gemini.Temperature)
	}
	if cfg.Database.Driver != "sqlite" || cfg.GetDatabaseDSN() != "data/resume_ranker.db" {
		t.Fatalf("unexpected database defaults: %+v", cfg.Database)
	}
	if cfg.Storage.ReportsPath != "./reports" {
		t.Fatalf("unexpected reports path %q", cfg.Storage.ReportsPath)
	}
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("GEMINI_MODEL", "gemini-test")
	t.Setenv("GEMINI_TOP_K", "20")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_NAME", "ranker")
	t.Setenv("LOG_JSON", "true")

	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Fatalf("expected port 8080, got %q", cfg.Server.Port)
	}
	if cfg.Gemini.Model != "gemini-test" || cfg.Gemini.TopK != 20 {
		t.Fatalf("unexpected gemini config: %+v", cfg.Gemini)
	}
	if !cfg.Log.JSON {
		t.Fatal("expected json logging")
	}

	want := "host=localhost port=5432 user=postgres password=postgres dbname=ranker sslmode=disable"
	if got := cfg.GetDatabaseDSN(); got != want {
		t.Fatalf("unexpected dsn %q", got)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ranker.yaml")
	content := "storage:\n  reports_path: /tmp/out\ngemini:\n  temperature: 0.5\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(viper.New(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.ReportsPath != "/tmp/out" {
		t.Fatalf("unexpected reports path %q", cfg.Storage.ReportsPath)
	}
	if cfg.Gemini.Temperature != 0.5 {
		t.Fatalf("unexpected temperature %v", cfg.Gemini.Temperature)
	}
}

func TestResolveAPIKey(t *testing.T) {
	cfg := &Config{Gemini: GeminiConfig{APIKey: " key "}}
	key, err := cfg.ResolveAPIKey()
	if err != nil || key != "key" {
		t.Fatalf("unexpected key %q err %v", key, err)
	}

	if _, err := (&Config{}).ResolveAPIKey(); err == nil {
		t.Fatal("expected error without key")
	}
}
