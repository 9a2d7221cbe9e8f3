package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Environment != "development" {
		t.Errorf("Server.Environment = %q, want development", cfg.Server.Environment)
	}
	if cfg.SerpAPI.BaseURL != "https://serpapi.com" {
		t.Errorf("SerpAPI.BaseURL = %q", cfg.SerpAPI.BaseURL)
	}
	if cfg.SerpAPI.Country != "no" || cfg.SerpAPI.Language != "no" {
		t.Errorf("SerpAPI locale = %q/%q, want no/no", cfg.SerpAPI.Country, cfg.SerpAPI.Language)
	}
	if cfg.SerpAPI.Timeout != 12*time.Second {
		t.Errorf("SerpAPI.Timeout = %v, want 12s", cfg.SerpAPI.Timeout)
	}
	if cfg.Catalog.Path != "./data/giftly.db" {
		t.Errorf("Catalog.Path = %q", cfg.Catalog.Path)
	}
	if cfg.Gemini.Model != "gemini-1.5-flash" {
		t.Errorf("Gemini.Model = %q", cfg.Gemini.Model)
	}
	if cfg.Selection.Need != 3 {
		t.Errorf("Selection.Need = %d, want 3", cfg.Selection.Need)
	}
	if cfg.Selection.ShortlistFactor != 2 {
		t.Errorf("Selection.ShortlistFactor = %d, want 2", cfg.Selection.ShortlistFactor)
	}
	if len(cfg.Selection.WindowRatios) != 6 || cfg.Selection.WindowRatios[0] != 0.95 {
		t.Errorf("Selection.WindowRatios = %v", cfg.Selection.WindowRatios)
	}
	if cfg.Selection.Currency != "NOK" {
		t.Errorf("Selection.Currency = %q, want NOK", cfg.Selection.Currency)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("GIFTLY_SERVER_PORT", "9090")
	t.Setenv("GIFTLY_SERPAPI_API_KEY", "live-key")
	t.Setenv("GIFTLY_GEMINI_API_KEY", "model-key")
	t.Setenv("GIFTLY_CATALOG_PATH", "/var/lib/giftly/catalog.db")
	t.Setenv("GIFTLY_SELECTION_NEED", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.SerpAPI.APIKey != "live-key" {
		t.Errorf("SerpAPI.APIKey = %q, want live-key", cfg.SerpAPI.APIKey)
	}
	if cfg.Gemini.APIKey != "model-key" {
		t.Errorf("Gemini.APIKey = %q, want model-key", cfg.Gemini.APIKey)
	}
	if cfg.Catalog.Path != "/var/lib/giftly/catalog.db" {
		t.Errorf("Catalog.Path = %q", cfg.Catalog.Path)
	}
	if cfg.Selection.Need != 5 {
		t.Errorf("Selection.Need = %d, want 5", cfg.Selection.Need)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Catalog: CatalogConfig{Path: "./data/giftly.db"},
			Selection: SelectionConfig{
				Need:         3,
				WindowRatios: []float64{0.95, 0.70},
			},
		}
	}

	t.Run("valid config passes", func(t *testing.T) {
		if err := validate(valid()); err != nil {
			t.Errorf("validate() error = %v", err)
		}
	})

	t.Run("missing catalog path", func(t *testing.T) {
		cfg := valid()
		cfg.Catalog.Path = ""
		if err := validate(cfg); err == nil {
			t.Error("validate() = nil, want error")
		}
	})

	t.Run("non-positive need", func(t *testing.T) {
		cfg := valid()
		cfg.Selection.Need = 0
		if err := validate(cfg); err == nil {
			t.Error("validate() = nil, want error")
		}
	})

	t.Run("ratio out of range", func(t *testing.T) {
		cfg := valid()
		cfg.Selection.WindowRatios = []float64{1.2}
		if err := validate(cfg); err == nil {
			t.Error("validate() = nil, want error")
		}
	})
}
