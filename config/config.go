package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	SerpAPI   SerpAPIConfig `mapstructure:"serpapi"`
	Catalog   CatalogConfig
	Gemini    GeminiConfig
	Selection SelectionConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SerpAPIConfig holds live search provider configuration.
// An empty API key disables the live source; selection then runs on the
// local catalog alone.
type SerpAPIConfig struct {
	APIKey   string        `mapstructure:"api_key"`
	BaseURL  string        `mapstructure:"base_url"`
	Country  string        `mapstructure:"country"`
	Language string        `mapstructure:"language"`
	PageSize int           `mapstructure:"page_size"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// CatalogConfig holds local catalog store configuration
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// GeminiConfig holds semantic reranker configuration.
// An empty API key disables the rerank stage entirely.
type GeminiConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SelectionConfig holds selection engine tuning parameters
type SelectionConfig struct {
	Need               int       `mapstructure:"need"`
	ShortlistFactor    int       `mapstructure:"shortlist_factor"`
	WindowRatios       []float64 `mapstructure:"window_ratios"`
	LocalMerchants     []string  `mapstructure:"local_merchants"`
	Currency           string    `mapstructure:"currency"`
	EnableDebugLogging bool      `mapstructure:"enable_debug_logging"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/giftly/")

	// Environment variable settings
	v.SetEnvPrefix("GIFTLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})

	// SerpAPI defaults
	v.SetDefault("serpapi.api_key", "")
	v.SetDefault("serpapi.base_url", "https://serpapi.com")
	v.SetDefault("serpapi.country", "no")
	v.SetDefault("serpapi.language", "no")
	v.SetDefault("serpapi.page_size", 30)
	v.SetDefault("serpapi.timeout", "12s")

	// Catalog defaults
	v.SetDefault("catalog.path", "./data/giftly.db")

	// Gemini defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-1.5-flash")
	v.SetDefault("gemini.timeout", "20s")

	// Selection defaults
	v.SetDefault("selection.need", 3)
	v.SetDefault("selection.shortlist_factor", 2)
	v.SetDefault("selection.window_ratios", []float64{0.95, 0.90, 0.85, 0.80, 0.75, 0.70})
	v.SetDefault("selection.currency", "NOK")
	v.SetDefault("selection.enable_debug_logging", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.Path == "" {
		return fmt.Errorf("catalog path is required (set GIFTLY_CATALOG_PATH)")
	}

	if config.Selection.Need <= 0 {
		return fmt.Errorf("selection need must be positive, got: %d", config.Selection.Need)
	}

	for _, r := range config.Selection.WindowRatios {
		if r <= 0 || r > 1 {
			return fmt.Errorf("selection window ratios must be in (0, 1], got: %v", r)
		}
	}

	return nil
}
