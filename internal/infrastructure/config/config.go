// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for nameguard configuration.
	DefaultConfigDir = ".nameguard"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
)

// Property index providers.
const (
	IndexSQLite = "sqlite"
	IndexQdrant = "qdrant"
	IndexPlaces = "places"
)

// Config holds static infrastructure configuration (read-only after init).
type Config struct {
	Lexicons   LexiconsConfig   `yaml:"lexicons,omitempty"`
	Thresholds ThresholdsConfig `yaml:"thresholds,omitempty"`
	Validation ValidationConfig `yaml:"validation,omitempty"`
	Index      IndexConfig      `yaml:"index,omitempty"`
	Places     PlacesConfig     `yaml:"places,omitempty"`
	Qdrant     QdrantConfig     `yaml:"qdrant,omitempty"`
	SQLite     SQLiteConfig     `yaml:"sqlite,omitempty"`
	Redis      RedisConfig      `yaml:"redis,omitempty"`
	Suggester  SuggesterConfig  `yaml:"suggester,omitempty"`
}

// LexiconsConfig holds the location of the wordlist files.
type LexiconsConfig struct {
	Dir string `yaml:"dir,omitempty"`
}

// ThresholdsConfig holds the per-check flagging thresholds.
type ThresholdsConfig struct {
	Profanity float64 `yaml:"profanity,omitempty"`
	Cultural  float64 `yaml:"cultural,omitempty"`
	Slang     float64 `yaml:"slang,omitempty"`
	Phonetic  float64 `yaml:"phonetic,omitempty"`
	Duplicate float64 `yaml:"duplicate,omitempty"`
}

// ValidationConfig holds request defaults applied when flags are omitted.
type ValidationConfig struct {
	Locale         string  `yaml:"locale,omitempty"`
	RadiusMeters   float64 `yaml:"radius_meters,omitempty"`
	TimeoutSeconds int     `yaml:"timeout_seconds,omitempty"`
}

// IndexConfig selects the property index backend.
type IndexConfig struct {
	Provider string `yaml:"provider,omitempty"`
}

// PlacesConfig holds configuration for the external places API.
type PlacesConfig struct {
	BaseURL string `yaml:"base_url,omitempty"`
	APIKey  string `yaml:"api_key,omitempty"`
}

// QdrantConfig holds configuration for the Qdrant property index.
type QdrantConfig struct {
	Host       string `yaml:"host,omitempty"`
	Port       int    `yaml:"port,omitempty"`
	Collection string `yaml:"collection,omitempty"`
	APIKey     string `yaml:"api_key,omitempty"`
}

// SQLiteConfig holds configuration for the SQLite property index.
type SQLiteConfig struct {
	// Path is the file path to the SQLite database. When empty the
	// database lives inside the config directory; see SQLitePath.
	Path string `yaml:"path,omitempty"`
}

// RedisConfig holds configuration for the geo lookup cache. An empty
// address disables caching.
type RedisConfig struct {
	Addr       string `yaml:"addr,omitempty"`
	TTLSeconds int    `yaml:"ttl_seconds,omitempty"`
}

// SuggesterConfig holds configuration for the alternative-name suggester.
type SuggesterConfig struct {
	Provider string `yaml:"provider,omitempty"`
	Model    string `yaml:"model,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Lexicons: LexiconsConfig{
			Dir: "data/lexicons",
		},
		Thresholds: ThresholdsConfig{
			Profanity: 0.85,
			Cultural:  0.85,
			Slang:     0.85,
			Phonetic:  0.85,
			Duplicate: 0.90,
		},
		Validation: ValidationConfig{
			Locale:         "en",
			RadiusMeters:   200,
			TimeoutSeconds: 5,
		},
		Index: IndexConfig{
			Provider: IndexSQLite,
		},
		Qdrant: QdrantConfig{
			Host:       "localhost",
			Port:       6334,
			Collection: "nameguard_properties",
		},
		Redis: RedisConfig{
			TTLSeconds: 300,
		},
		Suggester: SuggesterConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
		},
	}
}

// Load loads configuration from the .nameguard directory in the given path.
func Load(basePath string) (*Config, error) {
	configFile := filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'nameguard init' first)", configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start with defaults
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply environment variable overrides
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault loads the config if one exists and falls back to defaults
// otherwise. Environment overrides apply either way.
func LoadOrDefault(basePath string) (*Config, error) {
	if Exists(basePath) {
		return Load(basePath)
	}
	cfg := Default()
	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && c.Suggester.APIKey == "" {
		c.Suggester.APIKey = key
	}
	if key := os.Getenv("QDRANT_API_KEY"); key != "" && c.Qdrant.APIKey == "" {
		c.Qdrant.APIKey = key
	}
	if key := os.Getenv("PLACES_API_KEY"); key != "" && c.Places.APIKey == "" {
		c.Places.APIKey = key
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" && c.Redis.Addr == "" {
		c.Redis.Addr = addr
	}
}

// Validate checks the configuration for values that would break validation
// at runtime.
func (c *Config) Validate() error {
	thresholds := map[string]float64{
		"profanity": c.Thresholds.Profanity,
		"cultural":  c.Thresholds.Cultural,
		"slang":     c.Thresholds.Slang,
		"phonetic":  c.Thresholds.Phonetic,
		"duplicate": c.Thresholds.Duplicate,
	}
	for name, v := range thresholds {
		if v <= 0 || v > 1 {
			return fmt.Errorf("threshold %s is %v, want (0,1]", name, v)
		}
	}

	switch c.Index.Provider {
	case IndexSQLite, IndexQdrant, IndexPlaces:
	default:
		return fmt.Errorf("unknown index provider %q", c.Index.Provider)
	}

	if c.Validation.RadiusMeters <= 0 {
		return fmt.Errorf("validation radius_meters is %v, want positive", c.Validation.RadiusMeters)
	}

	return nil
}

// ConfigDir returns the path to the .nameguard config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// SQLitePath returns the property database path, honoring an explicit
// override from the config file.
func (c *Config) SQLitePath(basePath string) string {
	if c.SQLite.Path != "" {
		return c.SQLite.Path
	}
	return filepath.Join(basePath, DefaultConfigDir, "properties.db")
}

// LexiconsDir returns the wordlist directory, resolving relative paths
// against basePath.
func (c *Config) LexiconsDir(basePath string) string {
	if filepath.IsAbs(c.Lexicons.Dir) {
		return c.Lexicons.Dir
	}
	return filepath.Join(basePath, c.Lexicons.Dir)
}
