package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the reelmatch service configuration.
type Config struct {
	HTTP         HTTPConfig         `yaml:"http"`
	Auth         AuthConfig         `yaml:"auth"`
	Catalog      CatalogConfig      `yaml:"catalog"`
	Ranking      RankingConfig      `yaml:"ranking"`
	Presentation PresentationConfig `yaml:"presentation"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// CatalogConfig holds the item and image table locations.
type CatalogConfig struct {
	ItemsPath           string `yaml:"items_path"`
	ImagesPath          string `yaml:"images_path"`
	PlaceholderImageURL string `yaml:"placeholder_image_url"`
	ReloadOnRequest     bool   `yaml:"reload_on_request"` // re-read both tables on every call
}

// RankingConfig holds recommend/search tuning.
type RankingConfig struct {
	RecommendLimit int `yaml:"recommend_limit"`
	SearchLimit    int `yaml:"search_limit"`
	MinQueryLength int `yaml:"min_query_length"`
	MinFieldScore  int `yaml:"min_field_score"`
	Workers        int `yaml:"workers"`
	ScanTimeoutMS  int `yaml:"scan_timeout_ms"`  // 0 = no deadline
	TokenCacheSize int `yaml:"token_cache_size"` // 0 = disabled
	FeaturedCount  int `yaml:"featured_count"`
}

// PresentationConfig holds output formatting settings.
type PresentationConfig struct {
	TrailerURLTemplate string `yaml:"trailer_url_template"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Catalog.ItemsPath == "" {
		c.Catalog.ItemsPath = "data/movies.csv"
	}
	if c.Catalog.ImagesPath == "" {
		c.Catalog.ImagesPath = "data/movie_images.csv"
	}
	if c.Catalog.PlaceholderImageURL == "" {
		c.Catalog.PlaceholderImageURL = "/static/defaultposter.jpg"
	}
	if c.Ranking.RecommendLimit <= 0 {
		c.Ranking.RecommendLimit = 10
	}
	if c.Ranking.SearchLimit <= 0 {
		c.Ranking.SearchLimit = 20
	}
	if c.Ranking.MinQueryLength <= 0 {
		c.Ranking.MinQueryLength = 3
	}
	if c.Ranking.MinFieldScore <= 0 {
		c.Ranking.MinFieldScore = 80
	}
	if c.Ranking.Workers <= 0 {
		c.Ranking.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Ranking.FeaturedCount <= 0 {
		c.Ranking.FeaturedCount = 10
	}
	if c.Presentation.TrailerURLTemplate == "" {
		c.Presentation.TrailerURLTemplate = "https://www.youtube.com/results?search_query=%s"
	}
}

// ScanTimeout returns the ranking scan deadline, 0 when disabled.
func (c *Config) ScanTimeout() time.Duration {
	return time.Duration(c.Ranking.ScanTimeoutMS) * time.Millisecond
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Catalog.ItemsPath == "" {
		return fmt.Errorf("catalog.items_path is required")
	}
	if c.Ranking.MinFieldScore > 100 {
		return fmt.Errorf("ranking.min_field_score must be between 1 and 100, got %d", c.Ranking.MinFieldScore)
	}
	if c.Ranking.ScanTimeoutMS < 0 {
		return fmt.Errorf("ranking.scan_timeout_ms must not be negative, got %d", c.Ranking.ScanTimeoutMS)
	}
	if c.Ranking.TokenCacheSize < 0 {
		return fmt.Errorf("ranking.token_cache_size must not be negative, got %d", c.Ranking.TokenCacheSize)
	}
	if tpl := c.Presentation.TrailerURLTemplate; tpl != "" &&
		(strings.Count(tpl, "%s") != 1 || strings.Count(tpl, "%") != 1) {
		return fmt.Errorf("presentation.trailer_url_template must contain exactly one %%s, got %q",
			c.Presentation.TrailerURLTemplate)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
