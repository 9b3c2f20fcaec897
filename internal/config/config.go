package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"hnsearch/internal/eventbus"
	"hnsearch/internal/search"
)

// Config represents the application configuration
type Config struct {
	Version    int             `toml:"version"`
	Search     SearchSettings  `toml:"search"`
	UISettings UISettings      `toml:"ui"`
	Log        LogSettings     `toml:"log"`
	Metrics    MetricsSettings `toml:"metrics"`
}

// SearchSettings configures the remote search API
type SearchSettings struct {
	Endpoint              string `toml:"endpoint"`
	DefaultQuery          string `toml:"default_query"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"` // 0 disables the timeout
	UserAgent             string `toml:"user_agent"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ResetPageOnSearch   bool `toml:"reset_page_on_search"`
	DiscardStaleResults bool `toml:"discard_stale_results"`
	ShowURLs            bool `toml:"show_urls"`
}

// LogSettings configures the log file
type LogSettings struct {
	Level  string `toml:"level"`
	File   string `toml:"file"`
	Pretty bool   `toml:"pretty"`
}

// MetricsSettings configures the optional Prometheus endpoint
type MetricsSettings struct {
	Addr string `toml:"addr"` // empty disables the endpoint
}

// RequestTimeout returns the HTTP client timeout
func (s SearchSettings) RequestTimeout() time.Duration {
	if s.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(s.RequestTimeoutSeconds) * time.Second
}

// InitialURL returns the request target used on startup
func (c *Config) InitialURL() string {
	return search.BuildURL(c.Search.Endpoint, c.Search.DefaultQuery)
}

// Validate checks the settings that cannot fall back to a default
func (c *Config) Validate() error {
	if c.Search.Endpoint == "" {
		return fmt.Errorf("search endpoint must not be empty")
	}
	if c.Search.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("request_timeout_seconds must be >= 0 (got %d)", c.Search.RequestTimeoutSeconds)
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "hnsearch", "config.toml")
}

// NewConfigService creates a config service for the default path
func NewConfigService() ConfigService {
	return &configService{filePath: DefaultPath()}
}

// NewConfigServiceAt creates a config service for a specific file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus, path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{bus: bus, filePath: path}
}

// Path returns the file the service loads from and saves to
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, returning defaults when the file
// does not exist yet
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Endpoint:     cfg.Search.Endpoint,
			DefaultQuery: cfg.Search.DefaultQuery,
		})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Search: SearchSettings{
			Endpoint:              search.DefaultEndpoint,
			DefaultQuery:          search.DefaultQuery,
			RequestTimeoutSeconds: 10,
			UserAgent:             "hnsearch/1.0",
		},
		UISettings: UISettings{
			ResetPageOnSearch:   true,
			DiscardStaleResults: true,
			ShowURLs:            true,
		},
		Log: LogSettings{
			Level: "info",
			File:  "hnsearch.log",
		},
	}
}

// ApplyEnv overrides settings from HNSEARCH_* environment variables, reading
// a .env file from the working directory first if one exists
func ApplyEnv(cfg *Config) {
	_ = godotenv.Load()

	cfg.Search.Endpoint = getEnv("HNSEARCH_ENDPOINT", cfg.Search.Endpoint)
	cfg.Search.DefaultQuery = getEnv("HNSEARCH_QUERY", cfg.Search.DefaultQuery)
	cfg.Search.RequestTimeoutSeconds = getIntEnv("HNSEARCH_TIMEOUT_SECONDS", cfg.Search.RequestTimeoutSeconds)
	cfg.Search.UserAgent = getEnv("HNSEARCH_USER_AGENT", cfg.Search.UserAgent)
	cfg.UISettings.ResetPageOnSearch = getBoolEnv("HNSEARCH_RESET_PAGE", cfg.UISettings.ResetPageOnSearch)
	cfg.UISettings.DiscardStaleResults = getBoolEnv("HNSEARCH_DISCARD_STALE", cfg.UISettings.DiscardStaleResults)
	cfg.Log.Level = getEnv("HNSEARCH_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.File = getEnv("HNSEARCH_LOG_FILE", cfg.Log.File)
	cfg.Metrics.Addr = getEnv("HNSEARCH_METRICS_ADDR", cfg.Metrics.Addr)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return fallback
}
