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

	"github.com/kailas-cloud/leadscout/internal/domain"
	"github.com/kailas-cloud/leadscout/internal/domain/search/strategy"
)

// Supported generator providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config holds the leadscout configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Cache     CacheConfig     `yaml:"cache"`
	Generator GeneratorConfig `yaml:"generator"`
	Search    SearchConfig    `yaml:"search"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
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
	WriteTimeoutSec int `yaml:"write_timeout_sec"` // must outlive a streamed search
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// CacheConfig holds the response cache and budget counter store settings.
// Empty addrs disables both.
type CacheConfig struct {
	Driver           string   `yaml:"driver"` // redis, valkey (same wire protocol)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	TTLSec           int      `yaml:"ttl_sec"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// Enabled reports whether a cache store is configured.
func (c CacheConfig) Enabled() bool { return len(c.Addrs) > 0 }

// TTL returns the response cache TTL.
func (c CacheConfig) TTL() time.Duration { return time.Duration(c.TTLSec) * time.Second }

// BudgetConfig holds token budget settings.
type BudgetConfig struct {
	DailyTokenLimit   int64  `yaml:"daily_token_limit"`   // 0 = unlimited
	MonthlyTokenLimit int64  `yaml:"monthly_token_limit"` // 0 = unlimited
	Action            string `yaml:"action"`              // "reject" | "warn" (default)
}

// Enabled reports whether any limit is set.
func (b BudgetConfig) Enabled() bool { return b.DailyTokenLimit > 0 || b.MonthlyTokenLimit > 0 }

// GeneratorConfig holds text-generation provider settings.
type GeneratorConfig struct {
	Provider   string       `yaml:"provider"` // gemini (default), openai
	APIKey     string       `yaml:"api_key"`
	BaseURL    string       `yaml:"base_url"`
	Model      string       `yaml:"model"`
	TimeoutSec int          `yaml:"timeout_sec"`
	Budget     BudgetConfig `yaml:"budget"`
}

// Timeout returns the per-call transport timeout.
func (g GeneratorConfig) Timeout() time.Duration { return time.Duration(g.TimeoutSec) * time.Second }

// SearchConfig holds fan-out settings.
type SearchConfig struct {
	BatchSize          int     `yaml:"batch_size"`
	MaxBatches         int     `yaml:"max_batches"`
	BatchTimeoutSec    int     `yaml:"batch_timeout_sec"`
	DefaultProximityKm float64 `yaml:"default_proximity_km"`
}

// BatchTimeout returns the per-batch deadline.
func (s SearchConfig) BatchTimeout() time.Duration { return time.Duration(s.BatchTimeoutSec) * time.Second }

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse expands env variables, decodes YAML, applies defaults and validates.
func Parse(data []byte) (Config, error) {
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

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
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
	search := domain.DefaultSearchConfig()

	if c.HTTP.Port <= 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 180
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Cache.Driver == "" {
		c.Cache.Driver = "redis"
	}
	if c.Cache.TTLSec <= 0 {
		c.Cache.TTLSec = 6 * 60 * 60
	}
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 10
	}
	if c.Generator.Provider == "" {
		c.Generator.Provider = ProviderGemini
	}
	if c.Generator.Model == "" {
		c.Generator.Model = search.Model
	}
	if c.Generator.TimeoutSec <= 0 {
		c.Generator.TimeoutSec = 120
	}
	if c.Generator.Budget.Action == "" {
		c.Generator.Budget.Action = "warn"
	}
	if c.Search.BatchSize <= 0 {
		c.Search.BatchSize = search.BatchSize
	}
	if c.Search.MaxBatches <= 0 {
		c.Search.MaxBatches = search.MaxBatches
	}
	if c.Search.BatchTimeoutSec <= 0 {
		c.Search.BatchTimeoutSec = 90
	}
	if c.Search.DefaultProximityKm <= 0 {
		c.Search.DefaultProximityKm = search.DefaultProximityKm
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Cache.Driver {
	case "redis", "valkey":
	default:
		return fmt.Errorf("cache.driver must be \"redis\" or \"valkey\", got %q", c.Cache.Driver)
	}
	switch c.Generator.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("generator.provider must be %q or %q, got %q",
			ProviderGemini, ProviderOpenAI, c.Generator.Provider)
	}
	if c.Generator.APIKey == "" {
		return fmt.Errorf("generator.api_key is required")
	}
	switch c.Generator.Budget.Action {
	case "", "warn", "reject":
	default:
		return fmt.Errorf(
			"generator.budget.action must be \"warn\" or \"reject\", got %q", c.Generator.Budget.Action,
		)
	}
	if c.Generator.Budget.DailyTokenLimit < 0 || c.Generator.Budget.MonthlyTokenLimit < 0 {
		return fmt.Errorf("generator.budget limits must not be negative")
	}
	if n := len(strategy.DefaultCatalog()); c.Search.MaxBatches > n {
		return fmt.Errorf("search.max_batches must be at most %d, got %d", n, c.Search.MaxBatches)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

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
