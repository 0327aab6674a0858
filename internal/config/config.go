// ABOUTME: Configuration loading and parsing for bamboo-gateway
// ABOUTME: Supports YAML files with environment variable expansion and duration parsing

package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete bamboo-gateway configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Bamboo  BambooConfig  `yaml:"bamboo"`
	Audit   AuditConfig   `yaml:"audit"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds server address configuration
type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`
}

// BambooConfig holds the upstream BambooHR API credentials and timing
type BambooConfig struct {
	CompanyDomain string `yaml:"company_domain"`
	APIKey        string `yaml:"api_key"`

	Timeout time.Duration `yaml:"-"`

	// Raw string value for YAML unmarshaling
	TimeoutRaw string `yaml:"timeout"`
}

// AuditConfig holds the invocation audit database configuration.
// Auditing is disabled when Path is empty.
type AuditConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a configuration file from the given path and returns a parsed Config.
// Environment variables in the format ${VAR_NAME} are expanded.
// Duration strings are parsed into time.Duration values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw YAML content
	expandedData := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	// Parse duration fields
	if err := parseDurations(&cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a configuration from environment variables alone, for
// running without a config file (typically the stdio transport).
func FromEnv() (*Config, error) {
	cfg := &Config{
		Bamboo: BambooConfig{
			CompanyDomain: os.Getenv("BAMBOOHR_COMPANY_DOMAIN"),
			APIKey:        os.Getenv("BAMBOOHR_API_KEY"),
		},
		Audit: AuditConfig{
			Path: os.Getenv("BAMBOO_GATEWAY_AUDIT_PATH"),
		},
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// applyDefaults fills in fields the file or environment left unset.
func (c *Config) applyDefaults() {
	if c.Server.HTTPAddr == "" {
		c.Server.HTTPAddr = ":8586"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	// Credentials from the environment fill gaps in the file.
	if c.Bamboo.CompanyDomain == "" {
		c.Bamboo.CompanyDomain = os.Getenv("BAMBOOHR_COMPANY_DOMAIN")
	}
	if c.Bamboo.APIKey == "" {
		c.Bamboo.APIKey = os.Getenv("BAMBOOHR_API_KEY")
	}
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	// Match ${VAR_NAME} pattern
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		// Extract variable name from ${VAR_NAME}
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.Bamboo.CompanyDomain == "" {
		return fmt.Errorf("bamboo.company_domain is required (or set BAMBOOHR_COMPANY_DOMAIN)")
	}
	if c.Bamboo.APIKey == "" {
		return fmt.Errorf("bamboo.api_key is required (or set BAMBOOHR_API_KEY)")
	}
	return nil
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	var err error

	if cfg.Bamboo.TimeoutRaw != "" {
		cfg.Bamboo.Timeout, err = time.ParseDuration(cfg.Bamboo.TimeoutRaw)
		if err != nil {
			return fmt.Errorf("parsing bamboo.timeout %q: %w", cfg.Bamboo.TimeoutRaw, err)
		}
	}

	return nil
}
