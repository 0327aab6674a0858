// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML loading, env var expansion, and duration parsing

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  http_addr: "0.0.0.0:8080"

bamboo:
  company_domain: "acme"
  api_key: "key-123"
  timeout: "45s"

audit:
  path: "./audit.db"

logging:
  level: "debug"
  format: "json"
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTPAddr != "0.0.0.0:8080" {
		t.Errorf("Server.HTTPAddr = %q, want %q", cfg.Server.HTTPAddr, "0.0.0.0:8080")
	}

	if cfg.Bamboo.CompanyDomain != "acme" {
		t.Errorf("Bamboo.CompanyDomain = %q, want %q", cfg.Bamboo.CompanyDomain, "acme")
	}
	if cfg.Bamboo.APIKey != "key-123" {
		t.Errorf("Bamboo.APIKey = %q, want %q", cfg.Bamboo.APIKey, "key-123")
	}
	if cfg.Bamboo.Timeout != 45*time.Second {
		t.Errorf("Bamboo.Timeout = %v, want %v", cfg.Bamboo.Timeout, 45*time.Second)
	}

	if cfg.Audit.Path != "./audit.db" {
		t.Errorf("Audit.Path = %q, want %q", cfg.Audit.Path, "./audit.db")
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "json")
	}
}

func TestLoad_Defaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
bamboo:
  company_domain: "acme"
  api_key: "key-123"
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTPAddr != ":8586" {
		t.Errorf("Server.HTTPAddr = %q, want default %q", cfg.Server.HTTPAddr, ":8586")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want default %q", cfg.Logging.Level, "info")
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format = %q, want default %q", cfg.Logging.Format, "text")
	}
	if cfg.Bamboo.Timeout != 0 {
		t.Errorf("Bamboo.Timeout = %v, want zero (client default applies)", cfg.Bamboo.Timeout)
	}
	if cfg.Audit.Path != "" {
		t.Errorf("Audit.Path = %q, want empty (auditing disabled)", cfg.Audit.Path)
	}
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("TEST_BAMBOO_DOMAIN", "acme-from-env")
	t.Setenv("TEST_BAMBOO_KEY", "key-from-env")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
bamboo:
  company_domain: "${TEST_BAMBOO_DOMAIN}"
  api_key: "${TEST_BAMBOO_KEY}"
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Bamboo.CompanyDomain != "acme-from-env" {
		t.Errorf("Bamboo.CompanyDomain = %q, want %q", cfg.Bamboo.CompanyDomain, "acme-from-env")
	}
	if cfg.Bamboo.APIKey != "key-from-env" {
		t.Errorf("Bamboo.APIKey = %q, want %q", cfg.Bamboo.APIKey, "key-from-env")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
bamboo:
  company_domain: "acme"
  api_key "missing colon"
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err = Load(configPath)
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
bamboo:
  company_domain: "acme"
  api_key: "key-123"
  timeout: "invalid-duration"
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err = Load(configPath)
	if err == nil {
		t.Error("Load() expected error for invalid duration, got nil")
	}
}

func TestLoad_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name          string
		configContent string
		wantErrSubstr string
	}{
		{
			name: "missing company domain",
			configContent: `
bamboo:
  company_domain: ""
  api_key: "key-123"
`,
			wantErrSubstr: "bamboo.company_domain is required",
		},
		{
			name: "missing api key",
			configContent: `
bamboo:
  company_domain: "acme"
  api_key: ""
`,
			wantErrSubstr: "bamboo.api_key is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Defaults must not be satisfied from the environment here.
			t.Setenv("BAMBOOHR_COMPANY_DOMAIN", "")
			t.Setenv("BAMBOOHR_API_KEY", "")

			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, "config.yaml")

			err := os.WriteFile(configPath, []byte(tt.configContent), 0644)
			if err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			_, err = Load(configPath)
			if err == nil {
				t.Errorf("Load() expected error containing %q, got nil", tt.wantErrSubstr)
				return
			}

			if !strings.Contains(err.Error(), tt.wantErrSubstr) {
				t.Errorf("Load() error = %q, want error containing %q", err.Error(), tt.wantErrSubstr)
			}
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Run("complete environment", func(t *testing.T) {
		t.Setenv("BAMBOOHR_COMPANY_DOMAIN", "acme")
		t.Setenv("BAMBOOHR_API_KEY", "key-123")
		t.Setenv("BAMBOO_GATEWAY_AUDIT_PATH", "/tmp/audit.db")

		cfg, err := FromEnv()
		if err != nil {
			t.Fatalf("FromEnv() error = %v", err)
		}

		if cfg.Bamboo.CompanyDomain != "acme" {
			t.Errorf("Bamboo.CompanyDomain = %q, want %q", cfg.Bamboo.CompanyDomain, "acme")
		}
		if cfg.Bamboo.APIKey != "key-123" {
			t.Errorf("Bamboo.APIKey = %q, want %q", cfg.Bamboo.APIKey, "key-123")
		}
		if cfg.Audit.Path != "/tmp/audit.db" {
			t.Errorf("Audit.Path = %q, want %q", cfg.Audit.Path, "/tmp/audit.db")
		}
	})

	t.Run("missing credentials", func(t *testing.T) {
		t.Setenv("BAMBOOHR_COMPANY_DOMAIN", "")
		t.Setenv("BAMBOOHR_API_KEY", "")

		_, err := FromEnv()
		if err == nil {
			t.Error("FromEnv() expected error for missing credentials, got nil")
		}
	})
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("FOO", "bar")
	t.Setenv("BAZ", "qux")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single env var",
			input:    "${FOO}",
			expected: "bar",
		},
		{
			name:     "env var with surrounding text",
			input:    "prefix-${FOO}-suffix",
			expected: "prefix-bar-suffix",
		},
		{
			name:     "multiple env vars",
			input:    "${FOO}/${BAZ}",
			expected: "bar/qux",
		},
		{
			name:     "no env vars",
			input:    "no-vars-here",
			expected: "no-vars-here",
		},
		{
			name:     "unset env var",
			input:    "${UNSET_VAR}",
			expected: "",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandEnvVars(tt.input)
			if result != tt.expected {
				t.Errorf("expandEnvVars(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
