// Package config handles configuration loading for bamboo-gateway.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion.
// The package provides validation and sensible defaults. For config-less
// deployments (stdio transport) FromEnv builds the configuration entirely
// from environment variables.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	bamboo:
//	  api_key: "${BAMBOOHR_API_KEY}"
//
// Syntax: ${VAR_NAME}
//
// # Duration Parsing
//
// Duration values use Go's time.ParseDuration syntax:
//
//	bamboo:
//	  timeout: "30s"
//
// Supported units: ns, us, ms, s, m, h
//
// # Configuration Sections
//
// Server settings:
//
//	server:
//	  http_addr: "0.0.0.0:8586"
//
// Upstream API:
//
//	bamboo:
//	  company_domain: "mycompany"
//	  api_key: "${BAMBOOHR_API_KEY}"
//	  timeout: "30s"
//
// Invocation audit (optional; disabled when path is empty):
//
//	audit:
//	  path: "/var/lib/bamboo-gateway/audit.db"
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// # Validation
//
// Load() and FromEnv() fail when the company domain or API key is missing;
// the gateway cannot authenticate a single upstream request without them.
package config
