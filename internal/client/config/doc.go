// Package config loads runtime configuration for the vcap CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-b string   base URL of the REST backend
//	-p string   caption inference endpoint URL
//	-d string   description inference endpoint URL
//	-s string   path of the local state database
//	-t int      backend request timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "30s" or integer nanoseconds:
//
//	{
//	  "backend_base_url": "https://backend.example.com",
//	  "caption_endpoint": "https://inference.example.com/api/predict",
//	  "description_endpoint": "https://backend.example.com/api/caption/image/destination",
//	  "state_db_path": "vcap.db",
//	  "http_timeout": "30s"
//	}
//
// Primary API
//
//   - type Config                     — runtime settings for the CLI
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
