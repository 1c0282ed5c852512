package config

import "time"

// Config holds runtime settings for the vcap CLI.
//
// Fields:
//   - BackendBaseURL: base URL of the REST backend (auth, uploads, admin).
//   - CaptionEndpoint: URL of the primary image-to-caption inference service.
//   - DescriptionEndpoint: URL of the secondary image-description service.
//   - HTTPTimeout: per-request timeout for backend calls.
//   - StateDBPath: path of the local sqlite state database.
type Config struct {
	BackendBaseURL      string
	CaptionEndpoint     string
	DescriptionEndpoint string
	StateDBPath         string
	HTTPTimeout         time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendBaseURL = "https://visual-caption-backend.onrender.com"
	c.CaptionEndpoint = "https://krnos22-image-caption-vi.hf.space/api/predict"
	c.DescriptionEndpoint = "https://visual-caption-backend.onrender.com/api/caption/image/destination"
	c.StateDBPath = "vcap.db"
	c.HTTPTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
