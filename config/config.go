package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/ratel-online/assistant/consts"
)

type Config struct {
	EngineURL string `json:"engine_url"`
	// Transport is http or ws.
	Transport string `json:"transport"`
	Language  string `json:"language"`
	Colors    bool   `json:"colors"`
	// RequestTimeoutSeconds bounds each engine call. Zero means no timeout.
	RequestTimeoutSeconds float64 `json:"request_timeout_seconds"`
	GuardOutstanding      bool    `json:"guard_outstanding"`
}

func Default() *Config {
	return &Config{
		EngineURL: consts.DefaultEngineURL,
		Transport: consts.DefaultTransport,
		Language:  consts.DefaultLanguage,
		Colors:    true,
	}
}

// Load reads the configuration at path over the defaults. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return c, c.Validate()
}

func (c *Config) Validate() error {
	c.Transport = strings.ToLower(c.Transport)
	if c.Transport != "http" && c.Transport != "ws" {
		return fmt.Errorf("%w: %q", consts.ErrorsTransportInvalid, c.Transport)
	}
	if c.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("request timeout must not be negative")
	}
	return nil
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds * float64(time.Second))
}
