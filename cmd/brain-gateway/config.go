package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// GatewayConfig represents the YAML configuration structure
type GatewayConfig struct {
	Version string                  `yaml:"version"`
	Routers map[string]RouterConfig `yaml:"routers"`
	Auth    AuthConfig              `yaml:"auth,omitempty"`
	CORS    CORSConfig              `yaml:"cors,omitempty"`
}

// RouterConfig configures a single API router, mirroring the routers.json
// the deployed backend reads.
type RouterConfig struct {
	DisableAuth bool `yaml:"disableAuth"`
}

// AuthConfig holds the bearer token required on authenticated routers.
type AuthConfig struct {
	Token string `yaml:"token,omitempty"`
}

// CORSConfig lists the origins allowed to call the gateway. Empty means
// allow all, which is what the deployed backend does.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

// Router names the gateway knows about. Each API route belongs to exactly
// one router for auth purposes.
const (
	RouterOCR    = "ocr"
	RouterRoutes = "routes"
)

// LoadConfig loads and parses the YAML configuration file
func LoadConfig(path string) (*GatewayConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config GatewayConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := ValidateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns the configuration used when no config file exists:
// every router open, all origins allowed. That matches the deployed
// backend's fallback when routers.json is missing.
func DefaultConfig() *GatewayConfig {
	return &GatewayConfig{
		Version: "1.0",
		Routers: map[string]RouterConfig{},
	}
}

// ValidateConfig validates the configuration
func ValidateConfig(cfg *GatewayConfig) error {
	if cfg.Version == "" {
		return fmt.Errorf("version is required")
	}
	if cfg.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (supported: 1.0)", cfg.Version)
	}

	for name := range cfg.Routers {
		switch strings.TrimSpace(name) {
		case "":
			return fmt.Errorf("router name cannot be empty")
		case RouterOCR, RouterRoutes:
			// Known router
		default:
			return fmt.Errorf("unknown router %q (supported: %s, %s)", name, RouterOCR, RouterRoutes)
		}
	}

	return nil
}

// IsAuthDisabled reports whether the named router opts out of bearer auth.
// A router also runs open when no auth token is configured at all.
func (c *GatewayConfig) IsAuthDisabled(router string) bool {
	if c.Auth.Token == "" {
		return true
	}
	return c.Routers[router].DisableAuth
}

// AllowedOrigins returns the configured CORS origins, defaulting to all.
func (c *GatewayConfig) AllowedOrigins() []string {
	if len(c.CORS.AllowedOrigins) == 0 {
		return []string{"*"}
	}
	return c.CORS.AllowedOrigins
}
