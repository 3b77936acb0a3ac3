package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds client settings loaded from the YAML file and the environment.
type Config struct {
	APIBaseURL            string `yaml:"api_base_url"`
	StatePath             string `yaml:"state_path"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
	LogRequests           bool   `yaml:"log_requests"`
	LogUseCases           bool   `yaml:"log_use_cases"`
}

func DefaultConfig() Config {
	return Config{
		APIBaseURL:            "http://localhost:8080",
		StatePath:             "~/.pulseforge/pulseforge.db",
		RequestTimeoutSeconds: 15,
	}
}

// DefaultPath returns PULSEFORGE_CONFIG or ~/.pulseforge/config.yaml.
func DefaultPath() string {
	if p := strings.TrimSpace(os.Getenv("PULSEFORGE_CONFIG")); p != "" {
		return p
	}
	return "~/.pulseforge/config.yaml"
}

// Load starts from the defaults, overlays the YAML file at path when it
// exists, then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(ExpandHome(path))
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	cfg.StatePath = ExpandHome(cfg.StatePath)
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("PULSEFORGE_API_URL")); v != "" {
		c.APIBaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("PULSEFORGE_DB")); v != "" {
		c.StatePath = v
	}
	c.RequestTimeoutSeconds = readInt("PULSEFORGE_TIMEOUT_SECONDS", c.RequestTimeoutSeconds)
	c.LogRequests = readBool("PULSEFORGE_LOG_REQUESTS", c.LogRequests)
	c.LogUseCases = readBool("PULSEFORGE_LOG_USE_CASES", c.LogUseCases)
}

func (c Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_base_url must be an http(s) URL, got %q", c.APIBaseURL)
	}
	if c.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("request_timeout_seconds must be positive, got %d", c.RequestTimeoutSeconds)
	}
	if strings.TrimSpace(c.StatePath) == "" {
		return fmt.Errorf("state_path is required")
	}
	return nil
}

func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// ExpandHome replaces a leading ~/ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func readInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func readBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}
