package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// GraphTokenEnv is consulted when graph.token is not set in the config file.
const GraphTokenEnv = "JARVIS_GRAPH_TOKEN"

type ProfileConfig struct {
	AccountID   string `yaml:"account_id,omitempty"`
	DisplayName string `yaml:"display_name"`
	JobTitle    string `yaml:"job_title"`
	Department  string `yaml:"department"`
	Quote       string `yaml:"quote,omitempty"`
}

type BackendConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout,omitempty"`
}

type AgentConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout,omitempty"`
}

type GraphConfig struct {
	BaseURL   string   `yaml:"base_url"`
	Token     string   `yaml:"token,omitempty"`
	TaskLists []string `yaml:"task_lists,omitempty"`
}

type NewsConfig struct {
	Mode     string   `yaml:"mode"` // "backend" or "direct"
	Queries  []string `yaml:"queries,omitempty"`
	PerQuery int      `yaml:"per_query,omitempty"`
}

type SuggestConfig struct {
	BaseURL string `yaml:"base_url"`
}

type Config struct {
	Profile ProfileConfig `yaml:"profile"`
	Backend BackendConfig `yaml:"backend"`
	Agent   AgentConfig   `yaml:"agent"`
	Graph   GraphConfig   `yaml:"graph"`
	News    NewsConfig    `yaml:"news"`
	Suggest SuggestConfig `yaml:"suggest"`
}

// GraphToken returns the resolved Microsoft Graph token (config or env var).
func (c *Config) GraphToken() string {
	if c.Graph.Token != "" {
		return c.Graph.Token
	}
	return os.Getenv(GraphTokenEnv)
}

// GraphEnabled returns true if a Graph token is available. Without one the
// task pane runs in local-only guest mode.
func (c *Config) GraphEnabled() bool {
	return c.GraphToken() != ""
}

func (c *Config) BackendTimeout() time.Duration {
	return parseTimeout(c.Backend.Timeout, 15*time.Second)
}

func (c *Config) AgentTimeout() time.Duration {
	return parseTimeout(c.Agent.Timeout, 30*time.Second)
}

func parseTimeout(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// TaskListNames returns the canonical to-do list names, in preference order.
func (c *Config) TaskListNames() []string {
	if len(c.Graph.TaskLists) == 0 {
		return []string{"Tasks from Teams", "Tasks"}
	}
	return c.Graph.TaskLists
}

// PerQueryLimit caps how many stories direct mode keeps per query.
func (c *Config) PerQueryLimit() int {
	if c.News.PerQuery <= 0 {
		return 5
	}
	return c.News.PerQuery
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "jarvis", "config.yaml")
}

func CachePath() string {
	return filepath.Join(xdg.CacheHome, "jarvis", "jarvis.db")
}

func LogPath() string {
	return filepath.Join(xdg.StateHome, "jarvis", "jarvis.log")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	applyDefaults(&cfg, defaults)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

// applyDefaults fills fields the user's file left empty so a partial config
// stays usable.
func applyDefaults(cfg, defaults *Config) {
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = defaults.Backend.BaseURL
	}
	if cfg.Agent.BaseURL == "" {
		cfg.Agent.BaseURL = defaults.Agent.BaseURL
	}
	if cfg.Graph.BaseURL == "" {
		cfg.Graph.BaseURL = defaults.Graph.BaseURL
	}
	if cfg.Suggest.BaseURL == "" {
		cfg.Suggest.BaseURL = defaults.Suggest.BaseURL
	}
	if cfg.News.Mode == "" {
		cfg.News.Mode = defaults.News.Mode
	}
	if cfg.Profile.DisplayName == "" {
		cfg.Profile.DisplayName = defaults.Profile.DisplayName
	}
}

func validate(cfg *Config) error {
	for _, ep := range []struct {
		name string
		url  string
	}{
		{"backend", cfg.Backend.BaseURL},
		{"agent", cfg.Agent.BaseURL},
		{"graph", cfg.Graph.BaseURL},
		{"suggest", cfg.Suggest.BaseURL},
	} {
		u, err := url.Parse(ep.url)
		if err != nil {
			return fmt.Errorf("%s: invalid base_url: %w", ep.name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("%s: base_url scheme must be http or https, got %q", ep.name, u.Scheme)
		}
	}
	if cfg.News.Mode != "backend" && cfg.News.Mode != "direct" {
		return fmt.Errorf("news: unknown mode %q (valid: backend, direct)", cfg.News.Mode)
	}
	if cfg.News.PerQuery < 0 {
		return fmt.Errorf("news: per_query must not be negative")
	}
	return nil
}
