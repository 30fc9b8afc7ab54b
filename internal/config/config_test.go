package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadDefaults()
	if err != nil {
		t.Fatalf("loadDefaults: %v", err)
	}
	if cfg.Backend.BaseURL == "" {
		t.Error("expected backend base_url to be set")
	}
	if cfg.Agent.BaseURL == "" {
		t.Error("expected agent base_url to be set")
	}
	if cfg.News.Mode != "backend" {
		t.Errorf("expected default news mode backend, got %q", cfg.News.Mode)
	}
	if cfg.Suggest.BaseURL == "" {
		t.Error("expected suggest base_url to be set")
	}
}

func TestTimeouts(t *testing.T) {
	cfg := &Config{
		Backend: BackendConfig{Timeout: "5s"},
		Agent:   AgentConfig{Timeout: "invalid"},
	}
	if got := cfg.BackendTimeout(); got != 5*time.Second {
		t.Errorf("BackendTimeout = %v, want 5s", got)
	}
	if got := cfg.AgentTimeout(); got != 30*time.Second {
		t.Errorf("AgentTimeout = %v, want 30s fallback for invalid value", got)
	}
}

func TestGraphToken(t *testing.T) {
	t.Setenv(GraphTokenEnv, "env-token")

	cfg := &Config{}
	if got := cfg.GraphToken(); got != "env-token" {
		t.Errorf("GraphToken = %q, want env-token", got)
	}

	cfg.Graph.Token = "file-token"
	if got := cfg.GraphToken(); got != "file-token" {
		t.Errorf("GraphToken = %q, want config value to win over env", got)
	}
}

func TestGraphEnabled(t *testing.T) {
	t.Setenv(GraphTokenEnv, "")
	cfg := &Config{}
	if cfg.GraphEnabled() {
		t.Error("expected GraphEnabled false without a token")
	}
	cfg.Graph.Token = "tok"
	if !cfg.GraphEnabled() {
		t.Error("expected GraphEnabled true with a token")
	}
}

func TestTaskListNames(t *testing.T) {
	cfg := &Config{}
	names := cfg.TaskListNames()
	if len(names) != 2 || names[0] != "Tasks from Teams" || names[1] != "Tasks" {
		t.Errorf("unexpected default list names: %v", names)
	}

	cfg.Graph.TaskLists = []string{"Team Backlog"}
	names = cfg.TaskListNames()
	if len(names) != 1 || names[0] != "Team Backlog" {
		t.Errorf("unexpected configured list names: %v", names)
	}
}

func TestPerQueryLimit(t *testing.T) {
	cfg := &Config{}
	if got := cfg.PerQueryLimit(); got != 5 {
		t.Errorf("expected default per-query limit 5, got %d", got)
	}
	cfg.News.PerQuery = 3
	if got := cfg.PerQueryLimit(); got != 3 {
		t.Errorf("expected per-query limit 3, got %d", got)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	content := `profile:
  display_name: Anas
  job_title: Data Engineer
  department: Platform
backend:
  base_url: http://10.0.0.2:5000
news:
  mode: direct
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Profile.JobTitle != "Data Engineer" {
		t.Errorf("expected job title from file, got %q", cfg.Profile.JobTitle)
	}
	if cfg.Backend.BaseURL != "http://10.0.0.2:5000" {
		t.Errorf("expected backend URL from file, got %q", cfg.Backend.BaseURL)
	}
	if cfg.News.Mode != "direct" {
		t.Errorf("expected news mode direct, got %q", cfg.News.Mode)
	}
	// Fields the file omitted fall back to the embedded defaults.
	if cfg.Agent.BaseURL == "" {
		t.Error("expected agent base_url filled from defaults")
	}
	if cfg.Suggest.BaseURL == "" {
		t.Error("expected suggest base_url filled from defaults")
	}
}

func TestLoadNonexistentFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sub", "config.yaml")

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend.BaseURL == "" {
		t.Error("expected defaults when config doesn't exist")
	}
	// First run writes the defaults out for the user to edit.
	if _, err := os.Stat(cfgPath); err != nil {
		t.Errorf("expected defaults written to %s: %v", cfgPath, err)
	}
}

func TestValidateInvalidScheme(t *testing.T) {
	cfg := &Config{
		Backend: BackendConfig{BaseURL: "file:///etc/passwd"},
		Agent:   AgentConfig{BaseURL: "http://localhost:8001"},
		Graph:   GraphConfig{BaseURL: "https://graph.microsoft.com/v1.0"},
		Suggest: SuggestConfig{BaseURL: "https://suggestqueries.google.com/complete/search"},
		News:    NewsConfig{Mode: "backend"},
	}
	if err := validate(cfg); err == nil {
		t.Error("expected error for file:// base_url")
	}
}

func TestValidateUnknownNewsMode(t *testing.T) {
	cfg, err := loadDefaults()
	if err != nil {
		t.Fatalf("loadDefaults: %v", err)
	}
	cfg.News.Mode = "offline"
	if err := validate(cfg); err == nil {
		t.Error("expected error for unknown news mode")
	}
}
