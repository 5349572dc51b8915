package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/tinyioc/errors"
)

func TestBaseConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := BaseConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
	})

	t.Run("production environment keeps debug false", func(t *testing.T) {
		cfg := BaseConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
	})
}

func TestBaseConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     BaseConfig
		wantErr bool
		errMsg  string
		field   string
	}{
		{"valid development", BaseConfig{Name: "svc", Environment: "development"}, false, "", ""},
		{"valid production", BaseConfig{Name: "svc", Environment: "production"}, false, "", ""},
		{"missing name", BaseConfig{Environment: "production"}, true, "base.name is required", "name"},
		{"invalid environment", BaseConfig{Name: "svc", Environment: "invalid"}, true, "base.environment must be one of [development, staging, production]", "environment"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !strings.Contains(err.Error(), tc.errMsg) {
					t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
				}
				appErr, ok := errors.AsAppError(err)
				if !ok || appErr.Code != errors.ErrCodeInvalidConfig {
					t.Fatalf("expected INVALID_CONFIG, got %v", err)
				}
				if appErr.Details["field"] != tc.field || appErr.Details["section"] != "base" {
					t.Errorf("unexpected details %v", appErr.Details)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestSettingsApplyDefaults(t *testing.T) {
	s := Settings{Base: BaseConfig{Name: "billing"}}
	s.ApplyDefaults()

	if s.Logging.Level != "info" {
		t.Errorf("expected logging level 'info', got %q", s.Logging.Level)
	}
	if s.Telemetry.Endpoint != "localhost:4318" {
		t.Errorf("expected default endpoint, got %q", s.Telemetry.Endpoint)
	}
	if s.Telemetry.SampleRate != 1.0 {
		t.Errorf("expected sample rate 1.0, got %v", s.Telemetry.SampleRate)
	}
	if s.Telemetry.MetricInterval != 15*time.Second {
		t.Errorf("expected metric interval 15s, got %v", s.Telemetry.MetricInterval)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestSettingsValidate(t *testing.T) {
	valid := func() Settings {
		s := Settings{Base: BaseConfig{Name: "billing"}}
		s.ApplyDefaults()
		return s
	}

	tests := []struct {
		name    string
		mutate  func(*Settings)
		section string
	}{
		{"missing name", func(s *Settings) { s.Base.Name = "" }, "base"},
		{"bad log level", func(s *Settings) { s.Logging.Level = "loud" }, "logging"},
		{"bad sample rate", func(s *Settings) { s.Telemetry.SampleRate = 1.5 }, "telemetry"},
		{"service args not a mapping", func(s *Settings) { s.Services = map[string]any{"mailer": "smtp"} }, "services"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := valid()
			tc.mutate(&s)
			err := s.Validate()
			if !errors.HasCode(err, errors.ErrCodeInvalidConfig) {
				t.Fatalf("expected INVALID_CONFIG, got %v", err)
			}
			appErr, _ := errors.AsAppError(err)
			if appErr.Details["section"] != tc.section {
				t.Errorf("expected section %q, got %v", tc.section, appErr.Details["section"])
			}
		})
	}
}

func TestSettingsServiceArgs(t *testing.T) {
	s := Settings{Services: map[string]any{
		"mailer": map[string]any{"host": "smtp.internal", "port": 2525},
	}}

	args := s.ServiceArgs("mailer")
	if args["host"] != "smtp.internal" {
		t.Errorf("expected host, got %v", args["host"])
	}
	if s.ServiceArgs("cache") != nil {
		t.Error("expected nil args for unknown service")
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	yamlContent := `
base:
  name: billing
  environment: staging
logging:
  level: debug
  format: json
services:
  mailer:
    host: smtp.internal
    port: 2525
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var s Settings
	if err := LoadConfig("billing", &s, WithConfigFile(configPath)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if s.Base.Name != "billing" {
		t.Errorf("expected name 'billing', got %q", s.Base.Name)
	}
	if s.Base.Environment != "staging" {
		t.Errorf("expected environment 'staging', got %q", s.Base.Environment)
	}
	if s.Logging.Level != "debug" {
		t.Errorf("expected logging level 'debug', got %q", s.Logging.Level)
	}
	args := s.ServiceArgs("mailer")
	if args["host"] != "smtp.internal" {
		t.Errorf("expected mailer host from file, got %v", args["host"])
	}
	if args["port"] != 2525 {
		t.Errorf("expected mailer port 2525, got %v (%T)", args["port"], args["port"])
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(configPath, []byte("logging:\n  level: info\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("LOGGING_LEVEL", "warn")

	var s Settings
	if err := LoadConfig("billing", &s, WithConfigFile(configPath)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if s.Logging.Level != "warn" {
		t.Errorf("expected env override 'warn', got %q", s.Logging.Level)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var s Settings
	err := LoadConfig("nonexistent-service", &s, WithConfigFile("/nonexistent/path.yml"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"cmd/my-svc/config.yml": true,
		"config/.env":           true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("my-svc", LoaderConfig{})
	if files.ConfigFile != "cmd/my-svc/config.yml" {
		t.Errorf("expected config file at cmd/my-svc/config.yml, got %q", files.ConfigFile)
	}
	if files.EnvFile != "config/.env" {
		t.Errorf("expected env file at config/.env, got %q", files.EnvFile)
	}
}

func TestResolverShortName(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"../cmd/svc/config.yaml": true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("my-svc", LoaderConfig{})
	if files.ConfigFile != "../cmd/svc/config.yaml" {
		t.Errorf("expected short-name config file, got %q", files.ConfigFile)
	}
}

func TestResolverExplicitPaths(t *testing.T) {
	resolver := &Resolver{FileSystem: &mockFS{}}
	files := resolver.ResolveFiles("svc", LoaderConfig{ConfigFile: "/etc/svc.yml", EnvFile: "/etc/svc.env"})
	if files.ConfigFile != "/etc/svc.yml" || files.EnvFile != "/etc/svc.env" {
		t.Errorf("expected explicit paths, got %+v", files)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool   { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestWithFileSystemOption(t *testing.T) {
	var lc LoaderConfig
	WithFileSystem(&mockFS{})(&lc)
	if lc.FileSystem == nil {
		t.Error("expected FileSystem to be set")
	}
}

func TestWithConfigFileOption(t *testing.T) {
	var lc LoaderConfig
	WithConfigFile("/path/to/config.yml")(&lc)
	if lc.ConfigFile != "/path/to/config.yml" {
		t.Errorf("expected config file path, got %q", lc.ConfigFile)
	}
}

func TestWithEnvFileOption(t *testing.T) {
	var lc LoaderConfig
	WithEnvFile("/path/to/.env")(&lc)
	if lc.EnvFile != "/path/to/.env" {
		t.Errorf("expected env file path, got %q", lc.EnvFile)
	}
}
