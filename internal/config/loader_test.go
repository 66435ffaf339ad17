package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func cleanupEnv(keys ...string) func() {
	original := make(map[string]string)
	for _, key := range keys {
		original[key] = os.Getenv(key)
	}
	return func() {
		for _, key := range keys {
			if val, ok := original[key]; ok && val != "" {
				os.Setenv(key, val)
			} else {
				os.Unsetenv(key)
			}
		}
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoaderDefaults(t *testing.T) {
	cfg, err := NewLoader().WithConfigPath("").WithSearchPaths(t.TempDir()).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	defaults := DefaultConfig()
	if cfg.Versioning.TagPrefix != defaults.Versioning.TagPrefix {
		t.Errorf("tag_prefix = %q, want %q", cfg.Versioning.TagPrefix, defaults.Versioning.TagPrefix)
	}
	if cfg.Check.EnforceLevel != "feature" || cfg.Check.MinimumLevel != "fix" {
		t.Errorf("check = %+v", cfg.Check)
	}
	if cfg.Env.LevelVar != "NEXTVER_LEVEL" || cfg.Env.VersionVar != "NEXTVER_VERSION" || cfg.Env.ChangeVar != "NEXTVER_CHANGE" {
		t.Errorf("env = %+v", cfg.Env)
	}
	if cfg.Git.RepoPath != "." || !cfg.Git.SearchParents {
		t.Errorf("git = %+v", cfg.Git)
	}
	if cfg.Output.Format != FormatText || !cfg.Output.Color || cfg.Output.LogLevel != "info" {
		t.Errorf("output = %+v", cfg.Output)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoaderReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".nextver.yaml", `
versioning:
  tag_prefix: release-
  pre_release: rc
check:
  required_files:
    - CHANGELOG.md
    - README.md
  enforce_level: breaking
env:
  enabled: true
  file: ${NEXTVER_TEST_DIR}/out.env
output:
  format: json
`)

	cleanup := cleanupEnv("NEXTVER_TEST_DIR")
	defer cleanup()
	os.Setenv("NEXTVER_TEST_DIR", "/tmp/ci")

	loader := NewLoader().WithConfigPath(path)
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loader.GetConfigPath() != path {
		t.Errorf("GetConfigPath() = %q, want %q", loader.GetConfigPath(), path)
	}
	if cfg.Versioning.TagPrefix != "release-" || cfg.Versioning.PreRelease != "rc" {
		t.Errorf("versioning = %+v", cfg.Versioning)
	}
	if !slices.Equal(cfg.Check.RequiredFiles, []string{"CHANGELOG.md", "README.md"}) {
		t.Errorf("required_files = %v", cfg.Check.RequiredFiles)
	}
	if cfg.Check.EnforceLevel != "breaking" {
		t.Errorf("enforce_level = %q", cfg.Check.EnforceLevel)
	}
	if cfg.Check.MinimumLevel != "fix" {
		t.Errorf("minimum_level should keep its default, got %q", cfg.Check.MinimumLevel)
	}
	if cfg.Env.File != "/tmp/ci/out.env" {
		t.Errorf("env.file = %q, want expanded path", cfg.Env.File)
	}
	if cfg.Output.Format != FormatJSON {
		t.Errorf("output.format = %q", cfg.Output.Format)
	}
}

func TestLoaderSearchesDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".nextver.toml", "[versioning]\ntag_prefix = \"ver\"\n")

	cfg, err := NewLoader().WithSearchPaths(dir).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Versioning.TagPrefix != "ver" {
		t.Errorf("tag_prefix = %q, want ver", cfg.Versioning.TagPrefix)
	}

	if !ConfigExists(dir) {
		t.Error("ConfigExists() = false")
	}
	if ConfigExists(t.TempDir()) {
		t.Error("ConfigExists() = true for empty dir")
	}
}

func TestLoaderMissingExplicitFile(t *testing.T) {
	_, err := NewLoader().WithConfigPath(filepath.Join(t.TempDir(), "missing.yaml")).Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
	if !strings.Contains(err.Error(), "missing.yaml") {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestLoaderEnvOverride(t *testing.T) {
	t.Setenv("NEXTVER_VERSIONING_TAG_PREFIX", "env-")
	t.Setenv("NEXTVER_OUTPUT_LOG_LEVEL", "debug")
	t.Setenv("NEXTVER_GIT_SEARCH_PARENTS", "false")

	cfg, err := NewLoader().WithSearchPaths(t.TempDir()).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Versioning.TagPrefix != "env-" {
		t.Errorf("tag_prefix = %q, want env-", cfg.Versioning.TagPrefix)
	}
	if cfg.Output.LogLevel != "debug" {
		t.Errorf("log_level = %q, want debug", cfg.Output.LogLevel)
	}
	if cfg.Git.SearchParents {
		t.Error("search_parents = true, want false from environment")
	}
}

func TestLoaderBindFlag(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("prefix", "v", "")
	fs.String("output", "text", "")
	if err := fs.Parse([]string{"--prefix", "flag-"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	dir := t.TempDir()
	path := writeFile(t, dir, ".nextver.yaml", "versioning:\n  tag_prefix: file-\noutput:\n  format: yaml\n")

	loader := NewLoader().WithConfigPath(path)
	if err := loader.BindFlag("versioning.tag_prefix", fs.Lookup("prefix")); err != nil {
		t.Fatalf("BindFlag() error = %v", err)
	}
	if err := loader.BindFlag("output.format", fs.Lookup("output")); err != nil {
		t.Fatalf("BindFlag() error = %v", err)
	}
	if err := loader.BindFlag("ignored", nil); err != nil {
		t.Fatalf("BindFlag(nil) error = %v", err)
	}

	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Versioning.TagPrefix != "flag-" {
		t.Errorf("explicit flag should win, got %q", cfg.Versioning.TagPrefix)
	}
	if cfg.Output.Format != FormatYAML {
		t.Errorf("unset flag should not override file, got %q", cfg.Output.Format)
	}
}

func TestLoaderExpandEnvVar(t *testing.T) {
	cleanup := cleanupEnv("TOKEN_VALUE", "FALLBACK")
	defer cleanup()

	os.Setenv("TOKEN_VALUE", "abc123")
	os.Setenv("FALLBACK", "fallback")

	value := expandEnvVar("prefix-${TOKEN_VALUE}-suffix:$MISSING:${MISSING:-default}:${FALLBACK}")

	if !strings.Contains(value, "abc123") {
		t.Fatalf("expected TOKEN_VALUE to expand, got %q", value)
	}
	if !strings.Contains(value, "default") {
		t.Fatalf("expected default to be used, got %q", value)
	}
	if !strings.Contains(value, "fallback") {
		t.Fatalf("expected FALLBACK to expand, got %q", value)
	}
	if !strings.Contains(value, "$MISSING") {
		t.Fatalf("expected unset $VAR to stay literal, got %q", value)
	}
	if expandEnvVar("") != "" {
		t.Fatal("empty input should stay empty")
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := FindConfigFile(dir); err == nil {
		t.Fatal("expected error when no config exists")
	}

	want := writeFile(t, dir, ".nextver.yml", "{}\n")
	got, err := FindConfigFile(dir)
	if err != nil {
		t.Fatalf("FindConfigFile() error = %v", err)
	}
	if got != want {
		t.Errorf("FindConfigFile() = %q, want %q", got, want)
	}
}
