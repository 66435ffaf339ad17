package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	rperrors "github.com/relicta-tech/nextver/internal/errors"
)

// EnvPrefix is the prefix for configuration environment variables, e.g.
// NEXTVER_VERSIONING_TAG_PREFIX.
const EnvPrefix = "NEXTVER"

var (
	// envVarPattern matches ${VAR} or ${VAR:-default} syntax
	envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)
	// simpleEnvVarPattern matches $VAR syntax
	simpleEnvVarPattern = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// Loader handles configuration loading and merging.
type Loader struct {
	v           *viper.Viper
	configPath  string
	searchPaths []string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return &Loader{
		v:           v,
		searchPaths: []string{"."},
	}
}

// WithConfigPath sets an explicit config file path.
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithSearchPaths adds directories to search for config files.
func (l *Loader) WithSearchPaths(paths ...string) *Loader {
	l.searchPaths = append(l.searchPaths, paths...)
	return l
}

// BindFlag makes a command-line flag override the config key when the flag
// was set explicitly.
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return nil
	}
	if err := l.v.BindPFlag(key, flag); err != nil {
		return rperrors.ConfigWrap(err, "config.BindFlag", "failed to bind flag").WithDetail("key", key)
	}
	return nil
}

// Load loads the configuration.
func (l *Loader) Load() (*Config, error) {
	const op = "config.Load"

	l.setDefaults()

	if err := l.loadConfigFile(); err != nil {
		return nil, rperrors.ConfigWrap(err, op, "failed to load config file")
	}

	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, rperrors.ConfigWrap(err, op, "failed to unmarshal config")
	}

	l.expandEnvVars(cfg)

	return cfg, nil
}

// setDefaults sets default values using Viper.
func (l *Loader) setDefaults() {
	defaults := DefaultConfig()

	l.v.SetDefault("versioning.tag_prefix", defaults.Versioning.TagPrefix)
	l.v.SetDefault("versioning.pre_release", defaults.Versioning.PreRelease)
	l.v.SetDefault("versioning.force", defaults.Versioning.Force)
	l.v.SetDefault("versioning.constraint", defaults.Versioning.Constraint)

	l.v.SetDefault("check.required_files", defaults.Check.RequiredFiles)
	l.v.SetDefault("check.enforce_level", defaults.Check.EnforceLevel)
	l.v.SetDefault("check.minimum_level", defaults.Check.MinimumLevel)

	l.v.SetDefault("env.enabled", defaults.Env.Enabled)
	l.v.SetDefault("env.file", defaults.Env.File)
	l.v.SetDefault("env.level_var", defaults.Env.LevelVar)
	l.v.SetDefault("env.version_var", defaults.Env.VersionVar)
	l.v.SetDefault("env.change_var", defaults.Env.ChangeVar)

	l.v.SetDefault("git.repo_path", defaults.Git.RepoPath)
	l.v.SetDefault("git.search_parents", defaults.Git.SearchParents)

	l.v.SetDefault("output.format", defaults.Output.Format)
	l.v.SetDefault("output.color", defaults.Output.Color)
	l.v.SetDefault("output.verbose", defaults.Output.Verbose)
	l.v.SetDefault("output.log_level", defaults.Output.LogLevel)
	l.v.SetDefault("output.log_file", defaults.Output.LogFile)
}

// loadConfigFile loads the configuration file.
func (l *Loader) loadConfigFile() error {
	if l.configPath != "" {
		l.v.SetConfigFile(l.configPath)
		if err := l.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", l.configPath, err)
		}
		return nil
	}

	if configFile, ok := findConfigFile(l.searchPaths); ok {
		l.v.SetConfigFile(configFile)
		if err := l.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	// No config file found - this is OK, we use defaults
	return nil
}

// expandEnvVars expands environment variables in path-like fields.
func (l *Loader) expandEnvVars(cfg *Config) {
	cfg.Env.File = expandEnvVar(cfg.Env.File)
	cfg.Git.RepoPath = expandEnvVar(cfg.Git.RepoPath)
	cfg.Output.LogFile = expandEnvVar(cfg.Output.LogFile)
}

// expandEnvVar expands environment variables in a string.
// Supports both ${VAR} and $VAR syntax.
func expandEnvVar(s string) string {
	if s == "" {
		return s
	}

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		submatch := envVarPattern.FindStringSubmatch(match)
		if len(submatch) < 2 {
			return match
		}

		varName := submatch[1]
		defaultValue := ""
		if len(submatch) > 2 {
			defaultValue = submatch[2]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}
		return defaultValue
	})

	result = simpleEnvVarPattern.ReplaceAllStringFunc(result, func(match string) string {
		varName := match[1:]
		if value := os.Getenv(varName); value != "" {
			return value
		}
		return match
	})

	return result
}

// GetConfigPath returns the path to the loaded config file, if any.
func (l *Loader) GetConfigPath() string {
	return l.v.ConfigFileUsed()
}

// FindConfigFile searches for a config file and returns its path.
func FindConfigFile(searchPaths ...string) (string, error) {
	if len(searchPaths) == 0 {
		searchPaths = []string{"."}
	}
	if configFile, ok := findConfigFile(searchPaths); ok {
		return configFile, nil
	}
	return "", rperrors.New(rperrors.KindNotFound, "no config file found")
}

// ConfigExists returns true if a config file exists in the given directory.
func ConfigExists(dir string) bool {
	_, err := FindConfigFile(dir)
	return err == nil
}

func findConfigFile(searchPaths []string) (string, bool) {
	for _, searchPath := range searchPaths {
		for _, name := range ConfigFileNames {
			for _, ext := range ConfigFileExtensions {
				configFile := filepath.Join(searchPath, name+"."+ext)
				if _, err := os.Stat(configFile); err == nil {
					return configFile, true
				}
			}
		}
	}
	return "", false
}
