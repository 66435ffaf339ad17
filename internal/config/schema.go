// Package config provides configuration management for nextver.
package config

// Config is the root configuration for nextver.
type Config struct {
	// Versioning configures how the next version is calculated.
	Versioning VersioningConfig `mapstructure:"versioning" json:"versioning" yaml:"versioning" toml:"versioning"`
	// Check configures the required-file and minimum-level gates.
	Check CheckConfig `mapstructure:"check" json:"check" yaml:"check" toml:"check"`
	// Env configures environment variable emission.
	Env EnvConfig `mapstructure:"env" json:"env" yaml:"env" toml:"env"`
	// Git configures repository access.
	Git GitConfig `mapstructure:"git" json:"git" yaml:"git" toml:"git"`
	// Output configures output settings.
	Output OutputConfig `mapstructure:"output" json:"output" yaml:"output" toml:"output"`
}

// VersioningConfig configures version calculation.
type VersioningConfig struct {
	// TagPrefix is the prefix version tags start with (default: "v").
	TagPrefix string `mapstructure:"tag_prefix" json:"tag_prefix" yaml:"tag_prefix" toml:"tag_prefix"`
	// PreRelease is the pre-release suffix to calculate for (e.g. "alpha", "rc").
	PreRelease string `mapstructure:"pre_release" json:"pre_release" yaml:"pre_release" toml:"pre_release"`
	// Force overrides commit classification (major, minor, patch, first).
	Force string `mapstructure:"force" json:"force" yaml:"force" toml:"force"`
	// Constraint is a semver range the next version must satisfy.
	Constraint string `mapstructure:"constraint" json:"constraint" yaml:"constraint" toml:"constraint"`
}

// CheckConfig configures release gates.
type CheckConfig struct {
	// RequiredFiles must all change once EnforceLevel is reached.
	RequiredFiles []string `mapstructure:"required_files" json:"required_files" yaml:"required_files" toml:"required_files"`
	// EnforceLevel is the change type at which RequiredFiles are enforced.
	EnforceLevel string `mapstructure:"enforce_level" json:"enforce_level" yaml:"enforce_level" toml:"enforce_level"`
	// MinimumLevel is the change type the check command requires.
	MinimumLevel string `mapstructure:"minimum_level" json:"minimum_level" yaml:"minimum_level" toml:"minimum_level"`
}

// EnvConfig configures environment variable emission.
type EnvConfig struct {
	// Enabled emits the variables after every calculation.
	Enabled bool `mapstructure:"enabled" json:"enabled" yaml:"enabled" toml:"enabled"`
	// File is the env file to append to. Falls back to $GITHUB_ENV, then stdout.
	File string `mapstructure:"file" json:"file" yaml:"file" toml:"file"`
	// LevelVar names the bump level variable.
	LevelVar string `mapstructure:"level_var" json:"level_var" yaml:"level_var" toml:"level_var"`
	// VersionVar names the next version variable.
	VersionVar string `mapstructure:"version_var" json:"version_var" yaml:"version_var" toml:"version_var"`
	// ChangeVar names the change level variable.
	ChangeVar string `mapstructure:"change_var" json:"change_var" yaml:"change_var" toml:"change_var"`
}

// GitConfig configures repository access.
type GitConfig struct {
	// RepoPath is a path inside the repository (default: ".").
	RepoPath string `mapstructure:"repo_path" json:"repo_path" yaml:"repo_path" toml:"repo_path"`
	// SearchParents looks for the repository in parent directories of
	// RepoPath (default: true).
	SearchParents bool `mapstructure:"search_parents" json:"search_parents" yaml:"search_parents" toml:"search_parents"`
}

// OutputConfig configures output settings.
type OutputConfig struct {
	// Format is the result format (text, json, yaml, version, level).
	Format string `mapstructure:"format" json:"format" yaml:"format" toml:"format"`
	// Color enables colored output.
	Color bool `mapstructure:"color" json:"color" yaml:"color" toml:"color"`
	// Verbose enables debug logging.
	Verbose bool `mapstructure:"verbose" json:"verbose" yaml:"verbose" toml:"verbose"`
	// LogLevel is the log level (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level" json:"log_level" yaml:"log_level" toml:"log_level"`
	// LogFile redirects logs to a file.
	LogFile string `mapstructure:"log_file" json:"log_file,omitempty" yaml:"log_file,omitempty" toml:"log_file,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Versioning: VersioningConfig{
			TagPrefix: "v",
		},
		Check: CheckConfig{
			RequiredFiles: []string{},
			EnforceLevel:  "feature",
			MinimumLevel:  "fix",
		},
		Env: EnvConfig{
			LevelVar:   "NEXTVER_LEVEL",
			VersionVar: "NEXTVER_VERSION",
			ChangeVar:  "NEXTVER_CHANGE",
		},
		Git: GitConfig{
			RepoPath:      ".",
			SearchParents: true,
		},
		Output: OutputConfig{
			Format:   "text",
			Color:    true,
			LogLevel: "info",
		},
	}
}

// ConfigFileNames to search for.
var ConfigFileNames = []string{
	".nextver",
}

// ConfigFileExtensions supported by Viper.
var ConfigFileExtensions = []string{
	"yaml",
	"yml",
	"json",
	"toml",
}

// Output formats accepted by output.format.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatVersion = "version"
	FormatLevel   = "level"
)

// OutputFormats lists every accepted output format.
var OutputFormats = []string{FormatText, FormatJSON, FormatYAML, FormatVersion, FormatLevel}
