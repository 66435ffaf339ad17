package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/relicta-tech/nextver/internal/domain/changes"
	"github.com/relicta-tech/nextver/internal/domain/version"
	rperrors "github.com/relicta-tech/nextver/internal/errors"
)

// envNamePattern matches a portable environment variable name.
var envNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// validLogLevels lists accepted output.log_level values.
var validLogLevels = []string{"debug", "info", "warn", "error"}

// ValidationError contains all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if len(e.Errors) > 0 {
		parts = append(parts, fmt.Sprintf("Errors:\n  - %s", strings.Join(e.Errors, "\n  - ")))
	}

	if len(e.Warnings) > 0 {
		parts = append(parts, fmt.Sprintf("Warnings:\n  - %s", strings.Join(e.Warnings, "\n  - ")))
	}

	return fmt.Sprintf("configuration validation failed:\n%s", strings.Join(parts, "\n"))
}

// HasErrors returns true if there are validation errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// HasWarnings returns true if there are validation warnings.
func (e *ValidationError) HasWarnings() bool {
	return len(e.Warnings) > 0
}

// Addf adds a formatted error to the validation error.
func (e *ValidationError) Addf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

// Warnf adds a formatted warning to the validation error.
func (e *ValidationError) Warnf(format string, args ...any) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(format, args...))
}

// Validator validates configuration.
type Validator struct {
	errors *ValidationError
}

// NewValidator creates a new configuration validator.
func NewValidator() *Validator {
	return &Validator{
		errors: &ValidationError{},
	}
}

// Warnings returns the warnings collected by the last Validate call.
func (v *Validator) Warnings() []string {
	return v.errors.Warnings
}

// Validate validates the configuration. Warnings never fail validation.
func (v *Validator) Validate(cfg *Config) error {
	v.validateVersioning(cfg.Versioning)
	v.validateCheck(cfg.Check)
	v.validateEnv(cfg.Env)
	v.validateGit(cfg.Git)
	v.validateOutput(cfg.Output)

	if v.errors.HasErrors() {
		return rperrors.Wrap(v.errors, rperrors.KindValidation, "config.Validate", "invalid configuration")
	}

	return nil
}

// validateVersioning validates versioning configuration.
func (v *Validator) validateVersioning(cfg VersioningConfig) {
	if cfg.TagPrefix == "" {
		v.errors.Addf("versioning.tag_prefix: must not be empty")
	}

	if cfg.PreRelease != "" && !version.ValidSuffix(cfg.PreRelease) {
		v.errors.Addf("versioning.pre_release: %q must contain only [0-9A-Za-z-]", cfg.PreRelease)
	}

	if cfg.Force != "" {
		if _, err := version.ParseForceLevel(cfg.Force); err != nil {
			v.errors.Addf("versioning.force: must be one of major, minor, patch, first, got %q", cfg.Force)
		}
	}

	if cfg.Constraint != "" {
		if _, err := semver.NewConstraint(cfg.Constraint); err != nil {
			v.errors.Addf("versioning.constraint: %v", err)
		}
	}

	if cfg.Force == string(version.ForceFirst) && cfg.PreRelease != "" {
		v.errors.Warnf("versioning.pre_release: ignored when force is %q", cfg.Force)
	}
}

// validateCheck validates the release gates.
func (v *Validator) validateCheck(cfg CheckConfig) {
	if _, err := changes.ParseChangeType(cfg.EnforceLevel); err != nil {
		v.errors.Addf("check.enforce_level: %q is not a change type", cfg.EnforceLevel)
	}
	if _, err := changes.ParseChangeType(cfg.MinimumLevel); err != nil {
		v.errors.Addf("check.minimum_level: %q is not a change type", cfg.MinimumLevel)
	}

	seen := make(map[string]bool, len(cfg.RequiredFiles))
	for _, f := range cfg.RequiredFiles {
		switch {
		case strings.TrimSpace(f) == "":
			v.errors.Addf("check.required_files: entries must not be empty")
		case seen[f]:
			v.errors.Warnf("check.required_files: %q listed more than once", f)
		}
		seen[f] = true
	}
}

// validateEnv validates environment variable emission.
func (v *Validator) validateEnv(cfg EnvConfig) {
	names := map[string]string{
		"env.level_var":   cfg.LevelVar,
		"env.version_var": cfg.VersionVar,
		"env.change_var":  cfg.ChangeVar,
	}
	keys := make([]string, 0, len(names))
	for k := range names {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		if !envNamePattern.MatchString(names[key]) {
			v.errors.Addf("%s: %q is not a valid environment variable name", key, names[key])
		}
	}

	if cfg.File != "" && !cfg.Enabled {
		v.errors.Warnf("env.file: set but env.enabled is false")
	}
}

// validateGit validates repository access.
func (v *Validator) validateGit(cfg GitConfig) {
	if cfg.RepoPath == "" {
		v.errors.Addf("git.repo_path: must not be empty")
	}
}

// validateOutput validates output configuration.
func (v *Validator) validateOutput(cfg OutputConfig) {
	if !slices.Contains(OutputFormats, cfg.Format) {
		v.errors.Addf("output.format: must be one of %v, got %q", OutputFormats, cfg.Format)
	}
	if !slices.Contains(validLogLevels, cfg.LogLevel) {
		v.errors.Addf("output.log_level: must be one of %v, got %q", validLogLevels, cfg.LogLevel)
	}
}

// Validate validates the configuration using a fresh validator.
func Validate(cfg *Config) error {
	return NewValidator().Validate(cfg)
}
