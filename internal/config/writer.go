package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	rperrors "github.com/relicta-tech/nextver/internal/errors"
)

// File formats accepted by the config writer.
const (
	FileFormatYAML = "yaml"
	FileFormatTOML = "toml"
	FileFormatJSON = "json"
)

// DefaultFileName returns the default config file name for format.
func DefaultFileName(format string) string {
	return ConfigFileNames[0] + "." + format
}

// Marshal encodes cfg in the given file format.
func Marshal(cfg *Config, format string) ([]byte, error) {
	const op = "config.Marshal"

	var (
		data []byte
		err  error
	)
	switch format {
	case FileFormatYAML, "yml":
		data, err = yaml.Marshal(cfg)
	case FileFormatTOML:
		data, err = toml.Marshal(cfg)
	case FileFormatJSON:
		data, err = json.MarshalIndent(cfg, "", "  ")
		data = append(data, '\n')
	default:
		return nil, rperrors.Validation(op, "unsupported config format").WithDetail("format", format)
	}
	if err != nil {
		return nil, rperrors.ConfigWrap(err, op, "failed to encode config").WithDetail("format", format)
	}
	return data, nil
}

// WriteConfig writes cfg to path, choosing the encoding from the file
// extension. An existing file is only replaced when overwrite is set.
func WriteConfig(cfg *Config, path string, overwrite bool) error {
	const op = "config.WriteConfig"

	format := strings.TrimPrefix(filepath.Ext(path), ".")
	data, err := Marshal(cfg, format)
	if err != nil {
		return err
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return rperrors.ConflictWrap(os.ErrExist, op, "config file already exists").WithDetail("path", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return rperrors.IOWrap(err, op, "failed to check config file").WithDetail("path", path)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return rperrors.IOWrap(err, op, "failed to write config file").WithDetail("path", path)
	}
	return nil
}

// WriteDefaultConfig writes the default configuration to path.
func WriteDefaultConfig(path string, overwrite bool) error {
	return WriteConfig(DefaultConfig(), path, overwrite)
}
