package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	derrors "github.com/deskautomate/engine/internal/errors"
)

// DefaultDirPerms is the permission mode used when creating config directories.
const DefaultDirPerms = 0o750

// Load reads and validates a TOML config file at path, applying defaults to
// any field left zero. An empty path falls back to DefaultPath().
func Load(path string) (*Config, error) {
	resolved := path
	if resolved == "" {
		var err error

		resolved, err = DefaultPath()
		if err != nil {
			return nil, derrors.Wrap(err, derrors.CodeInvalidConfig, "failed to resolve default config path")
		}
	}

	cfg := Default()

	_, statErr := os.Stat(resolved)
	if os.IsNotExist(statErr) {
		applyDefaults(cfg)

		return cfg, nil
	}

	_, decodeErr := toml.DecodeFile(resolved, cfg)
	if decodeErr != nil {
		return nil, derrors.Wrap(decodeErr, derrors.CodeInvalidConfig, "failed to parse config file")
	}

	applyDefaults(cfg)

	validateErr := Validate(cfg)
	if validateErr != nil {
		return nil, validateErr
	}

	return cfg, nil
}

// DefaultPath returns the platform-appropriate default config file location.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", derrors.Wrap(err, derrors.CodeInvalidConfig, "failed to resolve home directory")
	}

	return filepath.Join(homeDir, ".config", "terminator-engine", "config.toml"), nil
}

// Save writes cfg to path as TOML, creating parent directories as needed.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)

	mkdirErr := os.MkdirAll(dir, DefaultDirPerms)
	if mkdirErr != nil {
		return derrors.Wrap(mkdirErr, derrors.CodeInvalidConfig, "failed to create config directory")
	}

	file, openErr := os.Create(path)
	if openErr != nil {
		return derrors.Wrap(openErr, derrors.CodeInvalidConfig, "failed to create config file")
	}
	defer file.Close()

	encodeErr := toml.NewEncoder(file).Encode(cfg)
	if encodeErr != nil {
		return derrors.Wrap(encodeErr, derrors.CodeInvalidConfig, "failed to encode config file")
	}

	return nil
}
