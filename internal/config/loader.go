package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Files tried in order when CONFIG_PATH is unset.
var defaultPaths = []string{"./config.yaml", "./config.yml"}

// Load builds the Config from env-default tags, an optional YAML file and
// the environment, in increasing priority, then validates it. A file named
// by CONFIG_PATH must exist; the default locations are optional.
func Load() (*Config, error) {
	path, err := resolvePath(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return nil, err
	}

	var cfg Config
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		if path == "" {
			path = "environment"
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// resolvePath returns the YAML file to read, or "" for env-only loading.
func resolvePath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config: CONFIG_PATH %s: %w", explicit, err)
		}
		return explicit, nil
	}
	for _, p := range defaultPaths {
		_, err := os.Stat(p)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("config: stat %s: %w", p, err)
		}
	}
	return "", nil
}
