// Package config loads service configuration from a YAML file and lets
// environment variables override individual fields.
//
// Before overrides are applied the loader reads dotenv files: the file named
// by ENV_FILE when it is set, otherwise .env.local followed by .env. Values
// already present in the process environment are never replaced.
//
// Fields opt into overrides with an `env:"NAME"` tag:
//
//	type Remote struct {
//	    URL     string        `yaml:"url"     env:"REMOTE_URL"`
//	    Timeout time.Duration `yaml:"timeout" env:"REMOTE_TIMEOUT"`
//	}
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

func loadEnvFiles() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		return loadEnvFile(envFile)
	}
	for _, name := range []string{".env.local", ".env"} {
		if err := loadEnvFile(name); err != nil {
			return err
		}
	}
	return nil
}

func loadEnvFile(name string) error {
	if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file %s: %w", name, err)
	}
	return nil
}

// Load decodes the YAML file at path into a T and applies env overrides.
func Load[T any](path string) (*T, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg T
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)
	return &cfg, nil
}

// LoadWithDefaults is Load followed by setDefaults. Env overrides run again
// afterwards so an explicit variable always beats a default. A missing file
// is not an error: the result is built from defaults and the environment.
func LoadWithDefaults[T any](path string, setDefaults func(*T)) (*T, error) {
	cfg, err := Load[T](path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = new(T), nil
	}
	if err != nil {
		return nil, err
	}

	if setDefaults != nil {
		setDefaults(cfg)
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// GetConfigPath returns CONFIG_PATH when set, otherwise defaultPath.
func GetConfigPath(defaultPath string) string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return defaultPath
}
