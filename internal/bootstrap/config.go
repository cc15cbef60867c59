// Package bootstrap wires configuration, storage, the classification engine
// and the HTTP server into a running service.
package bootstrap

import (
	"fmt"

	infraconfig "github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/infrastructure/config"
	infralogger "github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/infrastructure/logger"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/config"
)

const defaultConfigPath = "config.yml"

// LoadConfig loads configuration from CONFIG_PATH or config.yml. A missing
// file yields defaults plus environment overrides.
func LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(infraconfig.GetConfigPath(defaultConfigPath))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// CreateLogger creates a logger instance from configuration.
func CreateLogger(cfg *config.Config) (infralogger.Logger, error) {
	logger, err := infralogger.New(infralogger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return logger.With(infralogger.String("service", cfg.Service.Name)), nil
}
