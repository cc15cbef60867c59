// Package config holds the classification service configuration.
package config

import (
	"errors"
	"fmt"
	"time"

	infraconfig "github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/infrastructure/config"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/infrastructure/profiling"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/domain"
)

// Default configuration values.
const (
	defaultServiceName       = "email-classifier"
	defaultServiceVersion    = "1.0.0"
	defaultServicePort       = 8075
	defaultConcurrency       = 8
	defaultMaxBatchSize      = 100
	defaultSemanticInitDelay = 1500 * time.Millisecond
	defaultDBName            = "email_classifier"
	defaultRemoteTimeout     = 5 * time.Second
	defaultRemoteRPS         = 20
	defaultBreakerMaxReqs    = 3
	defaultBreakerInterval   = 60 * time.Second
	defaultBreakerOpen       = 30 * time.Second
	defaultBreakerThreshold  = 5
	defaultProbeAttempts     = 5
	defaultProbeInitialDelay = 500 * time.Millisecond
	defaultProbeMaxDelay     = 10 * time.Second
)

// Config holds all configuration for the classification service.
type Config struct {
	Service        ServiceConfig             `yaml:"service"`
	Logging        infraconfig.LoggingConfig `yaml:"logging"`
	Classification ClassificationConfig      `yaml:"classification"`
	Remote         RemoteConfig              `yaml:"remote"`
	Database       DatabaseConfig            `yaml:"database"`
	Auth           AuthConfig                `yaml:"auth"`
	Profiling      profiling.Config          `yaml:"profiling"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name         string `yaml:"name"`
	Version      string `yaml:"version"`
	Port         int    `env:"CLASSIFIER_PORT"        yaml:"port"`
	Debug        bool   `env:"APP_DEBUG"              yaml:"debug"`
	Concurrency  int    `env:"CLASSIFIER_CONCURRENCY" yaml:"concurrency"`
	MaxBatchSize int    `env:"CLASSIFIER_MAX_BATCH"   yaml:"max_batch_size"`
}

// ClassificationConfig tunes the local tiers. Empty rule lists fall back to
// the built-in tables; a lexicon file replaces the built-in lexicon.
type ClassificationConfig struct {
	SemanticInitDelay time.Duration        `env:"SEMANTIC_INIT_DELAY" yaml:"semantic_init_delay"`
	DisableCache      bool                 `env:"DISABLE_CACHE"       yaml:"disable_cache"`
	LexiconFile       string               `env:"LEXICON_FILE"        yaml:"lexicon_file"`
	KeywordRules      []domain.ContextRule `yaml:"keyword_rules"`
	SemanticRules     []domain.ContextRule `yaml:"semantic_rules"`
}

// RemoteConfig configures the optional scoring delegate.
type RemoteConfig struct {
	Enabled           bool          `env:"REMOTE_ENABLED"  yaml:"enabled"`
	URL               string        `env:"REMOTE_URL"      yaml:"url"`
	Timeout           time.Duration `env:"REMOTE_TIMEOUT"  yaml:"timeout"`
	RequestsPerSecond float64       `env:"REMOTE_RPS"      yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
	Breaker           BreakerConfig `yaml:"breaker"`
	Probe             ProbeConfig   `yaml:"probe"`
}

// BreakerConfig configures the delegate circuit breaker.
type BreakerConfig struct {
	MaxRequests      uint32        `yaml:"max_requests"`
	Interval         time.Duration `yaml:"interval"`
	OpenTimeout      time.Duration `yaml:"open_timeout"`
	FailureThreshold uint32        `yaml:"failure_threshold"`
}

// ProbeConfig configures the health probe that makes the delegate tier ready.
type ProbeConfig struct {
	Attempts     int           `yaml:"attempts"`
	InitialDelay time.Duration `yaml:"initial_delay"`
	MaxDelay     time.Duration `yaml:"max_delay"`
}

// DatabaseConfig enables loading context rules from PostgreSQL.
type DatabaseConfig struct {
	Enabled                    bool `env:"DATABASE_ENABLED" yaml:"enabled"`
	infraconfig.DatabaseConfig `yaml:",inline"`
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	JWTSecret string `env:"AUTH_JWT_SECRET" yaml:"jwt_secret"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	cfg, err := infraconfig.LoadWithDefaults[Config](path, setDefaults)
	if err != nil {
		return nil, err
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	cfg.Logging.SetDefaults()
	if cfg.Classification.SemanticInitDelay == 0 {
		cfg.Classification.SemanticInitDelay = defaultSemanticInitDelay
	}
	setRemoteDefaults(&cfg.Remote)
	cfg.Database.SetDefaults()
	if cfg.Database.Database == "" {
		cfg.Database.Database = defaultDBName
	}
	// Auth defaults are handled by env tags - no explicit defaults needed
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
	if s.Concurrency == 0 {
		s.Concurrency = defaultConcurrency
	}
	if s.MaxBatchSize == 0 {
		s.MaxBatchSize = defaultMaxBatchSize
	}
}

func setRemoteDefaults(r *RemoteConfig) {
	if r.Timeout == 0 {
		r.Timeout = defaultRemoteTimeout
	}
	if r.RequestsPerSecond == 0 {
		r.RequestsPerSecond = defaultRemoteRPS
	}
	if r.Burst == 0 {
		r.Burst = int(r.RequestsPerSecond)
	}
	if r.Breaker.MaxRequests == 0 {
		r.Breaker.MaxRequests = defaultBreakerMaxReqs
	}
	if r.Breaker.Interval == 0 {
		r.Breaker.Interval = defaultBreakerInterval
	}
	if r.Breaker.OpenTimeout == 0 {
		r.Breaker.OpenTimeout = defaultBreakerOpen
	}
	if r.Breaker.FailureThreshold == 0 {
		r.Breaker.FailureThreshold = defaultBreakerThreshold
	}
	if r.Probe.Attempts == 0 {
		r.Probe.Attempts = defaultProbeAttempts
	}
	if r.Probe.InitialDelay == 0 {
		r.Probe.InitialDelay = defaultProbeInitialDelay
	}
	if r.Probe.MaxDelay == 0 {
		r.Probe.MaxDelay = defaultProbeMaxDelay
	}
}

// Validate checks the configuration after defaults are applied.
func (c *Config) Validate() error {
	var errs []error

	if err := infraconfig.ValidatePort("service.port", c.Service.Port); err != nil {
		errs = append(errs, err)
	}
	if err := infraconfig.ValidatePositive("service.concurrency", float64(c.Service.Concurrency)); err != nil {
		errs = append(errs, err)
	}
	if err := infraconfig.ValidatePositive("service.max_batch_size", float64(c.Service.MaxBatchSize)); err != nil {
		errs = append(errs, err)
	}
	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, err)
	}

	if c.Remote.Enabled {
		if err := infraconfig.ValidateRequired("remote.url", c.Remote.URL); err != nil {
			errs = append(errs, err)
		}
		if err := infraconfig.ValidatePositive("remote.timeout", c.Remote.Timeout.Seconds()); err != nil {
			errs = append(errs, err)
		}
	}

	if c.Database.Enabled {
		if err := c.Database.Validate(); err != nil {
			errs = append(errs, err)
		}
	}

	for _, r := range c.Classification.KeywordRules {
		if err := r.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("classification.keyword_rules: %w", err))
		}
	}
	for _, r := range c.Classification.SemanticRules {
		if err := r.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("classification.semantic_rules: %w", err))
		}
	}

	return errors.Join(errs...)
}

// RuleSet returns the configured rules for set, ordered as written and
// enabled, or nil when none are configured.
func (c *ClassificationConfig) RuleSet(set string) []domain.ContextRule {
	src := c.KeywordRules
	if set == domain.RuleSetSemantic {
		src = c.SemanticRules
	}
	if len(src) == 0 {
		return nil
	}
	out := make([]domain.ContextRule, len(src))
	for i, r := range src {
		r.RuleSet = set
		r.Position = i
		r.Enabled = true
		out[i] = r
	}
	return out
}
