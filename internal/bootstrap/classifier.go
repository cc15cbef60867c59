package bootstrap

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	infralogger "github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/infrastructure/logger"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/infrastructure/retry"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/classifier"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/config"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/data"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/mlclient"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/telemetry"
)

// LoadLexicon returns the built-in lexicon, or the one in path when set.
func LoadLexicon(path string) (data.Lexicon, error) {
	if path == "" {
		return data.DefaultLexicon(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return data.Lexicon{}, fmt.Errorf("read lexicon file %s: %w", path, err)
	}

	var lex data.Lexicon
	if err = yaml.Unmarshal(raw, &lex); err != nil {
		return data.Lexicon{}, fmt.Errorf("parse lexicon file %s: %w", path, err)
	}
	return lex, nil
}

// NewDelegate creates the remote scoring client, or nil when disabled.
func NewDelegate(cfg *config.Config, logger infralogger.Logger) *mlclient.Client {
	if !cfg.Remote.Enabled {
		return nil
	}
	logger.Info("Remote classifier enabled",
		infralogger.String("url", cfg.Remote.URL),
		infralogger.Float64("requests_per_second", cfg.Remote.RequestsPerSecond),
	)
	return mlclient.NewClient(cfg.Remote.URL, mlclient.WithRateLimit(cfg.Remote.RequestsPerSecond, cfg.Remote.Burst))
}

// NewEngine assembles the classification engine from configuration.
func NewEngine(
	cfg *config.Config,
	rules RuleSets,
	delegate *mlclient.Client,
	logger infralogger.Logger,
	tp *telemetry.Provider,
) (*classifier.Engine, error) {
	lex, err := LoadLexicon(cfg.Classification.LexiconFile)
	if err != nil {
		return nil, err
	}

	engineCfg := classifier.EngineConfig{
		Lexicon:           lex,
		KeywordRules:      rules.Keyword,
		SemanticRules:     rules.Semantic,
		SemanticInitDelay: cfg.Classification.SemanticInitDelay,
		DisableCache:      cfg.Classification.DisableCache,
		Logger:            logger,
		Telemetry:         tp,
	}
	// A nil *mlclient.Client must not become a non-nil Delegate.
	if delegate != nil {
		engineCfg.Remote = delegate
		engineCfg.RemoteConfig = remoteConfig(cfg.Remote)
	}

	engine, err := classifier.NewEngine(engineCfg)
	if err != nil {
		return nil, fmt.Errorf("create classification engine: %w", err)
	}
	return engine, nil
}

func remoteConfig(r config.RemoteConfig) classifier.RemoteConfig {
	return classifier.RemoteConfig{
		Timeout:          r.Timeout,
		MaxRequests:      r.Breaker.MaxRequests,
		Interval:         r.Breaker.Interval,
		OpenTimeout:      r.Breaker.OpenTimeout,
		FailureThreshold: r.Breaker.FailureThreshold,
		Probe: retry.Config{
			MaxAttempts:  r.Probe.Attempts,
			InitialDelay: r.Probe.InitialDelay,
			MaxDelay:     r.Probe.MaxDelay,
		},
	}
}
