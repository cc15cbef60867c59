package classifier

import (
	"context"
	"fmt"
	"time"

	infralogger "github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/infrastructure/logger"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/data"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/domain"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/telemetry"
)

// Local tier names.
const (
	TierKeyword  = "keyword"
	TierSemantic = "semantic"
)

// DefaultSemanticInitDelay is the simulated model warm-up of the semantic tier.
const DefaultSemanticInitDelay = 1500 * time.Millisecond

// EngineConfig assembles the classification pipeline.
type EngineConfig struct {
	Lexicon       data.Lexicon
	KeywordRules  []domain.ContextRule
	SemanticRules []domain.ContextRule

	// SemanticInitDelay is waited before the semantic tier prepares itself.
	// Negative means no delay.
	SemanticInitDelay time.Duration

	// Remote, when set, is tried before the local tiers.
	Remote       Delegate
	RemoteConfig RemoteConfig

	DisableCache bool

	Logger    infralogger.Logger
	Telemetry *telemetry.Provider
}

// Engine is the classification pipeline: cache, chain and tiers over one
// shared lexicon store.
type Engine struct {
	store    *Store
	chain    *Chain
	cache    *Cache
	entry    Classifier
	semantic *ScoringTier
	remote   *RemoteTier
}

// NewEngine builds the store and tiers and schedules background
// initialization. It returns without waiting for any tier to become ready.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	log := cfg.Logger
	if log == nil {
		log = infralogger.NewNop()
	}

	store, err := NewStore(cfg.Lexicon)
	if err != nil {
		return nil, fmt.Errorf("build lexicon store: %w", err)
	}
	keywordRules, err := NewContextRules(cfg.KeywordRules)
	if err != nil {
		return nil, fmt.Errorf("keyword context rules: %w", err)
	}
	semanticRules, err := NewContextRules(cfg.SemanticRules)
	if err != nil {
		return nil, fmt.Errorf("semantic context rules: %w", err)
	}

	delay := cfg.SemanticInitDelay
	if delay == 0 {
		delay = DefaultSemanticInitDelay
	}

	e := &Engine{store: store}

	density := NewDensityStrategy(store)
	e.semantic = NewScoringTier(TierSemantic, density, semanticRules,
		WithWarmup(delay, density.Ready),
		WithTierLogger(log),
		WithTierTelemetry(cfg.Telemetry),
	)
	terminal := NewScoringTier(TierKeyword, NewRatioStrategy(store), keywordRules,
		WithTierLogger(log),
		WithTierTelemetry(cfg.Telemetry),
	)

	tiers := make([]Tier, 0, 2)
	if cfg.Remote != nil {
		e.remote = NewRemoteTier(cfg.Remote, cfg.RemoteConfig, log, cfg.Telemetry)
		tiers = append(tiers, e.remote)
	}
	tiers = append(tiers, e.semantic)

	e.chain = NewChain(terminal, tiers,
		WithChainLogger(log),
		WithChainTelemetry(cfg.Telemetry),
	)

	e.entry = e.chain
	if !cfg.DisableCache {
		e.cache = NewCache(e.chain, cfg.Telemetry)
		e.entry = e.cache
	}

	log.Info("Classification engine built",
		infralogger.Int("keyword_terms", store.keywords.total()),
		infralogger.Int("weighted_terms", store.weighted.total()),
		infralogger.Int("keyword_rules", keywordRules.Len()),
		infralogger.Int("semantic_rules", semanticRules.Len()),
		infralogger.Bool("remote", cfg.Remote != nil),
		infralogger.Bool("cache", !cfg.DisableCache),
	)
	return e, nil
}

// Classify implements Classifier.
func (e *Engine) Classify(ctx context.Context, text string) domain.Result {
	return e.entry.Classify(ctx, text)
}

// ClassifyEmail classifies the subject and body of msg.
func (e *Engine) ClassifyEmail(ctx context.Context, msg domain.Email) domain.Result {
	return e.Classify(ctx, msg.Text())
}

// WaitReady blocks until every background initializer has finished or ctx
// ends. It does not report whether initialization succeeded.
func (e *Engine) WaitReady(ctx context.Context) error {
	pending := []Initializing{e.semantic}
	if e.remote != nil {
		pending = append(pending, e.remote)
	}
	for _, p := range pending {
		select {
		case <-p.Done():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Status is a snapshot of the pipeline for status endpoints.
type Status struct {
	Tiers        []TierStatus `json:"tiers"`
	Degraded     bool         `json:"degraded"`
	CacheEnabled bool         `json:"cache_enabled"`
	CacheEntries int64        `json:"cache_entries"`
	Breaker      string       `json:"breaker_state,omitempty"`
}

// Status reports tier readiness and cache size.
func (e *Engine) Status() Status {
	st := Status{
		Tiers:        e.chain.Status(),
		Degraded:     e.chain.Degraded(),
		CacheEnabled: e.cache != nil,
	}
	if e.cache != nil {
		st.CacheEntries = e.cache.Len()
	}
	if e.remote != nil {
		st.Breaker = e.remote.BreakerState()
	}
	return st
}

// Store returns the lexicon store.
func (e *Engine) Store() *Store {
	return e.store
}
