package classifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	infralogger "github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/infrastructure/logger"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/domain"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// Input is one message as seen by the tiers: the raw text for tiers that
// forward it elsewhere, and its normalized form for local scoring.
type Input struct {
	Raw        string
	Normalized string
}

// Tier is one classification strategy with its own readiness lifecycle.
// Ready must be a cheap non-blocking read.
type Tier interface {
	Name() string
	Ready() bool
	Classify(ctx context.Context, in Input) (domain.Result, error)
}

// Initializing is implemented by tiers whose readiness is set by a
// background initializer.
type Initializing interface {
	InitError() error
	Done() <-chan struct{}
}

// TierError is a failure inside one tier. The chain records it, marks the
// call degraded and moves on.
type TierError struct {
	Tier string
	Err  error
}

func (e *TierError) Error() string {
	return fmt.Sprintf("tier %s: %v", e.Tier, e.Err)
}

func (e *TierError) Unwrap() error {
	return e.Err
}

// ScoringTier runs a Strategy and a context rule table over normalized text.
type ScoringTier struct {
	name      string
	strategy  Strategy
	rules     *ContextRules
	readiness *Readiness

	warmup      bool
	warmupDelay time.Duration
	setup       func() error

	now       func() time.Time
	logger    infralogger.Logger
	telemetry *telemetry.Provider
}

// TierOption configures a ScoringTier.
type TierOption func(*ScoringTier)

// WithWarmup makes the tier start unready and schedules setup to run in the
// background after delay. The tier becomes ready when setup returns nil.
func WithWarmup(delay time.Duration, setup func() error) TierOption {
	return func(t *ScoringTier) {
		t.warmup = true
		t.warmupDelay = delay
		t.setup = setup
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) TierOption {
	return func(t *ScoringTier) { t.now = now }
}

// WithTierLogger sets the logger used for readiness transitions.
func WithTierLogger(l infralogger.Logger) TierOption {
	return func(t *ScoringTier) { t.logger = l }
}

// WithTierTelemetry reports readiness to the metrics provider.
func WithTierTelemetry(p *telemetry.Provider) TierOption {
	return func(t *ScoringTier) { t.telemetry = p }
}

// NewScoringTier builds a tier. Without WithWarmup the tier is ready
// immediately. rules may be nil.
func NewScoringTier(name string, strategy Strategy, rules *ContextRules, opts ...TierOption) *ScoringTier {
	t := &ScoringTier{
		name:     name,
		strategy: strategy,
		rules:    rules,
		now:      time.Now,
		logger:   infralogger.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}

	if !t.warmup {
		t.readiness = ReadyNow()
		t.telemetry.SetTierReady(t.name, true)
		return t
	}

	t.readiness = NewReadiness()
	t.telemetry.SetTierReady(t.name, false)
	t.readiness.Start(t.warmupDelay, t.setup)
	go t.reportReadiness()
	return t
}

func (t *ScoringTier) reportReadiness() {
	<-t.readiness.Done()
	if err := t.readiness.Err(); err != nil {
		t.logger.Error("Tier initialization failed, tier stays disabled",
			infralogger.String("tier", t.name),
			infralogger.Error(err),
		)
		return
	}
	t.telemetry.SetTierReady(t.name, true)
	t.logger.Info("Tier ready",
		infralogger.String("tier", t.name),
		infralogger.String("strategy", t.strategy.Name()),
	)
}

// Name implements Tier.
func (t *ScoringTier) Name() string { return t.name }

// Ready implements Tier.
func (t *ScoringTier) Ready() bool { return t.readiness.Ready() }

// InitError implements Initializing.
func (t *ScoringTier) InitError() error { return t.readiness.Err() }

// Done implements Initializing.
func (t *ScoringTier) Done() <-chan struct{} { return t.readiness.Done() }

// Strategy returns the scoring strategy name.
func (t *ScoringTier) Strategy() string { return t.strategy.Name() }

// Rules returns the number of active context rules.
func (t *ScoringTier) Rules() int { return t.rules.Len() }

// Classify implements Tier. It does not fail for any input.
func (t *ScoringTier) Classify(ctx context.Context, in Input) (domain.Result, error) {
	_, span := t.telemetry.StartSpan(ctx, "classifier.tier",
		attribute.String("tier", t.name),
		attribute.String("strategy", t.strategy.Name()),
	)
	defer span.End()

	card := t.strategy.Score(in.Normalized)
	scores := card.Scores
	fired := t.rules.Apply(in.Normalized, &scores)

	winner := scores.Winner()
	confidence := scores.Get(winner)

	return domain.Result{
		Category:      winner,
		Label:         winner.Label(),
		Confidence:    confidence,
		Rationale:     rationale(winner, confidence, card.Matches[winner.Index()], card.Weighted, fired),
		Probabilities: Probabilities(scores),
		Tier:          t.name,
		Timestamp:     t.now().UTC(),
	}, nil
}

func rationale(winner domain.Category, confidence float64, matches []Match, weighted bool, fired []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "classified as %s with %.1f%% confidence", winner.Label(), confidence*100)

	if len(matches) == 0 {
		b.WriteString(" (contextual analysis)")
	} else {
		terms := make([]string, len(matches))
		for i, m := range matches {
			if weighted {
				terms[i] = fmt.Sprintf("%s(%.2f)", m.Term, m.Weight)
			} else {
				terms[i] = m.Term
			}
		}
		if weighted {
			b.WriteString(", weighted terms: ")
		} else {
			b.WriteString(", keywords: ")
		}
		b.WriteString(strings.Join(terms, ", "))
	}

	if len(fired) > 0 {
		b.WriteString("; context rules: ")
		b.WriteString(strings.Join(fired, ", "))
	}
	return b.String()
}
