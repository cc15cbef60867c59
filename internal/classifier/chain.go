package classifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	infralogger "github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/infrastructure/logger"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/domain"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// TierDefault tags results synthesized by the chain itself.
const TierDefault = "default"

const (
	defaultConfidence = 0.5

	// EmptyInputRationale is the rationale of the result for blank input.
	EmptyInputRationale = "empty input — default category applied"

	// FallbackPrefix is prepended to the terminal tier's rationale when a
	// higher tier was skipped or failed for the call.
	FallbackPrefix = "higher tiers unavailable, keyword rules applied: "

	exhaustedRationale = "no tier produced a result, default category applied"
)

// Chain tries its tiers in priority order and always produces a result.
// The terminal tier runs last and is expected never to fail; if it does,
// or there is none, the chain synthesizes a default result.
type Chain struct {
	tiers     []Tier
	terminal  Tier
	now       func() time.Time
	logger    infralogger.Logger
	telemetry *telemetry.Provider
}

// ChainOption configures a Chain.
type ChainOption func(*Chain)

// WithChainLogger sets the logger for tier failures.
func WithChainLogger(l infralogger.Logger) ChainOption {
	return func(c *Chain) { c.logger = l }
}

// WithChainTelemetry records per-call metrics.
func WithChainTelemetry(p *telemetry.Provider) ChainOption {
	return func(c *Chain) { c.telemetry = p }
}

// WithChainClock overrides the timestamp of synthesized results.
func WithChainClock(now func() time.Time) ChainOption {
	return func(c *Chain) { c.now = now }
}

// NewChain builds a chain. tiers are tried in order before terminal.
func NewChain(terminal Tier, tiers []Tier, opts ...ChainOption) *Chain {
	c := &Chain{
		tiers:    tiers,
		terminal: terminal,
		now:      time.Now,
		logger:   infralogger.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify returns exactly one result for text. It never fails: tier errors
// and panics degrade to the next tier and ultimately to a default result.
func (c *Chain) Classify(ctx context.Context, text string) domain.Result {
	start := time.Now()
	ctx, span := c.telemetry.StartSpan(ctx, "classifier.chain")
	defer span.End()

	res := c.classify(ctx, text)

	span.SetAttributes(
		attribute.String("tier", res.Tier),
		attribute.String("category", string(res.Category)),
		attribute.Bool("degraded", res.Degraded),
	)
	c.telemetry.RecordClassification(res.Tier, string(res.Category), res.Degraded, time.Since(start))
	return res
}

func (c *Chain) classify(ctx context.Context, text string) domain.Result {
	normalized := Normalize(text)
	if normalized == "" {
		return c.defaultResult(EmptyInputRationale)
	}

	in := Input{Raw: text, Normalized: normalized}
	degraded := false
	bypassed := false

	for _, tier := range c.tiers {
		if !tier.Ready() {
			bypassed = true
			c.telemetry.RecordTierSkipped(tier.Name())
			continue
		}
		res, err := c.run(ctx, tier, in)
		if err != nil {
			degraded = true
			bypassed = true
			c.fail(tier, err)
			continue
		}
		res.Degraded = degraded
		res.Fallback = bypassed
		return res
	}

	if c.terminal != nil && c.terminal.Ready() {
		res, err := c.run(ctx, c.terminal, in)
		if err == nil {
			if bypassed {
				res.Rationale = FallbackPrefix + res.Rationale
			}
			res.Degraded = degraded
			res.Fallback = bypassed
			return res
		}
		degraded = true
		c.fail(c.terminal, err)
	}

	res := c.defaultResult(exhaustedRationale)
	res.Degraded = degraded
	res.Fallback = true
	return res
}

// run invokes one tier, converting errors, panics and out-of-set categories
// into a *TierError.
func (c *Chain) run(ctx context.Context, tier Tier, in Input) (res domain.Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &TierError{Tier: tier.Name(), Err: fmt.Errorf("panic: %v", rec)}
		}
	}()

	res, err = tier.Classify(ctx, in)
	if err != nil {
		var tierErr *TierError
		if !errors.As(err, &tierErr) {
			err = &TierError{Tier: tier.Name(), Err: err}
		}
		return domain.Result{}, err
	}
	if !res.Category.Valid() {
		return domain.Result{}, &TierError{
			Tier: tier.Name(),
			Err:  fmt.Errorf("%w: %q", domain.ErrUnknownCategory, res.Category),
		}
	}

	if res.Tier == "" {
		res.Tier = tier.Name()
	}
	if res.Label == "" {
		res.Label = res.Category.Label()
	}
	if res.Timestamp.IsZero() {
		res.Timestamp = c.now().UTC()
	}
	return res, nil
}

func (c *Chain) fail(tier Tier, err error) {
	c.telemetry.RecordTierFailure(tier.Name())
	c.logger.Warn("Tier failed, falling through",
		infralogger.String("tier", tier.Name()),
		infralogger.Error(err),
	)
}

func (c *Chain) defaultResult(rationale string) domain.Result {
	return domain.Result{
		Category:      domain.DefaultCategory,
		Label:         domain.DefaultCategory.Label(),
		Confidence:    defaultConfidence,
		Rationale:     rationale,
		Probabilities: map[string]float64{},
		Tier:          TierDefault,
		Timestamp:     c.now().UTC(),
	}
}

// TierStatus describes one tier of the chain.
type TierStatus struct {
	Name     string `json:"name"`
	Ready    bool   `json:"ready"`
	Terminal bool   `json:"terminal"`
	Strategy string `json:"strategy,omitempty"`
	Rules    int    `json:"context_rules"`
	Error    string `json:"error,omitempty"`
}

// Status reports every tier in priority order, terminal last.
func (c *Chain) Status() []TierStatus {
	out := make([]TierStatus, 0, len(c.tiers)+1)
	for _, t := range c.tiers {
		out = append(out, tierStatus(t, false))
	}
	if c.terminal != nil {
		out = append(out, tierStatus(c.terminal, true))
	}
	return out
}

// Degraded reports whether any non-terminal tier is currently unready.
func (c *Chain) Degraded() bool {
	for _, t := range c.tiers {
		if !t.Ready() {
			return true
		}
	}
	return false
}

func tierStatus(t Tier, terminal bool) TierStatus {
	st := TierStatus{Name: t.Name(), Ready: t.Ready(), Terminal: terminal}
	if s, ok := t.(*ScoringTier); ok {
		st.Strategy = s.Strategy()
		st.Rules = s.Rules()
	}
	if lc, ok := t.(Initializing); ok {
		if err := lc.InitError(); err != nil {
			st.Error = err.Error()
		}
	}
	return st
}
