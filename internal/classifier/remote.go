package classifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	infraerrors "github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/infrastructure/errors"
	infralogger "github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/infrastructure/logger"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/infrastructure/retry"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/domain"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/mlclient"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/telemetry"
	"github.com/sony/gobreaker"
)

// TierRemote is the default name of the delegate tier.
const TierRemote = "remote"

// Delegate is a remote scoring service.
type Delegate interface {
	Classify(ctx context.Context, text string) (*mlclient.ClassifyResponse, error)
	Health(ctx context.Context) error
}

// RemoteConfig tunes the delegate tier.
type RemoteConfig struct {
	Name    string
	Timeout time.Duration

	// Breaker settings: half-open probe budget, closed-state counter reset
	// interval, open-state duration and consecutive failures before tripping.
	MaxRequests      uint32
	Interval         time.Duration
	OpenTimeout      time.Duration
	FailureThreshold uint32

	// Probe retries the health check that makes the tier ready.
	Probe retry.Config
}

func (c *RemoteConfig) applyDefaults() {
	if c.Name == "" {
		c.Name = TierRemote
	}
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Second
	}
	if c.MaxRequests == 0 {
		c.MaxRequests = 3
	}
	if c.Interval <= 0 {
		c.Interval = 60 * time.Second
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = 30 * time.Second
	}
	if c.FailureThreshold == 0 {
		c.FailureThreshold = 5
	}
}

// RemoteTier forwards the raw text to a Delegate behind a circuit breaker.
// It becomes ready once a health probe succeeds. Any transport failure,
// timeout, open breaker or unknown category token is a tier failure.
type RemoteTier struct {
	cfg       RemoteConfig
	delegate  Delegate
	breaker   *gobreaker.CircuitBreaker
	readiness *Readiness
	logger    infralogger.Logger
	telemetry *telemetry.Provider
}

// NewRemoteTier builds the tier and starts its health probe in the background.
func NewRemoteTier(delegate Delegate, cfg RemoteConfig, log infralogger.Logger, p *telemetry.Provider) *RemoteTier {
	cfg.applyDefaults()
	if log == nil {
		log = infralogger.NewNop()
	}

	t := &RemoteTier{
		cfg:       cfg,
		delegate:  delegate,
		readiness: NewReadiness(),
		logger:    log,
		telemetry: p,
	}
	t.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			t.logger.Warn("Delegate circuit breaker state changed",
				infralogger.String("breaker", name),
				infralogger.String("from", from.String()),
				infralogger.String("to", to.String()),
			)
			t.telemetry.SetBreakerState(name, int(to))
		},
	})

	p.SetTierReady(cfg.Name, false)
	t.readiness.Start(0, t.probe)
	go t.reportReadiness()
	return t
}

func (t *RemoteTier) probe() error {
	probe := t.cfg.Probe
	if probe.IsRetryable == nil {
		probe.IsRetryable = retryableProbeError
	}
	probe.OnRetry = func(attempt int, delay time.Duration, err error) {
		t.logger.Debug("Delegate health probe failed, retrying",
			infralogger.Int("attempt", attempt),
			infralogger.Duration("delay", delay),
			infralogger.Error(err),
		)
	}
	return retry.Retry(context.Background(), probe, func(ctx context.Context) error {
		probeCtx, cancel := context.WithTimeout(ctx, t.cfg.Timeout)
		defer cancel()
		return t.delegate.Health(probeCtx)
	})
}

// retryableProbeError retries everything except a delegate answering with a
// permanent HTTP status, such as a 404 from a wrong base URL.
func retryableProbeError(err error) bool {
	if _, ok := infraerrors.StatusCode(err); ok {
		return infraerrors.IsTemporary(err)
	}
	return true
}

func (t *RemoteTier) reportReadiness() {
	<-t.readiness.Done()
	if err := t.readiness.Err(); err != nil {
		t.logger.Error("Delegate never became healthy, remote tier disabled",
			infralogger.String("tier", t.cfg.Name),
			infralogger.Error(err),
		)
		return
	}
	t.telemetry.SetTierReady(t.cfg.Name, true)
	t.logger.Info("Tier ready", infralogger.String("tier", t.cfg.Name))
}

// Name implements Tier.
func (t *RemoteTier) Name() string { return t.cfg.Name }

// Ready implements Tier.
func (t *RemoteTier) Ready() bool { return t.readiness.Ready() }

// InitError implements Initializing.
func (t *RemoteTier) InitError() error { return t.readiness.Err() }

// Done implements Initializing.
func (t *RemoteTier) Done() <-chan struct{} { return t.readiness.Done() }

// BreakerState returns the current breaker state name.
func (t *RemoteTier) BreakerState() string { return t.breaker.State().String() }

// Classify implements Tier.
func (t *RemoteTier) Classify(ctx context.Context, in Input) (domain.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, t.cfg.Timeout)
	defer cancel()

	start := time.Now()
	out, err := t.breaker.Execute(func() (interface{}, error) {
		resp, callErr := t.delegate.Classify(ctx, in.Raw)
		if callErr != nil {
			return nil, callErr
		}
		if resp == nil {
			return nil, errors.New("empty delegate response")
		}
		return toResult(resp, t.cfg.Name)
	})
	t.telemetry.RecordDelegateCall(time.Since(start), err)
	if err != nil {
		return domain.Result{}, &TierError{Tier: t.cfg.Name, Err: err}
	}
	return out.(domain.Result), nil
}

func toResult(resp *mlclient.ClassifyResponse, tier string) (domain.Result, error) {
	category, err := domain.ParseCategory(resp.Category)
	if err != nil {
		return domain.Result{}, fmt.Errorf("delegate response: %w", err)
	}

	probs := categoryDistribution(resp.Probabilities)

	if resp.Tier != "" {
		tier = tier + ":" + resp.Tier
	}
	return domain.Result{
		Category:      category,
		Label:         category.Label(),
		Confidence:    resp.Confidence,
		Rationale:     resp.Rationale,
		Probabilities: probs,
		Tier:          tier,
		Timestamp:     time.Now().UTC(),
	}, nil
}

// categoryDistribution keeps the delegate probabilities whose keys name a
// category and rescales them to sum to 1. Nil when nothing usable remains.
func categoryDistribution(raw map[string]float64) map[string]float64 {
	probs := make(map[string]float64, len(raw))
	var sum float64
	for token, p := range raw {
		c, err := domain.ParseCategory(token)
		if err != nil || p <= 0 {
			continue
		}
		probs[string(c)] += p
		sum += p
	}
	if sum <= 0 {
		return nil
	}
	for c, p := range probs {
		probs[c] = p / sum
	}
	return probs
}
