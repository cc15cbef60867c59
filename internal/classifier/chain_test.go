package classifier_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/classifier"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTier struct {
	name     string
	ready    bool
	category domain.Category
	err      error
	panics   bool
	calls    atomic.Int32
}

func (s *stubTier) Name() string { return s.name }
func (s *stubTier) Ready() bool  { return s.ready }

func (s *stubTier) Classify(_ context.Context, in classifier.Input) (domain.Result, error) {
	s.calls.Add(1)
	if s.panics {
		panic("index out of range")
	}
	if s.err != nil {
		return domain.Result{}, s.err
	}
	return domain.Result{
		Category:   s.category,
		Confidence: 0.9,
		Rationale:  "stub saw " + in.Normalized,
		Tier:       s.name,
	}, nil
}

func readyStub(name string, c domain.Category) *stubTier {
	return &stubTier{name: name, ready: true, category: c}
}

func TestChain_EmptyInput(t *testing.T) {
	tier := readyStub("first", domain.CategoryTI)
	terminal := readyStub("terminal", domain.CategoryRH)
	chain := classifier.NewChain(terminal, []classifier.Tier{tier})

	for _, in := range []string{"", "   ", "\n\t", "?!..."} {
		res := chain.Classify(context.Background(), in)
		assert.Equal(t, domain.DefaultCategory, res.Category, "input %q", in)
		assert.InDelta(t, 0.5, res.Confidence, epsilon)
		assert.Equal(t, classifier.EmptyInputRationale, res.Rationale)
		assert.Equal(t, classifier.TierDefault, res.Tier)
		assert.False(t, res.HasProbabilities())
		assert.False(t, res.Timestamp.IsZero())
	}
	assert.Zero(t, tier.calls.Load())
	assert.Zero(t, terminal.calls.Load())
}

func TestChain_FirstReadyTierAnswers(t *testing.T) {
	first := readyStub("first", domain.CategoryTI)
	terminal := readyStub("terminal", domain.CategoryRH)
	chain := classifier.NewChain(terminal, []classifier.Tier{first})

	res := chain.Classify(context.Background(), "Servidor FORA do ar!")
	assert.Equal(t, domain.CategoryTI, res.Category)
	assert.Equal(t, "first", res.Tier)
	assert.Equal(t, "stub saw servidor fora do ar", res.Rationale)
	assert.Equal(t, domain.CategoryTI.Label(), res.Label)
	assert.False(t, res.Degraded)
	assert.False(t, res.Fallback)
	assert.Zero(t, terminal.calls.Load())
}

func TestChain_Fallthrough(t *testing.T) {
	tests := []struct {
		name         string
		tiers        []*stubTier
		wantTier     string
		wantDegraded bool
		wantPrefix   bool
	}{
		{
			name:         "failure degrades to next tier",
			tiers:        []*stubTier{{name: "a", ready: true, err: errors.New("boom")}, readyStub("b", domain.CategoryVendas)},
			wantTier:     "b",
			wantDegraded: true,
		},
		{
			name:       "unready tier is skipped",
			tiers:      []*stubTier{{name: "a", ready: false, category: domain.CategoryTI}},
			wantTier:   "terminal",
			wantPrefix: true,
		},
		{
			name:         "panic is recovered",
			tiers:        []*stubTier{{name: "a", ready: true, panics: true}},
			wantTier:     "terminal",
			wantDegraded: true,
			wantPrefix:   true,
		},
		{
			name:         "unknown category is a failure",
			tiers:        []*stubTier{{name: "a", ready: true, category: "SUPORTE"}},
			wantTier:     "terminal",
			wantDegraded: true,
			wantPrefix:   true,
		},
		{
			name:     "no higher tiers",
			wantTier: "terminal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terminal := readyStub("terminal", domain.CategoryRH)
			tiers := make([]classifier.Tier, len(tt.tiers))
			for i, s := range tt.tiers {
				tiers[i] = s
			}
			chain := classifier.NewChain(terminal, tiers)

			res := chain.Classify(context.Background(), "segue em anexo")
			assert.Equal(t, tt.wantTier, res.Tier)
			assert.Equal(t, tt.wantDegraded, res.Degraded)
			assert.Equal(t, tt.wantPrefix, strings.HasPrefix(res.Rationale, classifier.FallbackPrefix))
			assert.Equal(t, tt.wantDegraded || tt.wantPrefix, res.Fallback)
			assert.True(t, res.Category.Valid())
		})
	}
}

func TestChain_UnreadyTierNotInvoked(t *testing.T) {
	unready := &stubTier{name: "semantic", ready: false, category: domain.CategoryTI}
	chain := classifier.NewChain(readyStub("keyword", domain.CategoryRH), []classifier.Tier{unready})

	for range 10 {
		chain.Classify(context.Background(), "texto qualquer")
	}
	assert.Zero(t, unready.calls.Load())
}

func TestChain_NeverFails(t *testing.T) {
	tests := []struct {
		name     string
		terminal classifier.Tier
		tiers    []classifier.Tier
	}{
		{name: "no tiers at all"},
		{name: "terminal fails", terminal: &stubTier{name: "t", ready: true, err: errors.New("boom")}},
		{
			name:     "everything fails",
			terminal: &stubTier{name: "t", ready: true, panics: true},
			tiers:    []classifier.Tier{&stubTier{name: "a", ready: true, err: errors.New("boom")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := classifier.NewChain(tt.terminal, tt.tiers)
			res := chain.Classify(context.Background(), "algum texto")
			assert.Equal(t, domain.DefaultCategory, res.Category)
			assert.Equal(t, classifier.TierDefault, res.Tier)
			assert.InDelta(t, 0.5, res.Confidence, epsilon)
			assert.NotEmpty(t, res.Rationale)
		})
	}
}

func TestChain_FillsMissingFields(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tier := readyStub("anon", domain.CategoryJuridico)
	chain := classifier.NewChain(tier, nil, classifier.WithChainClock(func() time.Time { return fixed }))

	res := chain.Classify(context.Background(), "contrato")
	assert.Equal(t, fixed, res.Timestamp)
	assert.Equal(t, "anon", res.Tier)
	assert.Equal(t, domain.CategoryJuridico.Label(), res.Label)
}

func TestChain_Status(t *testing.T) {
	chain := classifier.NewChain(
		readyStub("keyword", domain.CategoryRH),
		[]classifier.Tier{&stubTier{name: "semantic", ready: false}},
	)

	status := chain.Status()
	require.Len(t, status, 2)
	assert.Equal(t, "semantic", status[0].Name)
	assert.False(t, status[0].Ready)
	assert.False(t, status[0].Terminal)
	assert.Equal(t, "keyword", status[1].Name)
	assert.True(t, status[1].Terminal)
	assert.True(t, chain.Degraded())
}

func TestTierError(t *testing.T) {
	cause := errors.New("timeout")
	err := error(&classifier.TierError{Tier: "remote", Err: cause})
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "remote")
}
