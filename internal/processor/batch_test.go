package processor_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/domain"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/processor"
)

// echoClassifier puts the input text in the rationale so order can be checked.
type echoClassifier struct {
	calls   atomic.Int32
	delay   time.Duration
	current atomic.Int32
	peak    atomic.Int32
}

func (e *echoClassifier) Classify(_ context.Context, text string) domain.Result {
	e.calls.Add(1)
	n := e.current.Add(1)
	for {
		p := e.peak.Load()
		if n <= p || e.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if e.delay > 0 {
		time.Sleep(e.delay)
	}
	e.current.Add(-1)
	return domain.Result{Category: domain.CategoryTI, Rationale: text}
}

func TestBatchProcessor_PreservesOrder(t *testing.T) {
	c := &echoClassifier{delay: time.Millisecond}
	bp := processor.NewBatchProcessor(c, 4, nil, nil)

	texts := make([]string, 40)
	for i := range texts {
		texts[i] = strings.Repeat("x", i+1)
	}

	results, err := bp.Process(context.Background(), texts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != len(texts) {
		t.Fatalf("expected %d results, got %d", len(texts), len(results))
	}
	for i, r := range results {
		if r.Rationale != texts[i] {
			t.Fatalf("result %d out of order: %q", i, r.Rationale)
		}
	}
	if got := c.calls.Load(); got != int32(len(texts)) {
		t.Errorf("expected %d calls, got %d", len(texts), got)
	}
}

func TestBatchProcessor_BoundsConcurrency(t *testing.T) {
	c := &echoClassifier{delay: 5 * time.Millisecond}
	bp := processor.NewBatchProcessor(c, 3, nil, nil)

	if _, err := bp.Process(context.Background(), make([]string, 20)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if peak := c.peak.Load(); peak > 3 {
		t.Errorf("expected at most 3 concurrent classifications, saw %d", peak)
	}
}

func TestBatchProcessor_Empty(t *testing.T) {
	bp := processor.NewBatchProcessor(&echoClassifier{}, 0, nil, nil)
	results, err := bp.Process(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
	if bp.Concurrency() != 8 {
		t.Errorf("expected default concurrency 8, got %d", bp.Concurrency())
	}
}

func TestBatchProcessor_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	bp := processor.NewBatchProcessor(&echoClassifier{}, 2, nil, nil)
	_, err := bp.Process(ctx, []string{"a", "b", "c"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
