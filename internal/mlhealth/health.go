// Package mlhealth reports the health of the scoring delegate.
package mlhealth

import (
	"context"
	"fmt"
	"time"

	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/mltransport"
)

// Status is a point-in-time delegate health snapshot.
type Status struct {
	URL          string    `json:"url"`
	Reachable    bool      `json:"reachable"`
	LatencyMs    int64     `json:"latency_ms"`
	ModelVersion string    `json:"model_version,omitempty"`
	Error        string    `json:"error,omitempty"`
	LastChecked  time.Time `json:"last_checked"`
}

// Check calls GET /health at baseURL and returns reachable, latencyMs, model_version, and any error.
func Check(ctx context.Context, baseURL string) (reachable bool, latencyMs int64, modelVersion string, err error) {
	reachable, latencyMs, modelVersion, err = mltransport.DoHealth(ctx, baseURL)
	if err != nil {
		return reachable, latencyMs, modelVersion, fmt.Errorf("ml health check: %w", err)
	}
	return reachable, latencyMs, modelVersion, nil
}

// Snapshot runs Check and folds the outcome into a Status.
func Snapshot(ctx context.Context, baseURL string) Status {
	reachable, latency, version, err := Check(ctx, baseURL)
	st := Status{
		URL:          baseURL,
		Reachable:    reachable,
		LatencyMs:    latency,
		ModelVersion: version,
		LastChecked:  time.Now().UTC(),
	}
	if err != nil {
		st.Error = err.Error()
	}
	return st
}
