// Package mltransport provides the HTTP transport for the remote scoring
// delegate: POST /classify and GET /health.
package mltransport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	infraerrors "github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/infrastructure/errors"
	infrahttp "github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/infrastructure/http"
)

const defaultTimeout = 5 * time.Second

// maxResponseBytes bounds how much of a delegate response is read.
const maxResponseBytes = 1 << 20

var defaultClient = infrahttp.NewClient(infrahttp.ClientConfig{
	Timeout:   defaultTimeout,
	UserAgent: "email-classifier",
})

// ClassifyRequest is the request body for POST /classify.
type ClassifyRequest struct {
	Text string `json:"text"`
}

// healthResponse is the JSON shape returned by GET /health (model_version optional).
type healthResponse struct {
	ModelVersion string `json:"model_version"`
}

// DoClassify sends POST /classify to baseURL with req and decodes the
// response into respPtr. It returns the round-trip latency and the size of
// the response body, both also on error when they are known.
func DoClassify(ctx context.Context, baseURL string, req *ClassifyRequest, respPtr any) (latencyMs int64, size int, err error) {
	body, err := json.Marshal(req)
	if err != nil {
		return 0, 0, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/classify", bytes.NewReader(body))
	if err != nil {
		return 0, 0, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := defaultClient.Do(httpReq)
	if err != nil {
		return time.Since(start).Milliseconds(), 0, fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	latencyMs = time.Since(start).Milliseconds()
	if readErr != nil {
		return latencyMs, len(raw), fmt.Errorf("read response: %w", readErr)
	}

	if resp.StatusCode != http.StatusOK {
		if statusErr := infraerrors.FromResponse(resp.StatusCode, raw); statusErr != nil {
			return latencyMs, len(raw), statusErr
		}
		return latencyMs, len(raw), fmt.Errorf("ml service returned %d", resp.StatusCode)
	}

	if decodeErr := json.Unmarshal(raw, respPtr); decodeErr != nil {
		return latencyMs, len(raw), fmt.Errorf("decode response: %w", decodeErr)
	}

	return latencyMs, len(raw), nil
}

// DoHealth calls GET /health at baseURL and returns reachable, latencyMs, model_version, and any error.
func DoHealth(ctx context.Context, baseURL string) (reachable bool, latencyMs int64, modelVersion string, err error) {
	start := time.Now()

	httpReq, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/health", http.NoBody)
	if reqErr != nil {
		return false, 0, "", fmt.Errorf("create request: %w", reqErr)
	}

	resp, doErr := defaultClient.Do(httpReq)
	latencyMs = time.Since(start).Milliseconds()
	if doErr != nil {
		return false, latencyMs, "", fmt.Errorf("service unreachable: %w", doErr)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if statusErr := infraerrors.FromResponse(resp.StatusCode, raw); statusErr != nil {
			return true, latencyMs, "", fmt.Errorf("unhealthy: %w", statusErr)
		}
		return true, latencyMs, "", fmt.Errorf("unhealthy status: %d", resp.StatusCode)
	}

	var healthResp healthResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&healthResp); decodeErr == nil {
		modelVersion = healthResp.ModelVersion
	}
	return true, latencyMs, modelVersion, nil
}
