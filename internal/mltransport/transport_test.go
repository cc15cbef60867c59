package mltransport_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	infraerrors "github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/infrastructure/errors"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/mltransport"
)

type testResponse struct {
	Category string `json:"category"`
}

func TestDoClassify_DecodesResponse(t *testing.T) {
	want := testResponse{Category: "FINANCEIRO"}
	respBody, marshalErr := json.Marshal(want)
	if marshalErr != nil {
		t.Fatalf("marshal test response: %v", marshalErr)
	}

	var gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/classify" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req mltransport.ClassifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		gotText = req.Text
		w.Header().Set("Content-Type", "application/json")
		if _, writeErr := w.Write(respBody); writeErr != nil {
			t.Errorf("write response: %v", writeErr)
		}
	}))
	defer srv.Close()

	var got testResponse
	latencyMs, size, err := mltransport.DoClassify(
		context.Background(), srv.URL, &mltransport.ClassifyRequest{Text: "Fatura em aberto"}, &got,
	)
	if err != nil {
		t.Fatalf("DoClassify returned unexpected error: %v", err)
	}
	if latencyMs < 0 {
		t.Errorf("expected latencyMs >= 0, got %d", latencyMs)
	}
	if size != len(respBody) {
		t.Errorf("expected size=%d, got %d", len(respBody), size)
	}
	if got.Category != want.Category {
		t.Errorf("expected category=%q, got %q", want.Category, got.Category)
	}
	if gotText != "Fatura em aberto" {
		t.Errorf("expected raw text to be forwarded, got %q", gotText)
	}
}

func TestDoClassify_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("internal error"))
	}))
	defer srv.Close()

	var got testResponse
	_, size, err := mltransport.DoClassify(context.Background(), srv.URL, &mltransport.ClassifyRequest{Text: "x"}, &got)
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if size != len("internal error") {
		t.Errorf("expected size of error body, got %d", size)
	}
	if code, ok := infraerrors.StatusCode(err); !ok || code != http.StatusInternalServerError {
		t.Errorf("expected HTTP 500 in error chain, got %d (%v)", code, ok)
	}
	if !infraerrors.IsTemporary(err) {
		t.Error("expected 500 to be temporary")
	}
}

func TestDoClassify_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	var got testResponse
	if _, _, err := mltransport.DoClassify(context.Background(), srv.URL, &mltransport.ClassifyRequest{Text: "x"}, &got); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestDoHealth(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		wantReachable bool
		wantErr       bool
		wantVersion   string
	}{
		{name: "healthy", status: http.StatusOK, body: `{"model_version":"v2"}`, wantReachable: true, wantVersion: "v2"},
		{name: "healthy without version", status: http.StatusOK, body: `{}`, wantReachable: true},
		{name: "unhealthy", status: http.StatusServiceUnavailable, body: ``, wantReachable: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			reachable, _, version, err := mltransport.DoHealth(context.Background(), srv.URL)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if reachable != tt.wantReachable {
				t.Errorf("reachable = %v, want %v", reachable, tt.wantReachable)
			}
			if version != tt.wantVersion {
				t.Errorf("version = %q, want %q", version, tt.wantVersion)
			}
		})
	}
}

func TestDoHealth_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	reachable, _, _, err := mltransport.DoHealth(context.Background(), url)
	if err == nil {
		t.Fatal("expected error for closed server")
	}
	if reachable {
		t.Error("expected reachable=false")
	}
}
