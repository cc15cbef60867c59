package api

import (
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/classifier"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/domain"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/mlhealth"
)

// EmailRequest is the body of POST /api/v1/classify/email.
type EmailRequest struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// TextRequest is the body of POST /api/v1/classify/text.
type TextRequest struct {
	Text string `json:"text"`
}

// BatchRequest is the body of POST /api/v1/classify/batch.
type BatchRequest struct {
	Texts []string `json:"texts" binding:"required,min=1"`
}

// BatchResponse carries results in request order.
type BatchResponse struct {
	Results    []domain.Result `json:"results"`
	Total      int             `json:"total"`
	DurationMs int64           `json:"duration_ms"`
}

// CategoryResponse is one entry of the closed category set.
type CategoryResponse struct {
	Token string `json:"token"`
	Label string `json:"label"`
}

// CategoriesResponse lists categories in declaration order.
type CategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Default    string             `json:"default"`
	Total      int                `json:"total"`
}

// ModelInfoResponse describes the classification pipeline.
type ModelInfoResponse struct {
	Service    string                  `json:"service"`
	Version    string                  `json:"version"`
	Categories []CategoryResponse      `json:"categories"`
	Tiers      []classifier.TierStatus `json:"tiers"`
	Lexicon    classifier.Stats        `json:"lexicon"`
	Cache      bool                    `json:"cache_enabled"`
}

// ModelStatusResponse reports live readiness.
type ModelStatusResponse struct {
	classifier.Status
	Delegate *mlhealth.Status `json:"delegate,omitempty"`
}

// ErrorResponse is returned for rejected requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

func categoryList() []CategoryResponse {
	all := domain.AllCategories()
	out := make([]CategoryResponse, len(all))
	for i, c := range all {
		out[i] = CategoryResponse{Token: string(c), Label: c.Label()}
	}
	return out
}
