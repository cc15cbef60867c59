// Package api exposes the classifier over HTTP.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	infralogger "github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/infrastructure/logger"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/classifier"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/data"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/domain"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/mlhealth"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/processor"
	"github.com/gin-gonic/gin"
)

const (
	defaultMaxBatch       = 100
	delegateHealthTimeout = 3 * time.Second
)

// Handler serves the classification API.
type Handler struct {
	engine      *classifier.Engine
	batch       *processor.BatchProcessor
	service     string
	version     string
	maxBatch    int
	delegateURL string
	logger      infralogger.Logger
}

// HandlerConfig carries the Handler's collaborators.
type HandlerConfig struct {
	Engine   *classifier.Engine
	Batch    *processor.BatchProcessor
	Service  string
	Version  string
	MaxBatch int
	// DelegateURL, when set, is health-checked by the status endpoint.
	DelegateURL string
	Logger      infralogger.Logger
}

// NewHandler creates a new API handler.
func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.MaxBatch <= 0 {
		cfg.MaxBatch = defaultMaxBatch
	}
	if cfg.Logger == nil {
		cfg.Logger = infralogger.NewNop()
	}
	return &Handler{
		engine:      cfg.Engine,
		batch:       cfg.Batch,
		service:     cfg.Service,
		version:     cfg.Version,
		maxBatch:    cfg.MaxBatch,
		delegateURL: cfg.DelegateURL,
		logger:      cfg.Logger,
	}
}

// ClassifyEmail handles POST /api/v1/classify/email
func (h *Handler) ClassifyEmail(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid email classification request", err)
		return
	}

	msg := domain.Email{Sender: req.Sender, Recipient: req.Recipient, Subject: req.Subject, Body: req.Body}
	if msg.Empty() {
		h.badRequest(c, "Invalid email classification request", errEmptyEmail)
		return
	}

	result := h.engine.ClassifyEmail(c.Request.Context(), msg)
	h.logResult(c.Request.Context(), "Email classified", result, infralogger.String("sender", msg.Sender))
	c.JSON(http.StatusOK, result)
}

// ClassifyText handles POST /api/v1/classify/text
func (h *Handler) ClassifyText(c *gin.Context) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid text classification request", err)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		h.badRequest(c, "Invalid text classification request", errEmptyText)
		return
	}

	result := h.engine.Classify(c.Request.Context(), req.Text)
	h.logResult(c.Request.Context(), "Text classified", result)
	c.JSON(http.StatusOK, result)
}

// ClassifyBatch handles POST /api/v1/classify/batch
func (h *Handler) ClassifyBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid batch classification request", err)
		return
	}
	if len(req.Texts) > h.maxBatch {
		h.badRequest(c, "Batch too large", fmt.Errorf("at most %d texts per batch, got %d", h.maxBatch, len(req.Texts)))
		return
	}

	start := time.Now()
	results, err := h.batch.Process(c.Request.Context(), req.Texts)
	if err != nil {
		h.logger.Warn("Batch classification aborted", infralogger.Error(err))
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, BatchResponse{
		Results:    results,
		Total:      len(results),
		DurationMs: time.Since(start).Milliseconds(),
	})
}

// Categories handles GET /api/v1/categories
func (h *Handler) Categories(c *gin.Context) {
	list := categoryList()
	c.JSON(http.StatusOK, CategoriesResponse{
		Categories: list,
		Default:    string(domain.DefaultCategory),
		Total:      len(list),
	})
}

// ModelInfo handles GET /api/v1/model/info
func (h *Handler) ModelInfo(c *gin.Context) {
	status := h.engine.Status()
	c.JSON(http.StatusOK, ModelInfoResponse{
		Service:    h.service,
		Version:    h.version,
		Categories: categoryList(),
		Tiers:      status.Tiers,
		Lexicon:    h.engine.Store().Stats(),
		Cache:      status.CacheEnabled,
	})
}

// ModelStatus handles GET /api/v1/model/status
func (h *Handler) ModelStatus(c *gin.Context) {
	resp := ModelStatusResponse{Status: h.engine.Status()}
	if h.delegateURL != "" {
		ctx, cancel := context.WithTimeout(c.Request.Context(), delegateHealthTimeout)
		defer cancel()
		snapshot := mlhealth.Snapshot(ctx, h.delegateURL)
		resp.Delegate = &snapshot
	}
	c.JSON(http.StatusOK, resp)
}

// Scenarios handles GET /api/v1/scenarios
func (h *Handler) Scenarios(c *gin.Context) {
	report := classifier.RunScenarios(c.Request.Context(), h.engine, data.Scenarios())
	c.JSON(http.StatusOK, report)
}

func (h *Handler) badRequest(c *gin.Context, msg string, err error) {
	infralogger.FromContext(c.Request.Context()).Warn(msg, infralogger.Error(err))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}

func (h *Handler) logResult(ctx context.Context, msg string, result domain.Result, extra ...infralogger.Field) {
	fields := append([]infralogger.Field{
		infralogger.String("category", string(result.Category)),
		infralogger.Float64("confidence", result.Confidence),
		infralogger.String("tier", result.Tier),
		infralogger.Bool("degraded", result.Degraded),
	}, extra...)
	infralogger.FromContext(ctx).Debug(msg, fields...)
}
