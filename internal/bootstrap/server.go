package bootstrap

import (
	"strings"

	"github.com/gin-gonic/gin"

	infragin "github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/infrastructure/gin"
	infralogger "github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/infrastructure/logger"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/api"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/classifier"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/config"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/telemetry"
)

// NewServer builds the HTTP server with health checks for the database and
// the classification tiers.
func NewServer(
	cfg *config.Config,
	handler *api.Handler,
	engine *classifier.Engine,
	db *DatabaseComponents,
	tp *telemetry.Provider,
	logger infralogger.Logger,
) *infragin.Server {
	builder := infragin.NewServerBuilder(cfg.Service.Name, cfg.Service.Port).
		WithLogger(logger).
		WithDebug(cfg.Service.Debug).
		WithVersion(cfg.Service.Version).
		WithHealthCheck("classifier", tierHealthChecker(engine)).
		WithRoutes(func(router *gin.Engine) {
			api.SetupRoutes(router, handler, cfg.Auth.JWTSecret, tp.Handler())
		})

	if db != nil {
		builder = builder.WithDatabaseHealthCheck(db.DB.Ping)
	}

	return builder.Build()
}

// tierHealthChecker is healthy when every tier is ready and degraded while
// any higher tier is still warming up or has failed.
func tierHealthChecker(engine *classifier.Engine) infragin.HealthChecker {
	return func() infragin.CheckResult {
		status := engine.Status()
		if !status.Degraded {
			return infragin.CheckResult{Status: infragin.HealthStatusHealthy}
		}

		var pending []string
		for _, t := range status.Tiers {
			if !t.Ready {
				pending = append(pending, t.Name)
			}
		}
		return infragin.CheckResult{
			Status:  infragin.HealthStatusDegraded,
			Message: "tiers not ready: " + strings.Join(pending, ", "),
		}
	}
}
