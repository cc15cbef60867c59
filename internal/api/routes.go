package api

import (
	"net/http"

	infragin "github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/infrastructure/gin"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes. /metrics stays unauthenticated;
// /api/v1 requires a bearer token when jwtSecret is set.
func SetupRoutes(router *gin.Engine, handler *Handler, jwtSecret string, metrics http.Handler) {
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}

	v1 := infragin.ProtectedGroup(router, "/api/v1", jwtSecret)
	{
		classify := v1.Group("/classify")
		{
			classify.POST("/email", handler.ClassifyEmail) // POST /api/v1/classify/email
			classify.POST("/text", handler.ClassifyText)   // POST /api/v1/classify/text
			classify.POST("/batch", handler.ClassifyBatch) // POST /api/v1/classify/batch
		}

		model := v1.Group("/model")
		{
			model.GET("/info", handler.ModelInfo)     // GET /api/v1/model/info
			model.GET("/status", handler.ModelStatus) // GET /api/v1/model/status
		}

		v1.GET("/categories", handler.Categories) // GET /api/v1/categories
		v1.GET("/scenarios", handler.Scenarios)   // GET /api/v1/scenarios
	}
}
