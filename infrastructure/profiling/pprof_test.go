package profiling_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/infrastructure/logger"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/infrastructure/profiling"
)

func TestHandler_ServesIndex(t *testing.T) {
	w := httptest.NewRecorder()
	profiling.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/pprof/", http.NoBody))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "goroutine")
}

func TestStart_DisabledIsNoop(t *testing.T) {
	stop := profiling.Start(profiling.Config{}, logger.NewNop())
	assert.NotNil(t, stop)
	stop()
}
