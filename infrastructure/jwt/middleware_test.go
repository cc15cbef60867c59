package jwt_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	infrajwt "github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/infrastructure/jwt"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func sign(t *testing.T, key string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, infrajwt.Claims{
		Sub:              "operator",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)},
	})
	s, err := token.SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(infrajwt.Middleware(secret))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/v1/categories", func(c *gin.Context) {
		claims, ok := infrajwt.GetClaims(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, claims.Sub)
	})
	return r
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	valid := sign(t, secret, time.Now().Add(time.Hour))
	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"health is open", "/health", "", http.StatusOK},
		{"missing header", "/api/v1/categories", "", http.StatusUnauthorized},
		{"wrong scheme", "/api/v1/categories", "Basic abc", http.StatusUnauthorized},
		{"wrong key", "/api/v1/categories", "Bearer " + sign(t, "other", time.Now().Add(time.Hour)), http.StatusUnauthorized},
		{"expired", "/api/v1/categories", "Bearer " + sign(t, secret, time.Now().Add(-time.Hour)), http.StatusUnauthorized},
		{"valid", "/api/v1/categories", "Bearer " + valid, http.StatusOK},
	}

	router := newRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, http.NoBody)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
