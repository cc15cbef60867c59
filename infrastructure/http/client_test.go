package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infrahttp "github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/infrastructure/http"
)

func TestNewClient_Defaults(t *testing.T) {
	client := infrahttp.NewClient(infrahttp.ClientConfig{})
	assert.Equal(t, infrahttp.DefaultTimeout, client.Timeout)

	transport, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, infrahttp.DefaultMaxIdleConnsPerHost, transport.MaxIdleConnsPerHost)
}

func TestNewClient_UserAgent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.UserAgent()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := infrahttp.NewClient(infrahttp.ClientConfig{Timeout: time.Second, UserAgent: "email-classifier"})

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, "email-classifier", got)

	req, err := http.NewRequest(http.MethodGet, srv.URL, http.NoBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "custom")
	resp, err = client.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, "custom", got)
}
