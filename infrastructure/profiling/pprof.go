// Package profiling serves the net/http/pprof endpoints on a private
// listener.
package profiling

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/pprof"
	"strconv"
	"time"

	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/infrastructure/logger"
)

const (
	defaultPort     = 6060
	shutdownTimeout = 5 * time.Second
)

// Config controls the pprof listener. It binds to localhost only.
type Config struct {
	Enabled bool `env:"ENABLE_PROFILING" yaml:"enabled"`
	Port    int  `env:"PPROF_PORT"       yaml:"port"`
}

// Handler returns a mux with the standard pprof routes under /debug/pprof/.
func Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}

// Start serves Handler in the background when cfg.Enabled and returns a
// function that stops it. The returned function is never nil.
func Start(cfg Config, log logger.Logger) func() {
	if !cfg.Enabled {
		return func() {}
	}
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort("localhost", strconv.Itoa(cfg.Port)),
		Handler:           Handler(),
		ReadHeaderTimeout: shutdownTimeout,
	}

	go func() {
		log.Info("Starting pprof server", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("pprof server error", logger.Error(err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
