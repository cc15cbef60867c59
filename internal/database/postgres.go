// Package database provides PostgreSQL access for externally tuned context rules.
package database

import (
	"context"
	"fmt"
	"time"

	infraconfig "github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/infrastructure/config"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// DefaultPingTimeout bounds the connectivity check on open.
const DefaultPingTimeout = 5 * time.Second

// NewPostgresConnection opens a pooled connection and verifies it with a ping.
func NewPostgresConnection(cfg infraconfig.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), DefaultPingTimeout)
	defer cancel()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", pingErr)
	}

	return db, nil
}
