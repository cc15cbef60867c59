package bootstrap

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	infralogger "github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/infrastructure/logger"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/config"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/data"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/database"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/domain"
)

// DatabaseComponents holds database connection and repositories.
type DatabaseComponents struct {
	DB        *sqlx.DB
	RulesRepo *database.ContextRuleRepository
}

// Close releases the connection pool. Safe on nil.
func (d *DatabaseComponents) Close() error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close()
}

// SetupDatabase connects to PostgreSQL when it is enabled and returns nil
// components otherwise.
func SetupDatabase(cfg *config.Config, logger infralogger.Logger) (*DatabaseComponents, error) {
	if !cfg.Database.Enabled {
		logger.Info("Database disabled, using configured or built-in context rules")
		return nil, nil
	}

	logger.Info("Connecting to PostgreSQL database",
		infralogger.String("host", cfg.Database.Host),
		infralogger.Int("port", cfg.Database.Port),
		infralogger.String("database", cfg.Database.Database),
	)

	db, err := database.NewPostgresConnection(cfg.Database.DatabaseConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("Database connected successfully")

	return &DatabaseComponents{
		DB:        db,
		RulesRepo: database.NewContextRuleRepository(db),
	}, nil
}

// RuleSets holds the context rules for each local tier.
type RuleSets struct {
	Keyword  []domain.ContextRule
	Semantic []domain.ContextRule
}

// LoadRuleSets resolves each tier's rules. Precedence per set: non-empty
// database rows, then rules from the config file, then the built-in tables.
func LoadRuleSets(ctx context.Context, cfg *config.Config, db *DatabaseComponents, logger infralogger.Logger) (RuleSets, error) {
	var sets RuleSets
	for _, target := range []struct {
		name     string
		dst      *[]domain.ContextRule
		fallback func() []domain.ContextRule
	}{
		{domain.RuleSetKeyword, &sets.Keyword, data.DefaultKeywordRules},
		{domain.RuleSetSemantic, &sets.Semantic, data.DefaultSemanticRules},
	} {
		source := "config"
		rules := cfg.Classification.RuleSet(target.name)

		if db != nil {
			stored, err := db.RulesRepo.ListByRuleSet(ctx, target.name)
			if err != nil {
				return RuleSets{}, fmt.Errorf("load %s rules: %w", target.name, err)
			}
			if len(stored) > 0 {
				rules, source = stored, "database"
			}
		}
		if rules == nil {
			rules, source = target.fallback(), "built-in"
		}

		logger.Info("Context rules resolved",
			infralogger.String("rule_set", target.name),
			infralogger.String("source", source),
			infralogger.Int("count", len(rules)),
		)
		*target.dst = rules
	}
	return sets, nil
}
