package database

import (
	"context"
	"fmt"

	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// ContextRuleRepository reads and writes context rules.
type ContextRuleRepository struct {
	db *sqlx.DB
}

// NewContextRuleRepository creates a new context rule repository.
func NewContextRuleRepository(db *sqlx.DB) *ContextRuleRepository {
	return &ContextRuleRepository{db: db}
}

// ListByRuleSet returns the enabled rules of one set in application order.
func (r *ContextRuleRepository) ListByRuleSet(ctx context.Context, ruleSet string) ([]domain.ContextRule, error) {
	query := `
		SELECT id, name, rule_set, all_of, any_of, deltas, position, enabled
		FROM context_rules
		WHERE rule_set = $1 AND enabled = true
		ORDER BY position ASC, id ASC
	`

	rows, err := r.db.QueryxContext(ctx, query, ruleSet)
	if err != nil {
		return nil, fmt.Errorf("failed to list context rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	rules := make([]domain.ContextRule, 0)
	for rows.Next() {
		var rule domain.ContextRule
		if scanErr := rows.Scan(
			&rule.ID,
			&rule.Name,
			&rule.RuleSet,
			pq.Array(&rule.AllOf),
			pq.Array(&rule.AnyOf),
			&rule.Deltas,
			&rule.Position,
			&rule.Enabled,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan context rule: %w", scanErr)
		}
		rules = append(rules, rule)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate context rules: %w", err)
	}

	return rules, nil
}

// Create inserts a rule after validating it.
func (r *ContextRuleRepository) Create(ctx context.Context, rule *domain.ContextRule) error {
	if err := rule.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO context_rules (name, rule_set, all_of, any_of, deltas, position, enabled)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		rule.Name,
		rule.RuleSet,
		pq.Array(rule.AllOf),
		pq.Array(rule.AnyOf),
		rule.Deltas,
		rule.Position,
		rule.Enabled,
	).Scan(&rule.ID)
	if err != nil {
		return fmt.Errorf("failed to create context rule: %w", err)
	}

	return nil
}

// CountByRuleSet counts enabled rules per set.
func (r *ContextRuleRepository) CountByRuleSet(ctx context.Context) (map[string]int, error) {
	query := `SELECT rule_set, COUNT(*) FROM context_rules WHERE enabled = true GROUP BY rule_set`

	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count context rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			set string
			n   int
		)
		if scanErr := rows.Scan(&set, &n); scanErr != nil {
			return nil, fmt.Errorf("failed to scan rule count: %w", scanErr)
		}
		counts[set] = n
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rule counts: %w", err)
	}
	return counts, nil
}
