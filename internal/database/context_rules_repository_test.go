package database_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/database"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/domain"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

var ruleColumns = []string{"id", "name", "rule_set", "all_of", "any_of", "deltas", "position", "enabled"}

func newRepo(t *testing.T) (*database.ContextRuleRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return database.NewContextRuleRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestContextRuleRepository_ListByRuleSet(t *testing.T) {
	repo, mock := newRepo(t)

	rows := sqlmock.NewRows(ruleColumns).
		AddRow(1, "fatura+pagamento", "keyword", "{fatura,pagamento}", "{}", []byte(`{"FINANCEIRO":0.5}`), 0, true).
		AddRow(2, "curriculo", "keyword", "{}", "{cv,currículo}", []byte(`{"RH":0.8}`), 1, true)
	mock.ExpectQuery("SELECT id, name, rule_set, all_of, any_of, deltas, position, enabled FROM context_rules").
		WithArgs("keyword").
		WillReturnRows(rows)

	rules, err := repo.ListByRuleSet(context.Background(), domain.RuleSetKeyword)
	if err != nil {
		t.Fatalf("ListByRuleSet() error = %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rules))
	}

	first := rules[0]
	if first.Name != "fatura+pagamento" || len(first.AllOf) != 2 || first.AllOf[1] != "pagamento" {
		t.Errorf("unexpected first rule: %+v", first)
	}
	if first.Deltas[domain.CategoryFinanceiro] != 0.5 {
		t.Errorf("unexpected deltas: %v", first.Deltas)
	}
	if got := rules[1].AnyOf; len(got) != 2 || got[1] != "currículo" {
		t.Errorf("unexpected any_of: %v", got)
	}
	if err = rules[1].Validate(); err != nil {
		t.Errorf("scanned rule should be valid: %v", err)
	}

	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestContextRuleRepository_ListByRuleSet_Error(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery("SELECT id, name").WillReturnError(sql.ErrConnDone)

	if _, err := repo.ListByRuleSet(context.Background(), domain.RuleSetSemantic); err == nil {
		t.Fatal("expected error")
	}
}

func TestContextRuleRepository_ListByRuleSet_BadDeltas(t *testing.T) {
	repo, mock := newRepo(t)
	rows := sqlmock.NewRows(ruleColumns).
		AddRow(1, "broken", "keyword", "{a}", "{}", []byte(`not json`), 0, true)
	mock.ExpectQuery("SELECT id, name").WillReturnRows(rows)

	if _, err := repo.ListByRuleSet(context.Background(), domain.RuleSetKeyword); err == nil {
		t.Fatal("expected scan error for malformed deltas")
	}
}

func TestContextRuleRepository_Create(t *testing.T) {
	repo, mock := newRepo(t)

	rule := &domain.ContextRule{
		Name:    "contrato+legal",
		RuleSet: domain.RuleSetSemantic,
		AllOf:   []string{"contrato", "legal"},
		Deltas:  domain.Deltas{domain.CategoryJuridico: 0.18},
		Enabled: true,
	}

	mock.ExpectQuery("INSERT INTO context_rules").
		WithArgs("contrato+legal", "semantic", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), 0, true).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	if err := repo.Create(context.Background(), rule); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if rule.ID != 7 {
		t.Errorf("expected id 7, got %d", rule.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestContextRuleRepository_Create_Invalid(t *testing.T) {
	repo, _ := newRepo(t)
	err := repo.Create(context.Background(), &domain.ContextRule{Name: "empty", Deltas: domain.Deltas{domain.CategoryRH: 0.1}})
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestContextRuleRepository_CountByRuleSet(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery("SELECT rule_set, COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"rule_set", "count"}).AddRow("keyword", 5).AddRow("semantic", 6))

	counts, err := repo.CountByRuleSet(context.Background())
	if err != nil {
		t.Fatalf("CountByRuleSet() error = %v", err)
	}
	if counts["keyword"] != 5 || counts["semantic"] != 6 {
		t.Errorf("unexpected counts: %v", counts)
	}
}
