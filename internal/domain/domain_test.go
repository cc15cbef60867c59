package domain_test

import (
	"errors"
	"testing"

	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/domain"
)

func TestAllCategories_DeclarationOrder(t *testing.T) {
	t.Parallel()

	all := domain.AllCategories()
	if len(all) != domain.NumCategories {
		t.Fatalf("got %d categories, want %d", len(all), domain.NumCategories)
	}
	for i, c := range all {
		if c.Index() != i {
			t.Errorf("%s.Index() = %d, want %d", c, c.Index(), i)
		}
		if domain.CategoryAt(i) != c {
			t.Errorf("CategoryAt(%d) = %s, want %s", i, domain.CategoryAt(i), c)
		}
		if c.Label() == "" {
			t.Errorf("%s has no label", c)
		}
	}
	if all[0] != domain.DefaultCategory {
		t.Errorf("first category = %s, want default %s", all[0], domain.DefaultCategory)
	}
}

func TestParseCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    domain.Category
		wantErr bool
	}{
		{"FINANCEIRO", domain.CategoryFinanceiro, false},
		{" rh ", domain.CategoryRH, false},
		{"Ti", domain.CategoryTI, false},
		{"LOGISTICA", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := domain.ParseCategory(tt.in)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrUnknownCategory) {
					t.Errorf("ParseCategory(%q) error = %v, want ErrUnknownCategory", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseCategory(%q) = %s, %v; want %s", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestEmailText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		email     domain.Email
		wantText  string
		wantEmpty bool
	}{
		{domain.Email{Subject: "Fatura #2024-001", Body: "segue a fatura"}, "Fatura #2024-001 segue a fatura", false},
		{domain.Email{Subject: "", Body: "apenas corpo"}, "apenas corpo", false},
		{domain.Email{Subject: "  ", Body: "\n"}, "", true},
	}
	for _, tt := range tests {
		if got := tt.email.Text(); got != tt.wantText {
			t.Errorf("Text() = %q, want %q", got, tt.wantText)
		}
		if got := tt.email.Empty(); got != tt.wantEmpty {
			t.Errorf("Empty() = %v, want %v", got, tt.wantEmpty)
		}
	}
}

func TestDeltas_ScanValue(t *testing.T) {
	t.Parallel()

	in := domain.Deltas{domain.CategoryTI: 0.3, domain.CategoryAtendimento: 0.2}
	v, err := in.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var out domain.Deltas
	if err = out.Scan(v); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if out[domain.CategoryTI] != 0.3 || out[domain.CategoryAtendimento] != 0.2 || len(out) != 2 {
		t.Errorf("Scan round trip = %v, want %v", out, in)
	}

	if err = out.Scan(42); err == nil {
		t.Error("Scan(int) succeeded, want error")
	}
}

func TestContextRule_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rule    domain.ContextRule
		wantErr bool
	}{
		{"valid", domain.ContextRule{Name: "ok", AllOf: []string{"a"}, Deltas: domain.Deltas{domain.CategoryRH: 0.1}}, false},
		{"any-of only", domain.ContextRule{Name: "cv", AnyOf: []string{"cv"}, Deltas: domain.Deltas{domain.CategoryRH: 0.8}}, false},
		{"no terms", domain.ContextRule{Name: "x", Deltas: domain.Deltas{domain.CategoryRH: 0.1}}, true},
		{"no deltas", domain.ContextRule{Name: "x", AllOf: []string{"a"}}, true},
		{"unknown category", domain.ContextRule{Name: "x", AllOf: []string{"a"}, Deltas: domain.Deltas{"SALES": 0.1}}, true},
		{"negative delta", domain.ContextRule{Name: "x", AllOf: []string{"a"}, Deltas: domain.Deltas{domain.CategoryRH: -0.1}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := tt.rule.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
