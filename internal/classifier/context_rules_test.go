package classifier_test

import (
	"testing"

	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/classifier"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/data"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextRules_FaturaPagamentoBoost(t *testing.T) {
	store := classifier.MustStore(data.DefaultLexicon())
	rules, err := classifier.NewContextRules(data.DefaultKeywordRules())
	require.NoError(t, err)

	text := classifier.Normalize("Fatura em aberto, aguardamos o pagamento")
	card := classifier.NewRatioStrategy(store).Score(text)
	base := card.Scores.Get(domain.CategoryFinanceiro)

	scores := card.Scores
	fired := rules.Apply(text, &scores)

	assert.Contains(t, fired, "fatura+pagamento")
	assert.GreaterOrEqual(t, scores.Get(domain.CategoryFinanceiro), base+0.5-epsilon)
}

func TestContextRules_Apply(t *testing.T) {
	rules, err := classifier.NewContextRules([]domain.ContextRule{
		{
			Name: "problema+sistema", AllOf: []string{"problema", "sistema"},
			Deltas: domain.Deltas{domain.CategoryTI: 0.3, domain.CategoryAtendimento: 0.2}, Enabled: true,
		},
		{
			Name: "curriculo", AnyOf: []string{"cv", "currículo"},
			Deltas: domain.Deltas{domain.CategoryRH: 0.8}, Enabled: true, Position: 1,
		},
		{
			Name: "disabled", AllOf: []string{"problema"},
			Deltas: domain.Deltas{domain.CategoryJuridico: 0.9}, Enabled: false,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, rules.Len())

	tests := []struct {
		name      string
		text      string
		wantFired []string
		want      map[domain.Category]float64
	}{
		{
			name:      "all of present",
			text:      "problema no sistema",
			wantFired: []string{"problema+sistema"},
			want:      map[domain.Category]float64{domain.CategoryTI: 0.3, domain.CategoryAtendimento: 0.2},
		},
		{
			name: "all of partial",
			text: "problema na impressora",
			want: map[domain.Category]float64{},
		},
		{
			name:      "any of accented term normalized",
			text:      classifier.Normalize("Meu Currículo"),
			wantFired: []string{"curriculo"},
			want:      map[domain.Category]float64{domain.CategoryRH: 0.8},
		},
		{
			name:      "both fire in order",
			text:      "problema no sistema segue cv",
			wantFired: []string{"problema+sistema", "curriculo"},
			want: map[domain.Category]float64{
				domain.CategoryTI: 0.3, domain.CategoryAtendimento: 0.2, domain.CategoryRH: 0.8,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var scores classifier.Scores
			fired := rules.Apply(tt.text, &scores)
			assert.Equal(t, tt.wantFired, fired)
			for _, c := range domain.AllCategories() {
				assert.InDelta(t, tt.want[c], scores.Get(c), epsilon, "category %s", c)
			}
		})
	}
}

func TestContextRules_BoostsAreNotClamped(t *testing.T) {
	rules, err := classifier.NewContextRules([]domain.ContextRule{
		{Name: "cv", AnyOf: []string{"cv"}, Deltas: domain.Deltas{domain.CategoryRH: 0.8}, Enabled: true},
	})
	require.NoError(t, err)

	var scores classifier.Scores
	scores.Add(domain.CategoryRH, 0.9)
	rules.Apply("segue cv", &scores)
	assert.InDelta(t, 1.7, scores.Get(domain.CategoryRH), epsilon)
}

func TestNewContextRules_Invalid(t *testing.T) {
	tests := []struct {
		name string
		rule domain.ContextRule
	}{
		{name: "no terms", rule: domain.ContextRule{Name: "x", Deltas: domain.Deltas{domain.CategoryRH: 0.1}, Enabled: true}},
		{name: "negative delta", rule: domain.ContextRule{Name: "x", AllOf: []string{"a"}, Deltas: domain.Deltas{domain.CategoryRH: -0.1}, Enabled: true}},
		{name: "unknown category", rule: domain.ContextRule{Name: "x", AllOf: []string{"a"}, Deltas: domain.Deltas{"SUPORTE": 0.1}, Enabled: true}},
		{name: "term empty after normalization", rule: domain.ContextRule{Name: "x", AllOf: []string{"!!"}, Deltas: domain.Deltas{domain.CategoryRH: 0.1}, Enabled: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := classifier.NewContextRules([]domain.ContextRule{tt.rule})
			assert.Error(t, err)
		})
	}
}

func TestContextRules_NilIsNoop(t *testing.T) {
	var rules *classifier.ContextRules
	var scores classifier.Scores
	assert.Nil(t, rules.Apply("fatura pagamento", &scores))
	assert.Zero(t, rules.Len())
	assert.Zero(t, scores.Sum())
}
