package classifier_test

import (
	"testing"

	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/classifier"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/domain"
)

func TestProbabilities_AllZero(t *testing.T) {
	var scores classifier.Scores
	probs := classifier.Probabilities(scores)
	if len(probs) != 0 {
		t.Fatalf("expected empty mapping, got %v", probs)
	}
}

func TestProbabilities_SumToOne(t *testing.T) {
	var scores classifier.Scores
	scores.Add(domain.CategoryFinanceiro, 1.3)
	scores.Add(domain.CategoryVendas, 0.2)
	scores.Add(domain.CategoryTI, 0.5)

	probs := classifier.Probabilities(scores)
	if len(probs) != domain.NumCategories {
		t.Fatalf("expected every category, got %d entries", len(probs))
	}

	sum := 0.0
	for _, p := range probs {
		sum += p
	}
	if sum < 1-epsilon || sum > 1+epsilon {
		t.Errorf("probabilities sum to %v", sum)
	}
	if got := probs["FINANCEIRO"]; got < 0.65-epsilon || got > 0.65+epsilon {
		t.Errorf("FINANCEIRO = %v, want 0.65", got)
	}
	if got, ok := probs["RH"]; !ok || got != 0 {
		t.Errorf("zero-score category should map to 0, got %v (present=%v)", got, ok)
	}
}
