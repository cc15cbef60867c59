package data

import "github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/domain"

// DefaultKeywordRules are the context rules of the keyword (terminal) tier.
func DefaultKeywordRules() []domain.ContextRule {
	return withRuleSet(domain.RuleSetKeyword, []domain.ContextRule{
		{Name: "fatura+pagamento", AllOf: []string{"fatura", "pagamento"}, Deltas: domain.Deltas{domain.CategoryFinanceiro: 0.5}},
		{Name: "problema+sistema", AllOf: []string{"problema", "sistema"}, Deltas: domain.Deltas{domain.CategoryTI: 0.3, domain.CategoryAtendimento: 0.2}},
		{Name: "curriculo", AnyOf: []string{"cv", "currículo"}, Deltas: domain.Deltas{domain.CategoryRH: 0.8}},
		{Name: "cotacao+preco", AllOf: []string{"cotação", "preço"}, Deltas: domain.Deltas{domain.CategoryCompras: 0.4}},
		{Name: "proposta+cliente", AllOf: []string{"proposta", "cliente"}, Deltas: domain.Deltas{domain.CategoryVendas: 0.4}},
	})
}

// DefaultSemanticRules are the context rules of the weighted (semantic) tier.
// Its scores are densities, so the boosts are smaller.
func DefaultSemanticRules() []domain.ContextRule {
	return withRuleSet(domain.RuleSetSemantic, []domain.ContextRule{
		{Name: "fatura+pagamento", AllOf: []string{"fatura", "pagamento"}, Deltas: domain.Deltas{domain.CategoryFinanceiro: 0.15}},
		{Name: "problema+sistema", AllOf: []string{"problema", "sistema"}, Deltas: domain.Deltas{domain.CategoryTI: 0.12, domain.CategoryAtendimento: 0.10}},
		{Name: "curriculo", AnyOf: []string{"cv", "currículo"}, Deltas: domain.Deltas{domain.CategoryRH: 0.20}},
		{Name: "cotacao+preco", AllOf: []string{"cotação", "preço"}, Deltas: domain.Deltas{domain.CategoryCompras: 0.18}},
		{Name: "proposta+cliente", AllOf: []string{"proposta", "cliente"}, Deltas: domain.Deltas{domain.CategoryVendas: 0.16}},
		{Name: "contrato+legal", AllOf: []string{"contrato", "legal"}, Deltas: domain.Deltas{domain.CategoryJuridico: 0.18}},
	})
}

func withRuleSet(set string, rules []domain.ContextRule) []domain.ContextRule {
	for i := range rules {
		rules[i].RuleSet = set
		rules[i].Position = i
		rules[i].Enabled = true
	}
	return rules
}
