// Package data holds the built-in lexicons, context rules and demo scenarios.
// Terms are written the way people type them, accents included; the
// classifier normalizes every term when it builds its store.
package data

import "github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/domain"

// Term is a weighted lexicon entry. Weight is in (0, 1].
type Term struct {
	Text   string  `yaml:"text"   json:"text"`
	Weight float64 `yaml:"weight" json:"weight"`
}

// Lexicon is the raw material for the classifier's store.
type Lexicon struct {
	// Keywords feed the unweighted-ratio strategy.
	Keywords map[domain.Category][]string `yaml:"keywords" json:"keywords"`
	// Weighted feeds the weighted-density strategy.
	Weighted map[domain.Category][]Term `yaml:"weighted" json:"weighted"`
	// Patterns are regular expressions matched against normalized text by
	// the unweighted-ratio strategy.
	Patterns map[domain.Category][]string `yaml:"patterns" json:"patterns"`
}

// DefaultLexicon returns a fresh copy of the built-in tables.
func DefaultLexicon() Lexicon {
	lex := Lexicon{
		Keywords: make(map[domain.Category][]string, len(keywords)),
		Weighted: make(map[domain.Category][]Term, len(weighted)),
		Patterns: make(map[domain.Category][]string, len(patterns)),
	}
	for c, kws := range keywords {
		lex.Keywords[c] = append([]string(nil), kws...)
	}
	for c, terms := range weighted {
		lex.Weighted[c] = append([]Term(nil), terms...)
	}
	for c, ps := range patterns {
		lex.Patterns[c] = append([]string(nil), ps...)
	}
	return lex
}

var keywords = map[domain.Category][]string{
	domain.CategoryAtendimento: {
		"problema", "erro", "bug", "não funciona", "ajuda", "suporte",
		"assistência", "dúvida", "questão", "falha", "defeito", "travando",
		"lento", "crash", "não consigo", "preciso de ajuda", "como fazer", "instruções",
	},
	domain.CategoryFinanceiro: {
		"fatura", "boleto", "pagamento", "cobrança", "invoice", "conta", "valor",
		"preço", "orçamento", "financeiro", "contabilidade", "imposto", "taxa",
		"vencimento", "multa", "juros", "desconto", "reembolso", "estorno",
	},
	domain.CategoryCompras: {
		"cotação", "orçamento", "fornecedor", "produto", "equipamento", "material",
		"compra", "aquisição", "proposta", "preço", "quantidade", "entrega",
		"fornecimento", "pedido", "solicitação", "comparativo", "melhor preço",
	},
	domain.CategoryVendas: {
		"proposta", "orçamento", "cliente", "venda", "consultoria", "serviço",
		"interesse", "demonstração", "apresentação", "comercial", "negócio",
		"parceria", "contrato", "proposta comercial", "preços", "condições",
	},
	domain.CategoryRH: {
		"currículo", "cv", "vaga", "emprego", "seleção", "candidato", "recrutamento",
		"trabalho", "carreira", "oportunidade", "entrevista", "contratação",
		"benefícios", "salário", "horário", "folha de pagamento", "férias",
	},
	domain.CategoryJuridico: {
		"contrato", "acordo", "legal", "processo", "advogado", "jurídico", "lei",
		"cláusula", "termo", "obrigação", "direito", "responsabilidade", "litígio",
		"arbitragem", "conformidade", "regulamentação", "auditoria",
	},
	domain.CategoryMarketing: {
		"evento", "parceria", "divulgação", "campanha", "publicidade", "mídia",
		"promoção", "lançamento", "conferência", "workshop", "palestra",
		"redes sociais", "branding", "posicionamento", "mercado", "público-alvo",
	},
	domain.CategoryTI: {
		"sistema", "software", "aplicação", "desenvolvimento", "programação",
		"banco de dados", "servidor", "rede", "infraestrutura", "tecnologia",
		"manutenção", "atualização", "backup", "segurança", "firewall",
	},
	domain.CategoryOperacoes: {
		"logística", "estoque", "produção", "qualidade", "processo", "operacional",
		"manutenção", "equipamento", "facilidade", "armazém", "distribuição",
		"planejamento", "execução", "monitoramento", "controle",
	},
}

var weighted = map[domain.Category][]Term{
	domain.CategoryAtendimento: {
		{"problema", 0.95}, {"erro", 0.90}, {"ajuda", 0.85}, {"suporte", 0.88},
		{"dúvida", 0.80}, {"questão", 0.75}, {"falha", 0.92}, {"defeito", 0.89},
		{"travando", 0.87}, {"lento", 0.82}, {"crash", 0.94}, {"não consigo", 0.88},
		{"preciso de ajuda", 0.93}, {"como fazer", 0.78}, {"instruções", 0.76},
	},
	domain.CategoryFinanceiro: {
		{"fatura", 0.96}, {"boleto", 0.94}, {"pagamento", 0.92}, {"cobrança", 0.90},
		{"invoice", 0.95}, {"conta", 0.88}, {"valor", 0.85}, {"preço", 0.87},
		{"orçamento", 0.89}, {"financeiro", 0.91}, {"contabilidade", 0.93},
		{"imposto", 0.94}, {"taxa", 0.89}, {"vencimento", 0.92}, {"multa", 0.95},
		{"juros", 0.93}, {"desconto", 0.88}, {"reembolso", 0.91}, {"estorno", 0.90},
	},
	domain.CategoryCompras: {
		{"cotação", 0.96}, {"orçamento", 0.94}, {"fornecedor", 0.95}, {"produto", 0.88},
		{"equipamento", 0.92}, {"material", 0.89}, {"compra", 0.91}, {"aquisição", 0.93},
		{"proposta", 0.90}, {"quantidade", 0.85}, {"entrega", 0.87}, {"fornecimento", 0.92},
		{"pedido", 0.94}, {"solicitação", 0.89}, {"comparativo", 0.91}, {"melhor preço", 0.93},
	},
	domain.CategoryVendas: {
		{"proposta", 0.94}, {"orçamento", 0.92}, {"cliente", 0.95}, {"venda", 0.93},
		{"consultoria", 0.91}, {"serviço", 0.88}, {"interesse", 0.89}, {"demonstração", 0.90},
		{"apresentação", 0.87}, {"comercial", 0.92}, {"negócio", 0.91}, {"parceria", 0.93},
		{"contrato", 0.94}, {"proposta comercial", 0.96}, {"preços", 0.89}, {"condições", 0.88},
	},
	domain.CategoryRH: {
		{"currículo", 0.98}, {"cv", 0.97}, {"vaga", 0.95}, {"emprego", 0.93},
		{"seleção", 0.94}, {"candidato", 0.96}, {"recrutamento", 0.95}, {"trabalho", 0.89},
		{"carreira", 0.92}, {"oportunidade", 0.90}, {"entrevista", 0.93}, {"contratação", 0.94},
		{"benefícios", 0.91}, {"salário", 0.93}, {"horário", 0.87}, {"folha de pagamento", 0.95},
		{"férias", 0.88},
	},
	domain.CategoryJuridico: {
		{"contrato", 0.96}, {"acordo", 0.94}, {"legal", 0.95}, {"processo", 0.93},
		{"advogado", 0.97}, {"jurídico", 0.96}, {"lei", 0.94}, {"cláusula", 0.95},
		{"termo", 0.92}, {"obrigação", 0.93}, {"direito", 0.91}, {"responsabilidade", 0.90},
		{"litígio", 0.94}, {"arbitragem", 0.95}, {"conformidade", 0.93},
		{"regulamentação", 0.94}, {"auditoria", 0.92},
	},
	domain.CategoryMarketing: {
		{"evento", 0.94}, {"parceria", 0.92}, {"divulgação", 0.93}, {"campanha", 0.95},
		{"publicidade", 0.94}, {"mídia", 0.91}, {"promoção", 0.93}, {"lançamento", 0.94},
		{"conferência", 0.92}, {"workshop", 0.90}, {"palestra", 0.89}, {"redes sociais", 0.93},
		{"branding", 0.92}, {"posicionamento", 0.91}, {"mercado", 0.88}, {"público-alvo", 0.93},
	},
	domain.CategoryTI: {
		{"sistema", 0.94}, {"software", 0.95}, {"aplicação", 0.93}, {"desenvolvimento", 0.92},
		{"programação", 0.94}, {"banco de dados", 0.96}, {"servidor", 0.95}, {"rede", 0.93},
		{"infraestrutura", 0.94}, {"tecnologia", 0.91}, {"manutenção", 0.89},
		{"atualização", 0.87}, {"backup", 0.92}, {"segurança", 0.95}, {"firewall", 0.96},
	},
	domain.CategoryOperacoes: {
		{"logística", 0.94}, {"estoque", 0.95}, {"produção", 0.93}, {"qualidade", 0.91},
		{"processo", 0.89}, {"operacional", 0.92}, {"manutenção", 0.88}, {"equipamento", 0.90},
		{"facilidade", 0.87}, {"armazém", 0.93}, {"distribuição", 0.94}, {"planejamento", 0.89},
		{"execução", 0.88}, {"monitoramento", 0.91}, {"controle", 0.90},
	},
}

// Patterns run against normalized text: only [a-z0-9] and single spaces
// reach them.
var patterns = map[domain.Category][]string{
	domain.CategoryFinanceiro: {
		`fatura\s*\d+`,
		`boleto\s*\d+`,
	},
	domain.CategoryRH: {
		`curriculo`,
		`vaga\s+para`,
	},
}
