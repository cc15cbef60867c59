package classifier_test

import (
	"regexp"
	"testing"

	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/classifier"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/data"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "blank", in: "  \t\n ", want: ""},
		{name: "only punctuation", in: "!!! ??? ...", want: ""},
		{name: "accents and case", in: "Não Funciona", want: "nao funciona"},
		{name: "cedilla", in: "Cotação de PREÇO", want: "cotacao de preco"},
		{name: "uppercase accents", in: "ÁRVORE ÉPICA", want: "arvore epica"},
		{name: "punctuation removed not spaced", in: "Fatura #2024-001", want: "fatura 2024001"},
		{name: "whitespace collapsed", in: "  Olá,\n\n   mundo!  ", want: "ola mundo"},
		{name: "digits kept", in: "50 notebooks", want: "50 notebooks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifier.Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Problema com sistema de login",
		"Segue em anexo meu currículo para a vaga!",
		"R$ 1.234,56 — vencimento amanhã",
		"ÇÃÕ àèìòù âêîôû äëïöü",
		"",
	}
	for _, in := range inputs {
		once := classifier.Normalize(in)
		if twice := classifier.Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalize_AccentAndCaseInsensitive(t *testing.T) {
	if classifier.Normalize("Não Funciona") != classifier.Normalize("nao funciona") {
		t.Error("expected accented and plain forms to normalize equally")
	}
	if classifier.Normalize("CURRÍCULO") != classifier.Normalize("curriculo") {
		t.Error("expected upper accented and plain forms to normalize equally")
	}
}

func TestDefaultPatterns_MatchNormalizedText(t *testing.T) {
	samples := []string{
		"Fatura #2024-001 em aberto",
		"Segue o boleto 123.456 para pagamento",
		"Currículo - Desenvolvedor Full Stack",
		"Interesse na vaga para analista",
	}
	normalized := make([]string, len(samples))
	for i, s := range samples {
		normalized[i] = classifier.Normalize(s)
	}

	for c, ps := range data.DefaultLexicon().Patterns {
		for _, p := range ps {
			re := regexp.MustCompile("(?i)" + p)
			matched := false
			for _, text := range normalized {
				if re.MatchString(text) {
					matched = true
					break
				}
			}
			if !matched {
				t.Errorf("%s pattern %q matches no normalized sample", c, p)
			}
		}
	}
}
