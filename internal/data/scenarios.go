package data

import "github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/domain"

// Scenario is a sample message with the department it should reach.
type Scenario struct {
	Name     string          `json:"name"`
	Expected domain.Category `json:"expected"`
	Email    domain.Email    `json:"email"`
}

// Scenarios returns the demo set served by the scenarios endpoint and CLI.
func Scenarios() []Scenario {
	return []Scenario{
		{
			Name:     "login problem",
			Expected: domain.CategoryAtendimento,
			Email: domain.Email{
				Sender:    "cliente@empresa.com",
				Recipient: "suporte@minhaempresa.com",
				Subject:   "Problema com sistema de login",
				Body:      "Olá, não consigo acessar minha conta. Aparece erro de senha inválida.",
			},
		},
		{
			Name:     "cloud invoice",
			Expected: domain.CategoryFinanceiro,
			Email: domain.Email{
				Sender:    "financeiro@fornecedor.com",
				Recipient: "contas@minhaempresa.com",
				Subject:   "Fatura #2024-001",
				Body:      "Segue em anexo a fatura referente aos serviços de cloud do mês de janeiro.",
			},
		},
		{
			Name:     "notebook quote",
			Expected: domain.CategoryCompras,
			Email: domain.Email{
				Sender:    "vendas@dell.com",
				Recipient: "compras@minhaempresa.com",
				Subject:   "Cotação - 50 notebooks Dell",
				Body:      "Prezados, segue nossa proposta comercial para 50 notebooks Dell Latitude.",
			},
		},
		{
			Name:     "job application",
			Expected: domain.CategoryRH,
			Email: domain.Email{
				Sender:    "candidato@email.com",
				Recipient: "rh@minhaempresa.com",
				Subject:   "Currículo - Desenvolvedor Full Stack",
				Body:      "Segue em anexo meu currículo para a vaga de desenvolvedor full stack.",
			},
		},
		{
			Name:     "consulting lead",
			Expected: domain.CategoryVendas,
			Email: domain.Email{
				Sender:    "cliente@potencial.com",
				Recipient: "vendas@minhaempresa.com",
				Subject:   "Interesse em consultoria de segurança",
				Body:      "Gostaríamos de conhecer seus serviços de consultoria em segurança da informação.",
			},
		},
	}
}
