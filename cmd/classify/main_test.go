package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/classifier"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/domain"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CONFIG_PATH", "testdata-missing.yml")
	t.Setenv("SEMANTIC_INIT_DELAY", "1ms")

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTextCommand(t *testing.T) {
	out, err := execute(t, "", "text", "Fatura #2024-001", "fatura referente aos serviços de cloud")
	require.NoError(t, err)

	var res domain.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, domain.CategoryFinanceiro, res.Category)
}

func TestTextCommand_Stdin(t *testing.T) {
	out, err := execute(t, "Currículo - Desenvolvedor Full Stack\nsegue em anexo meu currículo para a vaga\n", "text")
	require.NoError(t, err)

	var res domain.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, domain.CategoryRH, res.Category)
}

func TestTextCommand_Empty(t *testing.T) {
	_, err := execute(t, "   ", "text")
	assert.ErrorIs(t, err, errNoInput)
}

func TestEmailCommand(t *testing.T) {
	out, err := execute(t, "", "email",
		"--subject", "Problema com sistema de login",
		"--body", "não consigo acessar minha conta, erro de senha inválida")
	require.NoError(t, err)

	var res domain.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, domain.CategoryAtendimento, res.Category)

	_, err = execute(t, "", "email")
	assert.ErrorIs(t, err, errNoInput)
}

func TestScenariosCommand(t *testing.T) {
	out, err := execute(t, "", "scenarios")
	require.NoError(t, err)

	var report classifier.ScenarioReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, len(report.Outcomes), report.Total)
	assert.GreaterOrEqual(t, report.Correct, 3)
}

func TestCategoriesCommand_Table(t *testing.T) {
	out, err := execute(t, "", "categories", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "ATENDIMENTO")
	assert.Contains(t, out, "Recursos Humanos")
	assert.Less(t, strings.Index(out, "ATENDIMENTO"), strings.Index(out, "OPERACOES"))
}

func TestUnknownOutputFormat(t *testing.T) {
	_, err := execute(t, "", "categories", "-o", "xml")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "email-classifier")
}
