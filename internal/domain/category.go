// Package domain holds the types shared by the classifier, its transports and its storage.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Category is one of the nine business departments a message can be routed to.
// The set is closed: consumers may rely on it never growing at runtime.
type Category string

// Categories in declaration order. The order is part of the contract: it
// breaks ties between equal scores and orders every listing.
const (
	CategoryAtendimento Category = "ATENDIMENTO"
	CategoryFinanceiro  Category = "FINANCEIRO"
	CategoryCompras     Category = "COMPRAS"
	CategoryVendas      Category = "VENDAS"
	CategoryRH          Category = "RH"
	CategoryJuridico    Category = "JURIDICO"
	CategoryMarketing   Category = "MARKETING"
	CategoryTI          Category = "TI"
	CategoryOperacoes   Category = "OPERACOES"
)

// NumCategories is the size of the closed category set.
const NumCategories = 9

// DefaultCategory is used for empty input and whenever no tier can answer.
const DefaultCategory = CategoryAtendimento

// ErrUnknownCategory is returned when a token is not one of the nine categories.
var ErrUnknownCategory = errors.New("unknown category")

var categories = [NumCategories]Category{
	CategoryAtendimento,
	CategoryFinanceiro,
	CategoryCompras,
	CategoryVendas,
	CategoryRH,
	CategoryJuridico,
	CategoryMarketing,
	CategoryTI,
	CategoryOperacoes,
}

var labels = map[Category]string{
	CategoryAtendimento: "Atendimento ao Cliente",
	CategoryFinanceiro:  "Financeiro",
	CategoryCompras:     "Compras",
	CategoryVendas:      "Vendas",
	CategoryRH:          "Recursos Humanos",
	CategoryJuridico:    "Jurídico",
	CategoryMarketing:   "Marketing",
	CategoryTI:          "Tecnologia da Informação",
	CategoryOperacoes:   "Operações",
}

var indexes = func() map[Category]int {
	m := make(map[Category]int, NumCategories)
	for i, c := range categories {
		m[c] = i
	}
	return m
}()

// AllCategories returns the categories in declaration order.
func AllCategories() []Category {
	out := make([]Category, NumCategories)
	copy(out, categories[:])
	return out
}

// CategoryAt returns the category at declaration position i.
func CategoryAt(i int) Category {
	return categories[i]
}

// Index returns the declaration position of c, or -1 for an unknown token.
func (c Category) Index() int {
	if i, ok := indexes[c]; ok {
		return i
	}
	return -1
}

// Valid reports whether c belongs to the closed set.
func (c Category) Valid() bool {
	_, ok := indexes[c]
	return ok
}

// Label returns the human-readable department name.
func (c Category) Label() string {
	return labels[c]
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory resolves a token case-insensitively.
func ParseCategory(token string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(token)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, token)
	}
	return c, nil
}
