package classifier

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/domain"
)

type boost struct {
	category domain.Category
	amount   float64
}

type compiledRule struct {
	name   string
	allOf  []string
	anyOf  []string
	boosts []boost
}

func (r compiledRule) fires(text string) bool {
	for _, term := range r.allOf {
		if !strings.Contains(text, term) {
			return false
		}
	}
	if len(r.anyOf) == 0 {
		return true
	}
	for _, term := range r.anyOf {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// ContextRules applies co-occurrence boosts after base scoring. Rules run in
// position order and every firing rule adds its deltas; nothing is clamped.
// ContextRules is immutable and safe for concurrent use.
type ContextRules struct {
	rules []compiledRule
}

// NewContextRules validates and normalizes rules. Disabled rules are dropped.
func NewContextRules(rules []domain.ContextRule) (*ContextRules, error) {
	ordered := make([]domain.ContextRule, 0, len(rules))
	for _, r := range rules {
		if r.Enabled {
			ordered = append(ordered, r)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Position < ordered[j].Position })

	cr := &ContextRules{rules: make([]compiledRule, 0, len(ordered))}
	for _, r := range ordered {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		compiled := compiledRule{name: r.Name}
		var err error
		if compiled.allOf, err = normalizeTerms(r.Name, r.AllOf); err != nil {
			return nil, err
		}
		if compiled.anyOf, err = normalizeTerms(r.Name, r.AnyOf); err != nil {
			return nil, err
		}
		for _, c := range domain.AllCategories() {
			if delta, ok := r.Deltas[c]; ok {
				compiled.boosts = append(compiled.boosts, boost{category: c, amount: delta})
			}
		}
		cr.rules = append(cr.rules, compiled)
	}
	return cr, nil
}

func normalizeTerms(rule string, terms []string) ([]string, error) {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		n := Normalize(t)
		if n == "" {
			return nil, fmt.Errorf("context rule %q: term %q is empty after normalization", rule, t)
		}
		out = append(out, n)
	}
	return out, nil
}

// Apply adds the deltas of every firing rule to scores and returns the names
// of the rules that fired.
func (cr *ContextRules) Apply(normalized string, scores *Scores) []string {
	if cr == nil {
		return nil
	}
	var fired []string
	for _, r := range cr.rules {
		if !r.fires(normalized) {
			continue
		}
		for _, b := range r.boosts {
			scores.Add(b.category, b.amount)
		}
		fired = append(fired, r.name)
	}
	return fired
}

// Len is the number of active rules.
func (cr *ContextRules) Len() int {
	if cr == nil {
		return 0
	}
	return len(cr.rules)
}
