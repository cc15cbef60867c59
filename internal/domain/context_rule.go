package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// Rule sets a context rule can belong to.
const (
	RuleSetKeyword  = "keyword"
	RuleSetSemantic = "semantic"
)

// ContextRule boosts category scores when terms co-occur in a message.
//
// A rule fires when every AllOf term is present and, if AnyOf is not empty,
// at least one AnyOf term is present too. Deltas are added to the scores of
// the listed categories.
type ContextRule struct {
	ID       int      `db:"id"        json:"id,omitempty"       yaml:"-"`
	Name     string   `db:"name"      json:"name"               yaml:"name"`
	RuleSet  string   `db:"rule_set"  json:"rule_set"           yaml:"-"`
	AllOf    []string `db:"all_of"    json:"all_of,omitempty"   yaml:"all_of"`
	AnyOf    []string `db:"any_of"    json:"any_of,omitempty"   yaml:"any_of"`
	Deltas   Deltas   `db:"deltas"    json:"deltas"             yaml:"deltas"`
	Position int      `db:"position"  json:"position"           yaml:"-"`
	Enabled  bool     `db:"enabled"   json:"enabled"            yaml:"-"`
}

// Deltas maps a category to the amount added to its score. It is stored as
// a JSON object in PostgreSQL.
type Deltas map[Category]float64

// Value implements driver.Valuer.
func (d Deltas) Value() (driver.Value, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal deltas: %w", err)
	}
	return b, nil
}

// Scan implements sql.Scanner.
func (d *Deltas) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*d = Deltas{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("scan deltas: unsupported type %T", src)
	}

	out := Deltas{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("scan deltas: %w", err)
	}
	*d = out
	return nil
}

// Validate checks the rule can be applied: it needs at least one term, and
// every delta must target a known category with a positive boost.
func (r ContextRule) Validate() error {
	if len(r.AllOf) == 0 && len(r.AnyOf) == 0 {
		return fmt.Errorf("context rule %q: %w", r.Name, errNoTerms)
	}
	if len(r.Deltas) == 0 {
		return fmt.Errorf("context rule %q: %w", r.Name, errNoDeltas)
	}
	for c, delta := range r.Deltas {
		if !c.Valid() {
			return fmt.Errorf("context rule %q: %w: %q", r.Name, ErrUnknownCategory, c)
		}
		if delta <= 0 {
			return fmt.Errorf("context rule %q: delta for %s must be positive, got %v", r.Name, c, delta)
		}
	}
	return nil
}

var (
	errNoTerms  = errors.New("rule has no terms")
	errNoDeltas = errors.New("rule has no deltas")
)
