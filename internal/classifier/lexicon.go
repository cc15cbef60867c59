package classifier

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/data"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/domain"
	ahocorasick "github.com/cloudflare/ahocorasick"
)

// ErrEmptyLexicon is returned when a table a strategy depends on has no terms.
var ErrEmptyLexicon = errors.New("lexicon has no terms")

// termRef ties a dictionary term back to one lexicon entry.
type termRef struct {
	category domain.Category
	position int
	display  string
	weight   float64
}

// termIndex is an Aho-Corasick automaton over the normalized, de-duplicated
// terms of one table. A term listed by several categories (or twice by one)
// is matched once and fans out through refs.
type termIndex struct {
	matcher *ahocorasick.Matcher
	terms   []string
	refs    [][]termRef
	sizes   [domain.NumCategories]int
}

func newTermIndex(table map[domain.Category][]data.Term) (*termIndex, error) {
	ix := &termIndex{}
	slot := make(map[string]int)

	for _, c := range domain.AllCategories() {
		for pos, entry := range table[c] {
			term := Normalize(entry.Text)
			if term == "" {
				continue
			}
			if entry.Weight <= 0 || entry.Weight > 1 {
				return nil, fmt.Errorf("%s term %q: weight %v outside (0, 1]", c, entry.Text, entry.Weight)
			}

			i, seen := slot[term]
			if !seen {
				i = len(ix.terms)
				slot[term] = i
				ix.terms = append(ix.terms, term)
				ix.refs = append(ix.refs, nil)
			}
			ix.refs[i] = append(ix.refs[i], termRef{category: c, position: pos, display: entry.Text, weight: entry.Weight})
			ix.sizes[c.Index()]++
		}
	}

	for c := range table {
		if !c.Valid() {
			return nil, fmt.Errorf("lexicon: %w: %q", domain.ErrUnknownCategory, c)
		}
	}

	if len(ix.terms) > 0 {
		ix.matcher = ahocorasick.NewStringMatcher(ix.terms)
	}
	return ix, nil
}

// match returns the refs of every term occurring as a substring of text.
// Each term is reported once regardless of how often it occurs.
func (ix *termIndex) match(text string) []termRef {
	if ix.matcher == nil || text == "" {
		return nil
	}
	var out []termRef
	for _, hit := range ix.matcher.MatchThreadSafe([]byte(text)) {
		out = append(out, ix.refs[hit]...)
	}
	return out
}

// size is the number of entries a category lists in this table.
func (ix *termIndex) size(c domain.Category) int {
	return ix.sizes[c.Index()]
}

func (ix *termIndex) total() int {
	n := 0
	for _, s := range ix.sizes {
		n += s
	}
	return n
}

// Store is the immutable lexicon shared by every tier. Terms are normalized
// at construction so they compare against normalized text; patterns are
// compiled as given and must be written for normalized text. A Store is
// safe for concurrent use.
type Store struct {
	keywords *termIndex
	weighted *termIndex
	patterns [domain.NumCategories][]*regexp.Regexp
}

// NewStore builds the automata and compiles the patterns of lex.
func NewStore(lex data.Lexicon) (*Store, error) {
	unweighted := make(map[domain.Category][]data.Term, len(lex.Keywords))
	for c, kws := range lex.Keywords {
		for _, kw := range kws {
			unweighted[c] = append(unweighted[c], data.Term{Text: kw, Weight: 1})
		}
	}

	keywords, err := newTermIndex(unweighted)
	if err != nil {
		return nil, fmt.Errorf("keyword table: %w", err)
	}
	weighted, err := newTermIndex(lex.Weighted)
	if err != nil {
		return nil, fmt.Errorf("weighted table: %w", err)
	}

	s := &Store{keywords: keywords, weighted: weighted}
	for c, sources := range lex.Patterns {
		if !c.Valid() {
			return nil, fmt.Errorf("patterns: %w: %q", domain.ErrUnknownCategory, c)
		}
		for _, src := range sources {
			re, compileErr := regexp.Compile("(?i)" + src)
			if compileErr != nil {
				return nil, fmt.Errorf("%s pattern %q: %w", c, src, compileErr)
			}
			s.patterns[c.Index()] = append(s.patterns[c.Index()], re)
		}
	}

	return s, nil
}

// MustStore is NewStore for the built-in tables, which are known to be valid.
func MustStore(lex data.Lexicon) *Store {
	s, err := NewStore(lex)
	if err != nil {
		panic(err)
	}
	return s
}

// Stats summarizes the store for status endpoints.
type Stats struct {
	KeywordTerms  int            `json:"keyword_terms"`
	WeightedTerms int            `json:"weighted_terms"`
	Patterns      int            `json:"patterns"`
	PerCategory   map[string]int `json:"weighted_terms_per_category"`
}

// Stats reports table sizes.
func (s *Store) Stats() Stats {
	st := Stats{
		KeywordTerms:  s.keywords.total(),
		WeightedTerms: s.weighted.total(),
		PerCategory:   make(map[string]int, domain.NumCategories),
	}
	for i, ps := range s.patterns {
		st.Patterns += len(ps)
		st.PerCategory[string(domain.CategoryAt(i))] = s.weighted.sizes[i]
	}
	return st
}
