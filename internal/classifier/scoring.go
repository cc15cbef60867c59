package classifier

import (
	"math"
	"sort"

	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/domain"
)

// Scoring constants of the unweighted-ratio strategy.
const (
	ratioMultiplier = 2.0
	patternBoost    = 0.3
)

// Strategy names, reported in results and status.
const (
	StrategyUnweightedRatio = "unweighted-ratio"
	StrategyWeightedDensity = "weighted-density"
)

// Scores holds one raw score per category, indexed by declaration order.
// Every category is present; unmatched ones are explicit zeros.
type Scores [domain.NumCategories]float64

// Get returns the score of c.
func (s *Scores) Get(c domain.Category) float64 {
	return s[c.Index()]
}

// Add adds delta to the score of c.
func (s *Scores) Add(c domain.Category, delta float64) {
	s[c.Index()] += delta
}

// Sum is the total over all categories.
func (s *Scores) Sum() float64 {
	total := 0.0
	for _, v := range s {
		total += v
	}
	return total
}

// Winner returns the highest-scoring category. Ties go to the category
// declared first, which makes an all-zero vector resolve to the default.
func (s *Scores) Winner() domain.Category {
	best := 0
	for i := 1; i < len(s); i++ {
		if s[i] > s[best] {
			best = i
		}
	}
	return domain.CategoryAt(best)
}

// Match is a lexicon term found in the text.
type Match struct {
	Term   string
	Weight float64
}

// Scorecard is what a strategy produces for one text.
type Scorecard struct {
	Scores   Scores
	Matches  [domain.NumCategories][]Match
	Weighted bool
}

// Strategy turns normalized text into per-category raw scores.
type Strategy interface {
	Name() string
	Score(normalized string) Scorecard
}

// collect groups refs per category and orders each group by lexicon position.
func collect(refs []termRef) [domain.NumCategories][]termRef {
	var grouped [domain.NumCategories][]termRef
	for _, ref := range refs {
		i := ref.category.Index()
		grouped[i] = append(grouped[i], ref)
	}
	for i := range grouped {
		sort.Slice(grouped[i], func(a, b int) bool { return grouped[i][a].position < grouped[i][b].position })
	}
	return grouped
}

// RatioStrategy scores a category by the share of its keyword list found in
// the text, doubled and capped at 1, plus a fixed boost per matching pattern.
// Pattern boosts are not capped.
type RatioStrategy struct {
	store *Store
}

// NewRatioStrategy returns the unweighted-ratio strategy over store.
func NewRatioStrategy(store *Store) *RatioStrategy {
	return &RatioStrategy{store: store}
}

// Name implements Strategy.
func (*RatioStrategy) Name() string { return StrategyUnweightedRatio }

// Score implements Strategy.
func (r *RatioStrategy) Score(normalized string) Scorecard {
	var card Scorecard
	grouped := collect(r.store.keywords.match(normalized))

	for i, refs := range grouped {
		if len(refs) == 0 {
			continue
		}
		c := domain.CategoryAt(i)
		card.Scores[i] = math.Min(float64(len(refs))/float64(r.store.keywords.size(c))*ratioMultiplier, 1.0)
		for _, ref := range refs {
			card.Matches[i] = append(card.Matches[i], Match{Term: ref.display, Weight: ref.weight})
		}
	}

	for i, patterns := range r.store.patterns {
		for _, re := range patterns {
			if re.MatchString(normalized) {
				card.Scores[i] += patternBoost
			}
		}
	}

	return card
}

// DensityStrategy scores a category as
//
//	sum(weights) * (matched / lexicon size) * (sum(weights) / matched)
//
// capped at 1. The density factor penalizes large lexicons with few hits,
// so a dense set of strong terms beats a single incidental keyword.
type DensityStrategy struct {
	store *Store
}

// NewDensityStrategy returns the weighted-density strategy over store.
func NewDensityStrategy(store *Store) *DensityStrategy {
	return &DensityStrategy{store: store}
}

// Name implements Strategy.
func (*DensityStrategy) Name() string { return StrategyWeightedDensity }

// Score implements Strategy.
func (d *DensityStrategy) Score(normalized string) Scorecard {
	card := Scorecard{Weighted: true}
	grouped := collect(d.store.weighted.match(normalized))

	for i, refs := range grouped {
		if len(refs) == 0 {
			continue
		}
		sum := 0.0
		for _, ref := range refs {
			sum += ref.weight
			card.Matches[i] = append(card.Matches[i], Match{Term: ref.display, Weight: ref.weight})
		}
		matched := float64(len(refs))
		density := matched / float64(d.store.weighted.size(domain.CategoryAt(i)))
		quality := sum / matched
		card.Scores[i] = math.Min(sum*density*quality, 1.0)
	}

	return card
}

// Ready reports whether the weighted table can score anything.
func (d *DensityStrategy) Ready() error {
	if d.store.weighted.total() == 0 {
		return ErrEmptyLexicon
	}
	return nil
}
