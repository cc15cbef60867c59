package classifier

import "github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/domain"

// Probabilities divides each score by the total. Zero-score categories map
// to 0. When every score is zero the result is empty. Scores above 1 are
// used as-is.
func Probabilities(scores Scores) map[string]float64 {
	total := scores.Sum()
	if total == 0 {
		return map[string]float64{}
	}
	out := make(map[string]float64, domain.NumCategories)
	for i, s := range scores {
		out[string(domain.CategoryAt(i))] = s / total
	}
	return out
}
