package domain

import "time"

// Result is the outcome of classifying one message.
//
// Confidence is the winning category's raw score. It is usually in [0, 1]
// but context-rule boosts are additive and are not clamped, so it can exceed 1.
// Probabilities is empty when every category scored zero.
// Fallback marks a result produced after a higher tier was skipped or
// failed; it is not serialized and such results are never cached.
type Result struct {
	Category      Category           `json:"category"`
	Label         string             `json:"label"`
	Confidence    float64            `json:"confidence"`
	Rationale     string             `json:"rationale"`
	Probabilities map[string]float64 `json:"probabilities,omitempty"`
	Tier          string             `json:"tier"`
	Degraded      bool               `json:"degraded"`
	Timestamp     time.Time          `json:"timestamp"`
	Fallback      bool               `json:"-"`
}

// HasProbabilities reports whether a distribution was produced.
func (r Result) HasProbabilities() bool {
	return len(r.Probabilities) > 0
}
