package classifier

import (
	"context"

	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/data"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/domain"
)

// ScenarioOutcome is the prediction for one demo scenario.
type ScenarioOutcome struct {
	Name       string          `json:"name"`
	Subject    string          `json:"subject"`
	Expected   domain.Category `json:"expected"`
	Predicted  domain.Category `json:"predicted"`
	Confidence float64         `json:"confidence"`
	Tier       string          `json:"tier"`
	Correct    bool            `json:"correct"`
}

// ScenarioReport summarizes a scenario run.
type ScenarioReport struct {
	Outcomes []ScenarioOutcome `json:"outcomes"`
	Correct  int               `json:"correct"`
	Total    int               `json:"total"`
	Accuracy float64           `json:"accuracy"`
}

// RunScenarios classifies every scenario email with c.
func RunScenarios(ctx context.Context, c Classifier, scenarios []data.Scenario) ScenarioReport {
	report := ScenarioReport{
		Outcomes: make([]ScenarioOutcome, 0, len(scenarios)),
		Total:    len(scenarios),
	}
	for _, s := range scenarios {
		res := c.Classify(ctx, s.Email.Text())
		outcome := ScenarioOutcome{
			Name:       s.Name,
			Subject:    s.Email.Subject,
			Expected:   s.Expected,
			Predicted:  res.Category,
			Confidence: res.Confidence,
			Tier:       res.Tier,
			Correct:    res.Category == s.Expected,
		}
		if outcome.Correct {
			report.Correct++
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}
	if report.Total > 0 {
		report.Accuracy = float64(report.Correct) / float64(report.Total)
	}
	return report
}
