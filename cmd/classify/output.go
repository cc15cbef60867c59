package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/classifier"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/domain"
)

// render writes v as indented JSON, or as a table for the types that have one.
func render(w io.Writer, format string, v any) error {
	if format == outputTable {
		if t := toTable(v); t != nil {
			t.SetOutputMirror(w)
			t.SetStyle(table.StyleLight)
			t.Render()
			return nil
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func toTable(v any) table.Writer {
	t := table.NewWriter()
	switch v := v.(type) {
	case domain.Result:
		t.SetTitle(fmt.Sprintf("%s (%s) %.1f%% via %s", v.Category, v.Label, v.Confidence*100, v.Tier))
		t.AppendHeader(table.Row{"Category", "Probability"})
		for _, c := range domain.AllCategories() {
			if p, ok := v.Probabilities[string(c)]; ok {
				t.AppendRow(table.Row{c, fmt.Sprintf("%.3f", p)})
			}
		}
		t.AppendFooter(table.Row{"Rationale", v.Rationale})
	case classifier.ScenarioReport:
		t.AppendHeader(table.Row{"Scenario", "Expected", "Predicted", "Confidence", "Tier", "OK"})
		for _, o := range v.Outcomes {
			t.AppendRow(table.Row{o.Name, o.Expected, o.Predicted, fmt.Sprintf("%.3f", o.Confidence), o.Tier, o.Correct})
		}
		t.AppendFooter(table.Row{"Accuracy", "", "", "", fmt.Sprintf("%d/%d", v.Correct, v.Total), fmt.Sprintf("%.0f%%", v.Accuracy*100)})
	case []domain.Category:
		t.AppendHeader(table.Row{"#", "Token", "Label", "Default"})
		for i, c := range v {
			t.AppendRow(table.Row{i + 1, c, c.Label(), c == domain.DefaultCategory})
		}
	default:
		return nil
	}
	return t
}
