package dto

import "github.com/aretw0/ucanfire/pkg/domain"

// TableQuestion describes one row of the decision table.
type TableQuestion struct {
	Index    int    `json:"index"`
	Headline string `json:"headline"`
	Detail   string `json:"detail,omitempty"`
	Yes      Edge   `json:"yes"`
	No       Edge   `json:"no"`
}

// Edge is either {"next": n} or {"stage": {...}}.
type Edge struct {
	Next  *int   `json:"next,omitempty"`
	Stage *Stage `json:"stage,omitempty"`
}

// NewTable maps the questions of a table.
func NewTable(questions []domain.Question) []TableQuestion {
	out := make([]TableQuestion, len(questions))
	for i, q := range questions {
		out[i] = TableQuestion{
			Index:    i,
			Headline: q.Prompt.Headline,
			Detail:   q.Prompt.Detail,
			Yes:      NewEdge(q.Yes),
			No:       NewEdge(q.No),
		}
	}
	return out
}

// NewEdge maps an edge.
func NewEdge(e domain.Edge) Edge {
	switch e := e.(type) {
	case domain.Continue:
		next := e.Next
		return Edge{Next: &next}
	case domain.Terminal:
		s := NewStage(e.Stage)
		return Edge{Stage: &s}
	}
	return Edge{}
}

// NewStages maps a list of stages.
func NewStages(stages []domain.Stage) []Stage {
	out := make([]Stage, len(stages))
	for i, s := range stages {
		out[i] = NewStage(s)
	}
	return out
}
