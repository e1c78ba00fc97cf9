package domain

import "fmt"

// Prompt is the two-part text of a question.
// Presentation layers render Headline emphasized and Detail underneath.
type Prompt struct {
	Headline string `json:"headline" yaml:"headline" mapstructure:"headline"`
	Detail   string `json:"detail,omitempty" yaml:"detail,omitempty" mapstructure:"detail"`
}

// Text returns the raw two-line form of the prompt.
func (p Prompt) Text() string {
	if p.Detail == "" {
		return p.Headline
	}
	return p.Headline + "\n" + p.Detail
}

// Edge is where an answer leads: either another question or a stage.
// The interface is sealed; Continue and Terminal are the only implementations.
type Edge interface {
	isEdge()
	fmt.Stringer
}

// Continue points to another question by its index in the table.
type Continue struct {
	Next int
}

// Terminal ends the questionnaire with a stage.
type Terminal struct {
	Stage Stage
}

func (Continue) isEdge() {}
func (Terminal) isEdge() {}

func (c Continue) String() string { return fmt.Sprintf("→%d", c.Next) }
func (t Terminal) String() string { return t.Stage.String() }

// Question is a single decision point of the tree.
type Question struct {
	Prompt Prompt
	Yes    Edge
	No     Edge
}

// Edge returns the edge followed for the given choice.
func (q Question) Edge(choice Choice) Edge {
	if choice == Yes {
		return q.Yes
	}
	return q.No
}
