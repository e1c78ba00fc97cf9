package questionnaire

import (
	"fmt"

	"github.com/aretw0/ucanfire/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// tableDocument is the authoring format of a decision table.
type tableDocument struct {
	Questions []questionDocument `mapstructure:"questions"`
}

type questionDocument struct {
	Headline string       `mapstructure:"headline"`
	Detail   string       `mapstructure:"detail"`
	Yes      edgeDocument `mapstructure:"yes"`
	No       edgeDocument `mapstructure:"no"`
}

// edgeDocument carries exactly one of Next or Stage.
type edgeDocument struct {
	Next  *int          `mapstructure:"next"`
	Stage *domain.Stage `mapstructure:"stage"`
}

// Load parses a YAML decision table and validates it.
func Load(data []byte) (*Table, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse table: %w", err)
	}

	var doc tableDocument
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &doc,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create table decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode table: %w", err)
	}

	questions := make([]domain.Question, 0, len(doc.Questions))
	var problems []string
	for i, qd := range doc.Questions {
		yes, err := qd.Yes.edge()
		if err != nil {
			problems = append(problems, fmt.Sprintf("question %d, yes edge: %v", i, err))
		}
		no, err := qd.No.edge()
		if err != nil {
			problems = append(problems, fmt.Sprintf("question %d, no edge: %v", i, err))
		}
		questions = append(questions, domain.Question{
			Prompt: domain.Prompt{Headline: qd.Headline, Detail: qd.Detail},
			Yes:    yes,
			No:     no,
		})
	}
	if len(problems) > 0 {
		return nil, &TableError{Problems: problems}
	}

	return NewTable(questions...)
}

func (d edgeDocument) edge() (domain.Edge, error) {
	switch {
	case d.Next != nil && d.Stage != nil:
		return nil, fmt.Errorf("both 'next' and 'stage' are set")
	case d.Next != nil:
		return domain.Continue{Next: *d.Next}, nil
	case d.Stage != nil:
		return domain.Terminal{Stage: *d.Stage}, nil
	}
	return nil, fmt.Errorf("one of 'next' or 'stage' is required")
}
