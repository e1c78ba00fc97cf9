package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/ucanfire/pkg/domain"
)

// GraphOverlay contains session data to visualize on the graph.
type GraphOverlay struct {
	// Visited lists question indexes already answered.
	Visited []int
	// Current is the question being asked, or -1.
	Current int
	// Resolved is the stage reached, if any.
	Resolved *domain.Stage
}

// GenerateMermaid produces a Mermaid flowchart of the question table.
// Questions are drawn as parallelograms ([/q/]) and stages as stadiums
// (["stage"]). Edges are labelled with the choice that follows them.
func GenerateMermaid(questions []domain.Question, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	stages := newStageIDs()

	for i, q := range questions {
		fmt.Fprintf(&sb, "    %s[/\"%s\"/]\n", questionID(i), escapeLabel(q.Prompt.Headline))
	}

	for i, q := range questions {
		for _, choice := range []domain.Choice{domain.Yes, domain.No} {
			var target string
			switch e := q.Edge(choice).(type) {
			case domain.Continue:
				target = questionID(e.Next)
			case domain.Terminal:
				id, isNew := stages.id(e.Stage)
				if isNew {
					fmt.Fprintf(&sb, "    %s([\"Stage %d: %s\"])\n", id, e.Stage.ID, escapeLabel(e.Stage.Name))
				}
				target = id
			default:
				continue
			}
			fmt.Fprintf(&sb, "    %s -- %s --> %s\n", questionID(i), choice, target)
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[int]bool)
		for _, idx := range overlay.Visited {
			if seen[idx] || idx < 0 || idx >= len(questions) {
				continue
			}
			seen[idx] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", questionID(idx))
		}

		switch {
		case overlay.Resolved != nil:
			if id, ok := stages.lookup(*overlay.Resolved); ok {
				fmt.Fprintf(&sb, "    class %s current;\n", id)
			}
		case overlay.Current >= 0 && overlay.Current < len(questions):
			fmt.Fprintf(&sb, "    class %s current;\n", questionID(overlay.Current))
		}
	}

	return sb.String()
}

func questionID(i int) string {
	return fmt.Sprintf("q%d", i)
}

// stageIDs assigns node IDs to stages. Stages sharing an ID but not a name
// get a numeric suffix (stage6, stage6_2).
type stageIDs struct {
	ids   map[domain.Stage]string
	count map[int]int
}

func newStageIDs() *stageIDs {
	return &stageIDs{ids: make(map[domain.Stage]string), count: make(map[int]int)}
}

func (s *stageIDs) id(stage domain.Stage) (string, bool) {
	if id, ok := s.ids[stage]; ok {
		return id, false
	}
	s.count[stage.ID]++
	id := fmt.Sprintf("stage%d", stage.ID)
	if n := s.count[stage.ID]; n > 1 {
		id = fmt.Sprintf("%s_%d", id, n)
	}
	s.ids[stage] = id
	return id, true
}

func (s *stageIDs) lookup(stage domain.Stage) (string, bool) {
	id, ok := s.ids[stage]
	return id, ok
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}
