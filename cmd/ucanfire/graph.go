package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/ucanfire/internal/presentation/graph"
	"github.com/aretw0/ucanfire/pkg/domain"
	"github.com/aretw0/ucanfire/pkg/questionnaire"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the decision table as a Mermaid diagram",
	Long: `Outputs a Mermaid diagram (graph TD) of the questions and the stages they lead to.
With --answers (for example "y,n,y") the path those answers take is highlighted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		answers, _ := cmd.Flags().GetString("answers")

		table, err := loadTable(path)
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		if answers != "" {
			overlay, err = replay(table, answers)
			if err != nil {
				return err
			}
		}

		fmt.Print(graph.GenerateMermaid(table.Questions(), overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("file", "f", "", "YAML decision table to draw (built-in table if empty)")
	graphCmd.Flags().String("answers", "", "Comma separated answers to highlight, e.g. y,n,y")
}

// replay walks answers through the table and records the path taken.
// Answers after the stage is resolved are rejected.
func replay(table *questionnaire.Table, answers string) (*graph.GraphOverlay, error) {
	state := domain.NewState("")
	overlay := &graph.GraphOverlay{Current: state.QuestionIndex}

	for i, raw := range strings.Split(answers, ",") {
		if state.Terminated() {
			return nil, fmt.Errorf("answer %d (%q): questionnaire already resolved to stage %d", i+1, raw, state.Resolved.ID)
		}
		choice, err := domain.ParseChoice(raw)
		if err != nil {
			return nil, fmt.Errorf("answer %d: %w", i+1, err)
		}

		overlay.Visited = append(overlay.Visited, state.QuestionIndex)
		state, _, err = table.Navigate(state, choice)
		if err != nil {
			return nil, err
		}
		overlay.Current = state.QuestionIndex
	}

	if state.Terminated() {
		overlay.Resolved = state.Resolved
		overlay.Current = -1
	}
	return overlay, nil
}

// loadTable reads a decision table from path, or returns the built-in one.
func loadTable(path string) (*questionnaire.Table, error) {
	if path == "" {
		return questionnaire.Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}
	return questionnaire.Load(data)
}
