package runner

import (
	"context"

	"github.com/aretw0/ucanfire/pkg/domain"
)

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (CLI/TUI) and JSON (Structured) modes.
type IOHandler interface {
	// Question presents the question at index.
	Question(ctx context.Context, index int, q domain.Question) error

	// Result presents the stage a questionnaire resolved to.
	Result(ctx context.Context, stage domain.Stage) error

	// Input reads a response from the user.
	Input(ctx context.Context) (string, error)

	// SystemOutput presents a meta-message to the user (hints, errors).
	// This is distinct from content rendering.
	SystemOutput(ctx context.Context, msg string) error
}

// ContentRenderer transforms markdown before it is written.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// QuestionMarkdown formats a question the way it is shown to people:
// the headline in bold with the detail on the next line.
func QuestionMarkdown(q domain.Question) string {
	if q.Prompt.Detail == "" {
		return "**" + q.Prompt.Headline + "**"
	}
	return "**" + q.Prompt.Headline + "**  \n" + q.Prompt.Detail
}

// ResultMarkdown formats a resolved stage with its link.
func ResultMarkdown(stage domain.Stage) string {
	return stage.Summary() + "\n\n[View This Stage →](" + stage.Link() + ")"
}
