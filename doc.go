/*
Package ucanfire finds which of six financial stages a person is in by asking
up to six yes/no questions.

Each question has two edges, one per answer. An edge either continues to
another question or ends the questionnaire on a stage. The default decision
table is embedded in package questionnaire and can be replaced by any table
that passes validation.

# Usage

	eng := ucanfire.New()
	for {
		q := eng.CurrentPrompt()
		fmt.Println(q.Prompt.Headline)

		outcome := eng.Answer(readChoice())
		if outcome.IsResolved() {
			fmt.Println(outcome.Stage.Summary())
			break
		}
	}

Long-running sessions (HTTP, MCP, the terminal runner) go through
session.Manager, which persists the question index in a ports.StateStore
and serializes concurrent answers per session.
*/
package ucanfire
