/*
Package runner implements the interactive loop of the questionnaire.

It is the bridge between a session (see package session) and a terminal or
a structured stream. The runner asks the current question through an IOHandler,
reads an answer, applies it and repeats until a stage is reached. After a result
the user may type "restart" to begin again; "exit" or "quit" (or EOF) stops.

# Key Components

  - Runner: the loop, with optional persistence through a session.Manager.
  - IOHandler: decouples how questions are shown and answers are read.
  - TextHandler: human-friendly terminal IO with an optional renderer.
  - JSONHandler: JSON Lines IO for scripts and other programs.

# Usage

	r := runner.NewRunner(
		runner.WithSessionID("user-1"),
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
	)

	if err := r.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
