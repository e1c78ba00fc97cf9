/*
Package questionnaire implements the stage questionnaire engine.

A Table is the static decision tree: an ordered list of questions whose yes
and no edges either continue to another question or end on a stage. The
default table is compiled into the binary and validated when first loaded;
a malformed table is a configuration error, never a runtime one.

An Engine walks a Table. It holds a single piece of state, the index of the
current question, and exposes three operations:

	eng := questionnaire.New()
	q := eng.CurrentPrompt()           // first question
	out := eng.Answer(domain.Yes)      // NextQuestion or Resolved
	q = eng.Restart()                  // back to the first question

Engines are not safe for concurrent use. Adapters that serve several users
keep one domain.State per session and rebuild an Engine with Resume.
*/
package questionnaire
