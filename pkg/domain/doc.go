/*
Package domain contains the core domain model of the ucanfire questionnaire.

It defines the entities of the decision tree and of a questionnaire session.
The package is pure: it has no I/O, no persistence and no third-party
dependencies, so every adapter (terminal, HTTP, MCP) can share it.

# Key Entities

  - Question: a two-part Prompt plus one Edge per Choice.
  - Edge: a sealed sum type, either Continue (next question index) or Terminal (a Stage).
  - Stage: a named financial-readiness category with a detail page link.
  - Outcome: the result of answering, either NextQuestion or Resolved.
  - State: a serializable session snapshot used by stateless adapters.
*/
package domain
