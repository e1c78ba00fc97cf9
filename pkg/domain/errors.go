package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrInvalidChoice is returned when free text cannot be parsed into a Choice.
var ErrInvalidChoice = errors.New("invalid choice")

// ErrQuestionOutOfRange is returned when a persisted question index does not exist in the table.
var ErrQuestionOutOfRange = errors.New("question index out of range")

// ErrInvalidTable is returned when a decision table fails validation.
var ErrInvalidTable = errors.New("invalid decision table")
