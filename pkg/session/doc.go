/*
Package session runs questionnaires on behalf of many users at once.

The questionnaire engine is single-user and synchronous. The Manager keeps one
domain.State per session in a ports.StateStore and, for every request,
rebuilds an engine at the persisted question index, applies the operation and
saves the result. Read-modify-write cycles on the same session are serialized
by reference-counted in-process locks and, optionally, a distributed locker.
*/
package session
