// Package app composes the advancement rules engine with persistence.
//
// State is the explicit application state container (active character and
// in-progress level-up). Service drives the engine against a storage.Store,
// applying results to State optimistically and rolling back when the store
// write fails.
package app
