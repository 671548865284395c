// Package storage defines persistence interfaces for the advancement service.
//
// It covers characters, their advancement history and the domain card
// catalog. Implementations (e.g., SQLite) live in subpackages.
//
// Common error types:
//   - ErrNotFound: requested record is missing
package storage
