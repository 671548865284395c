// Package sqlite implements the advancement persistence contracts on SQLite.
//
// Characters are stored as a JSON payload beside a few indexed columns; each
// advancement record gets its own row keyed by character and level so level
// changes and their history commit in one transaction. Migrations are embedded
// and applied on open.
package sqlite
