// Package migrations embeds SQL migration scripts used by the SQLite backend.
//
// Schema history lives here so stores upgrade on open without manual
// operator SQL.
package migrations
