// Package domain exposes the Daggerheart rules engine as MCP tools.
//
// Every handler is a pure translation: decode the tool input into engine
// types, call the engine, and return a structured result. Nothing here
// writes to the store.
package domain
