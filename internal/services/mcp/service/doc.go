// Package service wires the MCP protocol to the advancement tools.
//
// It is the transport adapter layer: the package knows how to run MCP over
// stdio and delegates rules meaning to the domain handlers.
package service
