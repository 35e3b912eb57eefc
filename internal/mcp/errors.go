// Package mcp exposes the converter as Model Context Protocol tools so that
// assistants can move page content between ADF and Markdown.
package mcp

import "errors"

var (
	// ErrMissingConverter is returned when no converter is provided.
	ErrMissingConverter = errors.New("mcp: converter is required")
	// ErrMissingInput is returned when a tool is called without content.
	ErrMissingInput = errors.New("mcp: input is required")
)
