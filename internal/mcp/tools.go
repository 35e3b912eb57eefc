package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gubarz/adfmd/internal/converter"
	"github.com/gubarz/adfmd/internal/render"
)

// MarkdownInput is the input schema for markdown_to_adf and markdown_to_html.
type MarkdownInput struct {
	Markdown string `json:"markdown" jsonschema:"markdown text, optionally starting with a YAML front-matter block"`
}

// ADFOutput is the output schema for markdown_to_adf.
type ADFOutput struct {
	ADF      string         `json:"adf"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ADFInput is the input schema for adf_to_markdown.
type ADFInput struct {
	ADF      string         `json:"adf" jsonschema:"ADF document JSON, or an object with body and metadata"`
	Metadata map[string]any `json:"metadata,omitempty" jsonschema:"front-matter to write ahead of the markdown"`
}

// MarkdownOutput is the output schema for adf_to_markdown.
type MarkdownOutput struct {
	Markdown string `json:"markdown"`
}

// HTMLOutput is the output schema for markdown_to_html.
type HTMLOutput struct {
	HTML string `json:"html"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "markdown_to_adf",
		Description: "Convert Markdown with optional front-matter into an ADF document",
	}, s.handleMarkdownToADF)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "adf_to_markdown",
		Description: "Convert an ADF document into Markdown",
	}, s.handleADFToMarkdown)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "markdown_to_html",
		Description: "Normalise Markdown through ADF and render it as HTML",
	}, s.handleMarkdownToHTML)
}

func (s *Server) handleMarkdownToADF(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input MarkdownInput,
) (*mcp.CallToolResult, ADFOutput, error) {
	if strings.TrimSpace(input.Markdown) == "" {
		return nil, ADFOutput{}, ErrMissingInput
	}

	data, meta, err := s.conv.ToADFJSON(input.Markdown, s.indent)
	if err != nil {
		return nil, ADFOutput{}, fmt.Errorf("markdown_to_adf: %w", err)
	}

	return nil, ADFOutput{ADF: string(data), Metadata: meta}, nil
}

func (s *Server) handleADFToMarkdown(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ADFInput,
) (*mcp.CallToolResult, MarkdownOutput, error) {
	if strings.TrimSpace(input.ADF) == "" {
		return nil, MarkdownOutput{}, ErrMissingInput
	}

	var meta converter.Metadata
	if input.Metadata != nil {
		meta = converter.Metadata(input.Metadata)
	}

	md, err := s.conv.ToMarkdownJSON([]byte(input.ADF), meta)
	if err != nil {
		return nil, MarkdownOutput{}, fmt.Errorf("adf_to_markdown: %w", err)
	}

	return nil, MarkdownOutput{Markdown: md}, nil
}

func (s *Server) handleMarkdownToHTML(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input MarkdownInput,
) (*mcp.CallToolResult, HTMLOutput, error) {
	if strings.TrimSpace(input.Markdown) == "" {
		return nil, HTMLOutput{}, ErrMissingInput
	}

	doc, _, err := s.conv.ToADF(input.Markdown)
	if err != nil {
		return nil, HTMLOutput{}, fmt.Errorf("markdown_to_html: %w", err)
	}
	md, err := s.conv.ToMarkdown(doc, nil)
	if err != nil {
		return nil, HTMLOutput{}, fmt.Errorf("markdown_to_html: %w", err)
	}
	html, err := render.HTML(md)
	if err != nil {
		return nil, HTMLOutput{}, fmt.Errorf("markdown_to_html: %w", err)
	}

	return nil, HTMLOutput{HTML: string(html)}, nil
}
