package mcp

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gubarz/adfmd/internal/adf"
	"github.com/gubarz/adfmd/internal/converter"
)

const uriScheme = "adfmd://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "syntax",
		Name:        "syntax",
		Description: "Markdown subset understood by the converter",
		MIMEType:    "text/markdown",
	}, s.handleSyntaxResource)
}

// handleSyntaxResource describes the supported Markdown forms.
func (s *Server) handleSyntaxResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     SyntaxGuide(),
		}},
	}, nil
}

// SyntaxGuide lists the block and inline forms along with the panel callouts.
func SyntaxGuide() string {
	var b strings.Builder
	b.WriteString("# Supported Markdown\n\n")
	b.WriteString("- Headings `#` to `######`\n")
	b.WriteString("- Fenced code blocks with an optional language\n")
	b.WriteString("- Blockquotes `> `\n")
	b.WriteString("- Bullet lists `- ` and ordered lists `1. `\n")
	b.WriteString("- Pipe tables with a `| --- |` separator row\n")
	b.WriteString("- Horizontal rules `---`\n")
	b.WriteString("- Inline `**strong**`, `*em*`, `` `code` ``, `~~strike~~`, `[text](url)`\n\n")
	b.WriteString("## Panels\n\n")
	for _, pt := range adf.PanelTypes {
		b.WriteString("- `> " + converter.PanelIcon(pt) + " **" + converter.PanelLabel(pt) + ":** text`\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
