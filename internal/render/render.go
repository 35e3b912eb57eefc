// Package render displays converted Markdown as HTML or styled terminal text.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// StyleAuto picks a dark or light terminal style from the background.
const StyleAuto = "auto"

// newEngine builds the goldmark engine. Raw HTML is omitted; hard wraps keep
// the line breaks that ADF hardBreak nodes serialise to.
func newEngine() goldmark.Markdown {
	rendererOptions := []renderer.Option{
		html.WithXHTML(),
		html.WithHardWraps(),
	}

	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendererOptions...),
	)
}

// HTML renders markdown to an HTML fragment with GitHub-flavoured tables and
// strikethrough.
func HTML(markdown string) ([]byte, error) {
	var buf bytes.Buffer
	if err := newEngine().Convert([]byte(markdown), &buf); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

// Terminal renders markdown for display in a terminal. style is "auto", a
// glamour standard style name, or a path to a JSON style file. width <= 0
// disables wrapping.
func Terminal(markdown, style string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(terminalOptions(style, width)...)
	if err != nil {
		return "", fmt.Errorf("terminal renderer: %w", err)
	}

	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render terminal: %w", err)
	}
	return out, nil
}

func terminalOptions(style string, width int) []glamour.TermRendererOption {
	opts := make([]glamour.TermRendererOption, 0, 3)

	style = strings.TrimSpace(style)
	if style == "" || style == StyleAuto {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStylePath(style))
	}

	if width < 0 {
		width = 0
	}
	opts = append(opts, glamour.WithWordWrap(width))
	opts = append(opts, glamour.WithEmoji())
	return opts
}
