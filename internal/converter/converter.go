// Package converter turns ADF trees into Markdown and back.
//
// TreeToText and TextToTree are pure and safe to call from any number of
// goroutines. Converter wraps them with the JSON codec and the optional
// post-processing the CLI and tool layers need.
package converter

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gubarz/adfmd/internal/adf"
	"github.com/gubarz/adfmd/internal/logger"
)

// ErrEmptyInput is returned by the JSON entry points for empty payloads.
var ErrEmptyInput = errors.New("converter: empty input")

// Options tunes a Converter.
type Options struct {
	// TableLocalIDs assigns a localId to tables produced from Markdown.
	TableLocalIDs bool
	// NewID generates local identifiers. Required when TableLocalIDs is set.
	NewID func() string
}

// Converter is a configured entry point around TreeToText and TextToTree.
type Converter struct {
	opts Options
}

// New creates a converter.
func New(opts Options) *Converter {
	return &Converter{opts: opts}
}

// ToMarkdown serialises doc, prefixed by front-matter when meta is non-nil.
func (c *Converter) ToMarkdown(doc *adf.Document, meta Metadata) (string, error) {
	out, err := TreeToText(doc, meta)
	if err != nil {
		return "", err
	}
	if doc != nil {
		logger.Debug("rendered %d top-level nodes into %d bytes", len(doc.Content), len(out))
	}
	return out, nil
}

// ToADF parses Markdown into a document and its front-matter.
func (c *Converter) ToADF(markdown string) (*adf.Document, Metadata, error) {
	doc, meta, err := TextToTree(markdown)
	if err != nil {
		return nil, nil, err
	}
	if c.opts.TableLocalIDs && c.opts.NewID != nil {
		if n := adf.AssignLocalIDs(doc, c.opts.NewID); n > 0 {
			logger.Debug("assigned %d table local ids", n)
		}
	}
	logger.Debug("parsed %d top-level nodes, front-matter keys: %d", len(doc.Content), len(meta))
	return doc, meta, nil
}

// ToMarkdownJSON decodes an ADF document or Envelope and serialises it.
// meta overrides envelope metadata when non-nil.
func (c *Converter) ToMarkdownJSON(data []byte, meta Metadata) (string, error) {
	doc, envMeta, err := DecodeDocument(data)
	if err != nil {
		return "", err
	}
	if meta == nil {
		meta = envMeta
	}
	return c.ToMarkdown(doc, meta)
}

// ToADFJSON parses Markdown and encodes the document as JSON.
// An empty indent produces compact output.
func (c *Converter) ToADFJSON(markdown string, indent string) ([]byte, Metadata, error) {
	doc, meta, err := c.ToADF(markdown)
	if err != nil {
		return nil, nil, err
	}
	data, err := EncodeJSON(doc, indent)
	if err != nil {
		return nil, nil, err
	}
	return data, meta, nil
}

// EncodeJSON marshals v, indented when indent is non-empty.
func EncodeJSON(v any, indent string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if indent == "" {
		data, err = json.Marshal(v)
	} else {
		data, err = json.MarshalIndent(v, "", indent)
	}
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return data, nil
}
