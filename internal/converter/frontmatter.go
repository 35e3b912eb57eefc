package converter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	"go.yaml.in/yaml/v3"
)

// ErrFrontMatter is returned when a front-matter block cannot be decoded.
var ErrFrontMatter = errors.New("converter: invalid front-matter")

const fence = "---"

// Metadata is the flat key-value mapping carried in front-matter.
type Metadata map[string]any

// String returns the value for key formatted as a string, or "" if absent.
func (m Metadata) String(key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// splitFrontMatter separates a leading ---/--- block from the body.
// The closing fence must be a line of exactly "---".
func splitFrontMatter(input string) (block, body string, found bool) {
	if !strings.HasPrefix(input, fence+"\n") {
		return "", input, false
	}

	rest := input[len(fence):] // keeps the newline so an empty block still matches
	if idx := strings.Index(rest, "\n"+fence+"\n"); idx >= 0 {
		block = rest[:idx]
		body = rest[idx+len(fence)+2:]
	} else if strings.HasSuffix(rest, "\n"+fence) {
		block = rest[:len(rest)-len(fence)-1]
	} else {
		return "", input, false
	}

	return strings.TrimPrefix(block, "\n"), strings.TrimSpace(body), true
}

// yamlFormat decodes with yaml.v3 so nested mappings come back as
// map[string]any and stay JSON-encodable.
var yamlFormat = frontmatter.NewFormat(fence, fence, yaml.Unmarshal)

// decodeFrontMatter parses the YAML between the fences.
func decodeFrontMatter(block string) (Metadata, error) {
	meta := Metadata{}
	if strings.TrimSpace(block) == "" {
		return meta, nil
	}

	src := fence + "\n" + block + "\n" + fence + "\n"
	if _, err := frontmatter.Parse(strings.NewReader(src), &meta, yamlFormat); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}
	return meta, nil
}

// encodeFrontMatter renders meta as a fenced YAML block followed by a blank line.
// Keys come out sorted and strings that would read back as another type are quoted.
func encodeFrontMatter(meta Metadata) (string, error) {
	var b strings.Builder
	b.WriteString(fence + "\n")
	if len(meta) > 0 {
		out, err := yaml.Marshal(map[string]any(meta))
		if err != nil {
			return "", fmt.Errorf("encode front-matter: %w", err)
		}
		b.Write(out)
	}
	b.WriteString(fence + "\n\n")
	return b.String(), nil
}
