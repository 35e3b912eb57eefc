package converter

import (
	"regexp"
	"strings"

	"github.com/gubarz/adfmd/internal/adf"
)

// inlinePattern recognises one marked span anchored at the scan position.
type inlinePattern struct {
	re   *regexp.Regexp
	mark func(m []string) adf.Mark
}

// Order matters: ** must be tried before *.
var inlinePatterns = []inlinePattern{
	{re: regexp.MustCompile(`^\*\*(.+?)\*\*`), mark: func([]string) adf.Mark { return adf.Strong }},
	{re: regexp.MustCompile(`^\*(.+?)\*`), mark: func([]string) adf.Mark { return adf.Em }},
	{re: regexp.MustCompile("^`(.+?)`"), mark: func([]string) adf.Mark { return adf.Code }},
	{re: regexp.MustCompile(`^\[([^\]]+)\]\(([^)]+)\)`), mark: func(m []string) adf.Mark { return adf.Link(m[2]) }},
	{re: regexp.MustCompile(`^~~(.+?)~~`), mark: func([]string) adf.Mark { return adf.Strike }},
}

const inlineSpecials = "*`[~"

// tokenizeInline splits a line into text nodes carrying at most one mark each.
// Nested marks are not recognised.
func tokenizeInline(s string) []adf.Node {
	var nodes []adf.Node
	var plain strings.Builder

	flush := func() {
		if plain.Len() > 0 {
			nodes = append(nodes, adf.NewText(plain.String()))
			plain.Reset()
		}
	}

	pos := 0
	for pos < len(s) {
		rest := s[pos:]
		matched := false
		for _, p := range inlinePatterns {
			m := p.re.FindStringSubmatch(rest)
			if m == nil {
				continue
			}
			flush()
			nodes = append(nodes, adf.NewText(m[1], p.mark(m)))
			pos += len(m[0])
			matched = true
			break
		}
		if matched {
			continue
		}

		next := len(s)
		if i := strings.IndexAny(s[pos+1:], inlineSpecials); i >= 0 {
			next = pos + 1 + i
		}
		plain.WriteString(s[pos:next])
		pos = next
	}
	flush()

	return nodes
}

// renderInline renders inline children; non-inline nodes fall back to the block renderer.
func (r *renderer) renderInline(nodes []adf.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		switch v := n.(type) {
		case *adf.Text:
			b.WriteString(applyMarks(v.Text, v.Marks))
		case *adf.HardBreak:
			b.WriteString("\n")
		default:
			b.WriteString(r.renderBlock(n, 0))
		}
	}
	return b.String()
}

// applyMarks wraps text once per mark, in array order.
func applyMarks(text string, marks []adf.Mark) string {
	for _, m := range marks {
		switch m.Type {
		case adf.MarkStrong:
			text = "**" + text + "**"
		case adf.MarkEm:
			text = "*" + text + "*"
		case adf.MarkCode:
			text = "`" + text + "`"
		case adf.MarkLink:
			text = "[" + text + "](" + m.Href + ")"
		case adf.MarkStrike:
			text = "~~" + text + "~~"
		}
	}
	return text
}
