package converter

import (
	"regexp"
	"strings"

	"github.com/gubarz/adfmd/internal/adf"
)

// maxQuoteDepth bounds blockquote recursion. Deeper quote text is kept as
// plain paragraphs.
const maxQuoteDepth = 32

var (
	headingRe     = regexp.MustCompile(`^(#+)(.*)$`)
	orderedItemRe = regexp.MustCompile(`^\d+\. `)
	panelRe       = regexp.MustCompile(`^> (ℹ️|ℹ|⚠️|⚠|❌|✅|📝) \*\*([^*]+):\*\*(?: (.*))?$`)
)

// glyphPanels maps callout glyphs back to panel types. Bare glyphs without the
// emoji variation selector are accepted too.
var glyphPanels = map[string]adf.PanelType{
	"ℹ️": adf.PanelInfo,
	"ℹ":  adf.PanelInfo,
	"⚠️": adf.PanelWarning,
	"⚠":  adf.PanelWarning,
	"❌":  adf.PanelError,
	"✅":  adf.PanelSuccess,
	"📝":  adf.PanelNote,
}

// blockRecognizer claims a line and consumes one or more lines from i.
// consume returns a nil node for lines that produce nothing.
type blockRecognizer struct {
	name    string
	match   func(line string) bool
	consume func(p *parser, lines []string, i int) (adf.Node, int)
}

// recognizers are tried in order; the first match wins.
var recognizers []blockRecognizer

func init() {
	recognizers = []blockRecognizer{
		{name: "blank", match: isBlank, consume: func(*parser, []string, int) (adf.Node, int) { return nil, 1 }},
		{name: "heading", match: isHeading, consume: (*parser).heading},
		{name: "code", match: isFence, consume: (*parser).codeBlock},
		{name: "quote", match: isQuote, consume: (*parser).quote},
		{name: "list", match: func(l string) bool { return listKind(l) != listNone }, consume: (*parser).list},
		{name: "table", match: isTableRow, consume: (*parser).table},
		{name: "rule", match: isRule, consume: func(*parser, []string, int) (adf.Node, int) { return &adf.Rule{}, 1 }},
		{name: "paragraph", match: func(string) bool { return true }, consume: (*parser).paragraph},
	}
}

// TextToTree parses Markdown into a document. Metadata is nil unless the
// input starts with a front-matter block; a block that fails to decode is
// reported as an error wrapping ErrFrontMatter.
func TextToTree(markdown string) (*adf.Document, Metadata, error) {
	markdown = strings.ReplaceAll(markdown, "\r\n", "\n")

	var meta Metadata
	if block, body, ok := splitFrontMatter(markdown); ok {
		decoded, err := decodeFrontMatter(block)
		if err != nil {
			return nil, nil, err
		}
		meta = decoded
		markdown = body
	}

	p := &parser{}
	return adf.NewDocument(p.parseLines(splitLines(markdown))...), meta, nil
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// parser tracks quote depth for one TextToTree call.
type parser struct {
	depth int
}

func (p *parser) parseLines(lines []string) []adf.Node {
	nodes := []adf.Node{}
	for i := 0; i < len(lines); {
		node, n := p.parseBlock(lines, i)
		if node != nil {
			nodes = append(nodes, node)
		}
		i += n
	}
	return nodes
}

func (p *parser) parseBlock(lines []string, i int) (adf.Node, int) {
	for _, r := range recognizers {
		if r.match(lines[i]) {
			node, n := r.consume(p, lines, i)
			if n < 1 {
				n = 1
			}
			return node, n
		}
	}
	return nil, 1
}

// ============================================================================
// Line predicates
// ============================================================================

func isBlank(line string) bool   { return strings.TrimSpace(line) == "" }
func isHeading(line string) bool { return strings.HasPrefix(line, "#") }
func isFence(line string) bool   { return strings.HasPrefix(line, "```") }
func isQuote(line string) bool   { return strings.HasPrefix(line, "> ") || line == ">" }
func isTableRow(l string) bool   { return strings.HasPrefix(l, "| ") }
func isRule(line string) bool    { return strings.TrimSpace(line) == "---" }

type listType int

const (
	listNone listType = iota
	listBullet
	listOrdered
)

// listKind ignores leading indentation so nested items read back as
// siblings of their parent.
func listKind(line string) listType {
	line = strings.TrimLeft(line, " \t")
	switch {
	case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
		return listBullet
	case orderedItemRe.MatchString(line):
		return listOrdered
	}
	return listNone
}

// ============================================================================
// Block consumers
// ============================================================================

func (p *parser) heading(lines []string, i int) (adf.Node, int) {
	m := headingRe.FindStringSubmatch(lines[i])
	return &adf.Heading{
		Level:   adf.ClampLevel(len(m[1])),
		Content: tokenizeInline(strings.TrimSpace(m[2])),
	}, 1
}

func (p *parser) codeBlock(lines []string, i int) (adf.Node, int) {
	lang := strings.TrimSpace(strings.TrimPrefix(lines[i], "```"))

	j := i + 1
	for j < len(lines) && !isFence(lines[j]) {
		j++
	}
	body := strings.Join(lines[i+1:j], "\n")

	consumed := j - i
	if j < len(lines) {
		consumed++ // closing fence
	}
	return &adf.CodeBlock{Language: lang, Text: body}, consumed
}

func (p *parser) quote(lines []string, i int) (adf.Node, int) {
	if m := panelRe.FindStringSubmatch(lines[i]); m != nil {
		pt, ok := glyphPanels[m[1]]
		if !ok {
			pt = adf.PanelInfo
		}
		return &adf.Panel{
			PanelType: pt,
			Content:   []adf.Node{adf.NewParagraph(tokenizeInline(m[3])...)},
		}, 1
	}

	j := i
	inner := make([]string, 0, 4)
	for j < len(lines) && isQuote(lines[j]) {
		inner = append(inner, strings.TrimPrefix(strings.TrimPrefix(lines[j], ">"), " "))
		j++
	}

	if p.depth >= maxQuoteDepth {
		content := []adf.Node{}
		for _, l := range inner {
			if !isBlank(l) {
				content = append(content, adf.NewParagraph(tokenizeInline(l)...))
			}
		}
		return &adf.Blockquote{Content: content}, j - i
	}

	p.depth++
	content := p.parseLines(inner)
	p.depth--

	return &adf.Blockquote{Content: content}, j - i
}

func (p *parser) list(lines []string, i int) (adf.Node, int) {
	kind := listKind(lines[i])

	var items []*adf.ListItem
	consumed := 0
	for j := i; j < len(lines); j++ {
		line := lines[j]
		if isBlank(line) {
			continue
		}
		if listKind(line) != kind {
			break
		}
		items = append(items, &adf.ListItem{
			Content: []adf.Node{adf.NewParagraph(tokenizeInline(stripListMarker(line, kind))...)},
		})
		consumed = j - i + 1
	}

	if kind == listOrdered {
		return &adf.OrderedList{Items: items}, consumed
	}
	return &adf.BulletList{Items: items}, consumed
}

func stripListMarker(line string, kind listType) string {
	line = strings.TrimLeft(line, " \t")
	if kind == listOrdered {
		return line[len(orderedItemRe.FindString(line)):]
	}
	return line[2:]
}

// table starts on a "| " line; later rows only need a leading pipe so that
// compact separators like |---|---| are consumed.
func (p *parser) table(lines []string, i int) (adf.Node, int) {
	table := &adf.Table{}

	j := i
	for ; j < len(lines) && strings.HasPrefix(lines[j], "|"); j++ {
		line := lines[j]
		if strings.Contains(line, "---") {
			continue
		}

		header := len(table.Rows) == 0
		row := &adf.TableRow{}
		for _, cell := range splitRow(line) {
			para := adf.NewParagraph(tokenizeInline(cell)...)
			if header {
				row.Cells = append(row.Cells, &adf.TableHeader{Content: []adf.Node{para}})
			} else {
				row.Cells = append(row.Cells, &adf.TableCell{Content: []adf.Node{para}})
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, j - i
}

// splitRow splits a pipe row, dropping the empty pieces outside the outer pipes.
func splitRow(line string) []string {
	parts := strings.Split(line, "|")
	if len(parts) > 0 && strings.TrimSpace(parts[0]) == "" {
		parts = parts[1:]
	}
	if len(parts) > 0 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}
	for k := range parts {
		parts[k] = strings.TrimSpace(parts[k])
	}
	return parts
}

func (p *parser) paragraph(lines []string, i int) (adf.Node, int) {
	return adf.NewParagraph(tokenizeInline(lines[i])...), 1
}
