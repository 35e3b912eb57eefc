package converter

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gubarz/adfmd/internal/adf"
)

// panelIcons maps panel types to the glyph used in the Markdown callout form.
var panelIcons = map[adf.PanelType]string{
	adf.PanelInfo:    "ℹ️",
	adf.PanelWarning: "⚠️",
	adf.PanelError:   "❌",
	adf.PanelSuccess: "✅",
	adf.PanelNote:    "📝",
}

// PanelIcon returns the glyph for t, falling back to the info glyph.
func PanelIcon(t adf.PanelType) string {
	if icon, ok := panelIcons[t]; ok {
		return icon
	}
	return panelIcons[adf.PanelInfo]
}

// PanelLabel returns the title-cased callout label for t, such as "Warning".
func PanelLabel(t adf.PanelType) string {
	return panelLabel(cases.Title(language.English), t)
}

func panelLabel(title cases.Caser, t adf.PanelType) string {
	if t == "" {
		t = adf.PanelInfo
	}
	return title.String(string(t))
}

const listIndent = "  "

var cellBreaks = regexp.MustCompile(`[ \t]*\n+[ \t]*`)

// renderer holds per-call state for one serialisation.
type renderer struct {
	title cases.Caser
}

func newRenderer() *renderer {
	return &renderer{title: cases.Title(language.English)}
}

// TreeToText serialises doc to Markdown. When meta is non-nil it is written
// as a front-matter block first. The result carries no trailing whitespace.
func TreeToText(doc *adf.Document, meta Metadata) (string, error) {
	var b strings.Builder

	if meta != nil {
		fm, err := encodeFrontMatter(meta)
		if err != nil {
			return "", err
		}
		b.WriteString(fm)
	}

	if doc != nil {
		r := newRenderer()
		for _, n := range doc.Content {
			b.WriteString(r.renderBlock(n, 0))
		}
	}

	return strings.TrimRight(b.String(), " \t\r\n"), nil
}

// renderBlock dispatches a node to its block rule. depth is the list nesting level.
func (r *renderer) renderBlock(n adf.Node, depth int) string {
	switch v := n.(type) {
	case *adf.Paragraph:
		return r.renderInline(v.Content) + "\n\n"

	case *adf.Heading:
		return strings.Repeat("#", v.HeadingLevel()) + " " + r.renderInline(v.Content) + "\n\n"

	case *adf.CodeBlock:
		return "```" + v.Language + "\n" + v.Text + "\n```\n\n"

	case *adf.Blockquote:
		return r.renderBlockquote(v) + "\n\n"

	case *adf.Panel:
		return r.renderPanel(v) + "\n\n"

	case *adf.BulletList:
		return r.renderList(v.Items, false, depth) + "\n"

	case *adf.OrderedList:
		return r.renderList(v.Items, true, depth) + "\n"

	case *adf.Table:
		if len(v.Rows) == 0 {
			return ""
		}
		return r.renderTable(v) + "\n\n"

	case *adf.Rule:
		return "---\n\n"

	case *adf.Text, *adf.HardBreak:
		return r.renderInline([]adf.Node{n})

	case nil:
		return ""

	default:
		// Pass-through container.
		var b strings.Builder
		for _, c := range adf.Children(n) {
			b.WriteString(r.renderBlock(c, depth))
		}
		return b.String()
	}
}

func (r *renderer) renderBlockquote(q *adf.Blockquote) string {
	var inner strings.Builder
	for _, c := range q.Content {
		inner.WriteString(r.renderBlock(c, 0))
	}

	lines := strings.Split(strings.TrimRight(inner.String(), " \t\n"), "\n")
	for i, line := range lines {
		lines[i] = "> " + line
	}
	return strings.Join(lines, "\n")
}

func (r *renderer) renderPanel(p *adf.Panel) string {
	label := panelLabel(r.title, p.PanelType)
	body := strings.TrimSpace(r.renderInline(p.Content))
	return "> " + PanelIcon(p.PanelType) + " **" + label + ":** " + body
}

func (r *renderer) renderList(items []*adf.ListItem, ordered bool, depth int) string {
	indent := strings.Repeat(listIndent, depth)
	lines := make([]string, 0, len(items))

	for i, item := range items {
		marker := "-"
		if ordered {
			marker = strconv.Itoa(i+1) + "."
		}

		var text strings.Builder
		var nested []string
		for _, c := range item.Content {
			switch sub := c.(type) {
			case *adf.BulletList:
				nested = append(nested, r.renderList(sub.Items, false, depth+1))
			case *adf.OrderedList:
				nested = append(nested, r.renderList(sub.Items, true, depth+1))
			default:
				text.WriteString(r.renderBlock(c, depth))
			}
		}

		lines = append(lines, indent+marker+" "+strings.TrimSpace(text.String()))
		lines = append(lines, nested...)
	}

	return strings.Join(lines, "\n")
}

func (r *renderer) renderTable(t *adf.Table) string {
	lines := make([]string, 0, len(t.Rows)+1)
	for i, row := range t.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = r.renderCell(cell)
		}
		lines = append(lines, "| "+strings.Join(cells, " | ")+" |")

		if i == 0 {
			sep := make([]string, len(row.Cells))
			for j := range sep {
				sep[j] = "---"
			}
			lines = append(lines, "| "+strings.Join(sep, " | ")+" |")
		}
	}
	return strings.Join(lines, "\n")
}

func (r *renderer) renderCell(cell adf.Node) string {
	text := strings.TrimSpace(r.renderInline(adf.Children(cell)))
	return cellBreaks.ReplaceAllString(text, " ")
}
