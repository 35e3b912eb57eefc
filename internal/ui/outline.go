package ui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gubarz/adfmd/internal/adf"
)

// maxOutlineText is the number of runes of text shown per outline line.
const maxOutlineText = 40

// maxPooledBuilder caps the capacity of builders returned to frames.
const maxPooledBuilder = 64 << 10

// frames holds builders shared by Outline and viewerModel.View, which
// both rebuild a full pane on every redraw.
var frames = sync.Pool{New: func() any { return new(strings.Builder) }}

func getBuilder() *strings.Builder {
	b := frames.Get().(*strings.Builder)
	b.Reset()
	return b
}

func putBuilder(b *strings.Builder) {
	if b.Cap() <= maxPooledBuilder {
		frames.Put(b)
	}
}

// Outline lists every node of doc, one per line, indented by depth.
func Outline(doc *adf.Document) string {
	if doc == nil {
		return ""
	}

	b := getBuilder()
	defer putBuilder(b)

	fmt.Fprintf(b, "doc v%d (%d nodes)\n", doc.Version, len(doc.Content))
	adf.WalkDocument(doc, func(n adf.Node, depth int) bool {
		b.WriteString(strings.Repeat("  ", depth+1))
		b.WriteString(describe(n))
		b.WriteByte('\n')
		return true
	})

	return strings.TrimRight(b.String(), "\n")
}

// describe summarises a single node without its children.
func describe(n adf.Node) string {
	switch v := n.(type) {
	case *adf.Heading:
		return fmt.Sprintf("heading h%d", v.HeadingLevel())
	case *adf.CodeBlock:
		lang := v.Language
		if lang == "" {
			lang = "plain"
		}
		return fmt.Sprintf("codeBlock %s (%d lines)", lang, strings.Count(v.Text, "\n")+1)
	case *adf.Panel:
		return "panel " + string(v.PanelType)
	case *adf.BulletList:
		return fmt.Sprintf("bulletList (%d items)", len(v.Items))
	case *adf.OrderedList:
		return fmt.Sprintf("orderedList (%d items)", len(v.Items))
	case *adf.Table:
		s := fmt.Sprintf("table (%d rows)", len(v.Rows))
		if v.LocalID != "" {
			s += " #" + v.LocalID
		}
		return s
	case *adf.Text:
		return "text " + quote(v.Text) + marks(v.Marks)
	case *adf.Unknown:
		s := v.NodeType + " (unsupported)"
		if v.Text != "" {
			s += " " + quote(v.Text)
		}
		return s
	}
	return string(n.Type())
}

func quote(s string) string {
	r := []rune(s)
	if len(r) > maxOutlineText {
		s = string(r[:maxOutlineText-1]) + "…"
	}
	return fmt.Sprintf("%q", s)
}

func marks(ms []adf.Mark) string {
	if len(ms) == 0 {
		return ""
	}
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = string(m.Type)
		if m.Type == adf.MarkLink {
			names[i] += "=" + m.Href
		}
	}
	return " [" + strings.Join(names, ",") + "]"
}
