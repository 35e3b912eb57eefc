package converter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gubarz/adfmd/internal/adf"
)

func parse(t *testing.T, markdown string) []adf.Node {
	t.Helper()
	doc, _, err := TextToTree(markdown)
	require.NoError(t, err)
	require.Equal(t, adf.Version, doc.Version)
	return doc.Content
}

func TestTextToTree_Empty(t *testing.T) {
	doc, meta, err := TextToTree("")
	require.NoError(t, err)
	assert.Nil(t, meta)
	assert.Equal(t, adf.NewDocument(), doc)

	doc, _, err = TextToTree("\n\n   \n")
	require.NoError(t, err)
	assert.Empty(t, doc.Content)
}

func TestTextToTree_Headings(t *testing.T) {
	nodes := parse(t, "# Heading 1\n\n## Heading 2")
	assert.Equal(t, []adf.Node{
		&adf.Heading{Level: 1, Content: []adf.Node{text("Heading 1")}},
		&adf.Heading{Level: 2, Content: []adf.Node{text("Heading 2")}},
	}, nodes)

	nodes = parse(t, "######## Too deep")
	assert.Equal(t, []adf.Node{&adf.Heading{Level: 6, Content: []adf.Node{text("Too deep")}}}, nodes)
}

func TestTextToTree_CodeBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []adf.Node
	}{
		{
			name:     "with language",
			input:    "```python\nprint(1)\n\nprint(2)\n```",
			expected: []adf.Node{&adf.CodeBlock{Language: "python", Text: "print(1)\n\nprint(2)"}},
		},
		{
			name:     "keeps markdown inside verbatim",
			input:    "```\n# not a heading\n- not a list\n```\nafter",
			expected: []adf.Node{&adf.CodeBlock{Text: "# not a heading\n- not a list"}, para(text("after"))},
		},
		{
			name:     "unterminated fence runs to end",
			input:    "```sh\necho hi",
			expected: []adf.Node{&adf.CodeBlock{Language: "sh", Text: "echo hi"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parse(t, tt.input))
		})
	}
}

func TestTextToTree_Quotes(t *testing.T) {
	t.Run("blockquote recurses", func(t *testing.T) {
		nodes := parse(t, "> # Title\n> \n> - a\n> - b\n\nafter")
		assert.Equal(t, []adf.Node{
			&adf.Blockquote{Content: []adf.Node{
				&adf.Heading{Level: 1, Content: []adf.Node{text("Title")}},
				&adf.BulletList{Items: []*adf.ListItem{item("a"), item("b")}},
			}},
			para(text("after")),
		}, nodes)
	})

	t.Run("nested blockquote", func(t *testing.T) {
		nodes := parse(t, "> > deep")
		assert.Equal(t, []adf.Node{
			&adf.Blockquote{Content: []adf.Node{
				&adf.Blockquote{Content: []adf.Node{para(text("deep"))}},
			}},
		}, nodes)
	})

	t.Run("bare marker continues a quote", func(t *testing.T) {
		nodes := parse(t, "> a\n>\n> b")
		assert.Equal(t, []adf.Node{
			&adf.Blockquote{Content: []adf.Node{para(text("a")), para(text("b"))}},
		}, nodes)
	})

	t.Run("recursion depth is bounded", func(t *testing.T) {
		nodes := parse(t, strings.Repeat("> ", 100)+"x")
		require.Len(t, nodes, 1)

		depth := 0
		var n adf.Node = nodes[0]
		for {
			q, ok := n.(*adf.Blockquote)
			if !ok {
				break
			}
			depth++
			require.Len(t, q.Content, 1)
			n = q.Content[0]
		}
		assert.Equal(t, maxQuoteDepth+1, depth)
		assert.IsType(t, &adf.Paragraph{}, n)
	})
}

func TestTextToTree_Panels(t *testing.T) {
	tests := []struct {
		line      string
		panelType adf.PanelType
	}{
		{line: "> ℹ️ **Info:** text", panelType: adf.PanelInfo},
		{line: "> ⚠️ **Warning:** text", panelType: adf.PanelWarning},
		{line: "> ❌ **Error:** text", panelType: adf.PanelError},
		{line: "> ✅ **Success:** text", panelType: adf.PanelSuccess},
		{line: "> 📝 **Note:** text", panelType: adf.PanelNote},
		{line: "> ⚠ **Warning:** text", panelType: adf.PanelWarning},
	}

	for _, tt := range tests {
		t.Run(string(tt.panelType), func(t *testing.T) {
			nodes := parse(t, tt.line)
			assert.Equal(t, []adf.Node{
				&adf.Panel{PanelType: tt.panelType, Content: []adf.Node{para(text("text"))}},
			}, nodes)
		})
	}

	t.Run("panel consumes one line only", func(t *testing.T) {
		nodes := parse(t, "> ✅ **Success:** done\n> trailing quote")
		require.Len(t, nodes, 2)
		assert.IsType(t, &adf.Panel{}, nodes[0])
		assert.IsType(t, &adf.Blockquote{}, nodes[1])
	})

	t.Run("unrecognised glyph is a plain quote", func(t *testing.T) {
		nodes := parse(t, "> 🔥 **Hot:** text")
		require.Len(t, nodes, 1)
		assert.IsType(t, &adf.Blockquote{}, nodes[0])
	})
}

func TestTextToTree_Lists(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []adf.Node
	}{
		{
			name:     "dash bullets",
			input:    "- one\n- two",
			expected: []adf.Node{&adf.BulletList{Items: []*adf.ListItem{item("one"), item("two")}}},
		},
		{
			name:     "star bullets",
			input:    "* one\n* two",
			expected: []adf.Node{&adf.BulletList{Items: []*adf.ListItem{item("one"), item("two")}}},
		},
		{
			name:     "ordered",
			input:    "1. one\n2. two\n10. ten",
			expected: []adf.Node{&adf.OrderedList{Items: []*adf.ListItem{item("one"), item("two"), item("ten")}}},
		},
		{
			name:     "blank lines inside do not end the list",
			input:    "- one\n\n- two",
			expected: []adf.Node{&adf.BulletList{Items: []*adf.ListItem{item("one"), item("two")}}},
		},
		{
			name:  "pattern switch starts a new list",
			input: "- one\n1. two",
			expected: []adf.Node{
				&adf.BulletList{Items: []*adf.ListItem{item("one")}},
				&adf.OrderedList{Items: []*adf.ListItem{item("two")}},
			},
		},
		{
			name:  "other line ends the list",
			input: "- one\nplain",
			expected: []adf.Node{
				&adf.BulletList{Items: []*adf.ListItem{item("one")}},
				para(text("plain")),
			},
		},
		{
			name:     "indented items flatten into the list",
			input:    "- a\n  - b\n\t- c",
			expected: []adf.Node{&adf.BulletList{Items: []*adf.ListItem{item("a"), item("b"), item("c")}}},
		},
		{
			name:  "indented ordered item under a bullet starts a new list",
			input: "- a\n  1. b",
			expected: []adf.Node{
				&adf.BulletList{Items: []*adf.ListItem{item("a")}},
				&adf.OrderedList{Items: []*adf.ListItem{item("b")}},
			},
		},
		{
			name:  "bare dash is not an item",
			input: "- a\n-",
			expected: []adf.Node{
				&adf.BulletList{Items: []*adf.ListItem{item("a")}},
				para(text("-")),
			},
		},
		{
			name:  "inline marks in items",
			input: "- **bold** item",
			expected: []adf.Node{&adf.BulletList{Items: []*adf.ListItem{
				{Content: []adf.Node{para(text("bold", adf.Strong), text(" item"))}},
			}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parse(t, tt.input))
		})
	}
}

func TestTextToTree_Tables(t *testing.T) {
	nodes := parse(t, "| Header 1 | Header 2 |\n|---|---|\n| Cell 1 | *Cell 2* |\n| | x\nafter")

	header := func(s string) adf.Node {
		return &adf.TableHeader{Content: []adf.Node{para(text(s))}}
	}
	cell := func(inline ...adf.Node) adf.Node {
		return &adf.TableCell{Content: []adf.Node{para(inline...)}}
	}

	assert.Equal(t, []adf.Node{
		&adf.Table{Rows: []*adf.TableRow{
			{Cells: []adf.Node{header("Header 1"), header("Header 2")}},
			{Cells: []adf.Node{cell(text("Cell 1")), cell(text("Cell 2", adf.Em))}},
			{Cells: []adf.Node{cell(), cell(text("x"))}},
		}},
		para(text("after")),
	}, nodes)
}

func TestTextToTree_RuleAndParagraph(t *testing.T) {
	nodes := parse(t, "above\n\n---\n\nbelow")
	assert.Equal(t, []adf.Node{para(text("above")), &adf.Rule{}, para(text("below"))}, nodes)

	nodes = parse(t, "#hashtag\nno special chars")
	assert.Equal(t, []adf.Node{
		&adf.Heading{Level: 1, Content: []adf.Node{text("hashtag")}},
		para(text("no special chars")),
	}, nodes)
}

func TestTextToTree_CRLF(t *testing.T) {
	nodes := parse(t, "# A\r\n\r\nb")
	assert.Equal(t, []adf.Node{
		&adf.Heading{Level: 1, Content: []adf.Node{text("A")}},
		para(text("b")),
	}, nodes)
}

func TestTextToTree_MixedContent(t *testing.T) {
	input := strings.Join([]string{
		"# Title",
		"",
		"Some paragraph",
		"",
		"- item 1",
		"- item 2",
		"",
		"```js",
		"console.log(1)",
		"```",
		"",
		"> ℹ️ **Info:** note",
	}, "\n")

	nodes := parse(t, input)
	require.Len(t, nodes, 5)

	types := make([]adf.NodeType, len(nodes))
	for i, n := range nodes {
		types[i] = n.Type()
	}
	assert.Equal(t, []adf.NodeType{
		adf.TypeHeading, adf.TypeParagraph, adf.TypeBulletList, adf.TypeCodeBlock, adf.TypePanel,
	}, types)
}
