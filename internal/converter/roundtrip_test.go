package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gubarz/adfmd/internal/adf"
)

func TestRoundTrip_TreeTextTree(t *testing.T) {
	headings := make([]adf.Node, 0, 6)
	for level := 1; level <= 6; level++ {
		headings = append(headings, &adf.Heading{Level: level, Content: []adf.Node{text("Level")}})
	}

	panels := make([]adf.Node, 0, len(adf.PanelTypes))
	for _, pt := range adf.PanelTypes {
		panels = append(panels, &adf.Panel{PanelType: pt, Content: []adf.Node{para(text("body"))}})
	}

	tests := []struct {
		name  string
		nodes []adf.Node
	}{
		{name: "paragraphs", nodes: []adf.Node{para(text("first")), para(text("second"))}},
		{name: "headings", nodes: headings},
		{
			name: "single mark runs",
			nodes: []adf.Node{para(
				text("a "), text("b", adf.Strong),
				text(" c "), text("d", adf.Em),
				text(" e "), text("f", adf.Code),
				text(" "), text("g", adf.Link("https://x.io/p")),
				text(" "), text("h", adf.Strike),
			)},
		},
		{name: "code block with language", nodes: []adf.Node{&adf.CodeBlock{Language: "go", Text: "func main() {\n\tprintln(1)\n}"}}},
		{name: "code block without language", nodes: []adf.Node{&adf.CodeBlock{Text: "plain"}}},
		{name: "bullet list", nodes: []adf.Node{&adf.BulletList{Items: []*adf.ListItem{item("a"), item("b")}}}},
		{name: "ordered list", nodes: []adf.Node{&adf.OrderedList{Items: []*adf.ListItem{item("a"), item("b"), item("c")}}}},
		{
			name: "table",
			nodes: []adf.Node{&adf.Table{Rows: []*adf.TableRow{
				{Cells: []adf.Node{
					&adf.TableHeader{Content: []adf.Node{para(text("Header 1"))}},
					&adf.TableHeader{Content: []adf.Node{para(text("Header 2"))}},
				}},
				{Cells: []adf.Node{
					&adf.TableCell{Content: []adf.Node{para(text("Cell 1"))}},
					&adf.TableCell{Content: []adf.Node{para(text("Cell 2", adf.Strong))}},
				}},
			}}},
		},
		{name: "panels", nodes: interleave(panels)},
		{name: "rule", nodes: []adf.Node{para(text("above")), &adf.Rule{}, para(text("below"))}},
		{name: "leading rule", nodes: []adf.Node{&adf.Rule{}, para(text("below"))}},
		{
			name: "blockquote",
			nodes: []adf.Node{
				&adf.Blockquote{Content: []adf.Node{para(text("one")), para(text("two", adf.Em))}},
				para(text("after")),
			},
		},
		{
			name: "panel inside blockquote",
			nodes: []adf.Node{&adf.Blockquote{Content: []adf.Node{
				&adf.Panel{PanelType: adf.PanelNote, Content: []adf.Node{para(text("n"))}},
			}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := adf.NewDocument(tt.nodes...)

			md, err := TreeToText(doc, nil)
			require.NoError(t, err)

			back, meta, err := TextToTree(md)
			require.NoError(t, err)
			assert.Nil(t, meta)
			assert.Equal(t, doc, back, "markdown was:\n%s", md)
		})
	}
}

// interleave separates nodes with paragraphs so adjacent one-line blocks stay apart.
func interleave(nodes []adf.Node) []adf.Node {
	out := make([]adf.Node, 0, len(nodes)*2)
	for i, n := range nodes {
		if i > 0 {
			out = append(out, para(text("between")))
		}
		out = append(out, n)
	}
	return out
}

func TestRoundTrip_TextTreeText(t *testing.T) {
	inputs := []string{
		"# Heading 1\n\n## Heading 2",
		"| Header 1 | Header 2 |\n| --- | --- |\n| Cell 1 | Cell 2 |",
		"> ℹ️ **Info:** text",
		"- a\n- b\n1. one\n2. two",
		"```\ncode\n```\n\n---\n\nend",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			doc, _, err := TextToTree(input)
			require.NoError(t, err)

			out, err := TreeToText(doc, nil)
			require.NoError(t, err)
			assert.Equal(t, input, out)
		})
	}
}

func TestRoundTrip_Metadata(t *testing.T) {
	meta := Metadata{"pageId": "123", "title": "Test Page", "spaceKey": "TEST"}
	doc := adf.NewDocument(&adf.Heading{Level: 1, Content: []adf.Node{text("Page")}}, para(text("Body")))

	md, err := TreeToText(doc, meta)
	require.NoError(t, err)
	assert.Contains(t, md, `pageId: "123"`)
	assert.Contains(t, md, "title: Test Page")

	back, backMeta, err := TextToTree(md)
	require.NoError(t, err)
	assert.Equal(t, meta, backMeta)
	assert.Equal(t, doc, back)
	assert.Equal(t, "123", backMeta.String("pageId"))
}

func TestRoundTrip_MetadataWithEmptyBody(t *testing.T) {
	meta := Metadata{"pageId": "42"}

	md, err := TreeToText(adf.NewDocument(), meta)
	require.NoError(t, err)
	assert.Equal(t, "---\npageId: \"42\"\n---", md)

	back, backMeta, err := TextToTree(md)
	require.NoError(t, err)
	assert.Equal(t, meta, backMeta)
	assert.Empty(t, back.Content)
}
