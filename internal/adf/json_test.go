package adf

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_MarshalEmpty(t *testing.T) {
	data, err := json.Marshal(NewDocument())
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"type":"doc","content":[]}`, string(data))
}

func TestDocument_RoundTrip(t *testing.T) {
	doc := NewDocument(
		&Heading{Level: 2, Content: []Node{NewText("Title")}},
		NewParagraph(NewText("Bold", Strong), NewText(" and "), NewText("site", Link("https://example.com"))),
		&CodeBlock{Language: "go", Text: "fmt.Println(1)\n"},
		&Panel{PanelType: PanelWarning, Content: []Node{NewParagraph(NewText("careful"))}},
		&BulletList{Items: []*ListItem{{Content: []Node{NewParagraph(NewText("one"))}}}},
		&Table{LocalID: "abc", Rows: []*TableRow{
			{Cells: []Node{&TableHeader{Content: []Node{NewParagraph(NewText("H"))}}}},
			{Cells: []Node{&TableCell{Content: []Node{NewParagraph(NewText("C"))}}}},
		}},
		&Rule{},
	)

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded Document
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, doc, &decoded)
}

func TestDocument_UnmarshalWire(t *testing.T) {
	input := `{
		"version": 1,
		"type": "doc",
		"content": [
			{"type": "heading", "attrs": {"level": 9}, "content": [{"type": "text", "text": "Big"}]},
			{"type": "codeBlock", "content": [{"type": "text", "text": "x := 1"}]},
			{"type": "mention", "attrs": {"id": "42"}, "text": "@someone"},
			{"type": "paragraph", "content": [
				{"type": "text", "text": "a"},
				{"type": "hardBreak"},
				{"type": "text", "text": "b", "marks": [{"type": "underline"}]}
			]}
		]
	}`

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(input), &doc))
	require.Len(t, doc.Content, 4)

	heading, ok := doc.Content[0].(*Heading)
	require.True(t, ok)
	assert.Equal(t, 6, heading.Level)

	code, ok := doc.Content[1].(*CodeBlock)
	require.True(t, ok)
	assert.Equal(t, "", code.Language)
	assert.Equal(t, "x := 1", code.Text)

	unknown, ok := doc.Content[2].(*Unknown)
	require.True(t, ok)
	assert.Equal(t, NodeType("mention"), unknown.Type())
	assert.Equal(t, "42", unknown.Attrs["id"])

	para := doc.Content[3].(*Paragraph)
	require.Len(t, para.Content, 3)
	assert.IsType(t, &HardBreak{}, para.Content[1])
	assert.Equal(t, []Mark{{Type: "underline"}}, para.Content[2].(*Text).Marks)
}

func TestDocument_UnmarshalErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		target error
	}{
		{
			name:   "not a doc",
			input:  `{"version":1,"type":"paragraph","content":[]}`,
			target: ErrNotDocument,
		},
		{
			name:   "list holding a paragraph",
			input:  `{"version":1,"type":"doc","content":[{"type":"bulletList","content":[{"type":"paragraph"}]}]}`,
			target: ErrInvalidStructure,
		},
		{
			name:   "table holding a cell directly",
			input:  `{"version":1,"type":"doc","content":[{"type":"table","content":[{"type":"tableCell"}]}]}`,
			target: ErrInvalidStructure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc Document
			err := json.Unmarshal([]byte(tt.input), &doc)
			assert.ErrorIs(t, err, tt.target)
		})
	}

	t.Run("malformed json", func(t *testing.T) {
		var doc Document
		assert.Error(t, doc.UnmarshalJSON([]byte(`{"type":`)))
	})
}

func TestMarshalNode(t *testing.T) {
	data, err := MarshalNode(NewText("x", Link("https://a.b"), Strong))
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"type":"text","text":"x","marks":[{"type":"link","attrs":{"href":"https://a.b"}},{"type":"strong"}]}`,
		string(data))

	n, err := UnmarshalNode(data)
	require.NoError(t, err)
	assert.Equal(t, NewText("x", Link("https://a.b"), Strong), n)
}
