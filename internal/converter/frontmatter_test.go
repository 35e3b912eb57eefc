package converter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gubarz/adfmd/internal/adf"
)

func TestSplitFrontMatter(t *testing.T) {
	tests := []struct {
		name  string
		input string
		block string
		body  string
		found bool
	}{
		{name: "no front-matter", input: "# Title", body: "# Title"},
		{name: "block and body", input: "---\na: 1\n---\n\nbody\n", block: "a: 1", body: "body", found: true},
		{name: "empty block", input: "---\n---\nbody", block: "", body: "body", found: true},
		{name: "closing fence at end of input", input: "---\na: 1\n---", block: "a: 1", found: true},
		{name: "unclosed", input: "---\na: 1\nbody", body: "---\na: 1\nbody"},
		{name: "fence must be its own line", input: "---\na: 1\n----\nbody", body: "---\na: 1\n----\nbody"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block, body, found := splitFrontMatter(tt.input)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.block, block)
			assert.Equal(t, tt.body, body)
		})
	}
}

func TestDecodeFrontMatter(t *testing.T) {
	meta, err := decodeFrontMatter("pageId: \"123\"\nversion: 7\ndraft: true\ntitle: Hello")
	require.NoError(t, err)
	assert.Equal(t, Metadata{"pageId": "123", "version": 7, "draft": true, "title": "Hello"}, meta)

	meta, err = decodeFrontMatter("  \n")
	require.NoError(t, err)
	assert.NotNil(t, meta)
	assert.Empty(t, meta)
}

func TestDecodeFrontMatter_NestedValues(t *testing.T) {
	meta, err := decodeFrontMatter("labels:\n  - a\n  - b\nowner:\n  name: kim\n  id: 4")
	require.NoError(t, err)
	assert.Equal(t, Metadata{
		"labels": []any{"a", "b"},
		"owner":  map[string]any{"name": "kim", "id": 4},
	}, meta)

	out, err := json.Marshal(Envelope{Body: adf.NewDocument(), Metadata: meta})
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"body":{"version":1,"type":"doc","content":[]},"metadata":{"labels":["a","b"],"owner":{"id":4,"name":"kim"}}}`,
		string(out))
}

func TestTextToTree_FrontMatterErrors(t *testing.T) {
	_, _, err := TextToTree("---\ntitle: [unclosed\n---\nbody")
	assert.ErrorIs(t, err, ErrFrontMatter)

	_, _, err = TextToTree("---\njust a scalar\n---\nbody")
	assert.ErrorIs(t, err, ErrFrontMatter)
}

func TestTextToTree_UnclosedFrontMatterIsContent(t *testing.T) {
	doc, meta, err := TextToTree("---\ntitle: x\nbody")
	require.NoError(t, err)
	assert.Nil(t, meta)
	require.Len(t, doc.Content, 3)
	assert.Equal(t, &adf.Rule{}, doc.Content[0])
}

func TestEncodeFrontMatter(t *testing.T) {
	out, err := encodeFrontMatter(Metadata{"b": "2024", "a": "plain", "n": 3})
	require.NoError(t, err)
	assert.Equal(t, "---\na: plain\nb: \"2024\"\nn: 3\n---\n\n", out)

	out, err = encodeFrontMatter(Metadata{})
	require.NoError(t, err)
	assert.Equal(t, "---\n---\n\n", out)
}

func TestMetadata_String(t *testing.T) {
	meta := Metadata{"id": "9", "count": 4, "nil": nil}
	assert.Equal(t, "9", meta.String("id"))
	assert.Equal(t, "4", meta.String("count"))
	assert.Equal(t, "", meta.String("nil"))
	assert.Equal(t, "", meta.String("missing"))
}

func TestTextToTree_LeadingRuleWithLaterRule(t *testing.T) {
	doc := adf.NewDocument(&adf.Rule{}, para(text("x")), &adf.Rule{}, para(text("y")))

	md, err := TreeToText(doc, nil)
	require.NoError(t, err)
	assert.Equal(t, "---\n\nx\n\n---\n\ny", md)

	// The leading rule opens a front-matter block that the second rule closes.
	_, _, err = TextToTree(md)
	assert.ErrorIs(t, err, ErrFrontMatter)
}
