package adf

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotDocument is returned when the top-level JSON object is not a doc.
	ErrNotDocument = errors.New("adf: top-level node is not a doc")
	// ErrInvalidStructure is returned when a container holds a child kind it cannot own.
	ErrInvalidStructure = errors.New("adf: invalid node structure")
)

type wireDoc struct {
	Version int        `json:"version"`
	Type    string     `json:"type"`
	Content []wireNode `json:"content"`
}

type wireNode struct {
	Type    string         `json:"type"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []wireNode     `json:"content,omitempty"`
	Text    string         `json:"text,omitempty"`
	Marks   []wireMark     `json:"marks,omitempty"`
}

type wireMark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// MarshalJSON encodes the document in ADF wire form.
func (d *Document) MarshalJSON() ([]byte, error) {
	version := d.Version
	if version == 0 {
		version = Version
	}
	return json.Marshal(wireDoc{
		Version: version,
		Type:    string(TypeDoc),
		Content: encodeNodes(d.Content),
	})
}

// UnmarshalJSON decodes an ADF document.
func (d *Document) UnmarshalJSON(data []byte) error {
	var w wireDoc
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("adf: decode document: %w", err)
	}
	if w.Type != string(TypeDoc) {
		return fmt.Errorf("%w: got %q", ErrNotDocument, w.Type)
	}
	content, err := decodeNodes(w.Content)
	if err != nil {
		return err
	}
	d.Version = w.Version
	if d.Version == 0 {
		d.Version = Version
	}
	if content == nil {
		content = []Node{}
	}
	d.Content = content
	return nil
}

// MarshalNode encodes a single node.
func MarshalNode(n Node) ([]byte, error) {
	return json.Marshal(encodeNode(n))
}

// UnmarshalNode decodes a single node.
func UnmarshalNode(data []byte) (Node, error) {
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("adf: decode node: %w", err)
	}
	return decodeNode(w)
}

// ============================================================================
// Encoding
// ============================================================================

func encodeNodes(nodes []Node) []wireNode {
	out := make([]wireNode, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		out = append(out, encodeNode(n))
	}
	return out
}

func encodeNode(n Node) wireNode {
	w := wireNode{Type: string(n.Type())}
	switch v := n.(type) {
	case *Heading:
		w.Attrs = map[string]any{"level": v.HeadingLevel()}
		w.Content = encodeNodes(v.Content)
	case *CodeBlock:
		if v.Language != "" {
			w.Attrs = map[string]any{"language": v.Language}
		}
		if v.Text != "" {
			w.Content = []wireNode{{Type: string(TypeText), Text: v.Text}}
		}
	case *Panel:
		w.Attrs = map[string]any{"panelType": string(v.PanelType)}
		w.Content = encodeNodes(v.Content)
	case *Table:
		if v.LocalID != "" {
			w.Attrs = map[string]any{"localId": v.LocalID}
		}
		for _, r := range v.Rows {
			w.Content = append(w.Content, encodeNode(r))
		}
	case *Text:
		w.Text = v.Text
		w.Marks = encodeMarks(v.Marks)
	case *Unknown:
		w.Attrs = v.Attrs
		w.Content = encodeNodes(v.Content)
		w.Text = v.Text
		w.Marks = encodeMarks(v.Marks)
	default:
		w.Content = encodeNodes(Children(n))
	}
	if len(w.Content) == 0 {
		w.Content = nil
	}
	return w
}

func encodeMarks(marks []Mark) []wireMark {
	if len(marks) == 0 {
		return nil
	}
	out := make([]wireMark, len(marks))
	for i, m := range marks {
		out[i] = wireMark{Type: string(m.Type)}
		if m.Type == MarkLink {
			out[i].Attrs = map[string]any{"href": m.Href}
		}
	}
	return out
}

// ============================================================================
// Decoding
// ============================================================================

func decodeNodes(ws []wireNode) ([]Node, error) {
	if len(ws) == 0 {
		return nil, nil
	}
	nodes := make([]Node, 0, len(ws))
	for _, w := range ws {
		n, err := decodeNode(w)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func decodeNode(w wireNode) (Node, error) {
	content, err := decodeNodes(w.Content)
	if err != nil {
		return nil, err
	}

	switch NodeType(w.Type) {
	case TypeParagraph:
		return &Paragraph{Content: content}, nil
	case TypeHeading:
		return &Heading{Level: ClampLevel(intAttr(w.Attrs, "level")), Content: content}, nil
	case TypeCodeBlock:
		var body strings.Builder
		for _, c := range w.Content {
			body.WriteString(c.Text)
		}
		return &CodeBlock{Language: stringAttr(w.Attrs, "language"), Text: body.String()}, nil
	case TypeBlockquote:
		return &Blockquote{Content: content}, nil
	case TypePanel:
		pt := PanelType(stringAttr(w.Attrs, "panelType"))
		if pt == "" {
			pt = PanelInfo
		}
		return &Panel{PanelType: pt, Content: content}, nil
	case TypeBulletList:
		items, err := listItems(w.Type, content)
		if err != nil {
			return nil, err
		}
		return &BulletList{Items: items}, nil
	case TypeOrderedList:
		items, err := listItems(w.Type, content)
		if err != nil {
			return nil, err
		}
		return &OrderedList{Items: items}, nil
	case TypeListItem:
		return &ListItem{Content: content}, nil
	case TypeTable:
		rows := make([]*TableRow, 0, len(content))
		for _, c := range content {
			r, ok := c.(*TableRow)
			if !ok {
				return nil, fmt.Errorf("%w: table holds %q", ErrInvalidStructure, c.Type())
			}
			rows = append(rows, r)
		}
		return &Table{LocalID: stringAttr(w.Attrs, "localId"), Rows: rows}, nil
	case TypeTableRow:
		return &TableRow{Cells: content}, nil
	case TypeTableHeader:
		return &TableHeader{Content: content}, nil
	case TypeTableCell:
		return &TableCell{Content: content}, nil
	case TypeRule:
		return &Rule{}, nil
	case TypeHardBreak:
		return &HardBreak{}, nil
	case TypeText:
		return &Text{Text: w.Text, Marks: decodeMarks(w.Marks)}, nil
	default:
		return &Unknown{
			NodeType: w.Type,
			Attrs:    w.Attrs,
			Content:  content,
			Text:     w.Text,
			Marks:    decodeMarks(w.Marks),
		}, nil
	}
}

func listItems(listType string, content []Node) ([]*ListItem, error) {
	items := make([]*ListItem, 0, len(content))
	for _, c := range content {
		it, ok := c.(*ListItem)
		if !ok {
			return nil, fmt.Errorf("%w: %s holds %q", ErrInvalidStructure, listType, c.Type())
		}
		items = append(items, it)
	}
	return items, nil
}

func decodeMarks(ws []wireMark) []Mark {
	if len(ws) == 0 {
		return nil
	}
	marks := make([]Mark, len(ws))
	for i, w := range ws {
		marks[i] = Mark{Type: MarkType(w.Type)}
		if marks[i].Type == MarkLink {
			marks[i].Href = stringAttr(w.Attrs, "href")
		}
	}
	return marks
}

func stringAttr(attrs map[string]any, key string) string {
	if s, ok := attrs[key].(string); ok {
		return s
	}
	return ""
}

func intAttr(attrs map[string]any, key string) int {
	switch v := attrs[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		i, _ := v.Int64()
		return int(i)
	}
	return 0
}
