// Package adf models the Atlassian Document Format node tree.
//
// Nodes form a closed set: every kind the converter understands has its own
// struct, and anything else decoded from the wire is kept as *Unknown so it
// can still be walked and rendered as a plain container.
package adf

// NodeType is the ADF "type" string of a node.
type NodeType string

const (
	TypeDoc         NodeType = "doc"
	TypeParagraph   NodeType = "paragraph"
	TypeHeading     NodeType = "heading"
	TypeCodeBlock   NodeType = "codeBlock"
	TypeBlockquote  NodeType = "blockquote"
	TypePanel       NodeType = "panel"
	TypeBulletList  NodeType = "bulletList"
	TypeOrderedList NodeType = "orderedList"
	TypeListItem    NodeType = "listItem"
	TypeTable       NodeType = "table"
	TypeTableRow    NodeType = "tableRow"
	TypeTableHeader NodeType = "tableHeader"
	TypeTableCell   NodeType = "tableCell"
	TypeRule        NodeType = "rule"
	TypeText        NodeType = "text"
	TypeHardBreak   NodeType = "hardBreak"
)

// Version is the only document version this package produces.
const Version = 1

// MarkType is the ADF type string of an inline mark.
type MarkType string

const (
	MarkStrong MarkType = "strong"
	MarkEm     MarkType = "em"
	MarkCode   MarkType = "code"
	MarkStrike MarkType = "strike"
	MarkLink   MarkType = "link"
)

// Mark is an inline formatting annotation. Href is only used by links.
type Mark struct {
	Type MarkType
	Href string
}

// Strong, Em, Code and Strike are the payload-free marks.
var (
	Strong = Mark{Type: MarkStrong}
	Em     = Mark{Type: MarkEm}
	Code   = Mark{Type: MarkCode}
	Strike = Mark{Type: MarkStrike}
)

// Link returns a link mark pointing at href.
func Link(href string) Mark {
	return Mark{Type: MarkLink, Href: href}
}

// PanelType is the semantic flavour of a panel.
type PanelType string

const (
	PanelInfo    PanelType = "info"
	PanelWarning PanelType = "warning"
	PanelError   PanelType = "error"
	PanelSuccess PanelType = "success"
	PanelNote    PanelType = "note"
)

// PanelTypes lists the supported panel types in display order.
var PanelTypes = []PanelType{PanelInfo, PanelWarning, PanelError, PanelSuccess, PanelNote}

// Document is the root of an ADF tree.
type Document struct {
	Version int
	Content []Node
}

// NewDocument returns a version 1 document owning the given nodes.
func NewDocument(nodes ...Node) *Document {
	if nodes == nil {
		nodes = []Node{}
	}
	return &Document{Version: Version, Content: nodes}
}

// Node is implemented by every node kind in this package and nothing else.
type Node interface {
	Type() NodeType
	node()
}

type (
	Paragraph struct {
		Content []Node
	}

	Heading struct {
		Level   int
		Content []Node
	}

	// CodeBlock holds the full body as one string. Empty Language means none.
	CodeBlock struct {
		Language string
		Text     string
	}

	Blockquote struct {
		Content []Node
	}

	Panel struct {
		PanelType PanelType
		Content   []Node
	}

	BulletList struct {
		Items []*ListItem
	}

	OrderedList struct {
		Items []*ListItem
	}

	ListItem struct {
		Content []Node
	}

	// Table rows are rendered with the first row as headers.
	Table struct {
		LocalID string
		Rows    []*TableRow
	}

	// TableRow cells are *TableHeader or *TableCell.
	TableRow struct {
		Cells []Node
	}

	TableHeader struct {
		Content []Node
	}

	TableCell struct {
		Content []Node
	}

	Rule struct{}

	HardBreak struct{}

	Text struct {
		Text  string
		Marks []Mark
	}

	// Unknown keeps a node whose type is outside the supported vocabulary.
	Unknown struct {
		NodeType string
		Attrs    map[string]any
		Content  []Node
		Text     string
		Marks    []Mark
	}
)

func (*Paragraph) Type() NodeType   { return TypeParagraph }
func (*Heading) Type() NodeType     { return TypeHeading }
func (*CodeBlock) Type() NodeType   { return TypeCodeBlock }
func (*Blockquote) Type() NodeType  { return TypeBlockquote }
func (*Panel) Type() NodeType       { return TypePanel }
func (*BulletList) Type() NodeType  { return TypeBulletList }
func (*OrderedList) Type() NodeType { return TypeOrderedList }
func (*ListItem) Type() NodeType    { return TypeListItem }
func (*Table) Type() NodeType       { return TypeTable }
func (*TableRow) Type() NodeType    { return TypeTableRow }
func (*TableHeader) Type() NodeType { return TypeTableHeader }
func (*TableCell) Type() NodeType   { return TypeTableCell }
func (*Rule) Type() NodeType        { return TypeRule }
func (*HardBreak) Type() NodeType   { return TypeHardBreak }
func (*Text) Type() NodeType        { return TypeText }
func (u *Unknown) Type() NodeType   { return NodeType(u.NodeType) }

func (*Paragraph) node()   {}
func (*Heading) node()     {}
func (*CodeBlock) node()   {}
func (*Blockquote) node()  {}
func (*Panel) node()       {}
func (*BulletList) node()  {}
func (*OrderedList) node() {}
func (*ListItem) node()    {}
func (*Table) node()       {}
func (*TableRow) node()    {}
func (*TableHeader) node() {}
func (*TableCell) node()   {}
func (*Rule) node()        {}
func (*HardBreak) node()   {}
func (*Text) node()        {}
func (*Unknown) node()     {}

// HeadingLevel returns the level clamped to 1..6. Zero reads as 1.
func (h *Heading) HeadingLevel() int {
	return ClampLevel(h.Level)
}

// ClampLevel maps any integer onto a valid heading level.
func ClampLevel(level int) int {
	switch {
	case level < 1:
		return 1
	case level > 6:
		return 6
	default:
		return level
	}
}

// NewText builds a text node. A nil marks slice stays nil.
func NewText(text string, marks ...Mark) *Text {
	if len(marks) == 0 {
		return &Text{Text: text}
	}
	return &Text{Text: text, Marks: marks}
}

// NewParagraph wraps inline nodes in a paragraph.
func NewParagraph(inline ...Node) *Paragraph {
	return &Paragraph{Content: inline}
}
