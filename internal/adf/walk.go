package adf

// Children returns the ordered children of n. Leaves return nil.
func Children(n Node) []Node {
	switch v := n.(type) {
	case *Paragraph:
		return v.Content
	case *Heading:
		return v.Content
	case *Blockquote:
		return v.Content
	case *Panel:
		return v.Content
	case *BulletList:
		return itemNodes(v.Items)
	case *OrderedList:
		return itemNodes(v.Items)
	case *ListItem:
		return v.Content
	case *Table:
		nodes := make([]Node, len(v.Rows))
		for i, r := range v.Rows {
			nodes[i] = r
		}
		return nodes
	case *TableRow:
		return v.Cells
	case *TableHeader:
		return v.Content
	case *TableCell:
		return v.Content
	case *Unknown:
		return v.Content
	}
	return nil
}

func itemNodes(items []*ListItem) []Node {
	nodes := make([]Node, len(items))
	for i, it := range items {
		nodes[i] = it
	}
	return nodes
}

// Walk visits n and its descendants depth-first in document order.
// Returning false from fn skips the node's children.
func Walk(n Node, fn func(n Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n Node, depth int, fn func(Node, int) bool) {
	if n == nil || !fn(n, depth) {
		return
	}
	for _, c := range Children(n) {
		walk(c, depth+1, fn)
	}
}

// WalkDocument walks every top-level node of doc.
func WalkDocument(doc *Document, fn func(n Node, depth int) bool) {
	if doc == nil {
		return
	}
	for _, n := range doc.Content {
		walk(n, 0, fn)
	}
}

// AssignLocalIDs sets a localId on every table that lacks one.
func AssignLocalIDs(doc *Document, newID func() string) int {
	assigned := 0
	WalkDocument(doc, func(n Node, _ int) bool {
		if t, ok := n.(*Table); ok && t.LocalID == "" {
			t.LocalID = newID()
			assigned++
		}
		return true
	})
	return assigned
}
