package form

// Node is one node of a FormTree: either a Field leaf or a container
// with ordered children. Child order matters only for display; the
// one behavioral exception is that when two fields share a path, the
// later one in pre-order wins during Collect.
type Node struct {
	Field    *Field
	Label    string
	Children []*Node
}

// NewContainer builds a container node.
func NewContainer(label string, children ...*Node) *Node {
	return &Node{Label: label, Children: children}
}

// NewFieldNode wraps a field as a leaf node.
func NewFieldNode(f *Field) *Node {
	return &Node{Field: f}
}

// Add appends a child node and returns it.
func (n *Node) Add(child *Node) *Node {
	n.Children = append(n.Children, child)
	return child
}

// Walk visits every field in pre-order depth-first traversal.
func (n *Node) Walk(fn func(*Field)) {
	if n == nil {
		return
	}
	if n.Field != nil {
		fn(n.Field)
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Fields returns the tree's fields in traversal order.
func (n *Node) Fields() []*Field {
	var out []*Field
	n.Walk(func(f *Field) { out = append(out, f) })
	return out
}
