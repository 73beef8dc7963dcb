package pagemark

import "strings"

// NodeKind identifies what a Node holds.
type NodeKind int

// Node kinds.
const (
	DocumentNode NodeKind = iota
	ElementNode
	TextNode
	CommentNode
	DoctypeNode
)

// NodeID addresses a node inside its Tree.
type NodeID int

// RootID is the ID of the document node every Tree starts with.
const RootID NodeID = 0

// Attribute is a parsed element attribute.
type Attribute struct {
	Key string
	Val string
}

// Node is one entry of a Tree. Children are stored as IDs in document order.
type Node struct {
	Kind NodeKind

	// Name is the lower-case element name for ElementNode.
	Name string

	// Data is the raw text for TextNode and CommentNode.
	Data string

	Attrs    []Attribute
	Children []NodeID
}

// Tree is a DOM-shaped document stored as an arena of nodes addressed by
// index. It has no parent pointers and no ownership cycles.
type Tree struct {
	nodes []Node
}

// NewTree returns a Tree holding only the document node.
func NewTree() *Tree {
	return &Tree{nodes: []Node{{Kind: DocumentNode}}}
}

// AddNode appends n as the last child of parent and returns its ID.
// Children already set on n are discarded.
func (t *Tree) AddNode(parent NodeID, n Node) NodeID {
	n.Children = nil
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, n)
	t.nodes[parent].Children = append(t.nodes[parent].Children, id)
	return id
}

// Node returns the node with the given ID.
func (t *Tree) Node(id NodeID) *Node {
	return &t.nodes[id]
}

// Len returns the number of nodes, including the document node.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Attr returns the value of the attribute named key on node id.
func (t *Tree) Attr(id NodeID, key string) (string, bool) {
	for _, a := range t.nodes[id].Attrs {
		if strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

// Find returns the first element named name in pre-order, or false.
func (t *Tree) Find(name string) (NodeID, bool) {
	stack := []NodeID{RootID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[id]
		if n.Kind == ElementNode && n.Name == name {
			return id, true
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	return 0, false
}

// Text returns the concatenated text of every text node below id.
func (t *Tree) Text(id NodeID) string {
	var b strings.Builder
	stack := []NodeID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[cur]
		if n.Kind == TextNode {
			b.WriteString(n.Data)
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	return b.String()
}
