// Package html builds pagemark trees with the conformant parser from
// golang.org/x/net/html and implements the DOM engine on top of them.
package html

import (
	"bytes"
	"io"
	"strings"

	"github.com/fwojciec/pagemark"
	"golang.org/x/net/html"
)

// Ensure Parser implements pagemark.Parser at compile time.
var _ pagemark.Parser = (*Parser)(nil)

// Parser parses HTML into an arena tree and reports the parse errors that
// the conformant parser silently recovers from.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads the whole document from r.
func (p *Parser) Parse(r io.Reader) (*pagemark.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, pagemark.Errorf(pagemark.EINVALID, "failed to read HTML: %v", err)
	}

	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, pagemark.Errorf(pagemark.EINVALID, "failed to parse HTML: %v", err)
	}

	return &pagemark.Document{
		Tree:        convert(root),
		Diagnostics: diagnose(bytes.NewReader(data)),
	}, nil
}

// ParseString parses an in-memory document.
func (p *Parser) ParseString(s string) (*pagemark.Document, error) {
	return p.Parse(strings.NewReader(s))
}

// pending is a parsed node waiting to be copied under parent.
type pending struct {
	src    *html.Node
	parent pagemark.NodeID
}

// convert copies the parsed tree into an arena. Nodes are copied in
// pre-order so every parent receives its children in document order.
func convert(root *html.Node) *pagemark.Tree {
	tree := pagemark.NewTree()

	var stack []pending
	pushChildren := func(n *html.Node, parent pagemark.NodeID) {
		for c := n.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, pending{src: c, parent: parent})
		}
	}
	pushChildren(root, pagemark.RootID)

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node, ok := toNode(cur.src)
		if !ok {
			continue
		}
		id := tree.AddNode(cur.parent, node)
		if node.Kind == pagemark.ElementNode {
			pushChildren(cur.src, id)
		}
	}
	return tree
}

func toNode(n *html.Node) (pagemark.Node, bool) {
	switch n.Type {
	case html.ElementNode:
		node := pagemark.Node{Kind: pagemark.ElementNode, Name: strings.ToLower(n.Data)}
		for _, a := range n.Attr {
			node.Attrs = append(node.Attrs, pagemark.Attribute{Key: a.Key, Val: a.Val})
		}
		return node, true
	case html.TextNode:
		return pagemark.Node{Kind: pagemark.TextNode, Data: n.Data}, true
	case html.CommentNode:
		return pagemark.Node{Kind: pagemark.CommentNode, Data: n.Data}, true
	case html.DoctypeNode:
		return pagemark.Node{Kind: pagemark.DoctypeNode, Data: n.Data}, true
	default:
		return pagemark.Node{}, false
	}
}
