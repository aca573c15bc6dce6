// Package view holds the in-memory display tree and the pure functions that
// build fragments of it from API records.
//
// A Node is a loose HTML-like element: tag, class, attributes, text and
// children. Text nodes have an empty Tag. Nodes never carry the record they
// were rendered from; the controller keeps that mapping by Node.ID.
package view

import "github.com/google/uuid"

// Node is one element of the display tree.
type Node struct {
	ID       string
	Tag      string
	Class    string
	Attrs    map[string]string
	Text     string
	Children []*Node
}

// El creates an element with optional children.
func El(tag, class string, children ...*Node) *Node {
	return &Node{Tag: tag, Class: class, Children: children}
}

// TextEl creates an element holding a single text value.
func TextEl(tag, class, text string) *Node {
	return &Node{Tag: tag, Class: class, Text: text}
}

// Text creates a bare text node.
func Text(s string) *Node {
	return &Node{Text: s}
}

// newFragment gives a fragment root its opaque id.
func newFragment(n *Node) *Node {
	n.ID = uuid.NewString()
	return n
}

// SetAttr sets an attribute and returns the node for chaining.
func (n *Node) SetAttr(key, value string) *Node {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[key] = value
	return n
}

// IsText reports whether n is a bare text node.
func (n *Node) IsText() bool {
	return n.Tag == ""
}

// Find returns the first descendant (depth first, n excluded) with the class.
func (n *Node) Find(class string) *Node {
	for _, c := range n.Children {
		if c.Class == class {
			return c
		}
		if found := c.Find(class); found != nil {
			return found
		}
	}
	return nil
}

// TextContent concatenates all text below n, in document order.
func (n *Node) TextContent() string {
	if len(n.Children) == 0 {
		return n.Text
	}
	out := n.Text
	for _, c := range n.Children {
		out += c.TextContent()
	}
	return out
}

// Empty removes every child.
func (n *Node) Empty() {
	n.Children = nil
}

// Append adds children at the end.
func (n *Node) Append(children ...*Node) {
	n.Children = append(n.Children, children...)
}

// Prepend inserts a child before all existing children.
func (n *Node) Prepend(child *Node) {
	n.Children = append([]*Node{child}, n.Children...)
}
