// Package tnode implements the tree shared by every stage of the kaj
// compiler: the tokenizer builds it, directives rewrite it, the inline scanner
// fills in paragraph contents and the renderer walks it.
//
// A Node owns its children and keeps a back-reference to its parent. All
// mutating methods keep both sides in sync, and refuse to make a node its own
// ancestor.
package tnode

import (
	"fmt"
	"strings"
)

// Node is a node of the tree. Block nodes, inline nodes, generic elements and
// text leaves share this one shape; Kind tells them apart and decides which
// of the fields are meaningful.
type Node struct {
	Kind Kind
	// Tag is the element name of an Element node.
	Tag string

	// Text is the text payload: a paragraph's source text before inline
	// scanning, a code block's body, a directive's body, a span's content.
	Text string
	// ID is a structural identifier assigned by extensions, such as the
	// section number. It is only rendered for sections without Attrs.ID.
	ID string
	// Attrs are rendered onto the node's markup.
	Attrs Attrs

	// Size is the level of a section or heading.
	Size int
	// Mark is the bullet of a bullet item, or the label of an ordered item.
	Mark string
	// Complex is set on a list whose items need paragraph markup.
	Complex bool
	// Lang and Info are the language tag and class text of a code block.
	Lang string
	Info string
	// Link is the target of a link or heading.
	Link string
	// Name is the name of a directive, role, note, anchor or pipe.
	Name string

	// Args, Opts and Oneliner describe a directive invocation.
	Args     string
	Opts     Options
	Oneliner bool
	// ImplicitComment marks a directive written as ".. text".
	ImplicitComment bool
	// Row is the line index of a directive header, BodyRow the line index
	// right after its option block, and Indent the column of its marker.
	Row     int
	BodyRow int
	Indent  int

	// Span makes an Element render inline; Closed makes it a void element.
	Span   bool
	Closed bool

	// Data holds extension-specific state.
	Data map[string]any

	// Children is nil for a leaf that has not been given children yet, and
	// non-nil (possibly empty) otherwise.
	Children []*Node
	parent   *Node
}

// New creates a leaf node of the given kind.
func New(kind Kind) *Node { return &Node{Kind: kind} }

// NewContainer creates a node of the given kind with a non-nil child list.
func NewContainer(kind Kind, children ...*Node) *Node {
	n := &Node{Kind: kind, Children: []*Node{}}
	n.AddChildren(children)
	return n
}

// NewText creates a leaf node of the given kind with a text payload.
func NewText(kind Kind, text string) *Node { return &Node{Kind: kind, Text: text} }

// NewElement creates a generic element. The element has a non-nil child list
// when children are given.
func NewElement(tag string, children ...*Node) *Node {
	n := &Node{Kind: Element, Tag: tag}
	if len(children) > 0 {
		n.Children = []*Node{}
		n.AddChildren(children)
	}
	return n
}

// Parent returns the parent node, or nil for a detached node.
func (n *Node) Parent() *Node { return n.parent }

// IsLeaf reports whether the child list is absent.
func (n *Node) IsLeaf() bool { return n.Children == nil }

// AddChild appends c. If c already has a parent it is moved.
func (n *Node) AddChild(c *Node) {
	n.adopt(c)
	n.Children = append(n.Children, c)
	c.parent = n
}

// AddChildren appends all the given nodes.
func (n *Node) AddChildren(cs []*Node) {
	for _, c := range cs {
		n.AddChild(c)
	}
}

// InsertAt inserts nodes before the child at index i. The index is clamped
// to the child list and is applied after the nodes are detached from their
// previous parents.
func (n *Node) InsertAt(i int, cs ...*Node) {
	for _, c := range cs {
		n.adopt(c)
	}
	if n.Children == nil {
		n.Children = []*Node{}
	}
	if i < 0 {
		i = 0
	} else if i > len(n.Children) {
		i = len(n.Children)
	}
	n.Children = splice(n.Children, i, 0, cs)
	for _, c := range cs {
		c.parent = n
	}
}

// Replace replaces the child old with the given nodes, which may be none. It
// does nothing if old is not a child of n.
func (n *Node) Replace(old *Node, cs ...*Node) {
	if old.parent != n {
		return
	}
	for _, c := range cs {
		if c != old {
			n.adopt(c)
		}
	}
	i := n.indexOf(old)
	old.parent = nil
	n.Children = splice(n.Children, i, 1, cs)
	for _, c := range cs {
		c.parent = n
	}
}

// Remove removes the child c. It does nothing if c is not a child of n.
func (n *Node) Remove(c *Node) {
	if c.parent != n {
		return
	}
	i := n.indexOf(c)
	n.Children = splice(n.Children, i, 1, nil)
	c.parent = nil
}

// Detach removes n from its parent, if any.
func (n *Node) Detach() {
	if n.parent != nil {
		n.parent.Remove(n)
	}
}

// ReplaceSelf replaces n in its parent with the given nodes.
func (n *Node) ReplaceSelf(cs ...*Node) {
	if n.parent != nil {
		n.parent.Replace(n, cs...)
	}
}

// NthChild returns the n-th child, counting from 1, or nil if there is no
// such child.
func (n *Node) NthChild(i int) *Node {
	if i < 1 || i > len(n.Children) {
		return nil
	}
	return n.Children[i-1]
}

// TextField selects the Text field, for use with CollectText.
func TextField(n *Node) string { return n.Text }

// CollectText joins a field of all children with delim and trims trailing
// blank lines from the result.
func (n *Node) CollectText(field func(*Node) string, delim string) string {
	parts := make([]string, len(n.Children))
	for i, c := range n.Children {
		parts[i] = field(c)
	}
	return trimTrailingBlankLines(strings.Join(parts, delim))
}

func (n *Node) indexOf(c *Node) int {
	for i, child := range n.Children {
		if child == c {
			return i
		}
	}
	panic("tnode: child missing from its parent's child list")
}

// Detaches c from its current parent after checking that adding it to n
// keeps the tree acyclic.
func (n *Node) adopt(c *Node) {
	if c == nil {
		panic("tnode: nil child")
	}
	for p := n; p != nil; p = p.parent {
		if p == c {
			panic(fmt.Sprintf("tnode: %v node cannot become its own descendant", c.Kind))
		}
	}
	c.Detach()
}

func splice(s []*Node, i, del int, ins []*Node) []*Node {
	out := make([]*Node, 0, len(s)-del+len(ins))
	out = append(out, s[:i]...)
	out = append(out, ins...)
	return append(out, s[i+del:]...)
}

func trimTrailingBlankLines(s string) string {
	for {
		i := strings.LastIndexByte(s, '\n')
		if i < 0 || strings.Trim(s[i+1:], " ") != "" {
			return s
		}
		s = s[:i]
	}
}
