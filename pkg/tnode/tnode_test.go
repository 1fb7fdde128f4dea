package tnode_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	. "src.kaj.sh/pkg/tnode"
)

func names(n *Node) []string {
	var s []string
	for _, c := range n.Children {
		s = append(s, c.Text)
	}
	return s
}

func leaves(texts ...string) []*Node {
	var ns []*Node
	for _, text := range texts {
		ns = append(ns, NewText(Text, text))
	}
	return ns
}

func checkParents(t *testing.T, n *Node) {
	t.Helper()
	for _, c := range n.Children {
		if c.Parent() != n {
			t.Errorf("child %q of %v has parent %v", c.Text, n.Kind, c.Parent())
		}
		checkParents(t, c)
	}
}

func TestNewContainer_EmptyIsNotLeaf(t *testing.T) {
	if !New(Paragraph).IsLeaf() {
		t.Errorf("New returned a node with a child list")
	}
	n := NewContainer(Fragment)
	if n.IsLeaf() || len(n.Children) != 0 {
		t.Errorf("NewContainer() = %v, want empty non-nil child list", n.Children)
	}
}

func TestAddChild(t *testing.T) {
	n := New(Paragraph)
	n.AddChildren(leaves("a", "b"))
	if diff := cmp.Diff([]string{"a", "b"}, names(n)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	checkParents(t, n)
}

func TestAddChild_MovesFromOldParent(t *testing.T) {
	a := NewContainer(Fragment, leaves("x", "y")...)
	b := NewContainer(Fragment)
	x := a.Children[0]
	b.AddChild(x)
	if diff := cmp.Diff([]string{"y"}, names(a)); diff != "" {
		t.Errorf("old parent (-want +got):\n%s", diff)
	}
	if x.Parent() != b {
		t.Errorf("moved node has wrong parent")
	}
}

func TestAddChild_RejectsCycles(t *testing.T) {
	outer := NewContainer(Fragment)
	inner := NewContainer(Fragment)
	outer.AddChild(inner)
	for _, tc := range []struct {
		name   string
		parent *Node
		child  *Node
	}{
		{"self", outer, outer},
		{"ancestor", inner, outer},
	} {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("no panic")
				}
			}()
			tc.parent.AddChild(tc.child)
		})
	}
}

func TestInsertAt(t *testing.T) {
	n := NewContainer(Fragment, leaves("a", "d")...)
	n.InsertAt(1, leaves("b", "c")...)
	n.InsertAt(100, leaves("e")...)
	n.InsertAt(-1, leaves("0")...)
	if diff := cmp.Diff([]string{"0", "a", "b", "c", "d", "e"}, names(n)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	checkParents(t, n)
}

func TestReplace(t *testing.T) {
	n := NewContainer(Fragment, leaves("a", "b", "c")...)
	b := n.Children[1]
	n.Replace(b, leaves("x", "y")...)
	if diff := cmp.Diff([]string{"a", "x", "y", "c"}, names(n)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if b.Parent() != nil {
		t.Errorf("replaced node keeps its parent")
	}
	checkParents(t, n)

	n.Replace(n.Children[0])
	if diff := cmp.Diff([]string{"x", "y", "c"}, names(n)); diff != "" {
		t.Errorf("replace with nothing (-want +got):\n%s", diff)
	}

	n.Replace(b, leaves("ignored")...)
	if len(n.Children) != 3 {
		t.Errorf("replacing a non-child changed the child list")
	}
}

func TestReplace_WithOwnSibling(t *testing.T) {
	n := NewContainer(Fragment, leaves("a", "b", "c")...)
	a, c := n.Children[0], n.Children[2]
	n.Replace(c, a)
	if diff := cmp.Diff([]string{"b", "a"}, names(n)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	checkParents(t, n)
}

func TestRemoveAndDetach(t *testing.T) {
	n := NewContainer(Fragment, leaves("a", "b", "c")...)
	a, b := n.Children[0], n.Children[1]
	n.Remove(a)
	b.Detach()
	if diff := cmp.Diff([]string{"c"}, names(n)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if a.Parent() != nil || b.Parent() != nil {
		t.Errorf("removed nodes keep their parent")
	}
	n.Children[0].Detach()
	if n.IsLeaf() {
		t.Errorf("removing the last child made the node a leaf")
	}
}

func TestReplaceSelf(t *testing.T) {
	n := NewContainer(Fragment, leaves("a", "b")...)
	n.Children[0].ReplaceSelf(leaves("z")...)
	if diff := cmp.Diff([]string{"z", "b"}, names(n)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	New(Text).ReplaceSelf(New(Text)) // no parent, no effect
}

func TestNthChild(t *testing.T) {
	n := NewContainer(Fragment, leaves("a", "b")...)
	if got := n.NthChild(2); got == nil || got.Text != "b" {
		t.Errorf("NthChild(2) = %v", got)
	}
	for _, i := range []int{0, 3} {
		if got := n.NthChild(i); got != nil {
			t.Errorf("NthChild(%d) = %v, want nil", i, got)
		}
	}
}

func TestCollectText(t *testing.T) {
	n := NewContainer(Directive, leaves("line 1", "", "  line 3", "", "  ")...)
	got := n.CollectText(TextField, "\n")
	if want := "line 1\n\n  line 3"; got != want {
		t.Errorf("CollectText = %q, want %q", got, want)
	}
	if got := New(Directive).CollectText(TextField, "\n"); got != "" {
		t.Errorf("CollectText of a leaf = %q", got)
	}
}

func tree() *Node {
	// r(a(a1 a2) b(b1) c)
	mk := func(text string, children ...*Node) *Node {
		n := NewContainer(Fragment, children...)
		n.Text = text
		return n
	}
	return mk("r",
		mk("a", mk("a1"), mk("a2")),
		mk("b", mk("b1")),
		mk("c"))
}

func visit(order *[]string, stopAt map[string]Signal) func(*Node) Signal {
	return func(n *Node) Signal {
		*order = append(*order, n.Text)
		return stopAt[n.Text]
	}
}

func TestWalk(t *testing.T) {
	tests := []struct {
		name   string
		stopAt map[string]Signal
		want   string
	}{
		{"post-order", nil, "a1 a2 a b1 b c r"},
		{"skip remaining siblings", map[string]Signal{"a1": Skip}, "a1 a b1 b c r"},
		{"skip at second level", map[string]Signal{"a": Skip}, "a1 a2 a r"},
		{"abort", map[string]Signal{"b1": Abort}, "a1 a2 a b1"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var order []string
			tree().Walk(visit(&order, test.stopAt))
			if diff := cmp.Diff(test.want, strings.Join(order, " ")); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestWalkBreadthFirst(t *testing.T) {
	tests := []struct {
		name   string
		stopAt map[string]Signal
		want   string
	}{
		{"level order", nil, "r a b c a1 a2 b1"},
		{"skip prunes children", map[string]Signal{"a": Skip}, "r a b c b1"},
		{"skip at root", map[string]Signal{"r": Skip}, "r"},
		{"abort", map[string]Signal{"c": Abort}, "r a b c"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var order []string
			tree().WalkBreadthFirst(visit(&order, test.stopAt))
			if diff := cmp.Diff(test.want, strings.Join(order, " ")); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestWalk_ReplaceDuringVisit(t *testing.T) {
	n := NewContainer(Fragment, leaves("a", "b", "c")...)
	n.Walk(func(c *Node) Signal {
		if c.Text == "b" {
			c.ReplaceSelf(NewText(Text, "B"))
		}
		return Continue
	})
	if diff := cmp.Diff([]string{"a", "B", "c"}, names(n)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestOptions(t *testing.T) {
	var o Options
	o.Set("b", "1")
	o.Set("a", "2")
	o.Set("b", "3")
	if diff := cmp.Diff([]string{"b", "a"}, o.Keys()); diff != "" {
		t.Errorf("Keys (-want +got):\n%s", diff)
	}
	if o.Get("b") != "3" || o.Len() != 2 {
		t.Errorf("Get(b) = %q, Len = %d", o.Get("b"), o.Len())
	}
	if _, ok := o.Lookup("c"); ok {
		t.Errorf("Lookup(c) found a value")
	}
	c := o.Clone()
	c.Set("c", "4")
	if o.Len() != 2 {
		t.Errorf("Clone shares storage")
	}
}

func TestAttrs(t *testing.T) {
	var a Attrs
	a.Set("id", "x")
	a.Set("href", "/a")
	a.Set("href", "/b")
	a.Set("alt", "text")
	a.AddStyle("color:red")
	a.AddStyle("margin:0")
	want := Attrs{
		ID: "x", Style: "color:red;margin:0",
		Extra: []Attr{{"href", "/b"}, {"alt", "text"}},
	}
	if diff := cmp.Diff(want, a); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if a.Get("alt") != "text" || a.Get("src") != "" {
		t.Errorf("Get returned wrong values")
	}
}

func TestDump(t *testing.T) {
	root := NewContainer(Root,
		&Node{Kind: Section, Size: 1, Children: []*Node{{Kind: Heading, Size: 1, Text: "T"}}},
		&Node{Kind: BulletItem, Mark: "*", Complex: true})
	want := "Root\n" +
		"  Section Size=1\n" +
		"    Heading Size=1 Text=\"T\"\n" +
		"  BulletItem Mark=\"*\" Complex\n"
	if diff := cmp.Diff(want, Dump(root)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
