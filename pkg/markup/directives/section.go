package directives

import (
	"strconv"
	"strings"

	"src.kaj.sh/pkg/markup"
	"src.kaj.sh/pkg/tnode"
)

const maxSectionDepth = 6

// Gives every section an ID like "kaj-section-1-2", after its position among
// the sections of its level.
func section(n, root *tnode.Node, h *markup.Helpers) error {
	n.Detach()
	numberSections(root, nil)
	return nil
}

func numberSections(top *tnode.Node, counters []int) {
	top.WalkBreadthFirst(func(s *tnode.Node) tnode.Signal {
		if s == top {
			return tnode.Continue
		}
		if s.Kind != tnode.Section {
			return tnode.Skip
		}
		if s.Size > maxSectionDepth {
			return tnode.Abort
		}
		size := s.Size
		for len(counters) < size {
			counters = append(counters, 0)
		}
		counters[size-1]++
		parts := make([]string, size)
		for i := range parts {
			parts[i] = strconv.Itoa(counters[i])
		}
		s.ID = "kaj-section-" + strings.Join(parts, "-")
		if size < maxSectionDepth {
			numberSections(s, append([]int(nil), counters[:size]...))
		}
		return tnode.Skip
	})
}

// Builds a table of contents from numbered sections.
func contents(n, root *tnode.Node, h *markup.Helpers) error {
	depth, err := strconv.Atoi(n.Opts.Get("depth"))
	if err != nil || depth < 1 || depth > maxSectionDepth {
		depth = 3
	}
	div := tnode.NewElement("div")
	div.Attrs = commonAttrs(n.Opts)
	if div.Attrs.ID == "" {
		div.Attrs.ID = "kaj-contents"
	}
	if n.Args != "" {
		caption := tnode.NewElement("span")
		caption.Span = true
		caption.Text = n.Args
		title := tnode.NewElement("div", caption)
		title.Attrs.Class = []string{"kaj-contents-title"}
		div.AddChild(title)
	}

	list := tnode.NewElement("ul")
	item := func(s, heading *tnode.Node) *tnode.Node {
		a := tnode.NewElement("a")
		a.Span = true
		a.Attrs.Set("href", "#"+s.ID)
		if heading != nil {
			a.Text = heading.Text
		}
		return tnode.NewElement("li", a)
	}
	root.WalkBreadthFirst(func(s *tnode.Node) tnode.Signal {
		if s == root {
			return tnode.Continue
		}
		if s.Kind != tnode.Section {
			return tnode.Skip
		}
		if s.Size > depth {
			return tnode.Abort
		}
		if s.ID == "" {
			return tnode.Skip
		}
		heading := s.NthChild(1)
		if heading != nil && heading.Kind == tnode.Heading {
			heading.Link = "#" + div.Attrs.ID
		} else {
			heading = nil
		}

		// The path of the section's entry follows its number.
		var path []int
		for _, part := range strings.SplitN(strings.TrimPrefix(s.ID, "kaj-section-"), "-", s.Size) {
			i, _ := strconv.Atoi(part)
			path = append(path, i)
		}
		parent := list.NthChild(path[0])
		if parent == nil {
			parent = item(s, heading)
			list.AddChild(parent)
		}
		for _, i := range path[1:] {
			sub := parent.NthChild(2)
			if sub == nil {
				sub = tnode.NewElement("ul")
				parent.AddChild(sub)
			}
			child := sub.NthChild(i)
			if child == nil {
				child = item(s, heading)
				sub.AddChild(child)
			}
			parent = child
		}
		return tnode.Continue
	})

	if len(list.Children) == 0 {
		logger.Printf("no sections for contents")
		n.Detach()
		return nil
	}
	div.AddChild(list)
	n.ReplaceSelf(div)
	return nil
}
