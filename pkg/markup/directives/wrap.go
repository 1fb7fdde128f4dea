package directives

import (
	"src.kaj.sh/pkg/markup"
	"src.kaj.sh/pkg/tnode"
)

// Adds attributes to the blocks of its body, or wraps its oneliner text in a
// span:
//
//	.. class{a b}
//	   :id: first
//	   blocks...
func class(n, root *tnode.Node, h *markup.Helpers) error {
	a := commonAttrs(n.Opts)
	if len(a.Class) == 0 {
		a.Class = markup.SplitClasses(n.Args)
	}
	if n.Oneliner {
		div := spanOf("div", markup.LtrimTextBlock(n.Text))
		div.Attrs = a
		n.ReplaceSelf(div)
		return nil
	}
	frag := tnode.NewContainer(tnode.Fragment)
	if err := tokenizeBody(n, frag, h); err != nil {
		return err
	}
	id := a.ID
	blocks := append([]*tnode.Node(nil), frag.Children...)
	for _, b := range blocks {
		b.Attrs.Class = markup.MergeClasses(b.Attrs.Class, a.Class)
		if id != "" {
			// Only the first block gets the ID.
			b.Attrs.ID = id
			id = ""
		}
		b.Attrs.AddStyle(a.Style)
		if a.Title != "" {
			b.Attrs.Title = a.Title
		}
	}
	n.ReplaceSelf(blocks...)
	return nil
}

// Wraps its body in a div.
func block(n, root *tnode.Node, h *markup.Helpers) error {
	a := commonAttrs(n.Opts)
	if len(a.Class) == 0 {
		a.Class = markup.SplitClasses(n.Args)
	}
	if n.Oneliner {
		div := spanOf("div", markup.LtrimTextBlock(n.Text))
		div.Attrs = a
		n.ReplaceSelf(div)
		return nil
	}
	div := tnode.NewElement("div")
	div.Attrs = a
	if err := tokenizeBody(n, div, h); err != nil {
		return err
	}
	n.ReplaceSelf(div)
	return nil
}

// Returns a directive that wraps its body in an element with the given tag.
// An empty oneliner is dropped.
func wrapper(tag string) markup.DirectiveFunc {
	return func(n, root *tnode.Node, h *markup.Helpers) error {
		if n.Oneliner {
			text := markup.LtrimTextBlock(n.Text)
			if text == "" {
				n.Detach()
				return nil
			}
			e := spanOf(tag, text)
			e.Attrs = commonAttrs(n.Opts)
			n.ReplaceSelf(e)
			return nil
		}
		e := tnode.NewElement(tag)
		e.Attrs = commonAttrs(n.Opts)
		if err := tokenizeBody(n, e, h); err != nil {
			return err
		}
		n.ReplaceSelf(e)
		return nil
	}
}
