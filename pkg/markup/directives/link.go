package directives

import (
	"regexp"

	"golang.org/x/text/cases"

	"src.kaj.sh/pkg/markup"
	"src.kaj.sh/pkg/tnode"
)

var linkRef = regexp.MustCompile(`^\{(.+)\}$`)

// Gives a target to the links that refer to name, either as [[name]] or as
// [[text|{name}]]. Names are matched without regard to case.
//
//	.. link{name} URI
func link(n, root *tnode.Node, h *markup.Helpers) error {
	n.Detach()
	fold := cases.Fold()
	name := fold.String(n.Args)
	target := markup.LtrimTextBlock(n.Text)
	if name == "" || target == "" {
		return nil
	}
	a := commonAttrs(n.Opts)
	id := a.ID
	root.Walk(func(l *tnode.Node) tnode.Signal {
		if l.Kind != tnode.Link {
			return tnode.Continue
		}
		ref := l.Text
		if l.Link != "" {
			m := linkRef.FindStringSubmatch(l.Link)
			if m == nil {
				return tnode.Continue
			}
			ref = m[1]
		}
		if fold.String(ref) != name {
			return tnode.Continue
		}
		l.Link = target
		if id != "" {
			l.Attrs.ID = id
			id = ""
		}
		l.Attrs.Class = markup.MergeClasses(l.Attrs.Class, a.Class)
		l.Attrs.AddStyle(a.Style)
		if a.Title != "" {
			l.Attrs.Title = a.Title
		}
		return tnode.Continue
	})
	return nil
}
