package directives

import (
	"regexp"

	"src.kaj.sh/pkg/markup"
	"src.kaj.sh/pkg/tnode"
)

var noteNumber = regexp.MustCompile(`^\d+$`)

// Defines a footnote, when the name is a number, or a citation:
//
//	.. note{name}
//	   blocks...
func note(n, root *tnode.Node, h *markup.Helpers) error {
	name := n.Args
	if name == "" {
		n.Detach()
		return nil
	}
	kind := "cite-def"
	if noteNumber.MatchString(name) {
		kind = "note-def"
	}

	var body *tnode.Node
	if n.Oneliner {
		body = tnode.NewText(tnode.Fragment, markup.LtrimTextBlock(n.Text))
	} else {
		body = tnode.NewContainer(tnode.Fragment)
		if err := tokenizeBody(n, body, h); err != nil {
			return err
		}
	}
	label := tnode.NewElement("td")
	label.Span = true
	label.Attrs.Class = []string{"kaj-label"}
	label.Text = "[" + name + "]"
	def := tnode.NewElement("td", body)
	def.Span = n.Oneliner

	table := tnode.NewElement("table", tnode.NewElement("tr", label, def))
	table.Attrs.ID = n.Opts.Get("id")
	if table.Attrs.ID == "" {
		table.Attrs.ID = "kaj-" + kind + "-" + markup.EncodeURI(name)
	}
	table.Attrs.Class = markup.MergeClasses([]string{"kaj-" + kind}, markup.SplitClasses(n.Opts.Get("class")))
	n.ReplaceSelf(table)
	return nil
}
