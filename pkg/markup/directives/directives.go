// Package directives contains the built-in directives.
//
// Most directives replace their own node with the markup they stand for.
// Directives on the after queue instead remove themselves and rewrite other
// nodes of the document, such as links and pipes.
package directives

import (
	"slices"

	"src.kaj.sh/pkg/logutil"
	"src.kaj.sh/pkg/markup"
	"src.kaj.sh/pkg/tnode"
)

var logger = logutil.GetLogger("[directives] ")

type entry struct {
	queue markup.Queue
	name  string
	d     *markup.Directive
}

func run(f markup.DirectiveFunc) *markup.Directive { return &markup.Directive{Run: f} }

var catalog = []entry{
	{markup.Before, "#section", run(section)},
	{markup.Before, "role", run(role)},

	{markup.Immediate, "@", run(metadata)},
	{markup.Immediate, "raw", run(raw)},
	{markup.Immediate, "comment", run(comment)},
	{markup.Immediate, "alias", run(alias)},
	{markup.Immediate, "class", run(class)},
	{markup.Immediate, "block", run(block)},
	{markup.Immediate, "header", &markup.Directive{Run: wrapper("header"), BreaksSections: true}},
	{markup.Immediate, "footer", &markup.Directive{Run: wrapper("footer"), BreaksSections: true}},
	{markup.Immediate, "image", run(image)},
	{markup.Immediate, "note", run(note)},
	{markup.Immediate, "csv-table", run(csvTable)},
	{markup.Immediate, "markdown", run(markdown)},

	{markup.After, "link", run(link)},
	{markup.After, "pipe-image", run(pipeImage)},
	{markup.After, "pipe-abbr", run(pipeAbbr)},
	{markup.After, "pipe-text", run(pipeText)},
	{markup.After, "contents", run(contents)},
}

// Register adds the built-in directives to cfg, and makes every tokenizer
// number sections.
func Register(cfg *markup.Config) error {
	for _, e := range catalog {
		if err := cfg.Directives.Set(e.queue, e.name, e.d); err != nil {
			return err
		}
	}
	if !slices.Contains(cfg.Autorun, "#section") {
		cfg.Autorun = append(cfg.Autorun, "#section")
	}
	return nil
}

// Attributes common to most directives, from the options id, class, style
// and title.
func commonAttrs(opts tnode.Options) tnode.Attrs {
	return tnode.Attrs{
		ID:    opts.Get("id"),
		Class: markup.SplitClasses(opts.Get("class")),
		Style: opts.Get("style"),
		Title: opts.Get("title"),
	}
}

// Tokenizes the body of n into container.
func tokenizeBody(n, container *tnode.Node, h *markup.Helpers) error {
	if h.Tokenizer == nil {
		return h.Errorf("directive %q needs a tokenizer", n.Name)
	}
	_, err := h.Tokenizer.Tokenize(container, n.BodyRow, n.Indent+3)
	return err
}

// An inline element holding a fragment to be scanned.
func spanOf(tag, text string) *tnode.Node {
	e := tnode.NewElement(tag, tnode.NewText(tnode.Fragment, text))
	e.Span = true
	return e
}
