package directives

import (
	"regexp"
	"strings"

	"src.kaj.sh/pkg/markup"
	"src.kaj.sh/pkg/tnode"
)

var (
	blankRun  = regexp.MustCompile(`[ \t\f]+`)
	spaces    = regexp.MustCompile(` +`)
	srcsetSep = regexp.MustCompile(` *, +`)
)

// Inserts an image, wrapped in a figure unless the option simple is "true":
//
//	.. image{format} src or srcset
//	   :alt: alternative text
//	   :caption: a caption for the figure
//	   :link: URI
//	   :lazyload: true
func image(n, root *tnode.Node, h *markup.Helpers) error {
	format := blankRun.ReplaceAllString(n.Args, "-")
	srcset := markup.LtrimTextBlock(n.Text)
	opts := n.Opts
	simple := opts.Get("simple") == "true"
	classes := markup.SplitClasses(opts.Get("class"))
	if format != "" {
		classes = markup.MergeClasses([]string{"kaj-image-" + format}, classes)
	}

	img := tnode.NewElement("img")
	img.Closed = true
	img.Span = simple
	img.Attrs.Style = opts.Get("style")
	if simple {
		img.Attrs.ID = opts.Get("id")
		img.Attrs.Class = classes
		img.Attrs.Title = opts.Get("title")
	}
	img.Attrs.Set("alt", opts.Get("alt"))

	srcKey, srcsetKey := "src", "srcset"
	if opts.Get("lazyload") == "true" {
		srcKey, srcsetKey = "data-src", "data-srcset"
	}
	first, _, _ := strings.Cut(srcset, " ")
	img.Attrs.Set(srcKey, markup.EncodeURI(first))
	if strings.Contains(srcset, " ") {
		candidates := srcsetSep.Split(srcset, -1)
		for i, c := range candidates {
			parts := spaces.Split(c, -1)
			parts[0] = markup.EncodeURI(parts[0])
			candidates[i] = strings.Join(parts, " ")
		}
		img.Attrs.Set(srcsetKey, strings.Join(candidates, ", "))
	}

	out := img
	if link := opts.Get("link"); link != "" {
		a := tnode.NewElement("a", out)
		a.Span = true
		a.Attrs.Set("href", markup.EncodeURI(link))
		out = a
	}
	if !simple {
		figure := tnode.NewElement("figure", out)
		figure.Attrs = tnode.Attrs{
			ID: opts.Get("id"), Class: classes, Title: opts.Get("title"),
		}
		if caption := opts.Get("caption"); caption != "" {
			figure.AddChild(spanOf("figcaption", caption))
		}
		out = figure
	}
	n.ReplaceSelf(out)
	return nil
}

// Replaces the pipes with the given name with images:
//
//	.. pipe-image{name} URI
//	   :format: format
//	   :option of image: value
func pipeImage(n, root *tnode.Node, h *markup.Helpers) error {
	n.Detach()
	name := n.Args
	text := markup.LtrimTextBlock(n.Text)
	if name == "" || text == "" {
		return nil
	}
	opts := n.Opts.Clone()
	opts.Set("simple", "true")
	for _, p := range pipes(root, name) {
		p.Args = opts.Get("format")
		p.Opts = opts.Clone()
		p.Text = text
		if err := image(p, root, h); err != nil {
			return err
		}
	}
	return nil
}

// Replaces the pipes with the given name with an abbreviation:
//
//	.. pipe-abbr{name} title
func pipeAbbr(n, root *tnode.Node, h *markup.Helpers) error {
	n.Detach()
	name := n.Args
	text := markup.LtrimTextBlock(n.Text)
	if name == "" || text == "" {
		return nil
	}
	a := commonAttrs(n.Opts)
	if a.Title == "" {
		a.Title = text
	}
	for _, p := range pipes(root, name) {
		abbr := tnode.NewElement("abbr")
		abbr.Span = true
		abbr.Text = name
		abbr.Attrs = a
		abbr.Attrs.Class = append([]string(nil), a.Class...)
		p.ReplaceSelf(abbr)
	}
	return nil
}

// Replaces the pipes with the given name with text, which is raw HTML when
// the option format is "raw":
//
//	.. pipe-text{name} text
func pipeText(n, root *tnode.Node, h *markup.Helpers) error {
	n.Detach()
	name := n.Args
	text := markup.LtrimTextBlock(n.Text)
	if name == "" || text == "" {
		return nil
	}
	kind := tnode.Text
	if n.Opts.Get("format") == "raw" {
		kind = tnode.RawSpan
	}
	for _, p := range pipes(root, name) {
		p.ReplaceSelf(tnode.NewText(kind, text))
	}
	return nil
}

func pipes(root *tnode.Node, name string) []*tnode.Node {
	var found []*tnode.Node
	root.Walk(func(p *tnode.Node) tnode.Signal {
		if p.Kind == tnode.Pipe && p.Name == name {
			found = append(found, p)
		}
		return tnode.Continue
	})
	return found
}
