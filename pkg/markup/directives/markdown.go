package directives

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"src.kaj.sh/pkg/markup"
	"src.kaj.sh/pkg/tnode"
)

var (
	safeMarkdown   = goldmark.New(goldmark.WithExtensions(extension.GFM))
	unsafeMarkdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithUnsafe()))
)

// Inserts its body rendered as GitHub-flavored Markdown. Raw HTML in the body
// is dropped unless the option unsafe is "true".
//
//	.. markdown{}
//	   | a | b |
//	   |---|---|
func markdown(n, root *tnode.Node, h *markup.Helpers) error {
	md := safeMarkdown
	if n.Opts.Get("unsafe") == "true" {
		md = unsafeMarkdown
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(markup.LtrimTextBlock(n.Text)), &buf); err != nil {
		return h.Errorf(`directive "markdown": %v`, err)
	}
	div := tnode.NewElement("div",
		tnode.NewText(tnode.RawBlock, strings.TrimRight(buf.String(), "\n")))
	div.Attrs = commonAttrs(n.Opts)
	div.Attrs.Class = markup.MergeClasses([]string{"kaj-markdown"}, div.Attrs.Class)
	n.ReplaceSelf(div)
	return nil
}
