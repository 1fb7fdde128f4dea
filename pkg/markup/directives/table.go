package directives

import (
	"regexp"
	"strings"

	"src.kaj.sh/pkg/markup"
	"src.kaj.sh/pkg/tnode"
)

var headerFlagSep = regexp.MustCompile(`[ \t]+`)

// Inserts a table from comma-separated values:
//
//	.. csv-table{caption}
//	   :header: true false
//	   :delimiter: ;
//	   :linebreak: \\
//	   r1c1 ; r1c2
//	   r2c1 ; r2c2
//
// The header flags tell whether the first row and the first column are
// headers. Cells are inline-scanned.
func csvTable(n, root *tnode.Node, h *markup.Helpers) error {
	var headerRow, headerCol bool
	if header := n.Opts.Get("header"); header != "" {
		flags := headerFlagSep.Split(header, 3)
		headerRow = flags[0] == "true"
		headerCol = len(flags) > 1 && flags[1] == "true"
	}
	delimiter := n.Opts.Get("delimiter")
	if delimiter == "" {
		delimiter = ","
	}
	var linebreak *regexp.Regexp
	if lb := n.Opts.Get("linebreak"); lb != "" {
		linebreak = regexp.MustCompile(`[ \t]*` + regexp.QuoteMeta(lb) + `[ \t]*`)
	}
	cell := func(tag, text string) *tnode.Node {
		text = markup.Trim(text)
		if linebreak != nil {
			text = linebreak.ReplaceAllLiteralString(text, "{{<br>}}")
		}
		return spanOf(tag, text)
	}

	var rows [][]string
	for _, line := range strings.Split(markup.LtrimTextBlock(n.Text), "\n") {
		rows = append(rows, strings.Split(line, delimiter))
	}

	table := tnode.NewContainer(tnode.Element)
	table.Tag = "table"
	table.Attrs = commonAttrs(n.Opts)
	if n.Args != "" {
		caption := tnode.NewElement("caption")
		caption.Span = true
		caption.Text = n.Args
		table.AddChild(caption)
	}
	if headerRow {
		thead := tnode.NewElement("thead")
		if len(rows) > 0 {
			tr := tnode.NewContainer(tnode.Element)
			tr.Tag = "tr"
			for _, text := range rows[0] {
				tr.AddChild(cell("th", text))
			}
			thead.AddChild(tr)
			rows = rows[1:]
		}
		table.AddChild(thead)
	}
	tbody := tnode.NewContainer(tnode.Element)
	tbody.Tag = "tbody"
	for _, row := range rows {
		tr := tnode.NewContainer(tnode.Element)
		tr.Tag = "tr"
		for j, text := range row {
			tag := "td"
			if j == 0 && headerCol {
				tag = "th"
			}
			tr.AddChild(cell(tag, text))
		}
		tbody.AddChild(tr)
	}
	table.AddChild(tbody)
	n.ReplaceSelf(table)
	return nil
}
