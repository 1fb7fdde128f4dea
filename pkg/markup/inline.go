package markup

import (
	"strings"
	"unicode/utf8"

	"src.kaj.sh/pkg/tnode"
)

type span struct {
	kind        tnode.Kind
	open, close string
}

// Tried in order at every position.
var spans = []span{
	{tnode.Strong, "{*", "*}"},
	{tnode.Emphasis, "{/", "/}"},
	{tnode.Standout, "{%", "%}"},
	{tnode.CodeSpan, "{`", "`}"},
	{tnode.Keystroke, "{:", ":}"},
	{tnode.Literal, "``", "``"},
	{tnode.Link, "[[", "]]"},
	{tnode.RawSpan, "{{", "}}"},
	{tnode.Role, "{~", "~}"},
	{tnode.Note, "{[", "]}"},
	{tnode.Anchor, "{#", "#}"},
	{tnode.Pipe, "{|", "|}"},
}

// Scanner parses inline markup in the text of paragraph-like leaves.
type Scanner struct {
	cfg *Config
}

// NewScanner creates a Scanner.
func NewScanner(cfg *Config) *Scanner { return &Scanner{cfg} }

// Scan replaces the text of n with inline children. Only leaves of kind
// Paragraph, Line and Fragment are scanned; other nodes are left alone.
func (s *Scanner) Scan(n *tnode.Node) (err error) {
	defer catch(&err)
	s.scan(n)
	return nil
}

func (s *Scanner) scan(n *tnode.Node) {
	if !n.IsLeaf() {
		return
	}
	switch n.Kind {
	case tnode.Paragraph, tnode.Line, tnode.Fragment:
	default:
		return
	}
	text := n.Text
	n.Text = ""
	n.Children = []*tnode.Node{}
	addText := func(text string) { n.AddChild(tnode.NewText(tnode.Text, text)) }
	if text == "" {
		addText("")
		return
	}

	var chunk strings.Builder
	flush := func() {
		if chunk.Len() > 0 {
			addText(chunk.String())
			chunk.Reset()
		}
	}
	for src := text; src != ""; {
		if c, length, ok := matchSpan(src); ok {
			flush()
			n.AddChild(c)
			src = src[length:]
			continue
		}
		if src[0] == ' ' {
			// A run of spaces becomes a single space.
			flush()
			addText(" ")
			src = strings.TrimLeft(src, " ")
			continue
		}
		_, size := utf8.DecodeRuneInString(src)
		chunk.WriteString(src[:size])
		src = src[size:]
		if src == "" || src[0] == ' ' {
			flush()
		}
	}
}

// Matches an inline span at the start of src, returning the node and the
// number of bytes it covers.
func matchSpan(src string) (*tnode.Node, int, bool) {
	for _, sp := range spans {
		if !strings.HasPrefix(src, sp.open) {
			continue
		}
		end := strings.Index(src[len(sp.open):], sp.close)
		if end < 0 {
			throw(Errorf("inline markup %q without %q", sp.open, sp.close))
		}
		body := src[len(sp.open) : len(sp.open)+end]
		return newSpan(sp.kind, body), len(sp.open) + end + len(sp.close), true
	}
	return nil, 0, false
}

func newSpan(kind tnode.Kind, body string) *tnode.Node {
	n := tnode.New(kind)
	switch kind {
	case tnode.Strong, tnode.Emphasis, tnode.Standout, tnode.Literal:
		n.Text = Trim(body)
	case tnode.CodeSpan, tnode.Keystroke, tnode.RawSpan:
		n.Text = body
	case tnode.Link:
		text, link, _ := strings.Cut(body, "|")
		n.Text = Trim(text)
		n.Link = Trim(link)
	case tnode.Role:
		if name, text, ok := strings.Cut(body, "~"); ok {
			n.Name = Trim(name)
			n.Text = text
		} else {
			n.Name = "general"
			n.Text = body
		}
	case tnode.Note, tnode.Anchor, tnode.Pipe:
		n.Name = Trim(body)
	}
	return n
}
