package markup

import (
	"regexp"
	"strconv"
	"strings"

	"src.kaj.sh/pkg/tnode"
)

// ElementFlag modifies how Element renders.
type ElementFlag uint8

const (
	// Raw inserts the content without escaping it.
	Raw ElementFlag = 1 << iota
	// Block puts the content on lines of its own.
	Block
	// Void renders only the start tag.
	Void
)

var classBlanks = regexp.MustCompile(`[ \t\f]+`)

// Element renders an element. Attributes are written in the order id, class,
// style, title, then the extra ones; empty ones are left out. Each class
// token is trimmed, dropped if empty, and has its inner blanks replaced with
// "-".
func Element(tag string, a tnode.Attrs, content string, flags ElementFlag) string {
	var sb strings.Builder
	sb.WriteString("<" + tag)
	writeAttr(&sb, "id", a.ID)
	var classes []string
	for _, c := range a.Class {
		if c = Trim(c); c != "" {
			classes = append(classes, classBlanks.ReplaceAllString(c, "-"))
		}
	}
	writeAttr(&sb, "class", strings.Join(classes, " "))
	writeAttr(&sb, "style", a.Style)
	writeAttr(&sb, "title", a.Title)
	for _, attr := range a.Extra {
		writeAttr(&sb, attr.Key, attr.Value)
	}
	sb.WriteByte('>')
	if flags&Void != 0 {
		return sb.String()
	}
	if flags&Block != 0 {
		sb.WriteByte('\n')
	}
	if flags&Raw != 0 {
		sb.WriteString(content)
	} else {
		sb.WriteString(Escape(content))
	}
	if flags&Block != 0 {
		sb.WriteByte('\n')
	}
	sb.WriteString("</" + tag + ">")
	return sb.String()
}

func writeAttr(sb *strings.Builder, key, value string) {
	if value != "" {
		sb.WriteString(" " + key + `="` + Escape(value) + `"`)
	}
}

// Renderer renders a tree to HTML.
type Renderer struct {
	cfg     *Config
	helpers *Helpers
	root    *tnode.Node
	// Markup of the children of nodes whose visit is pending.
	pending map[*tnode.Node]*strings.Builder
}

// NewRenderer creates a Renderer.
func NewRenderer(cfg *Config) *Renderer {
	r := &Renderer{cfg: cfg}
	r.helpers = &Helpers{Config: cfg, Scanner: NewScanner(cfg), Renderer: r}
	return r
}

// Render renders the tree rooted at root with a new Renderer.
func Render(root *tnode.Node, cfg *Config) (string, error) {
	return NewRenderer(cfg).Render(root)
}

// Root returns the root of the tree being rendered.
func (r *Renderer) Root() *tnode.Node { return r.root }

// Render renders the tree rooted at root. The root need not be a Root node;
// any node can be rendered on its own, regardless of its parent.
func (r *Renderer) Render(root *tnode.Node) (result string, err error) {
	defer catch(&err)
	r.root = root
	r.pending = make(map[*tnode.Node]*strings.Builder)
	root.Walk(func(n *tnode.Node) tnode.Signal {
		html := r.take(n)
		var part string
		switch {
		case n.Kind == tnode.Root:
			part = html
			if n == root {
				part = strings.Trim(html, "\n")
			}
		case n.Kind == tnode.Fragment:
			part = html
		case n.Kind == tnode.Element:
			part = r.element(n, html)
		case n.Kind.IsBlock():
			part = r.block(n, html)
		default:
			part = r.inline(n, html)
		}
		if n == root {
			result = part
			return tnode.Abort
		}
		r.appendTo(n.Parent(), n, part)
		return tnode.Continue
	})
	return result, nil
}

func (r *Renderer) take(n *tnode.Node) string {
	sb, ok := r.pending[n]
	if !ok {
		return ""
	}
	delete(r.pending, n)
	return sb.String()
}

func (r *Renderer) appendTo(p, n *tnode.Node, part string) {
	sb := r.pending[p]
	if sb == nil {
		sb = &strings.Builder{}
		r.pending[p] = sb
	}
	isBlock := n.Kind.IsBlock() || n.Kind == tnode.Element && !n.Span
	if isBlock && sb.Len() > 0 {
		sb.WriteByte('\n')
	}
	sb.WriteString(part)
}

func (r *Renderer) element(n *tnode.Node, html string) string {
	var flags ElementFlag
	if !n.Span {
		flags |= Block
	}
	if n.Closed {
		flags |= Void
	}
	if n.Text != "" {
		return Element(n.Tag, n.Attrs, n.Text, flags)
	}
	return Element(n.Tag, n.Attrs, html, flags|Raw)
}

func or(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// Returns a copy of n's attributes with classes prepended.
func withClass(n *tnode.Node, classes ...string) tnode.Attrs {
	a := n.Attrs
	a.Class = MergeClasses(classes, n.Attrs.Class)
	a.Extra = append([]tnode.Attr(nil), n.Attrs.Extra...)
	return a
}

func (r *Renderer) block(n *tnode.Node, html string) string {
	switch n.Kind {
	case tnode.Section:
		tag := "section"
		if n.Size == 1 {
			tag = "div"
		}
		a := withClass(n, "kaj-section")
		a.ID = or(n.Attrs.ID, n.ID)
		return Element(tag, a, html, Raw|Block)
	case tnode.Heading:
		tag := "p"
		if n.Size < 7 {
			tag = "h" + strconv.Itoa(n.Size)
		}
		var inner string
		if n.Link != "" {
			inner = Element("a", tnode.Attrs{Extra: []tnode.Attr{{Key: "href", Value: EncodeURI(n.Link)}}}, n.Text, 0)
		} else {
			inner = Element("span", tnode.Attrs{}, n.Text, 0)
		}
		return Element(tag, withClass(n, "kaj-title"), inner, Raw)
	case tnode.BulletItem:
		class := "kaj-item-x"
		switch n.Mark {
		case "+":
			class = "kaj-item-y"
		case "-":
			class = "kaj-item-z"
		}
		return Element("li", withClass(n, class), html, Raw)
	case tnode.OrderedItem:
		return Element("li", n.Attrs, html, Raw)
	case tnode.BulletList:
		return Element("ul", n.Attrs, html, Raw|Block)
	case tnode.OrderedList:
		return Element("ol", n.Attrs, html, Raw|Block)
	case tnode.Line:
		return Element("div", withClass(n, "kaj-line"), or(html, "<br>"), Raw)
	case tnode.LineBlock:
		return Element("div", withClass(n, "kaj-line-block"), html, Raw|Block)
	case tnode.CodeBlock:
		var classes []string
		if n.Lang != "" {
			classes = append(classes, "lang-"+n.Lang)
		}
		if n.Info != "" {
			classes = append(classes, n.Info)
		}
		return r.code(n, withClass(n, classes...), Block)
	case tnode.Oneliner:
		return r.code(n, withClass(n, "kaj-oneliner"), 0)
	case tnode.Paragraph:
		if p := n.Parent(); p != nil && (p.Kind == tnode.BulletItem || p.Kind == tnode.OrderedItem) {
			if list := p.Parent(); list != nil && !list.Complex {
				return html
			}
		}
		return Element("p", n.Attrs, html, Raw)
	case tnode.Indented:
		return Element("blockquote", withClass(n, "kaj-indented"), html, Raw|Block)
	case tnode.RawBlock:
		return n.Text
	case tnode.Directive:
		logger.Printf("directive %q left in the tree", n.Name)
		return ""
	}
	return html
}

func (r *Renderer) code(n *tnode.Node, a tnode.Attrs, flags ElementFlag) string {
	if r.cfg.Highlight != nil {
		if h := r.cfg.Highlight(n.Text, n.Lang); h != "" {
			return Element("pre", a, h, flags|Raw)
		}
	}
	return Element("pre", a, n.Text, flags)
}

var (
	sectionLink = regexp.MustCompile(`^=(\d+(?:\.\d+)*)=$`)
	anchorLink  = regexp.MustCompile(`^#(.+)#$`)
	noteLink    = regexp.MustCompile(`^~(.+)~$`)
	digits      = regexp.MustCompile(`^\d+$`)
)

// LinkTarget returns the target of a link node, with the shorthands for
// sections, anchors and notes expanded. A link without target points to its
// text.
func LinkTarget(n *tnode.Node) string {
	if n.Link == "" {
		return n.Text
	}
	if m := sectionLink.FindStringSubmatch(n.Link); m != nil {
		return "#kaj-section-" + strings.ReplaceAll(m[1], ".", "-")
	}
	if m := anchorLink.FindStringSubmatch(n.Link); m != nil {
		return "#kaj-anchor-def-" + m[1]
	}
	if m := noteLink.FindStringSubmatch(n.Link); m != nil {
		if digits.MatchString(m[1]) {
			return "#kaj-note-def-" + m[1]
		}
		return "#kaj-cite-def-" + m[1]
	}
	return n.Link
}

func (r *Renderer) inline(n *tnode.Node, html string) string {
	switch n.Kind {
	case tnode.Text:
		return Escape(n.Text)
	case tnode.RawSpan:
		return n.Text
	case tnode.Strong:
		return Element("b", n.Attrs, n.Text, 0)
	case tnode.Emphasis:
		return Element("i", n.Attrs, n.Text, 0)
	case tnode.Standout:
		return Element("b", n.Attrs, Element("i", tnode.Attrs{}, n.Text, 0), Raw)
	case tnode.CodeSpan:
		return Element("code", n.Attrs, n.Text, 0)
	case tnode.Keystroke:
		return Element("kbd", n.Attrs, n.Text, 0)
	case tnode.Literal:
		return Element("span", withClass(n, "kaj-inline-literal"), n.Text, 0)
	case tnode.Link:
		target := LinkTarget(n)
		class := "kaj-link-external"
		if strings.HasPrefix(target, "#") {
			class = "kaj-link-internal"
		}
		classes := []string{class}
		if target == n.Text {
			classes = append(classes, "kaj-link-raw")
		}
		a := withClass(n, classes...)
		a.Set("href", EncodeURI(target))
		return Element("a", a, n.Text, 0)
	case tnode.Anchor:
		if n.Name == "" {
			return ""
		}
		a := withClass(n, "kaj-anchor-def")
		a.ID = or(n.Attrs.ID, "kaj-anchor-def-"+n.Name)
		return Element("span", a, "", 0)
	case tnode.Pipe:
		if n.Name == "" {
			return ""
		}
		return Element("span", withClass(n, "kaj-pipe"), n.Name, 0)
	case tnode.Note:
		if n.Name == "" {
			return ""
		}
		if digits.MatchString(n.Name) {
			a := withClass(n, "kaj-note-ref")
			a.Set("href", "#kaj-note-def-"+n.Name)
			return Element("a", a, Element("sup", tnode.Attrs{}, n.Name, 0), Raw)
		}
		a := withClass(n, "kaj-cite-ref")
		a.Set("href", "#kaj-cite-def-"+EncodeURI(n.Name))
		return Element("a", a, n.Name, 0)
	case tnode.Role:
		if Trim(n.Name) == "" {
			return ""
		}
		if fn, ok := r.cfg.Roles[n.Name]; ok {
			out, err := fn(n, r.root, r.helpers)
			if err != nil {
				throw(asError("role", n.Name, err))
			}
			return out
		}
		return Element("span", withClass(n, "kaj-role-"+n.Name), n.Text, 0)
	}
	return html
}
