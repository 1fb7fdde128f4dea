package markup

import (
	"regexp"
	"strings"

	"src.kaj.sh/pkg/logutil"
	"src.kaj.sh/pkg/tnode"
)

var logger = logutil.GetLogger("[markup] ")

// What lines a call of tokenize accepts.
type mode uint8

const (
	// Any block.
	modeAny mode = iota
	// Only items of the list being tokenized.
	modeBullet
	modeOrdered
	modeLine
	// Every line, as a text leaf.
	modeText
)

// Result of trying a block marker on a line.
type status uint8

const (
	noMatch status = iota
	// The marker consumed lines up to and including the returned one.
	consumed
	// The line belongs to an enclosing block.
	closeBlock
)

type marker func(t *Tokenizer, root *tnode.Node, i, indent int, md mode, line string) (int, status)

// Tried in order; paragraph always matches. Filled in by init, since the
// markers themselves call back into tokenize.
var markers []marker

func init() {
	markers = []marker{
		(*Tokenizer).section,
		(*Tokenizer).bulletItem,
		(*Tokenizer).orderedItem,
		(*Tokenizer).line,
		(*Tokenizer).codeBlock,
		(*Tokenizer).oneliner,
		(*Tokenizer).directive,
		(*Tokenizer).paragraph,
	}
}

var lineBreak = regexp.MustCompile(`\r\n?|\n`)

type scheduled struct {
	name string
	d    *Directive
	n    *tnode.Node
}

// Tokenizer turns source text into a block tree, running directives along
// the way.
type Tokenizer struct {
	cfg     *Config
	helpers *Helpers
	lines   []string
	root    *tnode.Node
	queues  [numQueues][]scheduled
}

// NewTokenizer creates a tokenizer with an empty root. The directives listed
// in cfg.Autorun are scheduled right away.
func NewTokenizer(cfg *Config) *Tokenizer {
	t := &Tokenizer{cfg: cfg, root: tnode.NewContainer(tnode.Root)}
	t.helpers = &Helpers{Config: cfg, Tokenizer: t, Scanner: NewScanner(cfg)}
	for _, name := range cfg.Autorun {
		d, q, ok := cfg.Directives.Lookup(name)
		if !ok {
			logger.Printf("autorun directive %q does not exist", name)
			continue
		}
		n := tnode.New(tnode.Directive)
		n.Name = name
		n.Oneliner = true
		logger.Printf("autorun directive %q scheduled on the %s queue", name, q)
		t.queues[q] = append(t.queues[q], scheduled{name, d, n})
	}
	return t
}

// Root returns the root of the tree being built.
func (t *Tokenizer) Root() *tnode.Node { return t.root }

// Lines returns the lines of the source being lexed. Directives use it
// together with Node.BodyRow to re-tokenize their bodies.
func (t *Tokenizer) Lines() []string { return t.lines }

// Lex tokenizes src into the tokenizer's root, runs the "before" directives,
// scans inline markup and runs the "after" directives. Autorun directives on
// the immediate queue run before anything is tokenized.
func (t *Tokenizer) Lex(src string) (root *tnode.Node, err error) {
	defer catch(&err)
	t.lines = lineBreak.Split(src, -1)
	t.run(Immediate)
	t.tokenize(t.root, 0, 0, modeAny)
	t.run(Before)
	t.root.Walk(func(n *tnode.Node) tnode.Signal {
		t.helpers.Scanner.scan(n)
		return tnode.Continue
	})
	t.run(After)
	return t.root, nil
}

// Tokenize tokenizes the lines of the current source starting at row into
// root, as long as they are indented by at least indent columns. It returns
// the index of the first line it did not consume.
func (t *Tokenizer) Tokenize(root *tnode.Node, row, indent int) (next int, err error) {
	defer catch(&err)
	return t.tokenize(root, row, indent, modeAny), nil
}

// Runs a queue until it is empty, including directives scheduled by the
// directives it runs.
func (t *Tokenizer) run(q Queue) {
	for i := 0; i < len(t.queues[q]); i++ {
		s := t.queues[q][i]
		t.execute(s.name, s.d, s.n)
	}
	t.queues[q] = nil
}

func (t *Tokenizer) execute(name string, d *Directive, n *tnode.Node) {
	logger.Printf("running directive %q", name)
	if err := d.Run(n, t.root, t.helpers); err != nil {
		throw(asError("directive", name, err))
	}
}

func (t *Tokenizer) tokenize(root *tnode.Node, row, indent int, md mode) int {
lines:
	for i := row; i < len(t.lines); i++ {
		line := t.lines[i]
		lineIndent := strings.IndexFunc(line, func(r rune) bool { return r != ' ' })
		switch {
		case lineIndent < 0:
			if md != modeText {
				continue
			}
		case lineIndent < indent:
			return i
		case lineIndent > indent && md != modeText:
			if md != modeAny {
				return i
			}
			n := tnode.NewContainer(tnode.Indented)
			root.AddChild(n)
			i = t.tokenize(n, i, lineIndent, modeAny) - 1
			continue
		}
		if len(line) > indent {
			line = line[indent:]
		} else {
			line = ""
		}

		if md == modeText {
			root.AddChild(tnode.NewText(tnode.Text, line))
			continue
		}
		for _, m := range markers {
			next, st := m(t, root, i, indent, md, line)
			switch st {
			case closeBlock:
				return i
			case consumed:
				i = next
				continue lines
			}
		}
	}
	return len(t.lines)
}

var (
	sectionRegexp = regexp.MustCompile(`^(=+)(.*)`)
	sectionCloser = regexp.MustCompile(` *=+$`)
)

func (t *Tokenizer) section(root *tnode.Node, i, indent int, md mode, line string) (int, status) {
	m := sectionRegexp.FindStringSubmatch(line)
	if m == nil {
		return 0, noMatch
	}
	title := sectionCloser.ReplaceAllString(Trim(m[2]), "")
	if title != "" && !strings.HasPrefix(m[2], " ") {
		return 0, noMatch
	}
	if md != modeAny {
		return 0, closeBlock
	}
	size := len(m[1])
	inSection := root.Kind == tnode.Section
	if title == "" {
		// A line of "=" closes sections down to its size.
		if inSection && root.Size > size {
			return 0, closeBlock
		}
		return i, consumed
	}
	if inSection && root.Size >= size {
		return 0, closeBlock
	}

	// Skipped levels get untitled sections.
	parent, from := root, 1
	if inSection {
		from = root.Size + 1
	}
	for s := from; s < size; s++ {
		w := tnode.NewContainer(tnode.Section)
		w.Size = s
		parent.AddChild(w)
		parent = w
	}
	n := tnode.NewContainer(tnode.Section)
	n.Size = size
	heading := tnode.NewText(tnode.Heading, title)
	heading.Size = size
	n.AddChild(heading)
	parent.AddChild(n)
	return t.tokenize(n, i+1, indent, modeAny) - 1, consumed
}

var (
	bulletRegexp  = regexp.MustCompile(`^([*+\-]) (.*)`)
	orderedRegexp = regexp.MustCompile(`^#(\d+(?:\.\d+)*) (.*)`)
)

func (t *Tokenizer) bulletItem(root *tnode.Node, i, indent int, md mode, line string) (int, status) {
	m := bulletRegexp.FindStringSubmatch(line)
	if m == nil {
		return 0, noMatch
	}
	return t.listItem(root, i, indent, md, modeBullet, tnode.BulletList, tnode.BulletItem, m[1], 2, m[2])
}

func (t *Tokenizer) orderedItem(root *tnode.Node, i, indent int, md mode, line string) (int, status) {
	m := orderedRegexp.FindStringSubmatch(line)
	if m == nil {
		return 0, noMatch
	}
	return t.listItem(root, i, indent, md, modeOrdered, tnode.OrderedList, tnode.OrderedItem, m[1], len(m[1])+2, m[2])
}

// Tokenizes a list item whose body starts shift columns after its marker.
// Outside a list of the right kind, a new list is started instead and the
// item is tokenized as its first one.
func (t *Tokenizer) listItem(root *tnode.Node, i, indent int, md, want mode, listKind, itemKind tnode.Kind, mark string, shift int, body string) (int, status) {
	if md != modeAny && md != want {
		return 0, closeBlock
	}
	if root.Kind != listKind {
		list := tnode.NewContainer(listKind)
		root.AddChild(list)
		return t.tokenize(list, i, indent, want) - 1, consumed
	}
	item := tnode.NewContainer(itemKind)
	item.Mark = mark
	root.AddChild(item)

	// The body is tokenized as if it were on a line of its own, indented as
	// the lines that continue it.
	saved := t.lines[i]
	t.lines[i] = strings.Repeat(" ", indent+shift) + body
	defer func() { t.lines[i] = saved }()
	next := t.tokenize(item, i, indent+shift, modeAny)
	if len(item.Children) > 1 {
		root.Complex = true
	}
	return next - 1, consumed
}

var lineRegexp = regexp.MustCompile(`^\|(?: (.*)|$)`)

func (t *Tokenizer) line(root *tnode.Node, i, indent int, md mode, line string) (int, status) {
	m := lineRegexp.FindStringSubmatch(line)
	if m == nil {
		return 0, noMatch
	}
	if md != modeAny && md != modeLine {
		return 0, closeBlock
	}
	if root.Kind != tnode.LineBlock {
		block := tnode.NewContainer(tnode.LineBlock)
		root.AddChild(block)
		return t.tokenize(block, i, indent, modeLine) - 1, consumed
	}
	root.AddChild(tnode.NewText(tnode.Line, Trim(m[1])))
	return i, consumed
}

var (
	codeRegexp     = regexp.MustCompile(`^~//([^ \t\f]*)(.*)`)
	onelinerRegexp = regexp.MustCompile(`^~/ (.*)`)
)

func (t *Tokenizer) codeBlock(root *tnode.Node, i, indent int, md mode, line string) (int, status) {
	m := codeRegexp.FindStringSubmatch(line)
	if m == nil {
		return 0, noMatch
	}
	if md != modeAny {
		return 0, closeBlock
	}
	n := tnode.NewContainer(tnode.CodeBlock)
	n.Lang = m[1]
	n.Info = Trim(m[2])
	next := t.tokenize(n, i+1, indent+3, modeText)
	n.Text = n.CollectText(tnode.TextField, "\n")
	n.Children = nil
	root.AddChild(n)
	return next - 1, consumed
}

func (t *Tokenizer) oneliner(root *tnode.Node, i, indent int, md mode, line string) (int, status) {
	m := onelinerRegexp.FindStringSubmatch(line)
	if m == nil {
		return 0, noMatch
	}
	if md != modeAny {
		return 0, closeBlock
	}
	root.AddChild(tnode.NewText(tnode.Oneliner, m[1]))
	return i, consumed
}

var directiveRegexp = regexp.MustCompile(`^\.\.(?: ([^ \t\f{]+)\{([^{}]*)\}(.*)| (.*)|$)`)

func (t *Tokenizer) directive(root *tnode.Node, i, indent int, md mode, line string) (int, status) {
	m := directiveRegexp.FindStringSubmatch(line)
	if m == nil {
		return 0, noMatch
	}
	if md != modeAny {
		return 0, closeBlock
	}
	name := m[1]
	implicit := m[4] != ""
	if implicit {
		name = "comment"
	}
	if name == "" {
		// An empty directive line does nothing.
		return i, consumed
	}
	d, q, ok := t.cfg.Directives.Lookup(name)
	if !ok {
		throw(Errorf("directive %q does not exist", name))
	}
	if d.BreaksSections && root.Kind == tnode.Section {
		return 0, closeBlock
	}

	n := tnode.NewContainer(tnode.Directive)
	n.Row = i
	n.Indent = indent
	n.Name = name
	n.Args = Trim(m[2])
	n.Text = Trim(m[3] + m[4])
	if implicit {
		n.Args = "true"
		n.ImplicitComment = true
	}
	next := t.tokenize(n, i+1, indent+3, modeText)
	setupDirective(n)
	root.AddChild(n)
	if q == Immediate {
		t.execute(name, d, n)
	} else {
		logger.Printf("directive %q on line %d scheduled on the %s queue", name, i+1, q)
		t.queues[q] = append(t.queues[q], scheduled{name, d, n})
	}
	return next - 1, consumed
}

// Moves the captured body lines of a directive into Opts and Text.
func setupDirective(n *tnode.Node) {
	opts, body, optLines := ParseOptions(n.CollectText(tnode.TextField, "\n"))
	isComment := n.Name == "comment"
	if n.Text != "" && body != "" && !(isComment && n.ImplicitComment) {
		throw(Errorf("each directive can not have more than one body"))
	}
	if !isComment {
		if body == "" {
			n.Oneliner = true
		} else {
			n.Text = body
		}
	} else if body != "" {
		n.Text += "\n" + body
	}
	n.Opts = opts
	n.Children = nil
	n.BodyRow = n.Row + 1 + optLines
}

func (t *Tokenizer) paragraph(root *tnode.Node, i, indent int, md mode, line string) (int, status) {
	if md != modeAny {
		return 0, closeBlock
	}
	root.AddChild(tnode.NewText(tnode.Paragraph, Trim(line)))
	return i, consumed
}
