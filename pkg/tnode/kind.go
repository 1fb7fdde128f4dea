package tnode

// Kind identifies what a Node represents.
type Kind uint8

// Structural kinds.
const (
	// Root is the document root produced by the tokenizer.
	Root Kind = iota
	// Fragment is a transparent container. Its text is inline-scanned and its
	// rendered children are concatenated without any markup.
	Fragment
	// Element is a generic HTML element named by Node.Tag. It is created by
	// directives, never by the tokenizer.
	Element
)

// Block kinds.
const (
	Section Kind = iota + 16
	Heading
	BulletList
	BulletItem
	OrderedList
	OrderedItem
	LineBlock
	Line
	CodeBlock
	Oneliner
	Directive
	Paragraph
	Indented
	RawBlock
)

// Inline kinds.
const (
	Text Kind = iota + 48
	Strong
	Emphasis
	Standout
	CodeSpan
	Keystroke
	Literal
	Link
	RawSpan
	Role
	Note
	Anchor
	Pipe
)

var kindNames = map[Kind]string{
	Root: "Root", Fragment: "Fragment", Element: "Element",

	Section: "Section", Heading: "Heading",
	BulletList: "BulletList", BulletItem: "BulletItem",
	OrderedList: "OrderedList", OrderedItem: "OrderedItem",
	LineBlock: "LineBlock", Line: "Line",
	CodeBlock: "CodeBlock", Oneliner: "Oneliner", Directive: "Directive",
	Paragraph: "Paragraph", Indented: "Indented", RawBlock: "RawBlock",

	Text: "Text", Strong: "Strong", Emphasis: "Emphasis", Standout: "Standout",
	CodeSpan: "CodeSpan", Keystroke: "Keystroke", Literal: "Literal",
	Link: "Link", RawSpan: "RawSpan", Role: "Role", Note: "Note",
	Anchor: "Anchor", Pipe: "Pipe",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(?)"
}

// IsBlock reports whether k is one of the block kinds.
func (k Kind) IsBlock() bool { return k >= Section && k <= RawBlock }

// IsInline reports whether k is one of the inline kinds.
func (k Kind) IsInline() bool { return k >= Text && k <= Pipe }
