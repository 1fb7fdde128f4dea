package directives

import (
	"regexp"
	"strings"

	"src.kaj.sh/pkg/markup"
	"src.kaj.sh/pkg/markup/roles"
	"src.kaj.sh/pkg/tnode"
)

// Declares a text role:
//
//	.. role{name}
//	   :wrapper: em
//	   :class: a b
func role(n, root *tnode.Node, h *markup.Helpers) error {
	n.Detach()
	name := n.Args
	if markup.ValidRoleName(name) != nil {
		return h.Errorf(`directive "role": invalid role name`)
	}
	a := commonAttrs(n.Opts)
	fn, err := roles.Text(roles.TextSpec{
		Wrapper: n.Opts.Get("wrapper"),
		ID:      a.ID, Class: a.Class, Style: a.Style, Title: a.Title,
	})
	if err != nil {
		return h.Errorf(`directive "role": invalid value for option "wrapper"`)
	}
	return h.Config.SetRole(name, fn)
}

var (
	invalidOldName = regexp.MustCompile(`^[# \t\f~]|[ \t\f~]$`)
	invalidNewName = regexp.MustCompile(`^[# \t\f]|[ \t\f]$|[{}]`)
)

// Gives a role or a directive another name:
//
//	.. alias{role} old
//	   :to: new
func alias(n, root *tnode.Node, h *markup.Helpers) error {
	n.Detach()
	if !n.Oneliner {
		return h.Errorf(`directive "alias": invalid syntax`)
	}
	oldName := n.Text
	if oldName == "" || invalidOldName.MatchString(oldName) {
		return h.Errorf(`directive "alias": invalid old name`)
	}
	newName := n.Opts.Get("to")
	if newName == "" || invalidNewName.MatchString(newName) {
		return h.Errorf(`directive "alias": invalid new name`)
	}
	switch n.Args {
	case "role":
		return h.Config.AliasRole(newName, oldName)
	case "directive":
		_, q, ok := h.Config.Directives.Lookup(oldName)
		if !ok {
			return h.Errorf(`directive "alias": directive %q does not exist`, oldName)
		}
		return h.Config.Directives.Alias(q, newName, oldName)
	}
	logger.Printf("alias of unknown type %q ignored", n.Args)
	return nil
}

// Stores its options on the root, under "#" followed by its argument.
func metadata(n, root *tnode.Node, h *markup.Helpers) error {
	n.Detach()
	if n.Args == "" {
		return nil
	}
	if root.Data == nil {
		root.Data = make(map[string]any)
	}
	root.Data["#"+n.Args] = n.Opts.Map()
	return nil
}

// Inserts its body unchanged when the argument is "html".
func raw(n, root *tnode.Node, h *markup.Helpers) error {
	if n.Args != "html" {
		n.Detach()
		return nil
	}
	n.ReplaceSelf(tnode.NewText(tnode.RawBlock, markup.LtrimTextBlock(n.Text)))
	return nil
}

// Turns into an HTML comment when the argument is "true", which is always the
// case for comments written as ".. text".
func comment(n, root *tnode.Node, h *markup.Helpers) error {
	if n.Args != "true" {
		n.Detach()
		return nil
	}
	lines := strings.Split(markup.LtrimTextBlock(n.Text), "\n")
	for i, line := range lines {
		line = strings.ReplaceAll(line, "-->", "- ->")
		switch {
		case i == 0:
			line = "<!-- " + line
		case line != "":
			line = "     " + line
		}
		lines[i] = line
	}
	n.ReplaceSelf(tnode.NewText(tnode.RawBlock, strings.Join(lines, "\n")+" -->"))
	return nil
}
