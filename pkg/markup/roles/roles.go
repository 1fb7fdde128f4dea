// Package roles contains the built-in text roles.
package roles

import (
	"regexp"

	"src.kaj.sh/pkg/markup"
	"src.kaj.sh/pkg/tnode"
)

// Register adds the built-in roles to cfg.
func Register(cfg *markup.Config) error {
	return cfg.SetRole("general", General)
}

// General renders the default role, written as {~text~}.
func General(n, root *tnode.Node, h *markup.Helpers) (string, error) {
	a := n.Attrs
	a.Class = markup.MergeClasses([]string{"kaj-general"}, n.Attrs.Class)
	return markup.Element("span", a, markup.Trim(n.Text), 0), nil
}

// TextSpec describes a role that wraps its text in a single element.
type TextSpec struct {
	// Wrapper is the element name; "span" if empty.
	Wrapper string
	ID      string
	Class   []string
	Style   string
	Title   string
}

var invalidWrapper = regexp.MustCompile(`^!--|[<>/?\x00]`)

// Text creates a role from a TextSpec. The ID and Title of the spec take
// precedence over those of the role node; classes and styles are combined.
func Text(spec TextSpec) (markup.RoleFunc, error) {
	wrapper := spec.Wrapper
	if wrapper == "" {
		wrapper = "span"
	}
	if invalidWrapper.MatchString(wrapper) {
		return nil, markup.Errorf("invalid wrapper %q", wrapper)
	}
	return func(n, root *tnode.Node, h *markup.Helpers) (string, error) {
		a := tnode.Attrs{
			ID:    spec.ID,
			Class: markup.MergeClasses(spec.Class, n.Attrs.Class),
			Style: spec.Style,
			Title: spec.Title,
		}
		if a.ID == "" {
			a.ID = n.Attrs.ID
		}
		if a.Title == "" {
			a.Title = n.Attrs.Title
		}
		a.AddStyle(n.Attrs.Style)
		return markup.Element(wrapper, a, n.Text, 0), nil
	}, nil
}
