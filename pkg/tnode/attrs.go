package tnode

// Attr is a single rendered attribute beyond the four common ones.
type Attr struct {
	Key   string
	Value string
}

// Attrs holds the attributes that are rendered onto a node's markup. ID,
// Class, Style and Title are always present; Extra keeps any other attribute
// in insertion order. Empty values are not rendered.
type Attrs struct {
	ID    string
	Class []string
	Style string
	Title string
	Extra []Attr
}

// Set sets an attribute. The keys "id", "class", "style" and "title" go to
// the dedicated fields; a class value replaces Class with a single token.
func (a *Attrs) Set(key, value string) {
	switch key {
	case "id":
		a.ID = value
	case "class":
		a.Class = []string{value}
	case "style":
		a.Style = value
	case "title":
		a.Title = value
	default:
		for i := range a.Extra {
			if a.Extra[i].Key == key {
				a.Extra[i].Value = value
				return
			}
		}
		a.Extra = append(a.Extra, Attr{key, value})
	}
}

// Get returns the value of an extra attribute, or "" if it is not set.
func (a *Attrs) Get(key string) string {
	for _, attr := range a.Extra {
		if attr.Key == key {
			return attr.Value
		}
	}
	return ""
}

// AddStyle appends a declaration to Style, separated by ";".
func (a *Attrs) AddStyle(style string) {
	if style == "" {
		return
	}
	if a.Style != "" {
		a.Style += ";" + style
	} else {
		a.Style = style
	}
}

// Options is an ordered string mapping, used for the ":key: value" option
// block of directives. The zero value is an empty mapping ready to use.
type Options struct {
	keys   []string
	values map[string]string
}

// Set sets key to value. Setting an existing key keeps its original position.
func (o *Options) Set(key, value string) {
	if o.values == nil {
		o.values = make(map[string]string)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value of key, or "" if it is absent.
func (o *Options) Get(key string) string { return o.values[key] }

// Lookup returns the value of key and whether it is present.
func (o *Options) Lookup(key string) (string, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Keys returns the keys in the order they were first set.
func (o *Options) Keys() []string { return append([]string(nil), o.keys...) }

// Len returns the number of keys.
func (o *Options) Len() int { return len(o.keys) }

// Clone returns an independent copy.
func (o *Options) Clone() Options {
	var c Options
	for _, k := range o.keys {
		c.Set(k, o.values[k])
	}
	return c
}

// Map returns the options as a plain map.
func (o *Options) Map() map[string]string {
	m := make(map[string]string, len(o.keys))
	for _, k := range o.keys {
		m[k] = o.values[k]
	}
	return m
}
