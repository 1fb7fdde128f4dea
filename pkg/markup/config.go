package markup

import (
	"sort"
	"strings"

	"src.kaj.sh/pkg/tnode"
)

// Queue names when a directive runs.
type Queue int

const (
	// Before directives run once the whole document is tokenized, before
	// inline scanning.
	Before Queue = iota
	// Immediate directives run as soon as they are tokenized, so their
	// changes are visible to the tokenizing of what follows.
	Immediate
	// After directives run after inline scanning.
	After

	numQueues
)

var queueNames = [numQueues]string{"before", "immediate", "after"}

func (q Queue) String() string {
	if q < 0 || q >= numQueues {
		return "invalid"
	}
	return queueNames[q]
}

// ParseQueue parses the name of a queue.
func ParseQueue(s string) (Queue, error) {
	for i, name := range queueNames {
		if s == name {
			return Queue(i), nil
		}
	}
	return 0, Errorf("directive queue %q is invalid", s)
}

// DirectiveFunc is the callback of a directive. It receives the directive
// node, the document root and the helpers, and rewrites the tree in place;
// most directives end by replacing or removing their own node.
type DirectiveFunc func(n, root *tnode.Node, h *Helpers) error

// Directive defines a directive.
type Directive struct {
	Run DirectiveFunc
	// BreaksSections makes the directive close all enclosing sections, so
	// that it ends up next to the outermost ones.
	BreaksSections bool
}

// RoleFunc renders a role node to markup.
type RoleFunc func(n, root *tnode.Node, h *Helpers) (string, error)

// HighlightFunc highlights code in the given language. It returns markup, or
// "" to leave the code to the default escaping.
type HighlightFunc func(code, lang string) string

// Registry maps directive names to definitions, in three queues. A name
// belongs to at most one queue.
type Registry struct {
	queues [numQueues]map[string]*Directive
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	r := &Registry{}
	for i := range r.queues {
		r.queues[i] = make(map[string]*Directive)
	}
	return r
}

// Set registers a directive on a queue.
func (r *Registry) Set(q Queue, name string, d *Directive) error {
	if err := r.check(q, name); err != nil {
		return err
	}
	r.queues[q][name] = d
	return nil
}

// Alias makes name refer to the same definition as target, which must be on
// the same queue.
func (r *Registry) Alias(q Queue, name, target string) error {
	if err := r.check(q, name); err != nil {
		return err
	}
	d, ok := r.queues[q][target]
	if !ok {
		return Errorf("directive %q does not exist in queue %s", target, q)
	}
	r.queues[q][name] = d
	return nil
}

// Unset removes a directive from a queue.
func (r *Registry) Unset(q Queue, name string) error {
	if err := validDirectiveName(name); err != nil {
		return err
	}
	if q < 0 || q >= numQueues {
		return Errorf("directive queue is invalid")
	}
	delete(r.queues[q], name)
	return nil
}

// Lookup finds a directive in any queue.
func (r *Registry) Lookup(name string) (*Directive, Queue, bool) {
	for q, m := range r.queues {
		if d, ok := m[name]; ok {
			return d, Queue(q), true
		}
	}
	return nil, 0, false
}

// Names returns the sorted names registered on a queue.
func (r *Registry) Names(q Queue) []string {
	names := make([]string, 0, len(r.queues[q]))
	for name := range r.queues[q] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns an independent copy. Definitions are shared, since they are
// never modified after registration.
func (r *Registry) Clone() *Registry {
	c := NewRegistry()
	for q, m := range r.queues {
		for name, d := range m {
			c.queues[q][name] = d
		}
	}
	return c
}

func (r *Registry) check(q Queue, name string) error {
	if err := validDirectiveName(name); err != nil {
		return err
	}
	if q < 0 || q >= numQueues {
		return Errorf("directive queue is invalid")
	}
	for other, m := range r.queues {
		if Queue(other) != q {
			if _, ok := m[name]; ok {
				return Errorf("directive %s exists in other queue", name)
			}
		}
	}
	return nil
}

const blanks = " \t\f"

func validDirectiveName(name string) error {
	if name == "" || Trim(name) != name || strings.ContainsAny(name, "{}") {
		return Errorf("directive name %q is invalid", name)
	}
	return nil
}

// ValidRoleName checks that a role name can be written in a role span.
func ValidRoleName(name string) error {
	if name == "" || Trim(name) != name || strings.Contains(name, "~") {
		return Errorf("role name %q is invalid", name)
	}
	return nil
}

// Config is everything a compile depends on besides the source text. The
// tokenizer, scanner and renderer all read the same Config, and directives
// may modify it while a document is compiled; use Clone to keep such changes
// from leaking into other compiles.
type Config struct {
	Directives *Registry
	Roles      map[string]RoleFunc
	Highlight  HighlightFunc
	// Autorun names directives that each tokenizer schedules once on
	// construction, whether or not the document uses them.
	Autorun []string
	// Dir is the working directory for extensions that read files.
	Dir string
}

// NewConfig creates a Config with no directives and no roles.
func NewConfig() *Config {
	return &Config{Directives: NewRegistry(), Roles: make(map[string]RoleFunc)}
}

// Clone returns a copy of c whose registries can be modified independently.
func (c *Config) Clone() *Config {
	roles := make(map[string]RoleFunc, len(c.Roles))
	for name, fn := range c.Roles {
		roles[name] = fn
	}
	return &Config{
		Directives: c.Directives.Clone(),
		Roles:      roles,
		Highlight:  c.Highlight,
		Autorun:    append([]string(nil), c.Autorun...),
		Dir:        c.Dir,
	}
}

// SetRole registers a role.
func (c *Config) SetRole(name string, fn RoleFunc) error {
	if err := ValidRoleName(name); err != nil {
		return err
	}
	c.Roles[name] = fn
	return nil
}

// AliasRole makes name render the same way as target.
func (c *Config) AliasRole(name, target string) error {
	if err := ValidRoleName(name); err != nil {
		return err
	}
	fn, ok := c.Roles[target]
	if !ok {
		return Errorf("role %q does not exist", target)
	}
	c.Roles[name] = fn
	return nil
}

// UnsetRole removes a role.
func (c *Config) UnsetRole(name string) error {
	if err := ValidRoleName(name); err != nil {
		return err
	}
	delete(c.Roles, name)
	return nil
}
