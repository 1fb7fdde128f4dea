// Package kajconf loads YAML configuration files that add roles and aliases
// to a compile configuration, or take built-in ones away:
//
//	roles:
//	  em-ok: {wrapper: em, class: "a b"}
//	aliases:
//	  roles: {new-name: old-name}
//	  directives: {box: block}
//	disable:
//	  directives: [csv-table]
//	  roles: [general]
//
// Roles are declared as with the "role" directive.
package kajconf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"

	"src.kaj.sh/pkg/logutil"
	"src.kaj.sh/pkg/markup"
	"src.kaj.sh/pkg/markup/roles"
)

var logger = logutil.GetLogger("[kajconf] ")

// File is the content of a configuration file.
type File struct {
	Roles   map[string]Role `yaml:"roles"`
	Aliases Names           `yaml:"aliases"`
	Disable Disable         `yaml:"disable"`
}

// Role declares a text role.
type Role struct {
	Wrapper string `yaml:"wrapper"`
	ID      string `yaml:"id"`
	Class   string `yaml:"class"`
	Style   string `yaml:"style"`
	Title   string `yaml:"title"`
}

// Names maps new names to existing ones.
type Names struct {
	Roles      map[string]string `yaml:"roles"`
	Directives map[string]string `yaml:"directives"`
}

// Disable lists roles and directives to remove.
type Disable struct {
	Roles      []string `yaml:"roles"`
	Directives []string `yaml:"directives"`
}

// Load reads and parses a configuration file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse parses the content of a configuration file. Unknown keys are errors.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &f, nil
}

// Apply applies f to cfg: roles are declared first, then aliases are made,
// then the disabled names are removed. Names are handled in sorted order.
// It stops at the first error.
func (f *File) Apply(cfg *markup.Config) error {
	for _, name := range sortedKeys(f.Roles) {
		r := f.Roles[name]
		fn, err := roles.Text(roles.TextSpec{
			Wrapper: r.Wrapper, ID: r.ID, Class: markup.SplitClasses(r.Class),
			Style: r.Style, Title: r.Title,
		})
		if err != nil {
			return fmt.Errorf("role %q: %w", name, err)
		}
		if err := cfg.SetRole(name, fn); err != nil {
			return err
		}
	}
	for _, name := range sortedKeys(f.Aliases.Roles) {
		if err := cfg.AliasRole(name, f.Aliases.Roles[name]); err != nil {
			return err
		}
	}
	for _, name := range sortedKeys(f.Aliases.Directives) {
		target := f.Aliases.Directives[name]
		_, q, ok := cfg.Directives.Lookup(target)
		if !ok {
			return markup.Errorf("directive %q does not exist", target)
		}
		if err := cfg.Directives.Alias(q, name, target); err != nil {
			return err
		}
	}
	for _, name := range f.Disable.Roles {
		if err := cfg.UnsetRole(name); err != nil {
			return err
		}
	}
	for _, name := range f.Disable.Directives {
		_, q, ok := cfg.Directives.Lookup(name)
		if !ok {
			logger.Printf("directive %q to disable does not exist", name)
			continue
		}
		if err := cfg.Directives.Unset(q, name); err != nil {
			return err
		}
		cfg.Autorun = slices.DeleteFunc(cfg.Autorun, func(s string) bool { return s == name })
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
