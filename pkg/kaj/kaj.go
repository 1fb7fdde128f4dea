// Package kaj compiles kaj documents to HTML.
//
// The package keeps a process-wide default configuration with the built-in
// directives and roles. Compile always works on a copy of its configuration,
// so directives such as "role" and "alias" only affect the document that uses
// them. Lex and Render work on the configuration they are given, which lets
// callers share declarations between documents on purpose.
package kaj

import (
	"sync"

	"src.kaj.sh/pkg/markup"
	"src.kaj.sh/pkg/markup/directives"
	"src.kaj.sh/pkg/markup/roles"
	"src.kaj.sh/pkg/must"
	"src.kaj.sh/pkg/tnode"
)

var (
	defaultMutex  sync.RWMutex
	defaultConfig = NewConfig()
)

// NewConfig creates a configuration with the built-in directives and roles.
func NewConfig() *markup.Config {
	cfg := markup.NewConfig()
	must.OK(directives.Register(cfg))
	must.OK(roles.Register(cfg))
	return cfg
}

// DefaultConfig returns a copy of the default configuration.
func DefaultConfig() *markup.Config {
	defaultMutex.RLock()
	defer defaultMutex.RUnlock()
	return defaultConfig.Clone()
}

// Configure calls f with the default configuration, for adding directives,
// roles or a highlighter that every later compile sees. Errors from f are
// returned, and the changes f made before failing are kept.
func Configure(f func(*markup.Config) error) error {
	defaultMutex.Lock()
	defer defaultMutex.Unlock()
	return f(defaultConfig)
}

// Compile compiles src to HTML, using a copy of cfg, or of the default
// configuration if cfg is nil.
func Compile(src string, cfg *markup.Config) (string, error) {
	cfg = clone(cfg)
	root, err := Lex(src, cfg)
	if err != nil {
		return "", err
	}
	return Render(root, cfg)
}

// Lex parses src into a tree. A nil cfg stands for a copy of the default
// configuration; otherwise cfg is used as is, and declarations made by the
// document are kept in it.
func Lex(src string, cfg *markup.Config) (*tnode.Node, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return markup.NewTokenizer(cfg).Lex(src)
}

// Render renders a tree built by Lex. A nil cfg stands for a copy of the
// default configuration.
func Render(root *tnode.Node, cfg *markup.Config) (string, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return markup.Render(root, cfg)
}

func clone(cfg *markup.Config) *markup.Config {
	if cfg == nil {
		return DefaultConfig()
	}
	return cfg.Clone()
}
