package markup

// Helpers is passed to directive and role callbacks. It gives access to the
// configuration in effect and to the stage that is calling back, so that
// extensions can tokenize, scan or render fragments of their own.
type Helpers struct {
	Config *Config
	// Tokenizer is the tokenizer working on the document. It is nil when a
	// role is called by a renderer.
	Tokenizer *Tokenizer
	Scanner   *Scanner
	// Renderer is the calling renderer; nil while lexing.
	Renderer *Renderer
}

// Errorf creates an *Error; it is a convenience for callbacks.
func (h *Helpers) Errorf(format string, args ...any) error {
	return Errorf(format, args...)
}

// NewTokenizer creates a tokenizer that shares the configuration.
func (h *Helpers) NewTokenizer() *Tokenizer { return NewTokenizer(h.Config) }

// NewRenderer creates a renderer that shares the configuration.
func (h *Helpers) NewRenderer() *Renderer { return NewRenderer(h.Config) }
