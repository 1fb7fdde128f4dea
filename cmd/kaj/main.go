// Command kaj compiles kaj documents to HTML.
//
// With no file arguments, it reads a document from stdin and writes the HTML
// to stdout. Otherwise each file is compiled in turn; with --write, the HTML
// for x.kaj goes to x.html instead of stdout, and with --watch the files are
// compiled again whenever they change.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"src.kaj.sh/pkg/buildinfo"
	"src.kaj.sh/pkg/diag"
	"src.kaj.sh/pkg/kaj"
	"src.kaj.sh/pkg/kajconf"
	"src.kaj.sh/pkg/logutil"
	"src.kaj.sh/pkg/markup"
)

var logger = logutil.GetLogger("[kaj] ")

type options struct {
	Version kong.VersionFlag `help:"Print the version and exit."`
	Config  string           `short:"c" help:"YAML file with roles, aliases and disabled names." type:"path"`
	Write   bool             `short:"w" help:"Write the HTML for x.kaj to x.html."`
	Watch   bool             `help:"Compile files again when they change (requires --write)."`
	Log     string           `help:"Append debug logs to this file." type:"path"`
	Files   []string         `arg:"" optional:"" help:"Documents to compile; stdin is read when there are none." type:"path"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// Passed through a panic by kong's exit hook, so that --help returns from
// run.
type exit int

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) (code int) {
	var opts options
	parser, err := kong.New(&opts,
		kong.Name("kaj"),
		kong.Description("Compile kaj documents to HTML."),
		kong.Writers(stdout, stderr),
		kong.Vars{"version": buildinfo.Summary()},
		kong.Exit(func(code int) { panic(exit(code)) }))
	if err != nil {
		diag.ShowError(stderr, err)
		return 2
	}
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(exit)
			if !ok {
				panic(r)
			}
			code = int(e)
		}
	}()
	if _, err := parser.Parse(args); err != nil {
		diag.ShowError(stderr, err)
		return 2
	}
	if err := opts.validate(); err != nil {
		diag.ShowError(stderr, err)
		return 2
	}
	if err := logutil.SetOutputFile(opts.Log); err != nil {
		diag.ShowError(stderr, err)
		return 2
	}

	cfg, err := loadConfig(opts.Config)
	if err != nil {
		diag.ShowError(stderr, err)
		return 2
	}

	if len(opts.Files) == 0 {
		src, err := io.ReadAll(stdin)
		if err != nil {
			diag.Complainf(stderr, "read stdin: %v", err)
			return 2
		}
		html, err := kaj.Compile(string(src), cfg)
		if err != nil {
			diag.ShowError(stderr, err)
			return 2
		}
		fmt.Fprintln(stdout, html)
		return 0
	}

	compile := func(file string) error { return compileFile(file, cfg, opts.Write, stdout) }
	if opts.Watch {
		if err := watch(ctx, opts.Files, compile, stderr); err != nil {
			diag.ShowError(stderr, err)
			return 2
		}
		return 0
	}
	code = 0
	for _, file := range opts.Files {
		if err := compile(file); err != nil {
			diag.ShowError(stderr, err)
			code = 2
		}
	}
	return code
}

func (opts *options) validate() error {
	if opts.Watch {
		if !opts.Write {
			return errors.New("--watch requires --write")
		}
		if len(opts.Files) == 0 {
			return errors.New("--watch requires files")
		}
	}
	return nil
}

func loadConfig(path string) (*markup.Config, error) {
	cfg := kaj.NewConfig()
	if path == "" {
		return cfg, nil
	}
	f, err := kajconf.Load(path)
	if err != nil {
		return nil, err
	}
	if err := f.Apply(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Returns the name of the HTML file written for a document.
func outputName(file string) string {
	return strings.TrimSuffix(file, filepath.Ext(file)) + ".html"
}

func compileFile(file string, cfg *markup.Config, write bool, stdout io.Writer) error {
	src, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	cfg = cfg.Clone()
	cfg.Dir = filepath.Dir(file)
	html, err := kaj.Compile(string(src), cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	if !write {
		_, err := fmt.Fprintln(stdout, html)
		return err
	}
	out := outputName(file)
	if out == file {
		return fmt.Errorf("%s: output would overwrite the document", file)
	}
	logger.Printf("writing %s", out)
	return os.WriteFile(out, []byte(html+"\n"), 0644)
}
