package directives_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.kaj.sh/pkg/markup"
	. "src.kaj.sh/pkg/markup/directives"
	"src.kaj.sh/pkg/markup/roles"
	"src.kaj.sh/pkg/testutil"
)

func newConfig(t *testing.T) *markup.Config {
	t.Helper()
	cfg := markup.NewConfig()
	if err := Register(cfg); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := roles.Register(cfg); err != nil {
		t.Fatalf("roles.Register: %v", err)
	}
	return cfg
}

func compile(cfg *markup.Config, src string) (string, error) {
	root, err := markup.NewTokenizer(cfg).Lex(src)
	if err != nil {
		return "", err
	}
	return markup.Render(root, cfg)
}

var directiveTests = []struct {
	name string
	src  string
	want string
}{
	{
		name: "section numbering",
		src: `
			= A
			== B
			= C`,
		want: `
			<div id="kaj-section-1" class="kaj-section">
			<h1 class="kaj-title"><span>A</span></h1>
			<section id="kaj-section-1-1" class="kaj-section">
			<h2 class="kaj-title"><span>B</span></h2>
			</section>
			</div>
			<div id="kaj-section-2" class="kaj-section">
			<h1 class="kaj-title"><span>C</span></h1>
			</div>`,
	},
	{
		name: "contents",
		src: `
			.. contents{Index}
			= A
			== B
			= C`,
		want: `
			<div id="kaj-contents">
			<div class="kaj-contents-title">
			<span>Index</span>
			</div>
			<ul>
			<li>
			<a href="#kaj-section-1">A</a>
			<ul>
			<li>
			<a href="#kaj-section-1-1">B</a>
			</li>
			</ul>
			</li>
			<li>
			<a href="#kaj-section-2">C</a>
			</li>
			</ul>
			</div>
			<div id="kaj-section-1" class="kaj-section">
			<h1 class="kaj-title"><a href="#kaj-contents">A</a></h1>
			<section id="kaj-section-1-1" class="kaj-section">
			<h2 class="kaj-title"><a href="#kaj-contents">B</a></h2>
			</section>
			</div>
			<div id="kaj-section-2" class="kaj-section">
			<h1 class="kaj-title"><a href="#kaj-contents">C</a></h1>
			</div>`,
	},
	{
		name: "contents limited in depth",
		src: `
			.. contents{}
			   :depth: 1
			   :id: toc
			= A
			== B`,
		want: `
			<div id="toc">
			<ul>
			<li>
			<a href="#kaj-section-1">A</a>
			</li>
			</ul>
			</div>
			<div id="kaj-section-1" class="kaj-section">
			<h1 class="kaj-title"><a href="#toc">A</a></h1>
			<section id="kaj-section-1-1" class="kaj-section">
			<h2 class="kaj-title"><span>B</span></h2>
			</section>
			</div>`,
	},
	{"contents without sections", ".. contents{}\npara", "<p>para</p>"},
	{
		name: "role",
		src: `
			.. role{em-ok}
			   :wrapper: em
			   :class: ok
			{~em-ok~x~}`,
		want: `<p><em class="ok">x</em></p>`,
	},
	{"general role", "{~ a ~}", `<p><span class="kaj-general">a</span></p>`},
	{
		name: "role alias",
		src: `
			.. alias{role} general
			   :to: g
			{~g~x~}`,
		want: `<p><span class="kaj-general">x</span></p>`,
	},
	{
		name: "directive alias",
		src: `
			.. alias{directive} block
			   :to: box
			.. box{c} hi`,
		want: `<div class="c">hi</div>`,
	},
	{"raw html", ".. raw{html}\n   <b>x</b>", "<b>x</b>"},
	{"raw other", ".. raw{tex}\n   x", ""},
	{
		name: "implicit comment",
		src: `
			.. note to self
			   --> here`,
		want: "<!-- note to self\n     - -> here -->",
	},
	{"disabled comment", ".. comment{} x", ""},
	{
		name: "class on blocks",
		src: `
			.. class{a}
			   :id: x
			   :style: color:red
			   p1

			   p2`,
		want: `
			<p id="x" class="a" style="color:red">p1</p>
			<p class="a" style="color:red">p2</p>`,
	},
	{
		name: "class option wins over argument",
		src: `
			.. class{a}
			   :class: b
			   {*t*}`,
		want: `<p class="b"><b>t</b></p>`,
	},
	{"class oneliner", ".. class{a b} {/t/}", `<div class="a b"><i>t</i></div>`},
	{
		name: "block",
		src: `
			.. block{box}
			   :title: T
			   p`,
		want: `
			<div class="box" title="T">
			<p>p</p>
			</div>`,
	},
	{"header oneliner", ".. header{} Hi", "<header>Hi</header>"},
	{"empty header", ".. header{}", ""},
	{
		name: "footer closes sections",
		src: `
			= A
			.. footer{} end`,
		want: `
			<div id="kaj-section-1" class="kaj-section">
			<h1 class="kaj-title"><span>A</span></h1>
			</div><footer>end</footer>`,
	},
	{
		name: "figure",
		src: `
			.. image{} a.png
			   :alt: A
			   :caption: {*C*}`,
		want: `
			<figure>
			<img alt="A" src="a.png"><figcaption><b>C</b></figcaption>
			</figure>`,
	},
	{
		name: "simple image with srcset",
		src: `
			.. image{a b} s.png 1x, l.png 2x
			   :link: /x y
			   :lazyload: true
			   :simple: true`,
		want: `<a href="/x%20y"><img class="kaj-image-a-b" data-src="s.png" data-srcset="s.png 1x, l.png 2x"></a>`,
	},
	{
		name: "footnote",
		src:  ".. note{1} A {*b*}",
		want: `
			<table id="kaj-note-def-1" class="kaj-note-def">
			<tr>
			<td class="kaj-label">[1]</td><td>A <b>b</b></td>
			</tr>
			</table>`,
	},
	{
		name: "citation with blocks",
		src: `
			.. note{Knuth 84}
			   :class: c
			   Book`,
		want: `
			<table id="kaj-cite-def-Knuth%2084" class="kaj-cite-def c">
			<tr>
			<td class="kaj-label">[Knuth 84]</td>
			<td>
			<p>Book</p>
			</td>
			</tr>
			</table>`,
	},
	{"note without name", ".. note{} x", ""},
	{
		name: "csv table",
		src: `
			.. csv-table{T}
			   :header: true true
			   :linebreak: //
			   h1, h2
			   r1, x // y`,
		want: `
			<table>
			<caption>T</caption>
			<thead>
			<tr>
			<th>h1</th><th>h2</th>
			</tr>
			</thead>
			<tbody>
			<tr>
			<th>r1</th><td>x<br>y</td>
			</tr>
			</tbody>
			</table>`,
	},
	{
		name: "csv table with delimiter",
		src: `
			.. csv-table{}
			   :delimiter: ;
			   :class: t
			   a;b`,
		want: `
			<table class="t">
			<tbody>
			<tr>
			<td>a</td><td>b</td>
			</tr>
			</tbody>
			</table>`,
	},
	{
		name: "markdown",
		src: `
			.. markdown{}
			   a *b* <u>c</u>`,
		want: `
			<div class="kaj-markdown">
			<p>a <em>b</em> <!-- raw HTML omitted -->c<!-- raw HTML omitted --></p>
			</div>`,
	},
	{
		name: "unsafe markdown",
		src: `
			.. markdown{}
			   :unsafe: true
			   a <u>c</u>`,
		want: `
			<div class="kaj-markdown">
			<p>a <u>c</u></p>
			</div>`,
	},
	{
		name: "link",
		src: `
			[[Go]] and [[lang|{GO}]] [[x|y]]
			.. link{go} https://go.dev
			   :class: ext
			   :id: first`,
		want: `<p><a id="first" class="kaj-link-external ext" href="https://go.dev">Go</a>` +
			` and <a class="kaj-link-external ext" href="https://go.dev">lang</a>` +
			` <a class="kaj-link-external" href="y">x</a></p>`,
	},
	{
		name: "pipes",
		src: `
			{|logo|} {|NASA|} {|v|} {|w|}
			.. pipe-image{logo} l.png
			   :alt: L
			.. pipe-abbr{NASA} National Aeronautics
			.. pipe-text{v} <i>1</i>
			   :format: raw
			.. pipe-text{w} <i>2</i>`,
		want: `<p><img alt="L" src="l.png"> <abbr title="National Aeronautics">NASA</abbr>` +
			` <i>1</i> &lt;i&gt;2&lt;/i&gt;</p>`,
	},
}

func TestDirectives(t *testing.T) {
	for _, test := range directiveTests {
		t.Run(test.name, func(t *testing.T) {
			got, err := compile(newConfig(t), testutil.Dedent(test.src))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(testutil.Dedent(test.want), got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

var errorTests = []struct {
	name string
	src  string
	want string
}{
	{"invalid role name", ".. role{a~b}", `syntax error: directive "role": invalid role name`},
	{
		"invalid wrapper",
		".. role{r}\n   :wrapper: </x>",
		`syntax error: directive "role": invalid value for option "wrapper"`,
	},
	{"alias with body", ".. alias{role}\n   :to: x\n   body", `syntax error: directive "alias": invalid syntax`},
	{"alias without new name", ".. alias{role} general", `syntax error: directive "alias": invalid new name`},
	{"alias of invalid name", ".. alias{role} ~g\n   :to: x", `syntax error: directive "alias": invalid old name`},
	{"alias of unknown role", ".. alias{role} nope\n   :to: x", `syntax error: role "nope" does not exist`},
	{
		"alias of unknown directive",
		".. alias{directive} nope\n   :to: x",
		`syntax error: directive "alias": directive "nope" does not exist`,
	},
	{"unknown directive", ".. nope{}", `syntax error: directive "nope" does not exist`},
}

func TestDirectives_Errors(t *testing.T) {
	for _, test := range errorTests {
		t.Run(test.name, func(t *testing.T) {
			_, err := compile(newConfig(t), test.src)
			if err == nil || err.Error() != test.want {
				t.Errorf("got error %v, want %q", err, test.want)
			}
		})
	}
}

func TestMetadata(t *testing.T) {
	root, err := markup.NewTokenizer(newConfig(t)).Lex(".. @{meta}\n   :title: T\n   :lang: en\npara")
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{"title": "T", "lang": "en"}
	if diff := cmp.Diff(want, root.Data["#meta"]); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if len(root.Children) != 1 {
		t.Errorf("metadata directive left in the tree")
	}
}

func TestRegister_KeepsConfigsApart(t *testing.T) {
	cfg := newConfig(t)
	clone := cfg.Clone()
	if _, err := compile(clone, ".. role{r}\n.. alias{directive} block\n   :to: box"); err != nil {
		t.Fatal(err)
	}
	if _, ok := cfg.Roles["r"]; ok {
		t.Errorf("role declared in a clone leaked into the original")
	}
	if _, _, ok := cfg.Directives.Lookup("box"); ok {
		t.Errorf("alias declared in a clone leaked into the original")
	}
	if _, ok := clone.Roles["r"]; !ok {
		t.Errorf("role not declared")
	}
}

func TestRegister_Autorun(t *testing.T) {
	cfg := newConfig(t)
	if err := Register(cfg); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"#section"}, cfg.Autorun); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
