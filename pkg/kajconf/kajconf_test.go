package kajconf_test

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.kaj.sh/pkg/kaj"
	. "src.kaj.sh/pkg/kajconf"
	"src.kaj.sh/pkg/must"
	"src.kaj.sh/pkg/testutil"
)

var sample = testutil.Dedent(`
	roles:
	  em-ok: {wrapper: em, class: "a b"}
	aliases:
	  roles: {g: general}
	  directives: {box: block}
	disable:
	  directives: [csv-table]
	  roles: [general]
	`)

func TestParse(t *testing.T) {
	f, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	want := &File{
		Roles: map[string]Role{"em-ok": {Wrapper: "em", Class: "a b"}},
		Aliases: Names{
			Roles:      map[string]string{"g": "general"},
			Directives: map[string]string{"box": "block"},
		},
		Disable: Disable{Directives: []string{"csv-table"}, Roles: []string{"general"}},
	}
	if diff := cmp.Diff(want, f); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestParse_Empty(t *testing.T) {
	f, err := Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(&File{}, f); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestParse_UnknownKey(t *testing.T) {
	if _, err := Parse([]byte("colors: true\n")); err == nil {
		t.Errorf("no error for unknown key")
	}
}

func TestApply(t *testing.T) {
	f := must.OK1(Parse([]byte(sample)))
	cfg := kaj.NewConfig()
	if err := f.Apply(cfg); err != nil {
		t.Fatal(err)
	}
	tests := []struct{ src, want string }{
		{"{~em-ok~x~}", `<p><em class="a b">x</em></p>`},
		{"{~g~y~}", `<p><span class="kaj-general">y</span></p>`},
		{"{~z~}", `<p><span class="kaj-role-general">z</span></p>`},
		{".. box{} z", "<div>z</div>"},
	}
	for _, test := range tests {
		got, err := kaj.Compile(test.src, cfg)
		if err != nil {
			t.Errorf("Compile(%q): %v", test.src, err)
			continue
		}
		if got != test.want {
			t.Errorf("Compile(%q) = %q, want %q", test.src, got, test.want)
		}
	}
	_, err := kaj.Compile(".. csv-table{}\n   a", cfg)
	if want := `syntax error: directive "csv-table" does not exist`; err == nil || err.Error() != want {
		t.Errorf("got error %v, want %q", err, want)
	}
}

func TestApply_Errors(t *testing.T) {
	tests := []struct{ name, yaml, want string }{
		{"invalid wrapper", "roles: {r: {wrapper: </a>}}", `role "r": syntax error: invalid wrapper "</a>"`},
		{"invalid role name", "roles: {a~b: {}}", `syntax error: role name "a~b" is invalid`},
		{"missing role", "aliases: {roles: {x: nope}}", `syntax error: role "nope" does not exist`},
		{"missing directive", "aliases: {directives: {x: nope}}", `syntax error: directive "nope" does not exist`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := must.OK1(Parse([]byte(test.yaml)))
			err := f.Apply(kaj.NewConfig())
			if err == nil || err.Error() != test.want {
				t.Errorf("got error %v, want %q", err, test.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kaj.yaml")
	must.WriteFile(path, sample)
	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if f.Roles["em-ok"].Wrapper != "em" {
		t.Errorf("Load returned %+v", f)
	}

	must.WriteFile(path, "roles: [")
	if _, err := Load(path); err == nil {
		t.Errorf("no error for malformed file")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("no error for missing file")
	}
}
