package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tinyrange/cfront/internal/metrics"
)

func TestCompile(t *testing.T) {
	before := testutil.ToFloat64(metrics.Compilations.WithLabelValues("true"))
	r := Compile("ok.c", "typedef long L; L a[4]; a[1] = 2;", Options{Parse: true})
	if !r.OK() {
		t.Fatalf("issues: %v", r.Issues.Issues())
	}
	if r.Unit == nil || r.Code == nil || len(r.Code.Instrs) == 0 {
		t.Fatal("expected a tree and instructions")
	}
	if got := testutil.ToFloat64(metrics.Compilations.WithLabelValues("true")); got != before+1 {
		t.Errorf("successful compilations went from %v to %v", before, got)
	}
}

func TestTokenizeOnly(t *testing.T) {
	r := Compile("x.c", "int x = ;", Options{})
	if r.Unit != nil || r.Code != nil || !r.OK() {
		t.Error("without Parse only the lexer should run")
	}
	if len(r.Tokens) != 4 {
		t.Errorf("got %d tokens", len(r.Tokens))
	}
}

func TestFailures(t *testing.T) {
	for _, src := range []string{
		"int x = $;",
		"int x",
		"int x; x = &1;",
	} {
		if r := Compile("bad.c", src, Options{Parse: true}); r.OK() {
			t.Errorf("%q compiled", src)
		}
	}
}

func TestWarningsAsErrors(t *testing.T) {
	src := "int *p; long *q; p == q;"
	if r := Compile("w.c", src, Options{Parse: true}); !r.OK() {
		t.Error("a warning alone should not fail")
	}
	if r := Compile("w.c", src, Options{Parse: true, WarningsAsErrors: true}); r.OK() {
		t.Error("with WarningsAsErrors a warning should fail")
	}
}

func TestPrint(t *testing.T) {
	r := Compile("p.c", "int x;\nx = 1 + ;", Options{Parse: true, Tokens: true, AST: true, IL: true})
	var out, errw strings.Builder
	if err := r.Print(&out, &errw); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "p.c:1:5\tidentifier\tx\n") {
		t.Errorf("token listing missing:\n%s", out.String())
	}
	want := "p.c:2:9: error: expected expression, got ';'\n  x = 1 + ;\n          ^\n"
	if errw.String() != want {
		t.Errorf("got diagnostics:\n%s\nwant:\n%s", errw.String(), want)
	}

	r = Compile("p.c", "int x; x = 1;", Options{Parse: true, AST: true, IL: true})
	out.Reset()
	if err := r.Print(&out, &errw); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"TranslationUnit\n", "\tExprStmt\n", "code {\n", "\tint x = set 1\n"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output lacks %q:\n%s", want, out.String())
		}
	}
}

func TestCompileFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.c")
	if err := os.WriteFile(path, []byte("int y = 'a';\n"), 0644); err != nil {
		t.Fatal(err)
	}
	r, err := CompileFile(path, Options{Parse: true})
	if err != nil {
		t.Fatal(err)
	}
	if !r.OK() || r.File != path {
		t.Errorf("got %+v", r.Issues.Issues())
	}
	if _, err := CompileFile(filepath.Join(t.TempDir(), "missing.c"), Options{}); err == nil {
		t.Error("expected an error for a missing file")
	}
}
