package lexer

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tinyrange/cfront/internal/diag"
)

func kinds(toks []Token) []TokenType {
	var out []TokenType
	for _, t := range toks {
		out = append(out, t.Type)
	}
	return out
}

func lex(t *testing.T, src string) ([]Token, *diag.Collector) {
	t.Helper()
	c := &diag.Collector{}
	return Tokenize(src, "test.c", c), c
}

func TestTokenizeKinds(t *testing.T) {
	tests := []struct {
		src  string
		want []TokenType
	}{
		{"int x;", []TokenType{KW_INT, IDENT, SEMI}},
		{"==", []TokenType{EQEQ}},
		{"a=b==c", []TokenType{IDENT, ASSIGN, IDENT, EQEQ, IDENT}},
		{"x += 1", []TokenType{IDENT, ADD_ASSIGN, NUMBER}},
		{"p->q", []TokenType{IDENT, ARROW, IDENT}},
		{"unsigned long int", []TokenType{KW_UNSIGNED, KW_LONG, KW_INT}},
		{"sizeof(_Bool)", []TokenType{KW_SIZEOF, LPAREN, KW_BOOL, RPAREN}},
		{"/* \n */ x", []TokenType{IDENT}},
		{"a // b c\nd", []TokenType{IDENT, IDENT}},
		{"a/**/b", []TokenType{IDENT, IDENT}},
		{"/*/ still comment */ y", []TokenType{IDENT}},
		{"x\"s\"", []TokenType{IDENT, STRING}},
		{"'a'", []TokenType{CHAR}},
		{"", nil},
	}
	for _, tt := range tests {
		toks, c := lex(t, tt.src)
		if !c.OK() {
			t.Errorf("%q: unexpected issues %v", tt.src, c.Issues())
		}
		if diff := cmp.Diff(tt.want, kinds(toks)); diff != "" {
			t.Errorf("%q: kinds mismatch (-want +got):\n%s", tt.src, diff)
		}
	}
}

func TestSymbolsLongestFirst(t *testing.T) {
	for i := 1; i < len(symbols); i++ {
		if len(symbols[i-1].String()) < len(symbols[i].String()) {
			t.Fatalf("%q sorted before %q", symbols[i-1], symbols[i])
		}
	}
}

func TestStringEscapes(t *testing.T) {
	toks, c := lex(t, `"\n\101\x41"`)
	if !c.OK() || len(toks) != 1 {
		t.Fatalf("got %v, issues %v", toks, c.Issues())
	}
	if diff := cmp.Diff([]int{10, 65, 65, 0}, toks[0].Chars); diff != "" {
		t.Errorf("decoded bytes (-want +got):\n%s", diff)
	}
	if toks[0].String() != `"\n\101\x41"` {
		t.Errorf("rep = %s", toks[0])
	}
}

func TestEscapeTable(t *testing.T) {
	toks, c := lex(t, `"\'\"\?\\\a\b\f\n\r\t\v\q\1234"`)
	if !c.OK() {
		t.Fatal(c.Issues())
	}
	want := []int{39, 34, 63, 92, 7, 8, 12, 10, 13, 9, 11, '\\', 'q', 0123, '4', 0}
	if diff := cmp.Diff(want, toks[0].Chars); diff != "" {
		t.Errorf("decoded bytes (-want +got):\n%s", diff)
	}
}

func TestEscapeOutOfRange(t *testing.T) {
	toks, c := lex(t, `x = "\x11111111111111111111\777\xff\377";`)
	if len(toks) != 4 {
		t.Fatalf("got %v", toks)
	}
	if diff := cmp.Diff([]int{0xff, 0xff, 0xff, 0xff, 0}, toks[2].Chars); diff != "" {
		t.Errorf("decoded bytes (-want +got):\n%s", diff)
	}
	var cols []int
	for _, is := range c.Issues() {
		if is.Msg != "escape sequence out of range" {
			t.Errorf("unexpected issue %v", is)
		}
		cols = append(cols, is.Range.Start.Col)
	}
	if diff := cmp.Diff([]int{6, 28}, cols); diff != "" {
		t.Errorf("issue columns (-want +got):\n%s", diff)
	}
}

func TestCharConstant(t *testing.T) {
	toks, c := lex(t, `'\n' 'A'`)
	if !c.OK() {
		t.Fatal(c.Issues())
	}
	if toks[0].Lex != "10" || toks[1].Lex != "65" {
		t.Errorf("got %q %q", toks[0].Lex, toks[1].Lex)
	}

	_, c = lex(t, `'ab' ''`)
	if len(c.Issues()) != 2 {
		t.Errorf("got issues %v", c.Issues())
	}
}

func TestSplicePositions(t *testing.T) {
	toks, c := lex(t, "int ab\\\ncd;\nx")
	if !c.OK() {
		t.Fatal(c.Issues())
	}
	if diff := cmp.Diff([]TokenType{KW_INT, IDENT, SEMI, IDENT}, kinds(toks)); diff != "" {
		t.Fatalf("kinds (-want +got):\n%s", diff)
	}
	id := toks[1]
	if id.Lex != "abcd" {
		t.Errorf("spliced identifier = %q", id.Lex)
	}
	if s, e := id.Range.Start, id.Range.End; s.Line != 1 || s.Col != 5 || e.Line != 2 || e.Col != 2 {
		t.Errorf("identifier range = %v..%v", s, e)
	}
	if semi := toks[2].Range.Start; semi.Line != 2 || semi.Col != 3 {
		t.Errorf("';' at %v", semi)
	}
	if x := toks[3].Range.Start; x.Line != 3 || x.Col != 1 {
		t.Errorf("x at %v", x)
	}
}

func TestSpliceOnLastLine(t *testing.T) {
	toks, c := lex(t, "a\\")
	if !c.OK() || len(toks) != 1 || toks[0].Lex != "a" {
		t.Errorf("got %v, issues %v", toks, c.Issues())
	}
}

func TestLexicalErrorsRecover(t *testing.T) {
	toks, c := lex(t, "int 9a $ b;\n\"open\nc")
	if diff := cmp.Diff([]TokenType{KW_INT, IDENT, SEMI, IDENT}, kinds(toks)); diff != "" {
		t.Errorf("kinds (-want +got):\n%s", diff)
	}
	var msgs []string
	for _, is := range c.Issues() {
		msgs = append(msgs, is.Msg)
	}
	want := []string{"unrecognized token at '9a'", "unrecognized token at '$'", "missing terminating quote"}
	if diff := cmp.Diff(want, msgs); diff != "" {
		t.Errorf("issues (-want +got):\n%s", diff)
	}
	if open := c.Issues()[2].Range.Start; open.Line != 2 || open.Col != 1 {
		t.Errorf("unterminated quote reported at %v", open)
	}
}

func TestTokenizeNeverPanics(t *testing.T) {
	inputs := []string{
		"\\", "\"", "'", "/*", "*/", "\\\n\\", "\"\\", "\"\\x\"", "@#`",
		strings.Repeat("((", 50), "\x00\x01", "\r\n\r", "é = 1;",
	}
	for _, in := range inputs {
		Tokenize(in, "fuzz.c", &diag.Collector{})
	}
}
