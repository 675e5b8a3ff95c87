package lexer

import (
	"sort"

	"github.com/tinyrange/cfront/internal/diag"
)

type TokenType int

const (
	ILLEGAL TokenType = iota

	// Identifiers + literals
	IDENT
	NUMBER
	STRING
	CHAR

	// Keywords
	KW_VOID
	KW_BOOL
	KW_CHAR
	KW_SHORT
	KW_INT
	KW_LONG
	KW_SIGNED
	KW_UNSIGNED
	KW_CONST
	KW_TYPEDEF
	KW_EXTERN
	KW_STATIC
	KW_AUTO
	KW_REGISTER
	KW_SIZEOF

	// Symbols
	LPAREN // (
	RPAREN // )
	LBRACE // {
	RBRACE // }
	LBRACK // [
	RBRACK // ]
	SEMI   // ;
	COMMA  // ,
	COLON  // :
	QUEST  // ?
	DOT    // .
	ARROW  // ->

	// Assignment
	ASSIGN     // =
	ADD_ASSIGN // +=
	SUB_ASSIGN // -=
	MUL_ASSIGN // *=
	DIV_ASSIGN // /=
	MOD_ASSIGN // %=

	// Arithmetic
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %
	INC     // ++
	DEC     // --

	// Shifts
	SHL // <<
	SHR // >>

	// Bitwise/logical
	AMP    // &
	ANDAND // &&
	OROR   // ||
	PIPE   // |
	CARET  // ^
	TILDE  // ~
	BANG   // !

	// Comparison
	EQEQ // ==
	NEQ  // !=
	LT   // <
	LE   // <=
	GT   // >
	GE   // >=

	numTokenTypes
)

var names = [numTokenTypes]string{
	ILLEGAL: "illegal",
	IDENT:   "identifier",
	NUMBER:  "number",
	STRING:  "string",
	CHAR:    "character",

	KW_VOID:     "void",
	KW_BOOL:     "_Bool",
	KW_CHAR:     "char",
	KW_SHORT:    "short",
	KW_INT:      "int",
	KW_LONG:     "long",
	KW_SIGNED:   "signed",
	KW_UNSIGNED: "unsigned",
	KW_CONST:    "const",
	KW_TYPEDEF:  "typedef",
	KW_EXTERN:   "extern",
	KW_STATIC:   "static",
	KW_AUTO:     "auto",
	KW_REGISTER: "register",
	KW_SIZEOF:   "sizeof",

	LPAREN: "(",
	RPAREN: ")",
	LBRACE: "{",
	RBRACE: "}",
	LBRACK: "[",
	RBRACK: "]",
	SEMI:   ";",
	COMMA:  ",",
	COLON:  ":",
	QUEST:  "?",
	DOT:    ".",
	ARROW:  "->",

	ASSIGN:     "=",
	ADD_ASSIGN: "+=",
	SUB_ASSIGN: "-=",
	MUL_ASSIGN: "*=",
	DIV_ASSIGN: "/=",
	MOD_ASSIGN: "%=",

	PLUS:    "+",
	MINUS:   "-",
	STAR:    "*",
	SLASH:   "/",
	PERCENT: "%",
	INC:     "++",
	DEC:     "--",

	SHL: "<<",
	SHR: ">>",

	AMP:    "&",
	ANDAND: "&&",
	OROR:   "||",
	PIPE:   "|",
	CARET:  "^",
	TILDE:  "~",
	BANG:   "!",

	EQEQ: "==",
	NEQ:  "!=",
	LT:   "<",
	LE:   "<=",
	GT:   ">",
	GE:   ">=",
}

var (
	keywords = map[string]TokenType{}
	// symbols is ordered longest text first so the first match is the
	// longest one.
	symbols []TokenType
)

func init() {
	for t := KW_VOID; t <= KW_SIZEOF; t++ {
		keywords[names[t]] = t
	}
	for t := LPAREN; t < numTokenTypes; t++ {
		symbols = append(symbols, t)
	}
	sort.SliceStable(symbols, func(i, j int) bool {
		return len(names[symbols[i]]) > len(names[symbols[j]])
	})
}

func (t TokenType) String() string {
	if t < 0 || t >= numTokenTypes {
		return "illegal"
	}
	return names[t]
}

func (t TokenType) IsKeyword() bool { return t >= KW_VOID && t <= KW_SIZEOF }

// Keyword returns the keyword spelled s, if any.
func Keyword(s string) (TokenType, bool) {
	t, ok := keywords[s]
	return t, ok
}

type Token struct {
	Type TokenType
	// Lex is the identifier or number text, or the spelling of a keyword or
	// symbol.
	Lex string
	// Chars holds the decoded bytes of a string literal, terminator
	// included, or the single value of a character constant.
	Chars []int
	// Rep is the literal as written, quotes included. Empty for other
	// tokens.
	Rep   string
	Range diag.Range
}

func (t Token) Is(op TokenType) bool { return t.Type == op }

func (t Token) String() string {
	if t.Rep != "" {
		return t.Rep
	}
	return t.Lex
}
