package ir

import (
	"github.com/tinyrange/cfront/internal/diag"
	"github.com/tinyrange/cfront/internal/lexer"
	"github.com/tinyrange/cfront/internal/types"
)

type symbol struct {
	typedef bool
	v       *Value
}

// Symbols maps identifiers to the storage of declared variables and to the
// types named by typedefs, one map per open scope.
type Symbols struct {
	scopes []map[string]*symbol
}

func NewSymbols() *Symbols {
	s := &Symbols{}
	s.NewScope()
	return s
}

func (s *Symbols) NewScope() { s.scopes = append(s.scopes, map[string]*symbol{}) }

func (s *Symbols) EndScope() {
	if len(s.scopes) > 1 {
		s.scopes = s.scopes[:len(s.scopes)-1]
	}
}

func (s *Symbols) lookup(name string) *symbol {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if sym, ok := s.scopes[i][name]; ok {
			return sym
		}
	}
	return nil
}

func (s *Symbols) declare(tok lexer.Token, t types.CType, typedef bool) (*Value, error) {
	name := tok.Lex
	inner := s.scopes[len(s.scopes)-1]
	if old, ok := inner[name]; ok {
		if old.typedef != typedef {
			return nil, diag.Errorf(&tok.Range, "'%s' redeclared as different kind of symbol", name)
		}
		if !old.v.Type.Compatible(t) {
			return nil, diag.Errorf(&tok.Range, "redeclared '%s' with incompatible type", name)
		}
		return old.v, nil
	}
	v := NewVariable(name, t)
	inner[name] = &symbol{typedef: typedef, v: v}
	return v, nil
}

// DeclareVariable declares the object or function tok in the innermost scope.
// Redeclaring a name with a compatible type returns the existing storage.
func (s *Symbols) DeclareVariable(tok lexer.Token, t types.CType) (*Value, error) {
	return s.declare(tok, t, false)
}

func (s *Symbols) DeclareTypedef(tok lexer.Token, t types.CType) error {
	_, err := s.declare(tok, t, true)
	return err
}

// LookupVariable finds the storage of the variable named by tok.
func (s *Symbols) LookupVariable(tok lexer.Token) (*Value, error) {
	sym := s.lookup(tok.Lex)
	if sym == nil {
		return nil, diag.Errorf(&tok.Range, "use of undeclared identifier '%s'", tok.Lex)
	}
	if sym.typedef {
		return nil, diag.Errorf(&tok.Range, "expected variable name, got typedef '%s'", tok.Lex)
	}
	return sym.v, nil
}

// LookupTypedef returns the type named by a typedef.
func (s *Symbols) LookupTypedef(tok lexer.Token) (types.CType, bool) {
	sym := s.lookup(tok.Lex)
	if sym == nil || !sym.typedef {
		return types.CType{}, false
	}
	return sym.v.Type, true
}
