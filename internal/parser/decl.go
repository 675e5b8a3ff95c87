package parser

import (
	"github.com/tinyrange/cfront/internal/ast"
	"github.com/tinyrange/cfront/internal/diag"
	"github.com/tinyrange/cfront/internal/lexer"
)

func (p *Parser) parseDeclaration(i int) (ast.Item, int, error) {
	root, j, err := p.parseDeclsInits(i)
	if err != nil {
		return nil, j, err
	}
	return ranged[ast.Item](p, &ast.Declaration{Root: root}, i, j)
}

// parseDeclsInits parses specifiers followed by a comma separated list of
// declarators, each with an optional initializer, and the closing ';'.
func (p *Parser) parseDeclsInits(i int) (*ast.Root, int, error) {
	start := i
	specs, i, err := p.parseDeclSpecifiers(i, false)
	if err != nil {
		return nil, i, err
	}
	root := &ast.Root{Specs: specs}
	if p.is(i, lexer.SEMI) {
		return ranged(p, root, start, i+1)
	}

	typedef := root.IsTypedef()
	for {
		d, j, err := p.parseDeclarator(i, typedef)
		if err != nil {
			return nil, j, err
		}
		root.Decls = append(root.Decls, d)
		i = j

		var init ast.Expr
		if p.is(i, lexer.ASSIGN) {
			if init, i, err = p.parseAssignment(i + 1); err != nil {
				return nil, i, err
			}
		}
		root.Inits = append(root.Inits, init)

		if !p.is(i, lexer.COMMA) {
			break
		}
		i++
	}
	if i, err = p.match(i, lexer.SEMI, formAfter); err != nil {
		return nil, i, err
	}
	return ranged(p, root, start, i)
}

func isTypeKeyword(t lexer.TokenType) bool {
	switch t {
	case lexer.KW_VOID, lexer.KW_BOOL, lexer.KW_CHAR, lexer.KW_SHORT, lexer.KW_INT,
		lexer.KW_LONG, lexer.KW_SIGNED, lexer.KW_UNSIGNED:
		return true
	}
	return false
}

func isStorageClass(t lexer.TokenType) bool {
	switch t {
	case lexer.KW_TYPEDEF, lexer.KW_EXTERN, lexer.KW_STATIC, lexer.KW_AUTO, lexer.KW_REGISTER:
		return true
	}
	return false
}

// parseDeclSpecifiers reads specifiers in any order: either one typedef name
// or builtin type keywords, plus qualifiers and storage classes. In a
// specifier-qualifier list (specQual) storage classes are reported and
// dropped.
func (p *Parser) parseDeclSpecifiers(i int, specQual bool) ([]lexer.Token, int, error) {
	const (
		none = iota
		simple
		typedef
	)
	var specs []lexer.Token
	class := none
loop:
	for ; i < len(p.tokens); i++ {
		tok := p.tokens[i]
		switch {
		case class == none && tok.Is(lexer.IDENT) && p.scopes.isTypedef(tok.Lex):
			class = typedef
		case class != typedef && isTypeKeyword(tok.Type):
			class = simple
		case tok.Is(lexer.KW_CONST):
		case isStorageClass(tok.Type):
			if specQual {
				p.issues.Add(diag.Errorf(&tok.Range, "storage specifier not permitted here"))
				continue
			}
		default:
			break loop
		}
		specs = append(specs, tok)
	}
	if len(specs) == 0 {
		return nil, i, p.errorf("expected declaration specifier", i, formAt)
	}
	return specs, i, nil
}

func (p *Parser) parseParameterList(i int) ([]*ast.Root, int, error) {
	var params []*ast.Root
	if p.is(i, lexer.RPAREN) {
		return params, i, nil
	}
	for {
		start := i
		specs, j, err := p.parseDeclSpecifiers(i, false)
		if err != nil {
			return nil, j, err
		}
		d, j, err := p.parseDeclarator(j, false)
		if err != nil {
			return nil, j, err
		}
		root, j, _ := ranged(p, &ast.Root{Specs: specs, Decls: []ast.Declarator{d}, Inits: []ast.Expr{nil}}, start, j)
		params = append(params, root)
		i = j

		if !p.is(i, lexer.COMMA) {
			return params, i, nil
		}
		i++
	}
}

// parseTypeName parses "( specifier-qualifiers abstract-declarator )".
func (p *Parser) parseTypeName(i int) (*ast.Root, int, error) {
	j, err := p.match(i, lexer.LPAREN, formAt)
	if err != nil {
		return nil, j, err
	}
	specs, j, err := p.parseDeclSpecifiers(j, true)
	if err != nil {
		return nil, j, err
	}
	d, j, err := p.parseAbstractDeclarator(j)
	if err != nil {
		return nil, j, err
	}
	end := j
	if j, err = p.match(j, lexer.RPAREN, formAt); err != nil {
		return nil, j, err
	}
	root, _, _ := ranged(p, &ast.Root{Specs: specs, Decls: []ast.Declarator{d}, Inits: []ast.Expr{nil}}, i+1, end)
	return root, j, nil
}

func (p *Parser) parseAbstractDeclarator(i int) (ast.Declarator, int, error) {
	d, j, err := p.parseDeclarator(i, false)
	if err != nil {
		return nil, j, err
	}
	if name := ast.DeclaredName(d); name != nil {
		p.issues.Add(diag.Errorf(&name.Range, "expected abstract declarator, but identifier name was provided"))
	}
	return d, j, nil
}

// parseDeclarator finds where the declarator starting at i ends, then
// decomposes that span. The span has to be known first: at a '(' or '['
// nothing short of the closing bracket says which layer it belongs to.
func (p *Parser) parseDeclarator(i int, typedef bool) (ast.Declarator, int, error) {
	end, err := p.findDeclEnd(i)
	if err != nil {
		return nil, i, err
	}
	d, err := p.declarator(i, end, typedef)
	if err != nil {
		return nil, i, err
	}
	return d, end, nil
}

func (p *Parser) findDeclEnd(i int) (int, error) {
	for {
		switch {
		case p.isAny(i, lexer.STAR, lexer.KW_CONST, lexer.IDENT):
			i++
		case p.is(i, lexer.LPAREN):
			close, err := p.pairForward(i, lexer.LPAREN, lexer.RPAREN)
			if err != nil {
				return i, err
			}
			i = close + 1
		case p.is(i, lexer.LBRACK):
			close, err := p.pairForward(i, lexer.LBRACK, lexer.RBRACK)
			if err != nil {
				return i, err
			}
			i = close + 1
		default:
			return i, nil
		}
	}
}

func mismatched(open lexer.TokenType) string {
	if open == lexer.LBRACK {
		return "mismatched square brackets in declaration"
	}
	return "mismatched parentheses in declaration"
}

// pairForward returns the index of the bracket closing the one at i.
func (p *Parser) pairForward(i int, open, close lexer.TokenType) (int, error) {
	depth := 0
	for j := i; j < len(p.tokens); j++ {
		switch p.tokens[j].Type {
		case open:
			depth++
		case close:
			depth--
		}
		if depth == 0 {
			return j, nil
		}
	}
	return 0, p.errorf(mismatched(open), i, formAt)
}

// pairBackward returns the index of the bracket opening the one at i,
// searching no further back than start.
func (p *Parser) pairBackward(i, start int, open, close lexer.TokenType) (int, error) {
	depth := 0
	for j := i; j >= start; j-- {
		switch p.tokens[j].Type {
		case close:
			depth++
		case open:
			depth--
		}
		if depth == 0 {
			return j, nil
		}
	}
	return 0, p.errorf(mismatched(open), i, formAt)
}

func (p *Parser) declarator(start, end int, typedef bool) (ast.Declarator, error) {
	d, err := p.declaratorRaw(start, end, typedef)
	if err != nil {
		return nil, err
	}
	d.SetRange(p.span(start, end))
	return d, nil
}

func (p *Parser) declaratorRaw(start, end int, typedef bool) (ast.Declarator, error) {
	switch {
	case start == end:
		return &ast.Name{}, nil

	case start+1 == end && p.is(start, lexer.IDENT):
		tok := p.tokens[start]
		p.scopes.add(tok.Lex, typedef)
		return &ast.Name{Tok: &tok}, nil

	case p.is(start, lexer.STAR):
		i := start + 1
		konst := false
		for i < end && p.is(i, lexer.KW_CONST) {
			konst = true
			i++
		}
		child, err := p.declarator(i, end, typedef)
		if err != nil {
			return nil, err
		}
		return &ast.PointerDecl{Const: konst, Child: child}, nil
	}

	if p.is(start, lexer.LPAREN) && start+2 < end {
		close, err := p.pairForward(start, lexer.LPAREN, lexer.RPAREN)
		if err != nil {
			return nil, err
		}
		if close == end-1 && !p.startsSpecifier(start+1) {
			return p.declarator(start+1, end-1, typedef)
		}
	}

	switch {
	case p.is(end-1, lexer.RBRACK):
		open, err := p.pairBackward(end-1, start, lexer.LBRACK, lexer.RBRACK)
		if err != nil {
			return nil, err
		}
		var size ast.Expr
		if open != end-2 {
			n, j, err := p.parseExpression(open + 1)
			if err != nil {
				return nil, err
			}
			if j != end-1 {
				return nil, p.errorf("unexpected token in array size", j, formAfter)
			}
			size = n
		}
		child, err := p.declarator(start, open, typedef)
		if err != nil {
			return nil, err
		}
		return &ast.ArrayDecl{Size: size, Child: child}, nil

	case p.is(end-1, lexer.RPAREN):
		open, err := p.pairBackward(end-1, start, lexer.LPAREN, lexer.RPAREN)
		if err != nil {
			return nil, err
		}
		p.scopes.push()
		params, j, err := p.parseParameterList(open + 1)
		p.scopes.pop()
		if err != nil {
			return nil, err
		}
		if j != end-1 {
			return nil, p.errorf("expected ')'", j, formGot)
		}
		child, err := p.declarator(start, open, typedef)
		if err != nil {
			return nil, err
		}
		return &ast.FuncDecl{Params: params, Child: child}, nil
	}

	return nil, p.errorf("faulty declaration syntax", start, formAt)
}

// startsSpecifier reports whether token i could begin a parameter
// declaration, which makes a parenthesized span a parameter list rather
// than grouping.
func (p *Parser) startsSpecifier(i int) bool {
	if i >= len(p.tokens) {
		return false
	}
	tok := p.tokens[i]
	return isTypeKeyword(tok.Type) || isStorageClass(tok.Type) || tok.Is(lexer.KW_CONST) ||
		tok.Is(lexer.IDENT) && p.scopes.isTypedef(tok.Lex)
}
