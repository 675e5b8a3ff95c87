package parser

import (
	"github.com/tinyrange/cfront/internal/ast"
	"github.com/tinyrange/cfront/internal/lexer"
)

// Expression grammar, loosest binding first:
//
//	expression     = assignment { "," assignment }
//	assignment     = equality [ assign-op assignment ]
//	equality       = relational { ("==" | "!=") relational }
//	relational     = additive { ("<" | ">" | "<=" | ">=") additive }
//	additive       = multiplicative { ("+" | "-") multiplicative }
//	multiplicative = cast { ("*" | "/" | "%") cast }
//	cast           = "(" type-name ")" cast | unary
//	unary          = ("&" | "*" | "+" | "-" | "~") cast
//	               | "sizeof" "(" type-name ")" | "sizeof" unary | postfix
//	postfix        = primary { "[" expression "]" | "(" [ args ] ")" }
//	primary        = "(" expression ")" | number | char | identifier | string

func (p *Parser) parseExpression(i int) (ast.Expr, int, error) {
	start := i
	cur, i, err := p.parseAssignment(i)
	if err != nil {
		return nil, i, err
	}
	for p.is(i, lexer.COMMA) {
		right, j, err := p.parseAssignment(i + 1)
		if err != nil {
			return nil, j, err
		}
		cur, i, _ = ranged[ast.Expr](p, &ast.Comma{Left: cur, Right: right}, start, j)
	}
	return ranged(p, cur, start, i)
}

var assignOps = []lexer.TokenType{
	lexer.ASSIGN, lexer.ADD_ASSIGN, lexer.SUB_ASSIGN,
	lexer.MUL_ASSIGN, lexer.DIV_ASSIGN, lexer.MOD_ASSIGN,
}

func (p *Parser) parseAssignment(i int) (ast.Expr, int, error) {
	start := i
	left, i, err := p.parseEquality(i)
	if err != nil {
		return nil, i, err
	}
	if !p.isAny(i, assignOps...) {
		return ranged(p, left, start, i)
	}
	op := p.tokens[i]
	right, i, err := p.parseAssignment(i + 1)
	if err != nil {
		return nil, i, err
	}
	return ranged[ast.Expr](p, &ast.Assign{Op: op, Left: left, Right: right}, start, i)
}

// series parses a left-associative run of base separated by ops.
func (p *Parser) series(i int, base func(int) (ast.Expr, int, error), ops ...lexer.TokenType) (ast.Expr, int, error) {
	start := i
	cur, i, err := base(i)
	if err != nil {
		return nil, i, err
	}
	for p.isAny(i, ops...) {
		op := p.tokens[i]
		right, j, err := base(i + 1)
		if err != nil {
			return nil, j, err
		}
		cur, i, _ = ranged[ast.Expr](p, &ast.Binary{Op: op, Left: cur, Right: right}, start, j)
	}
	return ranged(p, cur, start, i)
}

func (p *Parser) parseEquality(i int) (ast.Expr, int, error) {
	return p.series(i, p.parseRelational, lexer.EQEQ, lexer.NEQ)
}

func (p *Parser) parseRelational(i int) (ast.Expr, int, error) {
	return p.series(i, p.parseAdditive, lexer.LT, lexer.GT, lexer.LE, lexer.GE)
}

func (p *Parser) parseAdditive(i int) (ast.Expr, int, error) {
	return p.series(i, p.parseMultiplicative, lexer.PLUS, lexer.MINUS)
}

func (p *Parser) parseMultiplicative(i int) (ast.Expr, int, error) {
	return p.series(i, p.parseCast, lexer.STAR, lexer.SLASH, lexer.PERCENT)
}

func (p *Parser) parseCast(i int) (ast.Expr, int, error) {
	if p.is(i, lexer.LPAREN) {
		if x, j, ok := attempt(p, i, p.parseCastExpr); ok {
			return x, j, nil
		}
	}
	return p.parseUnary(i)
}

func (p *Parser) parseCastExpr(i int) (ast.Expr, int, error) {
	root, j, err := p.parseTypeName(i)
	if err != nil {
		return nil, j, err
	}
	x, j, err := p.parseCast(j)
	if err != nil {
		return nil, j, err
	}
	return ranged[ast.Expr](p, &ast.Cast{Type: root, X: x}, i, j)
}

func (p *Parser) parseUnary(i int) (ast.Expr, int, error) {
	if p.is(i, lexer.KW_SIZEOF) {
		return p.parseSizeof(i)
	}
	if !p.isAny(i, lexer.AMP, lexer.STAR, lexer.PLUS, lexer.MINUS, lexer.TILDE) {
		return p.parsePostfix(i)
	}

	op := p.tokens[i]
	x, j, err := p.parseCast(i + 1)
	if err != nil {
		return nil, j, err
	}
	var e ast.Expr
	switch op.Type {
	case lexer.AMP:
		e = &ast.AddrOf{X: x}
	case lexer.STAR:
		e = &ast.Deref{X: x}
	default:
		e = &ast.Unary{Op: op, X: x}
	}
	return ranged(p, e, i, j)
}

func (p *Parser) parseSizeof(i int) (ast.Expr, int, error) {
	if p.is(i+1, lexer.LPAREN) {
		if root, j, ok := attempt(p, i+1, p.parseTypeName); ok {
			return ranged[ast.Expr](p, &ast.SizeofType{Type: root}, i, j)
		}
	}
	x, j, err := p.parseUnary(i + 1)
	if err != nil {
		return nil, j, err
	}
	return ranged[ast.Expr](p, &ast.SizeofExpr{X: x}, i, j)
}

func (p *Parser) parsePostfix(i int) (ast.Expr, int, error) {
	start := i
	cur, i, err := p.parsePrimary(i)
	if err != nil {
		return nil, i, err
	}
	for {
		switch {
		case p.is(i, lexer.LBRACK):
			arg, j, err := p.parseExpression(i + 1)
			if err != nil {
				return nil, j, err
			}
			if j, err = p.match(j, lexer.RBRACK, formGot); err != nil {
				return nil, j, err
			}
			cur, i, _ = ranged[ast.Expr](p, &ast.ArraySubsc{Head: cur, Arg: arg}, start, j)

		case p.is(i, lexer.LPAREN):
			args, j, err := p.parseArgs(i + 1)
			if err != nil {
				return nil, j, err
			}
			cur, i, _ = ranged[ast.Expr](p, &ast.FuncCall{Func: cur, Args: args}, start, j)

		default:
			return ranged(p, cur, start, i)
		}
	}
}

// parseArgs parses call arguments through the closing ')'.
func (p *Parser) parseArgs(i int) ([]ast.Expr, int, error) {
	var args []ast.Expr
	if p.is(i, lexer.RPAREN) {
		return args, i + 1, nil
	}
	for {
		arg, j, err := p.parseAssignment(i)
		if err != nil {
			return nil, j, err
		}
		args = append(args, arg)
		i = j
		if !p.is(i, lexer.COMMA) {
			break
		}
		i++
	}
	j, err := p.match(i, lexer.RPAREN, formGot)
	return args, j, err
}

func (p *Parser) parsePrimary(i int) (ast.Expr, int, error) {
	if i >= len(p.tokens) {
		return nil, i, p.errorf("expected expression", i, formGot)
	}
	tok := p.tokens[i]
	switch {
	case tok.Is(lexer.LPAREN):
		x, j, err := p.parseExpression(i + 1)
		if err != nil {
			return nil, j, err
		}
		if j, err = p.match(j, lexer.RPAREN, formGot); err != nil {
			return nil, j, err
		}
		return ranged[ast.Expr](p, &ast.Paren{X: x}, i, j)
	case tok.Is(lexer.NUMBER):
		return ranged[ast.Expr](p, &ast.Number{Tok: tok}, i, i+1)
	case tok.Is(lexer.CHAR):
		return ranged[ast.Expr](p, &ast.Char{Tok: tok}, i, i+1)
	case tok.Is(lexer.IDENT) && !p.scopes.isTypedef(tok.Lex):
		return ranged[ast.Expr](p, &ast.Identifier{Tok: tok}, i, i+1)
	case tok.Is(lexer.STRING):
		return ranged[ast.Expr](p, &ast.String{Tok: tok}, i, i+1)
	}
	return nil, i, p.errorf("expected expression", i, formGot)
}
