package program

import (
	"fmt"
	"strconv"
)

// parser consumes the token stream produced by the lexer. The grammar is a
// fixed sequence of three blocks:
//
//	data   { name[len]; ... }
//	params { name; ... }
//	model  { target ~ dist(arg, ...); ... }
type parser struct {
	l         *lexer
	curToken  token
	peekToken token
}

func newParser(input string) *parser {
	p := &parser{l: newLexer(input)}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.next()
}

func (p *parser) errf(format string, args ...any) error {
	return ErrCompile(p.curToken.line, fmt.Sprintf(format, args...))
}

func (p *parser) expect(t tokenType) error {
	if p.curToken.typ != t {
		return p.errf("expected %q, got %q", string(t), p.curToken.literal)
	}
	p.nextToken()
	return nil
}

func (p *parser) parse() (*ast, error) {
	out := &ast{}
	for _, block := range []string{"data", "params", "model"} {
		if p.curToken.typ != tokenIdent || p.curToken.literal != block {
			return nil, p.errf("expected %q block, got %q", block, p.curToken.literal)
		}
		p.nextToken()
		if err := p.expect(tokenLBrace); err != nil {
			return nil, err
		}
		var err error
		switch block {
		case "data":
			err = p.parseDataBlock(out)
		case "params":
			err = p.parseParamsBlock(out)
		case "model":
			err = p.parseModelBlock(out)
		}
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokenRBrace); err != nil {
			return nil, err
		}
	}
	if p.curToken.typ != tokenEOF {
		return nil, p.errf("trailing input after model block: %q", p.curToken.literal)
	}
	return out, nil
}

func (p *parser) parseDataBlock(out *ast) error {
	for p.curToken.typ == tokenIdent {
		decl := DataDecl{Name: p.curToken.literal}
		p.nextToken()
		if p.curToken.typ == tokenLBracket {
			p.nextToken()
			if p.curToken.typ != tokenNumber {
				return p.errf("expected array length, got %q", p.curToken.literal)
			}
			n, err := strconv.Atoi(p.curToken.literal)
			if err != nil || n <= 0 {
				return p.errf("invalid array length %q", p.curToken.literal)
			}
			decl.Len = n
			p.nextToken()
			if err := p.expect(tokenRBracket); err != nil {
				return err
			}
		}
		if err := p.expect(tokenSemicolon); err != nil {
			return err
		}
		out.data = append(out.data, decl)
	}
	return nil
}

func (p *parser) parseParamsBlock(out *ast) error {
	for p.curToken.typ == tokenIdent {
		out.params = append(out.params, p.curToken.literal)
		p.nextToken()
		if err := p.expect(tokenSemicolon); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) parseModelBlock(out *ast) error {
	for p.curToken.typ == tokenIdent {
		stmt := SampleStmt{Target: p.curToken.literal, Line: p.curToken.line}
		p.nextToken()
		if err := p.expect(tokenTilde); err != nil {
			return err
		}
		if p.curToken.typ != tokenIdent {
			return p.errf("expected distribution name, got %q", p.curToken.literal)
		}
		stmt.Dist = p.curToken.literal
		p.nextToken()
		if err := p.expect(tokenLParen); err != nil {
			return err
		}
		for p.curToken.typ != tokenRParen {
			arg, err := p.parseArg()
			if err != nil {
				return err
			}
			stmt.Args = append(stmt.Args, arg)
			if p.curToken.typ == tokenComma {
				p.nextToken()
				continue
			}
			if p.curToken.typ != tokenRParen {
				return p.errf("expected ',' or ')', got %q", p.curToken.literal)
			}
		}
		p.nextToken() // consume ')'
		if err := p.expect(tokenSemicolon); err != nil {
			return err
		}
		out.stmts = append(out.stmts, stmt)
	}
	return nil
}

func (p *parser) parseArg() (Arg, error) {
	neg := false
	if p.curToken.typ == tokenMinus {
		neg = true
		p.nextToken()
	}
	switch p.curToken.typ {
	case tokenNumber:
		v, err := strconv.ParseFloat(p.curToken.literal, 64)
		if err != nil {
			return Arg{}, p.errf("invalid number %q", p.curToken.literal)
		}
		if neg {
			v = -v
		}
		p.nextToken()
		return Arg{Lit: v}, nil
	case tokenIdent:
		if neg {
			return Arg{}, p.errf("cannot negate parameter reference %q", p.curToken.literal)
		}
		name := p.curToken.literal
		p.nextToken()
		return Arg{Ref: name, IsRef: true}, nil
	}
	return Arg{}, p.errf("expected argument, got %q", p.curToken.literal)
}
