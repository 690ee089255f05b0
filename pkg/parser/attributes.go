package parser

import (
	"swiftparse/pkg/ast"
	"swiftparse/pkg/errors"
	"swiftparse/pkg/token"
)

// parseAttributes parses zero or more `@name(...)?` attributes.
func (p *Parser) parseAttributes() ([]*ast.Attribute, *errors.ParseError) {
	var attrs []*ast.Attribute
	for p.atKind(token.At) {
		a, err := p.parseAttribute()
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, a)
	}
	return attrs, nil
}

func (p *Parser) parseAttribute() (*ast.Attribute, *errors.ParseError) {
	start := p.pos()
	if err := p.expectKind0(token.At); err != nil {
		return nil, err
	}
	nameTok, err := p.expectKind(token.Ident, "attribute name")
	if err != nil {
		return nil, err
	}
	attr := &ast.Attribute{Name: nameTok.Literal, Position: start}
	if p.atKind(token.LParen) {
		raw, err := p.scanBalancedParenText()
		if err != nil {
			return nil, err
		}
		attr.Arguments = raw
		attr.HasArgs = true
	}
	return attr, nil
}

// scanBalancedParenText consumes a parenthesized argument list,
// returning its raw surface text (the parentheses and their contents,
// honoring (), [], {} nesting) exactly as written.
func (p *Parser) scanBalancedParenText() (string, *errors.ParseError) {
	start := p.pos()
	depth := 0
	for {
		tok, err := p.peek()
		if err != nil {
			return "", errors.New(errors.Lexical, start, "unterminated attribute argument list")
		}
		if tok.Kind == token.EOF {
			return "", errors.New(errors.Lexical, start, "unterminated attribute argument list")
		}
		p.next()
		switch tok.Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			depth--
			if depth == 0 {
				return p.lex.Source().Content[start.StartPos : tok.Pos.StartPos+len(tok.Literal)], nil
			}
		}
	}
}

// parseModifiers parses zero or more declaration modifier keywords, the
// contextual-keyword family used in that role.
func (p *Parser) parseModifiers() []*ast.Modifier {
	var mods []*ast.Modifier
	for {
		tok, err := p.peek()
		if err != nil || tok.Kind != token.Keyword {
			break
		}
		if !isModifierKeyword(tok.Literal) {
			break
		}
		p.next()
		mods = append(mods, &ast.Modifier{Name: tok.Literal, Position: tok.Pos})
	}
	return mods
}

func isModifierKeyword(word string) bool {
	switch word {
	case "mutating", "nonmutating", "override", "required", "final",
		"dynamic", "convenience", "optional", "lazy", "weak", "unowned",
		"prefix", "postfix", "infix":
		return true
	}
	return false
}
