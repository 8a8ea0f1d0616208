package formula

import (
	"fmt"
	"strings"
)

// Parse проверяет лимиты и строит дерево выражения
//
// Грамматика:
//
//	expr    := term (('+'|'-') term)*
//	term    := unary (('*'|'/') unary)*
//	unary   := ('+'|'-')* primary
//	primary := number | identifier | '(' expr ')'
func Parse(src string, limits Limits) (*Expression, error) {
	limits = limits.withDefaults()

	if len(src) > limits.MaxLength {
		return nil, fmt.Errorf("%w: formula exceeds maximum length of %d characters", ErrLimitExceeded, limits.MaxLength)
	}
	if strings.TrimSpace(src) == "" {
		return nil, ErrNoFormula
	}

	tokens, err := tokenize(src)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens, maxDepth: limits.MaxDepth}
	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, &SyntaxError{Pos: tok.pos, Msg: fmt.Sprintf("unexpected %s", describe(tok))}
	}

	return &Expression{src: src, root: root}, nil
}

type parser struct {
	tokens   []token
	pos      int
	depth    int
	maxDepth int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) parseExpr() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokPlus && tok.kind != tokMinus {
			return left, nil
		}
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: tok.kind, left: left, right: right}
	}
}

func (p *parser) parseTerm() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokStar && tok.kind != tokSlash {
			return left, nil
		}
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: tok.kind, left: left, right: right}
	}
}

// parseUnary сворачивает цепочку знаков в цикле, чтобы "- - - - x" не расходовал стек
func (p *parser) parseUnary() (node, error) {
	negate := false
	signs := false
	for {
		tok := p.peek()
		if tok.kind == tokMinus {
			negate = !negate
		} else if tok.kind != tokPlus {
			break
		}
		signs = true
		p.next()
	}

	operand, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if !signs {
		return operand, nil
	}
	return &unaryNode{negate: negate, operand: operand}, nil
}

func (p *parser) parsePrimary() (node, error) {
	tok := p.next()
	switch tok.kind {
	case tokNumber:
		return &numberNode{value: tok.num}, nil
	case tokIdent:
		return &variableNode{key: tok.text}, nil
	case tokLParen:
		p.depth++
		if p.depth > p.maxDepth {
			return nil, fmt.Errorf("%w: formula exceeds maximum nesting depth of %d", ErrLimitExceeded, p.maxDepth)
		}
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		closing := p.next()
		if closing.kind != tokRParen {
			return nil, &SyntaxError{Pos: closing.pos, Msg: fmt.Sprintf("expected ')' but found %s", describe(closing))}
		}
		p.depth--
		return inner, nil
	default:
		return nil, &SyntaxError{Pos: tok.pos, Msg: fmt.Sprintf("expected number, identifier or '(' but found %s", describe(tok))}
	}
}

func describe(tok token) string {
	switch tok.kind {
	case tokNumber, tokIdent:
		return fmt.Sprintf("%s %q", tok.kind, tok.text)
	default:
		return tok.kind.String()
	}
}
