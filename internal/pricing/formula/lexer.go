package formula

import (
	"fmt"
	"strconv"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokLParen
	tokRParen
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of formula"
	case tokNumber:
		return "number"
	case tokIdent:
		return "identifier"
	case tokPlus:
		return "'+'"
	case tokMinus:
		return "'-'"
	case tokStar:
		return "'*'"
	case tokSlash:
		return "'/'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	default:
		return "unknown token"
	}
}

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// tokenize разбивает формулу на токены; последний токен всегда tokEOF
func tokenize(src string) ([]token, error) {
	tokens := make([]token, 0, len(src)/2+1)

	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case isSpace(c):
			i++
		case isDigit(c) || c == '.':
			start := i
			dots := 0
			digits := 0
			for i < len(src) && (isDigit(src[i]) || src[i] == '.') {
				if src[i] == '.' {
					dots++
				} else {
					digits++
				}
				i++
			}
			text := src[start:i]
			if dots > 1 || digits == 0 {
				return nil, &SyntaxError{Pos: start, Msg: fmt.Sprintf("malformed number %q", text)}
			}
			// 2e5 и 2x не допускаются: число не может переходить в идентификатор
			if i < len(src) && isIdentStart(src[i]) {
				return nil, &SyntaxError{Pos: i, Msg: fmt.Sprintf("unexpected character %q after number", src[i])}
			}
			n, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, &SyntaxError{Pos: start, Msg: fmt.Sprintf("malformed number %q", text)}
			}
			tokens = append(tokens, token{kind: tokNumber, text: text, num: n, pos: start})
		case isIdentStart(c):
			start := i
			for i < len(src) && isIdentPart(src[i]) {
				i++
			}
			tokens = append(tokens, token{kind: tokIdent, text: src[start:i], pos: start})
		default:
			kind, ok := operatorKinds[c]
			if !ok {
				return nil, &SyntaxError{Pos: i, Msg: fmt.Sprintf("unexpected character %q", c)}
			}
			tokens = append(tokens, token{kind: kind, text: string(c), pos: i})
			i++
		}
	}

	return append(tokens, token{kind: tokEOF, pos: len(src)}), nil
}

var operatorKinds = map[byte]tokenKind{
	'+': tokPlus,
	'-': tokMinus,
	'*': tokStar,
	'/': tokSlash,
	'(': tokLParen,
	')': tokRParen,
}

// ReferencedIdentifiers возвращает идентификаторы формулы в порядке появления (без повторов)
// Формула только токенизируется, поэтому работает и для формул с ошибками вложенности
func ReferencedIdentifiers(src string) ([]string, error) {
	tokens, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	idents := make([]string, 0)
	for _, t := range tokens {
		if t.kind != tokIdent {
			continue
		}
		if _, ok := seen[t.text]; ok {
			continue
		}
		seen[t.text] = struct{}{}
		idents = append(idents, t.text)
	}
	return idents, nil
}
