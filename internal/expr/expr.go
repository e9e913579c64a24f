// Package expr evaluates arithmetic expressions over unit-tagged
// quantities. It is a deliberately small recursive-descent evaluator:
// the only syntax admitted is "+ - * / **", parentheses, numeric
// literals, and identifier lookups through a caller-supplied resolver.
// Function calls, attribute access, and every other construct are
// parse errors, which keeps the evaluation surface closed.
package expr

import (
	"fmt"
	"strconv"
	"unicode"

	"github.com/dimlab/dimcheck/internal/units"
)

// Resolver maps an identifier to a quantity. It is the only namespace
// an expression can see.
type Resolver func(name string) (units.Quantity, bool)

// Eval parses and evaluates src against the resolver.
func Eval(src string, resolve Resolver) (units.Quantity, error) {
	toks, err := lex(src)
	if err != nil {
		return units.Quantity{}, err
	}
	p := &parser{toks: toks, resolve: resolve}
	q, err := p.parseExpr()
	if err != nil {
		return units.Quantity{}, err
	}
	if tok := p.current(); tok.kind != tokEOF {
		return units.Quantity{}, fmt.Errorf("unexpected %q at offset %d", tok.text, tok.pos)
	}
	return q, nil
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPower
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '+':
			toks = append(toks, token{tokPlus, "+", i})
			i++
		case c == '-':
			toks = append(toks, token{tokMinus, "-", i})
			i++
		case c == '*':
			if i+1 < len(src) && src[i+1] == '*' {
				toks = append(toks, token{tokPower, "**", i})
				i += 2
			} else {
				toks = append(toks, token{tokStar, "*", i})
				i++
			}
		case c == '/':
			toks = append(toks, token{tokSlash, "/", i})
			i++
		case c == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i++
		case c >= '0' && c <= '9' || c == '.':
			start := i
			seenExp := false
			for i < len(src) {
				d := src[i]
				if d >= '0' && d <= '9' || d == '.' {
					i++
					continue
				}
				if (d == 'e' || d == 'E') && !seenExp && i+1 < len(src) &&
					(src[i+1] >= '0' && src[i+1] <= '9' || src[i+1] == '-' || src[i+1] == '+') {
					seenExp = true
					i += 2
					continue
				}
				break
			}
			toks = append(toks, token{tokNumber, src[start:i], start})
		case c == '_' || unicode.IsLetter(rune(c)):
			start := i
			for i < len(src) {
				r := rune(src[i])
				if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
					i++
					continue
				}
				break
			}
			toks = append(toks, token{tokIdent, src[start:i], start})
		default:
			return nil, fmt.Errorf("invalid character %q at offset %d", c, i)
		}
	}
	toks = append(toks, token{tokEOF, "", len(src)})
	return toks, nil
}

type parser struct {
	toks    []token
	pos     int
	resolve Resolver
}

func (p *parser) current() token { return p.toks[p.pos] }

func (p *parser) accept(kind tokenKind) (token, bool) {
	if tok := p.current(); tok.kind == kind {
		p.pos++
		return tok, true
	}
	return token{}, false
}

// parseExpr handles term { ("+"|"-") term }.
func (p *parser) parseExpr() (units.Quantity, error) {
	left, err := p.parseTerm()
	if err != nil {
		return units.Quantity{}, err
	}
	for {
		switch {
		case p.currentIs(tokPlus):
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return units.Quantity{}, err
			}
			left, err = left.Add(right)
			if err != nil {
				return units.Quantity{}, err
			}
		case p.currentIs(tokMinus):
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return units.Quantity{}, err
			}
			left, err = left.Sub(right)
			if err != nil {
				return units.Quantity{}, err
			}
		default:
			return left, nil
		}
	}
}

// parseTerm handles unary { ("*"|"/") unary }.
func (p *parser) parseTerm() (units.Quantity, error) {
	left, err := p.parseUnary()
	if err != nil {
		return units.Quantity{}, err
	}
	for {
		switch {
		case p.currentIs(tokStar):
			p.pos++
			right, err := p.parseUnary()
			if err != nil {
				return units.Quantity{}, err
			}
			left = left.Mul(right)
		case p.currentIs(tokSlash):
			p.pos++
			right, err := p.parseUnary()
			if err != nil {
				return units.Quantity{}, err
			}
			left = left.Div(right)
		default:
			return left, nil
		}
	}
}

// parseUnary handles a leading sign. "-x**2" negates the power, matching
// conventional precedence.
func (p *parser) parseUnary() (units.Quantity, error) {
	switch {
	case p.currentIs(tokMinus):
		p.pos++
		q, err := p.parseUnary()
		if err != nil {
			return units.Quantity{}, err
		}
		return q.Neg(), nil
	case p.currentIs(tokPlus):
		p.pos++
		return p.parseUnary()
	}
	return p.parsePower()
}

// parsePower handles primary [ "**" unary ], right-associative. The
// exponent must evaluate to a dimensionless quantity.
func (p *parser) parsePower() (units.Quantity, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return units.Quantity{}, err
	}
	if !p.currentIs(tokPower) {
		return base, nil
	}
	p.pos++
	exp, err := p.parseUnary()
	if err != nil {
		return units.Quantity{}, err
	}
	return base.Pow(exp)
}

func (p *parser) parsePrimary() (units.Quantity, error) {
	tok := p.current()
	switch tok.kind {
	case tokNumber:
		p.pos++
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return units.Quantity{}, fmt.Errorf("invalid number %q at offset %d", tok.text, tok.pos)
		}
		return units.Scalar(v), nil
	case tokIdent:
		p.pos++
		q, ok := p.resolve(tok.text)
		if !ok {
			return units.Quantity{}, fmt.Errorf("undefined symbol %q", tok.text)
		}
		return q, nil
	case tokLParen:
		p.pos++
		inner, err := p.parseExpr()
		if err != nil {
			return units.Quantity{}, err
		}
		if _, ok := p.accept(tokRParen); !ok {
			return units.Quantity{}, fmt.Errorf("missing closing parenthesis at offset %d", p.current().pos)
		}
		return inner, nil
	case tokEOF:
		return units.Quantity{}, fmt.Errorf("unexpected end of expression")
	default:
		return units.Quantity{}, fmt.Errorf("unexpected %q at offset %d", tok.text, tok.pos)
	}
}

func (p *parser) currentIs(kind tokenKind) bool {
	return p.toks[p.pos].kind == kind
}
