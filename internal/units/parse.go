package units

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParseUnit parses a pure unit expression into a quantity of magnitude 1.
// The grammar admits unit names, "*", "/", "**" with a numeric exponent,
// and parentheses; scalar factors are rejected so that "9.81*meter" fails
// here and falls through to full expression evaluation.
func ParseUnit(s string) (Quantity, error) {
	p := &unitParser{src: s}
	u, err := p.parseTerm()
	if err != nil {
		return Quantity{}, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return Quantity{}, fmt.Errorf("unexpected %q at offset %d in unit %q", p.src[p.pos], p.pos, s)
	}
	return Quantity{Magnitude: 1, units: u}, nil
}

type unitParser struct {
	src string
	pos int
}

// parseTerm handles factor { ("*"|"/") factor }.
func (p *unitParser) parseTerm() (map[string]float64, error) {
	u, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if p.peek("**") {
			return nil, fmt.Errorf("misplaced exponent at offset %d in unit %q", p.pos, p.src)
		}
		switch {
		case p.accept("*"):
			next, err := p.parseFactor()
			if err != nil {
				return nil, err
			}
			u = combine(u, next, 1)
		case p.accept("/"):
			next, err := p.parseFactor()
			if err != nil {
				return nil, err
			}
			u = combine(u, next, -1)
		default:
			return u, nil
		}
	}
}

// parseFactor handles a unit name or parenthesized term, optionally
// raised to a numeric exponent.
func (p *unitParser) parseFactor() (map[string]float64, error) {
	p.skipSpace()
	var u map[string]float64
	switch {
	case p.accept("("):
		inner, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if !p.accept(")") {
			return nil, fmt.Errorf("missing closing parenthesis in unit %q", p.src)
		}
		u = inner
	default:
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		canonical, _, ok := resolve(name)
		if !ok {
			return nil, fmt.Errorf("unknown unit %q", name)
		}
		u = map[string]float64{canonical: 1}
	}

	p.skipSpace()
	if p.accept("**") {
		exp, err := p.parseExponent()
		if err != nil {
			return nil, err
		}
		scaled := make(map[string]float64, len(u))
		for name, e := range u {
			if v := e * exp; !negligible(v) {
				scaled[name] = v
			}
		}
		u = scaled
	}
	return u, nil
}

func (p *unitParser) parseName() (string, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		r := rune(p.src[p.pos])
		if r == '_' || unicode.IsLetter(r) || (p.pos > start && unicode.IsDigit(r)) {
			p.pos++
			continue
		}
		break
	}
	if p.pos == start {
		return "", fmt.Errorf("expected unit name at offset %d in %q", p.pos, p.src)
	}
	return p.src[start:p.pos], nil
}

func (p *unitParser) parseExponent() (float64, error) {
	p.skipSpace()
	start := p.pos
	if p.pos < len(p.src) && (p.src[p.pos] == '-' || p.src[p.pos] == '+') {
		p.pos++
	}
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '.' || (c >= '0' && c <= '9') {
			p.pos++
			continue
		}
		break
	}
	text := p.src[start:p.pos]
	exp, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid exponent %q in unit %q", text, p.src)
	}
	return exp, nil
}

func (p *unitParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *unitParser) accept(tok string) bool {
	if strings.HasPrefix(p.src[p.pos:], tok) {
		p.pos += len(tok)
		return true
	}
	return false
}

func (p *unitParser) peek(tok string) bool {
	return strings.HasPrefix(p.src[p.pos:], tok)
}
