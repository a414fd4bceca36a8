package sym

import (
	"fmt"
	"math/big"
	"strings"
	"unicode"
)

// Parse converts expression text into an Expr. Supported syntax: decimal
// and integer literals (decimals become exact rationals), identifiers, the
// constant pi, the built-in functions sin/cos/tan/exp/ln/sinh/cosh/tanh/
// abs/sqrt, parentheses, unary minus, and the operators + - * / with ^ or
// ** for exponentiation (right associative).
func Parse(text string) (Expr, error) {
	toks, err := lex(text)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	e, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, fmt.Errorf("sym: unexpected %q", p.peek().text)
	}
	return e.Simplify(), nil
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokNumber
	tokIdent
	tokOp     // + - * / ^
	tokLParen
	tokRParen
)

type token struct {
	kind tokKind
	text string
}

func lex(text string) ([]token, error) {
	var toks []token
	runes := []rune(text)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r) || r == '.':
			start := i
			seenDot := false
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.') {
				if runes[i] == '.' {
					if seenDot {
						return nil, fmt.Errorf("sym: malformed number %q", string(runes[start:i+1]))
					}
					seenDot = true
				}
				i++
			}
			toks = append(toks, token{kind: tokNumber, text: string(runes[start:i])})
		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			toks = append(toks, token{kind: tokIdent, text: string(runes[start:i])})
		case r == '(':
			toks = append(toks, token{kind: tokLParen, text: "("})
			i++
		case r == ')':
			toks = append(toks, token{kind: tokRParen, text: ")"})
			i++
		case r == '*':
			if i+1 < len(runes) && runes[i+1] == '*' {
				toks = append(toks, token{kind: tokOp, text: "^"})
				i += 2
			} else {
				toks = append(toks, token{kind: tokOp, text: "*"})
				i++
			}
		case strings.ContainsRune("+-/^", r):
			toks = append(toks, token{kind: tokOp, text: string(r)})
			i++
		default:
			return nil, fmt.Errorf("sym: unexpected character %q", string(r))
		}
	}
	toks = append(toks, token{kind: tokEOF})
	return toks, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) acceptOp(op string) bool {
	if t := p.peek(); t.kind == tokOp && t.text == op {
		p.pos++
		return true
	}
	return false
}

func (p *parser) parseSum() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.acceptOp("+"):
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = Add(left, right)
		case p.acceptOp("-"):
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = Add(left, Mul(Int(-1), right))
		default:
			return left, nil
		}
	}
}

func (p *parser) parseTerm() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.acceptOp("*"):
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = Mul(left, right)
		case p.acceptOp("/"):
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = Mul(left, Pow(right, Int(-1)))
		default:
			return left, nil
		}
	}
}

func (p *parser) parseUnary() (Expr, error) {
	if p.acceptOp("-") {
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Mul(Int(-1), e), nil
	}
	if p.acceptOp("+") {
		return p.parseUnary()
	}
	return p.parsePower()
}

func (p *parser) parsePower() (Expr, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.acceptOp("^") {
		// Right associative; unary minus in the exponent binds tighter
		// than a further ^, matching common CAS conventions.
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Pow(base, exp), nil
	}
	return base, nil
}

var builtinFuncs = map[string]func(Expr) Expr{
	"sin":  Sin,
	"cos":  Cos,
	"tan":  Tan,
	"exp":  Exp,
	"ln":   Ln,
	"log":  Ln,
	"sinh": Sinh,
	"cosh": Cosh,
	"tanh": Tanh,
	"abs":  Abs,
	"sqrt": Sqrt,
}

func (p *parser) parseAtom() (Expr, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		r, ok := new(big.Rat).SetString(t.text)
		if !ok {
			return nil, fmt.Errorf("sym: malformed number %q", t.text)
		}
		return ratNum(r), nil
	case tokIdent:
		if p.peek().kind == tokLParen {
			fn, ok := builtinFuncs[t.text]
			if !ok {
				return nil, fmt.Errorf("sym: unknown function %q", t.text)
			}
			p.next() // consume '('
			arg, err := p.parseSum()
			if err != nil {
				return nil, err
			}
			if p.next().kind != tokRParen {
				return nil, fmt.Errorf("sym: missing ) after %s(...", t.text)
			}
			return fn(arg), nil
		}
		if t.text == "pi" {
			return Pi(), nil
		}
		return Var(t.text), nil
	case tokLParen:
		e, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.next().kind != tokRParen {
			return nil, fmt.Errorf("sym: missing )")
		}
		return e, nil
	case tokEOF:
		return nil, fmt.Errorf("sym: unexpected end of expression")
	default:
		return nil, fmt.Errorf("sym: unexpected %q", t.text)
	}
}
