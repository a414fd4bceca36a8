package sym

import (
	"sort"
	"strings"
)

// ============================================================
// Sum: n-ary addition
// ============================================================

type Sum struct{ terms []Expr }

// Add builds the simplified sum of terms.
func Add(terms ...Expr) Expr { return (&Sum{terms: terms}).Simplify() }

func (s *Sum) Terms() []Expr { return s.terms }

// Simplify flattens nested sums and collects like terms: every term is
// split into a numeric coefficient and a monomial part, and coefficients
// of equal monomials are accumulated exactly.
func (s *Sum) Simplify() Expr {
	flat := make([]Expr, 0, len(s.terms))
	for _, t := range s.terms {
		st := t.Simplify()
		if inner, ok := st.(*Sum); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, st)
		}
	}

	type bucket struct {
		coeff *Number
		rest  Expr // nil for the pure-number bucket
	}
	buckets := map[string]*bucket{}
	keys := []string{}
	for _, t := range flat {
		coeff, rest := splitCoefficient(t)
		key := ""
		if rest != nil {
			key = rest.String()
		}
		b, seen := buckets[key]
		if !seen {
			b = &bucket{coeff: Int(0), rest: rest}
			buckets[key] = b
			keys = append(keys, key)
		}
		b.coeff = b.coeff.Add(coeff)
	}
	sort.Strings(keys)

	result := []Expr{}
	var numeric *Number
	for _, key := range keys {
		b := buckets[key]
		if b.coeff.IsZero() {
			continue
		}
		if b.rest == nil {
			numeric = b.coeff
			continue
		}
		result = append(result, attachCoefficient(b.coeff, b.rest))
	}
	if numeric != nil {
		result = append(result, numeric)
	}

	if len(result) == 0 {
		return Int(0)
	}
	if len(result) == 1 {
		return result[0]
	}
	return &Sum{terms: result}
}

// splitCoefficient separates a simplified term into its numeric coefficient
// and the remaining monomial (nil when the term is a plain number).
func splitCoefficient(t Expr) (*Number, Expr) {
	switch v := t.(type) {
	case *Number:
		return v, nil
	case *Product:
		if c, ok := v.factors[0].(*Number); ok {
			rest := v.factors[1:]
			if len(rest) == 1 {
				return c, rest[0]
			}
			return c, &Product{factors: rest}
		}
	}
	return Int(1), t
}

// attachCoefficient is the inverse of splitCoefficient for non-nil rests.
func attachCoefficient(c *Number, rest Expr) Expr {
	if c.IsOne() {
		return rest
	}
	if p, ok := rest.(*Product); ok {
		return &Product{factors: append([]Expr{c}, p.factors...)}
	}
	return &Product{factors: []Expr{c, rest}}
}

func (s *Sum) String() string {
	if len(s.terms) == 0 {
		return "0"
	}
	parts := make([]string, len(s.terms))
	for i, t := range s.terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " + ")
}

func (s *Sum) Subst(name string, value Expr) Expr {
	out := make([]Expr, len(s.terms))
	for i, t := range s.terms {
		out[i] = t.Subst(name, value)
	}
	return Add(out...)
}

func (s *Sum) Diff(name string) Expr {
	out := make([]Expr, len(s.terms))
	for i, t := range s.terms {
		out[i] = t.Diff(name)
	}
	return Add(out...)
}

func (s *Sum) Eval() (*Number, bool) {
	acc := Int(0)
	for _, t := range s.terms {
		v, ok := t.Eval()
		if !ok {
			return nil, false
		}
		acc = acc.Add(v)
	}
	return acc, true
}

func (s *Sum) Equal(other Expr) bool {
	o, ok := other.(*Sum)
	if !ok || len(s.terms) != len(o.terms) {
		return false
	}
	for i := range s.terms {
		if !s.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

// ============================================================
// Product: n-ary multiplication
// ============================================================

type Product struct{ factors []Expr }

// Mul builds the simplified product of factors.
func Mul(factors ...Expr) Expr { return (&Product{factors: factors}).Simplify() }

func (p *Product) Factors() []Expr { return p.factors }

// Simplify flattens nested products, folds all numeric factors into one
// leading coefficient, and merges repeated bases into powers: x*x -> x^2,
// x^2*x^-1 -> x.
func (p *Product) Simplify() Expr {
	flat := make([]Expr, 0, len(p.factors))
	for _, f := range p.factors {
		sf := f.Simplify()
		if inner, ok := sf.(*Product); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, sf)
		}
	}

	coeff := Int(1)
	type entry struct {
		base Expr
		exp  *Number
	}
	entries := map[string]*entry{}
	keys := []string{}
	for _, f := range flat {
		if n, ok := f.(*Number); ok {
			coeff = coeff.Mul(n)
			continue
		}
		base, exp := f, Int(1)
		if pw, ok := f.(*Power); ok {
			if e, ok2 := pw.exp.(*Number); ok2 {
				base, exp = pw.base, e
			}
		}
		key := base.String()
		e, seen := entries[key]
		if !seen {
			e = &entry{base: base, exp: Int(0)}
			entries[key] = e
			keys = append(keys, key)
		}
		e.exp = e.exp.Add(exp)
	}
	if coeff.IsZero() {
		return Int(0)
	}
	sort.Strings(keys)

	rest := []Expr{}
	for _, key := range keys {
		e := entries[key]
		if e.exp.IsZero() {
			continue
		}
		var f Expr
		if e.exp.IsOne() {
			f = e.base
		} else {
			f = Pow(e.base, e.exp)
		}
		if n, ok := f.(*Number); ok {
			coeff = coeff.Mul(n)
			continue
		}
		rest = append(rest, f)
	}
	if coeff.IsZero() {
		return Int(0)
	}

	if len(rest) == 0 {
		return coeff
	}
	if coeff.IsOne() {
		if len(rest) == 1 {
			return rest[0]
		}
		return &Product{factors: rest}
	}
	return &Product{factors: append([]Expr{coeff}, rest...)}
}

func (p *Product) String() string {
	if len(p.factors) == 0 {
		return "1"
	}
	parts := make([]string, len(p.factors))
	for i, f := range p.factors {
		if _, isSum := f.(*Sum); isSum {
			parts[i] = "(" + f.String() + ")"
		} else {
			parts[i] = f.String()
		}
	}
	return strings.Join(parts, "*")
}

func (p *Product) Subst(name string, value Expr) Expr {
	out := make([]Expr, len(p.factors))
	for i, f := range p.factors {
		out[i] = f.Subst(name, value)
	}
	return Mul(out...)
}

// Diff applies the product rule across all factors.
func (p *Product) Diff(name string) Expr {
	terms := make([]Expr, len(p.factors))
	for i, fi := range p.factors {
		parts := make([]Expr, 0, len(p.factors))
		parts = append(parts, fi.Diff(name))
		for j, fj := range p.factors {
			if j != i {
				parts = append(parts, fj)
			}
		}
		terms[i] = Mul(parts...)
	}
	return Add(terms...)
}

func (p *Product) Eval() (*Number, bool) {
	acc := Int(1)
	for _, f := range p.factors {
		v, ok := f.Eval()
		if !ok {
			return nil, false
		}
		acc = acc.Mul(v)
	}
	return acc, true
}

func (p *Product) Equal(other Expr) bool {
	o, ok := other.(*Product)
	if !ok || len(p.factors) != len(o.factors) {
		return false
	}
	for i := range p.factors {
		if !p.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

// ============================================================
// Power: base^exponent
// ============================================================

type Power struct{ base, exp Expr }

// Pow builds the simplified power base^exp.
func Pow(base, exp Expr) Expr { return (&Power{base: base, exp: exp}).Simplify() }

func (p *Power) Base() Expr     { return p.base }
func (p *Power) Exponent() Expr { return p.exp }

func (p *Power) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()

	if en, ok := exp.(*Number); ok {
		if en.IsZero() {
			if bn, ok2 := base.(*Number); ok2 && bn.IsZero() {
				// 0^0 stays unevaluated.
				return &Power{base: base, exp: exp}
			}
			return Int(1)
		}
		if en.IsOne() {
			return base
		}
	}

	if bn, ok := base.(*Number); ok {
		if bn.IsZero() {
			if en, ok2 := exp.(*Number); ok2 && en.Sign() > 0 {
				return Int(0)
			}
			// 0^negative and 0^symbolic stay unevaluated.
			return &Power{base: base, exp: exp}
		}
		if bn.IsOne() {
			return Int(1)
		}
		if en, ok2 := exp.(*Number); ok2 && en.IsInteger() {
			if e := en.Int64(); e >= -64 && e <= 64 {
				return bn.PowInt(int(e))
			}
		}
	}

	if inner, ok := base.(*Power); ok {
		if _, ok1 := inner.exp.(*Number); ok1 {
			if _, ok2 := exp.(*Number); ok2 {
				return Pow(inner.base, Mul(inner.exp, exp))
			}
		}
	}
	return &Power{base: base, exp: exp}
}

func (p *Power) String() string {
	baseStr := p.base.String()
	switch b := p.base.(type) {
	case *Sum, *Product:
		baseStr = "(" + baseStr + ")"
	case *Number:
		if b.Sign() < 0 || !b.IsInteger() {
			baseStr = "(" + baseStr + ")"
		}
	}
	expStr := p.exp.String()
	switch e := p.exp.(type) {
	case *Sum, *Product:
		expStr = "(" + expStr + ")"
	case *Number:
		if e.Sign() < 0 || !e.IsInteger() {
			expStr = "(" + expStr + ")"
		}
	}
	return baseStr + "^" + expStr
}

func (p *Power) Subst(name string, value Expr) Expr {
	return Pow(p.base.Subst(name, value), p.exp.Subst(name, value))
}

func (p *Power) Diff(name string) Expr {
	du := p.base.Diff(name)
	dv := p.exp.Diff(name)
	if _, expIsNum := p.exp.(*Number); expIsNum {
		// Power rule: d(u^c) = c*u^(c-1)*du.
		return Mul(p.exp, Pow(p.base, Add(p.exp, Int(-1))), du)
	}
	if _, baseIsNum := p.base.(*Number); baseIsNum {
		// d(c^v) = c^v * ln(c) * dv.
		return Mul(Pow(p.base, p.exp), Ln(p.base), dv)
	}
	// General case: d(u^v) = u^v * (dv*ln(u) + v*du/u).
	logTerm := Mul(dv, Ln(p.base))
	ratioTerm := Mul(p.exp, du, Pow(p.base, Int(-1)))
	return Mul(Pow(p.base, p.exp), Add(logTerm, ratioTerm))
}

func (p *Power) Eval() (*Number, bool) {
	b, ok1 := p.base.Eval()
	e, ok2 := p.exp.Eval()
	if !ok1 || !ok2 {
		return nil, false
	}
	if b.IsZero() && e.Sign() <= 0 {
		return nil, false
	}
	if e.IsInteger() {
		if v := e.Int64(); v >= -64 && v <= 64 {
			return b.PowInt(int(v)), true
		}
	}
	pf := powFloat(b.Float64(), e.Float64())
	if pf == nil {
		return nil, false
	}
	return pf, true
}

func (p *Power) Equal(other Expr) bool {
	o, ok := other.(*Power)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}
