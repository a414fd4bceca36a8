package sym

import (
	"sort"
	"strings"
)

// Top-level convenience API.

func Simplify(e Expr) Expr { return e.Simplify() }

func Subst(e Expr, name string, value Expr) Expr {
	return e.Subst(name, value).Simplify()
}

// SubstAll substitutes every binding, in deterministic (sorted) order.
func SubstAll(e Expr, bindings map[string]Expr) Expr {
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		e = e.Subst(name, bindings[name])
	}
	return e.Simplify()
}

func Diff(e Expr, name string) Expr {
	return e.Diff(name).Simplify()
}

// DiffN differentiates n times with respect to name.
func DiffN(e Expr, name string, n int) Expr {
	for i := 0; i < n; i++ {
		e = Diff(e, name)
	}
	return e.Simplify()
}

// ============================================================
// Expansion
// ============================================================

// Expand distributes products over sums and expands small integer powers,
// then simplifies. Combined with like-term collection in Sum this yields a
// canonical form for polynomial expressions.
func Expand(e Expr) Expr { return expandExpr(e).Simplify() }

// expandExpr rewrites e as a flat sum of sum-free terms. Distribution works
// on term slices; a partial result never round-trips through Mul, which
// would fold repeated bases back into the power being expanded.
func expandExpr(e Expr) Expr {
	return Add(expandTerms(e)...)
}

// expandTerms returns the additive terms of the expanded form of e. Every
// returned term is free of sums, at the top level and inside products.
func expandTerms(e Expr) []Expr {
	switch v := e.(type) {
	case *Sum:
		var out []Expr
		for _, t := range v.terms {
			out = append(out, expandTerms(t)...)
		}
		return out
	case *Product:
		out := []Expr{Int(1)}
		for _, f := range v.factors {
			out = crossTerms(out, expandTerms(f))
		}
		return out
	case *Power:
		if n, ok := v.exp.(*Number); ok && n.IsInteger() {
			if exp := n.Int64(); exp >= 0 && exp <= 32 {
				base := expandTerms(v.base)
				out := []Expr{Int(1)}
				for i := int64(0); i < exp; i++ {
					out = crossTerms(out, base)
				}
				return out
			}
		}
		p := Pow(expandExpr(v.base), expandExpr(v.exp))
		if s, ok := p.(*Sum); ok {
			return append([]Expr(nil), s.terms...)
		}
		return []Expr{p}
	}
	return []Expr{e}
}

// crossTerms multiplies two term lists pairwise. The inputs are sum-free,
// so each product simplifies to a single sum-free term and needs no
// further distribution.
func crossTerms(a, b []Expr) []Expr {
	out := make([]Expr, 0, len(a)*len(b))
	for _, x := range a {
		for _, y := range b {
			out = append(out, Mul(x, y))
		}
	}
	return out
}

// ============================================================
// Free variables and diagnostics
// ============================================================

// FreeVars returns the set of variable names appearing in e.
func FreeVars(e Expr) map[string]struct{} {
	out := map[string]struct{}{}
	collectVars(e, out)
	return out
}

func collectVars(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Variable:
		out[v.name] = struct{}{}
	case *Sum:
		for _, t := range v.terms {
			collectVars(t, out)
		}
	case *Product:
		for _, f := range v.factors {
			collectVars(f, out)
		}
	case *Power:
		collectVars(v.base, out)
		collectVars(v.exp, out)
	case *Call:
		collectVars(v.arg, out)
	}
}

// HasUnresolved reports whether e contains a derivative placeholder left by
// differentiating an unknown function.
func HasUnresolved(e Expr) bool {
	switch v := e.(type) {
	case *Call:
		return strings.HasPrefix(v.name, unresolvedPrefix) || HasUnresolved(v.arg)
	case *Sum:
		for _, t := range v.terms {
			if HasUnresolved(t) {
				return true
			}
		}
	case *Product:
		for _, f := range v.factors {
			if HasUnresolved(f) {
				return true
			}
		}
	case *Power:
		return HasUnresolved(v.base) || HasUnresolved(v.exp)
	}
	return false
}

// Undefined reports whether e contains a subexpression with no defined
// value: a zero base raised to a non-positive numeric power, or the
// logarithm of a non-positive number.
func Undefined(e Expr) bool {
	switch v := e.(type) {
	case *Power:
		if bn, ok := v.base.(*Number); ok && bn.IsZero() {
			if en, ok2 := v.exp.(*Number); ok2 && en.Sign() <= 0 {
				return true
			}
		}
		return Undefined(v.base) || Undefined(v.exp)
	case *Call:
		if v.name == "ln" {
			if n, ok := v.arg.(*Number); ok && n.Sign() <= 0 {
				return true
			}
		}
		return Undefined(v.arg)
	case *Sum:
		for _, t := range v.terms {
			if Undefined(t) {
				return true
			}
		}
	case *Product:
		for _, f := range v.factors {
			if Undefined(f) {
				return true
			}
		}
	}
	return false
}
