package dtransform

import "github.com/njchilds90/dtransform/sym"

// Inverse reconstructs the symbolic expression the spectrum represents:
//
//	sum over k of C[k] * prod_i ((x_i - a_i) / H_i)^k_i
//
// expanded and simplified. Zero coefficients are absent from storage and
// contribute nothing. The spectrum is not modified.
func (s *Spectrum) Inverse() sym.Expr {
	var terms []sym.Expr
	for _, e := range s.Coefficients() {
		factors := []sym.Expr{e.Value}
		for i, v := range s.vars {
			if e.Index[i] == 0 {
				continue
			}
			shifted := s.engine.Add(sym.Var(v), s.engine.Mul(sym.Int(-1), s.Center(v)))
			basis := s.engine.Mul(shifted, s.engine.Pow(s.Scaling(v), -1))
			factors = append(factors, powN(s.engine, basis, e.Index[i]))
		}
		terms = append(terms, s.engine.Mul(factors...))
	}
	if len(terms) == 0 {
		return sym.Int(0)
	}
	return s.engine.Simplify(s.engine.Expand(s.engine.Add(terms...)))
}

func powN(eng Engine, base sym.Expr, n int) sym.Expr {
	if n == 1 {
		return base
	}
	return eng.Pow(base, n)
}
