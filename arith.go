package dtransform

import "github.com/njchilds90/dtransform/sym"

// compatible verifies the operands agree in variables, order, center, and
// scaling. Any mismatch is a hard error, never silently resolved.
func (s *Spectrum) compatible(o *Spectrum) error {
	if len(s.vars) != len(o.vars) {
		return &IncompatibleSpectraError{Field: "variables"}
	}
	for i := range s.vars {
		if s.vars[i] != o.vars[i] {
			return &IncompatibleSpectraError{Field: "variables"}
		}
	}
	if s.order != o.order {
		return &IncompatibleSpectraError{Field: "order"}
	}
	for _, v := range s.vars {
		if !s.Center(v).Equal(o.Center(v)) {
			return &IncompatibleSpectraError{Field: "center"}
		}
		if !s.Scaling(v).Equal(o.Scaling(v)) {
			return &IncompatibleSpectraError{Field: "scaling"}
		}
	}
	return nil
}

// Add returns the spectrum with (s+o)[k] = s[k] + o[k].
func (s *Spectrum) Add(o *Spectrum) (*Spectrum, error) {
	return s.combine(o, 1)
}

// Sub returns the spectrum with (s-o)[k] = s[k] - o[k].
func (s *Spectrum) Sub(o *Spectrum) (*Spectrum, error) {
	return s.combine(o, -1)
}

func (s *Spectrum) combine(o *Spectrum, sign int64) (*Spectrum, error) {
	if err := s.compatible(o); err != nil {
		return nil, err
	}
	res := s.shell()
	keys := map[string]bool{}
	for k := range s.coeffs {
		keys[k] = true
	}
	for k := range o.coeffs {
		keys[k] = true
	}
	for k := range keys {
		a, aok := s.coeffs[k]
		b, bok := o.coeffs[k]
		var c sym.Expr
		switch {
		case aok && bok:
			c = s.engine.Simplify(s.engine.Add(a, s.engine.Mul(sym.Int(sign), b)))
		case aok:
			c = a
		default:
			c = s.engine.Simplify(s.engine.Mul(sym.Int(sign), b))
		}
		if !isZeroExpr(c) {
			res.coeffs[k] = c
		}
	}
	return res, nil
}

// Neg returns the spectrum with every coefficient negated.
func (s *Spectrum) Neg() *Spectrum {
	res := s.shell()
	for k, c := range s.coeffs {
		res.coeffs[k] = s.engine.Simplify(s.engine.Mul(sym.Int(-1), c))
	}
	return res
}

// Scale multiplies every coefficient by the scalar c. The scalar must not
// depend on the spectrum's variables: a variable-dependent scalar would
// break the Taylor-coefficient semantics, so it is rejected.
func (s *Spectrum) Scale(c sym.Expr) (*Spectrum, error) {
	if err := s.checkScalar(c); err != nil {
		return nil, err
	}
	res := s.shell()
	for k, v := range s.coeffs {
		p := s.engine.Simplify(s.engine.Mul(c, v))
		if !isZeroExpr(p) {
			res.coeffs[k] = p
		}
	}
	return res, nil
}

// DivScale divides every coefficient by the scalar c.
func (s *Spectrum) DivScale(c sym.Expr) (*Spectrum, error) {
	if err := s.checkScalar(c); err != nil {
		return nil, err
	}
	if isZeroExpr(sym.Simplify(c)) {
		return nil, &DivisionByZeroError{Scalar: true}
	}
	return s.Scale(s.engine.Pow(c, -1))
}

func (s *Spectrum) checkScalar(c sym.Expr) error {
	free := map[string]bool{}
	for _, v := range s.engine.FreeVariables(c) {
		free[v] = true
	}
	for _, v := range s.vars {
		if free[v] {
			return &VariableMismatchError{Variable: v, Reason: "scalar depends on a spectrum variable"}
		}
	}
	return nil
}

// Mul returns the Cauchy-product convolution: (s·o)[k] = sum over i+j=k of
// s[i]·o[j], with indices outside [0,order]^n dropped (truncation at the
// declared order, as in finite Taylor-series multiplication).
func (s *Spectrum) Mul(o *Spectrum) (*Spectrum, error) {
	if err := s.compatible(o); err != nil {
		return nil, err
	}
	res := s.shell()
	g := s.grid()
	idxs := g.Indices()
	acc := map[string][]sym.Expr{}
	for _, i := range idxs {
		a, ok := s.coeffs[i.Key()]
		if !ok {
			continue
		}
		for _, j := range idxs {
			b, ok := o.coeffs[j.Key()]
			if !ok {
				continue
			}
			k := make(MultiIndex, len(i))
			for c := range i {
				k[c] = i[c] + j[c]
			}
			if !g.Within(k) {
				continue
			}
			acc[k.Key()] = append(acc[k.Key()], s.engine.Mul(a, b))
		}
	}
	for k, terms := range acc {
		c := s.engine.Simplify(s.engine.Add(terms...))
		if !isZeroExpr(c) {
			res.coeffs[k] = c
		}
	}
	return res, nil
}

// Div returns the quotient spectrum defined by the recurrence
//
//	C[0] = s[0] / o[0]
//	C[k] = (s[k] - sum_{i+j=k, i!=0} o[i]*C[j]) / o[0]
//
// solved in grid order. Every C[j] the sum reads has strictly lower degree
// than k, so walking the grid in degree-ascending order guarantees it is
// already known.
func (s *Spectrum) Div(o *Spectrum) (*Spectrum, error) {
	if err := s.compatible(o); err != nil {
		return nil, err
	}
	g := s.grid()
	zero := make(MultiIndex, len(s.vars))
	b0, ok := o.coeffs[zero.Key()]
	if !ok || isZeroExpr(sym.Simplify(b0)) {
		return nil, &DivisionByZeroError{}
	}
	res := s.shell()
	b0inv := s.engine.Pow(b0, -1)
	idxs := g.Indices()
	for _, k := range idxs {
		terms := []sym.Expr{s.Coefficient(k)}
		for _, i := range idxs {
			if i.IsZero() || !i.LessEqual(k) {
				continue
			}
			bi, ok := o.coeffs[i.Key()]
			if !ok {
				continue
			}
			cj, ok := res.coeffs[k.Sub(i).Key()]
			if !ok {
				continue
			}
			terms = append(terms, s.engine.Mul(sym.Int(-1), bi, cj))
		}
		c := s.engine.Simplify(s.engine.Mul(s.engine.Add(terms...), b0inv))
		if !isZeroExpr(c) {
			res.coeffs[k.Key()] = c
		}
	}
	return res, nil
}
