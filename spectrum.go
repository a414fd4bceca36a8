// Package dtransform computes and manipulates multivariable Differential
// Transform Method (DTM) spectra: truncated multivariate Taylor expansions
// stored as exact symbolic coefficients indexed by multi-index, with
// addition, scalar multiplication, Cauchy-product convolution, division by
// recurrence, and inverse reconstruction back to a symbolic expression.
package dtransform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/njchilds90/dtransform/sym"
)

// Config collects construction parameters for a spectrum. Zero values mean:
// center 0 and scaling 1 per variable, variables derived from the
// expression, the default engine.
type Config struct {
	Order     int
	Center    map[string]sym.Expr
	Scaling   map[string]sym.Expr
	Variables []string
	Engine    Engine
}

// Option mutates a Config.
type Option func(*Config)

// DefaultOrder is the truncation order used when WithOrder is not given.
const DefaultOrder = 4

func defaultConfig() Config {
	return Config{Order: DefaultOrder, Engine: DefaultEngine}
}

// WithOrder sets the truncation order (maximum per-component index).
func WithOrder(order int) Option {
	return func(cfg *Config) { cfg.Order = order }
}

// WithCenter sets per-variable expansion points; unspecified variables
// expand around 0.
func WithCenter(center map[string]sym.Expr) Option {
	return func(cfg *Config) { cfg.Center = center }
}

// WithScaling sets per-variable positive scaling constants H; unspecified
// variables use 1.
func WithScaling(scaling map[string]sym.Expr) Option {
	return func(cfg *Config) { cfg.Scaling = scaling }
}

// WithVariables declares the ordered variable list explicitly instead of
// deriving it from the expression's free variables. The expression may use
// a subset of the declared variables, never more.
func WithVariables(names ...string) Option {
	return func(cfg *Config) { cfg.Variables = names }
}

// WithEngine overrides the symbolic back end.
func WithEngine(e Engine) Option {
	return func(cfg *Config) {
		if e != nil {
			cfg.Engine = e
		}
	}
}

// Spectrum holds the DTM coefficients of an expression around a center:
// coefficient C[k] = (H^k / k!) * (d^k f)(center), for every multi-index k
// in [0,order]^n. Storage is sparse; absent indices carry coefficient zero.
// A Spectrum is immutable once constructed.
type Spectrum struct {
	engine  Engine
	vars    []string
	order   int
	center  map[string]sym.Expr
	scaling map[string]sym.Expr
	coeffs  map[string]sym.Expr
}

// New parses text and computes its spectrum.
func New(text string, opts ...Option) (*Spectrum, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	expr, err := cfg.Engine.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("dtransform: parse %q: %w", text, err)
	}
	return fromExpr(expr, cfg)
}

// FromExpr computes the spectrum of an already-built expression.
func FromExpr(expr sym.Expr, opts ...Option) (*Spectrum, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return fromExpr(expr, cfg)
}

func fromExpr(expr sym.Expr, cfg Config) (*Spectrum, error) {
	if cfg.Order < 0 {
		return nil, fmt.Errorf("dtransform: order must be non-negative, got %d", cfg.Order)
	}
	eng := cfg.Engine
	if eng == nil {
		eng = DefaultEngine
	}

	free := eng.FreeVariables(expr)
	vars := cfg.Variables
	if vars == nil {
		vars = free
	} else {
		declared := map[string]bool{}
		for _, v := range vars {
			declared[v] = true
		}
		for _, v := range free {
			if !declared[v] {
				return nil, &VariableMismatchError{Variable: v, Reason: "appears in the expression but is not declared"}
			}
		}
	}

	center, err := perVariable(cfg.Center, vars, sym.Int(0), "center")
	if err != nil {
		return nil, err
	}
	scaling, err := perVariable(cfg.Scaling, vars, sym.Int(1), "scaling")
	if err != nil {
		return nil, err
	}
	for _, v := range vars {
		h, ok := scaling[v].(*sym.Number)
		if !ok || h.Sign() <= 0 {
			return nil, fmt.Errorf("dtransform: scaling constant for %q must be a positive number", v)
		}
	}

	s := &Spectrum{
		engine:  eng,
		vars:    vars,
		order:   cfg.Order,
		center:  center,
		scaling: scaling,
		coeffs:  map[string]sym.Expr{},
	}
	if err := s.transform(expr); err != nil {
		return nil, err
	}
	return s, nil
}

// perVariable validates the given map against the variable list and fills
// defaults for unspecified variables.
func perVariable(given map[string]sym.Expr, vars []string, def sym.Expr, what string) (map[string]sym.Expr, error) {
	inVars := map[string]bool{}
	for _, v := range vars {
		inVars[v] = true
	}
	for name := range given {
		if !inVars[name] {
			return nil, &VariableMismatchError{Variable: name, Reason: "named in " + what + " but not a spectrum variable"}
		}
	}
	out := make(map[string]sym.Expr, len(vars))
	for _, v := range vars {
		if val, ok := given[v]; ok && val != nil {
			out[v] = sym.Simplify(val)
		} else {
			out[v] = def
		}
	}
	return out, nil
}

// transform fills the coefficient map: for every grid index k, the mixed
// partial derivative of order k evaluated at the center, normalized by
// H^k / k!. Only non-zero simplified values are stored.
func (s *Spectrum) transform(expr sym.Expr) error {
	for _, k := range s.grid().Indices() {
		d := expr
		for i, v := range s.vars {
			var err error
			d, err = s.engine.Differentiate(d, v, k[i])
			if err != nil {
				return &TransformError{Index: k, Variable: v, Err: err}
			}
		}
		val, err := s.engine.EvaluateAt(d, s.center)
		if err != nil {
			return &TransformError{Index: k, Err: err}
		}
		c := s.engine.Simplify(s.engine.Mul(val, s.weight(k)))
		if !isZeroExpr(c) {
			s.coeffs[k.Key()] = c
		}
	}
	return nil
}

// weight is the exact normalization factor H^k / k!.
func (s *Spectrum) weight(k MultiIndex) *sym.Number {
	w := sym.Int(1)
	for i, v := range s.vars {
		h := s.scaling[v].(*sym.Number)
		w = w.Mul(h.PowInt(k[i])).Div(factorial(k[i]))
	}
	return w
}

func factorial(n int) *sym.Number {
	acc := sym.Int(1)
	for i := int64(2); i <= int64(n); i++ {
		acc = acc.Mul(sym.Int(i))
	}
	return acc
}

func isZeroExpr(e sym.Expr) bool {
	n, ok := e.(*sym.Number)
	return ok && n.IsZero()
}

func sortedNames(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (s *Spectrum) grid() Grid { return Grid{Vars: len(s.vars), Order: s.order} }

// Variables returns the ordered variable list.
func (s *Spectrum) Variables() []string {
	out := make([]string, len(s.vars))
	copy(out, s.vars)
	return out
}

// Order returns the truncation order.
func (s *Spectrum) Order() int { return s.order }

// Center returns the expansion point of the given variable (0 by default).
func (s *Spectrum) Center(variable string) sym.Expr {
	if c, ok := s.center[variable]; ok {
		return c
	}
	return sym.Int(0)
}

// Scaling returns the scaling constant of the given variable (1 by default).
func (s *Spectrum) Scaling(variable string) sym.Expr {
	if h, ok := s.scaling[variable]; ok {
		return h
	}
	return sym.Int(1)
}

// Coefficient returns the coefficient at k. Indices outside [0,order]^n
// carry coefficient zero; this is the truncation boundary, not an error.
func (s *Spectrum) Coefficient(k MultiIndex) sym.Expr {
	if len(k) == len(s.vars) {
		if c, ok := s.coeffs[k.Key()]; ok {
			return c
		}
	}
	return sym.Int(0)
}

// Entry is one non-zero coefficient of a spectrum.
type Entry struct {
	Index MultiIndex
	Value sym.Expr
}

// Coefficients returns the non-zero entries in grid (degree-ascending,
// lexicographic) order.
func (s *Spectrum) Coefficients() []Entry {
	var out []Entry
	for _, k := range s.grid().Indices() {
		if c, ok := s.coeffs[k.Key()]; ok {
			out = append(out, Entry{Index: k, Value: c})
		}
	}
	return out
}

// DisplayCoefficients renders the non-zero coefficients, one per line, in
// grid order.
func (s *Spectrum) DisplayCoefficients() string {
	var b strings.Builder
	for _, e := range s.Coefficients() {
		fmt.Fprintf(&b, "Spectrum[%s] = %s\n", e.Index, e.Value)
	}
	return b.String()
}

// Clone returns an independent copy.
func (s *Spectrum) Clone() *Spectrum {
	n := s.shell()
	for k, v := range s.coeffs {
		n.coeffs[k] = v
	}
	return n
}

// shell returns an empty spectrum sharing variables, order, center, and
// scaling with s. Results of arithmetic operations start from a shell.
func (s *Spectrum) shell() *Spectrum {
	return &Spectrum{
		engine:  s.engine,
		vars:    s.vars,
		order:   s.order,
		center:  s.center,
		scaling: s.scaling,
		coeffs:  map[string]sym.Expr{},
	}
}

// Equal reports whether the two spectra agree in variables, order, center,
// scaling, and every coefficient.
func (s *Spectrum) Equal(o *Spectrum) bool {
	if o == nil || s.order != o.order || len(s.vars) != len(o.vars) {
		return false
	}
	for i := range s.vars {
		if s.vars[i] != o.vars[i] {
			return false
		}
	}
	for _, v := range s.vars {
		if !s.Center(v).Equal(o.Center(v)) || !s.Scaling(v).Equal(o.Scaling(v)) {
			return false
		}
	}
	if len(s.coeffs) != len(o.coeffs) {
		return false
	}
	for k, c := range s.coeffs {
		oc, ok := o.coeffs[k]
		if !ok || !c.Equal(oc) {
			return false
		}
	}
	return true
}

func (s *Spectrum) String() string {
	centers := make([]string, len(s.vars))
	scalings := make([]string, len(s.vars))
	for i, v := range s.vars {
		centers[i] = v + ": " + s.Center(v).String()
		scalings[i] = v + ": " + s.Scaling(v).String()
	}
	return fmt.Sprintf("Spectrum(variables=[%s], order=%d, center={%s}, scaling={%s})",
		strings.Join(s.vars, " "), s.order,
		strings.Join(centers, ", "), strings.Join(scalings, ", "))
}
