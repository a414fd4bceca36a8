// Package sym is a small deterministic symbolic kernel: exact rational
// arithmetic on math/big.Rat, rule-based simplification, differentiation,
// and substitution. Output is stable: identical input trees always render
// identically.
package sym

import (
	"math"
	"math/big"
)

// Expr is a symbolic expression node. All nodes are immutable; every
// operation returns a new tree.
type Expr interface {
	Simplify() Expr
	String() string
	Subst(name string, value Expr) Expr
	Diff(name string) Expr
	Eval() (*Number, bool)
	Equal(other Expr) bool
}

// ============================================================
// Number: exact rational
// ============================================================

type Number struct{ val *big.Rat }

func Int(n int64) *Number { return &Number{val: new(big.Rat).SetInt64(n)} }

func Frac(p, q int64) *Number {
	if q == 0 {
		panic("sym: zero denominator")
	}
	return &Number{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

func Float(f float64) *Number { return &Number{val: new(big.Rat).SetFloat64(f)} }

func ratNum(r *big.Rat) *Number { return &Number{val: r} }

func (n *Number) Simplify() Expr          { return n }
func (n *Number) Subst(string, Expr) Expr { return n }
func (n *Number) Diff(string) Expr        { return Int(0) }
func (n *Number) Eval() (*Number, bool)   { return n, true }
func (n *Number) Equal(other Expr) bool {
	o, ok := other.(*Number)
	return ok && n.val.Cmp(o.val) == 0
}

func (n *Number) IsZero() bool    { return n.val.Sign() == 0 }
func (n *Number) IsOne() bool     { return n.val.Cmp(ratOne) == 0 }
func (n *Number) IsInteger() bool { return n.val.IsInt() }
func (n *Number) Sign() int       { return n.val.Sign() }
func (n *Number) Float64() float64 {
	f, _ := n.val.Float64()
	return f
}
func (n *Number) Rat() *big.Rat { return new(big.Rat).Set(n.val) }

// Int64 returns the integer value; valid only when IsInteger reports true.
func (n *Number) Int64() int64 { return n.val.Num().Int64() }

func (n *Number) Add(o *Number) *Number { return ratNum(new(big.Rat).Add(n.val, o.val)) }
func (n *Number) Sub(o *Number) *Number { return ratNum(new(big.Rat).Sub(n.val, o.val)) }
func (n *Number) Mul(o *Number) *Number { return ratNum(new(big.Rat).Mul(n.val, o.val)) }
func (n *Number) Neg() *Number          { return ratNum(new(big.Rat).Neg(n.val)) }
func (n *Number) Cmp(o *Number) int     { return n.val.Cmp(o.val) }

func (n *Number) Div(o *Number) *Number {
	if o.IsZero() {
		panic("sym: division by zero")
	}
	return ratNum(new(big.Rat).Quo(n.val, o.val))
}

// PowInt raises n to an integer power, exactly. Panics for 0 raised to a
// non-positive power.
func (n *Number) PowInt(k int) *Number {
	if n.IsZero() && k <= 0 {
		panic("sym: zero base with non-positive exponent")
	}
	neg := k < 0
	if neg {
		k = -k
	}
	acc := Int(1)
	for i := 0; i < k; i++ {
		acc = acc.Mul(n)
	}
	if neg {
		return Int(1).Div(acc)
	}
	return acc
}

func (n *Number) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

var ratOne = new(big.Rat).SetInt64(1)

// ============================================================
// Variable: named symbol
// ============================================================

type Variable struct{ name string }

func Var(name string) *Variable { return &Variable{name: name} }

func (v *Variable) Name() string          { return v.name }
func (v *Variable) Simplify() Expr        { return v }
func (v *Variable) String() string        { return v.name }
func (v *Variable) Eval() (*Number, bool) { return nil, false }
func (v *Variable) Equal(other Expr) bool {
	o, ok := other.(*Variable)
	return ok && v.name == o.name
}

func (v *Variable) Subst(name string, value Expr) Expr {
	if v.name == name {
		return value
	}
	return v
}

func (v *Variable) Diff(name string) Expr {
	if v.name == name {
		return Int(1)
	}
	return Int(0)
}

// ============================================================
// Constant: named exact constant (pi)
// ============================================================

type Constant struct {
	name   string
	approx float64
}

var piConst = &Constant{name: "pi", approx: math.Pi}

// Pi returns the symbolic constant pi. It stays exact under Simplify and
// only becomes a float under Eval.
func Pi() Expr { return piConst }

func (c *Constant) Name() string            { return c.name }
func (c *Constant) Simplify() Expr          { return c }
func (c *Constant) String() string          { return c.name }
func (c *Constant) Subst(string, Expr) Expr { return c }
func (c *Constant) Diff(string) Expr        { return Int(0) }
func (c *Constant) Eval() (*Number, bool)   { return Float(c.approx), true }
func (c *Constant) Equal(other Expr) bool {
	o, ok := other.(*Constant)
	return ok && c.name == o.name
}
