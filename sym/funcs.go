package sym

import "math"

// ============================================================
// Call: named single-argument function application
// ============================================================

type Call struct {
	name string
	arg  Expr
}

func call(name string, arg Expr) *Call { return &Call{name: name, arg: arg} }

func Sin(arg Expr) Expr  { return call("sin", arg).Simplify() }
func Cos(arg Expr) Expr  { return call("cos", arg).Simplify() }
func Tan(arg Expr) Expr  { return call("tan", arg).Simplify() }
func Exp(arg Expr) Expr  { return call("exp", arg).Simplify() }
func Ln(arg Expr) Expr   { return call("ln", arg).Simplify() }
func Sinh(arg Expr) Expr { return call("sinh", arg).Simplify() }
func Cosh(arg Expr) Expr { return call("cosh", arg).Simplify() }
func Tanh(arg Expr) Expr { return call("tanh", arg).Simplify() }
func Abs(arg Expr) Expr  { return call("abs", arg).Simplify() }
func Sqrt(arg Expr) Expr { return Pow(arg, Frac(1, 2)) }

func (c *Call) FuncName() string { return c.name }
func (c *Call) Arg() Expr        { return c.arg }

// Simplify applies only exact rewrites. Function values at general numeric
// arguments stay symbolic (sin(1) remains sin(1)) so downstream arithmetic
// keeps exact coefficients.
func (c *Call) Simplify() Expr {
	arg := c.arg.Simplify()
	switch c.name {
	case "sin", "tan", "sinh", "tanh":
		if isZeroNum(arg) {
			return Int(0)
		}
	case "cos", "cosh":
		if isZeroNum(arg) {
			return Int(1)
		}
	case "exp":
		if isZeroNum(arg) {
			return Int(1)
		}
		if inner, ok := arg.(*Call); ok && inner.name == "ln" {
			return inner.arg
		}
	case "ln":
		if n, ok := arg.(*Number); ok && n.IsOne() {
			return Int(0)
		}
		if inner, ok := arg.(*Call); ok && inner.name == "exp" {
			return inner.arg
		}
	case "abs":
		if n, ok := arg.(*Number); ok {
			if n.Sign() < 0 {
				return n.Neg()
			}
			return n
		}
		if p, ok := arg.(*Product); ok && len(p.factors) >= 2 {
			if n, ok2 := p.factors[0].(*Number); ok2 && n.Sign() < 0 {
				rest := append([]Expr{n.Neg()}, p.factors[1:]...)
				return Abs(Mul(rest...))
			}
		}
	}
	return &Call{name: c.name, arg: arg}
}

func isZeroNum(e Expr) bool {
	n, ok := e.(*Number)
	return ok && n.IsZero()
}

func (c *Call) String() string { return c.name + "(" + c.arg.String() + ")" }

func (c *Call) Subst(name string, value Expr) Expr {
	return call(c.name, c.arg.Subst(name, value)).Simplify()
}

func (c *Call) Diff(name string) Expr {
	du := c.arg.Diff(name)
	var outer Expr
	switch c.name {
	case "sin":
		outer = Cos(c.arg)
	case "cos":
		outer = Mul(Int(-1), Sin(c.arg))
	case "tan":
		outer = Add(Int(1), Pow(Tan(c.arg), Int(2)))
	case "exp":
		outer = Exp(c.arg)
	case "ln":
		outer = Pow(c.arg, Int(-1))
	case "sinh":
		outer = Cosh(c.arg)
	case "cosh":
		outer = Sinh(c.arg)
	case "tanh":
		outer = Add(Int(1), Mul(Int(-1), Pow(Tanh(c.arg), Int(2))))
	default:
		// Unknown function: emit a placeholder the caller can detect
		// through HasUnresolved.
		return Mul(call(unresolvedPrefix+c.name+"]", c.arg), du)
	}
	return Mul(outer, du)
}

func (c *Call) Eval() (*Number, bool) {
	n, ok := c.arg.Eval()
	if !ok {
		return nil, false
	}
	v := n.Float64()
	switch c.name {
	case "sin":
		return Float(math.Sin(v)), true
	case "cos":
		return Float(math.Cos(v)), true
	case "tan":
		return Float(math.Tan(v)), true
	case "exp":
		return Float(math.Exp(v)), true
	case "ln":
		if v <= 0 {
			return nil, false
		}
		return Float(math.Log(v)), true
	case "sinh":
		return Float(math.Sinh(v)), true
	case "cosh":
		return Float(math.Cosh(v)), true
	case "tanh":
		return Float(math.Tanh(v)), true
	case "abs":
		return Float(math.Abs(v)), true
	}
	return nil, false
}

func (c *Call) Equal(other Expr) bool {
	o, ok := other.(*Call)
	return ok && c.name == o.name && c.arg.Equal(o.arg)
}

const unresolvedPrefix = "D["

func powFloat(b, e float64) *Number {
	f := math.Pow(b, e)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return Float(f)
}
