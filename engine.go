package dtransform

import (
	"fmt"

	"github.com/njchilds90/dtransform/sym"
)

// Engine is the narrow symbolic back end the spectrum delegates all
// calculus to. The core never differentiates or simplifies by hand; grid
// enumeration, convolution, and the division recurrence are independent of
// which engine performs the calculus.
type Engine interface {
	Parse(text string) (sym.Expr, error)
	Differentiate(e sym.Expr, variable string, order int) (sym.Expr, error)
	EvaluateAt(e sym.Expr, bindings map[string]sym.Expr) (sym.Expr, error)
	Simplify(e sym.Expr) sym.Expr
	Expand(e sym.Expr) sym.Expr
	Add(terms ...sym.Expr) sym.Expr
	Mul(factors ...sym.Expr) sym.Expr
	Pow(base sym.Expr, exp int) sym.Expr
	FreeVariables(e sym.Expr) []string
}

// DefaultEngine is the sym-kernel-backed engine used unless WithEngine
// overrides it.
var DefaultEngine Engine = kernelEngine{}

type kernelEngine struct{}

func (kernelEngine) Parse(text string) (sym.Expr, error) { return sym.Parse(text) }

func (kernelEngine) Differentiate(e sym.Expr, variable string, order int) (sym.Expr, error) {
	if order < 0 {
		return nil, fmt.Errorf("negative derivative order %d", order)
	}
	d := sym.DiffN(e, variable, order)
	if sym.HasUnresolved(d) {
		return nil, fmt.Errorf("derivative of order %d in %s is not supported for %s", order, variable, e)
	}
	return d, nil
}

func (kernelEngine) EvaluateAt(e sym.Expr, bindings map[string]sym.Expr) (sym.Expr, error) {
	v := sym.SubstAll(e, bindings)
	if sym.Undefined(v) {
		return nil, fmt.Errorf("expression %s is undefined at the given point", e)
	}
	return v, nil
}

func (kernelEngine) Simplify(e sym.Expr) sym.Expr { return sym.Simplify(e) }
func (kernelEngine) Expand(e sym.Expr) sym.Expr   { return sym.Expand(e) }

func (kernelEngine) Add(terms ...sym.Expr) sym.Expr   { return sym.Add(terms...) }
func (kernelEngine) Mul(factors ...sym.Expr) sym.Expr { return sym.Mul(factors...) }

func (kernelEngine) Pow(base sym.Expr, exp int) sym.Expr {
	return sym.Pow(base, sym.Int(int64(exp)))
}

func (kernelEngine) FreeVariables(e sym.Expr) []string {
	set := sym.FreeVars(e)
	return sortedNames(set)
}
