package sym_test

import (
	"math"
	"strings"
	"testing"

	"github.com/njchilds90/dtransform/sym"
)

// ============================================================
// Number tests
// ============================================================

func TestNumber_Integer(t *testing.T) {
	n := sym.Int(42)
	if n.String() != "42" {
		t.Errorf("want 42, got %s", n.String())
	}
}

func TestNumber_Rational(t *testing.T) {
	n := sym.Frac(1, 3)
	if n.String() != "1/3" {
		t.Errorf("want 1/3, got %s", n.String())
	}
}

func TestNumber_RationalNormalized(t *testing.T) {
	n := sym.Frac(2, 4)
	if n.String() != "1/2" {
		t.Errorf("want 1/2, got %s", n.String())
	}
}

func TestNumber_PowInt_Negative(t *testing.T) {
	n := sym.Int(2).PowInt(-2)
	if n.String() != "1/4" {
		t.Errorf("2^-2 should be 1/4, got %s", n.String())
	}
}

func TestNumber_Diff_IsZero(t *testing.T) {
	d := sym.Diff(sym.Int(5), "x")
	if d.String() != "0" {
		t.Errorf("d/dx(5) should be 0, got %s", d.String())
	}
}

func TestNumber_Float_Exact(t *testing.T) {
	n := sym.Float(0.5)
	if n.String() != "1/2" {
		t.Errorf("0.5 should be exactly 1/2, got %s", n.String())
	}
}

// ============================================================
// Variable tests
// ============================================================

func TestVariable_String(t *testing.T) {
	if sym.Var("x").String() != "x" {
		t.Errorf("want x, got %s", sym.Var("x").String())
	}
}

func TestVariable_Subst_Match(t *testing.T) {
	r := sym.Subst(sym.Var("x"), "x", sym.Int(3))
	if r.String() != "3" {
		t.Errorf("want 3, got %s", r.String())
	}
}

func TestVariable_Subst_NoMatch(t *testing.T) {
	r := sym.Subst(sym.Var("x"), "y", sym.Int(3))
	if r.String() != "x" {
		t.Errorf("want x, got %s", r.String())
	}
}

func TestVariable_Diff(t *testing.T) {
	if sym.Diff(sym.Var("x"), "x").String() != "1" {
		t.Error("d/dx(x) should be 1")
	}
	if sym.Diff(sym.Var("y"), "x").String() != "0" {
		t.Error("d/dx(y) should be 0")
	}
}

// ============================================================
// Constant tests
// ============================================================

func TestPi_StaysSymbolic(t *testing.T) {
	e := sym.Add(sym.Pi(), sym.Int(1))
	if e.String() != "pi + 1" {
		t.Errorf("want 'pi + 1', got %s", e.String())
	}
}

func TestPi_Eval(t *testing.T) {
	v, ok := sym.Pi().Eval()
	if !ok || math.Abs(v.Float64()-math.Pi) > 1e-12 {
		t.Errorf("pi should evaluate to ~3.14159, got %v", v)
	}
}

// ============================================================
// Sum tests
// ============================================================

func TestSum_Simple(t *testing.T) {
	e := sym.Add(sym.Var("x"), sym.Int(3))
	if e.String() != "x + 3" {
		t.Errorf("want 'x + 3', got %s", e.String())
	}
}

func TestSum_CollapseToZero(t *testing.T) {
	e := sym.Add(sym.Int(1), sym.Int(-1))
	if e.String() != "0" {
		t.Errorf("want 0, got %s", e.String())
	}
}

func TestSum_LikeSymbols(t *testing.T) {
	e := sym.Add(sym.Var("x"), sym.Var("x"))
	if e.String() != "2*x" {
		t.Errorf("want '2*x', got %s", e.String())
	}
}

func TestSum_LikeMonomials(t *testing.T) {
	x, y := sym.Var("x"), sym.Var("y")
	e := sym.Add(sym.Mul(sym.Int(2), x, y), sym.Mul(sym.Int(3), y, x))
	if e.String() != "5*x*y" {
		t.Errorf("2xy + 3yx should collect to 5*x*y, got %s", e.String())
	}
}

func TestSum_CancellingMonomials(t *testing.T) {
	x := sym.Var("x")
	e := sym.Add(sym.Mul(sym.Int(2), x), sym.Mul(sym.Int(-2), x), sym.Int(7))
	if e.String() != "7" {
		t.Errorf("2x - 2x + 7 should be 7, got %s", e.String())
	}
}

func TestSum_SingleTermUnwraps(t *testing.T) {
	e := sym.Add(sym.Int(5))
	if e.String() != "5" {
		t.Errorf("single-term sum should unwrap, got %s", e.String())
	}
}

// ============================================================
// Product tests
// ============================================================

func TestProduct_Simple(t *testing.T) {
	e := sym.Mul(sym.Int(3), sym.Var("x"))
	if e.String() != "3*x" {
		t.Errorf("want '3*x', got %s", e.String())
	}
}

func TestProduct_ZeroCollapse(t *testing.T) {
	e := sym.Mul(sym.Int(0), sym.Var("x"))
	if e.String() != "0" {
		t.Errorf("0*x should be 0, got %s", e.String())
	}
}

func TestProduct_OneElide(t *testing.T) {
	e := sym.Mul(sym.Int(1), sym.Var("x"))
	if e.String() != "x" {
		t.Errorf("1*x should be x, got %s", e.String())
	}
}

func TestProduct_MergesRepeatedBase(t *testing.T) {
	x := sym.Var("x")
	e := sym.Mul(x, x)
	if e.String() != "x^2" {
		t.Errorf("x*x should be x^2, got %s", e.String())
	}
}

func TestProduct_MergesPowers(t *testing.T) {
	x := sym.Var("x")
	e := sym.Mul(sym.Pow(x, sym.Int(2)), sym.Pow(x, sym.Int(-1)))
	if e.String() != "x" {
		t.Errorf("x^2 * x^-1 should be x, got %s", e.String())
	}
}

func TestProduct_ProductRule(t *testing.T) {
	x, y := sym.Var("x"), sym.Var("y")
	d := sym.Diff(sym.Mul(x, y), "x")
	if d.String() != "y" {
		t.Errorf("d/dx(x*y) should be y, got %s", d.String())
	}
}

// ============================================================
// Power tests
// ============================================================

func TestPower_ZeroExp(t *testing.T) {
	e := sym.Pow(sym.Var("x"), sym.Int(0))
	if e.String() != "1" {
		t.Errorf("x^0 should be 1, got %s", e.String())
	}
}

func TestPower_OneExp(t *testing.T) {
	e := sym.Pow(sym.Var("x"), sym.Int(1))
	if e.String() != "x" {
		t.Errorf("x^1 should be x, got %s", e.String())
	}
}

func TestPower_NumericFold(t *testing.T) {
	e := sym.Pow(sym.Int(2), sym.Int(3))
	if e.String() != "8" {
		t.Errorf("2^3 should be 8, got %s", e.String())
	}
}

func TestPower_RationalFold(t *testing.T) {
	e := sym.Pow(sym.Frac(1, 2), sym.Int(2))
	if e.String() != "1/4" {
		t.Errorf("(1/2)^2 should be 1/4, got %s", e.String())
	}
}

func TestPower_Nested(t *testing.T) {
	e := sym.Pow(sym.Pow(sym.Var("x"), sym.Int(2)), sym.Int(3))
	if e.String() != "x^6" {
		t.Errorf("(x^2)^3 should be x^6, got %s", e.String())
	}
}

func TestPower_Diff_PowerRule(t *testing.T) {
	d := sym.Diff(sym.Pow(sym.Var("x"), sym.Int(3)), "x")
	if d.String() != "3*x^2" {
		t.Errorf("d/dx(x^3) should be 3*x^2, got %s", d.String())
	}
}

func TestPower_ZeroBaseNegativeExp_Unevaluated(t *testing.T) {
	e := sym.Pow(sym.Int(0), sym.Int(-1))
	if !sym.Undefined(e) {
		t.Errorf("0^-1 should be flagged undefined, got %s", e.String())
	}
}

// ============================================================
// Call tests
// ============================================================

func TestCall_SinZero(t *testing.T) {
	if sym.Sin(sym.Int(0)).String() != "0" {
		t.Error("sin(0) should be 0")
	}
}

func TestCall_CosZero(t *testing.T) {
	if sym.Cos(sym.Int(0)).String() != "1" {
		t.Error("cos(0) should be 1")
	}
}

func TestCall_SinOne_StaysExact(t *testing.T) {
	// Function values at general numeric arguments must stay symbolic so
	// spectrum coefficients remain exact.
	e := sym.Sin(sym.Int(1))
	if e.String() != "sin(1)" {
		t.Errorf("sin(1) should stay symbolic, got %s", e.String())
	}
}

func TestCall_SinDiff(t *testing.T) {
	d := sym.Diff(sym.Sin(sym.Var("x")), "x")
	if d.String() != "cos(x)" {
		t.Errorf("d/dx(sin(x)) should be cos(x), got %s", d.String())
	}
}

func TestCall_CosDiff(t *testing.T) {
	d := sym.Diff(sym.Cos(sym.Var("x")), "x")
	if !strings.Contains(d.String(), "sin") {
		t.Errorf("d/dx(cos(x)) should contain sin, got %s", d.String())
	}
}

func TestCall_ExpDiff(t *testing.T) {
	d := sym.Diff(sym.Exp(sym.Var("x")), "x")
	if d.String() != "exp(x)" {
		t.Errorf("d/dx(exp(x)) should be exp(x), got %s", d.String())
	}
}

func TestCall_LnExp_Cancels(t *testing.T) {
	e := sym.Ln(sym.Exp(sym.Var("x")))
	if e.String() != "x" {
		t.Errorf("ln(exp(x)) should be x, got %s", e.String())
	}
}

func TestCall_UnknownDerivative_Flagged(t *testing.T) {
	d := sym.Diff(sym.Abs(sym.Var("x")), "x")
	if !sym.HasUnresolved(d) {
		t.Errorf("d/dx(abs(x)) should carry an unresolved placeholder, got %s", d.String())
	}
}

func TestCall_Eval(t *testing.T) {
	v, ok := sym.Sin(sym.Int(1)).Eval()
	if !ok || math.Abs(v.Float64()-math.Sin(1)) > 1e-12 {
		t.Errorf("sin(1) should evaluate numerically to ~0.8415, got %v", v)
	}
}

// ============================================================
// Expand tests
// ============================================================

func TestExpand_Distribution(t *testing.T) {
	x := sym.Var("x")
	e := sym.Expand(sym.Mul(
		sym.Add(x, sym.Int(1)),
		sym.Add(x, sym.Int(2)),
	))
	if e.String() != "3*x + x^2 + 2" {
		t.Errorf("expanded (x+1)(x+2) should be 3*x + x^2 + 2, got %s", e.String())
	}
}

func TestExpand_IntegerPower(t *testing.T) {
	x := sym.Var("x")
	e := sym.Expand(sym.Pow(sym.Add(x, sym.Int(1)), sym.Int(2)))
	if e.String() != "2*x + x^2 + 1" {
		t.Errorf("expanded (x+1)^2 should be 2*x + x^2 + 1, got %s", e.String())
	}
}

func TestExpand_SquaredDifference(t *testing.T) {
	x := sym.Var("x")
	e := sym.Expand(sym.Pow(sym.Add(x, sym.Int(-1)), sym.Int(2)))
	if e.String() != "-2*x + x^2 + 1" {
		t.Errorf("expanded (x-1)^2 should be -2*x + x^2 + 1, got %s", e.String())
	}
}

func TestExpand_ProductRefoldedToPower(t *testing.T) {
	// Mul collapses a repeated sum base back into a power; Expand must
	// still distribute it instead of recursing forever.
	x := sym.Var("x")
	base := sym.Add(x, sym.Int(-1))
	e := sym.Expand(sym.Mul(base, base))
	if e.String() != "-2*x + x^2 + 1" {
		t.Errorf("expanded (x-1)*(x-1) should be -2*x + x^2 + 1, got %s", e.String())
	}
}

func TestExpand_Cube(t *testing.T) {
	x := sym.Var("x")
	e := sym.Expand(sym.Pow(sym.Add(x, sym.Int(1)), sym.Int(3)))
	if e.String() != "3*x + 3*x^2 + x^3 + 1" {
		t.Errorf("expanded (x+1)^3 should be 3*x + 3*x^2 + x^3 + 1, got %s", e.String())
	}
}

// ============================================================
// DiffN and SubstAll
// ============================================================

func TestDiffN(t *testing.T) {
	d := sym.DiffN(sym.Pow(sym.Var("x"), sym.Int(4)), "x", 4)
	if d.String() != "24" {
		t.Errorf("d^4/dx^4(x^4) should be 24, got %s", d.String())
	}
}

func TestSubstAll(t *testing.T) {
	x, y := sym.Var("x"), sym.Var("y")
	e := sym.Add(sym.Mul(x, y), x)
	r := sym.SubstAll(e, map[string]sym.Expr{"x": sym.Int(2), "y": sym.Int(3)})
	if r.String() != "8" {
		t.Errorf("x*y + x at (2,3) should be 8, got %s", r.String())
	}
}

// ============================================================
// FreeVars tests
// ============================================================

func TestFreeVars(t *testing.T) {
	e := sym.Add(sym.Var("x"), sym.Mul(sym.Var("y"), sym.Int(2)))
	vars := sym.FreeVars(e)
	if _, ok := vars["x"]; !ok {
		t.Error("expected x in free vars")
	}
	if _, ok := vars["y"]; !ok {
		t.Error("expected y in free vars")
	}
	if len(vars) != 2 {
		t.Errorf("expected 2 free vars, got %d", len(vars))
	}
}

func TestFreeVars_ConstantsExcluded(t *testing.T) {
	vars := sym.FreeVars(sym.Add(sym.Pi(), sym.Int(5)))
	if len(vars) != 0 {
		t.Errorf("pi + 5 should have no free vars, got %d", len(vars))
	}
}

// ============================================================
// Determinism test
// ============================================================

func TestDeterminism(t *testing.T) {
	build := func() string {
		return sym.Add(sym.Var("z"), sym.Var("a"), sym.Mul(sym.Var("m"), sym.Var("b")), sym.Int(1)).String()
	}
	first := build()
	for i := 0; i < 10; i++ {
		if got := build(); got != first {
			t.Fatalf("non-deterministic output on iteration %d: %s != %s", i, got, first)
		}
	}
}
