package dtransform

import "fmt"

// VariableMismatchError reports use of a variable outside the spectrum's
// declared variable list, or a scalar that depends on a declared variable.
type VariableMismatchError struct {
	Variable string
	Reason   string
}

func (e *VariableMismatchError) Error() string {
	return fmt.Sprintf("dtransform: variable %q: %s", e.Variable, e.Reason)
}

// IncompatibleSpectraError reports a binary operation between spectra that
// differ in variables, order, center, or scaling.
type IncompatibleSpectraError struct {
	Field string
}

func (e *IncompatibleSpectraError) Error() string {
	return "dtransform: incompatible spectra: " + e.Field + " mismatch"
}

// DivisionByZeroError reports division by a spectrum whose constant-term
// coefficient is zero, or by a zero scalar.
type DivisionByZeroError struct {
	Scalar bool
}

func (e *DivisionByZeroError) Error() string {
	if e.Scalar {
		return "dtransform: division by zero scalar"
	}
	return "dtransform: leading coefficient of denominator is zero"
}

// TransformError reports a failure of the symbolic engine while computing a
// spectrum coefficient.
type TransformError struct {
	Index    MultiIndex
	Variable string
	Err      error
}

func (e *TransformError) Error() string {
	if len(e.Index) > 0 {
		return fmt.Sprintf("dtransform: transform at index %s: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("dtransform: transform: %v", e.Err)
}

func (e *TransformError) Unwrap() error { return e.Err }
