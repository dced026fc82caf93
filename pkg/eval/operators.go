package eval

import (
	"math/big"

	"github.com/janelang/shji/pkg/runtime"
	"github.com/janelang/shji/pkg/token"
)

// prefixOp applies a unary operator to an evaluated operand.
func prefixOp(tok token.Token, op string, right runtime.Value) (runtime.Value, error) {
	switch op {
	case "!":
		switch r := right.(type) {
		case runtime.Bool:
			return !r, nil
		case runtime.AbyssValue:
			return runtime.Bool(true), nil
		default:
			return nil, newError(tok, ErrImplicitBool, right.Kind())
		}
	case "-":
		return negate(tok, right)
	default:
		return nil, newError(tok, ErrUnknownOperator, op)
	}
}

// negate is defined over every signed kind. Integer negation wraps.
func negate(tok token.Token, v runtime.Value) (runtime.Value, error) {
	switch v := v.(type) {
	case runtime.Int8:
		return -v, nil
	case runtime.Int16:
		return -v, nil
	case runtime.Int32:
		return -v, nil
	case runtime.Int64:
		return -v, nil
	case runtime.Int128:
		return runtime.NewInt128(new(big.Int).Neg(v.Big())), nil
	case runtime.Float32:
		return -v, nil
	case runtime.Float64:
		return -v, nil
	default:
		return nil, newError(tok, ErrNotSigned, v.Kind())
	}
}

// infixOp dispatches on the runtime kinds of both operands. Only matching
// i32 pairs have arithmetic and ordering; there is no promotion between
// kinds.
func infixOp(tok token.Token, op string, left, right runtime.Value) (runtime.Value, error) {
	switch op {
	case "==":
		eq, err := equals(tok, op, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.Bool(eq), nil
	case "!=":
		eq, err := equals(tok, op, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.Bool(!eq), nil
	case "~":
		return concat(tok, left, right)
	}

	l, lok := left.(runtime.Int32)
	r, rok := right.(runtime.Int32)
	if !lok || !rok {
		return nil, operandError(tok, op, left, right)
	}

	switch op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		if r == 0 {
			return nil, newError(tok, ErrDivisionByZero)
		}
		return l / r, nil
	case "^":
		return intPow(l, r), nil
	case "<":
		return runtime.Bool(l < r), nil
	case ">":
		return runtime.Bool(l > r), nil
	case "<=":
		return runtime.Bool(l <= r), nil
	case ">=":
		return runtime.Bool(l >= r), nil
	default:
		return nil, operandError(tok, op, left, right)
	}
}

// equals compares i32 and bool pairs by value. Any other pair is equal only
// when both values are identical; a mismatch there is reported as an
// unsupported comparison rather than false.
func equals(tok token.Token, op string, left, right runtime.Value) (bool, error) {
	switch l := left.(type) {
	case runtime.Int32:
		if r, ok := right.(runtime.Int32); ok {
			return l == r, nil
		}
	case runtime.Bool:
		if r, ok := right.(runtime.Bool); ok {
			return l == r, nil
		}
	}
	if left == right {
		return true, nil
	}
	return false, operandError(tok, op, left, right)
}

// concat joins two strings, or two chars into a string.
func concat(tok token.Token, left, right runtime.Value) (runtime.Value, error) {
	switch l := left.(type) {
	case runtime.String:
		if r, ok := right.(runtime.String); ok {
			return l + r, nil
		}
	case runtime.Char:
		if r, ok := right.(runtime.Char); ok {
			return runtime.String(string(l) + string(r)), nil
		}
	}
	return nil, operandError(tok, "~", left, right)
}

// intPow raises base to exp by repeated multiplication, wrapping on
// overflow. exp == 0 yields 1 for every base, base 0 yields 0, base 1 yields
// 1, and a negative exponent yields 0.
func intPow(base, exp runtime.Int32) runtime.Int32 {
	switch {
	case exp == 0:
		return 1
	case base == 0:
		return 0
	case base == 1:
		return 1
	case exp < 0:
		return 0
	}
	acc := runtime.Int32(1)
	for range int(exp) {
		acc *= base
		if acc == 0 {
			break
		}
	}
	return acc
}

func operandError(tok token.Token, op string, left, right runtime.Value) error {
	return newError(tok, ErrOperandTypes, op, left.Kind(), right.Kind())
}
