package eval_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/janelang/shji/internal/testutil"
	"github.com/janelang/shji/pkg/ast"
	"github.com/janelang/shji/pkg/eval"
	"github.com/janelang/shji/pkg/parser"
	"github.com/janelang/shji/pkg/runtime"
	"github.com/janelang/shji/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEvaluator(t *testing.T) *eval.Evaluator {
	t.Helper()
	return eval.New(runtime.NewEnvironment(), eval.WithLogger(testutil.NewTestLogger(t)))
}

func evalWith(t *testing.T, e *eval.Evaluator, src string) (runtime.Value, error) {
	t.Helper()
	program, diags, err := parser.Parse(src)
	require.NoError(t, err)
	require.Empty(t, diags, "unexpected diagnostics for %q", src)
	return e.Eval(program)
}

func run(t *testing.T, src string) (runtime.Value, error) {
	t.Helper()
	return evalWith(t, newEvaluator(t), src)
}

func mustRun(t *testing.T, src string) runtime.Value {
	t.Helper()
	v, err := run(t, src)
	require.NoError(t, err, "evaluating %q", src)
	return v
}

func runtimeError(t *testing.T, err error) *eval.RuntimeError {
	t.Helper()
	require.Error(t, err)
	var rtErr *eval.RuntimeError
	require.True(t, errors.As(err, &rtErr), "expected *RuntimeError, got %T", err)
	return rtErr
}

// ---------- Arithmetic Tests ----------

func TestIntegerArithmetic(t *testing.T) {
	tests := []struct {
		input string
		want  runtime.Value
	}{
		{"1 + 2", runtime.Int32(3)},
		{"10 - 15", runtime.Int32(-5)},
		{"6 * 7", runtime.Int32(42)},
		{"7 / 2", runtime.Int32(3)},
		{"-7 / 2", runtime.Int32(-3)},
		{"2 + 3 * 4", runtime.Int32(14)},
		{"(2 + 3) * 4", runtime.Int32(20)},
		{"-5", runtime.Int32(-5)},
		{"-(-5)", runtime.Int32(5)},
		{"2147483647 + 1", runtime.Int32(-2147483648)},
		{"65536 * 65536", runtime.Int32(0)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, mustRun(t, tt.input))
		})
	}
}

func TestDivisionByZero(t *testing.T) {
	_, err := run(t, "5 / 0")
	rtErr := runtimeError(t, err)
	assert.Equal(t, eval.ErrDivisionByZero, rtErr.Message)
	assert.Equal(t, "division by zero; at Line 1, Column 2", err.Error())
}

func TestPower(t *testing.T) {
	tests := []struct {
		input string
		want  int32
	}{
		{"2 ^ 0", 1},
		{"0 ^ 0", 1},
		{"7 ^ 0", 1},
		{"0 ^ 3", 0},
		{"1 ^ 100", 1},
		{"2 ^ 10", 1024},
		{"3 ^ 3", 27},
		{"2 ^ 31", -2147483648},
		{"2 ^ 32", 0},
		{"1 ^ -5", 1},
		{"2 ^ -1", 0},
		{"0 ^ -2", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, runtime.Int32(tt.want), mustRun(t, tt.input))
		})
	}
}

func TestNoPromotionBetweenKinds(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{"1L + 1L", "operator + not implemented for operands of type i64 and i64"},
		{"1 + 1L", "operator + not implemented for operands of type i32 and i64"},
		{"1 < true", "operator < not implemented for operands of type i32 and bool"},
		{"1i8 * 2i8", "operator * not implemented for operands of type i8 and i8"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := run(t, tt.input)
			assert.Equal(t, tt.message, runtimeError(t, err).Message)
		})
	}
}

// ---------- Comparison Tests ----------

func TestComparisonAndEquality(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1 < 2", true},
		{"2 > 1", true},
		{"2 <= 2", true},
		{"1 >= 2", false},
		{"1 == 1", true},
		{"1 == 2", false},
		{"1 != 2", true},
		{"true == true", true},
		{"true == false", false},
		{"true != false", true},
		{"abyss == abyss", true},
		{"abyss != abyss", false},
		{"5L == 5L", true},
		{"(1 < 2) == true", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, runtime.Bool(tt.want), mustRun(t, tt.input))
		})
	}
}

func TestEqualityFallbackMismatchIsUnsupported(t *testing.T) {
	for _, input := range []string{"1 == true", "5L == 6L", "1 != true", "abyss == 1"} {
		t.Run(input, func(t *testing.T) {
			_, err := run(t, input)
			rtErr := runtimeError(t, err)
			assert.Contains(t, rtErr.Message, "not implemented for operands of type")
		})
	}
}

// ---------- Prefix Tests ----------

func TestBang(t *testing.T) {
	assert.Equal(t, runtime.Bool(true), mustRun(t, "!abyss"))
	assert.Equal(t, runtime.Bool(false), mustRun(t, "!true"))
	assert.Equal(t, runtime.Bool(true), mustRun(t, "!!true"))

	_, err := run(t, "!5")
	assert.Equal(t, "cannot implicitly convert i32 into bool", runtimeError(t, err).Message)
}

func TestNegateSignedKinds(t *testing.T) {
	assert.Equal(t, runtime.Int64(-2147483648), mustRun(t, "-2147483648"))
	assert.Equal(t, runtime.Int8(-5), mustRun(t, "-5i8"))
	assert.Equal(t, runtime.Float32(-2), mustRun(t, "-2f"))
	assert.Equal(t,
		runtime.NewInt128(new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 63))),
		mustRun(t, "-9223372036854775808"))

	for input, kind := range map[string]string{"-true": "bool", "-5u8": "u8", "-abyss": "abyss"} {
		_, err := run(t, input)
		assert.Equal(t, kind+" is not a signed number type", runtimeError(t, err).Message, input)
	}
}

func TestIncrementOperatorsAreRejected(t *testing.T) {
	for _, input := range []string{"let x = 1\nx++", "let x = 1\n++x", "let x = 1\nx--"} {
		_, err := run(t, input)
		assert.Contains(t, runtimeError(t, err).Message, "is unknown or not implemented", input)
	}
}

// ---------- Binding Tests ----------

func TestLetRedeclarationFails(t *testing.T) {
	_, err := run(t, "let x = 5; let x = 6;")
	rtErr := runtimeError(t, err)
	assert.True(t, errors.Is(err, runtime.ErrNameInUse))
	assert.Equal(t, 11, rtErr.Token.Pos.Column)
	assert.Equal(t,
		`variable name "x" already in use, use .clear to reset the environment; at Line 1, Column 11`,
		err.Error())
}

func TestLetInitializerBindingTheSameName(t *testing.T) {
	_, err := run(t, "let x = (x = 1)")
	assert.True(t, errors.Is(err, runtime.ErrNameInUse))
}

func TestLetAndAssignmentValues(t *testing.T) {
	e := newEvaluator(t)

	v, err := evalWith(t, e, "let x = 4")
	require.NoError(t, err)
	assert.Equal(t, runtime.Int32(4), v)

	v, err = evalWith(t, e, "let y")
	require.NoError(t, err)
	assert.Equal(t, runtime.Abyss, v)

	_, err = evalWith(t, e, "y")
	assert.Equal(t,
		`variable "y" was uninitialized or not found at access time; at Line 1, Column 0`,
		runtimeError(t, err).Error())

	v, err = evalWith(t, e, "y = x * 2")
	require.NoError(t, err)
	assert.Equal(t, runtime.Int32(8), v)

	v, err = evalWith(t, e, "y")
	require.NoError(t, err)
	assert.Equal(t, runtime.Int32(8), v)

	assert.Equal(t, []string{"x", "y"}, e.Environment().Names())
}

func TestUnknownIdentifier(t *testing.T) {
	_, err := run(t, "1 +\n  nope")
	rtErr := runtimeError(t, err)
	assert.Equal(t, 2, rtErr.Token.Pos.Line)
	assert.Equal(t, 2, rtErr.Token.Pos.Column)
}

func TestRuntimeErrorAbortsWholeInput(t *testing.T) {
	e := newEvaluator(t)
	v, err := evalWith(t, e, "let a = 1\nlet b = 1 / 0\nlet c = 2")
	require.Error(t, err)
	assert.Nil(t, v)

	env := e.Environment()
	assert.True(t, env.Has("a"))
	assert.False(t, env.Has("b"))
	assert.False(t, env.Has("c"))
}

// ---------- Control Flow Tests ----------

func TestIfExpression(t *testing.T) {
	assert.Equal(t, runtime.Int32(1), mustRun(t, "if true { 1 } else { 2 }"))
	assert.Equal(t, runtime.Int32(2), mustRun(t, "if false { 1 } else { 2 }"))
	assert.Equal(t, runtime.Abyss, mustRun(t, "if false { 1 }"))
	assert.Equal(t, runtime.Int32(10), mustRun(t, "if (1 < 2) 10 else 20"))
	assert.Equal(t, runtime.Abyss, mustRun(t, "if true { }"))

	_, err := run(t, "if 1 { 2 }")
	assert.Equal(t, eval.ErrConditionNotBool, runtimeError(t, err).Message)
}

func TestTernary(t *testing.T) {
	assert.Equal(t, runtime.Int32(1), mustRun(t, "true ? 1 : 2"))
	assert.Equal(t, runtime.Int32(2), mustRun(t, "1 > 2 ? 1 : 2"))

	_, err := run(t, "abyss ? 1 : 2")
	assert.Equal(t, eval.ErrConditionNotBool, runtimeError(t, err).Message)
}

func TestReturnStopsProgram(t *testing.T) {
	tests := []struct {
		input string
		want  runtime.Value
	}{
		{"return 5; 6", runtime.Int32(5)},
		{"return\n6", runtime.Abyss},
		{"if true { return 1 }\n2", runtime.Int32(1)},
		{"if true {\n  if true { return 1 }\n  3\n}\n2", runtime.Int32(1)},
		{"if true {\n  if false { return 1 }\n  3\n}", runtime.Int32(3)},
		{"if true { 7; return; 8 }\n9", runtime.Abyss},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, mustRun(t, tt.input))
		})
	}
}

func TestReturnFlagDoesNotLeakAcrossEvaluations(t *testing.T) {
	e := newEvaluator(t)
	v, err := evalWith(t, e, "if true { return 1 }")
	require.NoError(t, err)
	assert.Equal(t, runtime.Int32(1), v)

	v, err = evalWith(t, e, "2; 3")
	require.NoError(t, err)
	assert.Equal(t, runtime.Int32(3), v)
}

func TestForLoopRunsOneHundredTimes(t *testing.T) {
	e := newEvaluator(t)

	v, err := evalWith(t, e, "let c = 0\nfor i in abyss { c = c + 1 }\nc")
	require.NoError(t, err)
	assert.Equal(t, runtime.Int32(eval.LoopCount), v)

	v, err = evalWith(t, e, "let s = 0\nfor i in [1, 2, 3] { s = s + i }\ns")
	require.NoError(t, err)
	assert.Equal(t, runtime.Int32(4950), v, "iterator takes 0..99 in order")

	v, err = evalWith(t, e, "let last = abyss\nfor j in 0 { last = j }\nlast")
	require.NoError(t, err)
	assert.Equal(t, runtime.Int32(99), v)

	v, err = evalWith(t, e, "for k in 0 { }")
	require.NoError(t, err)
	assert.Equal(t, runtime.Abyss, v)
}

func TestForLoopReturnKeepsLooping(t *testing.T) {
	e := newEvaluator(t)
	v, err := evalWith(t, e, "let after = 0\nfor i in 0 { if i == 3 { return i } }\nafter = 1")
	require.NoError(t, err)
	assert.Equal(t, runtime.Abyss, v)
	assert.Equal(t, runtime.Int32(99), e.Environment().Get("i"))
	assert.Equal(t, runtime.Int32(0), e.Environment().Get("after"), "statement after the loop is skipped")

	e = newEvaluator(t)
	v, err = evalWith(t, e, "let c = 0\nfor i in 0 { c = c + 1; if true { return c } }")
	require.NoError(t, err)
	assert.Equal(t, runtime.Abyss, v)
	assert.Equal(t, runtime.Int32(100), e.Environment().Get("c"))
	assert.Equal(t, runtime.Int32(99), e.Environment().Get("i"))

	// The flag is cleared at the root, so the next input runs normally.
	v, err = evalWith(t, e, "c + 1")
	require.NoError(t, err)
	assert.Equal(t, runtime.Int32(101), v)
}

func TestForLoopEnumerableErrorsPropagate(t *testing.T) {
	_, err := run(t, "for i in nope { 1 }")
	runtimeError(t, err)
}

// ---------- Unevaluated Forms Tests ----------

func TestFunctionsCallsAndArraysYieldAbyss(t *testing.T) {
	assert.Equal(t, runtime.Abyss, mustRun(t, "fn f() => 1"))
	assert.Equal(t, runtime.Abyss, mustRun(t, "fn f() => 1\nf()"))
	assert.Equal(t, runtime.Abyss, mustRun(t, "nope(1, 2)"))
	assert.Equal(t, runtime.Abyss, mustRun(t, "[1, 2]"))
	assert.Equal(t, runtime.Abyss, mustRun(t, "[1, 2][0]"))
}

// ---------- Literal Tests ----------

func TestNumericLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  runtime.Value
	}{
		{"5", runtime.Int32(5)},
		{"2147483648", runtime.Int64(2147483648)},
		{"5i8", runtime.Int8(5)},
		{"5i16", runtime.Int16(5)},
		{"5L", runtime.Int64(5)},
		{"5u8", runtime.UInt8(5)},
		{"5u16", runtime.UInt16(5)},
		{"5u32", runtime.UInt32(5)},
		{"5UL", runtime.UInt64(5)},
		{"5i128", runtime.NewInt128(big.NewInt(5))},
		{"5u128", runtime.NewUInt128(big.NewInt(5))},
		{"10f32", runtime.Float32(10)},
		{"10d", runtime.Float64(10)},
		{"2147483648f", runtime.Float32(2147483648)},
		{"340282366920938463463374607431768211456", runtime.Float64(3.402823669209385e38)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, mustRun(t, tt.input))
		})
	}
}

func TestNumericLiteralOutOfRange(t *testing.T) {
	_, err := run(t, "300u8")
	assert.Equal(t, "literal 300u8 does not fit in u8", runtimeError(t, err).Message)

	_, err = run(t, "340282366920938463463374607431768211456u64")
	assert.Equal(t,
		"literal 340282366920938463463374607431768211456u64 does not fit in u64",
		runtimeError(t, err).Message)
}

// ---------- String Tests ----------

func str(v string) *ast.RawString {
	return &ast.RawString{Token: token.Token{Type: token.IDENT, Literal: v}, Value: v}
}

func TestConcatenation(t *testing.T) {
	e := newEvaluator(t)
	tilde := token.Token{Type: token.TILDE, Literal: "~", Pos: token.Position{Line: 1, Column: 4}}

	v, err := e.Eval(&ast.Infix{Token: tilde, Operator: "~", Left: str("ab"), Right: str("cd")})
	require.NoError(t, err)
	assert.Equal(t, runtime.String("abcd"), v)

	v, err = e.Eval(&ast.Infix{
		Token:    tilde,
		Operator: "~",
		Left:     &ast.CharLiteral{Value: 'a'},
		Right:    &ast.CharLiteral{Value: 'b'},
	})
	require.NoError(t, err)
	assert.Equal(t, runtime.String("ab"), v)

	_, err = e.Eval(&ast.Infix{Token: tilde, Operator: "~", Left: str("a"), Right: &ast.CharLiteral{Value: 'b'}})
	assert.Equal(t, "operator ~ not implemented for operands of type string and char", runtimeError(t, err).Message)

	_, err = run(t, "1 ~ 2")
	runtimeError(t, err)
}

func TestStringLiteralsAndInterpolation(t *testing.T) {
	e := newEvaluator(t)
	_, err := evalWith(t, e, "let n = 42")
	require.NoError(t, err)

	v, err := e.Eval(&ast.VerbatimString{Value: `a\b`})
	require.NoError(t, err)
	assert.Equal(t, runtime.String(`a\b`), v)

	v, err = e.Eval(&ast.InterpolatedString{Parts: []ast.Expr{
		str("n = "),
		&ast.Identifier{Value: "n"},
		str("!"),
	}})
	require.NoError(t, err)
	assert.Equal(t, runtime.String("n = 42!"), v)
}
