// Package eval evaluates Jane programs by walking their AST.
package eval

import (
	"errors"
	"log/slog"
	"math/big"

	"github.com/janelang/shji/pkg/ast"
	"github.com/janelang/shji/pkg/runtime"
)

// LoopCount is how many times a for loop runs its body. Loops do not
// iterate their enumerable yet.
const LoopCount = 100

// Evaluator walks an AST against a single flat environment. It is not safe
// for concurrent use.
type Evaluator struct {
	env    *runtime.Environment
	logger *slog.Logger

	// returning is set when a return executes inside a nested block and
	// cleared by the statement sequence that stops on it.
	returning bool
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

// New creates an evaluator bound to env.
func New(env *runtime.Environment, opts ...Option) *Evaluator {
	e := &Evaluator{env: env}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	return e
}

// Environment returns the environment the evaluator reads and writes.
func (e *Evaluator) Environment() *runtime.Environment {
	return e.env
}

// Eval evaluates node. A *RuntimeError aborts the whole evaluation; no
// partial result is returned with it.
func (e *Evaluator) Eval(node ast.Node) (runtime.Value, error) {
	e.returning = false
	v, err := (*visitor)(e).eval(node)
	if err != nil {
		e.returning = false
		var rtErr *RuntimeError
		if errors.As(err, &rtErr) {
			e.logger.Debug("evaluation failed",
				"error", rtErr.Message,
				"line", rtErr.Token.Pos.Line,
				"column", rtErr.Token.Pos.Column)
		}
		return nil, err
	}
	return v, nil
}

// visitor carries the evaluation methods so they stay off the exported
// surface of Evaluator.
type visitor Evaluator

func (v *visitor) eval(n ast.Node) (runtime.Value, error) {
	return ast.Accept[runtime.Value](n, v)
}

// ---------- Statements ----------

// VisitProgram runs the top-level statements. It stops at a return, either
// its own or one propagated from a nested block, and clears the flag.
func (v *visitor) VisitProgram(n *ast.Program) (runtime.Value, error) {
	v.logger.Debug("evaluating program", "statements", len(n.Statements))
	result := runtime.Abyss
	for _, stmt := range n.Statements {
		r, err := v.eval(stmt)
		if err != nil {
			return nil, err
		}
		result = r
		if _, isReturn := stmt.(*ast.Return); isReturn || v.returning {
			v.returning = false
			break
		}
	}
	return result, nil
}

// VisitBlock runs a nested statement sequence. A return raises the flag so
// that enclosing sequences stop too; the flag is left for the root to clear.
func (v *visitor) VisitBlock(n *ast.Block) (runtime.Value, error) {
	result := runtime.Abyss
	for _, stmt := range n.Statements {
		r, err := v.eval(stmt)
		if err != nil {
			return nil, err
		}
		result = r
		if _, isReturn := stmt.(*ast.Return); isReturn {
			v.returning = true
			break
		}
		if v.returning {
			break
		}
	}
	return result, nil
}

func (v *visitor) VisitReturn(n *ast.Return) (runtime.Value, error) {
	if n.Value == nil {
		return runtime.Abyss, nil
	}
	return v.eval(n.Value)
}

func (v *visitor) VisitExpressionStatement(n *ast.ExpressionStatement) (runtime.Value, error) {
	if n.Expression == nil {
		return runtime.Abyss, nil
	}
	return v.eval(n.Expression)
}

// VisitFunctionLiteral yields abyss. Functions parse but are never bound or
// invoked.
func (v *visitor) VisitFunctionLiteral(*ast.FunctionLiteral) (runtime.Value, error) {
	return runtime.Abyss, nil
}

// VisitForLoop evaluates the enumerable once, then runs the body LoopCount
// times with the iterator bound to 0, 1, ... in turn. A return in the body
// does not end the loop; the raised flag cuts each later pass short and is
// left for the enclosing sequence.
func (v *visitor) VisitForLoop(n *ast.ForLoop) (runtime.Value, error) {
	if _, err := v.eval(n.Enumerable); err != nil {
		return nil, err
	}
	for i := range LoopCount {
		v.env.Upsert(n.Iterator.Value, runtime.Int32(i))
		if _, err := v.eval(n.Body); err != nil {
			return nil, err
		}
	}
	return runtime.Abyss, nil
}

// ---------- Bindings ----------

func (v *visitor) VisitLet(n *ast.Let) (runtime.Value, error) {
	name := n.Name.Value
	if v.env.Has(name) {
		return nil, nameInUse(n)
	}

	value := runtime.Uninitialized
	if n.Value != nil {
		var err error
		if value, err = v.eval(n.Value); err != nil {
			return nil, err
		}
	}
	// The initializer may itself have bound the name.
	if err := v.env.Insert(name, value); err != nil {
		return nil, nameInUse(n)
	}
	if runtime.IsUninitialized(value) {
		return runtime.Abyss, nil
	}
	return value, nil
}

func nameInUse(n *ast.Let) error {
	err := newError(n.Token, ErrNameInUse, n.Name.Value)
	err.Err = runtime.ErrNameInUse
	return err
}

func (v *visitor) VisitAssignment(n *ast.Assignment) (runtime.Value, error) {
	value, err := v.eval(n.Value)
	if err != nil {
		return nil, err
	}
	v.env.Upsert(n.Name.Value, value)
	return value, nil
}

func (v *visitor) VisitIdentifier(n *ast.Identifier) (runtime.Value, error) {
	value := v.env.Get(n.Value)
	if runtime.IsUninitialized(value) {
		return nil, newError(n.Token, ErrUninitialized, n.Value)
	}
	return value, nil
}

// ---------- Control Flow ----------

func (v *visitor) VisitIf(n *ast.If) (runtime.Value, error) {
	cond, err := v.condition(n.Condition)
	if err != nil {
		return nil, err
	}
	switch {
	case cond:
		return v.eval(n.Consequence)
	case n.Alternative != nil:
		return v.eval(n.Alternative)
	default:
		return runtime.Abyss, nil
	}
}

func (v *visitor) VisitTernary(n *ast.Ternary) (runtime.Value, error) {
	cond, err := v.condition(n.Condition)
	if err != nil {
		return nil, err
	}
	if cond {
		return v.eval(n.IfTrue)
	}
	return v.eval(n.IfFalse)
}

func (v *visitor) condition(expr ast.Expr) (bool, error) {
	value, err := v.eval(expr)
	if err != nil {
		return false, err
	}
	b, ok := value.(runtime.Bool)
	if !ok {
		return false, newError(expr.Origin(), ErrConditionNotBool)
	}
	return bool(b), nil
}

// ---------- Operators ----------

func (v *visitor) VisitPrefix(n *ast.Prefix) (runtime.Value, error) {
	right, err := v.eval(n.Right)
	if err != nil {
		return nil, err
	}
	return prefixOp(n.Token, n.Operator, right)
}

func (v *visitor) VisitInfix(n *ast.Infix) (runtime.Value, error) {
	left, err := v.eval(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := v.eval(n.Right)
	if err != nil {
		return nil, err
	}
	return infixOp(n.Token, n.Operator, left, right)
}

// VisitPostfix rejects every operator; increments are not implemented.
func (v *visitor) VisitPostfix(n *ast.Postfix) (runtime.Value, error) {
	return nil, newError(n.Token, ErrUnknownOperator, n.Operator)
}

// ---------- Unevaluated Forms ----------

// VisitCall yields abyss without evaluating the callee or its arguments.
func (v *visitor) VisitCall(*ast.Call) (runtime.Value, error) {
	return runtime.Abyss, nil
}

func (v *visitor) VisitArrayLiteral(*ast.ArrayLiteral) (runtime.Value, error) {
	return runtime.Abyss, nil
}

func (v *visitor) VisitIndexing(*ast.Indexing) (runtime.Value, error) {
	return runtime.Abyss, nil
}

// ---------- Literals ----------

func (v *visitor) VisitAbyss(*ast.Abyss) (runtime.Value, error) {
	return runtime.Abyss, nil
}

func (v *visitor) VisitBoolean(n *ast.Boolean) (runtime.Value, error) {
	return runtime.Bool(n.Value), nil
}

func (v *visitor) VisitCharLiteral(n *ast.CharLiteral) (runtime.Value, error) {
	return runtime.Char(n.Value), nil
}

func (v *visitor) VisitRawString(n *ast.RawString) (runtime.Value, error) {
	return runtime.String(n.Value), nil
}

func (v *visitor) VisitVerbatimString(n *ast.VerbatimString) (runtime.Value, error) {
	return runtime.String(n.Value), nil
}

// VisitInterpolatedString concatenates the rendered value of every part.
func (v *visitor) VisitInterpolatedString(n *ast.InterpolatedString) (runtime.Value, error) {
	var out []byte
	for _, part := range n.Parts {
		value, err := v.eval(part)
		if err != nil {
			return nil, err
		}
		out = append(out, value.Inspect()...)
	}
	return runtime.String(out), nil
}

func (v *visitor) VisitInteger(n *ast.Integer) (runtime.Value, error) {
	if n.Suffix.Kind == ast.CoalesceNone {
		return runtime.Int32(n.Value), nil
	}
	return coalesceBig(n, big.NewInt(int64(n.Value)))
}

func (v *visitor) VisitLong(n *ast.Long) (runtime.Value, error) {
	if n.Suffix.Kind == ast.CoalesceNone {
		return runtime.Int64(n.Value), nil
	}
	return coalesceBig(n, big.NewInt(n.Value))
}

func (v *visitor) VisitInt128(n *ast.Int128) (runtime.Value, error) {
	if n.Suffix.Kind == ast.CoalesceNone {
		return runtime.NewInt128(n.Value), nil
	}
	return coalesceBig(n, n.Value)
}

func (v *visitor) VisitUInt128(n *ast.UInt128) (runtime.Value, error) {
	if n.Suffix.Kind == ast.CoalesceNone {
		return runtime.NewUInt128(n.Value), nil
	}
	return coalesceBig(n, n.Value)
}

func (v *visitor) VisitFloat(n *ast.Float) (runtime.Value, error) {
	if n.Suffix.Kind == ast.CoalesceNone {
		return runtime.Float64(n.Value), nil
	}
	kind := coalescionKinds[n.Suffix.Kind]
	value, ok := runtime.FromFloat(n.Value, kind)
	if !ok {
		return nil, newError(n.Token, ErrLiteralOutOfRange, n.String(), kind)
	}
	return value, nil
}

var coalescionKinds = map[ast.Coalescion]runtime.Kind{
	ast.CoalesceI8:   runtime.KindInt8,
	ast.CoalesceI16:  runtime.KindInt16,
	ast.CoalesceI32:  runtime.KindInt32,
	ast.CoalesceI64:  runtime.KindInt64,
	ast.CoalesceI128: runtime.KindInt128,
	ast.CoalesceU8:   runtime.KindUInt8,
	ast.CoalesceU16:  runtime.KindUInt16,
	ast.CoalesceU32:  runtime.KindUInt32,
	ast.CoalesceU64:  runtime.KindUInt64,
	ast.CoalesceU128: runtime.KindUInt128,
	ast.CoalesceF32:  runtime.KindFloat32,
	ast.CoalesceF64:  runtime.KindFloat64,
}

// coalesceBig converts an integer literal to the kind its suffix names.
func coalesceBig(lit ast.NumericLiteral, n *big.Int) (runtime.Value, error) {
	kind := coalescionKinds[lit.Coalescion()]
	value, ok := runtime.FromBig(n, kind)
	if !ok {
		return nil, newError(lit.Origin(), ErrLiteralOutOfRange, lit.String(), kind)
	}
	return value, nil
}

var _ ast.Visitor[runtime.Value] = (*visitor)(nil)
