package ast

// Visitor has one method per node kind. Implementations must handle every
// kind; there is no default case.
type Visitor[R any] interface {
	VisitProgram(n *Program) (R, error)
	VisitReturn(n *Return) (R, error)
	VisitExpressionStatement(n *ExpressionStatement) (R, error)
	VisitFunctionLiteral(n *FunctionLiteral) (R, error)
	VisitForLoop(n *ForLoop) (R, error)
	VisitBlock(n *Block) (R, error)
	VisitIdentifier(n *Identifier) (R, error)
	VisitInteger(n *Integer) (R, error)
	VisitLong(n *Long) (R, error)
	VisitInt128(n *Int128) (R, error)
	VisitUInt128(n *UInt128) (R, error)
	VisitFloat(n *Float) (R, error)
	VisitBoolean(n *Boolean) (R, error)
	VisitCharLiteral(n *CharLiteral) (R, error)
	VisitRawString(n *RawString) (R, error)
	VisitVerbatimString(n *VerbatimString) (R, error)
	VisitInterpolatedString(n *InterpolatedString) (R, error)
	VisitArrayLiteral(n *ArrayLiteral) (R, error)
	VisitIndexing(n *Indexing) (R, error)
	VisitPrefix(n *Prefix) (R, error)
	VisitInfix(n *Infix) (R, error)
	VisitPostfix(n *Postfix) (R, error)
	VisitIf(n *If) (R, error)
	VisitTernary(n *Ternary) (R, error)
	VisitLet(n *Let) (R, error)
	VisitAssignment(n *Assignment) (R, error)
	VisitCall(n *Call) (R, error)
	VisitAbyss(n *Abyss) (R, error)
}

// Accept dispatches n to the matching method of v.
func Accept[R any](n Node, v Visitor[R]) (R, error) {
	out, err := n.visit(adapter[R]{v})
	r, _ := out.(R)
	return r, err
}

// adapter erases the result type so that nodes can carry a single
// non-generic visit method.
type adapter[R any] struct {
	v Visitor[R]
}

func (a adapter[R]) VisitProgram(n *Program) (any, error)                         { return a.v.VisitProgram(n) }
func (a adapter[R]) VisitReturn(n *Return) (any, error)                           { return a.v.VisitReturn(n) }
func (a adapter[R]) VisitExpressionStatement(n *ExpressionStatement) (any, error) { return a.v.VisitExpressionStatement(n) }
func (a adapter[R]) VisitFunctionLiteral(n *FunctionLiteral) (any, error)         { return a.v.VisitFunctionLiteral(n) }
func (a adapter[R]) VisitForLoop(n *ForLoop) (any, error)                         { return a.v.VisitForLoop(n) }
func (a adapter[R]) VisitBlock(n *Block) (any, error)                             { return a.v.VisitBlock(n) }
func (a adapter[R]) VisitIdentifier(n *Identifier) (any, error)                   { return a.v.VisitIdentifier(n) }
func (a adapter[R]) VisitInteger(n *Integer) (any, error)                         { return a.v.VisitInteger(n) }
func (a adapter[R]) VisitLong(n *Long) (any, error)                               { return a.v.VisitLong(n) }
func (a adapter[R]) VisitInt128(n *Int128) (any, error)                           { return a.v.VisitInt128(n) }
func (a adapter[R]) VisitUInt128(n *UInt128) (any, error)                         { return a.v.VisitUInt128(n) }
func (a adapter[R]) VisitFloat(n *Float) (any, error)                             { return a.v.VisitFloat(n) }
func (a adapter[R]) VisitBoolean(n *Boolean) (any, error)                         { return a.v.VisitBoolean(n) }
func (a adapter[R]) VisitCharLiteral(n *CharLiteral) (any, error)                 { return a.v.VisitCharLiteral(n) }
func (a adapter[R]) VisitRawString(n *RawString) (any, error)                     { return a.v.VisitRawString(n) }
func (a adapter[R]) VisitVerbatimString(n *VerbatimString) (any, error)           { return a.v.VisitVerbatimString(n) }
func (a adapter[R]) VisitInterpolatedString(n *InterpolatedString) (any, error)   { return a.v.VisitInterpolatedString(n) }
func (a adapter[R]) VisitArrayLiteral(n *ArrayLiteral) (any, error)               { return a.v.VisitArrayLiteral(n) }
func (a adapter[R]) VisitIndexing(n *Indexing) (any, error)                       { return a.v.VisitIndexing(n) }
func (a adapter[R]) VisitPrefix(n *Prefix) (any, error)                           { return a.v.VisitPrefix(n) }
func (a adapter[R]) VisitInfix(n *Infix) (any, error)                             { return a.v.VisitInfix(n) }
func (a adapter[R]) VisitPostfix(n *Postfix) (any, error)                         { return a.v.VisitPostfix(n) }
func (a adapter[R]) VisitIf(n *If) (any, error)                                   { return a.v.VisitIf(n) }
func (a adapter[R]) VisitTernary(n *Ternary) (any, error)                         { return a.v.VisitTernary(n) }
func (a adapter[R]) VisitLet(n *Let) (any, error)                                 { return a.v.VisitLet(n) }
func (a adapter[R]) VisitAssignment(n *Assignment) (any, error)                   { return a.v.VisitAssignment(n) }
func (a adapter[R]) VisitCall(n *Call) (any, error)                               { return a.v.VisitCall(n) }
func (a adapter[R]) VisitAbyss(n *Abyss) (any, error)                             { return a.v.VisitAbyss(n) }

func (n *Program) visit(v Visitor[any]) (any, error)             { return v.VisitProgram(n) }
func (n *Return) visit(v Visitor[any]) (any, error)              { return v.VisitReturn(n) }
func (n *ExpressionStatement) visit(v Visitor[any]) (any, error) { return v.VisitExpressionStatement(n) }
func (n *FunctionLiteral) visit(v Visitor[any]) (any, error)     { return v.VisitFunctionLiteral(n) }
func (n *ForLoop) visit(v Visitor[any]) (any, error)             { return v.VisitForLoop(n) }
func (n *Block) visit(v Visitor[any]) (any, error)               { return v.VisitBlock(n) }
func (n *Identifier) visit(v Visitor[any]) (any, error)          { return v.VisitIdentifier(n) }
func (n *Integer) visit(v Visitor[any]) (any, error)             { return v.VisitInteger(n) }
func (n *Long) visit(v Visitor[any]) (any, error)                { return v.VisitLong(n) }
func (n *Int128) visit(v Visitor[any]) (any, error)              { return v.VisitInt128(n) }
func (n *UInt128) visit(v Visitor[any]) (any, error)             { return v.VisitUInt128(n) }
func (n *Float) visit(v Visitor[any]) (any, error)               { return v.VisitFloat(n) }
func (n *Boolean) visit(v Visitor[any]) (any, error)             { return v.VisitBoolean(n) }
func (n *CharLiteral) visit(v Visitor[any]) (any, error)         { return v.VisitCharLiteral(n) }
func (n *RawString) visit(v Visitor[any]) (any, error)           { return v.VisitRawString(n) }
func (n *VerbatimString) visit(v Visitor[any]) (any, error)      { return v.VisitVerbatimString(n) }
func (n *InterpolatedString) visit(v Visitor[any]) (any, error)  { return v.VisitInterpolatedString(n) }
func (n *ArrayLiteral) visit(v Visitor[any]) (any, error)        { return v.VisitArrayLiteral(n) }
func (n *Indexing) visit(v Visitor[any]) (any, error)            { return v.VisitIndexing(n) }
func (n *Prefix) visit(v Visitor[any]) (any, error)              { return v.VisitPrefix(n) }
func (n *Infix) visit(v Visitor[any]) (any, error)               { return v.VisitInfix(n) }
func (n *Postfix) visit(v Visitor[any]) (any, error)             { return v.VisitPostfix(n) }
func (n *If) visit(v Visitor[any]) (any, error)                  { return v.VisitIf(n) }
func (n *Ternary) visit(v Visitor[any]) (any, error)             { return v.VisitTernary(n) }
func (n *Let) visit(v Visitor[any]) (any, error)                 { return v.VisitLet(n) }
func (n *Assignment) visit(v Visitor[any]) (any, error)          { return v.VisitAssignment(n) }
func (n *Call) visit(v Visitor[any]) (any, error)                { return v.VisitCall(n) }
func (n *Abyss) visit(v Visitor[any]) (any, error)               { return v.VisitAbyss(n) }
