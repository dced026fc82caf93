package ast

// Walk traverses an AST depth-first and calls fn for each node.
// If fn returns false, the node's children are skipped.
func Walk(node Node, fn func(node Node) bool) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	children, _ := Accept[[]Node](node, childVisitor{})
	for _, c := range children {
		Walk(c, fn)
	}
}

// Children returns the direct children of node in source order.
func Children(node Node) []Node {
	children, _ := Accept[[]Node](node, childVisitor{})
	return children
}

// childVisitor lists direct children, leaving out absent optionals.
type childVisitor struct{}

func collect(nodes ...Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func exprs[E Expr](list []E) []Node {
	out := make([]Node, 0, len(list))
	for _, e := range list {
		out = append(out, e)
	}
	return out
}

// optIdent, optBlock and optExpr turn absent children into a nil Node so
// that collect can drop them.
func optIdent(id *Identifier) Node {
	if id == nil {
		return nil
	}
	return id
}

func optBlock(b *Block) Node {
	if b == nil {
		return nil
	}
	return b
}

func optExpr(e Expr) Node {
	if e == nil {
		return nil
	}
	return e
}

func (childVisitor) VisitProgram(n *Program) ([]Node, error) {
	out := make([]Node, 0, len(n.Statements))
	for _, s := range n.Statements {
		out = append(out, s)
	}
	return out, nil
}

func (childVisitor) VisitReturn(n *Return) ([]Node, error) {
	return collect(optExpr(n.Value)), nil
}

func (childVisitor) VisitExpressionStatement(n *ExpressionStatement) ([]Node, error) {
	return collect(optExpr(n.Expression)), nil
}

func (childVisitor) VisitFunctionLiteral(n *FunctionLiteral) ([]Node, error) {
	out := collect(optIdent(n.Name))
	for _, p := range n.Parameters {
		out = append(out, p)
	}
	return append(out, collect(optIdent(n.ReturnType), optBlock(n.Body))...), nil
}

func (childVisitor) VisitForLoop(n *ForLoop) ([]Node, error) {
	return collect(optIdent(n.Iterator), optExpr(n.Enumerable), optBlock(n.Body)), nil
}

func (childVisitor) VisitBlock(n *Block) ([]Node, error) {
	out := make([]Node, 0, len(n.Statements))
	for _, s := range n.Statements {
		out = append(out, s)
	}
	return out, nil
}

func (childVisitor) VisitIdentifier(n *Identifier) ([]Node, error) {
	return collect(optIdent(n.Type)), nil
}

func (childVisitor) VisitInteger(*Integer) ([]Node, error)               { return nil, nil }
func (childVisitor) VisitLong(*Long) ([]Node, error)                     { return nil, nil }
func (childVisitor) VisitInt128(*Int128) ([]Node, error)                 { return nil, nil }
func (childVisitor) VisitUInt128(*UInt128) ([]Node, error)               { return nil, nil }
func (childVisitor) VisitFloat(*Float) ([]Node, error)                   { return nil, nil }
func (childVisitor) VisitBoolean(*Boolean) ([]Node, error)               { return nil, nil }
func (childVisitor) VisitCharLiteral(*CharLiteral) ([]Node, error)       { return nil, nil }
func (childVisitor) VisitRawString(*RawString) ([]Node, error)           { return nil, nil }
func (childVisitor) VisitVerbatimString(*VerbatimString) ([]Node, error) { return nil, nil }
func (childVisitor) VisitAbyss(*Abyss) ([]Node, error)                   { return nil, nil }

func (childVisitor) VisitInterpolatedString(n *InterpolatedString) ([]Node, error) {
	return exprs(n.Parts), nil
}

func (childVisitor) VisitArrayLiteral(n *ArrayLiteral) ([]Node, error) {
	return exprs(n.Elements), nil
}

func (childVisitor) VisitIndexing(n *Indexing) ([]Node, error) {
	return collect(optExpr(n.Target), optExpr(n.Index)), nil
}

func (childVisitor) VisitPrefix(n *Prefix) ([]Node, error) {
	return collect(optExpr(n.Right)), nil
}

func (childVisitor) VisitInfix(n *Infix) ([]Node, error) {
	return collect(optExpr(n.Left), optExpr(n.Right)), nil
}

func (childVisitor) VisitPostfix(n *Postfix) ([]Node, error) {
	return collect(optExpr(n.Left)), nil
}

func (childVisitor) VisitIf(n *If) ([]Node, error) {
	return collect(optExpr(n.Condition), optBlock(n.Consequence), optBlock(n.Alternative)), nil
}

func (childVisitor) VisitTernary(n *Ternary) ([]Node, error) {
	return collect(optExpr(n.Condition), optExpr(n.IfTrue), optExpr(n.IfFalse)), nil
}

func (childVisitor) VisitLet(n *Let) ([]Node, error) {
	return collect(optIdent(n.Name), optExpr(n.Value)), nil
}

func (childVisitor) VisitAssignment(n *Assignment) ([]Node, error) {
	return collect(optIdent(n.Name), optExpr(n.Value)), nil
}

func (childVisitor) VisitCall(n *Call) ([]Node, error) {
	return append(collect(optExpr(n.Function)), exprs(n.Arguments)...), nil
}
