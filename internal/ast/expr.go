// Package ast defines the expression and statement node types produced
// by the parser and walked by the interpreter.
package ast

import "github.com/thorn-lang/thorn/internal/token"

// Expr is implemented by every expression node.
type Expr interface {
	exprNode()
}

type Assign struct {
	Name  token.Token
	Value Expr
}

type Binary struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

type Call struct {
	Callee    Expr
	Paren     token.Token // closing paren, for error positions
	Arguments []Expr
}

// FunctionExpr is a `fun` expression with no name, used in expression
// position as a value (e.g. `var f = fun (x) { return x; };`).
type FunctionExpr struct {
	Params []token.Token
	Body   []Stmt
}

type Grouping struct {
	Expression Expr
}

type Literal struct {
	Value interface{} // float64, string, bool, or nil
}

type Logical struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

type Unary struct {
	Operator token.Token
	Right    Expr
}

type Variable struct {
	Name token.Token
}

func (*Assign) exprNode()       {}
func (*Binary) exprNode()       {}
func (*Call) exprNode()         {}
func (*Grouping) exprNode()     {}
func (*Literal) exprNode()      {}
func (*Logical) exprNode()      {}
func (*Unary) exprNode()        {}
func (*Variable) exprNode()     {}
func (*FunctionExpr) exprNode() {}
