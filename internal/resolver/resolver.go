// Package resolver implements a static scope-resolution pass. It walks
// the AST once, computing for each variable reference how many
// enclosing scopes to ascend to find its binding. That depth map is
// intentionally never consumed by the interpreter, which still walks
// the dynamic environment chain at runtime — mirroring the original
// source, where the equivalent pass computes the same thing and
// leaves its result unused. Resolution is kept only for the one
// diagnostic it is positioned to catch early: a local variable read
// inside its own initializer.
package resolver

import (
	"github.com/thorn-lang/thorn/internal/ast"
	"github.com/thorn-lang/thorn/internal/diagnostics"
	"github.com/thorn-lang/thorn/internal/token"
)

type scope map[string]bool // name -> defined (false while only declared)

// Resolver performs the pass described above.
type Resolver struct {
	reporter *diagnostics.Reporter
	scopes   []scope

	// Depths maps a *ast.Variable to the number of scopes to ascend;
	// absent entries mean "resolve dynamically at the global scope".
	// Computed but, per the package doc, not consumed by Interpreter.
	Depths map[*ast.Variable]int
}

// New creates a Resolver reporting through reporter.
func New(reporter *diagnostics.Reporter) *Resolver {
	return &Resolver{reporter: reporter, Depths: make(map[*ast.Variable]int)}
}

// Resolve walks statements once. Call it before interpretation if the
// self-referential-initializer diagnostic is wanted; skipping it
// entirely is a valid choice per the package's own non-goal.
func (r *Resolver) Resolve(statements []ast.Stmt) {
	r.resolveStmts(statements)
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, scope{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *Resolver) resolveLocal(expr *ast.Variable, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.Depths[expr] = len(r.scopes) - 1 - i
			return
		}
	}
	// Not found in any lexical scope: resolves dynamically against the
	// global frame at runtime.
}

func (r *Resolver) resolveStmts(statements []ast.Stmt) {
	for _, s := range statements {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()

	case *ast.VarStmt:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)

	case *ast.FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s.Params, s.Body)

	case *ast.ExpressionStmt:
		r.resolveExpr(s.Expression)

	case *ast.IfStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}

	case *ast.PrintStmt:
		r.resolveExpr(s.Expression)

	case *ast.ReturnStmt:
		if s.Value != nil {
			r.resolveExpr(s.Value)
		}

	case *ast.WhileStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)

	case *ast.BreakStmt:
		// no sub-expressions
	}
}

func (r *Resolver) resolveFunction(params []token.Token, body []ast.Stmt) {
	r.beginScope()
	for _, p := range params {
		r.declare(p)
		r.define(p)
	}
	r.resolveStmts(body)
	r.endScope()
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, declared := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; declared && !defined {
				r.reporter.Report(e.Name.Position.Line, e.Name.Position.Column, diagnostics.ResolverError,
					"Can't read local variable '"+e.Name.Lexeme+"' in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name.Lexeme)

	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(&ast.Variable{Name: e.Name}, e.Name.Lexeme)

	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, a := range e.Arguments {
			r.resolveExpr(a)
		}

	case *ast.Grouping:
		r.resolveExpr(e.Expression)

	case *ast.Literal:
		// no sub-expressions

	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Unary:
		r.resolveExpr(e.Right)

	case *ast.FunctionExpr:
		r.resolveFunction(e.Params, e.Body)
	}
}
