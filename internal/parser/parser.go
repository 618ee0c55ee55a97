// Package parser implements the recursive-descent parser that turns a
// token stream into a sequence of statement trees.
package parser

import (
	"github.com/thorn-lang/thorn/internal/ast"
	"github.com/thorn-lang/thorn/internal/diagnostics"
	"github.com/thorn-lang/thorn/internal/token"
)

const maxArity = 255

// Parser consumes a token slice and produces statements, reporting
// ParseErrors to a diagnostics.Reporter and recovering at statement
// boundaries rather than aborting on the first error.
type Parser struct {
	reporter *diagnostics.Reporter
	tokens   []token.Token
	pos      int
}

// New creates a Parser that reports problems through reporter.
func New(reporter *diagnostics.Reporter) *Parser {
	return &Parser{reporter: reporter}
}

// Parse consumes tokens and returns every statement successfully
// parsed. On error it synchronizes and keeps going, so the returned
// slice may be a partial program (useful for REPL continuation where
// the caller simply discards a partial result and reprompts).
func (p *Parser) Parse(tokens []token.Token) []ast.Stmt {
	p.tokens = tokens
	p.pos = 0

	var statements []ast.Stmt
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	return statements
}

// --- token stream helpers, grounded on classic recursive-descent style ---

func (p *Parser) current() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.pos-1]
}

func (p *Parser) isAtEnd() bool {
	return p.current().Kind == token.EOF
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.pos++
	}
	return p.previous()
}

func (p *Parser) check(kind token.Kind) bool {
	if p.isAtEnd() {
		return kind == token.EOF
	}
	return p.current().Kind == kind
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(kind token.Kind, message string) (token.Token, bool) {
	if p.check(kind) {
		return p.advance(), true
	}
	p.addError(p.current(), message)
	return token.Token{}, false
}

func (p *Parser) addError(tok token.Token, message string) {
	err := &ParseError{Token: tok, Message: message}
	p.reporter.Report(err.Token.Position.Line, err.Token.Position.Column, diagnostics.ParserError, err.Error())
}

// synchronize discards tokens until a likely statement boundary, so
// parsing can resume after an error instead of aborting the run.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == token.Semicolon {
			return
		}
		switch p.current().Kind {
		case token.Class, token.Fun, token.Var, token.For,
			token.If, token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}

// --- declarations & statements ---

func (p *Parser) declaration() ast.Stmt {
	start := p.pos
	stmt, ok := p.declarationOrError()
	if !ok {
		if p.pos > start {
			switch p.current().Kind {
			case token.Class, token.Fun, token.Var, token.For,
				token.If, token.While, token.Print, token.Return:
				// The failed declaration already consumed tokens and
				// the parser stands on the start of the next statement:
				// resume there instead of discarding it.
				return nil
			}
		}
		p.synchronize()
		return nil
	}
	return stmt
}

func (p *Parser) declarationOrError() (ast.Stmt, bool) {
	switch {
	case p.match(token.Var):
		return p.varDeclaration()
	case p.match(token.Fun):
		return p.functionDeclaration("function")
	default:
		return p.statement()
	}
}

func (p *Parser) varDeclaration() (ast.Stmt, bool) {
	name, ok := p.consume(token.Identifier, "Expect variable name.")
	if !ok {
		return nil, false
	}

	var initializer ast.Expr
	if p.match(token.Equal) {
		initializer, ok = p.assignment()
		if !ok {
			return nil, false
		}
	}

	if _, ok := p.consume(token.Semicolon, "Expect ';' after variable declaration."); !ok {
		return nil, false
	}
	return &ast.VarStmt{Name: name, Initializer: initializer}, true
}

// functionDeclaration parses a named `fun` declaration.
func (p *Parser) functionDeclaration(kind string) (ast.Stmt, bool) {
	name, ok := p.consume(token.Identifier, "Expect "+kind+" name.")
	if !ok {
		return nil, false
	}
	params, body, ok := p.functionTail(kind)
	if !ok {
		return nil, false
	}
	return &ast.FunctionStmt{Name: name, Params: params, Body: body}, true
}

// functionTail parses the `(params) { body }` shared by both named
// declarations and anonymous function expressions.
func (p *Parser) functionTail(kind string) ([]token.Token, []ast.Stmt, bool) {
	if _, ok := p.consume(token.LeftParen, "Expect '(' after "+kind+" name."); !ok {
		return nil, nil, false
	}

	var params []token.Token
	if !p.check(token.RightParen) {
		for {
			if len(params) >= maxArity {
				p.addError(p.current(), "Can't have more than 255 parameters.")
			}
			param, ok := p.consume(token.Identifier, "Expect parameter name.")
			if !ok {
				return nil, nil, false
			}
			params = append(params, param)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	if _, ok := p.consume(token.RightParen, "Expect ')' after parameters."); !ok {
		return nil, nil, false
	}
	if _, ok := p.consume(token.LeftBrace, "Expect '{' before "+kind+" body."); !ok {
		return nil, nil, false
	}
	body, ok := p.block()
	if !ok {
		return nil, nil, false
	}
	return params, body, true
}

func (p *Parser) statement() (ast.Stmt, bool) {
	switch {
	case p.match(token.Print):
		return p.printStatement()
	case p.match(token.LeftBrace):
		stmts, ok := p.block()
		if !ok {
			return nil, false
		}
		return &ast.BlockStmt{Statements: stmts}, true
	case p.match(token.If):
		return p.ifStatement()
	case p.match(token.While):
		return p.whileStatement()
	case p.match(token.For):
		return p.forStatement()
	case p.match(token.Return):
		return p.returnStatement()
	case p.match(token.Break):
		return p.breakStatement()
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) printStatement() (ast.Stmt, bool) {
	value, ok := p.assignment()
	if !ok {
		return nil, false
	}
	if _, ok := p.consume(token.Semicolon, "Expect ';' after value."); !ok {
		return nil, false
	}
	return &ast.PrintStmt{Expression: value}, true
}

func (p *Parser) block() ([]ast.Stmt, bool) {
	var statements []ast.Stmt
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	if _, ok := p.consume(token.RightBrace, "Expect '}' after block."); !ok {
		return nil, false
	}
	return statements, true
}

func (p *Parser) ifStatement() (ast.Stmt, bool) {
	if _, ok := p.consume(token.LeftParen, "Expect '(' after 'if'."); !ok {
		return nil, false
	}
	condition, ok := p.assignment()
	if !ok {
		return nil, false
	}
	if _, ok := p.consume(token.RightParen, "Expect ')' after if condition."); !ok {
		return nil, false
	}

	thenBranch, ok := p.statement()
	if !ok {
		return nil, false
	}

	var elseBranch ast.Stmt
	if p.match(token.Else) {
		elseBranch, ok = p.statement()
		if !ok {
			return nil, false
		}
	}

	return &ast.IfStmt{Condition: condition, Then: thenBranch, Else: elseBranch}, true
}

func (p *Parser) whileStatement() (ast.Stmt, bool) {
	if _, ok := p.consume(token.LeftParen, "Expect '(' after 'while'."); !ok {
		return nil, false
	}
	condition, ok := p.assignment()
	if !ok {
		return nil, false
	}
	if _, ok := p.consume(token.RightParen, "Expect ')' after condition."); !ok {
		return nil, false
	}
	body, ok := p.statement()
	if !ok {
		return nil, false
	}
	return &ast.WhileStmt{Condition: condition, Body: body}, true
}

// forStatement lowers `for (init; cond; update) body` into the
// equivalent block/while nesting at parse time; there is no For AST
// node.
func (p *Parser) forStatement() (ast.Stmt, bool) {
	if _, ok := p.consume(token.LeftParen, "Expect '(' after 'for'."); !ok {
		return nil, false
	}

	var initializer ast.Stmt
	var ok bool
	switch {
	case p.match(token.Semicolon):
		initializer = nil
	case p.match(token.Var):
		initializer, ok = p.varDeclaration()
		if !ok {
			return nil, false
		}
	default:
		initializer, ok = p.expressionStatement()
		if !ok {
			return nil, false
		}
	}

	var condition ast.Expr
	if !p.check(token.Semicolon) {
		condition, ok = p.assignment()
		if !ok {
			return nil, false
		}
	}
	if _, ok := p.consume(token.Semicolon, "Expect ';' after loop condition."); !ok {
		return nil, false
	}

	var update ast.Expr
	if !p.check(token.RightParen) {
		update, ok = p.assignment()
		if !ok {
			return nil, false
		}
	}
	if _, ok := p.consume(token.RightParen, "Expect ')' after for clauses."); !ok {
		return nil, false
	}

	body, ok := p.statement()
	if !ok {
		return nil, false
	}

	if update != nil {
		body = &ast.BlockStmt{Statements: []ast.Stmt{body, &ast.ExpressionStmt{Expression: update}}}
	}

	if condition == nil {
		condition = &ast.Literal{Value: true}
	}
	body = &ast.WhileStmt{Condition: condition, Body: body}

	if initializer != nil {
		body = &ast.BlockStmt{Statements: []ast.Stmt{initializer, body}}
	}

	return body, true
}

func (p *Parser) returnStatement() (ast.Stmt, bool) {
	keyword := p.previous()
	var value ast.Expr
	var ok bool
	if !p.check(token.Semicolon) {
		value, ok = p.assignment()
		if !ok {
			return nil, false
		}
	}
	if _, ok := p.consume(token.Semicolon, "Expect ';' after return value."); !ok {
		return nil, false
	}
	return &ast.ReturnStmt{Keyword: keyword, Value: value}, true
}

func (p *Parser) breakStatement() (ast.Stmt, bool) {
	keyword := p.previous()
	if _, ok := p.consume(token.Semicolon, "Expect ';' after 'break'."); !ok {
		return nil, false
	}
	return &ast.BreakStmt{Keyword: keyword}, true
}

func (p *Parser) expressionStatement() (ast.Stmt, bool) {
	expr, ok := p.assignment()
	if !ok {
		return nil, false
	}
	if _, ok := p.consume(token.Semicolon, "Expect ';' after expression."); !ok {
		return nil, false
	}
	return &ast.ExpressionStmt{Expression: expr}, true
}

// --- expressions, precedence lowest to highest ---

func (p *Parser) assignment() (ast.Expr, bool) {
	expr, ok := p.or()
	if !ok {
		return nil, false
	}

	if p.match(token.Equal, token.PlusEqual, token.MinusEqual, token.StarEqual) {
		op := p.previous()
		value, ok := p.assignment()
		if !ok {
			return nil, false
		}

		name, ok := asVariableName(expr)
		if !ok {
			p.addError(op, "Invalid assignment target.")
			return nil, false
		}

		if op.Kind != token.Equal {
			value = &ast.Binary{Left: &ast.Variable{Name: name}, Operator: compoundBase(op), Right: value}
		}
		return &ast.Assign{Name: name, Value: value}, true
	}

	return expr, true
}

func asVariableName(expr ast.Expr) (token.Token, bool) {
	v, ok := expr.(*ast.Variable)
	if !ok {
		return token.Token{}, false
	}
	return v.Name, true
}

// compoundBase maps a compound-assignment operator token to the plain
// binary operator it desugars to (`+=` becomes a `+`, etc.), preserving
// the original operator's source position for error reporting.
func compoundBase(op token.Token) token.Token {
	base := op
	switch op.Kind {
	case token.PlusEqual:
		base.Kind = token.Plus
	case token.MinusEqual:
		base.Kind = token.Minus
	case token.StarEqual:
		base.Kind = token.Star
	}
	return base
}

func (p *Parser) or() (ast.Expr, bool) {
	expr, ok := p.and()
	if !ok {
		return nil, false
	}
	for p.match(token.Or) {
		op := p.previous()
		right, ok := p.and()
		if !ok {
			return nil, false
		}
		expr = &ast.Logical{Left: expr, Operator: op, Right: right}
	}
	return expr, true
}

func (p *Parser) and() (ast.Expr, bool) {
	expr, ok := p.equality()
	if !ok {
		return nil, false
	}
	for p.match(token.And) {
		op := p.previous()
		right, ok := p.equality()
		if !ok {
			return nil, false
		}
		expr = &ast.Logical{Left: expr, Operator: op, Right: right}
	}
	return expr, true
}

func (p *Parser) equality() (ast.Expr, bool) {
	return p.binary(p.comparison, token.BangEqual, token.EqualEqual)
}

func (p *Parser) comparison() (ast.Expr, bool) {
	return p.binary(p.term, token.Greater, token.GreaterEqual, token.Less, token.LessEqual)
}

func (p *Parser) term() (ast.Expr, bool) {
	return p.binary(p.factor, token.Minus, token.Plus)
}

func (p *Parser) factor() (ast.Expr, bool) {
	return p.binary(p.unary, token.Slash, token.Star)
}

// binary parses a left-associative chain of next-tighter-precedence
// operands separated by any of kinds.
func (p *Parser) binary(next func() (ast.Expr, bool), kinds ...token.Kind) (ast.Expr, bool) {
	expr, ok := next()
	if !ok {
		return nil, false
	}
	for p.match(kinds...) {
		op := p.previous()
		right, ok := next()
		if !ok {
			return nil, false
		}
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr, true
}

func (p *Parser) unary() (ast.Expr, bool) {
	if p.match(token.Bang, token.Minus) {
		op := p.previous()
		right, ok := p.unary()
		if !ok {
			return nil, false
		}
		return &ast.Unary{Operator: op, Right: right}, true
	}
	return p.call()
}

func (p *Parser) call() (ast.Expr, bool) {
	expr, ok := p.primary()
	if !ok {
		return nil, false
	}

	for {
		if p.match(token.LeftParen) {
			expr, ok = p.finishCall(expr)
			if !ok {
				return nil, false
			}
			continue
		}
		break
	}
	return expr, true
}

// finishCall parses the argument list. Each argument is parsed as an
// assignment-level expression (no trailing ';') and stored as an
// ast.Expr.
func (p *Parser) finishCall(callee ast.Expr) (ast.Expr, bool) {
	var arguments []ast.Expr
	if !p.check(token.RightParen) {
		for {
			if len(arguments) >= maxArity {
				p.addError(p.current(), "Can't have more than 255 arguments.")
			}
			arg, ok := p.assignment()
			if !ok {
				return nil, false
			}
			arguments = append(arguments, arg)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	paren, ok := p.consume(token.RightParen, "Expect ')' after arguments.")
	if !ok {
		return nil, false
	}
	return &ast.Call{Callee: callee, Paren: paren, Arguments: arguments}, true
}

func (p *Parser) primary() (ast.Expr, bool) {
	switch {
	case p.match(token.False):
		return &ast.Literal{Value: false}, true
	case p.match(token.True):
		return &ast.Literal{Value: true}, true
	case p.match(token.Nil):
		return &ast.Literal{Value: nil}, true
	case p.match(token.Number, token.String):
		return &ast.Literal{Value: p.previous().Literal}, true
	case p.match(token.Identifier):
		return &ast.Variable{Name: p.previous()}, true
	case p.match(token.Fun):
		params, body, ok := p.functionTail("lambda")
		if !ok {
			return nil, false
		}
		return &ast.FunctionExpr{Params: params, Body: body}, true
	case p.match(token.LeftParen):
		expr, ok := p.assignment()
		if !ok {
			return nil, false
		}
		if _, ok := p.consume(token.RightParen, "Expect ')' after expression."); !ok {
			return nil, false
		}
		return &ast.Grouping{Expression: expr}, true
	default:
		p.addError(p.current(), "Expect expression.")
		return nil, false
	}
}
