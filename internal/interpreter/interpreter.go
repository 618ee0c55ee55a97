// Package interpreter walks a parsed statement list against a chain of
// lexical environments, evaluating expressions to values.
package interpreter

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/thorn-lang/thorn/internal/ast"
	"github.com/thorn-lang/thorn/internal/diagnostics"
	"github.com/thorn-lang/thorn/internal/token"
)

var debugEnabled = os.Getenv("THORN_DEBUG_EVAL") != ""

// RuntimeError is a reported error carrying the source position of the
// token that triggered it, so the diagnostics Reporter can render the
// usual three-line format.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

func runtimeErrorAt(tok token.Token, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

// Interpreter executes statement trees. REPL mode keeps one
// Interpreter (and its global Environment) alive across lines; file
// mode constructs a fresh one per run.
type Interpreter struct {
	Globals  *Environment
	reporter *diagnostics.Reporter
	out      *bufio.Writer
	repl     bool
}

// New constructs an Interpreter reporting through reporter and writing
// `print` output to out. repl controls whether bare expression
// statements echo their value (REPL behavior) or are silent (file
// mode).
func New(reporter *diagnostics.Reporter, out io.Writer, repl bool) *Interpreter {
	globals := NewEnvironment(nil)
	globals.Define("clock", clockBuiltin())

	return &Interpreter{
		Globals:  globals,
		reporter: reporter,
		out:      bufio.NewWriter(out),
		repl:     repl,
	}
}

// Interpret executes statements against the global environment,
// halting and reporting on the first RuntimeError (the evaluator's
// short-circuit-on-error rule). It returns the value of the final
// expression statement, used by the REPL echo; for other statement
// kinds that is Nil.
func (in *Interpreter) Interpret(statements []ast.Stmt) interface{} {
	defer in.out.Flush()

	var last interface{}
	for _, stmt := range statements {
		value, sig, err := in.exec(stmt, in.Globals)
		if err != nil {
			in.report(err)
			return nil
		}
		if sig != nil {
			// A break/return reaching the top level has no enclosing
			// loop or call to consume it; treat it as the runtime
			// error the spec's evaluator would raise.
			in.report(topLevelSignalError(sig))
			return nil
		}
		last = value
	}
	return last
}

func topLevelSignalError(sig *Signal) error {
	if sig.Kind == signalBreak {
		return runtimeErrorAt(sig.At, "Can not break outside of a loop.")
	}
	return runtimeErrorAt(sig.At, "Can not return outside of a function.")
}

func (in *Interpreter) report(err error) {
	if rerr, ok := err.(*RuntimeError); ok {
		in.reporter.Report(rerr.Token.Position.Line, rerr.Token.Position.Column, diagnostics.RuntimeError, rerr.Message)
		return
	}
	in.reporter.Report(0, 0, diagnostics.RuntimeError, err.Error())
}

// exec executes a single statement, returning its expression value (if
// it was an expression statement, for the REPL/last-value
// protocol), an out-of-band control signal (break/return), or an
// error.
func (in *Interpreter) exec(stmt ast.Stmt, env *Environment) (interface{}, *Signal, error) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		value, err := in.eval(s.Expression, env)
		if err != nil {
			return nil, nil, err
		}
		if in.repl {
			in.printLine(value)
		}
		return value, nil, nil

	case *ast.PrintStmt:
		value, err := in.eval(s.Expression, env)
		if err != nil {
			return nil, nil, err
		}
		in.printLine(value)
		return nil, nil, nil

	case *ast.VarStmt:
		var value interface{}
		if s.Initializer != nil {
			var err error
			value, err = in.eval(s.Initializer, env)
			if err != nil {
				return nil, nil, err
			}
		}
		env.Define(s.Name.Lexeme, value)
		return nil, nil, nil

	case *ast.BlockStmt:
		sig, err := in.executeBlock(s.Statements, NewEnvironment(env))
		return nil, sig, err

	case *ast.IfStmt:
		cond, err := in.eval(s.Condition, env)
		if err != nil {
			return nil, nil, err
		}
		if IsTruthy(cond) {
			_, sig, err := in.exec(s.Then, env)
			return nil, sig, err
		} else if s.Else != nil {
			_, sig, err := in.exec(s.Else, env)
			return nil, sig, err
		}
		return nil, nil, nil

	case *ast.WhileStmt:
		for {
			cond, err := in.eval(s.Condition, env)
			if err != nil {
				return nil, nil, err
			}
			if !IsTruthy(cond) {
				break
			}
			_, sig, err := in.exec(s.Body, env)
			if err != nil {
				return nil, nil, err
			}
			if sig != nil {
				if sig.Kind == signalBreak {
					break
				}
				// signalReturn: keep unwinding past this loop.
				return nil, sig, nil
			}
		}
		return nil, nil, nil

	case *ast.BreakStmt:
		return nil, breakSignal(s.Keyword), nil

	case *ast.ReturnStmt:
		var value interface{}
		if s.Value != nil {
			var err error
			value, err = in.eval(s.Value, env)
			if err != nil {
				return nil, nil, err
			}
		}
		return nil, returnSignal(s.Keyword, value), nil

	case *ast.FunctionStmt:
		fn := &Function{
			name:    s.Name.Lexeme,
			params:  paramNames(s.Params),
			body:    s.Body,
			closure: env,
		}
		env.Define(s.Name.Lexeme, fn)
		return nil, nil, nil

	default:
		return nil, nil, fmt.Errorf("interpreter: unhandled statement %T", stmt)
	}
}

func paramNames(params []token.Token) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Lexeme
	}
	return names
}

// executeBlock runs statements against env (a fresh child frame for
// ordinary blocks, or a call frame for function bodies), stopping on
// the first error or out-of-band signal.
func (in *Interpreter) executeBlock(statements []ast.Stmt, env *Environment) (*Signal, error) {
	for _, stmt := range statements {
		_, sig, err := in.exec(stmt, env)
		if err != nil {
			return nil, err
		}
		if sig != nil {
			return sig, nil
		}
	}
	return nil, nil
}

func (in *Interpreter) printLine(value interface{}) {
	fmt.Fprintln(in.out, Stringify(value))
	in.out.Flush()
}

// eval evaluates expr to a value.
func (in *Interpreter) eval(expr ast.Expr, env *Environment) (interface{}, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil

	case *ast.Grouping:
		return in.eval(e.Expression, env)

	case *ast.Variable:
		if v, ok := env.Get(e.Name.Lexeme); ok {
			return v, nil
		}
		suggestion := diagnostics.Suggest(e.Name.Lexeme, env.Names())
		return nil, runtimeErrorAt(e.Name, "Undefined variable '%s'.%s", e.Name.Lexeme, suggestion)

	case *ast.Assign:
		value, err := in.eval(e.Value, env)
		if err != nil {
			return nil, err
		}
		if !env.Bind(e.Name.Lexeme, value) {
			suggestion := diagnostics.Suggest(e.Name.Lexeme, env.Names())
			return nil, runtimeErrorAt(e.Name, "Undefined variable '%s'.%s", e.Name.Lexeme, suggestion)
		}
		return value, nil

	case *ast.Unary:
		right, err := in.eval(e.Right, env)
		if err != nil {
			return nil, err
		}
		switch e.Operator.Kind {
		case token.Minus:
			n, ok := right.(float64)
			if !ok {
				return nil, runtimeErrorAt(e.Operator, "Operator '-' can only be applied to numbers.")
			}
			return -n, nil
		case token.Bang:
			return !IsTruthy(right), nil
		}
		return nil, runtimeErrorAt(e.Operator, "Unknown unary operator.")

	case *ast.Logical:
		left, err := in.eval(e.Left, env)
		if err != nil {
			return nil, err
		}
		if e.Operator.Kind == token.Or {
			if IsTruthy(left) {
				return left, nil
			}
			return in.eval(e.Right, env)
		}
		// `and`
		if !IsTruthy(left) {
			return left, nil
		}
		return in.eval(e.Right, env)

	case *ast.Binary:
		return in.evalBinary(e, env)

	case *ast.Call:
		return in.evalCall(e, env)

	case *ast.FunctionExpr:
		return &Function{params: paramNames(e.Params), body: e.Body, closure: env}, nil

	default:
		return nil, fmt.Errorf("interpreter: unhandled expression %T", expr)
	}
}

func (in *Interpreter) evalBinary(e *ast.Binary, env *Environment) (interface{}, error) {
	left, err := in.eval(e.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := in.eval(e.Right, env)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Kind {
	case token.EqualEqual:
		return valuesEqual(left, right), nil
	case token.BangEqual:
		return !valuesEqual(left, right), nil
	case token.Plus:
		return evalAdd(e.Operator, left, right)
	case token.Minus, token.Star, token.Greater, token.GreaterEqual, token.Less, token.LessEqual:
		return evalNumeric(e.Operator, left, right)
	case token.Slash:
		return evalDivide(e.Operator, left, right)
	}
	return nil, runtimeErrorAt(e.Operator, "Unknown binary operator.")
}

func evalAdd(op token.Token, left, right interface{}) (interface{}, error) {
	ln, lok := left.(float64)
	rn, rok := right.(float64)
	if lok && rok {
		return ln + rn, nil
	}
	ls, lsok := left.(string)
	rs, rsok := right.(string)
	if lsok && rsok {
		return ls + rs, nil
	}
	if lsok && rok {
		return ls + Stringify(rn), nil
	}
	if lok && rsok {
		return Stringify(ln) + rs, nil
	}
	return nil, runtimeErrorAt(op, "Operands must be two numbers or two strings.")
}

func evalNumeric(op token.Token, left, right interface{}) (interface{}, error) {
	ln, lok := left.(float64)
	rn, rok := right.(float64)
	if !lok || !rok {
		return nil, runtimeErrorAt(op, "Operands must be numbers.")
	}
	switch op.Kind {
	case token.Minus:
		return ln - rn, nil
	case token.Star:
		return ln * rn, nil
	case token.Greater:
		return ln > rn, nil
	case token.GreaterEqual:
		return ln >= rn, nil
	case token.Less:
		return ln < rn, nil
	case token.LessEqual:
		return ln <= rn, nil
	}
	return nil, runtimeErrorAt(op, "Unknown numeric operator.")
}

func evalDivide(op token.Token, left, right interface{}) (interface{}, error) {
	ln, lok := left.(float64)
	rn, rok := right.(float64)
	if !lok || !rok {
		return nil, runtimeErrorAt(op, "Operands must be numbers.")
	}
	if ln == 0.0 && rn == 0.0 {
		return nil, runtimeErrorAt(op, "Can not divide by 0")
	}
	return ln / rn, nil
}

// valuesEqual implements the language's (idiosyncratic) equality
// table, including the Boolean/other-type quirk inherited from the
// original interpreter: `Boolean(b) == <number|string>` yields `b`
// rather than `false`. This is preserved for behavioral parity even
// though it is likely a defect.
func valuesEqual(left, right interface{}) bool {
	if left == nil && right == nil {
		return true
	}
	if left == nil || right == nil {
		return false
	}

	lb, lbok := left.(bool)
	rb, rbok := right.(bool)
	if lbok && rbok {
		return lb == rb
	}
	if lbok {
		return lb
	}
	if rbok {
		return rb
	}

	switch lv := left.(type) {
	case float64:
		rv, ok := right.(float64)
		return ok && lv == rv
	case string:
		rv, ok := right.(string)
		return ok && lv == rv
	default:
		return false
	}
}

func (in *Interpreter) evalCall(e *ast.Call, env *Environment) (interface{}, error) {
	callee, err := in.eval(e.Callee, env)
	if err != nil {
		return nil, err
	}

	arguments := make([]interface{}, 0, len(e.Arguments))
	for _, argExpr := range e.Arguments {
		arg, err := in.eval(argExpr, env)
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, arg)
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, runtimeErrorAt(e.Paren, "Can only perform calls on functions and classes.")
	}

	if len(arguments) != callable.Arity() {
		return nil, runtimeErrorAt(e.Paren, "Expected %d arguments but got %d.", callable.Arity(), len(arguments))
	}

	if debugEnabled {
		slog.Debug("interpreter: call", "callee", callable.String(), "argc", len(arguments))
	}

	return callable.Call(in, arguments)
}
