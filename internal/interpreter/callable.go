package interpreter

import (
	"fmt"
	"time"

	"github.com/thorn-lang/thorn/internal/ast"
)

// Function is a user-defined callable: a parameter list, a body, and
// the environment chain captured at the point of definition (lexical
// closure).
type Function struct {
	name    string // "" for anonymous function expressions
	params  []string
	body    []ast.Stmt
	closure *Environment
}

func (f *Function) Arity() int { return len(f.params) }

func (f *Function) Call(in *Interpreter, arguments []interface{}) (interface{}, error) {
	frame := NewEnvironment(f.closure)
	for i, param := range f.params {
		frame.Define(param, arguments[i])
	}

	sig, err := in.executeBlock(f.body, frame)
	if err != nil {
		return nil, err
	}
	if sig == nil {
		return nil, nil
	}
	if sig.Kind == signalReturn {
		return sig.Value, nil
	}
	// A break reaching the call boundary had no enclosing loop to
	// consume it inside this function body.
	return nil, runtimeErrorAt(sig.At, "Can not break outside of a loop.")
}

func (f *Function) String() string {
	return "<fn>"
}

// NativeFunction wraps a host-implemented built-in such as clock().
type NativeFunction struct {
	name  string
	arity int
	fn    func(in *Interpreter, arguments []interface{}) interface{}
}

func (n *NativeFunction) Arity() int { return n.arity }

func (n *NativeFunction) Call(in *Interpreter, arguments []interface{}) (interface{}, error) {
	return n.fn(in, arguments), nil
}

func (n *NativeFunction) String() string {
	return fmt.Sprintf("<native fn %s>", n.name)
}

// clockBuiltin implements the single mandated standard-library
// function: wall-clock seconds since the Unix epoch.
func clockBuiltin() *NativeFunction {
	return &NativeFunction{
		name:  "clock",
		arity: 0,
		fn: func(in *Interpreter, arguments []interface{}) interface{} {
			return float64(time.Now().UnixNano()) / float64(time.Second)
		},
	}
}
