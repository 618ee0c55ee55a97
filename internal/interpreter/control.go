package interpreter

import "github.com/thorn-lang/thorn/internal/token"

// signalKind distinguishes the non-local control-flow events that must
// unwind through block and loop execution without being modeled as Go
// panics: a break out of the innermost loop, or a return out of the
// innermost call.
type signalKind int

const (
	signalBreak signalKind = iota
	signalReturn
)

// Signal is threaded back out of statement execution instead of being
// raised as a panic, per the evaluator's three-way (plus error)
// outcome model: normal completion, break, return(value), or a
// RuntimeError (carried separately as a Go error).
type Signal struct {
	Kind  signalKind
	Value interface{}  // meaningful only for signalReturn
	At    token.Token  // the break/return keyword, for top-level error reporting
}

func breakSignal(at token.Token) *Signal {
	return &Signal{Kind: signalBreak, At: at}
}

func returnSignal(at token.Token, value interface{}) *Signal {
	return &Signal{Kind: signalReturn, At: at, Value: value}
}
