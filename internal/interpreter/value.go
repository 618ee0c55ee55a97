package interpreter

import (
	"math"
	"strconv"
	"strings"
)

// Callable is a first-class invocable value: a built-in host function
// or a user-defined function carrying its closure.
type Callable interface {
	Arity() int
	Call(in *Interpreter, arguments []interface{}) (interface{}, error)
	String() string
}

// IsTruthy implements the language's truthiness rule: Nil and
// Boolean(false) are falsey, everything else (including 0 and "") is
// truthy.
func IsTruthy(v interface{}) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// Stringify renders a value the way `print` and the REPL echo do.
func Stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		return formatNumber(val)
	case string:
		return val
	case Callable:
		return val.String()
	default:
		return ""
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	// Shortest round-trippable representation, with integers printed
	// without a trailing ".0" the way the original formatter does.
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if f == float64(int64(f)) && !strings.ContainsAny(s, "eE.") {
		return s
	}
	if strings.Contains(s, "e") {
		// Avoid scientific notation for ordinary integral magnitudes;
		// fall back to decimal form.
		s = strconv.FormatFloat(f, 'f', -1, 64)
	}
	return s
}
