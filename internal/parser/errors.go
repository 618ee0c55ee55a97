package parser

import "github.com/thorn-lang/thorn/internal/token"

// ParseError carries the offending token so callers can render a
// three-line diagnostic without re-parsing the message text.
type ParseError struct {
	Token   token.Token
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}
