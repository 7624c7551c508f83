package spec

import "fmt"

type SyntaxError struct {
	message string
}

func newSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		message: message,
	}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: %s", e.message)
}

var (
	synErrNoProduction     = newSyntaxError("a grammar must have at least one production")
	synErrNoSeparator      = newSyntaxError("a production needs the separator `::` between its head and body")
	synErrExtraSeparator   = newSyntaxError("a production must contain exactly one separator `::`")
	synErrNoProductionName = newSyntaxError("a production head is missing")
	synErrInvalidHead      = newSyntaxError("a production head must be a single symbol")
	synErrNoBody           = newSyntaxError("a production body is missing; write `empty` for an empty body")
	synErrEmptyWithSymbols = newSyntaxError("`empty` cannot be mixed with other symbols")
	synErrInvalidToken     = newSyntaxError("invalid token")
)
