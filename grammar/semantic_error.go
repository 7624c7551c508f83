package grammar

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	semErrNoProduction        = newSemanticError("a grammar needs at least one production")
	semErrReservedSymbol      = newSemanticError("reserved symbols cannot be used in a grammar")
	semErrDuplicateProduction = newSemanticError("duplicate production")
)
