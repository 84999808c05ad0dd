package lower

import "fmt"

// InvariantError is raised when the lowerer's internal invariants are
// violated — an array type without a declared size, an unknown uniform
// scope, a malformed AST (spec §7). It aborts emission; partial output is
// undefined on failure.
type InvariantError struct {
	Where   string
	Message string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("lower: %s: %s", e.Where, e.Message)
}

func invariant(where, format string, args ...any) error {
	return &InvariantError{Where: where, Message: fmt.Sprintf(format, args...)}
}
