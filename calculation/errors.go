package calculation

import "fmt"

// CalculationError reports a violated precondition of a formula or an
// unconvertible unit pair. Callers never see a raw arithmetic fault.
type CalculationError struct {
	Field   string
	Message string
}

func (e *CalculationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func newCalculationError(field string, format string, args ...any) *CalculationError {
	return &CalculationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}
