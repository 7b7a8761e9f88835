package importer

import (
	"fmt"
	"strings"
)

// maxDisplayedErrors caps how many row messages Error() renders. The
// underlying counts and the full RowErrors list stay exact.
const maxDisplayedErrors = 10

type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportError is the aggregate failure of a batch parse. Either the header
// phase failed (MissingHeaders set, zero rows processed) or one or more rows
// failed (RowErrors set, SuccessCount+FailureCount == total rows).
type ImportError struct {
	MissingHeaders []string
	SuccessCount   int
	FailureCount   int
	RowErrors      []RowError
}

func (e *ImportError) Error() string {
	if len(e.MissingHeaders) > 0 {
		return fmt.Sprintf("missing required headers: %s", strings.Join(e.MissingHeaders, ", "))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "validation failed with %d errors", e.FailureCount)
	shown := e.RowErrors
	if len(shown) > maxDisplayedErrors {
		shown = shown[:maxDisplayedErrors]
	}
	for _, re := range shown {
		fmt.Fprintf(&b, "\nrow %d: %s", re.Row, re.Message)
	}
	if len(e.RowErrors) > len(shown) {
		fmt.Fprintf(&b, "\n... and %d more", len(e.RowErrors)-len(shown))
	}
	return b.String()
}

func newHeaderError(missing []string) *ImportError {
	return &ImportError{MissingHeaders: missing}
}
