package resolver

import (
	"errors"
	"fmt"
)

var errNilResolver = errors.New("resolver: not initialized")

// UnknownFieldError reports an options request for a column that is not
// a recognized foreign key.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("resolver: %q is not a foreign key field", e.Field)
}

// LookupExhaustedError reports that every upstream tier failed or came
// back empty for an entity.
type LookupExhaustedError struct {
	Entity string
}

func (e *LookupExhaustedError) Error() string {
	return fmt.Sprintf("resolver: no upstream tier produced records for %q", e.Entity)
}
