package collections

import (
	"errors"
	"fmt"
)

var (
	ErrDateRequired    = errors.New("collections: date is required")
	ErrCategoryInvalid = errors.New("collections: waste category is not recognized")
	ErrTonsNegative    = errors.New("collections: tonnage cannot be negative")
	ErrWindowInvalid   = errors.New("collections: window must cover at least one day")
)

// NotFoundError reports a missing collection record.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Key)
}
