package neighborhoods

import (
	"errors"
	"fmt"
)

var (
	ErrNameRequired = errors.New("neighborhoods: name is required")
	ErrKeyInvalid   = errors.New("neighborhoods: key cannot be normalized")
)

// NotFoundError reports a missing neighborhood.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Key)
}
