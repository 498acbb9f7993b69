package containers

import (
	"errors"
	"fmt"
)

var (
	ErrCodeRequired          = errors.New("containers: code is required")
	ErrCodeExists            = errors.New("containers: code already exists")
	ErrNeighborhoodRequired  = errors.New("containers: neighborhood is required")
	ErrTypeInvalid           = errors.New("containers: container type is invalid")
	ErrCategoryInvalid       = errors.New("containers: waste category is invalid")
	ErrFillLevelOutOfRange   = errors.New("containers: fill level must be between 0 and 100")
	ErrCoordinatesOutOfRange = errors.New("containers: coordinates are out of range")
	ErrIDRequired            = errors.New("containers: container id required")
	ErrStatusNotSupported    = errors.New("containers: lid status is only reported by smart bins")
	ErrStatusInvalid         = errors.New("containers: lid status is invalid")
)

// NotFoundError represents missing records from repository lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}
