package complaints

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-wasteops/internal/domain"
)

var (
	ErrNeighborhoodRequired = errors.New("complaints: neighborhood is required")
	ErrTypeInvalid          = errors.New("complaints: complaint type is invalid")
	ErrIDRequired           = errors.New("complaints: complaint id required")
	ErrStatusInvalid        = errors.New("complaints: status is invalid")
	ErrStatusTransition     = errors.New("complaints: status transition not allowed")
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

// StatusTransitionError captures rejected lifecycle moves.
type StatusTransitionError struct {
	From domain.ComplaintStatus
	To   domain.ComplaintStatus
}

func (e *StatusTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrStatusTransition.Error(), e.From, e.To)
}

func (e *StatusTransitionError) Unwrap() error {
	return ErrStatusTransition
}
