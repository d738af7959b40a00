package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation          = errors.New("validation error")
	ErrDuplicateItem       = errors.New("duplicate item")
	ErrNotFound            = errors.New("not found")
	ErrConflictOnAggregate = errors.New("conflict on aggregate")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	ErrInvalidQuantity   = fmt.Errorf("%w: invalid quantity", ErrValidation)
	ErrInvalidTransition = fmt.Errorf("%w: invalid status transition", ErrValidation)
	ErrForbidden         = errors.New("forbidden")
)

// Validation wraps a message as an ErrValidation.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Upstream marks err as a failure of the persistence collaborator while keeping the cause
// reachable through errors.Is / errors.As.
func Upstream(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(ErrUpstreamUnavailable, err))
}

type LineError struct {
	ProductID string
	Err       error
}

func (e LineError) Error() string {
	return fmt.Sprintf("product %s: %v", e.ProductID, e.Err)
}

func (e LineError) Unwrap() error { return e.Err }

// CheckoutError is returned when any line of a checkout bundle fails. Nothing of the
// bundle is persisted when it is returned.
type CheckoutError struct {
	Lines []LineError
}

func (e *CheckoutError) Error() string {
	parts := make([]string, 0, len(e.Lines))
	for _, l := range e.Lines {
		parts = append(parts, l.Error())
	}
	return "checkout failed: " + strings.Join(parts, "; ")
}

func (e *CheckoutError) Unwrap() []error {
	out := make([]error, 0, len(e.Lines))
	for _, l := range e.Lines {
		out = append(out, l)
	}
	return out
}

// FailedProducts lists the culprit product ids in line order.
func (e *CheckoutError) FailedProducts() []string {
	ids := make([]string, 0, len(e.Lines))
	for _, l := range e.Lines {
		ids = append(ids, l.ProductID)
	}
	return ids
}
