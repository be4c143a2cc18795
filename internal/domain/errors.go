package domain

import "errors"

// Sentinel errors shared by the engines. Callers wrap them with context and
// test them with errors.Is.
var (
	// ErrGridSliceNotFound is returned when a threshold grid has no slice at
	// or below the looked-up value.
	ErrGridSliceNotFound = errors.New("grid slice not found")

	// ErrOutOfBounds signals that a branch precondition does not hold, e.g.
	// asking for discount quarters when the insured duration already reaches
	// the reference duration.
	ErrOutOfBounds = errors.New("out of bounds")

	// ErrInvalidOwnership is returned when an ownership breaks its share-sum
	// invariant. After a transfer it means the input was already inconsistent.
	ErrInvalidOwnership = errors.New("invalid ownership")

	// ErrImpossibleToCompute is returned when an upstream lookup failed.
	ErrImpossibleToCompute = errors.New("impossible to compute")

	// ErrInvalidClause is returned for a life-insurance beneficiary clause that
	// does not match its dismemberment flag.
	ErrInvalidClause = errors.New("invalid life insurance clause")

	// ErrMissingFiscalOption is returned when a spouse and children both survive
	// and no fiscal option was chosen.
	ErrMissingFiscalOption = errors.New("fiscal option required when spouse and children survive")

	// ErrNoHeir is returned when a decedent's right has nobody to pass to.
	ErrNoHeir = errors.New("no surviving heir")

	// ErrUnsortedGrid is returned by grid initialization when floors are not ascending.
	ErrUnsortedGrid = errors.New("grid floors must be ascending")
)
