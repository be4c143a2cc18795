package transform

import (
	"fmt"

	"github.com/rgehrsitz/patrimoine/internal/domain"
)

// ScenarioTransform is a composable edit of a scenario. Transforms never
// touch the household: they only add or replace overrides, reading the
// household to resolve the value currently in effect.
type ScenarioTransform interface {
	// Apply returns a new scenario; base is left untouched.
	Apply(base *domain.Scenario, h *domain.Household) (*domain.Scenario, error)

	// Name returns a short identifier for this transform (e.g., "postpone_retirement").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks the parameters against the scenario without applying it.
	Validate(base *domain.Scenario, h *domain.Household) error
}

// ApplyTransforms applies transforms in order, each receiving the output of
// the previous one.
func ApplyTransforms(base *domain.Scenario, h *domain.Household, transforms []ScenarioTransform) (*domain.Scenario, error) {
	if base == nil {
		return nil, fmt.Errorf("base scenario cannot be nil")
	}
	if h == nil {
		return nil, fmt.Errorf("household cannot be nil")
	}

	if len(transforms) == 0 {
		return base.DeepCopy(), nil
	}

	current := base
	for i, transform := range transforms {
		if transform == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current, h); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current, h)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}

// effectiveAdult resolves adult as the scenario currently sees them.
func effectiveAdult(transform string, base *domain.Scenario, h *domain.Household, adult string) (*domain.Adult, error) {
	if adult == "" {
		return nil, NewTransformError(transform, "validate", "adult name cannot be empty", nil)
	}
	if base == nil {
		return nil, NewTransformError(transform, "validate", "base scenario cannot be nil", nil)
	}
	if h == nil {
		return nil, NewTransformError(transform, "validate", "household cannot be nil", nil)
	}
	a, ok := base.Apply(h).Adult(adult)
	if !ok {
		return nil, NewTransformError(transform, "validate", fmt.Sprintf("adult %s not found in household", adult), nil)
	}
	return a, nil
}

// override copies base and hands the overrides of adult to edit.
func override(base *domain.Scenario, adult string, edit func(o *domain.AdultOverrides)) *domain.Scenario {
	modified := base.DeepCopy()
	o := modified.Adults[adult]
	edit(&o)
	modified.Adults[adult] = o
	return modified
}
