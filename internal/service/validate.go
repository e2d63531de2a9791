package service

import (
	"fmt"
	"time"

	"github.com/alexanderramin/crewplan/internal/calc"
)

// ValidationError rejects a single input field with enough detail for the
// caller to present it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func validationErrorf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func validateAssignmentHours(hours float64) error {
	if hours < 0 || hours > calc.MaxAssignmentHours {
		return validationErrorf("hours", "must be between 0 and %g, got %g", calc.MaxAssignmentHours, hours)
	}
	return nil
}

func validateRequirementHours(hours float64) error {
	if hours < 0 || hours > calc.MaxRequirementHours {
		return validationErrorf("requiredHours", "must be between 0 and %g, got %g", calc.MaxRequirementHours, hours)
	}
	return nil
}

func validateWeekCount(n int) error {
	if n < calc.MinTimelineWeeks || n > calc.MaxTimelineWeeks {
		return validationErrorf("weekCount", "must be between %d and %d, got %d", calc.MinTimelineWeeks, calc.MaxTimelineWeeks, n)
	}
	return nil
}

func validateCapacity(hours float64) error {
	if hours < 0 {
		return validationErrorf("hoursPerWeek", "must be non-negative, got %g", hours)
	}
	return nil
}

func validateNotZero(field string, t time.Time) error {
	if t.IsZero() {
		return validationErrorf(field, "is required")
	}
	return nil
}

func validateRequired(field, value string) error {
	if value == "" {
		return validationErrorf(field, "is required")
	}
	return nil
}
