package billing

import (
	"strings"
	"time"

	"github.com/aninayuwoki/cobranza/models"
)

// ValidationError is a bad-input rejection carrying the message shown to
// the caller. It is never fatal and never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) *ValidationError { return &ValidationError{Message: msg} }

// Validate checks a candidate student's fields in order; the first failing
// rule wins. It never mutates the candidate.
//
// Note the startDate asymmetry: an absent key is fine (defaults apply at
// creation), a present-but-empty value is an error.
func Validate(in models.StudentInput) *ValidationError {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return invalid("missing required field: name")
	}
	if in.WeeklyAmount != nil {
		if !in.WeeklyAmount.Valid {
			return invalid("weeklyAmount is not a valid number")
		}
		if in.WeeklyAmount.Value < 0 {
			return invalid("weeklyAmount must be non-negative")
		}
	}
	if in.StartDate != nil {
		if *in.StartDate == "" {
			return invalid("start date cannot be empty")
		}
		if _, err := time.Parse(models.DateLayout, *in.StartDate); err != nil {
			return invalid("invalid date format")
		}
	}
	return nil
}
