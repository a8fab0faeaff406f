package planner

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// WarnMissingFields is the message shown when a submission lacks a
// destination or a day count.
const WarnMissingFields = "Please provide at least a Destination and Number of Days."

var validate = validator.New()

// ValidationError flags a submission with blank required fields. Presence is
// the only thing checked; field content is never judged.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string { return WarnMissingFields }

// ValidateRequest gates a submission before any model call.
func ValidateRequest(req TripRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	var missing []string
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			missing = append(missing, fe.Field())
		}
	}
	return &ValidationError{Missing: missing}
}
