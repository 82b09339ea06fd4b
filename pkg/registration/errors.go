package registration

import "errors"

var (
	// ErrFormNotOpen is returned by draft operations when no form is open
	ErrFormNotOpen = errors.New("registration form is not open")
	// ErrUnknownTask is returned when toggling a task outside the draft's category
	ErrUnknownTask = errors.New("task does not belong to the selected category")
	// ErrUnknownSlot is returned when toggling an availability slot that does not exist
	ErrUnknownSlot = errors.New("unknown availability slot")
)

// Reason names the first requirement a draft fails
type Reason string

const (
	ReasonMissingPersonalInfo    Reason = "missing-personal-info"
	ReasonMissingMotivation      Reason = "missing-motivation"
	ReasonTermsNotAccepted       Reason = "terms-not-accepted"
	ReasonNoTaskSelected         Reason = "no-task-selected"
	ReasonNoAvailabilitySelected Reason = "no-availability-selected"
)

var reasonMessages = map[Reason]string{
	ReasonMissingPersonalInfo:    "Please fill in all required personal information.",
	ReasonMissingMotivation:      "Please tell us why you want to volunteer.",
	ReasonTermsNotAccepted:       "Please accept the terms and conditions.",
	ReasonNoTaskSelected:         "Please select at least one task.",
	ReasonNoAvailabilitySelected: "Please select at least one availability slot.",
}

// ValidationError reports a draft that cannot be submitted yet
type ValidationError struct {
	Reason Reason
}

func (e *ValidationError) Error() string {
	return "validation failed: " + string(e.Reason)
}

// Message is the user-facing text for the failed requirement
func (e *ValidationError) Message() string {
	if msg, ok := reasonMessages[e.Reason]; ok {
		return msg
	}
	return "Please complete the registration form."
}

// IsValidationError reports whether err is a *ValidationError with the given reason.
// An empty reason matches any validation error.
func IsValidationError(err error, reason Reason) bool {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	return reason == "" || verr.Reason == reason
}
