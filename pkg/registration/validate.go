package registration

import (
	"strings"

	"github.com/esamadhan/volunteer-api/pkg/models"
)

// Validate checks a draft in a fixed order and returns the first failed rule
func Validate(d *models.RegistrationDraft) error {
	if !personalInfoComplete(d.Personal) {
		return &ValidationError{Reason: ReasonMissingPersonalInfo}
	}
	if strings.TrimSpace(d.Motivation) == "" {
		return &ValidationError{Reason: ReasonMissingMotivation}
	}
	if !d.TermsAccepted {
		return &ValidationError{Reason: ReasonTermsNotAccepted}
	}
	if len(d.TaskIDs) == 0 {
		return &ValidationError{Reason: ReasonNoTaskSelected}
	}
	if len(d.Slots) == 0 {
		return &ValidationError{Reason: ReasonNoAvailabilitySelected}
	}
	return nil
}

func personalInfoComplete(p models.PersonalInfo) bool {
	for _, v := range []string{p.Name, p.Email, p.Phone, p.Address} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return p.Age > 0
}
