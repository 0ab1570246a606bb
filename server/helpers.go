package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/RASHMI-2005/hospital-management-system/server/models"
	"github.com/RASHMI-2005/hospital-management-system/server/session"
	"github.com/go-playground/validator"
)

const SESSION_COOKIE_NAME = "hospital_session"

// ---------------------------------------------------------------------------------//
// Handler helper functions
// --------------------------------------------------------------------------------//

// validationMessage maps a failed form validation to the single page
// message the UI shows for it. Missing fields win over format problems,
// which win over cross-field rules, matching the order the original
// pages checked in.
func validationMessage(err error, messageForTag map[string]string) string {
	if err == nil {
		return ""
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return "Invalid input."
	}

	for _, tag := range []string{"required", "min", "email", "eqfield", "oneof"} {
		msg, mapped := messageForTag[tag]
		if !mapped {
			continue
		}

		for _, fieldError := range validationErrors {
			if fieldError.Tag() == tag {
				return msg
			}
		}
	}

	return "Invalid input."
}

func trimmedFormValue(r *http.Request, field string) string {
	return strings.TrimSpace(r.FormValue(field))
}

// formIntValue parses a numeric form field, returning 0 for anything
// that is not a valid integer so the DTO validator rejects it.
func formIntValue(r *http.Request, field string) int {
	value, err := strconv.Atoi(trimmedFormValue(r, field))
	if err != nil {
		return 0
	}

	return value
}

func startSession(rw http.ResponseWriter, user *models.User) error {
	token, err := sessionStore.Create(user)
	if err != nil {
		return err
	}

	http.SetCookie(rw, &http.Cookie{
		Name:     SESSION_COOKIE_NAME,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

func clearSessionCookie(rw http.ResponseWriter) {
	http.SetCookie(rw, &http.Cookie{
		Name:     SESSION_COOKIE_NAME,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// currentIdentity returns the identity the session gate resolved for
// this request. Only valid on protected routes.
func currentIdentity(r *http.Request) *session.Identity {
	identity, _ := r.Context().Value(RequestContextKey("currentIdentity")).(*session.Identity)
	return identity
}

// notifyOnCall sends an SMS alert for high priority cases when alerting
// is configured. Failures are logged, never surfaced to the page.
func notifyOnCall(emergencyCase *models.EmergencyCase) {
	if smsClient == nil || emergencyCase == nil || emergencyCase.Priority != models.HIGH_PRIORITY {
		return
	}

	if err := smsClient.SendEmergencyAlert(emergencyCase); err != nil {
		logg.Errorf("failed to send emergency alert for case %v: %v", emergencyCase.ID, err)
	}
}
