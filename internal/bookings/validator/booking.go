package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"banquetdesk/internal/conflict"
	"banquetdesk/pkg/logger"
	"banquetdesk/pkg/model"

	"github.com/go-playground/validator/v10"
)

var (
	hhmmRegex    = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
	isoDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New()

	if err := v.RegisterValidation("hhmm", validateHHMM); err != nil {
		log.Fatal("Failed to register 'hhmm' validator", "error", err)
	}
	if err := v.RegisterValidation("isodate", validateISODate); err != nil {
		log.Fatal("Failed to register 'isodate' validator", "error", err)
	}

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

// validateHHMM accepts zero-padded 24-hour HH:mm strings. The zero padding
// matters: time comparison downstream is lexicographic.
func validateHHMM(fl validator.FieldLevel) bool {
	return hhmmRegex.MatchString(fl.Field().String())
}

// validateISODate accepts YYYY-MM-DD, optionally followed by a time suffix.
// Only the date prefix participates in occupancy comparison.
func validateISODate(fl validator.FieldLevel) bool {
	return isoDateRegex.MatchString(fl.Field().String())
}

func (v *BookingValidator) Validate(booking *model.Booking) error {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	for i := range booking.Sessions {
		s := &booking.Sessions[i]
		if s.EndTime <= s.StartTime {
			return ValidationErrors{
				ValidationError{
					Field:   fmt.Sprintf("Sessions[%d].EndTime", i),
					Message: "endTime must be after startTime",
				},
			}
		}
		if !isoDateRegex.MatchString(s.SessionDate) {
			return ValidationErrors{
				ValidationError{
					Field:   fmt.Sprintf("Sessions[%d].SessionDate", i),
					Message: "sessionDate must be an ISO date (YYYY-MM-DD)",
				},
			}
		}
	}

	if booking.IsLegacy() {
		if booking.EventStartTime != "" && booking.EventEndTime != "" &&
			booking.EventEndTime <= booking.EventStartTime {
			return ValidationErrors{
				ValidationError{
					Field:   "EventEndTime",
					Message: "eventEndTime must be after eventStartTime",
				},
			}
		}
		if booking.EventDate != "" && !isoDateRegex.MatchString(booking.EventDate) {
			return ValidationErrors{
				ValidationError{
					Field:   "EventDate",
					Message: "eventDate must be an ISO date (YYYY-MM-DD)",
				},
			}
		}
	}

	return nil
}

func (v *BookingValidator) ValidateUpdate(update *model.BookingUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

// ValidateCandidate checks a proposed conflict-check window.
func (v *BookingValidator) ValidateCandidate(c *conflict.Candidate) error {
	if err := v.validate.Struct(c); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "e164":
			message = fmt.Sprintf("%s must be in E.164 format (e.g., +919812345678)", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "hhmm":
			message = fmt.Sprintf("%s must be a zero-padded 24-hour HH:mm time", err.Field())
		case "isodate":
			message = fmt.Sprintf("%s must be an ISO date (YYYY-MM-DD)", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
