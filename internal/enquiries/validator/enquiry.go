package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"banquetdesk/pkg/logger"
	"banquetdesk/pkg/model"

	"github.com/go-playground/validator/v10"
)

var isoDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

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

type EnquiryValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewEnquiryValidator(log *logger.Logger) *EnquiryValidator {
	return &EnquiryValidator{
		validate: validator.New(),
		logger:   log,
	}
}

func (v *EnquiryValidator) Validate(enquiry *model.Enquiry) error {
	if err := v.validate.Struct(enquiry); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if enquiry.EventDate != "" && !isoDateRegex.MatchString(enquiry.EventDate) {
		return ValidationErrors{
			ValidationError{
				Field:   "EventDate",
				Message: "eventDate must be an ISO date (YYYY-MM-DD)",
			},
		}
	}

	return nil
}

func (v *EnquiryValidator) ValidateUpdate(update *model.EnquiryUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if update.EventDate != nil && *update.EventDate != "" && !isoDateRegex.MatchString(*update.EventDate) {
		return ValidationErrors{
			ValidationError{
				Field:   "EventDate",
				Message: "eventDate must be an ISO date (YYYY-MM-DD)",
			},
		}
	}

	return nil
}

func (v *EnquiryValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
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
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
