package validator

import (
	"errors"
	"fmt"
	"strings"

	"banquetdesk/pkg/logger"
	"banquetdesk/pkg/model"

	"github.com/go-playground/validator/v10"
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

// GenerateRequest describes what to price when preparing a quotation for an
// enquiry. Catalog ids are optional; only the lines the caller asks for are
// priced, so a venue-only quote is valid.
type GenerateRequest struct {
	EnquiryID     string   `json:"enquiryId" validate:"required,mongodb"`
	VenueID       string   `json:"venueId,omitempty" validate:"omitempty,mongodb"`
	Days          int      `json:"days,omitempty" validate:"omitempty,min=1,max=30"`
	MenuPackageID string   `json:"menuPackageId,omitempty" validate:"omitempty,mongodb"`
	Guests        int      `json:"guests,omitempty" validate:"omitempty,min=1,max=10000"`
	RoomTypeID    string   `json:"roomTypeId,omitempty" validate:"omitempty,mongodb"`
	Rooms         int      `json:"rooms,omitempty" validate:"omitempty,min=1,max=1000"`
	Nights        int      `json:"nights,omitempty" validate:"omitempty,min=1,max=30"`
	TaxPercent    *float64 `json:"taxPercent,omitempty" validate:"omitempty,min=0,max=100"`
}

type QuotationValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewQuotationValidator(log *logger.Logger) *QuotationValidator {
	return &QuotationValidator{
		validate: validator.New(),
		logger:   log,
	}
}

func (v *QuotationValidator) Validate(quotation *model.Quotation) error {
	if err := v.validate.Struct(quotation); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *QuotationValidator) ValidateGenerateRequest(req *GenerateRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if req.VenueID == "" && req.MenuPackageID == "" && req.RoomTypeID == "" {
		return ValidationErrors{
			ValidationError{
				Field:   "VenueID",
				Message: "at least one of venueId, menuPackageId or roomTypeId is required",
			},
		}
	}

	return nil
}

func (v *QuotationValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
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
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
