package validator

import (
	"strings"
	"testing"

	"banquetdesk/internal/conflict"
	"banquetdesk/pkg/logger"
	"banquetdesk/pkg/model"
)

func newValidator(t *testing.T) *BookingValidator {
	t.Helper()
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	return NewBookingValidator(log)
}

func validBooking() *model.Booking {
	return &model.Booking{
		ClientName: "Asha Mehta",
		EventType:  "Wedding",
		Status:     model.BookingStatusTentative,
		Sessions: []model.Session{
			{
				SessionName: "Reception",
				Venue:       "The Lawns",
				SessionDate: "2025-06-15",
				StartTime:   "18:00",
				EndTime:     "22:00",
			},
		},
	}
}

func TestValidate_AcceptsSessionBooking(t *testing.T) {
	v := newValidator(t)
	if err := v.Validate(validBooking()); err != nil {
		t.Fatalf("expected valid booking, got %v", err)
	}
}

func TestValidate_TimeFormat(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		valid bool
	}{
		{"zero padded", "09:00", "13:30", true},
		{"midnight to last minute", "00:00", "23:59", true},
		{"missing padding", "9:00", "13:00", false},
		{"twelve hour clock", "6pm", "10pm", false},
		{"out of range hour", "24:00", "25:00", false},
		{"out of range minute", "18:60", "19:00", false},
		{"with seconds", "18:00:00", "19:00:00", false},
	}

	v := newValidator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			b.Sessions[0].StartTime = tt.start
			b.Sessions[0].EndTime = tt.end
			err := v.Validate(b)
			if tt.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.valid && err == nil {
				t.Errorf("expected rejection of %q-%q", tt.start, tt.end)
			}
		})
	}
}

func TestValidate_RejectsEndBeforeStart(t *testing.T) {
	v := newValidator(t)

	b := validBooking()
	b.Sessions[0].StartTime = "18:00"
	b.Sessions[0].EndTime = "18:00"
	err := v.Validate(b)
	if err == nil {
		t.Fatal("expected zero-length session to be rejected")
	}
	if !strings.Contains(err.Error(), "endTime must be after startTime") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestValidate_SessionDateAllowsTimeSuffix(t *testing.T) {
	v := newValidator(t)

	// Stored dates sometimes carry a trailing timestamp; only the prefix
	// matters for occupancy.
	b := validBooking()
	b.Sessions[0].SessionDate = "2025-06-15T00:00:00.000Z"
	if err := v.Validate(b); err != nil {
		t.Errorf("expected date with time suffix to validate, got %v", err)
	}

	b.Sessions[0].SessionDate = "15/06/2025"
	if err := v.Validate(b); err == nil {
		t.Error("expected non-ISO date to be rejected")
	}
}

func TestValidate_LegacyBooking(t *testing.T) {
	v := newValidator(t)

	legacy := &model.Booking{
		ClientName: "Vikram Rao",
		EventType:  "Conference",
		Status:     model.BookingStatusConfirmed,
		Hall:       "Banquet Hall A",
		EventDate:  "2025-07-01",
	}
	if err := v.Validate(legacy); err != nil {
		t.Fatalf("expected legacy booking without times to validate, got %v", err)
	}

	legacy.EventStartTime = "14:00"
	legacy.EventEndTime = "10:00"
	if err := v.Validate(legacy); err == nil {
		t.Error("expected inverted legacy window to be rejected")
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	v := newValidator(t)

	b := validBooking()
	b.ClientName = ""
	err := v.Validate(b)
	if err == nil {
		t.Fatal("expected missing client name to be rejected")
	}
	if !strings.Contains(err.Error(), "ClientName is required") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestValidate_RejectsUnknownStatus(t *testing.T) {
	v := newValidator(t)

	b := validBooking()
	b.Status = "pencilled"
	if err := v.Validate(b); err == nil {
		t.Error("expected unknown status to be rejected")
	}
}

func TestValidateCandidate(t *testing.T) {
	v := newValidator(t)

	good := &conflict.Candidate{
		Venue:     "The Lawns",
		Date:      "2025-06-15",
		StartTime: "18:00",
		EndTime:   "22:00",
	}
	if err := v.ValidateCandidate(good); err != nil {
		t.Errorf("expected valid candidate, got %v", err)
	}

	bad := &conflict.Candidate{
		Venue:     "The Lawns",
		Date:      "2025-06-15",
		StartTime: "6pm",
		EndTime:   "10pm",
	}
	if err := v.ValidateCandidate(bad); err == nil {
		t.Error("expected malformed times to be rejected")
	}
}

func TestValidateUpdate_PartialFields(t *testing.T) {
	v := newValidator(t)

	if err := v.ValidateUpdate(&model.BookingUpdate{Status: model.BookingStatusConfirmed}); err != nil {
		t.Errorf("expected status-only update to validate, got %v", err)
	}

	if err := v.ValidateUpdate(&model.BookingUpdate{Status: "pencilled"}); err == nil {
		t.Error("expected unknown status to be rejected")
	}
}
