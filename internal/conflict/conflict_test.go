package conflict

import (
	"strings"
	"testing"

	"banquetdesk/pkg/model"
)

func sessionBooking(id, client string, sessions ...model.Session) *model.Booking {
	return &model.Booking{
		ID:         id,
		ClientName: client,
		EventType:  "Wedding",
		Status:     model.BookingStatusConfirmed,
		Sessions:   sessions,
	}
}

func legacyBooking(id, client, hall, date, start, end string) *model.Booking {
	return &model.Booking{
		ID:             id,
		ClientName:     client,
		EventType:      "Corporate Dinner",
		Status:         model.BookingStatusConfirmed,
		Hall:           hall,
		EventDate:      date,
		EventStartTime: start,
		EventEndTime:   end,
	}
}

func TestSessionOverlapDetected(t *testing.T) {
	bookings := []*model.Booking{
		sessionBooking("b1", "Sharma Family", model.Session{
			SessionName: "Reception",
			Venue:       "Oasis The Lawns",
			SessionDate: "2025-06-15T00:00:00Z",
			StartTime:   "19:00",
			EndTime:     "21:00",
		}),
	}

	res := FindConflicts(Candidate{
		Venue:     "Oasis The Lawns",
		Date:      "2025-06-15",
		StartTime: "18:00",
		EndTime:   "20:00",
	}, bookings)

	if !res.HasConflicts {
		t.Fatal("expected a conflict")
	}
	if len(res.Conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(res.Conflicts))
	}
	c := res.Conflicts[0]
	if c.Session == nil || c.Session.SessionName != "Reception" {
		t.Error("expected the conflict to reference the Reception session")
	}
	if !strings.Contains(c.Message, "Sharma Family") || !strings.Contains(c.Message, "Reception") {
		t.Errorf("message must cite client and session name, got %q", c.Message)
	}
}

func TestLegacyBookingFullDayOccupancy(t *testing.T) {
	bookings := []*model.Booking{
		legacyBooking("b1", "Mehta Group", "Oasis The Lawns", "2025-06-15", "", ""),
	}

	res := FindConflicts(Candidate{
		Venue:     "Oasis The Lawns",
		Date:      "2025-06-15",
		StartTime: "18:00",
		EndTime:   "20:00",
	}, bookings)

	if !res.HasConflicts {
		t.Fatal("legacy booking with no recorded times must occupy the whole day")
	}
	if res.Conflicts[0].Session != nil {
		t.Error("legacy conflict must carry a nil session")
	}
	if !strings.Contains(res.Conflicts[0].Message, "Corporate Dinner") {
		t.Errorf("legacy message must cite the event type, got %q", res.Conflicts[0].Message)
	}
}

func TestHalfOpenIntervalBoundaries(t *testing.T) {
	booked := []*model.Booking{
		sessionBooking("b1", "Kapoor", model.Session{
			SessionName: "Evening",
			Venue:       "Crystal Hall",
			SessionDate: "2025-07-01",
			StartTime:   "11:00",
			EndTime:     "13:00",
		}),
	}

	tests := []struct {
		name       string
		start, end string
		conflict   bool
	}{
		{"back-to-back windows do not conflict", "09:00", "11:00", false},
		{"one minute past the boundary conflicts", "09:00", "11:01", true},
		{"window after does not conflict", "13:00", "15:00", false},
		{"fully contained conflicts", "11:30", "12:00", true},
		{"enclosing window conflicts", "10:00", "14:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := FindConflicts(Candidate{
				Venue:     "Crystal Hall",
				Date:      "2025-07-01",
				StartTime: tt.start,
				EndTime:   tt.end,
			}, booked)
			if res.HasConflicts != tt.conflict {
				t.Errorf("window [%s,%s): expected conflict=%v", tt.start, tt.end, tt.conflict)
			}
		})
	}
}

func TestDegenerateWindowNeverConflicts(t *testing.T) {
	booked := []*model.Booking{
		legacyBooking("b1", "Mehta Group", "Crystal Hall", "2025-07-01", "", ""),
		sessionBooking("b2", "Kapoor", model.Session{
			SessionName: "All Day",
			Venue:       "Crystal Hall",
			SessionDate: "2025-07-01",
			StartTime:   "00:00",
			EndTime:     "23:59",
		}),
	}

	res := FindConflicts(Candidate{
		Venue:     "Crystal Hall",
		Date:      "2025-07-01",
		StartTime: "12:00",
		EndTime:   "12:00",
	}, booked)

	if res.HasConflicts {
		t.Error("a zero-length window must conflict with nothing")
	}
}

func TestExcludeBookingIDRemovesSelfConflict(t *testing.T) {
	booked := []*model.Booking{
		sessionBooking("b1", "Kapoor", model.Session{
			SessionName: "Evening",
			Venue:       "Crystal Hall",
			SessionDate: "2025-07-01",
			StartTime:   "18:00",
			EndTime:     "22:00",
		}),
	}

	cand := Candidate{
		Venue:     "Crystal Hall",
		Date:      "2025-07-01",
		StartTime: "18:00",
		EndTime:   "22:00",
	}

	if res := FindConflicts(cand, booked); !res.HasConflicts {
		t.Fatal("sanity: identical window must conflict without exclusion")
	}

	cand.ExcludeBookingID = "b1"
	if res := FindConflicts(cand, booked); res.HasConflicts {
		t.Error("excluded booking must not conflict with itself")
	}
}

func TestVenueAndDateExactStringMatch(t *testing.T) {
	booked := []*model.Booking{
		sessionBooking("b1", "Kapoor", model.Session{
			SessionName: "Evening",
			Venue:       "Oasis The Lawns",
			SessionDate: "2025-07-01T00:00:00Z",
			StartTime:   "18:00",
			EndTime:     "22:00",
		}),
	}

	otherVenue := FindConflicts(Candidate{
		Venue: "oasis the lawns", Date: "2025-07-01", StartTime: "18:00", EndTime: "22:00",
	}, booked)
	if otherVenue.HasConflicts {
		t.Error("venue matching is case-sensitive exact string equality")
	}

	otherDate := FindConflicts(Candidate{
		Venue: "Oasis The Lawns", Date: "2025-07-02", StartTime: "18:00", EndTime: "22:00",
	}, booked)
	if otherDate.HasConflicts {
		t.Error("different date must not conflict")
	}
}

func TestMultiSessionOrdering(t *testing.T) {
	booked := []*model.Booking{
		sessionBooking("b1", "Kapoor",
			model.Session{SessionName: "Morning", Venue: "Crystal Hall", SessionDate: "2025-07-01", StartTime: "09:00", EndTime: "12:00"},
			model.Session{SessionName: "Evening", Venue: "Crystal Hall", SessionDate: "2025-07-01", StartTime: "18:00", EndTime: "22:00"},
		),
		legacyBooking("b2", "Mehta Group", "Crystal Hall", "2025-07-01", "", ""),
	}

	res := FindConflicts(Candidate{
		Venue:     "Crystal Hall",
		Date:      "2025-07-01",
		StartTime: "08:00",
		EndTime:   "23:00",
	}, booked)

	if len(res.Conflicts) != 3 {
		t.Fatalf("expected 3 conflicts, got %d", len(res.Conflicts))
	}
	if res.Conflicts[0].Session.SessionName != "Morning" || res.Conflicts[1].Session.SessionName != "Evening" {
		t.Error("conflicts must follow input booking order, then session order")
	}
	if res.Conflicts[2].Session != nil {
		t.Error("legacy conflict must come last and carry a nil session")
	}
}

func TestDatePart(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2025-06-15T00:00:00Z", "2025-06-15"},
		{"2025-06-15T23:59:59+05:30", "2025-06-15"},
		{"2025-06-15", "2025-06-15"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := DatePart(tt.in); got != tt.want {
			t.Errorf("DatePart(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
