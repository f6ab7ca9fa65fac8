// Package conflict implements venue occupancy conflict detection over an
// already-fetched booking list. It performs no I/O: callers fetch the
// bookings (and, for a hard guarantee, re-run the check inside a
// transaction at write time) and pass them in.
package conflict

import (
	"fmt"
	"strings"

	"banquetdesk/pkg/model"
)

const (
	// Bounds assumed when a legacy booking has no recorded event times:
	// it occupies the entire day.
	DayStart = "00:00"
	DayEnd   = "23:59"
)

// Candidate is the venue/date/time window a user is proposing to book.
// Date is a YYYY-MM-DD string; StartTime/EndTime are zero-padded 24-hour
// HH:mm strings. ExcludeBookingID removes the booking being edited from
// its own conflict set.
type Candidate struct {
	Venue            string `json:"venue" validate:"required,min=1,max=100"`
	Date             string `json:"date" validate:"required,isodate"`
	StartTime        string `json:"startTime" validate:"required,hhmm"`
	EndTime          string `json:"endTime" validate:"required,hhmm"`
	ExcludeBookingID string `json:"excludeBookingId,omitempty"`
}

// Conflict is one overlapping occupancy. Session is nil when the clash is
// with a legacy booking's top-level event window.
type Conflict struct {
	Booking *model.Booking `json:"conflictingBooking"`
	Session *model.Session `json:"conflictingSession"`
	Message string         `json:"message"`
}

// Result wraps the ordered conflict list together with the derived flag
// the UI renders from.
type Result struct {
	Conflicts    []Conflict `json:"conflicts"`
	HasConflicts bool       `json:"hasConflicts"`
}

// FindConflicts tests the candidate window against every booking. Result
// order follows input booking order, then per-booking session order.
// A degenerate window (StartTime == EndTime) conflicts with nothing,
// including occupancy windows that enclose the point.
func FindConflicts(c Candidate, bookings []*model.Booking) Result {
	if c.StartTime == c.EndTime {
		return Result{}
	}

	var conflicts []Conflict

	for _, b := range bookings {
		if c.ExcludeBookingID != "" && b.ID == c.ExcludeBookingID {
			continue
		}

		if !b.IsLegacy() {
			for i := range b.Sessions {
				s := &b.Sessions[i]
				if s.Venue != c.Venue {
					continue
				}
				if DatePart(s.SessionDate) != c.Date {
					continue
				}
				if !overlaps(c.StartTime, c.EndTime, s.StartTime, s.EndTime) {
					continue
				}
				conflicts = append(conflicts, Conflict{
					Booking: b,
					Session: s,
					Message: fmt.Sprintf("%s already has %q booked at %s from %s to %s",
						b.ClientName, s.SessionName, s.Venue, s.StartTime, s.EndTime),
				})
			}
			continue
		}

		if b.Hall != c.Venue {
			continue
		}
		if DatePart(b.EventDate) != c.Date {
			continue
		}

		start := b.EventStartTime
		if start == "" {
			start = DayStart
		}
		end := b.EventEndTime
		if end == "" {
			end = DayEnd
		}
		if !overlaps(c.StartTime, c.EndTime, start, end) {
			continue
		}
		conflicts = append(conflicts, Conflict{
			Booking: b,
			Message: fmt.Sprintf("%s has a %s booked at %s on %s from %s to %s",
				b.ClientName, b.EventType, b.Hall, c.Date, start, end),
		})
	}

	return Result{
		Conflicts:    conflicts,
		HasConflicts: len(conflicts) > 0,
	}
}

// DatePart truncates an ISO date-time string to its YYYY-MM-DD prefix.
// Comparison is purely textual; no timezone normalization is applied.
func DatePart(isoDate string) string {
	if i := strings.IndexByte(isoDate, 'T'); i >= 0 {
		return isoDate[:i]
	}
	return isoDate
}

// overlaps is the half-open interval test on HH:mm strings. Lexicographic
// comparison is valid because the format is zero-padded 24-hour.
func overlaps(start1, end1, start2, end2 string) bool {
	return start1 < end2 && end1 > start2
}
