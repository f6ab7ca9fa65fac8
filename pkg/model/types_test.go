package model

import (
	"encoding/json"
	"testing"
)

func TestIdentifierUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Identifier
	}{
		{"string id", `"64f1a2b3c4d5e6f7a8b9c0d1"`, "64f1a2b3c4d5e6f7a8b9c0d1"},
		{"numeric id", `42`, "42"},
		{"null", `null`, ""},
		{"empty string", `""`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id Identifier
			if err := json.Unmarshal([]byte(tt.in), &id); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id != tt.want {
				t.Errorf("expected %q, got %q", tt.want, id)
			}
		})
	}
}

func TestRoleRefUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want RoleRef
	}{
		{"plain string", `"admin"`, "admin"},
		{"object with name", `{"name":"salesperson"}`, "salesperson"},
		{"null", `null`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r RoleRef
			if err := json.Unmarshal([]byte(tt.in), &r); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r != tt.want {
				t.Errorf("expected %q, got %q", tt.want, r)
			}
		})
	}
}

func TestUserDecodesBothIDFields(t *testing.T) {
	var u User
	payload := `{"_id":"abc123","name":"Priya","role":{"name":"manager"}}`
	if err := json.Unmarshal([]byte(payload), &u); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.DocID != "abc123" {
		t.Errorf("expected _id alias to decode, got %q", u.DocID)
	}
	if u.Role != "manager" {
		t.Errorf("expected role manager, got %q", u.Role)
	}
}

func TestBookingIsLegacy(t *testing.T) {
	legacy := &Booking{Hall: "Oasis The Lawns", EventDate: "2025-06-15"}
	if !legacy.IsLegacy() {
		t.Error("booking without sessions must be legacy")
	}

	modern := &Booking{Sessions: []Session{{SessionName: "Reception", Venue: "Oasis The Lawns"}}}
	if modern.IsLegacy() {
		t.Error("booking with sessions must not be legacy")
	}
}

func TestOwnerToleratesNilReceiver(t *testing.T) {
	var b *Booking
	var e *Enquiry
	var q *Quotation

	if ref := b.Owner(); ref != (OwnerRef{}) {
		t.Errorf("nil booking must yield a zero owner, got %+v", ref)
	}
	if ref := e.Owner(); ref != (OwnerRef{}) {
		t.Errorf("nil enquiry must yield a zero owner, got %+v", ref)
	}
	if ref := q.Owner(); ref != (OwnerRef{}) {
		t.Errorf("nil quotation must yield a zero owner, got %+v", ref)
	}
}
