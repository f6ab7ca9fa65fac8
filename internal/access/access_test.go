package access

import (
	"encoding/json"
	"testing"

	"banquetdesk/pkg/model"
)

func userWith(id, role string) *model.User {
	return &model.User{ID: model.Identifier(id), Role: model.RoleRef(role)}
}

func bookingOwnedBy(salespersonID string) *model.Booking {
	return &model.Booking{ID: "bk1", ClientName: "Sharma Family", SalespersonID: model.Identifier(salespersonID)}
}

func TestCanViewRequiresUser(t *testing.T) {
	if CanView(nil) {
		t.Error("missing user must be denied viewing")
	}
	if !CanView(userWith("u1", "staff")) {
		t.Error("any authenticated user may view")
	}
}

func TestCanEditFailsClosed(t *testing.T) {
	if CanEdit(nil, bookingOwnedBy("u1")) {
		t.Error("missing user must be denied")
	}
	if CanEdit(userWith("u1", "admin"), nil) {
		t.Error("missing resource must be denied")
	}
}

func TestCanEditTypedNilResource(t *testing.T) {
	var booking *model.Booking
	var resource Owned = booking

	if CanEdit(userWith("u1", "salesperson"), resource) {
		t.Error("a nil booking behind the interface must be denied, not dereferenced")
	}
	if CanEdit(userWith("u1", "manager"), resource) {
		t.Error("a nil booking behind the interface must be denied, not dereferenced")
	}
}

func TestCanEditDecisionTable(t *testing.T) {
	owned := bookingOwnedBy("u1")
	foreign := bookingOwnedBy("u2")

	tests := []struct {
		name     string
		user     *model.User
		resource Owned
		want     bool
	}{
		{"staff denied even over own resource", userWith("u1", "staff"), owned, false},
		{"admin allowed over anything", userWith("u9", "admin"), foreign, true},
		{"salesperson allowed over own", userWith("u1", "salesperson"), owned, true},
		{"salesperson denied over foreign", userWith("u1", "salesperson"), foreign, false},
		{"manager allowed over own", userWith("u1", "manager"), owned, true},
		{"manager denied over foreign", userWith("u1", "manager"), foreign, false},
		{"unknown role denied", userWith("u1", "accountant"), owned, false},
		{"empty role denied", userWith("u1", ""), owned, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanEdit(tt.user, tt.resource); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCanEditObjectRole(t *testing.T) {
	var user model.User
	payload := `{"id":"u1","role":{"name":"Salesperson"}}`
	if err := json.Unmarshal([]byte(payload), &user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !CanEdit(&user, bookingOwnedBy("u1")) {
		t.Error("object-shaped role with mixed case must normalize and allow")
	}
}

func TestCanEditNumericIDCoercion(t *testing.T) {
	var user model.User
	if err := json.Unmarshal([]byte(`{"id":1001,"role":"salesperson"}`), &user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var booking model.Booking
	if err := json.Unmarshal([]byte(`{"clientName":"Sharma Family","salespersonId":"1001"}`), &booking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !CanEdit(&user, &booking) {
		t.Error("numeric id and string id for the same owner must compare equal")
	}
}

func TestCanEditUsesDocIDFallback(t *testing.T) {
	user := &model.User{DocID: "u1", Role: "manager"}
	if !CanEdit(user, bookingOwnedBy("u1")) {
		t.Error("user id must resolve from _id when id is absent")
	}
}

func TestResolveOwnerIDFallbackChain(t *testing.T) {
	tests := []struct {
		name string
		ref  model.OwnerRef
		want string
	}{
		{"salespersonId wins", model.OwnerRef{SalespersonID: "a", CreatedBy: "b", EmbeddedID: "c"}, "a"},
		{"createdBy second", model.OwnerRef{CreatedBy: "b", EmbeddedID: "c"}, "b"},
		{"embedded last", model.OwnerRef{EmbeddedID: "c"}, "c"},
		{"all empty", model.OwnerRef{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveOwnerID(tt.ref); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSalespersonDeniedWhenOwnerUnresolved(t *testing.T) {
	unowned := &model.Booking{ID: "bk2", ClientName: "Walk-in"}
	if CanEdit(userWith("u1", "salesperson"), unowned) {
		t.Error("resource with no resolvable owner must be denied to non-admins")
	}
}

func TestEnquiryOwnershipViaEmbeddedSalesperson(t *testing.T) {
	enq := &model.Enquiry{
		ID:          "en1",
		ClientName:  "Mehta Group",
		Salesperson: &model.SalespersonRef{ID: "u7", Name: "Ravi"},
	}
	if !CanEdit(userWith("u7", "salesperson"), enq) {
		t.Error("embedded salesperson.id must resolve as owner")
	}
}
