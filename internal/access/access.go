// Package access decides who may view and edit sales resources. It is a
// pure decision layer: no I/O, failure-closed on missing inputs. Legacy
// field aliasing (dual id fields, string-or-object roles, three historical
// owner fields) is canonicalized in normalize.go before the decision table
// in this file runs.
package access

import "banquetdesk/pkg/model"

// Owned is any resource carrying the historical owner fallback chain
// (bookings, enquiries, quotations). Owner must tolerate a nil receiver
// and return the zero OwnerRef, which CanEdit denies.
type Owned interface {
	Owner() model.OwnerRef
}

// CanView reports whether the user may view resources. Any authenticated
// user may view anything.
func CanView(user *model.User) bool {
	return user != nil
}

// CanEdit reports whether the user may edit the resource.
//
// Decision table, in order: staff is denied unconditionally, admin allowed
// unconditionally, salesperson and manager allowed only over resources they
// own, any other or unknown role denied.
func CanEdit(user *model.User, resource Owned) bool {
	if user == nil || resource == nil {
		return false
	}

	role := NormalizeRole(user.Role)
	userID := ResolveUserID(user)

	switch role {
	case RoleStaff:
		return false
	case RoleAdmin:
		return true
	case RoleSalesperson, RoleManager:
		ownerID := ResolveOwnerID(resource.Owner())
		return ownerID != "" && ownerID == userID
	default:
		return false
	}
}
