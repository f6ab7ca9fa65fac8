package access

import (
	"strings"

	"banquetdesk/pkg/model"
)

// Role is the canonical role name the decision table evaluates.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleManager     Role = "manager"
	RoleSalesperson Role = "salesperson"
	RoleStaff       Role = "staff"
	RoleUnknown     Role = ""
)

// NormalizeRole maps a raw role reference to a canonical Role. The dual
// string/object representation is already collapsed by model.RoleRef at
// decode time; here the name is trimmed and lowercased so that record
// shape differences never reach the policy.
func NormalizeRole(ref model.RoleRef) Role {
	switch Role(strings.ToLower(strings.TrimSpace(ref.String()))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleManager:
		return RoleManager
	case RoleSalesperson:
		return RoleSalesperson
	case RoleStaff:
		return RoleStaff
	default:
		return RoleUnknown
	}
}

// ResolveUserID returns the user's id, accepting either the "id" or the
// "_id" field (persistence-layer aliasing).
func ResolveUserID(user *model.User) string {
	if user == nil {
		return ""
	}
	if !user.ID.IsZero() {
		return user.ID.String()
	}
	return user.DocID.String()
}

// ResolveOwnerID collapses the three historical owner fields to a single
// canonical id: first non-empty of salespersonId, createdBy, salesperson.id.
func ResolveOwnerID(ref model.OwnerRef) string {
	if ref.SalespersonID != "" {
		return ref.SalespersonID
	}
	if ref.CreatedBy != "" {
		return ref.CreatedBy
	}
	return ref.EmbeddedID
}
