package model

// User is the acting identity consumed by the permission checker.
// Depending on which layer produced the record, the id may arrive under
// "id" or "_id" and the role as a plain string or an object with a name;
// both shapes decode into this struct.
type User struct {
	ID    Identifier `json:"id,omitempty" bson:"id,omitempty"`
	DocID Identifier `json:"_id,omitempty" bson:"_id,omitempty"`
	Name  string     `json:"name,omitempty" bson:"name,omitempty"`
	Role  RoleRef    `json:"role,omitempty" bson:"role,omitempty"`
}
