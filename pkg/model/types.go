package model

import (
	"encoding/json"
	"fmt"
)

// Identifier is a string id that tolerates JSON payloads where the value
// arrives as a number instead of a string. Older client records serialized
// numeric ids; comparing them naively against string ids produced false
// negatives, so the coercion happens once at the decoding boundary.
type Identifier string

func (id *Identifier) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*id = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = Identifier(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("identifier must be a string or number: %w", err)
	}
	*id = Identifier(n.String())
	return nil
}

func (id Identifier) String() string {
	return string(id)
}

func (id Identifier) IsZero() bool {
	return id == ""
}

// RoleRef is a role name that tolerates both historical representations:
// a plain string ("admin") and an object carrying a name ({"name": "admin"}).
type RoleRef string

func (r *RoleRef) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*r = ""
		return nil
	}

	if data[0] == '{' {
		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*r = RoleRef(obj.Name)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("role must be a string or an object with a name: %w", err)
	}
	*r = RoleRef(s)
	return nil
}

func (r RoleRef) String() string {
	return string(r)
}
