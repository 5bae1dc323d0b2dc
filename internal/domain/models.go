package domain

import (
	"strings"

	"github.com/samvad-hq/samvad-friends-client/pkg/jsonvalue"
)

// Domain contains core models and their JSON mappings.

const (
	userIDKey    = "id"
	userEmailKey = "email"
	userNameKey  = "name"
)

// User is an application user. ID is always non-empty; Email and Name are
// nil when the backend omitted them.
type User struct {
	ID    string
	Email *string
	Name  *string
}

// ParseUser maps a decoded JSON object to a User. It fails when v is not an
// object or has no non-empty string id. Optional fields that are missing or
// of the wrong type are left nil without error.
func ParseUser(v jsonvalue.Value) (User, bool) {
	obj, ok := v.AsObject()
	if !ok {
		return User{}, false
	}

	id, ok := obj.String(userIDKey)
	if !ok || strings.TrimSpace(id) == "" {
		return User{}, false
	}

	u := User{ID: id}
	if email, ok := obj.String(userEmailKey); ok {
		u.Email = &email
	}
	if name, ok := obj.String(userNameKey); ok {
		u.Name = &name
	}
	return u, true
}

// Value maps the user back to its JSON object form.
func (u User) Value() jsonvalue.Value {
	obj := jsonvalue.Object{userIDKey: jsonvalue.StringValue(u.ID)}
	if u.Email != nil {
		obj[userEmailKey] = jsonvalue.StringValue(*u.Email)
	}
	if u.Name != nil {
		obj[userNameKey] = jsonvalue.StringValue(*u.Name)
	}
	return jsonvalue.ObjectValue(obj)
}

// MarshalJSON lets users be printed directly.
func (u User) MarshalJSON() ([]byte, error) {
	return jsonvalue.Encode(u.Value())
}
