package domain

import (
	"encoding/json"
	"testing"

	"github.com/samvad-hq/samvad-friends-client/pkg/jsonvalue"
)

func mustDecode(t *testing.T, body string) jsonvalue.Value {
	t.Helper()
	v, ok := jsonvalue.Decode([]byte(body))
	if !ok {
		t.Fatalf("decode %q failed", body)
	}
	return v
}

func TestParseUserOptionalFields(t *testing.T) {
	u, ok := ParseUser(mustDecode(t, `{"id": "u1", "email": "a@b.com"}`))
	if !ok {
		t.Fatalf("expected user to parse")
	}
	if u.ID != "u1" {
		t.Fatalf("unexpected id %q", u.ID)
	}
	if u.Email == nil || *u.Email != "a@b.com" {
		t.Fatalf("unexpected email %v", u.Email)
	}
	if u.Name != nil {
		t.Fatalf("expected name to be absent, got %q", *u.Name)
	}
}

func TestParseUserRequiresID(t *testing.T) {
	for _, body := range []string{
		`{"email": "a@b.com"}`,
		`{"id": 42}`,
		`{"id": ""}`,
		`{"id": null}`,
		`["u1"]`,
		`"u1"`,
	} {
		if _, ok := ParseUser(mustDecode(t, body)); ok {
			t.Fatalf("expected %s to be rejected", body)
		}
	}
}

func TestParseUserIgnoresWrongTypedOptionals(t *testing.T) {
	u, ok := ParseUser(mustDecode(t, `{"id": "u2", "email": 7, "name": ["x"]}`))
	if !ok {
		t.Fatalf("expected user to parse")
	}
	if u.Email != nil || u.Name != nil {
		t.Fatalf("expected optional fields to be dropped, got %+v", u)
	}
}

func TestUserValueRoundTrip(t *testing.T) {
	name := "Asha"
	in := User{ID: "u3", Name: &name}

	out, ok := ParseUser(in.Value())
	if !ok {
		t.Fatalf("round trip failed")
	}
	if out.ID != "u3" || out.Name == nil || *out.Name != "Asha" || out.Email != nil {
		t.Fatalf("unexpected user %+v", out)
	}

	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"id":"u3","name":"Asha"}` {
		t.Fatalf("unexpected json %s", b)
	}
}
