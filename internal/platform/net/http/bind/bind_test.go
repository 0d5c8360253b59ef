package bind

import (
	"net/http/httptest"
	"strings"
	"testing"

	perr "vitalog/internal/platform/errors"
)

type payload struct {
	Text   string `json:"text" validate:"required,min=1"`
	UserID string `json:"user_id" validate:"required,uuid4"`
}

const validUUID = "8a2b1f64-9c3d-4e5f-8a7b-112233445566"

func TestParseJSONValid(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(
		`{"text":"vitamin d","user_id":"`+validUUID+`"}`))
	got, err := ParseJSON[payload](r)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if got.Text != "vitamin d" {
		t.Fatalf("Text = %q", got.Text)
	}
}

func TestParseJSONMalformed(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"text":`))
	if _, err := ParseJSON[payload](r); !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("want JSON error, got %v", err)
	}
}

func TestParseJSONEmptyBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(""))
	if _, err := ParseJSON[payload](r); !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("want JSON error for empty body, got %v", err)
	}
}

func TestParseJSONValidation(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"text":"","user_id":"nope"}`))
	_, err := ParseJSON[payload](r)
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
	if e, ok := perr.As(err); !ok || e.Field() == "" {
		t.Fatalf("validation error should carry a field: %v", err)
	}
}

func TestParseJSONUnknownField(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(
		`{"text":"x","user_id":"`+validUUID+`","bogus":1}`))
	if _, err := ParseJSON[payload](r); !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("want JSON error for unknown field, got %v", err)
	}
}
