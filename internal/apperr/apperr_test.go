package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestTaxonomyStatuses(t *testing.T) {
	cases := []struct {
		name   string
		err    *Error
		status int
		code   string
	}{
		{"validation", Validation("bad input"), http.StatusBadRequest, "validation"},
		{"not found", NotFound("missing"), http.StatusNotFound, "not_found"},
		{"forbidden", Forbidden("not yours"), http.StatusForbidden, "forbidden"},
		{"invalid state", InvalidState("wrong state"), http.StatusBadRequest, "invalid_state"},
		{"internal", Internal(errors.New("boom")), http.StatusInternalServerError, "internal"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Status != tc.status {
				t.Fatalf("status: got=%d want=%d", tc.err.Status, tc.status)
			}
			if tc.err.Code != tc.code {
				t.Fatalf("code: got=%q want=%q", tc.err.Code, tc.code)
			}
		})
	}
}

func TestFromPassesThroughAPIError(t *testing.T) {
	orig := NotFound("slot not found")
	wrapped := fmt.Errorf("propose: %w", orig)

	got := From(wrapped)
	if got != orig {
		t.Fatalf("expected original error, got %+v", got)
	}
}

func TestFromTreatsUnknownAsInternal(t *testing.T) {
	got := From(errors.New("connection refused"))
	if got.Status != http.StatusInternalServerError {
		t.Fatalf("status: got=%d want=500", got.Status)
	}
	if got.Msg != "internal error" {
		t.Fatalf("internal details must not leak into Msg, got %q", got.Msg)
	}
}

func TestIsCode(t *testing.T) {
	err := fmt.Errorf("respond: %w", InvalidState("not pending"))
	if !IsCode(err, "invalid_state") {
		t.Fatalf("expected invalid_state code")
	}
	if IsCode(err, "not_found") {
		t.Fatalf("unexpected not_found code")
	}
	if IsCode(errors.New("plain"), "validation") {
		t.Fatalf("plain error must not match any code")
	}
}
