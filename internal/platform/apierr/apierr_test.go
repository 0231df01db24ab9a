package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFromUnwrapsWrappedErrors(t *testing.T) {
	base := NotFound("draft_not_found", "draft %s not found", "d1")
	wrapped := fmt.Errorf("apply: %w", base)

	got, ok := From(wrapped)
	if !ok {
		t.Fatalf("expected api error in chain")
	}
	if got.Status != http.StatusNotFound || got.Code != "draft_not_found" {
		t.Fatalf("unexpected error: %+v", got)
	}
	if got.Error() != "draft d1 not found" {
		t.Fatalf("unexpected message: %q", got.Error())
	}

	if _, ok := From(errors.New("plain")); ok {
		t.Fatalf("plain errors carry no api error")
	}
}

func TestErrorMessageFallbacks(t *testing.T) {
	cases := []struct {
		err  *Error
		want string
	}{
		{New(http.StatusConflict, "draft_applied", nil), "draft_applied"},
		{New(http.StatusTeapot, "", nil), "api error (418)"},
		{&Error{}, "api error"},
		{nil, ""},
	}
	for _, tc := range cases {
		if got := tc.err.Error(); got != tc.want {
			t.Fatalf("Error() = %q, want %q", got, tc.want)
		}
	}
}
