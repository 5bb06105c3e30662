package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusPerKind(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{Validationf("bad input"), http.StatusBadRequest},
		{NotFoundf("missing"), http.StatusNotFound},
		{Forbiddenf("no"), http.StatusForbidden},
		{Unauthorizedf("who"), http.StatusUnauthorized},
		{Storagef(errors.New("boom"), "db down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := tt.err.HTTPStatus(); got != tt.want {
			t.Fatalf("kind %d: expected status %d, got %d", tt.err.Kind, tt.want, got)
		}
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(NotFoundf("gone")); got != NotFound {
		t.Fatalf("expected NotFound, got %d", got)
	}
	if got := KindOf(errors.New("plain")); got != 0 {
		t.Fatalf("expected 0 for foreign error, got %d", got)
	}
	wrapped := fmt.Errorf("while handling: %w", Forbiddenf("denied"))
	if got := KindOf(wrapped); got != Forbidden {
		t.Fatalf("expected Forbidden through wrapping, got %d", got)
	}
}

func TestStorageKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Storagef(cause, "order insert failed")
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be reachable via errors.Is")
	}
	if err.Error() != "order insert failed: connection reset" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}
