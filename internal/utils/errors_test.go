package utils

import (
	"errors"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid argument", E(CodeInvalidArgument, "Op", "bad", nil), http.StatusBadRequest},
		{"unauthorized", E(CodeUnauthorized, "Op", "no", nil), http.StatusUnauthorized},
		{"forbidden", E(CodeForbidden, "Op", "no", nil), http.StatusForbidden},
		{"not found", E(CodeNotFound, "Op", "missing", nil), http.StatusNotFound},
		{"conflict", E(CodeConflict, "Op", "dup", nil), http.StatusConflict},
		{"unavailable", E(CodeUnavailable, "Op", "down", nil), http.StatusServiceUnavailable},
		{"timeout", E(CodeTimeout, "Op", "slow", nil), http.StatusGatewayTimeout},
		{"internal", E(CodeInternal, "Op", "boom", nil), http.StatusInternalServerError},
		{"wrapped app error", E(CodeNotFound, "Outer", "missing", E(CodeInternal, "Inner", "boom", nil)), http.StatusNotFound},
		{"bare not-found sentinel", ErrNotFound, http.StatusNotFound},
		{"plain error", errors.New("anything"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsCode(t *testing.T) {
	err := E(CodeNotFound, "Op", "missing", ErrNotFound)
	if !IsCode(err, CodeNotFound) {
		t.Error("expected NOT_FOUND")
	}
	if IsCode(err, CodeInternal) {
		t.Error("unexpected INTERNAL")
	}
	if IsCode(errors.New("plain"), CodeNotFound) {
		t.Error("plain error must not match")
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	inner := errors.New("driver broke")
	err := E(CodeInternal, "Repo.Get", "query failed", inner)
	if !errors.Is(err, inner) {
		t.Error("wrapped error should be reachable via errors.Is")
	}
}
