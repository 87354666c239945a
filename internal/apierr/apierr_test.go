package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusAndCode_KnownErrors(t *testing.T) {
	for _, tc := range []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{MissingParameter("relationshipId"), http.StatusBadRequest, CodeMissingParameter},
		{NotFound("relationship"), http.StatusNotFound, CodeNotFound},
		{AccessDenied("relationship"), http.StatusNotFound, CodeAccessDenied},
		{ServiceUnavailable(errors.New("upstream down")), http.StatusServiceUnavailable, CodeServiceUnavailable},
		{ConfigError(errors.New("missing key")), http.StatusInternalServerError, CodeConfigError},
		{Internal(errors.New("boom")), http.StatusInternalServerError, CodeInternalError},
		{errors.New("plain error"), http.StatusInternalServerError, CodeInternalError},
	} {
		status, code := StatusAndCode(tc.err)
		if status != tc.wantStatus || code != tc.wantCode {
			t.Fatalf("%v: got %d %s, want %d %s", tc.err, status, code, tc.wantStatus, tc.wantCode)
		}
	}
}

func TestStatusAndCode_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NotFound("favor"))
	status, code := StatusAndCode(wrapped)
	if status != http.StatusNotFound || code != CodeNotFound {
		t.Fatalf("got %d %s", status, code)
	}
}

func TestAccessDeniedReadsAsNotFound(t *testing.T) {
	err := AccessDenied("relationship")
	if err.Status != http.StatusNotFound {
		t.Fatalf("access denied must surface as 404, got %d", err.Status)
	}
	if err.Error() != "relationship not found" {
		t.Fatalf("message must not reveal existence, got %q", err.Error())
	}
}
